// reactions.go
//
// Reaction create/list/delete. Creation only enqueues the row into the
// caller's unit of work; the commit happens at the request boundary.

package services

import (
	"errors"

	"github.com/thruflo/awraamba/internal/models"
	"github.com/thruflo/awraamba/internal/validate"
	"gorm.io/gorm"
)

// ErrHasChildren is returned when deleting a reaction that still has replies.
var ErrHasChildren = errors.New("reaction has replies")

// ErrBadParent is returned when a reaction references a missing parent.
var ErrBadParent = errors.New("parent reaction does not exist")

// CreateReaction creates a reaction scoped to a theme (by slug) and the
// authenticated user. A missing theme is ErrNotFound; a dangling parent id is
// ErrBadParent.
func CreateReaction(db *gorm.DB, user *models.User, data *validate.AddReactionData) (*models.Reaction, error) {
	theme, err := models.GetBySlug[models.Theme](db, data.ThemeSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if data.ParentID != nil {
		var count int64
		if err := db.Model(&models.Reaction{}).Where("id = ?", *data.ParentID).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, ErrBadParent
		}
	}

	reaction := &models.Reaction{
		URL:      data.URL,
		Message:  data.Message,
		Timecode: data.Timecode,
		ThemeID:  theme.ID,
		UserID:   user.ID,
		ParentID: data.ParentID,
	}
	if err := db.Create(reaction).Error; err != nil {
		return nil, err
	}
	return reaction, nil
}

// ListReactions lists reactions filtered by theme slug, by authoring
// username, or unfiltered, newest first. A filter naming a missing theme or
// user is ErrNotFound.
func ListReactions(db *gorm.DB, themeSlug, username string) ([]models.Reaction, error) {
	query := db.Model(&models.Reaction{}).Order("created_at DESC")

	if themeSlug != "" {
		theme, err := models.GetBySlug[models.Theme](db, themeSlug)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		query = query.Where("theme_id = ?", theme.ID)
	}

	if username != "" {
		user, err := GetUserByUsername(db, username)
		if err != nil {
			return nil, err
		}
		query = query.Where("user_id = ?", user.ID)
	}

	var reactions []models.Reaction
	if err := query.Find(&reactions).Error; err != nil {
		return nil, err
	}
	return reactions, nil
}

// DeleteReaction removes a reaction. Reactions with replies cannot be
// deleted; the thread must be unwound leaf-first.
func DeleteReaction(db *gorm.DB, id uint64) error {
	reaction, err := models.GetByID[models.Reaction](db, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	var children int64
	if err := db.Model(&models.Reaction{}).Where("parent_id = ?", reaction.ID).Count(&children).Error; err != nil {
		return err
	}
	if children > 0 {
		return ErrHasChildren
	}

	return db.Delete(reaction).Error
}

// ReactionOwner resolves a reaction id to its owning user id. The second
// return is false when the reaction does not exist.
func ReactionOwner(db *gorm.DB, id uint64) (uint64, bool) {
	reaction, err := models.GetByID[models.Reaction](db, id)
	if err != nil {
		return 0, false
	}
	return reaction.UserID, true
}
