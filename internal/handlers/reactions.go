// reactions.go
//
// The reactions API: create scoped to a theme and the authenticated user,
// list filtered by theme slug or authoring username, delete (owner or admin).

package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/thruflo/awraamba/internal/auth"
	"github.com/thruflo/awraamba/internal/middleware"
	"github.com/thruflo/awraamba/internal/models"
	"github.com/thruflo/awraamba/internal/services"
	"github.com/thruflo/awraamba/internal/types"
	"github.com/thruflo/awraamba/internal/utils"
	"github.com/thruflo/awraamba/internal/validate"
	"gorm.io/gorm"
)

// ReactionsHandler handles the reactions routes
type ReactionsHandler struct {
	DB   *gorm.DB
	Auth auth.Strategy
}

type createReactionBody struct {
	ThemeSlug string            `json:"theme_slug" form:"theme_slug"`
	Message   string            `json:"message" form:"message"`
	URL       string            `json:"url" form:"url"`
	Timecode  types.FlexFloat64 `json:"timecode" form:"timecode"`
	ParentID  types.FlexUint64  `json:"parent_id" form:"parent_id"`
}

// CreateReaction handles POST /api/reactions/
// @Summary Post a reaction
// @Description Create a reaction against a theme for the authenticated user
// @Tags Reactions
// @Accept json
// @Produce json
// @Param body body object true "Reaction to create"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /reactions/ [post]
func (h *ReactionsHandler) CreateReaction(c *fiber.Ctx) error {
	user, err := h.Auth.CurrentUser(c)
	if err != nil {
		return err
	}
	if user == nil {
		return &types.CustomError{
			Code:    fiber.StatusForbidden,
			Message: "Login required",
			Type:    "authorization.login",
		}
	}

	var body createReactionBody
	if err := c.BodyParser(&body); err != nil {
		return utils.ValidationErrorResponse(c, map[string]string{
			"body": "Invalid input",
		})
	}

	data, errs := validate.AddReaction(validate.AddReactionForm{
		ThemeSlug: body.ThemeSlug,
		Message:   body.Message,
		URL:       body.URL,
		Timecode:  body.Timecode.Float64(),
		ParentID:  body.ParentID.Uint64(),
	})
	if errs.Any() {
		return utils.ValidationErrorResponse(c, errs)
	}

	db := middleware.Tx(c, h.DB)
	reaction, err := services.CreateReaction(db, user, data)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			return utils.NotFoundResponse(c, fmt.Sprintf("Theme '%s' not found", data.ThemeSlug))
		case errors.Is(err, services.ErrBadParent):
			return utils.ValidationErrorResponse(c, map[string]string{
				"parent_id": "Parent reaction does not exist.",
			})
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "createReaction")
	}

	return c.Status(fiber.StatusCreated).JSON(reaction.Projection())
}

// ListReactions handles GET /api/reactions/
// @Summary List reactions
// @Description List reactions filtered by theme slug, by authoring username, or unfiltered
// @Tags Reactions
// @Produce json
// @Param theme_slug query string false "Filter by theme slug"
// @Param username query string false "Filter by authoring username"
// @Success 200 {array} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /reactions/ [get]
func (h *ReactionsHandler) ListReactions(c *fiber.Ctx) error {
	themeSlug := c.Query("theme_slug")
	username := c.Query("username")

	db := middleware.Tx(c, h.DB)
	reactions, err := services.ListReactions(db, themeSlug, username)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.NotFoundResponse(c, "No such theme or user")
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "listReactions")
	}

	projections := make([]models.Projection, len(reactions))
	for i := range reactions {
		projections[i] = reactions[i].Projection()
	}
	return c.Status(fiber.StatusOK).JSON(projections)
}

// DeleteReaction handles DELETE /api/reactions/:id
// @Summary Delete a reaction
// @Description Delete a reaction without replies; gated to its owner or an admin
// @Tags Reactions
// @Produce json
// @Param id path int true "Reaction ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /reactions/{id} [delete]
func (h *ReactionsHandler) DeleteReaction(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return utils.NotFoundResponse(c, "No such reaction")
	}

	db := middleware.Tx(c, h.DB)
	if err := services.DeleteReaction(db, id); err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			return utils.NotFoundResponse(c, "No such reaction")
		case errors.Is(err, services.ErrHasChildren):
			return utils.ErrorResponse(c,
				"Reaction has replies and cannot be deleted",
				fiber.StatusConflict, "deleteReaction")
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "deleteReaction")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Success",
		"ok":      true,
	})
}

// Owner resolves the :id route param to the owning user id for the
// owner-or-admin gate.
func (h *ReactionsHandler) Owner(c *fiber.Ctx) (uint64, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return services.ReactionOwner(middleware.Tx(c, h.DB), id)
}
