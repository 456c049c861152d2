package models

// Reaction represents a user generated comment or external link posted
// against a theme. ParentID is set when the reaction is a reply to another
// reaction; Children holds the replies.
type Reaction struct {
	Record
	URL      string  `gorm:"size:2048"`
	Message  string
	Timecode float64

	ThemeID uint64 `gorm:"index;not null"`
	Theme   *Theme

	UserID uint64 `gorm:"index;not null"`
	User   *User

	ParentID *uint64 `gorm:"index"`
	Children []Reaction `gorm:"foreignKey:ParentID"`

	Characters []Character `gorm:"many2many:character_reactions"`
	Locations  []Location  `gorm:"many2many:location_reactions"`
}

// TableName overrides the table name for Reaction
func (Reaction) TableName() string {
	return "reactions"
}

func (r *Reaction) Projection() Projection {
	fields := map[string]interface{}{
		"id":       r.ID,
		"v":        r.Version,
		"c":        r.CreatedAt,
		"m":        r.UpdatedAt,
		"url":      r.URL,
		"message":  r.Message,
		"timecode": r.Timecode,
		"theme_id": r.ThemeID,
		"user_id":  r.UserID,
	}
	if r.ParentID != nil {
		fields["parent_id"] = *r.ParentID
	} else {
		fields["parent_id"] = nil
	}
	return project("reaction", fields)
}
