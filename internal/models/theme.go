package models

// Theme represents a theme that reactions are posted against.
type Theme struct {
	Record
	Slug        string `gorm:"uniqueIndex;size:64;not null"`
	Title       string `gorm:"size:255"`
	Description string
	Reactions   []Reaction
	Characters  []Character `gorm:"many2many:theme_characters"`
	Locations   []Location  `gorm:"many2many:theme_locations"`
}

// TableName overrides the table name for Theme
func (Theme) TableName() string {
	return "themes"
}

func (t *Theme) Projection() Projection {
	return project("theme", map[string]interface{}{
		"id":          t.ID,
		"v":           t.Version,
		"c":           t.CreatedAt,
		"m":           t.UpdatedAt,
		"slug":        t.Slug,
		"title":       t.Title,
		"description": t.Description,
	})
}
