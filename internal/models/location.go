package models

// Location represents a location.
type Location struct {
	Record
	Slug        string `gorm:"uniqueIndex;size:64;not null"`
	Title       string `gorm:"size:255"`
	Description string
	Themes      []Theme     `gorm:"many2many:theme_locations"`
	Characters  []Character `gorm:"many2many:character_locations"`
	Reactions   []Reaction  `gorm:"many2many:location_reactions"`
}

// TableName overrides the table name for Location
func (Location) TableName() string {
	return "locations"
}

func (l *Location) Projection() Projection {
	return project("location", map[string]interface{}{
		"id":          l.ID,
		"v":           l.Version,
		"c":           l.CreatedAt,
		"m":           l.UpdatedAt,
		"slug":        l.Slug,
		"title":       l.Title,
		"description": l.Description,
	})
}
