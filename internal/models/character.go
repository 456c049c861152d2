package models

// Character represents a character. Theme membership comes from the
// theme_characters join declared on Theme.
type Character struct {
	Record
	Slug      string `gorm:"uniqueIndex;size:64;not null"`
	Name      string `gorm:"size:255"`
	Bio       string
	Themes    []Theme    `gorm:"many2many:theme_characters"`
	Locations []Location `gorm:"many2many:character_locations"`
	Reactions []Reaction `gorm:"many2many:character_reactions"`
}

// TableName overrides the table name for Character
func (Character) TableName() string {
	return "characters"
}

func (ch *Character) Projection() Projection {
	return project("character", map[string]interface{}{
		"id":   ch.ID,
		"v":    ch.Version,
		"c":    ch.CreatedAt,
		"m":    ch.UpdatedAt,
		"slug": ch.Slug,
		"name": ch.Name,
		"bio":  ch.Bio,
	})
}
