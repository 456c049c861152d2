package models

// User represents a registered account. The password column only ever holds
// a salted hash, never a raw password.
type User struct {
	Record
	Username         string `gorm:"uniqueIndex;size:32;not null"`
	Email            string `gorm:"uniqueIndex;size:255;not null"`
	Password         string `gorm:"size:255;not null"`
	IsAdmin          bool   `gorm:"not null;default:false"`
	IsConfirmed      bool   `gorm:"not null;default:false"`
	ConfirmationHash string `gorm:"uniqueIndex;size:32"`
	Name             string `gorm:"size:255"`
	Bio              string
	Reactions        []Reaction
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}

// Projection exposes only the user's public profile columns. Credentials and
// confirmation state stay private.
func (u *User) Projection() Projection {
	return project("user", map[string]interface{}{
		"username": u.Username,
		"name":     u.Name,
		"bio":      u.Bio,
	})
}
