// users.go
//
// Account lifecycle: creation with a confirmation token, confirmation,
// authentication.

package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/thruflo/awraamba/internal/models"
	"github.com/thruflo/awraamba/internal/validate"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a referenced entity does not exist.
var ErrNotFound = errors.New("not found")

// NewConfirmationHash returns a random 32 character lowercase hex token.
func NewConfirmationHash() (string, error) {
	raw := make([]byte, 16)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate confirmation hash: %w", err)
	}
	return hex.EncodeToString(raw), nil
}

// CreateUser persists a new unconfirmed user. The password must already be a
// salted hash (see validate.EncryptedPassword).
func CreateUser(db *gorm.DB, username, email, passwordHash string) (*models.User, error) {
	hash, err := NewConfirmationHash()
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Username:         username,
		Email:            email,
		Password:         passwordHash,
		ConfirmationHash: hash,
	}
	if err := db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// ConfirmUser marks the user holding the confirmation hash as confirmed.
func ConfirmUser(db *gorm.DB, confirmationHash string) (*models.User, error) {
	var user models.User
	err := db.Where("confirmation_hash = ?", confirmationHash).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !user.IsConfirmed {
		user.IsConfirmed = true
		if err := db.Model(&user).Update("is_confirmed", true).Error; err != nil {
			return nil, err
		}
	}
	return &user, nil
}

// Authenticate resolves a username and raw password to a confirmed user.
// Returns nil without error when the credentials do not match; callers treat
// that as a failed login, not a server fault.
func Authenticate(db *gorm.DB, username, rawPassword string) (*models.User, error) {
	var user models.User
	err := db.Where("username = ? AND is_confirmed = ?", username, true).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if !validate.VerifyPassword(rawPassword, user.Password) {
		return nil, nil
	}
	return &user, nil
}

// GetUserByUsername loads a user by normalized username.
func GetUserByUsername(db *gorm.DB, username string) (*models.User, error) {
	var user models.User
	err := db.Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}
