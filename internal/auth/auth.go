// auth.go
//
// Pluggable authentication. A Strategy resolves the request's identity to a
// persisted User once per request; the cookie strategy is the production
// implementation.

package auth

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/thruflo/awraamba/internal/models"
	"gorm.io/gorm"
)

const (
	// SessionCookieName is the cookie carrying the session id.
	SessionCookieName = "awraamba_session"

	sessionUserKey = "user_id"
	localsUserKey  = "auth_current_user"
)

// Strategy resolves and manages the authenticated user for a request.
type Strategy interface {
	// CurrentUser returns the authenticated user, or nil when the request is
	// anonymous. The resolved user is cached for the rest of the request.
	CurrentUser(c *fiber.Ctx) (*models.User, error)
	// Login establishes a session for the user.
	Login(c *fiber.Ctx, user *models.User) error
	// Logout destroys the current session.
	Logout(c *fiber.Ctx) error
}

// CookieStrategy resolves a user_id held in a cookie-backed session.
type CookieStrategy struct {
	DB    *gorm.DB
	Store *session.Store
}

// NewCookieStrategy returns the production cookie strategy.
func NewCookieStrategy(db *gorm.DB) *CookieStrategy {
	store := session.New(session.Config{
		KeyLookup:      "cookie:" + SessionCookieName,
		Expiration:     30 * 24 * time.Hour,
		CookieHTTPOnly: true,
		CookieSameSite: fiber.CookieSameSiteLaxMode,
	})
	return &CookieStrategy{DB: db, Store: store}
}

// CurrentUser implements Strategy.
func (s *CookieStrategy) CurrentUser(c *fiber.Ctx) (*models.User, error) {
	if user, ok := c.Locals(localsUserKey).(*models.User); ok {
		return user, nil
	}

	sess, err := s.Store.Get(c)
	if err != nil {
		return nil, err
	}

	userID, ok := sess.Get(sessionUserKey).(uint64)
	if !ok || userID == 0 {
		return nil, nil
	}

	user, err := models.GetByID[models.User](s.DB, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Stale cookie referencing a purged user.
			return nil, nil
		}
		return nil, err
	}

	c.Locals(localsUserKey, user)
	return user, nil
}

// Login implements Strategy.
func (s *CookieStrategy) Login(c *fiber.Ctx, user *models.User) error {
	sess, err := s.Store.Get(c)
	if err != nil {
		return err
	}
	if err := sess.Regenerate(); err != nil {
		return err
	}
	sess.Set(sessionUserKey, user.ID)
	if err := sess.Save(); err != nil {
		return err
	}
	c.Locals(localsUserKey, user)
	return nil
}

// Logout implements Strategy.
func (s *CookieStrategy) Logout(c *fiber.Ctx) error {
	sess, err := s.Store.Get(c)
	if err != nil {
		return err
	}
	c.Locals(localsUserKey, nil)
	return sess.Destroy()
}
