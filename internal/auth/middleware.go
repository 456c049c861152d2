package auth

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/thruflo/awraamba/internal/types"
)

// LoginPath is where unauthenticated callers are redirected, carrying the
// original path in the next parameter.
const LoginPath = "/login"

func loginRedirect(c *fiber.Ctx) error {
	target := LoginPath + "?next=" + url.QueryEscape(c.OriginalURL())
	return c.Redirect(target, fiber.StatusFound)
}

// RequireLogin redirects unauthenticated callers to the login URL.
func RequireLogin(s Strategy) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := s.CurrentUser(c)
		if err != nil {
			return err
		}
		if user == nil {
			return loginRedirect(c)
		}
		return c.Next()
	}
}

// RequireAdmin requires an authenticated admin. Unauthenticated callers get
// the login redirect, authenticated non-admins a 403.
func RequireAdmin(s Strategy) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := s.CurrentUser(c)
		if err != nil {
			return err
		}
		if user == nil {
			return loginRedirect(c)
		}
		if !user.IsAdmin {
			return &types.CustomError{
				Code:    fiber.StatusForbidden,
				Message: "Admin access required",
				Type:    "authorization.admin",
			}
		}
		return c.Next()
	}
}

// RequireOwnerOrAdmin requires the authenticated user to be an admin or the
// owner of the referenced target. The owner func resolves the target's owning
// user id; when the target does not exist the check passes and the handler is
// left to 404. The check is advisory, not a data integrity guard.
func RequireOwnerOrAdmin(s Strategy, owner func(c *fiber.Ctx) (uint64, bool)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := s.CurrentUser(c)
		if err != nil {
			return err
		}
		if user == nil {
			return loginRedirect(c)
		}
		if user.IsAdmin {
			return c.Next()
		}
		ownerID, found := owner(c)
		if found && ownerID != user.ID {
			return &types.CustomError{
				Code:    fiber.StatusForbidden,
				Message: "Not yours to touch",
				Type:    "authorization.owner",
			}
		}
		return c.Next()
	}
}
