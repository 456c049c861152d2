// accounts.go
//
// Signup, confirmation, login and logout.

package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/thruflo/awraamba/internal/auth"
	"github.com/thruflo/awraamba/internal/config"
	"github.com/thruflo/awraamba/internal/mail"
	"github.com/thruflo/awraamba/internal/middleware"
	"github.com/thruflo/awraamba/internal/services"
	"github.com/thruflo/awraamba/internal/utils"
	"github.com/thruflo/awraamba/internal/validate"
	"gorm.io/gorm"
)

// AccountsHandler handles the account routes
type AccountsHandler struct {
	DB     *gorm.DB
	Auth   auth.Strategy
	Mailer mail.Mailer
	Cfg    *config.Config
}

// Signup handles POST /api/signup
// @Summary Sign up
// @Description Create an unconfirmed account and send a confirmation email
// @Tags Accounts
// @Accept json
// @Produce json
// @Param body body validate.SignupForm true "Signup fields"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /signup [post]
func (h *AccountsHandler) Signup(c *fiber.Ctx) error {
	var form validate.SignupForm
	if err := c.BodyParser(&form); err != nil {
		return utils.ValidationErrorResponse(c, map[string]string{
			"body": "Invalid input",
		})
	}

	db := middleware.Tx(c, h.DB)
	data, errs := validate.Signup(db, form)
	if errs.Any() {
		return utils.ValidationErrorResponse(c, errs)
	}

	user, err := services.CreateUser(db, data.Username, data.Email, data.PasswordHash)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "signup")
	}

	// Mail failures are surfaced as a value and logged; the signup still
	// stands and the confirmation mail can be re-sent out of band.
	confirmURL := fmt.Sprintf("%s/confirm/%s", h.Cfg.BaseURL, user.ConfirmationHash)
	err = h.Mailer.Send(c.Context(), mail.Message{
		To:      user.Email,
		Subject: "Confirm your awraamba account",
		TextBody: fmt.Sprintf(
			"Hello %s,\n\nPlease confirm your account by visiting:\n\n  %s\n",
			user.Username, confirmURL),
	})
	if err != nil {
		logrus.WithError(err).WithField("user", user.Username).
			Warn("could not send confirmation mail")
	}

	return c.Status(fiber.StatusCreated).JSON(user.Projection())
}

// Confirm handles GET /confirm/:hash
// @Summary Confirm an account
// @Description Mark the account holding the confirmation hash as confirmed
// @Tags Accounts
// @Produce json
// @Param hash path string true "Confirmation hash"
// @Success 302
// @Failure 400 {object} map[string]string
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /confirm/{hash} [get]
func (h *AccountsHandler) Confirm(c *fiber.Ctx) error {
	hash, err := validate.ConfirmationHash(c.Params("hash"))
	if err != nil {
		var inv *validate.Invalid
		if errors.As(err, &inv) {
			return utils.ValidationErrorResponse(c, map[string]string{
				"confirmation_hash": inv.Message,
			})
		}
		return err
	}

	db := middleware.Tx(c, h.DB)
	if _, err := services.ConfirmUser(db, hash); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.NotFoundResponse(c, "Unknown confirmation hash")
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "confirm")
	}

	return c.Redirect(auth.LoginPath, fiber.StatusFound)
}

// Login handles POST /api/login
// @Summary Log in
// @Description Authenticate and establish a session, then redirect to the validated next path
// @Tags Accounts
// @Accept json
// @Produce json
// @Param body body validate.LoginForm true "Login fields"
// @Success 302
// @Failure 400 {object} map[string]string
// @Router /login [post]
func (h *AccountsHandler) Login(c *fiber.Ctx) error {
	var form validate.LoginForm
	if err := c.BodyParser(&form); err != nil {
		return utils.ValidationErrorResponse(c, map[string]string{
			"body": "Invalid input",
		})
	}

	data, errs := validate.Login(form)
	if errs.Any() {
		return utils.ValidationErrorResponse(c, errs)
	}

	db := middleware.Tx(c, h.DB)
	user, err := services.Authenticate(db, data.Username, data.Password)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "login")
	}
	if user == nil {
		return utils.ValidationErrorResponse(c, map[string]string{
			"username": "Invalid username or password.",
		})
	}

	if err := h.Auth.Login(c, user); err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "login")
	}

	next := data.Next
	if next == "" {
		next = "/"
	}
	return c.Redirect(next, fiber.StatusFound)
}

// Logout handles POST /api/logout
// @Summary Log out
// @Description Destroy the current session
// @Tags Accounts
// @Success 302
// @Router /logout [post]
func (h *AccountsHandler) Logout(c *fiber.Ctx) error {
	if err := h.Auth.Logout(c); err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "logout")
	}
	return c.Redirect("/", fiber.StatusFound)
}
