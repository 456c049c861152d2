package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/thruflo/awraamba/internal/types"
	"gorm.io/gorm"
)

const txLocalsKey = "db_tx"

// Transaction wraps each request in a unit of work. The transaction is stored
// in the request locals for handlers to use, committed when the handler
// succeeds and rolled back when it errors or responds with a 4xx/5xx status.
// The transaction is always discarded at the end of the request, so entity
// identity never leaks across requests.
func Transaction(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tx := db.Begin()
		if tx.Error != nil {
			return tx.Error
		}

		c.Locals(txLocalsKey, tx)
		err := c.Next()
		c.Locals(txLocalsKey, nil)

		if err != nil || c.Response().StatusCode() >= fiber.StatusBadRequest {
			tx.Rollback()
			return err
		}

		if cerr := tx.Commit().Error; cerr != nil {
			logrus.WithError(cerr).Error("request transaction commit failed")
			tx.Rollback()
			return &types.CustomError{
				Code:    fiber.StatusInternalServerError,
				Message: "Could not save changes",
				Type:    "data.commit",
			}
		}
		return nil
	}
}

// Tx returns the request scoped transaction, falling back to the base handle
// when the request is not running inside Transaction (tests, for example).
func Tx(c *fiber.Ctx, fallback *gorm.DB) *gorm.DB {
	if tx, ok := c.Locals(txLocalsKey).(*gorm.DB); ok && tx != nil {
		return tx
	}
	return fallback
}
