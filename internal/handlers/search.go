package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/thruflo/awraamba/internal/config"
	"github.com/thruflo/awraamba/internal/middleware"
	"github.com/thruflo/awraamba/internal/services"
	"github.com/thruflo/awraamba/internal/utils"
	"gorm.io/gorm"
)

// SearchHandler handles the keyword search route
type SearchHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

// Search handles GET /api/search
// @Summary Search
// @Description Keyword search across searchable entities
// @Tags Search
// @Produce json
// @Param q query string true "Keywords"
// @Param type query string false "Restrict to one entity type (users, themes, characters, locations, reactions)"
// @Success 200 {object} map[string][]map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /search [get]
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	keywords := strings.TrimSpace(c.Query("q"))
	if keywords == "" {
		return utils.ValidationErrorResponse(c, map[string]string{
			"q": "Please enter some keywords.",
		})
	}
	entityType := strings.TrimSpace(c.Query("type"))

	db := middleware.Tx(c, h.DB)
	results, err := services.Search(db, h.Cfg, keywords, entityType)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.NotFoundResponse(c, "Unknown entity type '"+entityType+"'")
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "search")
	}

	return c.Status(fiber.StatusOK).JSON(results)
}
