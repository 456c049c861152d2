package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/thruflo/awraamba/data"
	"github.com/thruflo/awraamba/internal/config"
	"github.com/thruflo/awraamba/internal/i18n"
	"github.com/thruflo/awraamba/internal/services"
	"gorm.io/gorm"
)

// AppHandler serves the app shell, client strings and health endpoint.
type AppHandler struct {
	DB      *gorm.DB
	Cfg     *config.Config
	Catalog *i18n.Catalog
}

// Shell handles GET /
// @Summary App shell
// @Description Serve the client application shell
// @Tags App
// @Produce html
// @Success 200 {string} string
// @Router / [get]
func (h *AppHandler) Shell(c *fiber.Ctx) error {
	c.Type("html", "utf-8")
	return c.Send(data.AppShell)
}

// ClientStrings handles GET /client_strings.json
// @Summary Client message strings
// @Description Serve the message string catalog best matching Accept-Language
// @Tags App
// @Produce json
// @Success 200 {object} map[string]string
// @Router /client_strings.json [get]
func (h *AppHandler) ClientStrings(c *fiber.Ctx) error {
	lang := h.Catalog.Match(c.Get(fiber.HeaderAcceptLanguage))
	c.Set(fiber.HeaderContentLanguage, lang)
	return c.Status(fiber.StatusOK).JSON(h.Catalog.Strings(lang))
}

// Health handles GET /api/health
// @Summary Health check
// @Description Report database, thumbnail storage and mail provider health
// @Tags App
// @Produce json
// @Success 200 {object} services.HealthCheckResult
// @Failure 503 {object} services.HealthCheckResult
// @Router /health [get]
func (h *AppHandler) Health(c *fiber.Ctx) error {
	result := services.HealthCheck(h.Cfg, h.DB)
	status := fiber.StatusOK
	if result.Status != "healthy" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(result)
}
