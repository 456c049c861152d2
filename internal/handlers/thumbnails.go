package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/thruflo/awraamba/internal/thumbnail"
	"github.com/thruflo/awraamba/internal/utils"
	"github.com/thruflo/awraamba/internal/validate"
)

// ThumbnailsHandler handles thumbnail uploads
type ThumbnailsHandler struct {
	Store *thumbnail.Store
}

// CreateThumbnail handles POST /api/thumbnails
// @Summary Store a thumbnail
// @Description Accept an uploaded image file or a remote image url, store its thumbnail and return the content digest
// @Tags Thumbnails
// @Accept mpfd
// @Produce json
// @Param image formData file false "Image file"
// @Param url formData string false "Remote image URL"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /thumbnails [post]
func (h *ThumbnailsHandler) CreateThumbnail(c *fiber.Ctx) error {
	upload, _ := c.FormFile("image")
	rawURL := c.FormValue("url")

	if upload == nil && rawURL == "" {
		return utils.ValidationErrorResponse(c, map[string]string{
			"image": "Please upload an image or provide a url.",
		})
	}

	digest, err := validate.Thumbnail(h.Store, upload, rawURL)
	if err != nil {
		return utils.ValidationErrorResponse(c, map[string]string{
			"image": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"digest": digest,
		"url":    "/thumbnails/" + digest + ".png",
	})
}
