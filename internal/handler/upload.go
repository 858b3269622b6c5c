package handler

import (
	"study-game/internal/content"
	"study-game/internal/domain"
	"study-game/internal/dto"

	"github.com/gofiber/fiber/v2"
)

// UploadHandler accepts CSV pack uploads
type UploadHandler struct {
	packs *content.PackService
}

func NewUploadHandler(packs *content.PackService) *UploadHandler {
	return &UploadHandler{
		packs: packs,
	}
}

// Upload godoc
// @Summary Upload a question pack
// @Description Stores the request body as the CSV pack for the given slug
// @Tags packs
// @Accept text/csv
// @Produce json
// @Param slug query string true "Pack slug"
// @Success 200 {object} dto.UploadResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /upload [post]
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	slug, err := content.ValidateSlug(c.Query("slug"))
	if err != nil {
		return err
	}

	body := c.Body()
	if len(body) == 0 {
		return domain.NewInvalidInputError("request body is empty")
	}

	pack, err := h.packs.Upload(c.Context(), slug, body)
	if err != nil {
		return err
	}
	return c.JSON(dto.UploadResponse{Slug: slug, Rows: len(pack.Rows)})
}
