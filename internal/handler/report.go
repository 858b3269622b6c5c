package handler

import (
	"study-game/internal/domain"
	"study-game/internal/dto"
	"study-game/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ReportHandler handles parent report requests
type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(service service.ReportService) *ReportHandler {
	return &ReportHandler{
		service: service,
	}
}

// Send godoc
// @Summary Send a practice report
// @Description Composes a report email for a stored attempt and hands it to the mailer. Gated on entitlement when paid-only mode is on.
// @Tags report
// @Accept json
// @Produce json
// @Param request body dto.ReportRequest true "Report request"
// @Success 200 {object} dto.ReportResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 402 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /report/send [post]
func (h *ReportHandler) Send(c *fiber.Ctx) error {
	var req dto.ReportRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	resp, err := h.service.Send(c.Context(), c.Get(userIDHeader), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
