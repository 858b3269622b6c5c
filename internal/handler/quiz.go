package handler

import (
	"study-game/internal/domain"
	"study-game/internal/dto"
	"study-game/internal/service"

	"github.com/gofiber/fiber/v2"
)

// userIDHeader carries the caller's identity, set by the site proxy.
const userIDHeader = "X-User-Id"

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	service service.QuizService
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService) *QuizHandler {
	return &QuizHandler{
		service: service,
	}
}

// ListPacks godoc
// @Summary List question packs
// @Description Returns available question packs in display order
// @Tags packs
// @Produce json
// @Success 200 {object} dto.PackListResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /packs [get]
func (h *QuizHandler) ListPacks(c *fiber.Ctx) error {
	resp, err := h.service.ListPacks(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetQuiz godoc
// @Summary Get a quiz session
// @Description Loads a pack, samples rows and returns normalized questions. An unknown slug yields an empty list.
// @Tags quiz
// @Produce json
// @Param slug query string true "Pack slug"
// @Param n query int false "Exact question count"
// @Param nmin query int false "Minimum question count"
// @Param nmax query int false "Maximum question count"
// @Param seed query string false "Shuffle seed for a reproducible session"
// @Param debug query bool false "Include sampling details"
// @Success 200 {object} dto.QuizResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /quiz [get]
func (h *QuizHandler) GetQuiz(c *fiber.Ctx) error {
	resp, err := h.service.GetQuiz(c.Context(), service.QuizParams{
		Slug:  c.Query("slug"),
		Seed:  c.Query("seed"),
		N:     c.QueryInt("n"),
		Min:   c.QueryInt("nmin"),
		Max:   c.QueryInt("nmax"),
		Debug: c.QueryBool("debug"),
	})
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Grade godoc
// @Summary Grade an answer sheet
// @Description Re-derives the session from slug and seed, scores the submitted answers and stores the attempt
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.GradeRequest true "Answer sheet"
// @Success 200 {object} dto.GradeResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quiz/grade [post]
func (h *QuizHandler) Grade(c *fiber.Ctx) error {
	var req dto.GradeRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	resp, err := h.service.Grade(c.Context(), c.Get(userIDHeader), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetAttempt godoc
// @Summary Get a stored attempt
// @Description Returns a graded attempt by its ID
// @Tags quiz
// @Produce json
// @Param id path string true "Attempt ID"
// @Success 200 {object} dto.GradeResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /attempts/{id} [get]
func (h *QuizHandler) GetAttempt(c *fiber.Ctx) error {
	attempt, err := h.service.GetAttempt(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.GradeResponse{
		AttemptID: attempt.ID,
		Score:     attempt.Score,
		Total:     attempt.Total,
		Results:   dto.AttemptFromResults(attempt.Results),
	})
}
