package middleware

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"study-game/internal/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"invalid input", domain.NewInvalidInputError("bad"), 400, "INVALID_INPUT"},
		{"invalid slug", domain.NewInvalidSlugError("../x"), 400, "INVALID_SLUG"},
		{"pack not found", domain.NewPackNotFoundError("x"), 404, "PACK_NOT_FOUND"},
		{"attempt not found", domain.NewAttemptNotFoundError("x"), 404, "ATTEMPT_NOT_FOUND"},
		{"upgrade required", domain.NewUpgradeRequiredError("pay up"), 402, "UPGRADE_REQUIRED"},
		{"mailer error", domain.NewMailerError(nil), 503, "MAILER_ERROR"},
		{"internal", domain.NewInternalError("boom", nil), 500, "INTERNAL_ERROR"},
		{"fiber error", fiber.ErrMethodNotAllowed, 405, "HTTP_ERROR"},
		{"unknown error", assert.AnError, 500, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
			app.Get("/", func(c *fiber.Ctx) error { return tt.err })

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			var body ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.wantCode, body.Code)
			assert.Equal(t, tt.wantStatus, body.Status)
		})
	}
}
