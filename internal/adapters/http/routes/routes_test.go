package routes

import (
	"net/http/httptest"
	"testing"

	"hostelcare/internal/adapters/http/handlers"
	"hostelcare/internal/adapters/http/middleware"
	"hostelcare/internal/core/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type denyAll struct{}

func (denyAll) Verify(string) (domain.Identity, error) {
	return domain.Identity{}, domain.ErrInvalidToken
}

func TestRegister_GuardsAndPublicRoutes(t *testing.T) {
	app := fiber.New()
	Register(app.Group("/api"), denyAll{},
		handlers.NewAuthHandler(nil),
		handlers.NewComplaintHandler(nil, nil),
		handlers.NewFeedbackHandler(nil),
		handlers.NewHealthHandler(nil, "dev"),
	)
	app.Use(middleware.NotFound)

	tests := []struct {
		method, path string
		status       int
	}{
		{"GET", "/api/health", fiber.StatusOK},
		{"GET", "/api/auth/me", fiber.StatusUnauthorized},
		{"GET", "/api/complaints", fiber.StatusUnauthorized},
		{"POST", "/api/complaints", fiber.StatusUnauthorized},
		{"GET", "/api/complaints/stats/dashboard", fiber.StatusUnauthorized},
		{"PUT", "/api/complaints/1/status", fiber.StatusUnauthorized},
		{"PUT", "/api/complaints/1/assign", fiber.StatusUnauthorized},
		{"DELETE", "/api/complaints/1", fiber.StatusUnauthorized},
		{"POST", "/api/feedback", fiber.StatusUnauthorized},
		{"GET", "/api/feedback/1", fiber.StatusUnauthorized},
		{"GET", "/api/feedback/stats/average", fiber.StatusUnauthorized},
		{"GET", "/api/nope", fiber.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(tt.method, tt.path, nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}
