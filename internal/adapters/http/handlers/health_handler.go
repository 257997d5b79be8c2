package handlers

import (
	"time"

	"hostelcare/internal/config"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	db      *gorm.DB
	appMode string
	now     func() time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *gorm.DB, appMode string) *HealthHandler {
	return &HealthHandler{db: db, appMode: appMode, now: time.Now}
}

// Root handles root endpoint
// @Summary Root endpoint
// @Description Returns API status
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "running",
		"message": "🚀 Hostel Complaint System API is running",
		"mode":    h.appMode,
		"docs":    "/swagger/index.html",
	})
}

// HealthCheck handles health check
// @Summary Health check
// @Description Check API and database health
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	dbStatus := "healthy"
	if err := config.HealthCheck(h.db); err != nil {
		dbStatus = "unhealthy"
	}

	return c.JSON(fiber.Map{
		"status":    "OK",
		"message":   "Hostel Complaint System API is running",
		"timestamp": h.now().UTC().Format(time.RFC3339),
		"database":  dbStatus,
	})
}
