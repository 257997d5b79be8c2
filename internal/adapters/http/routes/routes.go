package routes

import (
	"time"

	"hostelcare/internal/adapters/http/handlers"
	"hostelcare/internal/adapters/http/middleware"
	"hostelcare/internal/adapters/persistence/repositories"
	"hostelcare/internal/config"
	"hostelcare/internal/core/services"
	"hostelcare/internal/pkg/jwt"
	"hostelcare/internal/pkg/upload"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config, uploads *upload.Store) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	complaintRepo := repositories.NewComplaintRepository(db)
	feedbackRepo := repositories.NewFeedbackRepository(db)

	// Initialize services
	tokens := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Expiry())
	authService := services.NewAuthService(userRepo, tokens)
	complaintService := services.NewComplaintService(complaintRepo, userRepo)
	feedbackService := services.NewFeedbackService(feedbackRepo, complaintService)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db, cfg.AppMode)
	authHandler := handlers.NewAuthHandler(authService)
	complaintHandler := handlers.NewComplaintHandler(complaintService, uploads)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackService)

	app.Get("/", healthHandler.Root)

	// Uploaded complaint images
	app.Static("/uploads", uploads.Dir(), fiber.Static{
		MaxAge: int((24 * time.Hour).Seconds()),
	})

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group("/api")
	Register(api, authService, authHandler, complaintHandler, feedbackHandler, healthHandler)
}

// Register mounts the API endpoints on router. verifier guards every
// authenticated group.
func Register(
	router fiber.Router,
	verifier middleware.TokenVerifier,
	authHandler *handlers.AuthHandler,
	complaintHandler *handlers.ComplaintHandler,
	feedbackHandler *handlers.FeedbackHandler,
	healthHandler *handlers.HealthHandler,
) {
	router.Get("/health", healthHandler.HealthCheck)

	authRoutes := router.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, verifier)

	complaintRoutes := router.Group("/complaints")
	complaintRoutes.Use(middleware.AuthMiddleware(verifier), middleware.NoCacheHeaders())
	setupComplaintRoutes(complaintRoutes, complaintHandler)

	feedbackRoutes := router.Group("/feedback")
	feedbackRoutes.Use(middleware.AuthMiddleware(verifier), middleware.NoCacheHeaders())
	setupFeedbackRoutes(feedbackRoutes, feedbackHandler)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, verifier middleware.TokenVerifier) {
	// Public routes
	router.Post("/signup", middleware.AuthRateLimiter(), handler.Signup)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(verifier), middleware.NoCacheHeaders(), handler.Me)
}

// setupComplaintRoutes configures complaint routes
func setupComplaintRoutes(router fiber.Router, handler *handlers.ComplaintHandler) {
	// Static segments before /:id
	router.Get("/stats/dashboard", handler.DashboardStats)

	router.Post("/", handler.Create)
	router.Get("/", handler.List)
	router.Get("/:id", handler.GetByID)
	router.Delete("/:id", handler.Delete)

	// Warden actions; the service enforces the role
	router.Put("/:id/status", handler.UpdateStatus)
	router.Put("/:id/assign", handler.Assign)
}

// setupFeedbackRoutes configures feedback routes
func setupFeedbackRoutes(router fiber.Router, handler *handlers.FeedbackHandler) {
	router.Get("/stats/average", handler.AverageStats)

	router.Post("/", handler.Submit)
	router.Get("/:complaintId", handler.ListForComplaint)
}
