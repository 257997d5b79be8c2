package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"hostelcare/internal/adapters/http/middleware"
	"hostelcare/internal/adapters/http/routes"
	"hostelcare/internal/adapters/persistence/models"
	"hostelcare/internal/adapters/persistence/repositories"
	"hostelcare/internal/config"
	"hostelcare/internal/pkg/upload"

	"github.com/gofiber/fiber/v2"

	_ "hostelcare/docs" // Swagger docs
)

// @title Hostel Complaint System API
// @version 1.0
// @description Students file maintenance complaints, wardens triage, assign and resolve them, students leave feedback.

// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// bodyLimitSlack leaves room for the multipart envelope and text fields
const bodyLimitSlack = 1 << 20

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer func() {
		if err := config.CloseDatabase(db); err != nil {
			log.Printf("⚠️ Error closing database: %v", err)
		}
	}()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed the bootstrap warden account (dev only)
	if cfg.IsDev() {
		seeder := config.NewSeeder(repositories.NewUserRepository(db), cfg.Seed)
		if err := seeder.Run(context.Background()); err != nil {
			log.Printf("⚠️ Warning: Failed to seed data: %v", err)
		}
	}

	uploads, err := upload.NewStore(cfg.Upload.Dir, cfg.Upload.MaxBytes())
	if err != nil {
		log.Fatalf("❌ Failed to prepare upload directory: %v", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Hostel Complaint System API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
		BodyLimit:    int(uploads.MaxBytes()) + bodyLimitSlack,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes
	routes.Setup(app, db, cfg, uploads)

	// Anything not matched above
	app.Use(middleware.NotFound)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
