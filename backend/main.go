package main

import (
	"log"

	"lingualearn/backend/config"
	"lingualearn/backend/middleware"
	"lingualearn/backend/routes"
	"lingualearn/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize database
	db, err := utils.InitDB(cfg)
	if err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}

	// Initialize logger
	logger := utils.InitLogger()

	// Create Fiber app
	app := fiber.New()

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.LoggingMiddleware(logger))

	// Setup routes
	svcs := routes.SetupRoutes(app, db, cfg, logger)

	// UI-refresh signal: the mobile client re-reads stats after this fires.
	svcs.Recorder.SetObserver(func(userID uint) {
		logger.Printf("progress updated user=%d", userID)
	})
	svcs.Flashcards.SetObserver(func(userID uint) {
		logger.Printf("flashcard progress updated user=%d", userID)
	})

	// Start server
	log.Fatal(app.Listen(":" + cfg.ServerPort))
}
