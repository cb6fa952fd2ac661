package routes

import (
	"log"
	"time"

	"lingualearn/backend/config"
	"lingualearn/backend/controllers"
	"lingualearn/backend/middleware"
	"lingualearn/backend/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AppServices exposes the long-lived services behind the routes so the host
// can hang observers and push-notification hooks on them after setup.
type AppServices struct {
	Recorder   *services.ActivityRecorder
	Flashcards *services.FlashcardService
	Sessions   *services.SessionManager
}

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, logger *log.Logger) *AppServices {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Printf("unknown timezone %q, falling back to UTC", cfg.Timezone)
		loc = time.UTC
	}
	clock := services.NewClock(loc)

	guard := services.NewIdempotencyGuard(clock)
	recorder := services.NewActivityRecorder(db, clock, guard, logger)
	flashcards := services.NewFlashcardService(db, clock, logger)
	sessions := services.NewSessionManager(clock)

	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)

	// User routes
	userController := controllers.NewUserController(db, cfg)
	app.Get("/api/user/profile", authMiddleware, userController.GetProfile)
	app.Put("/api/user/profile", authMiddleware, userController.UpdateProfile)

	// Activity routes
	activityController := controllers.NewActivityController(db, cfg, recorder)
	app.Post("/api/activities", authMiddleware, activityController.RecordActivity)
	app.Get("/api/activities", authMiddleware, activityController.ListActivities)

	// Progress routes
	progressController := controllers.NewProgressController(db, cfg, clock)
	app.Get("/api/stats", authMiddleware, progressController.GetStats)
	app.Get("/api/goals/today", authMiddleware, progressController.GetTodayGoals)
	app.Get("/api/streaks", authMiddleware, progressController.GetStreaks)
	app.Get("/api/progress/overview", authMiddleware, progressController.GetOverview)

	// Flashcard routes
	flashcardController := controllers.NewFlashcardController(db, cfg, flashcards)
	app.Post("/api/flashcards/:id/review", authMiddleware, flashcardController.ReviewFlashcard)
	app.Get("/api/flashcards/due", authMiddleware, flashcardController.GetDueFlashcards)

	// Session clock routes
	sessionController := controllers.NewSessionController(cfg, sessions)
	session := app.Group("/api/session", authMiddleware)
	session.Get("/", sessionController.GetSession)
	session.Post("/start", sessionController.StartSession)
	session.Post("/pause", sessionController.PauseSession)
	session.Post("/resume", sessionController.ResumeSession)
	session.Post("/stop", sessionController.StopSession)

	return &AppServices{
		Recorder:   recorder,
		Flashcards: flashcards,
		Sessions:   sessions,
	}
}
