package controllers

import (
	"lingualearn/backend/config"
	"lingualearn/backend/models"
	"lingualearn/backend/services"
	"lingualearn/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ProgressController struct {
	DB    *gorm.DB
	Cfg   *config.Config
	Clock services.Clock
}

func NewProgressController(db *gorm.DB, cfg *config.Config, clock services.Clock) *ProgressController {
	return &ProgressController{DB: db, Cfg: cfg, Clock: clock}
}

// GetStats godoc
// @Summary Get learning stats
// @Description Returns the cumulative per-user counters
// @Tags progress
// @Accept json
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /stats [get]
func (pc *ProgressController) GetStats(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	// Строка появляется лениво, до первой активности отдаем нули
	stats := models.LearningStats{UserID: userID, Level: "Beginner"}
	pc.DB.Where("user_id = ?", userID).First(&stats)

	return utils.Success(c, fiber.StatusOK, stats)
}

// GetTodayGoals godoc
// @Summary Get today's goals
// @Description Returns the daily goal rows for the current calendar day
// @Tags progress
// @Accept json
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /goals/today [get]
func (pc *ProgressController) GetTodayGoals(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var goals []models.DailyGoal
	if err := pc.DB.Where("user_id = ? AND day = ?", userID, pc.Clock.Today()).
		Find(&goals).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return utils.Success(c, fiber.StatusOK, goals)
}

// GetStreaks godoc
// @Summary Get streaks
// @Description Returns the user's streak rows for all streak types
// @Tags progress
// @Accept json
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /streaks [get]
func (pc *ProgressController) GetStreaks(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var streaks []models.Streak
	if err := pc.DB.Where("user_id = ?", userID).Find(&streaks).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return utils.Success(c, fiber.StatusOK, streaks)
}

// GetOverview godoc
// @Summary Get progress overview
// @Description Returns stats, streaks and today's goals in one payload
// @Tags progress
// @Accept json
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /progress/overview [get]
func (pc *ProgressController) GetOverview(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	stats := models.LearningStats{UserID: userID, Level: "Beginner"}
	pc.DB.Where("user_id = ?", userID).First(&stats)

	var streaks []models.Streak
	pc.DB.Where("user_id = ?", userID).Find(&streaks)

	var goals []models.DailyGoal
	pc.DB.Where("user_id = ? AND day = ?", userID, pc.Clock.Today()).Find(&goals)

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"stats":   stats,
		"streaks": streaks,
		"goals":   goals,
	})
}
