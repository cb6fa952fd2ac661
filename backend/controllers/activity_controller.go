package controllers

import (
	"errors"
	"lingualearn/backend/config"
	"lingualearn/backend/models"
	"lingualearn/backend/services"
	"lingualearn/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ActivityController struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Recorder *services.ActivityRecorder
}

func NewActivityController(db *gorm.DB, cfg *config.Config, recorder *services.ActivityRecorder) *ActivityController {
	return &ActivityController{DB: db, Cfg: cfg, Recorder: recorder}
}

type RecordActivityRequest struct {
	Kind            string  `json:"kind"`
	Name            string  `json:"name"`
	DurationSeconds int     `json:"duration_seconds"`
	Score           int     `json:"score"`
	MaxScore        int     `json:"max_score"`
	Accuracy        float64 `json:"accuracy"`
	RequestID       string  `json:"request_id"`
}

// RecordActivity godoc
// @Summary Record a completed activity
// @Description Persists one completion event and updates stats, daily goals and streaks. Duplicate submissions within the dedup window succeed without effect.
// @Tags activities
// @Accept json
// @Produce json
// @Param activity body RecordActivityRequest true "Completed activity"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /activities [post]
func (ac *ActivityController) RecordActivity(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, ac.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input RecordActivityRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if !models.KnownKind(input.Kind) {
		return utils.BadRequest(c, "Unknown activity kind")
	}
	if input.DurationSeconds < 0 {
		return utils.BadRequest(c, "Negative duration")
	}
	if input.RequestID != "" {
		if _, err := uuid.Parse(input.RequestID); err != nil {
			return utils.BadRequest(c, "Invalid request id")
		}
	}

	err = ac.Recorder.Record(userID, services.ActivityInput{
		Kind:            input.Kind,
		Name:            input.Name,
		DurationSeconds: input.DurationSeconds,
		Score:           input.Score,
		MaxScore:        input.MaxScore,
		Accuracy:        input.Accuracy,
		RequestID:       input.RequestID,
	})
	if err != nil {
		if errors.Is(err, services.ErrAuthenticationRequired) {
			return utils.Unauthorized(c, "Unauthorized")
		}
		return utils.InternalServerError(c, "Could not record activity")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{"recorded": true})
}

// ListActivities godoc
// @Summary List recent activities
// @Description Returns the user's recent completion events, newest first
// @Tags activities
// @Accept json
// @Produce json
// @Param limit query int false "Max rows" default(20)
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /activities [get]
func (ac *ActivityController) ListActivities(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, ac.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	limit := c.QueryInt("limit", 20)
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var activities []models.ActivityEvent
	if err := ac.DB.Where("user_id = ?", userID).
		Order("completed_at DESC").
		Limit(limit).
		Find(&activities).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return utils.Success(c, fiber.StatusOK, activities)
}
