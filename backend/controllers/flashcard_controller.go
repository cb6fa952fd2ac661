package controllers

import (
	"errors"
	"lingualearn/backend/config"
	"lingualearn/backend/services"
	"lingualearn/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type FlashcardController struct {
	DB         *gorm.DB
	Cfg        *config.Config
	Flashcards *services.FlashcardService
}

func NewFlashcardController(db *gorm.DB, cfg *config.Config, flashcards *services.FlashcardService) *FlashcardController {
	return &FlashcardController{DB: db, Cfg: cfg, Flashcards: flashcards}
}

type ReviewFlashcardRequest struct {
	IsCorrect bool `json:"is_correct"`
	// ResponseMs is accepted but not used by the scheduler yet.
	ResponseMs int `json:"response_ms"`
}

// ReviewFlashcard godoc
// @Summary Review a flashcard
// @Description Applies one pass/fail review outcome and returns the updated spaced-repetition state
// @Tags flashcards
// @Accept json
// @Produce json
// @Param id path int true "Flashcard ID"
// @Param review body ReviewFlashcardRequest true "Review outcome"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /flashcards/{id}/review [post]
func (fc *FlashcardController) ReviewFlashcard(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, fc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	flashcardID, err := c.ParamsInt("id")
	if err != nil || flashcardID <= 0 {
		return utils.BadRequest(c, "Invalid flashcard id")
	}

	var input ReviewFlashcardRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	progress, err := fc.Flashcards.Review(userID, uint(flashcardID), input.IsCorrect)
	if err != nil {
		if errors.Is(err, services.ErrAuthenticationRequired) {
			return utils.Unauthorized(c, "Unauthorized")
		}
		return utils.InternalServerError(c, "Could not save review")
	}

	return utils.Success(c, fiber.StatusOK, progress)
}

// GetDueFlashcards godoc
// @Summary List due flashcards
// @Description Returns flashcard progress rows whose next review date has passed, most overdue first
// @Tags flashcards
// @Accept json
// @Produce json
// @Param limit query int false "Max rows" default(20)
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /flashcards/due [get]
func (fc *FlashcardController) GetDueFlashcards(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, fc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	limit := c.QueryInt("limit", 20)
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	due, err := fc.Flashcards.Due(userID, limit)
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return utils.Success(c, fiber.StatusOK, due)
}
