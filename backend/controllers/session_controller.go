package controllers

import (
	"lingualearn/backend/config"
	"lingualearn/backend/services"
	"lingualearn/backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SessionController drives the per-user session clock: the app reports
// foreground/background transitions and polls for pending break reminders.
type SessionController struct {
	Cfg      *config.Config
	Sessions *services.SessionManager
}

func NewSessionController(cfg *config.Config, sessions *services.SessionManager) *SessionController {
	return &SessionController{Cfg: cfg, Sessions: sessions}
}

// StartSession godoc
// @Summary Start the study session clock
// @Tags session
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /session/start [post]
func (sc *SessionController) StartSession(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, sc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}
	sc.Sessions.Get(userID).Start()
	return utils.Success(c, fiber.StatusOK, fiber.Map{"started": true})
}

// PauseSession godoc
// @Summary Pause the session clock (app backgrounded)
// @Tags session
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /session/pause [post]
func (sc *SessionController) PauseSession(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, sc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}
	sc.Sessions.Get(userID).Pause()
	return utils.Success(c, fiber.StatusOK, fiber.Map{"paused": true})
}

// ResumeSession godoc
// @Summary Resume the session clock (app foregrounded)
// @Tags session
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /session/resume [post]
func (sc *SessionController) ResumeSession(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, sc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}
	sc.Sessions.Get(userID).Resume()
	return utils.Success(c, fiber.StatusOK, fiber.Map{"resumed": true})
}

// StopSession godoc
// @Summary Stop the session clock and discard its state
// @Tags session
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /session/stop [post]
func (sc *SessionController) StopSession(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, sc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}
	sc.Sessions.Get(userID).Stop()
	return utils.Success(c, fiber.StatusOK, fiber.Map{"stopped": true})
}

// GetSession godoc
// @Summary Get session clock state
// @Description Returns accumulated minutes and whether a break reminder is due. Reading consumes the reminder.
// @Tags session
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /session [get]
func (sc *SessionController) GetSession(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, sc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	session := sc.Sessions.Get(userID)
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"minutes":   session.CurrentSessionMinutes(),
		"running":   session.Running(),
		"break_due": sc.Sessions.ConsumeBreakReminder(userID),
	})
}
