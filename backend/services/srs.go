package services

import (
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"lingualearn/backend/models"

	"gorm.io/gorm"
)

// Spaced repetition tuning. Intervals back off exponentially with consecutive
// correct answers and shrink after failures; this tracks only binary
// correct/incorrect outcomes, not response latency.
const (
	masteredThreshold = 80
	maxIntervalDays   = 30
	retentionPenalty  = 5

	firstCorrectIntervalDays   = 2
	firstIncorrectIntervalDays = 1
)

// ReviewFlashcard computes the next review state for a single card given the
// prior state (nil for a first review) and a pass/fail outcome. Pure function
// of its inputs.
func ReviewFlashcard(prior *models.FlashcardProgress, isCorrect bool, now time.Time) models.FlashcardProgress {
	if prior == nil {
		return firstReview(isCorrect, now)
	}

	next := *prior
	if isCorrect {
		next.CorrectAttempts++
		next.ConsecutiveCorrect++
		next.ConsecutiveIncorrect = 0
	} else {
		next.IncorrectAttempts++
		next.ConsecutiveIncorrect++
		next.ConsecutiveCorrect = 0
	}

	total := next.CorrectAttempts + next.IncorrectAttempts
	next.MasteryLevel = int(math.Round(100 * float64(next.CorrectAttempts) / float64(total)))
	next.Mastered = next.MasteryLevel >= masteredThreshold

	var intervalDays int
	if isCorrect {
		intervalDays = backoffDays(next.ConsecutiveCorrect)
	} else {
		intervalDays = next.ConsecutiveIncorrect / 2
		if intervalDays < 1 {
			intervalDays = 1
		}
	}

	next.LastReviewedAt = now
	next.NextReviewDate = now.AddDate(0, 0, intervalDays)

	retention := next.MasteryLevel - retentionPenalty*next.ConsecutiveIncorrect
	if retention < 0 {
		retention = 0
	}
	next.RetentionScore = retention

	return next
}

func firstReview(isCorrect bool, now time.Time) models.FlashcardProgress {
	p := models.FlashcardProgress{
		LastReviewedAt: now,
	}
	if isCorrect {
		p.CorrectAttempts = 1
		p.ConsecutiveCorrect = 1
		p.MasteryLevel = 100
		p.Mastered = true
		p.NextReviewDate = now.AddDate(0, 0, firstCorrectIntervalDays)
	} else {
		p.IncorrectAttempts = 1
		p.ConsecutiveIncorrect = 1
		p.NextReviewDate = now.AddDate(0, 0, firstIncorrectIntervalDays)
	}
	p.RetentionScore = p.MasteryLevel
	return p
}

// backoffDays doubles the interval per consecutive correct answer, capped at
// maxIntervalDays.
func backoffDays(consecutiveCorrect int) int {
	days := 1
	for i := 0; i < consecutiveCorrect; i++ {
		days *= 2
		if days >= maxIntervalDays {
			return maxIntervalDays
		}
	}
	return days
}

// FlashcardService persists review outcomes through the scheduler, one row
// per (user, flashcard), independent of the activity pipeline.
type FlashcardService struct {
	DB       *gorm.DB
	Clock    Clock
	Logger   *log.Logger
	observer func(userID uint)
}

func NewFlashcardService(db *gorm.DB, clock Clock, logger *log.Logger) *FlashcardService {
	return &FlashcardService{DB: db, Clock: clock, Logger: logger}
}

// SetObserver registers the UI-refresh callback. Last registration wins.
func (s *FlashcardService) SetObserver(fn func(userID uint)) {
	s.observer = fn
}

// Review applies one pass/fail outcome to the card's progress row and returns
// the updated state.
func (s *FlashcardService) Review(userID, flashcardID uint, isCorrect bool) (*models.FlashcardProgress, error) {
	if userID == 0 {
		return nil, ErrAuthenticationRequired
	}

	now := s.Clock.Now()

	var prior models.FlashcardProgress
	err := s.DB.Where("user_id = ? AND flashcard_id = ?", userID, flashcardID).First(&prior).Error

	var next models.FlashcardProgress
	switch {
	case err == nil:
		next = ReviewFlashcard(&prior, isCorrect, now)
	case errors.Is(err, gorm.ErrRecordNotFound):
		next = ReviewFlashcard(nil, isCorrect, now)
		next.UserID = userID
		next.FlashcardID = flashcardID
	default:
		return nil, fmt.Errorf("load flashcard progress: %w", err)
	}

	if err := s.DB.Save(&next).Error; err != nil {
		s.Logger.Printf("flashcard review: save progress user=%d card=%d: %v", userID, flashcardID, err)
		return nil, fmt.Errorf("save flashcard progress: %w", err)
	}

	if s.observer != nil {
		s.observer(userID)
	}
	return &next, nil
}

// Due returns the cards whose next review date has passed, most overdue
// first.
func (s *FlashcardService) Due(userID uint, limit int) ([]models.FlashcardProgress, error) {
	if userID == 0 {
		return nil, ErrAuthenticationRequired
	}

	var due []models.FlashcardProgress
	q := s.DB.Where("user_id = ? AND next_review_date <= ?", userID, s.Clock.Now()).
		Order("next_review_date ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&due).Error; err != nil {
		return nil, fmt.Errorf("load due flashcards: %w", err)
	}
	return due, nil
}
