package services

import (
	"fmt"
	"log"

	"lingualearn/backend/models"

	"gorm.io/gorm"
)

// ActivityInput is one "activity completed" event submitted by the app.
type ActivityInput struct {
	Kind            string
	Name            string
	DurationSeconds int
	Score           int
	MaxScore        int
	Accuracy        float64
	// RequestID is an optional caller-generated idempotency key.
	RequestID string
}

// ActivityRecorder turns completion events into durable activity rows plus
// fan-out updates to stats, daily goals and streaks. Duplicates inside the
// guard windows are silently swallowed: no writes, no error. The persist and
// fan-out run in one transaction, so a failed step leaves no partial credit.
type ActivityRecorder struct {
	DB       *gorm.DB
	Clock    Clock
	Guard    *IdempotencyGuard
	Logger   *log.Logger
	observer func(userID uint)
}

func NewActivityRecorder(db *gorm.DB, clock Clock, guard *IdempotencyGuard, logger *log.Logger) *ActivityRecorder {
	return &ActivityRecorder{DB: db, Clock: clock, Guard: guard, Logger: logger}
}

// SetObserver registers the UI-refresh callback invoked after every applied
// (non-duplicate) recording. Last registration wins.
func (r *ActivityRecorder) SetObserver(fn func(userID uint)) {
	r.observer = fn
}

// Record persists the event and fans out to the three trackers. A duplicate
// submission returns nil without side effects.
func (r *ActivityRecorder) Record(userID uint, in ActivityInput) error {
	if userID == 0 {
		return ErrAuthenticationRequired
	}

	// Rendering-induced double fire: anything from the same user under a
	// second apart is noise.
	if !r.Guard.AllowCall(userID) {
		return nil
	}
	// Hard lock on the completion action itself, regardless of payload.
	if !r.Guard.ShouldProcess(CompletionLockKey(userID, in.Kind), CompletionLockWindow) {
		return nil
	}

	var fingerprint string
	if in.Kind == models.KindGame {
		fingerprint = GameFingerprint(userID, in.Name, in.Score, in.DurationSeconds)
	} else {
		fingerprint = ActivityFingerprint(userID, in.Kind, in.Score, in.DurationSeconds)
	}
	if !r.Guard.ShouldProcess(fingerprint, FingerprintWindow) {
		return nil
	}

	now := r.Clock.Now()
	today := r.Clock.Today()
	duplicate := false

	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if in.RequestID != "" {
			var count int64
			if err := tx.Model(&models.ActivityEvent{}).
				Where("request_id = ?", in.RequestID).
				Count(&count).Error; err != nil {
				return fmt.Errorf("check request id: %w", err)
			}
			if count > 0 {
				duplicate = true
				return nil
			}
		}

		event := models.ActivityEvent{
			UserID:          userID,
			Kind:            in.Kind,
			Name:            in.Name,
			DurationSeconds: in.DurationSeconds,
			Score:           in.Score,
			MaxScore:        in.MaxScore,
			Accuracy:        in.Accuracy,
			CompletedAt:     now,
		}
		if in.RequestID != "" {
			event.RequestID = &in.RequestID
		}
		if err := tx.Create(&event).Error; err != nil {
			return fmt.Errorf("persist activity: %w", err)
		}

		if err := IncrementStats(tx, userID, statsDeltaFor(in)); err != nil {
			return err
		}

		if goalType := GoalTypeForKind(in.Kind); goalType != "" {
			if err := ContributeDailyGoal(tx, userID, goalType, 1, today); err != nil {
				return err
			}
		}
		if minutes := (in.DurationSeconds + 59) / 60; minutes > 0 {
			if err := ContributeDailyGoal(tx, userID, models.GoalStudyTime, minutes, today); err != nil {
				return err
			}
		}

		if streakType := StreakTypeForKind(in.Kind); streakType != "" {
			if err := TrackStreak(tx, userID, streakType, today); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		r.Logger.Printf("record activity: user=%d kind=%s: %v", userID, in.Kind, err)
		return err
	}

	if !duplicate && r.observer != nil {
		r.observer(userID)
	}
	return nil
}

func statsDeltaFor(in ActivityInput) StatsDelta {
	delta := StatsDelta{
		ScoreEarned:      in.Score,
		StudyHours:       float64(in.DurationSeconds) / 3600,
		ExperiencePoints: in.Score,
	}
	switch in.Kind {
	case models.KindLesson:
		delta.LessonsCompleted = 1
	case models.KindFlashcardReview:
		delta.FlashcardsReviewed = 1
	case models.KindGame:
		delta.GamesPlayed = 1
	}
	return delta
}
