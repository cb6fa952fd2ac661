package models

import (
	"time"

	"gorm.io/gorm"
)

// Activity kinds accepted by the recorder.
const (
	KindLesson          = "lesson"
	KindFlashcardReview = "flashcard_review"
	KindGame            = "game"
)

// ActivityEvent is one completed unit of study. Rows are immutable after
// creation and are never deleted.
type ActivityEvent struct {
	gorm.Model
	UserID          uint `gorm:"index;not null"`
	Kind            string
	Name            string
	DurationSeconds int
	Score           int
	MaxScore        int
	Accuracy        float64
	CompletedAt     time.Time
	// RequestID is a caller-generated idempotency key (UUID). The unique
	// index rejects a replayed submission deterministically, independent of
	// the in-memory dedup windows.
	RequestID *string `gorm:"uniqueIndex"`
}

func KnownKind(kind string) bool {
	switch kind {
	case KindLesson, KindFlashcardReview, KindGame:
		return true
	}
	return false
}
