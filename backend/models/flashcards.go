package models

import (
	"time"

	"gorm.io/gorm"
)

// FlashcardProgress is the per-(user, card) review state driving the spaced
// repetition schedule. Created on first review of the card, updated on every
// review after that.
type FlashcardProgress struct {
	gorm.Model
	UserID               uint `gorm:"index:idx_flashcard_progress,unique;not null"`
	FlashcardID          uint `gorm:"index:idx_flashcard_progress,unique;not null"`
	CorrectAttempts      int  `gorm:"default:0"`
	IncorrectAttempts    int  `gorm:"default:0"`
	ConsecutiveCorrect   int  `gorm:"default:0"`
	ConsecutiveIncorrect int  `gorm:"default:0"`
	MasteryLevel         int  `gorm:"default:0"` // 0-100
	Mastered             bool `gorm:"default:false"`
	LastReviewedAt       time.Time
	NextReviewDate       time.Time `gorm:"index"`
	RetentionScore       int       `gorm:"default:0"` // 0-100
}
