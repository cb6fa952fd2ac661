package models

import "gorm.io/gorm"

// Streak types mirror the activity kinds.
const (
	StreakLessonCompletion = "lesson_completion"
	StreakFlashcardReview  = "flashcard_review"
	StreakGamePlay         = "game_play"
)

// Streak is one row per (user, streak type). LongestStreak >= CurrentStreak
// always holds; dates are calendar days in the configured time zone.
type Streak struct {
	gorm.Model
	UserID           uint   `gorm:"index:idx_streak,unique;not null"`
	StreakType       string `gorm:"index:idx_streak,unique"`
	CurrentStreak    int    `gorm:"default:0"`
	LongestStreak    int    `gorm:"default:0"`
	LastActivityDate string // 2006-01-02
	StartDate        string // 2006-01-02
}
