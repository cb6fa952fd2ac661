package models

import "gorm.io/gorm"

// LearningStats holds the cumulative per-user counters. Created lazily on the
// first recorded activity; every counter only ever increases.
type LearningStats struct {
	gorm.Model
	UserID             uint `gorm:"uniqueIndex;not null"`
	LessonsCompleted   int  `gorm:"default:0"`
	FlashcardsReviewed int  `gorm:"default:0"`
	GamesPlayed        int  `gorm:"default:0"`
	ScoreEarned        int  `gorm:"default:0"`
	StudyHours         float64
	Level              string `gorm:"default:Beginner"`
	ExperiencePoints   int    `gorm:"default:0"`
}
