package services

import (
	"errors"
	"fmt"

	"lingualearn/backend/models"

	"gorm.io/gorm"
)

// StatsDelta is one event's contribution to the cumulative counters. All
// fields are non-negative.
type StatsDelta struct {
	LessonsCompleted   int
	FlashcardsReviewed int
	GamesPlayed        int
	ScoreEarned        int
	StudyHours         float64
	ExperiencePoints   int
}

// IncrementStats adds the delta to the user's LearningStats row, creating the
// row seeded with the delta on first activity. Counters never decrease.
// Accepts a transaction handle so the recorder can run it inside the fan-out
// transaction.
func IncrementStats(db *gorm.DB, userID uint, delta StatsDelta) error {
	var stats models.LearningStats
	err := db.Where("user_id = ?", userID).First(&stats).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		stats = models.LearningStats{
			UserID:             userID,
			LessonsCompleted:   delta.LessonsCompleted,
			FlashcardsReviewed: delta.FlashcardsReviewed,
			GamesPlayed:        delta.GamesPlayed,
			ScoreEarned:        delta.ScoreEarned,
			StudyHours:         delta.StudyHours,
			Level:              "Beginner",
			ExperiencePoints:   delta.ExperiencePoints,
		}
		stats.Level = levelForExperience(stats.ExperiencePoints)
		if err := db.Create(&stats).Error; err != nil {
			return fmt.Errorf("create learning stats: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("load learning stats: %w", err)
	}

	stats.LessonsCompleted += delta.LessonsCompleted
	stats.FlashcardsReviewed += delta.FlashcardsReviewed
	stats.GamesPlayed += delta.GamesPlayed
	stats.ScoreEarned += delta.ScoreEarned
	stats.StudyHours += delta.StudyHours
	stats.ExperiencePoints += delta.ExperiencePoints
	stats.Level = levelForExperience(stats.ExperiencePoints)

	if err := db.Save(&stats).Error; err != nil {
		return fmt.Errorf("save learning stats: %w", err)
	}
	return nil
}

// levelForExperience maps cumulative experience to a level label. Experience
// only grows, so the label never moves backwards.
func levelForExperience(xp int) string {
	switch {
	case xp >= 15000:
		return "Expert"
	case xp >= 5000:
		return "Advanced"
	case xp >= 1000:
		return "Intermediate"
	default:
		return "Beginner"
	}
}
