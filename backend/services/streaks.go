package services

import (
	"errors"
	"fmt"
	"time"

	"lingualearn/backend/models"

	"gorm.io/gorm"
)

// TrackStreak applies one contributing event dated today to the (user,
// streakType) row:
//
//   - no prior row: start at 1
//   - last activity yesterday: continuation, current + 1
//   - last activity today: already counted, only the date is re-stamped
//   - gap of two or more days: reset to 1 with a new start date
//
// Longest is raised to current in every branch, so longest >= current always
// holds. Multiple events on the same day re-enter the "already today" branch
// harmlessly.
func TrackStreak(db *gorm.DB, userID uint, streakType, today string) error {
	var streak models.Streak
	err := db.Where("user_id = ? AND streak_type = ?", userID, streakType).First(&streak).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		streak = models.Streak{
			UserID:           userID,
			StreakType:       streakType,
			CurrentStreak:    1,
			LongestStreak:    1,
			LastActivityDate: today,
			StartDate:        today,
		}
		if err := db.Create(&streak).Error; err != nil {
			return fmt.Errorf("create streak: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("load streak: %w", err)
	}

	switch streak.LastActivityDate {
	case today:
		// already counted today
	case dayBefore(today):
		streak.CurrentStreak++
	default:
		streak.CurrentStreak = 1
		streak.StartDate = today
	}

	if streak.CurrentStreak > streak.LongestStreak {
		streak.LongestStreak = streak.CurrentStreak
	}
	streak.LastActivityDate = today

	if err := db.Save(&streak).Error; err != nil {
		return fmt.Errorf("save streak: %w", err)
	}
	return nil
}

// StreakTypeForKind maps an activity kind to the streak it feeds.
func StreakTypeForKind(kind string) string {
	switch kind {
	case models.KindLesson:
		return models.StreakLessonCompletion
	case models.KindFlashcardReview:
		return models.StreakFlashcardReview
	case models.KindGame:
		return models.StreakGamePlay
	}
	return ""
}

func dayBefore(day string) string {
	t, err := time.Parse(dayFormat, day)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, -1).Format(dayFormat)
}
