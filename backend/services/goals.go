package services

import (
	"errors"
	"fmt"

	"lingualearn/backend/models"

	"gorm.io/gorm"
)

// ContributeDailyGoal adds amount to the (user, goalType, day) row, creating
// it with the type's default target on the first contributing event of the
// day. The completed flag is sticky for the day. An unknown goal type is a
// no-op: new types must be added to models.DefaultGoalTargets first.
func ContributeDailyGoal(db *gorm.DB, userID uint, goalType string, amount int, day string) error {
	target, ok := models.DefaultGoalTargets[goalType]
	if !ok {
		return nil
	}

	var goal models.DailyGoal
	err := db.Where("user_id = ? AND goal_type = ? AND day = ?", userID, goalType, day).
		First(&goal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		goal = models.DailyGoal{
			UserID:       userID,
			GoalType:     goalType,
			Day:          day,
			TargetValue:  target,
			CurrentValue: amount,
			Completed:    amount >= target,
		}
		if err := db.Create(&goal).Error; err != nil {
			return fmt.Errorf("create daily goal: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("load daily goal: %w", err)
	}

	goal.CurrentValue += amount
	if goal.CurrentValue >= goal.TargetValue {
		goal.Completed = true
	}
	if err := db.Save(&goal).Error; err != nil {
		return fmt.Errorf("save daily goal: %w", err)
	}
	return nil
}

// GoalTypeForKind maps an activity kind to the countable goal it feeds.
// The study_time goal is fed separately from the event duration.
func GoalTypeForKind(kind string) string {
	switch kind {
	case models.KindLesson:
		return models.GoalLessonsCompleted
	case models.KindFlashcardReview:
		return models.GoalFlashcardsReviewed
	case models.KindGame:
		return models.GoalGamesPlayed
	}
	return ""
}
