package models

import "gorm.io/gorm"

// Daily goal types. study_time is measured in minutes, the rest in events.
const (
	GoalLessonsCompleted   = "lessons_completed"
	GoalFlashcardsReviewed = "flashcards_reviewed"
	GoalGamesPlayed        = "games_played"
	GoalStudyTime          = "study_time"
)

// DefaultGoalTargets maps each goal type to its daily target. A goal type
// missing from this table is ignored by the tracker.
var DefaultGoalTargets = map[string]int{
	GoalLessonsCompleted:   2,
	GoalFlashcardsReviewed: 20,
	GoalGamesPlayed:        3,
	GoalStudyTime:          30,
}

// DailyGoal is one row per (user, goal type, calendar day). A fresh row is
// created for each new day; rows are never merged across days.
type DailyGoal struct {
	gorm.Model
	UserID       uint   `gorm:"index:idx_daily_goal,unique;not null"`
	GoalType     string `gorm:"index:idx_daily_goal,unique"`
	Day          string `gorm:"index:idx_daily_goal,unique"` // 2006-01-02
	TargetValue  int
	CurrentValue int
	Completed    bool `gorm:"default:false"`
}
