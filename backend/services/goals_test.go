package services

import (
	"testing"

	"lingualearn/backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goalDay = "2024-01-01"

func TestGoalCreatedWithDefaultTarget(t *testing.T) {
	db := testDB(t)

	require.NoError(t, ContributeDailyGoal(db, 1, models.GoalLessonsCompleted, 1, goalDay))

	var g models.DailyGoal
	require.NoError(t, db.Where("user_id = ? AND goal_type = ? AND day = ?",
		1, models.GoalLessonsCompleted, goalDay).First(&g).Error)
	assert.Equal(t, 2, g.TargetValue)
	assert.Equal(t, 1, g.CurrentValue)
	assert.False(t, g.Completed)
}

func TestGoalCompletionIsSticky(t *testing.T) {
	db := testDB(t)

	require.NoError(t, ContributeDailyGoal(db, 1, models.GoalGamesPlayed, 1, goalDay))
	require.NoError(t, ContributeDailyGoal(db, 1, models.GoalGamesPlayed, 1, goalDay))
	require.NoError(t, ContributeDailyGoal(db, 1, models.GoalGamesPlayed, 1, goalDay))

	var g models.DailyGoal
	require.NoError(t, db.Where("goal_type = ?", models.GoalGamesPlayed).First(&g).Error)
	assert.Equal(t, 3, g.CurrentValue)
	assert.True(t, g.Completed)

	// further contributions keep the flag set
	require.NoError(t, ContributeDailyGoal(db, 1, models.GoalGamesPlayed, 1, goalDay))
	require.NoError(t, db.Where("goal_type = ?", models.GoalGamesPlayed).First(&g).Error)
	assert.Equal(t, 4, g.CurrentValue)
	assert.True(t, g.Completed)
}

func TestGoalCompletedOnFirstContribution(t *testing.T) {
	db := testDB(t)

	// 45 study minutes in one sitting beats the 30 minute target immediately
	require.NoError(t, ContributeDailyGoal(db, 1, models.GoalStudyTime, 45, goalDay))

	var g models.DailyGoal
	require.NoError(t, db.Where("goal_type = ?", models.GoalStudyTime).First(&g).Error)
	assert.Equal(t, 30, g.TargetValue)
	assert.True(t, g.Completed)
}

func TestGoalNewDayNewRow(t *testing.T) {
	db := testDB(t)

	require.NoError(t, ContributeDailyGoal(db, 1, models.GoalFlashcardsReviewed, 5, "2024-01-01"))
	require.NoError(t, ContributeDailyGoal(db, 1, models.GoalFlashcardsReviewed, 5, "2024-01-02"))

	var count int64
	db.Model(&models.DailyGoal{}).Where("user_id = ?", 1).Count(&count)
	assert.EqualValues(t, 2, count)

	var g models.DailyGoal
	require.NoError(t, db.Where("day = ?", "2024-01-02").First(&g).Error)
	assert.Equal(t, 5, g.CurrentValue, "rows are never merged across days")
}

func TestGoalUnknownTypeIsNoop(t *testing.T) {
	db := testDB(t)

	require.NoError(t, ContributeDailyGoal(db, 1, "minutes_meditated", 10, goalDay))

	var count int64
	db.Model(&models.DailyGoal{}).Count(&count)
	assert.EqualValues(t, 0, count)
}
