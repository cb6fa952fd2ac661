package services

import (
	"testing"

	"lingualearn/backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreakFirstActivity(t *testing.T) {
	db := testDB(t)

	require.NoError(t, TrackStreak(db, 1, models.StreakLessonCompletion, "2024-01-01"))

	var s models.Streak
	require.NoError(t, db.Where("user_id = ? AND streak_type = ?", 1, models.StreakLessonCompletion).First(&s).Error)
	assert.Equal(t, 1, s.CurrentStreak)
	assert.Equal(t, 1, s.LongestStreak)
	assert.Equal(t, "2024-01-01", s.LastActivityDate)
	assert.Equal(t, "2024-01-01", s.StartDate)
}

func TestStreakContinuationAndReset(t *testing.T) {
	db := testDB(t)

	require.NoError(t, TrackStreak(db, 1, models.StreakLessonCompletion, "2024-01-01"))
	require.NoError(t, TrackStreak(db, 1, models.StreakLessonCompletion, "2024-01-02"))

	var s models.Streak
	require.NoError(t, db.Where("user_id = ?", 1).First(&s).Error)
	assert.Equal(t, 2, s.CurrentStreak)
	assert.Equal(t, 2, s.LongestStreak)

	// skipping 2024-01-03 resets current but keeps longest
	require.NoError(t, TrackStreak(db, 1, models.StreakLessonCompletion, "2024-01-04"))
	require.NoError(t, db.Where("user_id = ?", 1).First(&s).Error)
	assert.Equal(t, 1, s.CurrentStreak)
	assert.Equal(t, 2, s.LongestStreak)
	assert.Equal(t, "2024-01-04", s.StartDate)
	assert.Equal(t, "2024-01-04", s.LastActivityDate)
}

func TestStreakSameDayIdempotent(t *testing.T) {
	db := testDB(t)

	require.NoError(t, TrackStreak(db, 1, models.StreakGamePlay, "2024-01-01"))
	require.NoError(t, TrackStreak(db, 1, models.StreakGamePlay, "2024-01-02"))
	require.NoError(t, TrackStreak(db, 1, models.StreakGamePlay, "2024-01-02"))
	require.NoError(t, TrackStreak(db, 1, models.StreakGamePlay, "2024-01-02"))

	var s models.Streak
	require.NoError(t, db.Where("user_id = ?", 1).First(&s).Error)
	assert.Equal(t, 2, s.CurrentStreak)
	assert.Equal(t, 2, s.LongestStreak)
}

func TestStreakTypesIndependent(t *testing.T) {
	db := testDB(t)

	require.NoError(t, TrackStreak(db, 1, models.StreakLessonCompletion, "2024-01-01"))
	require.NoError(t, TrackStreak(db, 1, models.StreakFlashcardReview, "2024-01-01"))

	var count int64
	db.Model(&models.Streak{}).Where("user_id = ?", 1).Count(&count)
	assert.EqualValues(t, 2, count)
}

func TestStreakTypeForKind(t *testing.T) {
	assert.Equal(t, models.StreakLessonCompletion, StreakTypeForKind(models.KindLesson))
	assert.Equal(t, models.StreakFlashcardReview, StreakTypeForKind(models.KindFlashcardReview))
	assert.Equal(t, models.StreakGamePlay, StreakTypeForKind(models.KindGame))
	assert.Equal(t, "", StreakTypeForKind("unknown"))
}
