package services

import (
	"fmt"
	"io"
	"log"
	"strings"
	"testing"
	"time"

	"lingualearn/backend/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fakeClock is a manually advanced Clock for simulating day boundaries and
// dedup windows.
type fakeClock struct {
	now time.Time
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now}
}

func (f *fakeClock) Now() time.Time {
	return f.now
}

func (f *fakeClock) Today() string {
	return f.now.Format(dayFormat)
}

func (f *fakeClock) Advance(d time.Duration) {
	f.now = f.now.Add(d)
}

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.ActivityEvent{},
		&models.LearningStats{},
		&models.DailyGoal{},
		&models.Streak{},
		&models.FlashcardProgress{},
	))
	return db
}

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}
