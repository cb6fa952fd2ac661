package utils

import (
	"fmt"
	"lingualearn/backend/config"
	"lingualearn/backend/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB открывает соединение с базой и прогоняет миграции
func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.LoginHistory{},
		&models.ActivityEvent{},
		&models.LearningStats{},
		&models.DailyGoal{},
		&models.Streak{},
		&models.FlashcardProgress{},
	); err != nil {
		return nil, err
	}

	return db, nil
}
