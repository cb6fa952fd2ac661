package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username       string `json:"username" gorm:"unique;not null"`
	Email          string `json:"email" gorm:"unique;not null"`
	PasswordHash   string `json:"password" gorm:"not null"`
	Role           string `json:"role" gorm:"default:user"` // user, admin
	NativeLanguage string `json:"native_language"`
	TargetLanguage string `json:"target_language"`
}

type LoginHistory struct {
	gorm.Model
	UserID    uint
	LoginTime time.Time
}
