package model

import "time"

// User is an account that can sign in and manage inventory.
type User struct {
	ID           int64     `gorm:"primaryKey"`
	Username     string    `gorm:"uniqueIndex;size:128;not null"`
	Email        string    `gorm:"size:255"`
	PasswordHash string    `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null"`
}
