package models

import "time"

// User represents a registered account. Login requires both Username and
// Email to match the same row.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	FirstName    string `gorm:"size:64;not null"`
	LastName     string `gorm:"size:64;not null"`
	Username     string `gorm:"size:64;uniqueIndex;not null"`
	Email        string `gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	LastLoginAt *time.Time
	LastLoginIP string `gorm:"size:64"`
}
