package models

import "time"

// Session stores issued login tokens so they can be revoked on logout.
type Session struct {
	ID        string    `gorm:"primaryKey;size:64"` // token id (jti)
	UserID    uint      `gorm:"index;not null"`
	ExpiresAt time.Time `gorm:"index;not null"`
	Revoked   bool      `gorm:"index;not null"`
	CreatedAt time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}
