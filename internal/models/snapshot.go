package models

import "time"

// DaySnapshot stores the latest ledger+profile snapshot of one account as JSON.
// Version only ever grows; a write carrying an older version is stale.
type DaySnapshot struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"uniqueIndex;not null"`
	Data      string `gorm:"type:text;not null"`
	Version   uint64 `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}
