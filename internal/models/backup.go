package models

import "time"

// Backup is an encrypted copy of a day snapshot written to disk.
type Backup struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index;not null"`
	FileName  string `gorm:"size:255;not null"`
	FilePath  string `gorm:"size:1024;not null"`
	Size      int64
	CreatedAt time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}
