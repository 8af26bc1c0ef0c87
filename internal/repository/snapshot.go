// Package repository persists per-account day snapshots.
package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"besfit/internal/models"
	"besfit/internal/tracker"
)

// SnapshotRepository implements tracker.SnapshotStore on the day_snapshots
// table.
type SnapshotRepository struct {
	DB *gorm.DB
}

func NewSnapshotRepository(db *gorm.DB) *SnapshotRepository {
	return &SnapshotRepository{DB: db}
}

var _ tracker.SnapshotStore = (*SnapshotRepository)(nil)

// SaveSnapshot upserts the account's row. A row already holding a newer or
// equal version is left alone.
func (r *SnapshotRepository) SaveSnapshot(ctx context.Context, accountID uint, data []byte, version uint64) error {
	row := models.DaySnapshot{
		UserID:  accountID,
		Data:    string(data),
		Version: version,
	}
	err := r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "version", "updated_at"}),
		Where: clause.Where{Exprs: []clause.Expression{
			clause.Expr{SQL: "day_snapshots.version < excluded.version"},
		}},
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("save snapshot for user %d: %w", accountID, err)
	}
	return nil
}

// LoadSnapshot returns the stored JSON and its version, or
// tracker.ErrSnapshotNotFound.
func (r *SnapshotRepository) LoadSnapshot(ctx context.Context, accountID uint) ([]byte, uint64, error) {
	var row models.DaySnapshot
	err := r.DB.WithContext(ctx).Where("user_id = ?", accountID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, 0, tracker.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, 0, fmt.Errorf("load snapshot for user %d: %w", accountID, err)
	}
	return []byte(row.Data), row.Version, nil
}
