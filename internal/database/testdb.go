package database

import (
	"path/filepath"
	"testing"

	"besfit/internal/config"

	"gorm.io/gorm"
)

// OpenForTest opens a migrated SQLite database in a per-test temp dir and
// closes it when the test ends.
func OpenForTest(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := Open(config.DatabaseConfig{
		Path: filepath.Join(t.TempDir(), "test.db"),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
