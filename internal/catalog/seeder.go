package catalog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"besfit/internal/metrics"

	"github.com/sirupsen/logrus"
)

// Importer writes parsed seed rows into the catalog's backing store.
type Importer interface {
	ImportFoods(ctx context.Context, foods []FoodItem) error
	ImportExercises(ctx context.Context, exercises []ExerciseItem) error
}

// Seeder imports CSV seed files and refreshes the Store from the Provider.
type Seeder struct {
	Dir      string
	Importer Importer
	Provider Provider
	Store    *Store
	Log      logrus.FieldLogger
}

// SeedAll imports whichever seed files exist in Dir, then reloads the Store.
// Missing seed files are skipped; the catalog may already be in the database.
func (s *Seeder) SeedAll(ctx context.Context) error {
	for _, name := range []string{FoodsFile, ExercisesFile} {
		path := filepath.Join(s.Dir, name)
		if err := s.importFile(ctx, path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				s.Log.WithField("file", path).Debug("seed file not found, skipping")
				continue
			}
			return err
		}
	}
	return s.Reload(ctx)
}

// HandleFileChange re-imports a single seed file and reloads the Store.
// Files other than the known seed files are ignored.
func (s *Seeder) HandleFileChange(ctx context.Context, path string) error {
	base := filepath.Base(path)
	if base != FoodsFile && base != ExercisesFile {
		return nil
	}
	if err := s.importFile(ctx, path); err != nil {
		return err
	}
	return s.Reload(ctx)
}

// Reload refreshes the Store from the Provider. A failed load leaves the
// catalog empty; the error is logged and returned, never retried here.
func (s *Seeder) Reload(ctx context.Context) error {
	err := s.Store.Load(ctx, s.Provider)
	foods, exercises := s.Store.Len()
	metrics.SetCatalogSize(foods, exercises)
	if err != nil {
		s.Log.WithError(err).Warn("catalog load failed, serving empty catalog")
		return err
	}
	s.Log.WithFields(logrus.Fields{"foods": foods, "exercises": exercises}).Info("catalog loaded")
	return nil
}

func (s *Seeder) importFile(ctx context.Context, path string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}

	switch filepath.Base(path) {
	case FoodsFile:
		foods, err := ParseFoodsFile(path)
		if err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		if err := s.Importer.ImportFoods(ctx, foods); err != nil {
			return err
		}
		s.Log.WithFields(logrus.Fields{"file": path, "rows": len(foods)}).Info("foods imported")
	case ExercisesFile:
		exercises, err := ParseExercisesFile(path)
		if err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		if err := s.Importer.ImportExercises(ctx, exercises); err != nil {
			return err
		}
		s.Log.WithFields(logrus.Fields{"file": path, "rows": len(exercises)}).Info("exercises imported")
	}
	return nil
}
