package catalog

import (
	"context"
	"fmt"

	"besfit/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DBProvider reads the catalog from the relational store.
type DBProvider struct {
	DB *gorm.DB
}

func NewDBProvider(db *gorm.DB) *DBProvider {
	return &DBProvider{DB: db}
}

func (p *DBProvider) Foods(ctx context.Context) ([]FoodItem, error) {
	var rows []models.FoodItem
	if err := p.DB.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("query foods: %w", err)
	}
	out := make([]FoodItem, 0, len(rows))
	for _, r := range rows {
		out = append(out, FoodItem{
			Name:        r.Name,
			Category:    r.Category,
			ServingSize: r.ServingSize,
			Calories:    r.Calories,
			Protein:     r.Protein,
			Fat:         r.Fat,
			Carbs:       r.Carbs,
		})
	}
	return out, nil
}

func (p *DBProvider) Exercises(ctx context.Context) ([]ExerciseItem, error) {
	var rows []models.ExerciseItem
	if err := p.DB.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("query exercises: %w", err)
	}
	out := make([]ExerciseItem, 0, len(rows))
	for _, r := range rows {
		out = append(out, ExerciseItem{
			ID:       r.ID,
			Name:     r.Name,
			Category: r.Category,
			MET:      r.MET,
		})
	}
	return out, nil
}

// ImportFoods upserts foods by name.
func (p *DBProvider) ImportFoods(ctx context.Context, foods []FoodItem) error {
	if len(foods) == 0 {
		return nil
	}
	rows := make([]models.FoodItem, 0, len(foods))
	for _, f := range foods {
		rows = append(rows, models.FoodItem{
			Name:        f.Name,
			Category:    f.Category,
			ServingSize: f.ServingSize,
			Calories:    f.Calories,
			Protein:     f.Protein,
			Fat:         f.Fat,
			Carbs:       f.Carbs,
		})
	}
	err := p.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"category", "serving_size", "calories", "protein", "fat", "carbs"}),
	}).Create(&rows).Error
	if err != nil {
		return fmt.Errorf("import foods: %w", err)
	}
	return nil
}

// ImportExercises upserts exercises by name. Seed ids are kept when given so
// clients referencing an exercise id stay valid across re-imports.
func (p *DBProvider) ImportExercises(ctx context.Context, exercises []ExerciseItem) error {
	if len(exercises) == 0 {
		return nil
	}
	rows := make([]models.ExerciseItem, 0, len(exercises))
	for _, e := range exercises {
		rows = append(rows, models.ExerciseItem{
			ID:       e.ID,
			Name:     e.Name,
			Category: e.Category,
			MET:      e.MET,
		})
	}
	err := p.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"category", "met_value"}),
	}).Create(&rows).Error
	if err != nil {
		return fmt.Errorf("import exercises: %w", err)
	}
	return nil
}
