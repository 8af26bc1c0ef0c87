package tracker

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// MaxWaterGlasses is the number of glasses on the daily water tracker.
const MaxWaterGlasses = 7

// DayLedger holds the entries logged for the active day. It is not safe for
// concurrent use; Session serializes access.
type DayLedger struct {
	foods     []FoodEntry
	exercises []ExerciseEntry
	water     int

	newID func() string
}

func NewDayLedger() *DayLedger {
	return &DayLedger{newID: uuid.NewString}
}

// AddFoodEntries appends one entry per selection. The batch is applied
// all-or-nothing: an empty batch or any unset meal type rejects it whole.
func (l *DayLedger) AddFoodEntries(batch []FoodSelection) ([]FoodEntry, error) {
	if len(batch) == 0 {
		return nil, ErrEmptyBatch
	}
	for _, sel := range batch {
		if !sel.MealType.Valid() {
			return nil, ErrInvalidMealType
		}
	}

	added := make([]FoodEntry, 0, len(batch))
	for _, sel := range batch {
		added = append(added, FoodEntry{
			ID:       l.newID(),
			MealType: sel.MealType,
			Name:     sel.Food.Name,
			Calories: sel.Food.Calories,
			Protein:  sel.Food.Protein,
			Carbs:    sel.Food.Carbs,
			Fat:      sel.Food.Fat,
		})
	}
	l.foods = append(l.foods, added...)
	return added, nil
}

// AddExerciseEntries appends one entry per selection with its calorie burn
// computed from weightKg. The whole batch is rejected if weightKg <= 0 or
// any duration <= 0.
func (l *DayLedger) AddExerciseEntries(batch []ExerciseSelection, weightKg float64) ([]ExerciseEntry, error) {
	if len(batch) == 0 {
		return nil, ErrEmptyBatch
	}
	if weightKg <= 0 {
		return nil, ErrInvalidProfile
	}
	for _, sel := range batch {
		if sel.Duration <= 0 {
			return nil, ErrInvalidDuration
		}
	}

	added := make([]ExerciseEntry, 0, len(batch))
	for _, sel := range batch {
		added = append(added, ExerciseEntry{
			ID:             l.newID(),
			Name:           sel.Exercise.Name,
			Duration:       sel.Duration,
			MET:            sel.Exercise.MET,
			CaloriesBurned: CaloriesBurned(sel.Exercise.MET, weightKg, sel.Duration),
		})
	}
	l.exercises = append(l.exercises, added...)
	return added, nil
}

func (l *DayLedger) RemoveFoodEntry(id string) error {
	i := slices.IndexFunc(l.foods, func(e FoodEntry) bool { return e.ID == id })
	if i < 0 {
		return ErrEntryNotFound
	}
	l.foods = slices.Delete(l.foods, i, i+1)
	return nil
}

func (l *DayLedger) RemoveFoodEntryAt(index int) error {
	if index < 0 || index >= len(l.foods) {
		return fmt.Errorf("%w: %d of %d food entries", ErrIndexOutOfRange, index, len(l.foods))
	}
	l.foods = slices.Delete(l.foods, index, index+1)
	return nil
}

func (l *DayLedger) RemoveExerciseEntry(id string) error {
	i := slices.IndexFunc(l.exercises, func(e ExerciseEntry) bool { return e.ID == id })
	if i < 0 {
		return ErrEntryNotFound
	}
	l.exercises = slices.Delete(l.exercises, i, i+1)
	return nil
}

func (l *DayLedger) RemoveExerciseEntryAt(index int) error {
	if index < 0 || index >= len(l.exercises) {
		return fmt.Errorf("%w: %d of %d exercise entries", ErrIndexOutOfRange, index, len(l.exercises))
	}
	l.exercises = slices.Delete(l.exercises, index, index+1)
	return nil
}

// SetWaterCount sets the number of filled glasses (0..MaxWaterGlasses).
func (l *DayLedger) SetWaterCount(n int) error {
	if n < 0 || n > MaxWaterGlasses {
		return ErrInvalidWater
	}
	l.water = n
	return nil
}

// Reset clears the day. Nothing rolls over on its own.
func (l *DayLedger) Reset() {
	l.foods = nil
	l.exercises = nil
	l.water = 0
}

func (l *DayLedger) Foods() []FoodEntry {
	return append([]FoodEntry{}, l.foods...)
}

func (l *DayLedger) Exercises() []ExerciseEntry {
	return append([]ExerciseEntry{}, l.exercises...)
}

func (l *DayLedger) WaterCount() int {
	return l.water
}
