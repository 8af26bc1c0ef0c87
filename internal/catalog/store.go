package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// DefaultSearchLimit caps search results when the caller passes limit <= 0.
// MaxSearchLimit bounds any larger limit.
const (
	DefaultSearchLimit = 10
	MaxSearchLimit     = 50
)

// ErrCatalogUnavailable is returned when the provider could not be read.
var ErrCatalogUnavailable = errors.New("catalog unavailable")

// Provider is the external source of catalog data.
type Provider interface {
	Foods(ctx context.Context) ([]FoodItem, error)
	Exercises(ctx context.Context) ([]ExerciseItem, error)
}

// Store serves read-only searches over the loaded catalog.
type Store struct {
	mu        sync.RWMutex
	foods     []FoodItem
	exercises []ExerciseItem
}

func NewStore() *Store {
	return &Store{}
}

// NewStoreWith returns a store preloaded with the given items.
func NewStoreWith(foods []FoodItem, exercises []ExerciseItem) *Store {
	s := &Store{}
	s.replace(foods, exercises)
	return s
}

// Load replaces the catalog with the provider's data. On failure the catalog
// is left empty and the error wraps ErrCatalogUnavailable; no retry is made.
func (s *Store) Load(ctx context.Context, p Provider) error {
	foods, err := p.Foods(ctx)
	if err != nil {
		s.replace(nil, nil)
		return fmt.Errorf("%w: foods: %v", ErrCatalogUnavailable, err)
	}
	exercises, err := p.Exercises(ctx)
	if err != nil {
		s.replace(nil, nil)
		return fmt.Errorf("%w: exercises: %v", ErrCatalogUnavailable, err)
	}
	s.replace(foods, exercises)
	return nil
}

func (s *Store) replace(foods []FoodItem, exercises []ExerciseItem) {
	f := append([]FoodItem(nil), foods...)
	e := append([]ExerciseItem(nil), exercises...)

	s.mu.Lock()
	s.foods = f
	s.exercises = e
	s.mu.Unlock()
}

// Foods returns a copy of the food catalog in catalog order.
func (s *Store) Foods() []FoodItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]FoodItem(nil), s.foods...)
}

// Exercises returns a copy of the exercise catalog in catalog order.
func (s *Store) Exercises() []ExerciseItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]ExerciseItem(nil), s.exercises...)
}

// Len reports how many foods and exercises are loaded.
func (s *Store) Len() (foods, exercises int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.foods), len(s.exercises)
}

// SearchFoods returns foods whose name contains query, case-insensitively,
// in catalog order and truncated to limit. A blank query matches nothing.
func (s *Store) SearchFoods(query string, limit int) []FoodItem {
	q, limit, ok := normalize(query, limit)
	if !ok {
		return []FoodItem{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]FoodItem, 0, min(limit, len(s.foods)))
	for _, f := range s.foods {
		if strings.Contains(strings.ToLower(f.Name), q) {
			out = append(out, f)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

// SearchExercises has the same contract as SearchFoods.
func (s *Store) SearchExercises(query string, limit int) []ExerciseItem {
	q, limit, ok := normalize(query, limit)
	if !ok {
		return []ExerciseItem{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]ExerciseItem, 0, min(limit, len(s.exercises)))
	for _, e := range s.exercises {
		if strings.Contains(strings.ToLower(e.Name), q) {
			out = append(out, e)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

// FoodByName finds a food by exact name.
func (s *Store) FoodByName(name string) (FoodItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, f := range s.foods {
		if f.Name == name {
			return f, true
		}
	}
	return FoodItem{}, false
}

// ExerciseByID finds an exercise by id.
func (s *Store) ExerciseByID(id uint) (ExerciseItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.exercises {
		if e.ID == id {
			return e, true
		}
	}
	return ExerciseItem{}, false
}

func normalize(query string, limit int) (string, int, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return "", 0, false
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	if limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}
	return q, limit, true
}
