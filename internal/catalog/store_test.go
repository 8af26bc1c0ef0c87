package catalog

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testFoods = []FoodItem{
	{Name: "Oats", Category: "Grains", ServingSize: 40, Calories: 150, Protein: 5, Fat: 3, Carbs: 27},
	{Name: "Scrambled Egg", Category: "Protein", ServingSize: 60, Calories: 90, Protein: 6, Fat: 7, Carbs: 1},
	{Name: "Eggplant", Category: "Vegetables", ServingSize: 100, Calories: 25, Protein: 1, Fat: 0, Carbs: 6},
	{Name: "Boiled egg", Category: "Protein", ServingSize: 50, Calories: 78, Protein: 6, Fat: 5, Carbs: 1},
}

var testExercises = []ExerciseItem{
	{ID: 1, Name: "Running", Category: "Cardio", MET: 8},
	{ID: 2, Name: "Walking", Category: "Cardio", MET: 3.5},
	{ID: 3, Name: "Trail Running", Category: "Cardio", MET: 9},
}

type stubProvider struct {
	foods        []FoodItem
	exercises    []ExerciseItem
	foodsErr     error
	exercisesErr error
}

func (p stubProvider) Foods(context.Context) ([]FoodItem, error) { return p.foods, p.foodsErr }

func (p stubProvider) Exercises(context.Context) ([]ExerciseItem, error) {
	return p.exercises, p.exercisesErr
}

func names[T any](items []T, name func(T) string) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = name(it)
	}
	return out
}

func foodName(f FoodItem) string         { return f.Name }
func exerciseName(e ExerciseItem) string { return e.Name }

func TestSearchFoodsSubstring(t *testing.T) {
	s := NewStoreWith(testFoods, testExercises)

	got := s.SearchFoods("EGG", 0)
	assert.Equal(t, []string{"Scrambled Egg", "Eggplant", "Boiled egg"}, names(got, foodName))

	got = s.SearchFoods("  egg ", 2)
	assert.Equal(t, []string{"Scrambled Egg", "Eggplant"}, names(got, foodName))

	assert.Empty(t, s.SearchFoods("pizza", 10))
	assert.NotNil(t, s.SearchFoods("   ", 10))
	assert.Empty(t, s.SearchFoods("", 10))
}

func TestSearchDefaultLimit(t *testing.T) {
	var foods []FoodItem
	for i := 0; i < 25; i++ {
		foods = append(foods, FoodItem{Name: "Rice " + string(rune('a'+i))})
	}
	s := NewStoreWith(foods, nil)
	assert.Len(t, s.SearchFoods("rice", 0), DefaultSearchLimit)
	assert.Len(t, s.SearchFoods("rice", -3), DefaultSearchLimit)
	assert.Len(t, s.SearchFoods("rice", 20), 20)
}

func TestSearchHugeLimitIsCapped(t *testing.T) {
	var foods []FoodItem
	for i := 0; i < MaxSearchLimit+10; i++ {
		foods = append(foods, FoodItem{Name: fmt.Sprintf("Bean %d", i)})
	}
	s := NewStoreWith(foods, testExercises)

	assert.Len(t, s.SearchFoods("bean", 1<<62), MaxSearchLimit)
	assert.Len(t, s.SearchFoods("bean", 1_000_000_000), MaxSearchLimit)
	assert.Len(t, s.SearchExercises("running", 1<<62), 2)
}

func TestSearchExercises(t *testing.T) {
	s := NewStoreWith(testFoods, testExercises)

	got := s.SearchExercises("run", 10)
	assert.Equal(t, []string{"Running", "Trail Running"}, names(got, exerciseName))
	assert.Empty(t, s.SearchExercises(" ", 10))
}

func TestLookups(t *testing.T) {
	s := NewStoreWith(testFoods, testExercises)

	f, ok := s.FoodByName("Oats")
	require.True(t, ok)
	assert.Equal(t, 150.0, f.Calories)
	_, ok = s.FoodByName("oats")
	assert.False(t, ok)

	e, ok := s.ExerciseByID(2)
	require.True(t, ok)
	assert.Equal(t, "Walking", e.Name)
	_, ok = s.ExerciseByID(99)
	assert.False(t, ok)
}

func TestStoreReturnsCopies(t *testing.T) {
	s := NewStoreWith(testFoods, testExercises)
	foods := s.Foods()
	foods[0].Name = "changed"
	assert.Equal(t, "Oats", s.Foods()[0].Name)
}

func TestLoad(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Load(context.Background(), stubProvider{foods: testFoods, exercises: testExercises}))

	foods, exercises := s.Len()
	assert.Equal(t, 4, foods)
	assert.Equal(t, 3, exercises)
}

func TestLoadFailureLeavesCatalogEmpty(t *testing.T) {
	cases := []stubProvider{
		{foodsErr: errors.New("connection refused")},
		{foods: testFoods, exercisesErr: errors.New("timeout")},
	}
	for _, p := range cases {
		s := NewStoreWith(testFoods, testExercises)
		err := s.Load(context.Background(), p)
		assert.ErrorIs(t, err, ErrCatalogUnavailable)

		foods, exercises := s.Len()
		assert.Zero(t, foods)
		assert.Zero(t, exercises)
		assert.Empty(t, s.SearchFoods("egg", 10))
	}
}
