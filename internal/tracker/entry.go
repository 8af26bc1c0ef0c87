package tracker

import (
	"math"
	"strings"

	"besfit/internal/catalog"
)

type MealType string

const (
	Breakfast MealType = "breakfast"
	Lunch     MealType = "lunch"
	Dinner    MealType = "dinner"
	Snack     MealType = "snack"
)

// MealTypes lists meal types in display order.
var MealTypes = []MealType{Breakfast, Lunch, Dinner, Snack}

func (m MealType) Valid() bool {
	switch m {
	case Breakfast, Lunch, Dinner, Snack:
		return true
	}
	return false
}

// ParseMealType accepts a meal type name in any case.
func ParseMealType(s string) (MealType, error) {
	m := MealType(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", ErrInvalidMealType
	}
	return m, nil
}

// FoodEntry is a logged food. It copies the catalog values at logging time.
type FoodEntry struct {
	ID       string   `json:"id"`
	MealType MealType `json:"mealType"`
	Name     string   `json:"name"`
	Calories float64  `json:"calories"`
	Protein  float64  `json:"protein"`
	Carbs    float64  `json:"carbs"`
	Fat      float64  `json:"fat"`
}

// ExerciseEntry is a logged workout with its derived calorie burn.
type ExerciseEntry struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Duration       float64 `json:"duration"` // minutes
	MET            float64 `json:"met"`
	CaloriesBurned int     `json:"caloriesBurned"`
}

// FoodSelection is one item of a food batch chosen by the user.
type FoodSelection struct {
	Food     catalog.FoodItem
	MealType MealType
}

// ExerciseSelection is one item of an exercise batch chosen by the user.
type ExerciseSelection struct {
	Exercise catalog.ExerciseItem
	Duration float64 // minutes
}

// CaloriesBurned returns round(MET * weightKg * minutes * 3.5 / 200).
func CaloriesBurned(met, weightKg, minutes float64) int {
	return int(math.Round(met * weightKg * minutes * 3.5 / 200))
}
