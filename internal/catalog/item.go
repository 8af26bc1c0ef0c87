// Package catalog holds the read-only food and exercise reference data that
// users pick from when logging meals and workouts.
package catalog

// FoodItem is one row of the food catalog. Name is the unique key.
type FoodItem struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	ServingSize float64 `json:"servingSize"` // g or ml
	Calories    float64 `json:"calories"`    // kcal per serving
	Protein     float64 `json:"protein"`
	Fat         float64 `json:"fat"`
	Carbs       float64 `json:"carbs"`
}

// ExerciseItem is one row of the exercise catalog.
type ExerciseItem struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	MET      float64 `json:"metValue"`
}
