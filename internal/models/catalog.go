package models

// FoodItem is a food catalog row. Rows are served in ID order.
type FoodItem struct {
	ID          uint    `gorm:"primaryKey"`
	Name        string  `gorm:"size:128;uniqueIndex;not null"`
	Category    string  `gorm:"size:64"`
	ServingSize float64 `gorm:"not null;default:0"` // g / ml
	Calories    float64 `gorm:"not null;default:0"` // kcal
	Protein     float64 `gorm:"not null;default:0"`
	Fat         float64 `gorm:"not null;default:0"`
	Carbs       float64 `gorm:"not null;default:0"`
}

// ExerciseItem is an exercise catalog row.
type ExerciseItem struct {
	ID       uint    `gorm:"primaryKey"`
	Name     string  `gorm:"size:128;uniqueIndex;not null"`
	Category string  `gorm:"size:64"`
	MET      float64 `gorm:"column:met_value;not null"`
}
