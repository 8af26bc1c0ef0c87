package tracker

import "math"

// Macros holds protein, carbohydrate and fat values in grams (or percent).
type Macros struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fat     float64 `json:"fat"`
}

// DailySummary is the progress view derived from a ledger and a profile.
type DailySummary struct {
	TotalIntake      float64 `json:"totalIntake"`
	TotalBurned      int     `json:"totalBurned"`
	NetCalories      float64 `json:"netCalories"`
	RemainingGoal    float64 `json:"remainingGoal"`
	PercentageOfGoal float64 `json:"percentageOfGoal"`
	MacroTotals      Macros  `json:"macroTotals"`
	MacroPercentages Macros  `json:"macroPercentages"`

	MealsLogged int                      `json:"mealsLogged"`
	WaterCount  int                      `json:"waterCount"`
	ByMeal      map[MealType][]FoodEntry `json:"byMeal"`
	Exercises   []ExerciseEntry          `json:"exercises"`
}

// Summary recomputes every total from the current entries.
func (l *DayLedger) Summary(p Profile) DailySummary {
	s := DailySummary{
		WaterCount: l.water,
		ByMeal:     make(map[MealType][]FoodEntry, len(MealTypes)),
		Exercises:  l.Exercises(),
	}
	for _, m := range MealTypes {
		s.ByMeal[m] = []FoodEntry{}
	}

	for _, f := range l.foods {
		s.TotalIntake += f.Calories
		s.MacroTotals.Protein += f.Protein
		s.MacroTotals.Carbs += f.Carbs
		s.MacroTotals.Fat += f.Fat
		s.ByMeal[f.MealType] = append(s.ByMeal[f.MealType], f)
	}
	for _, e := range l.exercises {
		s.TotalBurned += e.CaloriesBurned
	}
	for _, m := range MealTypes {
		if len(s.ByMeal[m]) > 0 {
			s.MealsLogged++
		}
	}

	s.NetCalories = s.TotalIntake - float64(s.TotalBurned)
	s.RemainingGoal = math.Max(0, p.DailyCalorieGoal-s.NetCalories)
	s.PercentageOfGoal = percentOf(s.TotalIntake, p.DailyCalorieGoal)
	s.MacroPercentages = Macros{
		Protein: percentOf(s.MacroTotals.Protein, p.MacroGoals.Protein),
		Carbs:   percentOf(s.MacroTotals.Carbs, p.MacroGoals.Carbs),
		Fat:     percentOf(s.MacroTotals.Fat, p.MacroGoals.Fat),
	}
	return s
}

// percentOf returns total/goal as a percentage capped at 100; a goal of
// zero (or less) reports 0.
func percentOf(total, goal float64) float64 {
	if goal <= 0 {
		return 0
	}
	return math.Min(100, total/goal*100)
}
