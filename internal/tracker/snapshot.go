package tracker

import (
	"encoding/json"
	"fmt"
)

// Snapshot is the persisted form of a ledger plus its profile.
type Snapshot struct {
	Foods            []FoodEntry     `json:"foods"`
	Exercises        []ExerciseEntry `json:"exercises"`
	WaterCount       int             `json:"waterCount"`
	DailyCalorieGoal float64         `json:"dailyCalorieGoal"`
	MacroGoals       MacroGoals      `json:"macroGoals"`
	BodyValues       BodyValues      `json:"bodyValues"`
	AccountID        string          `json:"accountId,omitempty"`
}

// NewSnapshot captures the ledger and profile.
func NewSnapshot(l *DayLedger, p Profile, accountID string) Snapshot {
	return Snapshot{
		Foods:            l.Foods(),
		Exercises:        l.Exercises(),
		WaterCount:       l.WaterCount(),
		DailyCalorieGoal: p.DailyCalorieGoal,
		MacroGoals:       p.MacroGoals,
		BodyValues:       p.BodyValues,
		AccountID:        accountID,
	}
}

func (s Snapshot) Profile() Profile {
	return Profile{
		BodyValues:       s.BodyValues,
		MacroGoals:       s.MacroGoals,
		DailyCalorieGoal: s.DailyCalorieGoal,
	}
}

// Ledger rebuilds a ledger holding the snapshot's entries.
func (s Snapshot) Ledger() *DayLedger {
	l := NewDayLedger()
	l.foods = append([]FoodEntry(nil), s.Foods...)
	l.exercises = append([]ExerciseEntry(nil), s.Exercises...)
	l.water = s.WaterCount
	return l
}

// EncodeSnapshot serializes s as JSON.
func EncodeSnapshot(s Snapshot) ([]byte, error) {
	if s.Foods == nil {
		s.Foods = []FoodEntry{}
	}
	if s.Exercises == nil {
		s.Exercises = []ExerciseEntry{}
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return b, nil
}

// DecodeSnapshot parses data on top of defaults: fields missing from data
// keep the default profile values, so older snapshots still load.
func DecodeSnapshot(data []byte, defaults Profile) (Snapshot, error) {
	s := NewSnapshot(NewDayLedger(), defaults, "")
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	if s.Foods == nil {
		s.Foods = []FoodEntry{}
	}
	if s.Exercises == nil {
		s.Exercises = []ExerciseEntry{}
	}
	if s.WaterCount < 0 || s.WaterCount > MaxWaterGlasses {
		s.WaterCount = 0
	}
	return s, nil
}
