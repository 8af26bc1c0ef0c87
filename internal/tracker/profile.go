package tracker

import (
	"fmt"
	"math"
)

type BodyField string

const (
	Weight BodyField = "weight"
	Height BodyField = "height"
)

type BodyValues struct {
	Weight float64 `json:"weight"` // kg
	Height float64 `json:"height"` // cm
}

// MacroGoals are daily gram targets.
type MacroGoals struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fat     float64 `json:"fat"`
}

// Profile holds body metrics and daily goals.
type Profile struct {
	BodyValues       BodyValues `json:"bodyValues"`
	MacroGoals       MacroGoals `json:"macroGoals"`
	DailyCalorieGoal float64    `json:"dailyCalorieGoal"`
}

// DefaultProfile matches the starting values of a fresh account.
func DefaultProfile() Profile {
	return Profile{
		BodyValues:       BodyValues{Weight: 70.0, Height: 175.0},
		MacroGoals:       MacroGoals{Protein: 150, Carbs: 250, Fat: 65},
		DailyCalorieGoal: 2000,
	}
}

// Bounds is an inclusive range. The zero value means unbounded.
type Bounds struct {
	Min float64
	Max float64
}

func (b Bounds) contains(v float64) bool {
	if b.Min == 0 && b.Max == 0 {
		return true
	}
	return v >= b.Min && v <= b.Max
}

// BodyLimits bounds the values AdjustBodyValue may produce.
type BodyLimits struct {
	Weight Bounds
	Height Bounds
}

// AdjustBodyValue adds delta to field and rounds to one decimal. A result
// outside limits is rejected and the profile is left unchanged.
func (p *Profile) AdjustBodyValue(field BodyField, delta float64, limits BodyLimits) (float64, error) {
	var (
		cur    *float64
		bounds Bounds
	)
	switch field {
	case Weight:
		cur, bounds = &p.BodyValues.Weight, limits.Weight
	case Height:
		cur, bounds = &p.BodyValues.Height, limits.Height
	default:
		return 0, ErrUnknownBodyField
	}

	next := round1(*cur + delta)
	if !bounds.contains(next) {
		return *cur, fmt.Errorf("%w: %s %.1f not in [%.1f, %.1f]", ErrBodyValueOutOfRange, field, next, bounds.Min, bounds.Max)
	}
	*cur = next
	return next, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
