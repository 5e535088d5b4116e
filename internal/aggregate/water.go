package aggregate

import (
	"errors"
	"math"
)

const (
	DefaultWaterGoal = 8
	MinWaterGoal     = 1
	MaxWaterGoal     = 20
)

var (
	ErrGoalReached    = errors.New("daily goal already reached")
	ErrNegativeIntake = errors.New("water intake cannot be negative")
)

// Increment adds a glass unless the goal is already met; in that case the
// count is returned unchanged together with ErrGoalReached.
func Increment(current, goal int) (int, error) {
	if current >= goal {
		return current, ErrGoalReached
	}
	return current + 1, nil
}

// Decrement removes a glass, refusing to go below zero.
func Decrement(current int) (int, error) {
	if current <= 0 {
		return current, ErrNegativeIntake
	}
	return current - 1, nil
}

func Reset() int { return 0 }

// WaterPercent is min(100, current/goal*100); a non-positive goal gives 0.
func WaterPercent(current, goal int) float64 {
	if goal <= 0 {
		return 0
	}
	return math.Min(100, float64(current)/float64(goal)*100)
}

// WaterBand colours the water bar: below a third danger, below two thirds
// warning, otherwise info.
func WaterBand(percent float64) Band {
	switch {
	case percent < 33:
		return BandDanger
	case percent < 66:
		return BandWarning
	default:
		return BandInfo
	}
}

// WaterSummary is the dashboard water card.
type WaterSummary struct {
	Glasses int     `json:"glasses"`
	Goal    int     `json:"goal"`
	Percent float64 `json:"percent"`
	Band    Band    `json:"band"`
}

func SummarizeWater(glasses, goal int) WaterSummary {
	p := WaterPercent(glasses, goal)
	return WaterSummary{Glasses: glasses, Goal: goal, Percent: p, Band: WaterBand(p)}
}

// ValidWaterGoal reports whether goal lies within the accepted range.
func ValidWaterGoal(goal int) bool {
	return goal >= MinWaterGoal && goal <= MaxWaterGoal
}
