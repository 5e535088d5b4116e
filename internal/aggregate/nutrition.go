// Package aggregate derives daily and weekly metrics from raw tracker
// records. Every function is pure: callers fetch the records and pass them
// in, nothing here touches the store.
package aggregate

import (
	"math"

	"github.com/saadjs/fittrack/internal/model"
)

// Totals is the macro sum for a day, or a per-macro goal/remaining value.
type Totals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// MealEntries mirrors foodEntries/{uid}/{date}: meal -> entry id -> entry.
type MealEntries map[model.MealName]map[string]model.FoodEntry

// AggregateDay sums all entries of all meals. Absent nutrients decode as 0,
// so a nil or empty map yields zero totals.
func AggregateDay(meals MealEntries) Totals {
	var t Totals
	for _, entries := range meals {
		for _, e := range entries {
			t.Calories += finite(e.Calories)
			t.Protein += finite(e.Protein)
			t.Carbs += finite(e.Carbs)
			t.Fat += finite(e.Fat)
		}
	}
	return t
}

// Remaining is max(0, goal-consumed) for every macro.
func Remaining(goal, consumed Totals) Totals {
	return Totals{
		Calories: math.Max(0, goal.Calories-consumed.Calories),
		Protein:  math.Max(0, goal.Protein-consumed.Protein),
		Carbs:    math.Max(0, goal.Carbs-consumed.Carbs),
		Fat:      math.Max(0, goal.Fat-consumed.Fat),
	}
}

// PercentOfGoal returns round(consumed/goal*100) clamped to [0,100], or 0
// when the goal is not positive.
func PercentOfGoal(consumed, goal float64) int {
	if goal <= 0 || math.IsNaN(consumed) {
		return 0
	}
	p := math.Round(consumed / goal * 100)
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return int(p)
}

// Band is the colour class of a progress bar.
type Band string

const (
	BandSuccess Band = "success"
	BandWarning Band = "warning"
	BandDanger  Band = "danger"
	BandInfo    Band = "info"
)

// CalorieBand colours the calorie bar from the raw ratio: over the goal is
// danger, above 85% warning.
func CalorieBand(consumed, goal float64) Band {
	if goal <= 0 {
		return BandSuccess
	}
	p := consumed / goal * 100
	switch {
	case p > 100:
		return BandDanger
	case p > 85:
		return BandWarning
	default:
		return BandSuccess
	}
}

// MacroProgress is a single progress bar on the dashboard.
type MacroProgress struct {
	Consumed  float64 `json:"consumed"`
	Goal      float64 `json:"goal"`
	Remaining float64 `json:"remaining"`
	Percent   int     `json:"percent"`
}

// NutritionSummary is the dashboard nutrition card.
type NutritionSummary struct {
	Consumed    Totals        `json:"consumed"`
	Goal        Totals        `json:"goal"`
	Remaining   Totals        `json:"remaining"`
	Calories    MacroProgress `json:"calories"`
	Protein     MacroProgress `json:"protein"`
	Carbs       MacroProgress `json:"carbs"`
	Fat         MacroProgress `json:"fat"`
	CalorieBand Band          `json:"calorie_band"`
}

func Summarize(consumed, goal Totals) NutritionSummary {
	rem := Remaining(goal, consumed)
	bar := func(c, g, r float64) MacroProgress {
		return MacroProgress{Consumed: c, Goal: g, Remaining: r, Percent: PercentOfGoal(c, g)}
	}
	return NutritionSummary{
		Consumed:    consumed,
		Goal:        goal,
		Remaining:   rem,
		Calories:    bar(consumed.Calories, goal.Calories, rem.Calories),
		Protein:     bar(consumed.Protein, goal.Protein, rem.Protein),
		Carbs:       bar(consumed.Carbs, goal.Carbs, rem.Carbs),
		Fat:         bar(consumed.Fat, goal.Fat, rem.Fat),
		CalorieBand: CalorieBand(consumed.Calories, goal.Calories),
	}
}

// ProgressBar is one bar of the daily progress chart.
type ProgressBar struct {
	Label   string `json:"label"`
	Percent int    `json:"percent"`
}

// DailyProgress builds the five-bar chart: calories, water, protein, carbs,
// fat, each as a percentage of its goal.
func DailyProgress(consumed Totals, glasses int, goal Totals, waterGoal int) []ProgressBar {
	return []ProgressBar{
		{Label: "Calories", Percent: PercentOfGoal(consumed.Calories, goal.Calories)},
		{Label: "Water", Percent: PercentOfGoal(float64(glasses), float64(waterGoal))},
		{Label: "Protein", Percent: PercentOfGoal(consumed.Protein, goal.Protein)},
		{Label: "Carbs", Percent: PercentOfGoal(consumed.Carbs, goal.Carbs)},
		{Label: "Fat", Percent: PercentOfGoal(consumed.Fat, goal.Fat)},
	}
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
