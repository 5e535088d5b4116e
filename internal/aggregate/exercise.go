package aggregate

import (
	"math"
	"sort"
	"strings"

	"github.com/saadjs/fittrack/internal/model"
)

const (
	// AssumedBodyWeightKg is the fixed body weight used by every MET estimate.
	AssumedBodyWeightKg = 70.0
	// StrengthMET is the flat MET value applied to strength training.
	StrengthMET = 4.5
	// DefaultCustomCardioMET is used for custom cardio exercises with no MET.
	DefaultCustomCardioMET = 5.0
)

// StrengthBonus selects how the sets multiplier of a strength entry is
// applied.
type StrengthBonus string

const (
	// StrengthBonusCompound multiplies the running calorie total, matching
	// the values historically shown to users.
	StrengthBonusCompound StrengthBonus = "compound"
	// StrengthBonusPerEntry multiplies only the entry's own contribution.
	StrengthBonusPerEntry StrengthBonus = "per-entry"
)

func (b StrengthBonus) Valid() bool {
	return b == StrengthBonusCompound || b == StrengthBonusPerEntry
}

// ExerciseSummary is the per-day exercise card.
type ExerciseSummary struct {
	TotalDurationMinutes    int                               `json:"total_duration_minutes"`
	EstimatedCaloriesBurned float64                           `json:"estimated_calories_burned"`
	MostRecent              *model.Keyed[model.ExerciseEntry] `json:"most_recent,omitempty"`
	Count                   int                               `json:"count"`
}

// AggregateExercise sums duration and estimated calories for one day of
// entries keyed by their chronological id. Entries are visited in ascending
// id order so the compounding strength bonus is deterministic.
func AggregateExercise(entries map[string]model.ExerciseEntry, bonus StrengthBonus) ExerciseSummary {
	ids := make([]string, 0, len(entries))
	for id := range entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := ExerciseSummary{Count: len(entries)}
	calories := 0.0
	for _, id := range ids {
		e := entries[id]
		out.TotalDurationMinutes += e.Duration
		hours := float64(e.Duration) / 60

		switch e.Category {
		case model.CategoryCardio:
			if e.MetValue != nil {
				calories += *e.MetValue * AssumedBodyWeightKg * hours
			}
		case model.CategoryStrength:
			own := StrengthMET * AssumedBodyWeightKg * hours
			mult := strengthMultiplier(e)
			if bonus == StrengthBonusPerEntry {
				calories += own * mult
			} else {
				calories += own
				calories *= mult
			}
		}
	}
	out.EstimatedCaloriesBurned = finite(calories)

	if len(ids) > 0 {
		last := ids[len(ids)-1]
		out.MostRecent = &model.Keyed[model.ExerciseEntry]{ID: last, Value: entries[last]}
	}
	return out
}

// EntryCalories estimates a single entry on its own.
func EntryCalories(e model.ExerciseEntry) float64 {
	return AggregateExercise(map[string]model.ExerciseEntry{"": e}, StrengthBonusPerEntry).EstimatedCaloriesBurned
}

// strengthMultiplier is 1 + floor(sets/3)*0.1 when both sets and reps are
// recorded, 1 otherwise.
func strengthMultiplier(e model.ExerciseEntry) float64 {
	if e.Sets == nil || e.Reps == nil || *e.Sets == 0 || *e.Reps == 0 {
		return 1
	}
	return 1 + math.Floor(float64(*e.Sets)/3)*0.1
}

// CatalogExercise is a loggable exercise template.
type CatalogExercise struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	MetValue    *float64 `json:"metValue,omitempty"`
	MuscleGroup string   `json:"muscleGroup,omitempty"`
	IsCustom    bool     `json:"isCustom,omitempty"`
}

func met(v float64) *float64 { return &v }

var builtinCatalog = []CatalogExercise{
	{Name: "Running", Category: model.CategoryCardio, MetValue: met(8.0)},
	{Name: "Walking", Category: model.CategoryCardio, MetValue: met(3.5)},
	{Name: "Cycling", Category: model.CategoryCardio, MetValue: met(7.0)},
	{Name: "Swimming", Category: model.CategoryCardio, MetValue: met(6.0)},
	{Name: "Jump Rope", Category: model.CategoryCardio, MetValue: met(10.0)},
	{Name: "Elliptical", Category: model.CategoryCardio, MetValue: met(5.0)},
	{Name: "Rowing", Category: model.CategoryCardio, MetValue: met(7.0)},
	{Name: "Stair Climbing", Category: model.CategoryCardio, MetValue: met(4.0)},
	{Name: "Push-ups", Category: model.CategoryStrength, MuscleGroup: "chest"},
	{Name: "Pull-ups", Category: model.CategoryStrength, MuscleGroup: "back"},
	{Name: "Squats", Category: model.CategoryStrength, MuscleGroup: "legs"},
	{Name: "Deadlifts", Category: model.CategoryStrength, MuscleGroup: "back"},
	{Name: "Bench Press", Category: model.CategoryStrength, MuscleGroup: "chest"},
	{Name: "Shoulder Press", Category: model.CategoryStrength, MuscleGroup: "shoulders"},
	{Name: "Lunges", Category: model.CategoryStrength, MuscleGroup: "legs"},
	{Name: "Bicep Curls", Category: model.CategoryStrength, MuscleGroup: "arms"},
}

// Catalog returns the built-in exercises followed by custom ones whose name
// is not already present in the same category.
func Catalog(custom []model.CustomExercise) []CatalogExercise {
	out := make([]CatalogExercise, len(builtinCatalog), len(builtinCatalog)+len(custom))
	copy(out, builtinCatalog)
	for _, c := range custom {
		dup := false
		for _, e := range out {
			if e.Category == c.Category && e.Name == c.Name {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		out = append(out, CatalogExercise{
			Name:        c.Name,
			Category:    c.Category,
			MetValue:    c.MetValue,
			MuscleGroup: c.MuscleGroup,
			IsCustom:    true,
		})
	}
	return out
}

// SearchCatalog matches names case-insensitively by substring. A blank
// query matches nothing.
func SearchCatalog(catalog []CatalogExercise, query string) []CatalogExercise {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	out := make([]CatalogExercise, 0)
	for _, e := range catalog {
		if strings.Contains(strings.ToLower(e.Name), q) {
			out = append(out, e)
		}
	}
	return out
}

// FindCatalog returns the exercise with exactly this name and category.
func FindCatalog(catalog []CatalogExercise, category, name string) (CatalogExercise, bool) {
	for _, e := range catalog {
		if e.Category == category && strings.EqualFold(e.Name, name) {
			return e, true
		}
	}
	return CatalogExercise{}, false
}
