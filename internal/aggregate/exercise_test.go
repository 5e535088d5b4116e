package aggregate_test

import (
	"math"
	"testing"

	"github.com/saadjs/fittrack/internal/aggregate"
	"github.com/saadjs/fittrack/internal/model"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestAggregateExerciseCardio(t *testing.T) {
	t.Parallel()

	entries := map[string]model.ExerciseEntry{
		"0001": {Name: "Running", Category: "cardio", Duration: 30, MetValue: floatPtr(8)},
	}
	got := aggregate.AggregateExercise(entries, aggregate.StrengthBonusCompound)
	if !approx(got.EstimatedCaloriesBurned, 280) {
		t.Fatalf("expected 280 kcal, got %v", got.EstimatedCaloriesBurned)
	}
	if got.TotalDurationMinutes != 30 || got.Count != 1 {
		t.Fatalf("unexpected summary: %+v", got)
	}
}

func TestAggregateExerciseStrengthMultiplier(t *testing.T) {
	t.Parallel()

	entries := map[string]model.ExerciseEntry{
		"0001": {Name: "Squats", Category: "strength", Duration: 20, Sets: intPtr(6), Reps: intPtr(10)},
	}
	got := aggregate.AggregateExercise(entries, aggregate.StrengthBonusCompound)
	if !approx(got.EstimatedCaloriesBurned, 126) {
		t.Fatalf("expected 126 kcal, got %v", got.EstimatedCaloriesBurned)
	}
}

func TestAggregateExerciseStrengthWithoutRepsHasNoBonus(t *testing.T) {
	t.Parallel()

	entries := map[string]model.ExerciseEntry{
		"0001": {Name: "Squats", Category: "strength", Duration: 20, Sets: intPtr(6)},
	}
	got := aggregate.AggregateExercise(entries, aggregate.StrengthBonusCompound)
	if !approx(got.EstimatedCaloriesBurned, 105) {
		t.Fatalf("expected 105 kcal, got %v", got.EstimatedCaloriesBurned)
	}
}

func TestAggregateExerciseCompoundingVersusPerEntry(t *testing.T) {
	t.Parallel()

	entries := map[string]model.ExerciseEntry{
		"0001": {Name: "Running", Category: "cardio", Duration: 30, MetValue: floatPtr(8)},
		"0002": {Name: "Squats", Category: "strength", Duration: 20, Sets: intPtr(6), Reps: intPtr(10)},
	}

	compound := aggregate.AggregateExercise(entries, aggregate.StrengthBonusCompound)
	// (280 + 105) * 1.2
	if !approx(compound.EstimatedCaloriesBurned, 462) {
		t.Fatalf("expected compounded 462 kcal, got %v", compound.EstimatedCaloriesBurned)
	}

	perEntry := aggregate.AggregateExercise(entries, aggregate.StrengthBonusPerEntry)
	// 280 + 105 * 1.2
	if !approx(perEntry.EstimatedCaloriesBurned, 406) {
		t.Fatalf("expected per-entry 406 kcal, got %v", perEntry.EstimatedCaloriesBurned)
	}
}

func TestAggregateExerciseUnknownCategoryCountsDurationOnly(t *testing.T) {
	t.Parallel()

	entries := map[string]model.ExerciseEntry{
		"0001": {Name: "Yoga", Category: "flexibility", Duration: 45},
		"0002": {Name: "Mystery cardio", Category: "cardio", Duration: 15},
		// Categories are matched exactly; writes store them lowercased.
		"0003": {Name: "Running", Category: "Cardio", Duration: 15, MetValue: floatPtr(8)},
	}
	got := aggregate.AggregateExercise(entries, aggregate.StrengthBonusCompound)
	if got.EstimatedCaloriesBurned != 0 {
		t.Fatalf("expected 0 kcal, got %v", got.EstimatedCaloriesBurned)
	}
	if got.TotalDurationMinutes != 75 {
		t.Fatalf("expected 75 minutes, got %d", got.TotalDurationMinutes)
	}
}

func TestAggregateExerciseMostRecentIsGreatestKey(t *testing.T) {
	t.Parallel()

	entries := map[string]model.ExerciseEntry{
		"01HZZ": {Name: "Later", Category: "cardio", Duration: 10, Timestamp: 1},
		"01HAA": {Name: "Earlier", Category: "cardio", Duration: 10, Timestamp: 999},
		"019ZZ": {Name: "Earliest", Category: "cardio", Duration: 10},
	}
	got := aggregate.AggregateExercise(entries, aggregate.StrengthBonusCompound)
	if got.MostRecent == nil || got.MostRecent.ID != "01HZZ" || got.MostRecent.Value.Name != "Later" {
		t.Fatalf("expected most recent 01HZZ, got %+v", got.MostRecent)
	}

	empty := aggregate.AggregateExercise(nil, aggregate.StrengthBonusCompound)
	if empty.MostRecent != nil || empty.Count != 0 {
		t.Fatalf("expected empty summary, got %+v", empty)
	}
}

func TestSearchCatalogIncludesCustom(t *testing.T) {
	t.Parallel()

	catalog := aggregate.Catalog([]model.CustomExercise{
		{Name: "Trail Running", Category: "cardio", MetValue: floatPtr(9), IsCustom: true},
		{Name: "Running", Category: "cardio", MetValue: floatPtr(1), IsCustom: true},
	})
	got := aggregate.SearchCatalog(catalog, "RUN")
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %+v", got)
	}
	if got[0].Name != "Running" || *got[0].MetValue != 8 {
		t.Fatalf("expected built-in running first, got %+v", got[0])
	}
	if !got[1].IsCustom {
		t.Fatalf("expected custom match, got %+v", got[1])
	}
	if len(aggregate.SearchCatalog(catalog, "  ")) != 0 {
		t.Fatalf("expected blank query to match nothing")
	}
}
