package service

import (
	"context"
	"errors"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/saadjs/fittrack/internal/model"
	"github.com/saadjs/fittrack/internal/provider"
)

// FoodSearchResult lists custom foods first, then external matches.
type FoodSearchResult struct {
	Custom   []model.Keyed[model.FoodEntry] `json:"custom"`
	External []provider.FoodFacts           `json:"external"`
	// Degraded is set when the external lookup failed.
	Degraded bool `json:"degraded,omitempty"`
}

// SearchFoods matches custom foods by case-insensitive substring and asks the
// external lookup for the same query. Lookup failures are logged and leave
// External empty.
func (s *Service) SearchFoods(ctx context.Context, userID, query string) (FoodSearchResult, error) {
	out := FoodSearchResult{Custom: []model.Keyed[model.FoodEntry]{}, External: []provider.FoodFacts{}}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return out, nil
	}
	custom, err := s.CustomFoods(ctx, userID)
	if err != nil {
		return FoodSearchResult{}, err
	}
	for _, c := range custom {
		if strings.Contains(strings.ToLower(c.Value.Name), q) {
			out.Custom = append(out.Custom, c)
		}
	}

	ext, err := s.lookup.Search(ctx, query)
	switch {
	case err == nil:
		out.External = append(out.External, ext...)
	case errors.Is(err, provider.ErrNoResults):
	default:
		s.log.Warn("food lookup failed, showing custom foods only", zap.String("query", query), zap.Error(err))
		out.Degraded = true
	}
	return out, nil
}

// FoodFromFacts turns an external per-100 g result into a diary entry for
// the given number of grams.
func FoodFromFacts(f provider.FoodFacts, grams float64) FoodInput {
	if grams <= 0 {
		grams = 100
	}
	scale := grams / 100
	round := func(v float64) float64 { return math.Round(v*scale*10) / 10 }
	return FoodInput{
		Name:        f.Name,
		ServingSize: grams,
		ServingUnit: "g",
		Calories:    round(f.CaloriesPer100g),
		Protein:     round(f.ProteinPer100g),
		Carbs:       round(f.CarbsPer100g),
		Fat:         round(f.FatPer100g),
	}
}
