// Package provider defines the nutrition lookup contract shared by the
// external food-composition clients.
package provider

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/time/rate"
)

var ErrNoResults = errors.New("no foods found")

// FoodFacts is one external search result. Nutrients are per 100 g.
type FoodFacts struct {
	Name            string  `json:"name"`
	Brand           string  `json:"brand,omitempty"`
	CaloriesPer100g float64 `json:"caloriesPer100g"`
	ProteinPer100g  float64 `json:"proteinPer100g"`
	CarbsPer100g    float64 `json:"carbsPer100g"`
	FatPer100g      float64 `json:"fatPer100g"`
	Source          string  `json:"source"`
	SourceID        string  `json:"sourceId,omitempty"`
}

type Searcher interface {
	Search(ctx context.Context, query string) ([]FoodFacts, error)
}

// Limited throttles calls to the wrapped Searcher.
type Limited struct {
	next    Searcher
	limiter *rate.Limiter
}

// NewLimited allows perSecond calls with a burst of one.
func NewLimited(next Searcher, perSecond float64) *Limited {
	return &Limited{next: next, limiter: rate.NewLimiter(rate.Limit(perSecond), 1)}
}

func (l *Limited) Search(ctx context.Context, query string) ([]FoodFacts, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("wait for lookup rate limit: %w", err)
	}
	return l.next.Search(ctx, query)
}

// None is the disabled provider; it always returns no results.
type None struct{}

func (None) Search(context.Context, string) ([]FoodFacts, error) { return nil, nil }
