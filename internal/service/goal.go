package service

import (
	"context"
	"fmt"

	"github.com/saadjs/fittrack/internal/aggregate"
	"github.com/saadjs/fittrack/internal/docstore"
	"github.com/saadjs/fittrack/internal/model"
)

type NutritionalGoalsInput struct {
	Calories float64 `validate:"gt=0"`
	Protein  float64 `validate:"gte=0"`
	Carbs    float64 `validate:"gte=0"`
	Fat      float64 `validate:"gte=0"`
}

func (s *Service) SetNutritionalGoals(ctx context.Context, userID string, in NutritionalGoalsInput) (model.NutritionalGoals, error) {
	if err := validateUser(userID); err != nil {
		return model.NutritionalGoals{}, err
	}
	if err := check(in); err != nil {
		return model.NutritionalGoals{}, err
	}
	goals := model.NutritionalGoals(in)
	if err := s.store.Patch(ctx, userPath(rootUsers, userID), map[string]any{"nutritionalGoals": goals}); err != nil {
		return model.NutritionalGoals{}, fmt.Errorf("save nutritional goals: %w", err)
	}
	return goals, nil
}

// NutritionalGoals returns the profile goals, filling unset macros from the
// configured defaults.
func (s *Service) NutritionalGoals(ctx context.Context, userID string) (aggregate.Totals, error) {
	if err := validateUser(userID); err != nil {
		return aggregate.Totals{}, err
	}
	return s.nutritionalGoals(ctx, userID)
}

func (s *Service) nutritionalGoals(ctx context.Context, userID string) (aggregate.Totals, error) {
	stored, _, err := docstore.Get[model.NutritionalGoals](ctx, s.store, userPath(rootUsers, userID, "nutritionalGoals"))
	if err != nil {
		return aggregate.Totals{}, fmt.Errorf("load nutritional goals: %w", err)
	}
	def := s.opts.DefaultGoals
	pick := func(v, d float64) float64 {
		if v > 0 {
			return v
		}
		return d
	}
	return aggregate.Totals{
		Calories: pick(stored.Calories, def.Calories),
		Protein:  pick(stored.Protein, def.Protein),
		Carbs:    pick(stored.Carbs, def.Carbs),
		Fat:      pick(stored.Fat, def.Fat),
	}, nil
}
