package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/saadjs/fittrack/internal/aggregate"
	"github.com/saadjs/fittrack/internal/docstore"
	"github.com/saadjs/fittrack/internal/model"
)

// FoodInput is a food diary entry before it is stamped and stored.
type FoodInput struct {
	Name        string  `validate:"required"`
	ServingSize float64 `validate:"gte=0"`
	ServingUnit string
	Calories    float64 `validate:"gte=0"`
	Protein     float64 `validate:"gte=0"`
	Carbs       float64 `validate:"gte=0"`
	Fat         float64 `validate:"gte=0"`
	IsCustom    bool
}

func (in FoodInput) entry(ts int64) model.FoodEntry {
	unit := strings.TrimSpace(in.ServingUnit)
	if in.ServingSize > 0 && unit == "" {
		unit = "g"
	}
	return model.FoodEntry{
		Name:        strings.TrimSpace(in.Name),
		ServingSize: in.ServingSize,
		ServingUnit: unit,
		Calories:    in.Calories,
		Protein:     in.Protein,
		Carbs:       in.Carbs,
		Fat:         in.Fat,
		IsCustom:    in.IsCustom,
		Timestamp:   ts,
	}
}

func parseMeal(meal string) (model.MealName, error) {
	m := model.MealName(strings.ToLower(strings.TrimSpace(meal)))
	if !m.Valid() {
		return "", invalid("meal", "must be one of: breakfast, lunch, dinner, snacks")
	}
	return m, nil
}

// AddFood logs a food entry under date and meal and returns its id.
func (s *Service) AddFood(ctx context.Context, userID, date, meal string, in FoodInput) (string, error) {
	if err := validateUserDate(userID, date); err != nil {
		return "", err
	}
	m, err := parseMeal(meal)
	if err != nil {
		return "", err
	}
	in.Name = strings.TrimSpace(in.Name)
	if err := check(in); err != nil {
		return "", err
	}
	id, err := s.store.Append(ctx, userPath(rootFood, userID, date, string(m)), in.entry(s.nowMillis()))
	if err != nil {
		s.log.Error("add food entry failed", logFields(userID, date, err)...)
		return "", fmt.Errorf("add food entry: %w", err)
	}
	return id, nil
}

// FoodDay returns a day's entries grouped by meal.
func (s *Service) FoodDay(ctx context.Context, userID, date string) (aggregate.MealEntries, error) {
	if err := validateUserDate(userID, date); err != nil {
		return nil, err
	}
	return s.foodDay(ctx, userID, date)
}

func (s *Service) foodDay(ctx context.Context, userID, date string) (aggregate.MealEntries, error) {
	raw, err := docstore.Children[map[string]model.FoodEntry](ctx, s.store, userPath(rootFood, userID, date))
	if err != nil {
		return nil, fmt.Errorf("load food entries for %s: %w", date, err)
	}
	out := make(aggregate.MealEntries, len(raw))
	for meal, entries := range raw {
		out[model.MealName(meal)] = entries
	}
	return out, nil
}

// DeleteFood removes one entry. A missing entry yields ErrNotFound.
func (s *Service) DeleteFood(ctx context.Context, userID, date, meal, id string) error {
	if err := validateUserDate(userID, date); err != nil {
		return err
	}
	m, err := parseMeal(meal)
	if err != nil {
		return err
	}
	if err := validateID(id); err != nil {
		return err
	}
	return s.deleteExisting(ctx, userPath(rootFood, userID, date, string(m), id), "food entry")
}

// AddCustomFood saves a reusable food for later lookups.
func (s *Service) AddCustomFood(ctx context.Context, userID string, in FoodInput) (string, error) {
	if err := validateUser(userID); err != nil {
		return "", err
	}
	in.Name = strings.TrimSpace(in.Name)
	in.IsCustom = true
	if err := check(in); err != nil {
		return "", err
	}
	id, err := s.store.Append(ctx, userPath(rootCustomFoods, userID), in.entry(s.nowMillis()))
	if err != nil {
		return "", fmt.Errorf("add custom food: %w", err)
	}
	return id, nil
}

// CustomFoods lists custom foods in creation order.
func (s *Service) CustomFoods(ctx context.Context, userID string) ([]model.Keyed[model.FoodEntry], error) {
	if err := validateUser(userID); err != nil {
		return nil, err
	}
	rows, err := docstore.Ordered[model.FoodEntry](ctx, s.store, userPath(rootCustomFoods, userID), docstore.OrderByKey, 0)
	if err != nil {
		return nil, fmt.Errorf("list custom foods: %w", err)
	}
	out := make([]model.Keyed[model.FoodEntry], 0, len(rows))
	for _, r := range rows {
		out = append(out, model.Keyed[model.FoodEntry]{ID: r.Key, Value: r.Value})
	}
	return out, nil
}

func (s *Service) DeleteCustomFood(ctx context.Context, userID, id string) error {
	if err := validateUser(userID); err != nil {
		return err
	}
	if err := validateID(id); err != nil {
		return err
	}
	return s.deleteExisting(ctx, userPath(rootCustomFoods, userID, id), "custom food")
}

func (s *Service) deleteExisting(ctx context.Context, path, what string) error {
	raw, err := s.store.Read(ctx, path)
	if err != nil {
		return fmt.Errorf("load %s: %w", what, err)
	}
	if raw == nil {
		return fmt.Errorf("%s %s: %w", what, path[strings.LastIndex(path, "/")+1:], ErrNotFound)
	}
	if err := s.store.Delete(ctx, path); err != nil {
		return fmt.Errorf("delete %s: %w", what, err)
	}
	return nil
}
