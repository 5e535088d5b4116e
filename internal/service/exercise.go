package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/saadjs/fittrack/internal/aggregate"
	"github.com/saadjs/fittrack/internal/docstore"
	"github.com/saadjs/fittrack/internal/model"
)

type ExerciseInput struct {
	Name     string `validate:"required"`
	Category string `validate:"oneof=cardio strength"`
	Duration int    `validate:"gt=0"`
	Notes    string
	// cardio
	Distance     *float64 `validate:"omitempty,gt=0"`
	DistanceUnit string   `validate:"omitempty,oneof=km mi"`
	Intensity    string   `validate:"omitempty,oneof=low moderate high"`
	MetValue     *float64 `validate:"omitempty,gt=0"`
	// strength
	Sets       *int     `validate:"omitempty,gt=0"`
	Reps       *int     `validate:"omitempty,gt=0"`
	Weight     *float64 `validate:"omitempty,gt=0"`
	WeightUnit string   `validate:"omitempty,oneof=kg lb lbs"`
}

type CustomExerciseInput struct {
	Name        string   `validate:"required"`
	Category    string   `validate:"oneof=cardio strength"`
	MetValue    *float64 `validate:"omitempty,gt=0"`
	MuscleGroup string
}

func optString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// AddExercise logs an exercise for date. Cardio entries without a MET value
// take the catalog value for the same exercise when one exists.
func (s *Service) AddExercise(ctx context.Context, userID, date string, in ExerciseInput) (string, error) {
	if err := validateUserDate(userID, date); err != nil {
		return "", err
	}
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.ToLower(strings.TrimSpace(in.Category))
	if err := check(in); err != nil {
		return "", err
	}

	entry := model.ExerciseEntry{
		Name:      in.Name,
		Category:  in.Category,
		Duration:  in.Duration,
		Notes:     optString(in.Notes),
		Timestamp: s.nowMillis(),
	}
	catalog, err := s.catalog(ctx, userID)
	if err != nil {
		return "", err
	}
	known, found := aggregate.FindCatalog(catalog, in.Category, in.Name)
	if found {
		entry.Name = known.Name
		entry.IsCustom = known.IsCustom
	}
	switch in.Category {
	case model.CategoryCardio:
		if in.Distance != nil {
			unit := in.DistanceUnit
			if unit == "" {
				unit = "km"
			}
			entry.Distance = &model.Quantity{Value: *in.Distance, Unit: unit}
		}
		intensity := in.Intensity
		if intensity == "" {
			intensity = "moderate"
		}
		entry.Intensity = &intensity
		entry.MetValue = in.MetValue
		if entry.MetValue == nil && found {
			entry.MetValue = known.MetValue
		}
	case model.CategoryStrength:
		entry.Sets = in.Sets
		entry.Reps = in.Reps
		if in.Weight != nil {
			unit := in.WeightUnit
			if unit == "" {
				unit = "kg"
			}
			entry.Weight = &model.Quantity{Value: *in.Weight, Unit: unit}
		}
	}

	id, err := s.store.Append(ctx, userPath(rootExercise, userID, date), entry)
	if err != nil {
		s.log.Error("add exercise failed", logFields(userID, date, err)...)
		return "", fmt.Errorf("add exercise: %w", err)
	}
	return id, nil
}

// ExerciseDay returns a day's entries keyed by id.
func (s *Service) ExerciseDay(ctx context.Context, userID, date string) (map[string]model.ExerciseEntry, error) {
	if err := validateUserDate(userID, date); err != nil {
		return nil, err
	}
	return s.exerciseDay(ctx, userID, date)
}

func (s *Service) exerciseDay(ctx context.Context, userID, date string) (map[string]model.ExerciseEntry, error) {
	out, err := docstore.Children[model.ExerciseEntry](ctx, s.store, userPath(rootExercise, userID, date))
	if err != nil {
		return nil, fmt.Errorf("load exercise entries for %s: %w", date, err)
	}
	return out, nil
}

// ExerciseSummary aggregates a day of exercise with the configured strength
// bonus mode.
func (s *Service) ExerciseSummary(ctx context.Context, userID, date string) (aggregate.ExerciseSummary, error) {
	entries, err := s.ExerciseDay(ctx, userID, date)
	if err != nil {
		return aggregate.ExerciseSummary{}, err
	}
	return aggregate.AggregateExercise(entries, s.opts.StrengthBonus), nil
}

func (s *Service) DeleteExercise(ctx context.Context, userID, date, id string) error {
	if err := validateUserDate(userID, date); err != nil {
		return err
	}
	if err := validateID(id); err != nil {
		return err
	}
	return s.deleteExisting(ctx, userPath(rootExercise, userID, date, id), "exercise")
}

// AddCustomExercise saves a user exercise. Cardio without a MET value gets
// the default custom MET.
func (s *Service) AddCustomExercise(ctx context.Context, userID string, in CustomExerciseInput) (string, error) {
	if err := validateUser(userID); err != nil {
		return "", err
	}
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.ToLower(strings.TrimSpace(in.Category))
	if err := check(in); err != nil {
		return "", err
	}
	ce := model.CustomExercise{Name: in.Name, Category: in.Category, IsCustom: true}
	switch in.Category {
	case model.CategoryCardio:
		met := aggregate.DefaultCustomCardioMET
		if in.MetValue != nil {
			met = *in.MetValue
		}
		ce.MetValue = &met
	case model.CategoryStrength:
		ce.MuscleGroup = strings.TrimSpace(in.MuscleGroup)
	}
	id, err := s.store.Append(ctx, userPath(rootCustomExercises, userID), ce)
	if err != nil {
		return "", fmt.Errorf("add custom exercise: %w", err)
	}
	return id, nil
}

// ExerciseCatalog returns built-in and custom exercises. A non-blank query
// filters by name.
func (s *Service) ExerciseCatalog(ctx context.Context, userID, query string) ([]aggregate.CatalogExercise, error) {
	if err := validateUser(userID); err != nil {
		return nil, err
	}
	catalog, err := s.catalog(ctx, userID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(query) == "" {
		return catalog, nil
	}
	return aggregate.SearchCatalog(catalog, query), nil
}

func (s *Service) catalog(ctx context.Context, userID string) ([]aggregate.CatalogExercise, error) {
	rows, err := docstore.Ordered[model.CustomExercise](ctx, s.store, userPath(rootCustomExercises, userID), docstore.OrderByKey, 0)
	if err != nil {
		return nil, fmt.Errorf("load custom exercises: %w", err)
	}
	custom := make([]model.CustomExercise, 0, len(rows))
	for _, r := range rows {
		custom = append(custom, r.Value)
	}
	return aggregate.Catalog(custom), nil
}
