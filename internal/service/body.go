package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/saadjs/fittrack/internal/docstore"
	"github.com/saadjs/fittrack/internal/model"
)

// MeasurementHistoryLimit caps ListMeasurements.
const MeasurementHistoryLimit = 30

type MeasurementInput struct {
	Date    string
	Weight  float64
	Unit    string
	BodyFat *float64 `validate:"omitempty,gte=0,lte=100"`
}

// AddMeasurement stores the day's measurement, replacing any earlier one for
// the same date. Future dates are rejected.
func (s *Service) AddMeasurement(ctx context.Context, userID string, in MeasurementInput) (model.DatedMeasurement, error) {
	if strings.TrimSpace(in.Date) == "" {
		in.Date = s.Today()
	}
	if err := validateUserDate(userID, in.Date); err != nil {
		return model.DatedMeasurement{}, err
	}
	if in.Date > s.Today() {
		return model.DatedMeasurement{}, invalid("date", "cannot be in the future")
	}
	if err := check(in); err != nil {
		return model.DatedMeasurement{}, err
	}
	kg, err := convertWeightToKg(in.Weight, in.Unit)
	if err != nil {
		return model.DatedMeasurement{}, err
	}
	m := model.Measurement{Weight: kg, BodyFat: in.BodyFat, Timestamp: s.nowMillis()}
	if err := s.store.Write(ctx, userPath(rootMeasurements, userID, in.Date), m); err != nil {
		s.log.Error("save measurement failed", logFields(userID, in.Date, err)...)
		return model.DatedMeasurement{}, fmt.Errorf("save measurement: %w", err)
	}
	return model.DatedMeasurement{Date: in.Date, Measurement: m}, nil
}

// ListMeasurements returns the most recently saved measurements, newest date
// first.
func (s *Service) ListMeasurements(ctx context.Context, userID string) ([]model.DatedMeasurement, error) {
	if err := validateUser(userID); err != nil {
		return nil, err
	}
	rows, err := docstore.Ordered[model.Measurement](ctx, s.store, userPath(rootMeasurements, userID), "timestamp", MeasurementHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("load measurements: %w", err)
	}
	out := make([]model.DatedMeasurement, 0, len(rows))
	for _, r := range rows {
		out = append(out, model.DatedMeasurement{Date: r.Key, Measurement: r.Value})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

func (s *Service) DeleteMeasurement(ctx context.Context, userID, date string) error {
	if err := validateUserDate(userID, date); err != nil {
		return err
	}
	return s.deleteExisting(ctx, userPath(rootMeasurements, userID, date), "measurement")
}

// measurementsByDate loads every measurement in ascending date order.
func (s *Service) measurementsByDate(ctx context.Context, userID string, limit int) ([]model.DatedMeasurement, error) {
	rows, err := docstore.Ordered[model.Measurement](ctx, s.store, userPath(rootMeasurements, userID), docstore.OrderByKey, limit)
	if err != nil {
		return nil, fmt.Errorf("load measurements: %w", err)
	}
	out := make([]model.DatedMeasurement, 0, len(rows))
	for _, r := range rows {
		out = append(out, model.DatedMeasurement{Date: r.Key, Measurement: r.Value})
	}
	return out, nil
}

type WeightGoalInput struct {
	TargetWeight  float64
	Unit          string
	GoalType      string `validate:"oneof=lose gain maintain"`
	InitialWeight *float64
}

// SetWeightGoal replaces the weight goal.
func (s *Service) SetWeightGoal(ctx context.Context, userID string, in WeightGoalInput) (model.Goal, error) {
	if err := validateUser(userID); err != nil {
		return model.Goal{}, err
	}
	in.GoalType = strings.ToLower(strings.TrimSpace(in.GoalType))
	if err := check(in); err != nil {
		return model.Goal{}, err
	}
	target, err := convertWeightToKg(in.TargetWeight, in.Unit)
	if err != nil {
		return model.Goal{}, err
	}
	goal := model.Goal{TargetWeight: target, GoalType: in.GoalType, Timestamp: s.nowMillis()}
	if in.InitialWeight != nil {
		initial, err := convertWeightToKg(*in.InitialWeight, in.Unit)
		if err != nil {
			return model.Goal{}, err
		}
		goal.InitialWeight = &initial
	}
	if err := s.store.Write(ctx, userPath(rootGoals, userID), goal); err != nil {
		return model.Goal{}, fmt.Errorf("save weight goal: %w", err)
	}
	return goal, nil
}

// WeightGoal returns the stored goal or ErrNotFound.
func (s *Service) WeightGoal(ctx context.Context, userID string) (model.Goal, error) {
	if err := validateUser(userID); err != nil {
		return model.Goal{}, err
	}
	goal, ok, err := s.weightGoal(ctx, userID)
	if err != nil {
		return model.Goal{}, err
	}
	if !ok {
		return model.Goal{}, fmt.Errorf("weight goal: %w", ErrNotFound)
	}
	return goal, nil
}

func (s *Service) weightGoal(ctx context.Context, userID string) (model.Goal, bool, error) {
	goal, ok, err := docstore.Get[model.Goal](ctx, s.store, userPath(rootGoals, userID))
	if err != nil {
		return model.Goal{}, false, fmt.Errorf("load weight goal: %w", err)
	}
	return goal, ok, nil
}
