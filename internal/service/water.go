package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/saadjs/fittrack/internal/aggregate"
	"github.com/saadjs/fittrack/internal/docstore"
	"github.com/saadjs/fittrack/internal/model"
)

// WaterHistoryDays is how many recorded days WaterHistory returns.
const WaterHistoryDays = 7

// WaterDay is one recorded day of water intake.
type WaterDay struct {
	Date string `json:"date"`
	model.WaterRecord
	Percent float64        `json:"percent"`
	Band    aggregate.Band `json:"band"`
}

// WaterGoal returns the profile water goal or the configured default.
func (s *Service) WaterGoal(ctx context.Context, userID string) (int, error) {
	if err := validateUser(userID); err != nil {
		return 0, err
	}
	return s.waterGoal(ctx, userID)
}

func (s *Service) waterGoal(ctx context.Context, userID string) (int, error) {
	goal, ok, err := docstore.Get[int](ctx, s.store, userPath(rootUsers, userID, "waterGoal"))
	if err != nil {
		return 0, fmt.Errorf("load water goal: %w", err)
	}
	if !ok || !aggregate.ValidWaterGoal(goal) {
		return s.opts.DefaultWaterGoal, nil
	}
	return goal, nil
}

func (s *Service) SetWaterGoal(ctx context.Context, userID string, goal int) error {
	if err := validateUser(userID); err != nil {
		return err
	}
	if !aggregate.ValidWaterGoal(goal) {
		return invalid("water goal", "must be between %d and %d", aggregate.MinWaterGoal, aggregate.MaxWaterGoal)
	}
	if err := s.store.Patch(ctx, userPath(rootUsers, userID), map[string]any{"waterGoal": goal}); err != nil {
		return fmt.Errorf("save water goal: %w", err)
	}
	return nil
}

// Water returns the day's glasses against the goal.
func (s *Service) Water(ctx context.Context, userID, date string) (aggregate.WaterSummary, error) {
	if err := validateUserDate(userID, date); err != nil {
		return aggregate.WaterSummary{}, err
	}
	glasses, err := s.glasses(ctx, userID, date)
	if err != nil {
		return aggregate.WaterSummary{}, err
	}
	goal, err := s.waterGoal(ctx, userID)
	if err != nil {
		return aggregate.WaterSummary{}, err
	}
	return aggregate.SummarizeWater(glasses, goal), nil
}

// glasses returns the recorded count, or 0 when the day has no record.
func (s *Service) glasses(ctx context.Context, userID, date string) (int, error) {
	rec, _, err := s.waterRecord(ctx, userID, date)
	return rec.Glasses, err
}

func (s *Service) waterRecord(ctx context.Context, userID, date string) (model.WaterRecord, bool, error) {
	rec, ok, err := docstore.Get[model.WaterRecord](ctx, s.store, userPath(rootWater, userID, date))
	if err != nil {
		return model.WaterRecord{}, false, fmt.Errorf("load water for %s: %w", date, err)
	}
	return rec, ok, nil
}

// AddGlass records one more glass. At the goal the record is left unchanged
// and the summary is returned with aggregate.ErrGoalReached.
func (s *Service) AddGlass(ctx context.Context, userID, date string) (aggregate.WaterSummary, error) {
	return s.changeWater(ctx, userID, date, func(current, goal int) (int, error) {
		return aggregate.Increment(current, goal)
	})
}

// RemoveGlass records one glass fewer. At zero the record is left unchanged
// and the summary is returned with aggregate.ErrNegativeIntake.
func (s *Service) RemoveGlass(ctx context.Context, userID, date string) (aggregate.WaterSummary, error) {
	return s.changeWater(ctx, userID, date, func(current, _ int) (int, error) {
		return aggregate.Decrement(current)
	})
}

func (s *Service) ResetWater(ctx context.Context, userID, date string) (aggregate.WaterSummary, error) {
	return s.changeWater(ctx, userID, date, func(int, int) (int, error) {
		return aggregate.Reset(), nil
	})
}

func (s *Service) changeWater(ctx context.Context, userID, date string, step func(current, goal int) (int, error)) (aggregate.WaterSummary, error) {
	summary, err := s.Water(ctx, userID, date)
	if err != nil {
		return aggregate.WaterSummary{}, err
	}
	next, stepErr := step(summary.Glasses, summary.Goal)
	if stepErr != nil {
		if errors.Is(stepErr, aggregate.ErrGoalReached) || errors.Is(stepErr, aggregate.ErrNegativeIntake) {
			return summary, stepErr
		}
		return aggregate.WaterSummary{}, stepErr
	}
	rec := model.WaterRecord{Glasses: next, LastUpdated: s.opts.Now().UTC().Format(time.RFC3339)}
	if err := s.store.Write(ctx, userPath(rootWater, userID, date), rec); err != nil {
		s.log.Error("save water failed", logFields(userID, date, err)...)
		return aggregate.WaterSummary{}, fmt.Errorf("save water: %w", err)
	}
	return aggregate.SummarizeWater(next, summary.Goal), nil
}

// WaterHistory returns the most recent recorded days, newest first.
func (s *Service) WaterHistory(ctx context.Context, userID string) ([]WaterDay, error) {
	if err := validateUser(userID); err != nil {
		return nil, err
	}
	rows, err := docstore.Ordered[model.WaterRecord](ctx, s.store, userPath(rootWater, userID), docstore.OrderByKey, WaterHistoryDays)
	if err != nil {
		return nil, fmt.Errorf("load water history: %w", err)
	}
	goal, err := s.waterGoal(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]WaterDay, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		ws := aggregate.SummarizeWater(rows[i].Value.Glasses, goal)
		out = append(out, WaterDay{Date: rows[i].Key, WaterRecord: rows[i].Value, Percent: ws.Percent, Band: ws.Band})
	}
	return out, nil
}

func (s *Service) DeleteWater(ctx context.Context, userID, date string) error {
	if err := validateUserDate(userID, date); err != nil {
		return err
	}
	return s.deleteExisting(ctx, userPath(rootWater, userID, date), "water record")
}
