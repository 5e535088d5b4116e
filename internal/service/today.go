package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/saadjs/fittrack/internal/aggregate"
	"github.com/saadjs/fittrack/internal/model"
)

// Dashboard is everything the daily dashboard shows for one date.
type Dashboard struct {
	Date      string                     `json:"date"`
	Nutrition aggregate.NutritionSummary `json:"nutrition"`
	Meals     aggregate.MealEntries      `json:"meals"`
	Exercise  aggregate.ExerciseSummary  `json:"exercise"`
	Water     aggregate.WaterSummary     `json:"water"`
	Progress  []aggregate.ProgressBar    `json:"progress"`
}

// Dashboard loads the day's food, exercise, water and goals concurrently and
// aggregates them. Any failed read fails the whole dashboard.
func (s *Service) Dashboard(ctx context.Context, userID, date string) (Dashboard, error) {
	if err := validateUserDate(userID, date); err != nil {
		return Dashboard{}, err
	}

	var (
		meals     aggregate.MealEntries
		exercises map[string]model.ExerciseEntry
		glasses   int
		waterGoal int
		goals     aggregate.Totals
	)
	var g errgroup.Group
	g.Go(func() error {
		var err error
		meals, err = s.foodDay(ctx, userID, date)
		return err
	})
	g.Go(func() error {
		var err error
		exercises, err = s.exerciseDay(ctx, userID, date)
		return err
	})
	g.Go(func() error {
		var err error
		glasses, err = s.glasses(ctx, userID, date)
		return err
	})
	g.Go(func() error {
		var err error
		waterGoal, err = s.waterGoal(ctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		goals, err = s.nutritionalGoals(ctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.Error("load dashboard failed", logFields(userID, date, err)...)
		return Dashboard{}, err
	}

	consumed := aggregate.AggregateDay(meals)
	return Dashboard{
		Date:      date,
		Nutrition: aggregate.Summarize(consumed, goals),
		Meals:     meals,
		Exercise:  aggregate.AggregateExercise(exercises, s.opts.StrengthBonus),
		Water:     aggregate.SummarizeWater(glasses, waterGoal),
		Progress:  aggregate.DailyProgress(consumed, glasses, goals, waterGoal),
	}, nil
}

// Weekly returns the trailing rollup ending at today. Every day's food and
// water is read concurrently; one failed read fails the rollup.
func (s *Service) Weekly(ctx context.Context, userID string, days int) ([]aggregate.DayPoint, error) {
	if err := validateUser(userID); err != nil {
		return nil, err
	}
	if days < 0 || days > 366 {
		return nil, invalid("days", "must be between 0 and 366 (0 means %d)", aggregate.DefaultRollupDays)
	}
	dates := aggregate.TrailingDays(s.opts.Now(), days)
	records := make([]aggregate.DayRecords, len(dates))

	var g errgroup.Group
	for i, date := range dates {
		g.Go(func() error {
			meals, err := s.foodDay(ctx, userID, date)
			if err != nil {
				return err
			}
			records[i].Food = meals
			return nil
		})
		g.Go(func() error {
			rec, ok, err := s.waterRecord(ctx, userID, date)
			if err != nil {
				return err
			}
			if ok {
				records[i].Water = &rec.Glasses
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.log.Error("load weekly rollup failed", logFields(userID, "", err)...)
		return nil, err
	}

	byDate := make(map[string]aggregate.DayRecords, len(dates))
	for i, d := range dates {
		byDate[d] = records[i]
	}
	return aggregate.Rollup(dates, func(date string) (aggregate.DayRecords, error) {
		return byDate[date], nil
	})
}
