package service

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/saadjs/fittrack/internal/aggregate"
	"github.com/saadjs/fittrack/internal/docstore"
	"github.com/saadjs/fittrack/internal/model"
)

// RecentActivityLimit is how many measurements the activity feed reads.
const RecentActivityLimit = 5

// AchievementReport is the unlocked badge list with the inputs it was
// evaluated from.
type AchievementReport struct {
	ExerciseCount int                      `json:"exerciseCount"`
	Weight        *aggregate.WeightHistory `json:"weight,omitempty"`
	Achievements  []aggregate.Achievement  `json:"achievements"`
}

// Achievements counts every logged exercise entry across all dates and
// evaluates weight badges against the goal when one is set and at least one
// measurement exists.
func (s *Service) Achievements(ctx context.Context, userID string) (AchievementReport, error) {
	if err := validateUser(userID); err != nil {
		return AchievementReport{}, err
	}
	var (
		exercises    map[string]map[string]model.ExerciseEntry
		goal         model.Goal
		hasGoal      bool
		measurements []model.DatedMeasurement
	)
	var g errgroup.Group
	g.Go(func() error {
		var err error
		exercises, err = docstore.Children[map[string]model.ExerciseEntry](ctx, s.store, userPath(rootExercise, userID))
		if err != nil {
			return fmt.Errorf("load exercise history: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		goal, hasGoal, err = s.weightGoal(ctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		measurements, err = s.measurementsByDate(ctx, userID, 0)
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.Error("load achievements failed", logFields(userID, "", err)...)
		return AchievementReport{}, err
	}

	count := 0
	for _, day := range exercises {
		count += len(day)
	}
	report := AchievementReport{ExerciseCount: count}
	if hasGoal {
		report.Weight = weightHistory(goal, measurements)
	}
	report.Achievements = aggregate.Achievements(count, report.Weight)
	return report, nil
}

// weightHistory uses the goal's initial weight, or else the earliest
// measurement, against the latest one. measurements must be in ascending
// date order.
func weightHistory(goal model.Goal, measurements []model.DatedMeasurement) *aggregate.WeightHistory {
	if len(measurements) == 0 {
		return nil
	}
	initial := measurements[0].Weight
	if goal.InitialWeight != nil {
		initial = *goal.InitialWeight
	}
	return &aggregate.WeightHistory{
		Initial: initial,
		Current: measurements[len(measurements)-1].Weight,
		Target:  goal.TargetWeight,
	}
}

// WeightProgress is the profile progress card. Available is false when any
// of the three weights is missing.
type WeightProgress struct {
	Available bool    `json:"available"`
	Initial   float64 `json:"initial,omitempty"`
	Current   float64 `json:"current,omitempty"`
	Target    float64 `json:"target,omitempty"`
	Percent   int     `json:"percent"`
}

// WeightProgress compares the profile weight, the goal target and the most
// recently saved measurement.
func (s *Service) WeightProgress(ctx context.Context, userID string) (WeightProgress, error) {
	if err := validateUser(userID); err != nil {
		return WeightProgress{}, err
	}
	var (
		profile model.UserProfile
		goal    model.Goal
		hasGoal bool
		latest  []docstore.Keyed[model.Measurement]
	)
	var g errgroup.Group
	g.Go(func() error {
		var err error
		profile, _, err = s.profile(ctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		goal, hasGoal, err = s.weightGoal(ctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		latest, err = docstore.Ordered[model.Measurement](ctx, s.store, userPath(rootMeasurements, userID), "timestamp", 1)
		if err != nil {
			return fmt.Errorf("load latest measurement: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		s.log.Error("load weight progress failed", logFields(userID, "", err)...)
		return WeightProgress{}, err
	}

	if profile.Weight == nil || !hasGoal || len(latest) == 0 {
		return WeightProgress{}, nil
	}
	wp := WeightProgress{
		Available: true,
		Initial:   *profile.Weight,
		Current:   latest[0].Value.Weight,
		Target:    goal.TargetWeight,
	}
	wp.Percent = aggregate.WeightProgressPercent(wp.Current, wp.Target, wp.Initial)
	return wp, nil
}

const (
	ActivityWeight      = "weight"
	ActivityAchievement = "achievement"
)

type Activity struct {
	Type        string   `json:"type"`
	Date        string   `json:"date"`
	Description string   `json:"description"`
	Value       *float64 `json:"value,omitempty"`
}

var activityText = map[string]string{
	"lost-5kg":    "Achievement: Lost 5kg!",
	"lost-10kg":   "Achievement: Lost 10kg!",
	"gained-5kg":  "Achievement: Gained 5kg!",
	"gained-10kg": "Achievement: Gained 10kg!",
}

// RecentActivity lists the last few measurements and the weight badges they
// earn, newest first. Badge events are dated today.
func (s *Service) RecentActivity(ctx context.Context, userID string) ([]Activity, error) {
	if err := validateUser(userID); err != nil {
		return nil, err
	}
	var (
		measurements []model.DatedMeasurement
		goal         model.Goal
		hasGoal      bool
	)
	var g errgroup.Group
	g.Go(func() error {
		var err error
		measurements, err = s.measurementsByDate(ctx, userID, RecentActivityLimit)
		return err
	})
	g.Go(func() error {
		var err error
		goal, hasGoal, err = s.weightGoal(ctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.Error("load recent activity failed", logFields(userID, "", err)...)
		return nil, err
	}

	out := make([]Activity, 0, len(measurements)+2)
	for _, m := range measurements {
		w := m.Weight
		out = append(out, Activity{
			Type:        ActivityWeight,
			Date:        m.Date,
			Description: fmt.Sprintf("Updated weight to %gkg", w),
			Value:       &w,
		})
	}
	if hasGoal {
		if h := weightHistory(goal, measurements); h != nil {
			today := s.Today()
			for _, a := range aggregate.WeightAchievements(*h) {
				out = append(out, Activity{Type: ActivityAchievement, Date: today, Description: activityText[a.ID]})
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}
