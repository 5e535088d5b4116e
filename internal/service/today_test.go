package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/saadjs/fittrack/internal/aggregate"
	"github.com/saadjs/fittrack/internal/docstore"
	"github.com/saadjs/fittrack/internal/service"
)

func TestDashboardAggregatesDay(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)
	ctx := context.Background()
	date := "2026-03-02"

	if _, err := svc.AddFood(ctx, testUser, date, "lunch", service.FoodInput{Name: "Pasta", Calories: 500, Protein: 30, Carbs: 60, Fat: 13}); err != nil {
		t.Fatalf("add food: %v", err)
	}
	if _, err := svc.AddFood(ctx, testUser, date, "snacks", service.FoodInput{Name: "Apple", Calories: 100}); err != nil {
		t.Fatalf("add food: %v", err)
	}
	if _, err := svc.AddExercise(ctx, testUser, date, service.ExerciseInput{Name: "Running", Category: "cardio", Duration: 30}); err != nil {
		t.Fatalf("add exercise: %v", err)
	}
	for range 4 {
		if _, err := svc.AddGlass(ctx, testUser, date); err != nil {
			t.Fatalf("add glass: %v", err)
		}
	}

	d, err := svc.Dashboard(ctx, testUser, date)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if d.Nutrition.Consumed.Calories != 600 || d.Nutrition.Remaining.Calories != 1400 || d.Nutrition.Calories.Percent != 30 {
		t.Fatalf("unexpected nutrition: %+v", d.Nutrition)
	}
	if d.Nutrition.CalorieBand != aggregate.BandSuccess {
		t.Fatalf("expected success band, got %s", d.Nutrition.CalorieBand)
	}
	if d.Exercise.Count != 1 || d.Exercise.EstimatedCaloriesBurned != 280 {
		t.Fatalf("unexpected exercise: %+v", d.Exercise)
	}
	if d.Water.Glasses != 4 || d.Water.Percent != 50 || d.Water.Band != aggregate.BandWarning {
		t.Fatalf("unexpected water: %+v", d.Water)
	}
	if len(d.Progress) != 5 || d.Progress[0].Percent != 30 || d.Progress[1].Percent != 50 || d.Progress[2].Percent != 20 {
		t.Fatalf("unexpected progress bars: %+v", d.Progress)
	}
	if len(d.Meals["lunch"]) != 1 || len(d.Meals["snacks"]) != 1 {
		t.Fatalf("unexpected meals: %+v", d.Meals)
	}
}

func TestDashboardFailsWhenStoreFails(t *testing.T) {
	t.Parallel()
	boom := errors.New("store offline")
	svc := newTestServiceWith(t, failingStore{Store: docstore.OpenMemory(), err: boom}, nil, service.Options{})

	if _, err := svc.Dashboard(context.Background(), testUser, "2026-03-02"); !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
	if _, err := svc.Weekly(context.Background(), testUser, 7); !errors.Is(err, boom) {
		t.Fatalf("expected store error from weekly, got %v", err)
	}
}

func TestWeeklySingleDayWithData(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.AddFood(ctx, testUser, "2026-02-26", "dinner", service.FoodInput{Name: "Rice", Calories: 500, Protein: 10}); err != nil {
		t.Fatalf("add food: %v", err)
	}
	for range 3 {
		if _, err := svc.AddGlass(ctx, testUser, "2026-02-26"); err != nil {
			t.Fatalf("add glass: %v", err)
		}
	}
	// outside the window
	if _, err := svc.AddFood(ctx, testUser, "2026-02-20", "dinner", service.FoodInput{Name: "Old", Calories: 900}); err != nil {
		t.Fatalf("add food: %v", err)
	}

	points, err := svc.Weekly(ctx, testUser, 0)
	if err != nil {
		t.Fatalf("weekly: %v", err)
	}
	if len(points) != 7 || points[0].Date != "2026-02-24" || points[6].Date != "2026-03-02" {
		t.Fatalf("unexpected window: %+v", points)
	}
	for i, p := range points {
		if i == 2 {
			if p.Calories != 500 || p.Protein != 10 || p.Water != 3 || p.Label != "Thu" {
				t.Fatalf("unexpected data point: %+v", p)
			}
			continue
		}
		if p.Calories != 0 || p.Water != 0 {
			t.Fatalf("expected empty day at %d, got %+v", i, p)
		}
	}
}

func TestWeeklyRejectsBadRange(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)
	for _, n := range []int{-1, 367} {
		if _, err := svc.Weekly(context.Background(), testUser, n); !isValidation(err) {
			t.Fatalf("expected validation error for %d days, got %v", n, err)
		} else if err.Error() != "days must be between 0 and 366 (0 means 7)" {
			t.Fatalf("unexpected message %q", err.Error())
		}
	}
	points, err := svc.Weekly(context.Background(), testUser, 0)
	if err != nil || len(points) != 7 {
		t.Fatalf("expected default 7 points for 0 days, got %d %v", len(points), err)
	}
	points, err = svc.Weekly(context.Background(), testUser, 30)
	if err != nil || len(points) != 30 {
		t.Fatalf("expected 30 points, got %d %v", len(points), err)
	}
}
