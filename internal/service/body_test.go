package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/saadjs/fittrack/internal/service"
)

func TestMeasurementsLifecycle(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.AddMeasurement(ctx, testUser, service.MeasurementInput{Date: "2026-02-27", Weight: 90}); err != nil {
		t.Fatalf("add measurement: %v", err)
	}
	m, err := svc.AddMeasurement(ctx, testUser, service.MeasurementInput{Weight: 198, Unit: "lb", BodyFat: floatPtr(22.5)})
	if err != nil {
		t.Fatalf("add measurement: %v", err)
	}
	if m.Date != "2026-03-02" || m.Weight != 89.81 {
		t.Fatalf("expected today's date and converted weight, got %+v", m)
	}

	list, err := svc.ListMeasurements(ctx, testUser)
	if err != nil {
		t.Fatalf("list measurements: %v", err)
	}
	if len(list) != 2 || list[0].Date != "2026-03-02" || list[0].BodyFat == nil || *list[0].BodyFat != 22.5 {
		t.Fatalf("unexpected measurements: %+v", list)
	}

	if err := svc.DeleteMeasurement(ctx, testUser, "2026-02-27"); err != nil {
		t.Fatalf("delete measurement: %v", err)
	}
	if err := svc.DeleteMeasurement(ctx, testUser, "2026-02-27"); !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAddMeasurementValidation(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)
	ctx := context.Background()

	bad := []service.MeasurementInput{
		{Date: "2026-03-03", Weight: 80},
		{Date: "2026-03-01", Weight: 0},
		{Date: "2026-03-01", Weight: 80, Unit: "stone"},
		{Date: "2026-03-01", Weight: 80, BodyFat: floatPtr(101)},
	}
	for _, in := range bad {
		if _, err := svc.AddMeasurement(ctx, testUser, in); !isValidation(err) {
			t.Fatalf("expected validation error for %+v, got %v", in, err)
		}
	}
}

func TestWeightGoal(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.WeightGoal(ctx, testUser); !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("expected no goal yet, got %v", err)
	}
	if _, err := svc.SetWeightGoal(ctx, testUser, service.WeightGoalInput{TargetWeight: 80, GoalType: "bulk"}); !isValidation(err) {
		t.Fatalf("expected invalid goal type, got %v", err)
	}
	if _, err := svc.SetWeightGoal(ctx, testUser, service.WeightGoalInput{TargetWeight: 80, GoalType: "Lose", InitialWeight: floatPtr(92)}); err != nil {
		t.Fatalf("set goal: %v", err)
	}
	goal, err := svc.WeightGoal(ctx, testUser)
	if err != nil {
		t.Fatalf("get goal: %v", err)
	}
	if goal.TargetWeight != 80 || goal.GoalType != "lose" || goal.InitialWeight == nil || *goal.InitialWeight != 92 {
		t.Fatalf("unexpected goal: %+v", goal)
	}
}
