package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/saadjs/fittrack/internal/aggregate"
	"github.com/saadjs/fittrack/internal/service"
)

func TestWaterIncrementStopsAtGoal(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)
	ctx := context.Background()

	if err := svc.SetWaterGoal(ctx, testUser, 2); err != nil {
		t.Fatalf("set water goal: %v", err)
	}
	for i := 1; i <= 2; i++ {
		ws, err := svc.AddGlass(ctx, testUser, "2026-03-01")
		if err != nil || ws.Glasses != i {
			t.Fatalf("glass %d: got %+v %v", i, ws, err)
		}
	}
	ws, err := svc.AddGlass(ctx, testUser, "2026-03-01")
	if !errors.Is(err, aggregate.ErrGoalReached) || ws.Glasses != 2 || ws.Percent != 100 {
		t.Fatalf("expected goal reached at 2, got %+v %v", ws, err)
	}
	stored, err := svc.Water(ctx, testUser, "2026-03-01")
	if err != nil || stored.Glasses != 2 || stored.Band != aggregate.BandInfo {
		t.Fatalf("expected stored count unchanged, got %+v %v", stored, err)
	}
}

func TestWaterDecrementFloorsAtZero(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)
	ctx := context.Background()

	ws, err := svc.RemoveGlass(ctx, testUser, "2026-03-01")
	if !errors.Is(err, aggregate.ErrNegativeIntake) || ws.Glasses != 0 || ws.Goal != aggregate.DefaultWaterGoal {
		t.Fatalf("expected negative intake signal, got %+v %v", ws, err)
	}
	if _, err := svc.AddGlass(ctx, testUser, "2026-03-01"); err != nil {
		t.Fatalf("add glass: %v", err)
	}
	if ws, err := svc.RemoveGlass(ctx, testUser, "2026-03-01"); err != nil || ws.Glasses != 0 {
		t.Fatalf("expected back to zero, got %+v %v", ws, err)
	}
	if _, err := svc.AddGlass(ctx, testUser, "2026-03-01"); err != nil {
		t.Fatalf("add glass: %v", err)
	}
	if ws, err := svc.ResetWater(ctx, testUser, "2026-03-01"); err != nil || ws.Glasses != 0 || ws.Band != aggregate.BandDanger {
		t.Fatalf("expected reset, got %+v %v", ws, err)
	}
}

func TestWaterGoalValidation(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)
	ctx := context.Background()

	for _, g := range []int{0, 21} {
		if err := svc.SetWaterGoal(ctx, testUser, g); !isValidation(err) {
			t.Fatalf("expected goal %d to be rejected, got %v", g, err)
		}
	}
	goal, err := svc.WaterGoal(ctx, testUser)
	if err != nil || goal != 8 {
		t.Fatalf("expected default goal 8, got %d %v", goal, err)
	}
}

func TestWaterHistoryNewestFirst(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)
	ctx := context.Background()

	dates := []string{"2026-02-20", "2026-02-21", "2026-02-22", "2026-02-23", "2026-02-24", "2026-02-25", "2026-02-26", "2026-02-27", "2026-02-28"}
	for i, d := range dates {
		for j := 0; j <= i%3; j++ {
			if _, err := svc.AddGlass(ctx, testUser, d); err != nil {
				t.Fatalf("add glass %s: %v", d, err)
			}
		}
	}
	hist, err := svc.WaterHistory(ctx, testUser)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(hist) != service.WaterHistoryDays {
		t.Fatalf("expected %d days, got %d", service.WaterHistoryDays, len(hist))
	}
	if hist[0].Date != "2026-02-28" || hist[6].Date != "2026-02-22" {
		t.Fatalf("unexpected order: first %s last %s", hist[0].Date, hist[6].Date)
	}
	if hist[0].Glasses != 3 || hist[0].LastUpdated == "" {
		t.Fatalf("unexpected newest record: %+v", hist[0])
	}

	if err := svc.DeleteWater(ctx, testUser, "2026-02-28"); err != nil {
		t.Fatalf("delete water: %v", err)
	}
	hist, _ = svc.WaterHistory(ctx, testUser)
	if hist[0].Date != "2026-02-27" {
		t.Fatalf("expected deleted day gone, got %s", hist[0].Date)
	}
}
