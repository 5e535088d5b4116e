package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/saadjs/fittrack/internal/docstore"
	"github.com/saadjs/fittrack/internal/model"
	"github.com/saadjs/fittrack/internal/service"
)

func seedSnapshotUser(t *testing.T, svc *service.Service, user string) {
	t.Helper()
	ctx := context.Background()
	if _, err := svc.InitProfile(ctx, user, "Sam", "sam@example.com"); err != nil {
		t.Fatalf("init profile: %v", err)
	}
	if _, err := svc.AddFood(ctx, user, "2026-03-01", "breakfast", service.FoodInput{Name: "Oats", Calories: 300}); err != nil {
		t.Fatalf("add food: %v", err)
	}
	if _, err := svc.AddGlass(ctx, user, "2026-03-01"); err != nil {
		t.Fatalf("add glass: %v", err)
	}
}

func TestExportImportRoundTripToAnotherUser(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newSQLiteTestService(t)
	seedSnapshotUser(t, svc, testUser)

	snap, err := svc.Export(ctx, testUser)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if snap.Version != service.SnapshotVersion || snap.User != testUser || snap.ExportedAt != fixedNow.UTC().Format(time.RFC3339) {
		t.Fatalf("unexpected snapshot header: %+v", snap)
	}
	for _, root := range []string{"users", "foodEntries", "waterIntake"} {
		if _, ok := snap.Data[root]; !ok {
			t.Fatalf("expected %s in snapshot, got %v", root, snap.Data)
		}
	}
	if _, ok := snap.Data["measurements"]; ok {
		t.Fatalf("empty roots should be left out")
	}

	// The snapshot survives a JSON file round trip.
	raw, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded service.Snapshot
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	report, err := svc.Import(ctx, "u2", decoded, service.ImportOptions{})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if report.Written != 3 || report.Merged != 0 {
		t.Fatalf("unexpected report: %+v", report)
	}
	p, err := svc.Profile(ctx, "u2")
	if err != nil || p.Username != "Sam" {
		t.Fatalf("expected imported profile, got %+v err=%v", p, err)
	}
	day, err := svc.FoodDay(ctx, "u2", "2026-03-01")
	if err != nil || len(day[model.MealBreakfast]) != 1 {
		t.Fatalf("expected imported breakfast, got %+v err=%v", day, err)
	}
	water, err := svc.Water(ctx, "u2", "2026-03-01")
	if err != nil || water.Glasses != 1 {
		t.Fatalf("expected imported water, got %+v err=%v", water, err)
	}
}

func TestImportModes(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newTestService(t)
	seedSnapshotUser(t, svc, testUser)
	snap, err := svc.Export(ctx, testUser)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	if _, err := svc.AddFood(ctx, "u2", "2026-03-02", "dinner", service.FoodInput{Name: "Soup", Calories: 200}); err != nil {
		t.Fatalf("seed u2: %v", err)
	}

	report, err := svc.Import(ctx, "u2", snap, service.ImportOptions{Mode: service.ImportModeFail})
	if !isValidation(err) || report.Conflicts != 1 {
		t.Fatalf("expected fail-mode conflict, got %+v err=%v", report, err)
	}
	if _, err := svc.Profile(ctx, "u2"); err == nil {
		t.Fatalf("fail mode must not write any section")
	}

	report, err = svc.Import(ctx, "u2", snap, service.ImportOptions{Mode: service.ImportModeSkip, DryRun: true})
	if err != nil || report.Skipped != 1 || report.Written != 2 {
		t.Fatalf("unexpected dry-run report: %+v err=%v", report, err)
	}
	if _, err := svc.Profile(ctx, "u2"); err == nil {
		t.Fatalf("dry run must not write")
	}

	if _, err := svc.Import(ctx, "u2", snap, service.ImportOptions{Mode: service.ImportModeMerge}); err != nil {
		t.Fatalf("merge: %v", err)
	}
	dash, err := svc.Dashboard(ctx, "u2", "2026-03-02")
	if err != nil || dash.Nutrition.Consumed.Calories != 200 {
		t.Fatalf("merge should keep existing dates, got %+v err=%v", dash.Nutrition.Consumed, err)
	}
	day, err := svc.FoodDay(ctx, "u2", "2026-03-01")
	if err != nil || len(day[model.MealBreakfast]) != 1 {
		t.Fatalf("merge should add new dates, got %+v err=%v", day, err)
	}

	if _, err := svc.Import(ctx, "u2", snap, service.ImportOptions{Mode: service.ImportModeReplace}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	day, err = svc.FoodDay(ctx, "u2", "2026-03-02")
	if err != nil || len(day) != 0 {
		t.Fatalf("replace should drop existing dates, got %+v err=%v", day, err)
	}
}

func TestImportRejectsBadInput(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newTestService(t)

	if _, err := svc.Import(ctx, testUser, service.Snapshot{Version: 99}, service.ImportOptions{}); !isValidation(err) {
		t.Fatalf("expected version error, got %v", err)
	}
	if _, err := service.ParseImportMode("overwrite"); !isValidation(err) {
		t.Fatalf("expected mode error, got %v", err)
	}
	if m, err := service.ParseImportMode(" Replace "); err != nil || m != service.ImportModeReplace {
		t.Fatalf("expected replace, got %q err=%v", m, err)
	}

	report, err := svc.Import(ctx, testUser, service.Snapshot{
		Version: service.SnapshotVersion,
		Data:    map[string]json.RawMessage{"reminders": json.RawMessage(`{"lunch":"12:00"}`)},
	}, service.ImportOptions{})
	if err != nil || len(report.Warnings) != 1 || report.Written != 0 {
		t.Fatalf("expected unknown section warning, got %+v err=%v", report, err)
	}
}

// putFailingBackend fails every Put under prefix once armed.
type putFailingBackend struct {
	*docstore.Memory
	prefix string
	armed  bool
	err    error
}

func (b *putFailingBackend) Update(ctx context.Context, fn func(docstore.Txn) error) error {
	return b.Memory.Update(ctx, func(tx docstore.Txn) error {
		return fn(putFailingTxn{Txn: tx, b: b})
	})
}

type putFailingTxn struct {
	docstore.Txn
	b *putFailingBackend
}

func (t putFailingTxn) Put(key string, value []byte) error {
	if t.b.armed && strings.HasPrefix(key, t.b.prefix) {
		return t.b.err
	}
	return t.Txn.Put(key, value)
}

func TestReplaceImportFailureKeepsExistingData(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	diskFull := errors.New("disk full")
	backend := &putFailingBackend{Memory: docstore.NewMemory(), prefix: "foodEntries/", err: diskFull}
	svc := newTestServiceWith(t, docstore.NewTree(backend), nil, service.Options{})
	seedSnapshotUser(t, svc, testUser)

	before, err := svc.Export(ctx, testUser)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if len(before.Data) != 3 {
		t.Fatalf("expected 3 seeded sections, got %d", len(before.Data))
	}

	backend.armed = true
	_, err = svc.Import(ctx, testUser, before, service.ImportOptions{Mode: service.ImportModeReplace})
	if !errors.Is(err, diskFull) {
		t.Fatalf("expected store failure, got %v", err)
	}
	backend.armed = false

	after, err := svc.Export(ctx, testUser)
	if err != nil {
		t.Fatalf("export after failed import: %v", err)
	}
	if len(after.Data) != 3 {
		t.Fatalf("failed replace must keep every section, got %v", after.Data)
	}
	day, err := svc.FoodDay(ctx, testUser, "2026-03-01")
	if err != nil || len(day[model.MealBreakfast]) != 1 {
		t.Fatalf("expected breakfast to survive, got %+v err=%v", day, err)
	}
	water, err := svc.Water(ctx, testUser, "2026-03-01")
	if err != nil || water.Glasses != 1 {
		t.Fatalf("expected water to survive, got %+v err=%v", water, err)
	}
}

func TestImportRejectsArrays(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.Import(ctx, testUser, service.Snapshot{
		Version: service.SnapshotVersion,
		Data:    map[string]json.RawMessage{"customFoods": json.RawMessage(`{"a":{"name":"Oats","tags":["x","y"]}}`)},
	}, service.ImportOptions{})
	if !isValidation(err) {
		t.Fatalf("expected validation error for array data, got %v", err)
	}
	snap, err := svc.Export(ctx, testUser)
	if err != nil || len(snap.Data) != 0 {
		t.Fatalf("nothing should be written, got %v err=%v", snap.Data, err)
	}
}
