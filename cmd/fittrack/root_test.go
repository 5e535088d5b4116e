package fittrack

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/saadjs/fittrack/internal/config"
)

// resetFlags restores every flag to its default; flag variables are package
// globals that outlive a single Execute.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	if err != nil {
		t.Fatalf("%v failed: %v\n%s", args, err, out)
	}
	return out
}

// testConfig writes a config file pointing at a fresh store.
func testConfig(t *testing.T, backend string) string {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.User = "tester"
	cfg.Log.Level = "error"
	cfg.Lookup.Provider = "none"
	cfg.Store.Backend = backend
	if backend == "sqlite" {
		cfg.Store.Path = filepath.Join(dir, "fittrack.db")
	} else {
		cfg.Store.Path = filepath.Join(dir, "badger")
	}
	path := filepath.Join(dir, "config.yaml")
	if err := config.Save(path, cfg); err != nil {
		t.Fatalf("save config: %v", err)
	}
	return path
}

func TestRootHelp(t *testing.T) {
	out, err := run(t, "--help")
	if err != nil {
		t.Fatalf("execute root help: %v", err)
	}
	if !strings.Contains(out, "dashboard") {
		t.Fatalf("expected help output listing commands, got %q", out)
	}
}

func TestInitCommandIdempotent(t *testing.T) {
	cfg := testConfig(t, "sqlite")
	first := mustRun(t, "--config", cfg, "init", "--username", "Tess")
	if !strings.Contains(first, "Created profile for tester") {
		t.Fatalf("unexpected first init output: %q", first)
	}
	second := mustRun(t, "--config", cfg, "init")
	if !strings.Contains(second, "already exists") {
		t.Fatalf("unexpected second init output: %q", second)
	}
	out := mustRun(t, "--config", cfg, "profile", "show")
	if !strings.Contains(out, "Username: Tess") || !strings.Contains(out, "Water goal: 8 glasses") {
		t.Fatalf("unexpected profile: %q", out)
	}
}

func TestDayInLife(t *testing.T) {
	cfg := testConfig(t, "sqlite")
	const day = "2026-03-01"

	mustRun(t, "--config", cfg, "init")
	mustRun(t, "--config", cfg, "food", "add", "Oats", "--meal", "breakfast", "--calories", "300", "--protein", "10", "--date", day)
	mustRun(t, "--config", cfg, "food", "add", "Salad", "--meal", "lunch", "--calories", "200", "--date", day)
	for range 3 {
		mustRun(t, "--config", cfg, "water", "add", "--date", day)
	}
	mustRun(t, "--config", cfg, "exercise", "add", "Running", "--category", "cardio", "--duration", "30", "--date", day)

	out := mustRun(t, "--config", cfg, "dashboard", "--date", day)
	for _, want := range []string{
		"Calories: 500 / 2000 kcal (25%, success) | Remaining 1500",
		"~280 kcal burned | Latest: Running",
		"Water: 3/8 glasses (38%)",
		"Progress: Calories 25% Water 38%",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("dashboard missing %q:\n%s", want, out)
		}
	}

	list := mustRun(t, "--config", cfg, "food", "list", "--date", day)
	if !strings.Contains(list, "breakfast\t") || !strings.Contains(list, "Total: 500 kcal") {
		t.Fatalf("unexpected food list:\n%s", list)
	}

	weekly := mustRun(t, "--config", cfg, "weekly", "--days", "3")
	if lines := strings.Count(strings.TrimSpace(weekly), "\n"); lines != 3 {
		t.Fatalf("expected header and 3 rows, got:\n%s", weekly)
	}
}

func TestWaterGoalReachedOnBadger(t *testing.T) {
	cfg := testConfig(t, "badger")
	mustRun(t, "--config", cfg, "water", "goal", "2")
	mustRun(t, "--config", cfg, "water", "add", "--date", "2026-03-01")
	mustRun(t, "--config", cfg, "water", "add", "--date", "2026-03-01")

	out := mustRun(t, "--config", cfg, "water", "add", "--date", "2026-03-01")
	if !strings.Contains(out, "Daily goal already reached!") || !strings.Contains(out, "2/2 glasses (100%)") {
		t.Fatalf("unexpected output: %q", out)
	}
	out = mustRun(t, "--config", cfg, "water", "history")
	if !strings.Contains(out, "2026-03-01\t2\t100%") {
		t.Fatalf("unexpected history: %q", out)
	}
}

func TestBodyGoalAndAchievements(t *testing.T) {
	cfg := testConfig(t, "sqlite")
	mustRun(t, "--config", cfg, "goal", "set", "--target", "80", "--type", "lose", "--initial", "92")
	mustRun(t, "--config", cfg, "body", "add", "--weight", "86", "--date", "2026-03-01")
	mustRun(t, "--config", cfg, "exercise", "add", "Squats", "--category", "strength", "--duration", "20", "--sets", "3", "--reps", "10", "--date", "2026-03-01")

	out := mustRun(t, "--config", cfg, "achievements")
	if !strings.Contains(out, "Workouts logged: 1") || !strings.Contains(out, "First Workout") || !strings.Contains(out, "5kg Down!") {
		t.Fatalf("unexpected achievements: %q", out)
	}
	out = mustRun(t, "--config", cfg, "progress")
	if !strings.Contains(out, "Weight progress: --") {
		t.Fatalf("expected unavailable progress without profile weight: %q", out)
	}
	out = mustRun(t, "--config", cfg, "body", "list", "--unit", "lb")
	if !strings.Contains(out, "2026-03-01\t189.60\tlb") {
		t.Fatalf("unexpected body list: %q", out)
	}
}

func TestValidationErrorsFailCommand(t *testing.T) {
	cfg := testConfig(t, "sqlite")
	if _, err := run(t, "--config", cfg, "food", "add", "Toast", "--meal", "brunch"); err == nil || !strings.Contains(err.Error(), "meal") {
		t.Fatalf("expected meal validation error, got %v", err)
	}
	if _, err := run(t, "--config", cfg, "water", "goal", "42"); err == nil {
		t.Fatalf("expected water goal range error")
	}
	if _, err := run(t, "--config", cfg, "--store", "cloud", "dashboard"); err == nil {
		t.Fatalf("expected invalid store backend error")
	}
}

func TestLookupUsesConfiguredProvider(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"products":[{"code":"123","product_name":"Rolled Oats","brands":"Mill","nutriments":{"energy-kcal_100g":389,"proteins_100g":17,"carbohydrates_100g":66,"fat_100g":7}}]}`))
	}))
	defer ts.Close()
	t.Setenv("FITTRACK_LOOKUP_BASE_URL", ts.URL)
	cfg := testConfig(t, "sqlite")

	out := mustRun(t, "--config", cfg, "lookup", "oats", "--provider", "openfoodfacts")
	if !strings.Contains(out, "Rolled Oats\tMill\t389") {
		t.Fatalf("unexpected lookup output: %q", out)
	}

	t.Setenv("FITTRACK_LOOKUP_PROVIDER", "openfoodfacts")
	out = mustRun(t, "--config", cfg, "food", "add", "--lookup", "oats", "--grams", "40", "--meal", "breakfast", "--date", "2026-03-01")
	if !strings.Contains(out, "Added Rolled Oats to breakfast on 2026-03-01 (156 kcal)") {
		t.Fatalf("unexpected food add output: %q", out)
	}
}

func TestVersion(t *testing.T) {
	out := mustRun(t, "version")
	if !strings.HasPrefix(out, "fittrack dev") {
		t.Fatalf("unexpected version output: %q", out)
	}
}

func TestExportImportBetweenUsers(t *testing.T) {
	cfg := testConfig(t, "badger")
	const day = "2026-03-01"
	mustRun(t, "--config", cfg, "init", "--username", "Tess")
	mustRun(t, "--config", cfg, "food", "add", "Oats", "--meal", "breakfast", "--calories", "300", "--date", day)

	snap := filepath.Join(t.TempDir(), "snapshot.json")
	out := mustRun(t, "--config", cfg, "export", "--out", snap)
	if !strings.Contains(out, "Exported 2 section(s) for tester") {
		t.Fatalf("unexpected export output: %q", out)
	}

	out = mustRun(t, "--config", cfg, "--user", "twin", "import", "--in", snap, "--dry-run")
	if !strings.Contains(out, "Dry run (merge): written=2 merged=0 skipped=0") {
		t.Fatalf("unexpected dry-run output: %q", out)
	}
	mustRun(t, "--config", cfg, "--user", "twin", "import", "--in", snap)
	out = mustRun(t, "--config", cfg, "--user", "twin", "dashboard", "--date", day)
	if !strings.Contains(out, "Calories: 300 / 2000 kcal") {
		t.Fatalf("expected imported food on twin's dashboard:\n%s", out)
	}

	if _, err := run(t, "--config", cfg, "--user", "twin", "import", "--in", snap, "--mode", "fail"); err == nil {
		t.Fatalf("expected fail mode to reject existing data")
	}
	if _, err := run(t, "--config", cfg, "export"); err == nil {
		t.Fatalf("expected missing --out to fail")
	}
}
