package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/saadjs/fittrack/internal/config"
)

func noEnv(string) (string, bool) { return "", false }

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.Loader{Path: filepath.Join(t.TempDir(), "absent.yaml"), LookupEnv: noEnv}.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Store.Backend != "sqlite" || cfg.Defaults.WaterGoal != 8 || cfg.Lookup.Timeout != 12*time.Second {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}

	_, err = config.Loader{Path: filepath.Join(t.TempDir(), "absent.yaml"), Required: true, LookupEnv: noEnv}.Load()
	if err == nil {
		t.Fatalf("expected error for required missing file")
	}
}

func TestLoadFileThenEnvOverrides(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
user: sam
store:
  backend: badger
lookup:
  provider: usda
  timeout: 5s
exercise:
  strength_bonus: per-entry
defaults:
  calories: 1800
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("FITTRACK_LOOKUP_API_KEY=from-dotenv\nFITTRACK_USER=dotenv-user\n"), 0o600); err != nil {
		t.Fatalf("write env: %v", err)
	}
	env := map[string]string{"FITTRACK_USER": "env-user", "FITTRACK_LOG_FORMAT": "json"}

	cfg, err := config.Loader{
		Path:      path,
		EnvFile:   envFile,
		LookupEnv: func(k string) (string, bool) { v, ok := env[k]; return v, ok },
	}.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.User != "env-user" {
		t.Fatalf("expected process env to win, got %q", cfg.User)
	}
	if cfg.Lookup.APIKey != "from-dotenv" || cfg.Lookup.Provider != "usda" || cfg.Lookup.Timeout != 5*time.Second {
		t.Fatalf("unexpected lookup config: %+v", cfg.Lookup)
	}
	if cfg.Store.Backend != "badger" || cfg.Exercise.StrengthBonus != "per-entry" || cfg.Log.Format != "json" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Defaults.Calories != 1800 || cfg.Defaults.Protein != 150 {
		t.Fatalf("expected partial defaults override, got %+v", cfg.Defaults)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"FITTRACK_STORE_BACKEND":       "postgres",
		"FITTRACK_DEFAULTS_WATER_GOAL": "25",
		"FITTRACK_USER":                "a/b",
		"FITTRACK_LOOKUP_TIMEOUT":      "soon",
	}
	for k, v := range cases {
		_, err := config.Loader{LookupEnv: func(name string) (string, bool) {
			if name == k {
				return v, true
			}
			return "", false
		}}.Load()
		if err == nil {
			t.Fatalf("expected %s=%s to be rejected", k, v)
		}
	}
}

func TestSaveRoundTripsThroughLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := config.Default()
	cfg.User = "riley"
	if err := config.Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "user: riley") {
		t.Fatalf("unexpected yaml: %s", data)
	}
	got, err := config.Loader{Path: path, Required: true, LookupEnv: noEnv}.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.User != "riley" || got.Lookup.Timeout != cfg.Lookup.Timeout {
		t.Fatalf("expected round trip, got %+v", got)
	}
}
