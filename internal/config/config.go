// Package config loads fittrack settings from a YAML file, an optional .env
// file and FITTRACK_* environment variables, in that order of precedence
// (later wins).
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const EnvPrefix = "FITTRACK_"

type Config struct {
	User     string         `yaml:"user" validate:"required,excludesall=/.#$[]"`
	Store    StoreConfig    `yaml:"store"`
	Log      LogConfig      `yaml:"log"`
	Lookup   LookupConfig   `yaml:"lookup"`
	HTTP     HTTPConfig     `yaml:"http"`
	Exercise ExerciseConfig `yaml:"exercise"`
	Defaults DefaultsConfig `yaml:"defaults"`
}

type StoreConfig struct {
	Backend string `yaml:"backend" validate:"oneof=sqlite badger memory"`
	// Path is the sqlite file or badger directory; empty selects the
	// per-user default location.
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=console json"`
}

type LookupConfig struct {
	Provider      string        `yaml:"provider" validate:"oneof=usda openfoodfacts none"`
	APIKey        string        `yaml:"api_key"`
	BaseURL       string        `yaml:"base_url" validate:"omitempty,url"`
	Timeout       time.Duration `yaml:"timeout" validate:"gt=0"`
	RatePerSecond float64       `yaml:"rate_per_second" validate:"gt=0"`
	Limit         int           `yaml:"limit" validate:"min=1,max=50"`
}

type HTTPConfig struct {
	Addr string `yaml:"addr" validate:"required"`
}

type ExerciseConfig struct {
	StrengthBonus string `yaml:"strength_bonus" validate:"oneof=compound per-entry"`
}

type DefaultsConfig struct {
	WaterGoal int     `yaml:"water_goal" validate:"min=1,max=20"`
	Calories  float64 `yaml:"calories" validate:"gt=0"`
	Protein   float64 `yaml:"protein" validate:"gt=0"`
	Carbs     float64 `yaml:"carbs" validate:"gt=0"`
	Fat       float64 `yaml:"fat" validate:"gt=0"`
}

func Default() Config {
	return Config{
		User:     "default",
		Store:    StoreConfig{Backend: "sqlite"},
		Log:      LogConfig{Level: "info", Format: "console"},
		Lookup:   LookupConfig{Provider: "openfoodfacts", Timeout: 12 * time.Second, RatePerSecond: 3, Limit: 10},
		HTTP:     HTTPConfig{Addr: ":8080"},
		Exercise: ExerciseConfig{StrengthBonus: "compound"},
		Defaults: DefaultsConfig{WaterGoal: 8, Calories: 2000, Protein: 150, Carbs: 200, Fat: 65},
	}
}

// Loader reads configuration. LookupEnv defaults to os.LookupEnv.
type Loader struct {
	// Path is the YAML file. A missing file is an error only when Required.
	Path     string
	Required bool
	// EnvFile is a dotenv file merged beneath the process environment.
	EnvFile   string
	LookupEnv func(string) (string, bool)
}

var validate = validator.New()

func (l Loader) Load() (Config, error) {
	cfg := Default()
	if l.Path != "" {
		data, err := os.ReadFile(l.Path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", l.Path, err)
			}
		case errors.Is(err, os.ErrNotExist) && !l.Required:
		default:
			return Config{}, fmt.Errorf("read config %s: %w", l.Path, err)
		}
	}

	dotenv := map[string]string{}
	if l.EnvFile != "" {
		m, err := godotenv.Read(l.EnvFile)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("read env file %s: %w", l.EnvFile, err)
		}
		if m != nil {
			dotenv = m
		}
	}
	lookup := l.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	env := func(name string) (string, bool) {
		if v, ok := lookup(EnvPrefix + name); ok {
			return v, true
		}
		v, ok := dotenv[EnvPrefix+name]
		return v, ok
	}
	if err := applyEnv(&cfg, env); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config, env func(string) (string, bool)) error {
	strs := map[string]*string{
		"USER":                    &cfg.User,
		"STORE_BACKEND":           &cfg.Store.Backend,
		"STORE_PATH":              &cfg.Store.Path,
		"LOG_LEVEL":               &cfg.Log.Level,
		"LOG_FORMAT":              &cfg.Log.Format,
		"LOOKUP_PROVIDER":         &cfg.Lookup.Provider,
		"LOOKUP_API_KEY":          &cfg.Lookup.APIKey,
		"LOOKUP_BASE_URL":         &cfg.Lookup.BaseURL,
		"HTTP_ADDR":               &cfg.HTTP.Addr,
		"EXERCISE_STRENGTH_BONUS": &cfg.Exercise.StrengthBonus,
	}
	for name, dst := range strs {
		if v, ok := env(name); ok {
			*dst = v
		}
	}
	if v, ok := env("LOOKUP_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse %sLOOKUP_TIMEOUT: %w", EnvPrefix, err)
		}
		cfg.Lookup.Timeout = d
	}
	if v, ok := env("LOOKUP_RATE_PER_SECOND"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("parse %sLOOKUP_RATE_PER_SECOND: %w", EnvPrefix, err)
		}
		cfg.Lookup.RatePerSecond = f
	}
	if v, ok := env("DEFAULTS_WATER_GOAL"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse %sDEFAULTS_WATER_GOAL: %w", EnvPrefix, err)
		}
		cfg.Defaults.WaterGoal = n
	}
	return nil
}

// Save writes cfg as YAML to path.
func Save(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}
