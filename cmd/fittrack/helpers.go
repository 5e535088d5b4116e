package fittrack

import (
	"fmt"
	"io"
	"maps"
	"net/http"
	"slices"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/saadjs/fittrack/internal/aggregate"
	"github.com/saadjs/fittrack/internal/app"
	"github.com/saadjs/fittrack/internal/config"
	"github.com/saadjs/fittrack/internal/docstore"
	"github.com/saadjs/fittrack/internal/logging"
	"github.com/saadjs/fittrack/internal/model"
	"github.com/saadjs/fittrack/internal/provider"
	"github.com/saadjs/fittrack/internal/provider/openfoodfacts"
	"github.com/saadjs/fittrack/internal/provider/usda"
	"github.com/saadjs/fittrack/internal/service"
)

// cliEnv is everything a command needs, opened from config and flags.
type cliEnv struct {
	cfg       config.Config
	log       *zap.Logger
	reg       *prometheus.Registry
	store     docstore.Store
	storePath string
	svc       *service.Service
	user      string
}

func (rt *cliEnv) Close() {
	if err := rt.store.Close(); err != nil {
		rt.log.Warn("close store", zap.Error(err))
	}
	logging.Sync(rt.log)
}

func loadConfig() (config.Config, error) {
	path := configPath
	required := path != ""
	if path == "" {
		p, err := app.DefaultConfigPath()
		if err != nil {
			return config.Config{}, err
		}
		path = p
	}
	cfg, err := config.Loader{Path: path, Required: required, EnvFile: ".env"}.Load()
	if err != nil {
		return config.Config{}, err
	}
	if dbPath != "" {
		cfg.Store.Path = dbPath
	}
	if storeKind != "" {
		cfg.Store.Backend = strings.ToLower(strings.TrimSpace(storeKind))
	}
	if userFlag != "" {
		cfg.User = strings.TrimSpace(userFlag)
	}
	if logLevel != "" {
		cfg.Log.Level = strings.ToLower(strings.TrimSpace(logLevel))
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func openRuntime() (*cliEnv, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	log, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}
	reg := prometheus.NewRegistry()
	store, path, err := openStore(cfg.Store, log)
	if err != nil {
		logging.Sync(log)
		return nil, err
	}
	instrumented := docstore.Instrument(store, docstore.NewStoreMetrics(reg))
	svc := service.New(instrumented, buildLookup(cfg.Lookup), log, serviceOptions(cfg))
	return &cliEnv{cfg: cfg, log: log, reg: reg, store: instrumented, storePath: path, svc: svc, user: cfg.User}, nil
}

func withRuntime(run func(*cliEnv) error) error {
	rt, err := openRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()
	return run(rt)
}

func withService(run func(svc *service.Service, user string) error) error {
	return withRuntime(func(rt *cliEnv) error {
		return run(rt.svc, rt.user)
	})
}

func openStore(sc config.StoreConfig, log *zap.Logger) (docstore.Store, string, error) {
	switch sc.Backend {
	case "sqlite":
		path := sc.Path
		if path == "" {
			p, err := app.DefaultDBPath()
			if err != nil {
				return nil, "", err
			}
			path = p
		}
		if err := app.EnsureDBDir(path); err != nil {
			return nil, "", err
		}
		s, err := docstore.OpenSQLite(path)
		return s, path, err
	case "badger":
		dir := sc.Path
		if dir == "" {
			d, err := app.DefaultBadgerDir()
			if err != nil {
				return nil, "", err
			}
			dir = d
		}
		bc := docstore.DefaultBadgerConfig(dir)
		bc.Logger = log
		s, err := docstore.OpenBadger(bc)
		return s, dir, err
	case "memory":
		return docstore.OpenMemory(), "memory", nil
	default:
		return nil, "", fmt.Errorf("unsupported store backend %q", sc.Backend)
	}
}

func buildLookup(lc config.LookupConfig) provider.Searcher {
	client := &http.Client{Timeout: lc.Timeout}
	var s provider.Searcher
	switch lc.Provider {
	case "usda":
		s = &usda.Client{APIKey: lc.APIKey, BaseURL: lc.BaseURL, HTTPClient: client, Limit: lc.Limit}
	case "openfoodfacts":
		s = &openfoodfacts.Client{BaseURL: lc.BaseURL, HTTPClient: client, Limit: lc.Limit}
	default:
		return provider.None{}
	}
	return provider.NewLimited(s, lc.RatePerSecond)
}

func serviceOptions(cfg config.Config) service.Options {
	d := cfg.Defaults
	return service.Options{
		StrengthBonus:    aggregate.StrengthBonus(cfg.Exercise.StrengthBonus),
		DefaultGoals:     model.NutritionalGoals{Calories: d.Calories, Protein: d.Protein, Carbs: d.Carbs, Fat: d.Fat},
		DefaultWaterGoal: d.WaterGoal,
	}
}

func dateOr(svc *service.Service, date string) string {
	if d := strings.TrimSpace(date); d != "" && !strings.EqualFold(d, "today") {
		return d
	}
	return svc.Today()
}

const placeholder = "--"

func printMacros(w io.Writer, label string, t aggregate.Totals) {
	fmt.Fprintf(w, "%s: %.0f kcal | P %.1fg | C %.1fg | F %.1fg\n", label, t.Calories, t.Protein, t.Carbs, t.Fat)
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
