// Package service orchestrates tracker reads and writes: it validates
// inputs, moves records through the document store and feeds the pure
// aggregators in internal/aggregate.
package service

import (
	"time"

	"go.uber.org/zap"

	"github.com/saadjs/fittrack/internal/aggregate"
	"github.com/saadjs/fittrack/internal/docstore"
	"github.com/saadjs/fittrack/internal/model"
	"github.com/saadjs/fittrack/internal/provider"
)

type Options struct {
	StrengthBonus    aggregate.StrengthBonus
	DefaultGoals     model.NutritionalGoals
	DefaultWaterGoal int
	// Now defaults to time.Now. Date keys are taken in its location.
	Now func() time.Time
}

func DefaultOptions() Options {
	return Options{
		StrengthBonus:    aggregate.StrengthBonusCompound,
		DefaultGoals:     model.NutritionalGoals{Calories: 2000, Protein: 150, Carbs: 200, Fat: 65},
		DefaultWaterGoal: aggregate.DefaultWaterGoal,
		Now:              time.Now,
	}
}

type Service struct {
	store  docstore.Store
	lookup provider.Searcher
	log    *zap.Logger
	opts   Options
}

// New builds a Service. A nil lookup disables external search and a nil
// logger discards logs.
func New(store docstore.Store, lookup provider.Searcher, log *zap.Logger, opts Options) *Service {
	if lookup == nil {
		lookup = provider.None{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	def := DefaultOptions()
	if opts.Now == nil {
		opts.Now = def.Now
	}
	if !opts.StrengthBonus.Valid() {
		opts.StrengthBonus = def.StrengthBonus
	}
	if !aggregate.ValidWaterGoal(opts.DefaultWaterGoal) {
		opts.DefaultWaterGoal = def.DefaultWaterGoal
	}
	if opts.DefaultGoals == (model.NutritionalGoals{}) {
		opts.DefaultGoals = def.DefaultGoals
	}
	return &Service{store: store, lookup: lookup, log: log, opts: opts}
}

// Today returns the local date key for the current time.
func (s *Service) Today() string {
	return s.opts.Now().Format(aggregate.DateLayout)
}

func (s *Service) nowMillis() int64 {
	return s.opts.Now().UnixMilli()
}
