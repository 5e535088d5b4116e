package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/saadjs/fittrack/internal/docstore"
	"github.com/saadjs/fittrack/internal/provider"
	"github.com/saadjs/fittrack/internal/service"
)

const testUser = "u1"

// fixedNow is a Monday; the trailing week starts on Tuesday 2026-02-24.
var fixedNow = time.Date(2026, 3, 2, 12, 0, 0, 0, time.Local)

type fakeLookup struct {
	results []provider.FoodFacts
	err     error
	queries []string
}

func (f *fakeLookup) Search(_ context.Context, query string) ([]provider.FoodFacts, error) {
	f.queries = append(f.queries, query)
	return f.results, f.err
}

func newTestService(t *testing.T) *service.Service {
	t.Helper()
	return newTestServiceWith(t, docstore.OpenMemory(), nil, service.Options{})
}

func newSQLiteTestService(t *testing.T) *service.Service {
	t.Helper()
	store, err := docstore.OpenSQLite(filepath.Join(t.TempDir(), "fittrack.db"))
	if err != nil {
		t.Fatalf("open sqlite store: %v", err)
	}
	return newTestServiceWith(t, store, nil, service.Options{})
}

func newTestServiceWith(t *testing.T, store docstore.Store, lookup provider.Searcher, opts service.Options) *service.Service {
	t.Helper()
	t.Cleanup(func() { _ = store.Close() })
	if opts.Now == nil {
		opts.Now = func() time.Time { return fixedNow }
	}
	return service.New(store, lookup, nil, opts)
}

func isValidation(err error) bool {
	var verr *service.ValidationError
	return errors.As(err, &verr)
}

// failingStore fails every read.
type failingStore struct {
	docstore.Store
	err error
}

func (f failingStore) Read(context.Context, string) (json.RawMessage, error) { return nil, f.err }
func (f failingStore) ReadOrdered(context.Context, string, string, int) ([]docstore.Child, error) {
	return nil, f.err
}
