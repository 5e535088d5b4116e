package docstore

import (
	"context"
	"encoding/json"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// StoreMetrics are the per-operation store metrics.
type StoreMetrics struct {
	OpsTotal   *prometheus.CounterVec
	OpDuration *prometheus.HistogramVec
}

// NewStoreMetrics registers store metrics on reg.
func NewStoreMetrics(reg prometheus.Registerer) *StoreMetrics {
	f := promauto.With(reg)
	return &StoreMetrics{
		OpsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fittrack",
			Subsystem: "store",
			Name:      "ops_total",
			Help:      "Store operations by operation and result",
		}, []string{"op", "result"}),
		OpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "fittrack",
			Subsystem: "store",
			Name:      "op_duration_seconds",
			Help:      "Store operation latency in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 14),
		}, []string{"op"}),
	}
}

// Instrumented records metrics around every call to an underlying Store.
type Instrumented struct {
	next    Store
	metrics *StoreMetrics
}

func Instrument(next Store, m *StoreMetrics) *Instrumented {
	return &Instrumented{next: next, metrics: m}
}

func (s *Instrumented) observe(op string, start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	s.metrics.OpsTotal.WithLabelValues(op, result).Inc()
	s.metrics.OpDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func (s *Instrumented) Read(ctx context.Context, path string) (json.RawMessage, error) {
	start := time.Now()
	out, err := s.next.Read(ctx, path)
	s.observe("read", start, err)
	return out, err
}

func (s *Instrumented) ReadOrdered(ctx context.Context, path, orderBy string, n int) ([]Child, error) {
	start := time.Now()
	out, err := s.next.ReadOrdered(ctx, path, orderBy, n)
	s.observe("read_ordered", start, err)
	return out, err
}

func (s *Instrumented) Write(ctx context.Context, path string, value any) error {
	start := time.Now()
	err := s.next.Write(ctx, path, value)
	s.observe("write", start, err)
	return err
}

func (s *Instrumented) Patch(ctx context.Context, path string, fields map[string]any) error {
	start := time.Now()
	err := s.next.Patch(ctx, path, fields)
	s.observe("patch", start, err)
	return err
}

func (s *Instrumented) Append(ctx context.Context, path string, value any) (string, error) {
	start := time.Now()
	id, err := s.next.Append(ctx, path, value)
	s.observe("append", start, err)
	return id, err
}

func (s *Instrumented) Delete(ctx context.Context, path string) error {
	start := time.Now()
	err := s.next.Delete(ctx, path)
	s.observe("delete", start, err)
	return err
}

func (s *Instrumented) Apply(ctx context.Context, ops ...Op) error {
	start := time.Now()
	err := s.next.Apply(ctx, ops...)
	s.observe("apply", start, err)
	return err
}

func (s *Instrumented) Close() error { return s.next.Close() }
