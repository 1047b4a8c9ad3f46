// Package metrics exposes Prometheus counters and gauges for the
// reactive runtime, grounded on the teacher's pkg/middleware/metrics.go
// (MetricsConfig/MetricsOption functional-options setup, promauto
// factory, package-level singleton guarded by a sync.Once-style mutex).
// Where the teacher collects HTTP/session metrics for a server
// middleware chain, this package collects scheduler and reconciler
// metrics by implementing reactive.Recorder and reconciler.Recorder —
// the two hook interfaces those packages expose for exactly this kind of
// integration.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vireo-rt/vireo/pkg/reactive"
	"github.com/vireo-rt/vireo/pkg/reconciler"
)

// Config configures the Prometheus metrics collector, mirroring the
// teacher's MetricsConfig shape.
type Config struct {
	// Namespace is the metrics namespace (default: "vireo").
	Namespace string
	// Subsystem is the metrics subsystem (default: "").
	Subsystem string
	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels
	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Option configures a Config.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) { c.Namespace = namespace }
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) { c.Subsystem = subsystem }
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) { c.Registry = registry }
}

func defaultConfig() Config {
	return Config{
		Namespace: "vireo",
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Collector is a reactive.Recorder and reconciler.Recorder backed by
// Prometheus metrics.
type Collector struct {
	mu sync.Mutex

	flushesTotal       prometheus.Counter
	flushCycles        prometheus.Histogram
	effectRunsPerFlush prometheus.Histogram
	effectRunsTotal    prometheus.Counter
	cycleGuardTrips    *prometheus.CounterVec
	reconcilerMoves    prometheus.Counter
	reconcilesTotal    prometheus.Counter
	movesPerReconcile  prometheus.Histogram
}

var (
	global     *Collector
	globalOnce sync.Once
)

// Install builds a Collector from opts, registers it with both
// pkg/reactive and pkg/reconciler as their process-wide Recorder, and
// returns it so the caller can also register it with an HTTP /metrics
// handler. Calling Install more than once replaces the previous
// collector's Recorder registration but still returns a fresh Collector
// each time — callers normally only call this once, from cmd/vireo's
// serve command.
func Install(opts ...Option) *Collector {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	factory := promauto.With(cfg.Registry)
	c := &Collector{
		flushesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "flushes_total",
			Help:        "Total number of reactive scheduler flushes",
			ConstLabels: cfg.ConstLabels,
		}),
		flushCycles: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "flush_cycles",
			Help:        "Normal/transition drain cycles per flush",
			ConstLabels: cfg.ConstLabels,
			Buckets:     []float64{1, 2, 3, 5, 8, 13, 21},
		}),
		effectRunsPerFlush: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "effect_runs_per_flush",
			Help:        "Effect re-runs per flush",
			ConstLabels: cfg.ConstLabels,
			Buckets:     prometheus.ExponentialBuckets(1, 2, 12),
		}),
		effectRunsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "effect_runs_total",
			Help:        "Total effect re-runs across all flushes",
			ConstLabels: cfg.ConstLabels,
		}),
		cycleGuardTrips: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "cycle_guard_trips_total",
			Help:        "Cycle guard trips by reason",
			ConstLabels: cfg.ConstLabels,
		}, []string{"reason"}),
		reconcilerMoves: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "reconciler_moves_total",
			Help:        "Total keyed-list blocks relocated by the reconciler",
			ConstLabels: cfg.ConstLabels,
		}),
		reconcilesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "reconciles_total",
			Help:        "Total number of keyed-list diff passes",
			ConstLabels: cfg.ConstLabels,
		}),
		movesPerReconcile: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "reconciler_moves_per_pass",
			Help:        "Blocks relocated per keyed-list diff pass",
			ConstLabels: cfg.ConstLabels,
			Buckets:     prometheus.ExponentialBuckets(1, 2, 12),
		}),
	}

	reactive.SetRecorder(c)
	reconciler.SetRecorder(c)

	globalOnce.Do(func() { global = c })
	return c
}

// Global returns the Collector installed by the first call to Install,
// or nil if Install has not been called.
func Global() *Collector { return global }

// FlushStart implements reactive.Recorder.
func (c *Collector) FlushStart() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.flushesTotal.Inc()
}

// FlushEnd implements reactive.Recorder.
func (c *Collector) FlushEnd(cycles, effectRuns int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.flushCycles.Observe(float64(cycles))
	c.effectRunsPerFlush.Observe(float64(effectRuns))
	c.effectRunsTotal.Add(float64(effectRuns))
}

// EffectRan implements reactive.Recorder. Per-flush aggregates are
// already captured by FlushEnd, so this is a no-op hook kept only to
// satisfy the interface — a future per-effect metric (e.g. a histogram
// keyed by height) would hang off it.
func (c *Collector) EffectRan(id uint64) {}

// CycleGuardTripped implements reactive.Recorder.
func (c *Collector) CycleGuardTripped(reason string) {
	c.cycleGuardTrips.WithLabelValues(reason).Inc()
}

// ReconcileStart implements reconciler.Recorder.
func (c *Collector) ReconcileStart() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reconcilesTotal.Inc()
}

// ReconcileEnd implements reconciler.Recorder.
func (c *Collector) ReconcileEnd(moves int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.movesPerReconcile.Observe(float64(moves))
}

// BlockMoved implements reconciler.Recorder.
func (c *Collector) BlockMoved(key any) {
	c.reconcilerMoves.Inc()
}
