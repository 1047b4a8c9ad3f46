// Package tracing wraps flushes and keyed-list reconcile passes as
// OpenTelemetry spans, grounded on the teacher's pkg/middleware/otel.go
// (OTelConfig/OTelOption functional options, otel.Tracer(name) resolved
// once and reused, span attributes built per call). Where the teacher
// starts one span per incoming event, this package starts one span per
// reactive flush and one per keyed-list reconcile pass by implementing
// the same reactive.Recorder / reconciler.Recorder hooks internal/metrics
// uses — a host can install both side by side.
package tracing

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vireo-rt/vireo/pkg/reactive"
	"github.com/vireo-rt/vireo/pkg/reconciler"
)

const defaultTracerName = "vireo"

// Config configures the tracer, mirroring the teacher's OTelConfig shape.
type Config struct {
	// TracerName names the tracer (default: "vireo").
	TracerName string
	tracer     trace.Tracer
}

// Option configures a Config.
type Option func(*Config)

// WithTracerName sets the tracer name.
func WithTracerName(name string) Option {
	return func(c *Config) { c.TracerName = name }
}

func defaultConfig() Config {
	return Config{TracerName: defaultTracerName}
}

// Tracer is a reactive.Recorder and reconciler.Recorder that opens a
// span for each flush and each reconcile pass against the global
// OpenTelemetry tracer provider. Call otel.SetTracerProvider in main
// before Install to route spans to a real exporter; by default the
// global provider is a no-op, so this carries negligible cost when no
// provider is configured.
type Tracer struct {
	tracer trace.Tracer

	mu        sync.Mutex
	flushSpan trace.Span
	flushCtx  context.Context

	reconcileSpan trace.Span
	reconcileCtx  context.Context
}

// Install builds a Tracer from opts and registers it as the process-wide
// Recorder for both pkg/reactive and pkg/reconciler.
func Install(opts ...Option) *Tracer {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.tracer = otel.Tracer(cfg.TracerName)

	t := &Tracer{tracer: cfg.tracer}
	reactive.SetRecorder(t)
	reconciler.SetRecorder(t)
	return t
}

// FlushStart implements reactive.Recorder.
func (t *Tracer) FlushStart() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.flushCtx, t.flushSpan = t.tracer.Start(context.Background(), "vireo.flush",
		trace.WithSpanKind(trace.SpanKindInternal))
}

// FlushEnd implements reactive.Recorder.
func (t *Tracer) FlushEnd(cycles, effectRuns int) {
	t.mu.Lock()
	span := t.flushSpan
	t.flushSpan = nil
	t.flushCtx = nil
	t.mu.Unlock()

	if span == nil {
		return
	}
	span.SetAttributes(
		attribute.Int("vireo.flush_cycles", cycles),
		attribute.Int("vireo.effect_runs", effectRuns),
	)
	span.SetStatus(codes.Ok, "")
	span.End()
}

// EffectRan implements reactive.Recorder. Individual effect runs are
// folded into the enclosing flush span's attributes rather than each
// getting their own span — a flush can run hundreds of effects, and a
// span per effect would dwarf the work it describes.
func (t *Tracer) EffectRan(id uint64) {}

// CycleGuardTripped implements reactive.Recorder, recording the trip as
// an error event on the open flush span. A trip with no flush running (a
// root-nesting trip from PushRoot) finds no span and is not recorded.
func (t *Tracer) CycleGuardTripped(reason string) {
	t.mu.Lock()
	span := t.flushSpan
	t.mu.Unlock()
	if span == nil {
		return
	}
	span.AddEvent("cycle_guard_tripped", trace.WithAttributes(
		attribute.String("vireo.reason", reason),
	))
	span.SetStatus(codes.Error, reason)
}

// ReconcileStart implements reconciler.Recorder.
func (t *Tracer) ReconcileStart() {
	t.mu.Lock()
	defer t.mu.Unlock()
	ctx := t.flushCtx
	if ctx == nil {
		ctx = context.Background()
	}
	t.reconcileCtx, t.reconcileSpan = t.tracer.Start(ctx, "vireo.reconcile",
		trace.WithSpanKind(trace.SpanKindInternal))
}

// ReconcileEnd implements reconciler.Recorder.
func (t *Tracer) ReconcileEnd(moves int) {
	t.mu.Lock()
	span := t.reconcileSpan
	t.reconcileSpan = nil
	t.reconcileCtx = nil
	t.mu.Unlock()

	if span == nil {
		return
	}
	span.SetAttributes(attribute.Int("vireo.moves", moves))
	span.SetStatus(codes.Ok, "")
	span.End()
}

// BlockMoved implements reconciler.Recorder, adding one span event per
// relocated block so a trace viewer can see which keys moved.
func (t *Tracer) BlockMoved(key any) {
	t.mu.Lock()
	span := t.reconcileSpan
	t.mu.Unlock()
	if span == nil {
		return
	}
	span.AddEvent("block_moved", trace.WithAttributes(
		attribute.String("vireo.key", fmt.Sprintf("%v", key)),
	))
}
