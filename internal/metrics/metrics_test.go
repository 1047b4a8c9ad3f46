package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/vireo-rt/vireo/pkg/reactive"
	"github.com/vireo-rt/vireo/pkg/reconciler"
)

func metricCounterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("counter Write() error: %v", err)
	}
	return m.GetCounter().GetValue()
}

func metricHistogramCount(t *testing.T, o prometheus.Observer) uint64 {
	t.Helper()
	metric, ok := o.(prometheus.Metric)
	if !ok {
		t.Fatalf("observer %T does not implement prometheus.Metric", o)
	}
	var m dto.Metric
	if err := metric.Write(&m); err != nil {
		t.Fatalf("histogram Write() error: %v", err)
	}
	return m.GetHistogram().GetSampleCount()
}

func TestInstallRegistersWithReactiveScheduler(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := Install(WithRegistry(reg), WithNamespace("vireo_test_a"))
	defer reactive.SetRecorder(nil)

	reactive.CreateRoot(func(dispose func()) {
		defer dispose()

		s := reactive.NewSignal(0)
		reactive.CreateEffect(func() reactive.Cleanup {
			s.Get()
			return nil
		})
		s.Set(1)
	})

	if got := metricCounterValue(t, c.flushesTotal); got < 1 {
		t.Fatalf("expected flushesTotal >= 1, got %v", got)
	}
	if got := metricHistogramCount(t, c.effectRunsPerFlush); got < 1 {
		t.Fatalf("expected effectRunsPerFlush observations >= 1, got %v", got)
	}
}

func TestCycleGuardTrippedIncrementsLabeledCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := Install(WithRegistry(reg), WithNamespace("vireo_test_b"))
	defer reactive.SetRecorder(nil)

	c.CycleGuardTripped("more than 1 effect runs in one flush")

	got := metricCounterValue(t, c.cycleGuardTrips.WithLabelValues("more than 1 effect runs in one flush"))
	if got != 1 {
		t.Fatalf("expected trip counter to be 1, got %v", got)
	}
}

func TestInstallRegistersWithReconciler(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := Install(WithRegistry(reg), WithNamespace("vireo_test_c"))
	defer reconciler.SetRecorder(nil)

	c.ReconcileStart()
	c.ReconcileEnd(3)
	c.BlockMoved("k1")

	if got := metricCounterValue(t, c.reconcilesTotal); got != 1 {
		t.Fatalf("expected reconcilesTotal to be 1, got %v", got)
	}
	if got := metricHistogramCount(t, c.movesPerReconcile); got != 1 {
		t.Fatalf("expected movesPerReconcile observations to be 1, got %v", got)
	}
	if got := metricCounterValue(t, c.reconcilerMoves); got != 1 {
		t.Fatalf("expected reconcilerMoves to be 1, got %v", got)
	}
}
