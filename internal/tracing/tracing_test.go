package tracing

import (
	"testing"

	"github.com/vireo-rt/vireo/pkg/reactive"
	"github.com/vireo-rt/vireo/pkg/reconciler"
)

func TestInstallWiresFlushAndReconcileSpans(t *testing.T) {
	tr := Install(WithTracerName("vireo-test"))
	defer reactive.SetRecorder(nil)
	defer reconciler.SetRecorder(nil)

	tr.FlushStart()
	if tr.flushSpan == nil {
		t.Fatalf("expected FlushStart to open a span")
	}
	tr.ReconcileStart()
	if tr.reconcileSpan == nil {
		t.Fatalf("expected ReconcileStart to open a span")
	}
	tr.BlockMoved("item-1")
	tr.ReconcileEnd(1)
	if tr.reconcileSpan != nil {
		t.Fatalf("expected ReconcileEnd to clear the reconcile span")
	}
	tr.FlushEnd(1, 3)
	if tr.flushSpan != nil {
		t.Fatalf("expected FlushEnd to clear the flush span")
	}
}

func TestFlushEndWithoutStartIsNoop(t *testing.T) {
	tr := &Tracer{tracer: Install(WithTracerName("vireo-test-2")).tracer}
	tr.FlushEnd(0, 0)
	tr.ReconcileEnd(0)
	tr.CycleGuardTripped("unused")
	tr.BlockMoved("unused")
}
