package reactive

// Recorder is the single optional hook spec §6 reserves for devtools
// integration: "a single optional global object ... with registration/
// update callbacks for signals, computed, and effects, and a cycle-
// detected callback." The devtools wire protocol itself (what a connected
// inspector does with these events) is explicitly out of scope; this
// interface is only the emission side, small enough that a metrics
// exporter or a tracer can each implement it without either depending on
// the other.
//
// Every method is called synchronously from the scheduler goroutine
// (spec §5's single-threaded cooperative model), so an implementation
// must not block — a Recorder that talks to the network should buffer
// and flush elsewhere.
type Recorder interface {
	// FlushStart is called once when a flush begins draining the pending
	// queues (before the first cycle of the normal/transition loop).
	FlushStart()
	// FlushEnd is called once when a flush has drained to a fixed point,
	// reporting how many flush cycles and effect runs it took.
	FlushEnd(cycles, effectRuns int)
	// EffectRan is called once per effect dequeued and run by the
	// scheduler, identified by its node ID.
	EffectRan(id uint64)
	// CycleGuardTripped is called when the cycle guard trips, regardless
	// of StrictMode (even a warn-only trip is reported).
	CycleGuardTripped(reason string)
}

// recorder is the process-wide Recorder, nil (no-op) by default.
var recorder Recorder

// SetRecorder installs r as the active Recorder. Passing nil disables
// instrumentation. Intended for a single host-level call at startup (a
// metrics exporter, a tracer) rather than per-graph configuration.
func SetRecorder(r Recorder) { recorder = r }

func recordFlushStart() {
	if recorder != nil {
		recorder.FlushStart()
	}
}

func recordFlushEnd(cycles, effectRuns int) {
	if recorder != nil {
		recorder.FlushEnd(cycles, effectRuns)
	}
}

func recordEffectRan(id uint64) {
	if recorder != nil {
		recorder.EffectRan(id)
	}
}

func recordCycleGuardTripped(reason string) {
	if recorder != nil {
		recorder.CycleGuardTripped(reason)
	}
}
