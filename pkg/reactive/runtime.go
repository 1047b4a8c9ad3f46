package reactive

// Runtime is the single mutable context a cooperative, single-threaded
// host needs: the active subscriber for read-tracking, the current root
// for lifecycle registration, the batch depth, and the scheduler's pending
// queues.
//
// Design Notes §9 calls this out explicitly: "Global mutable state
// (current root, active subscriber, batch depth, pending queue) →
// encapsulate in a Runtime value; make it thread-local or task-local. A
// single-threaded host uses one instance." The teacher's tracking.go took
// the thread-local route, keyed per-goroutine by parsing
// runtime.Stack(...) output — the teacher's own comment flags that as "an
// implementation detail [goroutine IDs] should not be relied upon
// externally". Spec §5 fixes the concurrency model as single-threaded
// cooperative, so that workaround has no reason to exist here: this
// module keeps exactly one Runtime value.
type Runtime struct {
	normal     *levelQueue
	transition *levelQueue
	microtask  MicrotaskScheduler

	scheduled    bool
	flushing     bool
	inTransition bool
	guard        *CycleGuard

	batchDepth      int
	currentListener Listener
	currentRoot     *Root
}

// NewRuntime builds a Runtime with the given Config's cycle guard wired
// in. Most programs don't need one of these directly — the package-level
// functions (Batch, CreateEffect, NewSignal, ...) operate on a shared
// default instance; NewRuntime exists for tests that want an isolated
// instance and for hosts embedding more than one independent reactive
// graph in the same process.
func NewRuntime(cfg Config) *Runtime {
	return &Runtime{
		normal:     newLevelQueue(),
		transition: newLevelQueue(),
		microtask:  immediateScheduler{},
		guard:      NewCycleGuard(cfg),
	}
}

// SetMicrotaskScheduler installs a host-supplied MicrotaskScheduler,
// letting a real event loop (a browser's queueMicrotask equivalent, a
// WASM animation-frame callback) defer flush past the current call stack
// instead of running it synchronously.
func (rt *Runtime) SetMicrotaskScheduler(s MicrotaskScheduler) {
	if s == nil {
		s = immediateScheduler{}
	}
	rt.microtask = s
}

// Configure replaces rt's cycle guard, built from cfg.
func (rt *Runtime) Configure(cfg Config) {
	rt.guard = NewCycleGuard(cfg)
}

func (rt *Runtime) enqueueEffect(r runnable) {
	if rt.inTransition {
		rt.transition.push(r)
	} else {
		rt.normal.push(r)
	}
	rt.requestFlush()
}

func (rt *Runtime) requestFlush() {
	if rt.batchDepth > 0 || rt.scheduled || rt.flushing {
		return
	}
	rt.scheduled = true
	rt.microtask.Schedule(rt.flush)
}

// flush drains both priority queues to a fixed point: normal priority
// runs to completion, then transition priority; if transition work
// dirties more normal-priority effects, normal drains again first
// (spec §4.1: "while the dirty set is non-empty, drain normal priority,
// then transition priority").
func (rt *Runtime) flush() {
	rt.scheduled = false
	if rt.flushing {
		return
	}
	rt.flushing = true
	defer func() { rt.flushing = false }()

	recordFlushStart()
	if rt.guard != nil {
		rt.guard.checkFlushStart()
	}
	cycles, effectRuns := 0, 0
	for !rt.normal.empty() || !rt.transition.empty() {
		cycles++
		if rt.guard != nil {
			rt.guard.checkFlushCycle(cycles)
		}
		if !rt.normal.empty() {
			effectRuns += rt.normal.drain(rt.guard)
			continue
		}
		effectRuns += rt.transition.drain(rt.guard)
	}
	recordFlushEnd(cycles, effectRuns)
}

// Batch executes fn with flush suppressed until the outermost Batch call
// returns, so multiple writes are observed by effects as a single update.
func (rt *Runtime) Batch(fn func()) {
	rt.batchDepth++
	defer func() {
		rt.batchDepth--
		if rt.batchDepth == 0 {
			rt.requestFlush()
		}
	}()
	fn()
}

// Untrack executes fn with the active subscriber cleared, so signal reads
// inside fn are not recorded as dependencies of whatever is currently
// tracking.
func (rt *Runtime) Untrack(fn func()) {
	prev := rt.SetActiveSub(nil)
	defer rt.SetActiveSub(prev)
	fn()
}

// SetActiveSub swaps the active subscriber used by read-tracking and
// returns the previous one, so callers (the reconciler, in particular)
// can restore it after running code under a different — or no —
// subscriber. This is spec §4.1's set_active_sub.
func (rt *Runtime) SetActiveSub(l Listener) Listener {
	prev := rt.currentListener
	rt.currentListener = l
	return prev
}

// StartTransition marks every write performed inside fn as low priority:
// effects they dirty run only after all normal-priority effects in the
// same flush have run to completion.
func (rt *Runtime) StartTransition(fn func()) {
	prev := rt.inTransition
	rt.inTransition = true
	defer func() { rt.inTransition = false }()
	rt.Batch(fn)
	_ = prev
}

func (rt *Runtime) currentRootValue() *Root { return rt.currentRoot }

func (rt *Runtime) pushRoot(r *Root) *Root {
	if rt.guard != nil {
		rt.guard.enterRoot()
	}
	prev := rt.currentRoot
	rt.currentRoot = r
	return prev
}

func (rt *Runtime) popRoot(prev *Root) {
	rt.currentRoot = prev
	if rt.guard != nil {
		rt.guard.exitRoot()
	}
}

// defaultRuntime is the shared single-threaded context the package-level
// API (Batch, Untrack, NewSignal, CreateEffect, CreateRoot, ...) operates
// on. Spec §9's "single-threaded host uses one instance" is this value.
var defaultRuntime = NewRuntime(DefaultConfig())

// Configure replaces the default runtime's cycle-guard configuration.
// Call once at startup; a host that never calls it runs with the guard
// disabled (DefaultConfig's DevMode is false).
func Configure(cfg Config) {
	defaultRuntime.Configure(cfg)
}

// SetMicrotaskScheduler installs a host-supplied MicrotaskScheduler on the
// default runtime.
func SetMicrotaskScheduler(s MicrotaskScheduler) {
	defaultRuntime.SetMicrotaskScheduler(s)
}

func getCurrentListener() Listener       { return defaultRuntime.currentListener }
func setCurrentListener(l Listener) Listener { return defaultRuntime.SetActiveSub(l) }
func getCurrentRoot() *Root              { return defaultRuntime.currentRootValue() }
