package reactive

// Effect is a reactive side-effect body that reruns whenever a signal or
// memo it read during its last run changes. It runs once synchronously on
// creation, then on every flush in which a dependency changed, and is
// disposed with its owning root.
//
// Grounded on pkg/vango/effect.go's Effect, trimmed of its GoLatest
// call-site storage and hook-order tracking (both render-loop/component-DSL
// concerns with no equivalent here) and rewired onto the scheduler's
// height-bucketed queue (pkg/reactive/scheduler.go) instead of the
// teacher's owner.scheduleEffect/RunPendingEffects poll loop.
type Effect struct {
	id uint64

	fn      func() Cleanup
	cleanup Cleanup

	sources []*signalBase
	height  int

	// extraCleanups accumulates OnCleanup registrations made by code
	// running with this effect as the active listener, in addition to
	// whatever Cleanup its body returns. Reset at the start of every run.
	extraCleanups []func()

	root     *Root
	pending  bool
	disposed bool
}

// MarkDirty marks the effect pending and enqueues it on the scheduler.
// Idempotent within a single flush: a second MarkDirty before the effect
// actually runs is a no-op, so an effect with two dirtied dependencies in
// the same write still runs exactly once.
func (e *Effect) MarkDirty() {
	if e.disposed || e.pending {
		return
	}
	e.pending = true
	defaultRuntime.enqueueEffect(e)
}

// ID returns the effect's unique identifier.
func (e *Effect) ID() uint64 { return e.id }

// Height returns the effect's current topological level.
func (e *Effect) Height() int { return e.height }

// addSource records source as one of this effect's current dependencies.
func (e *Effect) addSource(src *signalBase) {
	for _, s := range e.sources {
		if s == src {
			return
		}
	}
	e.sources = append(e.sources, src)
}

// flush is the scheduler-facing entry point: run the effect body if it is
// still pending (a disposed effect dequeued after its root tore down is a
// no-op).
func (e *Effect) flush() {
	if e.disposed || !e.pending {
		return
	}
	e.run()
}

// run executes the effect body, following spec §4.2's effect-rerun
// sequence: (i) run the previous run's cleanups — the body-returned
// Cleanup first, then each OnCleanup registration in reverse order (see
// runCleanups); (ii) clear old dependency edges; (iii) re-run the body with this effect
// as the active subscriber; (iv) record the new cleanup and dependency
// set. A body that panics with a suspense signal (spec §4.8's Suspend)
// is routed to the owning root's suspense-handler chain; any other panic
// goes to its error-handler chain (spec §4.2, §4.4) instead of
// propagating past the effect.
func (e *Effect) run() {
	if e.disposed {
		return
	}
	e.pending = false
	e.runCleanups()

	for _, src := range e.sources {
		src.unsubscribe(e)
	}
	e.sources = e.sources[:0]

	prev := setCurrentListener(e)
	defer setCurrentListener(prev)

	func() {
		defer func() {
			if r := recover(); r != nil {
				if TrySuspense(e.root, r) {
					return
				}
				handleRenderError(e.root, r)
			}
		}()
		e.cleanup = e.fn()
	}()

	maxHeight := -1
	for _, src := range e.sources {
		if h := src.height(); h > maxHeight {
			maxHeight = h
		}
	}
	e.height = maxHeight + 1
}

// dispose cancels the effect permanently: runs its cleanup and
// unsubscribes from every remaining source. Idempotent.
func (e *Effect) dispose() {
	if e.disposed {
		return
	}
	e.disposed = true
	e.runCleanups()

	for _, src := range e.sources {
		src.unsubscribe(e)
	}
	e.sources = nil
}

// runCleanups runs the body-returned Cleanup, then every OnCleanup
// registration made during the last run, in reverse registration order
// (the more recently acquired resource is released first). A panic from
// any one of them never stops the rest from running; the first
// unhandled one is re-raised only once all of them have run (spec
// §4.2/§7's cleanup-error invariant).
func (e *Effect) runCleanups() {
	var fns []func()
	if e.cleanup != nil {
		fns = append(fns, e.cleanup)
		e.cleanup = nil
	}
	extra := e.extraCleanups
	e.extraCleanups = nil
	fns = append(fns, reverseOf(extra)...)

	if err := runCleanups(e.root, fns); err != nil {
		panic(err)
	}
}

// addCleanup records fn to run on this effect's next cleanup (its next
// re-run, or its disposal, whichever comes first). Used by OnCleanup when
// called with an effect as the active listener.
func (e *Effect) addCleanup(fn func()) {
	e.extraCleanups = append(e.extraCleanups, fn)
}

// Dispose cancels the effect permanently. Idempotent.
func (e *Effect) Dispose() { e.dispose() }

// EffectOption configures an Effect at construction time.
type EffectOption interface {
	applyEffect(e *effectConfig)
}

type effectConfig struct{}

type effectOptionFunc func(*effectConfig)

func (f effectOptionFunc) applyEffect(c *effectConfig) { f(c) }

// CreateEffect creates and immediately runs an effect within the current
// root. The effect re-runs whenever a signal or memo it read on its last
// run changes, until its root is disposed.
//
// Example:
//
//	CreateEffect(func() Cleanup {
//	    fmt.Println("count is:", count.Get())
//	    return nil
//	})
func CreateEffect(fn func() Cleanup, opts ...EffectOption) *Effect {
	root := getCurrentRoot()

	cfg := effectConfig{}
	for _, opt := range opts {
		opt.applyEffect(&cfg)
	}

	e := &Effect{
		id:   nextID(),
		fn:   fn,
		root: root,
	}

	if root != nil {
		root.registerEffect(e)
	}

	e.run()
	return e
}

// RenderEffect is CreateEffect for callers that want the dispose closure
// directly rather than the *Effect value — the binding layer's template
// (spec §4.5: "open an effect ... register the marker's removal with the
// current root") uses this shape throughout.
func RenderEffect(fn func() Cleanup, opts ...EffectOption) func() {
	e := CreateEffect(fn, opts...)
	return e.Dispose
}

// OnMount queues fn on the current root's mount queue; FlushOnMount runs
// it once, after the creating frame has returned and the tree is attached
// (spec §4.4's on_mount / flush_on_mount). With no current root, fn runs
// immediately.
func OnMount(fn func()) {
	root := getCurrentRoot()
	if root == nil {
		fn()
		return
	}
	root.onMount(fn)
}

// OnCleanup attaches fn to the currently-running effect, if any, so it
// runs before that effect's next re-run or at disposal; otherwise it
// attaches to the current root's cleanup list (spec §4.4's on_cleanup).
func OnCleanup(fn func()) {
	if e, ok := getCurrentListener().(*Effect); ok {
		e.addCleanup(fn)
		return
	}
	root := getCurrentRoot()
	if root == nil {
		return
	}
	root.OnCleanup(fn)
}

// OnDestroy attaches fn to the current root's destroy list, run after all
// cleanups on that root (spec §4.4's on_destroy).
func OnDestroy(fn func()) {
	root := getCurrentRoot()
	if root == nil {
		return
	}
	root.OnDestroy(fn)
}

// OnUpdate creates an effect that tracks deps on every run but only
// invokes callback from the second run onward — useful when a body
// should react to changes but not to the initial value.
func OnUpdate(deps func(), callback func()) {
	first := true
	CreateEffect(func() Cleanup {
		deps()
		if first {
			first = false
			return nil
		}
		callback()
		return nil
	})
}
