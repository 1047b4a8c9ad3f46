package reactive

// Root is the unit of ownership in the lifecycle tree (spec §4.4,
// "Root"/"Owner" in the glossary): every effect is registered to exactly
// one root, and disposing a root disposes its effects, runs its cleanups
// and destroy callbacks, and recurses into its children before doing so
// itself. Roots also carry the error-handler and suspense-handler chains
// that a panicking effect body or a pending suspense boundary walk
// upward looking for a handler.
//
// Grounded on pkg/vango/owner.go's Owner, trimmed of its component-DSL
// hook-slot/hook-order machinery (UseHookSlot/TrackHook/StartRender —
// there is no render loop here to validate against) and its SSR
// MemoryUsage estimator, and rewritten single-threaded per spec §5 (no
// mutexes: a Root, like everything else in this package, is only ever
// touched from the one cooperative thread the Runtime owns).
type Root struct {
	id uint64

	parent   *Root
	children []*Root

	effects []*Effect

	cleanups []func()
	destroys []func()

	onMountQueue []func()

	errorHandlers    []func(error) bool
	suspenseHandlers []func(any) bool

	disposed bool
}

// newRoot allocates a root as a child of parent (parent may be nil for a
// detached root).
func newRoot(parent *Root) *Root {
	r := &Root{id: nextID(), parent: parent}
	if parent != nil {
		parent.children = append(parent.children, r)
	}
	return r
}

// CreateRootContext allocates a new root under parent without running
// anything inside it. Used by callers — the keyed-list reconciler chief
// among them — that need a root's identity before they have a body to
// run in it (an item root is created, then its render callback is run
// with the root pushed current, potentially much later).
func CreateRootContext(parent *Root) *Root {
	return newRoot(parent)
}

// CreateRoot creates a root, makes it current for the duration of fn,
// and passes fn a dispose closure that tears the root down early. This
// is the normal entry point for a detached reactive scope (the runtime's
// top-level mount, or a boundary component's subtree).
func CreateRoot(fn func(dispose func())) *Root {
	root := newRoot(getCurrentRoot())
	prev := defaultRuntime.pushRoot(root)
	defer defaultRuntime.popRoot(prev)

	fn(func() { DestroyRoot(root) })
	return root
}

// PushRoot makes r the current root for the caller's cooperative frame
// and returns the previously-current root so it can be restored. Bounds
// reentrant root depth via the dev-mode cycle guard (spec §4.2's
// cycle-guard bullet on "root re-entrancy").
func PushRoot(r *Root) *Root {
	return defaultRuntime.pushRoot(r)
}

// PopRoot restores prev as the current root.
func PopRoot(prev *Root) {
	defaultRuntime.popRoot(prev)
}

// ID returns the root's unique identifier.
func (r *Root) ID() uint64 { return r.id }

// Parent returns the parent root, or nil for a detached root.
func (r *Root) Parent() *Root { return r.parent }

// IsDisposed reports whether DestroyRoot has already run on r.
func (r *Root) IsDisposed() bool { return r.disposed }

// registerEffect records e as owned by r so it is disposed with r.
func (r *Root) registerEffect(e *Effect) {
	if r.disposed {
		return
	}
	r.effects = append(r.effects, e)
}

// OnCleanup registers fn to run when r is destroyed, before the destroy
// list, in reverse registration order (spec §4.4's on_cleanup). A root
// already disposed runs fn immediately — there is no later destruction
// to defer to.
func (r *Root) OnCleanup(fn func()) {
	if r.disposed {
		fn()
		return
	}
	r.cleanups = append(r.cleanups, fn)
}

// OnDestroy registers fn to run after every cleanup on r has run, in
// reverse registration order (spec §4.4's on_destroy — the outermost
// teardown hook, for releasing resources that outlive a root's
// cleanups).
func (r *Root) OnDestroy(fn func()) {
	if r.disposed {
		fn()
		return
	}
	r.destroys = append(r.destroys, fn)
}

// onMount queues fn to run once the root's creating frame returns (spec
// §4.4's on_mount / flush_on_mount: mount callbacks never run inline
// during render, only after the surrounding tree is connected).
func (r *Root) onMount(fn func()) {
	if r.disposed {
		return
	}
	r.onMountQueue = append(r.onMountQueue, fn)
}

// FlushOnMount runs and clears every mount callback queued on r, then
// recurses into r's children in creation order. Called once the tree
// rooted at r has been attached: by the reconciler for each new block,
// and by the binding and control layers for each subtree they mount.
// CreateRoot does not call it.
func FlushOnMount(r *Root) {
	if r == nil || r.disposed {
		return
	}
	queue := r.onMountQueue
	r.onMountQueue = nil
	for _, fn := range queue {
		fn()
	}
	for _, child := range r.children {
		FlushOnMount(child)
	}
}

// RegisterErrorHandler installs fn on r's error-handler chain. When an
// effect body under r (or any descendant root with no closer handler)
// panics, the chain is walked from the panicking effect's root upward;
// the first handler that returns true is considered to have handled the
// error and the walk stops (spec §4.4/§4.7, the ErrorBoundary
// primitive's registration point).
func (r *Root) RegisterErrorHandler(fn func(error) bool) {
	r.errorHandlers = append(r.errorHandlers, fn)
}

// RegisterSuspenseHandler installs fn on r's suspense-handler chain,
// walked the same way as the error-handler chain when an effect body
// reads a pending resource (spec §4.8's Suspense primitive).
func (r *Root) RegisterSuspenseHandler(fn func(any) bool) {
	r.suspenseHandlers = append(r.suspenseHandlers, fn)
}

// DestroyRoot tears down r: children are destroyed first (reverse
// creation order, so the most recently mounted subtree unwinds first),
// then r's own effects are disposed, then its cleanups run in reverse
// registration order, then its destroy callbacks run in reverse
// registration order, and finally its handler chains are cleared.
// Idempotent.
func DestroyRoot(r *Root) {
	if r == nil || r.disposed {
		return
	}
	r.disposed = true

	if r.parent != nil {
		r.parent.removeChild(r)
	}

	children := r.children
	r.children = nil
	for i := len(children) - 1; i >= 0; i-- {
		DestroyRoot(children[i])
	}

	effects := r.effects
	r.effects = nil
	for _, e := range effects {
		e.dispose()
	}

	var firstErr error

	cleanups := r.cleanups
	r.cleanups = nil
	if err := runCleanups(r, reverseOf(cleanups)); err != nil {
		firstErr = err
	}

	destroys := r.destroys
	r.destroys = nil
	if err := runCleanups(r, reverseOf(destroys)); err != nil && firstErr == nil {
		firstErr = err
	}

	r.errorHandlers = nil
	r.suspenseHandlers = nil
	r.onMountQueue = nil

	if firstErr != nil {
		panic(firstErr)
	}
}

// reverseOf returns fns in reverse order, leaving fns itself untouched.
func reverseOf(fns []func()) []func() {
	out := make([]func(), len(fns))
	for i, fn := range fns {
		out[len(fns)-1-i] = fn
	}
	return out
}

func (r *Root) removeChild(child *Root) {
	for i, c := range r.children {
		if c == child {
			r.children = append(r.children[:i], r.children[i+1:]...)
			return
		}
	}
}

// runCleanups runs every fn in fns, in order, recovering each one's
// panic individually so a failing cleanup never stops the rest from
// running. Each recovered panic is first offered to root's
// error-handler chain; if no handler accepts it, it is remembered and
// the first such unhandled error is returned once every fn has run
// (spec §4.2/§7: all remaining cleanups still attempt to run, and the
// first unhandled error is re-raised only after the loop completes —
// never mid-loop, where it would abort the rest of a root's teardown).
func runCleanups(root *Root, fns []func()) error {
	var first error
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		func() {
			defer func() {
				if rec := recover(); rec != nil {
					err := wrapRenderError(&CleanupError{Cause: rec})
					if !tryHandleError(root, err) && first == nil {
						first = err
					}
				}
			}()
			fn()
		}()
	}
	return first
}

// wrapRenderError normalizes rec into an error, wrapping it in a
// RenderError if it isn't one already.
func wrapRenderError(rec any) error {
	if e, ok := rec.(error); ok {
		return e
	}
	return &RenderError{Cause: rec}
}

// tryHandleError walks the error-handler chain from root upward,
// stopping at the first handler that returns true. Reports whether
// some handler accepted err.
func tryHandleError(root *Root, err error) bool {
	for node := root; node != nil; node = node.parent {
		for i := len(node.errorHandlers) - 1; i >= 0; i-- {
			if node.errorHandlers[i](err) {
				return true
			}
		}
	}
	return false
}

// handleRenderError walks the error-handler chain from root upward,
// wrapping rec in a RenderError first if it isn't already an error.
// With no handler anywhere in the chain, the error is unrecoverable
// here and is panicked back out, per spec §4.7's "an uncaught effect
// error propagates past the boundary tree" fallback.
func handleRenderError(root *Root, rec any) {
	err := wrapRenderError(rec)
	if tryHandleError(root, err) {
		return
	}
	panic(err)
}

// CurrentRoot returns the root currently pushed on the default runtime,
// or nil if none is. Exported for packages built on top of this one (the
// binding layer, the reconciler) that need to create child roots or
// register cleanups relative to "whatever root is active right now"
// without reaching into package-internal state.
func CurrentRoot() *Root { return getCurrentRoot() }

// HandleError routes rec to root's error-handler chain, the same path an
// effect body's own recovered panic takes. Exported so callers that
// recover a panic themselves (the binding layer's child/conditional
// bindings, which must tell a suspense panic apart from an ordinary one
// before an effect's own recover would) can still feed ordinary errors
// into the same chain.
func HandleError(root *Root, rec any) { handleRenderError(root, rec) }

// suspenseSignal is the payload of a panic raised by Suspend. It is
// unexported so only TrySuspense can recognize it — nothing else should
// be able to manufacture or intercept a suspense panic.
type suspenseSignal struct{ thenable any }

// Suspend raises a suspense signal carrying thenable, to be caught by the
// nearest enclosing Suspense boundary's handler (spec §4.8). Call this
// from a render body that depends on a not-yet-resolved resource.
func Suspend(thenable any) { panic(suspenseSignal{thenable: thenable}) }

// TrySuspense recovers rec if it is a value Suspend raised, walking the
// suspense-handler chain from root upward and returning true as soon as
// some handler accepts it. If rec is a suspense signal but no handler in
// the chain accepts it, it is re-raised as a RenderError (an unhandled
// suspension is a render error, not something a recover should silently
// drop). If rec is not a suspense signal at all, TrySuspense returns
// false without touching rec, so the caller can fall back to its normal
// error handling.
func TrySuspense(root *Root, rec any) bool {
	sig, ok := rec.(suspenseSignal)
	if !ok {
		return false
	}
	for node := root; node != nil; node = node.parent {
		for i := len(node.suspenseHandlers) - 1; i >= 0; i-- {
			if node.suspenseHandlers[i](sig.thenable) {
				return true
			}
		}
	}
	handleRenderError(root, &RenderError{Cause: "unhandled suspension"})
	return true
}
