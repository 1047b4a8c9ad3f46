package control

import (
	"github.com/vireo-rt/vireo/pkg/binding"
	"github.com/vireo-rt/vireo/pkg/reactive"
)

// ErrorBoundary is the component-level wrapper of spec §4.7: it owns a
// root, registers an error handler on it, renders children inside a
// nested root, and on error destroys that child root and renders
// fallback(error) under a fresh nested root instead. A change to
// resetKeys (compared element-wise against the previous read) destroys
// whichever subtree — children or fallback — is currently mounted and
// re-mounts children.
type ErrorBoundary struct {
	host   binding.TreeHost
	parent binding.Node
	marker binding.Node

	root           *reactive.Root
	renderChildren func() []binding.Node
	renderFallback func(error) []binding.Node
	resetKeys      func() []any
	onError        func(error)

	subRoot  *reactive.Root
	nodes    []binding.Node
	lastKeys []any

	disposeWatch func()
}

// NewErrorBoundary constructs an ErrorBoundary and mounts children
// immediately. resetKeys and onError may both be nil.
func NewErrorBoundary(host binding.TreeHost, parent, marker binding.Node, children func() []binding.Node, fallback func(error) []binding.Node, resetKeys func() []any, onError func(error)) *ErrorBoundary {
	if resetKeys == nil {
		resetKeys = func() []any { return nil }
	}
	if onError == nil {
		onError = func(error) {}
	}

	owner := reactive.CurrentRoot()
	eb := &ErrorBoundary{
		host:           host,
		parent:         parent,
		marker:         marker,
		renderChildren: children,
		renderFallback: fallback,
		resetKeys:      resetKeys,
		onError:        onError,
	}
	eb.root = reactive.CreateRootContext(owner)
	prev := reactive.PushRoot(eb.root)
	eb.root.RegisterErrorHandler(eb.handleError)
	reactive.PopRoot(prev)

	eb.mountChildren()

	eb.disposeWatch = reactive.RenderEffect(func() reactive.Cleanup {
		keys := eb.resetKeys()
		if eb.lastKeys != nil && !keysEqual(eb.lastKeys, keys) {
			eb.lastKeys = keys
			eb.teardownSub()
			eb.mountChildren()
		} else {
			eb.lastKeys = keys
		}
		return nil
	})

	reactive.OnCleanup(eb.Dispose)
	return eb
}

// handleError is the boundary's registered error handler: it destroys
// whatever subtree is currently mounted and replaces it with
// fallback(err), or lets the error keep propagating if no fallback was
// provided. Returning true claims the error — it never reaches an
// ancestor boundary.
func (eb *ErrorBoundary) handleError(err error) bool {
	if eb.renderFallback == nil {
		return false
	}
	eb.teardownSub()
	eb.onError(err)
	eb.mountFallback(err)
	return true
}

func (eb *ErrorBoundary) mountChildren() {
	eb.mountUnder(func() []binding.Node { return eb.renderChildren() })
}

func (eb *ErrorBoundary) mountFallback(err error) {
	eb.mountUnder(func() []binding.Node { return eb.renderFallback(err) })
}

// mountUnder renders render under a fresh nested root, routing a panic
// during fallback render straight to the boundary's own handler chain
// (spec §4.7: "re-thrown errors during fallback render propagate to the
// error chain" — the same rule §4.8 states for Suspense's fallback).
func (eb *ErrorBoundary) mountUnder(render func() []binding.Node) {
	next := reactive.CreateRootContext(eb.root)

	var nodes []binding.Node
	failed := false
	func() {
		defer func() {
			if rec := recover(); rec != nil {
				failed = true
				reactive.DestroyRoot(next)
				if reactive.TrySuspense(eb.root, rec) {
					return
				}
				reactive.HandleError(eb.root, rec)
			}
		}()
		prevRoot := reactive.PushRoot(next)
		defer reactive.PopRoot(prevRoot)
		nodes = render()
	}()
	if failed {
		// The handler chain has already mounted whatever replaces this
		// render; recording next here would overwrite that state.
		return
	}

	for _, n := range nodes {
		eb.host.InsertBefore(eb.parent, n, eb.marker)
	}
	eb.subRoot = next
	eb.nodes = nodes
	reactive.FlushOnMount(next)
}

func (eb *ErrorBoundary) teardownSub() {
	if eb.subRoot != nil {
		reactive.DestroyRoot(eb.subRoot)
		eb.subRoot = nil
	}
	for _, n := range eb.nodes {
		eb.host.RemoveChild(eb.parent, n)
	}
	eb.nodes = nil
}

// Dispose tears the boundary's current subtree and its own root down.
// Idempotent.
func (eb *ErrorBoundary) Dispose() {
	if eb.disposeWatch != nil {
		eb.disposeWatch()
		eb.disposeWatch = nil
	}
	eb.teardownSub()
	if eb.root != nil {
		reactive.DestroyRoot(eb.root)
		eb.root = nil
	}
}

func keysEqual(a, b []any) (eq bool) {
	if len(a) != len(b) {
		return false
	}
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
