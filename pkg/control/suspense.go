package control

import (
	"github.com/vireo-rt/vireo/pkg/binding"
	"github.com/vireo-rt/vireo/pkg/reactive"
)

// Suspense is spec §4.8's boundary: renders children under a nested root
// with a registered suspense handler. Any thenable thrown during that
// render (or during a later re-render triggered by children's own
// internal effects) increments a pending counter and swaps the visible
// subtree to fallback; each thenable's resolution decrements the
// counter, and reaching zero swaps back to children. An internal epoch
// is bumped on every swap so a resolution belonging to a superseded
// render (e.g. one torn down by resetKeys or a fresh suspension) is
// ignored instead of mutating a view that's no longer current.
type Suspense struct {
	host   binding.TreeHost
	parent binding.Node
	marker binding.Node

	root           *reactive.Root
	renderChildren func() []binding.Node
	renderFallback func() []binding.Node

	subRoot *reactive.Root
	nodes   []binding.Node

	pending int
	epoch   uint64
	showing string // "children" or "fallback"
}

// NewSuspense constructs a Suspense boundary and mounts children
// immediately.
func NewSuspense(host binding.TreeHost, parent, marker binding.Node, children func() []binding.Node, fallback func() []binding.Node) *Suspense {
	owner := reactive.CurrentRoot()
	s := &Suspense{
		host:           host,
		parent:         parent,
		marker:         marker,
		renderChildren: children,
		renderFallback: fallback,
	}
	s.root = reactive.CreateRootContext(owner)
	prev := reactive.PushRoot(s.root)
	s.root.RegisterSuspenseHandler(s.handleSuspend)
	reactive.PopRoot(prev)

	s.mount(s.renderChildren, "children")

	reactive.OnCleanup(s.Dispose)
	return s
}

// handleSuspend is the boundary's registered suspense handler: it swaps
// to fallback once any thenable is outstanding, captures the epoch of
// that fallback view (after any swap, since swapTo bumps the epoch), and
// subscribes to the thenable. Returning true claims the suspension so it
// never reaches an ancestor Suspense.
func (s *Suspense) handleSuspend(token any) bool {
	thenable, ok := token.(Thenable)
	if !ok {
		return false
	}

	s.pending++
	if s.showing != "fallback" {
		s.swapTo(s.renderFallback, "fallback")
	}
	myEpoch := s.epoch

	thenable.Then(
		func(any) { s.settle(myEpoch) },
		func(error) { s.settle(myEpoch) },
	)
	return true
}

// settle decrements the pending counter belonging to epoch gen and, once
// it reaches zero and gen still matches the live epoch, swaps back to
// children. A resolution whose epoch has been superseded (the boundary
// already swapped again for some other reason) is a no-op.
func (s *Suspense) settle(gen uint64) {
	if gen != s.epoch {
		return
	}
	if s.pending > 0 {
		s.pending--
	}
	if s.pending == 0 && s.showing == "fallback" {
		s.swapTo(s.renderChildren, "children")
	}
}

// swapTo tears the current subtree down, bumps the epoch (so any
// in-flight thenable subscription belonging to the torn-down render is
// ignored when it eventually settles), and mounts render in its place.
func (s *Suspense) swapTo(render func() []binding.Node, label string) {
	s.epoch++
	s.teardown()
	s.mount(render, label)
}

// mount renders render under a fresh nested root. A panic that is itself
// another suspension re-enters the handler chain (a fallback view can
// itself suspend); an ordinary panic propagates to the error chain, per
// spec §4.8's "re-thrown errors during fallback render propagate to the
// error chain."
func (s *Suspense) mount(render func() []binding.Node, label string) {
	next := reactive.CreateRootContext(s.root)

	var nodes []binding.Node
	failed := false
	func() {
		defer func() {
			if rec := recover(); rec != nil {
				failed = true
				reactive.DestroyRoot(next)
				if reactive.TrySuspense(s.root, rec) {
					return
				}
				reactive.HandleError(s.root, rec)
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
		s.host.InsertBefore(s.parent, n, s.marker)
	}
	s.subRoot = next
	s.nodes = nodes
	s.showing = label
	reactive.FlushOnMount(next)
}

func (s *Suspense) teardown() {
	if s.subRoot != nil {
		reactive.DestroyRoot(s.subRoot)
		s.subRoot = nil
	}
	for _, n := range s.nodes {
		s.host.RemoveChild(s.parent, n)
	}
	s.nodes = nil
}

// Pending reports the number of currently outstanding thenables.
func (s *Suspense) Pending() int { return s.pending }

// Dispose tears the boundary's current subtree and its own root down.
// Idempotent.
func (s *Suspense) Dispose() {
	s.teardown()
	if s.root != nil {
		reactive.DestroyRoot(s.root)
		s.root = nil
	}
}
