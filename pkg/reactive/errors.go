package reactive

import (
	"errors"
	"fmt"
)

// Sentinel errors for the invariant-violation and cycle-guard-trip kinds
// named in spec §7. Grounded on the teacher's sentinel style
// (pkg/vango/errors.go), trimmed of the SSR/Action-specific sentinels.
var (
	// ErrCycleGuardTripped is raised (StrictPanic) or would have been
	// raised (StrictWarn logs instead) when a dev-mode cycle-guard
	// threshold is exceeded.
	ErrCycleGuardTripped = errors.New("reactive: cycle guard tripped")

	// ErrDisposed names the error kind for an operation on an effect,
	// memo, or root that has already been disposed. No function in this
	// module returns it: running a disposed effect and queueing a mount
	// callback on a disposed root are silent no-ops.
	ErrDisposed = errors.New("reactive: already disposed")

	// ErrNoCurrentRoot names the error kind for a lifecycle registration
	// made with no current root pushed. No function in this module raises
	// it: with no current root, OnMount runs fn immediately and OnDestroy
	// does nothing; handler registration is a method on *Root.
	ErrNoCurrentRoot = errors.New("reactive: no current root")

	// ErrInvalidMarker names the error kind for a tree-host operation
	// handed a node that is not a marker the reconciler or binding layer
	// produced. No function in this module returns it; markers are not
	// validated.
	ErrInvalidMarker = errors.New("reactive: invalid marker node")
)

// RenderError wraps a panic recovered from an effect body, computed body,
// or binding — the "user render error" kind from spec §7. It carries the
// recovered value so an error handler can inspect the original cause.
type RenderError struct {
	Cause any
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("reactive: render error: %v", e.Cause)
}

func (e *RenderError) Unwrap() error {
	if err, ok := e.Cause.(error); ok {
		return err
	}
	return nil
}

// CleanupError wraps a panic recovered from a cleanup or destroy callback
// — the "cleanup error" kind from spec §7. All remaining cleanups still
// run; the first CleanupError encountered is what gets re-raised through
// the error chain.
type CleanupError struct {
	Cause any
}

func (e *CleanupError) Error() string {
	return fmt.Sprintf("reactive: cleanup error: %v", e.Cause)
}

func (e *CleanupError) Unwrap() error {
	if err, ok := e.Cause.(error); ok {
		return err
	}
	return nil
}
