package reactive

// VersionedSignal is the variant named in spec §4.3: same contract as
// Signal, but Force bumps the version and notifies subscribers even when
// the value is unchanged under the equality predicate. The keyed-list
// reconciler (pkg/reconciler) uses this for a block's item signal: when a
// list item is the same reference but was mutated in place, Force tells
// subscribers to refresh anyway.
type VersionedSignal[T any] struct {
	base    signalBase
	value   T
	version uint64
	equal   func(a, b any) bool
}

// NewVersionedSignal creates a versioned signal holding initial.
func NewVersionedSignal[T any](initial T, opts ...SignalOption) *VersionedSignal[T] {
	o := applyOptions(opts)
	return &VersionedSignal[T]{
		base:  signalBase{id: nextID()},
		value: initial,
		equal: o.equal,
	}
}

// Read returns the current value, subscribing the active listener.
func (s *VersionedSignal[T]) Read() T {
	if l := getCurrentListener(); l != nil {
		s.base.subscribe(l)
		trackSource(l, &s.base)
	}
	return s.value
}

// PeekValue returns the current value without subscribing.
func (s *VersionedSignal[T]) PeekValue() T { return s.value }

// PeekVersion returns the current version counter without subscribing.
func (s *VersionedSignal[T]) PeekVersion() uint64 { return s.version }

// Write stores value. A no-op (no version bump, no notification) if
// value equals the current value under the equality predicate — same
// invariant as Signal.Set.
func (s *VersionedSignal[T]) Write(value T) {
	if s.equals(s.value, value) {
		return
	}
	s.value = value
	s.version++
	s.base.notifySubscribers()
}

// Force bumps the version and notifies subscribers unconditionally,
// regardless of whether value actually changed.
func (s *VersionedSignal[T]) Force() {
	s.version++
	s.base.notifySubscribers()
}

// ID returns the signal's unique identifier.
func (s *VersionedSignal[T]) ID() uint64 { return s.base.id }

func (s *VersionedSignal[T]) equals(a, b T) bool {
	if s.equal != nil {
		return s.equal(a, b)
	}
	return defaultEquals(a, b)
}
