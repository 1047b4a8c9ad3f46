package reactive

import "reflect"

// signalBase is the shared bookkeeping behind Signal[T]: a subscriber set
// and the height (always 0 for a plain signal — it has no dependencies of
// its own) used by the scheduler's level discipline.
//
// Grounded on pkg/vango/signal.go's signalBase, trimmed of its
// mutex-guarded concurrent-subscriber-list machinery: spec §5 fixes the
// concurrency model as single-threaded cooperative, so the subscriber set
// is plain, unsynchronized state, exactly like every other piece of the
// Runtime.
type signalBase struct {
	id   uint64
	subs []Listener
	h    int // always 0 for a plain Signal; Memo overrides via its embedded base after each recompute.
}

func (b *signalBase) height() int { return b.h }

func (b *signalBase) subscribe(l Listener) {
	for _, s := range b.subs {
		if s.ID() == l.ID() {
			return
		}
	}
	b.subs = append(b.subs, l)
}

func (b *signalBase) unsubscribe(l Listener) {
	for i, s := range b.subs {
		if s.ID() == l.ID() {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return
		}
	}
}

// notifySubscribers marks every current subscriber dirty. This is the
// synchronous push phase: memos cascade immediately to their own
// subscribers from within MarkDirty, and effects enqueue themselves on
// the scheduler for deferred re-run. Subscribers are notified in a stable
// (insertion) order so that, within one height bucket, effects created
// earlier are scheduled first (spec §4.1's ordering guarantee).
func (b *signalBase) notifySubscribers() {
	if len(b.subs) == 0 {
		return
	}
	subs := make([]Listener, len(b.subs))
	copy(subs, b.subs)
	for _, s := range subs {
		s.MarkDirty()
	}
}

// Signal is a reactive cell holding a value of type T. Reading it during
// a tracked evaluation (an effect or memo body) subscribes the current
// listener; writing it notifies every subscriber unless the new value is
// equal to the old one under the configured equality predicate.
//
// Grounded on pkg/vango/signal.go's Signal[T], trimmed of its
// SSR-persistence fields (transient/persistKey) and its ~1000 lines of
// reflection-driven per-kind convenience mutators (Inc/Append/SetKey/...)
// — spec §6 asks only for a signal that is "callable with zero arguments
// (read) or one (write)"; Go expresses that as Get/Set/Peek/Update, not a
// numeric-type-switch catalog.
type Signal[T any] struct {
	base  signalBase
	value T
	equal func(a, b any) bool
}

// NewSignal creates a signal holding initial, configured by opts.
func NewSignal[T any](initial T, opts ...SignalOption) *Signal[T] {
	o := applyOptions(opts)
	return &Signal[T]{
		base:  signalBase{id: nextID()},
		value: initial,
		equal: o.equal,
	}
}

// Get returns the current value, subscribing the active listener (if any)
// to future changes.
func (s *Signal[T]) Get() T {
	if l := getCurrentListener(); l != nil {
		s.base.subscribe(l)
		trackSource(l, &s.base)
	}
	return s.value
}

// Peek returns the current value without subscribing.
func (s *Signal[T]) Peek() T {
	return s.value
}

// Set stores value. If value equals the current value under the
// signal's equality predicate, this is a no-op: no notification (spec
// §3's equality invariant).
func (s *Signal[T]) Set(value T) {
	if s.equals(s.value, value) {
		return
	}
	s.value = value
	s.base.notifySubscribers()
}

// Update replaces the value with fn(current value), following the same
// equality check as Set.
func (s *Signal[T]) Update(fn func(T) T) {
	s.Set(fn(s.value))
}

// WithEquals installs a custom equality predicate and returns s for
// chaining at construction time.
func (s *Signal[T]) WithEquals(fn func(a, b T) bool) *Signal[T] {
	s.equal = func(a, b any) bool { return fn(a.(T), b.(T)) }
	return s
}

// ID returns the signal's unique identifier.
func (s *Signal[T]) ID() uint64 { return s.base.id }

func (s *Signal[T]) equals(a, b T) bool {
	if s.equal != nil {
		return s.equal(a, b)
	}
	return defaultEquals(a, b)
}

// trackSource records source as a dependency of l, for listeners that
// need to unsubscribe from stale dependencies on their next run (Effect
// and Memo both do; nothing else implements this).
func trackSource(l Listener, source *signalBase) {
	if tracker, ok := l.(interface{ addSource(*signalBase) }); ok {
		tracker.addSource(source)
	}
}

// defaultEquals compares two values with == for the kinds the switch
// recognizes and falls back to reflect.DeepEqual otherwise. Kept narrow
// (no generic numeric-type catalog beyond what == already handles) since
// Go's comparable constraint can't be applied to an unconstrained T:
// callers needing value semantics for structs/slices/maps either supply
// WithEquals or accept the DeepEqual fallback.
func defaultEquals[T any](a, b T) bool {
	av, bv := any(a), any(b)
	switch x := av.(type) {
	case int:
		return x == bv.(int)
	case int8:
		return x == bv.(int8)
	case int16:
		return x == bv.(int16)
	case int32:
		return x == bv.(int32)
	case int64:
		return x == bv.(int64)
	case uint:
		return x == bv.(uint)
	case uint8:
		return x == bv.(uint8)
	case uint16:
		return x == bv.(uint16)
	case uint32:
		return x == bv.(uint32)
	case uint64:
		return x == bv.(uint64)
	case float32:
		return x == bv.(float32)
	case float64:
		return x == bv.(float64)
	case string:
		return x == bv.(string)
	case bool:
		return x == bv.(bool)
	default:
		return reflect.DeepEqual(a, b)
	}
}
