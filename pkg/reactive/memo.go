package reactive

// Memo is a cached derived computation (spec's "Computed"). It is lazy:
// compute only runs on the first Get() after creation or after becoming
// invalid. If several of its dependencies change before anything reads
// it, compute still runs exactly once.
//
// A Memo is simultaneously a Listener (relative to what it depends on)
// and a source (relative to whatever depends on it), which is why it
// carries both a signalBase (its own subscriber set and height) and a
// sources list (its own dependencies, for unsubscribing on recompute).
//
// Grounded on pkg/vango/memo.go's Memo[T], trimmed of its render-loop
// hook-slot machinery (UseHookSlot/SetHookSlot — no component-DSL here)
// and rewired onto the scheduler's height discipline instead of a bare
// valid/invalid bool with no ordering information.
type Memo[T any] struct {
	base    signalBase
	compute func() T
	value   T
	valid   bool
	computing bool

	sources []*signalBase
	equal   func(a, b any) bool
}

// NewMemo creates a memo computed lazily by compute.
func NewMemo[T any](compute func() T, opts ...SignalOption) *Memo[T] {
	o := applyOptions(opts)
	return &Memo[T]{
		base:    signalBase{id: nextID()},
		compute: compute,
		equal:   o.equal,
	}
}

// Get returns the memo's value, recomputing first if invalid. Subscribes
// the active listener to future invalidations.
func (m *Memo[T]) Get() T {
	if l := getCurrentListener(); l != nil {
		m.base.subscribe(l)
		trackSource(l, &m.base)
	}
	if !m.valid {
		m.recompute()
	}
	return m.value
}

// Peek returns the memo's value (recomputing first if invalid) without
// subscribing the active listener.
func (m *Memo[T]) Peek() T {
	if !m.valid {
		m.recompute()
	}
	return m.value
}

// MarkDirty invalidates the memo and — because invalidation must reach
// any effect downstream of this memo even though the memo itself won't
// actually recompute until something reads it — cascades immediately to
// the memo's own subscribers. This is the push half of "push-based
// invalidation, pull-based evaluation": the dirty bit propagates eagerly
// through the whole transitive subscriber graph; only the recomputation
// itself is deferred to the next read.
func (m *Memo[T]) MarkDirty() {
	if !m.valid {
		return // already invalid; already cascaded.
	}
	m.valid = false
	m.base.notifySubscribers()
}

// ID returns the memo's unique identifier.
func (m *Memo[T]) ID() uint64 { return m.base.id }

// Height returns the memo's current topological level.
func (m *Memo[T]) Height() int { return m.base.h }

// addSource records source as one of this memo's current dependencies,
// deduplicated by pointer identity. Called by Signal.Get/Memo.Get via
// trackSource while this memo is the active listener during recompute.
func (m *Memo[T]) addSource(src *signalBase) {
	for _, s := range m.sources {
		if s == src {
			return
		}
	}
	m.sources = append(m.sources, src)
}

// WithEquals installs a custom equality predicate and returns m for
// chaining.
func (m *Memo[T]) WithEquals(fn func(a, b T) bool) *Memo[T] {
	m.equal = func(a, b any) bool { return fn(a.(T), b.(T)) }
	return m
}

func (m *Memo[T]) recompute() {
	if m.computing {
		// Circular dependency: return the stale cached value rather than
		// recursing forever.
		return
	}
	m.computing = true
	defer func() { m.computing = false }()

	for _, src := range m.sources {
		src.unsubscribe(m)
	}
	m.sources = m.sources[:0]

	prev := setCurrentListener(m)
	newValue := m.compute()
	setCurrentListener(prev)

	maxHeight := -1
	for _, src := range m.sources {
		if h := src.height(); h > maxHeight {
			maxHeight = h
		}
	}
	m.base.h = maxHeight + 1

	// Preserve the previous cached value's identity when the predicate
	// reports no change — the "else keep version" clause of spec §4.2's
	// computed-read contract, expressed here as keeping the old value
	// rather than a version counter this implementation doesn't track on
	// computeds (only VersionedSignal exposes one, per spec §4.3).
	if !m.equals(m.value, newValue) {
		m.value = newValue
	}
	m.valid = true
}

func (m *Memo[T]) equals(a, b T) bool {
	if m.equal != nil {
		return m.equal(a, b)
	}
	return defaultEquals(a, b)
}
