package reactive

// Batch groups multiple signal writes into a single flush: every affected
// effect still sees each dependency at its latest value, but runs once
// after the outermost Batch call returns rather than once per write.
// Batches nest; only the outermost call triggers a flush.
//
// Example:
//
//	Batch(func() {
//	    firstName.Set("John")
//	    lastName.Set("Doe")
//	    age.Set(30)
//	})
//	// dependent effects run once, after this call returns
func Batch(fn func()) {
	defaultRuntime.Batch(fn)
}

// Untrack runs fn with dependency tracking suspended: signal and memo
// reads inside fn are not recorded as dependencies of whatever effect or
// memo is currently evaluating.
//
// Example:
//
//	CreateEffect(func() Cleanup {
//	    // re-runs when count changes...
//	    fmt.Println(count.Get())
//	    Untrack(func() {
//	        // ...but not when unrelated changes, read here only for its value
//	        fmt.Println(unrelated.Get())
//	    })
//	    return nil
//	})
func Untrack(fn func()) {
	defaultRuntime.Untrack(fn)
}

// UntrackedGet reads s's value without creating a dependency. Equivalent
// to, and usually better expressed as, s.Peek().
func UntrackedGet[T any](s *Signal[T]) T {
	return s.Peek()
}

// StartTransition runs fn with every signal write inside it marked low
// priority: effects such writes dirty are deferred behind the current
// flush's normal-priority effects, so an urgent update (a keypress echo)
// is never held up behind an expensive one (a large list re-render)
// started in the same tick (spec §4.1's "transition" priority).
func StartTransition(fn func()) {
	defaultRuntime.StartTransition(fn)
}

// UseTransition returns a pending signal and a starter function: calling
// the starter runs its argument inside StartTransition and flips pending
// to true until every transition-priority effect from that call has run.
func UseTransition() (*Signal[bool], func(func())) {
	pending := NewSignal(false)
	start := func(fn func()) {
		pending.Set(true)
		StartTransition(func() {
			fn()
			OnMount(func() { pending.Set(false) })
		})
	}
	return pending, start
}

// UseDeferredValue returns a memo that tracks source but only commits a
// new value to its own subscribers at transition priority, so a listener
// reading it is not forced to re-run synchronously with every urgent
// update to source.
func UseDeferredValue[T any](source func() T) *Memo[T] {
	var initial T
	Untrack(func() { initial = source() })
	deferred := NewSignal(initial)

	CreateEffect(func() Cleanup {
		value := source()
		StartTransition(func() {
			deferred.Set(value)
		})
		return nil
	})
	return NewMemo(func() T { return deferred.Get() })
}
