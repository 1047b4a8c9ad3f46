// Package reactive provides the reactive dependency graph that the rest of
// this module builds on: signals, computed memos, effects, an ownership
// tree of roots, and the scheduler that turns a batch of writes into a
// single, glitch-free round of effect re-runs.
//
// Dependencies are tracked automatically: reading a signal or memo while
// an effect or another memo is evaluating subscribes that listener to
// future changes, with no explicit subscribe call required.
//
// # Core types
//
// Signal[T] is a reactive value cell:
//
//	count := NewSignal(0)
//	value := count.Get()  // read, subscribes the active listener
//	count.Set(5)          // write, notifies subscribers if changed
//	count.Update(func(n int) int { return n + 1 })
//
// Memo[T] is a lazily-recomputed derived value:
//
//	doubled := NewMemo(func() int { return count.Get() * 2 })
//	value := doubled.Get()  // recomputes only if a dependency changed
//
// Effect reruns a side-effecting body whenever a dependency changes:
//
//	CreateEffect(func() Cleanup {
//	    fmt.Println("count is:", count.Get())
//	    return nil
//	})
//
// # Batching and scheduling
//
// Writes inside Batch are coalesced into a single round of effect
// re-runs once the outermost batch returns:
//
//	Batch(func() {
//	    a.Set(1)
//	    b.Set(2)
//	})  // dependent effects run once
//
// Flush itself is deferred to a MicrotaskScheduler (synchronous by
// default; a host with a real event loop calls SetMicrotaskScheduler to
// defer it past the current call stack) and drains effects in ascending
// dependency-height order so that an effect never observes a memo mid
// -recomputation.
//
// # Concurrency
//
// The reactive graph is single-threaded and cooperative: every signal,
// memo, effect, and root is plain, unsynchronized state owned by one
// Runtime value. A host that wants concurrent access must serialize it
// itself (one goroutine driving the graph, others communicating with it
// over a channel); there is no per-goroutine tracking context to
// propagate.
package reactive
