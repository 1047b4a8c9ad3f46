package reconciler

import (
	"reflect"

	"github.com/vireo-rt/vireo/pkg/binding"
	"github.com/vireo-rt/vireo/pkg/reactive"
)

// block is one keyed entry: a reactive scope of its own (so an item's
// local state survives being moved in the DOM), an item signal (a
// VersionedSignal so an in-place mutation of a reference-equal item can
// still be forced through) and an index signal, and the top-level nodes
// its render function produced.
type block struct {
	key   any
	root  *reactive.Root
	item  *reactive.VersionedSignal[any]
	index *reactive.Signal[int]
	nodes []binding.Node

	// placeholder is set when render panicked (and the panic wasn't a
	// suspension a Suspense boundary accepted): the block still occupies
	// a slot in the order so the reorder pass's indices stay well-defined
	// (spec §4.6's failure semantics), but its sole node is an empty
	// marker rather than real content.
	placeholder bool
}

// updateItem writes item to b's item signal. If item is reference-equal
// to the signal's current value — the same pointer handed back again,
// its fields mutated in place — Write alone would be a silent no-op
// under the default equality predicate, so this also Forces a version
// bump, per spec §4.6 step 4's "equal reference forces a version bump
// via versioned signal."
func (b *block) updateItem(item any) {
	old := b.item.PeekValue()
	b.item.Write(item)
	if refEqual(old, item) {
		b.item.Force()
	}
}

// refEqual reports whether a and b are the same underlying reference for
// map/slice/pointer-kinded values, falling back to == for everything
// else. Mirrors pkg/store's refIdentity: a plain == panics on a
// non-comparable dynamic type (a slice or map held in an any), which
// would otherwise make the same-reference-mutated-in-place case below
// always look unequal for exactly the item shapes most likely to use it.
func refEqual(a, b any) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()

	av, bv := reflect.ValueOf(a), reflect.ValueOf(b)
	if !av.IsValid() || !bv.IsValid() {
		return a == nil && b == nil
	}
	if av.Kind() != bv.Kind() {
		return false
	}
	switch av.Kind() {
	case reflect.Map, reflect.Slice, reflect.Ptr, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return av.Pointer() == bv.Pointer()
	default:
		return a == b
	}
}

// firstNode returns the node reorder/insert operations should anchor
// against: the block's first top-level node.
func (b *block) firstNode() binding.Node {
	if len(b.nodes) == 0 {
		return nil
	}
	return b.nodes[0]
}
