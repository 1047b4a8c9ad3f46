package store

import "github.com/vireo-rt/vireo/pkg/reactive"

// SetStore runs fn inside a batch, per spec §4.9: "set_store(fn) wraps
// writes in batch." fn receives n so it can mutate directly (Set/Push/
// Delete/Truncate calls inside it are coalesced into the single flush
// batch produces), and may optionally return a replacement value; a
// non-nil return triggers a shallow reconcile against n's current
// contents instead of (or in addition to) any direct mutation fn already
// made.
func SetStore(n *Node, fn func(*Node) any) {
	reactive.Batch(func() {
		if replacement := fn(n); replacement != nil {
			n.reconcile(replacement)
		}
	})
}

// reconcile diffs replacement against n's current keys: a key present in
// replacement but not currently in n is inserted, a key whose value
// differs is written (triggering that key's notify — Set already
// handles the "did it actually change" check), and a key present in n
// but absent from replacement is removed (Delete for an object,
// Truncate for an array, since arrays only support shrinking from the
// end).
func (n *Node) reconcile(replacement any) {
	switch v := replacement.(type) {
	case map[string]any:
		if n.isArray {
			panic("store: cannot reconcile an array node with an object replacement")
		}
		for k := range n.obj {
			if _, ok := v[k]; !ok {
				n.Delete(k)
			}
		}
		for k, val := range v {
			n.Set(k, val)
		}
	case []any:
		if !n.isArray {
			panic("store: cannot reconcile an object node with an array replacement")
		}
		oldLen := len(n.arr)
		for i, val := range v {
			n.Set(i, val)
		}
		if len(v) < oldLen {
			n.Truncate(len(v))
		}
	default:
		panic("store: reconcile requires a map[string]any or []any replacement")
	}
}
