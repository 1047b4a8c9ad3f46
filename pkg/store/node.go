package store

import (
	"sort"
	"strconv"

	"github.com/vireo-rt/vireo/pkg/reactive"
)

// Node is one level of a store tree: either an object (backed by a
// map[string]any) or an array (backed by a []any). Each owns a lazily-
// grown map of per-key signals and a cached map of child Nodes so that
// reading the same nested object twice returns the identical *Node
// (spec §4.9: "identity is cached ... so proxy(x) === proxy(x)").
type Node struct {
	isArray bool
	obj     map[string]any
	arr     []any

	signals  map[any]*reactive.VersionedSignal[any]
	children map[any]*Node
	iterate  *reactive.VersionedSignal[int]
}

// New wraps a raw map[string]any or []any as the root of a store tree.
func New(initial any) *Node {
	switch v := initial.(type) {
	case map[string]any:
		return wrapObject(v)
	case []any:
		return wrapArray(v)
	default:
		panic("store: New requires a map[string]any or []any root value")
	}
}

func wrapObject(obj map[string]any) *Node {
	return &Node{
		obj:      obj,
		signals:  map[any]*reactive.VersionedSignal[any]{},
		children: map[any]*Node{},
		iterate:  reactive.NewVersionedSignal(len(obj)),
	}
}

func wrapArray(arr []any) *Node {
	return &Node{
		isArray:  true,
		arr:      arr,
		signals:  map[any]*reactive.VersionedSignal[any]{},
		children: map[any]*Node{},
		iterate:  reactive.NewVersionedSignal(len(arr)),
	}
}

// IsArray reports whether this node wraps an array rather than an
// object.
func (n *Node) IsArray() bool { return n.isArray }

// Get reads key, subscribing the active listener to that key's signal.
// A nested object or array value is returned as its own (identity-
// cached) *Node rather than the raw map/slice.
func (n *Node) Get(key any) any {
	n.signalFor(key).Read()
	return n.viewOf(key, n.rawGet(key))
}

// Peek reads key without subscribing.
func (n *Node) Peek(key any) any {
	return n.viewOf(key, n.rawGet(key))
}

// Len tracks and returns the node's element/key count (spec §4.9's
// "effect reads store.items.length" example: Len's dependency is the
// iterate signal, so a push or truncation notifies it exactly once).
func (n *Node) Len() int {
	n.iterate.Read()
	if n.isArray {
		return len(n.arr)
	}
	return len(n.obj)
}

// Keys tracks the iterate signal and returns the node's current keys —
// stringified indices "0".."len-1" for an array, sorted map keys for an
// object (sorted for deterministic iteration order; Go map iteration
// order is otherwise unspecified, which spec §4.9 doesn't call for but
// a store consumer almost certainly still wants to be able to rely on).
func (n *Node) Keys() []string {
	n.iterate.Read()
	if n.isArray {
		keys := make([]string, len(n.arr))
		for i := range n.arr {
			keys[i] = strconv.Itoa(i)
		}
		return keys
	}
	keys := make([]string, 0, len(n.obj))
	for k := range n.obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Set writes value at key. key is a string for an object node, an int
// for an array node (an index equal to the array's current length
// appends). Notifies key's signal only when value is a different
// reference than what was there (see refIdentity), and notifies the
// iterate signal when key is newly created.
func (n *Node) Set(key any, value any) {
	existed := n.hasKey(key)
	old := n.rawGet(key)

	n.rawSet(key, value)

	sig := n.signalFor(key)
	sig.Write(value)
	if !refIdentity(old, value) {
		delete(n.children, key)
	}
	if !existed {
		n.bumpIterate()
	}
}

// Delete removes key from an object node. Deleting from an array is not
// supported — only Push (append) and Truncate (shorten from the end)
// mutate an array's length, per spec §4.9's explicit mention of
// truncation and nothing about arbitrary splice.
func (n *Node) Delete(key string) {
	if n.isArray {
		panic("store: Delete is object-only; use Truncate to shrink an array")
	}
	if _, ok := n.obj[key]; !ok {
		return
	}
	delete(n.obj, key)
	delete(n.children, key)
	if sig, ok := n.signals[key]; ok {
		sig.Force()
	}
	n.bumpIterate()
}

// Push appends value to an array node, notifying the iterate signal
// (and so Len's subscribers) once.
func (n *Node) Push(value any) {
	if !n.isArray {
		panic("store: Push is array-only")
	}
	n.arr = append(n.arr, value)
	n.bumpIterate()
}

// Truncate shortens an array node to newLen, notifying every index
// signal in [newLen, oldLen) unconditionally — spec §4.9: "when length
// decreases to n, notify every signal whose key is an integer index ≥ n
// and < previous length" — via Force rather than Write, since the
// notification is required whether or not anything previously read that
// index's value.
func (n *Node) Truncate(newLen int) {
	if !n.isArray {
		panic("store: Truncate is array-only")
	}
	oldLen := len(n.arr)
	if newLen >= oldLen {
		return
	}
	for i := newLen; i < oldLen; i++ {
		if sig, ok := n.signals[i]; ok {
			sig.Force()
		}
		delete(n.children, i)
	}
	n.arr = n.arr[:newLen]
	n.bumpIterate()
}

func (n *Node) bumpIterate() { n.iterate.Force() }

func (n *Node) hasKey(key any) bool {
	if n.isArray {
		idx := key.(int)
		return idx >= 0 && idx < len(n.arr)
	}
	_, ok := n.obj[key.(string)]
	return ok
}

func (n *Node) rawGet(key any) any {
	if n.isArray {
		idx := key.(int)
		if idx < 0 || idx >= len(n.arr) {
			return nil
		}
		return n.arr[idx]
	}
	return n.obj[key.(string)]
}

func (n *Node) rawSet(key any, value any) {
	if n.isArray {
		idx := key.(int)
		if idx == len(n.arr) {
			n.arr = append(n.arr, value)
			return
		}
		n.arr[idx] = value
		return
	}
	n.obj[key.(string)] = value
}

// signalFor returns key's signal, creating it (seeded with the key's
// current raw value) on first access. A reference-identity equality
// predicate backs it rather than the library default's DeepEqual
// fallback: a store write should notify on a new object reference even
// if it happens to be structurally identical to the old one.
func (n *Node) signalFor(key any) *reactive.VersionedSignal[any] {
	if sig, ok := n.signals[key]; ok {
		return sig
	}
	sig := reactive.NewVersionedSignal[any](n.rawGet(key), reactive.EqualsFunc(refIdentity))
	n.signals[key] = sig
	return sig
}

// viewOf wraps a nested map/slice value as a child Node, reusing the
// cached child if it still wraps the same backing map/slice.
func (n *Node) viewOf(key, raw any) any {
	switch v := raw.(type) {
	case map[string]any:
		if child, ok := n.children[key]; ok && !child.isArray && refIdentity(child.obj, v) {
			return child
		}
		child := wrapObject(v)
		n.children[key] = child
		return child
	case []any:
		if child, ok := n.children[key]; ok && child.isArray && refIdentity(child.arr, v) {
			return child
		}
		child := wrapArray(v)
		n.children[key] = child
		return child
	default:
		return raw
	}
}
