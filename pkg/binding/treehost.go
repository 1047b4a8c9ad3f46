// Package binding implements the binding layer of spec §4.5: small
// effect-backed primitives that connect a reactive value to a tree node
// or attribute, each following the same template — create a marker,
// open an effect that mutates the tree when the source changes, register
// the marker's teardown with the current root.
//
// Grounded on pkg/vdom's attribute/class/style binding helpers (deleted
// from this tree: that package diffed a virtual DOM tree wholesale, a
// different shape than spec §4.5's per-binding reactive primitives) and,
// for the TreeHost abstraction itself, on spec §6's explicit "required
// tree host operations" list — the host, not this package, owns what a
// Node actually is.
package binding

// Node is an opaque handle to a tree node, owned entirely by the
// TreeHost implementation. This package never inspects a Node's
// concrete type; it only ever passes one back to the host that produced
// it.
type Node any

// TreeHost is the tree-mutation surface spec §6 requires of any host
// this binding layer is embedded in (a real DOM, a server-side virtual
// tree, a test double). Every binding in this package is written purely
// in terms of this interface.
type TreeHost interface {
	CreateElement(tag string) Node
	CreateText(data string) Node
	CreateMarker() Node
	CreateFragment() Node

	// SetText updates a text node's character data in place.
	SetText(node Node, data string)

	// SetAttribute sets name to value, following string → value-or-remove
	// semantics the caller has already resolved (this package resolves the
	// attribute-vs-property and nullish/boolean policy before calling
	// through; the host just applies the final string).
	SetAttribute(el Node, name, value string)
	SetAttributeNS(el Node, ns, name, value string)
	RemoveAttribute(el Node, name string)

	// GetAttribute reads an attribute's current string value, used by the
	// class binding to capture the element's static classes once at bind
	// time.
	GetAttribute(el Node, name string) (string, bool)

	// SetProperty sets a host-object property directly (spec's
	// element-specific property-bound keys: value, checked, selected,
	// disabled, readonly, multiple, muted).
	SetProperty(el Node, name string, value any)

	InsertBefore(parent Node, node Node, anchor Node)
	RemoveChild(parent Node, node Node)

	// ObserveConnected calls fn once node becomes attached to a connected
	// parent (spec §4.6's "connected guard"), or immediately if it
	// already is. Returns a cancel function.
	ObserveConnected(node Node, fn func()) (cancel func())
}

// IsNil reports whether a Node handle is the zero value — hosts that
// represent "no anchor" / "no parent" as a nil pointer or nil interface
// can use this instead of a host-specific sentinel.
func IsNil(n Node) bool { return n == nil }
