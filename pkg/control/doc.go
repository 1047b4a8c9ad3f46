// Package control implements the control-flow layer of spec §4.7/§4.8:
// ErrorBoundary (a nested root with a registered error handler, swapping
// its subtree to a fallback view on the nearest descendant's failure)
// and Suspense (a nested root with a registered suspense handler,
// tracking a pending counter of outstanding thenables and swapping
// between children and a fallback as that counter crosses zero).
//
// Neither has a teacher analogue — pkg/vango has no component-DSL
// control-flow layer of this shape — so both are built directly from
// spec §4.7/§4.8's own prose, reusing the nested-root-plus-handler-chain
// machinery pkg/reactive/root.go already exposes and the panic-routing
// template pkg/binding/child.go established for render-time failures.
package control
