// Package store implements spec §4.9's reactive store: a plain Go
// object/array tree wrapped in a "proxy" type that lazily creates one
// signal per (target, key) pair on first read, and an iterate signal per
// node that tracks key-set membership (insertion, deletion, and array
// truncation).
//
// Spec §9's Design Notes call for exactly this shape in place of a
// language-level Proxy: "implement as an index-keyed arena of nodes
// (object, array) each owning a lazily-grown map of per-property
// signals, exposed via a thin typed view." There is no teacher analogue
// for a deep reactive store — pkg/vango's signals are flat, scalar
// values — so this package is built directly from that Design Note and
// from spec §4.9's own description, reusing VersionedSignal (already
// grounded for the reconciler's per-item signal) for every per-key and
// per-node iterate signal so an explicit Force is available wherever the
// spec calls for an unconditional notify (array truncation, key
// deletion).
package store
