package reconciler

import (
	"github.com/vireo-rt/vireo/pkg/binding"
	"github.com/vireo-rt/vireo/pkg/reactive"
)

// RenderFunc renders one block's content. It receives the block's own
// item and index signals — reading them subscribes to per-item updates
// without re-running the outer reconcile effect — and the resolved key.
type RenderFunc func(item *reactive.VersionedSignal[any], index *reactive.Signal[int], key any) []binding.Node

// KeyFunc computes the stable identity of an item at a given position.
type KeyFunc func(item any, index int) any

// KeyedList is the container spec §4.6 describes: a start/end marker
// pair bracketing a run of per-key blocks, kept in sync with a reactive
// items accessor.
type KeyedList struct {
	host   binding.TreeHost
	parent binding.Node
	start  binding.Node
	end    binding.Node

	owner  *reactive.Root
	keyFn  KeyFunc
	render RenderFunc

	blocks map[any]*block
	order  []*block

	devMode       bool
	cancelObserve func()
	disposeEffect func()
}

// Option configures a KeyedList at construction time.
type Option func(*KeyedList)

// WithDevMode enables duplicate-key warnings.
func WithDevMode(v bool) Option {
	return func(kl *KeyedList) { kl.devMode = v }
}

// New creates a keyed list container between two fresh markers inserted
// before anchor under parent, and defers its reconcile effect until the
// container is observed connected (spec §4.6 step 1's "connected
// guard").
func New(host binding.TreeHost, parent binding.Node, anchor binding.Node, itemsFn func() []any, keyFn KeyFunc, render RenderFunc, opts ...Option) *KeyedList {
	kl := &KeyedList{
		host:   host,
		parent: parent,
		keyFn:  keyFn,
		render: render,
		blocks: map[any]*block{},
		owner:  reactive.CurrentRoot(),
	}
	for _, opt := range opts {
		opt(kl)
	}

	kl.start = host.CreateMarker()
	kl.end = host.CreateMarker()
	host.InsertBefore(parent, kl.start, anchor)
	host.InsertBefore(parent, kl.end, anchor)

	start := func() {
		kl.disposeEffect = reactive.RenderEffect(func() reactive.Cleanup {
			kl.diff(itemsFn())
			return nil
		})
	}
	kl.cancelObserve = host.ObserveConnected(kl.start, start)

	reactive.OnCleanup(kl.Dispose)
	return kl
}

// Start returns the container's start marker.
func (kl *KeyedList) Start() binding.Node { return kl.start }

// End returns the container's end marker.
func (kl *KeyedList) End() binding.Node { return kl.end }

// Flush reports whether the container's reconcile effect has started.
// Effects run synchronously on creation, so once ObserveConnected has
// fired there is nothing left to force; hosts that want to confirm the
// initial reconcile already happened can check this instead of guessing.
func (kl *KeyedList) Flush() bool {
	return kl.disposeEffect != nil
}

// Dispose tears every remaining block down and detaches the container's
// markers; Start and End return nil afterwards. Idempotent.
func (kl *KeyedList) Dispose() {
	if kl.cancelObserve != nil {
		kl.cancelObserve()
		kl.cancelObserve = nil
	}
	if kl.disposeEffect != nil {
		kl.disposeEffect()
		kl.disposeEffect = nil
	}
	for _, b := range kl.order {
		kl.destroyBlock(b)
	}
	kl.order = nil
	kl.blocks = map[any]*block{}
	if kl.start != nil {
		kl.host.RemoveChild(kl.parent, kl.start)
		kl.host.RemoveChild(kl.parent, kl.end)
		kl.start, kl.end = nil, nil
	}
}

// diff runs the full algorithm of spec §4.6 steps 2–9.
func (kl *KeyedList) diff(items []any) {
	recordReconcileStart()
	moves := 0
	defer func() { recordReconcileEnd(moves) }()

	if len(items) == 0 {
		kl.emptyFastPath()
		return
	}
	if kl.stableOrderFastPath(items) {
		return
	}
	moves = kl.generalPass(items)
}

func (kl *KeyedList) emptyFastPath() {
	for _, b := range kl.order {
		kl.destroyBlock(b)
	}
	kl.order = nil
	kl.blocks = map[any]*block{}
}

func (kl *KeyedList) stableOrderFastPath(items []any) bool {
	if len(items) != len(kl.order) {
		return false
	}
	for i, item := range items {
		k := kl.keyFn(item, i)
		if k != kl.order[i].key {
			return false
		}
	}
	for i, item := range items {
		b := kl.order[i]
		b.updateItem(item)
		b.index.Set(i)
	}
	return true
}

// entry is one deduplicated (key, item, position) triple used by the
// general pass.
type entry struct {
	key  any
	item any
	idx  int
}

// dedupeEntries resolves spec §4.6 step 4's duplicate-key rule: the last
// occurrence of a key in items wins, and only it is kept — earlier
// occurrences are dropped from the reconciled order entirely and never
// get a block of their own (a block that already exists for the key is
// reused for the surviving last occurrence). Positions in the
// returned entries are renumbered sequentially over the deduplicated
// list.
func (kl *KeyedList) dedupeEntries(items []any) []entry {
	n := len(items)
	keys := make([]any, n)
	lastIdx := make(map[any]int, n)
	for i, item := range items {
		k := kl.keyFn(item, i)
		keys[i] = k
		lastIdx[k] = i
	}

	entries := make([]entry, 0, len(lastIdx))
	for i, item := range items {
		if lastIdx[keys[i]] != i {
			continue // a later occurrence of this key wins instead
		}
		entries = append(entries, entry{key: keys[i], item: item, idx: len(entries)})
	}

	if kl.devMode && len(entries) != n {
		println("reconciler: duplicate keys in keyed list; last occurrence wins")
	}
	return entries
}

func (kl *KeyedList) generalPass(items []any) int {
	entries := kl.dedupeEntries(items)

	nextBlocks := make(map[any]*block, len(entries))
	nextOrder := make([]*block, len(entries))
	var newlyCreated []*block

	for _, e := range entries {
		if b, ok := kl.blocks[e.key]; ok {
			b.updateItem(e.item)
			b.index.Set(e.idx)
			delete(kl.blocks, e.key)
			nextBlocks[e.key] = b
			nextOrder[e.idx] = b
			continue
		}
		nb := kl.createBlock(e.key, e.item, e.idx)
		nextBlocks[e.key] = nb
		nextOrder[e.idx] = nb
		newlyCreated = append(newlyCreated, nb)
	}

	if kl.isPureAppend(nextOrder) {
		for _, nb := range nextOrder[len(kl.order):] {
			for _, n := range nb.nodes {
				kl.host.InsertBefore(kl.parent, n, kl.end)
			}
		}
		kl.order = nextOrder
		kl.blocks = nextBlocks
		kl.flushMounts(newlyCreated)
		return 0
	}

	// Deletion pass: anything left in kl.blocks had no surviving entry.
	for _, b := range kl.blocks {
		kl.destroyBlock(b)
	}

	moves := kl.reorder(nextOrder)

	kl.blocks = nextBlocks
	kl.order = nextOrder
	kl.flushMounts(newlyCreated)
	return moves
}

// isPureAppend reports whether nextOrder is exactly the previous order
// with zero or more new blocks appended at the end (spec §4.6 step 5).
func (kl *KeyedList) isPureAppend(nextOrder []*block) bool {
	if len(nextOrder) <= len(kl.order) {
		return false
	}
	for i, b := range kl.order {
		if nextOrder[i] != b {
			return false
		}
	}
	return true
}

// reorder implements spec §4.6 step 7 via a longest-increasing-
// subsequence pass: blocks whose previous relative order is already
// increasing keep their DOM position; every other block (including every
// brand-new one, which has no previous position at all) is moved before
// the nearest still-settled anchor. Iterating back-to-front means every
// anchor is already in its final position by the time it's used.
func (kl *KeyedList) reorder(nextOrder []*block) int {
	prevPos := make(map[*block]int, len(kl.order))
	for i, b := range kl.order {
		prevPos[b] = i
	}

	pos := make([]int, len(nextOrder))
	for i, b := range nextOrder {
		if p, ok := prevPos[b]; ok {
			pos[i] = p
		} else {
			pos[i] = -1
		}
	}
	onLIS := longestIncreasingSubsequenceMask(pos)

	moves := 0
	anchor := kl.end
	for i := len(nextOrder) - 1; i >= 0; i-- {
		b := nextOrder[i]
		if onLIS[i] {
			if n := b.firstNode(); n != nil {
				anchor = n
			}
			continue
		}
		for _, n := range b.nodes {
			kl.host.InsertBefore(kl.parent, n, anchor)
		}
		recordBlockMoved(b.key)
		moves++
		if n := b.firstNode(); n != nil {
			anchor = n
		}
	}
	return moves
}

// createBlock allocates a fresh root and item/index signals for key, and
// renders its content with the active subscriber cleared (spec §4.6
// step 4: "run render(...) under that root with the active subscriber
// cleared, so inner effects are NOT captured as dependencies of the
// outer reconcile effect"). A render panic routes to the suspense or
// error chain; either way the block becomes a placeholder so the reorder
// pass's positional bookkeeping stays well-defined.
func (kl *KeyedList) createBlock(key, item any, idx int) *block {
	root := reactive.CreateRootContext(kl.owner)
	itemSig := reactive.NewVersionedSignal[any](item)
	idxSig := reactive.NewSignal(idx)

	var nodes []binding.Node
	placeholder := false

	func() {
		defer func() {
			if rec := recover(); rec != nil {
				if reactive.TrySuspense(kl.owner, rec) {
					placeholder = true
					return
				}
				reactive.HandleError(kl.owner, rec)
				placeholder = true
			}
		}()
		prev := reactive.PushRoot(root)
		defer reactive.PopRoot(prev)
		reactive.Untrack(func() {
			nodes = kl.render(itemSig, idxSig, key)
		})
	}()

	if placeholder {
		nodes = []binding.Node{kl.host.CreateMarker()}
	}

	return &block{key: key, root: root, item: itemSig, index: idxSig, nodes: nodes, placeholder: placeholder}
}

func (kl *KeyedList) destroyBlock(b *block) {
	reactive.DestroyRoot(b.root)
	for _, n := range b.nodes {
		kl.host.RemoveChild(kl.parent, n)
	}
}

func (kl *KeyedList) flushMounts(newlyCreated []*block) {
	for _, b := range newlyCreated {
		reactive.FlushOnMount(b.root)
	}
}
