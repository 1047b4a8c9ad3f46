package binding

import "github.com/vireo-rt/vireo/pkg/reactive"

// Portal renders render once under a fresh nested root and inserts the
// resulting nodes into target instead of the logical parent in the tree.
// Unlike Child it opens no render effect, so it does not re-render when a
// signal that render read changes. Its teardown is registered with
// reactive.OnCleanup in the calling scope, so the portaled content
// unmounts together with its logical parent even though it lives
// elsewhere in the tree (spec §4.5's portal binding).
func Portal(host TreeHost, target Node, render func() []Node) func() {
	owner := reactive.CurrentRoot()
	next := reactive.CreateRootContext(owner)

	prev := reactive.PushRoot(next)
	nodes := render()
	reactive.PopRoot(prev)

	for _, n := range nodes {
		host.InsertBefore(target, n, nil)
	}
	reactive.FlushOnMount(next)

	dispose := func() {
		reactive.DestroyRoot(next)
		for _, n := range nodes {
			host.RemoveChild(target, n)
		}
	}
	reactive.OnCleanup(dispose)
	return dispose
}
