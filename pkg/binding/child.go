package binding

import "github.com/vireo-rt/vireo/pkg/reactive"

// Child is the general reactive child binding (spec §4.5): on each run
// it tears down the previous subtree (destroys its root, removes its
// nodes), evaluates render to get the new subtree's nodes, inserts them
// before marker, and gives them a fresh nested root. A render that calls
// reactive.Suspend routes to the nearest Suspense boundary's handler
// chain instead of replacing the subtree; a render that panics with an
// ordinary value routes to the error-handler chain, leaving the previous
// subtree in place.
func Child(host TreeHost, parent Node, marker Node, render func() []Node) func() {
	var childRoot *reactive.Root
	var childNodes []Node

	teardown := func() {
		if childRoot != nil {
			reactive.DestroyRoot(childRoot)
			childRoot = nil
		}
		for _, n := range childNodes {
			host.RemoveChild(parent, n)
		}
		childNodes = nil
	}

	disposeEffect := reactive.RenderEffect(func() reactive.Cleanup {
		owner := reactive.CurrentRoot()
		next := reactive.CreateRootContext(owner)

		var nodes []Node
		ok := func() (ok bool) {
			defer func() {
				if rec := recover(); rec != nil {
					reactive.DestroyRoot(next)
					if reactive.TrySuspense(owner, rec) {
						ok = false
						return
					}
					reactive.HandleError(owner, rec)
					ok = false
				}
			}()
			prev := reactive.PushRoot(next)
			defer reactive.PopRoot(prev)
			nodes = render()
			return true
		}()
		if !ok {
			return nil
		}

		teardown()
		for _, n := range nodes {
			host.InsertBefore(parent, n, marker)
		}
		childRoot = next
		childNodes = nodes
		reactive.FlushOnMount(next)
		return nil
	})

	return func() {
		disposeEffect()
		teardown()
	}
}
