package binding

import "github.com/vireo-rt/vireo/pkg/reactive"

// Conditional is an optimization over Child for a boolean-gated branch:
// it tracks the last condition and skips teardown entirely when the
// condition hasn't flipped, rather than destroying and rebuilding an
// identical subtree on every dependency change (spec §4.5's conditional
// binding). It maintains its own start/end marker pair so the insertion
// range stays stable across reruns.
func Conditional(host TreeHost, parent Node, anchor Node, cond func() bool, whenTrue, whenFalse func() []Node) func() {
	start := host.CreateMarker()
	end := host.CreateMarker()
	host.InsertBefore(parent, start, anchor)
	host.InsertBefore(parent, end, anchor)

	var childRoot *reactive.Root
	var childNodes []Node
	haveLast := false
	var last bool

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
		current := cond()
		if haveLast && current == last {
			return nil
		}
		haveLast = true
		last = current

		owner := reactive.CurrentRoot()
		next := reactive.CreateRootContext(owner)

		render := whenFalse
		if current {
			render = whenTrue
		}

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
			if render != nil {
				nodes = render()
			}
			return true
		}()
		if !ok {
			return nil
		}

		teardown()
		for _, n := range nodes {
			host.InsertBefore(parent, n, end)
		}
		childRoot = next
		childNodes = nodes
		reactive.FlushOnMount(next)
		return nil
	})

	return func() {
		disposeEffect()
		teardown()
		host.RemoveChild(parent, start)
		host.RemoveChild(parent, end)
	}
}
