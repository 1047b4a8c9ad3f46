package binding

import (
	"fmt"

	"github.com/vireo-rt/vireo/pkg/reactive"
)

// Text creates a text node before anchor under parent and keeps its data
// in sync with value: null/undefined/false normalize to the empty
// string, everything else stringifies (spec §4.5's text binding). A
// static accessor skips the effect and just sets the data once.
func Text(host TreeHost, parent Node, anchor Node, value Accessor[any]) func() {
	node := host.CreateText("")
	host.InsertBefore(parent, node, anchor)

	if value.IsStatic() {
		host.SetText(node, normalizeText(value.Get()))
		return func() { host.RemoveChild(parent, node) }
	}

	disposeEffect := reactive.RenderEffect(func() reactive.Cleanup {
		host.SetText(node, normalizeText(value.Get()))
		return nil
	})

	dispose := func() {
		disposeEffect()
		host.RemoveChild(parent, node)
	}
	reactive.OnCleanup(func() { host.RemoveChild(parent, node) })
	return dispose
}

func normalizeText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case bool:
		if !x {
			return ""
		}
		return "true"
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}
