package binding

import "github.com/vireo-rt/vireo/pkg/reactive"

// Show toggles el's CSS display property rather than mounting and
// unmounting its subtree, for expensive trees that should stay resident
// (spec §4.5's show binding).
func Show(host TreeHost, el Node, cond Accessor[bool], displayWhenShown string) func() {
	if displayWhenShown == "" {
		displayWhenShown = "block"
	}

	apply := func(visible bool) {
		style := map[string]any{"display": "none"}
		if visible {
			style = map[string]any{"display": displayWhenShown}
		}
		host.SetAttribute(el, "style", renderStyle(map[string]string{
			"display": style["display"].(string),
		}))
	}

	if cond.IsStatic() {
		apply(cond.Get())
		return func() {}
	}

	return reactive.RenderEffect(func() reactive.Cleanup {
		apply(cond.Get())
		return nil
	})
}
