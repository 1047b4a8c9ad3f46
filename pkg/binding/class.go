package binding

import (
	"sort"
	"strings"

	"github.com/vireo-rt/vireo/pkg/reactive"
)

// Class keeps el's class attribute in sync with value: a string
// overwrites the attribute outright; a map[string]bool enables its
// truthy keys, disables its falsy keys, and preserves whatever static
// class names were present on el when the binding initialized (spec
// §4.5's class binding).
func Class(host TreeHost, el Node, value Accessor[any]) func() {
	static, _ := host.GetAttribute(el, "class")
	staticClasses := strings.Fields(static)

	apply := func(v any) {
		switch x := v.(type) {
		case string:
			host.SetAttribute(el, "class", x)
		case map[string]bool:
			set := make(map[string]bool, len(staticClasses)+len(x))
			for _, c := range staticClasses {
				set[c] = true
			}
			for k, enabled := range x {
				if enabled {
					set[k] = true
				} else {
					delete(set, k)
				}
			}
			host.SetAttribute(el, "class", joinSortedClasses(set))
		}
	}

	if value.IsStatic() {
		apply(value.Get())
		return func() {}
	}

	return reactive.RenderEffect(func() reactive.Cleanup {
		apply(value.Get())
		return nil
	})
}

func joinSortedClasses(set map[string]bool) string {
	names := make([]string, 0, len(set))
	for c := range set {
		names = append(names, c)
	}
	sort.Strings(names)
	return strings.Join(names, " ")
}
