package binding

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/vireo-rt/vireo/pkg/reactive"
)

// unitlessStyleProps lists properties whose numeric values are written
// bare rather than suffixed "px" (spec §4.5's style binding).
var unitlessStyleProps = map[string]bool{
	"opacity":     true,
	"z-index":     true,
	"line-height": true,
	"order":       true,
	"flex":        true,
	"flex-grow":   true,
	"flex-shrink": true,
	"font-weight": true,
	"animation-iteration-count": true,
}

// Style keeps el's style attribute in sync with value: a string
// overwrites it outright; a map[string]any is rendered key by key —
// numeric values become "Npx" unless the kebab-cased key is in the
// unitless set, camelCase keys kebab-case on write, and a key present in
// the previous run but absent from the next is dropped.
func Style(host TreeHost, el Node, value Accessor[any]) func() {
	apply := func(v any) {
		switch x := v.(type) {
		case string:
			host.SetAttribute(el, "style", x)
		case map[string]any:
			next := make(map[string]string, len(x))
			for k, raw := range x {
				prop := kebabCase(k)
				next[prop] = styleValue(prop, raw)
			}
			host.SetAttribute(el, "style", renderStyle(next))
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

func styleValue(prop string, raw any) string {
	switch x := raw.(type) {
	case string:
		return x
	case int:
		return numericStyleValue(prop, float64(x))
	case int64:
		return numericStyleValue(prop, float64(x))
	case float64:
		return numericStyleValue(prop, x)
	case float32:
		return numericStyleValue(prop, float64(x))
	default:
		return fmt.Sprint(x)
	}
}

func numericStyleValue(prop string, n float64) string {
	s := strconv.FormatFloat(n, 'g', -1, 64)
	if unitlessStyleProps[prop] {
		return s
	}
	return s + "px"
}

func renderStyle(m map[string]string) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(m[k])
	}
	return b.String()
}

func kebabCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r - 'A' + 'a')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
