package binding

import (
	"fmt"

	"github.com/vireo-rt/vireo/pkg/reactive"
)

// propertyKeys is the static property-vs-attribute classification table
// spec §6 calls for ("a static table, open to extension at startup").
// Keys here bind as element properties with nullish fallbacks rather
// than as string attributes.
var propertyKeys = map[string]bool{
	"value":    true,
	"checked":  true,
	"selected": true,
	"disabled": true,
	"readonly": true,
	"multiple": true,
	"muted":    true,
}

// valueLikeProperty fallback to "" on a nullish write; every other
// property key in the table (checked, selected, disabled, ...) falls
// back to false instead.
var valueLikeProperty = map[string]bool{
	"value": true,
}

// RegisterPropertyKey extends the property-vs-attribute table at
// startup, classifying name as property-bound with the given nullish
// fallback behavior.
func RegisterPropertyKey(name string, valueLike bool) {
	propertyKeys[name] = true
	if valueLike {
		valueLikeProperty[name] = true
	}
}

// Attribute keeps el's attribute (or, for a key in the property table,
// its host-object property) in sync with value, per spec §4.5's
// resolution policy: booleans bind as presence, nullish/false values are
// removed (or fall back to the property's nullish default), true values
// bind as an empty attribute, everything else stringifies.
func Attribute(host TreeHost, el Node, name string, value Accessor[any]) func() {
	apply := func(v any) {
		if propertyKeys[name] {
			applyProperty(host, el, name, v)
			return
		}
		applyAttribute(host, el, name, v)
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

func applyProperty(host TreeHost, el Node, name string, v any) {
	if v == nil {
		if valueLikeProperty[name] {
			host.SetProperty(el, name, "")
		} else {
			host.SetProperty(el, name, false)
		}
		return
	}
	host.SetProperty(el, name, v)
}

func applyAttribute(host TreeHost, el Node, name string, v any) {
	switch x := v.(type) {
	case nil:
		host.RemoveAttribute(el, name)
	case bool:
		if x {
			host.SetAttribute(el, name, "")
		} else {
			host.RemoveAttribute(el, name)
		}
	case string:
		host.SetAttribute(el, name, x)
	default:
		host.SetAttribute(el, name, fmt.Sprint(x))
	}
}
