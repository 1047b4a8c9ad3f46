package store

import "reflect"

// refIdentity reports whether a and b are the same underlying reference
// for map/slice/pointer-kinded values, falling back to == for everything
// else (and to "not equal" if either value isn't comparable and isn't
// one of the reference kinds handled above). Store writes notify on a
// reference-identity change, not a structural one — a freshly built
// object that happens to be deeply equal to the old one still counts as
// "different" — matching a JS Proxy's own === comparison rather than a
// deep-equality one.
func refIdentity(a, b any) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()

	av, bv := reflect.ValueOf(a), reflect.ValueOf(b)
	if !av.IsValid() || !bv.IsValid() {
		return a == nil && b == nil
	}
	if av.Kind() != bv.Kind() {
		return false
	}
	switch av.Kind() {
	case reflect.Map, reflect.Slice, reflect.Ptr, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return av.Pointer() == bv.Pointer()
	default:
		return a == b
	}
}
