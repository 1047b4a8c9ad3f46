package reactive

// SignalOption is a functional option for configuring a signal at
// construction time.
//
// Grounded on pkg/vango/signal.go's SignalOption, trimmed of the
// SSR-persistence options (Transient/PersistKey — there is no session
// store in this spec) and narrowed to the one thing spec §3/§6 actually
// asks a signal to accept: a custom equality predicate.
type SignalOption func(*signalOptions)

type signalOptions struct {
	equal func(a, b any) bool
}

// EqualsFunc installs a custom equality predicate, generic over the
// signal's element type so the predicate is called with concrete,
// unboxed values rather than any:
//
//	p := NewSignal(Point{0, 0}, EqualsFunc(func(a, b Point) bool { return a == b }))
//
// A signal's Set/Update become no-ops whenever the predicate reports the
// previous and next value equal.
func EqualsFunc[T any](fn func(a, b T) bool) SignalOption {
	return func(o *signalOptions) {
		o.equal = func(a, b any) bool { return fn(a.(T), b.(T)) }
	}
}

func applyOptions(opts []SignalOption) signalOptions {
	var o signalOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
