package control

// Thenable is the minimal "promise" shape spec §4.8 expects a Suspense
// handler to be able to subscribe to: something with a then(resolve,
// reject) method. reactive.Suspend accepts any value as its thrown
// token; Suspense only does anything useful with one that satisfies this
// interface.
type Thenable interface {
	Then(resolve func(any), reject func(error))
}

// SuspenseToken is the concrete Thenable spec §6's create_suspense_token
// names: a settleable value with external resolve/reject controls,
// useful for tests and for hosts that don't already have their own
// promise-equivalent.
type SuspenseToken struct {
	settled   bool
	value     any
	err       error
	onResolve []func(any)
	onReject  []func(error)
}

// NewSuspenseToken returns a fresh token along with the resolve and
// reject closures that settle it. Calling either after the token has
// already settled is a no-op — a thenable can only settle once.
func NewSuspenseToken() (*SuspenseToken, func(any), func(error)) {
	t := &SuspenseToken{}
	return t, t.resolve, t.reject
}

// Then registers resolve/reject callbacks, invoking immediately if the
// token has already settled.
func (t *SuspenseToken) Then(resolve func(any), reject func(error)) {
	if t.settled {
		if t.err != nil {
			if reject != nil {
				reject(t.err)
			}
			return
		}
		if resolve != nil {
			resolve(t.value)
		}
		return
	}
	if resolve != nil {
		t.onResolve = append(t.onResolve, resolve)
	}
	if reject != nil {
		t.onReject = append(t.onReject, reject)
	}
}

func (t *SuspenseToken) resolve(v any) {
	if t.settled {
		return
	}
	t.settled = true
	t.value = v
	for _, fn := range t.onResolve {
		fn(v)
	}
}

func (t *SuspenseToken) reject(err error) {
	if t.settled {
		return
	}
	t.settled = true
	t.err = err
	for _, fn := range t.onReject {
		fn(err)
	}
}
