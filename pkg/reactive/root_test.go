package reactive

import "testing"

func TestCreateRootDisposesEffectsAndCleanups(t *testing.T) {
	count := NewSignal(0)
	runs := 0
	cleaned := false

	var disposeRoot func()
	CreateRoot(func(dispose func()) {
		disposeRoot = dispose
		CreateEffect(func() Cleanup {
			runs++
			_ = count.Get()
			return nil
		})
		OnCleanup(func() { cleaned = true })
	})

	disposeRoot()

	if !cleaned {
		t.Errorf("expected root cleanup to run on disposal")
	}

	count.Set(1)
	if runs != 1 {
		t.Errorf("expected no further runs after disposal, got %d", runs)
	}
}

func TestChildRootsDestroyedBeforeParentCleanups(t *testing.T) {
	var order []string

	CreateRoot(func(dispose func()) {
		root := getCurrentRoot()
		root.OnCleanup(func() { order = append(order, "parent-cleanup") })

		child := CreateRootContext(root)
		prev := PushRoot(child)
		child.OnCleanup(func() { order = append(order, "child-cleanup") })
		PopRoot(prev)

		dispose()
	})

	want := []string{"child-cleanup", "parent-cleanup"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("at %d: expected %q, got %q (%v)", i, want[i], order[i], order)
		}
	}
}

func TestOnDestroyRunsAfterCleanups(t *testing.T) {
	var order []string

	CreateRoot(func(dispose func()) {
		root := getCurrentRoot()
		root.OnCleanup(func() { order = append(order, "cleanup") })
		root.OnDestroy(func() { order = append(order, "destroy") })
		dispose()
	})

	if len(order) != 2 || order[0] != "cleanup" || order[1] != "destroy" {
		t.Errorf("expected [cleanup destroy], got %v", order)
	}
}

func TestFlushOnMountRunsQueuedCallbacksOnce(t *testing.T) {
	calls := 0

	CreateRoot(func(dispose func()) {
		root := getCurrentRoot()
		OnMount(func() { calls++ })
		FlushOnMount(root)
		FlushOnMount(root)
	})

	if calls != 1 {
		t.Errorf("expected mount callback to run exactly once, got %d", calls)
	}
}

func TestDestroyRootRunsAllCleanupsDespitePanickingOne(t *testing.T) {
	ran := []string{}

	func() {
		defer func() { recover() }()

		CreateRoot(func(dispose func()) {
			root := getCurrentRoot()
			root.OnCleanup(func() { ran = append(ran, "first") })
			root.OnCleanup(func() { panic("boom") })
			root.OnCleanup(func() { ran = append(ran, "third") })
			root.OnDestroy(func() { ran = append(ran, "destroy") })
			dispose()
		})
	}()

	want := []string{"third", "first", "destroy"}
	if len(ran) != len(want) {
		t.Fatalf("expected every cleanup and destroy callback to still run, got %v", ran)
	}
	for i := range want {
		if ran[i] != want[i] {
			t.Errorf("at %d: expected %q, got %q (%v)", i, want[i], ran[i], ran)
		}
	}
}

func TestDestroyRootReRaisesFirstUnhandledCleanupPanic(t *testing.T) {
	var caught any

	func() {
		defer func() { caught = recover() }()

		CreateRoot(func(dispose func()) {
			root := getCurrentRoot()
			root.OnCleanup(func() { panic("second boom") })
			root.OnCleanup(func() { panic("first boom") })
			dispose()
		})
	}()

	if caught == nil {
		t.Fatalf("expected the first unhandled cleanup panic to be re-raised")
	}
	if ce, ok := caught.(*CleanupError); !ok || ce.Cause != "first boom" {
		t.Errorf("expected the panic of the first cleanup to run (the last registered) to win, got %#v", caught)
	}
}

func TestErrorHandlerWalksUpToParent(t *testing.T) {
	var caught error

	CreateRoot(func(dispose func()) {
		parent := getCurrentRoot()
		parent.RegisterErrorHandler(func(err error) bool {
			caught = err
			return true
		})

		child := CreateRootContext(parent)
		prev := PushRoot(child)
		CreateEffect(func() Cleanup {
			panic("child boom")
		})
		PopRoot(prev)
	})

	if caught == nil {
		t.Errorf("expected parent's error handler to catch the child effect's panic")
	}
}
