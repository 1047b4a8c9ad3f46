package reactive

import "testing"

func TestBatchCoalescesRuns(t *testing.T) {
	a := NewSignal(0)
	b := NewSignal(0)
	runs := 0

	CreateRoot(func(dispose func()) {
		CreateEffect(func() Cleanup {
			runs++
			_ = a.Get()
			_ = b.Get()
			return nil
		})
	})
	runs = 0

	Batch(func() {
		a.Set(1)
		b.Set(2)
	})

	if runs != 1 {
		t.Errorf("expected 1 run after batched writes, got %d", runs)
	}
}

func TestNestedBatchFlushesOnlyOnOutermostReturn(t *testing.T) {
	a := NewSignal(0)
	runs := 0

	CreateRoot(func(dispose func()) {
		CreateEffect(func() Cleanup {
			runs++
			_ = a.Get()
			return nil
		})
	})
	runs = 0

	Batch(func() {
		Batch(func() {
			a.Set(1)
		})
		if runs != 0 {
			t.Errorf("inner batch return should not flush, got %d runs", runs)
		}
		a.Set(2)
	})

	if runs != 1 {
		t.Errorf("expected 1 run after outer batch returns, got %d", runs)
	}
}

func TestUntrackSuppressesTracking(t *testing.T) {
	tracked := NewSignal(0)
	untracked := NewSignal(0)
	runs := 0

	CreateRoot(func(dispose func()) {
		CreateEffect(func() Cleanup {
			runs++
			_ = tracked.Get()
			Untrack(func() {
				_ = untracked.Get()
			})
			return nil
		})
	})
	runs = 0

	untracked.Set(1)
	if runs != 0 {
		t.Errorf("expected no rerun from untracked dependency, got %d", runs)
	}

	tracked.Set(1)
	if runs != 1 {
		t.Errorf("expected 1 rerun from tracked dependency, got %d", runs)
	}
}

func TestStartTransitionDefersBehindNormalPriority(t *testing.T) {
	urgent := NewSignal(0)
	background := NewSignal(0)
	var order []string

	CreateRoot(func(dispose func()) {
		CreateEffect(func() Cleanup {
			_ = urgent.Get()
			order = append(order, "urgent")
			return nil
		})
		CreateEffect(func() Cleanup {
			_ = background.Get()
			order = append(order, "background")
			return nil
		})
	})
	order = nil

	Batch(func() {
		StartTransition(func() {
			background.Set(1)
		})
		urgent.Set(1)
	})

	if len(order) != 2 || order[0] != "urgent" || order[1] != "background" {
		t.Errorf("expected urgent before background, got %v", order)
	}
}
