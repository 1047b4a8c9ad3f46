package reactive

import "testing"

func TestMemoLazyRecompute(t *testing.T) {
	calls := 0
	count := NewSignal(2)
	doubled := NewMemo(func() int {
		calls++
		return count.Get() * 2
	})

	if calls != 0 {
		t.Errorf("memo should not compute before first read, got %d calls", calls)
	}

	if v := doubled.Get(); v != 4 {
		t.Errorf("expected 4, got %d", v)
	}
	if calls != 1 {
		t.Errorf("expected 1 call after first read, got %d", calls)
	}

	// further reads without invalidation don't recompute
	_ = doubled.Get()
	if calls != 1 {
		t.Errorf("expected no recompute on cached read, got %d calls", calls)
	}
}

func TestMemoRecomputesOnceAfterMultipleDirties(t *testing.T) {
	calls := 0
	a := NewSignal(1)
	b := NewSignal(1)
	sum := NewMemo(func() int {
		calls++
		return a.Get() + b.Get()
	})
	_ = sum.Get()
	calls = 0

	Batch(func() {
		a.Set(2)
		b.Set(2)
	})

	if v := sum.Get(); v != 4 {
		t.Errorf("expected 4, got %d", v)
	}
	if calls != 1 {
		t.Errorf("expected exactly 1 recompute, got %d", calls)
	}
}

func TestMemoPreservesValueIdentityWhenEqual(t *testing.T) {
	source := NewSignal(5)
	memo := NewMemo(func() int { return source.Get() % 10 })

	first := memo.Get()
	source.Set(15) // 15 % 10 == 5, same as before
	second := memo.Get()

	if first != second {
		t.Errorf("expected equal values, got %d and %d", first, second)
	}
}

func TestMemoChain(t *testing.T) {
	base := NewSignal(1)
	doubled := NewMemo(func() int { return base.Get() * 2 })
	quadrupled := NewMemo(func() int { return doubled.Get() * 2 })

	if v := quadrupled.Get(); v != 4 {
		t.Errorf("expected 4, got %d", v)
	}

	base.Set(3)
	if v := quadrupled.Get(); v != 12 {
		t.Errorf("expected 12, got %d", v)
	}

	if quadrupled.Height() <= doubled.Height() {
		t.Errorf("expected quadrupled height %d to exceed doubled height %d", quadrupled.Height(), doubled.Height())
	}
}
