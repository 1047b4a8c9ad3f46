package reconciler

import "testing"

func maskToSlice(m []bool) []int {
	out := make([]int, 0, len(m))
	for i, v := range m {
		if v {
			out = append(out, i)
		}
	}
	return out
}

func TestLISEmpty(t *testing.T) {
	mask := longestIncreasingSubsequenceMask(nil)
	if len(mask) != 0 {
		t.Fatalf("expected empty mask, got %v", mask)
	}
}

func TestLISAlreadyIncreasing(t *testing.T) {
	mask := longestIncreasingSubsequenceMask([]int{0, 1, 2, 3})
	for i, v := range mask {
		if !v {
			t.Fatalf("index %d expected on LIS for already-sorted input", i)
		}
	}
}

func TestLISReversed(t *testing.T) {
	mask := longestIncreasingSubsequenceMask([]int{3, 2, 1, 0})
	count := 0
	for _, v := range mask {
		if v {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one surviving index for a fully reversed order, got %d (%v)", count, mask)
	}
}

func TestLISAllNew(t *testing.T) {
	mask := longestIncreasingSubsequenceMask([]int{-1, -1, -1})
	for i, v := range mask {
		if v {
			t.Fatalf("index %d marked as LIS member but has no previous position", i)
		}
	}
}

func TestLISNewInMiddle(t *testing.T) {
	// old order [0,1,2], new order inserts a brand-new block at position 1:
	// pos = [0, -1, 1, 2] meaning old index 0 stays, new block at 1, then old 1,2.
	mask := longestIncreasingSubsequenceMask([]int{0, -1, 1, 2})
	want := []int{0, 2, 3}
	got := maskToSlice(mask)
	if len(got) != len(want) {
		t.Fatalf("mask = %v, want indices %v", mask, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("mask = %v, want indices %v", mask, want)
		}
	}
}

func TestLISSwap(t *testing.T) {
	// two items swapped: old [0,1] -> new [1,0]
	mask := longestIncreasingSubsequenceMask([]int{1, 0})
	count := 0
	for _, v := range mask {
		if v {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one surviving index for a two-element swap, got %d (%v)", count, mask)
	}
}
