package reconciler

import (
	"testing"

	"github.com/vireo-rt/vireo/pkg/reactive"
)

func TestRefEqualDetectsSamePointer(t *testing.T) {
	type item struct{ n int }
	v := &item{n: 1}
	if !refEqual(v, v) {
		t.Errorf("expected the same pointer to be ref-equal")
	}
	other := &item{n: 1}
	if refEqual(v, other) {
		t.Errorf("expected two distinct pointers to the same value to be unequal")
	}
}

func TestRefEqualDetectsSameUnderlyingSlice(t *testing.T) {
	s := []int{1, 2, 3}
	var a, b any = s, s
	if !refEqual(a, b) {
		t.Errorf("expected the same underlying slice to be ref-equal")
	}

	var c any = []int{1, 2, 3}
	if refEqual(a, c) {
		t.Errorf("expected two distinct slices with equal contents to be unequal")
	}
}

func TestRefEqualDetectsSameUnderlyingMap(t *testing.T) {
	m := map[string]int{"a": 1}
	var a, b any = m, m
	if !refEqual(a, b) {
		t.Errorf("expected the same underlying map to be ref-equal")
	}

	var c any = map[string]int{"a": 1}
	if refEqual(a, c) {
		t.Errorf("expected two distinct maps with equal contents to be unequal")
	}
}

func TestRefEqualMismatchedKindsAreUnequal(t *testing.T) {
	var a any = []int{1}
	var b any = map[string]int{}
	if refEqual(a, b) {
		t.Errorf("expected values of different kinds to be unequal")
	}
}

func TestBlockUpdateItemForcesOnSameUnderlyingSliceMutatedInPlace(t *testing.T) {
	s := []int{1, 2, 3}
	var item any = s
	b := &block{item: reactive.NewVersionedSignal[any](item)}

	versionBefore := b.item.PeekVersion()
	s[0] = 99 // mutate the same backing array in place
	b.updateItem(s)

	if b.item.PeekVersion() == versionBefore {
		t.Errorf("expected updateItem to force a version bump for a same-reference slice mutated in place")
	}
}
