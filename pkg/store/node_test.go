package store

import (
	"testing"

	"github.com/vireo-rt/vireo/pkg/reactive"
)

func TestGetTracksAndSetNotifies(t *testing.T) {
	reactive.CreateRoot(func(dispose func()) {
		defer dispose()

		s := New(map[string]any{"name": "A"})
		runs := 0
		var seen string
		reactive.CreateEffect(func() reactive.Cleanup {
			runs++
			seen = s.Get("name").(string)
			return nil
		})

		if runs != 1 || seen != "A" {
			t.Fatalf("expected initial run to observe A, got runs=%d seen=%q", runs, seen)
		}

		s.Set("name", "B")
		if runs != 2 || seen != "B" {
			t.Fatalf("expected write to re-run effect with B, got runs=%d seen=%q", runs, seen)
		}
	})
}

func TestSetSameValueDoesNotNotify(t *testing.T) {
	reactive.CreateRoot(func(dispose func()) {
		defer dispose()

		s := New(map[string]any{"count": 1})
		runs := 0
		reactive.CreateEffect(func() reactive.Cleanup {
			runs++
			_ = s.Get("count")
			return nil
		})

		s.Set("count", 1)
		if runs != 1 {
			t.Fatalf("expected no re-run for an equal write, got %d runs", runs)
		}
	})
}

func TestNestedObjectIdentityIsCached(t *testing.T) {
	s := New(map[string]any{"user": map[string]any{"name": "A"}})

	a := s.Peek("user")
	b := s.Peek("user")
	if a != b {
		t.Fatalf("expected repeated reads of the same nested object to return the identical proxy")
	}
}

func TestReplacingNestedObjectInvalidatesCachedProxy(t *testing.T) {
	s := New(map[string]any{"user": map[string]any{"name": "A"}})

	before := s.Peek("user")
	s.Set("user", map[string]any{"name": "B"})
	after := s.Peek("user")

	if before == after {
		t.Fatalf("expected a replaced nested object to produce a new proxy")
	}
	if after.(*Node).Peek("name") != "B" {
		t.Fatalf("expected new proxy to reflect the replacement's value")
	}
}

func TestArrayLenTracksPush(t *testing.T) {
	reactive.CreateRoot(func(dispose func()) {
		defer dispose()

		s := New([]any{"a", "b"})
		runs := 0
		var lastLen int
		reactive.CreateEffect(func() reactive.Cleanup {
			runs++
			lastLen = s.Len()
			return nil
		})

		if lastLen != 2 {
			t.Fatalf("expected initial len 2, got %d", lastLen)
		}

		s.Push("c")
		if runs != 2 || lastLen != 3 {
			t.Fatalf("expected push to notify len once, runs=%d lastLen=%d", runs, lastLen)
		}
	})
}

func TestTruncateNotifiesOrphanedIndexSignals(t *testing.T) {
	reactive.CreateRoot(func(dispose func()) {
		defer dispose()

		s := New([]any{"a", "b", "c"})
		runs := 0
		reactive.CreateEffect(func() reactive.Cleanup {
			runs++
			_ = s.Get(2)
			return nil
		})

		s.Truncate(1)
		if runs != 2 {
			t.Fatalf("expected truncation to notify a subscriber of the orphaned index, got %d runs", runs)
		}
	})
}

func TestKeysTracksInsertionAndDeletion(t *testing.T) {
	reactive.CreateRoot(func(dispose func()) {
		defer dispose()

		s := New(map[string]any{"a": 1})
		runs := 0
		var n int
		reactive.CreateEffect(func() reactive.Cleanup {
			runs++
			n = len(s.Keys())
			return nil
		})

		s.Set("b", 2)
		if runs != 2 || n != 2 {
			t.Fatalf("expected inserting a key to notify Keys, runs=%d n=%d", runs, n)
		}

		s.Delete("a")
		if runs != 3 || n != 1 {
			t.Fatalf("expected deleting a key to notify Keys, runs=%d n=%d", runs, n)
		}
	})
}

func TestSetStoreBatchesWrites(t *testing.T) {
	reactive.CreateRoot(func(dispose func()) {
		defer dispose()

		s := New(map[string]any{"a": 1, "b": 2})
		runs := 0
		var observed [2]int
		reactive.CreateEffect(func() reactive.Cleanup {
			runs++
			observed = [2]int{s.Get("a").(int), s.Get("b").(int)}
			return nil
		})

		SetStore(s, func(n *Node) any {
			n.Set("a", 10)
			n.Set("b", 20)
			return nil
		})

		if runs != 2 {
			t.Fatalf("expected exactly one re-run for the whole batch, got %d total runs", runs)
		}
		if observed != [2]int{10, 20} {
			t.Fatalf("expected both writes observed together, got %v", observed)
		}
	})
}

func TestSetStoreShallowReconcileDropsMissingKeys(t *testing.T) {
	s := New(map[string]any{"a": 1, "b": 2})

	SetStore(s, func(n *Node) any {
		return map[string]any{"a": 1, "c": 3}
	})

	keys := s.Keys()
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "c" {
		t.Fatalf("expected reconcile to drop \"b\" and add \"c\", got %v", keys)
	}
	if s.Peek("c") != 3 {
		t.Fatalf("expected reconciled key c to carry its new value")
	}
}
