package reactive

import "testing"

func TestVersionedSignalWriteBumpsVersionOnChange(t *testing.T) {
	s := NewVersionedSignal(1)
	v0 := s.PeekVersion()

	s.Write(1) // equal value, no-op
	if s.PeekVersion() != v0 {
		t.Errorf("expected version unchanged on equal write, got %d", s.PeekVersion())
	}

	s.Write(2)
	if s.PeekVersion() != v0+1 {
		t.Errorf("expected version %d, got %d", v0+1, s.PeekVersion())
	}
}

func TestVersionedSignalForceNotifiesUnconditionally(t *testing.T) {
	type item struct{ Name string }
	s := NewVersionedSignal(item{"a"})
	listener := newTestListener()

	prev := setCurrentListener(listener)
	_ = s.Read()
	setCurrentListener(prev)

	v0 := s.PeekVersion()
	cur := s.PeekValue()
	cur.Name = "mutated in place"

	s.Force()
	if s.PeekVersion() != v0+1 {
		t.Errorf("expected version bump from Force, got %d -> %d", v0, s.PeekVersion())
	}
	if listener.dirtyCount != 1 {
		t.Errorf("expected subscriber notified by Force, got %d", listener.dirtyCount)
	}
}
