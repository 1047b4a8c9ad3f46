package reactive

import "testing"

type fakeRecorder struct {
	flushStarts int
	flushEnds   []int
	effectRuns  []uint64
	trips       []string
}

func (f *fakeRecorder) FlushStart()                        { f.flushStarts++ }
func (f *fakeRecorder) FlushEnd(cycles, effectRuns int)     { f.flushEnds = append(f.flushEnds, effectRuns) }
func (f *fakeRecorder) EffectRan(id uint64)                 { f.effectRuns = append(f.effectRuns, id) }
func (f *fakeRecorder) CycleGuardTripped(reason string)     { f.trips = append(f.trips, reason) }

func TestRecorderObservesFlush(t *testing.T) {
	rec := &fakeRecorder{}
	SetRecorder(rec)
	defer SetRecorder(nil)

	CreateRoot(func(dispose func()) {
		defer dispose()

		s := NewSignal(0)
		CreateEffect(func() Cleanup {
			s.Get()
			return nil
		})

		s.Set(1)

		if rec.flushStarts == 0 {
			t.Fatalf("expected at least one flush to be recorded")
		}
		if len(rec.effectRuns) == 0 {
			t.Fatalf("expected at least one effect run to be recorded")
		}
	})
}

func TestRecorderObservesCycleGuardTrip(t *testing.T) {
	rec := &fakeRecorder{}
	SetRecorder(rec)
	defer SetRecorder(nil)

	cfg := Config{DevMode: true, Mode: StrictWarn, MaxEffectRunsPerFlush: 1}
	g := NewCycleGuard(cfg)
	g.checkEffectRun()
	g.checkEffectRun() // exceeds budget, should trip

	if len(rec.trips) != 1 {
		t.Fatalf("expected exactly one recorded trip, got %d", len(rec.trips))
	}
}

func TestNilRecorderIsNoop(t *testing.T) {
	SetRecorder(nil)

	CreateRoot(func(dispose func()) {
		defer dispose()
		s := NewSignal(0)
		CreateEffect(func() Cleanup {
			s.Get()
			return nil
		})
		s.Set(1)
	})
}
