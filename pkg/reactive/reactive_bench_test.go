package reactive

import "testing"

func BenchmarkSignalSetNoSubscribers(b *testing.B) {
	s := NewSignal(0)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Set(i)
	}
}

func BenchmarkSignalGetTracked(b *testing.B) {
	s := NewSignal(0)
	listener := newTestListener()
	prev := setCurrentListener(listener)
	defer setCurrentListener(prev)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = s.Get()
	}
}

func BenchmarkMemoChainRecompute(b *testing.B) {
	base := NewSignal(0)
	m1 := NewMemo(func() int { return base.Get() + 1 })
	m2 := NewMemo(func() int { return m1.Get() + 1 })
	m3 := NewMemo(func() int { return m2.Get() + 1 })

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		base.Set(i)
		_ = m3.Get()
	}
}

func BenchmarkEffectFanOut(b *testing.B) {
	CreateRoot(func(dispose func()) {
		source := NewSignal(0)
		for i := 0; i < 100; i++ {
			CreateEffect(func() Cleanup {
				_ = source.Get()
				return nil
			})
		}

		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			source.Set(i)
		}
		b.StopTimer()
		dispose()
	})
}
