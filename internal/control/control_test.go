package control

import (
	"math"
	"sync"
	"testing"
)

func TestLimitsClamp(t *testing.T) {
	l := DefaultLimits()

	tests := []struct {
		name string
		in   Settings
		want Settings
	}{
		{"in range", Settings{Current: 10, Length: 0.2, Mass: 0.5, TimeScale: 1}, Settings{Current: 10, Length: 0.2, Mass: 0.5, TimeScale: 1}},
		{"above", Settings{Current: 500, Length: 3, Mass: 9, TimeScale: 10}, Settings{Current: 100, Length: 0.4, Mass: 2, TimeScale: 4}},
		{"below", Settings{Current: -500, Length: 0, Mass: 0, TimeScale: -1, Link: -3}, Settings{Current: -100, Length: 0.1, Mass: 0.01, TimeScale: 0}},
		{"nan", Settings{Current: float32(math.NaN()), Length: 0.2, Mass: 0.5}, Settings{Current: -100, Length: 0.2, Mass: 0.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := l.Clamp(tt.in); got != tt.want {
				t.Errorf("Clamp(%+v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestPanelClampsInitial(t *testing.T) {
	p := NewPanel(Settings{Current: 1000, Length: 0.2, Mass: 0.5, TimeScale: 1}, DefaultLimits())
	if got := p.Snapshot().Current; got != 100 {
		t.Errorf("initial current = %v, want 100", got)
	}
}

func TestPanelUpdate(t *testing.T) {
	p := NewPanel(Settings{Length: 0.2, Mass: 0.5, TimeScale: 1}, DefaultLimits())

	got := p.Update(func(s *Settings) {
		s.Current = 5
		s.Length = 0.9
	})
	if got.Current != 5 || got.Length != 0.4 {
		t.Errorf("Update returned %+v", got)
	}
	if p.Snapshot() != got {
		t.Errorf("Snapshot %+v differs from Update result %+v", p.Snapshot(), got)
	}
}

func TestPanelConcurrentUpdates(t *testing.T) {
	p := NewPanel(Settings{Length: 0.2, Mass: 0.5, TimeScale: 1}, DefaultLimits())

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.Update(func(s *Settings) { s.Current++ })
		}()
	}
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := p.Snapshot()
			if s.Length != 0.2 {
				t.Errorf("reader saw length %v", s.Length)
			}
		}()
	}
	wg.Wait()

	if got := p.Snapshot().Current; got != 50 {
		t.Errorf("current = %v after 50 increments", got)
	}
}

func TestProfiles(t *testing.T) {
	if got := Constant(3).Current(10); got != 3 {
		t.Errorf("Constant = %v", got)
	}

	s := Step{Before: 1, After: -2, At: 0.5}
	if got := s.Current(0.49); got != 1 {
		t.Errorf("Step before = %v", got)
	}
	if got := s.Current(0.5); got != -2 {
		t.Errorf("Step at = %v", got)
	}

	f := ProfileFunc(func(t float64) float32 { return float32(t) })
	if got := f.Current(2); got != 2 {
		t.Errorf("ProfileFunc = %v", got)
	}
}
