package metrics

import (
	"math"
	"testing"

	"github.com/neoaces/arm/internal/arm"
	"github.com/neoaces/arm/internal/sim"
)

func TestTimeToAngle(t *testing.T) {
	m := NewTimeToAngle(-1)
	if m.Target != 1 {
		t.Errorf("target = %v, want 1", m.Target)
	}

	observe := func(time float64, angle float32) {
		m.Observe(sim.Snapshot{Time: time, Couples: []arm.CoupleState{{Angle: angle}}})
	}
	observe(0, 0)
	observe(0.1, 0.5)
	if !math.IsInf(m.Value(), 1) {
		t.Errorf("value before reaching target = %v, want +Inf", m.Value())
	}
	observe(0.2, -1.2)
	observe(0.3, 2)
	if m.Value() != 0.2 {
		t.Errorf("value = %v, want 0.2", m.Value())
	}

	m.Reset()
	if !math.IsInf(m.Value(), 1) {
		t.Error("expected +Inf after reset")
	}
}
