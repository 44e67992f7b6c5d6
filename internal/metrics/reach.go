package metrics

import (
	"math"

	"github.com/neoaces/arm/internal/sim"
)

// TimeToAngle is the first time the base joint's |θ| reaches Target.
// Runs that never get there report +Inf so a minimiser ranks them last.
type TimeToAngle struct {
	Target float64
	t      float64
}

func NewTimeToAngle(target float64) *TimeToAngle {
	return &TimeToAngle{Target: math.Abs(target), t: math.Inf(1)}
}

func (m *TimeToAngle) Name() string { return "time_to_angle" }

func (m *TimeToAngle) Observe(s sim.Snapshot) {
	if !math.IsInf(m.t, 1) || len(s.Couples) == 0 {
		return
	}
	if math.Abs(float64(s.Couples[0].Angle)) >= m.Target {
		m.t = s.Time
	}
}

func (m *TimeToAngle) Value() float64 { return m.t }
func (m *TimeToAngle) Reset()         { m.t = math.Inf(1) }
