package metrics

import (
	"math"

	"github.com/neoaces/arm/internal/sim"
)

// SpeedLimit is the fraction of frames in which no joint exceeded Limit
// rad/s. A run with no frames counts as within the limit.
type SpeedLimit struct {
	Limit  float64
	over   int
	frames int
}

func NewSpeedLimit(limit float64) *SpeedLimit { return &SpeedLimit{Limit: limit} }

func (s *SpeedLimit) Name() string { return "within_speed_limit" }

func (s *SpeedLimit) Observe(snap sim.Snapshot) {
	s.frames++
	if MaxSpeed(snap) > s.Limit {
		s.over++
	}
}

func (s *SpeedLimit) Value() float64 {
	if s.frames == 0 {
		return 1
	}
	return float64(s.frames-s.over) / float64(s.frames)
}

func (s *SpeedLimit) Reset() { s.over, s.frames = 0, 0 }

// MaxSpeed is the largest |ω| among the joints in snap.
func MaxSpeed(snap sim.Snapshot) float64 {
	var m float64
	for _, c := range snap.Couples {
		m = math.Max(m, math.Abs(float64(c.Velocity)))
	}
	return m
}
