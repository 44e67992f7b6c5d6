package metrics

import (
	"math"

	"github.com/neoaces/arm/internal/sim"
)

// ControlEffort is the mean absolute commanded current per observation,
// summed over joints.
type ControlEffort struct {
	sum    float64
	frames int
}

func NewControlEffort() *ControlEffort { return &ControlEffort{} }

func (c *ControlEffort) Name() string { return "control_effort" }

func (c *ControlEffort) Observe(s sim.Snapshot) {
	for _, u := range s.Current {
		c.sum += math.Abs(float64(u))
	}
	c.frames++
}

func (c *ControlEffort) Value() float64 {
	if c.frames == 0 {
		return 0
	}
	return c.sum / float64(c.frames)
}

func (c *ControlEffort) Reset() { c.sum, c.frames = 0, 0 }
