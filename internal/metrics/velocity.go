package metrics

import (
	"math"

	"github.com/neoaces/arm/internal/sim"
)

// PeakVelocity is the largest |ω| reached by any joint.
type PeakVelocity struct {
	peak float64
}

func NewPeakVelocity() *PeakVelocity { return &PeakVelocity{} }

func (p *PeakVelocity) Name() string { return "peak_velocity" }

func (p *PeakVelocity) Observe(s sim.Snapshot) {
	p.peak = math.Max(p.peak, MaxSpeed(s))
}

func (p *PeakVelocity) Value() float64 { return p.peak }
func (p *PeakVelocity) Reset()         { p.peak = 0 }

// FinalVelocity is the base joint velocity at the last observation.
type FinalVelocity struct {
	v float64
}

func NewFinalVelocity() *FinalVelocity { return &FinalVelocity{} }

func (f *FinalVelocity) Name() string { return "final_velocity" }

func (f *FinalVelocity) Observe(s sim.Snapshot) {
	if len(s.Couples) > 0 {
		f.v = float64(s.Couples[0].Velocity)
	}
}

func (f *FinalVelocity) Value() float64 { return f.v }
func (f *FinalVelocity) Reset()         { f.v = 0 }

// Standard returns the metrics recorded with every saved run.
func Standard() []sim.Metric {
	return []sim.Metric{
		NewControlEffort(),
		NewPeakVelocity(),
		NewFinalVelocity(),
		NewKineticEnergy(),
	}
}
