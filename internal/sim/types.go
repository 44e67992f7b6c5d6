package sim

import (
	"github.com/neoaces/arm/internal/arm"
)

// Snapshot is an immutable view of the arm after one frame.
type Snapshot struct {
	Time     float64           `json:"time"`
	Current  []float32         `json:"current"`
	Couples  []arm.CoupleState `json:"couples"`
	Segments []arm.Segment     `json:"segments"`
}

// State flattens the snapshot to [angle0, v0, angle1, v1, ...].
func (s Snapshot) State() []float64 {
	x := make([]float64, 0, 2*len(s.Couples))
	for _, c := range s.Couples {
		x = append(x, float64(c.Angle), float64(c.Velocity))
	}
	return x
}

// Metric accumulates a scalar over the snapshots of a run.
type Metric interface {
	Name() string
	Observe(s Snapshot)
	Value() float64
	Reset()
}

type Config struct {
	Dt       float32
	Duration float64
	Scale    float32
}

type Result struct {
	States     [][]float64        `json:"states"`
	Controls   [][]float64        `json:"controls"`
	Times      []float64          `json:"times"`
	Metrics    map[string]float64 `json:"metrics"`
	StepsTaken int                `json:"steps_taken"`
	Final      Snapshot           `json:"final"`
}

// Append concatenates r2 onto r with times shifted to follow r.
func (r *Result) Append(r2 *Result) {
	offset := 0.0
	if n := len(r.Times); n > 0 {
		offset = r.Times[n-1]
	}

	start := 0
	if len(r.Times) > 0 {
		start = 1
	}
	for i := start; i < len(r2.Times); i++ {
		r.Times = append(r.Times, r2.Times[i]+offset)
		r.States = append(r.States, r2.States[i])
	}
	r.Controls = append(r.Controls, r2.Controls...)
	r.StepsTaken += r2.StepsTaken
	r.Final = r2.Final
	for k, v := range r2.Metrics {
		if r.Metrics == nil {
			r.Metrics = make(map[string]float64)
		}
		r.Metrics[k] = v
	}
}
