package metrics

import "github.com/neoaces/arm/internal/sim"

// KineticEnergy averages the rotational kinetic energy ½·J·ω² of the whole
// arm over the run.
type KineticEnergy struct {
	name    string
	total   float64
	last    float64
	samples int
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (e *KineticEnergy) Name() string { return e.name }

func (e *KineticEnergy) Observe(s sim.Snapshot) {
	e.last = Energy(s)
	e.total += e.last
	e.samples++
}

func (e *KineticEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

// Last is the energy at the most recent observation.
func (e *KineticEnergy) Last() float64 { return e.last }

func (e *KineticEnergy) Reset() {
	e.total = 0
	e.last = 0
	e.samples = 0
}

// Energy returns the rotational kinetic energy of every link in s.
func Energy(s sim.Snapshot) float64 {
	var ke float64
	for _, c := range s.Couples {
		w := float64(c.Velocity)
		ke += 0.5 * float64(c.Moment) * w * w
	}
	return ke
}
