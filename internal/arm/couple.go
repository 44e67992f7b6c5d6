package arm

import (
	"github.com/neoaces/arm/internal/dynamo"
	"github.com/neoaces/arm/internal/motor"
)

// Couple pairs one joint with the link it drives. It is the unit the
// integrator advances.
type Couple struct {
	joint Joint
	link  Link
	u     float32
}

// CoupleState is a read-only snapshot of one couple.
type CoupleState struct {
	Index    int         `json:"index"`
	Motor    motor.Type  `json:"motor"`
	Anchor   dynamo.Vec2 `json:"anchor"`
	Velocity float32     `json:"velocity"`
	Angle    float32     `json:"angle"`
	Current  float32     `json:"current"`
	Ratio    float32     `json:"ratio"`
	Moment   float32     `json:"moment"`
	Mass     float32     `json:"mass"`
	Length   float32     `json:"length"`
}

func NewCouple(j Joint, l Link) *Couple {
	return &Couple{joint: j, link: l}
}

// Derive returns the angular acceleration of the couple at velocity v under
// current u. The moment of inertia is read on every call so live length and
// mass edits apply to the next step.
func (c *Couple) Derive(v, u float32) float32 {
	return c.joint.motor.Acceleration(v, u, c.joint.ratio, c.link.Moment())
}

// Alpha returns Derive as a plain derivative function.
func (c *Couple) Alpha() dynamo.DerivFunc[float32] {
	return c.Derive
}

func (c *Couple) Joint() Joint { return c.joint }
func (c *Couple) Link() Link   { return c.link }

func (c *Couple) State() CoupleState {
	return CoupleState{
		Motor:    c.joint.motor.Type,
		Anchor:   c.joint.anchor,
		Velocity: c.joint.v,
		Angle:    c.joint.angle,
		Current:  c.u,
		Ratio:    c.joint.ratio,
		Moment:   c.link.Moment(),
		Mass:     c.link.mass,
		Length:   c.link.length,
	}
}
