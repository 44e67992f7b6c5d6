package arm

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/neoaces/arm/internal/dynamo"
	"github.com/neoaces/arm/internal/integrators"
	"github.com/neoaces/arm/internal/motor"
)

// TimestepMode selects how the integrator result maps to joint velocity.
type TimestepMode string

const (
	TimestepSingle TimestepMode = "single"
	TimestepLegacy TimestepMode = "legacy"
)

// ChainMode selects how link anchors are resolved for geometry queries.
type ChainMode string

const (
	ChainFixed   ChainMode = "fixed"
	ChainForward ChainMode = "forward"
)

func ParseTimestepMode(s string) (TimestepMode, error) {
	switch m := TimestepMode(s); m {
	case TimestepSingle, TimestepLegacy:
		return m, nil
	case "":
		return TimestepSingle, nil
	}
	return "", fmt.Errorf("unknown timestep mode: %s", s)
}

func ParseChainMode(s string) (ChainMode, error) {
	switch m := ChainMode(s); m {
	case ChainFixed, ChainForward:
		return m, nil
	case "":
		return ChainFixed, nil
	}
	return "", fmt.Errorf("unknown chain mode: %s", s)
}

// Arm is an ordered chain of couples, base first.
type Arm struct {
	couples  []*Couple
	integ    dynamo.Integrator[float32]
	timestep TimestepMode
	chain    ChainMode
	log      *zap.Logger
}

type Option func(*Arm)

// WithIntegrator replaces the default RK4. A nil integrator is ignored.
func WithIntegrator(i dynamo.Integrator[float32]) Option {
	return func(a *Arm) {
		if i != nil {
			a.integ = i
		}
	}
}

func WithTimestepMode(m TimestepMode) Option {
	return func(a *Arm) { a.timestep = m }
}

func WithChainMode(m ChainMode) Option {
	return func(a *Arm) { a.chain = m }
}

func WithLogger(l *zap.Logger) Option {
	return func(a *Arm) { a.log = l }
}

// New builds an arm with a single base couple anchored at base.
func New(base dynamo.Vec2, spec motor.Spec, ratio, mass, length float32, opts ...Option) (*Arm, error) {
	joint, err := NewJoint(base, spec, ratio)
	if err != nil {
		return nil, err
	}
	link, err := NewLink(mass, length)
	if err != nil {
		return nil, err
	}

	a := &Arm{
		couples:  []*Couple{NewCouple(joint, link)},
		integ:    integrators.NewRK4[float32](),
		timestep: TimestepSingle,
		chain:    ChainFixed,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.timestep, err = ParseTimestepMode(string(a.timestep)); err != nil {
		return nil, err
	}
	if a.chain, err = ParseChainMode(string(a.chain)); err != nil {
		return nil, err
	}
	return a, nil
}

// AddLink appends a couple anchored where the last couple is anchored now,
// driven by the same motor type.
func (a *Arm) AddLink(mass, length, ratio float32) error {
	last := a.couples[len(a.couples)-1].joint

	joint, err := NewJoint(last.anchor, last.motor, ratio)
	if err != nil {
		return err
	}
	link, err := NewLink(mass, length)
	if err != nil {
		return err
	}

	a.couples = append(a.couples, NewCouple(joint, link))
	a.log.Debug("link added",
		zap.Int("links", len(a.couples)),
		zap.Float32("mass", mass),
		zap.Float32("length", length),
		zap.Float32("ratio", ratio),
	)
	return nil
}

// Advance applies the same current to every couple for dt seconds.
func (a *Arm) Advance(current, dt float32) error {
	return a.AdvanceEach([]float32{current}, dt)
}

// AdvanceEach advances every couple, in index order, by dt seconds. currents
// holds one value per couple, or a single value broadcast to all. Either every
// couple is updated or, on error, none is.
func (a *Arm) AdvanceEach(currents []float32, dt float32) error {
	if !dynamo.IsFinite(dt) || dt < 0 {
		return fmt.Errorf("%w: %v", dynamo.ErrInvalidTimestep, dt)
	}
	if len(currents) != 1 && len(currents) != len(a.couples) {
		return fmt.Errorf("%w: got %d, arm has %d", dynamo.ErrControlMismatch, len(currents), len(a.couples))
	}
	for _, u := range currents {
		if !dynamo.IsFinite(u) {
			return fmt.Errorf("%w: current %v", dynamo.ErrNonFinite, u)
		}
	}

	type next struct{ v, angle, u float32 }
	updates := make([]next, len(a.couples))

	for i, c := range a.couples {
		u := currents[0]
		if len(currents) > 1 {
			u = currents[i]
		}

		v := a.integ.Step(c, c.joint.v, u, dt)
		if a.timestep == TimestepLegacy {
			v *= dt
		}
		angle := c.joint.angle + v*dt

		if !dynamo.IsFinite(v) || !dynamo.IsFinite(angle) {
			return fmt.Errorf("%w: link %d", dynamo.ErrUnstable, i)
		}
		updates[i] = next{v: v, angle: angle, u: u}
	}

	for i, c := range a.couples {
		c.joint.v = updates[i].v
		c.joint.angle = updates[i].angle
		c.u = updates[i].u

		if ce := a.log.Check(zap.DebugLevel, "link advanced"); ce != nil {
			ce.Write(
				zap.Int("link", i+1),
				zap.Float32("current", c.u),
				zap.Float32("velocity", c.joint.v),
				zap.Float32("angle", c.joint.angle),
			)
		}
	}
	return nil
}

// SetLinkLength changes the length of link index. The prior state is kept on
// any error.
func (a *Arm) SetLinkLength(index int, length float32) error {
	c, err := a.couple(index)
	if err != nil {
		return err
	}
	return c.link.SetLength(length)
}

// SetLinkMass changes the mass of link index. The prior state is kept on any
// error.
func (a *Arm) SetLinkMass(index int, mass float32) error {
	c, err := a.couple(index)
	if err != nil {
		return err
	}
	return c.link.SetMass(mass)
}

// Reset brings every joint to rest at angle zero.
func (a *Arm) Reset() {
	for _, c := range a.couples {
		c.joint.v = 0
		c.joint.angle = 0
		c.u = 0
	}
}

func (a *Arm) Len() int { return len(a.couples) }

func (a *Arm) TimestepMode() TimestepMode { return a.timestep }
func (a *Arm) ChainMode() ChainMode       { return a.chain }

// Couple returns a snapshot of couple index.
func (a *Arm) Couple(index int) (CoupleState, error) {
	c, err := a.couple(index)
	if err != nil {
		return CoupleState{}, err
	}
	s := c.State()
	s.Index = index
	return s, nil
}

// States returns a snapshot of every couple, base first.
func (a *Arm) States() []CoupleState {
	states := make([]CoupleState, len(a.couples))
	for i, c := range a.couples {
		states[i] = c.State()
		states[i].Index = i
	}
	return states
}

func (a *Arm) couple(index int) (*Couple, error) {
	if index < 0 || index >= len(a.couples) {
		return nil, fmt.Errorf("%w: index %d, arm has %d links", dynamo.ErrLinkNotFound, index, len(a.couples))
	}
	return a.couples[index], nil
}
