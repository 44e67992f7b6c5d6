package arm

import (
	"fmt"

	"github.com/neoaces/arm/internal/dynamo"
	"github.com/neoaces/arm/internal/motor"
)

// Joint holds the kinematic and electrical state of one actuated pivot.
// It owns no physics; velocity and angle change only through integration.
type Joint struct {
	motor  motor.Spec
	ratio  float32
	anchor dynamo.Vec2
	v      float32
	angle  float32
}

func NewJoint(anchor dynamo.Vec2, spec motor.Spec, ratio float32) (Joint, error) {
	if err := spec.Validate(); err != nil {
		return Joint{}, err
	}
	if !dynamo.IsFinite(ratio) || ratio <= 0 {
		return Joint{}, fmt.Errorf("%w: %v", dynamo.ErrInvalidRatio, ratio)
	}
	if !dynamo.IsFinite(anchor.X) || !dynamo.IsFinite(anchor.Y) {
		return Joint{}, fmt.Errorf("%w: anchor %v", dynamo.ErrNonFinite, anchor)
	}
	return Joint{motor: spec, ratio: ratio, anchor: anchor}, nil
}

func (j Joint) Motor() motor.Spec   { return j.motor }
func (j Joint) Ratio() float32      { return j.ratio }
func (j Joint) Anchor() dynamo.Vec2 { return j.anchor }
func (j Joint) Velocity() float32   { return j.v }
func (j Joint) Angle() float32      { return j.angle }
