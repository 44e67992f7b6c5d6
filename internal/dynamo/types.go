package dynamo

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Float is the set of precisions the solvers are generic over.
type Float interface {
	constraints.Float
}

// Dynamics supplies the derivative of a scalar first-order ODE dv/dt = f(v, u).
type Dynamics[T Float] interface {
	Derive(v, u T) T
}

// DerivFunc adapts an ordinary function to Dynamics.
type DerivFunc[T Float] func(v, u T) T

func (f DerivFunc[T]) Derive(v, u T) T { return f(v, u) }

// Integrator advances v by one step of length dt with u held constant.
type Integrator[T Float] interface {
	Step(dyn Dynamics[T], v0, u, dt T) T
}

// AdaptiveIntegrator also reports the step size to use next.
type AdaptiveIntegrator[T Float] interface {
	Integrator[T]
	StepAdaptive(dyn Dynamics[T], v0, u, dt, tol T) (T, T)
}

// Vec2 is a point in the plane of the arm.
type Vec2 struct {
	X, Y float32
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

func (v Vec2) Scale(s float32) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Polar returns the offset of length r at angle theta.
func Polar(r, theta float32) Vec2 {
	s, c := math.Sincos(float64(theta))
	return Vec2{r * float32(c), r * float32(s)}
}

// IsFinite reports whether x is neither NaN nor Inf.
func IsFinite[T Float](x T) bool {
	f := float64(x)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
