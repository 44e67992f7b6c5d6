package integrators

import (
	"math"

	"github.com/neoaces/arm/internal/dynamo"
)

// Dormand-Prince coefficients (RK45)
const (
	b21 = 1.0 / 5.0
	b31 = 3.0 / 40.0
	b32 = 9.0 / 40.0
	b41 = 44.0 / 45.0
	b42 = -56.0 / 15.0
	b43 = 32.0 / 9.0
	b51 = 19372.0 / 6561.0
	b52 = -25360.0 / 2187.0
	b53 = 64448.0 / 6561.0
	b54 = -212.0 / 729.0
	b61 = 9017.0 / 3168.0
	b62 = -355.0 / 33.0
	b63 = 46732.0 / 5247.0
	b64 = 49.0 / 176.0
	b65 = -5103.0 / 18656.0

	c1 = 35.0 / 384.0
	c3 = 500.0 / 1113.0
	c4 = 125.0 / 192.0
	c5 = -2187.0 / 6784.0
	c6 = 11.0 / 84.0

	dc1 = c1 - 5179.0/57600.0
	dc3 = c3 - 7571.0/16695.0
	dc4 = c4 - 393.0/640.0
	dc5 = c5 - -92097.0/339200.0
	dc6 = c6 - 187.0/2100.0
	dc7 = -1.0 / 40.0
)

// RK45 is the embedded Dormand–Prince 5(4) pair. Step takes the full step
// it is given; StepAdaptive additionally suggests the next step size.
type RK45[T dynamo.Float] struct {
	safety   float64
	minScale float64
	maxScale float64
	tol      T
}

func NewRK45[T dynamo.Float]() *RK45[T] {
	return &RK45[T]{
		safety:   0.9,
		minScale: 0.2,
		maxScale: 10.0,
		tol:      1e-6,
	}
}

func (r *RK45[T]) Step(dyn dynamo.Dynamics[T], v0, u, dt T) T {
	v, _ := r.StepAdaptive(dyn, v0, u, dt, r.tol)
	return v
}

func (r *RK45[T]) StepAdaptive(dyn dynamo.Dynamics[T], v0, u, dt, tol T) (T, T) {
	k1 := dyn.Derive(v0, u)
	k2 := dyn.Derive(v0+dt*b21*k1, u)
	k3 := dyn.Derive(v0+dt*(b31*k1+b32*k2), u)
	k4 := dyn.Derive(v0+dt*(b41*k1+b42*k2+b43*k3), u)
	k5 := dyn.Derive(v0+dt*(b51*k1+b52*k2+b53*k3+b54*k4), u)
	k6 := dyn.Derive(v0+dt*(b61*k1+b62*k2+b63*k3+b64*k4+b65*k5), u)

	v1 := v0 + dt*(c1*k1+c3*k3+c4*k4+c5*k5+c6*k6)
	k7 := dyn.Derive(v1, u)

	errEst := float64(dt * (dc1*k1 + dc3*k3 + dc4*k4 + dc5*k5 + dc6*k6 + dc7*k7))
	scale := math.Abs(float64(v0)) + math.Abs(float64(dt*k1)) + 1e-10
	errRatio := math.Abs(errEst) / scale / float64(tol)

	var factor float64
	switch {
	case errRatio > 1:
		factor = math.Max(r.minScale, r.safety*math.Pow(errRatio, -0.25))
	case errRatio > 0:
		factor = math.Min(r.maxScale, r.safety*math.Pow(errRatio, -0.2))
	default:
		factor = r.maxScale
	}

	return v1, dt * T(factor)
}
