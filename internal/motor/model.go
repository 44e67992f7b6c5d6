package motor

// Acceleration returns the angular acceleration of a load of the given moment
// of inertia driven through a gearbox of the given ratio.
//
// Back-EMF proportional to ratio·v produces the damping term and the applied
// current u produces the driving torque; dividing by the moment gives α.
// No current limiting is applied here.
func (s Spec) Acceleration(v, u, ratio, moment float32) float32 {
	damping := (ratio * ratio * s.Kt * v) / (s.Kv * s.R * moment)
	drive := (u * ratio * s.Kt) / moment
	return -damping + drive
}

// Acceleration is the free-function form of Spec.Acceleration.
func Acceleration(s Spec, v, u, ratio, moment float32) float32 {
	return s.Acceleration(v, u, ratio, moment)
}

// SteadyVelocity is the velocity at which the drive and damping terms cancel
// for a constant current u.
func (s Spec) SteadyVelocity(u, ratio float32) float32 {
	return u * s.Kv * s.R / ratio
}
