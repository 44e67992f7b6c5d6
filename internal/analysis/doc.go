// Package analysis extracts step-response characteristics and phase
// portraits from recorded joint trajectories.
//
// A gearmotor driven by constant current is a first-order system in
// velocity, so [StepResponse] reports the time constant alongside the
// usual rise and settling times:
//
//	resp, err := analysis.StepResponse(times, velocities)
//	fmt.Printf("tau=%.3fs\n", resp.TimeConstant)
package analysis
