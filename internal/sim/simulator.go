package sim

import (
	"context"
	"fmt"

	"github.com/neoaces/arm/internal/arm"
	"github.com/neoaces/arm/internal/control"
	"github.com/neoaces/arm/internal/dynamo"
)

// Run advances a at a fixed step for the configured duration, taking the
// current for each step from profile. The arm is left in its final state.
func Run(ctx context.Context, a *arm.Arm, profile control.Profile, cfg Config, metrics ...Metric) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration/float64(cfg.Dt) + 0.5)
	result := &Result{
		States:   make([][]float64, 0, steps+1),
		Controls: make([][]float64, 0, steps),
		Times:    make([]float64, 0, steps+1),
		Metrics:  make(map[string]float64),
	}

	for _, m := range metrics {
		m.Reset()
	}

	t := 0.0
	snap := capture(a, t, cfg.Scale)
	result.States = append(result.States, snap.State())
	result.Times = append(result.Times, t)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		u := profile.Current(t)
		if err := a.Advance(u, cfg.Dt); err != nil {
			return result, fmt.Errorf("step %d at t=%.4f: %w", i, t, err)
		}

		t += float64(cfg.Dt)
		result.StepsTaken++

		snap = capture(a, t, cfg.Scale)
		for _, m := range metrics {
			m.Observe(snap)
		}

		controls := make([]float64, a.Len())
		for j := range controls {
			controls[j] = float64(u)
		}
		result.States = append(result.States, snap.State())
		result.Controls = append(result.Controls, controls)
		result.Times = append(result.Times, t)
	}

	result.Final = snap
	for _, m := range metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}

func validateConfig(cfg Config) error {
	if !dynamo.IsFinite(cfg.Dt) || cfg.Dt <= 0 {
		return fmt.Errorf("%w: dt %f", dynamo.ErrInvalidTimestep, cfg.Dt)
	}
	if !dynamo.IsFinite(cfg.Duration) || cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive and finite, got %f", cfg.Duration)
	}
	return nil
}

func capture(a *arm.Arm, t float64, scale float32) Snapshot {
	if scale == 0 {
		scale = 1
	}
	states := a.States()
	current := make([]float32, len(states))
	for i, s := range states {
		current[i] = s.Current
	}
	return Snapshot{
		Time:     t,
		Current:  current,
		Couples:  states,
		Segments: a.Segments(scale),
	}
}
