package automation

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/neoaces/arm/internal/config"
	"github.com/neoaces/arm/internal/control"
	"github.com/neoaces/arm/internal/metrics"
	"github.com/neoaces/arm/internal/sim"
)

// Scenario defines a scripted sequence of operator inputs on one arm.
type Scenario struct {
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	Segments    []Segment `yaml:"segments"`
}

// Segment holds a current for a duration. Length and mass, when set, are
// applied to Link before the segment starts.
type Segment struct {
	Duration float64  `yaml:"duration"`
	Current  float32  `yaml:"current"`
	Link     int      `yaml:"link"`
	Length   *float32 `yaml:"length,omitempty"`
	Mass     *float32 `yaml:"mass,omitempty"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(scenario.Segments) == 0 {
		return nil, fmt.Errorf("scenario %s has no segments", path)
	}
	return &scenario, nil
}

// RunScenario builds the arm described by cfg and plays every segment on it
// in order. The returned result spans the whole scenario.
func RunScenario(ctx context.Context, scenario *Scenario, cfg *config.Config, log *zap.Logger) (*sim.Result, error) {
	if log == nil {
		log = zap.NewNop()
	}
	a, err := cfg.BuildArm(log)
	if err != nil {
		return nil, err
	}

	total := &sim.Result{Metrics: make(map[string]float64)}
	ms := metrics.Standard()

	for i, seg := range scenario.Segments {
		log.Info("scenario segment",
			zap.String("scenario", scenario.Name),
			zap.Int("segment", i+1),
			zap.Int("of", len(scenario.Segments)),
			zap.Float32("current", seg.Current),
		)

		if seg.Length != nil {
			if err := a.SetLinkLength(seg.Link, *seg.Length); err != nil {
				return total, fmt.Errorf("segment %d: %w", i+1, err)
			}
		}
		if seg.Mass != nil {
			if err := a.SetLinkMass(seg.Link, *seg.Mass); err != nil {
				return total, fmt.Errorf("segment %d: %w", i+1, err)
			}
		}

		res, err := sim.Run(ctx, a, control.Constant(seg.Current), sim.Config{Dt: cfg.Dt, Duration: seg.Duration, Scale: cfg.Scale}, ms...)
		if err != nil {
			return total, fmt.Errorf("segment %d: %w", i+1, err)
		}
		total.Append(res)
	}
	return total, nil
}

// Sweep runs one independent arm per current and reports where each ends up.
type Sweep struct {
	Currents []float32
	Duration float64
	Workers  int
}

type SweepResult struct {
	Current       float32 `json:"current"`
	FinalVelocity float64 `json:"final_velocity"`
	FinalAngle    float64 `json:"final_angle"`
	PeakVelocity  float64 `json:"peak_velocity"`
}

// Linspace returns n evenly spaced currents from lo to hi inclusive.
func Linspace(lo, hi float32, n int) []float32 {
	if n <= 1 {
		return []float32{lo}
	}
	out := make([]float32, n)
	step := (hi - lo) / float32(n-1)
	for i := range out {
		out[i] = lo + float32(i)*step
	}
	return out
}

// RunSweep executes the sweep in parallel. Results are in the order of
// sweep.Currents.
func RunSweep(ctx context.Context, sweep *Sweep, cfg *config.Config) ([]SweepResult, error) {
	if len(sweep.Currents) == 0 {
		return nil, fmt.Errorf("sweep has no currents")
	}
	duration := sweep.Duration
	if duration <= 0 {
		duration = cfg.Duration
	}

	results := make([]SweepResult, len(sweep.Currents))
	g, ctx := errgroup.WithContext(ctx)
	if sweep.Workers > 0 {
		g.SetLimit(sweep.Workers)
	}

	for i, u := range sweep.Currents {
		g.Go(func() error {
			a, err := cfg.BuildArm(nil)
			if err != nil {
				return err
			}
			peak := metrics.NewPeakVelocity()
			res, err := sim.Run(ctx, a, control.Constant(u), sim.Config{Dt: cfg.Dt, Duration: duration}, peak)
			if err != nil {
				return fmt.Errorf("current %v: %w", u, err)
			}

			final := res.Final.Couples[0]
			results[i] = SweepResult{
				Current:       u,
				FinalVelocity: float64(final.Velocity),
				FinalAngle:    float64(final.Angle),
				PeakVelocity:  peak.Value(),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// MonteCarloConfig perturbs the base link's mass and length by up to the
// given fraction and runs each trial under the config's current.
type MonteCarloConfig struct {
	Perturbation float64
	NumTrials    int
	Duration     float64
	Seed         int64
}

type MonteCarloResult struct {
	TrialID       int     `json:"trial"`
	Mass          float32 `json:"mass"`
	Length        float32 `json:"length"`
	FinalVelocity float64 `json:"final_velocity"`
	FinalAngle    float64 `json:"final_angle"`
}

// RunMonteCarlo executes the trials in parallel. The perturbations are drawn
// up front so a fixed seed gives the same trials regardless of scheduling.
func RunMonteCarlo(ctx context.Context, mc *MonteCarloConfig, cfg *config.Config) ([]MonteCarloResult, error) {
	if mc.NumTrials < 1 {
		return nil, fmt.Errorf("monte carlo needs at least one trial, got %d", mc.NumTrials)
	}
	if !(mc.Perturbation >= 0 && mc.Perturbation < 1) {
		return nil, fmt.Errorf("perturbation must be in [0, 1), got %v", mc.Perturbation)
	}
	if len(cfg.Links) == 0 {
		return nil, fmt.Errorf("at least one link is required")
	}

	seed := mc.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	trials := make([]*config.Config, mc.NumTrials)
	for i := range trials {
		c := cfg.Clone()
		c.Links[0].Mass *= float32(1 + (rng.Float64()-0.5)*2*mc.Perturbation)
		c.Links[0].Length *= float32(1 + (rng.Float64()-0.5)*2*mc.Perturbation)
		if mc.Duration > 0 {
			c.Duration = mc.Duration
		}
		trials[i] = c
	}

	results := make([]MonteCarloResult, mc.NumTrials)
	g, ctx := errgroup.WithContext(ctx)
	for i, c := range trials {
		g.Go(func() error {
			a, err := c.BuildArm(nil)
			if err != nil {
				return fmt.Errorf("trial %d: %w", i, err)
			}
			profile, err := c.BuildProfile()
			if err != nil {
				return err
			}
			res, err := sim.Run(ctx, a, profile, sim.Config{Dt: c.Dt, Duration: c.Duration})
			if err != nil {
				return fmt.Errorf("trial %d: %w", i, err)
			}

			final := res.Final.Couples[0]
			results[i] = MonteCarloResult{
				TrialID:       i,
				Mass:          c.Links[0].Mass,
				Length:        c.Links[0].Length,
				FinalVelocity: float64(final.Velocity),
				FinalAngle:    float64(final.Angle),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// MonteCarloStats returns the mean and spread of final base velocity.
func MonteCarloStats(results []MonteCarloResult) (mean, lo, hi float64) {
	if len(results) == 0 {
		return 0, 0, 0
	}
	lo, hi = results[0].FinalVelocity, results[0].FinalVelocity
	for _, r := range results {
		mean += r.FinalVelocity
		lo = min(lo, r.FinalVelocity)
		hi = max(hi, r.FinalVelocity)
	}
	return mean / float64(len(results)), lo, hi
}
