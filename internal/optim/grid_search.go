// Package optim searches link and drive parameters for the configuration
// that minimises a run metric.
package optim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/neoaces/arm/internal/config"
	"github.com/neoaces/arm/internal/sim"
)

// Searchable parameters. Link parameters apply to the base link.
const (
	ParamRatio   = "ratio"
	ParamMass    = "mass"
	ParamLength  = "length"
	ParamCurrent = "current"
)

var ErrNoCandidates = errors.New("grid search produced no successful runs")

type Param struct {
	Name   string
	Values []float64
}

// Candidate is one evaluated grid point.
type Candidate struct {
	Params map[string]float64 `json:"params"`
	Value  float64            `json:"value"`
	Err    error              `json:"-"`
}

type GridSearch struct {
	params []Param
	log    *zap.Logger
}

func NewGridSearch(log *zap.Logger, params ...Param) *GridSearch {
	if log == nil {
		log = zap.NewNop()
	}
	return &GridSearch{params: params, log: log}
}

// Size is the number of grid points.
func (g *GridSearch) Size() int {
	n := 1
	for _, p := range g.params {
		n *= len(p.Values)
	}
	return n
}

// Search runs base with every combination of parameter values, scoring each
// run with a fresh metric from newMetric. It returns the best candidate and
// every evaluation sorted best first. Candidates whose configuration is
// invalid or whose run fails are kept with Err set and Value +Inf.
func (g *GridSearch) Search(ctx context.Context, base *config.Config, newMetric func() sim.Metric) (Candidate, []Candidate, error) {
	var all []Candidate
	if err := g.searchRecursive(ctx, 0, map[string]float64{}, base, newMetric, &all); err != nil {
		return Candidate{}, nil, err
	}

	sort.SliceStable(all, func(i, j int) bool { return all[i].Value < all[j].Value })
	if len(all) == 0 || math.IsInf(all[0].Value, 1) && all[0].Err != nil {
		return Candidate{}, all, ErrNoCandidates
	}
	return all[0], all, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	base *config.Config,
	newMetric func() sim.Metric,
	out *[]Candidate,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.params) {
		c := Candidate{Params: current, Value: math.Inf(1)}
		c.Value, c.Err = evaluate(ctx, base, current, newMetric())
		if c.Err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			g.log.Debug("candidate failed", zap.Any("params", current), zap.Error(c.Err))
			c.Value = math.Inf(1)
		}
		*out = append(*out, c)
		return nil
	}

	p := g.params[depth]
	for _, val := range p.Values {
		next := make(map[string]float64, len(current)+1)
		for k, v := range current {
			next[k] = v
		}
		next[p.Name] = val

		if err := g.searchRecursive(ctx, depth+1, next, base, newMetric, out); err != nil {
			return err
		}
	}
	return nil
}

func evaluate(ctx context.Context, base *config.Config, params map[string]float64, m sim.Metric) (float64, error) {
	cfg, err := Apply(base, params)
	if err != nil {
		return 0, err
	}
	a, err := cfg.BuildArm(nil)
	if err != nil {
		return 0, err
	}
	profile, err := cfg.BuildProfile()
	if err != nil {
		return 0, err
	}
	if _, err := sim.Run(ctx, a, profile, sim.Config{Dt: cfg.Dt, Duration: cfg.Duration}, m); err != nil {
		return 0, err
	}
	return m.Value(), nil
}

// Apply returns a copy of base with params substituted and validated.
func Apply(base *config.Config, params map[string]float64) (*config.Config, error) {
	cfg := base.Clone()
	if len(cfg.Links) == 0 {
		return nil, fmt.Errorf("config has no links")
	}
	for name, v := range params {
		switch name {
		case ParamRatio:
			cfg.Links[0].Ratio = float32(v)
		case ParamMass:
			cfg.Links[0].Mass = float32(v)
		case ParamLength:
			cfg.Links[0].Length = float32(v)
		case ParamCurrent:
			cfg.Current = float32(v)
		default:
			return nil, fmt.Errorf("unknown parameter %q", name)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
