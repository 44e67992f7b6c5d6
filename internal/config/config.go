package config

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/neoaces/arm/internal/arm"
	"github.com/neoaces/arm/internal/control"
	"github.com/neoaces/arm/internal/dynamo"
	"github.com/neoaces/arm/internal/integrators"
	"github.com/neoaces/arm/internal/motor"
)

const (
	DefaultDt       = 0.025
	DefaultDuration = 5.0
	DefaultCurrent  = 10.0
	DefaultRatio    = 32.0
	DefaultMass     = 0.5
	DefaultLength   = 0.2
	DefaultFPS      = 40
	// DefaultScale is the number of screen pixels per metre.
	DefaultScale = 100.0
)

type Config struct {
	Motor        motor.Type     `yaml:"motor"`
	Motors       []motor.Spec   `yaml:"motors,omitempty"`
	Base         Point          `yaml:"base"`
	Links        []LinkConfig   `yaml:"links"`
	Integrator   string         `yaml:"integrator"`
	TimestepMode string         `yaml:"timestep_mode"`
	ChainMode    string         `yaml:"chain_mode"`
	Dt           float32        `yaml:"dt"`
	Duration     float64        `yaml:"duration"`
	Current      float32        `yaml:"current"`
	Profile      ProfileConfig  `yaml:"profile"`
	FPS          int            `yaml:"fps"`
	Scale        float32        `yaml:"scale"`
	Limits       control.Limits `yaml:"limits"`
}

type Point struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
}

// LinkConfig describes one couple. The first entry is the base couple.
type LinkConfig struct {
	Mass   float32 `yaml:"mass"`
	Length float32 `yaml:"length"`
	Ratio  float32 `yaml:"ratio"`
}

type ProfileConfig struct {
	Kind        string  `yaml:"kind"`
	StepTime    float64 `yaml:"step_time,omitempty"`
	StepCurrent float32 `yaml:"step_current,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Motor:        motor.NEO550,
		Links:        []LinkConfig{{Mass: DefaultMass, Length: DefaultLength, Ratio: DefaultRatio}},
		Integrator:   "rk4",
		TimestepMode: string(arm.TimestepSingle),
		ChainMode:    string(arm.ChainFixed),
		Dt:           DefaultDt,
		Duration:     DefaultDuration,
		Current:      DefaultCurrent,
		Profile:      ProfileConfig{Kind: "constant"},
		FPS:          DefaultFPS,
		Scale:        DefaultScale,
		Limits:       control.DefaultLimits(),
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.Motors = append([]motor.Spec(nil), c.Motors...)
	out.Links = append([]LinkConfig(nil), c.Links...)
	return &out
}

// Catalog returns the built-in motors plus any custom ones in the config.
func (c *Config) Catalog() (*motor.Catalog, error) {
	cat := motor.DefaultCatalog()
	for _, s := range c.Motors {
		if err := cat.Add(s); err != nil {
			return nil, err
		}
	}
	return cat, nil
}

func (c *Config) Validate() error {
	if c.Dt <= 0 || !dynamo.IsFinite(c.Dt) {
		return fmt.Errorf("%w: dt %v", dynamo.ErrInvalidTimestep, c.Dt)
	}
	if !dynamo.IsFinite(c.Duration) || c.Duration <= 0 {
		return fmt.Errorf("duration must be positive and finite, got %v", c.Duration)
	}
	if len(c.Links) == 0 {
		return fmt.Errorf("at least one link is required")
	}
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.FPS)
	}
	if c.Scale <= 0 {
		return fmt.Errorf("scale must be positive, got %v", c.Scale)
	}

	cat, err := c.Catalog()
	if err != nil {
		return err
	}
	if _, err := cat.Lookup(c.Motor); err != nil {
		return err
	}
	if _, err := integrators.New(c.Integrator); err != nil {
		return err
	}
	if _, err := arm.ParseTimestepMode(c.TimestepMode); err != nil {
		return err
	}
	if _, err := arm.ParseChainMode(c.ChainMode); err != nil {
		return err
	}
	if _, err := c.BuildProfile(); err != nil {
		return err
	}
	for i, l := range c.Links {
		if _, err := arm.NewLink(l.Mass, l.Length); err != nil {
			return fmt.Errorf("link %d: %w", i, err)
		}
		if l.Ratio <= 0 {
			return fmt.Errorf("link %d: %w: %v", i, dynamo.ErrInvalidRatio, l.Ratio)
		}
	}
	return nil
}

// BuildArm constructs the arm described by the config.
func (c *Config) BuildArm(log *zap.Logger) (*arm.Arm, error) {
	if len(c.Links) == 0 {
		return nil, fmt.Errorf("at least one link is required")
	}
	cat, err := c.Catalog()
	if err != nil {
		return nil, err
	}
	spec, err := cat.Lookup(c.Motor)
	if err != nil {
		return nil, err
	}
	integ, err := integrators.New(c.Integrator)
	if err != nil {
		return nil, err
	}
	ts, err := arm.ParseTimestepMode(c.TimestepMode)
	if err != nil {
		return nil, err
	}
	chain, err := arm.ParseChainMode(c.ChainMode)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}

	base := c.Links[0]
	a, err := arm.New(dynamo.Vec2{X: c.Base.X, Y: c.Base.Y}, spec, base.Ratio, base.Mass, base.Length,
		arm.WithIntegrator(integ),
		arm.WithTimestepMode(ts),
		arm.WithChainMode(chain),
		arm.WithLogger(log),
	)
	if err != nil {
		return nil, err
	}
	for i, l := range c.Links[1:] {
		if err := a.AddLink(l.Mass, l.Length, l.Ratio); err != nil {
			return nil, fmt.Errorf("link %d: %w", i+1, err)
		}
	}
	return a, nil
}

// BuildProfile returns the open-loop current profile for headless runs.
func (c *Config) BuildProfile() (control.Profile, error) {
	switch c.Profile.Kind {
	case "", "constant":
		return control.Constant(c.Current), nil
	case "step":
		return control.Step{Before: c.Current, After: c.Profile.StepCurrent, At: c.Profile.StepTime}, nil
	default:
		return nil, fmt.Errorf("unknown profile: %s", c.Profile.Kind)
	}
}

// Settings returns the initial control panel settings.
func (c *Config) Settings() control.Settings {
	return control.Settings{
		Current:   c.Current,
		Length:    c.Links[0].Length,
		Mass:      c.Links[0].Mass,
		TimeScale: 1,
	}
}
