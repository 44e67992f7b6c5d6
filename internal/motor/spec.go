// Package motor models permanently-excited DC gearmotors.
//
// Motor constants are immutable [Spec] records keyed by [Type]. A [Catalog]
// resolves types to specs; the built-in catalog holds the NEO 550 and
// configuration may register further variants without touching the model.
package motor

import (
	"fmt"
	"sort"

	"github.com/neoaces/arm/internal/dynamo"
)

// Type identifies a motor variant.
type Type string

const (
	NEO550 Type = "neo550"
)

// Spec holds the electrical and mechanical constants of one motor variant.
type Spec struct {
	Type           Type    `yaml:"type" json:"type"`
	Kt             float32 `yaml:"kt" json:"kt"` // N·m/A, T_stall / I_stall
	Kv             float32 `yaml:"kv" json:"kv"` // datasheet velocity constant
	R              float32 `yaml:"r" json:"r"`   // Ω, nominal voltage / I_stall
	NominalVoltage float32 `yaml:"voltage" json:"voltage"`
}

var neo550 = Spec{
	Type:           NEO550,
	Kt:             0.0097,
	Kv:             917,
	R:              12.0 / 100.0,
	NominalVoltage: 12,
}

// Validate rejects constants that would make the model divide by zero or
// propagate NaN.
func (s Spec) Validate() error {
	for name, v := range map[string]float32{"kt": s.Kt, "kv": s.Kv, "r": s.R, "voltage": s.NominalVoltage} {
		if !dynamo.IsFinite(v) || v <= 0 {
			return fmt.Errorf("%w: %s %s=%v", dynamo.ErrInvalidMotor, s.Type, name, v)
		}
	}
	if s.Type == "" {
		return fmt.Errorf("%w: empty type", dynamo.ErrInvalidMotor)
	}
	return nil
}

// StallCurrent is the current drawn at zero speed under nominal voltage.
func (s Spec) StallCurrent() float32 {
	return s.NominalVoltage / s.R
}

// FreeSpeed is the unloaded motor speed under nominal voltage.
func (s Spec) FreeSpeed() float32 {
	return s.NominalVoltage * s.Kv
}

// Catalog maps motor types to their constants.
type Catalog struct {
	specs map[Type]Spec
}

// DefaultCatalog returns a catalog holding the built-in motors.
func DefaultCatalog() *Catalog {
	return &Catalog{specs: map[Type]Spec{NEO550: neo550}}
}

// Add registers a variant, replacing any existing spec of the same type.
func (c *Catalog) Add(s Spec) error {
	if err := s.Validate(); err != nil {
		return err
	}
	c.specs[s.Type] = s
	return nil
}

// Lookup returns the spec registered for t.
func (c *Catalog) Lookup(t Type) (Spec, error) {
	s, ok := c.specs[t]
	if !ok {
		return Spec{}, fmt.Errorf("%w: %q", dynamo.ErrUnknownMotor, t)
	}
	return s, nil
}

// Types lists registered motor types in sorted order.
func (c *Catalog) Types() []Type {
	types := make([]Type, 0, len(c.specs))
	for t := range c.specs {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// Default returns the NEO 550 constants.
func Default() Spec { return neo550 }
