package control

import "math"

// Settings is one consistent set of operator inputs.
type Settings struct {
	Current   float32 `json:"current" yaml:"current"`
	Length    float32 `json:"length" yaml:"length"`
	Mass      float32 `json:"mass" yaml:"mass"`
	Link      int     `json:"link" yaml:"link"`
	TimeScale float32 `json:"time_scale" yaml:"time_scale"`
}

// Range is a closed interval.
type Range struct {
	Min float32 `json:"min" yaml:"min"`
	Max float32 `json:"max" yaml:"max"`
}

func (r Range) Clamp(v float32) float32 {
	if v != v {
		return r.Min
	}
	return float32(math.Max(float64(r.Min), math.Min(float64(r.Max), float64(v))))
}

func (r Range) Contains(v float32) bool {
	return v >= r.Min && v <= r.Max
}

// Limits bound every adjustable setting.
type Limits struct {
	Current   Range `json:"current" yaml:"current"`
	Length    Range `json:"length" yaml:"length"`
	Mass      Range `json:"mass" yaml:"mass"`
	TimeScale Range `json:"time_scale" yaml:"time_scale"`
}

func DefaultLimits() Limits {
	return Limits{
		Current:   Range{-100, 100},
		Length:    Range{0.1, 0.4},
		Mass:      Range{0.01, 2},
		TimeScale: Range{0, 4},
	}
}

// Clamp pulls every field into range. A negative link index becomes zero;
// the upper bound depends on the arm and is checked by the engine.
func (l Limits) Clamp(s Settings) Settings {
	s.Current = l.Current.Clamp(s.Current)
	s.Length = l.Length.Clamp(s.Length)
	s.Mass = l.Mass.Clamp(s.Mass)
	s.TimeScale = l.TimeScale.Clamp(s.TimeScale)
	if s.Link < 0 {
		s.Link = 0
	}
	return s
}
