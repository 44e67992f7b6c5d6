package control

// Profile yields the commanded current at time t seconds into a run.
type Profile interface {
	Current(t float64) float32
}

// Constant holds one current for the whole run.
type Constant float32

func (c Constant) Current(float64) float32 { return float32(c) }

// Step switches from Before to After at time At.
type Step struct {
	Before float32 `yaml:"before"`
	After  float32 `yaml:"after"`
	At     float64 `yaml:"at"`
}

func (s Step) Current(t float64) float32 {
	if t < s.At {
		return s.Before
	}
	return s.After
}

// ProfileFunc adapts a plain function to Profile.
type ProfileFunc func(t float64) float32

func (f ProfileFunc) Current(t float64) float32 { return f(t) }
