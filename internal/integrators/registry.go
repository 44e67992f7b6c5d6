package integrators

import (
	"fmt"
	"sort"

	"github.com/neoaces/arm/internal/dynamo"
)

var builders = map[string]func() dynamo.Integrator[float32]{
	"rk4":   func() dynamo.Integrator[float32] { return NewRK4[float32]() },
	"euler": func() dynamo.Integrator[float32] { return NewEuler[float32]() },
	"rk45":  func() dynamo.Integrator[float32] { return NewRK45[float32]() },
}

// New returns the single-precision integrator registered under name.
func New(name string) (dynamo.Integrator[float32], error) {
	fn, ok := builders[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", dynamo.ErrUnknownIntegrator, name)
	}
	return fn(), nil
}

// Names lists the registered integrator names.
func Names() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
