package integrators

import (
	"testing"

	"github.com/neoaces/arm/internal/dynamo"
	"github.com/neoaces/arm/internal/motor"
)

func benchDynamics() dynamo.Dynamics[float32] {
	spec := motor.Default()
	return dynamo.DerivFunc[float32](func(v, u float32) float32 {
		return spec.Acceleration(v, u, 32, 0.0006667)
	})
}

func BenchmarkEuler(b *testing.B) {
	integ := NewEuler[float32]()
	dyn := benchDynamics()
	v := float32(0)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		v = integ.Step(dyn, v, 10, 0.001)
	}
}

func BenchmarkRK4(b *testing.B) {
	integ := NewRK4[float32]()
	dyn := benchDynamics()
	v := float32(0)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		v = integ.Step(dyn, v, 10, 0.001)
	}
}

func BenchmarkRK45(b *testing.B) {
	integ := NewRK45[float32]()
	dyn := benchDynamics()
	v := float32(0)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		v = integ.Step(dyn, v, 10, 0.001)
	}
}
