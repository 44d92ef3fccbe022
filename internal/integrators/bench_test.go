package integrators

import (
	"testing"

	"github.com/san-kum/lorenzglow/internal/dynamo"
	"github.com/san-kum/lorenzglow/internal/physics"
)

func BenchmarkEuler(b *testing.B) {
	integrator := NewEuler()
	dyn := physics.NewCanonicalLorenz()
	x := dynamo.State{1.0, 1.0, 1.0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(dyn, x, 0, 0.001)
	}
}

func BenchmarkRK4(b *testing.B) {
	integrator := NewRK4()
	dyn := physics.NewCanonicalLorenz()
	x := dynamo.State{1.0, 1.0, 1.0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(dyn, x, 0, 0.001)
	}
}
