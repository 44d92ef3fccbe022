// Package physics provides the vector fields the particles follow.
//
// Each field implements [dynamo.System]. The only field shipped is
// [Lorenz], the butterfly attractor; its parameters are fixed once the
// value is constructed.
//
//	field := physics.NewCanonicalLorenz()
//	d := field.Derive(dynamo.State{1, 1, 1}, 0) // {0, 26, -5/3}
package physics
