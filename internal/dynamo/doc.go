// Package dynamo holds the state vector and the ODE contracts the physics
// plugin integrates with.
//
// A [State] is positions followed by velocities. A [System] derives it and an
// [Integrator] steps it:
//
//	x := dynamo.Pack([]float64{0, 1, 0}, []float64{0, 0, 0})
//	x = integ.Step(body, x, nil, t, 1.0/60)
//	if err := dynamo.Check(body, x); err != nil { ... }
//
// Integrators keep scratch buffers and are not safe for concurrent use. Each
// physics world owns its own.
package dynamo
