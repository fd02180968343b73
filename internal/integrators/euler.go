package integrators

import "github.com/san-kum/boxdrop/internal/dynamo"

// Euler is explicit first order. It overshoots contacts by up to one step of
// gravity, which the rigid world's contact slop absorbs.
type Euler struct{}

func NewEuler() *Euler { return &Euler{} }

func (Euler) Step(sys dynamo.System, x dynamo.State, u dynamo.Control, t, dt float64) dynamo.State {
	return x.Advance(dt, sys.Derive(x, u, t), nil)
}
