package integrators

import "github.com/san-kum/boxdrop/internal/dynamo"

// RK4 is classic fourth-order Runge-Kutta. Its stage buffers are reused
// between steps.
type RK4 struct {
	k   [4]dynamo.State
	tmp dynamo.State
}

func NewRK4() *RK4 { return &RK4{} }

func (r *RK4) grow(n int) {
	if len(r.tmp) == n {
		return
	}
	for i := range r.k {
		r.k[i] = make(dynamo.State, n)
	}
	r.tmp = make(dynamo.State, n)
}

func (r *RK4) Step(sys dynamo.System, x dynamo.State, u dynamo.Control, t, dt float64) dynamo.State {
	r.grow(len(x))
	half := dt / 2

	copy(r.k[0], sys.Derive(x, u, t))
	copy(r.k[1], sys.Derive(x.Advance(half, r.k[0], r.tmp), u, t+half))
	copy(r.k[2], sys.Derive(x.Advance(half, r.k[1], r.tmp), u, t+half))
	copy(r.k[3], sys.Derive(x.Advance(dt, r.k[2], r.tmp), u, t+dt))

	next := make(dynamo.State, len(x))
	for i := range x {
		next[i] = x[i] + dt/6*(r.k[0][i]+2*r.k[1][i]+2*r.k[2][i]+r.k[3][i])
	}
	return next
}
