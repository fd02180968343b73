package integrators

import "github.com/san-kum/boxdrop/internal/dynamo"

// Verlet is velocity Verlet. It needs the acceleration at the new position
// only, so forces may depend on position but not on velocity.
type Verlet struct{}

func NewVerlet() *Verlet { return &Verlet{} }

func (Verlet) Step(sys dynamo.System, x dynamo.State, u dynamo.Control, t, dt float64) dynamo.State {
	a0 := sys.Derive(x, u, t).Clone().Velocities()

	next := x.Clone()
	pos, vel := next.Positions(), x.Velocities()
	for i := range pos {
		pos[i] += vel[i]*dt + 0.5*a0[i]*dt*dt
	}

	a1 := sys.Derive(next, u, t+dt).Velocities()
	nextVel := next.Velocities()
	for i := range nextVel {
		nextVel[i] = vel[i] + 0.5*(a0[i]+a1[i])*dt
	}
	return next
}
