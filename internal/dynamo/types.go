package dynamo

import "math"

// State holds a body's generalized positions followed by the matching
// velocities, so len(State) is always even.
type State []float64

// Pack lays out positions then velocities. Both must have the same length.
func Pack(pos, vel []float64) State {
	x := make(State, 0, len(pos)+len(vel))
	x = append(x, pos...)
	return append(x, vel...)
}

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

// Positions and Velocities alias the two halves of s.
func (s State) Positions() []float64  { return s[:len(s)/2] }
func (s State) Velocities() []float64 { return s[len(s)/2:] }

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Advance writes s + h*k into out and returns it. out may alias s; a nil out
// allocates.
func (s State) Advance(h float64, k State, out State) State {
	if out == nil {
		out = make(State, len(s))
	}
	for i := range s {
		out[i] = s[i] + h*k[i]
	}
	return out
}

// Check reports ErrDimensionMismatch or ErrInvalidState for x against sys.
func Check(sys System, x State) error {
	if len(x) != sys.StateDim() || len(x)%2 != 0 {
		return ErrDimensionMismatch
	}
	if !x.IsValid() {
		return ErrInvalidState
	}
	return nil
}

// Control is an external input. The built-in bodies take none.
type Control []float64

// System is a set of first-order ODEs dx/dt = Derive(x, u, t).
type System interface {
	Derive(x State, u Control, t float64) State
	StateDim() int
	ControlDim() int
}

// Integrator advances a System by one step of dt and returns the new state.
// Implementations may keep scratch space between calls.
type Integrator interface {
	Step(sys System, x State, u Control, t, dt float64) State
}
