package physics

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/boxdrop/internal/dynamo"
	"github.com/san-kum/boxdrop/internal/integrators"
	"github.com/san-kum/boxdrop/internal/scene"
)

const RigidName = "rigid"

// contactSlop absorbs rounding when a body rests exactly on a face.
const contactSlop = 1e-9

// FreeBody is a translating body under constant acceleration.
// State: [x, y, z, vx, vy, vz].
type FreeBody struct {
	Gravity scene.Vec3
}

func (b *FreeBody) StateDim() int   { return 6 }
func (b *FreeBody) ControlDim() int { return 0 }

func (b *FreeBody) Derive(x dynamo.State, u dynamo.Control, t float64) dynamo.State {
	return dynamo.State{x[3], x[4], x[5], b.Gravity.X, b.Gravity.Y, b.Gravity.Z}
}

// Rigid is the built-in physics world.
type Rigid struct {
	body     *FreeBody
	integ    dynamo.Integrator
	substeps int
	statics  []*scene.Impostor
	dynamics []*scene.Impostor
	t        float64
}

func NewRigid(integrator string, substeps int) (*Rigid, error) {
	integ, err := integrators.Get(integrator)
	if err != nil {
		return nil, err
	}
	if substeps < 1 {
		return nil, fmt.Errorf("substeps must be at least 1, got %d", substeps)
	}
	return &Rigid{body: &FreeBody{}, integ: integ, substeps: substeps}, nil
}

func (r *Rigid) Name() string            { return RigidName }
func (r *Rigid) SetGravity(g scene.Vec3) { r.body.Gravity = g }
func (r *Rigid) Time() float64           { return r.t }

func (r *Rigid) AddImpostor(imp *scene.Impostor) error {
	if imp == nil || imp.Mesh == nil {
		return errors.New("physics: impostor without mesh")
	}
	if imp.IsStatic() {
		r.statics = append(r.statics, imp)
	} else {
		r.dynamics = append(r.dynamics, imp)
	}
	return nil
}

func (r *Rigid) Step(dt float64) error {
	if dt <= 0 {
		return nil
	}
	h := dt / float64(r.substeps)
	for i := 0; i < r.substeps; i++ {
		for _, d := range r.dynamics {
			prevLo, _ := d.Mesh.Bounds()
			if err := r.advance(d, h); err != nil {
				return err
			}
			for _, s := range r.statics {
				r.resolve(d, s, prevLo.Y, h)
			}
		}
		r.t += h
	}
	return nil
}

func (r *Rigid) advance(d *scene.Impostor, h float64) error {
	m := d.Mesh
	x := dynamo.Pack(components(m.Position), components(d.Velocity))
	x = r.integ.Step(r.body, x, nil, r.t, h)
	if err := dynamo.Check(r.body, x); err != nil {
		return &dynamo.StepError{Body: m.Name, Time: r.t, State: x, Wrapped: err}
	}
	m.Position = fromComponents(x.Positions())
	d.Velocity = fromComponents(x.Velocities())
	return nil
}

func components(v scene.Vec3) []float64     { return []float64{v.X, v.Y, v.Z} }
func fromComponents(c []float64) scene.Vec3 { return scene.V(c[0], c[1], c[2]) }

// resolve pushes d out of the top face of s and applies the bounce and
// sliding friction for that contact. prevBottom is d's lowest point before
// the substep; a contact needs it to start on or above the face, so a fast
// body that crossed the whole face within one substep still lands on it.
func (r *Rigid) resolve(d, s *scene.Impostor, prevBottom, h float64) {
	dLo, dHi := d.Mesh.Bounds()
	sLo, sHi := s.Mesh.Bounds()

	if s.Kind != scene.PlaneImpostor {
		if dHi.X <= sLo.X || dLo.X >= sHi.X || dHi.Z <= sLo.Z || dLo.Z >= sHi.Z {
			return
		}
	}
	if dLo.Y > sHi.Y+contactSlop || prevBottom < sHi.Y-contactSlop {
		return
	}

	d.Mesh.Position.Y += sHi.Y - dLo.Y

	g := math.Abs(r.body.Gravity.Y)
	if d.Velocity.Y < 0 {
		e := d.Params.Restitution * s.Params.Restitution
		d.Velocity.Y = -d.Velocity.Y * e
		// Bounces smaller than a couple of substeps of gravity would only
		// jitter; settle instead.
		if d.Velocity.Y < 2*g*h {
			d.Velocity.Y = 0
		}
	}

	mu := d.Params.Friction * s.Params.Friction
	horiz := scene.V(d.Velocity.X, 0, d.Velocity.Z)
	speed := horiz.Length()
	if speed == 0 || mu == 0 {
		return
	}
	slowed := math.Max(0, speed-mu*g*h)
	horiz = horiz.Scale(slowed / speed)
	d.Velocity.X, d.Velocity.Z = horiz.X, horiz.Z
}
