package scene

import "fmt"

type ImpostorKind int

const (
	BoxImpostor ImpostorKind = iota
	SphereImpostor
	PlaneImpostor
)

func (k ImpostorKind) String() string {
	switch k {
	case BoxImpostor:
		return "box"
	case SphereImpostor:
		return "sphere"
	case PlaneImpostor:
		return "plane"
	}
	return fmt.Sprintf("ImpostorKind(%d)", int(k))
}

type ImpostorParams struct {
	Mass        float64
	Friction    float64
	Restitution float64
}

// Impostor is the collision proxy a physics plugin simulates in place of
// its mesh. A zero mass makes it static.
type Impostor struct {
	Mesh     *Mesh
	Kind     ImpostorKind
	Params   ImpostorParams
	Velocity Vec3
}

// NewImpostor attaches an impostor to mesh and registers it with the scene's
// physics world.
func NewImpostor(mesh *Mesh, kind ImpostorKind, p ImpostorParams, s *Scene) (*Impostor, error) {
	if s.physics == nil {
		return nil, ErrPhysicsNotEnabled
	}
	if mesh == nil {
		return nil, fmt.Errorf("%w: nil mesh", ErrInvalidImpostor)
	}
	if p.Mass < 0 || p.Friction < 0 || p.Restitution < 0 {
		return nil, fmt.Errorf("%w: %s mass=%g friction=%g restitution=%g",
			ErrInvalidImpostor, mesh.Name, p.Mass, p.Friction, p.Restitution)
	}

	imp := &Impostor{Mesh: mesh, Kind: kind, Params: p}
	if err := s.physics.AddImpostor(imp); err != nil {
		return nil, fmt.Errorf("attach impostor to %s: %w", mesh.Name, err)
	}
	mesh.Impostor = imp
	return imp, nil
}

func (i *Impostor) IsStatic() bool { return i.Params.Mass == 0 }
