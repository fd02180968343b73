package scene

import "fmt"

type MeshKind int

const (
	GroundMesh MeshKind = iota
	BoxMesh
)

func (k MeshKind) String() string {
	switch k {
	case GroundMesh:
		return "ground"
	case BoxMesh:
		return "box"
	}
	return fmt.Sprintf("MeshKind(%d)", int(k))
}

type StandardMaterial struct {
	Name         string
	DiffuseColor Color3
}

func NewStandardMaterial(name string, s *Scene) *StandardMaterial {
	m := &StandardMaterial{Name: name, DiffuseColor: RGB(1, 1, 1)}
	s.materials = append(s.materials, m)
	return m
}

// Mesh is an axis-aligned shape. Size holds width (X), height (Y) and
// depth (Z); a ground has zero height.
type Mesh struct {
	Name     string
	Kind     MeshKind
	Size     Vec3
	Position Vec3
	Material *StandardMaterial
	Impostor *Impostor
}

type GroundOptions struct {
	Width  float64
	Height float64
}

type BoxOptions struct {
	Width  float64
	Height float64
	Depth  float64
}

// CreateGround adds a flat Width x Height ground centered on the origin.
func CreateGround(name string, opts GroundOptions, s *Scene) (*Mesh, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("%w: ground %q %gx%g", ErrInvalidMesh, name, opts.Width, opts.Height)
	}
	m := &Mesh{Name: name, Kind: GroundMesh, Size: Vec3{opts.Width, 0, opts.Height}}
	s.addMesh(m)
	return m, nil
}

// CreateBox adds a box centered on the origin.
func CreateBox(name string, opts BoxOptions, s *Scene) (*Mesh, error) {
	if opts.Width <= 0 || opts.Height <= 0 || opts.Depth <= 0 {
		return nil, fmt.Errorf("%w: box %q %gx%gx%g", ErrInvalidMesh, name, opts.Width, opts.Height, opts.Depth)
	}
	m := &Mesh{Name: name, Kind: BoxMesh, Size: Vec3{opts.Width, opts.Height, opts.Depth}}
	s.addMesh(m)
	return m, nil
}

// Bounds returns the mesh's axis-aligned bounding box in world space.
func (m *Mesh) Bounds() (lo, hi Vec3) {
	h := m.Size.Scale(0.5)
	return m.Position.Sub(h), m.Position.Add(h)
}

// Color returns the material's diffuse color, or white without a material.
func (m *Mesh) Color() Color3 {
	if m.Material == nil {
		return RGB(1, 1, 1)
	}
	return m.Material.DiffuseColor
}
