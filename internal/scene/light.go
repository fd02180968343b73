package scene

// HemisphericLight approximates sky and ground bounce lighting. Direction
// points toward the sky.
type HemisphericLight struct {
	Name      string
	Direction Vec3
	Intensity float64
}

func NewHemisphericLight(name string, direction Vec3, s *Scene) *HemisphericLight {
	l := &HemisphericLight{Name: name, Direction: direction.Normalize(), Intensity: 1}
	s.addLight(l)
	return l
}

// Shade returns the lit color of a surface with normal n and diffuse color c.
// Surfaces facing the light get full intensity; facing away they get the
// ground bounce, a fifth of it.
func (l *HemisphericLight) Shade(n Vec3, c Color3) Color3 {
	w := 0.5 * (1 + n.Normalize().Dot(l.Direction))
	return c.Scale(l.Intensity * (0.2 + 0.8*w))
}
