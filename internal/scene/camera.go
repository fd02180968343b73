package scene

import "math"

const (
	minRadius = 1.0
	maxRadius = 1000.0
	minBeta   = 0.01
	maxBeta   = math.Pi - 0.01
)

// ArcRotateCamera orbits Target at Radius. Alpha is the longitudinal angle
// around the Y axis, Beta the latitudinal angle from +Y.
type ArcRotateCamera struct {
	Name   string
	Alpha  float64
	Beta   float64
	Radius float64
	Target Vec3
	FOV    float64

	attached Surface
}

func NewArcRotateCamera(name string, alpha, beta, radius float64, target Vec3, s *Scene) *ArcRotateCamera {
	c := &ArcRotateCamera{
		Name:   name,
		Alpha:  alpha,
		Beta:   clamp(beta, minBeta, maxBeta),
		Radius: clamp(radius, minRadius, maxRadius),
		Target: target,
		FOV:    0.8,
	}
	s.addCamera(c)
	return c
}

// AttachControl routes pointer and keyboard input from surface to the camera.
func (c *ArcRotateCamera) AttachControl(surface Surface) { c.attached = surface }

// ControlsAttached reports whether the camera receives user input.
func (c *ArcRotateCamera) ControlsAttached() bool { return c.attached != nil }

// Position returns the camera's world position.
func (c *ArcRotateCamera) Position() Vec3 {
	sb := math.Sin(c.Beta)
	return c.Target.Add(Vec3{
		X: c.Radius * math.Cos(c.Alpha) * sb,
		Y: c.Radius * math.Cos(c.Beta),
		Z: c.Radius * math.Sin(c.Alpha) * sb,
	})
}

// Orbit rotates the camera around its target.
func (c *ArcRotateCamera) Orbit(dAlpha, dBeta float64) {
	c.Alpha += dAlpha
	c.Beta = clamp(c.Beta+dBeta, minBeta, maxBeta)
}

// Zoom moves the camera toward (negative d) or away from its target.
func (c *ArcRotateCamera) Zoom(d float64) {
	c.Radius = clamp(c.Radius+d, minRadius, maxRadius)
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
