package scene

import "math"

type Vec3 struct {
	X, Y, Z float64
}

func V(x, y, z float64) Vec3 { return Vec3{x, y, z} }

// Zero is the world origin.
func Zero() Vec3 { return Vec3{} }

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Length() float64      { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }
func (v Vec3) Normalize() Vec3 {
	if l := v.Length(); l != 0 {
		return v.Scale(1 / l)
	}
	return Vec3{}
}
func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{v.Y*o.Z - v.Z*o.Y, v.Z*o.X - v.X*o.Z, v.X*o.Y - v.Y*o.X}
}

// Color3 is a linear RGB color with components in [0, 1].
type Color3 struct {
	R, G, B float64
}

func RGB(r, g, b float64) Color3 { return Color3{r, g, b} }

// Scale multiplies each component by s and clamps to [0, 1].
func (c Color3) Scale(s float64) Color3 {
	return Color3{clamp01(c.R * s), clamp01(c.G * s), clamp01(c.B * s)}
}

// RGBA8 returns the color as 8-bit channels with full alpha.
func (c Color3) RGBA8() (r, g, b, a uint8) {
	return uint8(clamp01(c.R)*255 + 0.5), uint8(clamp01(c.G)*255 + 0.5), uint8(clamp01(c.B)*255 + 0.5), 255
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
