package gui

import (
	"math"
	"testing"

	"github.com/san-kum/boxdrop/internal/scene"
)

func TestFrameTime(t *testing.T) {
	tests := []struct {
		name     string
		measured float64
		want     float64
	}{
		{"first frame", 0, 1.0 / 60},
		{"nan", math.NaN(), 1.0 / 60},
		{"normal", 0.016, 0.016},
		{"stall", 2.5, maxFrameTime},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := frameTime(tt.measured, 60); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("frameTime(%v) = %v, want %v", tt.measured, got, tt.want)
			}
		})
	}
}

func TestToCamera3D(t *testing.T) {
	s := scene.NewScene(nil)
	cam := scene.NewArcRotateCamera("Camera", -math.Pi/2, math.Pi/2.5, 50, scene.Zero(), s)

	c := toCamera3D(cam)
	p := cam.Position()
	if math.Abs(float64(c.Position.Z)-p.Z) > 1e-4 || math.Abs(float64(c.Position.Y)-p.Y) > 1e-4 {
		t.Errorf("camera position %+v, want %+v", c.Position, p)
	}
	if c.Target.X != 0 || c.Target.Y != 0 || c.Target.Z != 0 {
		t.Errorf("camera target %+v, want origin", c.Target)
	}
	if c.Up.Y != 1 {
		t.Errorf("camera up %+v, want +Y", c.Up)
	}
}

func TestToColor(t *testing.T) {
	c := toColor(scene.RGB(0.1, 0.5, 0.1))
	if c.R != 26 || c.G != 128 || c.B != 26 || c.A != 255 {
		t.Errorf("toColor = %+v", c)
	}
}

func TestDocumentLookupWithoutWindow(t *testing.T) {
	d := &Document{}
	if d.Lookup("renderCanvas") != nil {
		t.Error("closed document should not resolve surfaces")
	}
	d.Close()
}
