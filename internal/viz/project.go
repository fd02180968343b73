package viz

import (
	"math"

	"github.com/san-kum/boxdrop/internal/scene"
)

const near = 0.1

// Projector maps world points to canvas dots through a look-at perspective.
type Projector struct {
	eye, right, up, fwd scene.Vec3
	focal               float64
	w, h                int
}

func NewProjector(cam *scene.ArcRotateCamera, w, h int) Projector {
	eye := cam.Position()
	fwd := cam.Target.Sub(eye).Normalize()
	right := fwd.Cross(scene.V(0, 1, 0)).Normalize()
	if right.Length() == 0 {
		right = scene.V(1, 0, 0)
	}
	return Projector{
		eye:   eye,
		right: right,
		up:    right.Cross(fwd),
		fwd:   fwd,
		focal: 0.5 * float64(h) / math.Tan(cam.FOV/2),
		w:     w,
		h:     h,
	}
}

// Project returns dot coordinates and view depth of p. ok is false for
// points behind the near plane.
func (pr Projector) Project(p scene.Vec3) (x, y int, depth float64, ok bool) {
	d := p.Sub(pr.eye)
	z := d.Dot(pr.fwd)
	if z < near {
		return 0, 0, z, false
	}
	fx, fy := pr.screen(d, z)
	return int(math.Round(fx)), int(math.Round(fy)), z, true
}

// screen projects the eye-relative point d at view depth z.
func (pr Projector) screen(d scene.Vec3, z float64) (x, y float64) {
	return float64(pr.w)/2 + d.Dot(pr.right)*pr.focal/z,
		float64(pr.h)/2 - d.Dot(pr.up)*pr.focal/z
}

// Line draws the segment a-b on c. The part behind the near plane is cut
// away, and what is left is cut to the canvas.
func (pr Projector) Line(c *Canvas, a, b scene.Vec3) {
	da, db := a.Sub(pr.eye), b.Sub(pr.eye)
	za, zb := da.Dot(pr.fwd), db.Dot(pr.fwd)
	if za < near && zb < near {
		return
	}
	if za < near {
		da = da.Add(db.Sub(da).Scale((near - za) / (zb - za)))
		za = near
	} else if zb < near {
		db = db.Add(da.Sub(db).Scale((near - zb) / (za - zb)))
		zb = near
	}

	x0, y0 := pr.screen(da, za)
	x1, y1 := pr.screen(db, zb)
	x0, y0, x1, y1, ok := clipRect(x0, y0, x1, y1, float64(pr.w-1), float64(pr.h-1))
	if !ok {
		return
	}
	c.DrawLine(int(math.Round(x0)), int(math.Round(y0)), int(math.Round(x1)), int(math.Round(y1)))
}

// clipRect cuts a segment to [0, maxX] x [0, maxY] (Liang-Barsky).
func clipRect(x0, y0, x1, y1, maxX, maxY float64) (float64, float64, float64, float64, bool) {
	dx, dy := x1-x0, y1-y0
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, x0},
		{dx, maxX - x0},
		{-dy, y0},
		{dy, maxY - y0},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			t0 = math.Max(t0, r)
		} else {
			t1 = math.Min(t1, r)
		}
		if t0 > t1 {
			return 0, 0, 0, 0, false
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}

// DrawMesh draws m's wireframe: a grid for grounds, the twelve edges for boxes.
func (pr Projector) DrawMesh(c *Canvas, m *scene.Mesh) {
	lo, hi := m.Bounds()
	switch m.Kind {
	case scene.GroundMesh:
		const cells = 10
		y := m.Position.Y
		for i := 0; i <= cells; i++ {
			f := float64(i) / cells
			x := lo.X + f*(hi.X-lo.X)
			z := lo.Z + f*(hi.Z-lo.Z)
			pr.Line(c, scene.V(x, y, lo.Z), scene.V(x, y, hi.Z))
			pr.Line(c, scene.V(lo.X, y, z), scene.V(hi.X, y, z))
		}
	case scene.BoxMesh:
		v := [8]scene.Vec3{
			{X: lo.X, Y: lo.Y, Z: lo.Z}, {X: hi.X, Y: lo.Y, Z: lo.Z},
			{X: hi.X, Y: hi.Y, Z: lo.Z}, {X: lo.X, Y: hi.Y, Z: lo.Z},
			{X: lo.X, Y: lo.Y, Z: hi.Z}, {X: hi.X, Y: lo.Y, Z: hi.Z},
			{X: hi.X, Y: hi.Y, Z: hi.Z}, {X: lo.X, Y: hi.Y, Z: hi.Z},
		}
		edges := [12][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}, {4, 5}, {5, 6}, {6, 7}, {7, 4}, {0, 4}, {1, 5}, {2, 6}, {3, 7}}
		for _, e := range edges {
			pr.Line(c, v[e[0]], v[e[1]])
		}
	}
}
