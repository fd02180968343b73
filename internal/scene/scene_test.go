package scene

import (
	"context"
	"errors"
	"math"
	"testing"
)

type stubSurface struct{ w, h int }

func (s stubSurface) ID() string       { return "renderCanvas" }
func (s stubSurface) Size() (int, int) { return s.w, s.h }

type stubEngine struct {
	draws int
	err   error
}

func (e *stubEngine) Surface() Surface    { return stubSurface{800, 600} }
func (e *stubEngine) Resize(w, h int)     {}
func (e *stubEngine) Draw(s *Scene) error { e.draws++; return e.err }
func (e *stubEngine) Close() error        { return nil }
func (e *stubEngine) RunRenderLoop(ctx context.Context, h LoopHandlers) error {
	return nil
}

type stubPhysics struct {
	gravity Vec3
	added   []*Impostor
	steps   int
	err     error
}

func (p *stubPhysics) Name() string      { return "stub" }
func (p *stubPhysics) SetGravity(g Vec3) { p.gravity = g }
func (p *stubPhysics) Step(dt float64) error {
	p.steps++
	return p.err
}
func (p *stubPhysics) AddImpostor(imp *Impostor) error {
	p.added = append(p.added, imp)
	return nil
}

func TestNewImpostorRequiresPhysics(t *testing.T) {
	s := NewScene(&stubEngine{})
	box, err := CreateBox("box", BoxOptions{Width: 2, Height: 1, Depth: 4}, s)
	if err != nil {
		t.Fatalf("create box: %v", err)
	}

	_, err = NewImpostor(box, BoxImpostor, ImpostorParams{Mass: 10}, s)
	if !errors.Is(err, ErrPhysicsNotEnabled) {
		t.Fatalf("expected ErrPhysicsNotEnabled, got %v", err)
	}
	if box.Impostor != nil {
		t.Error("impostor should not be attached on failure")
	}
}

func TestNewImpostor(t *testing.T) {
	s := NewScene(&stubEngine{})
	phys := &stubPhysics{}
	if err := s.EnablePhysics(V(0, -9.81, 0), phys); err != nil {
		t.Fatalf("enable physics: %v", err)
	}
	if phys.gravity.Y != -9.81 {
		t.Errorf("gravity not forwarded: %v", phys.gravity)
	}

	ground, _ := CreateGround("ground", GroundOptions{Width: 100, Height: 100}, s)
	imp, err := NewImpostor(ground, BoxImpostor, ImpostorParams{Mass: 0, Restitution: 0.9}, s)
	if err != nil {
		t.Fatalf("new impostor: %v", err)
	}
	if !imp.IsStatic() {
		t.Error("zero-mass impostor should be static")
	}
	if ground.Impostor != imp || len(phys.added) != 1 {
		t.Error("impostor not attached to mesh and plugin")
	}
	if got := len(s.Impostors()); got != 1 {
		t.Errorf("Impostors() = %d, want 1", got)
	}
}

func TestNewImpostorInvalidParams(t *testing.T) {
	s := NewScene(&stubEngine{})
	_ = s.EnablePhysics(V(0, -9.81, 0), &stubPhysics{})
	box, _ := CreateBox("box", BoxOptions{Width: 1, Height: 1, Depth: 1}, s)

	tests := []struct {
		name string
		p    ImpostorParams
	}{
		{"negative mass", ImpostorParams{Mass: -1}},
		{"negative friction", ImpostorParams{Mass: 1, Friction: -0.1}},
		{"negative restitution", ImpostorParams{Mass: 1, Restitution: -0.1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewImpostor(box, BoxImpostor, tt.p, s); !errors.Is(err, ErrInvalidImpostor) {
				t.Errorf("expected ErrInvalidImpostor, got %v", err)
			}
		})
	}
}

func TestEnablePhysicsNilPlugin(t *testing.T) {
	s := NewScene(&stubEngine{})
	if err := s.EnablePhysics(V(0, -9.81, 0), nil); !errors.Is(err, ErrNoPhysicsBackend) {
		t.Errorf("expected ErrNoPhysicsBackend, got %v", err)
	}
	if s.PhysicsEnabled() {
		t.Error("physics should stay disabled")
	}
}

func TestCreateMeshInvalid(t *testing.T) {
	s := NewScene(&stubEngine{})
	if _, err := CreateGround("g", GroundOptions{Width: 0, Height: 10}, s); !errors.Is(err, ErrInvalidMesh) {
		t.Errorf("expected ErrInvalidMesh, got %v", err)
	}
	if _, err := CreateBox("b", BoxOptions{Width: 1, Height: -1, Depth: 1}, s); !errors.Is(err, ErrInvalidMesh) {
		t.Errorf("expected ErrInvalidMesh, got %v", err)
	}
	if len(s.Meshes()) != 0 {
		t.Error("invalid meshes should not be added")
	}
}

func TestRender(t *testing.T) {
	eng := &stubEngine{}
	s := NewScene(eng)
	if err := s.Render(0.016); err != nil {
		t.Fatalf("render: %v", err)
	}
	if eng.draws != 1 {
		t.Errorf("draws = %d, want 1", eng.draws)
	}

	phys := &stubPhysics{}
	_ = s.EnablePhysics(V(0, -9.81, 0), phys)
	_ = s.Render(0.016)
	if phys.steps != 1 {
		t.Errorf("physics steps = %d, want 1", phys.steps)
	}

	phys.err = errors.New("boom")
	if err := s.Render(0.016); err == nil {
		t.Error("expected physics error to propagate")
	}

	if err := NewScene(nil).Render(0.016); !errors.Is(err, ErrNoEngine) {
		t.Errorf("expected ErrNoEngine, got %v", err)
	}
}

func TestArcRotateCameraPosition(t *testing.T) {
	s := NewScene(&stubEngine{})
	cam := NewArcRotateCamera("Camera", -math.Pi/2, math.Pi/2.5, 50, Zero(), s)

	p := cam.Position()
	if math.Abs(p.Length()-50) > 1e-9 {
		t.Errorf("distance to target = %f, want 50", p.Length())
	}
	if math.Abs(p.X) > 1e-9 || p.Z >= 0 || p.Y <= 0 {
		t.Errorf("unexpected position %+v", p)
	}
	if s.ActiveCamera() != cam {
		t.Error("first camera should become active")
	}

	cam.Zoom(-1000)
	if cam.Radius != minRadius {
		t.Errorf("radius = %f, want clamp to %f", cam.Radius, minRadius)
	}
	cam.Orbit(0, 10)
	if cam.Beta != maxBeta {
		t.Errorf("beta = %f, want clamp to %f", cam.Beta, maxBeta)
	}

	if cam.ControlsAttached() {
		t.Error("controls attached before AttachControl")
	}
	cam.AttachControl(stubSurface{})
	if !cam.ControlsAttached() {
		t.Error("controls not attached")
	}
}

func TestMeshBounds(t *testing.T) {
	s := NewScene(&stubEngine{})
	box, _ := CreateBox("box", BoxOptions{Width: 2, Height: 1, Depth: 4}, s)
	box.Position.Y = 1

	lo, hi := box.Bounds()
	if lo.Y != 0.5 || hi.Y != 1.5 || lo.X != -1 || hi.Z != 2 {
		t.Errorf("unexpected bounds %+v %+v", lo, hi)
	}
	if s.Mesh("box") != box || s.Mesh("missing") != nil {
		t.Error("Mesh lookup by name failed")
	}
}

func TestHemisphericLightShade(t *testing.T) {
	s := NewScene(&stubEngine{})
	l := NewHemisphericLight("light", V(0, 2, 0), s)
	l.Intensity = 0.7

	up := l.Shade(V(0, 1, 0), RGB(1, 1, 1))
	down := l.Shade(V(0, -1, 0), RGB(1, 1, 1))
	if math.Abs(up.R-0.7) > 1e-9 {
		t.Errorf("up-facing = %f, want 0.7", up.R)
	}
	if down.R >= up.R {
		t.Error("down-facing surfaces should be darker")
	}
}
