package gui

import (
	"context"
	"errors"
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/boxdrop/internal/scene"
)

var (
	ColText    = rl.NewColor(220, 220, 220, 255)
	ColTextDim = rl.NewColor(120, 120, 120, 255)
	ColWire    = rl.NewColor(20, 20, 20, 255)
)

const (
	maxFrameTime = 0.1
	orbitSpeed   = 0.005
	zoomSpeed    = 2.0
)

// Engine draws scenes into the raylib window.
type Engine struct {
	surface scene.Surface
	fps     int
	camera  *scene.ArcRotateCamera
}

func NewEngine(surface scene.Surface, fps int) (*Engine, error) {
	if surface == nil {
		return nil, scene.ErrNoSurface
	}
	if !rl.IsWindowReady() {
		return nil, errors.New("gui: window not initialized")
	}
	if fps <= 0 {
		return nil, fmt.Errorf("fps must be positive, got %d", fps)
	}
	return &Engine{surface: surface, fps: fps}, nil
}

func (e *Engine) Surface() scene.Surface { return e.surface }
func (e *Engine) Close() error           { return nil }

// Resize re-fits the window; raylib updates the viewport itself.
func (e *Engine) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	if w, h := e.surface.Size(); w != width || h != height {
		rl.SetWindowSize(width, height)
	}
}

func (e *Engine) Draw(s *scene.Scene) error {
	e.camera = s.ActiveCamera()

	rl.BeginDrawing()
	defer rl.EndDrawing()
	rl.ClearBackground(toColor(s.ClearColor))

	if e.camera == nil {
		return nil
	}

	rl.BeginMode3D(toCamera3D(e.camera))
	var light *scene.HemisphericLight
	if lights := s.Lights(); len(lights) > 0 {
		light = lights[0]
	}
	for _, m := range s.Meshes() {
		drawMesh(m, light)
	}
	rl.EndMode3D()

	e.drawHUD(s)
	return nil
}

func drawMesh(m *scene.Mesh, light *scene.HemisphericLight) {
	col := m.Color()
	if light != nil {
		col = light.Shade(scene.V(0, 1, 0), col)
	}
	pos := toVector3(m.Position)
	switch m.Kind {
	case scene.GroundMesh:
		rl.DrawPlane(pos, rl.NewVector2(float32(m.Size.X), float32(m.Size.Z)), toColor(col))
	case scene.BoxMesh:
		w, h, d := float32(m.Size.X), float32(m.Size.Y), float32(m.Size.Z)
		rl.DrawCube(pos, w, h, d, toColor(col))
		rl.DrawCubeWires(pos, w, h, d, ColWire)
	}
}

func (e *Engine) drawHUD(s *scene.Scene) {
	rl.DrawText("boxdrop", 20, 20, 20, ColText)
	status := "physics off"
	if p := s.PhysicsEngine(); p != nil {
		status = "physics " + p.Name()
	}
	rl.DrawText(fmt.Sprintf("t %.2fs  %s", s.Elapsed(), status), 20, 46, 16, ColTextDim)
	rl.DrawText("[DRAG] ORBIT  [WHEEL] ZOOM  [ESC] QUIT", 20, int32(rl.GetScreenHeight())-30, 14, ColTextDim)
	rl.DrawFPS(int32(rl.GetScreenWidth())-100, 20)
}

func (e *Engine) handleInput() {
	if e.camera == nil || !e.camera.ControlsAttached() {
		return
	}
	if rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		d := rl.GetMouseDelta()
		e.camera.Orbit(-float64(d.X)*orbitSpeed, -float64(d.Y)*orbitSpeed)
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		e.camera.Zoom(-float64(wheel) * zoomSpeed)
	}
}

// RunRenderLoop runs until the window closes or ctx is done.
func (e *Engine) RunRenderLoop(ctx context.Context, h scene.LoopHandlers) error {
	rl.SetTargetFPS(int32(e.fps))
	for !rl.WindowShouldClose() && !rl.IsKeyPressed(rl.KeyEscape) {
		if ctx.Err() != nil {
			return nil
		}
		if rl.IsWindowResized() && h.Resize != nil {
			h.Resize(rl.GetScreenWidth(), rl.GetScreenHeight())
		}
		e.handleInput()
		if h.Frame != nil {
			if err := h.Frame(frameTime(float64(rl.GetFrameTime()), e.fps)); err != nil {
				return err
			}
		}
	}
	return nil
}

// frameTime clamps the measured frame time: the first frame reports zero
// and a stalled window can report seconds.
func frameTime(measured float64, fps int) float64 {
	if measured <= 0 || math.IsNaN(measured) {
		return 1 / float64(fps)
	}
	return math.Min(measured, maxFrameTime)
}

func toVector3(v scene.Vec3) rl.Vector3 {
	return rl.NewVector3(float32(v.X), float32(v.Y), float32(v.Z))
}

func toColor(c scene.Color3) rl.Color {
	r, g, b, a := c.RGBA8()
	return rl.NewColor(r, g, b, a)
}

func toCamera3D(c *scene.ArcRotateCamera) rl.Camera3D {
	return rl.NewCamera3D(
		toVector3(c.Position()),
		toVector3(c.Target),
		rl.NewVector3(0, 1, 0),
		float32(c.FOV*180/math.Pi),
		rl.CameraPerspective,
	)
}
