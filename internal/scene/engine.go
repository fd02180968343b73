package scene

import "context"

// Surface is the on-screen target a renderer draws into.
type Surface interface {
	ID() string
	Size() (width, height int)
}

// LoopHandlers are the callbacks an engine invokes from its frame loop.
// Both are called from the loop's own goroutine, never concurrently.
type LoopHandlers struct {
	// Frame is called once per tick with the elapsed simulated time.
	// A non-nil error stops the loop and is returned by RunRenderLoop.
	Frame func(dt float64) error
	// Resize is called when the host reports new surface dimensions.
	Resize func(width, height int)
}

// Engine is the rendering context bound to one surface.
type Engine interface {
	Surface() Surface
	// Resize re-fits the rendering context to new surface dimensions.
	Resize(width, height int)
	// Draw produces one frame of s.
	Draw(s *Scene) error
	// RunRenderLoop blocks, invoking h.Frame once per tick until ctx is
	// done or the host closes.
	RunRenderLoop(ctx context.Context, h LoopHandlers) error
	Close() error
}

// PhysicsEngine is a rigid-body plugin attached to a scene.
type PhysicsEngine interface {
	Name() string
	SetGravity(g Vec3)
	AddImpostor(imp *Impostor) error
	// Step advances the world by dt and writes new positions back to the
	// impostors' meshes.
	Step(dt float64) error
}
