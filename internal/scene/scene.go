package scene

import "fmt"

// Scene is the container of lights, cameras and meshes for one engine.
type Scene struct {
	ClearColor Color3

	engine       Engine
	lights       []*HemisphericLight
	cameras      []*ArcRotateCamera
	meshes       []*Mesh
	materials    []*StandardMaterial
	activeCamera *ArcRotateCamera

	physics PhysicsEngine
	gravity Vec3
	elapsed float64
}

// NewScene creates an empty scene owned by engine.
func NewScene(engine Engine) *Scene {
	return &Scene{engine: engine, ClearColor: RGB(0.2, 0.2, 0.3)}
}

func (s *Scene) Engine() Engine                 { return s.engine }
func (s *Scene) Lights() []*HemisphericLight    { return s.lights }
func (s *Scene) Cameras() []*ArcRotateCamera    { return s.cameras }
func (s *Scene) Meshes() []*Mesh                { return s.meshes }
func (s *Scene) Materials() []*StandardMaterial { return s.materials }
func (s *Scene) ActiveCamera() *ArcRotateCamera { return s.activeCamera }
func (s *Scene) Elapsed() float64               { return s.elapsed }

// Mesh returns the first mesh named name, or nil.
func (s *Scene) Mesh(name string) *Mesh {
	for _, m := range s.meshes {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// EnablePhysics attaches plugin as the scene's physics world.
func (s *Scene) EnablePhysics(gravity Vec3, plugin PhysicsEngine) error {
	if plugin == nil {
		return ErrNoPhysicsBackend
	}
	plugin.SetGravity(gravity)
	s.physics = plugin
	s.gravity = gravity
	return nil
}

func (s *Scene) PhysicsEnabled() bool         { return s.physics != nil }
func (s *Scene) PhysicsEngine() PhysicsEngine { return s.physics }
func (s *Scene) Gravity() Vec3                { return s.gravity }

// Impostors returns the impostors attached to the scene's meshes.
func (s *Scene) Impostors() []*Impostor {
	var out []*Impostor
	for _, m := range s.meshes {
		if m.Impostor != nil {
			out = append(out, m.Impostor)
		}
	}
	return out
}

// Render advances physics by dt, when enabled, and draws one frame.
func (s *Scene) Render(dt float64) error {
	if s.engine == nil {
		return ErrNoEngine
	}
	if s.physics != nil && dt > 0 {
		if err := s.physics.Step(dt); err != nil {
			return fmt.Errorf("physics step at t=%.4f: %w", s.elapsed, err)
		}
	}
	s.elapsed += dt
	return s.engine.Draw(s)
}

func (s *Scene) addLight(l *HemisphericLight) { s.lights = append(s.lights, l) }
func (s *Scene) addMesh(m *Mesh)              { s.meshes = append(s.meshes, m) }

func (s *Scene) addCamera(c *ArcRotateCamera) {
	s.cameras = append(s.cameras, c)
	if s.activeCamera == nil {
		s.activeCamera = c
	}
}
