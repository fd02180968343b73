package scene

import "errors"

var (
	// ErrNoSurface indicates the drawing surface is missing.
	ErrNoSurface = errors.New("scene: drawing surface not found")

	// ErrNoEngine indicates a scene was rendered without a rendering context.
	ErrNoEngine = errors.New("scene: no rendering engine")

	// ErrNoPhysicsBackend indicates physics was requested without a plugin.
	ErrNoPhysicsBackend = errors.New("scene: physics backend not available")

	// ErrPhysicsNotEnabled indicates an impostor was attached before physics.
	ErrPhysicsNotEnabled = errors.New("scene: physics must be enabled before attaching impostors")

	// ErrInvalidImpostor indicates negative mass, friction or restitution.
	ErrInvalidImpostor = errors.New("scene: invalid impostor parameters")

	// ErrInvalidMesh indicates a mesh with non-positive dimensions.
	ErrInvalidMesh = errors.New("scene: invalid mesh dimensions")
)
