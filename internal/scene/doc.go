// Package scene holds the scene graph a bootstrapper populates and the
// contracts it needs from the outside world.
//
// Rendering and physics are not implemented here. A [Scene] owns plain
// data (lights, cameras, meshes, materials, impostors) and delegates:
//
//   - drawing and the frame loop to an [Engine] bound to a [Surface]
//   - rigid-body simulation to a [PhysicsEngine] enabled on the scene
//
// Physics must be enabled before impostors are attached; [NewImpostor]
// reports [ErrPhysicsNotEnabled] otherwise.
package scene
