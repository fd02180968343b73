// Package physics provides rigid-body backends that plug into a scene.
//
// Backends are looked up by name through a [Registry], which doubles as the
// capability query a bootstrapper runs before enabling physics:
//
//	reg := physics.Default("rk4", 4)
//	plugin, ok := reg.Lookup("rigid")
//	if !ok {
//	    // render without physics
//	}
//
// The built-in [Rigid] backend is intentionally small. Bodies translate
// under gravity and bounce off the top faces of static impostors; there is
// no rotation and dynamic bodies do not collide with each other.
package physics
