// Package bootstrap builds the startup scene and drives its frame loop.
//
// [Boot] is the process-level entry point: it resolves the drawing surface
// from a [Document], runs [BuildScene], and returns a [Driver] that owns the
// resulting engine and scene. Nothing here is global; callers thread the
// Driver through explicitly.
//
// # Failure modes
//
// A missing surface aborts before anything is constructed and leaves the
// Driver in [Aborted]. A missing physics backend is not fatal: the scene is
// returned with its light, camera and ground but without physics or the
// dynamic box.
package bootstrap
