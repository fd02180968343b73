package physics

import (
	"fmt"
	"sort"

	"github.com/san-kum/boxdrop/internal/scene"
)

// Factory builds a fresh physics world.
type Factory func() (scene.PhysicsEngine, error)

// Probe is the capability query for a physics backend.
type Probe interface {
	Lookup(name string) (scene.PhysicsEngine, bool)
}

type Registry struct {
	factories map[string]Factory
}

// NewRegistry returns an empty registry. Every lookup on it misses.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Default returns a registry holding the "rigid" backend.
func Default(integrator string, substeps int) *Registry {
	r := NewRegistry()
	r.Register(RigidName, func() (scene.PhysicsEngine, error) {
		return NewRigid(integrator, substeps)
	})
	return r
}

func (r *Registry) Register(name string, f Factory) { r.factories[name] = f }

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Open builds the named backend.
func (r *Registry) Open(name string) (scene.PhysicsEngine, error) {
	f, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (registered: %v)", scene.ErrNoPhysicsBackend, name, r.Names())
	}
	return f()
}

// Lookup is Open reduced to a yes/no answer.
func (r *Registry) Lookup(name string) (scene.PhysicsEngine, bool) {
	p, err := r.Open(name)
	if err != nil {
		return nil, false
	}
	return p, true
}
