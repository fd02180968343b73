package bootstrap_test

import (
	"context"
	"errors"

	"github.com/san-kum/boxdrop/internal/scene"
)

type fakeSurface struct {
	id   string
	w, h int
}

func (s *fakeSurface) ID() string       { return s.id }
func (s *fakeSurface) Size() (int, int) { return s.w, s.h }

type fakeDocument map[string]*fakeSurface

func (d fakeDocument) Lookup(id string) scene.Surface {
	if s, ok := d[id]; ok {
		return s
	}
	return nil
}

type resize struct{ w, h int }

type fakeEngine struct {
	surface scene.Surface
	draws   int
	resizes []resize
	closed  bool
	loops   int
	// ticks is how many frames RunRenderLoop drives before returning.
	ticks int
}

func (e *fakeEngine) Surface() scene.Surface    { return e.surface }
func (e *fakeEngine) Resize(w, h int)           { e.resizes = append(e.resizes, resize{w, h}) }
func (e *fakeEngine) Draw(s *scene.Scene) error { e.draws++; return nil }
func (e *fakeEngine) Close() error              { e.closed = true; return nil }

func (e *fakeEngine) RunRenderLoop(ctx context.Context, h scene.LoopHandlers) error {
	e.loops++
	for i := 0; i < e.ticks; i++ {
		if err := ctx.Err(); err != nil {
			return nil
		}
		if err := h.Frame(1.0 / 60); err != nil {
			return err
		}
	}
	h.Resize(1024, 768)
	return nil
}

// engineRecorder builds fakeEngines and remembers them.
type engineRecorder struct {
	engines []*fakeEngine
	ticks   int
	err     error
}

func (r *engineRecorder) New(s scene.Surface) (scene.Engine, error) {
	if r.err != nil {
		return nil, r.err
	}
	e := &fakeEngine{surface: s, ticks: r.ticks}
	r.engines = append(r.engines, e)
	return e, nil
}

type failingPhysics struct{}

func (failingPhysics) Name() string                      { return "failing" }
func (failingPhysics) SetGravity(scene.Vec3)             {}
func (failingPhysics) AddImpostor(*scene.Impostor) error { return errors.New("attach refused") }
func (failingPhysics) Step(float64) error                { return nil }

type staticProbe struct{ plugin scene.PhysicsEngine }

func (p staticProbe) Lookup(string) (scene.PhysicsEngine, bool) { return p.plugin, p.plugin != nil }
