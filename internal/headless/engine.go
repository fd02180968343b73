// Package headless renders nothing. Its engine steps a scene for a fixed
// number of frames and records where every mesh is after each one.
package headless

import (
	"context"
	"fmt"

	"github.com/san-kum/boxdrop/internal/scene"
)

// Buffer is an off-screen surface of a fixed size.
type Buffer struct {
	id            string
	width, height int
}

func (b *Buffer) ID() string       { return b.id }
func (b *Buffer) Size() (int, int) { return b.width, b.height }

type Document struct {
	buf *Buffer
}

func NewDocument(id string, width, height int) *Document {
	return &Document{buf: &Buffer{id: id, width: width, height: height}}
}

func (d *Document) Lookup(id string) scene.Surface {
	if d.buf == nil || d.buf.id != id {
		return nil
	}
	return d.buf
}

// Sample is one mesh position after a frame.
type Sample struct {
	Frame    int        `json:"frame"`
	Time     float64    `json:"time"`
	Mesh     string     `json:"mesh"`
	Position scene.Vec3 `json:"position"`
	Velocity scene.Vec3 `json:"velocity"`
}

// Engine runs Frames ticks of Dt seconds each.
type Engine struct {
	surface scene.Surface
	Frames  int
	Dt      float64

	samples []Sample
	drawn   int
}

func NewEngine(surface scene.Surface, frames int, dt float64) (*Engine, error) {
	if surface == nil {
		return nil, scene.ErrNoSurface
	}
	if frames <= 0 || dt <= 0 {
		return nil, fmt.Errorf("frames and dt must be positive, got %d and %g", frames, dt)
	}
	return &Engine{surface: surface, Frames: frames, Dt: dt}, nil
}

func (e *Engine) Surface() scene.Surface { return e.surface }
func (e *Engine) Close() error           { return nil }
func (e *Engine) Samples() []Sample      { return e.samples }

func (e *Engine) Resize(width, height int) {
	if b, ok := e.surface.(*Buffer); ok {
		b.width, b.height = max(width, 0), max(height, 0)
	}
}

// Draw records every mesh that has an impostor, or every mesh when physics
// is off.
func (e *Engine) Draw(s *scene.Scene) error {
	for _, m := range s.Meshes() {
		if s.PhysicsEnabled() && m.Impostor == nil {
			continue
		}
		smp := Sample{Frame: e.drawn, Time: s.Elapsed(), Mesh: m.Name, Position: m.Position}
		if m.Impostor != nil {
			smp.Velocity = m.Impostor.Velocity
		}
		e.samples = append(e.samples, smp)
	}
	e.drawn++
	return nil
}

func (e *Engine) RunRenderLoop(ctx context.Context, h scene.LoopHandlers) error {
	for i := 0; i < e.Frames; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if h.Frame == nil {
			continue
		}
		if err := h.Frame(e.Dt); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
	}
	return nil
}
