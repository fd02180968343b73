package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/san-kum/boxdrop/internal/scene"
)

type Phase int

const (
	Uninitialized Phase = iota
	Running
	Aborted
)

func (p Phase) String() string {
	switch p {
	case Uninitialized:
		return "uninitialized"
	case Running:
		return "running"
	case Aborted:
		return "aborted"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

var ErrNotRunning = errors.New("bootstrap: driver is not running")

// Driver forwards frame ticks and resize notifications to a built scene.
// It is not safe for concurrent use; engines call it from their loop.
type Driver struct {
	engine scene.Engine
	scene  *scene.Scene
	phase  Phase
	frames int
	log    *slog.Logger
}

// NewDriver returns a Running driver when both engine and sc are set.
func NewDriver(engine scene.Engine, sc *scene.Scene, log *slog.Logger) *Driver {
	d := &Driver{engine: engine, scene: sc, log: log}
	if engine != nil && sc != nil {
		d.phase = Running
	}
	return d
}

func (d *Driver) Phase() Phase         { return d.phase }
func (d *Driver) Scene() *scene.Scene  { return d.scene }
func (d *Driver) Engine() scene.Engine { return d.engine }
func (d *Driver) Frames() int          { return d.frames }

// Frame renders one tick. Without a scene it does nothing.
func (d *Driver) Frame(dt float64) error {
	if d == nil || d.scene == nil {
		return nil
	}
	if err := d.scene.Render(dt); err != nil {
		return err
	}
	d.frames++
	return nil
}

// Resize forwards the new dimensions to the rendering context.
func (d *Driver) Resize(width, height int) {
	if d == nil || d.engine == nil {
		return
	}
	d.engine.Resize(width, height)
}

// Run blocks in the engine's render loop until ctx is done, the host closes,
// or a frame fails.
func (d *Driver) Run(ctx context.Context) error {
	if d.phase != Running {
		return fmt.Errorf("%w (phase %s)", ErrNotRunning, d.phase)
	}
	err := d.engine.RunRenderLoop(ctx, scene.LoopHandlers{Frame: d.Frame, Resize: d.Resize})
	if err != nil && d.log != nil {
		d.log.Error("render loop stopped", "frames", d.frames, "err", err)
	}
	return err
}

func (d *Driver) Close() error {
	if d.engine == nil {
		return nil
	}
	return d.engine.Close()
}
