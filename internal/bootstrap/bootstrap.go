package bootstrap

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/san-kum/boxdrop/internal/config"
	"github.com/san-kum/boxdrop/internal/physics"
	"github.com/san-kum/boxdrop/internal/scene"
)

// Document is the host that owns drawing surfaces. Lookup returns a nil
// interface when no surface has the given id.
type Document interface {
	Lookup(id string) scene.Surface
}

// EngineFactory constructs a rendering context bound to a surface.
type EngineFactory func(scene.Surface) (scene.Engine, error)

type Options struct {
	NewEngine EngineFactory
	// Physics is queried once for cfg.Physics.Backend. Nil means no
	// physics library is present.
	Physics physics.Probe
	Logger  *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var ErrNoEngineFactory = errors.New("bootstrap: no engine factory")

// BuildScene populates a new scene on surface: clear color, light, camera,
// ground, then physics, the ground impostor and the dynamic box. When the
// physics backend is missing it stops after the ground and returns the
// scene without error.
func BuildScene(surface scene.Surface, cfg *config.Config, opts Options) (_ scene.Engine, _ *scene.Scene, err error) {
	log := opts.logger()
	if surface == nil {
		log.Error("drawing surface not found; aborting initialization", "id", cfg.SurfaceID)
		return nil, nil, scene.ErrNoSurface
	}
	if opts.NewEngine == nil {
		return nil, nil, ErrNoEngineFactory
	}

	engine, err := opts.NewEngine(surface)
	if err != nil {
		return nil, nil, fmt.Errorf("create engine on %q: %w", surface.ID(), err)
	}
	defer func() {
		if err != nil {
			_ = engine.Close()
		}
	}()

	sc := scene.NewScene(engine)
	sc.ClearColor = color(cfg.ClearColor)

	light := scene.NewHemisphericLight(cfg.Light.Name, vec(cfg.Light.Direction), sc)
	light.Intensity = cfg.Light.Intensity

	cc := cfg.Camera
	camera := scene.NewArcRotateCamera(cc.Name, cc.Alpha, cc.Beta, cc.Radius, vec(cc.Target), sc)
	if cc.AttachControl {
		camera.AttachControl(surface)
	}

	gc := cfg.Ground
	ground, err := scene.CreateGround(gc.Name, scene.GroundOptions{Width: gc.Width, Height: gc.Height}, sc)
	if err != nil {
		return nil, nil, err
	}
	groundMat := scene.NewStandardMaterial(gc.Name+"Mat", sc)
	groundMat.DiffuseColor = color(gc.Color)
	ground.Material = groundMat

	plugin, ok := probe(opts.Physics, cfg.Physics.Backend)
	if !ok {
		log.Error("physics backend not available; continuing without physics",
			"backend", cfg.Physics.Backend)
		return engine, sc, nil
	}
	if err := sc.EnablePhysics(vec(cfg.Physics.Gravity), plugin); err != nil {
		return nil, nil, err
	}

	if _, err := scene.NewImpostor(ground, scene.BoxImpostor, scene.ImpostorParams{
		Mass:        0,
		Friction:    gc.Friction,
		Restitution: gc.Restitution,
	}, sc); err != nil {
		return nil, nil, err
	}

	bc := cfg.Box
	box, err := scene.CreateBox(bc.Name, scene.BoxOptions{Width: bc.Width, Height: bc.Height, Depth: bc.Depth}, sc)
	if err != nil {
		return nil, nil, err
	}
	box.Position = vec(bc.Position)
	boxMat := scene.NewStandardMaterial(bc.Name+"Mat", sc)
	boxMat.DiffuseColor = color(bc.Color)
	box.Material = boxMat

	if _, err := scene.NewImpostor(box, scene.BoxImpostor, scene.ImpostorParams{
		Mass:        bc.Mass,
		Friction:    bc.Friction,
		Restitution: bc.Restitution,
	}, sc); err != nil {
		return nil, nil, err
	}

	log.Info("scene ready",
		"surface", surface.ID(),
		"physics", plugin.Name(),
		"meshes", len(sc.Meshes()),
		"materials", len(sc.Materials()))
	return engine, sc, nil
}

// Boot resolves cfg.SurfaceID in doc and builds the scene on it. On a
// missing surface it returns an Aborted driver together with the error.
func Boot(doc Document, cfg *config.Config, opts Options) (*Driver, error) {
	log := opts.logger()

	var surface scene.Surface
	if doc != nil {
		surface = doc.Lookup(cfg.SurfaceID)
	}
	if surface == nil {
		log.Error("drawing surface not found; render loop not started", "id", cfg.SurfaceID)
		return &Driver{phase: Aborted, log: log}, fmt.Errorf("%w: %q", scene.ErrNoSurface, cfg.SurfaceID)
	}

	engine, sc, err := BuildScene(surface, cfg, opts)
	if err != nil {
		return &Driver{phase: Aborted, log: log}, err
	}
	return NewDriver(engine, sc, log), nil
}

func probe(p physics.Probe, backend string) (scene.PhysicsEngine, bool) {
	if p == nil {
		return nil, false
	}
	return p.Lookup(backend)
}

func vec(v config.Vec3) scene.Vec3      { return scene.V(v[0], v[1], v[2]) }
func color(c config.Color) scene.Color3 { return scene.RGB(c[0], c[1], c[2]) }
