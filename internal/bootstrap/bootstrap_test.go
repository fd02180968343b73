package bootstrap_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/boxdrop/internal/bootstrap"
	"github.com/san-kum/boxdrop/internal/config"
	"github.com/san-kum/boxdrop/internal/physics"
	"github.com/san-kum/boxdrop/internal/scene"
)

var _ = Describe("BuildScene", func() {
	var (
		cfg     *config.Config
		surface *fakeSurface
		rec     *engineRecorder
		logs    *bytes.Buffer
		opts    bootstrap.Options
	)

	BeforeEach(func() {
		cfg = config.DefaultConfig()
		surface = &fakeSurface{id: cfg.SurfaceID, w: 800, h: 600}
		rec = &engineRecorder{}
		logs = &bytes.Buffer{}
		opts = bootstrap.Options{
			NewEngine: rec.New,
			Physics:   physics.Default("rk4", 4),
			Logger:    slog.New(slog.NewTextHandler(logs, nil)),
		}
	})

	Context("with a surface and an available physics backend", func() {
		It("builds one light, one camera, the ground and the box with physics enabled", func() {
			engine, sc, err := bootstrap.BuildScene(surface, cfg, opts)
			Expect(err).NotTo(HaveOccurred())
			Expect(engine).To(BeIdenticalTo(rec.engines[0]))

			Expect(sc.Lights()).To(HaveLen(1))
			Expect(sc.Cameras()).To(HaveLen(1))
			Expect(sc.Meshes()).To(HaveLen(2))
			Expect(sc.PhysicsEnabled()).To(BeTrue())
			Expect(sc.Gravity()).To(Equal(scene.V(0, -9.81, 0)))
		})

		It("applies the configured constants", func() {
			_, sc, err := bootstrap.BuildScene(surface, cfg, opts)
			Expect(err).NotTo(HaveOccurred())

			Expect(sc.ClearColor).To(Equal(scene.RGB(0.1, 0.1, 0.2)))
			Expect(sc.Lights()[0].Intensity).To(Equal(0.7))
			Expect(sc.Lights()[0].Direction).To(Equal(scene.V(0, 1, 0)))

			cam := sc.ActiveCamera()
			Expect(cam.Radius).To(Equal(50.0))
			Expect(cam.Target).To(Equal(scene.Zero()))
			Expect(cam.ControlsAttached()).To(BeTrue())

			ground := sc.Mesh("ground")
			Expect(ground.Size).To(Equal(scene.V(100, 0, 100)))
			Expect(ground.Color()).To(Equal(scene.RGB(0.1, 0.5, 0.1)))

			box := sc.Mesh("carBody")
			Expect(box.Size).To(Equal(scene.V(2, 1, 4)))
			Expect(box.Position).To(Equal(scene.V(0, 1, 0)))
			Expect(box.Impostor.Params).To(Equal(scene.ImpostorParams{Mass: 10, Friction: 0.5, Restitution: 0.2}))
		})

		It("keeps the ground static and the box dynamic", func() {
			for _, name := range config.ListPresets() {
				_, sc, err := bootstrap.BuildScene(surface, config.GetPreset(name), opts)
				Expect(err).NotTo(HaveOccurred(), name)

				ground := sc.Mesh("ground").Impostor
				Expect(ground).NotTo(BeNil())
				Expect(ground.Params.Mass).To(BeZero())
				Expect(ground.Params.Restitution).To(Equal(cfg.Ground.Restitution))
				Expect(sc.Mesh("carBody").Impostor.Params.Mass).To(BeNumerically(">", 0))
			}
		})

		It("drops the box onto the ground when rendered", func() {
			_, sc, err := bootstrap.BuildScene(surface, cfg, opts)
			Expect(err).NotTo(HaveOccurred())

			for i := 0; i < 180; i++ {
				Expect(sc.Render(1.0 / 60)).To(Succeed())
			}
			Expect(sc.Mesh("carBody").Position.Y).To(BeNumerically("~", 0.5, 1e-6))
			Expect(rec.engines[0].draws).To(Equal(180))
		})
	})

	Context("without a physics backend", func() {
		BeforeEach(func() {
			opts.Physics = physics.NewRegistry()
		})

		It("returns a physics-less scene with light, camera and ground and no fault", func() {
			_, sc, err := bootstrap.BuildScene(surface, cfg, opts)
			Expect(err).NotTo(HaveOccurred())

			Expect(sc.Lights()).To(HaveLen(1))
			Expect(sc.Cameras()).To(HaveLen(1))
			Expect(sc.Mesh("ground")).NotTo(BeNil())
			Expect(sc.PhysicsEnabled()).To(BeFalse())
			Expect(sc.Impostors()).To(BeEmpty())
			Expect(sc.Mesh("carBody")).To(BeNil())
			Expect(logs.String()).To(ContainSubstring("physics backend not available"))
		})

		It("treats a nil probe the same way", func() {
			opts.Physics = nil
			_, sc, err := bootstrap.BuildScene(surface, cfg, opts)
			Expect(err).NotTo(HaveOccurred())
			Expect(sc.PhysicsEnabled()).To(BeFalse())
		})

		It("still renders", func() {
			_, sc, err := bootstrap.BuildScene(surface, cfg, opts)
			Expect(err).NotTo(HaveOccurred())
			Expect(sc.Render(1.0 / 60)).To(Succeed())
		})
	})

	Context("without a surface", func() {
		It("fails before constructing anything", func() {
			engine, sc, err := bootstrap.BuildScene(nil, cfg, opts)
			Expect(err).To(MatchError(scene.ErrNoSurface))
			Expect(engine).To(BeNil())
			Expect(sc).To(BeNil())
			Expect(rec.engines).To(BeEmpty())
			Expect(logs.String()).To(ContainSubstring("drawing surface not found"))
		})
	})

	Context("when a later step fails", func() {
		It("propagates impostor failures and closes the engine", func() {
			opts.Physics = staticProbe{plugin: failingPhysics{}}
			_, sc, err := bootstrap.BuildScene(surface, cfg, opts)
			Expect(err).To(MatchError(ContainSubstring("attach refused")))
			Expect(sc).To(BeNil())
			Expect(rec.engines[0].closed).To(BeTrue())
		})

		It("propagates engine construction failures", func() {
			rec.err = errors.New("no GL context")
			_, _, err := bootstrap.BuildScene(surface, cfg, opts)
			Expect(err).To(MatchError(ContainSubstring("no GL context")))
		})

		It("rejects a missing engine factory", func() {
			opts.NewEngine = nil
			_, _, err := bootstrap.BuildScene(surface, cfg, opts)
			Expect(err).To(MatchError(bootstrap.ErrNoEngineFactory))
		})
	})
})

var _ = Describe("Boot", func() {
	var (
		cfg  *config.Config
		rec  *engineRecorder
		opts bootstrap.Options
	)

	BeforeEach(func() {
		cfg = config.DefaultConfig()
		rec = &engineRecorder{ticks: 5}
		opts = bootstrap.Options{NewEngine: rec.New, Physics: physics.Default("rk4", 4)}
	})

	It("resolves the surface by its fixed id and starts running", func() {
		doc := fakeDocument{"renderCanvas": {id: "renderCanvas", w: 640, h: 480}}
		d, err := bootstrap.Boot(doc, cfg, opts)
		Expect(err).NotTo(HaveOccurred())
		Expect(d.Phase()).To(Equal(bootstrap.Running))

		Expect(d.Run(context.Background())).To(Succeed())
		Expect(d.Frames()).To(Equal(5))
		Expect(rec.engines[0].resizes).To(HaveLen(1))
	})

	It("aborts without constructing anything when the surface is missing", func() {
		doc := fakeDocument{"otherCanvas": {id: "otherCanvas"}}
		d, err := bootstrap.Boot(doc, cfg, opts)
		Expect(err).To(MatchError(scene.ErrNoSurface))
		Expect(d.Phase()).To(Equal(bootstrap.Aborted))
		Expect(d.Scene()).To(BeNil())
		Expect(rec.engines).To(BeEmpty())

		Expect(d.Run(context.Background())).To(MatchError(bootstrap.ErrNotRunning))
	})

	It("aborts on a nil document", func() {
		d, err := bootstrap.Boot(nil, cfg, opts)
		Expect(err).To(MatchError(scene.ErrNoSurface))
		Expect(d.Phase()).To(Equal(bootstrap.Aborted))
	})
})
