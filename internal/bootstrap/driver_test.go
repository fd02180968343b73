package bootstrap_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/boxdrop/internal/bootstrap"
	"github.com/san-kum/boxdrop/internal/scene"
)

var _ = Describe("Driver", func() {
	It("starts uninitialized without a scene", func() {
		d := bootstrap.NewDriver(nil, nil, nil)
		Expect(d.Phase()).To(Equal(bootstrap.Uninitialized))
		Expect(d.Phase().String()).To(Equal("uninitialized"))
	})

	It("treats a frame before a scene exists as a no-op", func() {
		d := bootstrap.NewDriver(nil, nil, nil)
		Expect(d.Frame(1.0 / 60)).To(Succeed())
		Expect(d.Frames()).To(BeZero())

		var nilDriver *bootstrap.Driver
		Expect(nilDriver.Frame(1.0 / 60)).To(Succeed())
	})

	It("forwards each resize exactly once, whatever the dimensions", func() {
		engine := &fakeEngine{}
		d := bootstrap.NewDriver(engine, scene.NewScene(engine), nil)

		dims := []resize{{800, 600}, {0, 0}, {-1, 5}, {1 << 16, 1}}
		for _, r := range dims {
			Expect(func() { d.Resize(r.w, r.h) }).NotTo(Panic())
		}
		Expect(engine.resizes).To(Equal(dims))
	})

	It("ignores resizes without an engine", func() {
		d := bootstrap.NewDriver(nil, nil, nil)
		Expect(func() { d.Resize(10, 10) }).NotTo(Panic())
	})

	It("renders the scene on every frame", func() {
		engine := &fakeEngine{}
		sc := scene.NewScene(engine)
		d := bootstrap.NewDriver(engine, sc, nil)
		Expect(d.Phase()).To(Equal(bootstrap.Running))

		for i := 0; i < 3; i++ {
			Expect(d.Frame(0.5)).To(Succeed())
		}
		Expect(engine.draws).To(Equal(3))
		Expect(d.Frames()).To(Equal(3))
		Expect(sc.Elapsed()).To(BeNumerically("~", 1.5, 1e-12))
	})

	It("stops the loop when the context is canceled", func() {
		engine := &fakeEngine{ticks: 100}
		d := bootstrap.NewDriver(engine, scene.NewScene(engine), nil)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		Expect(d.Run(ctx)).To(Succeed())
		Expect(d.Frames()).To(BeZero())
	})

	It("closes its engine", func() {
		engine := &fakeEngine{}
		d := bootstrap.NewDriver(engine, scene.NewScene(engine), nil)
		Expect(d.Close()).To(Succeed())
		Expect(engine.closed).To(BeTrue())
	})
})
