package sim_test

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/log"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/dynviz/internal/config"
	"github.com/san-kum/dynviz/internal/dynamo"
	"github.com/san-kum/dynviz/internal/scene"
	"github.com/san-kum/dynviz/internal/sim"
	"github.com/san-kum/dynviz/internal/surface"
	"github.com/san-kum/dynviz/internal/surface/surfacetest"
)

type countingScene struct {
	advances int
	draws    int
	events   []surface.Event
	failAt   int
}

func (c *countingScene) Advance() error {
	c.advances++
	if c.failAt > 0 && c.advances == c.failAt {
		return dynamo.ErrNumericDegeneracy
	}
	return nil
}

func (c *countingScene) Draw(s surface.Surface) {
	c.draws++
	s.Clear()
}

func (c *countingScene) HandleEvent(ev surface.Event) { c.events = append(c.events, ev) }
func (c *countingScene) Time() float64                { return float64(c.advances) }
func (c *countingScene) States() []dynamo.State       { return []dynamo.State{{float64(c.advances)}} }

var quietLogger = log.New(io.Discard)

var _ = Describe("Loop", func() {
	var (
		sc  *countingScene
		rec *surfacetest.Recorder
	)

	BeforeEach(func() {
		sc = &countingScene{}
	})

	newLoop := func(opts ...sim.Option) *sim.Loop {
		return sim.New(rec, sc, 5, append([]sim.Option{sim.WithLogger(quietLogger)}, opts...)...)
	}

	It("starts RUNNING", func() {
		rec = surfacetest.New()
		Expect(newLoop().Phase()).To(Equal(sim.Running))
		Expect(sim.Stopped.String()).To(Equal("STOPPED"))
	})

	It("advances, draws, presents and delays once per step", func() {
		rec = surfacetest.New()
		loop := newLoop()

		Expect(loop.Step()).To(BeTrue())
		Expect(loop.Step()).To(BeTrue())

		Expect(sc.advances).To(Equal(2))
		Expect(sc.draws).To(Equal(2))
		Expect(rec.Presents).To(Equal(2))
		Expect(rec.Delays).To(Equal([]int{5, 5}))
		Expect(rec.Polls).To(Equal(2))
		Expect(loop.Frame()).To(Equal(2))
	})

	It("performs no integration or drawing in the iteration that sees Quit", func() {
		rec = surfacetest.New(nil, []surface.Event{surface.Quit()})
		loop := newLoop()

		Expect(loop.Step()).To(BeTrue())
		Expect(loop.Step()).To(BeFalse())

		Expect(loop.Phase()).To(Equal(sim.Stopped))
		Expect(sc.advances).To(Equal(1))
		Expect(sc.draws).To(Equal(1))
		Expect(rec.Presents).To(Equal(1))
		Expect(rec.Delays).To(HaveLen(1))
	})

	It("stays STOPPED once stopped", func() {
		rec = surfacetest.New([]surface.Event{surface.Quit()})
		loop := newLoop()

		Expect(loop.Step()).To(BeFalse())
		Expect(loop.Step()).To(BeFalse())
		Expect(sc.advances).To(BeZero())
		Expect(loop.Phase()).To(Equal(sim.Stopped))
	})

	It("forwards pointer and key events to the scene before advancing", func() {
		rec = surfacetest.New([]surface.Event{surface.PointerDown(3, 4), surface.KeyDown("c")})
		loop := newLoop()

		Expect(loop.Step()).To(BeTrue())
		Expect(sc.events).To(Equal([]surface.Event{surface.PointerDown(3, 4), surface.KeyDown("c")}))
		Expect(rec.Polls).To(Equal(3), "the queue is drained until empty")
	})

	It("ignores events queued behind Quit", func() {
		rec = surfacetest.New([]surface.Event{surface.Quit(), surface.PointerDown(1, 1)})
		loop := newLoop()

		Expect(loop.Step()).To(BeFalse())
		Expect(sc.events).To(BeEmpty())
	})

	It("stops and reports the scene error", func() {
		rec = surfacetest.New()
		sc.failAt = 3
		loop := newLoop()

		err := loop.Run(context.Background())
		Expect(err).To(MatchError(dynamo.ErrNumericDegeneracy))
		Expect(loop.Err()).To(MatchError(dynamo.ErrNumericDegeneracy))
		Expect(loop.Phase()).To(Equal(sim.Stopped))
		Expect(sc.draws).To(Equal(2))
	})

	It("honours the frame limit", func() {
		rec = surfacetest.New()
		loop := newLoop(sim.WithMaxFrames(4))

		Expect(loop.Run(context.Background())).To(Succeed())
		Expect(loop.Frame()).To(Equal(4))
		Expect(sc.advances).To(Equal(4))
	})

	It("stops when the context is cancelled", func() {
		rec = surfacetest.New()
		loop := newLoop()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		Expect(loop.Run(ctx)).To(MatchError(context.Canceled))
		Expect(loop.Phase()).To(Equal(sim.Stopped))
		Expect(sc.advances).To(BeZero())
	})

	It("calls observers after each advanced frame", func() {
		rec = surfacetest.New()
		var frames []int
		var seen []float64
		obs := sim.ObserverFunc(func(frame int, t float64, states []dynamo.State) {
			frames = append(frames, frame)
			seen = append(seen, states[0][0])
		})
		loop := newLoop(sim.WithObserver(obs), sim.WithMaxFrames(3))

		Expect(loop.Run(context.Background())).To(Succeed())
		Expect(frames).To(Equal([]int{0, 1, 2}))
		Expect(seen).To(Equal([]float64{1, 2, 3}))
	})

	It("can be stopped explicitly", func() {
		rec = surfacetest.New()
		loop := newLoop()
		loop.Stop()
		Expect(loop.Step()).To(BeFalse())
		Expect(sc.advances).To(BeZero())
	})
})

var _ = Describe("Headless", func() {
	It("advances without a surface", func() {
		sc := &countingScene{}
		count := 0
		err := sim.Headless(context.Background(), sc, 10, sim.ObserverFunc(func(int, float64, []dynamo.State) { count++ }))
		Expect(err).NotTo(HaveOccurred())
		Expect(sc.advances).To(Equal(10))
		Expect(sc.draws).To(BeZero())
		Expect(count).To(Equal(10))
	})

	It("returns the first scene error", func() {
		sc := &countingScene{failAt: 2}
		err := sim.Headless(context.Background(), sc, 10)
		Expect(errors.Is(err, dynamo.ErrNumericDegeneracy)).To(BeTrue())
		Expect(sc.advances).To(Equal(2))
	})

	It("runs independent scenes concurrently with identical results", func() {
		a := scene.NewPendulum(config.DefaultPendulum())
		b := scene.NewPendulum(config.DefaultPendulum())

		err := sim.HeadlessAll(context.Background(), 200, sim.Job{Scene: a}, sim.Job{Scene: b})
		Expect(err).NotTo(HaveOccurred())
		Expect(a.State()).To(Equal(b.State()))
		Expect(a.Time()).To(BeNumerically("~", 2.0, 1e-9))
	})

	It("drives the real attractor scene through a loop", func() {
		a, err := scene.NewAttractor(config.DefaultLorenz())
		Expect(err).NotTo(HaveOccurred())
		rec := surfacetest.New()
		loop := sim.New(rec, a, 10, sim.WithLogger(quietLogger), sim.WithMaxFrames(2))

		Expect(loop.Run(context.Background())).To(Succeed())
		Expect(rec.Ops("clear")).To(HaveLen(2))
		Expect(rec.Ops("point")).NotTo(BeEmpty())

		rec.Reset()
		a.HandleEvent(surface.KeyDown("c"))
		a.Draw(rec)
		Expect(rec.Presents).To(BeZero())
		Expect(rec.Ops("clear")).To(HaveLen(1))
		Expect(rec.Ops("point")).To(BeEmpty(), "cleared trails draw nothing")
	})
})
