package sim_test

import (
	"context"
	"errors"
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/neoaces/arm/internal/arm"
	"github.com/neoaces/arm/internal/control"
	"github.com/neoaces/arm/internal/dynamo"
	"github.com/neoaces/arm/internal/motor"
	"github.com/neoaces/arm/internal/sim"
)

func newArm() *arm.Arm {
	a, err := arm.New(dynamo.Vec2{}, motor.Default(), 32, 0.5, 0.2)
	Expect(err).NotTo(HaveOccurred())
	return a
}

type countMetric struct{ n int }

func (c *countMetric) Name() string         { return "count" }
func (c *countMetric) Observe(sim.Snapshot) { c.n++ }
func (c *countMetric) Value() float64       { return float64(c.n) }
func (c *countMetric) Reset()               { c.n = 0 }

var _ = Describe("Run", func() {
	It("records one state per step plus the initial state", func() {
		m := &countMetric{}
		res, err := sim.Run(context.Background(), newArm(), control.Constant(10), sim.Config{Dt: 0.01, Duration: 1}, m)
		Expect(err).NotTo(HaveOccurred())

		Expect(res.StepsTaken).To(Equal(100))
		Expect(res.Times).To(HaveLen(101))
		Expect(res.States).To(HaveLen(101))
		Expect(res.Controls).To(HaveLen(100))
		Expect(res.Times[100]).To(BeNumerically("~", 1, 1e-4))
		Expect(res.Metrics).To(HaveKeyWithValue("count", 100.0))
		Expect(res.States[100][1]).To(BeNumerically(">", 0))
		Expect(res.Final.Couples[0].Velocity).To(BeNumerically("~", res.States[100][1], 1e-6))
	})

	It("follows a step profile", func() {
		res, err := sim.Run(context.Background(), newArm(), control.Step{Before: 0, After: 5, At: 0.5}, sim.Config{Dt: 0.05, Duration: 1})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Controls[0][0]).To(BeZero())
		Expect(res.Controls[len(res.Controls)-1][0]).To(Equal(5.0))
		Expect(res.States[5][1]).To(BeZero())
	})

	DescribeTable("rejects an invalid config",
		func(cfg sim.Config) {
			_, err := sim.Run(context.Background(), newArm(), control.Constant(1), cfg)
			Expect(err).To(HaveOccurred())
		},
		Entry("NaN duration", sim.Config{Dt: 0.01, Duration: math.NaN()}),
		Entry("infinite duration", sim.Config{Dt: 0.01, Duration: math.Inf(1)}),
		Entry("zero dt", sim.Config{Dt: 0, Duration: 1}),
		Entry("negative dt", sim.Config{Dt: -0.1, Duration: 1}),
		Entry("zero duration", sim.Config{Dt: 0.1, Duration: 0}),
	)

	It("stops when the context is cancelled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		res, err := sim.Run(ctx, newArm(), control.Constant(1), sim.Config{Dt: 0.01, Duration: 1})
		Expect(errors.Is(err, context.Canceled)).To(BeTrue())
		Expect(res.StepsTaken).To(BeZero())
	})

	It("appends results on a continuous clock", func() {
		a := newArm()
		r1, err := sim.Run(context.Background(), a, control.Constant(1), sim.Config{Dt: 0.1, Duration: 0.5})
		Expect(err).NotTo(HaveOccurred())
		r2, err := sim.Run(context.Background(), a, control.Constant(2), sim.Config{Dt: 0.1, Duration: 0.5})
		Expect(err).NotTo(HaveOccurred())

		r1.Append(r2)
		Expect(r1.Times).To(HaveLen(11))
		Expect(r1.Times[10]).To(BeNumerically("~", 1, 1e-5))
		Expect(r1.StepsTaken).To(Equal(10))
		Expect(r1.Controls).To(HaveLen(10))
	})
})

var _ = Describe("Snapshot", func() {
	It("flattens angle and velocity per couple", func() {
		s := sim.Snapshot{Couples: []arm.CoupleState{{Angle: 1, Velocity: 2}, {Angle: 3, Velocity: 4}}}
		Expect(s.State()).To(Equal([]float64{1, 2, 3, 4}))
	})
})

var _ = Describe("Engine", func() {
	var (
		panel  *control.Panel
		engine *sim.Engine
	)

	BeforeEach(func() {
		panel = control.NewPanel(control.Settings{Current: 10, Length: 0.2, Mass: 0.5, TimeScale: 1}, control.DefaultLimits())
		engine = sim.NewEngine(newArm(), panel, sim.WithScale(100))
	})

	It("advances by the scaled elapsed time", func() {
		snap, err := engine.Frame(20 * time.Millisecond)
		Expect(err).NotTo(HaveOccurred())
		Expect(snap.Time).To(BeNumerically("~", 0.02, 1e-9))
		Expect(snap.Couples[0].Velocity).To(BeNumerically(">", 0))
		Expect(snap.Current).To(Equal([]float32{10}))
		Expect(snap.Segments[0].End.X).To(BeNumerically(">", 0))
	})

	It("does not advance at zero time scale", func() {
		panel.Update(func(s *control.Settings) { s.TimeScale = 0 })
		snap, err := engine.Frame(time.Second)
		Expect(err).NotTo(HaveOccurred())
		Expect(snap.Couples[0].Velocity).To(BeZero())
	})

	It("applies length and mass to the selected link", func() {
		panel.Update(func(s *control.Settings) {
			s.Length = 0.3
			s.Mass = 1
		})
		snap, err := engine.Frame(0)
		Expect(err).NotTo(HaveOccurred())
		Expect(snap.Couples[0].Length).To(Equal(float32(0.3)))
		Expect(snap.Couples[0].Mass).To(Equal(float32(1)))
	})

	It("keeps a configured size the panel limits would clamp", func() {
		long, err := arm.New(dynamo.Vec2{}, motor.Default(), 32, 0.5, 0.8)
		Expect(err).NotTo(HaveOccurred())
		p := control.NewPanel(control.Settings{Current: 10, Length: 0.8, Mass: 0.5, TimeScale: 1}, control.DefaultLimits())
		Expect(p.Snapshot().Length).To(Equal(float32(0.4)))

		e := sim.NewEngine(long, p)
		snap, err := e.Frame(20 * time.Millisecond)
		Expect(err).NotTo(HaveOccurred())
		Expect(snap.Couples[0].Length).To(Equal(float32(0.8)))

		p.Update(func(s *control.Settings) { s.Length = 0.3 })
		snap, err = e.Frame(0)
		Expect(err).NotTo(HaveOccurred())
		Expect(snap.Couples[0].Length).To(Equal(float32(0.3)))
	})

	It("rolls back a length edit when the advance fails", func() {
		panel.Update(func(s *control.Settings) {
			s.Length = 0.3
			s.Mass = 1
		})
		snap, err := engine.Frame(-time.Second)
		Expect(err).To(MatchError(dynamo.ErrInvalidTimestep))
		Expect(snap.Couples[0].Length).To(Equal(float32(0.2)))
		Expect(snap.Couples[0].Mass).To(Equal(float32(0.5)))

		snap, err = engine.Frame(0)
		Expect(err).NotTo(HaveOccurred())
		Expect(snap.Couples[0].Length).To(Equal(float32(0.3)))
		Expect(snap.Couples[0].Mass).To(Equal(float32(1)))
	})

	It("skips the frame when the selected link does not exist", func() {
		panel.Update(func(s *control.Settings) { s.Link = 3 })
		snap, err := engine.Frame(20 * time.Millisecond)
		Expect(err).To(MatchError(dynamo.ErrLinkNotFound))
		Expect(snap.Couples[0].Velocity).To(BeZero())
	})

	It("adds links sized from the panel and resets", func() {
		panel.Update(func(s *control.Settings) { s.Length = 0.35 })
		Expect(engine.AddLink(32)).To(Succeed())
		Expect(engine.Len()).To(Equal(2))
		Expect(engine.Snapshot().Couples[1].Length).To(Equal(float32(0.35)))

		_, err := engine.Frame(50 * time.Millisecond)
		Expect(err).NotTo(HaveOccurred())
		engine.Reset()
		snap := engine.Snapshot()
		Expect(snap.Time).To(BeZero())
		for _, c := range snap.Couples {
			Expect(c.Velocity).To(BeZero())
		}
	})
})

var _ = Describe("Loop", func() {
	It("publishes snapshots until cancelled", func() {
		panel := control.NewPanel(control.Settings{Current: 10, Length: 0.2, Mass: 0.5, TimeScale: 1}, control.DefaultLimits())
		loop := sim.NewLoop(sim.NewEngine(newArm(), panel), 200)
		Expect(loop.Hz()).To(Equal(200))

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- loop.Start(ctx) }()

		var snap sim.Snapshot
		Eventually(loop.Snapshots(), time.Second).Should(Receive(&snap))
		Eventually(func() float32 {
			select {
			case snap = <-loop.Snapshots():
			default:
			}
			return snap.Couples[0].Velocity
		}, time.Second).Should(BeNumerically(">", 0))

		cancel()
		Eventually(done, time.Second).Should(Receive(MatchError(context.Canceled)))
	})

	It("holds still while paused", func() {
		panel := control.NewPanel(control.Settings{Current: 10, Length: 0.2, Mass: 0.5, TimeScale: 1}, control.DefaultLimits())
		engine := sim.NewEngine(newArm(), panel)
		loop := sim.NewLoop(engine, 200, sim.WithPause(func() bool { return true }))

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		Expect(loop.Start(ctx)).To(MatchError(context.DeadlineExceeded))
		Expect(engine.Snapshot().Couples[0].Velocity).To(BeZero())
	})
})
