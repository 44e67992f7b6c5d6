package arm_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/neoaces/arm/internal/arm"
	"github.com/neoaces/arm/internal/dynamo"
	"github.com/neoaces/arm/internal/integrators"
	"github.com/neoaces/arm/internal/motor"
)

// referenceRK4 is one float64 RK4 step of the NEO550 model, computed apart
// from the float32 engine.
func referenceRK4(v0, u, ratio, mass, length, dt float64) float64 {
	const kt, kv, r = 0.0097, 917.0, 0.12
	j := mass * length * length / 3
	f := func(v float64) float64 {
		return -(ratio*ratio*kt*v)/(kv*r*j) + (u*ratio*kt)/j
	}
	k1 := f(v0)
	k2 := f(v0 + dt/2*k1)
	k3 := f(v0 + dt/2*k2)
	k4 := f(v0 + dt*k3)
	return v0 + dt/6*(k1+2*k2+2*k3+k4)
}

func newArm(opts ...arm.Option) *arm.Arm {
	a, err := arm.New(dynamo.Vec2{}, motor.Default(), 32, 0.05, 0.2, opts...)
	Expect(err).NotTo(HaveOccurred())
	return a
}

var _ = Describe("Arm", func() {
	Describe("construction", func() {
		It("rejects a non-positive mass", func() {
			_, err := arm.New(dynamo.Vec2{}, motor.Default(), 32, 0, 0.2)
			Expect(err).To(MatchError(dynamo.ErrInvalidMass))
		})

		It("rejects a non-positive ratio", func() {
			_, err := arm.New(dynamo.Vec2{}, motor.Default(), -1, 0.05, 0.2)
			Expect(err).To(MatchError(dynamo.ErrInvalidRatio))
		})

		It("rejects an invalid motor", func() {
			bad := motor.Default()
			bad.R = 0
			_, err := arm.New(dynamo.Vec2{}, bad, 32, 0.05, 0.2)
			Expect(err).To(MatchError(dynamo.ErrInvalidMotor))
		})

		It("rejects unknown timestep and chain modes", func() {
			_, err := arm.New(dynamo.Vec2{}, motor.Default(), 32, 0.05, 0.2, arm.WithTimestepMode("x"))
			Expect(err).To(MatchError(ContainSubstring("unknown timestep mode")))
			_, err = arm.New(dynamo.Vec2{}, motor.Default(), 32, 0.05, 0.2, arm.WithChainMode("loop"))
			Expect(err).To(MatchError(ContainSubstring("unknown chain mode")))
		})

		It("keeps the default integrator when given nil", func() {
			a := newArm(arm.WithIntegrator(nil))
			Expect(a.Advance(10, 0.01)).To(Succeed())
			s, _ := a.Couple(0)
			Expect(s.Velocity).To(BeNumerically("~", referenceRK4(0, 10, 32, 0.05, 0.2, 0.01), 1e-2))
		})

		It("starts at rest with one couple", func() {
			a := newArm()
			Expect(a.Len()).To(Equal(1))
			s, err := a.Couple(0)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Velocity).To(BeZero())
			Expect(s.Angle).To(BeZero())
			Expect(s.Moment).To(BeNumerically("~", 0.0006667, 1e-6))
		})
	})

	Describe("Advance", func() {
		It("keeps a resting arm at rest under zero current", func() {
			a := newArm()
			for _, dt := range []float32{0, 0.001, 0.01, 0.5, 3} {
				Expect(a.Advance(0, dt)).To(Succeed())
				s, _ := a.Couple(0)
				Expect(s.Velocity).To(BeZero())
				Expect(s.Angle).To(BeZero())
			}
		})

		It("is a no-op for zero current over zero time from any state", func() {
			a := newArm()
			Expect(a.AddLink(0.1, 0.3, 16)).To(Succeed())
			Expect(a.AdvanceEach([]float32{10, -4}, 0.01)).To(Succeed())
			Expect(a.Advance(3, 0.02)).To(Succeed())

			before := a.States()
			Expect(a.Advance(0, 0)).To(Succeed())
			after := a.States()

			for i := range before {
				Expect(after[i].Velocity).To(Equal(before[i].Velocity))
				Expect(after[i].Angle).To(Equal(before[i].Angle))
			}
		})

		It("matches a float64 reference step for the single-couple scenario", func() {
			a := newArm()
			Expect(a.Advance(10, 0.01)).To(Succeed())

			want := referenceRK4(0, 10, 32, 0.05, 0.2, 0.01)
			s, _ := a.Couple(0)

			Expect(s.Velocity).To(BeNumerically(">", 0))
			Expect(s.Angle).To(BeNumerically(">", 0))
			Expect(float64(s.Velocity)).To(BeNumerically("~", want, 1e-4*want))
			Expect(float64(s.Angle)).To(BeNumerically("~", want*0.01, 1e-4*want*0.01))
			Expect(s.Current).To(Equal(float32(10)))
		})

		It("approaches the steady velocity under constant current", func() {
			a := newArm()
			for range 200 {
				Expect(a.Advance(10, 0.01)).To(Succeed())
			}
			s, _ := a.Couple(0)
			steady := motor.Default().SteadyVelocity(10, 32)
			Expect(s.Velocity).To(BeNumerically("~", steady, 1e-3*steady))
		})

		It("drives negative current the other way", func() {
			a := newArm()
			Expect(a.Advance(-10, 0.01)).To(Succeed())
			s, _ := a.Couple(0)
			Expect(s.Velocity).To(BeNumerically("<", 0))
			Expect(s.Angle).To(BeNumerically("<", 0))
		})

		It("rejects a negative or non-finite timestep", func() {
			a := newArm()
			Expect(a.Advance(1, -0.01)).To(MatchError(dynamo.ErrInvalidTimestep))
			Expect(a.Advance(1, float32(math.NaN()))).To(MatchError(dynamo.ErrInvalidTimestep))
		})

		It("rejects a non-finite current", func() {
			a := newArm()
			Expect(a.Advance(float32(math.Inf(1)), 0.01)).To(MatchError(dynamo.ErrNonFinite))
		})

		It("leaves every couple untouched when a step diverges", func() {
			a := newArm(arm.WithIntegrator(integrators.NewEuler[float32]()))
			Expect(a.AddLink(0.05, 0.2, 32)).To(Succeed())
			Expect(a.Advance(1, 0.01)).To(Succeed())
			before := a.States()

			err := a.Advance(1e35, 1e6)
			Expect(err).To(MatchError(dynamo.ErrUnstable))
			Expect(a.States()).To(Equal(before))
		})
	})

	Describe("AdvanceEach", func() {
		It("drives each couple with its own current", func() {
			a := newArm()
			Expect(a.AddLink(0.05, 0.2, 32)).To(Succeed())
			Expect(a.AddLink(0.05, 0.2, 32)).To(Succeed())

			Expect(a.AdvanceEach([]float32{10, 0, -10}, 0.01)).To(Succeed())
			states := a.States()

			Expect(states[0].Velocity).To(BeNumerically(">", 0))
			Expect(states[1].Velocity).To(BeZero())
			Expect(states[2].Velocity).To(Equal(-states[0].Velocity))
			Expect(states[2].Current).To(Equal(float32(-10)))
		})

		It("broadcasts a single current", func() {
			a := newArm()
			Expect(a.AddLink(0.05, 0.2, 32)).To(Succeed())
			Expect(a.AdvanceEach([]float32{5}, 0.01)).To(Succeed())
			states := a.States()
			Expect(states[0].Velocity).To(Equal(states[1].Velocity))
		})

		It("rejects a mismatched control vector", func() {
			a := newArm()
			Expect(a.AdvanceEach([]float32{1, 2}, 0.01)).To(MatchError(dynamo.ErrControlMismatch))
			Expect(a.AdvanceEach(nil, 0.01)).To(MatchError(dynamo.ErrControlMismatch))
		})
	})

	Describe("timestep modes", func() {
		It("scales the integrated velocity by dt in legacy mode", func() {
			a := newArm(arm.WithTimestepMode(arm.TimestepLegacy))
			Expect(a.Advance(10, 0.01)).To(Succeed())

			want := referenceRK4(0, 10, 32, 0.05, 0.2, 0.01) * 0.01
			s, _ := a.Couple(0)
			Expect(float64(s.Velocity)).To(BeNumerically("~", want, 1e-4*want))
			Expect(float64(s.Angle)).To(BeNumerically("~", want*0.01, 1e-4*want*0.01))
		})

		It("loses velocity on a zero-length legacy step", func() {
			a := newArm(arm.WithTimestepMode(arm.TimestepLegacy))
			Expect(a.Advance(10, 0.01)).To(Succeed())
			Expect(a.Advance(0, 0)).To(Succeed())
			s, _ := a.Couple(0)
			Expect(s.Velocity).To(BeZero())
		})

		DescribeTable("parsing",
			func(in string, want arm.TimestepMode, ok bool) {
				got, err := arm.ParseTimestepMode(in)
				if !ok {
					Expect(err).To(HaveOccurred())
					return
				}
				Expect(err).NotTo(HaveOccurred())
				Expect(got).To(Equal(want))
			},
			Entry("single", "single", arm.TimestepSingle, true),
			Entry("legacy", "legacy", arm.TimestepLegacy, true),
			Entry("empty defaults to single", "", arm.TimestepSingle, true),
			Entry("unknown", "double", arm.TimestepMode(""), false),
		)
	})

	Describe("SetLinkLength", func() {
		It("rejects an out-of-range index and keeps every couple", func() {
			a := newArm()
			Expect(a.AddLink(0.1, 0.3, 16)).To(Succeed())
			Expect(a.Advance(5, 0.01)).To(Succeed())
			before := a.States()

			for _, idx := range []int{-1, 2, 100} {
				Expect(a.SetLinkLength(idx, 0.25)).To(MatchError(dynamo.ErrLinkNotFound))
				Expect(a.SetLinkMass(idx, 0.25)).To(MatchError(dynamo.ErrLinkNotFound))
			}
			Expect(a.States()).To(Equal(before))
		})

		It("rejects an invalid length and keeps the prior one", func() {
			a := newArm()
			Expect(a.SetLinkLength(0, -0.1)).To(MatchError(dynamo.ErrInvalidLength))
			s, _ := a.Couple(0)
			Expect(s.Length).To(Equal(float32(0.2)))
		})

		It("changes the moment used by the next step", func() {
			short := newArm()
			long := newArm()
			Expect(long.SetLinkLength(0, 0.4)).To(Succeed())

			Expect(short.Advance(10, 0.001)).To(Succeed())
			Expect(long.Advance(10, 0.001)).To(Succeed())

			s, _ := short.Couple(0)
			l, _ := long.Couple(0)
			Expect(l.Moment).To(BeNumerically("~", 4*s.Moment, 1e-7))
			Expect(l.Velocity).To(BeNumerically("<", s.Velocity))
		})

		It("changes mass the same way", func() {
			a := newArm()
			Expect(a.SetLinkMass(0, 0.1)).To(Succeed())
			s, _ := a.Couple(0)
			Expect(s.Mass).To(Equal(float32(0.1)))
			Expect(a.SetLinkMass(0, 0)).To(MatchError(dynamo.ErrInvalidMass))
		})
	})

	Describe("AddLink", func() {
		It("yields one endpoint per couple with anchors fixed at append time", func() {
			base := dynamo.Vec2{X: 1, Y: 2}
			a, err := arm.New(base, motor.Default(), 32, 0.05, 0.2)
			Expect(err).NotTo(HaveOccurred())

			const n = 4
			for i := range n {
				Expect(a.Advance(float32(i+1), 0.05)).To(Succeed())
				Expect(a.AddLink(0.05, 0.2, 32)).To(Succeed())
			}

			Expect(a.Endpoints()).To(HaveLen(n + 1))
			for _, s := range a.States() {
				Expect(s.Anchor).To(Equal(base))
				Expect(s.Motor).To(Equal(motor.NEO550))
			}
		})

		It("starts the new couple at rest", func() {
			a := newArm()
			Expect(a.Advance(10, 0.01)).To(Succeed())
			Expect(a.AddLink(0.05, 0.2, 32)).To(Succeed())
			s, _ := a.Couple(1)
			Expect(s.Velocity).To(BeZero())
			Expect(s.Angle).To(BeZero())
		})

		It("validates the new link", func() {
			a := newArm()
			Expect(a.AddLink(0.05, 0, 32)).To(MatchError(dynamo.ErrInvalidLength))
			Expect(a.Len()).To(Equal(1))
		})
	})

	Describe("geometry", func() {
		It("places a resting link along +x", func() {
			a := newArm()
			ends := a.Endpoints()
			Expect(ends[0].X).To(BeNumerically("~", 0.2, 1e-6))
			Expect(ends[0].Y).To(BeNumerically("~", 0, 1e-6))
		})

		It("scales segments to pixels", func() {
			a := newArm()
			segs := a.Segments(100)
			Expect(segs).To(HaveLen(1))
			Expect(segs[0].Start).To(Equal(dynamo.Vec2{}))
			Expect(segs[0].End.X).To(BeNumerically("~", 20, 1e-4))
		})

		It("chains links from the base in forward mode", func() {
			a := newArm(arm.WithChainMode(arm.ChainForward))
			Expect(a.AddLink(0.05, 0.3, 32)).To(Succeed())
			Expect(a.AdvanceEach([]float32{10, 10}, 0.05)).To(Succeed())

			states := a.States()
			t0 := float64(states[0].Angle)
			t1 := t0 + float64(states[1].Angle)
			x := 0.2*math.Cos(t0) + 0.3*math.Cos(t1)
			y := 0.2*math.Sin(t0) + 0.3*math.Sin(t1)

			segs := a.Segments(1)
			Expect(segs[1].Start).To(Equal(segs[0].End))
			Expect(float64(segs[1].End.X)).To(BeNumerically("~", x, 1e-5))
			Expect(float64(segs[1].End.Y)).To(BeNumerically("~", y, 1e-5))
		})

		It("keeps dependent links on the base anchor in fixed mode", func() {
			a := newArm()
			Expect(a.AddLink(0.05, 0.3, 32)).To(Succeed())
			Expect(a.AdvanceEach([]float32{10, 0}, 0.05)).To(Succeed())
			segs := a.Segments(1)
			Expect(segs[1].Start).To(Equal(dynamo.Vec2{}))
			Expect(segs[1].End.X).To(BeNumerically("~", 0.3, 1e-6))
		})
	})

	It("resets every joint to rest", func() {
		a := newArm()
		Expect(a.AddLink(0.05, 0.2, 32)).To(Succeed())
		Expect(a.Advance(10, 0.1)).To(Succeed())
		a.Reset()
		for _, s := range a.States() {
			Expect(s.Velocity).To(BeZero())
			Expect(s.Angle).To(BeZero())
			Expect(s.Current).To(BeZero())
		}
	})
})
