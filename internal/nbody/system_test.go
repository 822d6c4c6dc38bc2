package nbody_test

import (
	"context"
	"math"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/nbody/internal/dynamo"
	"github.com/san-kum/nbody/internal/integrators"
	"github.com/san-kum/nbody/internal/nbody"
	"github.com/san-kum/nbody/internal/numeric"
	"github.com/san-kum/nbody/internal/system"
	"github.com/san-kum/nbody/internal/vec"
)

type F = numeric.Float64

func v3(x, y, z float64) vec.Vec3[F] {
	return vec.FromFloats[F]([3]float64{x, y, z})
}

func newState(bodies ...[2]vec.Vec3[F]) *dynamo.State[F] {
	s := dynamo.NewState[F](len(bodies))
	for i, b := range bodies {
		id := string(rune('a' + i))
		Expect(s.AddEntity(id, 1, b[0], b[1], v3(0, 0, 0))).To(Succeed())
	}
	return s
}

// drifter is a single body moving at unit speed along x, so its position
// after k unit steps is k.
func drifter(cycles int) *nbody.System[F] {
	s, err := nbody.NewFromParams[F](1, 0.1, newState([2]vec.Vec3[F]{v3(0, 0, 0), v3(1, 0, 0)}), cycles)
	Expect(err).NotTo(HaveOccurred())
	return s
}

func xs(states []*dynamo.State[F]) []float64 {
	out := make([]float64, len(states))
	for i, st := range states {
		out[i] = st.Position(0).X.Float64()
	}
	return out
}

func cluster(n int) *system.Definition {
	d := system.Definition{ID: "cluster", GravitationalConstant: 1, SofteningConstant: 0.01}
	for i := 0; i < n; i++ {
		f := float64(i)
		d.Entities.Data = append(d.Entities.Data, system.Entity{
			ID:       string(rune('A' + i)),
			Mass:     1 + 0.1*f,
			Position: [3]float64{math.Cos(f), math.Sin(1.3 * f), 0.1 * f},
			Velocity: [3]float64{0, 0.01 * f, 0},
		})
	}
	return &d
}

var _ = Describe("System", func() {
	Describe("construction", func() {
		It("rejects a history capacity below one", func() {
			_, err := nbody.NewFromParams[F](1, 0.1, newState(), 0)
			Expect(err).To(MatchError(dynamo.ErrInvalidCycles))
		})

		It("rejects a non-positive softening constant", func() {
			_, err := nbody.NewFromParams[F](1, 0, newState(), 4)
			Expect(err).To(MatchError(dynamo.ErrInvalidSoftening))
			_, err = nbody.NewFromParams[F](1, -0.5, newState(), 4)
			Expect(err).To(MatchError(dynamo.ErrInvalidSoftening))
		})

		It("rejects a nil initial state", func() {
			_, err := nbody.NewFromParams[F](1, 0.1, nil, 4)
			Expect(err).To(MatchError(dynamo.ErrInvalidState))
		})

		It("replicates the initial state into every slot", func() {
			initial := newState([2]vec.Vec3[F]{v3(3, 2, 1), v3(0, 0, 0)})
			s, err := nbody.NewFromParams[F](1, 0.1, initial, 5)
			Expect(err).NotTo(HaveOccurred())

			Expect(s.Cycles()).To(Equal(5))
			Expect(s.Cursor()).To(Equal(0))
			Expect(s.StepCount()).To(Equal(0))

			history := s.StateHistory(5)
			Expect(history).To(HaveLen(5))
			for _, st := range history {
				Expect(st).NotTo(BeIdenticalTo(initial))
				Expect(st.Sealed()).To(BeTrue())
				Expect(st.Position(0)).To(Equal(v3(3, 2, 1)))
			}
			Expect(initial.Sealed()).To(BeFalse())
		})

		It("builds from a definition", func() {
			def, err := system.Preset("binary")
			Expect(err).NotTo(HaveOccurred())

			s, err := nbody.New[F](def, 8)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.CurrentState().Len()).To(Equal(2))
			Expect(s.GravitationalConstant()).To(Equal(F(1)))
			Expect(s.Softening()).To(Equal(F(0.1)))
			Expect(s.Integrator()).To(Equal("euler"))
		})

		It("rejects an invalid definition", func() {
			def, _ := system.Preset("binary")
			def.SofteningConstant = 0
			_, err := nbody.New[F](def, 8)
			Expect(err).To(MatchError(system.ErrInvalidDefinition))
		})
	})

	Describe("two-body scenario", func() {
		var s *nbody.System[F]

		BeforeEach(func() {
			def, err := system.Preset("binary")
			Expect(err).NotTo(HaveOccurred())
			s, err = nbody.New[F](def, 4)
			Expect(err).NotTo(HaveOccurred())
			s.Step(1.0)
		})

		It("pulls each body toward the other", func() {
			a := s.CurrentState().Acceleration(0)
			Expect(a.X.Float64()).To(BeNumerically("~", 0.2469, 1e-4))
			Expect(a.Y.Float64()).To(BeZero())
			Expect(a.Z.Float64()).To(BeZero())

			b := s.CurrentState().Acceleration(1)
			Expect(b.X.Float64()).To(BeNumerically("~", -0.2469, 1e-4))
		})

		It("updates velocity from the new acceleration and position from the old velocity", func() {
			cur := s.CurrentState()
			Expect(cur.Velocity(0).X.Float64()).To(BeNumerically("~", 0.2469, 1e-4))
			Expect(cur.Position(0)).To(Equal(v3(-1, 0, 0)))
			Expect(cur.Position(1)).To(Equal(v3(1, 0, 0)))
		})

		It("counts the step", func() {
			Expect(s.StepCount()).To(Equal(1))
			Expect(s.Cursor()).To(Equal(1))
		})

		It("carries ids and masses forward", func() {
			Expect(s.CurrentState().IDs()).To(Equal([]string{"a", "b"}))
			Expect(s.CurrentState().Masses()).To(Equal([]F{1, 1}))
		})

		It("leaves the previous slot untouched", func() {
			prev := s.StateHistory(2)[1]
			Expect(prev.Velocity(0)).To(Equal(v3(0, 0, 0)))
			Expect(prev.Acceleration(0)).To(Equal(v3(0, 0, 0)))
		})
	})

	Describe("single-slot ring", func() {
		It("keeps explicit Euler ordering when the current slot is overwritten", func() {
			def, err := system.Preset("binary")
			Expect(err).NotTo(HaveOccurred())
			one, err := nbody.New[F](def, 1)
			Expect(err).NotTo(HaveOccurred())
			two, err := nbody.New[F](def, 2)
			Expect(err).NotTo(HaveOccurred())

			for i := 0; i < 3; i++ {
				one.Step(1)
				two.Step(1)
			}

			Expect(one.Cursor()).To(Equal(0))
			for i := 0; i < 2; i++ {
				Expect(one.CurrentState().Position(i)).To(Equal(two.CurrentState().Position(i)))
				Expect(one.CurrentState().Velocity(i)).To(Equal(two.CurrentState().Velocity(i)))
			}
		})

		It("leaves positions unchanged after the first step from rest", func() {
			def, _ := system.Preset("binary")
			s, err := nbody.New[F](def, 1)
			Expect(err).NotTo(HaveOccurred())

			s.Step(1)
			Expect(s.CurrentState().Position(0)).To(Equal(v3(-1, 0, 0)))
			Expect(s.CurrentState().Velocity(0).X.Float64()).To(BeNumerically("~", 0.2469, 1e-4))
		})
	})

	Describe("force law", func() {
		It("gives a lone body zero acceleration", func() {
			s := drifter(2)
			s.Step(1)
			Expect(s.CurrentState().Acceleration(0).IsZero()).To(BeTrue())
		})

		It("stays finite for nearly coincident bodies", func() {
			initial := newState(
				[2]vec.Vec3[F]{v3(0, 0, 0), v3(0, 0, 0)},
				[2]vec.Vec3[F]{v3(1e-4, 0, 0), v3(0, 0, 0)},
			)
			s, err := nbody.NewFromParams[F](1, 0.1, initial, 2)
			Expect(err).NotTo(HaveOccurred())
			s.Step(0.01)
			Expect(s.CurrentState().IsValid()).To(BeTrue())
			Expect(s.CurrentState().Acceleration(0).X.Float64()).To(BeNumerically(">", 0))
		})

		It("ignores exactly coincident pairs", func() {
			initial := newState(
				[2]vec.Vec3[F]{v3(1, 1, 1), v3(0, 0, 0)},
				[2]vec.Vec3[F]{v3(1, 1, 1), v3(0, 0, 0)},
			)
			s, err := nbody.NewFromParams[F](1, 0.1, initial, 2)
			Expect(err).NotTo(HaveOccurred())
			s.Step(0.01)
			Expect(s.CurrentState().Acceleration(0).IsZero()).To(BeTrue())
			Expect(s.CurrentState().Acceleration(1).IsZero()).To(BeTrue())
			Expect(s.CurrentState().IsValid()).To(BeTrue())
		})

		It("does not depend on the worker count", func() {
			def := cluster(40)
			run := func(workers int) *dynamo.State[F] {
				s, err := nbody.New[F](*def, 2, nbody.WithWorkers[F](workers))
				Expect(err).NotTo(HaveOccurred())
				for i := 0; i < 10; i++ {
					s.Step(0.001)
				}
				return s.Snapshot()
			}

			serial := run(1)
			for _, w := range []int{2, 3, 8} {
				parallel := run(w)
				Expect(parallel.Positions()).To(Equal(serial.Positions()))
				Expect(parallel.Velocities()).To(Equal(serial.Velocities()))
				Expect(parallel.Accelerations()).To(Equal(serial.Accelerations()))
			}
		})
	})

	Describe("history", func() {
		It("never holds more than its capacity", func() {
			s := drifter(3)
			for i := 0; i < 7; i++ {
				s.Step(1)
				Expect(len(s.StateHistory(100))).To(BeNumerically("<=", 3))
			}
			Expect(s.StateHistory(100)).To(HaveLen(3))
		})

		It("returns the newest states first", func() {
			s := drifter(3)
			for i := 0; i < 5; i++ {
				s.Step(1)
			}
			Expect(xs(s.StateHistory(3))).To(Equal([]float64{5, 4, 3}))
			Expect(xs(s.StateHistory(2))).To(Equal([]float64{5, 4}))
			Expect(s.StateHistory(1)[0]).To(BeIdenticalTo(s.CurrentState()))
		})

		It("includes initial replicas before the ring fills", func() {
			s := drifter(4)
			s.Step(1)
			Expect(xs(s.StateHistory(4))).To(Equal([]float64{1, 0, 0, 0}))
		})

		It("returns nothing for a non-positive count", func() {
			s := drifter(3)
			Expect(s.StateHistory(0)).To(BeEmpty())
			Expect(s.StateHistory(-2)).To(BeEmpty())
		})

		It("wraps the cursor around the ring", func() {
			s := drifter(3)
			cursors := []int{}
			for i := 0; i < 4; i++ {
				s.Step(1)
				cursors = append(cursors, s.Cursor())
			}
			Expect(cursors).To(Equal([]int{1, 2, 0, 1}))
		})

		It("hands out copies that survive later steps", func() {
			s := drifter(2)
			s.Step(1)
			snap := s.Snapshot()
			hist := s.HistorySnapshot(2)
			s.Step(1)
			s.Step(1)
			Expect(snap.Position(0).X.Float64()).To(Equal(1.0))
			Expect(xs(hist)).To(Equal([]float64{1, 0}))
		})
	})

	Describe("step counter", func() {
		It("increments by exactly one per step", func() {
			s := drifter(2)
			for i := 1; i <= 6; i++ {
				s.Step(0.5)
				Expect(s.StepCount()).To(Equal(i))
			}
		})
	})

	Describe("Run", func() {
		It("steps the requested number of times", func() {
			s := drifter(2)
			Expect(s.Run(context.Background(), 4, 1, nil)).To(Succeed())
			Expect(s.StepCount()).To(Equal(4))
			Expect(s.CurrentState().Position(0).X.Float64()).To(Equal(4.0))
		})

		It("stops when the observer declines", func() {
			s := drifter(2)
			seen := []int{}
			err := s.Run(context.Background(), 10, 1, func(step int, st *dynamo.State[F]) bool {
				seen = append(seen, step)
				return step < 3
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(seen).To(Equal([]int{1, 2, 3}))
			Expect(s.StepCount()).To(Equal(3))
		})

		It("returns the context error between steps", func() {
			s := drifter(2)
			ctx, cancel := context.WithCancel(context.Background())
			err := s.Run(ctx, 10, 1, func(step int, _ *dynamo.State[F]) bool {
				if step == 2 {
					cancel()
				}
				return true
			})
			Expect(err).To(MatchError(context.Canceled))
			Expect(s.StepCount()).To(Equal(2))
		})
	})

	Describe("concurrent readers", func() {
		It("never observe a partial step", func() {
			s := drifter(4)
			var wg sync.WaitGroup
			wg.Add(1)
			go func() {
				defer wg.Done()
				defer GinkgoRecover()
				for i := 0; i < 200; i++ {
					s.View(func(st *dynamo.State[F]) {
						x := st.Position(0).X.Float64()
						Expect(x).To(Equal(math.Trunc(x)))
					})
				}
			}()
			for i := 0; i < 200; i++ {
				s.Step(1)
			}
			wg.Wait()
		})
	})

	Describe("integrator choice", func() {
		It("uses the symplectic variant when asked", func() {
			def, _ := system.Preset("binary")
			s, err := nbody.New[F](def, 2, nbody.WithIntegrator[F](integrators.NewSemiImplicitEuler[F]()))
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Integrator()).To(Equal("symplectic"))

			s.Step(1)
			v := s.CurrentState().Velocity(0).X.Float64()
			Expect(s.CurrentState().Position(0).X.Float64()).To(BeNumerically("~", -1+v, 1e-12))
		})
	})
})

var _ = Describe("representations", func() {
	It("tracks the float64 run with fixed-point and decimal numbers", func() {
		def, err := system.Preset("binary")
		Expect(err).NotTo(HaveOccurred())

		ref, err := nbody.New[F](def, 2)
		Expect(err).NotTo(HaveOccurred())
		q, err := nbody.New[numeric.Q32](def, 2)
		Expect(err).NotTo(HaveOccurred())
		d, err := nbody.New[numeric.Dec](def, 2)
		Expect(err).NotTo(HaveOccurred())

		for i := 0; i < 20; i++ {
			ref.Step(0.01)
			q.Step(numeric.From[numeric.Q32](0.01))
			d.Step(numeric.From[numeric.Dec](0.01))
		}

		for i := 0; i < 2; i++ {
			want := ref.CurrentState().Position(i).Float64s()
			gotQ := q.CurrentState().Position(i).Float64s()
			gotD := d.CurrentState().Position(i).Float64s()
			for k := 0; k < 3; k++ {
				Expect(gotQ[k]).To(BeNumerically("~", want[k], 1e-6))
				Expect(gotD[k]).To(BeNumerically("~", want[k], 1e-9))
			}
		}
		Expect(q.StepCount()).To(Equal(20))
		Expect(d.StepCount()).To(Equal(20))
	})
})
