package dynamo_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/nbody/internal/dynamo"
	"github.com/san-kum/nbody/internal/numeric"
	"github.com/san-kum/nbody/internal/vec"
)

type F = numeric.Float64

func v3(x, y, z float64) vec.Vec3[F] {
	return vec.FromFloats[F]([3]float64{x, y, z})
}

func panicErr(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err, _ = r.(error)
		}
	}()
	fn()
	return nil
}

func twoBodies() *dynamo.State[F] {
	s := dynamo.NewState[F](2)
	Expect(s.AddEntity("a", 1, v3(-1, 0, 0), v3(0, 1, 0), v3(0, 0, 0))).To(Succeed())
	Expect(s.AddEntity("b", 2, v3(1, 0, 0), v3(0, -1, 0), v3(0, 0, 0))).To(Succeed())
	return s
}

var _ = Describe("State", func() {
	It("starts empty", func() {
		s := dynamo.NewState[F](0)
		Expect(s.Len()).To(Equal(0))
		Expect(s.IDs()).To(BeEmpty())
		Expect(s.IsValid()).To(BeTrue())
	})

	It("grows every sequence by one per AddEntity", func() {
		s := dynamo.NewState[F](0)
		for i := 1; i <= 4; i++ {
			Expect(s.AddEntity("x", 1, v3(0, 0, 0), v3(0, 0, 0), v3(0, 0, 0))).To(Succeed())
			Expect(s.IDs()).To(HaveLen(i))
			Expect(s.Masses()).To(HaveLen(i))
			Expect(s.Positions()).To(HaveLen(i))
			Expect(s.Velocities()).To(HaveLen(i))
			Expect(s.Accelerations()).To(HaveLen(i))
		}
	})

	It("keeps input order as body index order", func() {
		s := twoBodies()
		Expect(s.ID(0)).To(Equal("a"))
		Expect(s.ID(1)).To(Equal("b"))
		Expect(s.Mass(1)).To(Equal(F(2)))
		Expect(s.Position(0).Float64s()).To(Equal([3]float64{-1, 0, 0}))
		Expect(s.Velocity(1).Float64s()).To(Equal([3]float64{0, -1, 0}))
	})

	It("refuses appends once sealed", func() {
		s := twoBodies()
		s.Seal()
		err := s.AddEntity("c", 1, v3(0, 0, 0), v3(0, 0, 0), v3(0, 0, 0))
		Expect(errors.Is(err, dynamo.ErrStateSealed)).To(BeTrue())
		Expect(s.Len()).To(Equal(2))
	})

	It("panics with ErrIndexOutOfRange past N-1", func() {
		s := twoBodies()
		for _, fn := range []func(){
			func() { s.Position(2) },
			func() { s.Mass(-1) },
			func() { s.SetVelocity(5, v3(0, 0, 0)) },
			func() { s.ID(2) },
		} {
			Expect(errors.Is(panicErr(fn), dynamo.ErrIndexOutOfRange)).To(BeTrue())
		}
	})

	It("panics with ErrBodyCountMismatch on short sequences", func() {
		s := twoBodies()
		err := panicErr(func() { s.SetPositions([]vec.Vec3[F]{v3(0, 0, 0)}) })
		Expect(errors.Is(err, dynamo.ErrBodyCountMismatch)).To(BeTrue())
	})

	It("writes single fields and whole sequences in place", func() {
		s := twoBodies()
		s.SetAcceleration(0, v3(1, 2, 3))
		s.SetMass(0, 5)
		s.SetID(1, "renamed")
		Expect(s.Acceleration(0).Float64s()).To(Equal([3]float64{1, 2, 3}))
		Expect(s.Mass(0)).To(Equal(F(5)))
		Expect(s.ID(1)).To(Equal("renamed"))

		s.SetVelocities([]vec.Vec3[F]{v3(7, 0, 0), v3(8, 0, 0)})
		Expect(s.Velocity(1).Float64s()).To(Equal([3]float64{8, 0, 0}))

		s.Positions()[1] = v3(4, 4, 4)
		Expect(s.Position(1).Float64s()).To(Equal([3]float64{4, 4, 4}))
	})

	It("clones by value", func() {
		s := twoBodies()
		s.Seal()
		c := s.Clone()

		c.SetPosition(0, v3(9, 9, 9))
		c.SetID(0, "changed")
		Expect(s.Position(0).Float64s()).To(Equal([3]float64{-1, 0, 0}))
		Expect(s.ID(0)).To(Equal("a"))
		Expect(c.Sealed()).To(BeTrue())
		Expect(c.Len()).To(Equal(s.Len()))
	})

	It("detects non-finite components", func() {
		s := twoBodies()
		Expect(s.IsValid()).To(BeTrue())
		s.SetVelocity(1, v3(math.NaN(), 0, 0))
		Expect(s.IsValid()).To(BeFalse())
	})

	It("projects onto a float64 frame", func() {
		s := twoBodies()
		f := s.Frame(7)
		Expect(f.Step).To(Equal(7))
		Expect(f.Len()).To(Equal(2))
		Expect(f.IDs).To(Equal([]string{"a", "b"}))
		Expect(f.Masses).To(Equal([]float64{1, 2}))
		Expect(f.Positions[0].X).To(Equal(-1.0))
		Expect(f.Velocities[1].Y).To(Equal(-1.0))

		f.IDs[0] = "mutated"
		Expect(s.ID(0)).To(Equal("a"))
	})

	It("projects fixed-point states", func() {
		s := dynamo.NewState[numeric.Q32](1)
		one := numeric.One[numeric.Q32]()
		half := numeric.From[numeric.Q32](0.5)
		Expect(s.AddEntity("q", one, vec.New(half, one, one), vec.Zero[numeric.Q32](), vec.Zero[numeric.Q32]())).To(Succeed())
		f := s.Frame(0)
		Expect(f.Positions[0].X).To(BeNumerically("~", 0.5, 1e-9))
	})
})
