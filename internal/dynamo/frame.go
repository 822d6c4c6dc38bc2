package dynamo

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/nbody/internal/numeric"
	"github.com/san-kum/nbody/internal/vec"
)

// Frame is a float64 copy of one State, tagged with the step that produced it.
type Frame struct {
	Step          int
	IDs           []string
	Masses        []float64
	Positions     []r3.Vec
	Velocities    []r3.Vec
	Accelerations []r3.Vec
}

func (f Frame) Len() int { return len(f.IDs) }

// Frame converts s into float64 values.
func (s *State[T]) Frame(step int) Frame {
	n := s.Len()
	f := Frame{
		Step:          step,
		IDs:           make([]string, n),
		Masses:        make([]float64, n),
		Positions:     make([]r3.Vec, n),
		Velocities:    make([]r3.Vec, n),
		Accelerations: make([]r3.Vec, n),
	}
	copy(f.IDs, s.ids)
	for i := 0; i < n; i++ {
		f.Masses[i] = s.masses[i].Float64()
		f.Positions[i] = toR3(s.positions[i])
		f.Velocities[i] = toR3(s.velocities[i])
		f.Accelerations[i] = toR3(s.accelerations[i])
	}
	return f
}

func toR3[T numeric.Number[T]](v vec.Vec3[T]) r3.Vec {
	a := v.Float64s()
	return r3.Vec{X: a[0], Y: a[1], Z: a[2]}
}
