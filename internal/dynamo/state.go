package dynamo

import (
	"math"

	errorsmod "cosmossdk.io/errors"

	"github.com/san-kum/nbody/internal/numeric"
	"github.com/san-kum/nbody/internal/vec"
)

// State holds every body at one step as index-aligned sequences.
// Index i refers to the same body in every sequence and in every state cloned
// from this one.
type State[T numeric.Number[T]] struct {
	ids           []string
	masses        []T
	positions     []vec.Vec3[T]
	velocities    []vec.Vec3[T]
	accelerations []vec.Vec3[T]
	sealed        bool
}

// NewState returns an empty state with room for capacity bodies.
func NewState[T numeric.Number[T]](capacity int) *State[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &State[T]{
		ids:           make([]string, 0, capacity),
		masses:        make([]T, 0, capacity),
		positions:     make([]vec.Vec3[T], 0, capacity),
		velocities:    make([]vec.Vec3[T], 0, capacity),
		accelerations: make([]vec.Vec3[T], 0, capacity),
	}
}

// AddEntity appends one body to all five sequences. It fails once the state
// is sealed.
func (s *State[T]) AddEntity(id string, mass T, position, velocity, acceleration vec.Vec3[T]) error {
	if s.sealed {
		return errorsmod.Wrapf(ErrStateSealed, "cannot add %q", id)
	}
	s.ids = append(s.ids, id)
	s.masses = append(s.masses, mass)
	s.positions = append(s.positions, position)
	s.velocities = append(s.velocities, velocity)
	s.accelerations = append(s.accelerations, acceleration)
	return nil
}

// Seal freezes the body count.
func (s *State[T]) Seal()        { s.sealed = true }
func (s *State[T]) Sealed() bool { return s.sealed }

func (s *State[T]) Len() int { return len(s.ids) }

func (s *State[T]) ID(i int) string {
	s.checkIndex(i)
	return s.ids[i]
}

func (s *State[T]) SetID(i int, id string) {
	s.checkIndex(i)
	s.ids[i] = id
}

func (s *State[T]) Mass(i int) T {
	s.checkIndex(i)
	return s.masses[i]
}

func (s *State[T]) SetMass(i int, m T) {
	s.checkIndex(i)
	s.masses[i] = m
}

func (s *State[T]) Position(i int) vec.Vec3[T] {
	s.checkIndex(i)
	return s.positions[i]
}

func (s *State[T]) SetPosition(i int, v vec.Vec3[T]) {
	s.checkIndex(i)
	s.positions[i] = v
}

func (s *State[T]) Velocity(i int) vec.Vec3[T] {
	s.checkIndex(i)
	return s.velocities[i]
}

func (s *State[T]) SetVelocity(i int, v vec.Vec3[T]) {
	s.checkIndex(i)
	s.velocities[i] = v
}

func (s *State[T]) Acceleration(i int) vec.Vec3[T] {
	s.checkIndex(i)
	return s.accelerations[i]
}

func (s *State[T]) SetAcceleration(i int, v vec.Vec3[T]) {
	s.checkIndex(i)
	s.accelerations[i] = v
}

// Whole-sequence accessors return the backing slices; writes through them
// are visible in the state. The slices must not be appended to.
func (s *State[T]) IDs() []string                { return s.ids }
func (s *State[T]) Masses() []T                  { return s.masses }
func (s *State[T]) Positions() []vec.Vec3[T]     { return s.positions }
func (s *State[T]) Velocities() []vec.Vec3[T]    { return s.velocities }
func (s *State[T]) Accelerations() []vec.Vec3[T] { return s.accelerations }

// Whole-sequence mutators copy src in; len(src) must equal Len().
func (s *State[T]) SetIDs(src []string) {
	s.checkLen(len(src))
	copy(s.ids, src)
}

func (s *State[T]) SetMasses(src []T) {
	s.checkLen(len(src))
	copy(s.masses, src)
}

func (s *State[T]) SetPositions(src []vec.Vec3[T]) {
	s.checkLen(len(src))
	copy(s.positions, src)
}

func (s *State[T]) SetVelocities(src []vec.Vec3[T]) {
	s.checkLen(len(src))
	copy(s.velocities, src)
}

func (s *State[T]) SetAccelerations(src []vec.Vec3[T]) {
	s.checkLen(len(src))
	copy(s.accelerations, src)
}

// Clone returns a deep copy; the sealed flag is preserved.
func (s *State[T]) Clone() *State[T] {
	c := &State[T]{
		ids:           make([]string, len(s.ids)),
		masses:        make([]T, len(s.masses)),
		positions:     make([]vec.Vec3[T], len(s.positions)),
		velocities:    make([]vec.Vec3[T], len(s.velocities)),
		accelerations: make([]vec.Vec3[T], len(s.accelerations)),
		sealed:        s.sealed,
	}
	copy(c.ids, s.ids)
	copy(c.masses, s.masses)
	copy(c.positions, s.positions)
	copy(c.velocities, s.velocities)
	copy(c.accelerations, s.accelerations)
	return c
}

// IsValid reports whether every mass and vector component is finite.
func (s *State[T]) IsValid() bool {
	for i := range s.ids {
		if !finite(s.masses[i].Float64()) {
			return false
		}
		for _, v := range [...]vec.Vec3[T]{s.positions[i], s.velocities[i], s.accelerations[i]} {
			for _, c := range v.Float64s() {
				if !finite(c) {
					return false
				}
			}
		}
	}
	return true
}

func (s *State[T]) checkIndex(i int) {
	if i < 0 || i >= len(s.ids) {
		panic(errorsmod.Wrapf(ErrIndexOutOfRange, "index %d, %d bodies", i, len(s.ids)))
	}
}

func (s *State[T]) checkLen(n int) {
	if n != len(s.ids) {
		panic(errorsmod.Wrapf(ErrBodyCountMismatch, "got %d values for %d bodies", n, len(s.ids)))
	}
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
