package integrators

import (
	"github.com/san-kum/nbody/internal/dynamo"
	"github.com/san-kum/nbody/internal/numeric"
)

// Euler is explicit Euler: both updates use values from the start of the step.
// src and dst may be the same state; positions are written before velocities.
//
//	v' = v + a*dt
//	p' = p + v*dt
type Euler[T numeric.Number[T]] struct{}

func NewEuler[T numeric.Number[T]]() *Euler[T] {
	return &Euler[T]{}
}

func (e *Euler[T]) Name() string { return "euler" }

func (e *Euler[T]) Integrate(dt T, src, dst *dynamo.State[T]) {
	checkAligned(src, dst)

	acc := dst.Accelerations()
	vel := dst.Velocities()
	pos := dst.Positions()
	srcVel := src.Velocities()
	srcPos := src.Positions()

	for i := range pos {
		pos[i] = srcPos[i].Add(srcVel[i].Scale(dt))
	}
	for i := range vel {
		vel[i] = srcVel[i].Add(acc[i].Scale(dt))
	}
}

// SemiImplicitEuler moves positions with the updated velocity.
//
//	v' = v + a*dt
//	p' = p + v'*dt
type SemiImplicitEuler[T numeric.Number[T]] struct{}

func NewSemiImplicitEuler[T numeric.Number[T]]() *SemiImplicitEuler[T] {
	return &SemiImplicitEuler[T]{}
}

func (e *SemiImplicitEuler[T]) Name() string { return "symplectic" }

func (e *SemiImplicitEuler[T]) Integrate(dt T, src, dst *dynamo.State[T]) {
	checkAligned(src, dst)

	acc := dst.Accelerations()
	vel := dst.Velocities()
	pos := dst.Positions()
	srcVel := src.Velocities()
	srcPos := src.Positions()

	for i := range vel {
		vel[i] = srcVel[i].Add(acc[i].Scale(dt))
		pos[i] = srcPos[i].Add(vel[i].Scale(dt))
	}
}
