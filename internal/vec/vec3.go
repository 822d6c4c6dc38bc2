// Package vec provides a 3-vector over any numeric.Number scalar.
package vec

import (
	"fmt"

	"github.com/san-kum/nbody/internal/numeric"
)

// Vec3 is a value triple; every operation returns a new vector.
type Vec3[T numeric.Number[T]] struct {
	X, Y, Z T
}

func New[T numeric.Number[T]](x, y, z T) Vec3[T] {
	return Vec3[T]{X: x, Y: y, Z: z}
}

func Zero[T numeric.Number[T]]() Vec3[T] {
	z := numeric.Zero[T]()
	return Vec3[T]{X: z, Y: z, Z: z}
}

func FromArray[T numeric.Number[T]](a [3]T) Vec3[T] {
	return Vec3[T]{X: a[0], Y: a[1], Z: a[2]}
}

// FromFloats converts each component with T's FromFloat64.
func FromFloats[T numeric.Number[T]](a [3]float64) Vec3[T] {
	return Vec3[T]{
		X: numeric.From[T](a[0]),
		Y: numeric.From[T](a[1]),
		Z: numeric.From[T](a[2]),
	}
}

func (v Vec3[T]) Add(o Vec3[T]) Vec3[T] {
	return Vec3[T]{X: v.X.Add(o.X), Y: v.Y.Add(o.Y), Z: v.Z.Add(o.Z)}
}

func (v Vec3[T]) Sub(o Vec3[T]) Vec3[T] {
	return Vec3[T]{X: v.X.Sub(o.X), Y: v.Y.Sub(o.Y), Z: v.Z.Sub(o.Z)}
}

func (v Vec3[T]) Scale(s T) Vec3[T] {
	return Vec3[T]{X: v.X.Mul(s), Y: v.Y.Mul(s), Z: v.Z.Mul(s)}
}

// LengthSq is the sum of squared components.
func (v Vec3[T]) LengthSq() T {
	return v.X.Mul(v.X).Add(v.Y.Mul(v.Y)).Add(v.Z.Mul(v.Z))
}

func (v Vec3[T]) Length() T {
	return v.LengthSq().Sqrt()
}

func (v Vec3[T]) Array() [3]T {
	return [3]T{v.X, v.Y, v.Z}
}

func (v Vec3[T]) Float64s() [3]float64 {
	return [3]float64{v.X.Float64(), v.Y.Float64(), v.Z.Float64()}
}

func (v Vec3[T]) IsZero() bool {
	return v.X.IsZero() && v.Y.IsZero() && v.Z.IsZero()
}

func (v Vec3[T]) String() string {
	f := v.Float64s()
	return fmt.Sprintf("(%g, %g, %g)", f[0], f[1], f[2])
}
