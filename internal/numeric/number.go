package numeric

// Number is the capability set required of a simulation scalar.
// No method reports an error; overflow, rounding and division by zero follow
// the representation.
type Number[T any] interface {
	Zero() T
	One() T
	FromFloat64(x float64) T
	Float64() float64

	Add(y T) T
	Sub(y T) T
	Mul(y T) T
	Div(y T) T
	Sqrt() T
	IsZero() bool
}

func Zero[T Number[T]]() T {
	var t T
	return t.Zero()
}

func One[T Number[T]]() T {
	var t T
	return t.One()
}

// From converts a float64 into T.
func From[T Number[T]](x float64) T {
	var t T
	return t.FromFloat64(x)
}

// Sum adds xs left to right.
func Sum[T Number[T]](xs ...T) T {
	s := Zero[T]()
	for _, x := range xs {
		s = s.Add(x)
	}
	return s
}
