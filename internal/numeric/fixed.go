package numeric

import (
	"math"
	"math/bits"
	"strconv"
)

// Q32.32 layout
const (
	q32Shift = 32
	q32Scale = 1 << q32Shift
)

// Q32 is a signed Q32.32 fixed-point value: 32 integer bits, 32 fraction bits.
// Add and Sub saturate, Mul and Div use a 128-bit intermediate and saturate,
// division by zero yields 0.
type Q32 int64

func (Q32) Zero() Q32 { return 0 }
func (Q32) One() Q32  { return q32Scale }

// FromFloat64 rounds to the nearest representable value, saturating out of
// range input. NaN maps to 0.
func (Q32) FromFloat64(x float64) Q32 {
	if math.IsNaN(x) {
		return 0
	}
	v := math.Round(x * q32Scale)
	if v >= math.MaxInt64 {
		return math.MaxInt64
	}
	if v <= math.MinInt64 {
		return math.MinInt64
	}
	return Q32(v)
}

func (q Q32) Float64() float64 { return float64(q) / q32Scale }

func (q Q32) IsZero() bool { return q == 0 }

func (q Q32) Add(y Q32) Q32 {
	s := q + y
	if q > 0 && y > 0 && s < 0 {
		return math.MaxInt64
	}
	if q < 0 && y < 0 && s >= 0 {
		return math.MinInt64
	}
	return s
}

func (q Q32) Sub(y Q32) Q32 {
	d := q - y
	if q >= 0 && y < 0 && d < 0 {
		return math.MaxInt64
	}
	if q < 0 && y > 0 && d >= 0 {
		return math.MinInt64
	}
	return d
}

func (q Q32) Mul(y Q32) Q32 {
	if q == 0 || y == 0 {
		return 0
	}
	neg := (q < 0) != (y < 0)
	hi, lo := bits.Mul64(abs64(q), abs64(y))

	// Q64.64 product, keep the middle 64 bits
	if hi>>q32Shift != 0 {
		return saturate(neg)
	}
	return signed((hi<<q32Shift)|(lo>>q32Shift), neg)
}

func (q Q32) Div(y Q32) Q32 {
	if y == 0 {
		return 0
	}
	if q == 0 {
		return 0
	}
	neg := (q < 0) != (y < 0)
	ua, ub := abs64(q), abs64(y)

	// |q| << 32 as a 128-bit dividend
	hi, lo := ua>>q32Shift, ua<<q32Shift
	if hi >= ub {
		return saturate(neg)
	}
	quo, _ := bits.Div64(hi, lo, ub)
	return signed(quo, neg)
}

// Sqrt returns the exact floor of the square root; non-positive input yields 0.
func (q Q32) Sqrt() Q32 {
	if q <= 0 {
		return 0
	}
	x := uint64(q)
	hi, lo := x>>q32Shift, x<<q32Shift

	g := uint64(math.Sqrt(float64(x)) * (1 << (q32Shift / 2)))
	if g == 0 {
		g = 1
	}
	for i := 0; i < 4 && hi < g; i++ {
		quo, _ := bits.Div64(hi, lo, g)
		g = (g + quo) >> 1
	}
	for g > 1 && squareExceeds(g, hi, lo) {
		g--
	}
	for !squareExceeds(g+1, hi, lo) {
		g++
	}
	return Q32(g)
}

func (q Q32) String() string {
	return strconv.FormatFloat(q.Float64(), 'f', -1, 64)
}

func abs64(x Q32) uint64 {
	if x < 0 {
		return uint64(-x)
	}
	return uint64(x)
}

func saturate(neg bool) Q32 {
	if neg {
		return math.MinInt64
	}
	return math.MaxInt64
}

func signed(u uint64, neg bool) Q32 {
	if neg {
		if u > 1<<63 {
			return math.MinInt64
		}
		return -Q32(u)
	}
	if u > math.MaxInt64 {
		return math.MaxInt64
	}
	return Q32(u)
}

// squareExceeds reports whether g*g > hi:lo.
func squareExceeds(g, hi, lo uint64) bool {
	h, l := bits.Mul64(g, g)
	return h > hi || (h == hi && l > lo)
}
