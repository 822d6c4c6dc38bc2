package numeric

import "math"

type Float64 float64

func (Float64) Zero() Float64                 { return 0 }
func (Float64) One() Float64                  { return 1 }
func (Float64) FromFloat64(x float64) Float64 { return Float64(x) }
func (f Float64) Float64() float64            { return float64(f) }

func (f Float64) Add(y Float64) Float64 { return f + y }
func (f Float64) Sub(y Float64) Float64 { return f - y }
func (f Float64) Mul(y Float64) Float64 { return f * y }
func (f Float64) Div(y Float64) Float64 { return f / y }
func (f Float64) Sqrt() Float64         { return Float64(math.Sqrt(float64(f))) }
func (f Float64) IsZero() bool          { return f == 0 }
