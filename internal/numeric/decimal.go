package numeric

import (
	"fmt"
	"math"
	"strconv"

	sdkmath "cosmossdk.io/math"
)

// Dec is an 18-digit decimal fixed-point value backed by LegacyDec.
// The zero value is 0. Operations never mutate their operands, so copies
// that share the underlying big.Int stay independent.
type Dec struct {
	d sdkmath.LegacyDec
}

func NewDec(d sdkmath.LegacyDec) Dec { return Dec{d: d} }

func (Dec) Zero() Dec { return Dec{d: sdkmath.LegacyZeroDec()} }
func (Dec) One() Dec  { return Dec{d: sdkmath.LegacyOneDec()} }

// FromFloat64 rounds x to LegacyPrecision decimal places. NaN and infinities
// have no decimal form and panic.
func (Dec) FromFloat64(x float64) Dec {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		panic(fmt.Sprintf("numeric: %v has no decimal representation", x))
	}
	d, err := sdkmath.LegacyNewDecFromStr(strconv.FormatFloat(x, 'f', sdkmath.LegacyPrecision, 64))
	if err != nil {
		panic(fmt.Sprintf("numeric: decimal conversion of %v: %v", x, err))
	}
	return Dec{d: d}
}

func (x Dec) Float64() float64 {
	return x.dec().MustFloat64()
}

func (x Dec) IsZero() bool { return x.d.IsNil() || x.d.IsZero() }

func (x Dec) Add(y Dec) Dec { return Dec{d: x.dec().Add(y.dec())} }
func (x Dec) Sub(y Dec) Dec { return Dec{d: x.dec().Sub(y.dec())} }
func (x Dec) Mul(y Dec) Dec { return Dec{d: x.dec().Mul(y.dec())} }

// Div yields 0 when y is 0.
func (x Dec) Div(y Dec) Dec {
	if y.IsZero() {
		return x.Zero()
	}
	return Dec{d: x.dec().Quo(y.dec())}
}

// Sqrt yields 0 for negative input.
func (x Dec) Sqrt() Dec {
	d := x.dec()
	if !d.IsPositive() {
		return x.Zero()
	}
	r, err := d.ApproxSqrt()
	if err != nil {
		panic(fmt.Sprintf("numeric: decimal sqrt of %s: %v", d, err))
	}
	return Dec{d: r}
}

// Decimal exposes the underlying LegacyDec.
func (x Dec) Decimal() sdkmath.LegacyDec { return x.dec() }

func (x Dec) String() string { return x.dec().String() }

func (x Dec) dec() sdkmath.LegacyDec {
	if x.d.IsNil() {
		return sdkmath.LegacyZeroDec()
	}
	return x.d
}
