// Package engine implements the arbitrary-precision floating-point cells
// backing the mpf command surface.
//
// A Num owns a single big.Float mantissa plus a NaN flag; together they give
// the four mutually exclusive value states: regular number, signed zero,
// signed infinity, NaN. Every arithmetic operation writes its result into
// the receiver, rounds it to the receiver's precision under an explicit
// rounding mode, and reports whether the stored result was exact.
//
// The package keeps two pieces of process-wide state: the default precision
// and the default rounding mode. Neither is synchronized; callers are
// expected to access a given Num, and the defaults, from a single goroutine
// at a time.
package engine

import (
	"math"
	"math/big"
)

// Precision bounds for a Num, in mantissa bits.
const (
	PrecMin = 2
	PrecMax = 1 << 20
)

// Rnd selects which representable value an inexact result rounds to.
type Rnd int

const (
	// RndN rounds to nearest, ties to even.
	RndN Rnd = iota
	// RndZ rounds toward zero.
	RndZ
	// RndU rounds toward positive infinity.
	RndU
	// RndD rounds toward negative infinity.
	RndD
	// RndA rounds away from zero.
	RndA
)

var rndNames = [...]string{"RNDN", "RNDZ", "RNDU", "RNDD", "RNDA"}

func (r Rnd) String() string {
	if !r.Valid() {
		return "RND?"
	}
	return rndNames[r]
}

// Valid reports whether r names one of the five rounding modes.
func (r Rnd) Valid() bool { return r >= RndN && r <= RndA }

func (r Rnd) mode() big.RoundingMode {
	switch r {
	case RndZ:
		return big.ToZero
	case RndU:
		return big.ToPositiveInf
	case RndD:
		return big.ToNegativeInf
	case RndA:
		return big.AwayFromZero
	default:
		return big.ToNearestEven
	}
}

// Modes returns the rounding modes in declaration order.
func Modes() []Rnd { return []Rnd{RndN, RndZ, RndU, RndD, RndA} }

var (
	defaultPrec uint = 53
	defaultRnd       = RndN
)

// DefaultPrec returns the process-wide default precision.
func DefaultPrec() uint { return defaultPrec }

// SetDefaultPrec sets the process-wide default precision.
// It panics if p is outside [PrecMin, PrecMax]; callers validate first.
func SetDefaultPrec(p uint) {
	checkPrec(p)
	defaultPrec = p
}

// DefaultRnd returns the process-wide default rounding mode.
func DefaultRnd() Rnd { return defaultRnd }

// SetDefaultRnd sets the process-wide default rounding mode.
func SetDefaultRnd(r Rnd) {
	if !r.Valid() {
		panic("engine: invalid rounding mode")
	}
	defaultRnd = r
}

func checkPrec(p uint) {
	if p < PrecMin || p > PrecMax {
		panic("engine: precision out of range")
	}
}

// Num is an arbitrary-precision floating-point cell. It owns exactly one
// mantissa allocation; Clear releases it. The zero value is not ready for
// use, call New.
type Num struct {
	f       big.Float
	nan     bool
	cleared bool
}

// New returns a fresh cell with the given precision, initialized to NaN.
// It panics if prec is outside [PrecMin, PrecMax].
func New(prec uint) *Num {
	checkPrec(prec)
	z := &Num{nan: true}
	z.f.SetPrec(prec)
	return z
}

// newTemp returns a scratch cell; unlike New it may exceed PrecMax, which
// internal working precisions do.
func newTemp(p uint) *Num {
	z := &Num{nan: true}
	z.f.SetPrec(p)
	return z
}

// Clear releases the cell's storage. Clearing twice is a no-op; any other
// use of a cleared cell panics.
func (z *Num) Clear() {
	*z = Num{cleared: true}
}

// Cleared reports whether the cell has been released.
func (z *Num) Cleared() bool { return z.cleared }

func (x *Num) val() *big.Float {
	if x.cleared {
		panic("engine: use of cleared Num")
	}
	return &x.f
}

func (z *Num) prec() uint { return uint(z.val().Prec()) }

// Prec returns the cell's precision in bits.
func (z *Num) Prec() uint { return z.prec() }

// MinPrec returns the smallest precision that would represent the current
// value exactly, or 0 for zeros, infinities and NaN.
func (z *Num) MinPrec() uint {
	if z.nan {
		z.val()
		return 0
	}
	return z.val().MinPrec()
}

// SetPrec changes the cell's precision and resets the value to NaN.
// Use PrecRound to keep the value.
func (z *Num) SetPrec(p uint) {
	checkPrec(p)
	z.val().SetPrec(p)
	z.setNaN()
}

// PrecRound rounds the current value into a new precision under r.
func (z *Num) PrecRound(p uint, r Rnd) int {
	checkPrec(p)
	f := z.val()
	if z.nan {
		f.SetPrec(p)
		return 0
	}
	f.SetMode(r.mode())
	f.SetPrec(p)
	return ternary(f.Acc())
}

func ternary(a big.Accuracy) int {
	switch a {
	case big.Below:
		return -1
	case big.Above:
		return 1
	}
	return 0
}

// setNaN puts the cell into the NaN state without touching its precision.
func (z *Num) setNaN() {
	f := z.val()
	p := f.Prec()
	f.SetPrec(p).SetInt64(0)
	z.nan = true
}

// setResult rounds t into z under r and returns the exactness ternary.
func (z *Num) setResult(t *big.Float, r Rnd) int {
	f := z.val()
	z.nan = false
	f.SetMode(r.mode())
	f.Set(t)
	return ternary(f.Acc())
}

// ---- set operations ----------------------------------------------------

// Set copies x into z, rounding under r.
func (z *Num) Set(x *Num, r Rnd) int {
	xf := x.val()
	if x.nan {
		z.val()
		z.setNaN()
		return 0
	}
	return z.setResult(xf, r)
}

// SetInt64 sets z to v.
func (z *Num) SetInt64(v int64, r Rnd) int {
	return z.setResult(new(big.Float).SetInt64(v), r)
}

// SetFloat64 sets z to d, preserving NaN, infinities and the sign of zero.
func (z *Num) SetFloat64(d float64, r Rnd) int {
	if math.IsNaN(d) {
		z.setNaN()
		return 0
	}
	return z.setResult(new(big.Float).SetFloat64(d), r)
}

// SetNaN puts z into the NaN state.
func (z *Num) SetNaN() { z.setNaN() }

// SetInf sets z to an infinity, positive when sign >= 0.
func (z *Num) SetInf(sign int) {
	z.val().SetInf(sign < 0)
	z.nan = false
}

// SetZero sets z to a zero, positive when sign >= 0.
func (z *Num) SetZero(sign int) {
	f := z.val()
	f.SetInt64(0)
	if sign < 0 {
		f.Neg(f)
	}
	z.nan = false
}

// ---- predicates --------------------------------------------------------

// IsNaN reports whether z is NaN.
func (z *Num) IsNaN() bool { z.val(); return z.nan }

// IsInf reports whether z is an infinity.
func (z *Num) IsInf() bool { return !z.nan && z.val().IsInf() }

// IsNumber reports whether z is neither NaN nor an infinity.
func (z *Num) IsNumber() bool { return !z.nan && !z.val().IsInf() }

// IsZero reports whether z is a (possibly negative) zero.
func (z *Num) IsZero() bool {
	return !z.nan && !z.val().IsInf() && z.val().Sign() == 0
}

// IsRegular reports whether z is an ordinary number: not NaN, not an
// infinity, not a zero.
func (z *Num) IsRegular() bool { return z.IsNumber() && z.val().Sign() != 0 }

// IsInteger reports whether z holds an exact integer value.
func (z *Num) IsInteger() bool { return z.IsNumber() && z.val().IsInt() }

// Signbit reports whether z carries a negative sign (including -0 and -Inf).
// For NaN the result is unspecified but stable.
func (z *Num) Signbit() bool { return z.val().Signbit() }

// Sgn returns -1, 0 or +1 according to the sign of z; 0 for NaN and zeros.
func (z *Num) Sgn() int {
	if z.nan {
		z.val()
		return 0
	}
	return z.val().Sign()
}

// ---- comparisons -------------------------------------------------------

// Cmp compares z and x: -1, 0, +1. If either operand is NaN the pair is
// unordered and Cmp returns 0.
func (z *Num) Cmp(x *Num) int {
	zf, xf := z.val(), x.val()
	if z.nan || x.nan {
		return 0
	}
	return zf.Cmp(xf)
}

// CmpInt64 compares z against an exact integer.
func (z *Num) CmpInt64(v int64) int {
	if z.nan {
		z.val()
		return 0
	}
	return z.val().Cmp(new(big.Float).SetInt64(v))
}

// CmpFloat64 compares z against a double. NaN on either side is unordered.
func (z *Num) CmpFloat64(d float64) int {
	if z.nan || math.IsNaN(d) {
		z.val()
		return 0
	}
	return z.val().Cmp(new(big.Float).SetFloat64(d))
}

// CmpAbs compares |z| and |x|, NaN unordered as in Cmp.
func (z *Num) CmpAbs(x *Num) int {
	zf, xf := z.val(), x.val()
	if z.nan || x.nan {
		return 0
	}
	za := new(big.Float).SetPrec(zf.Prec()).Abs(zf)
	xa := new(big.Float).SetPrec(xf.Prec()).Abs(xf)
	return za.Cmp(xa)
}

// Ordered comparison predicates. All of them are false when either operand
// is NaN; Unordered is the only one that is then true.

func (x *Num) Greater(y *Num) bool      { return !x.nan && !y.nan && x.val().Cmp(y.val()) > 0 }
func (x *Num) GreaterEqual(y *Num) bool { return !x.nan && !y.nan && x.val().Cmp(y.val()) >= 0 }
func (x *Num) Less(y *Num) bool         { return !x.nan && !y.nan && x.val().Cmp(y.val()) < 0 }
func (x *Num) LessEqual(y *Num) bool    { return !x.nan && !y.nan && x.val().Cmp(y.val()) <= 0 }
func (x *Num) Equal(y *Num) bool        { return !x.nan && !y.nan && x.val().Cmp(y.val()) == 0 }
func (x *Num) LessGreater(y *Num) bool  { return !x.nan && !y.nan && x.val().Cmp(y.val()) != 0 }
func (x *Num) Unordered(y *Num) bool    { x.val(); y.val(); return x.nan || y.nan }

// ---- native conversions ------------------------------------------------

// Float64 returns the nearest double under r. NaN converts to a NaN double.
func (z *Num) Float64(r Rnd) float64 {
	zf := z.val()
	if z.nan {
		return math.NaN()
	}
	t := new(big.Float).SetPrec(53).SetMode(r.mode()).Set(zf)
	d, _ := t.Float64()
	return d
}

// Int64 rounds z to an integer under r and reports whether the result fits
// a signed 64-bit integer.
func (z *Num) Int64(r Rnd) (int64, bool) {
	zf := z.val()
	if z.nan || zf.IsInf() {
		return 0, false
	}
	i := roundToInt(zf, r)
	if !i.IsInt64() {
		return 0, false
	}
	return i.Int64(), true
}

// FitsInt64 reports whether z, rounded under r, fits a signed 64-bit
// integer.
func (z *Num) FitsInt64(r Rnd) bool {
	_, ok := z.Int64(r)
	return ok
}
