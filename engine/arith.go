package engine

import (
	"math"
	"math/big"
)

// split decomposes a finite nonzero value into m × 2**exp with m an exact
// integer mantissa.
func split(f *big.Float) (*big.Int, int) {
	p := f.Prec()
	mant := new(big.Float)
	e := f.MantExp(mant)
	scaled := new(big.Float).SetMantExp(mant, int(p))
	m, _ := scaled.Int(nil)
	return m, e - int(p)
}

// setScaled stores sign(neg) · m · 2**exp into z, rounded under r.
func (z *Num) setScaled(neg bool, m *big.Int, exp int, r Rnd) int {
	if m.Sign() == 0 {
		sign := 1
		if neg {
			sign = -1
		}
		z.SetZero(sign)
		return 0
	}
	u := new(big.Float).SetInt(m)
	t := new(big.Float).SetMantExp(u, exp)
	if neg != (t.Signbit()) {
		t.Neg(t)
	}
	return z.setResult(t, r)
}

func fromInt64(v int64) *big.Float { return new(big.Float).SetInt64(v) }

func fromFloat64(d float64) *big.Float { return new(big.Float).SetFloat64(d) }

// ---- add / sub / mul / div ---------------------------------------------

func (z *Num) add2(xf, yf *big.Float, r Rnd) int {
	if xf.IsInf() && yf.IsInf() && xf.Signbit() != yf.Signbit() {
		z.setNaN()
		return 0
	}
	f := z.val()
	z.nan = false
	f.SetMode(r.mode())
	f.Add(xf, yf)
	return ternary(f.Acc())
}

func (z *Num) sub2(xf, yf *big.Float, r Rnd) int {
	if xf.IsInf() && yf.IsInf() && xf.Signbit() == yf.Signbit() {
		z.setNaN()
		return 0
	}
	f := z.val()
	z.nan = false
	f.SetMode(r.mode())
	f.Sub(xf, yf)
	return ternary(f.Acc())
}

func (z *Num) mul2(xf, yf *big.Float, r Rnd) int {
	if (xf.Sign() == 0 && yf.IsInf()) || (xf.IsInf() && yf.Sign() == 0) {
		z.setNaN()
		return 0
	}
	f := z.val()
	z.nan = false
	f.SetMode(r.mode())
	f.Mul(xf, yf)
	return ternary(f.Acc())
}

func (z *Num) div2(xf, yf *big.Float, r Rnd) int {
	bothZero := xf.Sign() == 0 && !xf.IsInf() && yf.Sign() == 0 && !yf.IsInf()
	bothInf := xf.IsInf() && yf.IsInf()
	if bothZero || bothInf {
		z.setNaN()
		return 0
	}
	f := z.val()
	z.nan = false
	f.SetMode(r.mode())
	f.Quo(xf, yf)
	return ternary(f.Acc())
}

// Add sets z = x + y.
func (z *Num) Add(x, y *Num, r Rnd) int {
	if x.nan || y.nan {
		x.val()
		y.val()
		z.setNaN()
		return 0
	}
	return z.add2(x.val(), y.val(), r)
}

// AddInt64 sets z = x + v.
func (z *Num) AddInt64(x *Num, v int64, r Rnd) int {
	if x.nan {
		x.val()
		z.setNaN()
		return 0
	}
	return z.add2(x.val(), fromInt64(v), r)
}

// AddFloat64 sets z = x + d.
func (z *Num) AddFloat64(x *Num, d float64, r Rnd) int {
	if x.nan || math.IsNaN(d) {
		x.val()
		z.setNaN()
		return 0
	}
	return z.add2(x.val(), fromFloat64(d), r)
}

// Sub sets z = x - y.
func (z *Num) Sub(x, y *Num, r Rnd) int {
	if x.nan || y.nan {
		x.val()
		y.val()
		z.setNaN()
		return 0
	}
	return z.sub2(x.val(), y.val(), r)
}

// SubInt64 sets z = x - v.
func (z *Num) SubInt64(x *Num, v int64, r Rnd) int {
	if x.nan {
		x.val()
		z.setNaN()
		return 0
	}
	return z.sub2(x.val(), fromInt64(v), r)
}

// Int64Sub sets z = v - x.
func (z *Num) Int64Sub(v int64, x *Num, r Rnd) int {
	if x.nan {
		x.val()
		z.setNaN()
		return 0
	}
	return z.sub2(fromInt64(v), x.val(), r)
}

// SubFloat64 sets z = x - d.
func (z *Num) SubFloat64(x *Num, d float64, r Rnd) int {
	if x.nan || math.IsNaN(d) {
		x.val()
		z.setNaN()
		return 0
	}
	return z.sub2(x.val(), fromFloat64(d), r)
}

// Float64Sub sets z = d - x.
func (z *Num) Float64Sub(d float64, x *Num, r Rnd) int {
	if x.nan || math.IsNaN(d) {
		x.val()
		z.setNaN()
		return 0
	}
	return z.sub2(fromFloat64(d), x.val(), r)
}

// Mul sets z = x * y.
func (z *Num) Mul(x, y *Num, r Rnd) int {
	if x.nan || y.nan {
		x.val()
		y.val()
		z.setNaN()
		return 0
	}
	return z.mul2(x.val(), y.val(), r)
}

// MulInt64 sets z = x * v.
func (z *Num) MulInt64(x *Num, v int64, r Rnd) int {
	if x.nan {
		x.val()
		z.setNaN()
		return 0
	}
	return z.mul2(x.val(), fromInt64(v), r)
}

// MulFloat64 sets z = x * d.
func (z *Num) MulFloat64(x *Num, d float64, r Rnd) int {
	if x.nan || math.IsNaN(d) {
		x.val()
		z.setNaN()
		return 0
	}
	return z.mul2(x.val(), fromFloat64(d), r)
}

// Div sets z = x / y.
func (z *Num) Div(x, y *Num, r Rnd) int {
	if x.nan || y.nan {
		x.val()
		y.val()
		z.setNaN()
		return 0
	}
	return z.div2(x.val(), y.val(), r)
}

// DivInt64 sets z = x / v.
func (z *Num) DivInt64(x *Num, v int64, r Rnd) int {
	if x.nan {
		x.val()
		z.setNaN()
		return 0
	}
	return z.div2(x.val(), fromInt64(v), r)
}

// Int64Div sets z = v / x.
func (z *Num) Int64Div(v int64, x *Num, r Rnd) int {
	if x.nan {
		x.val()
		z.setNaN()
		return 0
	}
	return z.div2(fromInt64(v), x.val(), r)
}

// DivFloat64 sets z = x / d.
func (z *Num) DivFloat64(x *Num, d float64, r Rnd) int {
	if x.nan || math.IsNaN(d) {
		x.val()
		z.setNaN()
		return 0
	}
	return z.div2(x.val(), fromFloat64(d), r)
}

// Float64Div sets z = d / x.
func (z *Num) Float64Div(d float64, x *Num, r Rnd) int {
	if x.nan || math.IsNaN(d) {
		x.val()
		z.setNaN()
		return 0
	}
	return z.div2(fromFloat64(d), x.val(), r)
}

// ---- sign and selection ------------------------------------------------

// Neg sets z = -x.
func (z *Num) Neg(x *Num, r Rnd) int {
	xf := x.val()
	if x.nan {
		z.setNaN()
		return 0
	}
	f := z.val()
	z.nan = false
	f.SetMode(r.mode())
	f.Neg(xf)
	return ternary(f.Acc())
}

// Abs sets z = |x|.
func (z *Num) Abs(x *Num, r Rnd) int {
	xf := x.val()
	if x.nan {
		z.setNaN()
		return 0
	}
	f := z.val()
	z.nan = false
	f.SetMode(r.mode())
	f.Abs(xf)
	return ternary(f.Acc())
}

// Sqr sets z = x².
func (z *Num) Sqr(x *Num, r Rnd) int {
	if x.nan {
		x.val()
		z.setNaN()
		return 0
	}
	return z.mul2(x.val(), x.val(), r)
}

// Min sets z to the smaller of x and y. A single NaN operand is ignored;
// zeros compare by sign (-0 below +0).
func (z *Num) Min(x, y *Num, r Rnd) int {
	switch {
	case x.nan && y.nan:
		x.val()
		y.val()
		z.setNaN()
		return 0
	case x.nan:
		return z.Set(y, r)
	case y.nan:
		return z.Set(x, r)
	}
	xf, yf := x.val(), y.val()
	pick := xf
	if c := xf.Cmp(yf); c > 0 || (c == 0 && yf.Signbit() && !xf.Signbit()) {
		pick = yf
	}
	return z.setResult(pick, r)
}

// Max is the counterpart of Min; zeros compare by sign (+0 above -0).
func (z *Num) Max(x, y *Num, r Rnd) int {
	switch {
	case x.nan && y.nan:
		x.val()
		y.val()
		z.setNaN()
		return 0
	case x.nan:
		return z.Set(y, r)
	case y.nan:
		return z.Set(x, r)
	}
	xf, yf := x.val(), y.val()
	pick := xf
	if c := xf.Cmp(yf); c < 0 || (c == 0 && xf.Signbit() && !yf.Signbit()) {
		pick = yf
	}
	return z.setResult(pick, r)
}

// Copysign sets z to x carrying y's sign.
func (z *Num) Copysign(x, y *Num, r Rnd) int {
	xf, yf := x.val(), y.val()
	if x.nan {
		z.setNaN()
		return 0
	}
	t := new(big.Float).Set(xf)
	if t.Signbit() != yf.Signbit() {
		t.Neg(t)
	}
	return z.setResult(t, r)
}

// ---- fused multiply-add ------------------------------------------------

func (z *Num) fma(x, y, u *Num, r Rnd, sub bool) int {
	if x.nan || y.nan || u.nan {
		x.val()
		y.val()
		u.val()
		z.setNaN()
		return 0
	}
	xf, yf, uf := x.val(), y.val(), u.val()
	if (xf.Sign() == 0 && yf.IsInf()) || (xf.IsInf() && yf.Sign() == 0) {
		z.setNaN()
		return 0
	}
	// The product is exact at the summed precisions, so the final add is
	// the only rounding step.
	t := new(big.Float).SetPrec(xf.Prec() + yf.Prec())
	t.Mul(xf, yf)
	if sub {
		return z.sub2(t, uf, r)
	}
	return z.add2(t, uf, r)
}

// Fma sets z = x·y + u with a single rounding.
func (z *Num) Fma(x, y, u *Num, r Rnd) int { return z.fma(x, y, u, r, false) }

// Fms sets z = x·y - u with a single rounding.
func (z *Num) Fms(x, y, u *Num, r Rnd) int { return z.fma(x, y, u, r, true) }

// ---- integer rounding --------------------------------------------------

type intMode int

const (
	intTrunc intMode = iota
	intFloor
	intCeil
	intTiesEven
	intTiesAway
	intAway
)

func rndIntMode(r Rnd) intMode {
	switch r {
	case RndZ:
		return intTrunc
	case RndU:
		return intCeil
	case RndD:
		return intFloor
	case RndA:
		return intAway
	default:
		return intTiesEven
	}
}

var oneInt = big.NewInt(1)

// roundInt rounds a finite value to an exact integer.
func roundInt(f *big.Float, m intMode) *big.Int {
	i, acc := f.Int(nil) // truncation toward zero, remainder discarded
	if acc == big.Exact {
		return i
	}
	neg := f.Signbit()
	away := func() {
		if neg {
			i.Sub(i, oneInt)
		} else {
			i.Add(i, oneInt)
		}
	}
	switch m {
	case intTrunc:
	case intFloor:
		if neg {
			i.Sub(i, oneInt)
		}
	case intCeil:
		if !neg {
			i.Add(i, oneInt)
		}
	case intAway:
		away()
	default:
		fi := new(big.Float).SetPrec(f.Prec() + 2).SetInt(i)
		fr := new(big.Float).SetPrec(f.Prec() + 2).Sub(f, fi)
		fr.Abs(fr)
		switch fr.Cmp(big.NewFloat(0.5)) {
		case 1:
			away()
		case 0:
			if m == intTiesAway || i.Bit(0) == 1 {
				away()
			}
		}
	}
	return i
}

func roundToInt(f *big.Float, r Rnd) *big.Int { return roundInt(f, rndIntMode(r)) }

func (z *Num) rintAs(x *Num, m intMode, r Rnd) int {
	xf := x.val()
	if x.nan {
		z.setNaN()
		return 0
	}
	if xf.IsInf() || xf.Sign() == 0 {
		return z.setResult(xf, r)
	}
	i := roundInt(xf, m)
	t := new(big.Float).SetPrec(uint(max(i.BitLen(), 1))).SetInt(i)
	if i.Sign() == 0 && xf.Signbit() {
		t.Neg(t)
	}
	return z.setResult(t, r)
}

// Rint rounds x to an integer under r, then represents it at z's precision.
func (z *Num) Rint(x *Num, r Rnd) int { return z.rintAs(x, rndIntMode(r), r) }

// RintCeil rounds x up to an integer; r only affects the representation.
func (z *Num) RintCeil(x *Num, r Rnd) int { return z.rintAs(x, intCeil, r) }

// RintFloor rounds x down to an integer.
func (z *Num) RintFloor(x *Num, r Rnd) int { return z.rintAs(x, intFloor, r) }

// RintRound rounds x to the nearest integer, ties away from zero.
func (z *Num) RintRound(x *Num, r Rnd) int { return z.rintAs(x, intTiesAway, r) }

// RintTrunc rounds x to an integer toward zero.
func (z *Num) RintTrunc(x *Num, r Rnd) int { return z.rintAs(x, intTrunc, r) }

// Frac sets z to the fractional part of x, carrying x's sign.
func (z *Num) Frac(x *Num, r Rnd) int {
	xf := x.val()
	if x.nan || xf.IsInf() {
		z.setNaN()
		return 0
	}
	if xf.Sign() == 0 {
		return z.setResult(xf, r)
	}
	i, acc := xf.Int(nil)
	if acc == big.Exact {
		sign := 1
		if xf.Signbit() {
			sign = -1
		}
		z.SetZero(sign)
		return 0
	}
	fi := new(big.Float).SetPrec(xf.Prec() + 2).SetInt(i)
	fr := new(big.Float).SetPrec(xf.Prec() + 2).Sub(xf, fi)
	return z.setResult(fr, r)
}

// Modf splits x into integral and fractional parts, both carrying x's sign.
// zi and zf must be distinct cells; either may alias x.
func (zi *Num) Modf(zf, x *Num, r Rnd) (int, int) {
	xf := x.val()
	if x.nan {
		zi.setNaN()
		zf.setNaN()
		return 0, 0
	}
	if xf.IsInf() {
		sign := 1
		if xf.Signbit() {
			sign = -1
		}
		zi.SetInf(sign)
		zf.SetZero(sign)
		return 0, 0
	}
	i, acc := xf.Int(nil)
	ti := new(big.Float).SetPrec(xf.Prec() + 2).SetInt(i)
	tf := new(big.Float).SetPrec(xf.Prec() + 2).Sub(xf, ti)
	if i.Sign() == 0 && xf.Signbit() {
		ti.Neg(ti)
	}
	if acc == big.Exact && xf.Signbit() {
		tf.Neg(tf) // exact integer: fractional part is -0
	}
	t1 := zi.setResult(ti, r)
	t2 := zf.setResult(tf, r)
	return t1, t2
}

// ---- modular reduction -------------------------------------------------

func (z *Num) mod(x, y *Num, r Rnd, nearest bool) int {
	xf, yf := x.val(), y.val()
	if x.nan || y.nan || xf.IsInf() || yf.Sign() == 0 {
		z.setNaN()
		return 0
	}
	if yf.IsInf() || xf.Sign() == 0 {
		return z.Set(x, r)
	}
	mx, ex := split(xf)
	my, ey := split(yf)
	s := ex
	if ey < s {
		s = ey
	}
	xa := new(big.Int).Abs(mx)
	ya := new(big.Int).Abs(my)
	xa.Lsh(xa, uint(ex-s))
	ya.Lsh(ya, uint(ey-s))
	q, rem := new(big.Int).QuoRem(xa, ya, new(big.Int))
	if nearest {
		// Round the quotient half to even; the remainder then lands in
		// [-y/2, y/2].
		two := new(big.Int).Lsh(rem, 1)
		if c := two.Cmp(ya); c > 0 || (c == 0 && q.Bit(0) == 1) {
			rem.Sub(rem, ya)
		}
	}
	neg := xf.Signbit() != (rem.Sign() < 0)
	rem.Abs(rem)
	return z.setScaled(neg, rem, s, r)
}

// Fmod sets z = x - trunc(x/y)·y; a zero result keeps x's sign.
func (z *Num) Fmod(x, y *Num, r Rnd) int { return z.mod(x, y, r, false) }

// Remainder sets z = x - rint(x/y)·y with the quotient rounded to nearest
// even, as in IEEE remainder.
func (z *Num) Remainder(x, y *Num, r Rnd) int { return z.mod(x, y, r, true) }

// ---- factorial ---------------------------------------------------------

// FacUint sets z = n!.
func (z *Num) FacUint(n uint64, r Rnd) int {
	m := new(big.Int).MulRange(1, int64(n))
	return z.setResult(new(big.Float).SetInt(m), r)
}
