package engine

import (
	"math/big"
	"math/bits"

	"github.com/ALTree/bigfloat"
)

// guard is the extra working precision used when a result is computed in
// several rounding steps before the final rounding into the destination.
// The exactness ternary of such operations reflects the final rounding only.
const guard = 32

func (z *Num) work() uint { return z.prec() + guard }

func at(x *big.Float, p uint) *big.Float {
	return new(big.Float).SetPrec(p).Set(x)
}

func fone(p uint) *big.Float { return new(big.Float).SetPrec(p).SetInt64(1) }

// smallGuard widens the working precision when x is close to zero and the
// result is about the same size as x, which would otherwise cancel.
func smallGuard(p uint, xf *big.Float) uint {
	if xf.Sign() == 0 || xf.IsInf() {
		return p
	}
	if e := xf.MantExp(nil); e < 0 && uint(-e) < PrecMax {
		p += uint(-e)
	}
	return p
}

// ---- exponentials ------------------------------------------------------

// Exp sets z = eˣ.
func (z *Num) Exp(x *Num, r Rnd) int {
	xf := x.val()
	switch {
	case x.nan:
		z.setNaN()
		return 0
	case xf.IsInf():
		if xf.Signbit() {
			z.SetZero(1)
		} else {
			z.SetInf(1)
		}
		return 0
	case xf.Sign() == 0:
		return z.SetInt64(1, r)
	}
	return z.setResult(bigfloat.Exp(at(xf, z.work())), r)
}

func (z *Num) expBase(b int64, x *Num, r Rnd) int {
	xf := x.val()
	switch {
	case x.nan:
		z.setNaN()
		return 0
	case xf.IsInf():
		if xf.Signbit() {
			z.SetZero(1)
		} else {
			z.SetInf(1)
		}
		return 0
	case xf.Sign() == 0:
		return z.SetInt64(1, r)
	}
	wp := z.work() + 8
	t := new(big.Float).SetPrec(wp)
	t.Mul(at(xf, wp), bigfloat.Log(new(big.Float).SetPrec(wp).SetInt64(b)))
	return z.setResult(bigfloat.Exp(t), r)
}

// Exp2 sets z = 2ˣ.
func (z *Num) Exp2(x *Num, r Rnd) int { return z.expBase(2, x, r) }

// Exp10 sets z = 10ˣ.
func (z *Num) Exp10(x *Num, r Rnd) int { return z.expBase(10, x, r) }

// Expm1 sets z = eˣ - 1, accurate for small x.
func (z *Num) Expm1(x *Num, r Rnd) int {
	xf := x.val()
	switch {
	case x.nan:
		z.setNaN()
		return 0
	case xf.IsInf():
		if xf.Signbit() {
			return z.SetInt64(-1, r)
		}
		z.SetInf(1)
		return 0
	case xf.Sign() == 0:
		return z.setResult(xf, r) // ±0
	}
	wp := smallGuard(z.work(), xf) + 4
	t := bigfloat.Exp(at(xf, wp))
	t.Sub(t, fone(wp))
	return z.setResult(t, r)
}

// ---- logarithms --------------------------------------------------------

func (z *Num) logSpecial(x *Num) (done bool, tern int) {
	xf := x.val()
	switch {
	case x.nan:
		z.setNaN()
		return true, 0
	case xf.Sign() == 0:
		z.SetInf(-1)
		return true, 0
	case xf.Signbit():
		z.setNaN()
		return true, 0
	case xf.IsInf():
		z.SetInf(1)
		return true, 0
	}
	return false, 0
}

// Log sets z = ln x; negative operands yield NaN, zeros -Inf.
func (z *Num) Log(x *Num, r Rnd) int {
	if done, t := z.logSpecial(x); done {
		return t
	}
	xf := x.val()
	if xf.Cmp(fone(2)) == 0 {
		z.SetZero(1)
		return 0
	}
	return z.setResult(bigfloat.Log(at(xf, z.work())), r)
}

func (z *Num) logBase(b int64, x *Num, r Rnd) int {
	if done, t := z.logSpecial(x); done {
		return t
	}
	xf := x.val()
	if xf.Cmp(fone(2)) == 0 {
		z.SetZero(1)
		return 0
	}
	wp := z.work() + 8
	t := bigfloat.Log(at(xf, wp))
	t.Quo(t, bigfloat.Log(new(big.Float).SetPrec(wp).SetInt64(b)))
	return z.setResult(t, r)
}

// Log2 sets z = log₂ x.
func (z *Num) Log2(x *Num, r Rnd) int { return z.logBase(2, x, r) }

// Log10 sets z = log₁₀ x.
func (z *Num) Log10(x *Num, r Rnd) int { return z.logBase(10, x, r) }

// Log1p sets z = ln(1 + x), accurate for small x.
func (z *Num) Log1p(x *Num, r Rnd) int {
	xf := x.val()
	switch {
	case x.nan:
		z.setNaN()
		return 0
	case xf.IsInf() && xf.Signbit():
		z.setNaN()
		return 0
	case xf.IsInf():
		z.SetInf(1)
		return 0
	case xf.Sign() == 0:
		return z.setResult(xf, r) // ±0
	}
	if c := xf.Cmp(new(big.Float).SetInt64(-1)); c < 0 {
		z.setNaN()
		return 0
	} else if c == 0 {
		z.SetInf(-1)
		return 0
	}
	wp := smallGuard(z.work(), xf) + 4
	u := new(big.Float).SetPrec(wp).Add(fone(wp), at(xf, wp))
	return z.setResult(bigfloat.Log(u), r)
}

// ---- roots -------------------------------------------------------------

// Sqrt sets z = √x; sqrt of a negative regular value is NaN, √±0 = ±0.
func (z *Num) Sqrt(x *Num, r Rnd) int {
	xf := x.val()
	if x.nan || (xf.Signbit() && xf.Sign() != 0) {
		z.setNaN()
		return 0
	}
	f := z.val()
	z.nan = false
	f.SetMode(r.mode())
	f.Sqrt(xf)
	return ternary(f.Acc())
}

// SqrtUint sets z = √n for an exact machine integer n.
func (z *Num) SqrtUint(n uint64, r Rnd) int {
	f := z.val()
	z.nan = false
	f.SetMode(r.mode())
	f.Sqrt(new(big.Float).SetUint64(n))
	return ternary(f.Acc())
}

// RecSqrt sets z = 1/√x; both zeros map to +Inf.
func (z *Num) RecSqrt(x *Num, r Rnd) int {
	xf := x.val()
	switch {
	case x.nan:
		z.setNaN()
		return 0
	case xf.Sign() == 0:
		z.SetInf(1)
		return 0
	case xf.Signbit():
		z.setNaN()
		return 0
	case xf.IsInf():
		z.SetZero(1)
		return 0
	}
	wp := z.work() + 4
	s := at(xf, wp)
	s.Sqrt(s)
	t := new(big.Float).SetPrec(wp).Quo(fone(wp), s)
	return z.setResult(t, r)
}

// Root sets z to the k-th root of x. Odd k preserves the sign of a negative
// operand; even k makes it NaN. k = 0 is NaN.
func (z *Num) Root(x *Num, k uint64, r Rnd) int {
	xf := x.val()
	odd := k%2 == 1
	switch {
	case x.nan || k == 0:
		z.setNaN()
		return 0
	case k == 1:
		return z.Set(x, r)
	case xf.Sign() == 0:
		return z.setResult(xf, r) // ±0
	case xf.Signbit() && !odd:
		z.setNaN()
		return 0
	case xf.IsInf():
		sign := 1
		if xf.Signbit() {
			sign = -1
		}
		z.SetInf(sign)
		return 0
	}
	wp := z.work() + uint(bits.Len64(k)) + 4
	a := new(big.Float).SetPrec(wp).Abs(xf)
	t := bigfloat.Log(a)
	t.Quo(t, new(big.Float).SetPrec(wp).SetUint64(k))
	t = bigfloat.Exp(t)
	if xf.Signbit() {
		t.Neg(t)
	}
	return z.setResult(t, r)
}

// Cbrt sets z = ∛x.
func (z *Num) Cbrt(x *Num, r Rnd) int { return z.Root(x, 3, r) }

// ---- powers ------------------------------------------------------------

// powUintAt raises base to n by binary exponentiation at precision wp.
func powUintAt(base *big.Float, n uint64, wp uint) *big.Float {
	tp := wp + uint(bits.Len64(n))*2 + 4
	acc := fone(tp)
	b := at(base, tp)
	for m := n; m > 0; m >>= 1 {
		if m&1 == 1 {
			acc.Mul(acc, b)
		}
		if m > 1 {
			b.Mul(b, b)
		}
	}
	return acc
}

// PowUint sets z = xⁿ. n = 0 yields 1 for every x, NaN included.
func (z *Num) PowUint(x *Num, n uint64, r Rnd) int {
	xf := x.val()
	if n == 0 {
		return z.SetInt64(1, r)
	}
	odd := n%2 == 1
	switch {
	case x.nan:
		z.setNaN()
		return 0
	case xf.IsInf():
		sign := 1
		if xf.Signbit() && odd {
			sign = -1
		}
		z.SetInf(sign)
		return 0
	case xf.Sign() == 0:
		sign := 1
		if xf.Signbit() && odd {
			sign = -1
		}
		z.SetZero(sign)
		return 0
	case n == 1:
		return z.Set(x, r)
	}
	return z.setResult(powUintAt(xf, n, z.work()), r)
}

// PowInt sets z = xᵛ for a signed exponent; negative v is the reciprocal
// power.
func (z *Num) PowInt(x *Num, v int64, r Rnd) int {
	if v >= 0 {
		return z.PowUint(x, uint64(v), r)
	}
	xf := x.val()
	n := uint64(-v)
	odd := n%2 == 1
	switch {
	case x.nan:
		z.setNaN()
		return 0
	case xf.IsInf():
		sign := 1
		if xf.Signbit() && odd {
			sign = -1
		}
		z.SetZero(sign)
		return 0
	case xf.Sign() == 0:
		sign := 1
		if xf.Signbit() && odd {
			sign = -1
		}
		z.SetInf(sign)
		return 0
	}
	wp := z.work() + 4
	t := powUintAt(xf, n, wp)
	t = new(big.Float).SetPrec(wp).Quo(fone(wp), t)
	return z.setResult(t, r)
}

// UintPowUint sets z = bⁿ for machine integers, rounded to z's precision.
func (z *Num) UintPowUint(b, n uint64, r Rnd) int {
	if n == 0 {
		return z.SetInt64(1, r)
	}
	if b == 0 {
		z.SetZero(1)
		return 0
	}
	return z.setResult(powUintAt(new(big.Float).SetUint64(b), n, z.work()), r)
}

// UintPow sets z = bʸ for a machine-integer base.
func (z *Num) UintPow(b uint64, y *Num, r Rnd) int {
	yf := y.val()
	if !y.nan && yf.Sign() == 0 {
		return z.SetInt64(1, r)
	}
	if b == 1 {
		return z.SetInt64(1, r)
	}
	if y.nan {
		z.setNaN()
		return 0
	}
	if b == 0 {
		if yf.Signbit() {
			z.SetInf(1)
		} else {
			z.SetZero(1)
		}
		return 0
	}
	if yf.IsInf() {
		if yf.Signbit() {
			z.SetZero(1)
		} else {
			z.SetInf(1)
		}
		return 0
	}
	wp := z.work() + 8
	t := new(big.Float).SetPrec(wp)
	t.Mul(at(yf, wp), bigfloat.Log(new(big.Float).SetPrec(wp).SetUint64(b)))
	return z.setResult(bigfloat.Exp(t), r)
}

// Pow sets z = xʸ following the usual floating-point special cases:
// x⁰ = 1 and 1ʸ = 1 even for NaN, a negative base demands an integer
// exponent.
func (z *Num) Pow(x, y *Num, r Rnd) int {
	xf, yf := x.val(), y.val()
	if !y.nan && yf.Sign() == 0 && !yf.IsInf() {
		return z.SetInt64(1, r)
	}
	if !x.nan && xf.Cmp(fone(2)) == 0 {
		return z.SetInt64(1, r)
	}
	if x.nan || y.nan {
		z.setNaN()
		return 0
	}
	if yf.IsInf() {
		a := new(big.Float).Abs(xf)
		c := a.Cmp(fone(2))
		switch {
		case c == 0: // |x| = 1
			return z.SetInt64(1, r)
		case (c > 0) == !yf.Signbit():
			z.SetInf(1)
		default:
			z.SetZero(1)
		}
		return 0
	}
	yInt := yf.IsInt()
	yOdd := false
	if yInt {
		yi, _ := yf.Int(nil)
		yOdd = yi.Bit(0) == 1
	}
	if xf.IsInf() || xf.Sign() == 0 {
		neg := xf.Signbit() && yInt && yOdd
		sign := 1
		if neg {
			sign = -1
		}
		up := !yf.Signbit()
		if xf.Sign() == 0 {
			up = !up
		}
		if up {
			z.SetInf(sign)
		} else {
			z.SetZero(sign)
		}
		return 0
	}
	if xf.Signbit() {
		if !yInt {
			z.setNaN()
			return 0
		}
		wp := z.work() + 8
		a := new(big.Float).SetPrec(wp).Abs(xf)
		t := new(big.Float).SetPrec(wp)
		t.Mul(at(yf, wp), bigfloat.Log(a))
		t = bigfloat.Exp(t)
		if yOdd {
			t.Neg(t)
		}
		return z.setResult(t, r)
	}
	wp := z.work() + 8
	return z.setResult(bigfloat.Pow(at(xf, wp), at(yf, wp)), r)
}

// ---- hyperbolics -------------------------------------------------------

// expPair returns e^|x| and e^-|x| at precision wp; x must be finite and
// nonzero.
func expPair(xf *big.Float, wp uint) (ep, en *big.Float) {
	a := new(big.Float).SetPrec(wp).Abs(xf)
	ep = bigfloat.Exp(a)
	en = new(big.Float).SetPrec(wp).Quo(fone(wp), ep)
	return ep, en
}

var two = big.NewFloat(2)

// Cosh sets z = cosh x.
func (z *Num) Cosh(x *Num, r Rnd) int {
	xf := x.val()
	switch {
	case x.nan:
		z.setNaN()
		return 0
	case xf.IsInf():
		z.SetInf(1)
		return 0
	case xf.Sign() == 0:
		return z.SetInt64(1, r)
	}
	ep, en := expPair(xf, z.work()+4)
	t := new(big.Float).SetPrec(z.work() + 4).Add(ep, en)
	t.Quo(t, two)
	return z.setResult(t, r)
}

// Sinh sets z = sinh x.
func (z *Num) Sinh(x *Num, r Rnd) int {
	xf := x.val()
	switch {
	case x.nan:
		z.setNaN()
		return 0
	case xf.IsInf() || xf.Sign() == 0:
		return z.setResult(xf, r)
	}
	wp := smallGuard(z.work(), xf) + 4
	ep, en := expPair(xf, wp)
	t := new(big.Float).SetPrec(wp).Sub(ep, en)
	t.Quo(t, two)
	if xf.Signbit() {
		t.Neg(t)
	}
	return z.setResult(t, r)
}

// SinhCosh computes sinh and cosh of x simultaneously into zs and zc.
func (zs *Num) SinhCosh(zc, x *Num, r Rnd) (int, int) {
	xf := x.val()
	switch {
	case x.nan:
		zs.setNaN()
		zc.setNaN()
		return 0, 0
	case xf.IsInf():
		t1 := zs.setResult(xf, r)
		zc.SetInf(1)
		return t1, 0
	case xf.Sign() == 0:
		t1 := zs.setResult(xf, r)
		t2 := zc.SetInt64(1, r)
		return t1, t2
	}
	wp := smallGuard(zs.work(), xf) + 4
	if w := zc.work() + 4; w > wp {
		wp = w
	}
	ep, en := expPair(xf, wp)
	s := new(big.Float).SetPrec(wp).Sub(ep, en)
	s.Quo(s, two)
	if xf.Signbit() {
		s.Neg(s)
	}
	c := new(big.Float).SetPrec(wp).Add(ep, en)
	c.Quo(c, two)
	t1 := zs.setResult(s, r)
	t2 := zc.setResult(c, r)
	return t1, t2
}

// tanhSatExp is the exponent beyond which tanh and coth saturate at ±1 for
// any practical precision.
const tanhSatExp = 40

// Tanh sets z = tanh x.
func (z *Num) Tanh(x *Num, r Rnd) int {
	xf := x.val()
	switch {
	case x.nan:
		z.setNaN()
		return 0
	case xf.Sign() == 0:
		return z.setResult(xf, r)
	case xf.IsInf() || xf.MantExp(nil) > tanhSatExp:
		v := int64(1)
		if xf.Signbit() {
			v = -1
		}
		return z.SetInt64(v, r)
	}
	wp := smallGuard(z.work(), xf) + 4
	ep, en := expPair(xf, wp)
	num := new(big.Float).SetPrec(wp).Sub(ep, en)
	den := new(big.Float).SetPrec(wp).Add(ep, en)
	num.Quo(num, den)
	if xf.Signbit() {
		num.Neg(num)
	}
	return z.setResult(num, r)
}

func (z *Num) recipOf(base func(*Num, *Num, Rnd) int, x *Num, r Rnd) int {
	tmp := newTemp(z.work() + 4)
	base(tmp, x, r)
	if tmp.nan {
		z.setNaN()
		return 0
	}
	wp := z.work() + 4
	u := new(big.Float).SetPrec(wp)
	if tmp.val().Sign() == 0 {
		sign := 1
		if tmp.val().Signbit() {
			sign = -1
		}
		z.SetInf(sign)
		return 0
	}
	u.Quo(fone(wp), tmp.val())
	return z.setResult(u, r)
}

// Sech sets z = 1/cosh x.
func (z *Num) Sech(x *Num, r Rnd) int { return z.recipOf((*Num).Cosh, x, r) }

// Csch sets z = 1/sinh x.
func (z *Num) Csch(x *Num, r Rnd) int { return z.recipOf((*Num).Sinh, x, r) }

// Coth sets z = 1/tanh x.
func (z *Num) Coth(x *Num, r Rnd) int { return z.recipOf((*Num).Tanh, x, r) }

// ---- inverse hyperbolics -----------------------------------------------

// Acosh sets z = arcosh x; operands below 1 are NaN.
func (z *Num) Acosh(x *Num, r Rnd) int {
	xf := x.val()
	switch {
	case x.nan:
		z.setNaN()
		return 0
	case xf.IsInf() && !xf.Signbit():
		z.SetInf(1)
		return 0
	}
	c := xf.Cmp(fone(2))
	if c < 0 {
		z.setNaN()
		return 0
	}
	if c == 0 {
		z.SetZero(1)
		return 0
	}
	wp := z.work() + 8
	xx := at(xf, wp)
	t := new(big.Float).SetPrec(wp).Mul(xx, xx)
	t.Sub(t, fone(wp))
	t.Sqrt(t)
	t.Add(t, xx)
	return z.setResult(bigfloat.Log(t), r)
}

// Asinh sets z = arsinh x.
func (z *Num) Asinh(x *Num, r Rnd) int {
	xf := x.val()
	switch {
	case x.nan:
		z.setNaN()
		return 0
	case xf.IsInf() || xf.Sign() == 0:
		return z.setResult(xf, r)
	}
	wp := smallGuard(z.work(), xf) + 8
	a := new(big.Float).SetPrec(wp).Abs(xf)
	t := new(big.Float).SetPrec(wp).Mul(a, a)
	t.Add(t, fone(wp))
	t.Sqrt(t)
	t.Add(t, a)
	t = bigfloat.Log(t)
	if xf.Signbit() {
		t.Neg(t)
	}
	return z.setResult(t, r)
}

// Atanh sets z = artanh x; |x| > 1 is NaN, ±1 maps to ±Inf.
func (z *Num) Atanh(x *Num, r Rnd) int {
	xf := x.val()
	switch {
	case x.nan || xf.IsInf():
		z.setNaN()
		return 0
	case xf.Sign() == 0:
		return z.setResult(xf, r)
	}
	a := new(big.Float).Abs(xf)
	switch a.Cmp(fone(2)) {
	case 1:
		z.setNaN()
		return 0
	case 0:
		sign := 1
		if xf.Signbit() {
			sign = -1
		}
		z.SetInf(sign)
		return 0
	}
	wp := smallGuard(z.work(), xf) + 8
	aa := at(a, wp)
	num := new(big.Float).SetPrec(wp).Add(fone(wp), aa)
	den := new(big.Float).SetPrec(wp).Sub(fone(wp), aa)
	num.Quo(num, den)
	t := bigfloat.Log(num)
	t.Quo(t, two)
	if xf.Signbit() {
		t.Neg(t)
	}
	return z.setResult(t, r)
}

// ---- agm and hypot -----------------------------------------------------

// Agm sets z to the arithmetic-geometric mean of x and y. Negative
// operands are NaN, a zero operand collapses the mean to +0.
func (z *Num) Agm(x, y *Num, r Rnd) int {
	xf, yf := x.val(), y.val()
	if x.nan || y.nan {
		z.setNaN()
		return 0
	}
	if (xf.Signbit() && xf.Sign() != 0) || (yf.Signbit() && yf.Sign() != 0) {
		z.setNaN()
		return 0
	}
	if xf.Sign() == 0 || yf.Sign() == 0 {
		z.SetZero(1)
		return 0
	}
	if xf.IsInf() || yf.IsInf() {
		z.SetInf(1)
		return 0
	}
	wp := z.work() + 8
	a := at(xf, wp)
	g := at(yf, wp)
	for i := 0; i < 4*64; i++ {
		t := new(big.Float).SetPrec(wp).Add(a, g)
		t.Quo(t, two)
		u := new(big.Float).SetPrec(wp).Mul(a, g)
		u.Sqrt(u)
		a, g = t, u
		d := new(big.Float).SetPrec(wp).Sub(a, g)
		if d.Sign() == 0 || d.MantExp(nil) < a.MantExp(nil)-int(wp) {
			break
		}
	}
	return z.setResult(a, r)
}

// Hypot sets z = √(x² + y²); an infinite operand dominates even a NaN one.
func (z *Num) Hypot(x, y *Num, r Rnd) int {
	xf, yf := x.val(), y.val()
	if (!x.nan && xf.IsInf()) || (!y.nan && yf.IsInf()) {
		z.SetInf(1)
		return 0
	}
	if x.nan || y.nan {
		z.setNaN()
		return 0
	}
	wp := z.work() + 8
	t := new(big.Float).SetPrec(wp).Mul(xf, xf)
	u := new(big.Float).SetPrec(wp).Mul(yf, yf)
	t.Add(t, u)
	t.Sqrt(t)
	return z.setResult(t, r)
}
