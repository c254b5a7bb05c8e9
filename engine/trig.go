package engine

import (
	"math/big"

	"github.com/ALTree/bigfloat"
)

// ---- cached constants --------------------------------------------------

// constCache holds the highest-precision value computed so far for each
// shared constant. Lower-precision requests round the cached value down.
// Access is single-threaded like the rest of the package.
var constCache struct {
	pi, log2, e *big.Float
}

const cachePad = 32

// atanInv computes atan(1/m) by its Taylor series at precision wp.
func atanInv(m int64, wp uint) *big.Float {
	mf := new(big.Float).SetPrec(wp).SetInt64(m)
	m2 := new(big.Float).SetPrec(wp).Mul(mf, mf)
	pow := new(big.Float).SetPrec(wp).Quo(fone(wp), mf)
	sum := new(big.Float).SetPrec(wp).Set(pow)
	term := new(big.Float).SetPrec(wp)
	for k := int64(1); ; k++ {
		pow.Quo(pow, m2)
		term.Quo(pow, new(big.Float).SetPrec(wp).SetInt64(2*k+1))
		if k%2 == 1 {
			sum.Sub(sum, term)
		} else {
			sum.Add(sum, term)
		}
		if term.Sign() == 0 || term.MantExp(nil) < sum.MantExp(nil)-int(wp) {
			break
		}
	}
	return sum
}

// piAt returns π to wp bits, filling the cache on a miss.
// Machin: π = 16·atan(1/5) - 4·atan(1/239).
func piAt(wp uint) *big.Float {
	if constCache.pi == nil || constCache.pi.Prec() < wp {
		cp := wp + cachePad
		a := atanInv(5, cp+16)
		b := atanInv(239, cp+16)
		t := new(big.Float).SetPrec(cp)
		t.Sub(new(big.Float).SetPrec(cp+16).SetMantExp(a, 4),
			new(big.Float).SetPrec(cp+16).SetMantExp(b, 2))
		constCache.pi = t
	}
	return at(constCache.pi, wp)
}

func log2At(wp uint) *big.Float {
	if constCache.log2 == nil || constCache.log2.Prec() < wp {
		cp := wp + cachePad
		constCache.log2 = bigfloat.Log(new(big.Float).SetPrec(cp).SetInt64(2))
	}
	return at(constCache.log2, wp)
}

func eAt(wp uint) *big.Float {
	if constCache.e == nil || constCache.e.Prec() < wp {
		cp := wp + cachePad
		constCache.e = bigfloat.Exp(fone(cp))
	}
	return at(constCache.e, wp)
}

// FreeCache drops the memoized constants. Subsequent constant requests
// recompute them; the digits obtained before and after agree.
func FreeCache() {
	constCache.pi, constCache.log2, constCache.e = nil, nil, nil
}

// ConstLog2 sets z = ln 2.
func (z *Num) ConstLog2(r Rnd) int { return z.setResult(log2At(z.work()), r) }

// ConstPi sets z = π.
func (z *Num) ConstPi(r Rnd) int { return z.setResult(piAt(z.work()), r) }

// ConstE sets z = e.
func (z *Num) ConstE(r Rnd) int { return z.setResult(eAt(z.work()), r) }

// ---- argument reduction and series -------------------------------------

// trigReduce writes x as n·(π/2) + t with |t| ≤ π/4 and returns n mod 4
// together with t at precision wp. Large arguments widen the reduction
// precision to absorb the cancellation in x - n·π/2.
func trigReduce(xf *big.Float, wp uint) (q int, t *big.Float) {
	rp := wp + 32
	if e := xf.MantExp(nil); e > 0 {
		rp += uint(e)
	}
	half := new(big.Float).SetPrec(rp).Quo(piAt(rp), two)
	n := new(big.Float).SetPrec(rp).Quo(at(xf, rp), half)
	ni := roundInt(n, intTiesEven)
	t = new(big.Float).SetPrec(rp).SetInt(ni)
	t.Mul(t, half)
	t.Sub(at(xf, rp), t)
	q = int(new(big.Int).And(ni, big.NewInt(3)).Int64())
	return q, t
}

// sinSeries sums the Taylor series of sin around 0; |x| should be at most
// π/4 for fast convergence.
func sinSeries(x *big.Float, wp uint) *big.Float {
	sum := new(big.Float).SetPrec(wp).Set(x)
	term := new(big.Float).SetPrec(wp).Set(x)
	mx2 := new(big.Float).SetPrec(wp).Mul(x, x)
	mx2.Neg(mx2)
	for k := int64(1); ; k++ {
		term.Mul(term, mx2)
		term.Quo(term, new(big.Float).SetPrec(wp).SetInt64(2*k*(2*k+1)))
		sum.Add(sum, term)
		if term.Sign() == 0 || (sum.Sign() != 0 && term.MantExp(nil) < sum.MantExp(nil)-int(wp)) {
			break
		}
	}
	return sum
}

func cosSeries(x *big.Float, wp uint) *big.Float {
	sum := fone(wp)
	term := fone(wp)
	mx2 := new(big.Float).SetPrec(wp).Mul(x, x)
	mx2.Neg(mx2)
	for k := int64(1); ; k++ {
		term.Mul(term, mx2)
		term.Quo(term, new(big.Float).SetPrec(wp).SetInt64((2*k-1)*2*k))
		sum.Add(sum, term)
		if term.Sign() == 0 || (sum.Sign() != 0 && term.MantExp(nil) < sum.MantExp(nil)-int(wp)) {
			break
		}
	}
	return sum
}

// sinAt and cosAt evaluate on a reduced argument with the quadrant applied.

func sinAt(q int, t *big.Float, wp uint) *big.Float {
	var res *big.Float
	switch q {
	case 0, 2:
		res = sinSeries(t, wp)
	default:
		res = cosSeries(t, wp)
	}
	if q >= 2 {
		res.Neg(res)
	}
	return res
}

func cosAt(q int, t *big.Float, wp uint) *big.Float {
	var res *big.Float
	switch q {
	case 0, 2:
		res = cosSeries(t, wp)
	default:
		res = sinSeries(t, wp)
	}
	if q == 1 || q == 2 {
		res.Neg(res)
	}
	return res
}

// ---- circular functions ------------------------------------------------

// Sin sets z = sin x; infinities are NaN.
func (z *Num) Sin(x *Num, r Rnd) int {
	xf := x.val()
	switch {
	case x.nan || xf.IsInf():
		z.setNaN()
		return 0
	case xf.Sign() == 0:
		return z.setResult(xf, r) // ±0
	}
	wp := z.work() + 8
	q, t := trigReduce(xf, wp)
	return z.setResult(sinAt(q, t, wp), r)
}

// Cos sets z = cos x; infinities are NaN.
func (z *Num) Cos(x *Num, r Rnd) int {
	xf := x.val()
	switch {
	case x.nan || xf.IsInf():
		z.setNaN()
		return 0
	case xf.Sign() == 0:
		return z.SetInt64(1, r)
	}
	wp := z.work() + 8
	q, t := trigReduce(xf, wp)
	return z.setResult(cosAt(q, t, wp), r)
}

// SinCos computes sin and cos of x simultaneously into zs and zc, sharing
// one argument reduction.
func (zs *Num) SinCos(zc, x *Num, r Rnd) (int, int) {
	xf := x.val()
	switch {
	case x.nan || xf.IsInf():
		zs.setNaN()
		zc.setNaN()
		return 0, 0
	case xf.Sign() == 0:
		t1 := zs.setResult(xf, r)
		t2 := zc.SetInt64(1, r)
		return t1, t2
	}
	wp := zs.work() + 8
	if w := zc.work() + 8; w > wp {
		wp = w
	}
	q, t := trigReduce(xf, wp)
	s := sinAt(q, t, wp)
	c := cosAt(q, t, wp)
	t1 := zs.setResult(s, r)
	t2 := zc.setResult(c, r)
	return t1, t2
}

// Tan sets z = tan x.
func (z *Num) Tan(x *Num, r Rnd) int {
	xf := x.val()
	switch {
	case x.nan || xf.IsInf():
		z.setNaN()
		return 0
	case xf.Sign() == 0:
		return z.setResult(xf, r)
	}
	wp := z.work() + 8
	q, t := trigReduce(xf, wp)
	s := sinAt(q, t, wp)
	c := cosAt(q, t, wp)
	if c.Sign() == 0 {
		z.setNaN()
		return 0
	}
	s.Quo(s, c)
	return z.setResult(s, r)
}

// Sec sets z = 1/cos x.
func (z *Num) Sec(x *Num, r Rnd) int { return z.recipOf((*Num).Cos, x, r) }

// Csc sets z = 1/sin x.
func (z *Num) Csc(x *Num, r Rnd) int { return z.recipOf((*Num).Sin, x, r) }

// Cot sets z = 1/tan x.
func (z *Num) Cot(x *Num, r Rnd) int { return z.recipOf((*Num).Tan, x, r) }

// ---- inverse circular functions ----------------------------------------

// atanSmall evaluates atan on (0, 1] by halving the argument until the
// Taylor series converges quickly, then doubling the result back.
func atanSmall(x *big.Float, wp uint) *big.Float {
	t := at(x, wp)
	h := 0
	for t.Sign() != 0 && t.MantExp(nil) > -4 {
		u := new(big.Float).SetPrec(wp).Mul(t, t)
		u.Add(u, fone(wp))
		u.Sqrt(u)
		u.Add(u, fone(wp))
		t.Quo(t, u)
		h++
	}
	sum := new(big.Float).SetPrec(wp).Set(t)
	pw := new(big.Float).SetPrec(wp).Set(t)
	mt2 := new(big.Float).SetPrec(wp).Mul(t, t)
	mt2.Neg(mt2)
	term := new(big.Float).SetPrec(wp)
	for k := int64(1); ; k++ {
		pw.Mul(pw, mt2)
		term.Quo(pw, new(big.Float).SetPrec(wp).SetInt64(2*k+1))
		sum.Add(sum, term)
		if term.Sign() == 0 || (sum.Sign() != 0 && term.MantExp(nil) < sum.MantExp(nil)-int(wp)) {
			break
		}
	}
	return new(big.Float).SetPrec(wp).SetMantExp(sum, h)
}

// atanPos evaluates atan for finite positive x at precision wp.
func atanPos(x *big.Float, wp uint) *big.Float {
	if x.Cmp(fone(2)) > 0 {
		inv := new(big.Float).SetPrec(wp).Quo(fone(wp), x)
		res := new(big.Float).SetPrec(wp).Quo(piAt(wp), two)
		res.Sub(res, atanSmall(inv, wp))
		return res
	}
	return atanSmall(x, wp)
}

// Atan sets z = atan x; infinities map to ±π/2.
func (z *Num) Atan(x *Num, r Rnd) int {
	xf := x.val()
	switch {
	case x.nan:
		z.setNaN()
		return 0
	case xf.Sign() == 0:
		return z.setResult(xf, r)
	}
	wp := z.work() + 8
	var res *big.Float
	if xf.IsInf() {
		res = new(big.Float).SetPrec(wp).Quo(piAt(wp), two)
	} else {
		res = atanPos(new(big.Float).SetPrec(wp).Abs(xf), wp)
	}
	if xf.Signbit() {
		res.Neg(res)
	}
	return z.setResult(res, r)
}

// Asin sets z = asin x; operands outside [-1, 1] are NaN.
func (z *Num) Asin(x *Num, r Rnd) int {
	xf := x.val()
	switch {
	case x.nan || xf.IsInf():
		z.setNaN()
		return 0
	case xf.Sign() == 0:
		return z.setResult(xf, r)
	}
	wp := z.work() + 8
	a := new(big.Float).SetPrec(wp).Abs(xf)
	switch a.Cmp(fone(2)) {
	case 1:
		z.setNaN()
		return 0
	case 0:
		res := new(big.Float).SetPrec(wp).Quo(piAt(wp), two)
		if xf.Signbit() {
			res.Neg(res)
		}
		return z.setResult(res, r)
	}
	// asin x = atan(x / sqrt((1-x)(1+x)))
	u := new(big.Float).SetPrec(wp).Sub(fone(wp), a)
	v := new(big.Float).SetPrec(wp).Add(fone(wp), a)
	u.Mul(u, v)
	u.Sqrt(u)
	u.Quo(a, u)
	res := atanPos(u, wp)
	if xf.Signbit() {
		res.Neg(res)
	}
	return z.setResult(res, r)
}

// Acos sets z = acos x; operands outside [-1, 1] are NaN.
func (z *Num) Acos(x *Num, r Rnd) int {
	xf := x.val()
	if x.nan || xf.IsInf() {
		z.setNaN()
		return 0
	}
	wp := z.work() + 8
	a := new(big.Float).SetPrec(wp).Abs(xf)
	switch a.Cmp(fone(2)) {
	case 1:
		z.setNaN()
		return 0
	case 0:
		if xf.Signbit() {
			return z.setResult(piAt(wp), r)
		}
		z.SetZero(1)
		return 0
	}
	if xf.Sign() == 0 {
		return z.setResult(new(big.Float).SetPrec(wp).Quo(piAt(wp), two), r)
	}
	// acos x = atan(sqrt((1-x)(1+x)) / x), shifted by π for negative x.
	u := new(big.Float).SetPrec(wp).Sub(fone(wp), a)
	v := new(big.Float).SetPrec(wp).Add(fone(wp), a)
	u.Mul(u, v)
	u.Sqrt(u)
	u.Quo(u, a)
	res := atanPos(u, wp)
	if xf.Signbit() {
		res.Sub(piAt(wp), res)
	}
	return z.setResult(res, r)
}

// Atan2 sets z = atan2(y, x), the angle of the point (x, y), following the
// IEEE special cases for zeros and infinities.
func (z *Num) Atan2(y, x *Num, r Rnd) int {
	yf, xf := y.val(), x.val()
	if y.nan || x.nan {
		z.setNaN()
		return 0
	}
	wp := z.work() + 8
	ySign := yf.Signbit()
	withSign := func(t *big.Float) int {
		if ySign {
			t.Neg(t)
		}
		return z.setResult(t, r)
	}
	switch {
	case yf.Sign() == 0:
		if xf.Signbit() { // includes -0 and -Inf
			return withSign(at(piAt(wp), wp))
		}
		sign := 1
		if ySign {
			sign = -1
		}
		z.SetZero(sign)
		return 0
	case xf.Sign() == 0 && !xf.IsInf():
		return withSign(new(big.Float).SetPrec(wp).Quo(piAt(wp), two))
	case yf.IsInf() && xf.IsInf():
		t := new(big.Float).SetPrec(wp).Quo(piAt(wp), big.NewFloat(4))
		if xf.Signbit() {
			t.Sub(piAt(wp), t) // 3π/4
		}
		return withSign(t)
	case yf.IsInf():
		return withSign(new(big.Float).SetPrec(wp).Quo(piAt(wp), two))
	case xf.IsInf():
		if xf.Signbit() {
			return withSign(at(piAt(wp), wp))
		}
		sign := 1
		if ySign {
			sign = -1
		}
		z.SetZero(sign)
		return 0
	}
	q := new(big.Float).SetPrec(wp).Quo(yf, xf)
	q.Abs(q)
	res := atanPos(q, wp)
	if xf.Signbit() {
		res.Sub(piAt(wp), res)
	}
	return withSign(res)
}

// ---- Bessel ------------------------------------------------------------

// jnOrderMax bounds the order of the ascending series; beyond it the value
// underflows the representable exponent range for any double-sized operand.
const jnOrderMax = 1 << 20

// Jn sets z to the Bessel function of the first kind of integer order n.
func (z *Num) Jn(n int64, x *Num, r Rnd) int {
	xf := x.val()
	if x.nan {
		z.setNaN()
		return 0
	}
	if xf.IsInf() {
		z.SetZero(1)
		return 0
	}
	neg := false
	m := n
	if m < 0 {
		m = -m
		neg = m%2 == 1
	}
	if xf.Sign() == 0 {
		if n == 0 {
			return z.SetInt64(1, r)
		}
		sign := 1
		if (m%2 == 1 && xf.Signbit()) != neg {
			sign = -1
		}
		z.SetZero(sign)
		return 0
	}
	if m > jnOrderMax {
		z.SetZero(1)
		return 0
	}
	// Ascending series: J_m(x) = Σ (-1)^k / (k! (m+k)!) · (x/2)^(2k+m).
	// The partial terms grow to roughly e^|x| before shrinking, so the
	// working precision widens with |x| to absorb the cancellation.
	wp := z.work() + 32
	if ax, _ := new(big.Float).Abs(xf).Float64(); ax > 1 {
		if ax > 1<<22 {
			ax = 1 << 22
		}
		wp += uint(3 * ax)
	}
	half := new(big.Float).SetPrec(wp).Quo(xf, two)
	mq := new(big.Float).SetPrec(wp).Mul(half, half)
	mq.Neg(mq) // -x²/4
	term := powUintAt(half, uint64(m), wp)
	if m > 0 {
		fact := new(big.Int).MulRange(1, m)
		term.Quo(term, new(big.Float).SetPrec(wp).SetInt(fact))
	}
	sum := new(big.Float).SetPrec(wp).Set(term)
	maxE := sum.MantExp(nil)
	for k := int64(1); ; k++ {
		term.Mul(term, mq)
		term.Quo(term, new(big.Float).SetPrec(wp).SetInt64(k))
		term.Quo(term, new(big.Float).SetPrec(wp).SetInt64(m+k))
		sum.Add(sum, term)
		if e := term.MantExp(nil); term.Sign() == 0 || e < maxE-int(wp) {
			break
		} else if e > maxE {
			maxE = e
		}
	}
	if neg {
		sum.Neg(sum)
	}
	return z.setResult(sum, r)
}
