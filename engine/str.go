package engine

import (
	"fmt"
	"math"
	"math/big"
	"strings"
)

// Base bounds for textual conversion.
const (
	BaseMin = 2
	BaseMax = 62
)

// Special-value tokens produced by Digits.
const (
	StrNaN    = "@NaN@"
	StrInf    = "@Inf@"
	StrNegInf = "-@Inf@"
)

// digitsFor returns the digit count that guarantees round-tripping a
// p-bit mantissa through base b: 1 + ceil(p·ln2 / ln b).
func digitsFor(p uint, base int) int {
	return 1 + int(math.Ceil(float64(p)*math.Ln2/math.Log(float64(base))))
}

// cmpPow compares m·2**exp against base**E exactly. m must be positive.
func cmpPow(m *big.Int, exp int, base int64, E int) int {
	lhs := new(big.Int).Set(m)
	rhs := big.NewInt(1)
	if exp >= 0 {
		lhs.Lsh(lhs, uint(exp))
	} else {
		rhs.Lsh(rhs, uint(-exp))
	}
	b := big.NewInt(base)
	if E >= 0 {
		rhs.Mul(rhs, new(big.Int).Exp(b, big.NewInt(int64(E)), nil))
	} else {
		lhs.Mul(lhs, new(big.Int).Exp(b, big.NewInt(int64(-E)), nil))
	}
	return lhs.Cmp(rhs)
}

// Digits renders z as a signed string of n significant base-b digits and a
// base-b exponent E, with the convention z = ±0.digits × bᴱ. n = 0 asks
// for the digit count that round-trips z's precision. The digit alphabet
// is 0-9, a-z, A-Z. Rounding is exact: the digit string is the value of z
// rounded to n digits under r, computed without intermediate floating
// error.
func (z *Num) Digits(base, n int, r Rnd) (string, int) {
	zf := z.val()
	switch {
	case z.nan:
		return StrNaN, 0
	case zf.IsInf():
		if zf.Signbit() {
			return StrNegInf, 0
		}
		return StrInf, 0
	}
	if n <= 0 {
		n = digitsFor(z.prec(), base)
	}
	if zf.Sign() == 0 {
		s := strings.Repeat("0", n)
		if zf.Signbit() {
			s = "-" + s
		}
		return s, 0
	}

	neg := zf.Signbit()
	a := new(big.Float).SetPrec(zf.Prec()).Abs(zf)
	m, exp := split(a)
	b := int64(base)

	// E is the unique exponent with b^(E-1) <= |z| < b^E, estimated from
	// the binary magnitude and corrected by exact comparisons.
	E := int(math.Floor(float64(exp+m.BitLen())*math.Ln2/math.Log(float64(base)))) + 1
	for cmpPow(m, exp, b, E) >= 0 {
		E++
	}
	for cmpPow(m, exp, b, E-1) < 0 {
		E--
	}

	// Scale |z| by b^(n-E) into [b^(n-1), b^n) as an exact ratio, then
	// round the quotient to an integer of exactly n digits.
	num := new(big.Int).Set(m)
	den := big.NewInt(1)
	if exp >= 0 {
		num.Lsh(num, uint(exp))
	} else {
		den.Lsh(den, uint(-exp))
	}
	bb := big.NewInt(b)
	if k := n - E; k >= 0 {
		num.Mul(num, new(big.Int).Exp(bb, big.NewInt(int64(k)), nil))
	} else {
		den.Mul(den, new(big.Int).Exp(bb, big.NewInt(int64(-k)), nil))
	}
	d, rem := new(big.Int).QuoRem(num, den, new(big.Int))
	if rem.Sign() != 0 {
		up := false
		switch r {
		case RndZ:
		case RndA:
			up = true
		case RndU:
			up = !neg
		case RndD:
			up = neg
		default: // RndN, ties to even
			twice := new(big.Int).Lsh(rem, 1)
			if c := twice.Cmp(den); c > 0 || (c == 0 && d.Bit(0) == 1) {
				up = true
			}
		}
		if up {
			d.Add(d, oneInt)
		}
	}
	bn := new(big.Int).Exp(bb, big.NewInt(int64(n)), nil)
	if d.Cmp(bn) >= 0 { // carried into an extra digit
		d.Quo(bn, bb) // b^(n-1): leading 1, trailing zeros
		E++
	}
	s := d.Text(base)
	if neg {
		s = "-" + s
	}
	return s, E
}

// ---- parsing -----------------------------------------------------------

func digitVal(c byte, base int) (int, bool) {
	var v int
	switch {
	case c >= '0' && c <= '9':
		v = int(c - '0')
	case c >= 'a' && c <= 'z':
		v = int(c-'a') + 10
	case c >= 'A' && c <= 'Z':
		if base <= 36 {
			v = int(c-'A') + 10
		} else {
			v = int(c-'A') + 36
		}
	default:
		return 0, false
	}
	if v >= base {
		return 0, false
	}
	return v, true
}

func isSpecial(s, tok string) bool { return strings.EqualFold(s, tok) }

// SetString parses s as a base-b number and stores it in z rounded under
// r, returning the exactness ternary. The mantissa may contain one
// radix point; an exponent is introduced by '@' in any base, or by 'e'/'E'
// when the base is at most 10, and is always a decimal power of the base.
// The special values nan, inf and infinity (and the @-delimited render
// tokens) are accepted case-insensitively with an optional sign. z is
// left untouched on error.
func (z *Num) SetString(s string, base int, r Rnd) (int, error) {
	z.val()
	orig := s
	fail := func() (int, error) {
		return 0, fmt.Errorf("invalid number %q for base %d", orig, base)
	}
	neg := false
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	switch {
	case isSpecial(s, "nan") || isSpecial(s, "@nan@"):
		z.setNaN()
		return 0, nil
	case isSpecial(s, "inf") || isSpecial(s, "infinity") || isSpecial(s, "@inf@"):
		sign := 1
		if neg {
			sign = -1
		}
		z.SetInf(sign)
		return 0, nil
	}
	if s == "" {
		return fail()
	}

	mant := new(big.Int)
	bb := big.NewInt(int64(base))
	ndigits, frac := 0, 0
	seenPoint := false
	i := 0
	for ; i < len(s); i++ {
		c := s[i]
		if c == '.' {
			if seenPoint {
				return fail()
			}
			seenPoint = true
			continue
		}
		if c == '@' || ((c == 'e' || c == 'E') && base <= 10) {
			break
		}
		v, ok := digitVal(c, base)
		if !ok {
			return fail()
		}
		mant.Mul(mant, bb)
		mant.Add(mant, big.NewInt(int64(v)))
		ndigits++
		if seenPoint {
			frac++
		}
	}
	if ndigits == 0 {
		return fail()
	}
	expo := 0
	if i < len(s) {
		es := s[i+1:]
		if es == "" {
			return fail()
		}
		eneg := false
		if es[0] == '+' || es[0] == '-' {
			eneg = es[0] == '-'
			es = es[1:]
		}
		if es == "" {
			return fail()
		}
		for j := 0; j < len(es); j++ {
			if es[j] < '0' || es[j] > '9' {
				return fail()
			}
			expo = expo*10 + int(es[j]-'0')
			if expo > 1<<30 {
				return fail()
			}
		}
		if eneg {
			expo = -expo
		}
	}

	// value = mant · base^(expo-frac), rounded in one exact division.
	num := mant
	den := big.NewInt(1)
	if k := expo - frac; k >= 0 {
		num.Mul(num, new(big.Int).Exp(bb, big.NewInt(int64(k)), nil))
	} else {
		den.Mul(den, new(big.Int).Exp(bb, big.NewInt(int64(-k)), nil))
	}
	a := new(big.Float).SetPrec(uint(max(num.BitLen(), 1))).SetInt(num)
	if neg {
		a.Neg(a)
	}
	d := new(big.Float).SetPrec(uint(max(den.BitLen(), 1))).SetInt(den)
	f := z.val()
	z.nan = false
	f.SetMode(r.mode())
	f.Quo(a, d)
	return ternary(f.Acc()), nil
}
