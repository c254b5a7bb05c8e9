package engine_test

import (
	"testing"

	"github.com/feather-lang/mpf/engine"
)

// digits10 renders z with a fixed digit count for comparison.
func digits10(t *testing.T, z *engine.Num, n int) (string, int) {
	t.Helper()
	return z.Digits(10, n, engine.RndN)
}

func TestAddSubMulDiv(t *testing.T) {
	tests := []struct {
		name  string
		x, y  string
		op    func(z, x, y *engine.Num, r engine.Rnd) int
		want  string
		wantE int
	}{
		{"add", "1.5", "2.25", (*engine.Num).Add, "375", 1},
		{"sub", "1.5", "2.25", (*engine.Num).Sub, "-75", 0},
		{"mul", "1.5", "2.25", (*engine.Num).Mul, "3375", 1},
		{"div", "1.5", "0.5", (*engine.Num).Div, "300", 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			x := mustFromString(t, tc.x, 64)
			y := mustFromString(t, tc.y, 64)
			z := engine.New(64)
			if tern := tc.op(z, x, y, engine.RndN); tern != 0 {
				t.Fatalf("exact operation returned ternary %d", tern)
			}
			got, E := digits10(t, z, len(tc.want))
			if got != tc.want || E != tc.wantE {
				t.Fatalf("got %q E=%d, want %q E=%d", got, E, tc.want, tc.wantE)
			}
		})
	}
}

func TestAddTernary(t *testing.T) {
	// 1 + 2^-100 cannot be held in 53 bits; rounding to nearest drops the
	// tail, so the stored value is below the exact sum.
	x := mustFromString(t, "1", 53)
	y := engine.New(120)
	y.SetInt64(1, engine.RndN)
	tiny := engine.New(120)
	tiny.SetInt64(1, engine.RndN)
	for i := 0; i < 100; i++ {
		tiny.DivInt64(tiny, 2, engine.RndN)
	}
	y.Add(y, tiny, engine.RndN)

	z := engine.New(53)
	if tern := z.Add(x, y, engine.RndN); tern >= 0 {
		t.Fatalf("ternary = %d, want negative", tern)
	}
	if z.CmpInt64(2) != 0 {
		t.Fatal("1 + (1+2^-100) should round to 2 at 53 bits")
	}
}

func TestSpecialValueArith(t *testing.T) {
	inf := engine.New(53)
	inf.SetInf(1)
	ninf := engine.New(53)
	ninf.SetInf(-1)
	zero := engine.New(53)
	zero.SetZero(1)
	nan := engine.New(53)
	one := mustFromString(t, "1", 53)

	z := engine.New(53)

	z.Add(inf, ninf, engine.RndN)
	if !z.IsNaN() {
		t.Fatal("inf + -inf is not NaN")
	}
	z.Sub(inf, inf, engine.RndN)
	if !z.IsNaN() {
		t.Fatal("inf - inf is not NaN")
	}
	z.Mul(zero, inf, engine.RndN)
	if !z.IsNaN() {
		t.Fatal("0 * inf is not NaN")
	}
	z.Div(zero, zero, engine.RndN)
	if !z.IsNaN() {
		t.Fatal("0 / 0 is not NaN")
	}
	z.Div(inf, ninf, engine.RndN)
	if !z.IsNaN() {
		t.Fatal("inf / inf is not NaN")
	}
	z.Div(one, zero, engine.RndN)
	if !z.IsInf() || z.Signbit() {
		t.Fatal("1 / +0 is not +Inf")
	}
	z.Add(one, nan, engine.RndN)
	if !z.IsNaN() {
		t.Fatal("NaN does not propagate through Add")
	}
	z.Add(one, inf, engine.RndN)
	if !z.IsInf() || z.Signbit() {
		t.Fatal("1 + inf is not +Inf")
	}
}

func TestLeftOperandVariants(t *testing.T) {
	x := mustFromString(t, "2", 64)
	z := engine.New(64)

	z.Int64Sub(5, x, engine.RndN)
	if z.CmpInt64(3) != 0 {
		t.Fatal("5 - 2 != 3")
	}
	z.SubInt64(x, 5, engine.RndN)
	if z.CmpInt64(-3) != 0 {
		t.Fatal("2 - 5 != -3")
	}
	z.Float64Sub(0.5, x, engine.RndN)
	if z.CmpFloat64(-1.5) != 0 {
		t.Fatal("0.5 - 2 != -1.5")
	}
	z.Int64Div(1, x, engine.RndN)
	if z.CmpFloat64(0.5) != 0 {
		t.Fatal("1 / 2 != 0.5")
	}
	z.Float64Div(3, x, engine.RndN)
	if z.CmpFloat64(1.5) != 0 {
		t.Fatal("3 / 2 != 1.5")
	}
	z.AddInt64(x, 7, engine.RndN)
	if z.CmpInt64(9) != 0 {
		t.Fatal("2 + 7 != 9")
	}
	z.MulFloat64(x, 2.5, engine.RndN)
	if z.CmpInt64(5) != 0 {
		t.Fatal("2 * 2.5 != 5")
	}
}

func TestAliasing(t *testing.T) {
	z := mustFromString(t, "3", 64)
	z.Mul(z, z, engine.RndN)
	if z.CmpInt64(9) != 0 {
		t.Fatal("z.Mul(z, z) != 9")
	}
	z.Add(z, z, engine.RndN)
	if z.CmpInt64(18) != 0 {
		t.Fatal("z.Add(z, z) != 18")
	}
	z.Neg(z, engine.RndN)
	if z.CmpInt64(-18) != 0 {
		t.Fatal("z.Neg(z) != -18")
	}
}

func TestNegAbsSqr(t *testing.T) {
	x := mustFromString(t, "-1.5", 64)
	z := engine.New(64)

	z.Neg(x, engine.RndN)
	if z.CmpFloat64(1.5) != 0 {
		t.Fatal("Neg wrong")
	}
	z.Abs(x, engine.RndN)
	if z.CmpFloat64(1.5) != 0 {
		t.Fatal("Abs wrong")
	}
	z.Sqr(x, engine.RndN)
	if z.CmpFloat64(2.25) != 0 {
		t.Fatal("Sqr wrong")
	}

	zero := engine.New(64)
	zero.SetZero(1)
	z.Neg(zero, engine.RndN)
	if !z.IsZero() || !z.Signbit() {
		t.Fatal("Neg(+0) is not -0")
	}
}

func TestMinMax(t *testing.T) {
	a := mustFromString(t, "1", 53)
	b := mustFromString(t, "2", 53)
	nan := engine.New(53)
	z := engine.New(53)

	z.Min(a, b, engine.RndN)
	if z.CmpInt64(1) != 0 {
		t.Fatal("Min(1,2) != 1")
	}
	z.Max(a, b, engine.RndN)
	if z.CmpInt64(2) != 0 {
		t.Fatal("Max(1,2) != 2")
	}
	z.Min(a, nan, engine.RndN)
	if z.CmpInt64(1) != 0 {
		t.Fatal("Min ignoring single NaN failed")
	}
	z.Max(nan, b, engine.RndN)
	if z.CmpInt64(2) != 0 {
		t.Fatal("Max ignoring single NaN failed")
	}
	z.Min(nan, nan, engine.RndN)
	if !z.IsNaN() {
		t.Fatal("Min(NaN,NaN) is not NaN")
	}

	pz := engine.New(53)
	pz.SetZero(1)
	nz := engine.New(53)
	nz.SetZero(-1)
	z.Min(pz, nz, engine.RndN)
	if !z.Signbit() {
		t.Fatal("Min(+0,-0) should be -0")
	}
	z.Max(nz, pz, engine.RndN)
	if z.Signbit() {
		t.Fatal("Max(-0,+0) should be +0")
	}
}

func TestCopysign(t *testing.T) {
	x := mustFromString(t, "3", 53)
	y := mustFromString(t, "-1", 53)
	z := engine.New(53)
	z.Copysign(x, y, engine.RndN)
	if z.CmpInt64(-3) != 0 {
		t.Fatal("Copysign(3, -1) != -3")
	}
	z.Copysign(y, x, engine.RndN)
	if z.CmpInt64(1) != 0 {
		t.Fatal("Copysign(-1, 3) != 1")
	}
}

func TestFmaSingleRounding(t *testing.T) {
	// x = 1 + 2^-52, x*x = 1 + 2^-51 + 2^-104. Subtracting the leading
	// terms must expose the 2^-104 tail, which a separate mul at 53 bits
	// would have rounded away.
	x := engine.New(53)
	x.SetInt64(1, engine.RndN)
	ulp := engine.New(53)
	ulp.SetInt64(1, engine.RndN)
	for i := 0; i < 52; i++ {
		ulp.DivInt64(ulp, 2, engine.RndN)
	}
	x.Add(x, ulp, engine.RndN)

	head := engine.New(106)
	head.SetInt64(1, engine.RndN)
	twoUlp := engine.New(106)
	twoUlp.AddFloat64(ulp, 0, engine.RndN)
	twoUlp.MulInt64(twoUlp, 2, engine.RndN)
	head.Add(head, twoUlp, engine.RndN)
	head.Neg(head, engine.RndN)

	z := engine.New(120)
	if tern := z.Fma(x, x, head, engine.RndN); tern != 0 {
		t.Fatalf("fma tail not exact: ternary %d", tern)
	}
	if z.IsZero() {
		t.Fatal("fma lost the low product bits")
	}

	// Plain mul at the same precision rounds the tail away.
	m := engine.New(53)
	m.Mul(x, x, engine.RndN)
	m.Add(m, head, engine.RndN)
	if !m.IsZero() {
		t.Fatal("expected the separately rounded product to cancel exactly")
	}
}

func TestFms(t *testing.T) {
	x := mustFromString(t, "3", 64)
	y := mustFromString(t, "4", 64)
	u := mustFromString(t, "5", 64)
	z := engine.New(64)
	if tern := z.Fms(x, y, u, engine.RndN); tern != 0 || z.CmpInt64(7) != 0 {
		t.Fatal("3*4 - 5 != 7")
	}
	if tern := z.Fma(x, y, u, engine.RndN); tern != 0 || z.CmpInt64(17) != 0 {
		t.Fatal("3*4 + 5 != 17")
	}
}

func TestRintFamily(t *testing.T) {
	tests := []struct {
		x    string
		op   func(z, x *engine.Num, r engine.Rnd) int
		want int64
	}{
		// Rint under RNDN ties to even, RintRound ties away.
		{"2.5", (*engine.Num).Rint, 2},
		{"3.5", (*engine.Num).Rint, 4},
		{"2.5", (*engine.Num).RintRound, 3},
		{"-2.5", (*engine.Num).RintRound, -3},
		{"2.3", (*engine.Num).RintCeil, 3},
		{"-2.3", (*engine.Num).RintCeil, -2},
		{"2.7", (*engine.Num).RintFloor, 2},
		{"-2.3", (*engine.Num).RintFloor, -3},
		{"2.7", (*engine.Num).RintTrunc, 2},
		{"-2.7", (*engine.Num).RintTrunc, -2},
	}
	for _, tc := range tests {
		x := mustFromString(t, tc.x, 64)
		z := engine.New(64)
		tc.op(z, x, engine.RndN)
		if z.CmpInt64(tc.want) != 0 {
			got, E := digits10(t, z, 5)
			t.Errorf("rint(%s): got %sE%d, want %d", tc.x, got, E, tc.want)
		}
	}
}

func TestRintUnderMode(t *testing.T) {
	x := mustFromString(t, "2.5", 64)
	z := engine.New(64)
	z.Rint(x, engine.RndU)
	if z.CmpInt64(3) != 0 {
		t.Fatal("rint(2.5) under RNDU != 3")
	}
	z.Rint(x, engine.RndZ)
	if z.CmpInt64(2) != 0 {
		t.Fatal("rint(2.5) under RNDZ != 2")
	}
}

func TestFracModf(t *testing.T) {
	x := mustFromString(t, "-2.75", 64)
	z := engine.New(64)
	z.Frac(x, engine.RndN)
	if z.CmpFloat64(-0.75) != 0 {
		t.Fatal("frac(-2.75) != -0.75")
	}

	w := mustFromString(t, "-3", 64)
	z.Frac(w, engine.RndN)
	if !z.IsZero() || !z.Signbit() {
		t.Fatal("frac(-3) is not -0")
	}

	zi := engine.New(64)
	zf := engine.New(64)
	zi.Modf(zf, x, engine.RndN)
	if zi.CmpInt64(-2) != 0 {
		t.Fatal("modf integral part wrong")
	}
	if zf.CmpFloat64(-0.75) != 0 {
		t.Fatal("modf fractional part wrong")
	}

	inf := engine.New(64)
	inf.SetInf(-1)
	zi.Modf(zf, inf, engine.RndN)
	if !zi.IsInf() || !zi.Signbit() {
		t.Fatal("modf(-inf) integral part is not -Inf")
	}
	if !zf.IsZero() || !zf.Signbit() {
		t.Fatal("modf(-inf) fractional part is not -0")
	}
}

func TestFmodRemainder(t *testing.T) {
	x := mustFromString(t, "7", 64)
	y := mustFromString(t, "3", 64)
	z := engine.New(64)

	if tern := z.Fmod(x, y, engine.RndN); tern != 0 || z.CmpInt64(1) != 0 {
		t.Fatal("fmod(7,3) != 1")
	}
	// rint(7/3) = 2, remainder 7 - 6 = 1
	if tern := z.Remainder(x, y, engine.RndN); tern != 0 || z.CmpInt64(1) != 0 {
		t.Fatal("remainder(7,3) != 1")
	}

	x8 := mustFromString(t, "8", 64)
	// rint(8/3) = 3, remainder 8 - 9 = -1
	if tern := z.Remainder(x8, y, engine.RndN); tern != 0 || z.CmpInt64(-1) != 0 {
		t.Fatal("remainder(8,3) != -1")
	}
	if tern := z.Fmod(x8, y, engine.RndN); tern != 0 || z.CmpInt64(2) != 0 {
		t.Fatal("fmod(8,3) != 2")
	}

	nx := mustFromString(t, "-7", 64)
	z.Fmod(nx, y, engine.RndN)
	if z.CmpInt64(-1) != 0 {
		t.Fatal("fmod(-7,3) != -1")
	}

	zero := engine.New(64)
	zero.SetZero(1)
	z.Fmod(x, zero, engine.RndN)
	if !z.IsNaN() {
		t.Fatal("fmod by zero is not NaN")
	}
	inf := engine.New(64)
	inf.SetInf(1)
	z.Fmod(x, inf, engine.RndN)
	if z.CmpInt64(7) != 0 {
		t.Fatal("fmod(7, inf) != 7")
	}
	z.Fmod(inf, y, engine.RndN)
	if !z.IsNaN() {
		t.Fatal("fmod(inf, 3) is not NaN")
	}

	// Fractional operands reduce exactly.
	a := mustFromString(t, "5.25", 64)
	b := mustFromString(t, "1.5", 64)
	if tern := z.Fmod(a, b, engine.RndN); tern != 0 || z.CmpFloat64(0.75) != 0 {
		t.Fatal("fmod(5.25, 1.5) != 0.75")
	}
}

func TestFacUint(t *testing.T) {
	z := engine.New(64)
	if tern := z.FacUint(0, engine.RndN); tern != 0 || z.CmpInt64(1) != 0 {
		t.Fatal("0! != 1")
	}
	if tern := z.FacUint(10, engine.RndN); tern != 0 || z.CmpInt64(3628800) != 0 {
		t.Fatal("10! != 3628800")
	}
	// 30! has 108 significant bits and cannot be exact at 64.
	if tern := z.FacUint(30, engine.RndN); tern == 0 {
		t.Fatal("30! at 64 bits reported exact")
	}
}
