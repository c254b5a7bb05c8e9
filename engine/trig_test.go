package engine_test

import (
	"testing"

	"github.com/feather-lang/mpf/engine"
)

func TestConstants(t *testing.T) {
	z := engine.New(128)
	z.ConstPi(engine.RndN)
	checkDigits(t, z, "31415926535897932385", 1)
	z.ConstLog2(engine.RndN)
	checkDigits(t, z, "69314718055994530942", 0)
	z.ConstE(engine.RndN)
	checkDigits(t, z, "27182818284590452354", 1)
}

func TestFreeCache(t *testing.T) {
	z := engine.New(128)
	z.ConstPi(engine.RndN)
	engine.FreeCache()
	w := engine.New(128)
	w.ConstPi(engine.RndN)
	if z.Cmp(w) != 0 {
		t.Fatal("pi changed after FreeCache")
	}
	checkDigits(t, w, "31415926535897932385", 1)
}

func TestSinCos(t *testing.T) {
	one := mustFromString(t, "1", 128)
	z := engine.New(128)

	z.Sin(one, engine.RndN)
	checkDigits(t, z, "8414709848", 0)
	z.Cos(one, engine.RndN)
	checkDigits(t, z, "5403023059", 0)

	zero := engine.New(128)
	zero.SetZero(-1)
	z.Sin(zero, engine.RndN)
	if !z.IsZero() || !z.Signbit() {
		t.Fatal("sin(-0) != -0")
	}
	if tern := z.Cos(zero, engine.RndN); tern != 0 || z.CmpInt64(1) != 0 {
		t.Fatal("cos(0) != 1")
	}

	inf := engine.New(128)
	inf.SetInf(1)
	z.Sin(inf, engine.RndN)
	if !z.IsNaN() {
		t.Fatal("sin(inf) is not NaN")
	}
	z.Cos(inf, engine.RndN)
	if !z.IsNaN() {
		t.Fatal("cos(inf) is not NaN")
	}

	neg := mustFromString(t, "-1", 128)
	z.Sin(neg, engine.RndN)
	checkDigits(t, z, "-8414709848", 0)

	zs := engine.New(128)
	zc := engine.New(128)
	zs.SinCos(zc, one, engine.RndN)
	checkDigits(t, zs, "8414709848", 0)
	checkDigits(t, zc, "5403023059", 0)

	// a destination may alias the source
	x := mustFromString(t, "1", 128)
	x.SinCos(zc, x, engine.RndN)
	checkDigits(t, x, "8414709848", 0)
	checkDigits(t, zc, "5403023059", 0)
}

func TestSinLargeArgument(t *testing.T) {
	// sin(100) needs several reduction steps; the reduced argument keeps
	// full precision.
	x := mustFromString(t, "100", 128)
	z := engine.New(128)
	z.Sin(x, engine.RndN)
	checkDigits(t, z, "-5063656411", 0)
	z.Cos(x, engine.RndN)
	checkDigits(t, z, "8623188723", 0)
}

func TestTanAndReciprocals(t *testing.T) {
	one := mustFromString(t, "1", 128)
	z := engine.New(128)

	z.Tan(one, engine.RndN)
	checkDigits(t, z, "1557407725", 1)
	z.Cot(one, engine.RndN)
	checkDigits(t, z, "6420926159", 0)

	zero := engine.New(128)
	zero.SetZero(1)
	z.Tan(zero, engine.RndN)
	if !z.IsZero() {
		t.Fatal("tan(0) != 0")
	}
	if tern := z.Sec(zero, engine.RndN); tern != 0 || z.CmpInt64(1) != 0 {
		t.Fatal("sec(0) != 1")
	}
	z.Csc(zero, engine.RndN)
	if !z.IsInf() || z.Signbit() {
		t.Fatal("csc(+0) != +Inf")
	}
}

func TestInverseTrig(t *testing.T) {
	one := mustFromString(t, "1", 128)
	half := mustFromString(t, "0.5", 128)
	z := engine.New(128)

	z.Atan(one, engine.RndN)
	checkDigits(t, z, "7853981634", 0)
	z.Asin(half, engine.RndN)
	checkDigits(t, z, "5235987756", 0)
	z.Acos(half, engine.RndN)
	checkDigits(t, z, "1047197551", 1)

	inf := engine.New(128)
	inf.SetInf(-1)
	z.Atan(inf, engine.RndN)
	checkDigits(t, z, "-1570796327", 1)

	two := mustFromString(t, "2", 128)
	z.Asin(two, engine.RndN)
	if !z.IsNaN() {
		t.Fatal("asin(2) is not NaN")
	}
	z.Acos(two, engine.RndN)
	if !z.IsNaN() {
		t.Fatal("acos(2) is not NaN")
	}
	z.Acos(one, engine.RndN)
	if !z.IsZero() {
		t.Fatal("acos(1) != 0")
	}

	zero := engine.New(128)
	zero.SetZero(-1)
	z.Atan(zero, engine.RndN)
	if !z.IsZero() || !z.Signbit() {
		t.Fatal("atan(-0) != -0")
	}
}

func TestAtan2(t *testing.T) {
	one := mustFromString(t, "1", 128)
	negOne := mustFromString(t, "-1", 128)
	pz := engine.New(128)
	pz.SetZero(1)
	nz := engine.New(128)
	nz.SetZero(-1)
	z := engine.New(128)

	z.Atan2(one, one, engine.RndN)
	checkDigits(t, z, "7853981634", 0)
	z.Atan2(one, negOne, engine.RndN)
	checkDigits(t, z, "2356194490", 1)
	z.Atan2(negOne, one, engine.RndN)
	checkDigits(t, z, "-7853981634", 0)

	z.Atan2(pz, one, engine.RndN)
	if !z.IsZero() || z.Signbit() {
		t.Fatal("atan2(+0, 1) != +0")
	}
	z.Atan2(pz, negOne, engine.RndN)
	checkDigits(t, z, "3141592654", 1)
	z.Atan2(nz, negOne, engine.RndN)
	checkDigits(t, z, "-3141592654", 1)
	z.Atan2(one, pz, engine.RndN)
	checkDigits(t, z, "1570796327", 1)
	z.Atan2(negOne, pz, engine.RndN)
	checkDigits(t, z, "-1570796327", 1)

	inf := engine.New(128)
	inf.SetInf(1)
	z.Atan2(inf, inf, engine.RndN)
	checkDigits(t, z, "7853981634", 0) // pi/4
	ninf := engine.New(128)
	ninf.SetInf(-1)
	z.Atan2(inf, ninf, engine.RndN)
	checkDigits(t, z, "2356194490", 1) // 3pi/4

	nan := engine.New(128)
	z.Atan2(nan, one, engine.RndN)
	if !z.IsNaN() {
		t.Fatal("atan2(NaN, 1) is not NaN")
	}
}

func TestJn(t *testing.T) {
	one := mustFromString(t, "1", 128)
	z := engine.New(128)

	z.Jn(0, one, engine.RndN)
	checkDigits(t, z, "7651976866", 0)
	z.Jn(1, one, engine.RndN)
	checkDigits(t, z, "4400505857", 0)
	z.Jn(-1, one, engine.RndN)
	checkDigits(t, z, "-4400505857", 0)
	z.Jn(2, one, engine.RndN)
	checkDigits(t, z, "1149034849", 0)

	zero := engine.New(128)
	zero.SetZero(1)
	if tern := z.Jn(0, zero, engine.RndN); tern != 0 || z.CmpInt64(1) != 0 {
		t.Fatal("J0(0) != 1")
	}
	z.Jn(2, zero, engine.RndN)
	if !z.IsZero() {
		t.Fatal("J2(0) != 0")
	}

	nan := engine.New(128)
	z.Jn(0, nan, engine.RndN)
	if !z.IsNaN() {
		t.Fatal("J0(NaN) is not NaN")
	}
}
