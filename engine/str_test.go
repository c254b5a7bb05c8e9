package engine_test

import (
	"strconv"
	"testing"

	"github.com/feather-lang/mpf/engine"
)

func TestDigitsBasic(t *testing.T) {
	tests := []struct {
		in    string
		prec  uint
		base  int
		n     int
		want  string
		wantE int
	}{
		{"1024", 53, 10, 0, "10240000000000000", 4},
		{"1024", 53, 10, 5, "10240", 4},
		{"255", 64, 16, 4, "ff00", 2},
		{"10", 64, 2, 4, "1010", 4},
		{"3843", 64, 62, 3, "ZZ0", 2},
		{"0.125", 64, 10, 4, "1250", 0},
		{"-2.5", 64, 10, 3, "-250", 1},
		{"1", 64, 62, 3, "100", 1},
	}
	for _, tc := range tests {
		z := mustFromString(t, tc.in, tc.prec)
		got, E := z.Digits(tc.base, tc.n, engine.RndN)
		if got != tc.want || E != tc.wantE {
			t.Errorf("Digits(%s, base %d, n %d) = %q E=%d, want %q E=%d",
				tc.in, tc.base, tc.n, got, E, tc.want, tc.wantE)
		}
	}
}

func TestDigitsSpecials(t *testing.T) {
	nan := engine.New(53)
	if s, E := nan.Digits(10, 5, engine.RndN); s != engine.StrNaN || E != 0 {
		t.Fatalf("NaN digits = %q E=%d", s, E)
	}
	inf := engine.New(53)
	inf.SetInf(1)
	if s, _ := inf.Digits(10, 5, engine.RndN); s != engine.StrInf {
		t.Fatalf("+Inf digits = %q", s)
	}
	inf.SetInf(-1)
	if s, _ := inf.Digits(10, 5, engine.RndN); s != engine.StrNegInf {
		t.Fatalf("-Inf digits = %q", s)
	}

	zero := engine.New(53)
	zero.SetZero(1)
	if s, E := zero.Digits(10, 3, engine.RndN); s != "000" || E != 0 {
		t.Fatalf("+0 digits = %q E=%d", s, E)
	}
	zero.SetZero(-1)
	if s, E := zero.Digits(10, 3, engine.RndN); s != "-000" || E != 0 {
		t.Fatalf("-0 digits = %q E=%d", s, E)
	}
}

func TestDigitsRounding(t *testing.T) {
	z := mustFromString(t, "2.5", 64)
	tests := []struct {
		r    engine.Rnd
		want string
	}{
		{engine.RndN, "2"}, // tie, stays even
		{engine.RndZ, "2"},
		{engine.RndU, "3"},
		{engine.RndD, "2"},
		{engine.RndA, "3"},
	}
	for _, tc := range tests {
		if got, E := z.Digits(10, 1, tc.r); got != tc.want || E != 1 {
			t.Errorf("Digits(2.5, n=1, %v) = %q E=%d, want %q E=1", tc.r, got, E, tc.want)
		}
	}

	neg := mustFromString(t, "-2.5", 64)
	if got, _ := neg.Digits(10, 1, engine.RndD); got != "-3" {
		t.Errorf("Digits(-2.5, n=1, RNDD) = %q, want -3", got)
	}
	if got, _ := neg.Digits(10, 1, engine.RndU); got != "-2" {
		t.Errorf("Digits(-2.5, n=1, RNDU) = %q, want -2", got)
	}
}

func TestDigitsCarry(t *testing.T) {
	// 31/32 is exact in binary; rounded to one decimal digit it carries
	// into the next power of ten.
	z := mustFromString(t, "0.96875", 64)
	got, E := z.Digits(10, 1, engine.RndN)
	if got != "1" || E != 1 {
		t.Fatalf("Digits(0.96875, n=1) = %q E=%d, want \"1\" E=1", got, E)
	}
}

func TestSetStringBasic(t *testing.T) {
	z := engine.New(64)

	if tern, err := z.SetString("1.5", 10, engine.RndN); err != nil || tern != 0 {
		t.Fatalf("SetString(1.5): tern=%d err=%v", tern, err)
	}
	if z.CmpFloat64(1.5) != 0 {
		t.Fatal("1.5 parsed wrong")
	}

	if tern, _ := z.SetString("0.1", 10, engine.RndN); tern == 0 {
		t.Fatal("0.1 in binary reported exact")
	}

	if _, err := z.SetString("ff", 16, engine.RndN); err != nil {
		t.Fatal(err)
	}
	if z.CmpInt64(255) != 0 {
		t.Fatal("ff base 16 != 255")
	}
	if _, err := z.SetString("FF", 16, engine.RndN); err != nil {
		t.Fatal(err)
	}
	if z.CmpInt64(255) != 0 {
		t.Fatal("uppercase digits in base 16 should fold to lowercase")
	}

	// Above base 36 the cases are distinct digits.
	if _, err := z.SetString("zz", 62, engine.RndN); err != nil {
		t.Fatal(err)
	}
	if z.CmpInt64(35*62+35) != 0 {
		t.Fatal("zz base 62 wrong")
	}
	if _, err := z.SetString("ZZ", 62, engine.RndN); err != nil {
		t.Fatal(err)
	}
	if z.CmpInt64(3843) != 0 {
		t.Fatal("ZZ base 62 != 3843")
	}

	if _, err := z.SetString("-0", 10, engine.RndN); err != nil {
		t.Fatal(err)
	}
	if !z.IsZero() || !z.Signbit() {
		t.Fatal("-0 did not keep its sign")
	}
}

func TestSetStringExponent(t *testing.T) {
	z := engine.New(64)

	// 'e' marks an exponent only up to base 10; beyond that it is a digit.
	if _, err := z.SetString("1e1", 10, engine.RndN); err != nil {
		t.Fatal(err)
	}
	if z.CmpInt64(10) != 0 {
		t.Fatal("1e1 base 10 != 10")
	}
	if _, err := z.SetString("1e1", 16, engine.RndN); err != nil {
		t.Fatal(err)
	}
	if z.CmpInt64(0x1e1) != 0 {
		t.Fatal("1e1 base 16 != 481")
	}

	// '@' marks an exponent in every base; the exponent itself is decimal.
	if _, err := z.SetString("1@1", 16, engine.RndN); err != nil {
		t.Fatal(err)
	}
	if z.CmpInt64(16) != 0 {
		t.Fatal("1@1 base 16 != 16")
	}
	if _, err := z.SetString("1@-1", 2, engine.RndN); err != nil {
		t.Fatal(err)
	}
	if z.CmpFloat64(0.5) != 0 {
		t.Fatal("1@-1 base 2 != 0.5")
	}
	if _, err := z.SetString("1.8@1", 16, engine.RndN); err != nil {
		t.Fatal(err)
	}
	if z.CmpInt64(24) != 0 {
		t.Fatal("1.8@1 base 16 != 24")
	}
	if _, err := z.SetString("2.5e-1", 10, engine.RndN); err != nil {
		t.Fatal(err)
	}
	if z.CmpFloat64(0.25) != 0 {
		t.Fatal("2.5e-1 != 0.25")
	}
}

func TestSetStringSpecials(t *testing.T) {
	z := engine.New(64)
	for _, s := range []string{"nan", "NaN", "@NaN@", "-nan"} {
		if tern, err := z.SetString(s, 10, engine.RndN); err != nil || tern != 0 {
			t.Fatalf("SetString(%q): tern=%d err=%v", s, tern, err)
		}
		if !z.IsNaN() {
			t.Fatalf("%q did not parse as NaN", s)
		}
	}
	for _, s := range []string{"inf", "Infinity", "@Inf@"} {
		if _, err := z.SetString(s, 10, engine.RndN); err != nil {
			t.Fatal(err)
		}
		if !z.IsInf() || z.Signbit() {
			t.Fatalf("%q did not parse as +Inf", s)
		}
	}
	if _, err := z.SetString("-inf", 10, engine.RndN); err != nil {
		t.Fatal(err)
	}
	if !z.IsInf() || !z.Signbit() {
		t.Fatal("-inf did not parse as -Inf")
	}
}

func TestSetStringErrors(t *testing.T) {
	z := engine.New(64)
	z.SetInt64(7, engine.RndN)
	for _, s := range []string{"", "-", "1..2", "abc", "1e", "1e+", "2f", "1e5x", ".", "1@@2"} {
		if _, err := z.SetString(s, 10, engine.RndN); err == nil {
			t.Errorf("SetString(%q) accepted", s)
		}
		if z.CmpInt64(7) != 0 {
			t.Fatalf("failed parse of %q modified the value", s)
		}
	}
}

func TestDigitsSetStringRoundTrip(t *testing.T) {
	for _, in := range []string{"1.5", "-0.375", "123456789", "0.1", "3.14159"} {
		for _, base := range []int{2, 10, 16, 62} {
			orig := mustFromString(t, in, 64)
			digits, E := orig.Digits(base, 0, engine.RndN)
			neg := digits[0] == '-'
			if neg {
				digits = digits[1:]
			}
			// Reassemble as 0.digits @ E.
			s := "0." + digits + "@" + strconv.Itoa(E)
			if neg {
				s = "-" + s
			}
			back := engine.New(64)
			if _, err := back.SetString(s, base, engine.RndN); err != nil {
				t.Fatalf("round trip %q base %d: %v", in, base, err)
			}
			if back.Cmp(orig) != 0 {
				t.Errorf("round trip %q base %d: got %q", in, base, s)
			}
		}
	}
}
