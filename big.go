package mpf

import (
	"fmt"
	"strings"

	"github.com/feather-lang/mpf/engine"
)

// BigType is the internal representation for arbitrary-precision handles.
// Unlike the plain value types it is a reference: duplicating an object
// shares the underlying cell, exactly as handles passed around by name do.
type BigType struct {
	num    *engine.Num
	interp *Interp
}

func (t *BigType) Name() string { return "mpf" }
func (t *BigType) Dup() ObjType { return t }

// UpdateString renders the cell with the converter defaults: base 10,
// round-trip digit count, default rounding mode.
func (t *BigType) UpdateString() string {
	return formatNum(t.num, 10, 0, engine.DefaultRnd())
}

// Num returns the engine cell behind the handle.
func (t *BigType) Num() *engine.Num { return t.num }

// NewBig creates a handle object with a fresh cell of the given precision,
// initialized to NaN, and tracks it for release on [Interp.Close].
func (i *Interp) NewBig(prec uint) *Obj {
	t := &BigType{num: engine.New(prec), interp: i}
	i.handles[t] = struct{}{}
	return &Obj{intrep: t, interp: i}
}

// release clears a handle's cell. Releasing twice is an error, not a crash.
func (i *Interp) release(t *BigType) error {
	if t.num.Cleared() {
		return fmt.Errorf("handle already destroyed")
	}
	t.num.Clear()
	delete(i.handles, t)
	return nil
}

// formatNum renders a cell as the converter commands and handle string
// representation do: special values as fixed tokens, zeros as plain "0" or
// "-0", and regular values as d.ddd with a trailing exponent when the
// adjusted exponent is nonzero. The exponent marker is 'e' for bases up to
// 10 and '@' beyond, where 'e' is a digit.
func formatNum(n *engine.Num, base, ndigits int, r engine.Rnd) string {
	switch {
	case n.IsNaN():
		return engine.StrNaN
	case n.IsInf():
		if n.Signbit() {
			return engine.StrNegInf
		}
		return engine.StrInf
	case n.IsZero():
		if n.Signbit() {
			return "-0"
		}
		return "0"
	}
	digits, exp := n.Digits(base, ndigits, r)
	var b strings.Builder
	b.Grow(len(digits) + 16)
	i := 0
	if digits[0] == '-' {
		b.WriteByte('-')
		i = 1
	}
	b.WriteByte(digits[i])
	if i+1 < len(digits) {
		b.WriteByte('.')
		b.WriteString(digits[i+1:])
	}
	if exp-1 != 0 {
		if base <= 10 {
			b.WriteByte('e')
		} else {
			b.WriteByte('@')
		}
		fmt.Fprintf(&b, "%d", exp-1)
	}
	return b.String()
}
