package mpf

import (
	"strconv"

	"github.com/feather-lang/mpf/engine"
)

// operandKind tells a dispatcher which primitive variant an argument
// selects.
type operandKind int

const (
	operandInt operandKind = iota
	operandDouble
	operandBig
)

// operand is a classified argument: a machine integer, a double, or a
// live handle.
type operand struct {
	kind operandKind
	i    int64
	d    float64
	big  *engine.Num
}

// classify determines the operand kind of an object. Host integers, and
// doubles whose value is an exact in-range integer, classify as integral;
// other numerics as doubles; handles as themselves. The bool is false for
// non-numeric values.
func classify(o *Obj) (operand, bool) {
	switch t := o.InternalRep().(type) {
	case *BigType:
		return operand{kind: operandBig, big: t.num}, true
	case IntType:
		return operand{kind: operandInt, i: int64(t)}, true
	case DoubleType:
		if v, ok := t.IntoInt(); ok {
			return operand{kind: operandInt, i: v}, true
		}
		return operand{kind: operandDouble, d: float64(t)}, true
	}
	s := o.String()
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		o.intrep = IntType(v)
		return operand{kind: operandInt, i: v}, true
	}
	if d, err := strconv.ParseFloat(s, 64); err == nil {
		o.intrep = DoubleType(d)
		if v, ok := DoubleType(d).IntoInt(); ok {
			return operand{kind: operandInt, i: v}, true
		}
		return operand{kind: operandDouble, d: d}, true
	}
	return operand{}, false
}

// ---- argument helpers ----------------------------------------------------
//
// Each helper validates one positional argument and reports errors in the
// form the commands share: the command name, the 1-based argument position,
// and what was expected. Validation never mutates a destination.

func argErr(cmd *Obj, n int, msg string) *Result {
	r := Errorf("%s: bad argument #%d (%s)", cmd.String(), n, msg)
	return &r
}

func wrongArgs(cmd *Obj, usage string) Result {
	return Errorf("wrong # args: should be \"%s %s\"", cmd.String(), usage)
}

// argHandle requires argument n (1-based) to be a live handle and returns
// its internal rep.
func argHandle(cmd *Obj, args []*Obj, n int) (*BigType, *Result) {
	if n > len(args) {
		return nil, argErr(cmd, n, "mpf handle expected")
	}
	t, ok := args[n-1].InternalRep().(*BigType)
	if !ok {
		return nil, argErr(cmd, n, "mpf handle expected")
	}
	if t.num.Cleared() {
		return nil, argErr(cmd, n, "handle already destroyed")
	}
	return t, nil
}

// argBig is argHandle returning the engine cell directly.
func argBig(cmd *Obj, args []*Obj, n int) (*engine.Num, *Result) {
	t, errR := argHandle(cmd, args, n)
	if errR != nil {
		return nil, errR
	}
	return t.num, nil
}

// argOperand classifies argument n, rejecting non-numeric values and
// destroyed handles.
func argOperand(cmd *Obj, args []*Obj, n int) (operand, *Result) {
	if n > len(args) {
		return operand{}, argErr(cmd, n, "number or mpf handle expected")
	}
	if t, ok := args[n-1].InternalRep().(*BigType); ok && t.num.Cleared() {
		return operand{}, argErr(cmd, n, "handle already destroyed")
	}
	v, ok := classify(args[n-1])
	if !ok {
		return operand{}, argErr(cmd, n, "number or mpf handle expected")
	}
	return v, nil
}

func argInt(cmd *Obj, args []*Obj, n int) (int64, *Result) {
	if n > len(args) {
		return 0, argErr(cmd, n, "integer expected")
	}
	v, err := args[n-1].Int()
	if err != nil {
		return 0, argErr(cmd, n, err.Error())
	}
	return v, nil
}

// argUint requires a non-negative integer argument.
func argUint(cmd *Obj, args []*Obj, n int) (uint64, *Result) {
	v, errR := argInt(cmd, args, n)
	if errR != nil {
		return 0, errR
	}
	if v < 0 {
		return 0, argErr(cmd, n, "value must be non-negative")
	}
	return uint64(v), nil
}

// optRnd resolves an optional trailing rounding-mode argument, defaulting
// to the process-wide mode.
func optRnd(cmd *Obj, args []*Obj, n int) (engine.Rnd, *Result) {
	if n > len(args) {
		return engine.DefaultRnd(), nil
	}
	v, err := args[n-1].Int()
	if err != nil {
		return 0, argErr(cmd, n, "invalid rounding mode")
	}
	r := engine.Rnd(v)
	if !r.Valid() {
		return 0, argErr(cmd, n, "invalid rounding mode")
	}
	return r, nil
}

func precMsg() string {
	return "precision must be in [" +
		strconv.Itoa(engine.PrecMin) + ", " + strconv.Itoa(engine.PrecMax) + "]"
}

// argPrec requires a precision argument inside [PrecMin, PrecMax]; the
// error message names the valid range.
func argPrec(cmd *Obj, args []*Obj, n int) (uint, *Result) {
	v, errR := argInt(cmd, args, n)
	if errR != nil {
		return 0, errR
	}
	if v < engine.PrecMin || v > engine.PrecMax {
		return 0, argErr(cmd, n, precMsg())
	}
	return uint(v), nil
}

// optPrec is argPrec with the process-wide default when the argument is
// absent.
func optPrec(cmd *Obj, args []*Obj, n int) (uint, *Result) {
	if n > len(args) {
		return engine.DefaultPrec(), nil
	}
	return argPrec(cmd, args, n)
}

// optBase resolves an optional base argument, default 10, range [2, 62].
func optBase(cmd *Obj, args []*Obj, n int) (int, *Result) {
	if n > len(args) {
		return 10, nil
	}
	v, errR := argInt(cmd, args, n)
	if errR != nil {
		return 0, errR
	}
	if v < engine.BaseMin || v > engine.BaseMax {
		return 0, argErr(cmd, n, "base must be in ["+
			strconv.Itoa(engine.BaseMin)+", "+strconv.Itoa(engine.BaseMax)+"]")
	}
	return int(v), nil
}

// optDigits resolves an optional significant-digit count, default 0
// (engine-chosen round-trip count).
func optDigits(cmd *Obj, args []*Obj, n int) (int, *Result) {
	if n > len(args) {
		return 0, nil
	}
	v, errR := argInt(cmd, args, n)
	if errR != nil {
		return 0, errR
	}
	if v < 0 {
		return 0, argErr(cmd, n, "digit count must be non-negative")
	}
	return int(v), nil
}
