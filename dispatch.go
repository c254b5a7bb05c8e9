package mpf

import "github.com/feather-lang/mpf/engine"

// The command surface is built from registration tables, one per operation
// shape. Each entry pairs a command name with typed references to the
// engine variants it may call; registration loops turn entries into
// closures. Adding an operation means adding a table line.

// ---- fn0: nullary constants --------------------------------------------

type fn0Entry struct {
	name string
	fn   func(*engine.Num, engine.Rnd) int
}

var fn0Reg = []fn0Entry{
	{"const_log2", (*engine.Num).ConstLog2},
	{"const_pi", (*engine.Num).ConstPi},
	{"const_e", (*engine.Num).ConstE},
}

func registerFn0(i *Interp) {
	for _, e := range fn0Reg {
		fn := e.fn
		i.RegisterCommand(e.name, func(ip *Interp, cmd *Obj, args []*Obj) Result {
			if len(args) < 1 || len(args) > 2 {
				return wrongArgs(cmd, "dst ?rnd?")
			}
			dst, errR := argBig(cmd, args, 1)
			if errR != nil {
				return *errR
			}
			r, errR := optRnd(cmd, args, 2)
			if errR != nil {
				return *errR
			}
			tern := fn(dst, r)
			args[0].invalidate()
			return OK(ip.Int(int64(tern)))
		})
	}
}

// ---- fn1: unary operations ---------------------------------------------

type fn1Entry struct {
	name string
	fn   func(z, x *engine.Num, r engine.Rnd) int
}

var fn1Reg = []fn1Entry{
	{"sqr", (*engine.Num).Sqr},
	{"rec_sqrt", (*engine.Num).RecSqrt},
	{"cbrt", (*engine.Num).Cbrt},
	{"neg", (*engine.Num).Neg},
	{"abs", (*engine.Num).Abs},
	{"log", (*engine.Num).Log},
	{"log2", (*engine.Num).Log2},
	{"log10", (*engine.Num).Log10},
	{"log1p", (*engine.Num).Log1p},
	{"exp", (*engine.Num).Exp},
	{"exp2", (*engine.Num).Exp2},
	{"exp10", (*engine.Num).Exp10},
	{"expm1", (*engine.Num).Expm1},
	{"cos", (*engine.Num).Cos},
	{"sin", (*engine.Num).Sin},
	{"tan", (*engine.Num).Tan},
	{"sec", (*engine.Num).Sec},
	{"csc", (*engine.Num).Csc},
	{"cot", (*engine.Num).Cot},
	{"acos", (*engine.Num).Acos},
	{"asin", (*engine.Num).Asin},
	{"atan", (*engine.Num).Atan},
	{"cosh", (*engine.Num).Cosh},
	{"sinh", (*engine.Num).Sinh},
	{"tanh", (*engine.Num).Tanh},
	{"sech", (*engine.Num).Sech},
	{"csch", (*engine.Num).Csch},
	{"coth", (*engine.Num).Coth},
	{"acosh", (*engine.Num).Acosh},
	{"asinh", (*engine.Num).Asinh},
	{"atanh", (*engine.Num).Atanh},
	{"rint", (*engine.Num).Rint},
	{"rint_ceil", (*engine.Num).RintCeil},
	{"rint_floor", (*engine.Num).RintFloor},
	{"rint_round", (*engine.Num).RintRound},
	{"rint_trunc", (*engine.Num).RintTrunc},
	{"frac", (*engine.Num).Frac},
}

func registerFn1(i *Interp) {
	for _, e := range fn1Reg {
		fn := e.fn
		i.RegisterCommand(e.name, func(ip *Interp, cmd *Obj, args []*Obj) Result {
			if len(args) < 2 || len(args) > 3 {
				return wrongArgs(cmd, "dst x ?rnd?")
			}
			dst, errR := argBig(cmd, args, 1)
			if errR != nil {
				return *errR
			}
			x, errR := argBig(cmd, args, 2)
			if errR != nil {
				return *errR
			}
			r, errR := optRnd(cmd, args, 3)
			if errR != nil {
				return *errR
			}
			tern := fn(dst, x, r)
			args[0].invalidate()
			return OK(ip.Int(int64(tern)))
		})
	}
}

// ---- fn1u: unary with a machine-integer fast path ----------------------

type fn1uEntry struct {
	name string
	fr   func(z, x *engine.Num, r engine.Rnd) int
	ui   func(z *engine.Num, n uint64, r engine.Rnd) int
}

var fn1uReg = []fn1uEntry{
	{"sqrt", (*engine.Num).Sqrt, (*engine.Num).SqrtUint},
}

func registerFn1u(i *Interp) {
	for _, e := range fn1uReg {
		e := e
		i.RegisterCommand(e.name, func(ip *Interp, cmd *Obj, args []*Obj) Result {
			if len(args) < 2 || len(args) > 3 {
				return wrongArgs(cmd, "dst x ?rnd?")
			}
			dst, errR := argBig(cmd, args, 1)
			if errR != nil {
				return *errR
			}
			v, errR := argOperand(cmd, args, 2)
			if errR != nil {
				return *errR
			}
			r, errR := optRnd(cmd, args, 3)
			if errR != nil {
				return *errR
			}
			var tern int
			switch v.kind {
			case operandBig:
				tern = e.fr(dst, v.big, r)
			case operandInt:
				if v.i < 0 {
					return *argErr(cmd, 2, "value must be non-negative")
				}
				tern = e.ui(dst, uint64(v.i), r)
			default:
				return *argErr(cmd, 2, "integer or mpf handle expected")
			}
			args[0].invalidate()
			return OK(ip.Int(int64(tern)))
		})
	}
}

// ---- fn12: unary with two destinations ---------------------------------

type fn12Entry struct {
	name string
	fn   func(z1, z2, x *engine.Num, r engine.Rnd) (int, int)
}

var fn12Reg = []fn12Entry{
	{"modf", (*engine.Num).Modf},
	{"sin_cos", (*engine.Num).SinCos},
	{"sinh_cosh", (*engine.Num).SinhCosh},
}

func registerFn12(i *Interp) {
	for _, e := range fn12Reg {
		fn := e.fn
		i.RegisterCommand(e.name, func(ip *Interp, cmd *Obj, args []*Obj) Result {
			if len(args) < 3 || len(args) > 4 {
				return wrongArgs(cmd, "dst1 dst2 x ?rnd?")
			}
			d1, errR := argBig(cmd, args, 1)
			if errR != nil {
				return *errR
			}
			d2, errR := argBig(cmd, args, 2)
			if errR != nil {
				return *errR
			}
			if d1 == d2 {
				return *argErr(cmd, 2, "destinations must be distinct")
			}
			x, errR := argBig(cmd, args, 3)
			if errR != nil {
				return *errR
			}
			r, errR := optRnd(cmd, args, 4)
			if errR != nil {
				return *errR
			}
			t1, t2 := fn(d1, d2, x, r)
			args[0].invalidate()
			args[1].invalidate()
			return OK(ip.List(ip.Int(int64(t1)), ip.Int(int64(t2))))
		})
	}
}

// ---- fn1p: unary predicates --------------------------------------------

type fn1pEntry struct {
	name string
	fn   func(*engine.Num) bool
}

var fn1pReg = []fn1pEntry{
	{"nan_p", (*engine.Num).IsNaN},
	{"inf_p", (*engine.Num).IsInf},
	{"number_p", (*engine.Num).IsNumber},
	{"zero_p", (*engine.Num).IsZero},
	{"regular_p", (*engine.Num).IsRegular},
	{"integer_p", (*engine.Num).IsInteger},
}

func registerFn1p(i *Interp) {
	for _, e := range fn1pReg {
		fn := e.fn
		i.RegisterCommand(e.name, func(ip *Interp, cmd *Obj, args []*Obj) Result {
			if len(args) != 1 {
				return wrongArgs(cmd, "x")
			}
			x, errR := argBig(cmd, args, 1)
			if errR != nil {
				return *errR
			}
			return OK(ip.Bool(fn(x)))
		})
	}
}

// ---- fn2: binary operations with mixed operand types -------------------

type fn2Entry struct {
	name string
	frFr func(z, x, y *engine.Num, r engine.Rnd) int
	frSi func(z, x *engine.Num, v int64, r engine.Rnd) int
	frD  func(z, x *engine.Num, d float64, r engine.Rnd) int
	siFr func(z *engine.Num, v int64, x *engine.Num, r engine.Rnd) int
	dFr  func(z *engine.Num, d float64, x *engine.Num, r engine.Rnd) int

	// commutative ops serve a non-handle left operand through the
	// right-operand variant with the operands swapped.
	commutative bool
}

var fn2Reg = []fn2Entry{
	{
		name:        "add",
		frFr:        (*engine.Num).Add,
		frSi:        (*engine.Num).AddInt64,
		frD:         (*engine.Num).AddFloat64,
		commutative: true,
	},
	{
		name:        "mul",
		frFr:        (*engine.Num).Mul,
		frSi:        (*engine.Num).MulInt64,
		frD:         (*engine.Num).MulFloat64,
		commutative: true,
	},
	{
		name: "sub",
		frFr: (*engine.Num).Sub,
		frSi: (*engine.Num).SubInt64,
		frD:  (*engine.Num).SubFloat64,
		siFr: (*engine.Num).Int64Sub,
		dFr:  (*engine.Num).Float64Sub,
	},
	{
		name: "div",
		frFr: (*engine.Num).Div,
		frSi: (*engine.Num).DivInt64,
		frD:  (*engine.Num).DivFloat64,
		siFr: (*engine.Num).Int64Div,
		dFr:  (*engine.Num).Float64Div,
	},
}

func registerFn2(i *Interp) {
	for _, e := range fn2Reg {
		e := e
		i.RegisterCommand(e.name, func(ip *Interp, cmd *Obj, args []*Obj) Result {
			if len(args) < 3 || len(args) > 4 {
				return wrongArgs(cmd, "dst a b ?rnd?")
			}
			dst, errR := argBig(cmd, args, 1)
			if errR != nil {
				return *errR
			}
			// The second operand's type picks the variant, so it is
			// classified first.
			b, errR := argOperand(cmd, args, 3)
			if errR != nil {
				return *errR
			}
			a, errR := argOperand(cmd, args, 2)
			if errR != nil {
				return *errR
			}
			r, errR := optRnd(cmd, args, 4)
			if errR != nil {
				return *errR
			}
			var tern int
			switch {
			case a.kind == operandBig && b.kind == operandBig:
				tern = e.frFr(dst, a.big, b.big, r)
			case a.kind == operandBig && b.kind == operandInt:
				tern = e.frSi(dst, a.big, b.i, r)
			case a.kind == operandBig && b.kind == operandDouble:
				tern = e.frD(dst, a.big, b.d, r)
			case b.kind == operandBig && a.kind == operandInt:
				switch {
				case e.siFr != nil:
					tern = e.siFr(dst, a.i, b.big, r)
				case e.commutative:
					tern = e.frSi(dst, b.big, a.i, r)
				default:
					return *argErr(cmd, 2, "unsupported operand order")
				}
			case b.kind == operandBig && a.kind == operandDouble:
				switch {
				case e.dFr != nil:
					tern = e.dFr(dst, a.d, b.big, r)
				case e.commutative:
					tern = e.frD(dst, b.big, a.d, r)
				default:
					return *argErr(cmd, 2, "unsupported operand order")
				}
			default:
				return *argErr(cmd, 2, "mpf handle expected")
			}
			args[0].invalidate()
			return OK(ip.Int(int64(tern)))
		})
	}
}

// ---- fn2f: binary operations over two handles --------------------------

type fn2fEntry struct {
	name string
	fn   func(z, x, y *engine.Num, r engine.Rnd) int
}

var fn2fReg = []fn2fEntry{
	{"fmod", (*engine.Num).Fmod},
	{"remainder", (*engine.Num).Remainder},
	{"atan2", (*engine.Num).Atan2},
	{"agm", (*engine.Num).Agm},
	{"hypot", (*engine.Num).Hypot},
	{"min", (*engine.Num).Min},
	{"max", (*engine.Num).Max},
	{"copysign", (*engine.Num).Copysign},
}

func registerFn2f(i *Interp) {
	for _, e := range fn2fReg {
		fn := e.fn
		i.RegisterCommand(e.name, func(ip *Interp, cmd *Obj, args []*Obj) Result {
			if len(args) < 3 || len(args) > 4 {
				return wrongArgs(cmd, "dst x y ?rnd?")
			}
			dst, errR := argBig(cmd, args, 1)
			if errR != nil {
				return *errR
			}
			x, errR := argBig(cmd, args, 2)
			if errR != nil {
				return *errR
			}
			y, errR := argBig(cmd, args, 3)
			if errR != nil {
				return *errR
			}
			r, errR := optRnd(cmd, args, 4)
			if errR != nil {
				return *errR
			}
			tern := fn(dst, x, y, r)
			args[0].invalidate()
			return OK(ip.Int(int64(tern)))
		})
	}
}

// ---- fn2n: integer order, then handle ----------------------------------

type fn2nEntry struct {
	name string
	fn   func(z *engine.Num, n int64, x *engine.Num, r engine.Rnd) int
}

var fn2nReg = []fn2nEntry{
	{"jn", (*engine.Num).Jn},
}

func registerFn2n(i *Interp) {
	for _, e := range fn2nReg {
		fn := e.fn
		i.RegisterCommand(e.name, func(ip *Interp, cmd *Obj, args []*Obj) Result {
			if len(args) < 3 || len(args) > 4 {
				return wrongArgs(cmd, "dst n x ?rnd?")
			}
			dst, errR := argBig(cmd, args, 1)
			if errR != nil {
				return *errR
			}
			n, errR := argInt(cmd, args, 2)
			if errR != nil {
				return *errR
			}
			x, errR := argBig(cmd, args, 3)
			if errR != nil {
				return *errR
			}
			r, errR := optRnd(cmd, args, 4)
			if errR != nil {
				return *errR
			}
			tern := fn(dst, n, x, r)
			args[0].invalidate()
			return OK(ip.Int(int64(tern)))
		})
	}
}

// ---- fn2p: binary predicates -------------------------------------------

type fn2pEntry struct {
	name string
	fn   func(x, y *engine.Num) bool
}

var fn2pReg = []fn2pEntry{
	{"greater_p", (*engine.Num).Greater},
	{"greaterequal_p", (*engine.Num).GreaterEqual},
	{"less_p", (*engine.Num).Less},
	{"lessequal_p", (*engine.Num).LessEqual},
	{"equal_p", (*engine.Num).Equal},
	{"lessgreater_p", (*engine.Num).LessGreater},
	{"unordered_p", (*engine.Num).Unordered},
}

func registerFn2p(i *Interp) {
	for _, e := range fn2pReg {
		fn := e.fn
		i.RegisterCommand(e.name, func(ip *Interp, cmd *Obj, args []*Obj) Result {
			if len(args) != 2 {
				return wrongArgs(cmd, "x y")
			}
			x, errR := argBig(cmd, args, 1)
			if errR != nil {
				return *errR
			}
			y, errR := argBig(cmd, args, 2)
			if errR != nil {
				return *errR
			}
			return OK(ip.Bool(fn(x, y)))
		})
	}
}

// ---- bespoke operations ------------------------------------------------

func registerOps(i *Interp) {
	// pow picks one of four primitive shapes from the operand types, as
	// the engine distinguishes integer bases and exponents.
	i.RegisterCommand("pow", func(ip *Interp, cmd *Obj, args []*Obj) Result {
		if len(args) < 3 || len(args) > 4 {
			return wrongArgs(cmd, "dst a b ?rnd?")
		}
		dst, errR := argBig(cmd, args, 1)
		if errR != nil {
			return *errR
		}
		b, errR := argOperand(cmd, args, 3)
		if errR != nil {
			return *errR
		}
		a, errR := argOperand(cmd, args, 2)
		if errR != nil {
			return *errR
		}
		r, errR := optRnd(cmd, args, 4)
		if errR != nil {
			return *errR
		}
		var tern int
		switch {
		case a.kind == operandInt && a.i >= 0 && b.kind == operandInt && b.i >= 0:
			tern = dst.UintPowUint(uint64(a.i), uint64(b.i), r)
		case a.kind == operandInt && a.i >= 0 && b.kind == operandBig:
			tern = dst.UintPow(uint64(a.i), b.big, r)
		case a.kind == operandBig && b.kind == operandInt:
			tern = dst.PowInt(a.big, b.i, r)
		case a.kind == operandBig && b.kind == operandBig:
			tern = dst.Pow(a.big, b.big, r)
		default:
			return Errorf("%s: unsupported operand combination", cmd.String())
		}
		args[0].invalidate()
		return OK(ip.Int(int64(tern)))
	})

	i.RegisterCommand("root", func(ip *Interp, cmd *Obj, args []*Obj) Result {
		if len(args) < 3 || len(args) > 4 {
			return wrongArgs(cmd, "dst x k ?rnd?")
		}
		dst, errR := argBig(cmd, args, 1)
		if errR != nil {
			return *errR
		}
		x, errR := argBig(cmd, args, 2)
		if errR != nil {
			return *errR
		}
		k, errR := argUint(cmd, args, 3)
		if errR != nil {
			return *errR
		}
		r, errR := optRnd(cmd, args, 4)
		if errR != nil {
			return *errR
		}
		tern := dst.Root(x, k, r)
		args[0].invalidate()
		return OK(ip.Int(int64(tern)))
	})

	i.RegisterCommand("fac", func(ip *Interp, cmd *Obj, args []*Obj) Result {
		if len(args) < 2 || len(args) > 3 {
			return wrongArgs(cmd, "dst n ?rnd?")
		}
		dst, errR := argBig(cmd, args, 1)
		if errR != nil {
			return *errR
		}
		n, errR := argUint(cmd, args, 2)
		if errR != nil {
			return *errR
		}
		r, errR := optRnd(cmd, args, 3)
		if errR != nil {
			return *errR
		}
		tern := dst.FacUint(n, r)
		args[0].invalidate()
		return OK(ip.Int(int64(tern)))
	})

	fused := []struct {
		name string
		fn   func(z, x, y, u *engine.Num, r engine.Rnd) int
	}{
		{"fma", (*engine.Num).Fma},
		{"fms", (*engine.Num).Fms},
	}
	for _, e := range fused {
		fn := e.fn
		i.RegisterCommand(e.name, func(ip *Interp, cmd *Obj, args []*Obj) Result {
			if len(args) < 4 || len(args) > 5 {
				return wrongArgs(cmd, "dst x y u ?rnd?")
			}
			dst, errR := argBig(cmd, args, 1)
			if errR != nil {
				return *errR
			}
			x, errR := argBig(cmd, args, 2)
			if errR != nil {
				return *errR
			}
			y, errR := argBig(cmd, args, 3)
			if errR != nil {
				return *errR
			}
			u, errR := argBig(cmd, args, 4)
			if errR != nil {
				return *errR
			}
			r, errR := optRnd(cmd, args, 5)
			if errR != nil {
				return *errR
			}
			tern := fn(dst, x, y, u, r)
			args[0].invalidate()
			return OK(ip.Int(int64(tern)))
		})
	}

	// cmp is tri-state and reports 0 for unordered pairs.
	i.RegisterCommand("cmp", func(ip *Interp, cmd *Obj, args []*Obj) Result {
		if len(args) != 2 {
			return wrongArgs(cmd, "x y")
		}
		x, errR := argBig(cmd, args, 1)
		if errR != nil {
			return *errR
		}
		y, errR := argOperand(cmd, args, 2)
		if errR != nil {
			return *errR
		}
		var c int
		switch y.kind {
		case operandBig:
			c = x.Cmp(y.big)
		case operandInt:
			c = x.CmpInt64(y.i)
		default:
			c = x.CmpFloat64(y.d)
		}
		return OK(ip.Int(int64(c)))
	})

	i.RegisterCommand("cmpabs", func(ip *Interp, cmd *Obj, args []*Obj) Result {
		if len(args) != 2 {
			return wrongArgs(cmd, "x y")
		}
		x, errR := argBig(cmd, args, 1)
		if errR != nil {
			return *errR
		}
		y, errR := argBig(cmd, args, 2)
		if errR != nil {
			return *errR
		}
		return OK(ip.Int(int64(x.CmpAbs(y))))
	})

	i.RegisterCommand("sgn", func(ip *Interp, cmd *Obj, args []*Obj) Result {
		if len(args) != 1 {
			return wrongArgs(cmd, "x")
		}
		x, errR := argBig(cmd, args, 1)
		if errR != nil {
			return *errR
		}
		return OK(ip.Int(int64(x.Sgn())))
	})
}
