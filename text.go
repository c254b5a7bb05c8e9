package mpf

import "github.com/feather-lang/mpf/engine"

// The textual converter commands. Rendering goes through formatNum (shared
// with the handle string representation); parsing through the engine's
// exact base-b reader.

func registerText(i *Interp) {
	i.RegisterCommand("tostring", func(ip *Interp, cmd *Obj, args []*Obj) Result {
		if len(args) < 1 || len(args) > 4 {
			return wrongArgs(cmd, "x ?base? ?n? ?rnd?")
		}
		x, errR := argBig(cmd, args, 1)
		if errR != nil {
			return *errR
		}
		base, errR := optBase(cmd, args, 2)
		if errR != nil {
			return *errR
		}
		nd, errR := optDigits(cmd, args, 3)
		if errR != nil {
			return *errR
		}
		r, errR := optRnd(cmd, args, 4)
		if errR != nil {
			return *errR
		}
		return OK(ip.String(formatNum(x, base, nd, r)))
	})

	// tonumber converts back to a host value: an int when the cell holds
	// an exact in-range integer, a double otherwise.
	i.RegisterCommand("tonumber", func(ip *Interp, cmd *Obj, args []*Obj) Result {
		if len(args) < 1 || len(args) > 2 {
			return wrongArgs(cmd, "x ?rnd?")
		}
		x, errR := argBig(cmd, args, 1)
		if errR != nil {
			return *errR
		}
		r, errR := optRnd(cmd, args, 2)
		if errR != nil {
			return *errR
		}
		if x.IsInteger() {
			if v, ok := x.Int64(r); ok {
				return OK(ip.Int(v))
			}
		}
		return OK(ip.Double(x.Float64(r)))
	})

	// set assigns from a host number, another handle, or a string in the
	// given base. A failed parse leaves the destination unmodified.
	i.RegisterCommand("set", func(ip *Interp, cmd *Obj, args []*Obj) Result {
		if len(args) < 2 || len(args) > 4 {
			return wrongArgs(cmd, "dst value ?base? ?rnd?")
		}
		dst, errR := argBig(cmd, args, 1)
		if errR != nil {
			return *errR
		}
		base, errR := optBase(cmd, args, 3)
		if errR != nil {
			return *errR
		}
		r, errR := optRnd(cmd, args, 4)
		if errR != nil {
			return *errR
		}
		var tern int
		switch t := args[1].InternalRep().(type) {
		case *BigType:
			if t.num.Cleared() {
				return *argErr(cmd, 2, "handle already destroyed")
			}
			tern = dst.Set(t.num, r)
		case IntType:
			tern = dst.SetInt64(int64(t), r)
		case DoubleType:
			tern = dst.SetFloat64(float64(t), r)
		default:
			var err error
			tern, err = dst.SetString(args[1].String(), base, r)
			if err != nil {
				return *argErr(cmd, 2, err.Error())
			}
		}
		args[0].invalidate()
		return OK(ip.Int(int64(tern)))
	})

	i.RegisterCommand("set_nan", func(ip *Interp, cmd *Obj, args []*Obj) Result {
		if len(args) != 1 {
			return wrongArgs(cmd, "dst")
		}
		dst, errR := argBig(cmd, args, 1)
		if errR != nil {
			return *errR
		}
		dst.SetNaN()
		args[0].invalidate()
		return OK("")
	})

	signedSet := []struct {
		name string
		fn   func(z *engine.Num, sign int)
	}{
		{"set_inf", (*engine.Num).SetInf},
		{"set_zero", (*engine.Num).SetZero},
	}
	for _, e := range signedSet {
		fn := e.fn
		i.RegisterCommand(e.name, func(ip *Interp, cmd *Obj, args []*Obj) Result {
			if len(args) < 1 || len(args) > 2 {
				return wrongArgs(cmd, "dst ?sign?")
			}
			dst, errR := argBig(cmd, args, 1)
			if errR != nil {
				return *errR
			}
			sign := int64(0)
			if len(args) >= 2 {
				var errR *Result
				sign, errR = argInt(cmd, args, 2)
				if errR != nil {
					return *errR
				}
			}
			fn(dst, int(sign))
			args[0].invalidate()
			return OK("")
		})
	}
}
