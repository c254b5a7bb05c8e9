package mpf

import "github.com/feather-lang/mpf/engine"

// Version identifies the command surface, reported by the version command.
const Version = "1.0.0"

// install registers the full command set and the rounding-mode constants
// on a fresh interpreter.
func install(i *Interp) {
	registerFn0(i)
	registerFn1(i)
	registerFn1u(i)
	registerFn12(i)
	registerFn1p(i)
	registerFn2(i)
	registerFn2f(i)
	registerFn2n(i)
	registerFn2p(i)
	registerOps(i)
	registerText(i)
	registerValue(i)
	registerGlobals(i)

	for _, r := range engine.Modes() {
		i.SetConst(r.String(), i.Int(int64(r)))
	}
}

// registerValue adds the handle lifecycle and precision commands.
func registerValue(i *Interp) {
	i.RegisterCommand("new", func(ip *Interp, cmd *Obj, args []*Obj) Result {
		if len(args) > 1 {
			return wrongArgs(cmd, "?prec?")
		}
		p, errR := optPrec(cmd, args, 1)
		if errR != nil {
			return *errR
		}
		return OK(ip.NewBig(p))
	})

	i.RegisterCommand("destroy", func(ip *Interp, cmd *Obj, args []*Obj) Result {
		if len(args) != 1 {
			return wrongArgs(cmd, "x")
		}
		t, ok := args[0].InternalRep().(*BigType)
		if !ok {
			return *argErr(cmd, 1, "mpf handle expected")
		}
		if err := ip.release(t); err != nil {
			return *argErr(cmd, 1, err.Error())
		}
		return OK("")
	})

	i.RegisterCommand("get_prec", func(ip *Interp, cmd *Obj, args []*Obj) Result {
		if len(args) != 1 {
			return wrongArgs(cmd, "x")
		}
		x, errR := argBig(cmd, args, 1)
		if errR != nil {
			return *errR
		}
		return OK(ip.Int(int64(x.Prec())))
	})

	// set_prec resizes the cell and resets it to NaN; prec_round keeps the
	// value.
	i.RegisterCommand("set_prec", func(ip *Interp, cmd *Obj, args []*Obj) Result {
		if len(args) != 2 {
			return wrongArgs(cmd, "x prec")
		}
		x, errR := argBig(cmd, args, 1)
		if errR != nil {
			return *errR
		}
		p, errR := argPrec(cmd, args, 2)
		if errR != nil {
			return *errR
		}
		x.SetPrec(p)
		args[0].invalidate()
		return OK("")
	})

	i.RegisterCommand("min_prec", func(ip *Interp, cmd *Obj, args []*Obj) Result {
		if len(args) != 1 {
			return wrongArgs(cmd, "x")
		}
		x, errR := argBig(cmd, args, 1)
		if errR != nil {
			return *errR
		}
		return OK(ip.Int(int64(x.MinPrec())))
	})

	i.RegisterCommand("prec_round", func(ip *Interp, cmd *Obj, args []*Obj) Result {
		if len(args) < 2 || len(args) > 3 {
			return wrongArgs(cmd, "x prec ?rnd?")
		}
		x, errR := argBig(cmd, args, 1)
		if errR != nil {
			return *errR
		}
		p, errR := argPrec(cmd, args, 2)
		if errR != nil {
			return *errR
		}
		r, errR := optRnd(cmd, args, 3)
		if errR != nil {
			return *errR
		}
		tern := x.PrecRound(p, r)
		args[0].invalidate()
		return OK(ip.Int(int64(tern)))
	})
}

// registerGlobals adds the process-wide accessors.
func registerGlobals(i *Interp) {
	i.RegisterCommand("get_default_prec", func(ip *Interp, cmd *Obj, args []*Obj) Result {
		if len(args) != 0 {
			return wrongArgs(cmd, "")
		}
		return OK(ip.Int(int64(engine.DefaultPrec())))
	})

	i.RegisterCommand("set_default_prec", func(ip *Interp, cmd *Obj, args []*Obj) Result {
		if len(args) != 1 {
			return wrongArgs(cmd, "prec")
		}
		p, errR := argPrec(cmd, args, 1)
		if errR != nil {
			return *errR
		}
		engine.SetDefaultPrec(p)
		return OK("")
	})

	i.RegisterCommand("get_default_rounding_mode", func(ip *Interp, cmd *Obj, args []*Obj) Result {
		if len(args) != 0 {
			return wrongArgs(cmd, "")
		}
		return OK(ip.Int(int64(engine.DefaultRnd())))
	})

	i.RegisterCommand("set_default_rounding_mode", func(ip *Interp, cmd *Obj, args []*Obj) Result {
		if len(args) != 1 {
			return wrongArgs(cmd, "rnd")
		}
		v, errR := argInt(cmd, args, 1)
		if errR != nil {
			return *errR
		}
		r := engine.Rnd(v)
		if !r.Valid() {
			return *argErr(cmd, 1, "invalid rounding mode")
		}
		engine.SetDefaultRnd(r)
		return OK("")
	})

	i.RegisterCommand("free_cache", func(ip *Interp, cmd *Obj, args []*Obj) Result {
		if len(args) != 0 {
			return wrongArgs(cmd, "")
		}
		engine.FreeCache()
		return OK("")
	})

	i.RegisterCommand("version", func(ip *Interp, cmd *Obj, args []*Obj) Result {
		if len(args) != 0 {
			return wrongArgs(cmd, "")
		}
		return OK(Version)
	})
}
