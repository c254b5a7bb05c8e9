// Package mpf provides an arbitrary-precision, correctly-rounded
// floating-point value type behind a command surface for embedding hosts.
//
// # Overview
//
// mpf pairs a small TCL-style value/command kernel with the engine package,
// an arbitrary-precision floating-point engine. Scripts manipulate opaque
// handles; every arithmetic command takes an explicit destination handle
// and an optional rounding mode, and reports whether the stored result was
// exact.
//
// # Quick Start
//
//	import "github.com/feather-lang/mpf"
//
//	func main() {
//	    interp := mpf.New()
//	    defer interp.Close()
//
//	    x, _ := interp.Eval("new 128")
//	    interp.Call("set", x, interp.String("1.5"))
//	    interp.Call("mul", x, x, interp.Int(3))
//	    s, _ := interp.Call("tostring", x, interp.Int(10), interp.Int(5))
//	    fmt.Println(s.String()) // "4.5000"
//	}
//
// # Operands
//
// Binary operations accept a handle on either side and a host integer or
// double on the other; the dispatcher picks the primitive variant from the
// operand types, so an exact machine integer is never first widened to a
// float. The rounding-mode constants RNDN, RNDZ, RNDU, RNDD and RNDA are
// registered on the interpreter and usable as $RNDN in Eval lines.
//
// # Lifecycle
//
// Handles are created with new and released with destroy; Close releases
// everything still alive. Destroying a handle twice is a caught error.
package mpf
