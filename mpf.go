package mpf

import (
	"fmt"
	"strings"
)

// Interp is a command interpreter instance hosting the mpf command set.
//
// Create a new interpreter with [New] and always call [Interp.Close] when
// done so that every live handle is released. An interpreter is not safe
// for concurrent use from multiple goroutines.
//
//	interp := mpf.New()
//	defer interp.Close()
//	result, err := interp.Eval("new 128")
type Interp struct {
	// Commands holds registered Go command implementations.
	Commands map[string]CommandFunc

	consts  map[string]*Obj
	handles map[*BigType]struct{}
	closed  bool
}

// New creates a new interpreter with the full mpf command set registered.
//
// The interpreter must be closed with [Interp.Close] when no longer needed
// to release the cells behind live handles.
func New() *Interp {
	i := &Interp{
		Commands: make(map[string]CommandFunc),
		consts:   make(map[string]*Obj),
		handles:  make(map[*BigType]struct{}),
	}
	install(i)
	return i
}

// Close releases every live handle created by the interpreter.
//
// After Close is called, the interpreter and all handle objects created
// from it become invalid. Always use defer to ensure Close is called.
func (i *Interp) Close() {
	if i.closed {
		return
	}
	for h := range i.handles {
		h.num.Clear()
	}
	i.handles = nil
	i.closed = true
}

// -----------------------------------------------------------------------------
// Object Creation
// -----------------------------------------------------------------------------

// String creates a string object.
func (i *Interp) String(s string) *Obj {
	return &Obj{bytes: s, interp: i}
}

// Int creates an integer object.
func (i *Interp) Int(v int64) *Obj {
	return &Obj{intrep: IntType(v), interp: i}
}

// Double creates a floating-point object.
func (i *Interp) Double(v float64) *Obj {
	return &Obj{intrep: DoubleType(v), interp: i}
}

// Bool creates a boolean object, stored as int 1 (true) or 0 (false).
func (i *Interp) Bool(v bool) *Obj {
	if v {
		return &Obj{intrep: IntType(1), interp: i}
	}
	return &Obj{intrep: IntType(0), interp: i}
}

// List creates a list object from the given items.
func (i *Interp) List(items ...*Obj) *Obj {
	return &Obj{intrep: ListType(items), interp: i}
}

// Obj creates an object with a custom ObjType internal representation.
func (i *Interp) Obj(intrep ObjType) *Obj {
	return &Obj{intrep: intrep, interp: i}
}

// -----------------------------------------------------------------------------
// Constants
// -----------------------------------------------------------------------------

// SetConst binds a named constant (e.g. a rounding mode) on the interpreter.
func (i *Interp) SetConst(name string, o *Obj) {
	i.consts[name] = o
}

// Const looks up a named constant.
func (i *Interp) Const(name string) (*Obj, bool) {
	o, ok := i.consts[name]
	return o, ok
}

// -----------------------------------------------------------------------------
// Command Registration and Invocation
// -----------------------------------------------------------------------------

// CommandFunc is the signature for commands registered with
// [Interp.RegisterCommand].
//
// The function receives:
//   - i: the interpreter (for creating objects, resolving handles, etc.)
//   - cmd: the command name as invoked
//   - args: the arguments passed to the command
//
// Return [OK] for success or [Error]/[Errorf] for failure.
type CommandFunc func(i *Interp, cmd *Obj, args []*Obj) Result

// RegisterCommand adds a command.
func (i *Interp) RegisterCommand(name string, fn CommandFunc) {
	i.Commands[name] = fn
}

// Call invokes a single command with the given arguments.
func (i *Interp) Call(cmd string, args ...*Obj) (*Obj, error) {
	if i.closed {
		return nil, fmt.Errorf("interpreter is closed")
	}
	fn, ok := i.Commands[cmd]
	if !ok {
		return nil, fmt.Errorf("invalid command name %q", cmd)
	}
	r := fn(i, i.String(cmd), args)
	if r.failed {
		if r.hasObj {
			return nil, fmt.Errorf("%s", r.obj.String())
		}
		return nil, fmt.Errorf("%s", r.val)
	}
	if r.hasObj {
		return r.obj, nil
	}
	return i.String(r.val), nil
}

// Eval evaluates one command line. Words prefixed with $ are resolved
// against the interpreter's constant table before dispatch.
func (i *Interp) Eval(line string) (*Obj, error) {
	words, err := Fields(line)
	if err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return i.String(""), nil
	}
	args := make([]*Obj, len(words)-1)
	for j, w := range words[1:] {
		if strings.HasPrefix(w, "$") {
			o, ok := i.Const(w[1:])
			if !ok {
				return nil, fmt.Errorf("no such constant %q", w[1:])
			}
			args[j] = o
			continue
		}
		args[j] = i.String(w)
	}
	return i.Call(words[0], args...)
}

// -----------------------------------------------------------------------------
// Command Results
// -----------------------------------------------------------------------------

// Result represents the result of a command execution.
//
// Create results using [OK], [Error], or [Errorf].
type Result struct {
	failed bool
	val    string // used when obj is nil
	obj    *Obj   // used when non-nil (preserves type)
	hasObj bool   // true if obj should be used
}

// OK returns a successful result with a value.
//
// The value is auto-converted to its string representation.
// Pass a [*Obj] directly to preserve its internal type (int, mpf, list).
func OK(v any) Result {
	if o, ok := v.(*Obj); ok {
		return Result{obj: o, hasObj: true}
	}
	switch val := v.(type) {
	case string:
		return Result{val: val}
	case int:
		return Result{val: fmt.Sprintf("%d", val)}
	case int64:
		return Result{val: fmt.Sprintf("%d", val)}
	case float64:
		return Result{val: fmt.Sprintf("%g", val)}
	case bool:
		if val {
			return Result{val: "1"}
		}
		return Result{val: "0"}
	default:
		return Result{val: fmt.Sprintf("%v", v)}
	}
}

// Error returns an error result with a message or *Obj.
func Error(v any) Result {
	if o, ok := v.(*Obj); ok {
		return Result{failed: true, obj: o, hasObj: true}
	}
	if s, ok := v.(string); ok {
		return Result{failed: true, val: s}
	}
	return Result{failed: true, val: fmt.Sprintf("%v", v)}
}

// Errorf returns a formatted error result.
//
//	return mpf.Errorf("expected %d args, got %d", want, got)
func Errorf(format string, args ...any) Result {
	return Result{failed: true, val: fmt.Sprintf(format, args...)}
}
