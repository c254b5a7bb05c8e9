package mpf

// Obj is a host value.
// It follows TCL semantics where values have both a string representation
// and an optional internal representation that can be lazily computed.
type Obj struct {
	bytes  string  // string representation ("" = empty string if intrep == nil)
	intrep ObjType // internal representation (nil = pure string)
	interp *Interp // owning interpreter
}

// ObjType defines the core behavior for an internal representation.
type ObjType interface {
	// Name returns the type name (e.g., "int", "mpf").
	Name() string

	// UpdateString regenerates string representation from this internal rep.
	UpdateString() string

	// Dup creates a copy of this internal representation.
	Dup() ObjType
}

// IntoInt can convert directly to int64.
type IntoInt interface {
	IntoInt() (int64, bool)
}

// IntoDouble can convert directly to float64.
type IntoDouble interface {
	IntoDouble() (float64, bool)
}

// IntoList can convert directly to a list.
type IntoList interface {
	IntoList() ([]*Obj, bool)
}

// String returns the string representation of the object.
// If the string representation is empty and there's an internal representation,
// it regenerates the string from the internal rep.
func (o *Obj) String() string {
	if o == nil {
		return ""
	}
	if o.bytes == "" && o.intrep != nil {
		o.bytes = o.intrep.UpdateString()
	}
	return o.bytes
}

// Type returns the type name of the object.
// Returns "string" for pure string objects (no internal representation).
func (o *Obj) Type() string {
	if o == nil || o.intrep == nil {
		return "string"
	}
	return o.intrep.Name()
}

// InternalRep returns the internal representation of the object.
// Returns nil for pure string objects.
//
// Use type assertion to access custom ObjType implementations:
//
//	if h, ok := obj.InternalRep().(*BigType); ok {
//	    // use h
//	}
func (o *Obj) InternalRep() ObjType {
	if o == nil {
		return nil
	}
	return o.intrep
}

// invalidate clears the cached string representation.
// Should be called after mutating the internal representation.
func (o *Obj) invalidate() {
	if o == nil {
		return
	}
	o.bytes = ""
}

// Copy creates a shallow copy of the object.
// If the object has an internal representation, it is duplicated via Dup().
// The copy remains tied to the same interpreter as the original.
func (o *Obj) Copy() *Obj {
	if o == nil {
		return nil
	}
	if o.intrep == nil {
		return &Obj{bytes: o.bytes, interp: o.interp}
	}
	return &Obj{bytes: o.bytes, intrep: o.intrep.Dup(), interp: o.interp}
}

// Int returns the integer value of this object, shimmering if needed.
func (o *Obj) Int() (int64, error) {
	return asInt(o)
}

// Double returns the float64 value of this object, shimmering if needed.
func (o *Obj) Double() (float64, error) {
	return asDouble(o)
}

// List returns the list elements of this object, shimmering if needed.
// If the object is a pure string, it is split on list syntax.
func (o *Obj) List() ([]*Obj, error) {
	if o != nil {
		if lt, ok := o.intrep.(ListType); ok {
			return lt, nil
		}
	}
	words, err := Fields(o.String())
	if err != nil {
		return nil, err
	}
	items := make([]*Obj, len(words))
	var ip *Interp
	if o != nil {
		ip = o.interp
	}
	for j, w := range words {
		items[j] = &Obj{bytes: w, interp: ip}
	}
	if o != nil {
		o.intrep = ListType(items)
	}
	return items, nil
}
