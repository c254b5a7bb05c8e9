package mpf

import "strings"

// ListType is the internal representation for lists.
type ListType []*Obj

func (t ListType) Name() string { return "list" }

func (t ListType) Dup() ObjType {
	cp := make(ListType, len(t))
	copy(cp, t)
	return cp
}

func (t ListType) UpdateString() string {
	parts := make([]string, len(t))
	for j, item := range t {
		parts[j] = quote(item.String())
	}
	return strings.Join(parts, " ")
}

func (t ListType) IntoList() ([]*Obj, bool) { return t, true }
