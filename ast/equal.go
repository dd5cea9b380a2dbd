package ast

import "reflect"

// Equal reports whether a and b are structurally equal, metadata included.
func Equal(a, b Node) bool {
	return equal(a, b, true)
}

// EqualIgnoringMeta reports whether a and b are structurally equal when
// metadata is disregarded.
func EqualIgnoringMeta(a, b Node) bool {
	return equal(a, b, false)
}

func equal(a, b Node, withMeta bool) bool {
	switch x := a.(type) {
	case nil:
		return b == nil
	case Atom, Int, String:
		return a == b
	case Float:
		y, ok := b.(Float)
		return ok && x == y
	case *Opaque:
		y, ok := b.(*Opaque)
		return ok && x.Kind == y.Kind && reflect.DeepEqual(x.Ref, y.Ref)
	case *Value:
		y, ok := b.(*Value)
		return ok && reflect.DeepEqual(x.V, y.V)
	case *Pair:
		y, ok := b.(*Pair)
		return ok && equal(x.Left, y.Left, withMeta) && equal(x.Right, y.Right, withMeta)
	case *Form:
		y, ok := b.(*Form)
		if !ok {
			return false
		}
		if withMeta && !metaEqual(x.Meta, y.Meta) {
			return false
		}
		return equal(x.Head, y.Head, withMeta) && equal(x.Args, y.Args, withMeta)
	case *List:
		y, ok := b.(*List)
		if !ok || len(x.Elems) != len(y.Elems) {
			return false
		}
		for i := range x.Elems {
			if !equal(x.Elems[i], y.Elems[i], withMeta) {
				return false
			}
		}
		return true
	}
	return false
}

func metaEqual(a, b Meta) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Key != b[i].Key || !reflect.DeepEqual(a[i].Value, b[i].Value) {
			return false
		}
	}
	return true
}
