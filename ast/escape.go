package ast

import (
	"fmt"
	"reflect"
	"sort"
)

// Tuple is a host-side tuple for EscapeValue. Two-element tuples escape to
// a *Pair, every other size to a {} form.
type Tuple []any

// EscapeValue converts a host value into a tree that evaluates to it.
// Values with no quoted representation become *Value leaves, which
// Validate rejects; the returned error names the first of them.
func EscapeValue(v any) (Node, error) {
	n := escape(v)
	if bad, ok := Validate(n); !ok {
		return n, fmt.Errorf("cannot escape %s", Inspect(bad))
	}
	return n, nil
}

func escape(v any) Node {
	switch x := v.(type) {
	case nil:
		return Nil
	case Node:
		return x
	case bool:
		return Bool(x)
	case int:
		return Int(x)
	case int8:
		return Int(x)
	case int16:
		return Int(x)
	case int32:
		return Int(x)
	case int64:
		return Int(x)
	case uint8:
		return Int(x)
	case uint16:
		return Int(x)
	case uint32:
		return Int(x)
	case float32:
		return Float(x)
	case float64:
		return Float(x)
	case string:
		return String(x)
	case Tuple:
		if len(x) == 2 {
			return &Pair{Left: escape(x[0]), Right: escape(x[1])}
		}
		elems := make([]Node, len(x))
		for i, e := range x {
			elems[i] = escape(e)
		}
		return &Form{Head: Atom("{}"), Args: NewList(elems...)}
	case []any:
		elems := make([]Node, len(x))
		for i, e := range x {
			elems[i] = escape(e)
		}
		return NewList(elems...)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Func:
		return &Opaque{Kind: "fun", Ref: fmt.Sprintf("%p", v)}
	case reflect.Chan:
		return &Opaque{Kind: "port", Ref: fmt.Sprintf("%p", v)}
	case reflect.Slice, reflect.Array:
		elems := make([]Node, rv.Len())
		for i := range elems {
			elems[i] = escape(rv.Index(i).Interface())
		}
		return NewList(elems...)
	case reflect.Map:
		return escapeMap(rv)
	}
	return &Value{V: v}
}

func escapeMap(rv reflect.Value) Node {
	keys := rv.MapKeys()
	sort.Slice(keys, func(i, j int) bool {
		return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
	})
	pairs := make([]Node, len(keys))
	for i, k := range keys {
		pairs[i] = &Pair{Left: escape(k.Interface()), Right: escape(rv.MapIndex(k).Interface())}
	}
	return &Form{Head: Atom("%{}"), Args: NewList(pairs...)}
}
