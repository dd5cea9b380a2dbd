package ast

import (
	"fmt"
	"strings"
)

// Well-known metadata keys.
const (
	MetaLine      = "line"
	MetaColumn    = "column"
	MetaCounter   = "counter"
	MetaDelimiter = "delimiter"
	MetaGenerated = "generated"
	MetaAlias     = "alias"
	MetaClosing   = "closing"
	MetaDo        = "do"
	MetaEnd       = "end"
	MetaFormat    = "format"
	MetaNoParens  = "no_parens"
	MetaFrom      = "from_brackets"
)

// MetaEntry is a single metadata key/value.
type MetaEntry struct {
	Key   string
	Value any
}

// Meta is the ordered metadata of a form. Order carries no meaning but is
// preserved on every copy.
type Meta []MetaEntry

// Get returns the value stored under key.
func (m Meta) Get(key string) (any, bool) {
	for _, e := range m {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// Int returns the integer stored under key.
func (m Meta) Int(key string) (int, bool) {
	v, ok := m.Get(key)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case Int:
		return int(n), true
	}
	return 0, false
}

// Str returns the string stored under key.
func (m Meta) Str(key string) (string, bool) {
	v, ok := m.Get(key)
	if !ok {
		return "", false
	}
	switch s := v.(type) {
	case string:
		return s, true
	case String:
		return string(s), true
	}
	return "", false
}

// Bool returns the boolean stored under key. Missing keys are false.
func (m Meta) Bool(key string) bool {
	v, ok := m.Get(key)
	if !ok {
		return false
	}
	switch b := v.(type) {
	case bool:
		return b
	case Atom:
		return b == True
	}
	return false
}

// Has reports whether key is present.
func (m Meta) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Put returns a copy of m with key set to value. An existing entry keeps
// its position.
func (m Meta) Put(key string, value any) Meta {
	out := make(Meta, len(m), len(m)+1)
	copy(out, m)
	for i, e := range out {
		if e.Key == key {
			out[i].Value = value
			return out
		}
	}
	return append(out, MetaEntry{Key: key, Value: value})
}

// Delete returns a copy of m without key.
func (m Meta) Delete(key string) Meta {
	out := make(Meta, 0, len(m))
	for _, e := range m {
		if e.Key != key {
			out = append(out, e)
		}
	}
	return out
}

// Take returns a copy holding only the given keys, in m's order.
func (m Meta) Take(keys ...string) Meta {
	var out Meta
	for _, e := range m {
		for _, k := range keys {
			if e.Key == k {
				out = append(out, e)
				break
			}
		}
	}
	return out
}

// Clone returns a shallow copy of m.
func (m Meta) Clone() Meta {
	if m == nil {
		return nil
	}
	out := make(Meta, len(m))
	copy(out, m)
	return out
}

// Keyword returns the nested metadata stored under key, such as the
// position of a do/end block.
func (m Meta) Keyword(key string) Meta {
	v, ok := m.Get(key)
	if !ok {
		return nil
	}
	nested, _ := v.(Meta)
	return nested
}

func (m Meta) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, e := range m {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s: %v", e.Key, e.Value)
	}
	sb.WriteByte(']')
	return sb.String()
}
