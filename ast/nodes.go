package ast

import "fmt"

// Node is the interface for all quoted tree nodes. The set of
// implementations is closed: Atom, Int, Float, String, *Opaque, *Value,
// *Pair, *Form and *List.
type Node interface {
	node()
}

// Atom is a symbolic constant. Booleans and nil are the atoms
// true, false and nil.
type Atom string

// Int is an integer literal.
type Int int64

// Float is a floating point literal.
type Float float64

// String is a binary string literal.
type String string

// Common atoms.
const (
	True  Atom = "true"
	False Atom = "false"
	Nil   Atom = "nil"
)

// Opaque is a process or function reference. It is never produced by
// parsing, only by escaping runtime values.
type Opaque struct {
	Kind string // "pid", "fun", "ref", "port"
	Ref  any
}

// Value wraps a host value that has no quoted representation. It only
// appears when Escape meets something it cannot convert, and Validate
// always rejects it.
type Value struct {
	V any
}

// Pair is a 2-tuple. It is equivalent to {:{}, [], [left, right]} when
// rendered.
type Pair struct {
	Left  Node
	Right Node
}

// Form is the (head, meta, args) triple.
//
// Head is an Atom for local calls and variables, or a *Form for remote
// and anonymous calls. Args is an Atom when the form is a variable (the
// atom being the variable's context) or a *List when it is a call.
type Form struct {
	Head Node
	Meta Meta
	Args Node
}

// List is a proper list of nodes.
type List struct {
	Elems []Node
}

func (Atom) node()    {}
func (Int) node()     {}
func (Float) node()   {}
func (String) node()  {}
func (*Opaque) node() {}
func (*Value) node()  {}
func (*Pair) node()   {}
func (*Form) node()   {}
func (*List) node()   {}

// NewList builds a list from its elements.
func NewList(elems ...Node) *List {
	return &List{Elems: elems}
}

// Bool returns the atom for b.
func Bool(b bool) Atom {
	if b {
		return True
	}
	return False
}

// IsVar reports whether f is a variable reference.
func (f *Form) IsVar() bool {
	_, ok := f.Args.(Atom)
	return ok
}

// CallArgs returns the argument nodes of a call. ok is false for
// variables and malformed forms.
func (f *Form) CallArgs() ([]Node, bool) {
	l, ok := f.Args.(*List)
	if !ok {
		return nil, false
	}
	return l.Elems, true
}

// Arity returns the number of call arguments, or -1 for variables.
func (f *Form) Arity() int {
	if args, ok := f.CallArgs(); ok {
		return len(args)
	}
	return -1
}

// HeadAtom returns the head as an atom when the form is a local call or
// variable.
func (f *Form) HeadAtom() (Atom, bool) {
	a, ok := f.Head.(Atom)
	return a, ok
}

// Is reports whether n is a local call named name with arity args.
// A negative arity matches any call arity.
func Is(n Node, name Atom, arity int) bool {
	f, ok := n.(*Form)
	if !ok {
		return false
	}
	head, ok := f.HeadAtom()
	if !ok || head != name {
		return false
	}
	args, ok := f.CallArgs()
	if !ok {
		return false
	}
	return arity < 0 || len(args) == arity
}

// IsRemote reports whether n is a call of the form receiver.name(args) and
// returns its parts.
func IsRemote(n Node) (receiver Node, name Atom, args []Node, ok bool) {
	f, isForm := n.(*Form)
	if !isForm {
		return nil, "", nil, false
	}
	dot, isDot := f.Head.(*Form)
	if !isDot || !Is(dot, ".", 2) {
		return nil, "", nil, false
	}
	dargs, _ := dot.CallArgs()
	name, isAtom := dargs[1].(Atom)
	if !isAtom {
		return nil, "", nil, false
	}
	args, isCall := f.CallArgs()
	if !isCall {
		return nil, "", nil, false
	}
	return dargs[0], name, args, true
}

// Inspect renders a debugging representation close to the quoted form
// notation. Use the printer package to obtain source text.
func Inspect(n Node) string {
	switch v := n.(type) {
	case nil:
		return "<nil>"
	case Atom:
		return InspectAtom(AtomLiteral, v)
	case Int:
		return fmt.Sprintf("%d", int64(v))
	case Float:
		return FormatFloat(float64(v))
	case String:
		return Quote(string(v), '"')
	case *Opaque:
		return fmt.Sprintf("#%s<%v>", v.Kind, v.Ref)
	case *Value:
		return fmt.Sprintf("#value<%v>", v.V)
	case *Pair:
		return "{" + Inspect(v.Left) + ", " + Inspect(v.Right) + "}"
	case *Form:
		return "{" + Inspect(v.Head) + ", " + v.Meta.String() + ", " + Inspect(v.Args) + "}"
	case *List:
		s := "["
		for i, e := range v.Elems {
			if i > 0 {
				s += ", "
			}
			s += Inspect(e)
		}
		return s + "]"
	}
	return fmt.Sprintf("%#v", n)
}
