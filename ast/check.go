package ast

import "fmt"

// Validate reports whether n is a well-formed tree. When it is not, the
// first offending subnode is returned, searching left to right and
// outside in. Validate never panics.
func Validate(n Node) (Node, bool) {
	switch v := n.(type) {
	case nil:
		return nil, false
	case Atom, Int, Float, String:
		return nil, true
	case *Opaque:
		if v == nil || v.Ref == nil {
			return n, false
		}
		return nil, true
	case *Pair:
		if v == nil {
			return n, false
		}
		if bad, ok := Validate(v.Left); !ok {
			return bad, false
		}
		return Validate(v.Right)
	case *Form:
		return validateForm(v)
	case *List:
		if v == nil {
			return n, false
		}
		for _, e := range v.Elems {
			if bad, ok := Validate(e); !ok {
				return bad, false
			}
		}
		return nil, true
	}
	return n, false
}

func validateForm(f *Form) (Node, bool) {
	if f == nil {
		return f, false
	}
	switch h := f.Head.(type) {
	case Atom:
	case *Form:
		if bad, ok := validateForm(h); !ok {
			return bad, false
		}
	default:
		return f, false
	}
	switch a := f.Args.(type) {
	case Atom:
		return nil, true
	case *List:
		if a == nil {
			return f, false
		}
		return Validate(a)
	}
	return f, false
}

// Check validates a tree without modifying it.
type Check interface {
	Name() string
	Check(n Node) error
}

// CheckFunc adapts a named function to the Check interface.
type CheckFunc struct {
	N string
	F func(Node) error
}

func (c CheckFunc) Name() string       { return c.N }
func (c CheckFunc) Check(n Node) error { return c.F(n) }

// WellFormed is the Check counterpart of Validate.
func WellFormed() Check {
	return CheckFunc{
		N: "well-formed",
		F: func(n Node) error {
			if bad, ok := Validate(n); !ok {
				return &InvalidNodeError{Node: bad}
			}
			return nil
		},
	}
}

// InvalidNodeError reports the first invalid subnode of a tree.
type InvalidNodeError struct {
	Node Node
}

func (e *InvalidNodeError) Error() string {
	return fmt.Sprintf("invalid quoted expression: %s", Inspect(e.Node))
}

// CheckChain runs checks in order, stopping at the first error.
type CheckChain []Check

// Run executes each check in sequence. Returns nil if all pass.
func (cc CheckChain) Run(n Node) error {
	for _, c := range cc {
		if err := c.Check(n); err != nil {
			return fmt.Errorf("%s: %w", c.Name(), err)
		}
	}
	return nil
}
