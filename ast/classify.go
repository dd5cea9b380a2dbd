package ast

import (
	"strings"

	"github.com/rubiojr/quill/scanner"
)

// AtomClass classifies how an atom can be written in source.
type AtomClass int

const (
	ClassAlias            AtomClass = iota // Foo.Bar
	ClassIdentifier                        // foo, bar?
	ClassUnquotedOperator                  // +, |>, and
	ClassQuotedOperator                    // operators that must be quoted
	ClassNotCallable                       // {}, %{}, foo@bar
	ClassOther                             // anything needing quotes
)

func (c AtomClass) String() string {
	switch c {
	case ClassAlias:
		return "alias"
	case ClassIdentifier:
		return "identifier"
	case ClassUnquotedOperator:
		return "unquoted_operator"
	case ClassQuotedOperator:
		return "quoted_operator"
	case ClassNotCallable:
		return "not_callable"
	default:
		return "other"
	}
}

// Quoted reports whether atoms of this class must be written in quotes.
func (c AtomClass) Quoted() bool {
	return c == ClassQuotedOperator || c == ClassOther
}

// AliasPrefix is the namespace every alias atom carries.
const AliasPrefix = "Elixir."

var structuralAtoms = map[Atom]bool{
	"%": true, "%{}": true, "{}": true, "<<>>": true,
	"...": true, "..": true, ".": true, "..//": true, "->": true,
}

var deprecatedOperators = map[Atom]bool{
	"::": true,
}

// ClassifyAtom classifies a. Rules apply in order: structural markers,
// deprecated operators, operators, alias chains, then identifier
// tokenization of the atom's text.
func ClassifyAtom(a Atom) AtomClass {
	switch {
	case structuralAtoms[a]:
		return ClassNotCallable
	case deprecatedOperators[a]:
		return ClassQuotedOperator
	case IsOperator(a, 1) || IsOperator(a, 2):
		return ClassUnquotedOperator
	case scanner.IsAlias(string(a)):
		return ClassAlias
	}

	tok, err := scanner.Identifier(string(a))
	if err != nil || tok.Rest != "" {
		return ClassOther
	}
	if tok.Kind == scanner.KindIdentifier && !tok.HasSpecial('@') {
		return ClassIdentifier
	}
	return ClassNotCallable
}

// AtomContext is where an atom is being written.
type AtomContext int

const (
	AtomLiteral    AtomContext = iota // :foo
	AtomKey                           // foo: in keywords and maps
	AtomRemoteCall                    // Mod.foo()
)

// InspectAtom renders a for the given context, quoting it when its
// classification requires.
func InspectAtom(ctx AtomContext, a Atom) string {
	name := string(a)
	class := ClassifyAtom(a)
	switch ctx {
	case AtomKey:
		switch {
		case class.Quoted():
			return Quote(name, '"') + ":"
		case class == ClassAlias && strings.Contains(name, "."):
			return Quote(name, '"') + ":"
		}
		return name + ":"
	case AtomRemoteCall:
		if class == ClassIdentifier || class == ClassUnquotedOperator {
			return name
		}
		return Quote(name, '"')
	}

	switch a {
	case True, False, Nil:
		return name
	}
	switch class {
	case ClassAlias:
		switch {
		case name == "Elixir" || strings.HasPrefix(name, AliasPrefix+"Elixir."):
			return name
		case strings.HasPrefix(name, AliasPrefix):
			return strings.TrimPrefix(name, AliasPrefix)
		}
		return ":" + name
	case ClassQuotedOperator, ClassOther:
		return ":" + Quote(name, '"')
	}
	return ":" + name
}

// QuotedLiteral reports whether n is made only of literals: atoms,
// numbers, strings, lists, pairs, tuple and map literals.
func QuotedLiteral(n Node) bool {
	switch v := n.(type) {
	case Atom, Int, Float, String:
		return true
	case *Pair:
		return QuotedLiteral(v.Left) && QuotedLiteral(v.Right)
	case *List:
		for _, e := range v.Elems {
			if !QuotedLiteral(e) {
				return false
			}
		}
		return true
	case *Form:
		head, _ := v.HeadAtom()
		if head != "{}" && head != "%{}" {
			return false
		}
		args, ok := v.CallArgs()
		if !ok {
			return false
		}
		for _, e := range args {
			if !QuotedLiteral(e) {
				return false
			}
		}
		return true
	}
	return false
}
