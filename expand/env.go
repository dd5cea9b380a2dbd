// Package expand performs one-step and fixpoint expansion of alias,
// environment-reflection and macro nodes against a caller-supplied
// environment.
package expand

import (
	"github.com/rubiojr/quill/ast"
)

// Context is the position the code being expanded sits in.
type Context int

const (
	ContextNone Context = iota
	ContextMatch
	ContextGuard
)

func (c Context) String() string {
	switch c {
	case ContextMatch:
		return "match"
	case ContextGuard:
		return "guard"
	default:
		return "nil"
	}
}

// VarKey identifies a variable by name and context.
type VarKey struct {
	Name    ast.Atom
	Context ast.Atom
}

// Expansion is the tree a macro expanded to and the module that defined
// the macro. Variables introduced by the macro carry that module as their
// context.
type Expansion struct {
	Node   ast.Node
	Module ast.Atom
}

// Env is the compilation environment the expander consults. It is owned
// by the caller; the expander never keeps a reference past a call.
type Env interface {
	// Module is the module being compiled, or ast.Nil.
	Module() ast.Atom
	File() string
	Line() int
	Context() Context
	// Function is the function being compiled, if any.
	Function() (name ast.Atom, arity int, ok bool)
	VersionedVars() map[VarKey]int

	// Alias returns what a registered alias such as Elixir.Repo points to.
	Alias(name ast.Atom) (ast.Atom, bool)

	// Resolve looks up an imported or local macro.
	Resolve(name ast.Atom, arity int, args []ast.Node) (Expansion, bool)
	// ResolveQualified looks up a macro in a required module.
	ResolveQualified(receiver, name ast.Atom, arity int, args []ast.Node) (Expansion, bool)

	// NextCounter allocates the next hygiene counter of Module.
	NextCounter() int64

	// Trace receives expansion events.
	Trace(ev Event)
}

// EventKind is the kind of a traced expansion.
type EventKind int

const (
	EventAliasReference EventKind = iota
	EventLocalMacro
	EventRemoteMacro
)

func (k EventKind) String() string {
	switch k {
	case EventAliasReference:
		return "alias_reference"
	case EventLocalMacro:
		return "local_macro"
	case EventRemoteMacro:
		return "remote_macro"
	default:
		return "unknown"
	}
}

// Event describes one expansion step for tracers.
type Event struct {
	Kind   EventKind
	Meta   ast.Meta
	Module ast.Atom // alias target or macro receiver
	Name   ast.Atom
	Arity  int
}
