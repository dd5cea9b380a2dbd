package expand

import (
	"fmt"
	"sync"

	"github.com/rubiojr/quill/ast"
)

// MacroFunc produces the expansion of a macro call from its arguments.
type MacroFunc func(args []ast.Node) ast.Node

// MacroKey identifies a macro by name and arity.
type MacroKey struct {
	Name  ast.Atom
	Arity int
}

func (k MacroKey) String() string { return fmt.Sprintf("%s/%d", k.Name, k.Arity) }

// Macro is a macro definition and the module that defines it.
type Macro struct {
	Module ast.Atom
	Expand MacroFunc
}

// Function names the function being compiled.
type Function struct {
	Name  ast.Atom
	Arity int
}

// StaticEnv is a table-driven Env. The zero value has no module, no
// aliases and no macros.
type StaticEnv struct {
	Mod      ast.Atom
	FilePath string
	LineNo   int
	Ctx      Context
	Fun      *Function
	Vars     map[VarKey]int

	// Aliases maps Elixir.Short to the full module name.
	Aliases map[ast.Atom]ast.Atom
	// Locals are macros callable without a receiver.
	Locals map[MacroKey]Macro
	// Remotes are macros keyed by receiver module.
	Remotes map[ast.Atom]map[MacroKey]Macro

	Counters *ModuleCounters
	Tracer   Tracer

	once sync.Once
}

var _ Env = (*StaticEnv)(nil)

// Tracer observes expansion events.
type Tracer interface {
	Trace(ev Event)
}

// TracerFunc adapts a function to Tracer.
type TracerFunc func(ev Event)

func (f TracerFunc) Trace(ev Event) { f(ev) }

func (e *StaticEnv) Module() ast.Atom {
	if e.Mod == "" {
		return ast.Nil
	}
	return e.Mod
}

func (e *StaticEnv) File() string                  { return e.FilePath }
func (e *StaticEnv) Line() int                     { return e.LineNo }
func (e *StaticEnv) Context() Context              { return e.Ctx }
func (e *StaticEnv) VersionedVars() map[VarKey]int { return e.Vars }

func (e *StaticEnv) Function() (ast.Atom, int, bool) {
	if e.Fun == nil {
		return "", 0, false
	}
	return e.Fun.Name, e.Fun.Arity, true
}

func (e *StaticEnv) Alias(name ast.Atom) (ast.Atom, bool) {
	to, ok := e.Aliases[name]
	return to, ok
}

// DefineAlias registers alias Short, as: Full. Both are module atoms.
func (e *StaticEnv) DefineAlias(short, full ast.Atom) {
	if e.Aliases == nil {
		e.Aliases = map[ast.Atom]ast.Atom{}
	}
	e.Aliases[short] = full
}

// DefineLocal registers a macro callable without a receiver.
func (e *StaticEnv) DefineLocal(name ast.Atom, arity int, m Macro) {
	if e.Locals == nil {
		e.Locals = map[MacroKey]Macro{}
	}
	e.Locals[MacroKey{name, arity}] = m
}

// DefineRemote registers a macro reachable as module.name(...).
func (e *StaticEnv) DefineRemote(module, name ast.Atom, arity int, m Macro) {
	if e.Remotes == nil {
		e.Remotes = map[ast.Atom]map[MacroKey]Macro{}
	}
	if e.Remotes[module] == nil {
		e.Remotes[module] = map[MacroKey]Macro{}
	}
	if m.Module == "" {
		m.Module = module
	}
	e.Remotes[module][MacroKey{name, arity}] = m
}

func (e *StaticEnv) Resolve(name ast.Atom, arity int, args []ast.Node) (Expansion, bool) {
	m, ok := e.Locals[MacroKey{name, arity}]
	if !ok {
		return Expansion{}, false
	}
	return Expansion{Node: m.Expand(args), Module: m.Module}, true
}

func (e *StaticEnv) ResolveQualified(receiver, name ast.Atom, arity int, args []ast.Node) (Expansion, bool) {
	m, ok := e.Remotes[receiver][MacroKey{name, arity}]
	if !ok {
		return Expansion{}, false
	}
	return Expansion{Node: m.Expand(args), Module: m.Module}, true
}

func (e *StaticEnv) NextCounter() int64 {
	e.once.Do(func() {
		if e.Counters == nil {
			e.Counters = &ModuleCounters{}
		}
	})
	return e.Counters.Next(e.Module())
}

func (e *StaticEnv) Trace(ev Event) {
	if e.Tracer != nil {
		e.Tracer.Trace(ev)
	}
}

// Template returns a MacroFunc that substitutes unquote(param) in tmpl
// with the argument at the position of param in params.
func Template(params []ast.Atom, tmpl ast.Node) MacroFunc {
	index := make(map[ast.Atom]int, len(params))
	for i, p := range params {
		index[p] = i
	}
	return func(args []ast.Node) ast.Node {
		return ast.Postwalk(tmpl, func(n ast.Node) ast.Node {
			if !ast.Is(n, "unquote", 1) {
				return n
			}
			uargs, _ := n.(*ast.Form).CallArgs()
			v, ok := uargs[0].(*ast.Form)
			if !ok || !v.IsVar() {
				return n
			}
			name, _ := v.HeadAtom()
			i, ok := index[name]
			if !ok || i >= len(args) {
				return n
			}
			return args[i]
		})
	}
}
