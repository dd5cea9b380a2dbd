package expand

import (
	"path"
	"slices"
	"strings"

	"github.com/rubiojr/quill/ast"
)

// specialForms lists the language's special forms by name and arity.
// They are never offered to Env.Resolve. An arity of -1 matches any.
var specialForms = map[ast.Atom][]int{
	"%{}":              {-1},
	"{}":               {-1},
	"%":                {2},
	"<<>>":             {-1},
	"__aliases__":      {-1},
	"__block__":        {-1},
	"__cursor__":       {-1},
	"__CALLER__":       {0},
	"__DIR__":          {0},
	"__ENV__":          {0},
	"__MODULE__":       {0},
	"__STACKTRACE__":   {0},
	"&":                {1},
	".":                {2},
	"::":               {2},
	"=":                {2},
	"^":                {1},
	"->":               {2},
	"alias":            {1, 2},
	"case":             {2},
	"cond":             {1},
	"fn":               {-1},
	"for":              {-1},
	"import":           {1, 2},
	"quote":            {1, 2},
	"receive":          {1},
	"require":          {1, 2},
	"super":            {-1},
	"try":              {1},
	"unquote":          {1},
	"unquote_splicing": {1},
	"with":             {-1},
}

// IsSpecialForm reports whether name/arity is a special form.
func IsSpecialForm(name ast.Atom, arity int) bool {
	for _, a := range specialForms[name] {
		if a == -1 || a == arity {
			return true
		}
	}
	return false
}

// SpecialForms returns the names of every special form, sorted.
func SpecialForms() []ast.Atom {
	names := make([]ast.Atom, 0, len(specialForms))
	for name := range specialForms {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// SpecialFormArities returns the arities name is special at. -1 stands
// for any arity.
func SpecialFormArities(name ast.Atom) []int {
	return slices.Clone(specialForms[name])
}

// lexical forms receive the expansion counter like hygienic variables.
var lexical = map[ast.Atom]bool{
	"import":      true,
	"alias":       true,
	"require":     true,
	"__aliases__": true,
}

// ExpandOnce expands n by a single step. It reports whether anything
// changed; a node it does not know how to expand comes back unchanged.
func ExpandOnce(n ast.Node, env Env) (ast.Node, bool) {
	f, ok := n.(*ast.Form)
	if !ok {
		return n, false
	}
	head, isAtom := f.HeadAtom()

	if isAtom && head == "__aliases__" {
		return expandAlias(f, env)
	}

	if isAtom && f.IsVar() {
		switch head {
		case "__MODULE__":
			return env.Module(), true
		case "__DIR__":
			return ast.String(path.Dir(env.File())), true
		case "__ENV__":
			if env.Context() == ContextMatch {
				return n, false
			}
			return envMap(env), true
		case "__CALLER__", "__STACKTRACE__":
			return n, false
		}
		if f.Meta.Has("var") {
			return n, false
		}
		if _, bound := env.VersionedVars()[VarKey{Name: head, Context: f.Args.(ast.Atom)}]; bound {
			return n, false
		}
		expanded, ok := expandLocal(&ast.Form{Head: head, Meta: f.Meta, Args: ast.NewList()}, head, nil, env)
		if !ok {
			return n, false
		}
		return expanded, true
	}

	args, isCall := f.CallArgs()
	if !isCall {
		return n, false
	}
	if isAtom {
		if IsSpecialForm(head, len(args)) {
			return n, false
		}
		return expandLocal(f, head, args, env)
	}

	// __ENV__.field
	if receiver, name, _, ok := ast.IsRemote(f); ok && len(args) == 0 && isVar(receiver, "__ENV__") {
		if env.Context() == ContextMatch {
			return n, false
		}
		if v, ok := envField(env, name); ok {
			return v, true
		}
		return n, false
	}

	receiver, name, _, ok := ast.IsRemote(f)
	if !ok {
		return n, false
	}
	expanded, _ := ExpandOnce(receiver, env)
	mod, ok := expanded.(ast.Atom)
	if !ok {
		return n, false
	}
	exp, ok := env.ResolveQualified(mod, name, len(args), args)
	if !ok {
		return n, false
	}
	dot := f.Head.(*ast.Form)
	env.Trace(Event{Kind: EventRemoteMacro, Meta: dot.Meta, Module: mod, Name: name, Arity: len(args)})
	if exp.Module == "" {
		exp.Module = mod
	}
	return linify(dot.Meta, exp, env.NextCounter()), true
}

func expandLocal(f *ast.Form, name ast.Atom, args []ast.Node, env Env) (ast.Node, bool) {
	exp, ok := env.Resolve(name, len(args), args)
	if !ok {
		return f, false
	}
	env.Trace(Event{Kind: EventLocalMacro, Meta: f.Meta, Module: exp.Module, Name: name, Arity: len(args)})
	return linify(f.Meta, exp, env.NextCounter()), true
}

func isVar(n ast.Node, name ast.Atom) bool {
	f, ok := n.(*ast.Form)
	if !ok || !f.IsVar() {
		return false
	}
	head, _ := f.HeadAtom()
	return head == name
}

// expandAlias resolves an __aliases__ chain to a single atom when its head
// is an atom or expands to one.
func expandAlias(f *ast.Form, env Env) (ast.Node, bool) {
	segs, _ := f.CallArgs()
	if len(segs) == 0 {
		return f, false
	}
	first, ok := segs[0].(ast.Atom)
	if !ok {
		head, _ := ExpandOnce(segs[0], env)
		first, ok = head.(ast.Atom)
		if !ok {
			return f, false
		}
		target, ok := concat(first, segs[1:])
		if !ok {
			return f, false
		}
		env.Trace(Event{Kind: EventAliasReference, Meta: f.Meta, Module: target})
		return target, true
	}

	target, ok := concat("", segs)
	if !ok {
		return f, false
	}
	if first != "Elixir" {
		if v, ok := f.Meta.Get(ast.MetaAlias); ok {
			// alias: false marks a chain that must not be looked up
			if to, isAtom := v.(ast.Atom); isAtom && to != ast.False {
				target, _ = concat(to, segs[1:])
			}
		} else if to, found := env.Alias(ast.AliasPrefix + first); found {
			target, _ = concat(to, segs[1:])
		}
	}
	env.Trace(Event{Kind: EventAliasReference, Meta: f.Meta, Module: target})
	return target, true
}

// concat joins a base module and alias segments into one module atom.
// A nil base is dropped; segments must all be atoms.
func concat(base ast.Atom, segs []ast.Node) (ast.Atom, bool) {
	var parts []string
	if base != "" && base != ast.Nil {
		parts = append(parts, strings.TrimPrefix(string(base), ast.AliasPrefix))
	}
	for i, s := range segs {
		a, ok := s.(ast.Atom)
		if !ok {
			return "", false
		}
		name := string(a)
		if i == 0 && base == "" && (name == "Elixir" || strings.HasPrefix(name, ast.AliasPrefix)) {
			name = strings.TrimPrefix(strings.TrimPrefix(name, "Elixir"), ".")
			if name == "" {
				continue
			}
		}
		parts = append(parts, name)
	}
	if len(parts) == 0 {
		return "Elixir", true
	}
	return ast.Atom(ast.AliasPrefix + strings.Join(parts, ".")), true
}

// linify stamps an expansion with the hygiene counter and propagates the
// call site's generated flag. Line information from the call site is
// dropped.
func linify(callMeta ast.Meta, exp Expansion, counter int64) ast.Node {
	generated := callMeta.Bool(ast.MetaGenerated)
	return ast.Prewalk(exp.Node, func(n ast.Node) ast.Node {
		f, ok := n.(*ast.Form)
		if !ok {
			return n
		}
		meta := f.Meta
		if generated {
			meta = meta.Put(ast.MetaGenerated, true)
		}
		head, isAtom := f.HeadAtom()
		switch {
		case isAtom && f.IsVar() && head != "_" && f.Args == exp.Module:
			meta = keynew(meta, ast.MetaCounter, counter)
		case isAtom && lexical[head] && f.Arity() > 0:
			meta = keynew(meta, ast.MetaCounter, counter)
		}
		if len(meta) == len(f.Meta) && !generated {
			return n
		}
		return &ast.Form{Head: f.Head, Meta: meta, Args: f.Args}
	})
}

func keynew(m ast.Meta, key string, v any) ast.Meta {
	if m.Has(key) {
		return m
	}
	return m.Put(key, v)
}

// Expand expands the root of n until it no longer changes. Children are
// not expanded.
func Expand(n ast.Node, env Env) ast.Node {
	for {
		next, ok := ExpandOnce(n, env)
		if !ok {
			return n
		}
		n = next
	}
}

// ExpandN is Expand bounded to max steps. It reports false when the
// bound was hit before the root stopped changing.
func ExpandN(n ast.Node, env Env, max int) (ast.Node, bool) {
	for i := 0; i < max; i++ {
		next, ok := ExpandOnce(n, env)
		if !ok {
			return n, true
		}
		n = next
	}
	return n, false
}
