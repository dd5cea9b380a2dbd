package expand

import (
	"sort"

	"github.com/rubiojr/quill/ast"
)

// envStruct is the struct name carried by escaped environments.
const envStruct ast.Atom = ast.AliasPrefix + "Macro.Env"

var envFields = []ast.Atom{"module", "file", "line", "function", "context", "versioned_vars"}

// envMap escapes env into a %Macro.Env{} map literal.
func envMap(env Env) ast.Node {
	pairs := []ast.Node{&ast.Pair{Left: ast.Atom("__struct__"), Right: envStruct}}
	for _, name := range envFields {
		v, _ := envField(env, name)
		pairs = append(pairs, &ast.Pair{Left: name, Right: v})
	}
	return &ast.Form{Head: ast.Atom("%{}"), Args: ast.NewList(pairs...)}
}

// envField escapes a single environment field.
func envField(env Env, name ast.Atom) (ast.Node, bool) {
	switch name {
	case "module":
		return env.Module(), true
	case "file":
		return ast.String(env.File()), true
	case "line":
		return ast.Int(env.Line()), true
	case "function":
		fn, arity, ok := env.Function()
		if !ok {
			return ast.Nil, true
		}
		return &ast.Pair{Left: fn, Right: ast.Int(arity)}, true
	case "context":
		if env.Context() == ContextNone {
			return ast.Nil, true
		}
		return ast.Atom(env.Context().String()), true
	case "versioned_vars":
		return versionedVars(env.VersionedVars()), true
	}
	return nil, false
}

func versionedVars(vars map[VarKey]int) ast.Node {
	keys := make([]VarKey, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if vars[a] != vars[b] {
			return vars[a] < vars[b]
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.Context < b.Context
	})
	pairs := make([]ast.Node, len(keys))
	for i, k := range keys {
		ctx := k.Context
		if ctx == "" {
			ctx = ast.Nil
		}
		pairs[i] = &ast.Pair{
			Left:  &ast.Pair{Left: k.Name, Right: ctx},
			Right: ast.Int(vars[k]),
		}
	}
	return &ast.Form{Head: ast.Atom("%{}"), Args: ast.NewList(pairs...)}
}
