package expand

import (
	"fmt"
	"strconv"

	"github.com/rubiojr/quill/ast"
	"github.com/rubiojr/quill/pipe"
	"github.com/rubiojr/quill/printer"
)

// dbgContext is the hygiene context of variables introduced by Dbg.
const dbgContext ast.Atom = ast.AliasPrefix + "Macro"

// Dbg rewrites code so that running it prints every pipeline step, or
// the single expression, with its source text and value through
// IO.inspect, and still evaluates to the same value. It fails in match
// and guard contexts.
func Dbg(code ast.Node, env Env) (ast.Node, error) {
	switch env.Context() {
	case ContextMatch:
		return nil, ast.NewUsageError("dbg", "invalid expression in match, dbg is not allowed in patterns such as function clauses, case clauses or on the left side of the = operator")
	case ContextGuard:
		return nil, ast.NewUsageError("dbg", "invalid expression in guard, dbg is not allowed in guards")
	}

	fac := &ast.Factory{Line: env.Line(), Generated: true}
	value := UniqueVar(env, "dbg_value", dbgContext)
	inspect := func(label string) ast.Node {
		return fac.Remote(fac.Alias("IO"), "inspect", value,
			fac.Keyword(ast.Atom("label"), ast.String(label)))
	}

	header := DbgHeader(env)
	steps := pipe.Unpipe(code)
	var body []ast.Node
	for i, step := range steps {
		expr := step.Node
		label := "|> " + printer.ToString(step.Node)
		if i == 0 {
			label = header + " " + printer.ToString(step.Node)
		} else {
			piped, err := pipe.Pipe(value, step.Node, step.Pos)
			if err != nil {
				return nil, fmt.Errorf("dbg: %w", err)
			}
			expr = piped
		}
		body = append(body, fac.Op("=", value, expr), inspect(label))
	}
	body = append(body, value)
	return fac.Block(body...), nil
}

// DbgHeader formats the location of env as [file:line: Module.fun/arity].
func DbgHeader(env Env) string {
	loc := env.File()
	if loc == "" {
		loc = "nofile"
	}
	if env.Line() > 0 {
		loc += ":" + strconv.Itoa(env.Line())
	}
	mod := env.Module()
	name, arity, ok := env.Function()
	switch {
	case ok && mod != ast.Nil:
		loc += fmt.Sprintf(": %s.%s/%d", ast.InspectAtom(ast.AtomLiteral, mod), ast.InspectAtom(ast.AtomRemoteCall, name), arity)
	case mod != ast.Nil:
		loc += ": " + ast.InspectAtom(ast.AtomLiteral, mod)
	}
	return "[" + loc + "]"
}

// UniqueVar returns a variable that cannot clash with user variables of
// the same name: it carries a fresh counter of env's module.
func UniqueVar(env Env, name, ctx ast.Atom) *ast.Form {
	return &ast.Form{
		Head: name,
		Meta: ast.Meta{{Key: ast.MetaCounter, Value: env.NextCounter()}},
		Args: ctx,
	}
}
