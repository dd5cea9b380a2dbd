package expand

import (
	"github.com/rubiojr/quill/ast"
)

// ExpandLiterals expands the alias and __MODULE__ nodes that appear in
// literal positions of n: inside aliases, tuples, pairs, maps, structs,
// lists and the default value of Application.compile_env/3. fun is called
// only on __aliases__ nodes made of atoms and on __MODULE__ variables.
func ExpandLiterals[A any](n ast.Node, acc A, fun func(ast.Node, A) (ast.Node, A)) (ast.Node, A) {
	switch v := n.(type) {
	case *ast.Pair:
		left, acc := ExpandLiterals(v.Left, acc, fun)
		right, acc := ExpandLiterals(v.Right, acc, fun)
		if left == v.Left && right == v.Right {
			return v, acc
		}
		return &ast.Pair{Left: left, Right: right}, acc
	case *ast.List:
		elems, acc := literalElems(v.Elems, acc, fun)
		if elems == nil {
			return v, acc
		}
		return &ast.List{Elems: elems}, acc
	case *ast.Form:
		return literalForm(v, acc, fun)
	}
	return n, acc
}

func literalForm[A any](f *ast.Form, acc A, fun func(ast.Node, A) (ast.Node, A)) (ast.Node, A) {
	head, isAtom := f.HeadAtom()
	if isAtom && head == "__MODULE__" && f.IsVar() {
		return fun(f, acc)
	}
	args, isCall := f.CallArgs()
	if !isCall {
		return f, acc
	}

	if isCompileEnv(f) && len(args) == 3 {
		def, acc := ExpandLiterals(args[2], acc, fun)
		if def == args[2] {
			return f, acc
		}
		return &ast.Form{Head: f.Head, Meta: f.Meta, Args: ast.NewList(args[0], args[1], def)}, acc
	}
	if !isAtom {
		return f, acc
	}

	switch head {
	case "__aliases__":
		elems, acc := literalElems(args, acc, fun)
		out := f
		if elems != nil {
			out = &ast.Form{Head: head, Meta: f.Meta, Args: &ast.List{Elems: elems}}
			args = elems
		}
		for _, a := range args {
			if _, ok := a.(ast.Atom); !ok {
				return out, acc
			}
		}
		return fun(out, acc)
	case "%", "%{}", "{}":
		if head == "%" && len(args) != 2 {
			return f, acc
		}
		elems, acc := literalElems(args, acc, fun)
		if elems == nil {
			return f, acc
		}
		return &ast.Form{Head: head, Meta: f.Meta, Args: &ast.List{Elems: elems}}, acc
	}
	return f, acc
}

// literalElems expands each element and returns nil when none changed.
func literalElems[A any](elems []ast.Node, acc A, fun func(ast.Node, A) (ast.Node, A)) ([]ast.Node, A) {
	var out []ast.Node
	for i, e := range elems {
		next, a := ExpandLiterals(e, acc, fun)
		acc = a
		if out == nil && next != e {
			out = make([]ast.Node, len(elems))
			copy(out, elems[:i])
		}
		if out != nil {
			out[i] = next
		}
	}
	return out, acc
}

// isCompileEnv matches Application.compile_env(app, key, default).
func isCompileEnv(f *ast.Form) bool {
	receiver, name, _, ok := ast.IsRemote(f)
	if !ok || name != "compile_env" {
		return false
	}
	alias, ok := receiver.(*ast.Form)
	if !ok || !ast.Is(alias, "__aliases__", 1) {
		return false
	}
	segs, _ := alias.CallArgs()
	return segs[0] == ast.Atom("Application")
}

// ExpandLiteralsEnv expands the literal positions of n against env.
func ExpandLiteralsEnv(n ast.Node, env Env) ast.Node {
	out, _ := ExpandLiterals(n, struct{}{}, func(n ast.Node, acc struct{}) (ast.Node, struct{}) {
		return Expand(n, env), acc
	})
	return out
}
