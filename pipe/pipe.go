// Package pipe decomposes |> chains into ordered steps and inserts piped
// values into call forms.
package pipe

import (
	"fmt"

	"github.com/rubiojr/quill/ast"
	"github.com/rubiojr/quill/printer"
)

// Step is one link of a pipeline: the expression and the argument
// position the upstream value is inserted at.
type Step struct {
	Node ast.Node
	Pos  int
}

// Unpipe flattens a chain of |> forms into its steps, left to right.
// A node that is not a pipeline yields a single step.
func Unpipe(n ast.Node) []Step {
	return unpipe(n, nil)
}

func unpipe(n ast.Node, acc []Step) []Step {
	if f, ok := n.(*ast.Form); ok && ast.Is(f, "|>", 2) {
		args, _ := f.CallArgs()
		return unpipe(args[1], unpipe(args[0], acc))
	}
	return append(acc, Step{Node: n, Pos: 0})
}

// Join rebuilds a |> chain from steps. Steps must not be empty.
func Join(steps []Step) ast.Node {
	acc := steps[0].Node
	for _, s := range steps[1:] {
		acc = ast.Call("|>", acc, s.Node)
	}
	return acc
}

// Fold applies the steps by inserting each accumulated value into the
// next step at its position, producing the nested calls the pipeline
// stands for.
func Fold(steps []Step) (ast.Node, error) {
	if len(steps) == 0 {
		return nil, ast.NewUsageError("pipe", "cannot fold an empty pipeline")
	}
	acc := steps[0].Node
	for _, s := range steps[1:] {
		var err error
		acc, err = Pipe(acc, s.Node, s.Pos)
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}

// Pipe inserts value as the pos-th argument of call. Calls that cannot
// take a piped argument are rejected with a *ast.UsageError.
func Pipe(value, call ast.Node, pos int) (ast.Node, error) {
	f, ok := call.(*ast.Form)
	if !ok {
		return nil, badPipe(value, call)
	}

	if head, ok := f.HeadAtom(); ok {
		switch head {
		case "&", "{}", "%{}", "__aliases__", "<<>>":
			return nil, badPipe(value, call)
		case "unquote", "unquote_splicing":
			if f.Arity() == 1 {
				return nil, usage("cannot pipe %s into the special form %s/1 since %s/1 is used to build the quoted tree itself",
					str(value), head, head)
			}
		case "fn":
			return nil, usage("cannot pipe %s into an anonymous function without calling the function; use then/2 instead or invoke the function with fun.(...)",
				str(value))
		case "+", "-":
			if args, ok := f.CallArgs(); ok && len(args) == 1 {
				return nil, usage("piping into a unary operator is not supported, please use the qualified name: Kernel.%s(%s) instead of %s%s",
					head, str(args[0]), head, str(args[0]))
			}
		}
	}

	if f.IsVar() {
		return &ast.Form{Head: f.Head, Meta: f.Meta, Args: ast.NewList(value)}, nil
	}

	args, ok := f.CallArgs()
	if !ok {
		return nil, badPipe(value, call)
	}
	if head, ok := f.HeadAtom(); ok && isOperator(head) && !ast.IsOperator(head, len(args)+1) {
		return nil, usage("cannot pipe %s into %s, the %s operator can only take %s",
			str(value), str(call), head, operandCount(head))
	}
	if isBracketAccess(f) {
		return nil, usage("cannot pipe %s into %s: bracket access binds tighter than |>, so the pipeline reads as %s |> (%s); call Access.get/2 explicitly or wrap the left side in parentheses",
			str(value), str(call), str(value), str(call))
	}
	if pos < 0 || pos > len(args) {
		return nil, usage("cannot pipe %s into %s at position %d, the call has %d arguments",
			str(value), str(call), pos, len(args))
	}

	out := make([]ast.Node, 0, len(args)+1)
	out = append(out, args[:pos]...)
	out = append(out, value)
	out = append(out, args[pos:]...)
	return &ast.Form{Head: f.Head, Meta: f.Meta, Args: ast.NewList(out...)}, nil
}

func isOperator(name ast.Atom) bool {
	return ast.IsOperator(name, 1) || ast.IsOperator(name, 2)
}

func operandCount(op ast.Atom) string {
	if ast.IsOperator(op, 2) {
		return "two arguments"
	}
	return "one argument"
}

// isBracketAccess matches the Access.get(base, key) calls that foo[bar]
// produces.
func isBracketAccess(f *ast.Form) bool {
	receiver, name, _, ok := ast.IsRemote(f)
	if !ok || name != "get" {
		return false
	}
	switch r := receiver.(type) {
	case ast.Atom:
		return r == ast.AliasPrefix+"Access"
	case *ast.Form:
		segs, ok := r.CallArgs()
		head, _ := r.HeadAtom()
		return ok && head == "__aliases__" && len(segs) == 1 && segs[0] == ast.Atom("Access")
	}
	return false
}

func badPipe(value, call ast.Node) error {
	return usage("cannot pipe %s into %s, can only pipe into local calls foo(), remote calls Foo.bar() or anonymous function calls foo.()",
		str(value), str(call))
}

func usage(format string, args ...any) error {
	return ast.NewUsageError("pipe", fmt.Sprintf(format, args...))
}

func str(n ast.Node) string { return printer.ToString(n) }
