// Package printer renders quoted trees back into source text. Operators
// are parenthesized only where precedence or associativity requires it.
package printer

import (
	"strconv"
	"strings"

	"github.com/rubiojr/quill/ast"
)

// Func may replace the rendering of any node. It receives the node and
// its default rendering and returns the text to use.
type Func func(n ast.Node, rendered string) string

// ToString renders n as source text.
func ToString(n ast.Node) string {
	return ToStringWith(n, nil)
}

// ToStringWith renders n, passing every node and its default rendering
// through fun.
func ToStringWith(n ast.Node, fun Func) string {
	if fun == nil {
		fun = func(_ ast.Node, s string) string { return s }
	}
	p := &printer{fun: fun}
	return p.str(n)
}

type printer struct {
	fun Func
}

func (p *printer) str(n ast.Node) string {
	return p.fun(n, p.render(n))
}

func (p *printer) render(n ast.Node) string {
	switch v := n.(type) {
	case *ast.Form:
		return p.form(v)
	case *ast.Pair:
		return "{" + p.str(v.Left) + ", " + p.str(v.Right) + "}"
	case *ast.List:
		return p.list(v)
	}
	return literal(n)
}

// literal renders leaves and anything no other rule matches.
func literal(n ast.Node) string {
	switch v := n.(type) {
	case ast.Atom:
		return ast.InspectAtom(ast.AtomLiteral, v)
	case ast.Int:
		return strconv.FormatInt(int64(v), 10)
	case ast.Float:
		return ast.FormatFloat(float64(v))
	case ast.String:
		return ast.Quote(string(v), '"')
	}
	return ast.Inspect(n)
}

func (p *printer) list(l *ast.List) string {
	switch {
	case len(l.Elems) == 0:
		return "[]"
	case isArrows(l.Elems):
		return "(" + p.arrows(l.Elems, true) + ")"
	case isKeyword(l.Elems):
		return "[" + p.keyword(l.Elems) + "]"
	}
	return "[" + p.join(l.Elems, ", ") + "]"
}

func (p *printer) form(f *ast.Form) string {
	head, isAtom := f.HeadAtom()
	if isAtom && f.IsVar() {
		return string(head)
	}
	args, isCall := f.CallArgs()
	if !isCall {
		return ast.Inspect(f)
	}
	if !isAtom {
		return p.call(f, args)
	}

	switch head {
	case "__aliases__":
		return p.aliases(args)
	case "__block__":
		switch len(args) {
		case 0:
			return ""
		case 1:
			return p.str(args[0])
		}
		return "(\n  " + indent(p.block(f)) + "\n)"
	case "<<>>":
		return p.bits(args)
	case "{}":
		return "{" + p.join(args, ", ") + "}"
	case "%{}":
		return "%{" + p.mapBody(args) + "}"
	case "%":
		if s, ok := p.structLit(args); ok {
			return s
		}
	case "fn":
		if s, ok := p.fn(args); ok {
			return s
		}
	case "..":
		if len(args) == 0 {
			return ".."
		}
		if len(args) == 2 {
			return p.operand(args[0], "..", ast.AssocLeft) + ".." + p.operand(args[1], "..", ast.AssocRight)
		}
	case "..//":
		if len(args) == 3 {
			return p.operand(args[0], "..", ast.AssocLeft) + ".." +
				p.operand(args[1], "..", ast.AssocRight) + "//" +
				p.operand(args[2], "//", ast.AssocRight)
		}
	case "when":
		if len(args) == 2 {
			right := args[1]
			if l, ok := right.(*ast.List); ok && len(l.Elems) > 0 && isKeyword(l.Elems) {
				return p.operand(args[0], "when", ast.AssocLeft) + " when " + p.keyword(l.Elems)
			}
			return p.operand(args[0], "when", ast.AssocLeft) + " when " + p.operand(right, "when", ast.AssocRight)
		}
	case "&":
		if s, ok := p.capture(args); ok {
			return s
		}
	case "not":
		if len(args) == 1 && ast.Is(args[0], "in", 2) {
			in := args[0].(*ast.Form)
			inArgs, _ := in.CallArgs()
			return p.str(inArgs[0]) + " not in " + p.str(inArgs[1])
		}
	case ".":
		if len(args) == 2 {
			return p.dot(f)
		}
	}

	if len(args) == 2 && ast.IsOperator(head, 2) {
		return p.operand(args[0], head, ast.AssocLeft) + " " + string(head) + " " + p.operand(args[1], head, ast.AssocRight)
	}
	if len(args) == 1 && ast.IsOperator(head, 1) {
		return p.unary(head, args[0])
	}
	if _, ok := ast.SigilLetter(head); ok {
		if s, ok := p.sigil(f, head, args); ok {
			return s
		}
	}
	return p.call(f, args)
}

// operand renders an operand of the binary operator parent on the given
// side, parenthesizing it when it is an operator expression that would
// otherwise regroup.
func (p *printer) operand(n ast.Node, parent ast.Atom, side ast.Assoc) string {
	info, ok := opForm(n)
	if !ok {
		return p.str(n)
	}
	pinfo, _ := ast.BinaryOp(parent)
	switch {
	case pinfo.Prec < info.Prec:
		return p.str(n)
	case pinfo.Prec > info.Prec:
		return "(" + p.str(n) + ")"
	case info.Assoc != ast.AssocNone && pinfo.Assoc == side:
		return p.str(n)
	}
	return "(" + p.str(n) + ")"
}

// stepOp is how tightly first..last//step binds: like //.
var stepOp = ast.OpInfo{Assoc: ast.AssocRight, Prec: 190}

// opForm returns the precedence of n when it renders as an operator
// expression: a binary or unary operator call, a stepped range or
// x not in y. Capture placeholders like &1 are atomic.
func opForm(n ast.Node) (ast.OpInfo, bool) {
	f, ok := n.(*ast.Form)
	if !ok {
		return ast.OpInfo{}, false
	}
	head, ok := f.HeadAtom()
	if !ok {
		return ast.OpInfo{}, false
	}
	args, ok := f.CallArgs()
	if !ok {
		return ast.OpInfo{}, false
	}
	switch len(args) {
	case 1:
		if head == "not" && ast.Is(args[0], "in", 2) {
			return ast.BinaryOp("not in")
		}
		if _, ok := args[0].(ast.Int); ok && head == "&" {
			return ast.OpInfo{}, false
		}
		return ast.UnaryOp(head)
	case 2:
		return ast.BinaryOp(head)
	case 3:
		if head == "..//" {
			return stepOp, true
		}
	}
	return ast.OpInfo{}, false
}

// binaryForm returns the operator when n is a two-argument operator call.
func binaryForm(n ast.Node) (ast.Atom, bool) {
	f, ok := n.(*ast.Form)
	if !ok {
		return "", false
	}
	head, ok := f.HeadAtom()
	if !ok || f.Arity() != 2 || !ast.IsOperator(head, 2) {
		return "", false
	}
	return head, true
}

// fusing are the characters that would merge with a preceding symbolic
// unary operator into another token, as in --1.
const fusing = "-+!^~&@"

func (p *printer) unary(op ast.Atom, arg ast.Node) string {
	if _, ok := binaryForm(arg); ok {
		return string(op) + "(" + p.str(arg) + ")"
	}
	if ast.Is(arg, "..//", 3) {
		return string(op) + "(" + p.str(arg) + ")"
	}
	if op == "not" {
		return "not " + p.str(arg)
	}
	if f, ok := arg.(*ast.Form); ok {
		if head, ok := f.HeadAtom(); ok && f.Arity() == 1 && ast.IsOperator(head, 1) {
			return string(op) + "(" + p.str(arg) + ")"
		}
	}
	s := p.str(arg)
	if s != "" && strings.IndexByte(fusing, s[0]) >= 0 {
		return string(op) + "(" + s + ")"
	}
	return string(op) + s
}

func (p *printer) aliases(segs []ast.Node) string {
	parts := make([]string, len(segs))
	for i, s := range segs {
		if a, ok := s.(ast.Atom); ok {
			parts[i] = string(a)
		} else {
			parts[i] = p.str(s)
		}
	}
	return strings.Join(parts, ".")
}

func (p *printer) join(nodes []ast.Node, sep string) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = p.str(n)
	}
	return strings.Join(parts, sep)
}

// indent re-indents every continuation line of a rendered block.
func indent(block string) string {
	return strings.ReplaceAll(block, "\n", "\n  ")
}
