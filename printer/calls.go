package printer

import (
	"strings"

	"github.com/rubiojr/quill/ast"
)

// kwBlockKeys are the keys of do/end style blocks in render order.
var kwBlockKeys = []ast.Atom{"do", "rescue", "catch", "else", "after"}

// call renders a local, remote or anonymous call. A trailing keyword list
// made of block keys renders as do/end blocks.
func (p *printer) call(f *ast.Form, args []ast.Node) string {
	if isAccessGet(f) && len(args) == 2 {
		return p.operand(args[0], ".", ast.AssocLeft) + "[" + p.str(args[1]) + "]"
	}

	target := p.callee(f.Head)
	if len(args) == 0 && f.Meta.Bool(ast.MetaNoParens) {
		if _, ok := f.Head.(*ast.Form); ok {
			return target
		}
	}
	if len(args) > 0 {
		if kw, ok := args[len(args)-1].(*ast.List); ok && isKwBlocks(kw.Elems) {
			return target + "(" + p.args(args[:len(args)-1]) + ")" + p.kwBlocks(kw.Elems)
		}
	}
	return target + "(" + p.args(args) + ")"
}

// callee renders the head of a call.
func (p *printer) callee(head ast.Node) string {
	switch h := head.(type) {
	case ast.Atom:
		if ast.ClassifyAtom(h).Quoted() {
			return "unquote(" + ast.InspectAtom(ast.AtomLiteral, h) + ")"
		}
		return string(h)
	case *ast.Form:
		if dhead, ok := h.HeadAtom(); ok && dhead == "." {
			dargs, _ := h.CallArgs()
			switch len(dargs) {
			case 1:
				return p.str(dargs[0]) + "."
			case 2:
				return p.dot(h)
			}
		}
	}
	return p.str(head)
}

// dot renders receiver.name.
func (p *printer) dot(f *ast.Form) string {
	args, _ := f.CallArgs()
	left, right := args[0], args[1]
	name, ok := right.(ast.Atom)
	if !ok {
		return p.receiver(left) + "." + p.str(right)
	}
	return p.receiver(left) + "." + ast.InspectAtom(ast.AtomRemoteCall, name)
}

func (p *printer) receiver(n ast.Node) string {
	if a, ok := n.(ast.Atom); ok {
		return ast.InspectAtom(ast.AtomLiteral, a)
	}
	return p.operand(n, ".", ast.AssocLeft)
}

// args renders call arguments; a trailing keyword list loses its brackets.
func (p *printer) args(args []ast.Node) string {
	if len(args) == 0 {
		return ""
	}
	last, ok := args[len(args)-1].(*ast.List)
	if !ok || len(last.Elems) == 0 || !isKeyword(last.Elems) {
		return p.join(args, ", ")
	}
	prefix := ""
	if len(args) > 1 {
		prefix = p.join(args[:len(args)-1], ", ") + ", "
	}
	return prefix + p.keyword(last.Elems)
}

func (p *printer) keyword(pairs []ast.Node) string {
	parts := make([]string, len(pairs))
	for i, n := range pairs {
		kv := n.(*ast.Pair)
		parts[i] = ast.InspectAtom(ast.AtomKey, kv.Left.(ast.Atom)) + " " + p.str(kv.Right)
	}
	return strings.Join(parts, ", ")
}

// isKeyword reports whether elems form a keyword list: pairs with atom keys.
func isKeyword(elems []ast.Node) bool {
	if len(elems) == 0 {
		return false
	}
	for _, e := range elems {
		kv, ok := e.(*ast.Pair)
		if !ok {
			return false
		}
		if _, ok := kv.Left.(ast.Atom); !ok {
			return false
		}
	}
	return true
}

func isKwBlocks(elems []ast.Node) bool {
	if !isKeyword(elems) || elems[0].(*ast.Pair).Left != ast.Atom("do") {
		return false
	}
	for _, e := range elems {
		key := e.(*ast.Pair).Left.(ast.Atom)
		if !isBlockKey(key) {
			return false
		}
	}
	return true
}

func isBlockKey(a ast.Atom) bool {
	for _, k := range kwBlockKeys {
		if k == a {
			return true
		}
	}
	return false
}

func (p *printer) kwBlocks(elems []ast.Node) string {
	var sb strings.Builder
	sb.WriteString(" ")
	for _, key := range kwBlockKeys {
		for _, e := range elems {
			kv := e.(*ast.Pair)
			if kv.Left != key {
				continue
			}
			sb.WriteString(string(key))
			sb.WriteString("\n  ")
			sb.WriteString(indent(p.block(kv.Right)))
			sb.WriteString("\n")
			break
		}
	}
	sb.WriteString("end")
	return sb.String()
}

// block renders the body of a block: one expression per line, or a list
// of -> clauses.
func (p *printer) block(n ast.Node) string {
	if l, ok := n.(*ast.List); ok && isArrows(l.Elems) {
		parts := make([]string, len(l.Elems))
		for i, c := range l.Elems {
			left, right := arrowParts(c)
			parts[i] = p.arrowHead(left, false) + "->\n  " + indent(p.block(right))
		}
		return strings.Join(parts, "\n")
	}
	if f, ok := n.(*ast.Form); ok && ast.Is(f, "__block__", -1) {
		args, _ := f.CallArgs()
		return p.join(args, "\n")
	}
	return p.str(n)
}

func isArrows(elems []ast.Node) bool {
	return len(elems) > 0 && ast.Is(elems[0], "->", 2)
}

func arrowParts(n ast.Node) (left []ast.Node, right ast.Node) {
	f := n.(*ast.Form)
	args, _ := f.CallArgs()
	if l, ok := args[0].(*ast.List); ok {
		left = l.Elems
	} else {
		left = []ast.Node{args[0]}
	}
	return left, args[1]
}

// arrows renders -> clauses on one line, separated by semicolons.
func (p *printer) arrows(clauses []ast.Node, paren bool) string {
	parts := make([]string, len(clauses))
	for i, c := range clauses {
		left, right := arrowParts(c)
		parts[i] = p.arrowHead(left, paren) + "-> " + p.str(right)
	}
	return strings.Join(parts, "; ")
}

func (p *printer) arrowHead(left []ast.Node, paren bool) string {
	if len(left) == 0 {
		if paren {
			return "() "
		}
		return ""
	}
	return p.join(left, ", ") + " "
}

// fn renders anonymous functions. A single clause whose body is not a
// multi-expression block fits on one line.
func (p *printer) fn(clauses []ast.Node) (string, bool) {
	if !isArrows(clauses) {
		return "", false
	}
	for _, c := range clauses {
		if !ast.Is(c, "->", 2) {
			return "", false
		}
	}
	if len(clauses) == 1 {
		_, body := arrowParts(clauses[0])
		if !ast.Is(body, "__block__", -1) {
			return "fn " + p.arrows(clauses, false) + " end", true
		}
		return "fn " + p.block(ast.NewList(clauses...)) + "\nend", true
	}
	return "fn\n  " + indent(p.block(ast.NewList(clauses...))) + "\nend", true
}

// capture renders &name/arity, &Mod.name/arity, &(expr) and &1.
func (p *printer) capture(args []ast.Node) (string, bool) {
	if len(args) != 1 {
		return "", false
	}
	arg := args[0]
	if _, ok := arg.(ast.Int); ok {
		return "", false
	}
	if ast.Is(arg, "/", 2) {
		slash := arg.(*ast.Form)
		sargs, _ := slash.CallArgs()
		if arity, ok := sargs[1].(ast.Int); ok {
			if fn, ok := sargs[0].(*ast.Form); ok {
				if name, ok := fn.HeadAtom(); ok && fn.IsVar() {
					return "&" + string(name) + "/" + literal(arity), true
				}
				if mod, name, cargs, ok := ast.IsRemote(fn); ok && len(cargs) == 0 {
					return "&" + p.receiver(mod) + "." + ast.InspectAtom(ast.AtomRemoteCall, name) + "/" + literal(arity), true
				}
			}
		}
	}
	return "&(" + p.str(arg) + ")", true
}

// isAccessGet matches Access.get(base, key), the form of base[key].
func isAccessGet(f *ast.Form) bool {
	receiver, name, _, ok := ast.IsRemote(f)
	if !ok || name != "get" {
		return false
	}
	switch r := receiver.(type) {
	case ast.Atom:
		return r == ast.AliasPrefix+"Access"
	case *ast.Form:
		segs, ok := r.CallArgs()
		return ok && r.Head == ast.Atom("__aliases__") && len(segs) == 1 && segs[0] == ast.Atom("Access")
	}
	return false
}

// mapBody renders the inside of %{...}, including the update syntax.
func (p *printer) mapBody(args []ast.Node) string {
	if len(args) == 1 && ast.Is(args[0], "|", 2) {
		upd := args[0].(*ast.Form)
		uargs, _ := upd.CallArgs()
		if l, ok := uargs[1].(*ast.List); ok {
			return p.str(uargs[0]) + " | " + p.mapBody(l.Elems)
		}
	}
	if isKeyword(args) {
		return p.keyword(args)
	}
	parts := make([]string, len(args))
	for i, a := range args {
		if kv, ok := a.(*ast.Pair); ok {
			parts[i] = p.str(kv.Left) + " => " + p.str(kv.Right)
		} else {
			parts[i] = p.str(a)
		}
	}
	return strings.Join(parts, ", ")
}

func (p *printer) structLit(args []ast.Node) (string, bool) {
	if len(args) != 2 || !ast.Is(args[1], "%{}", -1) {
		return "", false
	}
	fields, _ := args[1].(*ast.Form).CallArgs()
	return "%" + p.str(args[0]) + "{" + p.mapBody(fields) + "}", true
}
