package ast

import "strconv"

// DecomposeCall splits a call into its receiver, name and arguments.
// receiver is nil for local calls. Variables decompose as zero-argument
// local calls. ok is false for anything that is not a call.
func DecomposeCall(n Node) (receiver Node, name Atom, args []Node, ok bool) {
	if r, name, args, ok := IsRemote(n); ok && tupleOrAtom(r) {
		return r, name, args, true
	}
	f, isForm := n.(*Form)
	if !isForm {
		return nil, "", nil, false
	}
	head, isAtom := f.HeadAtom()
	if !isAtom {
		return nil, "", nil, false
	}
	switch a := f.Args.(type) {
	case Atom:
		return nil, head, nil, true
	case *List:
		return nil, head, a.Elems, true
	}
	return nil, "", nil, false
}

func tupleOrAtom(n Node) bool {
	switch n.(type) {
	case Atom, *Form, *Pair:
		return true
	}
	return false
}

// UpdateMeta returns n with fn applied to its metadata. Only the top form
// is touched; other nodes are returned as they are.
func UpdateMeta(n Node, fn func(Meta) Meta) Node {
	f, ok := n.(*Form)
	if !ok {
		return n
	}
	return &Form{Head: f.Head, Meta: fn(f.Meta.Clone()), Args: f.Args}
}

// GenerateArguments returns n variables arg1..argN in the given context.
func GenerateArguments(n int, ctx Atom) []Node {
	out := make([]Node, n)
	for i := range out {
		out[i] = std.Var(Atom("arg"+strconv.Itoa(i+1)), ctx)
	}
	return out
}
