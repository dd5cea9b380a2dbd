package ast

// Traverse walks n depth-first, threading acc through every visit. pre is
// applied to a node on entry, before its children are walked; post is
// applied on exit, after every descendant has been rewritten. Both may
// replace the node they receive.
//
// Descent: a pair visits left then right; a form visits its head when the
// head is itself a form, then each call argument in order; variables have
// no children; a list visits each element. Argument lists of calls are not
// visited as nodes of their own.
func Traverse[A any](n Node, acc A, pre, post func(Node, A) (Node, A)) (Node, A) {
	n, acc = pre(n, acc)
	n, acc = descend(n, acc, func(child Node, acc A) (Node, A) {
		return Traverse(child, acc, pre, post)
	})
	return post(n, acc)
}

// descend applies visit to every direct child of n and rebuilds n when
// any child changed.
func descend[A any](n Node, acc A, visit func(Node, A) (Node, A)) (Node, A) {
	step := func(child Node) Node {
		var out Node
		out, acc = visit(child, acc)
		return out
	}
	switch v := n.(type) {
	case *Pair:
		left := step(v.Left)
		right := step(v.Right)
		if left != v.Left || right != v.Right {
			return &Pair{Left: left, Right: right}, acc
		}
	case *Form:
		head := v.Head
		if _, isAtom := head.(Atom); !isAtom {
			head = step(head)
		}
		args := v.Args
		if l, isList := args.(*List); isList {
			if elems, changed := mapSlice(l.Elems, step); changed {
				args = &List{Elems: elems}
			}
		}
		if head != v.Head || args != v.Args {
			return &Form{Head: head, Meta: v.Meta, Args: args}, acc
		}
	case *List:
		if elems, changed := mapSlice(v.Elems, step); changed {
			return &List{Elems: elems}, acc
		}
	}
	return n, acc
}

func identity[A any](n Node, acc A) (Node, A) { return n, acc }

// PrewalkAcc is Traverse with only a pre function.
func PrewalkAcc[A any](n Node, acc A, fn func(Node, A) (Node, A)) (Node, A) {
	return Traverse(n, acc, fn, identity[A])
}

// PostwalkAcc is Traverse with only a post function.
func PostwalkAcc[A any](n Node, acc A, fn func(Node, A) (Node, A)) (Node, A) {
	return Traverse(n, acc, identity[A], fn)
}

// Prewalk rewrites n top-down.
func Prewalk(n Node, fn func(Node) Node) Node {
	out, _ := PrewalkAcc(n, struct{}{}, func(n Node, acc struct{}) (Node, struct{}) {
		return fn(n), acc
	})
	return out
}

// Postwalk rewrites n bottom-up.
func Postwalk(n Node, fn func(Node) Node) Node {
	out, _ := PostwalkAcc(n, struct{}{}, func(n Node, acc struct{}) (Node, struct{}) {
		return fn(n), acc
	})
	return out
}

// Path returns the first node matching fn in pre-order together with its
// ancestors, nearest first and the root last. It returns nil when nothing
// matches.
func Path(n Node, fn func(Node) bool) []Node {
	return path(n, fn, nil)
}

func path(n Node, fn func(Node) bool, parents []Node) []Node {
	if fn(n) {
		out := make([]Node, 0, len(parents)+1)
		out = append(out, n)
		for i := len(parents) - 1; i >= 0; i-- {
			out = append(out, parents[i])
		}
		return out
	}
	parents = append(parents, n)
	for _, child := range Children(n) {
		if found := path(child, fn, parents); found != nil {
			return found
		}
	}
	return nil
}

// Children returns the direct children of n in traversal order.
func Children(n Node) []Node {
	switch v := n.(type) {
	case *Pair:
		return []Node{v.Left, v.Right}
	case *Form:
		args, _ := v.CallArgs()
		if _, isAtom := v.Head.(Atom); isAtom {
			return args
		}
		out := make([]Node, 0, len(args)+1)
		out = append(out, v.Head)
		return append(out, args...)
	case *List:
		return v.Elems
	}
	return nil
}
