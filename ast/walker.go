package ast

import "iter"

// Walker lazily produces the node occurrences of a tree, one per call to
// Next. Nothing beyond the returned node is computed ahead of time, so a
// consumer that stops pulling cancels the walk. A Walker cannot be rewound;
// build a new one from the root to start over.
type Walker struct {
	post  bool
	stack []pending
}

// pending is a worklist entry. revisit marks the sentinel pushed by the
// post-order walker: when popped, its node is yielded instead of expanded.
type pending struct {
	node    Node
	revisit bool
}

// NewPrewalker returns a Walker yielding each node before its children.
func NewPrewalker(root Node) *Walker {
	return &Walker{stack: []pending{{node: root}}}
}

// NewPostwalker returns a Walker yielding each node after all of its
// children.
func NewPostwalker(root Node) *Walker {
	return &Walker{post: true, stack: []pending{{node: root}}}
}

// Next returns the next node occurrence. ok is false once the walk is
// exhausted.
func (w *Walker) Next() (n Node, ok bool) {
	for len(w.stack) > 0 {
		top := w.stack[len(w.stack)-1]
		w.stack = w.stack[:len(w.stack)-1]
		if top.revisit {
			return top.node, true
		}
		if w.post {
			w.stack = append(w.stack, pending{node: top.node, revisit: true})
			w.pushChildren(top.node)
			continue
		}
		w.pushChildren(top.node)
		return top.node, true
	}
	return nil, false
}

// pushChildren pushes the children of n in reverse so they pop in order.
func (w *Walker) pushChildren(n Node) {
	children := Children(n)
	for i := len(children) - 1; i >= 0; i-- {
		w.stack = append(w.stack, pending{node: children[i]})
	}
}

// Done reports whether the walk is exhausted.
func (w *Walker) Done() bool { return len(w.stack) == 0 }

// All returns an iterator over the remaining occurrences. Breaking out of
// the range loop leaves the walker positioned after the last yielded node;
// a later All or Next resumes from there.
func (w *Walker) All() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for {
			n, ok := w.Next()
			if !ok || !yield(n) {
				return
			}
		}
	}
}

// Prewalker returns a fresh pre-order iterator over root.
func Prewalker(root Node) iter.Seq[Node] { return NewPrewalker(root).All() }

// Postwalker returns a fresh post-order iterator over root.
func Postwalker(root Node) iter.Seq[Node] { return NewPostwalker(root).All() }

// Find returns the first node in pre-order for which fn reports true.
func Find(root Node, fn func(Node) bool) (Node, bool) {
	for n := range Prewalker(root) {
		if fn(n) {
			return n, true
		}
	}
	return nil, false
}
