package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleTree builds f(a, {1, [2, 3]}) and returns it with its pre-order
// occurrences.
func sampleTree() (Node, []Node) {
	a := Var("a")
	inner := NewList(Int(2), Int(3))
	pair := &Pair{Left: Int(1), Right: inner}
	root := Call("f", a, pair)
	return root, []Node{root, a, pair, Int(1), inner, Int(2), Int(3)}
}

func collect(n Node, acc []Node) (Node, []Node) { return n, append(acc, n) }

func TestTraverseOrder(t *testing.T) {
	root, pre := sampleTree()

	_, got := PrewalkAcc(root, []Node(nil), collect)
	assert.Equal(t, pre, got)

	_, got = PostwalkAcc(root, []Node(nil), collect)
	want := []Node{pre[1], pre[3], pre[5], pre[6], pre[4], pre[2], pre[0]}
	assert.Equal(t, want, got)
}

func TestTraverseRemoteHead(t *testing.T) {
	root := Remote(Alias("IO"), "puts", String("hi"))
	dot := root.Head.(*Form)

	_, got := PrewalkAcc(Node(root), []Node(nil), collect)
	require.Len(t, got, 6)
	assert.Same(t, root, got[0])
	assert.Same(t, dot, got[1])
	assert.Equal(t, Atom("IO"), got[3])
	assert.Equal(t, Atom("puts"), got[4])
	assert.Equal(t, String("hi"), got[5])
}

func TestTraverseSkipsVariableContext(t *testing.T) {
	v := &Form{Head: Atom("x"), Args: Atom("Elixir.Mod")}
	_, got := PrewalkAcc(Node(v), []Node(nil), collect)
	assert.Equal(t, []Node{v}, got)
	assert.Empty(t, Children(v))
}

func TestTraverseBothFunctions(t *testing.T) {
	root, _ := sampleTree()
	var events []string
	Traverse(root, 0,
		func(n Node, depth int) (Node, int) {
			if _, ok := n.(Int); ok {
				events = append(events, "pre "+Inspect(n))
			}
			return n, depth + 1
		},
		func(n Node, depth int) (Node, int) {
			if _, ok := n.(Int); ok {
				events = append(events, "post "+Inspect(n))
			}
			return n, depth
		})
	assert.Equal(t, []string{"pre 1", "post 1", "pre 2", "post 2", "pre 3", "post 3"}, events)
}

func TestPrewalkIdentityKeepsTree(t *testing.T) {
	root, _ := sampleTree()
	out := Prewalk(root, func(n Node) Node { return n })
	assert.Same(t, root.(*Form), out.(*Form))
}

func TestPostwalkRewrite(t *testing.T) {
	root, _ := sampleTree()
	out := Postwalk(root, func(n Node) Node {
		if i, ok := n.(Int); ok {
			return i * 10
		}
		return n
	})
	want := Call("f", Var("a"), &Pair{Left: Int(10), Right: NewList(Int(20), Int(30))})
	assert.True(t, Equal(want, out))

	// the input is untouched
	assert.True(t, Equal(Call("f", Var("a"), &Pair{Left: Int(1), Right: NewList(Int(2), Int(3))}), root))
}

func TestPrewalkDescendsIntoReplacement(t *testing.T) {
	root := Call("f", Var("a"))
	visited := 0
	out := Prewalk(root, func(n Node) Node {
		if f, ok := n.(*Form); ok && f.IsVar() {
			return Call("g", Int(5))
		}
		if _, ok := n.(Int); ok {
			visited++
		}
		return n
	})
	assert.Equal(t, 1, visited)
	assert.True(t, Equal(Call("f", Call("g", Int(5))), out))
}

func TestPostwalkAccCounts(t *testing.T) {
	root, pre := sampleTree()
	_, count := PostwalkAcc(root, 0, func(n Node, acc int) (Node, int) { return n, acc + 1 })
	assert.Equal(t, len(pre), count)
}

func TestPath(t *testing.T) {
	root, pre := sampleTree()
	got := Path(root, func(n Node) bool { return n == Int(3) })
	assert.Equal(t, []Node{Int(3), pre[4], pre[2], root}, got)

	assert.Nil(t, Path(root, func(n Node) bool { return n == Int(42) }))
	assert.Equal(t, []Node{root}, Path(root, func(n Node) bool { return n == root }))
}

func TestWalkerMatchesTraverse(t *testing.T) {
	trees := []Node{
		Call("f", Var("a"), &Pair{Left: Int(1), Right: NewList(Int(2), Int(3))}),
		Remote(Alias("IO"), "puts", String("hi")),
		NewList(),
		Atom("ok"),
	}
	for _, root := range trees {
		_, pre := PrewalkAcc(root, []Node(nil), collect)
		_, post := PostwalkAcc(root, []Node(nil), collect)

		var gotPre, gotPost []Node
		for n := range Prewalker(root) {
			gotPre = append(gotPre, n)
		}
		for n := range Postwalker(root) {
			gotPost = append(gotPost, n)
		}
		assert.Equal(t, pre, gotPre, Inspect(root))
		assert.Equal(t, post, gotPost, Inspect(root))
	}
}

func TestWalkerResumes(t *testing.T) {
	root, pre := sampleTree()
	w := NewPrewalker(root)

	var first []Node
	for n := range w.All() {
		first = append(first, n)
		if len(first) == 2 {
			break
		}
	}
	assert.Equal(t, pre[:2], first)
	assert.False(t, w.Done())

	n, ok := w.Next()
	require.True(t, ok)
	assert.Same(t, pre[2].(*Pair), n.(*Pair))

	var rest []Node
	for n := range w.All() {
		rest = append(rest, n)
	}
	assert.Equal(t, pre[3:], rest)
	assert.True(t, w.Done())

	_, ok = w.Next()
	assert.False(t, ok)
}

func TestFind(t *testing.T) {
	root, _ := sampleTree()
	got, ok := Find(root, func(n Node) bool {
		_, isInt := n.(Int)
		return isInt
	})
	require.True(t, ok)
	assert.Equal(t, Int(1), got)

	_, ok = Find(root, func(n Node) bool { return n == String("x") })
	assert.False(t, ok)
}
