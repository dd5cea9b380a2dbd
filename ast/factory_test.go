package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactoryMeta(t *testing.T) {
	f := NewFactory(3)
	call := f.Call("foo", Int(1))
	assert.Equal(t, Meta{{Key: MetaLine, Value: 3}}, call.Meta)

	gen := &Factory{Line: 5, Generated: true}
	assert.Equal(t, Meta{{Key: MetaGenerated, Value: true}, {Key: MetaLine, Value: 5}}, gen.Var("x", "").Meta)

	var none *Factory
	assert.Empty(t, none.Call("f").Meta)
	assert.Empty(t, Call("f").Meta)
}

func TestFactoryVar(t *testing.T) {
	v := NewFactory(0).Var("x", "")
	assert.True(t, v.IsVar())
	assert.Equal(t, Nil, v.Args)
	assert.Equal(t, -1, v.Arity())

	hygienic := NewFactory(0).Var("x", "Elixir.Mod")
	assert.Equal(t, Atom("Elixir.Mod"), hygienic.Args)
}

func TestFactoryRemote(t *testing.T) {
	f := NewFactory(2)
	call := f.Remote(f.Alias("IO"), "puts", String("hi"))

	receiver, name, args, ok := IsRemote(call)
	require.True(t, ok)
	assert.True(t, Is(receiver, "__aliases__", 1))
	assert.Equal(t, Atom("puts"), name)
	assert.Equal(t, []Node{String("hi")}, args)

	field := f.RemoteNoParens(Var("map"), "key")
	assert.True(t, field.Meta.Bool(MetaNoParens))
	assert.Equal(t, 0, field.Arity())
}

func TestFactoryContainers(t *testing.T) {
	f := NewFactory(0)

	assert.Equal(t, &Pair{Left: Int(1), Right: Int(2)}, f.Tuple(Int(1), Int(2)))
	assert.True(t, Is(f.Tuple(Int(1), Int(2), Int(3)), "{}", 3))
	assert.True(t, Is(f.Tuple(), "{}", 0))

	m := f.Map(&Pair{Left: Atom("a"), Right: Int(1)})
	assert.True(t, Is(m, "%{}", 1))

	kw := f.Keyword(Atom("a"), Int(1), Atom("b"), Int(2), Atom("dangling"))
	assert.Equal(t, NewList(&Pair{Left: Atom("a"), Right: Int(1)}, &Pair{Left: Atom("b"), Right: Int(2)}), kw)

	assert.True(t, Is(f.Block(Int(1), Int(2)), "__block__", 2))

	arrow := f.Arrow([]Node{Var("x")}, Var("x"))
	fn := f.Fn(arrow)
	assert.True(t, Is(fn, "fn", 1))
	args, _ := arrow.CallArgs()
	assert.Equal(t, NewList(Var("x")), args[0])
}

func TestIsHelpers(t *testing.T) {
	call := Call("f", Int(1))
	assert.True(t, Is(call, "f", 1))
	assert.True(t, Is(call, "f", -1))
	assert.False(t, Is(call, "f", 2))
	assert.False(t, Is(Var("f"), "f", -1))
	assert.False(t, Is(Int(1), "f", -1))

	_, _, _, ok := IsRemote(call)
	assert.False(t, ok)

	head, ok := call.HeadAtom()
	assert.True(t, ok)
	assert.Equal(t, Atom("f"), head)
}

func TestInspect(t *testing.T) {
	n := &Form{
		Head: Atom("f"),
		Meta: Meta{{Key: MetaLine, Value: 1}},
		Args: NewList(Var("x"), &Pair{Left: Atom("ok"), Right: Float(1)}, String("s")),
	}
	assert.Equal(t, `{:f, [line: 1], [{:x, [], nil}, {:ok, 1.0}, "s"]}`, Inspect(n))
	assert.Equal(t, "<nil>", Inspect(nil))
	assert.Equal(t, "#pid<0.1.0>", Inspect(&Opaque{Kind: "pid", Ref: "0.1.0"}))
}
