package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapeValueScalars(t *testing.T) {
	tests := []struct {
		in   any
		want Node
	}{
		{nil, Nil},
		{true, True},
		{false, False},
		{42, Int(42)},
		{int8(-3), Int(-3)},
		{uint16(7), Int(7)},
		{2.5, Float(2.5)},
		{"hi", String("hi")},
		{Atom("ok"), Atom("ok")},
	}
	for _, tt := range tests {
		got, err := EscapeValue(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestEscapeValueContainers(t *testing.T) {
	got, err := EscapeValue(Tuple{Atom("ok"), 1})
	require.NoError(t, err)
	assert.Equal(t, &Pair{Left: Atom("ok"), Right: Int(1)}, got)

	got, err = EscapeValue(Tuple{1, 2, 3})
	require.NoError(t, err)
	assert.True(t, Equal(Call("{}", Int(1), Int(2), Int(3)), got))

	got, err = EscapeValue([]string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, NewList(String("a"), String("b")), got)

	got, err = EscapeValue(map[string]int{"b": 2, "a": 1})
	require.NoError(t, err)
	want := Call("%{}",
		&Pair{Left: String("a"), Right: Int(1)},
		&Pair{Left: String("b"), Right: Int(2)})
	assert.True(t, Equal(want, got))
}

func TestEscapeValueReferences(t *testing.T) {
	got, err := EscapeValue(func() {})
	require.NoError(t, err)
	opaque, ok := got.(*Opaque)
	require.True(t, ok)
	assert.Equal(t, "fun", opaque.Kind)
}

func TestEscapeValueRejectsHostValues(t *testing.T) {
	type point struct{ X, Y int }
	got, err := EscapeValue([]any{1, point{1, 2}})
	assert.EqualError(t, err, "cannot escape #value<{1 2}>")
	list := got.(*List)
	assert.Equal(t, &Value{V: point{1, 2}}, list.Elems[1])

	_, err = EscapeValue(uint64(1))
	assert.Error(t, err)
}
