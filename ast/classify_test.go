package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyAtom(t *testing.T) {
	tests := []struct {
		atom  Atom
		class AtomClass
	}{
		{"foo", ClassIdentifier},
		{"foo?", ClassIdentifier},
		{"_", ClassIdentifier},
		{"é", ClassIdentifier},
		{"Foo", ClassAlias},
		{"Foo.Bar", ClassAlias},
		{"Elixir.Foo", ClassAlias},
		{"+", ClassUnquotedOperator},
		{"|>", ClassUnquotedOperator},
		{"and", ClassUnquotedOperator},
		{"@", ClassUnquotedOperator},
		{"::", ClassQuotedOperator},
		{"{}", ClassNotCallable},
		{"%{}", ClassNotCallable},
		{"->", ClassNotCallable},
		{"foo@bar", ClassNotCallable},
		{"", ClassOther},
		{"foo bar", ClassOther},
		{"1foo", ClassOther},
		{"Foo.bar", ClassOther},
		{"foo?bar", ClassOther},
		{"e\u0301", ClassOther},
		{"Über", ClassOther},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.class, ClassifyAtom(tt.atom), "%q", tt.atom)
	}
}

func TestAtomClassString(t *testing.T) {
	assert.Equal(t, "alias", ClassAlias.String())
	assert.Equal(t, "quoted_operator", ClassQuotedOperator.String())
	assert.Equal(t, "not_callable", ClassNotCallable.String())
	assert.Equal(t, "other", ClassOther.String())
	assert.True(t, ClassOther.Quoted())
	assert.False(t, ClassIdentifier.Quoted())
}

func TestInspectAtomLiteral(t *testing.T) {
	tests := map[Atom]string{
		"foo":               ":foo",
		"Foo":               ":Foo",
		"Elixir.Foo.Bar":    "Foo.Bar",
		"Elixir":            "Elixir",
		"Elixir.Elixir.Foo": "Elixir.Elixir.Foo",
		"true":              "true",
		"nil":               "nil",
		"+":                 ":+",
		"{}":                ":{}",
		"::":                `:"::"`,
		"foo bar":           `:"foo bar"`,
		`a"b`:               `:"a\"b"`,
	}
	for atom, want := range tests {
		assert.Equal(t, want, InspectAtom(AtomLiteral, atom), "%q", atom)
	}
}

func TestInspectAtomKey(t *testing.T) {
	assert.Equal(t, "foo:", InspectAtom(AtomKey, "foo"))
	assert.Equal(t, "Foo:", InspectAtom(AtomKey, "Foo"))
	assert.Equal(t, `"Elixir.Foo":`, InspectAtom(AtomKey, "Elixir.Foo"))
	assert.Equal(t, `"foo bar":`, InspectAtom(AtomKey, "foo bar"))
	assert.Equal(t, `"::":`, InspectAtom(AtomKey, "::"))
}

func TestInspectAtomRemoteCall(t *testing.T) {
	assert.Equal(t, "puts", InspectAtom(AtomRemoteCall, "puts"))
	assert.Equal(t, "+", InspectAtom(AtomRemoteCall, "+"))
	assert.Equal(t, `"Foo"`, InspectAtom(AtomRemoteCall, "Foo"))
	assert.Equal(t, `"with space"`, InspectAtom(AtomRemoteCall, "with space"))
}

func TestQuotedLiteral(t *testing.T) {
	assert.True(t, QuotedLiteral(NewList(Int(1), &Pair{Left: Atom("a"), Right: String("b")})))
	assert.True(t, QuotedLiteral(Call("{}", Int(1), Int(2), Int(3))))
	assert.True(t, QuotedLiteral(Call("%{}", &Pair{Left: Atom("a"), Right: Int(1)})))
	assert.False(t, QuotedLiteral(Call("f", Int(1))))
	assert.False(t, QuotedLiteral(Var("x")))
	assert.False(t, QuotedLiteral(NewList(Var("x"))))
}
