package ast

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterpolation(t *testing.T) {
	seg := Interpolation(Var("name"))
	assert.True(t, Is(seg, "::", 2))

	arg, ok := InterpolatedArg(seg)
	require.True(t, ok)
	assert.True(t, Equal(Var("name"), arg))

	_, ok = InterpolatedArg(Call("::", Var("x"), Var("binary")))
	assert.False(t, ok)
	_, ok = InterpolatedArg(String("text"))
	assert.False(t, ok)

	// Kernel written as an alias chain is recognized too
	aliased := Call("::", Remote(Alias("Kernel"), "to_string", Var("y")), Var("binary"))
	arg, ok = InterpolatedArg(aliased)
	require.True(t, ok)
	assert.True(t, Equal(Var("y"), arg))
}

func TestInterpolatedString(t *testing.T) {
	s := InterpolatedString(String("hello "), Var("name"))
	args, _ := s.CallArgs()
	require.Len(t, args, 2)
	assert.Equal(t, String("hello "), args[0])
	_, ok := InterpolatedArg(args[1])
	assert.True(t, ok)
}

func TestSigilLetter(t *testing.T) {
	tests := map[Atom]string{
		"sigil_r":    "r",
		"sigil_HTML": "HTML",
		"sigil_H2":   "H2",
	}
	for atom, want := range tests {
		got, ok := SigilLetter(atom)
		assert.True(t, ok, atom)
		assert.Equal(t, want, got)
	}
	for _, atom := range []Atom{"sigil_", "sigil_rr", "sigil_Ab", "sigil_2", "foo"} {
		_, ok := SigilLetter(atom)
		assert.False(t, ok, atom)
	}
}

func TestSigil(t *testing.T) {
	f, err := Sigil("r", "/", "iu", String("a+"))
	require.NoError(t, err)
	assert.Equal(t, Atom("sigil_r"), f.Head)
	delim, _ := f.Meta.Str(MetaDelimiter)
	assert.Equal(t, "/", delim)
	args, _ := f.CallArgs()
	assert.True(t, Equal(Call("<<>>", String("a+")), args[0]))
	assert.Equal(t, NewList(Int('i'), Int('u')), args[1])

	f, err = Sigil("W", "", "")
	require.NoError(t, err)
	delim, _ = f.Meta.Str(MetaDelimiter)
	assert.Equal(t, `"`, delim)

	_, err = Sigil("ab", "(", "")
	var usage *UsageError
	require.True(t, errors.As(err, &usage))
	assert.Equal(t, "sigil", usage.Op)
}
