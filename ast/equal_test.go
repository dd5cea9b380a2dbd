package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEqual(t *testing.T) {
	a := &Form{Head: Atom("f"), Meta: Meta{{Key: MetaLine, Value: 1}}, Args: NewList(Int(1))}
	b := &Form{Head: Atom("f"), Meta: Meta{{Key: MetaLine, Value: 2}}, Args: NewList(Int(1))}

	assert.True(t, Equal(a, a))
	assert.False(t, Equal(a, b))
	assert.True(t, EqualIgnoringMeta(a, b))
	assert.False(t, EqualIgnoringMeta(a, Call("f", Int(2))))

	assert.True(t, Equal(Call("f"), &Form{Head: Atom("f"), Meta: Meta{}, Args: NewList()}))
	assert.False(t, Equal(Var("x"), Call("x")))
	assert.False(t, Equal(Int(1), Float(1)))
	assert.True(t, Equal(Float(1.5), Float(1.5)))
	assert.True(t, Equal(nil, nil))
	assert.False(t, Equal(nil, Nil))
	assert.True(t, Equal(&Opaque{Kind: "pid", Ref: "0.1.0"}, &Opaque{Kind: "pid", Ref: "0.1.0"}))
	assert.False(t, Equal(NewList(Int(1)), NewList(Int(1), Int(2))))
}
