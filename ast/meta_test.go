package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetaPutKeepsOrder(t *testing.T) {
	m := Meta{{Key: MetaLine, Value: 1}, {Key: MetaColumn, Value: 4}}
	out := m.Put(MetaLine, 9).Put(MetaCounter, int64(3))

	assert.Equal(t, Meta{{Key: MetaLine, Value: 9}, {Key: MetaColumn, Value: 4}, {Key: MetaCounter, Value: int64(3)}}, out)
	assert.Equal(t, Meta{{Key: MetaLine, Value: 1}, {Key: MetaColumn, Value: 4}}, m)
}

func TestMetaAccessors(t *testing.T) {
	m := Meta{
		{Key: MetaLine, Value: int64(3)},
		{Key: MetaDelimiter, Value: `"`},
		{Key: MetaGenerated, Value: True},
		{Key: MetaCounter, Value: Int(8)},
		{Key: MetaDo, Value: Meta{{Key: MetaLine, Value: 4}}},
	}

	line, ok := m.Int(MetaLine)
	assert.True(t, ok)
	assert.Equal(t, 3, line)
	counter, _ := m.Int(MetaCounter)
	assert.Equal(t, 8, counter)
	_, ok = m.Int(MetaDelimiter)
	assert.False(t, ok)

	delim, ok := m.Str(MetaDelimiter)
	assert.True(t, ok)
	assert.Equal(t, `"`, delim)

	assert.True(t, m.Bool(MetaGenerated))
	assert.False(t, m.Bool(MetaNoParens))

	do := m.Keyword(MetaDo)
	doLine, _ := do.Int(MetaLine)
	assert.Equal(t, 4, doLine)
	assert.Nil(t, m.Keyword(MetaEnd))
}

func TestMetaDeleteTake(t *testing.T) {
	m := Meta{{Key: "a", Value: 1}, {Key: "b", Value: 2}, {Key: "c", Value: 3}}
	assert.Equal(t, Meta{{Key: "a", Value: 1}, {Key: "c", Value: 3}}, m.Delete("b"))
	assert.Equal(t, Meta{{Key: "a", Value: 1}, {Key: "c", Value: 3}}, m.Take("c", "a"))
	assert.Nil(t, m.Take("z"))
	assert.Len(t, m, 3)
}

func TestMetaClone(t *testing.T) {
	assert.Nil(t, Meta(nil).Clone())
	m := Meta{{Key: "a", Value: 1}}
	c := m.Clone()
	c[0].Value = 2
	assert.Equal(t, 1, m[0].Value)
}

func TestMetaString(t *testing.T) {
	m := Meta{{Key: MetaLine, Value: 1}, {Key: MetaGenerated, Value: true}}
	assert.Equal(t, "[line: 1, generated: true]", m.String())
	assert.Equal(t, "[]", Meta(nil).String())
}
