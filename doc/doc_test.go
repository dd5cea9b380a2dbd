package doc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rubiojr/quill/ast"
)

func TestSpecialFormsDocumented(t *testing.T) {
	forms := SpecialForms()
	require.NotEmpty(t, forms)
	for _, f := range forms {
		assert.NotEmpty(t, f.Doc, "special form %s has no doc", f.Name)
		assert.NotEmpty(t, f.Arities, f.Name)
	}
	for i := 1; i < len(forms); i++ {
		assert.Less(t, forms[i-1].Name, forms[i].Name)
	}
}

func TestOperatorsOrdered(t *testing.T) {
	ops := Operators()
	require.NotEmpty(t, ops)
	assert.Equal(t, OperatorDoc{Name: "@", Arity: 1, Prec: 320}, ops[0])
	for i := 1; i < len(ops); i++ {
		assert.GreaterOrEqual(t, ops[i-1].Prec, ops[i].Prec)
	}
}

func TestLookupSpecialForm(t *testing.T) {
	doc, sig, found := Lookup("alias")
	require.True(t, found)
	assert.Equal(t, "alias/1, alias/2", sig)
	assert.Contains(t, doc, "alias")

	_, sig, found = Lookup("fn")
	require.True(t, found)
	assert.Equal(t, "fn/*", sig)

	// special forms win over operators of the same name
	doc, sig, _ = Lookup("=")
	assert.Equal(t, "=/2", sig)
	assert.Equal(t, "Match operator.", doc)
}

func TestLookupOperator(t *testing.T) {
	doc, sig, found := Lookup("-")
	require.True(t, found)
	assert.Equal(t, "-a, a - b", sig)
	assert.Equal(t, "unary operator, precedence 300\nbinary operator, precedence 210, left associative", doc)

	_, sig, _ = Lookup("not")
	assert.Equal(t, "not a", sig)

	_, sig, _ = Lookup("not in")
	assert.Equal(t, "a not in b", sig)

	_, _, found = Lookup("frobnicate")
	assert.False(t, found)
}

func TestFormatSymbol(t *testing.T) {
	assert.Equal(t, "case/2\n    Matches a value.\n    Twice.\n", FormatSymbol("Matches a value.\nTwice.", "case/2"))
	assert.Equal(t, "x/0\n", FormatSymbol("", "x/0"))
}

func TestFormatOperators(t *testing.T) {
	out := FormatOperators([]OperatorDoc{
		{Name: "+", Arity: 2, Assoc: ast.AssocLeft, Prec: 210},
		{Name: "!", Arity: 1, Prec: 300},
	})
	assert.Equal(t, "a + b        binary 210  left\n!a           unary  300\n", out)
}

func TestFormatForms(t *testing.T) {
	out := FormatForms([]FormDoc{{Name: "cond", Arities: []int{1}, Doc: "First truthy clause."}})
	assert.Equal(t, "cond/1\n    First truthy clause.\n", out)
}
