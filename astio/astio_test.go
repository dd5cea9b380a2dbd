package astio

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rubiojr/quill/ast"
	"github.com/rubiojr/quill/printer"
)

func TestDecodeOperators(t *testing.T) {
	src := `
call: "+"
meta: {line: 1}
args:
  - 5
  - call: "*"
    args: [3, 7]
`
	n, err := Decode([]byte(src))
	require.NoError(t, err)
	assert.Equal(t, "5 + 3 * 7", printer.ToString(n))

	line, ok := n.(*ast.Form).Meta.Int(ast.MetaLine)
	require.True(t, ok)
	assert.Equal(t, 1, line)
}

func TestDecodeLeaves(t *testing.T) {
	src := `
call: foo
args:
  - !atom ok
  - true
  - null
  - "text"
  - "42"
  - 1.5
  - {var: x}
  - {var: y, ctx: !atom Elixir.Mod}
  - !pair [!atom a, 1]
  - [1, 2]
`
	n, err := Decode([]byte(src))
	require.NoError(t, err)

	want := ast.Call("foo",
		ast.Atom("ok"),
		ast.True,
		ast.Nil,
		ast.String("text"),
		ast.String("42"),
		ast.Float(1.5),
		ast.Var("x"),
		&ast.Form{Head: ast.Atom("y"), Args: ast.Atom("Elixir.Mod")},
		&ast.Pair{Left: ast.Atom("a"), Right: ast.Int(1)},
		ast.NewList(ast.Int(1), ast.Int(2)),
	)
	assert.True(t, ast.EqualIgnoringMeta(want, n), ast.Inspect(n))
}

func TestDecodeRemoteCall(t *testing.T) {
	src := `
call:
  call: "."
  args:
    - call: __aliases__
      args: [!atom IO]
    - !atom puts
args: ["hi"]
`
	n, err := Decode([]byte(src))
	require.NoError(t, err)
	assert.Equal(t, `IO.puts("hi")`, printer.ToString(n))
}

func TestRoundTrip(t *testing.T) {
	trees := []ast.Node{
		ast.Int(-3),
		ast.Float(1),
		ast.Float(2.5e-9),
		ast.String("42"),
		ast.String("multi\nline"),
		ast.Atom("hello world"),
		ast.True,
		ast.Nil,
		ast.NewList(),
		&ast.Pair{Left: ast.Atom("ok"), Right: ast.NewList(ast.Int(1))},
		ast.Remote(ast.Alias("IO"), "puts", ast.String("hi")),
		&ast.Form{
			Head: ast.Atom("foo"),
			Meta: ast.Meta{
				{Key: ast.MetaLine, Value: 3},
				{Key: ast.MetaGenerated, Value: true},
				{Key: ast.MetaDelimiter, Value: "/"},
				{Key: ast.MetaEnd, Value: ast.Meta{{Key: ast.MetaLine, Value: 5}}},
			},
			Args: ast.NewList(&ast.Form{Head: ast.Atom("x"), Args: ast.Atom("Elixir.Mod")}),
		},
	}
	for _, tree := range trees {
		data, err := Encode(tree)
		require.NoError(t, err, ast.Inspect(tree))
		got, err := Decode(data)
		require.NoError(t, err, string(data))
		assert.True(t, ast.Equal(tree, got), "%s\n%s", ast.Inspect(tree), data)
	}
}

func TestOpaqueRoundTrip(t *testing.T) {
	for _, ref := range []any{"#PID<0.110.0>", 7} {
		tree := ast.NewList(&ast.Opaque{Kind: "pid", Ref: ref})
		data, err := Encode(tree)
		require.NoError(t, err)
		assert.Contains(t, string(data), "ref:")
		got, err := Decode(data)
		require.NoError(t, err, string(data))
		assert.True(t, ast.Equal(tree, got), "%s\n%s", ast.Inspect(tree), data)
	}

	fun, err := ast.EscapeValue(func() {})
	require.NoError(t, err)
	data, err := Encode(fun)
	require.NoError(t, err)
	got, err := Decode(data)
	require.NoError(t, err)
	assert.True(t, ast.Equal(fun, got), "%s\n%s", ast.Inspect(fun), data)
}

func TestEncodeMetaOrder(t *testing.T) {
	f := &ast.Form{
		Head: ast.Atom("f"),
		Meta: ast.Meta{{Key: "z", Value: 1}, {Key: "a", Value: 2}},
		Args: ast.NewList(),
	}
	data, err := Encode(f)
	require.NoError(t, err)
	got, err := Decode(data)
	require.NoError(t, err)
	meta := got.(*ast.Form).Meta
	require.Len(t, meta, 2)
	assert.Equal(t, "z", meta[0].Key)
	assert.Equal(t, "a", meta[1].Key)
}

func TestDecodeErrors(t *testing.T) {
	cases := map[string]string{
		"short pair":     `!pair [1]`,
		"no call":        `{args: [1]}`,
		"bad ctx":        `{var: x, ctx: 1}`,
		"bad args":       `{call: f, args: 1}`,
		"unknown tag":    `!thing x`,
		"meta not a map": `{call: f, meta: [1]}`,
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode([]byte(src))
			require.Error(t, err)
			var derr *Error
			assert.True(t, errors.As(err, &derr), err.Error())
		})
	}

	_, err := Decode([]byte(""))
	assert.Error(t, err)
	_, err = Decode([]byte("[1, 2"))
	assert.Error(t, err)
}

func TestEncodeRejectsHostValues(t *testing.T) {
	_, err := Encode(ast.NewList(&ast.Value{V: struct{}{}}))
	assert.Error(t, err)
}

func TestDecodeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{call: f, args: [1]}\n"), 0o644))

	n, err := DecodeFile(path)
	require.NoError(t, err)
	assert.Equal(t, "f(1)", printer.ToString(n))

	_, err = DecodeFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
