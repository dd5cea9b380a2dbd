package expand

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rubiojr/quill/ast"
	"github.com/rubiojr/quill/printer"
)

func TestDbgPipeline(t *testing.T) {
	env := &StaticEnv{
		Mod:      "Elixir.App",
		FilePath: "lib/a.ex",
		LineNo:   3,
		Fun:      &Function{Name: "run", Arity: 0},
	}
	code := ast.Call("|>", ast.Var("x"), ast.Call("f", ast.Int(5)))

	out, err := Dbg(code, env)
	require.NoError(t, err)
	want := "(\n" +
		"  dbg_value = x\n" +
		"  IO.inspect(dbg_value, label: \"[lib/a.ex:3: App.run/0] x\")\n" +
		"  dbg_value = f(dbg_value, 5)\n" +
		"  IO.inspect(dbg_value, label: \"|> f(5)\")\n" +
		"  dbg_value\n" +
		")"
	assert.Equal(t, want, printer.ToString(out))
}

func TestDbgSingleExpression(t *testing.T) {
	env := &StaticEnv{}
	out, err := Dbg(ast.Call("+", ast.Int(1), ast.Int(2)), env)
	require.NoError(t, err)

	args, _ := out.(*ast.Form).CallArgs()
	assert.Len(t, args, 3)
	assert.Equal(t, "IO.inspect(dbg_value, label: \"[nofile] 1 + 2\")", printer.ToString(args[1]))
}

func TestDbgRejectsMatchAndGuard(t *testing.T) {
	for _, ctx := range []Context{ContextMatch, ContextGuard} {
		_, err := Dbg(ast.Var("x"), &StaticEnv{Ctx: ctx})
		require.Error(t, err)
		var usage *ast.UsageError
		require.True(t, errors.As(err, &usage))
		assert.Equal(t, "dbg", usage.Op)
		assert.Contains(t, usage.Msg, ctx.String())
	}
}

func TestDbgBadPipeTarget(t *testing.T) {
	code := ast.Call("|>", ast.Var("x"), ast.Call("-", ast.Int(1)))
	_, err := Dbg(code, &StaticEnv{})
	require.Error(t, err)
	var usage *ast.UsageError
	assert.True(t, errors.As(err, &usage))
}

func TestDbgHeader(t *testing.T) {
	assert.Equal(t, "[nofile]", DbgHeader(&StaticEnv{}))
	assert.Equal(t, "[a.ex:1: Foo]", DbgHeader(&StaticEnv{FilePath: "a.ex", LineNo: 1, Mod: "Elixir.Foo"}))
}

func TestModuleCountersMonotonic(t *testing.T) {
	var c ModuleCounters
	assert.Equal(t, int64(1), c.Next("Elixir.A"))
	assert.Equal(t, int64(2), c.Next("Elixir.A"))
	assert.Equal(t, int64(1), c.Next("Elixir.B"))
	assert.Equal(t, int64(2), c.Peek("Elixir.A"))
	assert.Equal(t, int64(0), c.Peek("Elixir.C"))
}

func TestModuleCountersConcurrent(t *testing.T) {
	var c ModuleCounters
	const workers, per = 16, 200

	var mu sync.Mutex
	seen := make(map[int64]bool)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := make([]int64, 0, per)
			for j := 0; j < per; j++ {
				local = append(local, c.Next("Elixir.Shared"))
			}
			mu.Lock()
			for _, v := range local {
				seen[v] = true
			}
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, workers*per)
	assert.Equal(t, int64(workers*per), c.Peek("Elixir.Shared"))
}
