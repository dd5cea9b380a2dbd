package cmd

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rubiojr/quill/ast"
	"github.com/rubiojr/quill/astio"
	"github.com/rubiojr/quill/doc"
	"github.com/rubiojr/quill/expand"
	"github.com/rubiojr/quill/pipe"
	"github.com/rubiojr/quill/printer"
)

// errFailed is returned after a command already reported its failures.
var errFailed = errors.New("one or more trees failed")

func (a *app) load(cmd *cli.Command, usage string) (ast.Node, error) {
	if cmd.NArg() < 1 {
		return nil, fmt.Errorf("usage: quill %s", usage)
	}
	path := cmd.Args().First()
	a.log.Debug("decoding", zap.String("file", path))
	return astio.DecodeFile(path)
}

func (a *app) fmtAction(ctx context.Context, cmd *cli.Command) error {
	files := cmd.Args().Slice()
	if len(files) == 0 {
		return fmt.Errorf("usage: quill fmt <file.yaml>...")
	}
	jobs := int(cmd.Int("jobs"))
	if jobs < 1 {
		jobs = 1
	}

	type result struct {
		out string
		err error
	}
	results := make([]result, len(files))
	render := func(i int) {
		n, err := astio.DecodeFile(files[i])
		if err != nil {
			results[i].err = err
			return
		}
		results[i].out = printer.ToString(n)
	}

	if jobs == 1 {
		for i := range files {
			render(i)
		}
	} else {
		work := make(chan int, len(files))
		for i := range files {
			work <- i
		}
		close(work)
		var wg sync.WaitGroup
		for range jobs {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range work {
					render(i)
				}
			}()
		}
		wg.Wait()
	}

	failed := false
	for i, r := range results {
		if len(files) > 1 {
			fmt.Fprintln(a.stdout, fileStyle.Sprintf("=== %s ===", files[i]))
		}
		if r.err != nil {
			failed = true
			fmt.Fprintln(a.stderr, errorStyle.Sprint("error: ")+r.err.Error())
			continue
		}
		fmt.Fprintln(a.stdout, r.out)
	}
	if failed {
		return errFailed
	}
	return nil
}

func (a *app) validateAction(ctx context.Context, cmd *cli.Command) error {
	files := cmd.Args().Slice()
	if len(files) == 0 {
		return fmt.Errorf("usage: quill validate <file.yaml>...")
	}
	failed := false
	for _, path := range files {
		n, err := astio.DecodeFile(path)
		if err != nil {
			failed = true
			fmt.Fprintf(a.stdout, "%s: %s %v\n", fileStyle.Sprint(path), errorStyle.Sprint("error"), err)
			continue
		}
		if bad, ok := ast.Validate(n); !ok {
			failed = true
			fmt.Fprintf(a.stdout, "%s: %s %s\n", fileStyle.Sprint(path), errorStyle.Sprint("invalid"), ast.Inspect(bad))
			continue
		}
		fmt.Fprintf(a.stdout, "%s: %s\n", fileStyle.Sprint(path), okStyle.Sprint("ok"))
	}
	if failed {
		return errFailed
	}
	return nil
}

func (a *app) walkAction(ctx context.Context, cmd *cli.Command) error {
	n, err := a.load(cmd, "walk [--post] [--limit N] <file.yaml>")
	if err != nil {
		return err
	}
	w := ast.NewPrewalker(n)
	if cmd.Bool("post") {
		w = ast.NewPostwalker(n)
	}
	limit := int(cmd.Int("limit"))
	count := 0
	for limit == 0 || count < limit {
		node, ok := w.Next()
		if !ok {
			break
		}
		count++
		fmt.Fprintf(a.stdout, "%s %s\n", posStyle.Sprintf("%4d", count), printer.ToString(node))
	}
	a.log.Debug("walk finished", zap.Int("nodes", count), zap.Bool("exhausted", w.Done()))
	return nil
}

func (a *app) unpipeAction(ctx context.Context, cmd *cli.Command) error {
	n, err := a.load(cmd, "unpipe <file.yaml>")
	if err != nil {
		return err
	}
	for i, step := range pipe.Unpipe(n) {
		fmt.Fprintf(a.stdout, "%s %s\n", posStyle.Sprintf("%d@%d", i, step.Pos), printer.ToString(step.Node))
	}
	return nil
}

func (a *app) classifyAction(ctx context.Context, cmd *cli.Command) error {
	atoms := cmd.Args().Slice()
	if len(atoms) == 0 {
		return fmt.Errorf("usage: quill classify <atom>...")
	}
	for _, s := range atoms {
		atom := ast.Atom(s)
		fmt.Fprintf(a.stdout, "%s\t%s\t%s\n",
			s,
			classStyle.Sprint(ast.ClassifyAtom(atom)),
			ast.InspectAtom(ast.AtomLiteral, atom))
	}
	return nil
}

func (a *app) env() (*expand.StaticEnv, error) {
	env, err := a.cfg.StaticEnv()
	if err != nil {
		return nil, err
	}
	level := zapcore.DebugLevel
	if a.cfg.Expand.Trace {
		level = zapcore.InfoLevel
	}
	env.Tracer = expand.TracerFunc(func(ev expand.Event) {
		if ce := a.log.Check(level, "expand"); ce != nil {
			ce.Write(
				zap.Stringer("event", ev.Kind),
				zap.String("module", string(ev.Module)),
				zap.String("name", string(ev.Name)),
				zap.Int("arity", ev.Arity))
		}
	})
	return env, nil
}

func (a *app) expandAction(ctx context.Context, cmd *cli.Command) error {
	n, err := a.load(cmd, "expand [--once] [--literals] <file.yaml>")
	if err != nil {
		return err
	}
	env, err := a.env()
	if err != nil {
		return err
	}

	var out ast.Node
	switch {
	case cmd.Bool("once"):
		var changed bool
		out, changed = expand.ExpandOnce(n, env)
		a.log.Debug("expanded once", zap.Bool("changed", changed))
	case cmd.Bool("literals"):
		out = expand.ExpandLiteralsEnv(n, env)
	default:
		var done bool
		out, done = expand.ExpandN(n, env, a.cfg.Expand.MaxSteps)
		if !done {
			return fmt.Errorf("expansion did not settle after %d steps", a.cfg.Expand.MaxSteps)
		}
	}
	fmt.Fprintln(a.stdout, printer.ToString(out))
	return nil
}

func (a *app) dbgAction(ctx context.Context, cmd *cli.Command) error {
	n, err := a.load(cmd, "dbg <file.yaml>")
	if err != nil {
		return err
	}
	env, err := a.env()
	if err != nil {
		return err
	}
	out, err := expand.Dbg(n, env)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, printer.ToString(out))
	return nil
}

func (a *app) docAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() > 0 {
		name := cmd.Args().First()
		text, sig, found := doc.Lookup(name)
		if !found {
			return fmt.Errorf("no documentation for %q", name)
		}
		fmt.Fprint(a.stdout, doc.FormatSymbol(text, sig))
		return nil
	}
	if cmd.Bool("operators") {
		fmt.Fprint(a.stdout, doc.FormatOperators(doc.Operators()))
		return nil
	}
	fmt.Fprint(a.stdout, doc.FormatForms(doc.SpecialForms()))
	return nil
}

func (a *app) encodeAction(ctx context.Context, cmd *cli.Command) error {
	n, err := a.load(cmd, "encode <file.yaml>")
	if err != nil {
		return err
	}
	data, err := astio.Encode(n)
	if err != nil {
		return err
	}
	_, err = a.stdout.Write(data)
	return err
}
