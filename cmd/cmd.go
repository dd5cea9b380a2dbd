package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/rubiojr/quill/config"
)

// app carries the state shared by every command.
type app struct {
	stdout io.Writer
	stderr io.Writer
	log    *zap.Logger
	level  zap.AtomicLevel
	cfg    *config.Config
}

// Execute runs the quill CLI with the given version string.
func Execute(version string) {
	cmd := New(version, os.Stdout, os.Stderr)
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// New builds the quill command tree writing to stdout and stderr.
func New(version string, stdout, stderr io.Writer) *cli.Command {
	a := &app{
		stdout: stdout,
		stderr: stderr,
		level:  zap.NewAtomicLevelAt(zapcore.WarnLevel),
	}
	a.log = newLogger(stderr, a.level)
	return &cli.Command{
		Name:                   "quill",
		Usage:                  "Inspect, print and expand quoted code trees",
		Version:                version,
		Writer:                 stdout,
		ErrWriter:              stderr,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Configuration file (defaults to $" + config.EnvVar + " or ./" + config.DefaultPath + ")",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Log debug output to stderr",
			},
			&cli.BoolFlag{
				Name:    "no-color",
				Aliases: []string{"C"},
				Usage:   "Disable ANSI color output",
			},
		},
		Before: a.before,
		Commands: []*cli.Command{
			{
				Name:      "fmt",
				Usage:     "Print trees as source text",
				ArgsUsage: "<file.yaml>...",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "jobs",
						Aliases: []string{"j"},
						Usage:   "Files rendered in parallel",
						Value:   1,
					},
				},
				Action: a.fmtAction,
			},
			{
				Name:      "validate",
				Usage:     "Report the first invalid node of each tree",
				ArgsUsage: "<file.yaml>...",
				Action:    a.validateAction,
			},
			{
				Name:      "walk",
				Usage:     "List node occurrences in traversal order",
				ArgsUsage: "<file.yaml>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "post",
						Usage: "Post-order (children before parents)",
					},
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Stop after this many nodes (0 means all)",
					},
				},
				Action: a.walkAction,
			},
			{
				Name:      "unpipe",
				Usage:     "List the steps of a |> pipeline",
				ArgsUsage: "<file.yaml>",
				Action:    a.unpipeAction,
			},
			{
				Name:      "classify",
				Usage:     "Classify atoms and show how they print",
				ArgsUsage: "<atom>...",
				Action:    a.classifyAction,
			},
			{
				Name:      "expand",
				Usage:     "Expand aliases and macros at the root of a tree",
				ArgsUsage: "<file.yaml>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "once",
						Usage: "Expand a single step",
					},
					&cli.BoolFlag{
						Name:  "literals",
						Usage: "Expand aliases in literal positions instead of the root",
					},
				},
				Action: a.expandAction,
			},
			{
				Name:      "dbg",
				Usage:     "Rewrite an expression to print each pipeline step",
				ArgsUsage: "<file.yaml>",
				Action:    a.dbgAction,
			},
			{
				Name:      "doc",
				Usage:     "Describe special forms and operators",
				ArgsUsage: "[name]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "operators",
						Usage: "List the operator table instead of special forms",
					},
				},
				Action: a.docAction,
			},
			{
				Name:      "encode",
				Usage:     "Re-encode a tree in canonical YAML",
				ArgsUsage: "<file.yaml>",
				Action:    a.encodeAction,
			},
		},
	}
}

func (a *app) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.Bool("verbose") {
		a.level.SetLevel(zapcore.DebugLevel)
	}

	var err error
	if path := cmd.String("config"); path != "" {
		a.cfg, err = config.Load(path)
	} else {
		a.cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return ctx, err
	}
	a.log.Debug("config loaded", zap.String("module", a.cfg.Env.Module), zap.Int("macros", len(a.cfg.Macros)))

	color.NoColor = !a.colorEnabled(cmd.Bool("no-color"))
	return ctx, nil
}

// newLogger builds a development-style console logger on w without
// timestamps.
func newLogger(w io.Writer, level zap.AtomicLevel) *zap.Logger {
	enc := zap.NewDevelopmentEncoderConfig()
	enc.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(w), level)
	return zap.New(core)
}

// colorEnabled decides whether output is colored. NO_COLOR and --no-color
// always win; otherwise the configured mode applies, with "auto" meaning
// stdout is a terminal.
func (a *app) colorEnabled(noColor bool) bool {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	switch a.cfg.Output.Color {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := a.stdout.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
