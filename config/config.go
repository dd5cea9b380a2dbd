// Package config loads the quill CLI configuration: the compilation
// environment the expander runs against and the macros it knows about.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/rubiojr/quill/ast"
	"github.com/rubiojr/quill/astio"
	"github.com/rubiojr/quill/expand"
)

// EnvVar names the environment variable holding the config path.
const EnvVar = "QUILL_CONFIG"

// DefaultPath is tried when EnvVar is unset.
const DefaultPath = "quill.toml"

// Config is the root configuration.
type Config struct {
	Env    EnvConfig     `toml:"env"`
	Expand ExpandConfig  `toml:"expand"`
	Output OutputConfig  `toml:"output"`
	Macros []MacroConfig `toml:"macros"`

	// dir is the directory of the loaded file; template paths are
	// relative to it.
	dir string
}

// EnvConfig describes the compilation environment.
type EnvConfig struct {
	Module   string `toml:"module"`
	File     string `toml:"file"`
	Line     int    `toml:"line"`
	Function string `toml:"function"` // name/arity
	Context  string `toml:"context"`  // match, guard or empty
	// Aliases maps a short alias to the module it stands for.
	Aliases map[string]string `toml:"aliases"`
}

// ExpandConfig controls expansion.
type ExpandConfig struct {
	MaxSteps int  `toml:"max_steps"`
	Trace    bool `toml:"trace"`
}

// OutputConfig controls CLI output.
type OutputConfig struct {
	Color string `toml:"color"` // auto, always or never
}

// MacroConfig defines a template macro. A macro with a Receiver is
// called as Receiver.name(...); otherwise it is a local macro.
type MacroConfig struct {
	Name     string   `toml:"name"`
	Receiver string   `toml:"receiver"`
	Module   string   `toml:"module"`
	Params   []string `toml:"params"`
	Template string   `toml:"template"`
}

// Load loads configuration from a TOML file.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.dir = filepath.Dir(path)
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// LoadFromEnv loads the file named by QUILL_CONFIG, falling back to
// quill.toml in the working directory. With neither present it returns
// the defaults.
func LoadFromEnv() (*Config, error) {
	if path := os.Getenv(EnvVar); path != "" {
		return Load(path)
	}
	if _, err := os.Stat(DefaultPath); err == nil {
		return Load(DefaultPath)
	}
	return Default(), nil
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{dir: "."}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Env.File == "" {
		c.Env.File = "nofile"
	}
	if c.Expand.MaxSteps == 0 {
		c.Expand.MaxSteps = 1000
	}
	if c.Output.Color == "" {
		c.Output.Color = "auto"
	}
}

func (c *Config) validate() error {
	switch c.Env.Context {
	case "", "match", "guard":
	default:
		return fmt.Errorf("env.context: unknown context %q", c.Env.Context)
	}
	switch c.Output.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("output.color: expected auto, always or never, got %q", c.Output.Color)
	}
	if c.Expand.MaxSteps < 0 {
		return fmt.Errorf("expand.max_steps: must be positive")
	}
	if c.Env.Function != "" {
		if _, _, err := parseFunction(c.Env.Function); err != nil {
			return fmt.Errorf("env.function: %w", err)
		}
	}
	for i, m := range c.Macros {
		if m.Name == "" {
			return fmt.Errorf("macros[%d]: missing name", i)
		}
		if m.Template == "" {
			return fmt.Errorf("macros[%d] %s: missing template", i, m.Name)
		}
	}
	return nil
}

// ModuleAtom turns a configured module name into an atom: Foo.Bar
// becomes Elixir.Foo.Bar and :lists stays an Erlang module.
func ModuleAtom(name string) ast.Atom {
	switch {
	case name == "":
		return ""
	case strings.HasPrefix(name, ":"):
		return ast.Atom(name[1:])
	case name == "Elixir" || strings.HasPrefix(name, ast.AliasPrefix):
		return ast.Atom(name)
	}
	return ast.Atom(ast.AliasPrefix + name)
}

func parseFunction(s string) (ast.Atom, int, error) {
	name, arity, ok := strings.Cut(s, "/")
	if !ok || name == "" {
		return "", 0, fmt.Errorf("expected name/arity, got %q", s)
	}
	n, err := strconv.Atoi(arity)
	if err != nil || n < 0 {
		return "", 0, fmt.Errorf("invalid arity in %q", s)
	}
	return ast.Atom(name), n, nil
}

// StaticEnv builds the expansion environment described by c, loading
// every macro template.
func (c *Config) StaticEnv() (*expand.StaticEnv, error) {
	env := &expand.StaticEnv{
		Mod:      ModuleAtom(c.Env.Module),
		FilePath: c.Env.File,
		LineNo:   c.Env.Line,
	}
	switch c.Env.Context {
	case "match":
		env.Ctx = expand.ContextMatch
	case "guard":
		env.Ctx = expand.ContextGuard
	}
	if c.Env.Function != "" {
		name, arity, err := parseFunction(c.Env.Function)
		if err != nil {
			return nil, err
		}
		env.Fun = &expand.Function{Name: name, Arity: arity}
	}
	for short, full := range c.Env.Aliases {
		env.DefineAlias(ModuleAtom(short), ModuleAtom(full))
	}

	for _, m := range c.Macros {
		tmpl, err := astio.DecodeFile(c.templatePath(m.Template))
		if err != nil {
			return nil, fmt.Errorf("macro %s: %w", m.Name, err)
		}
		params := make([]ast.Atom, len(m.Params))
		for i, p := range m.Params {
			params[i] = ast.Atom(p)
		}
		macro := expand.Macro{
			Module: ModuleAtom(m.Module),
			Expand: expand.Template(params, tmpl),
		}
		if m.Receiver != "" {
			env.DefineRemote(ModuleAtom(m.Receiver), ast.Atom(m.Name), len(params), macro)
		} else {
			env.DefineLocal(ast.Atom(m.Name), len(params), macro)
		}
	}
	return env, nil
}

func (c *Config) templatePath(p string) string {
	if filepath.IsAbs(p) || c.dir == "" {
		return p
	}
	return filepath.Join(c.dir, p)
}
