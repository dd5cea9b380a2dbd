// Package doc describes the operators and special forms known to the
// printer and the expander, for terminal display.
package doc

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rubiojr/quill/ast"
	"github.com/rubiojr/quill/expand"
)

// OperatorDoc describes one operator at one arity.
type OperatorDoc struct {
	Name  ast.Atom
	Arity int // 1 for unary, 2 for binary
	Assoc ast.Assoc
	Prec  int
}

// FormDoc describes a special form.
type FormDoc struct {
	Name    ast.Atom
	Arities []int // -1 means any arity
	Doc     string
}

var formDocs = map[ast.Atom]string{
	"%{}":              "Map literal. A single | argument is a map update.",
	"{}":               "Tuple literal of any size other than two.",
	"%":                "Struct literal: the struct alias and a %{} of fields.",
	"<<>>":             "Bitstring literal. Text and interpolation segments print as a string.",
	"__aliases__":      "Alias chain such as Foo.Bar. Expands to a single alias atom.",
	"__block__":        "Sequence of expressions. The last one is the value.",
	"__cursor__":       "Cursor marker left in partial code.",
	"__CALLER__":       "Environment of the caller, inside macros.",
	"__DIR__":          "Directory of the current file.",
	"__ENV__":          "The compilation environment as a struct.",
	"__MODULE__":       "The current module, or nil outside one.",
	"__STACKTRACE__":   "Stacktrace of the exception being handled.",
	"&":                "Capture: &fun/arity, &Mod.fun/arity or &(expr) with &1 placeholders.",
	".":                "Remote call or field access: receiver.name.",
	"::":               "Type operator, used for bitstring segment modifiers.",
	"=":                "Match operator.",
	"^":                "Pin operator. Matches against an existing value.",
	"->":               "Clause of fn, case, cond or receive.",
	"alias":            "Registers an alias for the rest of the lexical scope.",
	"case":             "Matches a value against clauses.",
	"cond":             "Evaluates the first clause whose condition is truthy.",
	"fn":               "Anonymous function made of -> clauses.",
	"for":              "Comprehension.",
	"import":           "Imports the functions and macros of a module into the lexical scope.",
	"quote":            "Returns the quoted form of its body.",
	"receive":          "Waits for a message matching one of the clauses.",
	"require":          "Makes the macros of a module available.",
	"super":            "Calls the overridden definition.",
	"try":              "Evaluates a block with rescue, catch, else and after handlers.",
	"unquote":          "Injects a value into a quoted expression.",
	"unquote_splicing": "Splices a list into a quoted expression.",
	"with":             "Chains matches, falling through to else on the first mismatch.",
}

// Operators returns every operator, tightest binding first.
func Operators() []OperatorDoc {
	var out []OperatorDoc
	for _, op := range ast.UnaryOps() {
		info, _ := ast.UnaryOp(op)
		out = append(out, OperatorDoc{Name: op, Arity: 1, Assoc: info.Assoc, Prec: info.Prec})
	}
	for _, op := range ast.BinaryOps() {
		info, _ := ast.BinaryOp(op)
		out = append(out, OperatorDoc{Name: op, Arity: 2, Assoc: info.Assoc, Prec: info.Prec})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Prec != b.Prec {
			return a.Prec > b.Prec
		}
		if a.Arity != b.Arity {
			return a.Arity < b.Arity
		}
		return a.Name < b.Name
	})
	return out
}

// SpecialForms returns every special form sorted by name.
func SpecialForms() []FormDoc {
	names := expand.SpecialForms()
	out := make([]FormDoc, len(names))
	for i, name := range names {
		out[i] = FormDoc{Name: name, Arities: expand.SpecialFormArities(name), Doc: formDocs[name]}
	}
	return out
}

// Lookup finds the documentation for a special form or operator. Special
// forms take precedence over operators of the same name.
func Lookup(name string) (doc string, signature string, found bool) {
	atom := ast.Atom(name)
	if arities := expand.SpecialFormArities(atom); len(arities) > 0 {
		return formDocs[atom], formSignature(atom, arities), true
	}

	var sigs, docs []string
	if info, ok := ast.UnaryOp(atom); ok {
		sigs = append(sigs, operatorSignature(OperatorDoc{Name: atom, Arity: 1}))
		docs = append(docs, fmt.Sprintf("unary operator, precedence %d", info.Prec))
	}
	if info, ok := ast.BinaryOp(atom); ok {
		sigs = append(sigs, operatorSignature(OperatorDoc{Name: atom, Arity: 2}))
		docs = append(docs, fmt.Sprintf("binary operator, precedence %d, %s associative", info.Prec, info.Assoc))
	}
	if len(sigs) == 0 {
		return "", "", false
	}
	return strings.Join(docs, "\n"), strings.Join(sigs, ", "), true
}

func formSignature(name ast.Atom, arities []int) string {
	parts := make([]string, len(arities))
	for i, a := range arities {
		arity := "*"
		if a >= 0 {
			arity = strconv.Itoa(a)
		}
		parts[i] = string(name) + "/" + arity
	}
	return strings.Join(parts, ", ")
}

// operatorSignature shows how the operator is written: "a + b", "-a" or
// "not a".
func operatorSignature(op OperatorDoc) string {
	name := string(op.Name)
	if op.Arity == 2 {
		return "a " + name + " b"
	}
	if isWord(name) {
		return name + " a"
	}
	return name + "a"
}

func isWord(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return s != ""
}
