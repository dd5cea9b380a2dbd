package ast

import (
	"fmt"
	"strings"
)

// kernelAlias is the atom form of the Kernel module.
const kernelAlias Atom = AliasPrefix + "Kernel"

// Interpolation builds the bit-string segment that "#{arg}" produces.
func Interpolation(arg Node) *Form {
	conv := &Form{
		Head: &Form{Head: Atom("."), Args: NewList(kernelAlias, Atom("to_string"))},
		Meta: Meta{{Key: "from_interpolation", Value: true}},
		Args: NewList(arg),
	}
	return Call("::", conv, &Form{Head: Atom("binary"), Args: Nil})
}

// InterpolatedArg returns the interpolated expression when n is a
// segment built by Interpolation.
func InterpolatedArg(n Node) (Node, bool) {
	f, ok := n.(*Form)
	if !ok || !Is(f, "::", 2) {
		return nil, false
	}
	args, _ := f.CallArgs()
	if mod, ok := args[1].(*Form); !ok || mod.Head != Atom("binary") {
		return nil, false
	}
	receiver, name, convArgs, ok := IsRemote(args[0])
	if !ok || name != "to_string" || len(convArgs) != 1 || !isKernel(receiver) {
		return nil, false
	}
	return convArgs[0], true
}

func isKernel(n Node) bool {
	switch r := n.(type) {
	case Atom:
		return r == kernelAlias
	case *Form:
		segs, ok := r.CallArgs()
		return ok && r.Head == Atom("__aliases__") && len(segs) == 1 && segs[0] == Atom("Kernel")
	}
	return false
}

// InterpolatedString builds a <<>> form from text and interpolated
// expressions. String parts are kept as-is; any other node is wrapped
// with Interpolation.
func InterpolatedString(parts ...Node) *Form {
	elems := make([]Node, len(parts))
	for i, p := range parts {
		if _, ok := p.(String); ok {
			elems[i] = p
			continue
		}
		elems[i] = Interpolation(p)
	}
	return Call("<<>>", elems...)
}

// SigilLetter returns the sigil name encoded in an atom such as sigil_r or
// sigil_HTML. Lowercase sigils have a single letter; uppercase sigils are
// an uppercase letter followed by uppercase letters or digits.
func SigilLetter(a Atom) (string, bool) {
	name, ok := strings.CutPrefix(string(a), "sigil_")
	if !ok || name == "" {
		return "", false
	}
	if validSigilName(name) {
		return name, true
	}
	return "", false
}

func validSigilName(name string) bool {
	first := name[0]
	if first >= 'a' && first <= 'z' {
		return len(name) == 1
	}
	if first < 'A' || first > 'Z' {
		return false
	}
	for i := 1; i < len(name); i++ {
		c := name[i]
		if !(c >= 'A' && c <= 'Z' || c >= '0' && c <= '9') {
			return false
		}
	}
	return true
}

// SigilDelimiters maps opening delimiters to their closing counterparts.
// Delimiters not listed close with themselves.
var SigilDelimiters = map[string]string{
	"(": ")", "[": "]", "{": "}", "<": ">",
	`"""`: `"""`, `'''`: `'''`,
}

// Sigil builds a sigil form ~name<delim>body<close>modifiers. parts are
// String chunks or interpolated expressions. A malformed name is a usage
// error.
func Sigil(name, delimiter, modifiers string, parts ...Node) (*Form, error) {
	if name == "" || !validSigilName(name) {
		return nil, NewUsageError("sigil", fmt.Sprintf("invalid sigil name %q: expected a lowercase letter or an uppercase letter followed by uppercase letters or digits", name))
	}
	if delimiter == "" {
		delimiter = `"`
	}
	mods := make([]Node, 0, len(modifiers))
	for _, r := range modifiers {
		mods = append(mods, Int(r))
	}
	return &Form{
		Head: Atom("sigil_" + name),
		Meta: Meta{{Key: MetaDelimiter, Value: delimiter}},
		Args: NewList(InterpolatedString(parts...), NewList(mods...)),
	}, nil
}
