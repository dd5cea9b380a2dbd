package printer

import (
	"strings"

	"github.com/rubiojr/quill/ast"
)

// bits renders a <<>> form, as an interpolated string when every segment
// is text or an interpolation.
func (p *printer) bits(parts []ast.Node) string {
	if interpolated(parts) {
		return `"` + p.interpolate(parts, '"') + `"`
	}
	segs := make([]string, len(parts))
	for i, part := range parts {
		s := p.bitPart(part)
		if strings.HasPrefix(s, "<") || strings.HasSuffix(s, ">") {
			s = "(" + s + ")"
		}
		segs[i] = s
	}
	return "<<" + strings.Join(segs, ", ") + ">>"
}

func interpolated(parts []ast.Node) bool {
	if len(parts) == 0 {
		return false
	}
	for _, part := range parts {
		if _, ok := part.(ast.String); ok {
			continue
		}
		if _, ok := ast.InterpolatedArg(part); !ok {
			return false
		}
	}
	return true
}

// interpolate renders string segments escaped for the closing delimiter
// and interpolations as #{...}.
func (p *printer) interpolate(parts []ast.Node, closing rune) string {
	var sb strings.Builder
	for _, part := range parts {
		if s, ok := part.(ast.String); ok {
			sb.WriteString(ast.EscapeString(string(s), closing))
			continue
		}
		arg, _ := ast.InterpolatedArg(part)
		sb.WriteString("#{" + p.str(arg) + "}")
	}
	return sb.String()
}

func (p *printer) bitPart(n ast.Node) string {
	if !ast.Is(n, "::", 2) {
		return p.str(n)
	}
	args, _ := n.(*ast.Form).CallArgs()
	s := p.operand(args[0], "::", ast.AssocLeft) + "::" + p.bitMods(args[1], "::", ast.AssocRight)
	return p.fun(n, s)
}

// bitMods renders size/unit/type modifiers joined by - and *, without
// surrounding spaces.
func (p *printer) bitMods(n ast.Node, parent ast.Atom, side ast.Assoc) string {
	if ast.Is(n, "-", 2) || ast.Is(n, "*", 2) {
		f := n.(*ast.Form)
		op, _ := f.HeadAtom()
		args, _ := f.CallArgs()
		s := p.bitMods(args[0], op, ast.AssocLeft) + string(op) + p.bitMods(args[1], op, ast.AssocRight)
		return p.fun(n, s)
	}
	return p.operand(n, parent, side)
}

// sigil renders ~x<delim>body<close>modifiers using the delimiter recorded
// in the form's metadata.
func (p *printer) sigil(f *ast.Form, head ast.Atom, args []ast.Node) (string, bool) {
	name, _ := ast.SigilLetter(head)
	if len(args) != 2 || !ast.Is(args[0], "<<>>", -1) {
		return "", false
	}
	mods, ok := args[1].(*ast.List)
	if !ok {
		return "", false
	}
	var modText strings.Builder
	for _, m := range mods.Elems {
		c, ok := m.(ast.Int)
		if !ok {
			return "", false
		}
		modText.WriteRune(rune(c))
	}

	open, _ := f.Meta.Str(ast.MetaDelimiter)
	if open == "" {
		open = `"`
	}
	closing, ok := ast.SigilDelimiters[open]
	if !ok {
		closing = open
	}

	parts, _ := args[0].(*ast.Form).CallArgs()
	heredoc := len(open) == 3
	var body strings.Builder
	for _, part := range parts {
		if s, ok := part.(ast.String); ok {
			if heredoc {
				body.WriteString(string(s))
			} else {
				body.WriteString(escapeSigil(string(s), closing))
			}
			continue
		}
		arg, ok := ast.InterpolatedArg(part)
		if !ok || name[0] < 'a' || name[0] > 'z' {
			return "", false
		}
		body.WriteString("#{" + p.str(arg) + "}")
	}

	if heredoc {
		return "~" + name + open + "\n" + body.String() + closing + modText.String(), true
	}
	return "~" + name + open + body.String() + closing + modText.String(), true
}

// escapeSigil escapes unescaped occurrences of the closing delimiter.
func escapeSigil(s, closing string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			sb.WriteByte(s[i])
			sb.WriteByte(s[i+1])
			i++
			continue
		}
		if strings.HasPrefix(s[i:], closing) {
			sb.WriteByte('\\')
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}
