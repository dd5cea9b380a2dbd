package ast

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Quote wraps s in delim, escaping the delimiter, backslashes,
// interpolation openers and non-printable characters.
func Quote(s string, delim rune) string {
	return string(delim) + EscapeString(s, delim) + string(delim)
}

// EscapeString escapes s for inclusion between delim characters.
func EscapeString(s string, delim rune) string {
	var sb strings.Builder
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			fmt.Fprintf(&sb, "\\x%02X", s[i])
			i++
			continue
		}
		switch {
		case r == delim || r == '\\':
			sb.WriteByte('\\')
			sb.WriteRune(r)
		case r == '#' && i+1 < len(s) && s[i+1] == '{':
			sb.WriteString(`\#`)
		default:
			if esc, ok := controlEscapes[r]; ok {
				sb.WriteString(esc)
			} else if !unicode.IsPrint(r) && r != ' ' {
				fmt.Fprintf(&sb, "\\u{%X}", r)
			} else {
				sb.WriteRune(r)
			}
		}
		i += size
	}
	return sb.String()
}

var controlEscapes = map[rune]string{
	'\a':   `\a`,
	'\b':   `\b`,
	'\t':   `\t`,
	'\n':   `\n`,
	'\v':   `\v`,
	'\f':   `\f`,
	'\r':   `\r`,
	'\x1b': `\e`,
	0:      `\0`,
}

// FormatFloat renders f the way float literals are written in source:
// always with a fractional part, exponents without a plus sign.
func FormatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	mant, exp, hasExp := strings.Cut(s, "e")
	if !strings.ContainsAny(mant, ".") && !strings.ContainsAny(mant, "IN") {
		mant += ".0"
	}
	if !hasExp {
		return mant
	}
	exp = strings.TrimPrefix(exp, "+")
	neg := strings.HasPrefix(exp, "-")
	exp = strings.TrimLeft(strings.TrimPrefix(exp, "-"), "0")
	if neg {
		exp = "-" + exp
	}
	return mant + "e" + exp
}
