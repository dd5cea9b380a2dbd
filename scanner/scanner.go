// Package scanner tokenizes the textual form of atoms so they can be
// classified as identifiers, aliases or names that need quoting. It
// follows the identifier rules of the source language: a letter or
// underscore start, letters, digits and underscores after that, and an
// optional trailing ? or !. Aliases start with an ASCII uppercase letter.
package scanner

import (
	"errors"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Kind is the token kind produced by Identifier.
type Kind int

const (
	KindIdentifier Kind = iota // foo, _bar, baz?
	KindAlias                  // Foo
	KindAtom                   // foo@bar, only valid as an atom
)

func (k Kind) String() string {
	switch k {
	case KindIdentifier:
		return "identifier"
	case KindAlias:
		return "alias"
	case KindAtom:
		return "atom"
	default:
		return "unknown"
	}
}

var (
	// ErrEmpty is returned for empty input.
	ErrEmpty = errors.New("empty identifier")
	// ErrInvalidStart is returned when the first rune cannot start an
	// identifier.
	ErrInvalidStart = errors.New("invalid identifier start")
	// ErrNotNFC is returned for input that is not in Unicode
	// Normalization Form C.
	ErrNotNFC = errors.New("identifier is not in NFC form")
	// ErrMixedScript is returned for aliases containing non-ASCII runes.
	ErrMixedScript = errors.New("alias must be ASCII")
)

// Token is a scanned identifier.
type Token struct {
	Kind    Kind
	Value   string // the scanned text
	Rest    string // unconsumed input
	Special []rune // markers seen: '?', '!' or '@'
}

// HasSpecial reports whether r was seen while scanning.
func (t Token) HasSpecial(r rune) bool {
	for _, s := range t.Special {
		if s == r {
			return true
		}
	}
	return false
}

// RuneScanner iterates rune-by-rune over a string.
type RuneScanner struct {
	src  string
	pos  int // byte offset of the next rune
	last int // byte offset of the last rune returned by Next
}

// New creates a RuneScanner for src.
func New(src string) *RuneScanner {
	return &RuneScanner{src: src, last: -1}
}

// Next returns the next rune and advances. ok is false at end of input.
func (s *RuneScanner) Next() (rune, bool) {
	if s.pos >= len(s.src) {
		return 0, false
	}
	r, size := utf8.DecodeRuneInString(s.src[s.pos:])
	s.last = s.pos
	s.pos += size
	return r, true
}

// Peek returns the next rune without advancing.
func (s *RuneScanner) Peek() (rune, bool) {
	if s.pos >= len(s.src) {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(s.src[s.pos:])
	return r, true
}

// Pos returns the byte offset of the next rune.
func (s *RuneScanner) Pos() int { return s.pos }

// Rest returns the unconsumed input.
func (s *RuneScanner) Rest() string { return s.src[s.pos:] }

// Identifier scans an identifier, alias or atom-only name from the start
// of src. The remaining input is returned in Token.Rest; callers that need
// the whole string to be a single identifier check that it is empty.
func Identifier(src string) (Token, error) {
	if src == "" {
		return Token{}, ErrEmpty
	}
	if !norm.NFC.IsNormalString(src) {
		return Token{}, ErrNotNFC
	}

	s := New(src)
	first, _ := s.Next()
	tok := Token{Kind: KindIdentifier}
	switch {
	case first >= 'A' && first <= 'Z':
		tok.Kind = KindAlias
	case first == '_' || unicode.IsLetter(first) && !unicode.IsUpper(first) && !unicode.IsTitle(first):
	default:
		return Token{}, ErrInvalidStart
	}

	for {
		r, ok := s.Peek()
		if !ok {
			break
		}
		if isContinue(r) {
			if tok.Kind == KindAlias && r >= utf8.RuneSelf {
				return Token{}, ErrMixedScript
			}
			s.Next()
			continue
		}
		if r == '@' {
			tok.Special = append(tok.Special, r)
			if tok.Kind == KindIdentifier {
				tok.Kind = KindAtom
			}
			s.Next()
			continue
		}
		if r == '?' || r == '!' {
			tok.Special = append(tok.Special, r)
			s.Next()
		}
		break
	}

	tok.Value = src[:s.Pos()]
	tok.Rest = s.Rest()
	return tok, nil
}

func isContinue(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r)
}

// IsAlias reports whether s is a dot-separated chain of alias segments,
// such as Foo or Foo.Bar.Baz.
func IsAlias(s string) bool {
	for {
		tok, err := Identifier(s)
		if err != nil || tok.Kind != KindAlias || len(tok.Special) > 0 {
			return false
		}
		if tok.Rest == "" {
			return true
		}
		if tok.Rest[0] != '.' {
			return false
		}
		s = tok.Rest[1:]
	}
}
