package lexer

import "fmt"

// TokenKind categorizes tokens by syntactic type. The set is closed:
// downstream phases and grammar descriptions depend on these exact kinds.
type TokenKind int

const (
	// Comment is an ignored region of code, line or block form.
	Comment TokenKind = iota
	// Ident is an identifier: a letter or underscore followed by letters,
	// digits and underscores.
	Ident
	// Reserved is an identifier that matches a reserved word.
	Reserved
	// IntLit is a decimal, hexadecimal or binary integer literal.
	IntLit
	// FloatLit is a floating-point literal with a fraction and/or exponent.
	FloatLit
	// StringLit is a double-quoted character string literal.
	StringLit
	// CharLit is a single-quoted character literal.
	CharLit
	// Oper is a run of operator characters.
	Oper
	// Symbol is a structural punctuation token.
	Symbol
	// Whitespace is a run of spaces and tabs.
	Whitespace
	// Newline separates statements: a line break or an explicit semicolon.
	Newline
	// EOF marks the end of the source. Exactly one EOF token is produced,
	// positioned one column past the last character.
	EOF
)

var kindNames = map[TokenKind]string{
	Comment:    "Comment",
	Ident:      "Ident",
	Reserved:   "Reserved",
	IntLit:     "IntLit",
	FloatLit:   "FloatLit",
	StringLit:  "StringLit",
	CharLit:    "CharLit",
	Oper:       "Oper",
	Symbol:     "Symbol",
	Whitespace: "Whitespace",
	Newline:    "Newline",
	EOF:        "EOF",
}

func (k TokenKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// KindNamed returns the TokenKind with the given symbolic name.
func KindNamed(name string) (TokenKind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}

// Position of a token within its source.
//
// Offset counts runes from the start of the source. Line and Column are
// 1-based; Column refers to the first character of the token and equals
// 1 plus the token's offset minus the offset of the start of its line.
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

// Advance returns the position immediately after text laid out at p.
func (p Position) Advance(text string) Position {
	for _, ch := range text {
		p.Offset++
		if ch == '\n' {
			p.Line++
			p.Column = 1
		} else {
			p.Column++
		}
	}
	return p
}

func (p Position) String() string {
	filename := p.Filename
	if filename == "" {
		filename = "<source>"
	}
	return fmt.Sprintf("%s:%d:%d", filename, p.Line, p.Column)
}

// A Token produced by the Lexer. Tokens are immutable once produced.
//
// Image is an exact copy of the token's text from the source: concatenating
// the images of all tokens (whitespace and comments included) reproduces
// the source exactly. Value carries the decoded literal where that makes
// sense for the kind (int64 for IntLit, float64 for FloatLit, string for
// StringLit, rune for CharLit) and is nil otherwise.
type Token struct {
	Kind  TokenKind
	Image string
	Value interface{}
	Pos   Position
}

// EOF reports whether the token marks the end of the source.
func (t Token) EOF() bool {
	return t.Kind == EOF
}

func (t Token) String() string {
	if t.EOF() {
		return "<<EOF>>"
	}
	return t.Image
}
