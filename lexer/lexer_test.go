package lexer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lex(t *testing.T, source string) []Token {
	t.Helper()
	tokens, err := Tokens(source, "test.ren")
	require.NoError(t, err)
	require.True(t, tokens[len(tokens)-1].EOF())
	return tokens[:len(tokens)-1]
}

func images(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Image
	}
	return out
}

func kinds(tokens []Token) []TokenKind {
	out := make([]TokenKind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func TestImagesRoundTrip(t *testing.T) {
	sources := []string{
		"",
		"let x = 1 + 2\n",
		"// comment\nfunc f() { return 0x1F }\n",
		"/* block\n comment */ \"str \\n ing\" 'c'",
		"a=>b ==> c <= d >> e",
		"if x { y } else { z };",
		"resume + 1.5e3 - 0b101\r\n",
		"\"héllo \\u{1F600}\" 'é'",
		"1.method() 0x 3.",
	}
	for _, source := range sources {
		tokens := lex(t, source)
		assert.Equal(t, source, strings.Join(images(tokens), ""), "source %q", source)
	}
}

func TestIdentifiersAndReserved(t *testing.T) {
	tokens := lex(t, "if ifx _tmp x9 func type i32")
	assert.Equal(t, []TokenKind{
		Reserved, Whitespace, Ident, Whitespace, Ident, Whitespace, Ident,
		Whitespace, Reserved, Whitespace, Reserved, Whitespace, Reserved,
	}, kinds(tokens))
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		source string
		kind   TokenKind
		value  interface{}
	}{
		{"0", IntLit, int64(0)},
		{"42", IntLit, int64(42)},
		{"0x1F", IntLit, int64(31)},
		{"0XaB", IntLit, int64(171)},
		{"0b101", IntLit, int64(5)},
		{"1.5", FloatLit, 1.5},
		{"0.25", FloatLit, 0.25},
		{"1e9", FloatLit, 1e9},
		{"1.5e3", FloatLit, 1500.0},
		{"2E4", FloatLit, 2e4},
	}
	for _, test := range tests {
		tokens := lex(t, test.source)
		require.Len(t, tokens, 1, "source %q", test.source)
		assert.Equal(t, test.kind, tokens[0].Kind, "source %q", test.source)
		assert.Equal(t, test.source, tokens[0].Image, "source %q", test.source)
		assert.Equal(t, test.value, tokens[0].Value, "source %q", test.source)
	}
}

// Prefixes and float markers only apply when the right character
// follows; otherwise the literal falls back to a plain integer.
func TestNumberFallbacks(t *testing.T) {
	tokens := lex(t, "0x")
	require.Len(t, tokens, 2)
	assert.Equal(t, IntLit, tokens[0].Kind)
	assert.Equal(t, "0", tokens[0].Image)
	assert.Equal(t, Ident, tokens[1].Kind)

	tokens = lex(t, "1.method")
	assert.Equal(t, []TokenKind{IntLit, Symbol, Ident}, kinds(tokens))
	assert.Equal(t, []string{"1", ".", "method"}, images(tokens))

	tokens = lex(t, "1.5e")
	assert.Equal(t, []TokenKind{FloatLit, Ident}, kinds(tokens))
	assert.Equal(t, 1.5, tokens[0].Value)

	tokens = lex(t, "0b2")
	assert.Equal(t, []TokenKind{IntLit, Ident}, kinds(tokens))
	assert.Equal(t, "0", tokens[0].Image)
}

func TestStrings(t *testing.T) {
	tests := []struct {
		source string
		value  string
	}{
		{`"hello"`, "hello"},
		{`""`, ""},
		{`"a\nb\tc"`, "a\nb\tc"},
		{`"\x41\x62"`, "Ab"},
		{`"A"`, "A"},
		{`"\u{1F600}"`, "\U0001F600"},
		{`"\u{10FFF}"`, "\U00010FFF"},
		{`"\q"`, "q"},
		{`"\u"`, "u"},
		{`"\uZZZZ"`, "uZZZZ"},
		{`"\x4"`, "x4"},
	}
	for _, test := range tests {
		tokens := lex(t, test.source)
		require.Len(t, tokens, 1, "source %q", test.source)
		assert.Equal(t, StringLit, tokens[0].Kind)
		assert.Equal(t, test.source, tokens[0].Image, "source %q", test.source)
		assert.Equal(t, test.value, tokens[0].Value, "source %q", test.source)
	}
}

func TestChars(t *testing.T) {
	tokens := lex(t, `'a' '\n' '\x41'`)
	chars := []Token{tokens[0], tokens[2], tokens[4]}
	assert.Equal(t, 'a', chars[0].Value)
	assert.Equal(t, '\n', chars[1].Value)
	assert.Equal(t, 'A', chars[2].Value)
	for _, tok := range chars {
		assert.Equal(t, CharLit, tok.Kind)
	}
}

func TestLexicalErrors(t *testing.T) {
	tests := []struct {
		source  string
		message string
	}{
		{`"abc`, "Unterminated string"},
		{"/* nope", "Unterminated comment"},
		{"'a", "Unterminated character"},
		{"''", "Empty character"},
		{"'ab'", "Unterminated character"},
		{"@", `Invalid character '@'`},
	}
	for _, test := range tests {
		_, err := Tokens(test.source, "test.ren")
		require.Error(t, err, "source %q", test.source)
		assert.Contains(t, err.Error(), test.message, "source %q", test.source)
	}
}

func TestOperatorsAndEquals(t *testing.T) {
	tests := []struct {
		source string
		images []string
		kinds  []TokenKind
	}{
		{"=", []string{"="}, []TokenKind{Symbol}},
		{"=>", []string{"=>"}, []TokenKind{Symbol}},
		{"==", []string{"=="}, []TokenKind{Oper}},
		{"==>", []string{"==>"}, []TokenKind{Oper}},
		{"=>>", []string{"=>>"}, []TokenKind{Oper}},
		{"+-*/", []string{"+-*/"}, []TokenKind{Oper}},
		{"<", []string{"<"}, []TokenKind{Oper}},
		{"<=", []string{"<", "="}, []TokenKind{Oper, Symbol}},
		{">>", []string{">", ">"}, []TokenKind{Oper, Oper}},
		{"!=", []string{"!="}, []TokenKind{Oper}},
	}
	for _, test := range tests {
		tokens := lex(t, test.source)
		assert.Equal(t, test.images, images(tokens), "source %q", test.source)
		assert.Equal(t, test.kinds, kinds(tokens), "source %q", test.source)
	}
}

func TestSymbols(t *testing.T) {
	tokens := lex(t, ":{}()[],.`")
	for _, tok := range tokens {
		assert.Equal(t, Symbol, tok.Kind, "image %q", tok.Image)
		assert.Len(t, tok.Image, 1)
	}
}

func TestNewlines(t *testing.T) {
	tokens := lex(t, "a\nb;c\r\nd")
	assert.Equal(t, []TokenKind{
		Ident, Newline, Ident, Newline, Ident, Newline, Ident,
	}, kinds(tokens))
	assert.Equal(t, []string{"a", "\n", "b", ";", "c", "\r\n", "d"}, images(tokens))

	// Semicolons do not move the line counter; line breaks do.
	assert.Equal(t, 2, tokens[2].Pos.Line) // b
	assert.Equal(t, 1, tokens[2].Pos.Column)
	assert.Equal(t, 2, tokens[4].Pos.Line) // c
	assert.Equal(t, 3, tokens[4].Pos.Column)
	assert.Equal(t, 3, tokens[6].Pos.Line) // d
	assert.Equal(t, 1, tokens[6].Pos.Column)
}

func TestLineCommentOwnsItsNewline(t *testing.T) {
	tokens := lex(t, "a // rest\nb")
	assert.Equal(t, []TokenKind{Ident, Whitespace, Comment, Ident}, kinds(tokens))
	assert.Equal(t, "// rest\n", tokens[2].Image)
	assert.Equal(t, 2, tokens[3].Pos.Line)
}

func TestPositions(t *testing.T) {
	tokens := lex(t, "let x =\n  f(1)")
	byImage := map[string]Position{}
	for _, tok := range tokens {
		byImage[tok.Image] = tok.Pos
	}
	assert.Equal(t, Position{Filename: "test.ren", Offset: 4, Line: 1, Column: 5}, byImage["x"])
	assert.Equal(t, Position{Filename: "test.ren", Offset: 6, Line: 1, Column: 7}, byImage["="])
	assert.Equal(t, Position{Filename: "test.ren", Offset: 10, Line: 2, Column: 3}, byImage["f"])
	assert.Equal(t, Position{Filename: "test.ren", Offset: 12, Line: 2, Column: 5}, byImage["1"])
}

func TestOffsetsCountRunes(t *testing.T) {
	tokens := lex(t, `"é" x`)
	require.Len(t, tokens, 3)
	assert.Equal(t, "é", tokens[0].Value)
	assert.Equal(t, 4, tokens[2].Pos.Offset)
	assert.Equal(t, 5, tokens[2].Pos.Column)
}

func TestEOF(t *testing.T) {
	l := New("ab", "test.ren")
	first := l.Next()
	assert.Equal(t, "ab", first.Image)

	eof := l.Next()
	require.True(t, eof.EOF())
	assert.Equal(t, Position{Filename: "test.ren", Offset: 2, Line: 1, Column: 3}, eof.Pos)
	assert.Equal(t, "<<EOF>>", eof.String())

	// EOF repeats forever.
	assert.Equal(t, eof, l.Next())
	assert.Equal(t, eof, l.Next())
}

func TestEmptySource(t *testing.T) {
	tokens, err := Tokens("", "test.ren")
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.True(t, tokens[0].EOF())
	assert.Equal(t, Position{Filename: "test.ren", Line: 1, Column: 1}, tokens[0].Pos)
}
