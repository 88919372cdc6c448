// Package lexer turns source text into a position-tagged token stream.
//
// The lexer is a state machine over a lazy stream of characters. Each token
// records its kind, its exact source image, its decoded value where one
// makes sense, and the 1-based line and column of its first character.
// Whitespace, newlines and comments are emitted as tokens; the parser
// decides what to elide.
//
// Lexical errors (an invalid character, an unterminated string or character
// literal, an unterminated block comment) are always fatal and immediate.
// They are reported via panic with an *Error; Tokens recovers them into an
// ordinary error return.
package lexer

import (
	"strconv"
	"strings"

	"github.com/renlang/parser/stream"
)

// ReservedWords is the full set of identifiers classified as reserved.
var ReservedWords = map[string]bool{
	"any": true, "as": true, "bool": true, "break": true, "byte": true,
	"catch": true, "char": true, "const": true, "continue": true,
	"default": true, "do": true, "double": true, "else": true,
	"export": true, "f32": true, "f64": true, "false": true,
	"finally": true, "float": true, "for": true, "from": true,
	"func": true, "i8": true, "i16": true, "i32": true, "i64": true,
	"if": true, "import": true, "in": true, "int": true, "integer": true,
	"long": true, "return": true, "short": true, "string": true,
	"throw": true, "true": true, "try": true, "type": true,
	"u8": true, "u16": true, "u32": true, "u64": true,
	"void": true, "while": true,
}

// operChars are the characters an operator may be composed of.
const operChars = "~!$%^&*+-=|<>?/"

// symbolChars are the single-character structural symbols. The equals sign
// and fat arrow are handled separately because '=' is also an operator
// character; semicolons are handled by the newline path.
const symbolChars = ":{}()[],.`"

// escapeTable maps single-character escapes to their control characters.
// Any other escaped character escapes to itself.
var escapeTable = map[rune]string{
	'n': "\n", 'r': "\r", 't': "\t", 'f': "\f", 'b': "\b", 'v': "\v",
}

// A Lexer scans one source text. It is not safe for concurrent use.
type Lexer struct {
	chars stream.Stream[rune]
	pos   Position
	eof   *Token
}

// New returns a Lexer over source. filename is used only for positions.
func New(source, filename string) *Lexer {
	return &Lexer{
		chars: stream.FromString(source),
		pos:   Position{Filename: filename, Line: 1, Column: 1},
	}
}

// Tokens scans all of source and returns the EOF-terminated token slice,
// or the first lexical error.
func Tokens(source, filename string) (tokens []Token, err error) {
	defer func() {
		if msg := recover(); msg != nil {
			if lerr, ok := msg.(*Error); ok {
				err = lerr
				return
			}
			panic(msg)
		}
	}()
	l := New(source, filename)
	for {
		tok := l.Next()
		tokens = append(tokens, tok)
		if tok.EOF() {
			return tokens, nil
		}
	}
}

// Next consumes and returns the next token. Once the end of the source is
// reached Next returns the same EOF token on every call. Lexical errors
// are reported by panicking with an *Error.
func (l *Lexer) Next() Token {
	if l.eof != nil {
		return *l.eof
	}
	start := l.pos
	var img strings.Builder

	ch, ok := l.peek(0)
	if !ok {
		tok := Token{Kind: EOF, Pos: start}
		l.eof = &tok
		return tok
	}
	ch1, _ := l.peek(1)

	switch {
	case ch == '/' && ch1 == '/':
		return l.lineComment(start, &img)
	case ch == '/' && ch1 == '*':
		return l.blockComment(start, &img)
	case isIdentStart(ch):
		return l.identifier(start, &img)
	case isDigit(ch):
		return l.number(start, &img)
	case ch == '"':
		return l.stringLit(start, &img)
	case ch == '\'':
		return l.charLit(start, &img)
	case ch == '\n' || ch == ';' || ch == '\r' && ch1 == '\n':
		return l.newline(start, &img)
	case ch == ' ' || ch == '\t':
		return l.whitespace(start, &img)
	case ch == '=':
		return l.equals(start, &img)
	case strings.ContainsRune(symbolChars, ch):
		l.advance(&img)
		return Token{Kind: Symbol, Image: img.String(), Pos: start}
	case isOper(ch):
		return l.operator(start, &img)
	default:
		Panicf(start, "Invalid character %q", ch)
		return Token{}
	}
}

func (l *Lexer) peek(n int) (rune, bool) {
	return l.chars.Peek(n)
}

// advance consumes one character, appends it to img and updates the
// position bookkeeping. This is the only place the character stream is
// shifted.
func (l *Lexer) advance(img *strings.Builder) rune {
	ch, rest := l.chars.Shift()
	l.chars = rest
	img.WriteRune(ch)
	l.pos.Offset++
	if ch == '\n' {
		l.pos.Line++
		l.pos.Column = 1
	} else {
		l.pos.Column++
	}
	return ch
}

// A line comment runs from "//" to the end of the line. The terminating
// newline belongs to the comment. Consuming a line comment cannot fail.
func (l *Lexer) lineComment(start Position, img *strings.Builder) Token {
	for {
		ch, ok := l.peek(0)
		if !ok {
			break
		}
		l.advance(img)
		if ch == '\n' {
			break
		}
	}
	return Token{Kind: Comment, Image: img.String(), Pos: start}
}

// A block comment runs from "/*" to "*/". Nesting is not supported, and an
// unterminated block comment is a lexical error.
func (l *Lexer) blockComment(start Position, img *strings.Builder) Token {
	l.advance(img) // '/'
	l.advance(img) // '*'
	for {
		ch, ok := l.peek(0)
		if !ok {
			Panic(l.pos, "Unterminated comment")
		}
		l.advance(img)
		if ch == '*' {
			if next, ok := l.peek(0); ok && next == '/' {
				l.advance(img)
				return Token{Kind: Comment, Image: img.String(), Pos: start}
			}
		}
	}
}

func (l *Lexer) identifier(start Position, img *strings.Builder) Token {
	for {
		ch, ok := l.peek(0)
		if !ok || !isIdentChar(ch) {
			break
		}
		l.advance(img)
	}
	kind := Ident
	if ReservedWords[img.String()] {
		kind = Reserved
	}
	return Token{Kind: kind, Image: img.String(), Pos: start}
}

// number scans a hex, binary, decimal or float literal. The hex and binary
// prefixes only apply when at least one digit of the base follows, and a
// '.' or exponent only begins a float when the character after it is a
// digit, so "1.method()" and "0x" fall back to plain decimal integers.
func (l *Lexer) number(start Position, img *strings.Builder) Token {
	first := l.advance(img)
	if first == '0' {
		if ch, ok := l.peek(0); ok && (ch == 'x' || ch == 'X') {
			if d, ok := l.peek(1); ok && isHexDigit(d) {
				l.advance(img)
				l.digits(img, isHexDigit)
				v, _ := strconv.ParseInt(img.String()[2:], 16, 64)
				return Token{Kind: IntLit, Image: img.String(), Value: v, Pos: start}
			}
		}
		if ch, ok := l.peek(0); ok && (ch == 'b' || ch == 'B') {
			if d, ok := l.peek(1); ok && (d == '0' || d == '1') {
				l.advance(img)
				l.digits(img, func(r rune) bool { return r == '0' || r == '1' })
				v, _ := strconv.ParseInt(img.String()[2:], 2, 64)
				return Token{Kind: IntLit, Image: img.String(), Value: v, Pos: start}
			}
		}
	}
	l.digits(img, isDigit)
	isFloat := false
	if ch, ok := l.peek(0); ok && ch == '.' {
		if d, ok := l.peek(1); ok && isDigit(d) {
			isFloat = true
			l.advance(img)
			l.digits(img, isDigit)
		}
	}
	if ch, ok := l.peek(0); ok && (ch == 'e' || ch == 'E') {
		if d, ok := l.peek(1); ok && isDigit(d) {
			isFloat = true
			l.advance(img)
			l.digits(img, isDigit)
		}
	}
	if isFloat {
		v, _ := strconv.ParseFloat(img.String(), 64)
		return Token{Kind: FloatLit, Image: img.String(), Value: v, Pos: start}
	}
	v, _ := strconv.ParseInt(img.String(), 10, 64)
	return Token{Kind: IntLit, Image: img.String(), Value: v, Pos: start}
}

func (l *Lexer) digits(img *strings.Builder, match func(rune) bool) {
	for {
		ch, ok := l.peek(0)
		if !ok || !match(ch) {
			break
		}
		l.advance(img)
	}
}

func (l *Lexer) stringLit(start Position, img *strings.Builder) Token {
	l.advance(img) // opening quote
	var val strings.Builder
	for {
		ch, ok := l.peek(0)
		if !ok {
			Panic(l.pos, "Unterminated string")
		}
		if ch == '"' {
			l.advance(img)
			return Token{Kind: StringLit, Image: img.String(), Value: val.String(), Pos: start}
		}
		if ch == '\\' {
			val.WriteString(l.escape(img))
			continue
		}
		l.advance(img)
		val.WriteRune(ch)
	}
}

func (l *Lexer) charLit(start Position, img *strings.Builder) Token {
	l.advance(img) // opening quote
	ch, ok := l.peek(0)
	if !ok {
		Panic(l.pos, "Unterminated character")
	}
	if ch == '\'' {
		Panic(l.pos, "Empty character")
	}
	var val string
	if ch == '\\' {
		val = l.escape(img)
	} else {
		l.advance(img)
		val = string(ch)
	}
	closing, ok := l.peek(0)
	if !ok || closing != '\'' {
		Panic(l.pos, "Unterminated character")
	}
	l.advance(img)
	var value rune
	if r := []rune(val); len(r) > 0 {
		value = r[0]
	}
	return Token{Kind: CharLit, Image: img.String(), Value: value, Pos: start}
}

// escape decodes the escape sequence whose backslash is at the cursor and
// returns the decoded text. An invalid escape form falls back to emitting
// the escaped character literally.
func (l *Lexer) escape(img *strings.Builder) string {
	l.advance(img) // backslash
	ch, ok := l.peek(0)
	if !ok {
		// Dangling backslash at end of input; the caller reports the
		// unterminated literal.
		return ""
	}
	switch {
	case escapeTable[ch] != "":
		l.advance(img)
		return escapeTable[ch]
	case ch == 'x' || ch == 'X':
		d1, ok1 := l.peek(1)
		d2, ok2 := l.peek(2)
		if ok1 && ok2 && isHexDigit(d1) && isHexDigit(d2) {
			l.advance(img)
			l.advance(img)
			l.advance(img)
			code, _ := strconv.ParseUint(string([]rune{d1, d2}), 16, 32)
			return string(rune(code))
		}
	case ch == 'u' || ch == 'U':
		if s, ok := l.unicodeEscape(img); ok {
			return s
		}
	}
	l.advance(img)
	return string(ch)
}

// unicodeEscape decodes \uXXXX, \u{XXXXX} or \u{XXXXXX}, tried in that
// order. The cursor is on the 'u'.
func (l *Lexer) unicodeEscape(img *strings.Builder) (string, bool) {
	hex4 := l.chars.PeekRange(1, 4)
	if len(hex4) == 4 && allHex(hex4) {
		for i := 0; i < 5; i++ { // u plus four digits
			l.advance(img)
		}
		code, _ := strconv.ParseUint(string(hex4), 16, 32)
		return string(rune(code)), true
	}
	if brace, ok := l.peek(1); ok && brace == '{' {
		for _, n := range []int{5, 6} {
			digits := l.chars.PeekRange(2, n)
			if len(digits) != n || !allHex(digits) {
				continue
			}
			if closing, ok := l.peek(2 + n); !ok || closing != '}' {
				continue
			}
			for i := 0; i < n+3; i++ { // u { digits }
				l.advance(img)
			}
			code, _ := strconv.ParseUint(string(digits), 16, 32)
			return string(rune(code)), true
		}
	}
	return "", false
}

// newline scans "\n", "\r\n" or ";". All three produce a Newline token;
// the line counter only moves for an actual line break.
func (l *Lexer) newline(start Position, img *strings.Builder) Token {
	ch := l.advance(img)
	if ch == '\r' {
		l.advance(img) // the '\n'
	}
	return Token{Kind: Newline, Image: img.String(), Pos: start}
}

func (l *Lexer) whitespace(start Position, img *strings.Builder) Token {
	for {
		ch, ok := l.peek(0)
		if !ok || ch != ' ' && ch != '\t' {
			break
		}
		l.advance(img)
	}
	return Token{Kind: Whitespace, Image: img.String(), Pos: start}
}

// equals disambiguates '=': "=>" followed by an operator character is an
// operator, bare "=>" is a symbol, '=' followed by an operator character
// is an operator, and a bare '=' is a symbol.
func (l *Lexer) equals(start Position, img *strings.Builder) Token {
	l.advance(img)
	if ch, ok := l.peek(0); ok && ch == '>' {
		l.advance(img)
		if next, ok := l.peek(0); ok && isOper(next) {
			return l.operatorRun(start, img)
		}
		return Token{Kind: Symbol, Image: img.String(), Pos: start}
	}
	if ch, ok := l.peek(0); ok && isOper(ch) {
		return l.operatorRun(start, img)
	}
	return Token{Kind: Symbol, Image: img.String(), Pos: start}
}

// operator scans a maximal run of operator characters, except that a lone
// '<' or '>' is never extended so generic-argument delimiters stay
// single-character.
func (l *Lexer) operator(start Position, img *strings.Builder) Token {
	ch := l.advance(img)
	if ch == '<' || ch == '>' {
		return Token{Kind: Oper, Image: img.String(), Pos: start}
	}
	return l.operatorRun(start, img)
}

func (l *Lexer) operatorRun(start Position, img *strings.Builder) Token {
	for {
		ch, ok := l.peek(0)
		if !ok || !isOper(ch) {
			break
		}
		l.advance(img)
	}
	return Token{Kind: Oper, Image: img.String(), Pos: start}
}

func isIdentStart(ch rune) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch == '_'
}

func isIdentChar(ch rune) bool {
	return isIdentStart(ch) || isDigit(ch)
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch rune) bool {
	return isDigit(ch) || ch >= 'a' && ch <= 'f' || ch >= 'A' && ch <= 'F'
}

func allHex(runes []rune) bool {
	for _, r := range runes {
		if !isHexDigit(r) {
			return false
		}
	}
	return true
}

func isOper(ch rune) bool {
	return strings.ContainsRune(operChars, ch)
}
