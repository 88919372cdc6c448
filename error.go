package parser

import (
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/renlang/parser/lexer"
)

// Severity orders diagnostics from chatter to abort.
type Severity int

const (
	SeverityVerbose Severity = iota + 1
	SeverityMessage
	SeverityWarning
	SeverityError
	SeverityFatal
)

var severityNames = map[Severity]string{
	SeverityVerbose: "Verbose",
	SeverityMessage: "Message",
	SeverityWarning: "Warning",
	SeverityError:   "Error",
	SeverityFatal:   "Fatal",
}

func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Severity(%d)", int(s))
}

// ErrGrammarDefect marks panics caused by an unsound grammar
// description rather than by bad input. These are deliberately not
// recovered by ParseString: a defective grammar is a programming error.
var ErrGrammarDefect = errors.New("unsound grammar description")

// A Diagnostic is a positioned message about the source. End is the
// zero Position for a point diagnostic; a nonzero End makes it a range.
type Diagnostic struct {
	Message  string
	Severity Severity
	Pos      lexer.Position
	End      lexer.Position
}

// Errorf creates an error-severity diagnostic at a point.
func Errorf(pos lexer.Position, format string, args ...interface{}) *Diagnostic {
	return &Diagnostic{
		Message:  fmt.Sprintf(format, args...),
		Severity: SeverityError,
		Pos:      pos,
	}
}

// RangeErrorf creates an error-severity diagnostic spanning [start, end).
func RangeErrorf(start, end lexer.Position, format string, args ...interface{}) *Diagnostic {
	d := Errorf(start, format, args...)
	d.End = end
	return d
}

// Position returns the diagnostic's start position.
func (d *Diagnostic) Position() lexer.Position {
	return d.Pos
}

// String renders the diagnostic for humans. The message is capitalized
// and followed by its location:
//
//	Expected an expression (Line 3, Column 14)
//	Unreachable code (Line 3, Column 14)-(Line 5, Column 2)
func (d *Diagnostic) String() string {
	msg := capitalize(d.Message)
	if d.End.Line != 0 {
		return fmt.Sprintf("%s (Line %d, Column %d)-(Line %d, Column %d)",
			msg, d.Pos.Line, d.Pos.Column, d.End.Line, d.End.Column)
	}
	return fmt.Sprintf("%s (Line %d, Column %d)", msg, d.Pos.Line, d.Pos.Column)
}

func (d *Diagnostic) Error() string {
	return d.String()
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
