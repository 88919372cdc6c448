package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/renlang/parser/lexer"
)

func TestDiagnosticString(t *testing.T) {
	d := Errorf(lexer.Position{Line: 3, Column: 14}, "expected an expression")
	assert.Equal(t, "Expected an expression (Line 3, Column 14)", d.String())
	assert.Equal(t, d.String(), d.Error())
}

func TestDiagnosticRangeString(t *testing.T) {
	d := RangeErrorf(
		lexer.Position{Line: 3, Column: 14},
		lexer.Position{Line: 5, Column: 2},
		"unreachable code",
	)
	assert.Equal(t, "Unreachable code (Line 3, Column 14)-(Line 5, Column 2)", d.String())
}

func TestDiagnosticKeepsCapitalization(t *testing.T) {
	d := Errorf(lexer.Position{Line: 1, Column: 1}, `expected ")"`)
	assert.Equal(t, `Expected ")" (Line 1, Column 1)`, d.String())

	d = Errorf(lexer.Position{Line: 1, Column: 1}, "EOF reached")
	assert.Equal(t, "EOF reached (Line 1, Column 1)", d.String())
}

func TestSeverityOrderAndNames(t *testing.T) {
	assert.True(t, SeverityVerbose < SeverityMessage)
	assert.True(t, SeverityMessage < SeverityWarning)
	assert.True(t, SeverityWarning < SeverityError)
	assert.True(t, SeverityError < SeverityFatal)

	assert.Equal(t, "Warning", SeverityWarning.String())
	assert.Equal(t, "Fatal", SeverityFatal.String())
}

func TestDiagnosticPosition(t *testing.T) {
	pos := lexer.Position{Filename: "a.ren", Offset: 7, Line: 2, Column: 3}
	d := Errorf(pos, "oops")
	assert.Equal(t, pos, d.Position())
	assert.Equal(t, SeverityError, d.Severity)
}
