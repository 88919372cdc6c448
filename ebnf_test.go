package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const arithEBNF = `
Sum   = Term { "+" Term } .
Term  = IntLit | Ident | Paren .
Paren = "(" Sum ")" .
`

func TestFromEBNF(t *testing.T) {
	g, err := FromEBNF(arithEBNF)
	require.NoError(t, err)

	p := MustNew(g, "Sum")
	src := "(1 + x) + 2"
	node := parse(t, p, src)
	assert.Equal(t, NonTerminal("Sum"), node.NonTerminal)
	assert.Equal(t, src, node.Source(src))

	// Name references are recorded under the lowered production name.
	terms := node.ChildNodes("term")
	require.Len(t, terms, 2)
	assert.Equal(t, "(1 + x)", terms[0].Source(src))
	assert.Equal(t, "2", terms[1].Source(src))
}

func TestFromEBNFTerminalFields(t *testing.T) {
	g, err := FromEBNF(`Decl = "let" Ident "=" IntLit .`)
	require.NoError(t, err)
	p := MustNew(g, "Decl")
	node := parse(t, p, "let answer = 42")
	assert.Equal(t, "answer", node.Child("ident").Token.Image)
	assert.Equal(t, int64(42), node.Child("intLit").Token.Value)
}

func TestFromEBNFOption(t *testing.T) {
	g, err := FromEBNF(`Ret = "return" [ IntLit ] .`)
	require.NoError(t, err)
	p := MustNew(g, "Ret")
	node := parse(t, p, "return 1")
	require.NotNil(t, node.Child("intLit"))
	node = parse(t, p, "return")
	assert.Nil(t, node.Child("intLit"))
}

// Loaded grammars carry default "expected ..." messages, so malformed
// input produces diagnostics rather than silent failures.
func TestFromEBNFDefaultMessages(t *testing.T) {
	g, err := FromEBNF(arithEBNF)
	require.NoError(t, err)
	p := MustNew(g, "Sum")

	_, diagnostics := p.ParseString("test.ren", "(1")
	require.Len(t, diagnostics, 1)
	assert.Equal(t, `Expected ")" (Line 1, Column 3)`, diagnostics[0].String())

	_, diagnostics = p.ParseString("test.ren", ")")
	require.Len(t, diagnostics, 1)
	assert.Equal(t, "Expected Term (Line 1, Column 1)", diagnostics[0].String())
}

func TestFromEBNFRejectsTokenKindProduction(t *testing.T) {
	_, err := FromEBNF(`Ident = "x" .`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shadows a token kind")
}

func TestFromEBNFRejectsAllChoiceSequence(t *testing.T) {
	_, err := FromEBNF(`
A = B .
B = "x" | "y" .
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decision point")
}

func TestFromEBNFRejectsCharacterRanges(t *testing.T) {
	_, err := FromEBNF(`A = "a" … "z" .`)
	require.Error(t, err)
}

func TestFromEBNFSyntaxError(t *testing.T) {
	_, err := FromEBNF(`A = .`)
	require.Error(t, err)
}
