package parser

import (
	"fmt"
	"io"

	"github.com/tliron/commonlog"

	"github.com/renlang/parser/lexer"
	"github.com/renlang/parser/stream"
)

// A Parser executes a grammar description against a token stream.
// Parsers are immutable once constructed and safe for concurrent use.
type Parser struct {
	grammar *Grammar
	root    NonTerminal
	elide   map[lexer.TokenKind]bool
	trace   io.Writer
	log     commonlog.Logger
}

// New constructs a Parser rooted at the given nonterminal.
//
// By default Comment and Whitespace tokens are elided; Newline tokens
// are kept, so grammars can be newline-sensitive.
func New(grammar *Grammar, root NonTerminal, options ...Option) (*Parser, error) {
	if _, ok := grammar.rules[root]; !ok {
		return nil, fmt.Errorf("unknown root nonterminal %q", root)
	}
	p := &Parser{
		grammar: grammar,
		root:    root,
		elide:   map[lexer.TokenKind]bool{lexer.Comment: true, lexer.Whitespace: true},
		log:     commonlog.GetLogger("ren.parser"),
	}
	for _, option := range options {
		if err := option(p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// MustNew is like New but panics on error.
func MustNew(grammar *Grammar, root NonTerminal, options ...Option) *Parser {
	p, err := New(grammar, root, options...)
	if err != nil {
		panic(err)
	}
	return p
}

// Root returns the parser's root nonterminal.
func (p *Parser) Root() NonTerminal {
	return p.root
}

// Parse reads and parses r.
func (p *Parser) Parse(filename string, r io.Reader) (*Node, []*Diagnostic) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, []*Diagnostic{{
			Message:  err.Error(),
			Severity: SeverityFatal,
			Pos:      lexer.Position{Filename: filename, Line: 1, Column: 1},
		}}
	}
	return p.ParseString(filename, string(data))
}

// ParseString parses source against the root nonterminal. On success
// the returned node spans every significant token of the source; input
// left over after the root is itself a diagnostic. Lexing is lazy and
// interleaved with parsing, so a lexical error in a region the parser
// never reaches is never raised.
//
// Defects in the grammar description, as opposed to bad input, panic
// with an error wrapping ErrGrammarDefect and are not recovered here.
func (p *Parser) ParseString(filename, source string) (node *Node, diagnostics []*Diagnostic) {
	defer func() {
		switch err := recover().(type) {
		case nil:
		case *Diagnostic:
			node, diagnostics = nil, []*Diagnostic{err}
		case *lexer.Error:
			node, diagnostics = nil, []*Diagnostic{{
				Message:  err.Message,
				Severity: SeverityFatal,
				Pos:      err.Pos,
			}}
		default:
			panic(err)
		}
	}()

	lex := lexer.New(source, filename)
	st := state{stream: stream.New(func() (lexer.Token, bool) {
		return lex.Next(), true
	})}
	res, next, fail := p.parseNonTerminal(p.root, st)
	if fail != nil {
		panic(fmt.Errorf("%w: failure on %q escaped the root nonterminal %q without a diagnostic",
			ErrGrammarDefect, fail.token.String(), p.root))
	}
	if tok := p.head(next); !tok.EOF() {
		panic(p.unexpected(tok))
	}
	return res.node, nil
}
