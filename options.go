package parser

import (
	"fmt"
	"io"

	"github.com/tliron/commonlog"

	"github.com/renlang/parser/lexer"
)

// An Option modifies the behaviour of the Parser.
type Option func(p *Parser) error

// Trace mirrors parse events to w, indented by rule nesting depth.
func Trace(w io.Writer) Option {
	return func(p *Parser) error {
		p.trace = w
		return nil
	}
}

// Elide replaces the set of token kinds the parser skips. The default
// is Comment and Whitespace.
func Elide(kinds ...lexer.TokenKind) Option {
	return func(p *Parser) error {
		p.elide = map[lexer.TokenKind]bool{}
		for _, kind := range kinds {
			if kind == lexer.EOF {
				return fmt.Errorf("cannot elide EOF")
			}
			p.elide[kind] = true
		}
		return nil
	}
}

// UseLogger routes engine trace logging through logger instead of the
// default "ren.parser" logger.
func UseLogger(logger commonlog.Logger) Option {
	return func(p *Parser) error {
		p.log = logger
		return nil
	}
}
