package parser

import (
	"strings"

	"github.com/renlang/parser/lexer"
)

// NonTerminal names a grammar rule.
type NonTerminal string

// An Expression is one form in the grammar description. The set is
// closed: Terminal, Literal, Ref, Seq, Alt and LeftRec.
type Expression interface{ expression() }

// Terminal matches a single token of the given kind.
type Terminal struct {
	Kind lexer.TokenKind
}

// Literal matches a single token whose image is exactly Image,
// regardless of kind.
type Literal struct {
	Image string
}

// Ref matches the named nonterminal.
type Ref struct {
	Name NonTerminal
}

// RepeatKind selects the repetition mode of a sequence entry.
type RepeatKind int

const (
	// RepeatNone matches the entry exactly once.
	RepeatNone RepeatKind = iota
	// ZeroOrMore matches the entry any number of times, including zero.
	// The entry as a whole never fails.
	ZeroOrMore
	// OneOrMore matches the entry at least once.
	OneOrMore
)

// An Entry is one step of a sequence: an expression paired with the
// field name its match is recorded under, plus modifiers.
type Entry struct {
	// Field names the matched child in the resulting node. Empty-named
	// children are kept but not addressable by Child.
	Field string
	Expr  Expression

	// Optional entries that fail are skipped without consuming input.
	Optional bool

	// Repeat matches the entry repeatedly, appending one child per
	// match. Matching stops at the first failure.
	Repeat RepeatKind

	// Separator, when set, must match between consecutive repetitions.
	// Separator matches are kept as unnamed children. A separator with
	// no element after it is malformed input, not the end of the list.
	Separator Expression

	// Decides marks this entry as the decision point of its sequence:
	// once it matches, the parser is committed to the sequence and
	// later failures in it are fatal rather than backtrackable.
	Decides bool

	// Err is the message key reported when this entry fails after the
	// sequence has committed. Looked up in the grammar's message table;
	// an unregistered key is reported verbatim.
	Err string

	// Flatten splices the children of a matched node into the parent
	// instead of nesting the node itself.
	Flatten bool
}

// Seq matches its entries in order. Every sequence carries at least one
// decision point; Build rejects sequences without one.
type Seq struct {
	Entries []Entry
}

// Alt tries its alternatives in order; the first to match wins and the
// rest are never attempted. Failed alternatives consume no input.
type Alt struct {
	Exprs []Expression
}

// LeftRec describes a left-recursive rule without left-recursing: one
// of Bases is parsed first, then Suffixes are folded onto it for as
// long as one matches. Folding left-associates chains like "1+2+3".
type LeftRec struct {
	Bases    []Expression
	Suffixes []Suffix
}

// A Suffix is one extension step of a left-recursive rule. Its
// expression must be a sequence (directly or through a Ref); the
// accumulated base node is injected as its first child under BaseField.
type Suffix struct {
	BaseField string
	Expr      Expression
}

func (*Terminal) expression() {}
func (*Literal) expression()  {}
func (*Ref) expression()      {}
func (*Seq) expression()      {}
func (*Alt) expression()      {}
func (*LeftRec) expression()  {}

// A Grammar is an immutable, validated set of rules plus a message
// table for committed-failure diagnostics.
type Grammar struct {
	rules    map[NonTerminal]Expression
	messages map[string]string
}

// Rule returns the expression for the named nonterminal.
func (g *Grammar) Rule(name NonTerminal) (Expression, bool) {
	expr, ok := g.rules[name]
	return expr, ok
}

// message resolves a message key against the offending token. A "%s"
// in the registered format receives the token's image; an unregistered
// key is used as the message verbatim.
func (g *Grammar) message(key string, tok lexer.Token) string {
	format, ok := g.messages[key]
	if !ok {
		return key
	}
	if strings.Contains(format, "%s") {
		return strings.Replace(format, "%s", tok.String(), 1)
	}
	return format
}
