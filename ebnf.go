package parser

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/exp/ebnf"

	"github.com/renlang/parser/lexer"
)

// FromEBNF builds a Grammar from an EBNF description in the syntax of
// golang.org/x/exp/ebnf.
//
// Production names that match a token kind (Ident, IntLit, Oper, ...)
// may not be defined; using one matches a token of that kind. A quoted
// string matches a token by exact image. Options become optional
// entries, repetitions become zero-or-more entries, and every other
// production name becomes a nonterminal reference recorded under the
// name with its first letter lowered.
//
// EBNF has no decision-point syntax, so the first entry of each
// sequence that does not resolve to a choice is marked as the decision
// point, preferring non-optional entries. Sequences where every entry
// resolves to a choice are rejected.
func FromEBNF(source string) (*Grammar, error) {
	ast, err := ebnf.Parse("<grammar>", strings.NewReader(source))
	if err != nil {
		return nil, err
	}

	conv := &converter{}
	builder := NewBuilder()
	names := make([]string, 0, len(ast))
	for name := range ast {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, ok := lexer.KindNamed(name); ok {
			return nil, fmt.Errorf("production %q shadows a token kind", name)
		}
		expr, err := conv.rule(ast[name].Expr)
		if err != nil {
			return nil, fmt.Errorf("production %q: %w", name, err)
		}
		builder.Rule(NonTerminal(name), expr)
	}

	grammar := &Grammar{rules: builder.rules}
	for _, seq := range conv.seqs {
		if err := markDecision(grammar, seq); err != nil {
			return nil, err
		}
	}
	return builder.Build()
}

// MustFromEBNF is like FromEBNF but panics on error.
func MustFromEBNF(source string) *Grammar {
	g, err := FromEBNF(source)
	if err != nil {
		panic(err)
	}
	return g
}

// converter tracks every sequence it creates so decision points can be
// assigned once all rules are known.
type converter struct {
	seqs []*Seq
}

// rule converts a production body, wrapping loose expressions in a
// single-entry sequence so that every rule is a Seq or an Alt.
func (c *converter) rule(expr ebnf.Expression) (Expression, error) {
	switch expr.(type) {
	case ebnf.Alternative, ebnf.Sequence:
		return c.convert(expr)
	}
	entry, err := c.entry(expr)
	if err != nil {
		return nil, err
	}
	seq := &Seq{Entries: []Entry{entry}}
	c.seqs = append(c.seqs, seq)
	return seq, nil
}

func (c *converter) convert(expr ebnf.Expression) (Expression, error) {
	switch e := expr.(type) {
	case ebnf.Alternative:
		alt := &Alt{}
		for _, sub := range e {
			conv, err := c.convert(sub)
			if err != nil {
				return nil, err
			}
			alt.Exprs = append(alt.Exprs, conv)
		}
		return alt, nil

	case ebnf.Sequence:
		seq := &Seq{}
		for _, sub := range e {
			entry, err := c.entry(sub)
			if err != nil {
				return nil, err
			}
			seq.Entries = append(seq.Entries, entry)
		}
		c.seqs = append(c.seqs, seq)
		return seq, nil

	case *ebnf.Name:
		if kind, ok := lexer.KindNamed(e.String); ok {
			return &Terminal{Kind: kind}, nil
		}
		return &Ref{Name: NonTerminal(e.String)}, nil

	case *ebnf.Token:
		return &Literal{Image: e.String}, nil

	case *ebnf.Group:
		return c.convert(e.Body)

	case *ebnf.Range:
		return nil, fmt.Errorf("character ranges are lexical and have no token-level equivalent")

	case nil:
		return nil, fmt.Errorf("empty production")
	}
	return nil, fmt.Errorf("unsupported EBNF form %T", expr)
}

// entry converts one sequence element, folding option and repetition
// wrappers into entry modifiers.
func (c *converter) entry(expr ebnf.Expression) (Entry, error) {
	switch e := expr.(type) {
	case *ebnf.Option:
		inner, err := c.convert(e.Body)
		if err != nil {
			return Entry{}, err
		}
		entry := c.entryFor(inner)
		entry.Optional = true
		return entry, nil

	case *ebnf.Repetition:
		inner, err := c.convert(e.Body)
		if err != nil {
			return Entry{}, err
		}
		entry := c.entryFor(inner)
		entry.Repeat = ZeroOrMore
		return entry, nil
	}
	inner, err := c.convert(expr)
	if err != nil {
		return Entry{}, err
	}
	return c.entryFor(inner), nil
}

func (c *converter) entryFor(expr Expression) Entry {
	entry := Entry{Expr: expr}
	switch e := expr.(type) {
	case *Ref:
		entry.Field = lowerFirst(string(e.Name))
	case *Terminal:
		entry.Field = lowerFirst(e.Kind.String())
	case *Seq:
		// Grouped subsequences have no name of their own; splice their
		// children into the parent so fields stay addressable.
		entry.Flatten = true
	}
	return entry
}

// markDecision picks the decision point of a loader-built sequence,
// the first entry that does not resolve to a choice, non-optional
// entries first. EBNF carries no message keys, so every mandatory
// entry also gets a default "expected ..." message; without one a
// committed failure would have nowhere to surface.
func markDecision(g *Grammar, seq *Seq) error {
	eligible := -1
	for i := range seq.Entries {
		entry := &seq.Entries[i]
		if !entry.Optional && entry.Err == "" {
			entry.Err = "expected " + stringer(entry.Expr)
		}
		if isChoice(g, entry.Expr, nil) {
			continue
		}
		if !entry.Optional && eligible < 0 {
			entry.Decides = true
			eligible = i
		}
	}
	if eligible >= 0 {
		return nil
	}
	for i := range seq.Entries {
		if !isChoice(g, seq.Entries[i].Expr, nil) {
			seq.Entries[i].Decides = true
			return nil
		}
	}
	return fmt.Errorf("sequence %s has no entry eligible as a decision point", stringer(seq))
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
