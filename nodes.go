package parser

import (
	"fmt"

	"github.com/renlang/parser/lexer"
	"github.com/renlang/parser/stream"
)

// state is the parser's position plus its failure mode. It is passed
// and returned by value: abandoning a speculative attempt is just a
// matter of not using the state it returned.
type state struct {
	stream stream.Stream[lexer.Token]

	// speculative failures are silent and rewind for free; committed
	// failures become fatal diagnostics.
	speculative bool

	// suffixOf is set while parsing the suffixes of a left-recursive
	// rule. A reference back to that rule parses only its base
	// alternatives, which is what left-associates the suffix fold.
	// Entering any other nonterminal clears it.
	suffixOf NonTerminal

	depth int
}

// failure is a silent, backtrackable failure carrying the token that
// did not match.
type failure struct {
	token lexer.Token
}

// result of one expression: a token leaf or a node, never both.
type result struct {
	token *lexer.Token
	node  *Node
}

func (r result) child(name string) Child {
	if r.token != nil {
		return Child{Name: name, Token: r.token}
	}
	return Child{Name: name, Node: r.node}
}

// next shifts the next significant token, skipping elided kinds. The
// token stream repeats EOF forever, so next never runs dry.
func (p *Parser) next(st state) (lexer.Token, state) {
	for {
		tok, rest := st.stream.Shift()
		st.stream = rest
		if tok.EOF() || !p.elide[tok.Kind] {
			return tok, st
		}
	}
}

// head returns the next significant token without consuming it.
func (p *Parser) head(st state) lexer.Token {
	tok, _ := p.next(st)
	return tok
}

func (p *Parser) parseExpr(expr Expression, st state) (result, state, *failure) {
	switch e := expr.(type) {
	case *Terminal:
		tok, next := p.next(st)
		if tok.Kind != e.Kind {
			return result{}, st, &failure{tok}
		}
		st.stream = next.stream
		return result{token: &tok}, st, nil

	case *Literal:
		tok, next := p.next(st)
		if tok.EOF() || tok.Image != e.Image {
			return result{}, st, &failure{tok}
		}
		st.stream = next.stream
		return result{token: &tok}, st, nil

	case *Ref:
		return p.parseNonTerminal(e.Name, st)

	case *Seq:
		node, next, fail := p.parseSeq("", e, st)
		if fail != nil {
			return result{}, st, fail
		}
		st.stream = next.stream
		return result{node: node}, st, nil

	case *Alt:
		return p.parseAlt(e, st)

	case *LeftRec:
		return p.parseLeftRec("", e, st)
	}
	panic(fmt.Errorf("%w: unknown expression %T", ErrGrammarDefect, expr))
}

// parseNonTerminal parses the named rule. Named sequences become nodes
// directly; named choices and left-recursive sets wrap their winning
// result as the sole child of a node carrying the rule's name.
func (p *Parser) parseNonTerminal(name NonTerminal, st state) (result, state, *failure) {
	expr, ok := p.grammar.rules[name]
	if !ok {
		panic(fmt.Errorf("%w: reference to unknown nonterminal %q", ErrGrammarDefect, name))
	}
	p.tracef(st, "%s: next=%q", name, p.head(st).String())

	baseOnly := st.suffixOf == name
	inner := st
	inner.suffixOf = ""
	inner.depth++

	var res result
	var next state
	var fail *failure
	switch e := expr.(type) {
	case *Seq:
		var node *Node
		node, next, fail = p.parseSeq(name, e, inner)
		res = result{node: node}
	case *Alt:
		res, next, fail = p.parseAlt(e, inner)
		res = wrap(name, res)
	case *LeftRec:
		if baseOnly {
			res, next, fail = p.parseAlt(&Alt{Exprs: e.Bases}, inner)
			res = wrap(name, res)
		} else {
			res, next, fail = p.parseLeftRec(name, e, inner)
		}
	default:
		panic(fmt.Errorf("%w: rule %q is not a sequence, choice or left-recursive set", ErrGrammarDefect, name))
	}
	if fail != nil {
		return result{}, st, fail
	}
	st.stream = next.stream
	return res, st, nil
}

// wrap nests a result as the sole child of a node named name.
func wrap(name NonTerminal, res result) result {
	return result{node: &Node{NonTerminal: name, Children: []Child{res.child("")}}}
}

func (p *Parser) parseSeq(name NonTerminal, seq *Seq, st state) (*Node, state, *failure) {
	node := &Node{NonTerminal: name}
	for i := range seq.Entries {
		entry := &seq.Entries[i]
		fork := st
		fork.speculative = entry.Optional || st.speculative
		children, next, fail := p.parseEntry(entry, fork)
		if fail != nil {
			if entry.Optional {
				continue
			}
			if !st.speculative && entry.Err != "" {
				panic(p.fatal(entry.Err, fail.token))
			}
			return nil, st, fail
		}
		node.Children = append(node.Children, children...)
		st.stream = next.stream
		if entry.Decides && st.speculative {
			p.tracef(st, "%s: committed at %q", name, p.head(st).String())
			st.speculative = false
		}
	}
	return node, st, nil
}

// parseEntry parses one sequence entry, honouring its repetition mode
// and separator. It returns the children the entry contributes.
func (p *Parser) parseEntry(entry *Entry, st state) ([]Child, state, *failure) {
	if entry.Repeat == RepeatNone {
		res, next, fail := p.parseExpr(entry.Expr, st)
		if fail != nil {
			return nil, st, fail
		}
		return entryChildren(entry, res), next, nil
	}

	// First element. Mandatory for OneOrMore; for ZeroOrMore its
	// absence is a zero-length match, not a failure.
	first := st
	if entry.Repeat == ZeroOrMore {
		first.speculative = true
	}
	res, next, fail := p.parseExpr(entry.Expr, first)
	if fail != nil {
		if entry.Repeat == OneOrMore {
			return nil, st, fail
		}
		return nil, st, nil
	}
	out := entryChildren(entry, res)
	st.stream = next.stream

	for {
		if entry.Separator != nil {
			sep := st
			sep.speculative = true
			sres, snext, sfail := p.parseExpr(entry.Separator, sep)
			if sfail != nil {
				return out, st, nil
			}
			// The separator committed us to another element. A list
			// ending in a dangling separator is malformed input.
			mand := st
			mand.stream = snext.stream
			res, next, fail = p.parseExpr(entry.Expr, mand)
			if fail != nil {
				if st.speculative {
					return nil, st, fail
				}
				if entry.Err != "" {
					panic(p.fatal(entry.Err, fail.token))
				}
				panic(p.unexpected(fail.token))
			}
			out = append(out, sres.child(""))
			out = append(out, entryChildren(entry, res)...)
			st.stream = next.stream
			continue
		}

		rep := st
		rep.speculative = true
		res, next, fail = p.parseExpr(entry.Expr, rep)
		if fail != nil {
			return out, st, nil
		}
		out = append(out, entryChildren(entry, res)...)
		st.stream = next.stream
	}
}

func entryChildren(entry *Entry, res result) []Child {
	if entry.Flatten && res.node != nil {
		return res.node.Children
	}
	return []Child{res.child(entry.Field)}
}

// parseAlt tries each alternative in a speculative fork. The winner's
// stream is adopted; everything else about the fork is discarded.
func (p *Parser) parseAlt(alt *Alt, st state) (result, state, *failure) {
	for _, expr := range alt.Exprs {
		fork := st
		fork.speculative = true
		res, next, fail := p.parseExpr(expr, fork)
		if fail == nil {
			st.stream = next.stream
			return res, st, nil
		}
		p.tracef(st, "backtrack: %s", stringer(expr))
	}
	return result{}, st, &failure{p.head(st)}
}

// parseLeftRec parses one base alternative and then folds suffixes
// onto it for as long as one matches. Each fold injects the
// accumulated node as the suffix's first child, so "1+2+3" comes out
// as ((1+2)+3).
func (p *Parser) parseLeftRec(name NonTerminal, rec *LeftRec, st state) (result, state, *failure) {
	res, next, fail := p.parseAlt(&Alt{Exprs: rec.Bases}, st)
	if fail != nil {
		return result{}, st, fail
	}
	st.stream = next.stream

	cur := res
	if name != "" {
		cur = wrap(name, cur)
	}
	for {
		matched := false
		for i := range rec.Suffixes {
			suffix := &rec.Suffixes[i]
			seqName, seq, ok := resolveSeq(p.grammar, suffix.Expr)
			if !ok {
				panic(fmt.Errorf("%w: left-recursive suffix %s is not a sequence", ErrGrammarDefect, stringer(suffix.Expr)))
			}
			fork := st
			fork.speculative = true
			// Direct self-references inside the suffix parse base
			// alternatives only; anything else right-recurses and the
			// fold no longer left-associates.
			fork.suffixOf = name
			node, snext, sfail := p.parseSeq(seqName, seq, fork)
			if sfail != nil {
				continue
			}
			base := cur.child(suffix.BaseField)
			node.Children = append([]Child{base}, node.Children...)
			cur = result{node: node}
			if name != "" {
				cur = wrap(name, cur)
			}
			st.stream = snext.stream
			matched = true
			break
		}
		if !matched {
			return cur, st, nil
		}
	}
}

func (p *Parser) fatal(key string, tok lexer.Token) *Diagnostic {
	return Errorf(tok.Pos, "%s", p.grammar.message(key, tok))
}

func (p *Parser) unexpected(tok lexer.Token) *Diagnostic {
	return Errorf(tok.Pos, "unexpected %q token", tok.String())
}
