package parser

import "fmt"

// validateRule checks one rule's structural soundness. Validation runs
// once, at Build time, so the engine can assume a well-formed grammar.
func validateRule(g *Grammar, name NonTerminal) error {
	expr := g.rules[name]
	switch expr.(type) {
	case *Seq, *Alt, *LeftRec:
	default:
		return fmt.Errorf("rule %q: body must be a sequence, a choice or a left-recursive set, not %T", name, expr)
	}
	if err := validateExpr(g, expr); err != nil {
		return fmt.Errorf("rule %q: %w", name, err)
	}
	return nil
}

func validateExpr(g *Grammar, expr Expression) error {
	switch e := expr.(type) {
	case *Terminal:
		return nil

	case *Literal:
		if e.Image == "" {
			return fmt.Errorf("literal with empty image")
		}
		return nil

	case *Ref:
		if _, ok := g.rules[e.Name]; !ok {
			return fmt.Errorf("reference to unknown nonterminal %q", e.Name)
		}
		return nil

	case *Seq:
		return validateSeq(g, e)

	case *Alt:
		if len(e.Exprs) == 0 {
			return fmt.Errorf("choice with no alternatives")
		}
		for _, alt := range e.Exprs {
			if err := validateExpr(g, alt); err != nil {
				return err
			}
		}
		return nil

	case *LeftRec:
		if len(e.Bases) == 0 {
			return fmt.Errorf("left-recursive set with no base alternatives")
		}
		for _, base := range e.Bases {
			if err := validateExpr(g, base); err != nil {
				return err
			}
		}
		for _, suffix := range e.Suffixes {
			if suffix.BaseField == "" {
				return fmt.Errorf("left-recursive suffix without a base field name")
			}
			if _, _, ok := resolveSeq(g, suffix.Expr); !ok {
				return fmt.Errorf("left-recursive suffix %s must be a sequence", stringer(suffix.Expr))
			}
			if err := validateExpr(g, suffix.Expr); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("unknown expression %T", expr)
}

func validateSeq(g *Grammar, seq *Seq) error {
	if len(seq.Entries) == 0 {
		return fmt.Errorf("empty sequence")
	}
	decided := false
	for i := range seq.Entries {
		entry := &seq.Entries[i]
		if entry.Expr == nil {
			return fmt.Errorf("sequence entry %q with no expression", entry.Field)
		}
		if entry.Separator != nil && entry.Repeat == RepeatNone {
			return fmt.Errorf("entry %q has a separator but no repetition", entry.Field)
		}
		if entry.Decides {
			decided = true
			// A choice rewinds its own failures, so committing on one
			// would commit before anything has actually matched.
			if isChoice(g, entry.Expr, nil) {
				return fmt.Errorf("decision point %s is a choice", stringer(entry.Expr))
			}
		}
		if err := validateExpr(g, entry.Expr); err != nil {
			return err
		}
		if entry.Separator != nil {
			if err := validateExpr(g, entry.Separator); err != nil {
				return err
			}
		}
	}
	if !decided {
		return fmt.Errorf("sequence %s has no decision point", stringer(seq))
	}
	return nil
}

// isChoice reports whether expr is an Alt or LeftRec, directly or
// through any chain of Refs.
func isChoice(g *Grammar, expr Expression, seen map[NonTerminal]bool) bool {
	switch e := expr.(type) {
	case *Alt, *LeftRec:
		return true
	case *Ref:
		if seen[e.Name] {
			return false
		}
		if seen == nil {
			seen = map[NonTerminal]bool{}
		}
		seen[e.Name] = true
		return isChoice(g, g.rules[e.Name], seen)
	}
	return false
}

// resolveSeq follows Refs until it reaches a sequence, returning the
// sequence and the name of the rule that held it, if any.
func resolveSeq(g *Grammar, expr Expression) (NonTerminal, *Seq, bool) {
	name := NonTerminal("")
	seen := map[NonTerminal]bool{}
	for {
		switch e := expr.(type) {
		case *Seq:
			return name, e, true
		case *Ref:
			if seen[e.Name] {
				return "", nil, false
			}
			seen[e.Name] = true
			name = e.Name
			next, ok := g.rules[e.Name]
			if !ok {
				return "", nil, false
			}
			expr = next
		default:
			return "", nil, false
		}
	}
}
