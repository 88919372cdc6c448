package parser

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
)

// stringer renders an expression roughly as EBNF, for diagnostics and
// trace output.
func stringer(expr Expression) string {
	buf := &bytes.Buffer{}
	visit(buf, expr)
	return buf.String()
}

func visit(buf *bytes.Buffer, expr Expression) {
	switch e := expr.(type) {
	case *Terminal:
		fmt.Fprintf(buf, "%s", e.Kind)

	case *Literal:
		fmt.Fprintf(buf, "%q", e.Image)

	case *Ref:
		fmt.Fprintf(buf, "%s", e.Name)

	case *Seq:
		buf.WriteString("(")
		for i := range e.Entries {
			if i > 0 {
				buf.WriteString(" ")
			}
			visitEntry(buf, &e.Entries[i])
		}
		buf.WriteString(")")

	case *Alt:
		for i, alt := range e.Exprs {
			if i > 0 {
				buf.WriteString(" | ")
			}
			visit(buf, alt)
		}

	case *LeftRec:
		visit(buf, &Alt{Exprs: e.Bases})
		buf.WriteString(" (")
		for i := range e.Suffixes {
			if i > 0 {
				buf.WriteString(" | ")
			}
			visit(buf, e.Suffixes[i].Expr)
		}
		buf.WriteString(")*")

	default:
		fmt.Fprintf(buf, "<%T>", expr)
	}
}

func visitEntry(buf *bytes.Buffer, entry *Entry) {
	if entry.Optional {
		buf.WriteString("[")
	}
	visit(buf, entry.Expr)
	if entry.Separator != nil {
		buf.WriteString(" % ")
		visit(buf, entry.Separator)
	}
	if entry.Optional {
		buf.WriteString("]")
	}
	switch entry.Repeat {
	case ZeroOrMore:
		buf.WriteString("*")
	case OneOrMore:
		buf.WriteString("+")
	}
}

// String renders the grammar's rules in registration-independent,
// alphabetical order.
func (g *Grammar) String() string {
	names := make([]string, 0, len(g.rules))
	for name := range g.rules {
		names = append(names, string(name))
	}
	sort.Strings(names)
	out := &strings.Builder{}
	for _, name := range names {
		fmt.Fprintf(out, "%s = %s .\n", name, stringer(g.rules[NonTerminal(name)]))
	}
	return out.String()
}
