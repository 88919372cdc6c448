package parser

import "fmt"

// A Builder accumulates rules and messages, then validates the whole
// grammar once at Build time.
type Builder struct {
	rules    map[NonTerminal]Expression
	order    []NonTerminal
	messages map[string]string
	errs     []error
}

// NewBuilder returns an empty grammar builder.
func NewBuilder() *Builder {
	return &Builder{
		rules:    map[NonTerminal]Expression{},
		messages: map[string]string{},
	}
}

// Rule registers a nonterminal. Registering the same name twice is an
// error, reported by Build.
func (b *Builder) Rule(name NonTerminal, expr Expression) *Builder {
	if _, ok := b.rules[name]; ok {
		b.errs = append(b.errs, fmt.Errorf("duplicate rule %q", name))
		return b
	}
	b.rules[name] = expr
	b.order = append(b.order, name)
	return b
}

// Message registers a diagnostic message format under a key. A "%s" in
// the format receives the image of the offending token.
func (b *Builder) Message(key, format string) *Builder {
	b.messages[key] = format
	return b
}

// Build validates the accumulated rules and returns the grammar.
func (b *Builder) Build() (*Grammar, error) {
	if len(b.errs) > 0 {
		return nil, b.errs[0]
	}
	g := &Grammar{rules: b.rules, messages: b.messages}
	for _, name := range b.order {
		if err := validateRule(g, name); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// MustBuild is like Build but panics on an invalid grammar. Intended
// for grammars constructed at process start.
func (b *Builder) MustBuild() *Grammar {
	g, err := b.Build()
	if err != nil {
		panic(err)
	}
	return g
}
