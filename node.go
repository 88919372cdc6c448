package parser

import (
	"github.com/renlang/parser/lexer"
)

// A Node is one vertex of the concrete syntax tree: the nonterminal it
// was parsed as, plus its children in source order.
type Node struct {
	NonTerminal NonTerminal `json:"nonTerminal,omitempty"`
	Children    []Child     `json:"children"`
}

// A Child is either a token leaf or a nested node, tagged with the
// field name of the grammar entry that produced it. Exactly one of
// Token and Node is set. Separator tokens carry an empty name.
type Child struct {
	Name  string       `json:"name,omitempty"`
	Token *lexer.Token `json:"token,omitempty"`
	Node  *Node        `json:"node,omitempty"`
}

// Child returns the first child with the given field name, or nil.
func (n *Node) Child(name string) *Child {
	for i := range n.Children {
		if n.Children[i].Name == name {
			return &n.Children[i]
		}
	}
	return nil
}

// ChildNodes returns every node child with the given field name, in
// source order.
func (n *Node) ChildNodes(name string) []*Node {
	var out []*Node
	for i := range n.Children {
		c := &n.Children[i]
		if c.Name == name && c.Node != nil {
			out = append(out, c.Node)
		}
	}
	return out
}

// Tokens returns the leaf tokens of the subtree in source order.
func (n *Node) Tokens() []lexer.Token {
	var out []lexer.Token
	n.walk(func(t *lexer.Token) { out = append(out, *t) })
	return out
}

// FirstToken returns the leftmost leaf token of the subtree, or nil for
// a subtree with no tokens.
func (n *Node) FirstToken() *lexer.Token {
	for _, c := range n.Children {
		if c.Token != nil {
			return c.Token
		}
		if t := c.Node.FirstToken(); t != nil {
			return t
		}
	}
	return nil
}

// LastToken returns the rightmost leaf token of the subtree, or nil.
func (n *Node) LastToken() *lexer.Token {
	for i := len(n.Children) - 1; i >= 0; i-- {
		c := n.Children[i]
		if c.Token != nil {
			return c.Token
		}
		if t := c.Node.LastToken(); t != nil {
			return t
		}
	}
	return nil
}

// Range returns the position of the subtree's first character and the
// position one past its last character.
func (n *Node) Range() (start, end lexer.Position) {
	first, last := n.FirstToken(), n.LastToken()
	if first == nil {
		return start, end
	}
	return first.Pos, last.Pos.Advance(last.Image)
}

// Source returns the exact slice of src covered by the subtree,
// including any elided tokens between its first and last leaf.
func (n *Node) Source(src string) string {
	first, last := n.FirstToken(), n.LastToken()
	if first == nil {
		return ""
	}
	runes := []rune(src)
	return string(runes[first.Pos.Offset : last.Pos.Offset+len([]rune(last.Image))])
}

func (n *Node) walk(f func(*lexer.Token)) {
	for _, c := range n.Children {
		if c.Token != nil {
			f(c.Token)
			continue
		}
		c.Node.walk(f)
	}
}
