// Package parser is a declarative, backtracking parsing engine.
//
// A grammar is supplied as data: each nonterminal is described once, as a
// sequence of named entries, an ordered choice of alternatives, or a
// left-recursive set of base alternatives plus suffix extensions. The
// engine executes that description against a lazily-lexed token stream,
// producing a concrete syntax tree with exact source positions, or a
// positioned diagnostic.
//
// Backtracking is driven by a speculative/committed mode distinction. A
// choice tries each alternative in a speculative fork where failures are
// silent and the stream position rewinds for free. Each sequence marks at
// least one entry as its decision point: once that entry matches, the
// parser is committed to the sequence and later failures become fatal
// diagnostics instead of quiet backtracking. Left recursion is eliminated
// automatically by parsing a base alternative and then folding suffix
// matches onto it iteratively, which yields left-associated trees.
//
// Grammars are built once, at process start, with a Builder (or loaded
// from EBNF text with FromEBNF) and validated at construction time. A
// sequence without a decision point, or a silent failure that escapes the
// root nonterminal, is a defect in the grammar description, not a parse
// error, and aborts loudly.
package parser
