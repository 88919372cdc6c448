// ren-parse parses source files with a declarative EBNF grammar and
// dumps the resulting syntax tree, or the token stream with --tokens.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/renlang/parser"
	"github.com/renlang/parser/lexer"
)

var cli struct {
	Grammar string `help:"EBNF grammar file." required:"" short:"g" type:"existingfile"`
	Root    string `help:"Root nonterminal." required:"" short:"r"`
	Tokens  bool   `help:"Dump the token stream instead of parsing."`
	JSON    bool   `help:"Emit the syntax tree as JSON."`
	Trace   bool   `help:"Trace parse decisions to stderr."`
	Verbose int    `help:"Increase log verbosity." short:"v" type:"counter"`

	Files []string `arg:"" help:"Source files to parse." type:"existingfile"`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Description("Parse source files with an EBNF grammar and dump the syntax tree."),
		kong.UsageOnError(),
	)
	commonlog.Configure(cli.Verbose, nil)

	grammarText, err := os.ReadFile(cli.Grammar)
	ctx.FatalIfErrorf(err)
	grammar, err := parser.FromEBNF(string(grammarText))
	ctx.FatalIfErrorf(err)

	var options []parser.Option
	if cli.Trace {
		options = append(options, parser.Trace(os.Stderr))
	}
	p, err := parser.New(grammar, parser.NonTerminal(cli.Root), options...)
	ctx.FatalIfErrorf(err)

	failed := false
	for _, file := range cli.Files {
		source, err := os.ReadFile(file)
		ctx.FatalIfErrorf(err)
		if cli.Tokens {
			failed = dumpTokens(file, string(source)) || failed
			continue
		}
		failed = parseFile(p, file, string(source)) || failed
	}
	if failed {
		os.Exit(1)
	}
}

func parseFile(p *parser.Parser, file, source string) (failed bool) {
	node, diagnostics := p.ParseString(file, source)
	if len(diagnostics) > 0 {
		for _, d := range diagnostics {
			fmt.Fprintf(os.Stderr, "%s: %s: %s\n", file, d.Severity, d)
		}
		return true
	}
	if cli.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(node); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return true
		}
		return false
	}
	repr.New(os.Stdout, repr.Indent("  "), repr.OmitEmpty(true)).Println(node)
	return false
}

func dumpTokens(file, source string) (failed bool) {
	tokens, err := lexer.Tokens(source, file)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return true
	}
	for _, tok := range tokens {
		if tok.Kind == lexer.Whitespace {
			continue
		}
		fmt.Printf("%s\t%s\t%q\n", tok.Pos, tok.Kind, tok.Image)
	}
	return false
}
