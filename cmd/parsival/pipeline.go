package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/parsival/parsival"
	"github.com/parsival/parsival/dfa"
	"github.com/parsival/parsival/langdef"
	"github.com/parsival/parsival/lr"
	"github.com/parsival/parsival/scanner"
)

// langFlags are the definition-file flags shared by all subcommands.
type langFlags struct {
	tokensFile  string
	grammarFile string
	start       string
	skipTags    []string
}

func (lf *langFlags) install(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&lf.tokensFile, "tokens", "t", "", "Token definition file")
	cmd.Flags().StringVarP(&lf.grammarFile, "grammar", "g", "", "Grammar file")
	cmd.Flags().StringVar(&lf.start, "start", "", "Start symbol (default: first production)")
	cmd.Flags().StringSliceVar(&lf.skipTags, "skip", []string{"ws"},
		"Token tags to suppress (e.g. whitespace)")
}

// pipeline holds the artifacts of a language definition, from token
// definitions up to SLR(1) parse tables.
type pipeline struct {
	defs  []dfa.Def
	auto  *dfa.DFA
	types map[string]parsival.TokType
	skip  []string
	g     *lr.Grammar
	ga    *lr.LRAnalysis
	lrgen *lr.TableGenerator
}

// lexerPipeline compiles the token definition file into a merged DFA.
func lexerPipeline(lf *langFlags) (*pipeline, error) {
	if lf.tokensFile == "" {
		return nil, fmt.Errorf("no token definition file given (-t)")
	}
	f, err := os.Open(lf.tokensFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	defs, err := langdef.TokenDefs(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", lf.tokensFile, err)
	}
	auto, err := dfa.CompileDefs(defs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", lf.tokensFile, err)
	}
	types := make(map[string]parsival.TokType, len(defs))
	for i, d := range defs {
		types[d.Tag] = parsival.TokType(i + 1)
	}
	tracer().Infof("compiled %d token definitions into a DFA with %d states",
		len(defs), auto.StateCount())
	return &pipeline{defs: defs, auto: auto, types: types, skip: lf.skipTags}, nil
}

// parserPipeline extends a lexer pipeline with grammar analysis and SLR(1)
// table generation. Terminals named after token tags get the tokenizer's
// token values.
func parserPipeline(lf *langFlags) (*pipeline, error) {
	p, err := lexerPipeline(lf)
	if err != nil {
		return nil, err
	}
	if lf.grammarFile == "" {
		return nil, fmt.Errorf("no grammar file given (-g)")
	}
	f, err := os.Open(lf.grammarFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	opts := []langdef.Option{langdef.Types(p.types), langdef.Name(grammarName(lf.grammarFile))}
	if lf.start != "" {
		opts = append(opts, langdef.Start(lf.start))
	}
	p.g, err = langdef.Grammar(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", lf.grammarFile, err)
	}
	p.ga = lr.Analysis(p.g)
	p.lrgen = lr.NewTableGenerator(p.ga)
	if err := p.lrgen.CreateTables(); err != nil {
		return nil, err
	}
	tracer().Infof("generated parse tables, CFSM has %d states", p.lrgen.CFSM().StateCount())
	return p, nil
}

// tokenizer creates a fresh tokenizer over the given input.
func (p *pipeline) tokenizer(input string, extra ...scanner.Option) *scanner.DFATokenizer {
	opts := append([]scanner.Option{
		scanner.TokenTypes(p.types),
		scanner.SkipTags(p.skip...),
	}, extra...)
	return scanner.NewDFATokenizer(p.auto, input, opts...)
}

func grammarName(path string) string {
	name := path
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.IndexByte(name, '.'); i > 0 {
		name = name[:i]
	}
	return name
}

// readInput returns input text from the argument list or, for "-" or no
// arguments, from stdin. A single argument naming an existing file is read
// as a file; anything else is taken as literal input.
func readInput(args []string) (string, error) {
	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	if len(args) == 1 {
		if data, err := os.ReadFile(args[0]); err == nil {
			return string(data), nil
		}
	}
	return strings.Join(args, " "), nil
}
