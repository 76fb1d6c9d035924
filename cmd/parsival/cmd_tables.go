package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/parsival/parsival/dfa"
	"github.com/parsival/parsival/lr"
)

func newTablesCmd() *cobra.Command {
	lf := &langFlags{}
	var outDir string

	cmd := &cobra.Command{
		Use:   "tables",
		Short: "Generate tokenizer and parser tables and export them as files",
		Long: `Compile the token definitions and the grammar and write the generated
artifacts into the output directory:

  tokens.dfa        merged tokenizer DFA, plain text
  tokens.dot        merged tokenizer DFA, Graphviz Dot format
  <tag>.dfa         one DFA per token definition
  first-follow.txt  FIRST and FOLLOW sets of the grammar
  cfsm.txt          LR(0) states and transitions
  cfsm.dot          LR(0) state diagram, Graphviz Dot format
  action.html       SLR(1) ACTION table
  goto.html         GOTO table`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parserPipeline(lf)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(outDir, 0755); err != nil {
				return err
			}
			if err := exportLexer(p, outDir); err != nil {
				return err
			}
			if err := exportParser(p, outDir); err != nil {
				return err
			}
			pterm.Info.Println(fmt.Sprintf("artifacts written to %s/", outDir))
			return nil
		},
	}
	lf.install(cmd)
	cmd.Flags().StringVarP(&outDir, "out", "o", "out", "Output directory")
	return cmd
}

func exportLexer(p *pipeline, dir string) error {
	if err := writeFile(dir, "tokens.dfa", func(f *os.File) error {
		p.auto.Dump(f)
		return nil
	}); err != nil {
		return err
	}
	if err := writeFile(dir, "tokens.dot", func(f *os.File) error {
		p.auto.GraphViz(f)
		return nil
	}); err != nil {
		return err
	}
	for _, def := range p.defs {
		tree, err := dfa.ParsePattern(def.Pattern)
		if err != nil {
			return fmt.Errorf("pattern %q: %w", def.Tag, err)
		}
		single := dfa.BuildDFA(tree, def.Tag)
		if err := writeFile(dir, def.Tag+".dfa", func(f *os.File) error {
			single.Dump(f)
			return nil
		}); err != nil {
			return err
		}
	}
	return nil
}

func exportParser(p *pipeline, dir string) error {
	if err := writeFile(dir, "first-follow.txt", func(f *os.File) error {
		lr.FirstFollowListing(p.ga, f)
		return nil
	}); err != nil {
		return err
	}
	if err := writeFile(dir, "cfsm.txt", func(f *os.File) error {
		p.lrgen.CFSM().Listing(f)
		return nil
	}); err != nil {
		return err
	}
	if err := writeFile(dir, "cfsm.dot", func(f *os.File) error {
		p.lrgen.CFSM().GraphViz(f)
		return nil
	}); err != nil {
		return err
	}
	if err := writeFile(dir, "action.html", func(f *os.File) error {
		lr.ActionTableAsHTML(p.lrgen, f)
		return nil
	}); err != nil {
		return err
	}
	return writeFile(dir, "goto.html", func(f *os.File) error {
		lr.GotoTableAsHTML(p.lrgen, f)
		return nil
	})
}

func writeFile(dir, name string, write func(*os.File) error) error {
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := write(f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	tracer().Infof("wrote %s", path)
	return nil
}
