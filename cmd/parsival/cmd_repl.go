package main

import (
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/parsival/parsival/lr/slr"
)

func newReplCmd() *cobra.Command {
	lf := &langFlags{}

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactively parse input lines against a language definition",
		Long: `Compile the token definitions and the grammar once, then read input
lines interactively and report for each line whether the parser accepts
it. Quit with <ctrl>D.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parserPipeline(lf)
			if err != nil {
				return err
			}
			repl, err := readline.New("parsival> ")
			if err != nil {
				return err
			}
			defer repl.Close()
			pterm.Info.Println("enter input lines, quit with <ctrl>D")
			for {
				line, err := repl.Readline()
				if err != nil { // io.EOF
					break
				}
				if line = strings.TrimSpace(line); line == "" {
					continue
				}
				parseLine(p, line)
			}
			pterm.Println("Good bye!")
			return nil
		},
	}
	lf.install(cmd)
	return cmd
}

// parseLine runs one line of input through a fresh parser and reports the
// outcome. A rejected line does not end the session.
func parseLine(p *pipeline, line string) {
	parser := slr.NewParser(p.g, p.lrgen.GotoTable(), p.lrgen.ActionTable())
	accepted, err := parser.Parse(p.lrgen.CFSM().S0, p.tokenizer(line))
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	if !accepted {
		pterm.Error.Println("input rejected")
		return
	}
	pterm.Info.Println("input accepted")
	printSymbolTable(parser.SymbolTable())
}
