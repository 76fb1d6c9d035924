package main

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/parsival/parsival/lr/slr"
)

func newParseCmd() *cobra.Command {
	lf := &langFlags{}

	cmd := &cobra.Command{
		Use:   "parse [input]",
		Short: "Parse input with a tokenizer and SLR(1) parser built from definition files",
		Long: `Compile the token definitions and the grammar, generate SLR(1) parse
tables, and run the parser over the input. On acceptance the symbol table
of the parse is printed: every consumed token with its terminal tag, in
input order.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parserPipeline(lf)
			if err != nil {
				return err
			}
			input, err := readInput(args)
			if err != nil {
				return err
			}
			parser := slr.NewParser(p.g, p.lrgen.GotoTable(), p.lrgen.ActionTable())
			accepted, err := parser.Parse(p.lrgen.CFSM().S0, p.tokenizer(input))
			if err != nil {
				pterm.Error.Println(err.Error())
				return fmt.Errorf("input rejected")
			}
			if !accepted {
				pterm.Error.Println("input rejected")
				return fmt.Errorf("input rejected")
			}
			pterm.Info.Println("input accepted")
			printSymbolTable(parser.SymbolTable())
			return nil
		},
	}
	lf.install(cmd)
	return cmd
}

func printSymbolTable(entries []slr.Entry) {
	if len(entries) == 0 {
		return
	}
	pterm.Println("symbol table:")
	for _, e := range entries {
		pterm.Println(fmt.Sprintf("  %3d  %-20q %s", e.Index, e.Lexeme, e.Tag))
	}
}
