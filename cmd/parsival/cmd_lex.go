package main

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/parsival/parsival/scanner"
)

func newLexCmd() *cobra.Command {
	lf := &langFlags{}
	var failFast bool

	cmd := &cobra.Command{
		Use:   "lex [input]",
		Short: "Tokenize input with a compiled token definition file",
		Long: `Compile the token definitions into a DFA and run it over the input,
printing one <lexeme, tag> pair per recognized token. Input is read from a
file argument, a literal argument, or stdin.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := lexerPipeline(lf)
			if err != nil {
				return err
			}
			input, err := readInput(args)
			if err != nil {
				return err
			}
			tok := p.tokenizer(input, scanner.FailFast(failFast))
			var scanErrs []error
			tok.SetErrorHandler(func(e error) {
				scanErrs = append(scanErrs, e)
			})
			count := 0
			for t := tok.NextToken(); t.TokType() != scanner.EOF; t = tok.NextToken() {
				fmt.Printf("<%s, %s>\n", t.Lexeme(), tok.TypeName(t.TokType()))
				count++
			}
			for _, e := range scanErrs {
				pterm.Error.Println(e.Error())
			}
			pterm.Info.Println(fmt.Sprintf("%d tokens, %d errors", count, len(scanErrs)))
			if len(scanErrs) > 0 {
				return fmt.Errorf("input contains unrecognized characters")
			}
			return nil
		},
	}
	lf.install(cmd)
	cmd.Flags().BoolVar(&failFast, "fail-fast", false, "Abort scanning on the first error")
	return cmd
}
