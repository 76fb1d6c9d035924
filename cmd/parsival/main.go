package main

import (
	"os"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2024 The parsival authors

*/

// tracer traces with key 'parsival.cli'.
func tracer() tracing.Trace {
	return tracing.Select("parsival.cli")
}

var traceLevelFlag string

func main() {
	rootCmd := &cobra.Command{
		Use:   "parsival",
		Short: "Build tokenizers and SLR(1) parsers from language definition files",
		Long: `parsival reads a token definition file (regular expressions) and a grammar
file (context-free productions), compiles them into a DFA tokenizer and
SLR(1) parse tables, and runs the resulting recognizer over input text.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			initDisplay()
			gtrace.SyntaxTracer = gologadapter.New()
			gtrace.SyntaxTracer.SetTraceLevel(traceLevel(traceLevelFlag))
		},
	}
	rootCmd.PersistentFlags().StringVar(&traceLevelFlag, "trace", "Error",
		"Trace level [Debug|Info|Error]")

	rootCmd.AddCommand(newLexCmd())
	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newTablesCmd())
	rootCmd.AddCommand(newReplCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func traceLevel(l string) tracing.TraceLevel {
	return tracing.TraceLevelFromString(l)
}
