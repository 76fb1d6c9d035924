/*
Package lr implements prerequisites for SLR(1) parsing.

Building a Grammar

Grammars are specified using a grammar builder object. Clients add rules,
consisting of non-terminal symbols and terminals. Terminals carry a token
value of type int. Grammars may contain epsilon-productions.

Example:

    b := lr.NewGrammarBuilder("G")
    b.LHS("S").N("A").T("a", 1).End()  // S  ->  A a
    b.LHS("A").N("B").End()            // A  ->  B
    b.LHS("B").T("b", 2).End()         // B  ->  b
    b.LHS("B").Epsilon()               // B  ->
    g, err := b.Grammar()

The builder augments the grammar with a synthetic start rule  S' -> S,
stored as rule 0.

Static Grammar Analysis

After the grammar is complete, it has to be analysed: an LRAnalysis object
computes FIRST and FOLLOW sets for all non-terminals by fixed-point
iteration.

    ga := lr.Analysis(g)
    ga.Grammar().EachNonTerminal(func(A *lr.Symbol) interface{} {
        fmt.Printf("FIRST(%s) = %v\n", A.Name, ga.First(A))
        return nil
    })

Parser Construction

Using grammar analysis as input, a bottom-up parser can be constructed.
First the characteristic finite state machine (CFSM) is built from the
grammar, i.e. the LR(0) state diagram. The CFSM is then transformed into a
GOTO table and an SLR(1) ACTION table. Grammars which are not SLR(1) are
rejected: a shift/reduce or reduce/reduce conflict is a hard error naming
the state and the terminal, never a silently patched table cell.

    lrgen := lr.NewTableGenerator(ga)
    if err := lrgen.CreateTables(); err != nil { … }  // grammar is not SLR(1)

The CFSM is not thrown away but made available to the client, e.g. for
debugging purposes. It can be exported to Graphviz's Dot format.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2024 The parsival authors
*/
package lr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'parsival.lr'.
func tracer() tracing.Trace {
	return tracing.Select("parsival.lr")
}
