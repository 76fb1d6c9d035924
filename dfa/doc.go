/*
Package dfa compiles regular expressions into deterministic finite automata.

Construction follows the syntax-tree method: a pattern is tokenized, converted
to postfix notation, and built into a tree whose nodes are annotated with
nullable, firstpos and lastpos. The followpos relation collected during
annotation drives a subset construction which yields the automaton directly,
without an intermediate NFA.

Per-definition automata can be merged into a single automaton recognizing the
union language. Accepting states of the merged automaton carry the tag of the
definition they stem from; where several definitions accept the same string,
the earliest-declared definition wins.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2024 The parsival authors
*/
package dfa

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'parsival.dfa'.
func tracer() tracing.Trace {
	return tracing.Select("parsival.dfa")
}
