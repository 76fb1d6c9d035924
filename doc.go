/*
Package parsival turns token definitions and a context-free grammar into two
executable artifacts: a deterministic finite automaton which tokenizes raw
text, and an SLR(1) parse table which validates the resulting token stream.

Package structure is as follows:

■ dfa: Package dfa compiles regular expressions into DFAs via annotated
syntax trees (nullable/firstpos/lastpos/followpos) and merges per-definition
automata into a single tokenizing automaton.

■ scanner: Package scanner drives a merged automaton over input text with a
maximal-munch policy, and defines the Tokenizer interface parsers rely on.

■ lr: Package lr implements grammar analysis (FIRST/FOLLOW), construction of
the LR(0) characteristic finite state machine, and SLR(1) parse tables.
Sub-package slr contains the table-driven parser.

■ langdef: Package langdef reads the textual input formats for token
definitions and grammars.

The base package contains data types which are used throughout all the other
packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2024 The parsival authors
*/
package parsival
