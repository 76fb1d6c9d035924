/*
Package langdef reads language definitions from simple text formats.

Two input formats are supported:

■ Token definition files, declaring one named pattern per line:

	# lexical definitions
	kw:  if|else|for
	id:  [a-z]([a-z]|[0-9])*
	num: [0-9]+

■ Grammar files, declaring one or more productions per line:

	# syntax
	S ::= for E | if E else E | id
	E ::= id

Blank lines and lines starting with '#' are ignored in both formats. In
grammar files the left-hand side of the first production becomes the start
symbol (unless overridden), non-terminals are the symbols appearing on a
left-hand side, and every other symbol is a terminal. An empty alternative,
or the symbol 'ε', denotes an epsilon production.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2024 The parsival authors
*/
package langdef

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'parsival.langdef'.
func tracer() tracing.Trace {
	return tracing.Select("parsival.langdef")
}
