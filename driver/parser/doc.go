/*
Package parser parses a token stream with a compiled grammar.

The parser keeps an explicit stack of symbols paired with the tree nodes they will fill in.
The stack starts as [$, start symbol]. Each step pops one entry: a non-terminal is replaced
with the right-hand side of the production the table selects for the lookahead, and a
terminal must equal the lookahead. The parser accepts when $ meets the end of input, and
rejects on the first error.
*/
package parser

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'll1.parser'.
func tracer() tracing.Trace {
	return tracing.Select("ll1.parser")
}
