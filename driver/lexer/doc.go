// Package lexer splits a source text into the tokens of a compiled grammar and records the names
// it meets in a symbol table.
package lexer

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'll1.lexer'.
func tracer() tracing.Trace {
	return tracing.Select("ll1.lexer")
}
