/*
Package grammar builds context-free grammars and analyzes them for predictive parsing.

A Grammar is built from a definition read by package spec. From a Grammar, FIRST and FOLLOW
sets are computed, and a TableBuilder combines the three into a ParsingTable mapping each
pair of a non-terminal and a lookahead terminal to at most one production. Analyze runs the
whole pipeline, and Compile turns its result into a serializable form a driver can load.
*/
package grammar

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'll1.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("ll1.grammar")
}
