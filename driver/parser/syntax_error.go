package parser

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSyntax matches every syntax error a parser reports.
var ErrSyntax = errors.New("syntax error")

type SyntaxErrorKind string

const (
	// SyntaxErrorNoRule means the table has no production for the non-terminal on top of the stack
	// and the lookahead.
	SyntaxErrorNoRule = SyntaxErrorKind("no rule")

	// SyntaxErrorUnexpectedTerminal means the terminal on top of the stack differs from the
	// lookahead.
	SyntaxErrorUnexpectedTerminal = SyntaxErrorKind("unexpected terminal")

	// SyntaxErrorUnexpectedEOF means the input ended while the stack still expected symbols.
	SyntaxErrorUnexpectedEOF = SyntaxErrorKind("unexpected end of input")

	// SyntaxErrorTrailingInput means the input continues after a complete derivation.
	SyntaxErrorTrailingInput = SyntaxErrorKind("trailing input")

	SyntaxErrorInvalidToken = SyntaxErrorKind("invalid token")
)

type SyntaxError struct {
	Kind SyntaxErrorKind

	// Position is the 0-based index of the offending token among the tokens handed to the parser.
	Position int
	Row      int
	Col      int

	// NonTerminal is set when a non-terminal was on top of the stack.
	NonTerminal string

	// Expected is set when a terminal was on top of the stack.
	Expected string

	Lookahead string
	Lexeme    string

	// ExpectedTerminals lists the lookaheads the non-terminal on top of the stack accepts.
	ExpectedTerminals []string
}

func (e *SyntaxError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v:%v: %v", e.Row, e.Col, e.Kind)
	switch e.Kind {
	case SyntaxErrorNoRule:
		fmt.Fprintf(&b, " for [%v, %v]", e.NonTerminal, e.Lookahead)
	case SyntaxErrorUnexpectedTerminal:
		fmt.Fprintf(&b, "; expected: %v, found: %v", e.Expected, e.Lookahead)
	case SyntaxErrorUnexpectedEOF:
		if e.Expected != "" {
			fmt.Fprintf(&b, "; expected: %v", e.Expected)
		} else {
			fmt.Fprintf(&b, " while expanding %v", e.NonTerminal)
		}
	case SyntaxErrorTrailingInput:
		fmt.Fprintf(&b, "; found: %v", e.Lookahead)
	}
	if e.Lexeme != "" {
		fmt.Fprintf(&b, " (%#v)", e.Lexeme)
	}
	if len(e.ExpectedTerminals) > 0 {
		fmt.Fprintf(&b, "; expected one of: %v", strings.Join(e.ExpectedTerminals, ", "))
	}
	return b.String()
}

func (e *SyntaxError) Is(target error) bool {
	return target == ErrSyntax
}
