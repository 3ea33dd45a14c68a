package grammar

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMalformedGrammar matches every error reported while building a grammar.
	ErrMalformedGrammar = errors.New("malformed grammar")

	// ErrGrammarConflict matches the errors reported when a grammar is not LL(1).
	ErrGrammarConflict = errors.New("grammar conflict")
)

type SemanticError struct {
	message string
}

func newSemanticError(message string) *SemanticError {
	return &SemanticError{
		message: message,
	}
}

func (e *SemanticError) Error() string {
	return e.message
}

func (e *SemanticError) Is(target error) bool {
	return target == ErrMalformedGrammar
}

var (
	semErrNoProduction        = newSemanticError("a grammar needs at least one production")
	semErrUndefinedSym        = newSemanticError("undefined symbol")
	semErrUndefinedStart      = newSemanticError("the start symbol is not defined by any production")
	semErrReservedLabel       = newSemanticError("a reserved label cannot be used here")
	semErrDuplicateTerminal   = newSemanticError("duplicate terminal")
	semErrDuplicateName       = newSemanticError("duplicate names are not allowed between terminals and non-terminals")
	semErrMixedEmpty          = newSemanticError("ε must be the only symbol of an alternative")
	semErrUnusedTerminal      = newSemanticError("unused terminal")
	semErrTermCannotBeSkipped = newSemanticError("a terminal used in productions cannot be skipped")
	semErrTokenNonTerminal    = newSemanticError("a token pattern cannot be bound to a non-terminal")
	semErrDuplicateToken      = newSemanticError("a terminal can have only one token pattern")
	semErrMissingToken        = newSemanticError("a terminal has no token pattern")
)

// ConflictError reports two productions of one non-terminal that are both predicted by the same
// lookahead terminal.
type ConflictError struct {
	NonTerminal string
	Lookahead   string
	Registered  *Production
	Rejected    *Production
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict on [%v, %v]: %v vs %v", e.NonTerminal, e.Lookahead, e.Registered, e.Rejected)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrGrammarConflict
}

type ConflictErrors []*ConflictError

func (e ConflictErrors) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "the grammar is not LL(1); %v conflicts", len(e))
	for _, c := range e {
		fmt.Fprintf(&b, "\n    %v", c)
	}
	return b.String()
}

func (e ConflictErrors) Is(target error) bool {
	return target == ErrGrammarConflict && len(e) > 0
}
