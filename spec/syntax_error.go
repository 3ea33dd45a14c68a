package spec

import "fmt"

type SyntaxError struct {
	message string
}

func newSyntaxError(message string) *SyntaxError {
	return &SyntaxError{
		message: message,
	}
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error: %s", e.message)
}

var (
	// lexical errors
	synErrInvalidToken     = newSyntaxError("invalid token")
	synErrUnclosedQuote    = newSyntaxError("unclosed quoted label")
	synErrUnclosedPattern  = newSyntaxError("unclosed pattern")
	synErrEmptyQuotedLabel = newSyntaxError("a quoted label must not be empty")

	// syntax errors
	synErrNoProduction        = newSyntaxError("a grammar must have at least one production")
	synErrNoProductionName    = newSyntaxError("a production name is missing")
	synErrNoArrow             = newSyntaxError("the arrow must precede alternatives")
	synErrNoSemicolon         = newSyntaxError("the semicolon is missing at the last of an alternative")
	synErrNoDirectiveParam    = newSyntaxError("a directive parameter is missing")
	synErrNoPattern           = newSyntaxError("a token directive needs a pattern")
	synErrTooManyParams       = newSyntaxError("too many directive parameters")
	synErrUnknownDirective    = newSyntaxError("unknown directive")
	synErrDuplicateDirective  = newSyntaxError("a directive can be specified only once")
	synErrDirNoSemicolon      = newSyntaxError("a directive must be terminated by a semicolon")
	synErrJSONNoAlternative   = newSyntaxError("a rule needs at least one alternative")
	synErrJSONNoLHS           = newSyntaxError("a rule needs a left-hand side")
	synErrJSONTokenNoTerminal = newSyntaxError("a token needs a terminal")
)
