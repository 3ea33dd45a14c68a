package parser

import (
	"io"
	"strings"

	"github.com/nihei9/ll1/driver/lexer"
	spec "github.com/nihei9/ll1/spec/grammar"
)

type vToken struct {
	tok *lexer.Token
}

func (t *vToken) TerminalID() int {
	return t.tok.TerminalID
}

func (t *vToken) Lexeme() []byte {
	return t.tok.Lexeme
}

func (t *vToken) EOF() bool {
	return t.tok.EOF
}

func (t *vToken) Invalid() bool {
	return t.tok.Invalid
}

func (t *vToken) Position() (int, int) {
	return t.tok.Row, t.tok.Col
}

type tokenStream struct {
	lex *lexer.Lexer
}

// NewTokenStream returns a token stream splitting src by the token patterns of a grammar.
func NewTokenStream(g *spec.CompiledGrammar, src io.Reader, opts ...lexer.LexerOption) (TokenStream, error) {
	lex, err := lexer.NewLexer(g, src, opts...)
	if err != nil {
		return nil, err
	}

	return &tokenStream{
		lex: lex,
	}, nil
}

func (l *tokenStream) Next() (VToken, error) {
	tok, err := l.lex.Next()
	if err != nil {
		return nil, err
	}
	return &vToken{
		tok: tok,
	}, nil
}

type labelToken struct {
	terminalID int
	label      string
	col        int
	eof        bool
}

func (t *labelToken) TerminalID() int {
	return t.terminalID
}

func (t *labelToken) Lexeme() []byte {
	return []byte(t.label)
}

func (t *labelToken) EOF() bool {
	return t.eof
}

func (t *labelToken) Invalid() bool {
	return t.terminalID < 0
}

// Position returns 1 and the 1-based index of the label.
func (t *labelToken) Position() (int, int) {
	return 1, t.col
}

type labelTokenStream struct {
	toks []*labelToken
	next int
	eof  *labelToken
}

// NewLabelTokenStream returns a token stream of whitespace-separated terminal labels, such as
// `identifier = number`. A label that is not a terminal of the grammar becomes an invalid token.
func NewLabelTokenStream(gram Grammar, src string) TokenStream {
	labels := strings.Fields(src)
	toks := make([]*labelToken, len(labels))
	for i, label := range labels {
		id, ok := gram.TerminalNum(label)
		if !ok || id == gram.EOF() {
			id = -1
		}
		toks[i] = &labelToken{
			terminalID: id,
			label:      label,
			col:        i + 1,
		}
	}
	return &labelTokenStream{
		toks: toks,
		eof: &labelToken{
			terminalID: gram.EOF(),
			col:        len(labels) + 1,
			eof:        true,
		},
	}
}

func (s *labelTokenStream) Next() (VToken, error) {
	if s.next >= len(s.toks) {
		return s.eof, nil
	}
	tok := s.toks[s.next]
	s.next++
	return tok, nil
}
