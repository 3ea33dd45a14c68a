package lexer

import (
	"fmt"
	"io"

	spec "github.com/nihei9/ll1/spec/grammar"
	mldriver "github.com/nihei9/maleeni/driver"
)

// Token is a token handed to a parser. Skipped tokens never appear.
type Token struct {
	// KindID is an ID of a lexical kind.
	KindID int

	// TerminalID is a number of the terminal the token stands for. It is -1 for an invalid token.
	TerminalID int

	// Lexeme is a byte sequence matched a pattern of a lexical specification.
	Lexeme []byte

	// Row and Col are 1-based. Col is counted in code points, not bytes.
	Row int
	Col int

	// When this field is true, it means the token is the EOF token.
	EOF bool

	// When this field is true, it means the token is an error token.
	Invalid bool
}

type LexerOption func(l *Lexer) error

// RecordSymbols records every token of the terminal in a symbol table. When a name is recorded for
// the first time, its value is asked to the prompter. A nil prompter leaves the value unknown.
func RecordSymbols(terminal string, tab *SymbolTable, prompter Prompter) LexerOption {
	return func(l *Lexer) error {
		if tab == nil {
			return fmt.Errorf("a symbol table is required")
		}
		id := -1
		for i, t := range l.terminals {
			if t == terminal {
				id = i
				break
			}
		}
		if id < 0 {
			return fmt.Errorf("terminal '%v' was not found", terminal)
		}
		l.symTerminal = id
		l.symTab = tab
		l.prompter = prompter
		return nil
	}
}

type Lexer struct {
	lex            *mldriver.Lexer
	kindToTerminal []int
	skip           []int
	terminals      []string
	eof            int
	tokBuf         []*Token
	symTerminal    int
	symTab         *SymbolTable
	prompter       Prompter
}

// NewLexer returns a lexer recognizing the tokens of a compiled grammar.
func NewLexer(g *spec.CompiledGrammar, src io.Reader, opts ...LexerOption) (*Lexer, error) {
	if g.Lexical == nil {
		return nil, fmt.Errorf("grammar '%v' has no token patterns", g.Name)
	}

	lex, err := mldriver.NewLexer(mldriver.NewLexSpec(g.Lexical.Maleeni), src)
	if err != nil {
		return nil, err
	}

	l := &Lexer{
		lex:            lex,
		kindToTerminal: g.Lexical.KindToTerminal,
		skip:           g.Lexical.Skip,
		terminals:      g.Syntactic.Terminals,
		eof:            g.Syntactic.EOFSymbol,
		symTerminal:    -1,
	}
	for _, opt := range opts {
		err := opt(l)
		if err != nil {
			return nil, err
		}
	}

	return l, nil
}

// Next returns a next token. Consecutive invalid characters are reported as one invalid token.
func (l *Lexer) Next() (*Token, error) {
	if len(l.tokBuf) > 0 {
		tok := l.tokBuf[0]
		l.tokBuf = l.tokBuf[1:]
		return tok, nil
	}

	tok, err := l.next()
	if err != nil {
		return nil, err
	}
	if !tok.Invalid {
		return tok, nil
	}
	errTok := tok
	for {
		tok, err = l.next()
		if err != nil {
			return nil, err
		}
		if !tok.Invalid {
			break
		}
		errTok.Lexeme = append(errTok.Lexeme, tok.Lexeme...)
	}
	l.tokBuf = append(l.tokBuf, tok)

	return errTok, nil
}

func (l *Lexer) next() (*Token, error) {
	for {
		mlTok, err := l.lex.Next()
		if err != nil {
			return nil, err
		}

		tok := &Token{
			KindID:     int(mlTok.KindID),
			TerminalID: -1,
			Lexeme:     mlTok.Lexeme,
			Row:        mlTok.Row + 1,
			Col:        mlTok.Col + 1,
			EOF:        mlTok.EOF,
			Invalid:    mlTok.Invalid,
		}
		switch {
		case tok.EOF:
			tok.TerminalID = l.eof
			return tok, nil
		case tok.Invalid:
			return tok, nil
		case l.skip[tok.KindID] > 0:
			continue
		}

		tok.TerminalID = l.kindToTerminal[tok.KindID]
		if tok.TerminalID == l.symTerminal {
			if err := l.record(string(tok.Lexeme)); err != nil {
				return nil, err
			}
		}
		return tok, nil
	}
}

// maxPromptAttempts is how many times a value of one name is asked before the lexer gives up.
const maxPromptAttempts = 3

// record asks for a value of a new name until the symbol table accepts it. A prompter implementing
// RejectionReporter is told about every rejected value.
func (l *Lexer) record(name string) error {
	_, isNew := l.symTab.Record(name)
	if !isNew || l.prompter == nil {
		return nil
	}
	var err error
	for i := 0; i < maxPromptAttempts; i++ {
		var v string
		v, err = l.prompter.Prompt(name)
		if err != nil {
			return err
		}
		err = l.symTab.Assign(name, v)
		if err == nil {
			return nil
		}
		tracer().Infof("%v", err)
		if r, ok := l.prompter.(RejectionReporter); ok {
			r.Reject(name, err)
		}
	}
	return fmt.Errorf("no valid value was given for %v: %w", name, err)
}

// Terminal returns a label of a terminal.
func (l *Lexer) Terminal(id int) string {
	if id < 0 || id >= len(l.terminals) {
		return ""
	}
	return l.terminals[id]
}
