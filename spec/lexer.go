package spec

import (
	"io"
	"strings"
	"sync"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

type tokenKind string

const (
	tokenKindLabel       = tokenKind("label")
	tokenKindQuotedLabel = tokenKind("quoted label")
	tokenKindPattern     = tokenKind("pattern")
	tokenKindArrow       = tokenKind("->")
	tokenKindOr          = tokenKind("|")
	tokenKindSemicolon   = tokenKind(";")
	tokenKindDirective   = tokenKind("directive")
	tokenKindEOF         = tokenKind("eof")
	tokenKindInvalid     = tokenKind("invalid")
)

// tokenKinds maps lexmachine token types to token kinds.
var tokenKinds = []tokenKind{
	tokenKindLabel,
	tokenKindQuotedLabel,
	tokenKindPattern,
	tokenKindArrow,
	tokenKindOr,
	tokenKindSemicolon,
	tokenKindDirective,
	tokenKindInvalid,
}

type Position struct {
	Row int
	Col int
}

func newPosition(row, col int) Position {
	return Position{
		Row: row,
		Col: col,
	}
}

type token struct {
	kind tokenKind
	text string
	pos  Position

	// err is set only for invalid tokens.
	err *SyntaxError
}

func newEOFToken(pos Position) *token {
	return &token{
		kind: tokenKindEOF,
		pos:  pos,
	}
}

func newInvalidToken(text string, pos Position, err *SyntaxError) *token {
	return &token{
		kind: tokenKindInvalid,
		text: text,
		pos:  pos,
		err:  err,
	}
}

var (
	lmOnce  sync.Once
	lmLexer *lexmachine.Lexer
	lmErr   error
)

// grammarLexer returns the compiled DFA of the grammar-definition lexer. The DFA is compiled
// once and shared by every scanner.
func grammarLexer() (*lexmachine.Lexer, error) {
	lmOnce.Do(func() {
		l := lexmachine.NewLexer()

		// When two patterns match the same length, the one added first wins.
		l.Add([]byte(`//[^\n]*`), skip)
		l.Add([]byte(`( |\t|\n|\r)+`), skip)
		l.Add([]byte(`->`), makeToken(tokenKindArrow))
		l.Add([]byte(`\|`), makeToken(tokenKindOr))
		l.Add([]byte(`;`), makeToken(tokenKindSemicolon))
		l.Add([]byte(`#[a-z_]+`), makeToken(tokenKindDirective))
		l.Add([]byte(`'[^'\n]*'`), makeToken(tokenKindQuotedLabel))
		l.Add([]byte(`'[^'\n]*`), makeToken(tokenKindInvalid))
		l.Add([]byte(`"[^"\n]*"`), makeToken(tokenKindPattern))
		l.Add([]byte(`"[^"\n]*`), makeToken(tokenKindInvalid))
		l.Add([]byte(`[^ \t\n\r|;'"#][^ \t\n\r|;"#]*`), makeToken(tokenKindLabel))

		lmErr = l.Compile()
		if lmErr != nil {
			tracer().Errorf("Error compiling the grammar lexer: %v", lmErr)
			return
		}
		lmLexer = l
	})
	return lmLexer, lmErr
}

func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

func makeToken(kind tokenKind) lexmachine.Action {
	id := 0
	for i, k := range tokenKinds {
		if k == kind {
			id = i
			break
		}
	}
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}

type lexer struct {
	text []byte
	s    *lexmachine.Scanner

	// position cache
	offset int
	row    int
	col    int
}

func newLexer(src io.Reader) (*lexer, error) {
	text, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}
	lm, err := grammarLexer()
	if err != nil {
		return nil, err
	}
	s, err := lm.Scanner(text)
	if err != nil {
		return nil, err
	}
	return &lexer{
		text: text,
		s:    s,
		row:  1,
		col:  1,
	}, nil
}

func (l *lexer) next() (*token, error) {
	startTC := l.s.TC
	tok, err, eof := l.s.Next()
	if err != nil {
		ui, ok := err.(*machines.UnconsumedInput)
		if !ok {
			return nil, err
		}
		l.s.TC = ui.FailTC

		text := string(l.text[startTC:ui.FailTC])
		trimmed := strings.TrimLeft(text, " \t\n\r")
		return newInvalidToken(strings.TrimSpace(trimmed), l.position(startTC+len(text)-len(trimmed)), synErrInvalidToken), nil
	}
	if eof {
		return newEOFToken(l.position(len(l.text))), nil
	}

	lmTok := tok.(*lexmachine.Token)
	pos := l.position(lmTok.TC)
	text := string(lmTok.Lexeme)
	kind := tokenKinds[lmTok.Type]
	switch kind {
	case tokenKindInvalid:
		if strings.HasPrefix(text, "'") {
			return newInvalidToken(text, pos, synErrUnclosedQuote), nil
		}
		return newInvalidToken(text, pos, synErrUnclosedPattern), nil
	case tokenKindQuotedLabel:
		text = strings.TrimSuffix(strings.TrimPrefix(text, "'"), "'")
		if text == "" {
			return newInvalidToken(string(lmTok.Lexeme), pos, synErrEmptyQuotedLabel), nil
		}
	case tokenKindPattern:
		text = strings.TrimSuffix(strings.TrimPrefix(text, `"`), `"`)
	}

	return &token{
		kind: kind,
		text: text,
		pos:  pos,
	}, nil
}

// position converts an offset in the source into a 1-based row and column.
func (l *lexer) position(offset int) Position {
	if offset < l.offset {
		l.offset, l.row, l.col = 0, 1, 1
	}
	for _, b := range l.text[l.offset:offset] {
		if b == '\n' {
			l.row++
			l.col = 1
			continue
		}
		l.col++
	}
	l.offset = offset
	return newPosition(l.row, l.col)
}
