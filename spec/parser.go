package spec

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	verr "github.com/nihei9/ll1/error"
)

type RootNode struct {
	Name        string
	Start       string
	StartPos    Position
	Terminals   []*ElementNode
	Productions []*ProductionNode
	Tokens      []*TokenNode
}

type ProductionNode struct {
	LHS string
	RHS []*AlternativeNode
	Pos Position
}

type AlternativeNode struct {
	Elements []*ElementNode
	Pos      Position
}

type ElementNode struct {
	Label string
	Pos   Position
}

// TokenNode binds a terminal to a lexical pattern. A skipped token is matched but never
// handed to the parser.
type TokenNode struct {
	Terminal string
	Pattern  string
	Skip     bool
	Pos      Position
}

// ParseFile reads a grammar definition from a file. A file with the .json extension is read
// as the JSON format; any other file as the text format.
func ParseFile(path string) (*RootNode, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("Cannot open the grammar file %s: %w", path, err)
	}
	defer f.Close()

	var root *RootNode
	if strings.EqualFold(filepath.Ext(path), ".json") {
		root, err = ParseJSON(f)
	} else {
		root, err = Parse(f)
	}
	if err != nil {
		if specErrs, ok := err.(verr.SpecErrors); ok {
			for _, e := range specErrs {
				e.FilePath = path
				e.SourceName = path
			}
		}
		return nil, err
	}
	return root, nil
}

// Parse reads a grammar definition written in the text format. Syntax errors are returned
// all together as verr.SpecErrors.
func Parse(src io.Reader) (*RootNode, error) {
	p, err := newParser(src)
	if err != nil {
		return nil, err
	}
	return p.parse()
}

type parser struct {
	lex       *lexer
	peekedTok *token
	lastTok   *token
	errs      verr.SpecErrors
}

func newParser(src io.Reader) (*parser, error) {
	lex, err := newLexer(src)
	if err != nil {
		return nil, err
	}
	return &parser{
		lex: lex,
	}, nil
}

// fatalError carries an error that stops parsing, such as an I/O error.
type fatalError struct {
	err error
}

func (p *parser) parse() (*RootNode, error) {
	root := &RootNode{}
	for {
		done, err := p.parseItem(root)
		if err != nil {
			return nil, err
		}
		if done {
			break
		}
	}
	if len(root.Productions) == 0 && len(p.errs) == 0 {
		p.errs = append(p.errs, &verr.SpecError{
			Cause: synErrNoProduction,
		})
	}
	if len(p.errs) > 0 {
		tracer().Debugf("%v syntax errors found", len(p.errs))
		return nil, p.errs
	}
	return root, nil
}

// parseItem parses one directive or one production. On a syntax error it records the error and
// skips to the next semicolon so that the following items are still checked.
func (p *parser) parseItem(root *RootNode) (done bool, retErr error) {
	defer func() {
		v := recover()
		if v == nil {
			return
		}
		switch e := v.(type) {
		case *verr.SpecError:
			p.errs = append(p.errs, e)
			done = p.skipOverSemicolon()
		case fatalError:
			retErr = e.err
		default:
			panic(v)
		}
	}()

	if p.consume(tokenKindEOF) {
		return true, nil
	}
	if p.consume(tokenKindDirective) {
		p.parseDirective(root)
		return false, nil
	}
	root.Productions = append(root.Productions, p.parseProduction())
	return false, nil
}

func (p *parser) parseDirective(root *RootNode) {
	dir := p.lastTok
	switch dir.text {
	case "#name":
		label := p.parseDirectiveParam()
		if root.Name != "" {
			p.raiseAt(synErrDuplicateDirective, dir.text, dir.pos)
		}
		root.Name = label.Label
	case "#start":
		label := p.parseDirectiveParam()
		if root.Start != "" {
			p.raiseAt(synErrDuplicateDirective, dir.text, dir.pos)
		}
		root.Start = label.Label
		root.StartPos = label.Pos
	case "#terminals":
		for {
			elem := p.parseElement()
			if elem == nil {
				break
			}
			root.Terminals = append(root.Terminals, elem)
		}
	case "#token", "#skip":
		term := p.parseDirectiveParam()
		if !p.consume(tokenKindPattern) {
			p.raise(synErrNoPattern, "")
		}
		root.Tokens = append(root.Tokens, &TokenNode{
			Terminal: term.Label,
			Pattern:  p.lastTok.text,
			Skip:     dir.text == "#skip",
			Pos:      term.Pos,
		})
	default:
		p.raiseAt(synErrUnknownDirective, dir.text, dir.pos)
	}

	if !p.consume(tokenKindSemicolon) {
		if p.consume(tokenKindLabel) || p.consume(tokenKindQuotedLabel) || p.consume(tokenKindPattern) {
			p.raiseAt(synErrTooManyParams, p.lastTok.text, p.lastTok.pos)
		}
		p.raise(synErrDirNoSemicolon, "")
	}
}

func (p *parser) parseDirectiveParam() *ElementNode {
	elem := p.parseElement()
	if elem == nil {
		p.raise(synErrNoDirectiveParam, p.lastTok.text)
	}
	return elem
}

func (p *parser) parseProduction() *ProductionNode {
	if !p.consume(tokenKindLabel) && !p.consume(tokenKindQuotedLabel) {
		p.raise(synErrNoProductionName, "")
	}
	lhs := p.lastTok
	if !p.consume(tokenKindArrow) {
		p.raise(synErrNoArrow, "")
	}
	alt := p.parseAlternative()
	rhs := []*AlternativeNode{alt}
	for {
		if !p.consume(tokenKindOr) {
			break
		}
		alt := p.parseAlternative()
		rhs = append(rhs, alt)
	}
	if !p.consume(tokenKindSemicolon) {
		p.raise(synErrNoSemicolon, "")
	}
	return &ProductionNode{
		LHS: lhs.text,
		RHS: rhs,
		Pos: lhs.pos,
	}
}

func (p *parser) parseAlternative() *AlternativeNode {
	elems := []*ElementNode{}
	pos := p.peek().pos
	for {
		elem := p.parseElement()
		if elem == nil {
			break
		}
		elems = append(elems, elem)
	}
	return &AlternativeNode{
		Elements: elems,
		Pos:      pos,
	}
}

func (p *parser) parseElement() *ElementNode {
	if p.consume(tokenKindLabel) || p.consume(tokenKindQuotedLabel) {
		return &ElementNode{
			Label: p.lastTok.text,
			Pos:   p.lastTok.pos,
		}
	}
	return nil
}

func (p *parser) peek() *token {
	if p.peekedTok == nil {
		tok, err := p.lex.next()
		if err != nil {
			panic(fatalError{err: err})
		}
		p.peekedTok = tok
	}
	return p.peekedTok
}

func (p *parser) consume(expected tokenKind) bool {
	tok := p.peek()
	if tok.kind == tokenKindInvalid {
		p.peekedTok = nil
		p.raiseAt(tok.err, tok.text, tok.pos)
	}
	if tok.kind != expected {
		return false
	}
	p.peekedTok = nil
	p.lastTok = tok
	return true
}

// skipOverSemicolon discards tokens up to and including the next semicolon. It reports whether
// the end of the input was reached.
func (p *parser) skipOverSemicolon() bool {
	for {
		tok := p.peek()
		p.peekedTok = nil
		switch tok.kind {
		case tokenKindSemicolon:
			return false
		case tokenKindEOF:
			return true
		}
	}
}

// raise reports an error at the token the parser is looking at.
func (p *parser) raise(synErr *SyntaxError, detail string) {
	p.raiseAt(synErr, detail, p.peek().pos)
}

func (p *parser) raiseAt(synErr *SyntaxError, detail string, pos Position) {
	panic(&verr.SpecError{
		Cause:  synErr,
		Detail: detail,
		Row:    pos.Row,
		Col:    pos.Col,
	})
}
