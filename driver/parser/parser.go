package parser

import (
	"fmt"

	spec "github.com/nihei9/ll1/spec/grammar"
)

type Grammar interface {
	// StartSymbol returns the number of the start symbol.
	StartSymbol() int

	// EOF returns the terminal number of the end of input.
	EOF() int

	TerminalCount() int

	// Terminal returns the label of a terminal.
	Terminal(terminal int) string

	// TerminalNum returns the number of a terminal label.
	TerminalNum(label string) (int, bool)

	// NonTerminal returns the label of a non-terminal.
	NonTerminal(nonTerminal int) string

	// Production returns the number of the production to expand a non-terminal by when the lookahead
	// is `terminal`. It returns 0 when there is no such production.
	Production(nonTerminal int, terminal int) int

	// RHS returns the right-hand side of a production.
	RHS(prod int) []Symbol
}

type VToken interface {
	// TerminalID returns a terminal number. It is meaningless for an invalid token.
	TerminalID() int

	// Lexeme returns a lexeme.
	Lexeme() []byte

	// EOF returns true when a token represents EOF.
	EOF() bool

	// Invalid returns true when a token is invalid.
	Invalid() bool

	// Position returns (row, column) pair.
	Position() (int, int)
}

type TokenStream interface {
	Next() (VToken, error)
}

type State int

const (
	StateRunning State = iota
	StateAccepted
	StateRejected
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateAccepted:
		return "accepted"
	case StateRejected:
		return "rejected"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

type ParserOption func(p *Parser) error

// SemanticAction sets a semantic action set that receives every step.
func SemanticAction(semAct SemanticActionSet) ParserOption {
	return func(p *Parser) error {
		p.semAct = semAct
		return nil
	}
}

// frame is an entry of the parse stack. The node of the EOF frame is nil.
type frame struct {
	sym  Symbol
	node *Node
}

// Parser is a predictive parser. It owns its stack and tree, so it serves one input only, but
// any number of parsers can share a Grammar.
type Parser struct {
	gram      Grammar
	toks      TokenStream
	semAct    SemanticActionSet
	stack     []*frame
	tree      *Node
	cursor    *Node
	lookahead VToken
	position  int
	state     State
	synErr    *SyntaxError
}

func NewParser(toks TokenStream, gram Grammar, opts ...ParserOption) (*Parser, error) {
	start := gram.StartSymbol()
	root := newNode(NodeTypeNonTerminal, gram.NonTerminal(start), nil)
	p := &Parser{
		gram: gram,
		toks: toks,
		stack: []*frame{
			{
				sym: Symbol{
					Num: gram.EOF(),
				},
			},
			{
				sym: Symbol{
					NonTerminal: true,
					Num:         start,
				},
				node: root,
			},
		},
		tree:   root,
		cursor: root,
		state:  StateRunning,
	}

	for _, opt := range opts {
		err := opt(p)
		if err != nil {
			return nil, err
		}
	}

	return p, nil
}

// Parse runs the parser until it accepts or rejects the input. A rejected input results in a
// *SyntaxError. Any other error comes from the token stream.
func (p *Parser) Parse() error {
	for p.state == StateRunning {
		if _, err := p.Step(); err != nil {
			return err
		}
	}
	if p.state == StateRejected {
		return p.synErr
	}
	return nil
}

// Step pops one stack entry. It expands a non-terminal or matches a terminal against the
// lookahead, and returns the state after the step.
func (p *Parser) Step() (State, error) {
	if p.state != StateRunning {
		if p.state == StateRejected {
			return p.state, p.synErr
		}
		return p.state, nil
	}

	tok, err := p.peek()
	if err != nil {
		return p.state, err
	}

	top := p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]

	if tok.Invalid() {
		return p.reject(&SyntaxError{
			Kind: SyntaxErrorInvalidToken,
		}, tok)
	}

	if top.sym.NonTerminal {
		return p.expand(top, tok)
	}
	return p.match(top, tok)
}

func (p *Parser) expand(top *frame, tok VToken) (State, error) {
	nonTerm := p.gram.NonTerminal(top.sym.Num)
	prod := p.gram.Production(top.sym.Num, tok.TerminalID())
	if prod == spec.ProductionNumNil {
		kind := SyntaxErrorNoRule
		if tok.EOF() {
			kind = SyntaxErrorUnexpectedEOF
		}
		return p.reject(&SyntaxError{
			Kind:              kind,
			NonTerminal:       nonTerm,
			ExpectedTerminals: p.expectedTerminals(top.sym.Num),
		}, tok)
	}

	rhs := p.gram.RHS(prod)
	children := make([]*Node, len(rhs))
	for i, sym := range rhs {
		if sym.NonTerminal {
			children[i] = newNode(NodeTypeNonTerminal, p.gram.NonTerminal(sym.Num), top.node)
		} else {
			children[i] = newNode(NodeTypeTerminal, p.gram.Terminal(sym.Num), top.node)
		}
	}
	top.node.Children = children
	for i := len(rhs) - 1; i >= 0; i-- {
		p.stack = append(p.stack, &frame{
			sym:  rhs[i],
			node: children[i],
		})
	}
	p.cursor = top.node

	tracer().Debugf("expand %v by #%v on %v", nonTerm, prod, p.gram.Terminal(tok.TerminalID()))
	if p.semAct != nil {
		p.semAct.Expand(top.node, prod)
	}

	return p.state, nil
}

func (p *Parser) match(top *frame, tok VToken) (State, error) {
	if top.sym.Num == p.gram.EOF() {
		if !tok.EOF() {
			return p.reject(&SyntaxError{
				Kind: SyntaxErrorTrailingInput,
			}, tok)
		}
		p.state = StateAccepted
		p.cursor = nil
		tracer().Debugf("accept")
		if p.semAct != nil {
			p.semAct.Accept(p.tree)
		}
		return p.state, nil
	}

	expected := p.gram.Terminal(top.sym.Num)
	if tok.TerminalID() != top.sym.Num {
		kind := SyntaxErrorUnexpectedTerminal
		if tok.EOF() {
			kind = SyntaxErrorUnexpectedEOF
		}
		return p.reject(&SyntaxError{
			Kind:     kind,
			Expected: expected,
		}, tok)
	}

	top.node.Text = string(tok.Lexeme())
	top.node.Row, top.node.Col = tok.Position()
	p.cursor = top.node.parent
	p.lookahead = nil
	p.position++

	tracer().Debugf("match %v", expected)
	if p.semAct != nil {
		p.semAct.Match(top.node, tok)
	}

	return p.state, nil
}

func (p *Parser) reject(synErr *SyntaxError, tok VToken) (State, error) {
	synErr.Position = p.position
	synErr.Row, synErr.Col = tok.Position()
	if !tok.Invalid() {
		synErr.Lookahead = p.gram.Terminal(tok.TerminalID())
	}
	if !tok.EOF() {
		synErr.Lexeme = string(tok.Lexeme())
	}

	p.state = StateRejected
	p.synErr = synErr
	tracer().Debugf("reject: %v", synErr)
	if p.semAct != nil {
		p.semAct.Reject(synErr)
	}
	return p.state, synErr
}

func (p *Parser) peek() (VToken, error) {
	if p.lookahead == nil {
		tok, err := p.toks.Next()
		if err != nil {
			return nil, err
		}
		p.lookahead = tok
	}
	return p.lookahead, nil
}

func (p *Parser) expectedTerminals(nonTerm int) []string {
	var terms []string
	for t := 0; t < p.gram.TerminalCount(); t++ {
		if p.gram.Production(nonTerm, t) != spec.ProductionNumNil {
			terms = append(terms, p.gram.Terminal(t))
		}
	}
	return terms
}

func (p *Parser) State() State {
	return p.state
}

// Tree returns the parse tree. It is complete only after the parser accepts the input.
func (p *Parser) Tree() *Node {
	return p.tree
}

// Cursor returns the node whose children are being matched. It is nil after acceptance.
func (p *Parser) Cursor() *Node {
	return p.cursor
}

// Position returns the number of tokens matched so far.
func (p *Parser) Position() int {
	return p.position
}

// Stack returns the labels of the stack entries from bottom to top.
func (p *Parser) Stack() []string {
	labels := make([]string, len(p.stack))
	for i, f := range p.stack {
		if f.sym.NonTerminal {
			labels[i] = p.gram.NonTerminal(f.sym.Num)
		} else {
			labels[i] = p.gram.Terminal(f.sym.Num)
		}
	}
	return labels
}
