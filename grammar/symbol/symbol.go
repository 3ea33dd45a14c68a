package symbol

import (
	"fmt"
)

type symbolKind string

const (
	symbolKindNonTerminal = symbolKind("non-terminal")
	symbolKindTerminal    = symbolKind("terminal")
)

func (t symbolKind) String() string {
	return string(t)
}

const (
	// LabelEOF is the reserved label of the end-of-input terminal.
	LabelEOF = "$"

	// LabelEmpty is the reserved label marking an empty derivation.
	LabelEmpty = "ε"
)

// Symbol is a grammar symbol. Two symbols are equal when both their kinds and labels are equal.
type Symbol struct {
	kind  symbolKind
	label string
}

var (
	SymbolNil   = Symbol{}
	SymbolEOF   = NewTerminal(LabelEOF)
	SymbolEmpty = NewTerminal(LabelEmpty)
)

func NewTerminal(label string) Symbol {
	return Symbol{
		kind:  symbolKindTerminal,
		label: label,
	}
}

func NewNonTerminal(label string) Symbol {
	return Symbol{
		kind:  symbolKindNonTerminal,
		label: label,
	}
}

// IsReserved reports whether a label is reserved for EOF or the empty marker.
func IsReserved(label string) bool {
	return label == LabelEOF || label == LabelEmpty
}

func (s Symbol) String() string {
	if s.IsNil() {
		return "<nil>"
	}
	return s.label
}

func (s Symbol) Label() string {
	return s.label
}

// Byte returns a byte sequence identifying the symbol. The kind is part of the sequence so that
// a terminal and a non-terminal with the same label never collide.
func (s Symbol) Byte() []byte {
	if s.IsNil() {
		return []byte{0}
	}
	b := []byte{'t'}
	if s.kind == symbolKindNonTerminal {
		b[0] = 'n'
	}
	b = append(b, []byte(s.label)...)
	return append(b, 0)
}

func (s Symbol) IsNil() bool {
	return s == SymbolNil
}

func (s Symbol) IsTerminal() bool {
	return s.kind == symbolKindTerminal
}

func (s Symbol) IsNonTerminal() bool {
	return s.kind == symbolKindNonTerminal
}

func (s Symbol) IsEOF() bool {
	return s == SymbolEOF
}

func (s Symbol) IsEmpty() bool {
	return s == SymbolEmpty
}

type SymbolTable struct {
	text2Sym  map[string]Symbol
	terms     []Symbol
	nonTerms  []Symbol
	term2Num  map[string]int
	nTerm2Num map[string]int
}

type SymbolTableWriter struct {
	*SymbolTable
}

type SymbolTableReader struct {
	*SymbolTable
}

// NewSymbolTable returns a symbol table holding only the EOF terminal. EOF always gets the number 0.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		text2Sym: map[string]Symbol{
			LabelEOF: SymbolEOF,
		},
		terms: []Symbol{
			SymbolEOF,
		},
		term2Num: map[string]int{
			LabelEOF: 0,
		},
		nTerm2Num: map[string]int{},
	}
}

func (t *SymbolTable) Writer() *SymbolTableWriter {
	return &SymbolTableWriter{
		SymbolTable: t,
	}
}

func (t *SymbolTable) Reader() *SymbolTableReader {
	return &SymbolTableReader{
		SymbolTable: t,
	}
}

func (w *SymbolTableWriter) RegisterNonTerminalSymbol(text string) (Symbol, error) {
	if sym, ok := w.text2Sym[text]; ok {
		if !sym.IsNonTerminal() {
			return SymbolNil, fmt.Errorf("%v is already registered as a terminal", text)
		}
		return sym, nil
	}
	if IsReserved(text) {
		return SymbolNil, fmt.Errorf("%v is a reserved label", text)
	}
	sym := NewNonTerminal(text)
	w.nTerm2Num[text] = len(w.nonTerms)
	w.nonTerms = append(w.nonTerms, sym)
	w.text2Sym[text] = sym
	return sym, nil
}

func (w *SymbolTableWriter) RegisterTerminalSymbol(text string) (Symbol, error) {
	if sym, ok := w.text2Sym[text]; ok {
		if !sym.IsTerminal() {
			return SymbolNil, fmt.Errorf("%v is already registered as a non-terminal", text)
		}
		return sym, nil
	}
	if text == LabelEmpty {
		return SymbolNil, fmt.Errorf("%v is a reserved label", text)
	}
	sym := NewTerminal(text)
	w.term2Num[text] = len(w.terms)
	w.terms = append(w.terms, sym)
	w.text2Sym[text] = sym
	return sym, nil
}

func (r *SymbolTableReader) ToSymbol(text string) (Symbol, bool) {
	sym, ok := r.text2Sym[text]
	return sym, ok
}

// Num returns the position of a symbol among the symbols of the same kind.
func (r *SymbolTableReader) Num(sym Symbol) (int, bool) {
	if sym.IsTerminal() {
		n, ok := r.term2Num[sym.label]
		return n, ok
	}
	n, ok := r.nTerm2Num[sym.label]
	return n, ok
}

// TerminalSymbols returns the terminals in registration order. EOF comes first.
func (r *SymbolTableReader) TerminalSymbols() []Symbol {
	return append([]Symbol{}, r.terms...)
}

func (r *SymbolTableReader) TerminalTexts() []string {
	texts := make([]string, len(r.terms))
	for i, sym := range r.terms {
		texts[i] = sym.label
	}
	return texts
}

func (r *SymbolTableReader) NonTerminalSymbols() []Symbol {
	return append([]Symbol{}, r.nonTerms...)
}

func (r *SymbolTableReader) NonTerminalTexts() []string {
	texts := make([]string, len(r.nonTerms))
	for i, sym := range r.nonTerms {
		texts[i] = sym.label
	}
	return texts
}
