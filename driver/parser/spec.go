package parser

import (
	"fmt"

	"github.com/nihei9/ll1/compressor"
	spec "github.com/nihei9/ll1/spec/grammar"
)

// Symbol is a symbol of a right-hand side. Num is a terminal number or a non-terminal number
// depending on NonTerminal.
type Symbol struct {
	NonTerminal bool
	Num         int
}

type grammarImpl struct {
	g        *spec.CompiledGrammar
	tab      *compressor.RowDisplacementTable
	rhs      [][]Symbol
	term2Num map[string]int
}

// NewGrammar makes a compiled grammar usable by a parser. It fails when a production refers to an
// unknown symbol.
func NewGrammar(g *spec.CompiledGrammar) (*grammarImpl, error) {
	syn := g.Syntactic
	nonTerm2Num := map[string]int{}
	for i, nt := range syn.NonTerminals {
		nonTerm2Num[nt] = i
	}
	term2Num := map[string]int{}
	for i, t := range syn.Terminals {
		term2Num[t] = i
	}

	rhs := make([][]Symbol, len(syn.Productions)+1)
	for _, p := range syn.Productions {
		syms := make([]Symbol, len(p.RHS))
		for i, label := range p.RHS {
			if num, ok := nonTerm2Num[label]; ok {
				syms[i] = Symbol{
					NonTerminal: true,
					Num:         num,
				}
				continue
			}
			num, ok := term2Num[label]
			if !ok {
				return nil, fmt.Errorf("symbol '%v' of production #%v was not found", label, p.Num)
			}
			syms[i] = Symbol{
				Num: num,
			}
		}
		rhs[p.Num] = syms
	}

	return &grammarImpl{
		g: g,
		tab: &compressor.RowDisplacementTable{
			OriginalRowCount: syn.Table.OriginalRowCount,
			OriginalColCount: syn.Table.OriginalColCount,
			EmptyValue:       syn.Table.EmptyValue,
			Entries:          syn.Table.Entries,
			Bounds:           syn.Table.Bounds,
			RowDisplacement:  syn.Table.RowDisplacement,
		},
		rhs:      rhs,
		term2Num: term2Num,
	}, nil
}

func (g *grammarImpl) Name() string {
	return g.g.Name
}

func (g *grammarImpl) StartSymbol() int {
	return g.g.Syntactic.Start
}

func (g *grammarImpl) EOF() int {
	return g.g.Syntactic.EOFSymbol
}

func (g *grammarImpl) TerminalCount() int {
	return len(g.g.Syntactic.Terminals)
}

func (g *grammarImpl) Terminal(terminal int) string {
	return g.g.Syntactic.Terminals[terminal]
}

func (g *grammarImpl) TerminalNum(label string) (int, bool) {
	num, ok := g.term2Num[label]
	return num, ok
}

func (g *grammarImpl) NonTerminal(nonTerminal int) string {
	return g.g.Syntactic.NonTerminals[nonTerminal]
}

func (g *grammarImpl) Production(nonTerminal int, terminal int) int {
	prod, err := g.tab.Lookup(nonTerminal, terminal)
	if err != nil {
		return spec.ProductionNumNil
	}
	return prod
}

func (g *grammarImpl) RHS(prod int) []Symbol {
	return g.rhs[prod]
}
