package grammar

import (
	"fmt"

	"github.com/nihei9/ll1/grammar/symbol"
)

// FirstSets maps every non-terminal to the terminals that can begin a derivation from it. A set
// contains ε when the non-terminal can derive the empty string.
type FirstSets struct {
	sets   map[symbol.Symbol]*TerminalSet
	cycles []symbol.Symbol
}

// Of returns FIRST of a symbol label. FIRST of a terminal is the terminal itself.
func (fst *FirstSets) Of(label string) (*TerminalSet, bool) {
	if s, ok := fst.sets[symbol.NewNonTerminal(label)]; ok {
		return s, true
	}
	if symbol.IsReserved(label) {
		return nil, false
	}
	return newTerminalSet(label), true
}

// OfSequence returns FIRST of a sequence of symbols. The result contains ε when every symbol of
// the sequence can derive the empty string, including when the sequence is empty.
func (fst *FirstSets) OfSequence(syms []symbol.Symbol) (*TerminalSet, error) {
	acc := newTerminalSet()
	for _, sym := range syms {
		if sym.IsTerminal() {
			acc.add(sym.Label())
			return acc, nil
		}
		e, ok := fst.sets[sym]
		if !ok {
			return nil, fmt.Errorf("an entry of FIRST was not found; symbol: %v", sym)
		}
		acc.merge(e, true)
		if !e.ContainsEmpty() {
			return acc, nil
		}
	}
	acc.addEmpty()
	return acc, nil
}

// Cycles returns the non-terminals whose computation reentered themselves, in the order the
// reentries were found.
func (fst *FirstSets) Cycles() []symbol.Symbol {
	return append([]symbol.Symbol{}, fst.cycles...)
}

type firstComContext struct {
	prods      *productionSet
	first      *FirstSets
	inProgress map[symbol.Symbol]struct{}
	done       map[symbol.Symbol]struct{}
	cycleFound map[symbol.Symbol]struct{}
}

func newFirstComContext(prods *productionSet) *firstComContext {
	return &firstComContext{
		prods: prods,
		first: &FirstSets{
			sets: map[symbol.Symbol]*TerminalSet{},
		},
		inProgress: map[symbol.Symbol]struct{}{},
		done:       map[symbol.Symbol]struct{}{},
		cycleFound: map[symbol.Symbol]struct{}{},
	}
}

// genFirstSets computes FIRST of every non-terminal. Each non-terminal is marked in progress
// while its productions are scanned; reentering a marked non-terminal contributes what is known
// so far and records a cycle. A set computed inside a cycle may be incomplete, so in that case
// every set is swept again until none changes.
func genFirstSets(prods *productionSet) (*FirstSets, error) {
	cc := newFirstComContext(prods)
	for _, prod := range prods.getAllProductions() {
		if _, err := cc.resolve(prod.lhs); err != nil {
			return nil, err
		}
	}

	if len(cc.first.cycles) == 0 {
		return cc.first, nil
	}

	tracer().Debugf("FIRST has cycles through %v; sweeping until a fixed point", cc.first.cycles)
	for {
		more := false
		for _, prod := range prods.getAllProductions() {
			changed, err := cc.genProdFirstEntry(cc.first.sets[prod.lhs], prod)
			if err != nil {
				return nil, err
			}
			if changed {
				more = true
			}
		}
		if !more {
			break
		}
	}
	return cc.first, nil
}

func (cc *firstComContext) resolve(nonTerm symbol.Symbol) (*TerminalSet, error) {
	if _, ok := cc.done[nonTerm]; ok {
		return cc.first.sets[nonTerm], nil
	}
	if _, ok := cc.inProgress[nonTerm]; ok {
		if _, found := cc.cycleFound[nonTerm]; !found {
			cc.cycleFound[nonTerm] = struct{}{}
			cc.first.cycles = append(cc.first.cycles, nonTerm)
		}
		return cc.first.sets[nonTerm], nil
	}

	prods, ok := cc.prods.findByLHS(nonTerm)
	if !ok {
		return nil, fmt.Errorf("no production was found; non-terminal: %v", nonTerm)
	}

	cc.inProgress[nonTerm] = struct{}{}
	acc := newTerminalSet()
	cc.first.sets[nonTerm] = acc
	for _, prod := range prods {
		if _, err := cc.genProdFirstEntry(acc, prod); err != nil {
			return nil, err
		}
	}
	delete(cc.inProgress, nonTerm)
	cc.done[nonTerm] = struct{}{}

	return acc, nil
}

func (cc *firstComContext) genProdFirstEntry(acc *TerminalSet, prod *Production) (bool, error) {
	if prod.IsEmpty() {
		return acc.addEmpty(), nil
	}

	changed := false
	for _, sym := range prod.rhs {
		if sym.IsTerminal() {
			if acc.add(sym.Label()) {
				changed = true
			}
			return changed, nil
		}

		e, err := cc.resolve(sym)
		if err != nil {
			return false, err
		}
		if acc.merge(e, true) {
			changed = true
		}
		if !e.ContainsEmpty() {
			return changed, nil
		}
	}
	if acc.addEmpty() {
		changed = true
	}
	return changed, nil
}
