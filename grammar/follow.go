package grammar

import (
	"fmt"

	"github.com/nihei9/ll1/grammar/symbol"
)

// FollowSets maps every non-terminal to the terminals that can immediately follow it. FOLLOW of
// the start symbol contains $. A FOLLOW set never contains ε.
type FollowSets struct {
	sets   map[symbol.Symbol]*TerminalSet
	cycles []symbol.Symbol
}

func (flw *FollowSets) Of(label string) (*TerminalSet, bool) {
	s, ok := flw.sets[symbol.NewNonTerminal(label)]
	return s, ok
}

// Cycles returns the non-terminals whose computation reentered themselves.
func (flw *FollowSets) Cycles() []symbol.Symbol {
	return append([]symbol.Symbol{}, flw.cycles...)
}

type followComContext struct {
	prods      *productionSet
	start      symbol.Symbol
	first      *FirstSets
	follow     *FollowSets
	inProgress map[symbol.Symbol]struct{}
	done       map[symbol.Symbol]struct{}
	cycleFound map[symbol.Symbol]struct{}
}

func newFollowComContext(prods *productionSet, start symbol.Symbol, first *FirstSets) *followComContext {
	return &followComContext{
		prods: prods,
		start: start,
		first: first,
		follow: &FollowSets{
			sets: map[symbol.Symbol]*TerminalSet{},
		},
		inProgress: map[symbol.Symbol]struct{}{},
		done:       map[symbol.Symbol]struct{}{},
		cycleFound: map[symbol.Symbol]struct{}{},
	}
}

// genFollowSets computes FOLLOW of every non-terminal the same way genFirstSets does: resolving
// FOLLOW of a left-hand side reenters it at most once, and any reentry triggers a sweep until a
// fixed point.
func genFollowSets(prods *productionSet, start symbol.Symbol, first *FirstSets) (*FollowSets, error) {
	cc := newFollowComContext(prods, start, first)
	for _, prod := range prods.getAllProductions() {
		if _, err := cc.resolve(prod.lhs); err != nil {
			return nil, err
		}
	}

	if len(cc.follow.cycles) == 0 {
		return cc.follow, nil
	}

	tracer().Debugf("FOLLOW has cycles through %v; sweeping until a fixed point", cc.follow.cycles)
	for {
		more := false
		for _, prod := range prods.getAllProductions() {
			if _, ok := cc.follow.sets[prod.lhs]; !ok {
				continue
			}
			changed, err := cc.genFollowEntry(cc.follow.sets[prod.lhs], prod.lhs)
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
	return cc.follow, nil
}

func (cc *followComContext) resolve(nonTerm symbol.Symbol) (*TerminalSet, error) {
	if _, ok := cc.done[nonTerm]; ok {
		return cc.follow.sets[nonTerm], nil
	}
	if _, ok := cc.inProgress[nonTerm]; ok {
		if _, found := cc.cycleFound[nonTerm]; !found {
			cc.cycleFound[nonTerm] = struct{}{}
			cc.follow.cycles = append(cc.follow.cycles, nonTerm)
		}
		return cc.follow.sets[nonTerm], nil
	}

	cc.inProgress[nonTerm] = struct{}{}
	acc := newTerminalSet()
	cc.follow.sets[nonTerm] = acc
	if _, err := cc.genFollowEntry(acc, nonTerm); err != nil {
		return nil, err
	}
	delete(cc.inProgress, nonTerm)
	cc.done[nonTerm] = struct{}{}

	return acc, nil
}

func (cc *followComContext) genFollowEntry(acc *TerminalSet, nonTerm symbol.Symbol) (bool, error) {
	changed := false

	if nonTerm == cc.start {
		if acc.add(symbol.LabelEOF) {
			changed = true
		}
	}
	for _, prod := range cc.prods.getAllProductions() {
		for i, sym := range prod.rhs {
			if sym != nonTerm {
				continue
			}
			fst, err := cc.first.OfSequence(prod.rhs[i+1:])
			if err != nil {
				return false, err
			}
			if acc.merge(fst, true) {
				changed = true
			}
			if !fst.ContainsEmpty() || prod.lhs == nonTerm {
				continue
			}
			flw, err := cc.resolve(prod.lhs)
			if err != nil {
				return false, err
			}
			if flw == nil {
				return false, fmt.Errorf("an entry of FOLLOW was not found; symbol: %v", prod.lhs)
			}
			if acc.merge(flw, true) {
				changed = true
			}
		}
	}

	return changed, nil
}
