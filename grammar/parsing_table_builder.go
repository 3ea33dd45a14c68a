package grammar

import (
	"fmt"
)

// ConflictPolicy decides what happens when two productions of a non-terminal are predicted by
// the same lookahead.
type ConflictPolicy int

const (
	// ConflictReject fails the build when any conflict is found.
	ConflictReject ConflictPolicy = iota

	// ConflictKeepFirst keeps the production registered first and records the conflict.
	ConflictKeepFirst
)

func (p ConflictPolicy) String() string {
	switch p {
	case ConflictReject:
		return "reject"
	case ConflictKeepFirst:
		return "keep-first"
	}
	return fmt.Sprintf("policy(%d)", int(p))
}

type TableBuilderOption func(b *TableBuilder)

// KeepFirst makes the builder keep the first registered production of a conflicting cell instead
// of failing.
func KeepFirst() TableBuilderOption {
	return func(b *TableBuilder) {
		b.policy = ConflictKeepFirst
	}
}

type TableBuilder struct {
	grammar *Grammar
	first   *FirstSets
	follow  *FollowSets
	policy  ConflictPolicy
}

func NewTableBuilder(gram *Grammar, first *FirstSets, follow *FollowSets, opts ...TableBuilderOption) *TableBuilder {
	return &TableBuilder{
		grammar: gram,
		first:   first,
		follow:  follow,
		policy:  conflictPolicyOf(opts),
	}
}

// conflictPolicyOf resolves options into a policy. ConflictReject is the default.
func conflictPolicyOf(opts []TableBuilderOption) ConflictPolicy {
	b := &TableBuilder{
		policy: ConflictReject,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b.policy
}

// PredictSet returns the lookahead terminals under which prod is chosen: FIRST of its right-hand
// side, with ε replaced by FOLLOW of its left-hand side.
func (b *TableBuilder) PredictSet(prod *Production) (*TerminalSet, error) {
	fst, err := b.first.OfSequence(prod.rhs)
	if err != nil {
		return nil, err
	}
	if !fst.ContainsEmpty() {
		return fst, nil
	}

	pred := newTerminalSet()
	pred.merge(fst, true)
	flw, ok := b.follow.Of(prod.lhs.Label())
	if !ok {
		return nil, fmt.Errorf("an entry of FOLLOW was not found; symbol: %v", prod.lhs)
	}
	pred.merge(flw, true)
	return pred, nil
}

// Build registers every production under each terminal of its predict set. Under ConflictReject,
// it returns ConflictErrors holding every conflict; under ConflictKeepFirst, the conflicts are
// available from the table.
func (b *TableBuilder) Build() (*ParsingTable, error) {
	tab := newParsingTable()
	for _, nonTerm := range b.grammar.NonTerminals() {
		prods, _ := b.grammar.productionSet.findByLHS(nonTerm)
		for _, prod := range prods {
			pred, err := b.PredictSet(prod)
			if err != nil {
				return nil, err
			}
			for _, term := range pred.Labels() {
				c := tab.write(nonTerm, term, prod)
				if c == nil {
					continue
				}
				tracer().Infof("%v", c)
				tab.conflicts = append(tab.conflicts, c)
			}
		}
	}

	if len(tab.conflicts) > 0 && b.policy == ConflictReject {
		return nil, tab.conflicts
	}
	return tab, nil
}
