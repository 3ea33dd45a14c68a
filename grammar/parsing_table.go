package grammar

import (
	"github.com/nihei9/ll1/grammar/symbol"
)

type tableKey struct {
	nonTerm symbol.Symbol
	term    string
}

// TableEntry is one cell of a parsing table.
type TableEntry struct {
	NonTerminal string
	Lookahead   string
	Production  *Production
}

// ParsingTable maps a pair of a non-terminal and a lookahead terminal to the production to
// expand. Each pair has at most one production. A ParsingTable is immutable once built and safe
// for concurrent reads.
type ParsingTable struct {
	entries   map[tableKey]*Production
	order     []tableKey
	conflicts ConflictErrors
}

func newParsingTable() *ParsingTable {
	return &ParsingTable{
		entries: map[tableKey]*Production{},
	}
}

// write registers a production. When the cell is already taken, it keeps the registered
// production and returns a conflict.
func (t *ParsingTable) write(nonTerm symbol.Symbol, term string, prod *Production) *ConflictError {
	key := tableKey{
		nonTerm: nonTerm,
		term:    term,
	}
	if registered, ok := t.entries[key]; ok {
		return &ConflictError{
			NonTerminal: nonTerm.Label(),
			Lookahead:   term,
			Registered:  registered,
			Rejected:    prod,
		}
	}
	t.entries[key] = prod
	t.order = append(t.order, key)
	return nil
}

// Lookup returns the production to expand nonTerm by when the lookahead is term.
func (t *ParsingTable) Lookup(nonTerm, term string) (*Production, bool) {
	prod, ok := t.entries[tableKey{
		nonTerm: symbol.NewNonTerminal(nonTerm),
		term:    term,
	}]
	return prod, ok
}

// Entries returns the cells in the order they were registered.
func (t *ParsingTable) Entries() []*TableEntry {
	entries := make([]*TableEntry, 0, len(t.order))
	for _, key := range t.order {
		entries = append(entries, &TableEntry{
			NonTerminal: key.nonTerm.Label(),
			Lookahead:   key.term,
			Production:  t.entries[key],
		})
	}
	return entries
}

// Conflicts returns the conflicts found while building the table. It is empty for an LL(1)
// grammar.
func (t *ParsingTable) Conflicts() ConflictErrors {
	return append(ConflictErrors{}, t.conflicts...)
}

// ExpectedTerminals returns the lookahead terminals nonTerm has a production for, in
// registration order.
func (t *ParsingTable) ExpectedTerminals(nonTerm string) []string {
	var terms []string
	for _, key := range t.order {
		if key.nonTerm.Label() == nonTerm {
			terms = append(terms, key.term)
		}
	}
	return terms
}
