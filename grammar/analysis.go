package grammar

import (
	"fmt"
	"sync"

	"github.com/emirpasic/gods/maps/treemap"
)

// Analysis bundles a grammar with everything derived from it. All of its parts are immutable, so
// an Analysis can be shared by any number of parsers.
type Analysis struct {
	Grammar *Grammar
	First   *FirstSets
	Follow  *FollowSets
	Table   *ParsingTable
}

// Analyze computes FIRST, FOLLOW and the parsing table of a grammar.
func Analyze(gram *Grammar, opts ...TableBuilderOption) (*Analysis, error) {
	first, err := genFirstSets(gram.productionSet)
	if err != nil {
		return nil, err
	}
	follow, err := genFollowSets(gram.productionSet, gram.startSymbol, first)
	if err != nil {
		return nil, err
	}
	tab, err := NewTableBuilder(gram, first, follow, opts...).Build()
	if err != nil {
		return nil, err
	}

	tracer().Debugf("analyzed %v: %v productions, %v table entries", gram.name, len(gram.productionSet.getAllProductions()), len(tab.order))

	return &Analysis{
		Grammar: gram,
		First:   first,
		Follow:  follow,
		Table:   tab,
	}, nil
}

// AnalysisCache memoizes analyses by grammar fingerprint, so a grammar is analyzed once per
// session no matter how many times it is loaded.
type AnalysisCache struct {
	mu      sync.Mutex
	entries *treemap.Map
	hits    int
	misses  int
}

func NewAnalysisCache() *AnalysisCache {
	return &AnalysisCache{
		entries: treemap.NewWithStringComparator(),
	}
}

func (c *AnalysisCache) Get(gram *Grammar, opts ...TableBuilderOption) (*Analysis, error) {
	key := fmt.Sprintf("%v/%v", gram.Fingerprint(), conflictPolicyOf(opts))

	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := c.entries.Get(key); ok {
		c.hits++
		tracer().Debugf("analysis cache hit: %v", key)
		return v.(*Analysis), nil
	}

	c.misses++
	a, err := Analyze(gram, opts...)
	if err != nil {
		return nil, err
	}
	c.entries.Put(key, a)
	return a, nil
}

// Stats returns how many lookups were served from the cache and how many analyzed a grammar.
func (c *AnalysisCache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

func (c *AnalysisCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries.Size()
}
