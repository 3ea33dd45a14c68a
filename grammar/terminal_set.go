package grammar

import (
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/nihei9/ll1/grammar/symbol"
)

// TerminalSet is a set of terminal labels. FIRST sets may also hold the empty marker ε.
// Labels are enumerated in lexical order.
type TerminalSet struct {
	set *treeset.Set
}

func newTerminalSet(labels ...string) *TerminalSet {
	s := &TerminalSet{
		set: treeset.NewWithStringComparator(),
	}
	for _, l := range labels {
		s.set.Add(l)
	}
	return s
}

func (s *TerminalSet) add(label string) bool {
	if s.set.Contains(label) {
		return false
	}
	s.set.Add(label)
	return true
}

func (s *TerminalSet) addEmpty() bool {
	return s.add(symbol.LabelEmpty)
}

// merge adds all labels of t. When exceptEmpty is true, ε is not carried over.
func (s *TerminalSet) merge(t *TerminalSet, exceptEmpty bool) bool {
	if t == nil {
		return false
	}
	changed := false
	it := t.set.Iterator()
	for it.Next() {
		l := it.Value().(string)
		if exceptEmpty && l == symbol.LabelEmpty {
			continue
		}
		if s.add(l) {
			changed = true
		}
	}
	return changed
}

func (s *TerminalSet) Contains(label string) bool {
	return s.set.Contains(label)
}

func (s *TerminalSet) ContainsEmpty() bool {
	return s.set.Contains(symbol.LabelEmpty)
}

func (s *TerminalSet) Len() int {
	return s.set.Size()
}

func (s *TerminalSet) Labels() []string {
	vals := s.set.Values()
	labels := make([]string, len(vals))
	for i, v := range vals {
		labels[i] = v.(string)
	}
	return labels
}

func (s *TerminalSet) Equal(t *TerminalSet) bool {
	if s.Len() != t.Len() {
		return false
	}
	it := s.set.Iterator()
	for it.Next() {
		if !t.set.Contains(it.Value()) {
			return false
		}
	}
	return true
}

func (s *TerminalSet) String() string {
	return "{" + strings.Join(s.Labels(), ", ") + "}"
}
