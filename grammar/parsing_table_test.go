package grammar

import (
	"errors"
	"testing"
)

type tableEntry struct {
	nonTerm string
	term    string
	prod    string
}

func TestTableBuilder_Build(t *testing.T) {
	tests := []struct {
		caption string
		src     string
		entries []tableEntry
	}{
		{
			caption: "a self-embedding production with an empty alternative",
			src:     grammarAnBn,
			entries: []tableEntry{
				{nonTerm: "S", term: "a", prod: "S → a S b"},
				{nonTerm: "S", term: "$", prod: "S → ε"},
				{nonTerm: "S", term: "b", prod: "S → ε"},
			},
		},
		{
			caption: "an expression grammar",
			src:     grammarExpr,
			entries: []tableEntry{
				{nonTerm: "EXPR", term: "identifier", prod: "EXPR → TERM EXPRSI"},
				{nonTerm: "EXPR", term: "number", prod: "EXPR → TERM EXPRSI"},
				{nonTerm: "EXPRSI", term: "+", prod: "EXPRSI → + TERM EXPRSI"},
				{nonTerm: "EXPRSI", term: "-", prod: "EXPRSI → - TERM EXPRSI"},
				{nonTerm: "EXPRSI", term: "$", prod: "EXPRSI → ε"},
				{nonTerm: "TERM", term: "identifier", prod: "TERM → identifier"},
				{nonTerm: "TERM", term: "number", prod: "TERM → number"},
			},
		},
		{
			caption: "an arithmetic grammar",
			src:     grammarArith,
			entries: []tableEntry{
				{nonTerm: "E", term: "(", prod: "E → T E'"},
				{nonTerm: "E", term: "id", prod: "E → T E'"},
				{nonTerm: "E'", term: "+", prod: "E' → + T E'"},
				{nonTerm: "E'", term: ")", prod: "E' → ε"},
				{nonTerm: "E'", term: "$", prod: "E' → ε"},
				{nonTerm: "T", term: "(", prod: "T → F T'"},
				{nonTerm: "T", term: "id", prod: "T → F T'"},
				{nonTerm: "T'", term: "*", prod: "T' → * F T'"},
				{nonTerm: "T'", term: "+", prod: "T' → ε"},
				{nonTerm: "T'", term: ")", prod: "T' → ε"},
				{nonTerm: "T'", term: "$", prod: "T' → ε"},
				{nonTerm: "F", term: "(", prod: "F → ( E )"},
				{nonTerm: "F", term: "id", prod: "F → id"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			a := genAnalysis(t, tt.src)
			if len(a.Table.Conflicts()) != 0 {
				t.Fatalf("unexpected conflicts: %v", a.Table.Conflicts())
			}
			if len(a.Table.Entries()) != len(tt.entries) {
				t.Fatalf("unexpected entry count; want: %v, got: %v", len(tt.entries), len(a.Table.Entries()))
			}
			for _, e := range tt.entries {
				prod, ok := a.Table.Lookup(e.nonTerm, e.term)
				if !ok {
					t.Fatalf("an entry was not found: [%v, %v]", e.nonTerm, e.term)
				}
				if prod.String() != e.prod {
					t.Fatalf("unexpected production on [%v, %v]; want: %v, got: %v", e.nonTerm, e.term, e.prod, prod)
				}
			}
		})
	}
}

func TestTableBuilder_Conflict(t *testing.T) {
	src := `
S -> a b | a c | d ;
`

	t.Run("conflicts are rejected by default", func(t *testing.T) {
		_, err := Analyze(genGrammar(t, src))
		if err == nil {
			t.Fatal("an error must be returned")
		}
		if !errors.Is(err, ErrGrammarConflict) {
			t.Fatalf("unexpected error: %v", err)
		}
		var cErrs ConflictErrors
		if !errors.As(err, &cErrs) {
			t.Fatalf("unexpected error type: %T", err)
		}
		if len(cErrs) != 1 {
			t.Fatalf("unexpected conflict count; want: 1, got: %v", len(cErrs))
		}
		c := cErrs[0]
		if c.NonTerminal != "S" || c.Lookahead != "a" {
			t.Fatalf("unexpected conflict: %v", c)
		}
		if c.Registered.String() != "S → a b" || c.Rejected.String() != "S → a c" {
			t.Fatalf("unexpected conflict: %v", c)
		}
	})

	t.Run("the first registration is kept on demand", func(t *testing.T) {
		a := genAnalysis(t, src, KeepFirst())
		prod, ok := a.Table.Lookup("S", "a")
		if !ok {
			t.Fatal("an entry was not found")
		}
		if prod.String() != "S → a b" {
			t.Fatalf("unexpected production: %v", prod)
		}
		if len(a.Table.Conflicts()) != 1 {
			t.Fatalf("unexpected conflicts: %v", a.Table.Conflicts())
		}
	})

	t.Run("a duplicated production conflicts with itself", func(t *testing.T) {
		gram := genGrammar(t, `
S -> a | a ;
`)
		if len(gram.Productions()) != 2 {
			t.Fatalf("both productions must be kept: %v", gram.Productions())
		}
		_, err := Analyze(gram)
		if !errors.Is(err, ErrGrammarConflict) {
			t.Fatalf("unexpected error: %v", err)
		}
		if errors.Is(err, ErrMalformedGrammar) {
			t.Fatalf("a duplicate is not a malformed grammar: %v", err)
		}
		var cErrs ConflictErrors
		if !errors.As(err, &cErrs) || len(cErrs) != 1 {
			t.Fatalf("unexpected conflicts: %v", err)
		}
		if c := cErrs[0]; c.Lookahead != "a" || c.Registered.Num() != 1 || c.Rejected.Num() != 2 {
			t.Fatalf("unexpected conflict: %v", c)
		}
	})

	t.Run("FIRST/FOLLOW conflicts are detected", func(t *testing.T) {
		_, err := Analyze(genGrammar(t, `
S -> A a ;
A -> a | ε ;
`))
		if !errors.Is(err, ErrGrammarConflict) {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestTableBuilder_PredictSet(t *testing.T) {
	gram := genGrammar(t, grammarExpr)
	fst, err := genFirstSets(gram.productionSet)
	if err != nil {
		t.Fatal(err)
	}
	flw, err := genFollowSets(gram.productionSet, gram.startSymbol, fst)
	if err != nil {
		t.Fatal(err)
	}
	b := NewTableBuilder(gram, fst, flw)

	expected := map[string][]string{
		"EXPR → TERM EXPRSI":     {"identifier", "number"},
		"EXPRSI → + TERM EXPRSI": {"+"},
		"EXPRSI → - TERM EXPRSI": {"-"},
		"EXPRSI → ε":             {"$"},
		"TERM → identifier":      {"identifier"},
		"TERM → number":          {"number"},
	}
	for _, prod := range gram.Productions() {
		pred, err := b.PredictSet(prod)
		if err != nil {
			t.Fatal(err)
		}
		testTerminalSet(t, prod.String(), pred, expected[prod.String()])
	}
}

func TestParsingTable_ExpectedTerminals(t *testing.T) {
	a := genAnalysis(t, grammarExpr)
	expected := map[string]bool{
		"+": true,
		"-": true,
		"$": true,
	}
	terms := a.Table.ExpectedTerminals("EXPRSI")
	if len(terms) != len(expected) {
		t.Fatalf("unexpected terminals: %v", terms)
	}
	for _, term := range terms {
		if !expected[term] {
			t.Fatalf("unexpected terminal: %v", term)
		}
	}
}
