package grammar

import (
	"errors"
	"strings"
	"testing"

	verr "github.com/nihei9/ll1/error"
	"github.com/nihei9/ll1/spec"
)

func TestGrammarBuilder_Build(t *testing.T) {
	gram := genGrammar(t, grammarExpr)

	if gram.Name() != "expr" {
		t.Fatalf("unexpected name: %v", gram.Name())
	}
	if gram.Start().Label() != "EXPR" {
		t.Fatalf("unexpected start symbol: %v", gram.Start())
	}

	nonTerms := []string{"EXPR", "EXPRSI", "TERM"}
	if len(gram.NonTerminals()) != len(nonTerms) {
		t.Fatalf("unexpected non-terminals: %v", gram.NonTerminals())
	}
	for i, sym := range gram.NonTerminals() {
		if sym.Label() != nonTerms[i] {
			t.Fatalf("unexpected non-terminal; want: %v, got: %v", nonTerms[i], sym)
		}
		if !gram.IsNonTerminal(sym.Label()) {
			t.Fatalf("%v must be a non-terminal", sym)
		}
	}

	terms := []string{"$", "+", "-", "identifier", "number"}
	if len(gram.Terminals()) != len(terms) {
		t.Fatalf("unexpected terminals: %v", gram.Terminals())
	}
	for i, sym := range gram.Terminals() {
		if sym.Label() != terms[i] {
			t.Fatalf("unexpected terminal; want: %v, got: %v", terms[i], sym)
		}
		if gram.IsNonTerminal(sym.Label()) {
			t.Fatalf("%v must be a terminal", sym)
		}
	}

	prods := []string{
		"EXPR → TERM EXPRSI",
		"EXPRSI → + TERM EXPRSI",
		"EXPRSI → - TERM EXPRSI",
		"EXPRSI → ε",
		"TERM → identifier",
		"TERM → number",
	}
	for i, p := range gram.Productions() {
		if p.String() != prods[i] {
			t.Fatalf("unexpected production; want: %v, got: %v", prods[i], p)
		}
		if p.Num() != i+1 {
			t.Fatalf("unexpected production number; want: %v, got: %v", i+1, p.Num())
		}
		q, ok := gram.Production(p.Num())
		if !ok || q != p {
			t.Fatalf("production #%v was not found", p.Num())
		}
	}
	if len(gram.ProductionsOf("EXPRSI")) != 3 {
		t.Fatalf("unexpected productions: %v", gram.ProductionsOf("EXPRSI"))
	}
	if gram.ProductionsOf("identifier") != nil {
		t.Fatal("a terminal must not have productions")
	}
	if gram.ProductionsOf("UNDEFINED") != nil {
		t.Fatal("an unknown label must not have productions")
	}
}

func TestGrammarBuilder_DefaultStartAndName(t *testing.T) {
	gram := genGrammar(t, `
A -> B ;
B -> b ;
`)
	if gram.Start().Label() != "A" {
		t.Fatalf("the first non-terminal must be the start symbol; got: %v", gram.Start())
	}
	if gram.Name() != defaultGrammarName {
		t.Fatalf("unexpected name: %v", gram.Name())
	}
}

func TestGrammarBuilder_Tokens(t *testing.T) {
	gram := genGrammar(t, `
S -> id '=' num ;

#token id "[a-z]+" ;
#token '=' "=" ;
#token num "[0-9]+" ;
#skip ws "[\u{0020}]+" ;
`)
	expected := []*TokenDef{
		{Terminal: "id", Pattern: "[a-z]+"},
		{Terminal: "=", Pattern: "="},
		{Terminal: "num", Pattern: "[0-9]+"},
		{Terminal: "ws", Pattern: `[\u{0020}]+`, Skip: true},
	}
	tokens := gram.Tokens()
	if len(tokens) != len(expected) {
		t.Fatalf("unexpected tokens: %v", tokens)
	}
	for i, tok := range tokens {
		if *tok != *expected[i] {
			t.Fatalf("unexpected token; want: %+v, got: %+v", expected[i], tok)
		}
	}
}

func TestGrammarBuilderSpecError(t *testing.T) {
	tests := []struct {
		caption string
		specSrc string
		errs    []error
	}{
		{
			caption: "the start symbol must be defined",
			specSrc: `
#start X ;

S -> a ;
`,
			errs: []error{semErrUndefinedStart},
		},
		{
			caption: "the start symbol must be a non-terminal",
			specSrc: `
#start a ;

S -> a ;
`,
			errs: []error{semErrUndefinedStart},
		},
		{
			caption: "an undeclared label is undefined when terminals are declared",
			specSrc: `
#terminals a ;

S -> a B ;
`,
			errs: []error{semErrUndefinedSym},
		},
		{
			caption: "a terminal cannot be declared twice",
			specSrc: `
#terminals a a ;

S -> a ;
`,
			errs: []error{semErrDuplicateTerminal},
		},
		{
			caption: "a declared terminal cannot share a name with a non-terminal",
			specSrc: `
#terminals a S ;

S -> a ;
`,
			errs: []error{semErrDuplicateName},
		},
		{
			caption: "ε must be alone",
			specSrc: `
S -> a ε ;
`,
			errs: []error{semErrMixedEmpty},
		},
		{
			caption: "$ cannot appear in a production",
			specSrc: `
S -> a $ ;
`,
			errs: []error{semErrReservedLabel},
		},
		{
			caption: "$ cannot be defined",
			specSrc: `
S -> a ;
$ -> b ;
`,
			errs: []error{semErrReservedLabel},
		},
		{
			caption: "a token cannot be bound to a non-terminal",
			specSrc: `
S -> a ;

#token a "a" ;
#token S "s" ;
`,
			errs: []error{semErrTokenNonTerminal},
		},
		{
			caption: "a terminal cannot have two tokens",
			specSrc: `
S -> a ;

#token a "a" ;
#token a "b" ;
`,
			errs: []error{semErrDuplicateToken},
		},
		{
			caption: "a terminal used in productions cannot be skipped",
			specSrc: `
S -> a ;

#skip a "a" ;
`,
			errs: []error{semErrTermCannotBeSkipped, semErrMissingToken},
		},
		{
			caption: "a token must be used unless it is skipped",
			specSrc: `
S -> a ;

#token a "a" ;
#token b "b" ;
`,
			errs: []error{semErrUnusedTerminal},
		},
		{
			caption: "every terminal needs a token once any token is defined",
			specSrc: `
S -> a b ;

#token a "a" ;
`,
			errs: []error{semErrMissingToken},
		},
		{
			caption: "all errors are collected",
			specSrc: `
#start X ;

S -> a ε | b | ε c ;
`,
			errs: []error{semErrMixedEmpty, semErrMixedEmpty, semErrUndefinedStart},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			ast, err := spec.Parse(strings.NewReader(tt.specSrc))
			if err != nil {
				t.Fatal(err)
			}

			b := GrammarBuilder{
				AST: ast,
			}
			_, err = b.Build()
			if err == nil {
				t.Fatal("an expected error didn't occur")
			}
			if !errors.Is(err, ErrMalformedGrammar) {
				t.Fatalf("the error must match ErrMalformedGrammar: %v", err)
			}
			specErrs, ok := err.(verr.SpecErrors)
			if !ok {
				t.Fatalf("unexpected error type: want: %T, got: %T: %v", verr.SpecErrors{}, err, err)
			}
			if len(specErrs) != len(tt.errs) {
				t.Fatalf("unexpected error count: want: %v, got: %v: %v", len(tt.errs), len(specErrs), specErrs)
			}
			for i, e := range tt.errs {
				if !errors.Is(specErrs[i].Cause, e) {
					t.Fatalf("unexpected error; want: %v, got: %v", e, specErrs[i])
				}
			}
		})
	}
}

func TestGrammarBuilder_NoProduction(t *testing.T) {
	b := GrammarBuilder{
		AST: &spec.RootNode{},
	}
	_, err := b.Build()
	if !errors.Is(err, semErrNoProduction) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestReportImplicitTerminals(t *testing.T) {
	tests := []struct {
		caption string
		src     string
		labels  []string
	}{
		{
			caption: "a misspelled non-terminal",
			src: `
S -> a EXPRR ;
EXPR -> b | Id ;
`,
			labels: []string{"EXPRR", "Id"},
		},
		{
			caption: "lower-case and quoted terminals",
			src: `
S -> a '+' ID ;
ID -> b ;
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			g := genGrammar(t, tt.src)
			labels := reportImplicitTerminals(g.productionSet)
			if strings.Join(labels, " ") != strings.Join(tt.labels, " ") {
				t.Fatalf("unexpected labels: want: %v, got: %v", tt.labels, labels)
			}
		})
	}
}

func TestGrammar_Fingerprint(t *testing.T) {
	g1 := genGrammar(t, grammarExpr)
	g2 := genGrammar(t, `
#name another_name ;
#start EXPR ;

EXPR -> TERM EXPRSI ;
EXPRSI -> '+' TERM EXPRSI | '-' TERM EXPRSI | ε ;
TERM -> identifier | number ;
`)
	g3 := genGrammar(t, grammarArith)

	if g1.Fingerprint() == "" {
		t.Fatal("a fingerprint must not be empty")
	}
	if g1.Fingerprint() != g2.Fingerprint() {
		t.Fatalf("the same productions must have the same fingerprint; %v vs %v", g1.Fingerprint(), g2.Fingerprint())
	}
	if g1.Fingerprint() == g3.Fingerprint() {
		t.Fatal("different grammars must have different fingerprints")
	}
}

func TestGrammar_String(t *testing.T) {
	g1 := genGrammar(t, grammarExpr)
	g2 := genGrammar(t, g1.String())
	if g1.Fingerprint() != g2.Fingerprint() {
		t.Fatalf("a printed grammar must read back to the same grammar:\n%v", g1)
	}
}
