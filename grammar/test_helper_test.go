package grammar

import (
	"strings"
	"testing"

	"github.com/nihei9/ll1/spec"
)

func genGrammar(t *testing.T, src string) *Grammar {
	t.Helper()

	ast, err := spec.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	b := GrammarBuilder{
		AST: ast,
	}
	gram, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	return gram
}

func genAnalysis(t *testing.T, src string, opts ...TableBuilderOption) *Analysis {
	t.Helper()

	a, err := Analyze(genGrammar(t, src), opts...)
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func testTerminalSet(t *testing.T, caption string, actual *TerminalSet, expected []string) {
	t.Helper()

	if actual == nil {
		t.Fatalf("%v: set is nil", caption)
	}
	e := newTerminalSet(expected...)
	if !actual.Equal(e) {
		t.Fatalf("%v: unexpected set; want: %v, got: %v", caption, e, actual)
	}
}

const grammarAnBn = `
S -> a S b | ε ;
`

const grammarExpr = `
#name expr ;
#start EXPR ;

EXPR   -> TERM EXPRSI ;
EXPRSI -> '+' TERM EXPRSI
        | '-' TERM EXPRSI
        | ε
        ;
TERM   -> identifier | number ;
`

const grammarArith = `
#name arith ;

E  -> T E' ;
E' -> '+' T E' | ε ;
T  -> F T' ;
T' -> '*' F T' | ε ;
F  -> '(' E ')' | id ;
`
