package grammar

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nihei9/ll1/compressor"
	"github.com/nihei9/ll1/grammar/symbol"
	spec "github.com/nihei9/ll1/spec/grammar"
	mlcompiler "github.com/nihei9/maleeni/compiler"
	mlspec "github.com/nihei9/maleeni/spec"
)

type compileConfig struct {
	isReportingEnabled bool
	tableOpts          []TableBuilderOption
	cache              *AnalysisCache
}

type CompileOption func(config *compileConfig)

func EnableReporting() CompileOption {
	return func(config *compileConfig) {
		config.isReportingEnabled = true
	}
}

// KeepFirstOnConflict compiles a grammar that is not LL(1) by keeping the first registered
// production of every conflicting cell. The conflicts appear in the report.
func KeepFirstOnConflict() CompileOption {
	return func(config *compileConfig) {
		config.tableOpts = append(config.tableOpts, KeepFirst())
	}
}

// WithAnalysisCache makes Compile take the analysis from a cache, so a grammar already analyzed in
// the session is not analyzed again.
func WithAnalysisCache(c *AnalysisCache) CompileOption {
	return func(config *compileConfig) {
		config.cache = c
	}
}

// Compile analyzes a grammar and returns its serializable form. The report is nil unless
// EnableReporting is passed.
func Compile(gram *Grammar, opts ...CompileOption) (*spec.CompiledGrammar, *spec.Report, error) {
	config := &compileConfig{}
	for _, opt := range opts {
		opt(config)
	}

	var a *Analysis
	var err error
	if config.cache != nil {
		a, err = config.cache.Get(gram, config.tableOpts...)
	} else {
		a, err = Analyze(gram, config.tableOpts...)
	}
	if err != nil {
		return nil, nil, err
	}

	var lexical *spec.LexicalSpec
	if len(gram.tokens) > 0 {
		lexical, err = compileLexicalSpec(gram)
		if err != nil {
			return nil, nil, err
		}
	}

	syntactic, err := compileSyntacticSpec(a)
	if err != nil {
		return nil, nil, err
	}

	var report *spec.Report
	if config.isReportingEnabled {
		report = genReport(a)
	}

	return &spec.CompiledGrammar{
		Name:        gram.name,
		Fingerprint: gram.fingerprint,
		Lexical:     lexical,
		Syntactic:   syntactic,
	}, report, nil
}

const (
	kindPrefixTerminal = "t"
	kindPrefixSkip     = "s"
)

func compileLexicalSpec(gram *Grammar) (*spec.LexicalSpec, error) {
	r := gram.symbolTable.Reader()

	// Terminal labels are free-form, so lexical kinds are named after terminal numbers.
	entries := make([]*mlspec.LexEntry, 0, len(gram.tokens))
	kind2Term := map[string]int{}
	for i, tok := range gram.tokens {
		var kind string
		if tok.Skip {
			kind = kindPrefixSkip + strconv.Itoa(i+1)
			kind2Term[kind] = -1
		} else {
			sym, ok := r.ToSymbol(tok.Terminal)
			if !ok {
				return nil, fmt.Errorf("terminal symbol '%v' was not found in a symbol table", tok.Terminal)
			}
			num, _ := r.Num(sym)
			kind = kindPrefixTerminal + strconv.Itoa(num)
			kind2Term[kind] = num
		}
		entries = append(entries, &mlspec.LexEntry{
			Kind:    mlspec.LexKindName(kind),
			Pattern: mlspec.LexPattern(tok.Pattern),
		})
	}

	lexSpec, err, cErrs := mlcompiler.Compile(&mlspec.LexSpec{
		Name:    "ll1",
		Entries: entries,
	}, mlcompiler.CompressionLevel(mlcompiler.CompressionLevelMax))
	if err != nil {
		if len(cErrs) > 0 {
			var b strings.Builder
			writeCompileError(&b, cErrs[0], kind2Term, gram)
			for _, cerr := range cErrs[1:] {
				fmt.Fprintf(&b, "\n")
				writeCompileError(&b, cerr, kind2Term, gram)
			}
			return nil, errors.New(b.String())
		}
		return nil, err
	}

	kindToTerm := make([]int, len(lexSpec.KindNames))
	skip := make([]int, len(lexSpec.KindNames))
	for i, k := range lexSpec.KindNames {
		if k == mlspec.LexKindNameNil {
			kindToTerm[mlspec.LexKindIDNil] = -1
			continue
		}
		num, ok := kind2Term[k.String()]
		if !ok {
			return nil, fmt.Errorf("lexical kind '%v' was not found", k)
		}
		kindToTerm[i] = num
		if num < 0 {
			skip[i] = 1
		}
	}

	return &spec.LexicalSpec{
		Maleeni:        lexSpec,
		KindToTerminal: kindToTerm,
		Skip:           skip,
	}, nil
}

func writeCompileError(w io.Writer, cErr *mlcompiler.CompileError, kind2Term map[string]int, gram *Grammar) {
	if cErr.Fragment {
		fmt.Fprintf(w, "fragment ")
	}
	kind := fmt.Sprint(cErr.Kind)
	if num, ok := kind2Term[kind]; ok && num >= 0 {
		kind = gram.symbolTable.Reader().TerminalTexts()[num]
	}
	fmt.Fprintf(w, "%v: %v", kind, cErr.Cause)
	if cErr.Detail != "" {
		fmt.Fprintf(w, ": %v", cErr.Detail)
	}
}

func compileSyntacticSpec(a *Analysis) (*spec.SyntacticSpec, error) {
	gram := a.Grammar
	r := gram.symbolTable.Reader()
	terms := r.TerminalTexts()
	nonTerms := r.NonTerminalTexts()

	prods := gram.productionSet.getAllProductions()
	specProds := make([]*spec.Production, len(prods))
	for i, p := range prods {
		lhs, _ := r.Num(p.lhs)
		rhs := make([]string, len(p.rhs))
		for j, sym := range p.rhs {
			rhs[j] = sym.Label()
		}
		specProds[i] = &spec.Production{
			Num: p.Num(),
			LHS: lhs,
			RHS: rhs,
		}
	}

	entries := make([]int, len(nonTerms)*len(terms))
	for _, e := range a.Table.Entries() {
		row, ok := r.Num(symbol.NewNonTerminal(e.NonTerminal))
		if !ok {
			return nil, fmt.Errorf("non-terminal symbol '%v' was not found in a symbol table", e.NonTerminal)
		}
		col, ok := r.Num(symbol.NewTerminal(e.Lookahead))
		if !ok {
			return nil, fmt.Errorf("terminal symbol '%v' was not found in a symbol table", e.Lookahead)
		}
		entries[row*len(terms)+col] = e.Production.Num()
	}
	tab, err := compressor.Compress(entries, len(terms), spec.ProductionNumNil)
	if err != nil {
		return nil, err
	}

	start, _ := r.Num(gram.startSymbol)
	eof, _ := r.Num(symbol.SymbolEOF)

	return &spec.SyntacticSpec{
		Start:        start,
		Terminals:    terms,
		NonTerminals: nonTerms,
		EOFSymbol:    eof,
		Productions:  specProds,
		Table: &spec.RowDisplacementTable{
			OriginalRowCount: tab.OriginalRowCount,
			OriginalColCount: tab.OriginalColCount,
			EmptyValue:       tab.EmptyValue,
			Entries:          tab.Entries,
			Bounds:           tab.Bounds,
			RowDisplacement:  tab.RowDisplacement,
		},
	}, nil
}

func genReport(a *Analysis) *spec.Report {
	gram := a.Grammar
	r := gram.symbolTable.Reader()

	tokens := map[string]*TokenDef{}
	for _, tok := range gram.tokens {
		tokens[tok.Terminal] = tok
	}

	report := &spec.Report{
		Name:  gram.name,
		Start: gram.startSymbol.Label(),
	}
	for i, sym := range r.TerminalSymbols() {
		t := &spec.Terminal{
			Number: i,
			Name:   sym.Label(),
		}
		if tok, ok := tokens[sym.Label()]; ok {
			t.Pattern = tok.Pattern
		}
		report.Terminals = append(report.Terminals, t)
	}
	// Skipped kinds are not terminals of the grammar but belong to the lexical alphabet.
	for _, tok := range gram.tokens {
		if !tok.Skip {
			continue
		}
		report.Terminals = append(report.Terminals, &spec.Terminal{
			Number:  -1,
			Name:    tok.Terminal,
			Pattern: tok.Pattern,
			Skip:    true,
		})
	}
	for i, sym := range r.NonTerminalSymbols() {
		report.NonTerminals = append(report.NonTerminals, &spec.NonTerminal{
			Number: i,
			Name:   sym.Label(),
		})

		fst, _ := a.First.Of(sym.Label())
		report.First = append(report.First, &spec.SetEntry{
			NonTerminal: sym.Label(),
			Terminals:   fst.Labels(),
		})
		flw, _ := a.Follow.Of(sym.Label())
		report.Follow = append(report.Follow, &spec.SetEntry{
			NonTerminal: sym.Label(),
			Terminals:   flw.Labels(),
		})
	}
	for _, p := range gram.productionSet.getAllProductions() {
		rhs := make([]string, len(p.rhs))
		for i, sym := range p.rhs {
			rhs[i] = sym.Label()
		}
		report.Productions = append(report.Productions, &spec.ReportProduction{
			Number: p.Num(),
			LHS:    p.lhs.Label(),
			RHS:    rhs,
		})
	}
	for _, e := range a.Table.Entries() {
		report.Table = append(report.Table, &spec.TableEntry{
			NonTerminal: e.NonTerminal,
			Lookahead:   e.Lookahead,
			Production:  e.Production.Num(),
		})
	}
	for _, c := range a.Table.Conflicts() {
		report.Conflicts = append(report.Conflicts, &spec.Conflict{
			NonTerminal: c.NonTerminal,
			Lookahead:   c.Lookahead,
			Adopted:     c.Registered.Num(),
			Rejected:    c.Rejected.Num(),
		})
	}
	for _, sym := range a.First.Cycles() {
		report.FirstCycles = append(report.FirstCycles, sym.Label())
	}
	for _, sym := range a.Follow.Cycles() {
		report.FollowCycles = append(report.FollowCycles, sym.Label())
	}

	return report
}
