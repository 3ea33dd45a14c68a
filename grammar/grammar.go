package grammar

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cnf/structhash"
	verr "github.com/nihei9/ll1/error"
	"github.com/nihei9/ll1/grammar/symbol"
	"github.com/nihei9/ll1/spec"
)

const defaultGrammarName = "grammar"

// TokenDef binds a terminal to the pattern a lexer recognizes it by.
type TokenDef struct {
	Terminal string
	Pattern  string
	Skip     bool
}

// Grammar is an immutable context-free grammar. A label is a non-terminal if and only if some
// production defines it.
type Grammar struct {
	name          string
	startSymbol   symbol.Symbol
	symbolTable   *symbol.SymbolTable
	productionSet *productionSet
	tokens        []*TokenDef
	fingerprint   string
}

func (g *Grammar) Name() string {
	return g.name
}

func (g *Grammar) Start() symbol.Symbol {
	return g.startSymbol
}

// Symbol resolves a label into a symbol of the grammar.
func (g *Grammar) Symbol(label string) (symbol.Symbol, bool) {
	return g.symbolTable.Reader().ToSymbol(label)
}

func (g *Grammar) IsNonTerminal(label string) bool {
	sym, ok := g.Symbol(label)
	return ok && sym.IsNonTerminal()
}

func (g *Grammar) IsTerminal(label string) bool {
	sym, ok := g.Symbol(label)
	return ok && sym.IsTerminal()
}

// NonTerminals returns the non-terminals in definition order.
func (g *Grammar) NonTerminals() []symbol.Symbol {
	return g.symbolTable.Reader().NonTerminalSymbols()
}

// Terminals returns the terminal alphabet in order of first occurrence. EOF comes first.
func (g *Grammar) Terminals() []symbol.Symbol {
	return g.symbolTable.Reader().TerminalSymbols()
}

// Productions returns all productions in definition order.
func (g *Grammar) Productions() []*Production {
	return append([]*Production{}, g.productionSet.getAllProductions()...)
}

// ProductionsOf returns the productions of a non-terminal in definition order.
func (g *Grammar) ProductionsOf(label string) []*Production {
	sym, ok := g.Symbol(label)
	if !ok || !sym.IsNonTerminal() {
		return nil
	}
	prods, ok := g.productionSet.findByLHS(sym)
	if !ok {
		return nil
	}
	return append([]*Production{}, prods...)
}

func (g *Grammar) Production(num int) (*Production, bool) {
	return g.productionSet.findByNum(num)
}

func (g *Grammar) Tokens() []*TokenDef {
	return append([]*TokenDef{}, g.tokens...)
}

// Fingerprint identifies the grammar by its content. Grammars with the same start symbol,
// productions and tokens have the same fingerprint.
func (g *Grammar) Fingerprint() string {
	return g.fingerprint
}

type GrammarBuilder struct {
	AST *spec.RootNode

	errs verr.SpecErrors
}

func (b *GrammarBuilder) Build() (*Grammar, error) {
	if b.AST == nil || len(b.AST.Productions) == 0 {
		return nil, verr.SpecErrors{
			{
				Cause: semErrNoProduction,
			},
		}
	}

	symTab := symbol.NewSymbolTable()
	w := symTab.Writer()

	// Non-terminals are registered before anything else so that any label defined by a production
	// is a non-terminal wherever it appears.
	for _, prod := range b.AST.Productions {
		if symbol.IsReserved(prod.LHS) {
			b.errs = append(b.errs, &verr.SpecError{
				Cause:  semErrReservedLabel,
				Detail: prod.LHS,
				Row:    prod.Pos.Row,
				Col:    prod.Pos.Col,
			})
			continue
		}
		_, err := w.RegisterNonTerminalSymbol(prod.LHS)
		if err != nil {
			return nil, err
		}
	}

	declared := map[string]struct{}{}
	for _, term := range b.AST.Terminals {
		switch {
		case symbol.IsReserved(term.Label):
			b.errs = append(b.errs, &verr.SpecError{
				Cause:  semErrReservedLabel,
				Detail: term.Label,
				Row:    term.Pos.Row,
				Col:    term.Pos.Col,
			})
			continue
		case isNonTerminalLabel(symTab, term.Label):
			b.errs = append(b.errs, &verr.SpecError{
				Cause:  semErrDuplicateName,
				Detail: term.Label,
				Row:    term.Pos.Row,
				Col:    term.Pos.Col,
			})
			continue
		}
		if _, ok := declared[term.Label]; ok {
			b.errs = append(b.errs, &verr.SpecError{
				Cause:  semErrDuplicateTerminal,
				Detail: term.Label,
				Row:    term.Pos.Row,
				Col:    term.Pos.Col,
			})
			continue
		}
		declared[term.Label] = struct{}{}
	}

	prods := newProductionSet()
	for _, prod := range b.AST.Productions {
		lhs, ok := symTab.Reader().ToSymbol(prod.LHS)
		if !ok || !lhs.IsNonTerminal() {
			continue
		}
		for _, alt := range prod.RHS {
			rhs, ok := b.genRHS(w, alt, declared)
			if !ok {
				continue
			}
			p, err := newProduction(lhs, rhs)
			if err != nil {
				return nil, err
			}
			if !prods.append(p) {
				tracer().Infof("%v:%v: duplicate production: %v", alt.Pos.Row, alt.Pos.Col, p)
			}
		}
	}

	// Terminals declared but never used still belong to the alphabet.
	for _, term := range b.AST.Terminals {
		if _, ok := declared[term.Label]; !ok {
			continue
		}
		if _, err := w.RegisterTerminalSymbol(term.Label); err != nil {
			return nil, err
		}
	}

	var start symbol.Symbol
	{
		startLabel := b.AST.Start
		if startLabel == "" {
			startLabel = b.AST.Productions[0].LHS
		}
		sym, ok := symTab.Reader().ToSymbol(startLabel)
		if !ok || !sym.IsNonTerminal() {
			b.errs = append(b.errs, &verr.SpecError{
				Cause:  semErrUndefinedStart,
				Detail: startLabel,
				Row:    b.AST.StartPos.Row,
				Col:    b.AST.StartPos.Col,
			})
		}
		start = sym
	}

	tokens := b.genTokens(symTab)

	if len(b.errs) > 0 {
		return nil, b.errs
	}

	reportUnreachable(prods, start)
	if len(declared) == 0 && len(tokens) == 0 {
		reportImplicitTerminals(prods)
	}

	name := b.AST.Name
	if name == "" {
		name = defaultGrammarName
	}

	fp, err := genFingerprint(start, prods, tokens)
	if err != nil {
		return nil, err
	}

	return &Grammar{
		name:          name,
		startSymbol:   start,
		symbolTable:   symTab,
		productionSet: prods,
		tokens:        tokens,
		fingerprint:   fp,
	}, nil
}

func (b *GrammarBuilder) genRHS(w *symbol.SymbolTableWriter, alt *spec.AlternativeNode, declared map[string]struct{}) ([]symbol.Symbol, bool) {
	if len(alt.Elements) == 1 && alt.Elements[0].Label == symbol.LabelEmpty {
		return []symbol.Symbol{}, true
	}

	ok := true
	rhs := make([]symbol.Symbol, 0, len(alt.Elements))
	for _, elem := range alt.Elements {
		switch elem.Label {
		case symbol.LabelEmpty:
			b.errs = append(b.errs, &verr.SpecError{
				Cause: semErrMixedEmpty,
				Row:   elem.Pos.Row,
				Col:   elem.Pos.Col,
			})
			ok = false
			continue
		case symbol.LabelEOF:
			b.errs = append(b.errs, &verr.SpecError{
				Cause:  semErrReservedLabel,
				Detail: elem.Label,
				Row:    elem.Pos.Row,
				Col:    elem.Pos.Col,
			})
			ok = false
			continue
		}

		if sym, found := w.Reader().ToSymbol(elem.Label); found && sym.IsNonTerminal() {
			rhs = append(rhs, sym)
			continue
		}
		if len(declared) > 0 {
			if _, found := declared[elem.Label]; !found {
				b.errs = append(b.errs, &verr.SpecError{
					Cause:  semErrUndefinedSym,
					Detail: elem.Label,
					Row:    elem.Pos.Row,
					Col:    elem.Pos.Col,
				})
				ok = false
				continue
			}
		}
		sym, err := w.RegisterTerminalSymbol(elem.Label)
		if err != nil {
			b.errs = append(b.errs, &verr.SpecError{
				Cause:  semErrDuplicateName,
				Detail: elem.Label,
				Row:    elem.Pos.Row,
				Col:    elem.Pos.Col,
			})
			ok = false
			continue
		}
		rhs = append(rhs, sym)
	}
	return rhs, ok
}

func (b *GrammarBuilder) genTokens(symTab *symbol.SymbolTable) []*TokenDef {
	if len(b.AST.Tokens) == 0 {
		return nil
	}

	r := symTab.Reader()
	var tokens []*TokenDef
	bound := map[string]struct{}{}
	for _, tok := range b.AST.Tokens {
		sym, ok := r.ToSymbol(tok.Terminal)
		switch {
		case symbol.IsReserved(tok.Terminal):
			b.errs = append(b.errs, &verr.SpecError{
				Cause:  semErrReservedLabel,
				Detail: tok.Terminal,
				Row:    tok.Pos.Row,
				Col:    tok.Pos.Col,
			})
			continue
		case ok && sym.IsNonTerminal():
			b.errs = append(b.errs, &verr.SpecError{
				Cause:  semErrTokenNonTerminal,
				Detail: tok.Terminal,
				Row:    tok.Pos.Row,
				Col:    tok.Pos.Col,
			})
			continue
		case ok && tok.Skip:
			b.errs = append(b.errs, &verr.SpecError{
				Cause:  semErrTermCannotBeSkipped,
				Detail: tok.Terminal,
				Row:    tok.Pos.Row,
				Col:    tok.Pos.Col,
			})
			continue
		case !ok && !tok.Skip:
			b.errs = append(b.errs, &verr.SpecError{
				Cause:  semErrUnusedTerminal,
				Detail: tok.Terminal,
				Row:    tok.Pos.Row,
				Col:    tok.Pos.Col,
			})
			continue
		}
		if _, dup := bound[tok.Terminal]; dup {
			b.errs = append(b.errs, &verr.SpecError{
				Cause:  semErrDuplicateToken,
				Detail: tok.Terminal,
				Row:    tok.Pos.Row,
				Col:    tok.Pos.Col,
			})
			continue
		}
		bound[tok.Terminal] = struct{}{}
		tokens = append(tokens, &TokenDef{
			Terminal: tok.Terminal,
			Pattern:  tok.Pattern,
			Skip:     tok.Skip,
		})
	}

	for _, term := range r.TerminalSymbols() {
		if term.IsEOF() {
			continue
		}
		if _, ok := bound[term.Label()]; !ok {
			b.errs = append(b.errs, &verr.SpecError{
				Cause:  semErrMissingToken,
				Detail: term.Label(),
			})
		}
	}

	return tokens
}

func isNonTerminalLabel(symTab *symbol.SymbolTable, label string) bool {
	sym, ok := symTab.Reader().ToSymbol(label)
	return ok && sym.IsNonTerminal()
}

// reportUnreachable traces non-terminals that no derivation from the start symbol reaches.
// Such non-terminals are harmless for the analysis, so they are not errors.
func reportUnreachable(prods *productionSet, start symbol.Symbol) {
	reached := map[symbol.Symbol]struct{}{
		start: {},
	}
	queue := []symbol.Symbol{start}
	for len(queue) > 0 {
		sym := queue[0]
		queue = queue[1:]
		ps, _ := prods.findByLHS(sym)
		for _, p := range ps {
			for _, s := range p.rhs {
				if !s.IsNonTerminal() {
					continue
				}
				if _, ok := reached[s]; ok {
					continue
				}
				reached[s] = struct{}{}
				queue = append(queue, s)
			}
		}
	}
	for _, p := range prods.getAllProductions() {
		if _, ok := reached[p.lhs]; ok {
			continue
		}
		reached[p.lhs] = struct{}{}
		tracer().Infof("%v is unreachable from the start symbol %v", p.lhs, start)
	}
}

// reportImplicitTerminals warns about capitalized terminals of a grammar without declared terminals.
// Such a label is most likely a misspelled non-terminal. It returns the labels in order of appearance.
func reportImplicitTerminals(prods *productionSet) []string {
	var labels []string
	seen := map[symbol.Symbol]struct{}{}
	for _, p := range prods.getAllProductions() {
		for _, s := range p.rhs {
			if s.IsNonTerminal() {
				continue
			}
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			if r, _ := utf8.DecodeRuneInString(s.Label()); !unicode.IsUpper(r) {
				continue
			}
			tracer().Errorf("%v has no production and is treated as a terminal; declare it with #terminals if it is one", s.Label())
			labels = append(labels, s.Label())
		}
	}
	return labels
}

type fingerprintSource struct {
	Start       string
	Productions []string
	Tokens      []string
}

func genFingerprint(start symbol.Symbol, prods *productionSet, tokens []*TokenDef) (string, error) {
	src := fingerprintSource{
		Start: start.Label(),
	}
	for _, p := range prods.getAllProductions() {
		src.Productions = append(src.Productions, p.String())
	}
	for _, t := range tokens {
		src.Tokens = append(src.Tokens, fmt.Sprintf("%v %v %v", t.Terminal, t.Skip, t.Pattern))
	}
	fp, err := structhash.Hash(src, 1)
	if err != nil {
		return "", fmt.Errorf("cannot compute the fingerprint: %w", err)
	}
	return fp, nil
}

// String returns the grammar in the text definition format.
func (g *Grammar) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "#name %v ;\n#start %v ;\n", g.name, g.startSymbol)
	for _, nt := range g.NonTerminals() {
		prods := g.ProductionsOf(nt.Label())
		fmt.Fprintf(&b, "%v ->", nt)
		for i, p := range prods {
			if i > 0 {
				fmt.Fprintf(&b, " |")
			}
			if p.IsEmpty() {
				fmt.Fprintf(&b, " %v", symbol.LabelEmpty)
				continue
			}
			for _, sym := range p.rhs {
				fmt.Fprintf(&b, " %v", quoteLabel(sym.Label()))
			}
		}
		fmt.Fprintf(&b, " ;\n")
	}
	return b.String()
}

func quoteLabel(label string) string {
	if strings.ContainsAny(label, "|;#\"' \t") || label == "->" || strings.HasPrefix(label, "//") {
		return "'" + label + "'"
	}
	return label
}
