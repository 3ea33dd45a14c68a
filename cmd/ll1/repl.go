package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/nihei9/ll1/driver/lexer"
	"github.com/nihei9/ll1/driver/parser"
	"github.com/nihei9/ll1/grammar"
	spec "github.com/nihei9/ll1/spec/grammar"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

const replPrompt = "ll1> "

var replFlags = struct {
	symbolOf *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "repl <grammar file path>",
		Short: "Parse lines interactively",
		Long: `repl reads a grammar definition and parses every line you enter with it.
Lines starting with a colon are commands:
  :first    print the FIRST sets
  :follow   print the FOLLOW sets
  :table    print the parsing table
  :symbols  print the symbol table
  :reload   read the grammar file again
  :quit     leave the REPL (or press Ctrl-D)`,
		Example: `  ll1 repl grammar.ll1`,
		Args:    cobra.ExactArgs(1),
		RunE:    runREPL,
	}
	replFlags.symbolOf = cmd.Flags().String("symbol-terminal", "identifier", "terminal whose lexemes are recorded in the symbol table")
	rootCmd.AddCommand(cmd)
}

type repl struct {
	rl       *readline.Instance
	path     string
	analyses *grammar.AnalysisCache
	analysis *grammar.Analysis
	cgram    *spec.CompiledGrammar
	gram     parser.Grammar
	symTab   *lexer.SymbolTable
	symbolOf string
}

func runREPL(cmd *cobra.Command, args []string) error {
	r := &repl{
		path:     args[0],
		analyses: grammar.NewAnalysisCache(),
		symTab:   lexer.NewSymbolTable(),
		symbolOf: *replFlags.symbolOf,
	}
	if err := r.load(); err != nil {
		return err
	}

	rl, err := readline.New(replPrompt)
	if err != nil {
		return err
	}
	defer rl.Close()
	r.rl = rl

	initDisplay()
	r.printGrammar()
	pterm.Info.Println("Quit with <ctrl>D")

	r.loop()
	return nil
}

// load reads the grammar file. The analysis comes from the session cache, so an unchanged file
// is not analyzed again.
func (r *repl) load() error {
	g, err := readGrammar(r.path)
	if err != nil {
		return fmt.Errorf("Cannot read a grammar: %w", err)
	}
	a, err := r.analyses.Get(g)
	if err != nil {
		return err
	}
	cg, _, err := grammar.Compile(g, grammar.WithAnalysisCache(r.analyses))
	if err != nil {
		return err
	}
	gram, err := parser.NewGrammar(cg)
	if err != nil {
		return err
	}
	r.analysis = a
	r.cgram = cg
	r.gram = gram
	return nil
}

func (r *repl) printGrammar() {
	g := r.analysis.Grammar
	pterm.Info.Printf("Grammar %v; start symbol %v\n", g.Name(), g.Start().Label())
}

func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func (r *repl) loop() {
	for {
		line, err := r.rl.Readline()
		if err != nil { // io.EOF or readline.ErrInterrupt
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		quit, err := r.eval(line)
		if err != nil {
			pterm.Error.Println(err)
			continue
		}
		if quit {
			break
		}
	}
	fmt.Println("Good bye!")
}

func (r *repl) eval(line string) (bool, error) {
	switch line {
	case ":quit", ":q":
		return true, nil
	case ":first":
		return false, r.printSets(func(label string) (*grammar.TerminalSet, bool) {
			return r.analysis.First.Of(label)
		})
	case ":follow":
		return false, r.printSets(func(label string) (*grammar.TerminalSet, bool) {
			return r.analysis.Follow.Of(label)
		})
	case ":table":
		return false, r.printTable()
	case ":symbols":
		return false, printSymbolTable(os.Stdout, r.symTab)
	case ":reload":
		if err := r.load(); err != nil {
			return false, err
		}
		r.printGrammar()
		return false, nil
	}
	if strings.HasPrefix(line, ":") {
		return false, fmt.Errorf("unknown command: %v", line)
	}

	p, err := r.parse(line)
	if err != nil {
		return false, err
	}
	pterm.DefaultTree.WithRoot(treeNodeOf(p.Tree())).Render()
	return false, nil
}

func (r *repl) parse(line string) (*parser.Parser, error) {
	var toks parser.TokenStream
	if r.cgram.Lexical != nil {
		var err error
		toks, err = parser.NewTokenStream(r.cgram, strings.NewReader(line), lexer.RecordSymbols(r.symbolOf, r.symTab, r.prompter()))
		if err != nil {
			return nil, err
		}
	} else {
		toks = parser.NewLabelTokenStream(r.gram, line)
	}
	p, err := parser.NewParser(toks, r.gram)
	if err != nil {
		return nil, err
	}
	err = p.Parse()
	if err != nil {
		var synErr *parser.SyntaxError
		if errors.As(err, &synErr) {
			return nil, fmt.Errorf("%v\n%v", err, caretLine(line, synErr))
		}
		return nil, err
	}
	return p, nil
}

// prompter asks for symbol values on the REPL's own line editor.
func (r *repl) prompter() lexer.Prompter {
	return &replPrompter{
		rl: r.rl,
	}
}

type replPrompter struct {
	rl *readline.Instance
}

func (p *replPrompter) Prompt(name string) (string, error) {
	p.rl.SetPrompt(fmt.Sprintf("Enter the value for %v: ", name))
	defer p.rl.SetPrompt(replPrompt)
	v, err := p.rl.Readline()
	if err == io.EOF {
		return "", nil
	}
	return v, err
}

func (p *replPrompter) Reject(name string, err error) {
	pterm.Error.Printf("%v; enter a number or leave it empty\n", err)
}

// caretLine points at the column of a syntax error. It only makes sense for a single line of input.
func caretLine(line string, synErr *parser.SyntaxError) string {
	if r := []rune(line); synErr.Col < 1 || synErr.Col > len(r)+1 {
		return line
	}
	return fmt.Sprintf("%v\n%v^", line, strings.Repeat(" ", synErr.Col-1))
}

func (r *repl) printSets(of func(label string) (*grammar.TerminalSet, bool)) error {
	data := pterm.TableData{
		{"non-terminal", "terminals"},
	}
	for _, nt := range r.analysis.Grammar.NonTerminals() {
		set, ok := of(nt.Label())
		if !ok {
			continue
		}
		data = append(data, []string{nt.Label(), strings.Join(set.Labels(), " ")})
	}
	return renderTable(os.Stdout, data)
}

func (r *repl) printTable() error {
	var terms []string
	for _, t := range r.analysis.Grammar.Terminals() {
		terms = append(terms, t.Label())
	}
	data := pterm.TableData{append([]string{""}, terms...)}
	for _, nt := range r.analysis.Grammar.NonTerminals() {
		row := []string{nt.Label()}
		for _, t := range terms {
			if prod, ok := r.analysis.Table.Lookup(nt.Label(), t); ok {
				row = append(row, prod.String())
			} else {
				row = append(row, "")
			}
		}
		data = append(data, row)
	}
	return renderTable(os.Stdout, data)
}

// treeNodeOf converts a parse tree to a pterm tree.
func treeNodeOf(node *parser.Node) pterm.TreeNode {
	return pterm.NewTreeFromLeveledList(leveledNodes(node, pterm.LeveledList{}, 0))
}

func leveledNodes(node *parser.Node, ll pterm.LeveledList, level int) pterm.LeveledList {
	text := node.KindName
	switch {
	case node.Type == parser.NodeTypeTerminal:
		text = fmt.Sprintf("%v %#v", node.KindName, node.Text)
	case len(node.Children) == 0:
		text = node.KindName + " ε"
	}
	ll = append(ll, pterm.LeveledListItem{
		Level: level,
		Text:  text,
	})
	for _, c := range node.Children {
		ll = leveledNodes(c, ll, level+1)
	}
	return ll
}
