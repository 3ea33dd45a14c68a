package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/nihei9/ll1/driver/lexer"
	"github.com/nihei9/ll1/driver/parser"
	"github.com/nihei9/ll1/grammar"
	spec "github.com/nihei9/ll1/spec/grammar"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var parseFlags = struct {
	source   *string
	labels   *bool
	tokens   *bool
	steps    *bool
	json     *bool
	prompt   *bool
	symbolOf *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "parse <grammar file path>",
		Short: "Parse a text stream",
		Long: `parse reads a grammar definition (*.ll1, *.json) or a compiled grammar (*.json)
and parses a source with it. When the grammar has token patterns, the source is
tokenized with them; otherwise the source is a sequence of terminal labels.`,
		Example: `  echo 'x = 1' | ll1 parse grammar.ll1
  ll1 parse grammar.json -s src.txt --tokens`,
		Args: cobra.ExactArgs(1),
		RunE: runParse,
	}
	parseFlags.source = cmd.Flags().StringP("source", "s", "", "source file path (default stdin)")
	parseFlags.labels = cmd.Flags().Bool("labels", false, "read the source as terminal labels even if the grammar has token patterns")
	parseFlags.tokens = cmd.Flags().Bool("tokens", false, "print the tokens of the source before parsing")
	parseFlags.steps = cmd.Flags().Bool("steps", false, "print every expansion and match of the parser")
	parseFlags.json = cmd.Flags().Bool("json", false, "print the parse tree in JSON format")
	parseFlags.prompt = cmd.Flags().Bool("prompt", false, "ask for the value of every new symbol")
	parseFlags.symbolOf = cmd.Flags().String("symbol-terminal", "identifier", "terminal whose lexemes are recorded in the symbol table")
	rootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) (retErr error) {
	defer func() {
		v := recover()
		if v != nil {
			err, ok := v.(error)
			if !ok {
				err = fmt.Errorf("an unexpected error occurred: %v", v)
			}
			fmt.Fprintf(os.Stderr, "%v:\n%v", err, string(debug.Stack()))
			retErr = err
		}
	}()

	cgram, err := readCompiledGrammar(args[0])
	if err != nil {
		return fmt.Errorf("Cannot read a grammar: %w", err)
	}

	var src []byte
	{
		r := os.Stdin
		if *parseFlags.source != "" {
			f, err := os.Open(*parseFlags.source)
			if err != nil {
				return fmt.Errorf("Cannot open the source file %s: %w", *parseFlags.source, err)
			}
			defer f.Close()
			r = f
		}
		src, err = io.ReadAll(r)
		if err != nil {
			return err
		}
	}

	gram, err := parser.NewGrammar(cgram)
	if err != nil {
		return err
	}

	useLexer := cgram.Lexical != nil && !*parseFlags.labels
	var symTab *lexer.SymbolTable
	var lexOpts []lexer.LexerOption
	if useLexer {
		symTab = lexer.NewSymbolTable()
		var prompter lexer.Prompter
		if *parseFlags.prompt {
			prompter = lexer.NewReadlinePrompter()
		}
		lexOpts = append(lexOpts, lexer.RecordSymbols(*parseFlags.symbolOf, symTab, prompter))
	}

	if *parseFlags.tokens {
		if useLexer {
			err = printTokens(os.Stdout, cgram, src, *parseFlags.symbolOf)
		} else {
			err = printLabelTokens(os.Stdout, gram, string(src))
		}
		if err != nil {
			return err
		}
	}

	var toks parser.TokenStream
	if useLexer {
		toks, err = parser.NewTokenStream(cgram, bytes.NewReader(src), lexOpts...)
		if err != nil {
			return err
		}
	} else {
		toks = parser.NewLabelTokenStream(gram, string(src))
	}

	var opts []parser.ParserOption
	if *parseFlags.steps {
		opts = append(opts, parser.SemanticAction(parser.NewTraceActionSet(os.Stdout)))
	}
	p, err := parser.NewParser(toks, gram, opts...)
	if err != nil {
		return err
	}

	err = p.Parse()
	if err != nil {
		return err
	}

	if *parseFlags.json {
		b, err := json.Marshal(p.Tree())
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, string(b))
	} else {
		parser.PrintTree(os.Stdout, p.Tree())
	}

	if symTab != nil && len(symTab.Entries()) > 0 {
		return printSymbolTable(os.Stdout, symTab)
	}

	return nil
}

// readCompiledGrammar reads a compiled grammar. A grammar definition is compiled on the fly.
func readCompiledGrammar(path string) (*spec.CompiledGrammar, error) {
	if filepath.Ext(path) == ".json" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		cgram := &spec.CompiledGrammar{}
		err = json.Unmarshal(data, cgram)
		if err != nil {
			return nil, err
		}
		if cgram.Syntactic != nil {
			return cgram, nil
		}
	}

	gram, err := readGrammar(path)
	if err != nil {
		return nil, err
	}
	cgram, _, err := grammar.Compile(gram)
	if err != nil {
		return nil, err
	}
	return cgram, nil
}

func printTokens(w io.Writer, cgram *spec.CompiledGrammar, src []byte, symbolOf string) error {
	symTab := lexer.NewSymbolTable()
	lex, err := lexer.NewLexer(cgram, bytes.NewReader(src), lexer.RecordSymbols(symbolOf, symTab, nil))
	if err != nil {
		return err
	}
	data := pterm.TableData{
		{"#", "terminal", "lexeme", "position", "symbol"},
	}
	for i := 0; ; i++ {
		tok, err := lex.Next()
		if err != nil {
			return err
		}
		if tok.EOF {
			break
		}
		term := "<invalid>"
		if !tok.Invalid {
			term = lex.Terminal(tok.TerminalID)
		}
		var sym string
		if term == symbolOf {
			if e, ok := symTab.Lookup(string(tok.Lexeme)); ok {
				sym = fmt.Sprint(e.Index)
			}
		}
		data = append(data, []string{
			fmt.Sprint(i),
			term,
			string(tok.Lexeme),
			fmt.Sprintf("%v:%v", tok.Row, tok.Col),
			sym,
		})
	}
	return renderTable(w, data)
}

func printLabelTokens(w io.Writer, gram parser.Grammar, src string) error {
	toks := parser.NewLabelTokenStream(gram, src)
	data := pterm.TableData{
		{"#", "terminal", "position"},
	}
	for i := 0; ; i++ {
		tok, err := toks.Next()
		if err != nil {
			return err
		}
		if tok.EOF() {
			break
		}
		term := gram.Terminal(tok.TerminalID())
		if tok.Invalid() {
			term = fmt.Sprintf("%v <invalid>", string(tok.Lexeme()))
		}
		row, col := tok.Position()
		data = append(data, []string{
			fmt.Sprint(i),
			term,
			fmt.Sprintf("%v:%v", row, col),
		})
	}
	return renderTable(w, data)
}

func printSymbolTable(w io.Writer, symTab *lexer.SymbolTable) error {
	data := pterm.TableData{
		{"index", "name", "type", "value"},
	}
	for _, e := range symTab.Entries() {
		data = append(data, []string{
			fmt.Sprint(e.Index),
			e.Name,
			string(e.Type),
			e.Value,
		})
	}
	fmt.Fprintln(w, pterm.DefaultSection.Sprint("Symbols"))
	return renderTable(w, data)
}

func renderTable(w io.Writer, data pterm.TableData) error {
	s, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(w, s)
	return nil
}
