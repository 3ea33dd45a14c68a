package test

import (
	"bufio"
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"sync"

	"github.com/nihei9/ll1/driver/parser"
	"github.com/nihei9/ll1/grammar"
	"github.com/nihei9/ll1/spec"
	gspec "github.com/nihei9/ll1/spec/grammar"
)

type TreeDiff struct {
	ExpectedPath string
	ActualPath   string
	Message      string
}

func newTreeDiff(expected, actual *Tree, message string) *TreeDiff {
	return &TreeDiff{
		ExpectedPath: expected.path(),
		ActualPath:   actual.path(),
		Message:      message,
	}
}

// Tree is an expected parse tree. A node with a lexeme stands for a terminal.
type Tree struct {
	Parent   *Tree
	Offset   int
	Kind     string
	Children []*Tree
	Lexeme   string
}

func NewTree(kind string, children ...*Tree) *Tree {
	return &Tree{
		Kind:     kind,
		Children: children,
	}
}

func NewTerminalNode(kind string, lexeme string) *Tree {
	return &Tree{
		Kind:   kind,
		Lexeme: lexeme,
	}
}

func (t *Tree) Fill() *Tree {
	for i, c := range t.Children {
		c.Parent = t
		c.Offset = i
		c.Fill()
	}
	return t
}

func (t *Tree) path() string {
	if t.Parent == nil {
		return t.Kind
	}
	return fmt.Sprintf("%v.[%v]%v", t.Parent.path(), t.Offset, t.Kind)
}

func (t *Tree) Format() []byte {
	var b bytes.Buffer
	t.format(&b, 0)
	return b.Bytes()
}

func (t *Tree) format(buf *bytes.Buffer, depth int) {
	for i := 0; i < depth; i++ {
		buf.WriteString("    ")
	}
	buf.WriteString("(")
	buf.WriteString(t.Kind)
	if t.Lexeme != "" {
		fmt.Fprintf(buf, " \"%v\"", t.Lexeme)
	}
	if len(t.Children) > 0 {
		buf.WriteString("\n")
		for i, c := range t.Children {
			c.format(buf, depth+1)
			if i < len(t.Children)-1 {
				buf.WriteString("\n")
			}
		}
	}
	buf.WriteString(")")
}

// DiffTree compares an expected tree with an actual one. The kind _ matches any kind, and an
// expected node without a lexeme matches any lexeme.
func DiffTree(expected, actual *Tree) []*TreeDiff {
	if expected == nil && actual == nil {
		return nil
	}
	if expected.Kind != "_" && actual.Kind != expected.Kind {
		msg := fmt.Sprintf("unexpected kind: expected '%v' but got '%v'", expected.Kind, actual.Kind)
		return []*TreeDiff{
			newTreeDiff(expected, actual, msg),
		}
	}
	if expected.Lexeme != "" && expected.Lexeme != actual.Lexeme {
		msg := fmt.Sprintf("unexpected lexeme: expected '%v' but got '%v'", expected.Lexeme, actual.Lexeme)
		return []*TreeDiff{
			newTreeDiff(expected, actual, msg),
		}
	}
	if len(actual.Children) != len(expected.Children) {
		msg := fmt.Sprintf("unexpected node count: expected %v but got %v", len(expected.Children), len(actual.Children))
		return []*TreeDiff{
			newTreeDiff(expected, actual, msg),
		}
	}
	var diffs []*TreeDiff
	for i, exp := range expected.Children {
		if ds := DiffTree(exp, actual.Children[i]); len(ds) > 0 {
			diffs = append(diffs, ds...)
		}
	}
	return diffs
}

type TestCase struct {
	Description string
	Source      []byte
	Output      *Tree
}

// ParseTestCase reads a test case consisting of three parts separated by lines of three or more
// hyphens: a description, a source, and the expected tree.
func ParseTestCase(r io.Reader) (*TestCase, error) {
	parts, err := splitIntoParts(r)
	if err != nil {
		return nil, err
	}
	if len(parts) != 3 {
		return nil, fmt.Errorf("too many or too few part delimiters: a test case consists of exactly three parts: %v parts found", len(parts))
	}

	tp := &treeParser{
		lineOffset: parts[0].lineCount + parts[1].lineCount + 2,
	}
	tree, err := tp.parseTree(bytes.NewReader(parts[2].buf))
	if err != nil {
		return nil, err
	}

	return &TestCase{
		Description: string(parts[0].buf),
		Source:      parts[1].buf,
		Output:      tree,
	}, nil
}

type testCasePart struct {
	buf       []byte
	lineCount int
}

func splitIntoParts(r io.Reader) ([]*testCasePart, error) {
	var bufs []*testCasePart
	s := bufio.NewScanner(r)
	for {
		buf, lineCount, err := readPart(s)
		if err != nil {
			return nil, err
		}
		if buf == nil {
			break
		}
		bufs = append(bufs, &testCasePart{
			buf:       buf,
			lineCount: lineCount,
		})
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return bufs, nil
}

var reDelim = regexp.MustCompile(`^\s*---+\s*$`)

func readPart(s *bufio.Scanner) ([]byte, int, error) {
	if !s.Scan() {
		return nil, 0, s.Err()
	}
	buf := &bytes.Buffer{}
	line := s.Bytes()
	if reDelim.Match(line) {
		// (*bytes.Buffer).Bytes() returns nil when nothing has been written.
		return []byte{}, 0, nil
	}
	buf.Write(line)
	lineCount := 1
	for s.Scan() {
		line := s.Bytes()
		if reDelim.Match(line) {
			return buf.Bytes(), lineCount, nil
		}
		buf.WriteByte('\n')
		buf.Write(line)
		lineCount++
	}
	if err := s.Err(); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), lineCount, nil
}

//go:embed tree.ll1
var treeGrammarSrc string

var (
	treeGrammarOnce sync.Once
	treeGrammar     *gspec.CompiledGrammar
	treeGrammarErr  error
)

// compiledTreeGrammar compiles the grammar of the tree notation once.
func compiledTreeGrammar() (*gspec.CompiledGrammar, error) {
	treeGrammarOnce.Do(func() {
		ast, err := spec.Parse(strings.NewReader(treeGrammarSrc))
		if err != nil {
			treeGrammarErr = err
			return
		}
		b := grammar.GrammarBuilder{
			AST: ast,
		}
		gram, err := b.Build()
		if err != nil {
			treeGrammarErr = err
			return
		}
		treeGrammar, _, treeGrammarErr = grammar.Compile(gram)
	})
	return treeGrammar, treeGrammarErr
}

type treeParser struct {
	lineOffset int
}

func (tp *treeParser) parseTree(src io.Reader) (*Tree, error) {
	cg, err := compiledTreeGrammar()
	if err != nil {
		return nil, err
	}
	gram, err := parser.NewGrammar(cg)
	if err != nil {
		return nil, err
	}
	toks, err := parser.NewTokenStream(cg, src)
	if err != nil {
		return nil, err
	}
	p, err := parser.NewParser(toks, gram)
	if err != nil {
		return nil, err
	}
	err = p.Parse()
	if err != nil {
		var synErr *parser.SyntaxError
		if errors.As(err, &synErr) {
			return nil, tp.formatSyntaxError(synErr)
		}
		return nil, err
	}
	return tp.genTree(p.Tree()).Fill(), nil
}

func (tp *treeParser) formatSyntaxError(synErr *parser.SyntaxError) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%v:%v: %v: ", tp.lineOffset+synErr.Row, synErr.Col, synErr.Kind)
	switch {
	case synErr.Lookahead == "$":
		b.WriteString("<eof>")
	case synErr.Kind == parser.SyntaxErrorInvalidToken:
		fmt.Fprintf(&b, "'%v' (<invalid>)", synErr.Lexeme)
	default:
		fmt.Fprintf(&b, "'%v' (%v)", synErr.Lexeme, synErr.Lookahead)
	}
	expected := synErr.ExpectedTerminals
	if synErr.Expected != "" {
		expected = []string{synErr.Expected}
	}
	if len(expected) > 0 {
		fmt.Fprintf(&b, ": expected: %v", strings.Join(expected, ", "))
	}
	return errors.New(b.String())
}

// genTree converts a parse tree of the tree notation into a Tree. The node of TREE has the
// children l_paren, NAME, REST, and r_paren.
func (tp *treeParser) genTree(node *parser.Node) *Tree {
	name := unquote(node.Children[1].Children[0].Text)
	rest := node.Children[2]
	if len(rest.Children) == 1 && rest.Children[0].KindName == "string" {
		return NewTerminalNode(name, unquote(rest.Children[0].Text))
	}

	var children []*Tree
	for trees := rest.Children[0]; len(trees.Children) > 0; trees = trees.Children[1] {
		children = append(children, tp.genTree(trees.Children[0]))
	}
	return NewTree(name, children...)
}

func unquote(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s[1 : len(s)-1]
	}
	return s
}
