package parser

import (
	"encoding/json"
	"fmt"
	"io"
)

// SemanticActionSet receives the steps a parser takes.
type SemanticActionSet interface {
	// Expand runs when the parser replaces a non-terminal on top of the stack with the right-hand side
	// of a production. `node` is the node of the non-terminal, and its children are already attached.
	Expand(node *Node, prodNum int)

	// Match runs when a terminal on top of the stack matches the lookahead token.
	Match(node *Node, tok VToken)

	// Accept runs when the parser accepts an input.
	Accept(root *Node)

	// Reject runs when the parser stops on a syntax error.
	Reject(err *SyntaxError)
}

// TraceActionSet writes every step to a writer.
type TraceActionSet struct {
	w    io.Writer
	step int
}

var _ SemanticActionSet = &TraceActionSet{}

func NewTraceActionSet(w io.Writer) *TraceActionSet {
	return &TraceActionSet{
		w: w,
	}
}

func (a *TraceActionSet) Expand(node *Node, prodNum int) {
	a.step++
	fmt.Fprintf(a.w, "%v: expand %v by #%v ->", a.step, node.KindName, prodNum)
	if len(node.Children) == 0 {
		fmt.Fprintf(a.w, " ε")
	}
	for _, c := range node.Children {
		fmt.Fprintf(a.w, " %v", c.KindName)
	}
	fmt.Fprintf(a.w, "\n")
}

func (a *TraceActionSet) Match(node *Node, tok VToken) {
	a.step++
	fmt.Fprintf(a.w, "%v: match %v %#v\n", a.step, node.KindName, string(tok.Lexeme()))
}

func (a *TraceActionSet) Accept(root *Node) {
	a.step++
	fmt.Fprintf(a.w, "%v: accept\n", a.step)
}

func (a *TraceActionSet) Reject(err *SyntaxError) {
	a.step++
	fmt.Fprintf(a.w, "%v: reject: %v\n", a.step, err)
}

type NodeType int

const (
	NodeTypeNonTerminal = NodeType(0)
	NodeTypeTerminal    = NodeType(1)
)

func (t NodeType) String() string {
	if t == NodeTypeTerminal {
		return "terminal"
	}
	return "non-terminal"
}

func (t NodeType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// Node is a node of a parse tree. The children of a node are owned by the node; the parent is a
// back-reference.
type Node struct {
	Type     NodeType
	KindName string
	Text     string
	Row      int
	Col      int
	Children []*Node

	parent *Node
}

func newNode(typ NodeType, kindName string, parent *Node) *Node {
	return &Node{
		Type:     typ,
		KindName: kindName,
		parent:   parent,
	}
}

// Parent returns nil for the root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Leaves returns the terminal nodes from left to right.
func (n *Node) Leaves() []*Node {
	if n.Type == NodeTypeTerminal {
		return []*Node{n}
	}
	var leaves []*Node
	for _, c := range n.Children {
		leaves = append(leaves, c.Leaves()...)
	}
	return leaves
}

// Depth returns the number of nodes on the longest path from the node to a leaf.
func (n *Node) Depth() int {
	d := 0
	for _, c := range n.Children {
		if cd := c.Depth(); cd > d {
			d = cd
		}
	}
	return d + 1
}

func (n *Node) MarshalJSON() ([]byte, error) {
	if n.Type == NodeTypeTerminal {
		return json.Marshal(struct {
			Type     NodeType `json:"type"`
			KindName string   `json:"kind_name"`
			Text     string   `json:"text"`
			Row      int      `json:"row"`
			Col      int      `json:"col"`
		}{
			Type:     n.Type,
			KindName: n.KindName,
			Text:     n.Text,
			Row:      n.Row,
			Col:      n.Col,
		})
	}
	children := n.Children
	if children == nil {
		children = []*Node{}
	}
	return json.Marshal(struct {
		Type     NodeType `json:"type"`
		KindName string   `json:"kind_name"`
		Children []*Node  `json:"children"`
	}{
		Type:     n.Type,
		KindName: n.KindName,
		Children: children,
	})
}

// PrintTree prints a syntax tree whose root is `node`.
func PrintTree(w io.Writer, node *Node) {
	printTree(w, node, "", "")
}

func printTree(w io.Writer, node *Node, ruledLine string, childRuledLinePrefix string) {
	if node == nil {
		return
	}

	switch {
	case node.Type == NodeTypeTerminal:
		fmt.Fprintf(w, "%v%v %#v\n", ruledLine, node.KindName, node.Text)
	case len(node.Children) == 0:
		fmt.Fprintf(w, "%v%v ε\n", ruledLine, node.KindName)
	default:
		fmt.Fprintf(w, "%v%v\n", ruledLine, node.KindName)
	}

	num := len(node.Children)
	for i, child := range node.Children {
		var line string
		if num > 1 && i < num-1 {
			line = "├─ "
		} else {
			line = "└─ "
		}

		var prefix string
		if i >= num-1 {
			prefix = "   "
		} else {
			prefix = "│  "
		}

		printTree(w, child, childRuledLinePrefix+line, childRuledLinePrefix+prefix)
	}
}
