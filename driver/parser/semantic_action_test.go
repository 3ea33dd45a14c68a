package parser

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintTree(t *testing.T) {
	p := newTestParser(t, grammarExpr, "identifier + number")
	require.NoError(t, p.Parse())

	var b strings.Builder
	PrintTree(&b, p.Tree())
	expected := `EXPR
├─ TERM
│  └─ identifier "identifier"
└─ EXPRSI
   ├─ + "+"
   ├─ TERM
   │  └─ number "number"
   └─ EXPRSI ε
`
	assert.Equal(t, expected, b.String())
}

func TestNode_MarshalJSON(t *testing.T) {
	p := newTestParser(t, grammarAnBn, "a b")
	require.NoError(t, p.Parse())

	j, err := json.Marshal(p.Tree())
	require.NoError(t, err)
	expected := `{
	"type": "non-terminal",
	"kind_name": "S",
	"children": [
		{"type": "terminal", "kind_name": "a", "text": "a", "row": 1, "col": 1},
		{"type": "non-terminal", "kind_name": "S", "children": []},
		{"type": "terminal", "kind_name": "b", "text": "b", "row": 1, "col": 2}
	]
}`
	assert.JSONEq(t, expected, string(j))
}

func TestTraceActionSet(t *testing.T) {
	tests := []struct {
		caption string
		input   string
		trace   string
	}{
		{
			caption: "accepted",
			input:   "a b",
			trace: `1: expand S by #1 -> a S b
2: match a "a"
3: expand S by #2 -> ε
4: match b "b"
5: accept
`,
		},
		{
			caption: "rejected",
			input:   "b",
			trace: `1: expand S by #2 -> ε
2: reject: 1:1: trailing input; found: b ("b")
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			var b strings.Builder
			p := newTestParser(t, grammarAnBn, tt.input, SemanticAction(NewTraceActionSet(&b)))
			p.Parse()
			assert.Equal(t, tt.trace, b.String())
		})
	}
}
