package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nihei9/ll1/driver/parser"
	"github.com/nihei9/ll1/grammar"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeveledNodes(t *testing.T) {
	tree := &parser.Node{
		Type:     parser.NodeTypeNonTerminal,
		KindName: "STMT",
		Children: []*parser.Node{
			{
				Type:     parser.NodeTypeTerminal,
				KindName: "identifier",
				Text:     "x",
			},
			{
				Type:     parser.NodeTypeNonTerminal,
				KindName: "REST",
			},
		},
	}
	ll := leveledNodes(tree, pterm.LeveledList{}, 0)
	assert.Equal(t, pterm.LeveledList{
		{Level: 0, Text: "STMT"},
		{Level: 1, Text: `identifier "x"`},
		{Level: 1, Text: "REST ε"},
	}, ll)
}

func TestCaretLine(t *testing.T) {
	tests := []struct {
		caption string
		col     int
		want    string
	}{
		{
			caption: "the first column",
			col:     1,
			want:    "x 10\n^",
		},
		{
			caption: "a middle column",
			col:     3,
			want:    "x 10\n  ^",
		},
		{
			caption: "just past the end",
			col:     5,
			want:    "x 10\n    ^",
		},
		{
			caption: "no position",
			col:     0,
			want:    "x 10",
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			assert.Equal(t, tt.want, caretLine("x 10", &parser.SyntaxError{Col: tt.col}))
		})
	}
}

func TestREPL_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.ll1")
	require.NoError(t, os.WriteFile(path, []byte("S -> a S | b ;\n"), 0644))

	r := &repl{
		path:     path,
		analyses: grammar.NewAnalysisCache(),
	}
	require.NoError(t, r.load())
	first := r.analysis
	require.NoError(t, r.load())
	assert.Same(t, first, r.analysis)
	hits, misses := r.analyses.Stats()
	assert.Equal(t, 1, misses)
	assert.Equal(t, 3, hits)

	require.NoError(t, os.WriteFile(path, []byte("S -> a S | c ;\n"), 0644))
	require.NoError(t, r.load())
	assert.NotSame(t, first, r.analysis)
	_, misses = r.analyses.Stats()
	assert.Equal(t, 2, misses)
	assert.Equal(t, 2, r.analyses.Len())
}
