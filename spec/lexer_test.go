package spec

import (
	"strings"
	"testing"
)

func TestLexer_Run(t *testing.T) {
	tests := []struct {
		caption string
		src     string
		tokens  []*token
	}{
		{
			caption: "the lexer can recognize all kinds of tokens",
			src:     `#start S -> a | 'b' ; "p" // comment`,
			tokens: []*token{
				{kind: tokenKindDirective, text: "#start"},
				{kind: tokenKindLabel, text: "S"},
				{kind: tokenKindArrow, text: "->"},
				{kind: tokenKindLabel, text: "a"},
				{kind: tokenKindOr, text: "|"},
				{kind: tokenKindQuotedLabel, text: "b"},
				{kind: tokenKindSemicolon, text: ";"},
				{kind: tokenKindPattern, text: "p"},
				{kind: tokenKindEOF},
			},
		},
		{
			caption: "an arrow needs white spaces around it to be separated from labels",
			src:     `A->B - ->`,
			tokens: []*token{
				{kind: tokenKindLabel, text: "A->B"},
				{kind: tokenKindLabel, text: "-"},
				{kind: tokenKindArrow, text: "->"},
				{kind: tokenKindEOF},
			},
		},
		{
			caption: "the empty marker and primes are parts of labels",
			src:     "ε TERM' 'ε'",
			tokens: []*token{
				{kind: tokenKindLabel, text: "ε"},
				{kind: tokenKindLabel, text: "TERM'"},
				{kind: tokenKindQuotedLabel, text: "ε"},
				{kind: tokenKindEOF},
			},
		},
		{
			caption: "a lone hash mark is an invalid token",
			src:     "a # b",
			tokens: []*token{
				{kind: tokenKindLabel, text: "a"},
				{kind: tokenKindInvalid, text: "#"},
				{kind: tokenKindLabel, text: "b"},
				{kind: tokenKindEOF},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			l, err := newLexer(strings.NewReader(tt.src))
			if err != nil {
				t.Fatal(err)
			}
			for _, expected := range tt.tokens {
				tok, err := l.next()
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if tok.kind != expected.kind || tok.text != expected.text {
					t.Fatalf("unexpected token; want: %v %q, got: %v %q", expected.kind, expected.text, tok.kind, tok.text)
				}
			}
		})
	}
}

func TestLexer_Position(t *testing.T) {
	l, err := newLexer(strings.NewReader("S ->\n  a ;"))
	if err != nil {
		t.Fatal(err)
	}
	expected := []Position{
		{Row: 1, Col: 1},
		{Row: 1, Col: 3},
		{Row: 2, Col: 3},
		{Row: 2, Col: 5},
	}
	for _, pos := range expected {
		tok, err := l.next()
		if err != nil {
			t.Fatal(err)
		}
		if tok.pos != pos {
			t.Fatalf("unexpected position of %q; want: %+v, got: %+v", tok.text, pos, tok.pos)
		}
	}
}
