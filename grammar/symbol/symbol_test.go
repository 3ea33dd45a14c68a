package symbol

import "testing"

func TestSymbol(t *testing.T) {
	tab := NewSymbolTable()
	w := tab.Writer()
	_, _ = w.RegisterNonTerminalSymbol("EXPR")
	_, _ = w.RegisterNonTerminalSymbol("TERM")
	_, _ = w.RegisterTerminalSymbol("identifier")
	_, _ = w.RegisterTerminalSymbol("+")

	nonTermTexts := []string{
		"EXPR",
		"TERM",
	}

	termTexts := []string{
		LabelEOF,
		"identifier",
		"+",
	}

	tests := []struct {
		text          string
		isEOF         bool
		isNonTerminal bool
		isTerminal    bool
		num           int
	}{
		{
			text:          "EXPR",
			isNonTerminal: true,
			num:           0,
		},
		{
			text:          "TERM",
			isNonTerminal: true,
			num:           1,
		},
		{
			text:       LabelEOF,
			isEOF:      true,
			isTerminal: true,
			num:        0,
		},
		{
			text:       "identifier",
			isTerminal: true,
			num:        1,
		},
		{
			text:       "+",
			isTerminal: true,
			num:        2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			r := tab.Reader()
			sym, ok := r.ToSymbol(tt.text)
			if !ok {
				t.Fatalf("symbol was not found")
			}
			testSymbolProperty(t, sym, tt.isEOF, tt.isNonTerminal, tt.isTerminal)
			if sym.Label() != tt.text {
				t.Fatalf("unexpected label; want: %v, got: %v", tt.text, sym.Label())
			}
			num, ok := r.Num(sym)
			if !ok {
				t.Fatalf("number was not found")
			}
			if num != tt.num {
				t.Fatalf("unexpected number; want: %v, got: %v", tt.num, num)
			}
		})
	}

	t.Run("texts", func(t *testing.T) {
		r := tab.Reader()
		testTexts(t, r.NonTerminalTexts(), nonTermTexts)
		testTexts(t, r.TerminalTexts(), termTexts)
	})

	t.Run("a kind cannot be changed", func(t *testing.T) {
		if _, err := w.RegisterTerminalSymbol("EXPR"); err == nil {
			t.Fatal("a non-terminal must not be registered as a terminal")
		}
		if _, err := w.RegisterNonTerminalSymbol("identifier"); err == nil {
			t.Fatal("a terminal must not be registered as a non-terminal")
		}
	})

	t.Run("reserved labels", func(t *testing.T) {
		if _, err := w.RegisterNonTerminalSymbol(LabelEOF); err == nil {
			t.Fatal("$ must not be registered as a non-terminal")
		}
		if _, err := w.RegisterTerminalSymbol(LabelEmpty); err == nil {
			t.Fatal("ε must not be registered")
		}
	})
}

func TestSymbol_Equality(t *testing.T) {
	if NewTerminal("a") == NewNonTerminal("a") {
		t.Fatal("symbols of different kinds must not be equal")
	}
	if NewTerminal("a") != NewTerminal("a") {
		t.Fatal("symbols with the same kind and label must be equal")
	}
	if string(NewTerminal("a").Byte()) == string(NewNonTerminal("a").Byte()) {
		t.Fatal("byte sequences of symbols of different kinds must differ")
	}
	if !SymbolNil.IsNil() || SymbolNil.String() != "<nil>" {
		t.Fatal("unexpected nil symbol")
	}
}

func testSymbolProperty(t *testing.T, sym Symbol, isEOF, isNonTerminal, isTerminal bool) {
	t.Helper()

	if v := sym.IsEOF(); v != isEOF {
		t.Fatalf("isEOF property is mismatched; want: %v, got: %v", isEOF, v)
	}
	if v := sym.IsNonTerminal(); v != isNonTerminal {
		t.Fatalf("isNonTerminal property is mismatched; want: %v, got: %v", isNonTerminal, v)
	}
	if v := sym.IsTerminal(); v != isTerminal {
		t.Fatalf("isTerminal property is mismatched; want: %v, got: %v", isTerminal, v)
	}
}

func testTexts(t *testing.T, actual, expected []string) {
	t.Helper()

	if len(actual) != len(expected) {
		t.Fatalf("unexpected text count; want: %v (%#v), got: %v (%#v)", len(expected), expected, len(actual), actual)
	}
	for i, e := range expected {
		if actual[i] != e {
			t.Fatalf("unexpected text; want: %v, got: %v", e, actual[i])
		}
	}
}
