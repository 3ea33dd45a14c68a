package grammar

import mlspec "github.com/nihei9/maleeni/spec"

// CompiledGrammar is the serializable form of an analyzed grammar. A driver parses with it
// without analyzing the grammar again.
type CompiledGrammar struct {
	Name        string         `json:"name"`
	Fingerprint string         `json:"fingerprint"`
	Lexical     *LexicalSpec   `json:"lexical,omitempty"`
	Syntactic   *SyntacticSpec `json:"syntactic"`
}

// LexicalSpec is present only when the grammar binds a token pattern to each terminal.
type LexicalSpec struct {
	Maleeni *mlspec.CompiledLexSpec `json:"maleeni"`

	// KindToTerminal maps a lexical kind ID to a terminal number. Kinds that are only skipped map
	// to -1.
	KindToTerminal []int `json:"kind_to_terminal"`

	// Skip[kindID] is 1 when tokens of the kind are dropped.
	Skip []int `json:"skip"`
}

// ProductionNumNil is the empty value of the parsing table.
const ProductionNumNil = 0

type SyntacticSpec struct {
	Start        int      `json:"start"`
	Terminals    []string `json:"terminals"`
	NonTerminals []string `json:"non_terminals"`
	EOFSymbol    int      `json:"eof_symbol"`

	// Productions[num-1] is the production numbered num.
	Productions []*Production `json:"productions"`

	// Table holds production numbers. A row is a non-terminal number and a column is a terminal
	// number.
	Table *RowDisplacementTable `json:"table"`
}

type Production struct {
	Num int `json:"num"`

	// LHS is a non-terminal number.
	LHS int `json:"lhs"`

	// RHS holds symbol labels. An empty RHS derives the empty string.
	RHS []string `json:"rhs"`
}

type RowDisplacementTable struct {
	OriginalRowCount int   `json:"original_row_count"`
	OriginalColCount int   `json:"original_col_count"`
	EmptyValue       int   `json:"empty_value"`
	Entries          []int `json:"entries"`
	Bounds           []int `json:"bounds"`
	RowDisplacement  []int `json:"row_displacement"`
}
