package grammar

type Terminal struct {
	Number  int    `json:"number"`
	Name    string `json:"name"`
	Pattern string `json:"pattern,omitempty"`
	Skip    bool   `json:"skip,omitempty"`
}

type NonTerminal struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
}

type ReportProduction struct {
	Number int      `json:"number"`
	LHS    string   `json:"lhs"`
	RHS    []string `json:"rhs"`
}

// SetEntry is FIRST or FOLLOW of one non-terminal.
type SetEntry struct {
	NonTerminal string   `json:"non_terminal"`
	Terminals   []string `json:"terminals"`
}

type TableEntry struct {
	NonTerminal string `json:"non_terminal"`
	Lookahead   string `json:"lookahead"`
	Production  int    `json:"production"`
}

type Conflict struct {
	NonTerminal string `json:"non_terminal"`
	Lookahead   string `json:"lookahead"`
	Adopted     int    `json:"adopted"`
	Rejected    int    `json:"rejected"`
}

type Report struct {
	Name         string              `json:"name"`
	Start        string              `json:"start"`
	Terminals    []*Terminal         `json:"terminals"`
	NonTerminals []*NonTerminal      `json:"non_terminals"`
	Productions  []*ReportProduction `json:"productions"`
	First        []*SetEntry         `json:"first"`
	Follow       []*SetEntry         `json:"follow"`
	Table        []*TableEntry       `json:"table"`
	Conflicts    []*Conflict         `json:"conflicts"`
	FirstCycles  []string            `json:"first_cycles,omitempty"`
	FollowCycles []string            `json:"follow_cycles,omitempty"`
}
