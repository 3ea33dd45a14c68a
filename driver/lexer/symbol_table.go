package lexer

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
)

// ErrInvalidValue is returned when a value of a name is neither an int nor a float.
var ErrInvalidValue = errors.New("invalid value")

type ValueType string

const (
	ValueTypeNone  = ValueType("none")
	ValueTypeInt   = ValueType("int")
	ValueTypeFloat = ValueType("float")
)

// SymbolEntry is a name recorded by a lexer. Index is 1-based and follows the order of first
// appearance.
type SymbolEntry struct {
	Index int
	Name  string
	Type  ValueType
	Value string
}

type SymbolTable struct {
	entries []*SymbolEntry
	index   map[string]*SymbolEntry
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		index: map[string]*SymbolEntry{},
	}
}

// Record adds a name unless it is already recorded. It reports whether the name is new.
func (t *SymbolTable) Record(name string) (*SymbolEntry, bool) {
	if e, ok := t.index[name]; ok {
		return e, false
	}
	e := &SymbolEntry{
		Index: len(t.entries) + 1,
		Name:  name,
		Type:  ValueTypeNone,
	}
	t.entries = append(t.entries, e)
	t.index[name] = e
	return e, true
}

// Assign sets a value of a recorded name. A value containing a dot is a float; any other value is
// an int. An empty value clears the entry. When the value cannot be read, the entry is cleared
// and an error is returned.
func (t *SymbolTable) Assign(name string, value string) error {
	e, ok := t.index[name]
	if !ok {
		return fmt.Errorf("symbol '%v' is not recorded", name)
	}
	e.Type = ValueTypeNone
	e.Value = ""

	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	if strings.Contains(value, ".") {
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w for %v: %v", ErrInvalidValue, name, value)
		}
		e.Type = ValueTypeFloat
		e.Value = strconv.FormatFloat(f, 'f', -1, 64)
		return nil
	}
	i, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fmt.Errorf("%w for %v: %v", ErrInvalidValue, name, value)
	}
	e.Type = ValueTypeInt
	e.Value = strconv.FormatInt(i, 10)
	return nil
}

func (t *SymbolTable) Lookup(name string) (*SymbolEntry, bool) {
	e, ok := t.index[name]
	return e, ok
}

func (t *SymbolTable) Entries() []*SymbolEntry {
	return append([]*SymbolEntry{}, t.entries...)
}

// Prompter asks for a value of a name.
type Prompter interface {
	Prompt(name string) (string, error)
}

// PrompterFunc adapts a function to a Prompter.
type PrompterFunc func(name string) (string, error)

func (f PrompterFunc) Prompt(name string) (string, error) {
	return f(name)
}

// RejectionReporter is implemented by prompters that tell the user why a value was rejected.
type RejectionReporter interface {
	Reject(name string, err error)
}

type readlinePrompter struct{}

// NewReadlinePrompter returns a prompter reading values from the terminal.
func NewReadlinePrompter() Prompter {
	return &readlinePrompter{}
}

func (p *readlinePrompter) Prompt(name string) (string, error) {
	rl, err := readline.New(fmt.Sprintf("Enter the value for %v: ", name))
	if err != nil {
		return "", err
	}
	defer rl.Close()
	return rl.Readline()
}

func (p *readlinePrompter) Reject(name string, err error) {
	fmt.Fprintf(os.Stderr, "%v; try again\n", err)
}
