package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	spec "github.com/nihei9/ll1/spec/grammar"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "show <report file path>",
		Short:   "Print a report in a readable format",
		Example: `  ll1 show grammar-report.json`,
		Args:    cobra.ExactArgs(1),
		RunE:    runShow,
	}
	rootCmd.AddCommand(cmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	report, err := readReport(args[0])
	if err != nil {
		return err
	}

	err = writeReport(os.Stdout, report)
	if err != nil {
		return err
	}

	return nil
}

func readReport(path string) (*spec.Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("Cannot open the report %s: %w", path, err)
	}
	defer f.Close()

	d, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	report := &spec.Report{}
	err = json.Unmarshal(d, report)
	if err != nil {
		return nil, err
	}

	return report, nil
}

const reportTemplate = `# Grammar {{ .Name }}

start symbol: {{ .Start }}

# Conflicts

{{ printConflictSummary . }}
{{ range .Conflicts -}}
{{ printConflict . }}
{{ end }}
# Terminals

{{ range .Terminals -}}
{{ printTerminal . }}
{{ end }}
# Productions

{{ range .Productions -}}
{{ printProduction . }}
{{ end }}
# FIRST

{{ printSets .First .FirstCycles }}

# FOLLOW

{{ printSets .Follow .FollowCycles }}

# Parsing Table

{{ printTable . }}
`

func writeReport(w io.Writer, report *spec.Report) error {
	prods := map[int]*spec.ReportProduction{}
	for _, p := range report.Productions {
		prods[p.Number] = p
	}

	prodString := func(num int) string {
		p, ok := prods[num]
		if !ok {
			return fmt.Sprintf("#%v", num)
		}
		rhs := "ε"
		if len(p.RHS) > 0 {
			rhs = strings.Join(p.RHS, " ")
		}
		return fmt.Sprintf("%v -> %v", p.LHS, rhs)
	}

	var renderErr error
	render := func(data pterm.TableData) string {
		s, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
		if err != nil {
			renderErr = err
			return ""
		}
		return s
	}

	fns := template.FuncMap{
		"printConflictSummary": func(report *spec.Report) string {
			if len(report.Conflicts) == 0 {
				return "no conflicts"
			}
			return fmt.Sprintf("%v conflicts; the first production registered was kept", len(report.Conflicts))
		},
		"printConflict": func(c *spec.Conflict) string {
			return fmt.Sprintf("[%v, %v]: kept %v; rejected %v", c.NonTerminal, c.Lookahead, prodString(c.Adopted), prodString(c.Rejected))
		},
		"printTerminal": func(t *spec.Terminal) string {
			var b strings.Builder
			if t.Number >= 0 {
				fmt.Fprintf(&b, "%4v %v", t.Number, t.Name)
			} else {
				fmt.Fprintf(&b, "   - %v", t.Name)
			}
			if t.Pattern != "" {
				fmt.Fprintf(&b, " %#v", t.Pattern)
			}
			if t.Skip {
				b.WriteString(" (skip)")
			}
			return b.String()
		},
		"printProduction": func(p *spec.ReportProduction) string {
			return fmt.Sprintf("%4v %v", p.Number, prodString(p.Number))
		},
		"printSets": func(sets []*spec.SetEntry, cycles []string) string {
			data := pterm.TableData{
				{"non-terminal", "terminals"},
			}
			for _, e := range sets {
				data = append(data, []string{e.NonTerminal, strings.Join(e.Terminals, " ")})
			}
			s := render(data)
			if len(cycles) > 0 {
				s += fmt.Sprintf("\ncycles: %v", strings.Join(cycles, ", "))
			}
			return s
		},
		"printTable": func(report *spec.Report) string {
			var terms []string
			for _, t := range report.Terminals {
				if t.Number >= 0 {
					terms = append(terms, t.Name)
				}
			}
			cells := map[string]map[string]int{}
			for _, e := range report.Table {
				if cells[e.NonTerminal] == nil {
					cells[e.NonTerminal] = map[string]int{}
				}
				cells[e.NonTerminal][e.Lookahead] = e.Production
			}
			header := append([]string{""}, terms...)
			data := pterm.TableData{header}
			for _, nt := range report.NonTerminals {
				row := []string{nt.Name}
				for _, t := range terms {
					if prod, ok := cells[nt.Name][t]; ok {
						row = append(row, fmt.Sprintf("#%v", prod))
					} else {
						row = append(row, "")
					}
				}
				data = append(data, row)
			}
			return render(data)
		},
	}

	tmpl, err := template.New("").Funcs(fns).Parse(reportTemplate)
	if err != nil {
		return err
	}

	err = tmpl.Execute(w, report)
	if err != nil {
		return err
	}

	return renderErr
}
