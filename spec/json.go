package spec

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	verr "github.com/nihei9/ll1/error"
)

type jsonDefinition struct {
	Name      string       `json:"name"`
	Start     string       `json:"start"`
	Terminals []string     `json:"terminals"`
	Rules     []*jsonRule  `json:"rules"`
	Tokens    []*jsonToken `json:"tokens"`
}

type jsonRule struct {
	LHS          string   `json:"lhs"`
	Alternatives []string `json:"alternatives"`
}

type jsonToken struct {
	Terminal string `json:"terminal"`
	Pattern  string `json:"pattern"`
	Skip     bool   `json:"skip"`
}

// ParseJSON reads a grammar definition written in the JSON format. Each alternative is a list
// of labels separated by white spaces; an empty string or ε is the empty alternative.
func ParseJSON(src io.Reader) (*RootNode, error) {
	def := &jsonDefinition{}
	err := json.NewDecoder(src).Decode(def)
	if err != nil {
		return nil, fmt.Errorf("Cannot decode the grammar definition: %w", err)
	}

	var errs verr.SpecErrors
	root := &RootNode{
		Name:  def.Name,
		Start: def.Start,
	}
	for _, t := range def.Terminals {
		root.Terminals = append(root.Terminals, &ElementNode{
			Label: t,
		})
	}
	for i, r := range def.Rules {
		if r.LHS == "" {
			errs = append(errs, &verr.SpecError{
				Cause:  synErrJSONNoLHS,
				Detail: fmt.Sprintf("rules[%v]", i),
			})
			continue
		}
		if len(r.Alternatives) == 0 {
			errs = append(errs, &verr.SpecError{
				Cause:  synErrJSONNoAlternative,
				Detail: r.LHS,
			})
			continue
		}
		prod := &ProductionNode{
			LHS: r.LHS,
		}
		for _, alt := range r.Alternatives {
			elems := []*ElementNode{}
			for _, label := range strings.Fields(alt) {
				elems = append(elems, &ElementNode{
					Label: label,
				})
			}
			prod.RHS = append(prod.RHS, &AlternativeNode{
				Elements: elems,
			})
		}
		root.Productions = append(root.Productions, prod)
	}
	for i, t := range def.Tokens {
		if t.Terminal == "" {
			errs = append(errs, &verr.SpecError{
				Cause:  synErrJSONTokenNoTerminal,
				Detail: fmt.Sprintf("tokens[%v]", i),
			})
			continue
		}
		if t.Pattern == "" {
			errs = append(errs, &verr.SpecError{
				Cause:  synErrNoPattern,
				Detail: t.Terminal,
			})
			continue
		}
		root.Tokens = append(root.Tokens, &TokenNode{
			Terminal: t.Terminal,
			Pattern:  t.Pattern,
			Skip:     t.Skip,
		})
	}
	if len(root.Productions) == 0 && len(errs) == 0 {
		errs = append(errs, &verr.SpecError{
			Cause: synErrNoProduction,
		})
	}
	if len(errs) > 0 {
		return nil, errs
	}

	return root, nil
}
