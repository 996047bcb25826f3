package output

import (
	"encoding/json"
	"io"
	"sort"
	"strconv"

	"goanneal/pkg/problem"
	"goanneal/pkg/symtab"
)

// bqpDoc is a bqpjson v1.0.0 document.
type bqpDoc struct {
	Version        string         `json:"version"`
	ID             int            `json:"id"`
	Scale          float64        `json:"scale"`
	Offset         float64        `json:"offset"`
	VariableDomain string         `json:"variable_domain"`
	VariableIDs    []int          `json:"variable_ids"`
	LinearTerms    []bqpLinear    `json:"linear_terms"`
	QuadraticTerms []bqpQuadratic `json:"quadratic_terms"`
	Metadata       bqpMetadata    `json:"metadata"`
}

type bqpLinear struct {
	ID    int     `json:"id"`
	Coeff float64 `json:"coeff"`
}

type bqpQuadratic struct {
	IDHead int     `json:"id_head"`
	IDTail int     `json:"id_tail"`
	Coeff  float64 `json:"coeff"`
}

type bqpMetadata struct {
	Generator    string              `json:"generator"`
	VariableName map[string][]string `json:"variable_names,omitempty"`
}

// BQPJSON writes the problem as a bqpjson v1.0.0 document.  The
// variable domain follows the problem's own form: "boolean" for QUBO,
// "spin" for Ising.  When a symbol table is supplied, variable names
// are recorded in the metadata.
func BQPJSON(w io.Writer, p *problem.Problem, syms *symtab.SymbolTable) error {
	doc := bqpDoc{
		Version:        "1.0.0",
		Scale:          1.0,
		Offset:         p.Offset,
		VariableDomain: "spin",
		LinearTerms:    []bqpLinear{},
		QuadraticTerms: []bqpQuadratic{},
	}
	if p.QUBO {
		doc.VariableDomain = "boolean"
	}

	seen := make(map[int]bool)
	for _, q := range sortedWeightQubits(p) {
		seen[q] = true
		doc.LinearTerms = append(doc.LinearTerms, bqpLinear{ID: q, Coeff: p.Weights[q]})
	}
	for _, e := range sortedStrengthEdges(p) {
		seen[e[0]] = true
		seen[e[1]] = true
		doc.QuadraticTerms = append(doc.QuadraticTerms, bqpQuadratic{
			IDHead: e[0],
			IDTail: e[1],
			Coeff:  p.Strengths[e],
		})
	}
	doc.VariableIDs = make([]int, 0, len(seen))
	for q := range seen {
		doc.VariableIDs = append(doc.VariableIDs, q)
	}
	sort.Ints(doc.VariableIDs)

	doc.Metadata.Generator = "annealc"
	if syms != nil {
		names := make(map[string][]string)
		for _, q := range doc.VariableIDs {
			if ss, err := syms.SymbolsOf(q); err == nil {
				names[strconv.Itoa(q)] = ss
			}
		}
		if len(names) > 0 {
			doc.Metadata.VariableName = names
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
