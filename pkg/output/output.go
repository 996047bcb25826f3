// Package output serializes problems into the text formats downstream
// tools consume.  Writers never print diagnostics; every failure comes
// back as an error for the driver to report.
package output

import (
	"fmt"
	"io"
	"os"
	"sort"

	"goanneal/pkg/chimera"
	"goanneal/pkg/problem"
)

// Open opens the named output file, with "-" or "" meaning standard
// output.
func Open(name string) (io.WriteCloser, error) {
	if name == "" || name == "-" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(name)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// sortedWeightQubits returns the qubits carrying a nonzero weight in
// increasing order.
func sortedWeightQubits(p *problem.Problem) []int {
	qs := make([]int, 0, len(p.Weights))
	for q, wt := range p.Weights {
		if wt != 0.0 {
			qs = append(qs, q)
		}
	}
	sort.Ints(qs)
	return qs
}

// sortedStrengthEdges returns the canonical edges carrying a nonzero
// strength in increasing (min, max) order.
func sortedStrengthEdges(p *problem.Problem) []problem.Edge {
	es := make([]problem.Edge, 0, len(p.Strengths))
	for e, wt := range p.Strengths {
		if wt != 0.0 {
			es = append(es, e)
		}
	}
	sort.Slice(es, func(i, j int) bool {
		if es[i][0] != es[j][0] {
			return es[i][0] < es[j][0]
		}
		return es[i][1] < es[j][1]
	})
	return es
}

// Qubist writes the problem in Qubist format: a header of the qubit
// and entry counts, then one "i j value" line per term.  numQubits of
// zero or less means the hardware has no fixed index space, in which
// case the problem's own variable count is asserted instead.
func Qubist(w io.Writer, p *problem.Problem, numQubits int) error {
	qs := sortedWeightQubits(p)
	es := sortedStrengthEdges(p)
	if numQubits <= 0 {
		numQubits = len(qs)
	}
	if _, err := fmt.Fprintf(w, "%d %d\n", numQubits, len(qs)+len(es)); err != nil {
		return err
	}
	for _, q := range qs {
		if _, err := fmt.Fprintf(w, "%d %d %.10g\n", q, q, p.Weights[q]); err != nil {
			return err
		}
	}
	for _, e := range es {
		if _, err := fmt.Fprintf(w, "%d %d %.10g\n", e[0], e[1], p.Strengths[e]); err != nil {
			return err
		}
	}
	return nil
}

// DW writes the problem in dw format: fixed-width decimal qubit and
// coupler tokens sorted lexically.  The format addresses physical
// couplers, so it requires a Chimera topology; a strength on a pair of
// qubits that are not physically adjacent fails with the underlying
// chimera error.
func DW(w io.Writer, p *problem.Problem, topo chimera.Topology) error {
	qprob := p.ToQUBO()
	lines := make([]string, 0, len(qprob.Weights)+len(qprob.Strengths))
	for _, q := range sortedWeightQubits(qprob) {
		lines = append(lines, fmt.Sprintf("Q%04d <== %.25g", q, qprob.Weights[q]))
	}
	couplers := make([]string, 0, len(qprob.Strengths))
	for _, e := range sortedStrengthEdges(qprob) {
		c, err := chimera.CouplerNumber(topo, e[0], e[1])
		if err != nil {
			return fmt.Errorf("dw output: %w", err)
		}
		couplers = append(couplers, fmt.Sprintf("C%04d <== %.25g", c, qprob.Strengths[e]))
	}
	sort.Strings(lines)
	sort.Strings(couplers)
	lines = append(lines, couplers...)
	for _, ln := range lines {
		if _, err := fmt.Fprintln(w, ln); err != nil {
			return err
		}
	}
	return nil
}

// Qbsolv writes the problem in qbsolv input format.
func Qbsolv(w io.Writer, p *problem.Problem) error {
	qprob := p.ToQUBO()
	qs := sortedWeightQubits(qprob)
	es := sortedStrengthEdges(qprob)
	if _, err := fmt.Fprintf(w, "p qubo 0 %d %d %d\n", qprob.MaxQubit()+1, len(qs), len(es)); err != nil {
		return err
	}
	for _, q := range qs {
		if _, err := fmt.Fprintf(w, "%d %d %.10g\n", q, q, qprob.Weights[q]); err != nil {
			return err
		}
	}
	for _, e := range es {
		if _, err := fmt.Fprintf(w, "%d %d %.10g\n", e[0], e[1], qprob.Strengths[e]); err != nil {
			return err
		}
	}
	return nil
}
