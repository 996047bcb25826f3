// Package hardware describes an annealer's physical connectivity as
// supplied by the solver adapter: a coupler list plus, when the solver
// has a fixed index space, a nominal qubit count.
package hardware

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"goanneal/pkg/chimera"
)

// Description is a raw hardware graph.  NumQubits of zero or less
// means the solver has no fixed hardware representation (a software
// heuristic solver, for example).
type Description struct {
	NumQubits int
	Couplers  [][2]int
}

// Load reads a hardware description.  The format is line oriented:
//
//	# comment
//	qubits 32
//	0 4
//	0 5
//
// where "qubits" is optional and every other non-blank line names one
// coupler by its two qubit indices.
func Load(r io.Reader) (Description, error) {
	var d Description
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		switch {
		case len(fields) == 0:
			continue
		case fields[0] == "qubits" && len(fields) == 2:
			n, err := strconv.Atoi(fields[1])
			if err != nil {
				return Description{}, fmt.Errorf("line %d: bad qubit count %q", lineNo, fields[1])
			}
			d.NumQubits = n
		case len(fields) == 2:
			a, err1 := strconv.Atoi(fields[0])
			b, err2 := strconv.Atoi(fields[1])
			if err1 != nil || err2 != nil || a < 0 || b < 0 || a == b {
				return Description{}, fmt.Errorf("line %d: bad coupler %q", lineNo, strings.TrimSpace(line))
			}
			d.Couplers = append(d.Couplers, [2]int{a, b})
		default:
			return Description{}, fmt.Errorf("line %d: unparseable line %q", lineNo, strings.TrimSpace(line))
		}
	}
	if err := scanner.Err(); err != nil {
		return Description{}, err
	}
	return d, nil
}

// Chimera returns the description of a perfect Chimera lattice.
func Chimera(t chimera.Topology) Description {
	return Description{
		NumQubits: t.NumQubits(),
		Couplers:  chimera.Adjacency(t),
	}
}

// Qubits returns the sorted distinct qubits appearing in the coupler
// list.
func (d Description) Qubits() []int {
	seen := make(map[int]bool)
	for _, c := range d.Couplers {
		seen[c[0]] = true
		seen[c[1]] = true
	}
	qs := make([]int, 0, len(seen))
	for q := range seen {
		qs = append(qs, q)
	}
	sort.Ints(qs)
	return qs
}
