// Package problem holds the numeric form of an optimization problem:
// per-qubit weights and pairwise coupler strengths, in either QUBO
// ({0,1}) or Ising ({-1,+1}) variable domains.
package problem

// Edge is an undirected qubit pair.  Canonical form is (min, max).
type Edge [2]int

// NewEdge returns the canonical form of the pair (a, b).
func NewEdge(a, b int) Edge {
	if a > b {
		a, b = b, a
	}
	return Edge{a, b}
}

// EdgeWeights maps qubit pairs to quadratic term coefficients.
type EdgeWeights map[Edge]float64

// Canonicalize combines edges (A, B) and (B, A) into (A, B) with A < B,
// summing their weights.  Self-loops and exactly-zero weights are
// discarded.  The result uses only canonical keys, so applying
// Canonicalize twice equals applying it once.
func Canonicalize(strengths EdgeWeights) EdgeWeights {
	out := make(EdgeWeights, len(strengths))
	for e, wt := range strengths {
		if e[0] == e[1] {
			continue // vertex weight, not an edge
		}
		if wt == 0.0 {
			continue
		}
		k := NewEdge(e[0], e[1])
		out[k] += wt
	}
	// Reversed entries can sum to exactly zero; those must go too or a
	// second pass would not be a fixed point.
	for e, wt := range out {
		if wt == 0.0 {
			delete(out, e)
		}
	}
	return out
}

// DenseWeights converts a sparse weight map to a list indexed by qubit
// number, sized to the largest qubit present.
func DenseWeights(weights map[int]float64) []float64 {
	max := -1
	for q := range weights {
		if q > max {
			max = q
		}
	}
	dense := make([]float64, max+1)
	for q, wt := range weights {
		dense[q] = wt
	}
	return dense
}

// SparseWeights converts a weight list back to a map, dropping zeros.
func SparseWeights(dense []float64) map[int]float64 {
	weights := make(map[int]float64)
	for q, wt := range dense {
		if wt != 0.0 {
			weights[q] = wt
		}
	}
	return weights
}

// Problem is a QUBO or Ising problem over numeric qubits.  Offset is
// the constant energy term accumulated by domain conversions.
type Problem struct {
	Weights   map[int]float64
	Strengths EdgeWeights
	QUBO      bool
	Offset    float64
}

// New returns an empty problem in the given domain.
func New(qubo bool) *Problem {
	return &Problem{
		Weights:   make(map[int]float64),
		Strengths: make(EdgeWeights),
		QUBO:      qubo,
	}
}

// AddWeight accumulates a linear term on qubit q.
func (p *Problem) AddWeight(q int, wt float64) {
	p.Weights[q] += wt
}

// AddStrength accumulates a quadratic term on the pair (a, b).
func (p *Problem) AddStrength(a, b int, wt float64) {
	p.Strengths[NewEdge(a, b)] += wt
}

// Qubits returns the number of distinct qubits with a nonzero term.
func (p *Problem) Qubits() int {
	seen := make(map[int]bool)
	for q, wt := range p.Weights {
		if wt != 0.0 {
			seen[q] = true
		}
	}
	for e, wt := range p.Strengths {
		if wt != 0.0 {
			seen[e[0]] = true
			seen[e[1]] = true
		}
	}
	return len(seen)
}

// MaxQubit returns the largest qubit number appearing in the problem,
// or -1 if the problem is empty.
func (p *Problem) MaxQubit() int {
	max := -1
	for q := range p.Weights {
		if q > max {
			max = q
		}
	}
	for e := range p.Strengths {
		if e[1] > max {
			max = e[1]
		}
	}
	return max
}

// ToQUBO returns an equivalent problem over {0,1} variables, using the
// change of variables s = 2x - 1.  The energy of every assignment is
// preserved up to Offset.  A problem already in QUBO form is returned
// as is.
func (p *Problem) ToQUBO() *Problem {
	if p.QUBO {
		return p
	}
	q := New(true)
	q.Offset = p.Offset
	for i, h := range p.Weights {
		q.Weights[i] += 2 * h
		q.Offset -= h
	}
	for e, j := range p.Strengths {
		q.Strengths[e] += 4 * j
		q.Weights[e[0]] -= 2 * j
		q.Weights[e[1]] -= 2 * j
		q.Offset += j
	}
	return q
}

// ToIsing returns an equivalent problem over {-1,+1} variables, the
// inverse of ToQUBO.  A problem already in Ising form is returned as
// is.
func (p *Problem) ToIsing() *Problem {
	if !p.QUBO {
		return p
	}
	ising := New(false)
	ising.Offset = p.Offset
	for i, a := range p.Weights {
		ising.Weights[i] += a / 2
		ising.Offset += a / 2
	}
	for e, b := range p.Strengths {
		ising.Strengths[e] += b / 4
		ising.Weights[e[0]] += b / 4
		ising.Weights[e[1]] += b / 4
		ising.Offset += b / 4
	}
	return ising
}

// Energy evaluates the problem's cost function for an assignment of
// values to qubits, plus Offset.  Assignments are in the problem's own
// domain.
func (p *Problem) Energy(assign map[int]float64) float64 {
	e := p.Offset
	for q, wt := range p.Weights {
		e += wt * assign[q]
	}
	for edge, wt := range p.Strengths {
		e += wt * assign[edge[0]] * assign[edge[1]]
	}
	return e
}
