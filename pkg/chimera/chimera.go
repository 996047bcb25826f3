// Package chimera infers Chimera-lattice parameters from a raw coupler
// list and maps qubit pairs to physical coupler numbers.
package chimera

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrNonChimera means the hardware is not known to be a Chimera
	// graph.  Software heuristic solvers have no fixed index space and
	// trip this; it is an expected condition, not a defect.
	ErrNonChimera = errors.New("topology is not a known Chimera graph")

	// ErrNoSuchCoupler means a qubit pair is not physically adjacent
	// under the given topology.  Distinct from ErrNonChimera: the
	// topology is known, the coupler just does not exist.
	ErrNoSuchCoupler = errors.New("no coupler exists between qubit pair")
)

// Topology describes a Chimera lattice: L qubits per shore of a
// bipartite unit cell, M cell columns, N cell rows.
type Topology struct {
	L int
	M int
	N int
}

// CellLinks returns the number of couplers inside one unit cell.
func (t Topology) CellLinks() int { return t.L * t.L }

// TotalIntra returns the number of intra-cell couplers on the lattice.
func (t Topology) TotalIntra() int { return t.CellLinks() * t.M * t.N }

// TotalHorizontal returns the number of couplers joining horizontally
// adjacent cells.
func (t Topology) TotalHorizontal() int { return (t.M - 1) * t.N * t.L }

// TotalVertical returns the number of couplers joining vertically
// adjacent cells.
func (t Topology) TotalVertical() int { return (t.N - 1) * t.M * t.L }

// NumQubits returns the lattice's qubit count.
func (t Topology) NumQubits() int { return 2 * t.L * t.M * t.N }

// NumCouplers returns the lattice's coupler count.
func (t Topology) NumCouplers() int {
	return t.TotalIntra() + t.TotalHorizontal() + t.TotalVertical()
}

func (t Topology) String() string {
	return fmt.Sprintf("chimera{L:%d M:%d N:%d}", t.L, t.M, t.N)
}

// Infer derives (L, M, N) from a hardware coupler list and the nominal
// qubit count.  The most frequent index distance between coupled qubits
// is taken as L, on the assumption that intra-cell couplers dominate;
// the first less-frequent distance exceeding 2L is the horizontal
// stride, giving M; N follows from the nominal qubit count.
//
// A nominalQubits of zero or less means the solver has no fixed index
// space and Infer returns ErrNonChimera.  The heuristic has no
// validation step: on sparse or irregular non-Chimera graphs it can
// silently mis-infer parameters.
func Infer(couplers [][2]int, nominalQubits int) (Topology, error) {
	if nominalQubits <= 0 {
		return Topology{}, fmt.Errorf("%w: no nominal qubit count", ErrNonChimera)
	}
	if len(couplers) == 0 {
		return Topology{}, fmt.Errorf("%w: empty coupler list", ErrNonChimera)
	}

	tallies := make(map[int]int)
	for _, c := range couplers {
		d := c[0] - c[1]
		if d < 0 {
			d = -d
		}
		tallies[d]++
	}
	dists := make([]int, 0, len(tallies))
	for d := range tallies {
		dists = append(dists, d)
	}
	sort.Slice(dists, func(i, j int) bool {
		if tallies[dists[i]] != tallies[dists[j]] {
			return tallies[dists[i]] > tallies[dists[j]]
		}
		return dists[i] < dists[j]
	})

	l := dists[0]
	m := 1
	for _, d := range dists[1:] {
		if d > 2*l {
			m = d / (2 * l)
			break
		}
	}
	n := (nominalQubits + 2*l*m - 1) / (2 * l * m)
	return Topology{L: l, M: m, N: n}, nil
}

// Coord locates a qubit on the lattice: unit-cell row and column, shore
// (0 or 1), and offset within the shore.
type Coord struct {
	Row   int
	Col   int
	Shore int
	K     int
}

// LinearToCoord decomposes a linear qubit index into its lattice
// coordinates.
func LinearToCoord(q int, t Topology) Coord {
	cell := 2 * t.L * t.M
	row := q / cell
	q -= row * cell
	col := q / (2 * t.L)
	q -= col * 2 * t.L
	return Coord{Row: row, Col: col, Shore: q / t.L, K: q % t.L}
}

// CoordToLinear is the inverse of LinearToCoord.
func CoordToLinear(c Coord, t Topology) int {
	return ((c.Row*t.M+c.Col)*2+c.Shore)*t.L + c.K
}

// CouplerNumber maps a pair of qubits to the coupler number addressing
// their physical link.  The address space is partitioned into three
// fixed-order ranges: intra-cell first, then horizontal inter-cell,
// then vertical inter-cell.  A pair that is not adjacent under t fails
// with ErrNoSuchCoupler.
func CouplerNumber(t Topology, q1, q2 int) (int, error) {
	qmin, qmax := q1, q2
	if qmin > qmax {
		qmin, qmax = qmax, qmin
	}
	lo := LinearToCoord(qmin, t)
	hi := LinearToCoord(qmax, t)

	// Same unit cell, opposite shores.
	if lo.Row == hi.Row && lo.Col == hi.Col && lo.Shore != hi.Shore {
		return t.CellLinks()*(lo.Row*t.M+lo.Col) + lo.K*t.L + hi.K, nil
	}
	// Horizontally adjacent cells, same shore and offset.
	if lo.Row == hi.Row && lo.Col+1 == hi.Col && lo.Shore == hi.Shore && lo.K == hi.K {
		return t.TotalIntra() + t.L*(lo.Row*(t.M-1)+lo.Col) + lo.K, nil
	}
	// Vertically adjacent cells, same shore and offset.
	if lo.Row+1 == hi.Row && lo.Col == hi.Col && lo.Shore == hi.Shore && lo.K == hi.K {
		return t.TotalIntra() + t.TotalHorizontal() + t.L*(lo.Row*t.M+lo.Col) + lo.K, nil
	}
	return 0, fmt.Errorf("%w: Q%04d and Q%04d", ErrNoSuchCoupler, q1, q2)
}

// Adjacency generates every coupler of a perfect Chimera lattice, each
// as an ordered (lower, higher) qubit pair.
func Adjacency(t Topology) [][2]int {
	adj := make([][2]int, 0, t.NumCouplers())
	for row := 0; row < t.N; row++ {
		for col := 0; col < t.M; col++ {
			for k1 := 0; k1 < t.L; k1++ {
				a := CoordToLinear(Coord{Row: row, Col: col, Shore: 0, K: k1}, t)
				// Bipartite links within the cell.
				for k2 := 0; k2 < t.L; k2++ {
					b := CoordToLinear(Coord{Row: row, Col: col, Shore: 1, K: k2}, t)
					adj = append(adj, [2]int{a, b})
				}
				// Shore 0 runs vertically: link to the cell below.
				if row+1 < t.N {
					b := CoordToLinear(Coord{Row: row + 1, Col: col, Shore: 0, K: k1}, t)
					adj = append(adj, [2]int{a, b})
				}
				// Shore 1 runs horizontally: link to the cell to the right.
				if col+1 < t.M {
					c := CoordToLinear(Coord{Row: row, Col: col, Shore: 1, K: k1}, t)
					d := CoordToLinear(Coord{Row: row, Col: col + 1, Shore: 1, K: k1}, t)
					adj = append(adj, [2]int{c, d})
				}
			}
		}
	}
	return adj
}
