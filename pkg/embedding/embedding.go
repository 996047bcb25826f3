// Package embedding provides a fast, conservative check of whether a
// logical problem graph has any chance of being embedded in a hardware
// graph.  A positive answer is necessary for embeddability, never
// sufficient.
package embedding

import "sort"

// NeighborList maps each node of an edge list to the set of nodes it
// touches.
func NeighborList(edges [][2]int) map[int]map[int]bool {
	nodes := make(map[int]map[int]bool)
	add := func(a, b int) {
		set, ok := nodes[a]
		if !ok {
			set = make(map[int]bool)
			nodes[a] = set
		}
		set[b] = true
	}
	for _, e := range edges {
		add(e[0], e[1])
		add(e[1], e[0])
	}
	return nodes
}

// DegreeCount is one bucket of a node-degree histogram.
type DegreeCount struct {
	Degree int
	Count  int
}

// Report summarizes the admissibility check.
type Report struct {
	Embeddable bool
	Extras     int // lower bound on helper nodes needed for chains
	NodesNeeded, NodesAvail int
	EdgesNeeded, EdgesAvail int
	DegreeHist []DegreeCount // logical-graph degrees, ascending
}

// Analyze compares the logical edges a problem needs against the
// couplers the hardware offers.  Each logical node whose degree exceeds
// the hardware's maximum degree must be spread across a chain, costing
// at least ceil(degree/maxAvail)-1 extra nodes; if the needed nodes or
// edges plus those extras exceed what is available, the problem cannot
// be embedded.  Embeddable is advisory: true means only that this
// filter found no obstruction.
func Analyze(needed, avail [][2]int) Report {
	graphNeeded := NeighborList(needed)
	graphAvail := NeighborList(avail)

	r := Report{
		NodesNeeded: len(graphNeeded),
		NodesAvail:  len(graphAvail),
		EdgesNeeded: len(needed),
		EdgesAvail:  len(avail),
	}

	maxDegAvail := 0
	for _, peers := range graphAvail {
		if len(peers) > maxDegAvail {
			maxDegAvail = len(peers)
		}
	}

	hist := make(map[int]int)
	for _, peers := range graphNeeded {
		deg := len(peers)
		hist[deg]++
		if maxDegAvail > 0 && deg > maxDegAvail {
			r.Extras += (deg+maxDegAvail-1)/maxDegAvail - 1
		}
	}

	r.Embeddable = r.NodesNeeded+r.Extras <= r.NodesAvail &&
		r.EdgesNeeded+r.Extras <= r.EdgesAvail

	degrees := make([]int, 0, len(hist))
	for deg := range hist {
		degrees = append(degrees, deg)
	}
	sort.Ints(degrees)
	for _, deg := range degrees {
		r.DegreeHist = append(r.DegreeHist, DegreeCount{Degree: deg, Count: hist[deg]})
	}
	return r
}
