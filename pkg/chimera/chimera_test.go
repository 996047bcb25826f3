package chimera

import (
	"errors"
	"testing"
)

func TestTopologyCounts(t *testing.T) {
	topo := Topology{L: 4, M: 2, N: 2}
	if got := topo.CellLinks(); got != 16 {
		t.Errorf("CellLinks() = %d; want 16", got)
	}
	if got := topo.TotalIntra(); got != 64 {
		t.Errorf("TotalIntra() = %d; want 64", got)
	}
	if got := topo.TotalHorizontal(); got != 8 {
		t.Errorf("TotalHorizontal() = %d; want 8", got)
	}
	if got := topo.TotalVertical(); got != 8 {
		t.Errorf("TotalVertical() = %d; want 8", got)
	}
	if got := topo.NumCouplers(); got != 80 {
		t.Errorf("NumCouplers() = %d; want 80", got)
	}
	if got := topo.NumQubits(); got != 32 {
		t.Errorf("NumQubits() = %d; want 32", got)
	}
}

func TestCoordRoundTrip(t *testing.T) {
	topo := Topology{L: 4, M: 3, N: 2}
	for q := 0; q < topo.NumQubits(); q++ {
		c := LinearToCoord(q, topo)
		if c.Row < 0 || c.Row >= topo.N || c.Col < 0 || c.Col >= topo.M ||
			c.Shore < 0 || c.Shore > 1 || c.K < 0 || c.K >= topo.L {
			t.Fatalf("LinearToCoord(%d) = %+v: out of range", q, c)
		}
		if back := CoordToLinear(c, topo); back != q {
			t.Errorf("CoordToLinear(LinearToCoord(%d)) = %d", q, back)
		}
	}
}

func TestLinearToCoord(t *testing.T) {
	topo := Topology{L: 4, M: 2, N: 2}
	tests := []struct {
		q    int
		want Coord
	}{
		{0, Coord{0, 0, 0, 0}},
		{3, Coord{0, 0, 0, 3}},
		{4, Coord{0, 0, 1, 0}},
		{8, Coord{0, 1, 0, 0}},
		{15, Coord{0, 1, 1, 3}},
		{16, Coord{1, 0, 0, 0}},
		{31, Coord{1, 1, 1, 3}},
	}
	for _, tc := range tests {
		if got := LinearToCoord(tc.q, topo); got != tc.want {
			t.Errorf("LinearToCoord(%d) = %+v; want %+v", tc.q, got, tc.want)
		}
	}
}

func TestAdjacencyCount(t *testing.T) {
	// Deliberately asymmetric so M/N mixups show up.
	topo := Topology{L: 5, M: 4, N: 3}
	adj := Adjacency(topo)
	want := topo.NumCouplers()
	if len(adj) != want {
		t.Fatalf("Adjacency yielded %d couplers; want %d", len(adj), want)
	}
	seen := make(map[[2]int]bool)
	for _, c := range adj {
		if c[0] >= c[1] {
			t.Errorf("coupler %v not in (lower, higher) order", c)
		}
		if seen[c] {
			t.Errorf("coupler %v generated twice", c)
		}
		seen[c] = true
	}
}

func TestInfer(t *testing.T) {
	t.Run("RecoversKnownLattices", func(t *testing.T) {
		for _, topo := range []Topology{
			{L: 4, M: 2, N: 2},
			{L: 4, M: 8, N: 8},
			{L: 4, M: 16, N: 16},
			{L: 5, M: 4, N: 3},
		} {
			adj := Adjacency(topo)
			got, err := Infer(adj, topo.NumQubits())
			if err != nil {
				t.Errorf("Infer on %v failed: %v", topo, err)
				continue
			}
			if got != topo {
				t.Errorf("Infer recovered %v; want %v", got, topo)
			}
		}
	})

	t.Run("NoNominalQubitCount", func(t *testing.T) {
		topo := Topology{L: 4, M: 2, N: 2}
		if _, err := Infer(Adjacency(topo), 0); !errors.Is(err, ErrNonChimera) {
			t.Errorf("Infer without a qubit count: got %v; want ErrNonChimera", err)
		}
	})

	t.Run("EmptyCouplerList", func(t *testing.T) {
		if _, err := Infer(nil, 32); !errors.Is(err, ErrNonChimera) {
			t.Errorf("Infer on empty couplers: got %v; want ErrNonChimera", err)
		}
	})
}

func TestCouplerNumber(t *testing.T) {
	t.Run("BijectiveOverLattice", func(t *testing.T) {
		topo := Topology{L: 4, M: 2, N: 2}
		seen := make(map[int]bool)
		for _, c := range Adjacency(topo) {
			num, err := CouplerNumber(topo, c[0], c[1])
			if err != nil {
				t.Fatalf("CouplerNumber(%d, %d) failed: %v", c[0], c[1], err)
			}
			if num < 0 || num >= topo.NumCouplers() {
				t.Fatalf("CouplerNumber(%d, %d) = %d: outside [0, %d)", c[0], c[1], num, topo.NumCouplers())
			}
			if seen[num] {
				t.Fatalf("coupler number %d assigned twice", num)
			}
			seen[num] = true
		}
		if len(seen) != 80 {
			t.Errorf("addressed %d couplers; want exactly 80", len(seen))
		}
	})

	t.Run("OrderIndependent", func(t *testing.T) {
		topo := Topology{L: 4, M: 2, N: 2}
		a, err1 := CouplerNumber(topo, 0, 4)
		b, err2 := CouplerNumber(topo, 4, 0)
		if err1 != nil || err2 != nil {
			t.Fatalf("CouplerNumber failed: %v, %v", err1, err2)
		}
		if a != b {
			t.Errorf("CouplerNumber(0,4) = %d but CouplerNumber(4,0) = %d", a, b)
		}
	})

	t.Run("FixedAddresses", func(t *testing.T) {
		topo := Topology{L: 4, M: 2, N: 2}
		tests := []struct {
			q1, q2 int
			want   int
		}{
			{0, 4, 0},           // first intra-cell coupler of cell (0,0)
			{3, 7, 15},          // last intra-cell coupler of cell (0,0)
			{8, 12, 16},         // first coupler of cell (0,1)
			{4, 12, 64},         // first horizontal coupler
			{7, 15, 67},         // last horizontal coupler of row 0
			{0, 16, 72},         // first vertical coupler
			{27, 11, 79},        // last vertical coupler
		}
		for _, tc := range tests {
			got, err := CouplerNumber(topo, tc.q1, tc.q2)
			if err != nil {
				t.Errorf("CouplerNumber(%d, %d) failed: %v", tc.q1, tc.q2, err)
				continue
			}
			if got != tc.want {
				t.Errorf("CouplerNumber(%d, %d) = %d; want %d", tc.q1, tc.q2, got, tc.want)
			}
		}
	})

	t.Run("NonAdjacentPairs", func(t *testing.T) {
		topo := Topology{L: 4, M: 2, N: 2}
		for _, pair := range [][2]int{
			{0, 1},  // same shore, same cell
			{0, 9},  // adjacent cells but different in-shore offset
			{0, 12}, // different shore across cells
			{0, 24}, // two rows apart
			{5, 9},  // different shores across adjacent cells
		} {
			if _, err := CouplerNumber(topo, pair[0], pair[1]); !errors.Is(err, ErrNoSuchCoupler) {
				t.Errorf("CouplerNumber(%d, %d): got %v; want ErrNoSuchCoupler", pair[0], pair[1], err)
			}
		}
	})
}
