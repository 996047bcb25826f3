package hardware

import (
	"reflect"
	"strings"
	"testing"

	"goanneal/pkg/chimera"
)

func TestLoad(t *testing.T) {
	t.Run("FullDescription", func(t *testing.T) {
		in := `# a toy annealer
qubits 8

0 4   # first cell
0 5
1 4
`
		d, err := Load(strings.NewReader(in))
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if d.NumQubits != 8 {
			t.Errorf("NumQubits = %d; want 8", d.NumQubits)
		}
		want := [][2]int{{0, 4}, {0, 5}, {1, 4}}
		if !reflect.DeepEqual(d.Couplers, want) {
			t.Errorf("Couplers = %v; want %v", d.Couplers, want)
		}
		if got := d.Qubits(); !reflect.DeepEqual(got, []int{0, 1, 4, 5}) {
			t.Errorf("Qubits() = %v; want [0 1 4 5]", got)
		}
	})

	t.Run("NoQubitCount", func(t *testing.T) {
		d, err := Load(strings.NewReader("0 1\n"))
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if d.NumQubits != 0 {
			t.Errorf("NumQubits = %d; want 0 (unknown)", d.NumQubits)
		}
	})

	t.Run("BadLines", func(t *testing.T) {
		for _, in := range []string{
			"0\n",           // one field
			"0 1 2\n",       // three fields
			"a b\n",         // not integers
			"3 3\n",         // self-coupler
			"-1 2\n",        // negative qubit
			"qubits many\n", // bad count
		} {
			if _, err := Load(strings.NewReader(in)); err == nil {
				t.Errorf("Load(%q) succeeded; want error", in)
			}
		}
	})
}

func TestChimera(t *testing.T) {
	topo := chimera.Topology{L: 4, M: 2, N: 2}
	d := Chimera(topo)
	if d.NumQubits != 32 {
		t.Errorf("NumQubits = %d; want 32", d.NumQubits)
	}
	if len(d.Couplers) != 80 {
		t.Errorf("%d couplers; want 80", len(d.Couplers))
	}
	// A synthetic description must round-trip through inference.
	got, err := chimera.Infer(d.Couplers, d.NumQubits)
	if err != nil {
		t.Fatalf("Infer failed: %v", err)
	}
	if got != topo {
		t.Errorf("Infer recovered %v; want %v", got, topo)
	}
}
