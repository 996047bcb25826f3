package main

import (
	"strings"
	"testing"

	"goanneal/pkg/problem"
	"goanneal/pkg/symtab"
)

func TestParseSource(t *testing.T) {
	t.Run("WeightsStrengthsAliases", func(t *testing.T) {
		src := `# three coupled variables
a  1.5
a b -2    # strength line
b  0.25
b = c
`
		syms := symtab.New()
		prob := problem.New(false)
		if err := parseSource(strings.NewReader(src), syms, prob); err != nil {
			t.Fatalf("parseSource failed: %v", err)
		}

		ia, _ := syms.IndexOf("a")
		ib, _ := syms.IndexOf("b")
		ic, _ := syms.IndexOf("c")
		if ib != ic {
			t.Errorf("aliased symbols b and c map to %d and %d", ib, ic)
		}
		if prob.Weights[ia] != 1.5 {
			t.Errorf("weight of a = %g; want 1.5", prob.Weights[ia])
		}
		if prob.Weights[ib] != 0.25 {
			t.Errorf("weight of b = %g; want 0.25", prob.Weights[ib])
		}
		if got := prob.Strengths[problem.NewEdge(ia, ib)]; got != -2 {
			t.Errorf("strength of (a, b) = %g; want -2", got)
		}
	})

	t.Run("RepeatedTermsAccumulate", func(t *testing.T) {
		src := "x 1\nx 2\nx y 1\ny x 2\n"
		syms := symtab.New()
		prob := problem.New(false)
		if err := parseSource(strings.NewReader(src), syms, prob); err != nil {
			t.Fatalf("parseSource failed: %v", err)
		}
		ix, _ := syms.IndexOf("x")
		iy, _ := syms.IndexOf("y")
		if prob.Weights[ix] != 3 {
			t.Errorf("weight of x = %g; want 3", prob.Weights[ix])
		}
		if got := prob.Strengths[problem.NewEdge(ix, iy)]; got != 3 {
			t.Errorf("strength of (x, y) = %g; want 3", got)
		}
	})

	t.Run("BadLines", func(t *testing.T) {
		for _, src := range []string{
			"a\n",          // lone symbol
			"a b c d\n",    // too many fields
			"a pi\n",       // bad weight
			"a b pi\n",     // bad strength
			"a a 1\n",      // strength from a symbol to itself
			"a = b = c\n",  // malformed alias
		} {
			syms := symtab.New()
			prob := problem.New(false)
			if err := parseSource(strings.NewReader(src), syms, prob); err == nil {
				t.Errorf("parseSource(%q) succeeded; want error", src)
			}
		}
	})

	t.Run("AliasConflictIsFatal", func(t *testing.T) {
		src := "a 1\nb 2\na = b\n"
		syms := symtab.New()
		prob := problem.New(false)
		err := parseSource(strings.NewReader(src), syms, prob)
		if err == nil {
			t.Fatal("aliasing two defined symbols succeeded; want error")
		}
		if !strings.Contains(err.Error(), "line 3") {
			t.Errorf("error %q does not name the offending line", err)
		}
	})
}
