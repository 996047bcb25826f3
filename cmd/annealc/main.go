/*
annealc lowers a macro-expanded symbolic optimization program into a
numeric QUBO/Ising problem and writes it in one or more solver input
formats.  Input lines are either a per-variable weight, a pairwise
strength, or an alias:

	# comment
	x  1.5
	x y -2
	y = z
*/
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"goanneal/pkg/chimera"
	"goanneal/pkg/embedding"
	"goanneal/pkg/hardware"
	"goanneal/pkg/output"
	"goanneal/pkg/problem"
	"goanneal/pkg/stats"
	"goanneal/pkg/symtab"
)

// notify is used to output error and status messages.
var notify *log.Logger

// checkError aborts the run on error.
func checkError(e error) {
	if e != nil {
		notify.Fatal(e)
	}
}

// parseSource reads a symbolic program into the symbol table and
// problem.  Macro expansion happens upstream; by the time a program
// reaches annealc every line is a weight, a strength, or an alias.
func parseSource(r io.Reader, syms *symtab.SymbolTable, prob *problem.Problem) error {
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

		case len(fields) == 3 && fields[1] == "=":
			if _, err := syms.Alias(fields[0], fields[2]); err != nil {
				return fmt.Errorf("line %d: %w", lineNo, err)
			}

		case len(fields) == 2:
			wt, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				return fmt.Errorf("line %d: bad weight %q", lineNo, fields[1])
			}
			prob.AddWeight(syms.ResolveOrDefine(fields[0]), wt)

		case len(fields) == 3:
			wt, err := strconv.ParseFloat(fields[2], 64)
			if err != nil {
				return fmt.Errorf("line %d: bad strength %q", lineNo, fields[2])
			}
			a := syms.ResolveOrDefine(fields[0])
			b := syms.ResolveOrDefine(fields[1])
			if a == b {
				return fmt.Errorf("line %d: strength connects %q to itself", lineNo, fields[0])
			}
			prob.AddStrength(a, b, wt)

		default:
			return fmt.Errorf("line %d: unparseable line %q", lineNo, strings.TrimSpace(line))
		}
	}
	return scanner.Err()
}

// reportEmbeddability runs the degree-based admissibility filter and
// summarizes the outcome on standard error.  The verdict is advisory:
// a false negative is impossible, a false positive is not.
func reportEmbeddability(prob *problem.Problem, desc hardware.Description) {
	needed := make([][2]int, 0, len(prob.Strengths))
	for e := range prob.Strengths {
		needed = append(needed, [2]int{e[0], e[1]})
	}
	rep := embedding.Analyze(needed, desc.Couplers)

	notify.Printf("embeddability: nodes %d/%d, edges %d/%d, extras >= %d",
		rep.NodesNeeded, rep.NodesAvail, rep.EdgesNeeded, rep.EdgesAvail, rep.Extras)
	tallies := make(map[int]int, len(rep.DegreeHist))
	for _, dc := range rep.DegreeHist {
		notify.Printf("embeddability: %d node(s) of degree %d", dc.Count, dc.Degree)
		tallies[dc.Degree] = dc.Count
	}
	mean, stdev := stats.WeightedMeanStdev(tallies)
	median := stats.WeightedMedian(tallies)
	notify.Printf("embeddability: degree median %.1f, mean %.2f, stdev %.2f, MAD %.1f",
		median, mean, stdev, stats.WeightedMAD(tallies, median))
	if !rep.Embeddable {
		notify.Printf("Warning: the problem cannot be embedded in the hardware graph")
	} else {
		notify.Printf("embeddability: no obstruction found")
	}
}

// writeFormat serializes the problem in one named format.
func writeFormat(w io.Writer, format string, prob *problem.Problem, syms *symtab.SymbolTable,
	desc hardware.Description, topo chimera.Topology, topoErr error, asQubo bool) error {
	domain := func() *problem.Problem {
		if asQubo {
			return prob.ToQUBO()
		}
		return prob.ToIsing()
	}
	switch format {
	case "qubist":
		return output.Qubist(w, domain(), desc.NumQubits)
	case "dw":
		if topoErr != nil {
			return fmt.Errorf("dw output is supported only for Chimera-graph topologies: %w", topoErr)
		}
		return output.DW(w, prob, topo)
	case "qbsolv":
		return output.Qbsolv(w, prob)
	case "bqpjson":
		return output.BQPJSON(w, domain(), syms)
	default:
		return fmt.Errorf("unrecognized output format %q", format)
	}
}

// extensions maps a format name to its conventional file suffix.
var extensions = map[string]string{
	"qubist":  "qubist",
	"dw":      "dw",
	"qbsolv":  "qubo",
	"bqpjson": "json",
}

func main() {
	notify = log.New(os.Stderr, "annealc: ", 0)

	formatList := ""
	flag.StringVar(&formatList, "format", "qubist", `comma-separated output formats: "qubist", "dw", "qbsolv", "bqpjson"`)
	flag.StringVar(&formatList, "f", "qubist", "shorthand for --format")
	outName := ""
	flag.StringVar(&outName, "output", "", "output file name (default: standard output)")
	flag.StringVar(&outName, "o", "", "shorthand for --output")
	hwName := ""
	flag.StringVar(&hwName, "hardware", "", "hardware description file (couplers plus optional qubit count)")
	asQubo := flag.Bool("qubo", false, "emit a QUBO instead of an Ising problem where the format allows a choice")
	checkEmbed := flag.Bool("check-embed", false, "report whether the problem has a chance of embedding in the hardware graph")
	flag.Parse()

	formats := strings.Split(formatList, ",")
	for _, f := range formats {
		if _, ok := extensions[f]; !ok {
			notify.Fatalf("unrecognized output format %q", f)
		}
	}

	// Read and expand the symbolic program.
	var src io.Reader = os.Stdin
	if flag.NArg() > 0 {
		f, err := os.Open(flag.Arg(0))
		checkError(err)
		defer f.Close()
		src = f
	}
	// Source programs state weights and strengths in Ising terms;
	// --qubo converts on output.
	syms := symtab.New()
	prob := problem.New(false)
	checkError(parseSource(src, syms, prob))
	syms.Freeze()
	prob.Strengths = problem.Canonicalize(prob.Strengths)

	// Load the hardware description, if any, and infer its topology
	// once.  Inference failure is tolerated here; only formats that
	// need bit-exact coupler addresses reject it later.
	var desc hardware.Description
	var topo chimera.Topology
	topoErr := fmt.Errorf("no hardware description given")
	if hwName != "" {
		f, err := os.Open(hwName)
		checkError(err)
		desc, err = hardware.Load(f)
		f.Close()
		checkError(err)
		topo, topoErr = chimera.Infer(desc.Couplers, desc.NumQubits)
	}

	if *checkEmbed {
		if hwName == "" {
			notify.Fatal("--check-embed requires --hardware")
		}
		reportEmbeddability(prob, desc)
	}

	// Emit every requested format.  Each format succeeds or fails on
	// its own; a dw failure on a non-Chimera topology must not keep
	// the qubist output from being written.
	if outName == "" || outName == "-" {
		if len(formats) > 1 {
			notify.Fatal("writing multiple formats to standard output would interleave them; use --output")
		}
		checkError(writeFormat(os.Stdout, formats[0], prob, syms, desc, topo, topoErr, *asQubo))
		return
	}
	var grp errgroup.Group
	for _, format := range formats {
		format := format
		name := outName
		if len(formats) > 1 {
			name = outName + "." + extensions[format]
		}
		grp.Go(func() error {
			err := func() error {
				w, err := output.Open(name)
				if err != nil {
					return err
				}
				if err := writeFormat(w, format, prob, syms, desc, topo, topoErr, *asQubo); err != nil {
					w.Close()
					return err
				}
				return w.Close()
			}()
			if err != nil {
				notify.Printf("%s: %v", format, err)
			}
			return err
		})
	}
	if grp.Wait() != nil {
		os.Exit(1)
	}
}
