/*
topoview displays the Chimera lattice inferred from a hardware
description file.  Unit cells are drawn as two facing shores of L
qubits; couplers the lattice expects but the hardware lacks are drawn
in red.  Press L to toggle qubit labels, Esc to quit.
*/
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"goanneal/pkg/chimera"
	"goanneal/pkg/hardware"
)

// notify is used to output error messages.
var notify *log.Logger

const (
	cellSize   = 112 // logical pixels per unit cell
	cellMargin = 20
	qubitR     = 3.5
)

var (
	colQubit   = color.RGBA{0xe0, 0xe0, 0xe0, 0xff}
	colCoupler = color.RGBA{0x60, 0xa0, 0x60, 0xff}
	colMissing = color.RGBA{0xc0, 0x40, 0x40, 0xff}
)

type Game struct {
	topo       chimera.Topology
	present    map[[2]int]bool // couplers the hardware actually has
	showLabels bool
}

// qubitPos returns the on-screen position of a qubit.  Shore 0 is the
// cell's left column, shore 1 the right.
func (g *Game) qubitPos(q int) (float32, float32) {
	c := chimera.LinearToCoord(q, g.topo)
	x := float32(c.Col*cellSize + cellMargin)
	if c.Shore == 1 {
		x += float32(cellSize - 2*cellMargin)
	}
	step := float32(cellSize-2*cellMargin) / float32(g.topo.L)
	y := float32(c.Row*cellSize+cellMargin) + (float32(c.K)+0.5)*step
	return x, y
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		g.showLabels = !g.showLabels
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	// Couplers first so the qubits paint over the line ends.
	for _, c := range chimera.Adjacency(g.topo) {
		clr := colCoupler
		if !g.present[c] {
			clr = colMissing
		}
		x1, y1 := g.qubitPos(c[0])
		x2, y2 := g.qubitPos(c[1])
		vector.StrokeLine(screen, x1, y1, x2, y2, 1, clr, true)
	}
	for q := 0; q < g.topo.NumQubits(); q++ {
		x, y := g.qubitPos(q)
		vector.DrawFilledCircle(screen, x, y, qubitR, colQubit, true)
		if g.showLabels {
			ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%d", q), int(x)+4, int(y)-6)
		}
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.topo.M * cellSize, g.topo.N * cellSize
}

func main() {
	notify = log.New(os.Stderr, "topoview: ", 0)
	lattice := ""
	flag.StringVar(&lattice, "chimera", "", `view a perfect lattice "L,M,N" instead of a description file`)
	flag.Parse()

	var desc hardware.Description
	switch {
	case lattice != "":
		var t chimera.Topology
		if _, err := fmt.Sscanf(lattice, "%d,%d,%d", &t.L, &t.M, &t.N); err != nil {
			notify.Fatalf("bad lattice %q: want L,M,N", lattice)
		}
		desc = hardware.Chimera(t)
	case flag.NArg() == 1:
		f, err := os.Open(flag.Arg(0))
		if err != nil {
			notify.Fatal(err)
		}
		desc, err = hardware.Load(f)
		f.Close()
		if err != nil {
			notify.Fatal(err)
		}
	default:
		notify.Fatalf("usage: %s [--chimera L,M,N] [hardware-file]", os.Args[0])
	}

	topo, err := chimera.Infer(desc.Couplers, desc.NumQubits)
	if err != nil {
		notify.Fatal(err)
	}
	present := make(map[[2]int]bool, len(desc.Couplers))
	for _, c := range desc.Couplers {
		if c[0] > c[1] {
			c[0], c[1] = c[1], c[0]
		}
		present[c] = true
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(topo.M*cellSize, topo.N*cellSize)
	ebiten.SetWindowTitle(fmt.Sprintf("topoview %s", topo))
	if err := ebiten.RunGame(&Game{topo: topo, present: present}); err != nil {
		notify.Fatal(err)
	}
}
