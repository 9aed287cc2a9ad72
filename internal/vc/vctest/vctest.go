// Package vctest generates random virtual connections, to use in tests and benchmarks.
//
// The connections are not meaningful Hex proofs: they only exercise the data structures.
package vctest

import (
	"math/rand/v2"

	"github.com/janpfeifer/hexGo/internal/state"
	"github.com/janpfeifer/hexGo/internal/vc"
)

// Generator of random connections for a board.
type Generator struct {
	board      *state.Board
	rng        *rand.Rand
	points     []state.HexPoint
	cells      []state.HexPoint
	maxCarrier int
}

// NewGenerator returns a Generator for the board, seeded with seed so results are reproducible.
// maxCarrier is the maximum number of points in the carrier of generated connections.
func NewGenerator(board *state.Board, seed uint64, maxCarrier int) *Generator {
	g := &Generator{
		board:      board,
		rng:        rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		maxCarrier: max(maxCarrier, 1),
	}
	for p := range board.EdgesAndInterior() {
		g.points = append(g.points, p)
		if !p.IsEdge() {
			g.cells = append(g.cells, p)
		}
	}
	return g
}

// Pair returns two distinct random points of the board.
func (g *Generator) Pair() (x, y state.HexPoint) {
	x = g.points[g.rng.IntN(len(g.points))]
	for {
		y = g.points[g.rng.IntN(len(g.points))]
		if y != x {
			return
		}
	}
}

// Carrier returns a random set of cells with 1 to maxCarrier points, excluding x and y.
func (g *Generator) Carrier(x, y state.HexPoint) (carrier state.Bitset) {
	size := 1 + g.rng.IntN(g.maxCarrier)
	for range size {
		p := g.cells[g.rng.IntN(len(g.cells))]
		if p != x && p != y {
			carrier.Set(p)
		}
	}
	return
}

// VC returns a random connection of the given kind between x and y.
func (g *Generator) VC(x, y state.HexPoint, kind vc.Kind) vc.VC {
	carrier := g.Carrier(x, y)
	rule := vc.Rule(g.rng.IntN(3))
	if kind == vc.Full {
		return vc.NewFull(x, y, carrier, rule)
	}
	var key state.Bitset
	for p := range carrier.Points() {
		key.Set(p)
		break
	}
	return vc.NewSemi(x, y, carrier, key, rule)
}

// Random returns a random connection of a random kind between a random pair of points.
func (g *Generator) Random() vc.VC {
	x, y := g.Pair()
	return g.VC(x, y, vc.Kinds[g.rng.IntN(int(vc.NumKinds))])
}

// IntN exposes the generator's random source, so callers can make further reproducible choices.
func (g *Generator) IntN(n int) int {
	return g.rng.IntN(n)
}
