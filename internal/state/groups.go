package state

import (
	"iter"
	"slices"
)

// Group is a maximal set of adjacent points of the same color. Empty cells are always
// singleton groups.
type Group struct {
	Captain HexPoint
	Color   Color
	Members Bitset
}

// Groups partitions a StoneBoard into groups, each represented by its captain: the smallest
// HexPoint of the group. So any group touching an edge is captained by the edge.
type Groups struct {
	stones   *StoneBoard
	captains []HexPoint // Indexed by HexPoint.
	groups   []*Group   // Sorted by captain.
}

// NewGroups computes the groups of the given position.
//
// The position is not copied, and it should not be changed while Groups is in use.
func NewGroups(sb *StoneBoard) *Groups {
	board := sb.board
	g := &Groups{
		stones:   sb,
		captains: make([]HexPoint, board.NumPoints()+int(North)),
	}
	// Flood fill from each point not yet assigned, visiting points in increasing order
	// guarantees the first point of each group is its captain.
	var stack []HexPoint
	for p := range board.EdgesAndInterior() {
		if g.captains[p] != InvalidPoint {
			continue
		}
		color := sb.ColorOf(p)
		group := &Group{Captain: p, Color: color}
		g.captains[p] = p
		group.Members.Set(p)
		if color != Empty {
			stack = append(stack[:0], p)
			for len(stack) > 0 {
				current := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				for _, neighbor := range board.Neighbors(current) {
					if g.captains[neighbor] != InvalidPoint || sb.ColorOf(neighbor) != color {
						continue
					}
					g.captains[neighbor] = p
					group.Members.Set(neighbor)
					stack = append(stack, neighbor)
				}
			}
		}
		g.groups = append(g.groups, group)
	}
	return g
}

// Stones returns the position the groups were computed from.
func (g *Groups) Stones() *StoneBoard { return g.stones }

// Board returns the geometry of the position.
func (g *Groups) Board() *Board { return g.stones.board }

// CaptainOf returns the captain of the group p belongs to.
func (g *Groups) CaptainOf(p HexPoint) HexPoint {
	return g.captains[p]
}

// GroupOf returns the group p belongs to.
func (g *Groups) GroupOf(p HexPoint) *Group {
	captain := g.captains[p]
	idx, found := slices.BinarySearchFunc(g.groups, captain, func(group *Group, target HexPoint) int {
		return int(group.Captain) - int(target)
	})
	if !found {
		return nil
	}
	return g.groups[idx]
}

// NumGroups returns the total number of groups, of all colors.
func (g *Groups) NumGroups() int { return len(g.groups) }

// Groups enumerates the groups whose color is in colors, in captain order.
func (g *Groups) Groups(colors ColorSet) iter.Seq[*Group] {
	return func(yield func(*Group) bool) {
		for _, group := range g.groups {
			if colors.Has(group.Color) {
				if !yield(group) {
					return
				}
			}
		}
	}
}
