package state

import (
	"iter"

	"github.com/pkg/errors"
)

// StoneBoard is a Board with stones played on it.
//
// Edges are considered stones of their owners' colors (see EdgeColor) and are always present.
type StoneBoard struct {
	board  *Board
	colors []Color // Indexed by HexPoint.
}

// NewStoneBoard returns an empty position on the given board.
func NewStoneBoard(board *Board) *StoneBoard {
	sb := &StoneBoard{
		board:  board,
		colors: make([]Color, board.NumPoints()+int(North)),
	}
	for ii := range sb.colors {
		sb.colors[ii] = Empty
	}
	for edge := range board.Edges() {
		sb.colors[edge] = EdgeColor(edge)
	}
	return sb
}

// Board returns the geometry of the position.
func (sb *StoneBoard) Board() *Board { return sb.board }

// PlayStone puts a stone of the given color on an empty cell.
func (sb *StoneBoard) PlayStone(p HexPoint, c Color) error {
	if !sb.board.IsValid(p) || p.IsEdge() {
		return errors.Errorf("can't play on %s, it is not a cell of the %s board", sb.board.PointName(p), sb.board)
	}
	if c != Black && c != White {
		return errors.Errorf("can't play a stone of color %s", c)
	}
	if sb.colors[p] != Empty {
		return errors.Errorf("cell %s is already occupied by %s", sb.board.PointName(p), sb.colors[p])
	}
	sb.colors[p] = c
	return nil
}

// ColorOf returns the color at point p.
func (sb *StoneBoard) ColorOf(p HexPoint) Color {
	return sb.colors[p]
}

// Stones enumerates the points (edges included) whose color is in colors.
func (sb *StoneBoard) Stones(colors ColorSet) iter.Seq[HexPoint] {
	return func(yield func(HexPoint) bool) {
		for p := range sb.board.EdgesAndInterior() {
			if colors.Has(sb.colors[p]) {
				if !yield(p) {
					return
				}
			}
		}
	}
}

// Clone returns an independent copy of the position.
func (sb *StoneBoard) Clone() *StoneBoard {
	newSB := &StoneBoard{board: sb.board}
	newSB.colors = make([]Color, len(sb.colors))
	copy(newSB.colors, sb.colors)
	return newSB
}
