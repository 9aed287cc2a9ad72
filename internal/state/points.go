// Package state holds the Hex board collaborators of the connection sets: the enumeration of
// the board points, stone positions and groups of stones with their captains.
package state

import (
	"fmt"
	"iter"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// HexPoint identifies a location of the board: either one of the 4 edges or an interior cell.
//
// Edges come first, so they are always the smallest points of the board. Cells follow in
// row-major order.
type HexPoint uint16

const (
	// InvalidPoint is the null value of HexPoint.
	InvalidPoint HexPoint = iota
	North
	East
	South
	West

	// FirstCell is the HexPoint of the cell at row 0, column 0 ("a1").
	FirstCell
)

const (
	// NumEdges of a Hex board.
	NumEdges = 4

	// NumNeighbors of an interior cell: the board is hexagonal.
	NumNeighbors = 6

	// MaxWidth and MaxHeight of a supported board.
	MaxWidth, MaxHeight = 19, 19
)

var edgeNames = [FirstCell]string{"invalid", "north", "east", "south", "west"}

// IsEdge returns whether the point is one of the 4 edges.
func (p HexPoint) IsEdge() bool {
	return p >= North && p <= West
}

// Board holds the geometry of a Hex board: its dimensions, the enumeration of its points and
// their adjacency. It holds no stones, see StoneBoard for that.
//
// A Board is immutable after creation and can be shared among goroutines.
type Board struct {
	width, height int
	points        []HexPoint
	neighbors     [][]HexPoint
}

// NewBoard creates the geometry of a board with the given dimensions.
func NewBoard(width, height int) (*Board, error) {
	if width <= 0 || height <= 0 || width > MaxWidth || height > MaxHeight {
		return nil, errors.Errorf("invalid board dimensions %dx%d, they must be in the range 1x1 to %dx%d",
			width, height, MaxWidth, MaxHeight)
	}
	b := &Board{width: width, height: height}
	numPoints := NumEdges + width*height
	b.points = make([]HexPoint, 0, numPoints)
	for p := North; p < FirstCell+HexPoint(width*height); p++ {
		b.points = append(b.points, p)
	}
	b.buildNeighbors()
	return b, nil
}

// buildNeighbors for every point of the board. Index 0 (InvalidPoint) is left empty.
func (b *Board) buildNeighbors() {
	b.neighbors = make([][]HexPoint, len(b.points)+1)
	link := func(p1, p2 HexPoint) {
		b.neighbors[p1] = append(b.neighbors[p1], p2)
		b.neighbors[p2] = append(b.neighbors[p2], p1)
	}
	// Cell to cell: each cell links to its neighbors to the right and below, the others
	// are linked from the other side.
	for row := range b.height {
		for col := range b.width {
			p := b.PointAt(row, col)
			if col+1 < b.width {
				link(p, b.PointAt(row, col+1))
			}
			if row+1 < b.height {
				link(p, b.PointAt(row+1, col))
				if col > 0 {
					link(p, b.PointAt(row+1, col-1))
				}
			}
		}
	}
	// Cell to edges.
	for col := range b.width {
		link(b.PointAt(0, col), North)
		link(b.PointAt(b.height-1, col), South)
	}
	for row := range b.height {
		link(b.PointAt(row, 0), West)
		link(b.PointAt(row, b.width-1), East)
	}
}

// Width of the board.
func (b *Board) Width() int { return b.width }

// Height of the board.
func (b *Board) Height() int { return b.height }

// NumPoints returns the number of edges and cells of the board.
func (b *Board) NumPoints() int { return len(b.points) }

// Index returns a dense 0-based index of the point, in the range [0, NumPoints()).
func (b *Board) Index(p HexPoint) int { return int(p - North) }

// PointAt returns the cell at the given row and column. It doesn't check the limits.
func (b *Board) PointAt(row, col int) HexPoint {
	return FirstCell + HexPoint(row*b.width+col)
}

// RowCol returns the row and column of a cell. It returns -1, -1 for edges.
func (b *Board) RowCol(p HexPoint) (row, col int) {
	if p < FirstCell {
		return -1, -1
	}
	idx := int(p - FirstCell)
	return idx / b.width, idx % b.width
}

// IsValid returns whether p is an edge or a cell of this board.
func (b *Board) IsValid(p HexPoint) bool {
	return p >= North && int(p-North) < len(b.points)
}

// EdgesAndInterior enumerates all the points of the board, edges first.
//
// The order is stable, so for pair-indexed structures one can visit each unordered pair
// once by breaking the inner loop when it reaches the outer point.
func (b *Board) EdgesAndInterior() iter.Seq[HexPoint] {
	return func(yield func(HexPoint) bool) {
		for _, p := range b.points {
			if !yield(p) {
				return
			}
		}
	}
}

// Edges enumerates the 4 edges.
func (b *Board) Edges() iter.Seq[HexPoint] {
	return func(yield func(HexPoint) bool) {
		for _, p := range b.points[:NumEdges] {
			if !yield(p) {
				return
			}
		}
	}
}

// Interior enumerates the cells of the board.
func (b *Board) Interior() iter.Seq[HexPoint] {
	return func(yield func(HexPoint) bool) {
		for _, p := range b.points[NumEdges:] {
			if !yield(p) {
				return
			}
		}
	}
}

// Neighbors returns the points adjacent to p. The returned slice is owned by the board
// and must not be modified.
func (b *Board) Neighbors(p HexPoint) []HexPoint {
	return b.neighbors[p]
}

// PointName returns the name of the point: "north", "east", ... for edges and
// "a1", "c5", ... for cells (column letter followed by the 1-based row).
func (b *Board) PointName(p HexPoint) string {
	if p < FirstCell {
		return edgeNames[p]
	}
	if !b.IsValid(p) {
		return fmt.Sprintf("invalid(%d)", p)
	}
	row, col := b.RowCol(p)
	return fmt.Sprintf("%c%d", 'a'+col, row+1)
}

// ParsePoint is the inverse of PointName.
func (b *Board) ParsePoint(name string) (HexPoint, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for p := North; p < FirstCell; p++ {
		if edgeNames[p] == name {
			return p, nil
		}
	}
	if len(name) < 2 || name[0] < 'a' || name[0] > 'z' {
		return InvalidPoint, errors.Errorf("invalid point name %q", name)
	}
	col := int(name[0] - 'a')
	row, err := strconv.Atoi(name[1:])
	if err != nil {
		return InvalidPoint, errors.Wrapf(err, "invalid row in point name %q", name)
	}
	row--
	if col >= b.width || row < 0 || row >= b.height {
		return InvalidPoint, errors.Errorf("point %q is outside of the %dx%d board", name, b.width, b.height)
	}
	return b.PointAt(row, col), nil
}

// String implements fmt.Stringer.
func (b *Board) String() string {
	return fmt.Sprintf("%dx%d", b.width, b.height)
}
