// Package statetest provides helper functions to create tests using Hex positions.
package statetest

import (
	"strings"

	"github.com/gomlx/exceptions"
	"github.com/janpfeifer/must"

	. "github.com/janpfeifer/hexGo/internal/state"
)

// BuildStoneBoard from an ASCII layout: one line per row, cells separated by spaces,
// where 'B' (or 'x') is a black stone, 'W' (or 'o') a white one and '.' an empty cell.
// Leading indentation, used to draw the rhombus, is ignored.
//
// It panics if the layout is invalid, it is meant to be used only in tests.
func BuildStoneBoard(layout string) *StoneBoard {
	var rows [][]string
	for _, line := range strings.Split(layout, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		rows = append(rows, fields)
	}
	board := must.M1(NewBoard(len(rows[0]), len(rows)))
	sb := NewStoneBoard(board)
	for row, cells := range rows {
		if len(cells) != board.Width() {
			exceptions.Panicf("row %d of layout has %d cells, expected %d", row, len(cells), board.Width())
		}
		for col, cell := range cells {
			p := board.PointAt(row, col)
			switch strings.ToUpper(cell) {
			case "B", "X":
				must.M(sb.PlayStone(p, Black))
			case "W", "O":
				must.M(sb.PlayStone(p, White))
			}
		}
	}
	return sb
}

// EmptyBoard returns the geometry of a board with the given dimensions.
func EmptyBoard(width, height int) *Board {
	return must.M1(NewBoard(width, height))
}
