package state_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/janpfeifer/hexGo/internal/state"
	"github.com/janpfeifer/hexGo/internal/state/statetest"
)

func TestStoneBoard(t *testing.T) {
	board := statetest.EmptyBoard(2, 2)
	sb := NewStoneBoard(board)
	a1 := board.PointAt(0, 0)
	assert.Equal(t, Empty, sb.ColorOf(a1))
	assert.Equal(t, Black, sb.ColorOf(North))
	assert.Equal(t, White, sb.ColorOf(East))

	require.NoError(t, sb.PlayStone(a1, White))
	assert.Error(t, sb.PlayStone(a1, Black), "cell is occupied")
	assert.Error(t, sb.PlayStone(North, Black), "can't play on edges")
	assert.Error(t, sb.PlayStone(board.PointAt(1, 1), Empty))

	clone := sb.Clone()
	require.NoError(t, clone.PlayStone(board.PointAt(1, 1), Black))
	assert.Equal(t, Empty, sb.ColorOf(board.PointAt(1, 1)))

	assert.Equal(t, []HexPoint{East, West, a1}, slices.Collect(sb.Stones(ColorSetWith(White))))
	assert.Len(t, slices.Collect(sb.Stones(AllColors)), board.NumPoints())
}

func TestGroups(t *testing.T) {
	sb := statetest.BuildStoneBoard(`
		B . . W
		 . B W .
		  B . . .
		   . . B .
	`)
	board := sb.Board()
	groups := NewGroups(sb)
	at := board.PointAt

	// a1 joins North, while b2 and a3 form a group of their own.
	assert.Equal(t, North, groups.CaptainOf(at(0, 0)))
	assert.Equal(t, at(1, 1), groups.CaptainOf(at(1, 1)))
	assert.Equal(t, at(1, 1), groups.CaptainOf(at(2, 0)))
	// a3 touches West, which is White, so it is not part of West's group.
	assert.Equal(t, West, groups.CaptainOf(West))
	// d1 touches East, and c2 joins it through d1.
	assert.Equal(t, East, groups.CaptainOf(at(0, 3)))
	assert.Equal(t, East, groups.CaptainOf(at(1, 2)))
	// c4 touches South.
	assert.Equal(t, South, groups.CaptainOf(at(3, 2)))
	// Empty cells are their own captains.
	assert.Equal(t, at(0, 1), groups.CaptainOf(at(0, 1)))

	group := groups.GroupOf(at(2, 0))
	require.NotNil(t, group)
	assert.Equal(t, Black, group.Color)
	assert.Equal(t, BitsetWith(at(1, 1), at(2, 0)), group.Members)

	var blackCaptains []HexPoint
	for g := range groups.Groups(ColorSetWith(Black)) {
		blackCaptains = append(blackCaptains, g.Captain)
	}
	assert.Equal(t, []HexPoint{North, South, at(1, 1)}, blackCaptains)

	numEmpty := 0
	for range groups.Groups(ColorSetWith(Empty)) {
		numEmpty++
	}
	assert.Equal(t, 10, numEmpty)
	assert.Equal(t, 3+2+numEmpty, groups.NumGroups())
	assert.Same(t, board, groups.Board())
}
