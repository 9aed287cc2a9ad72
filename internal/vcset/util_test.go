package vcset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/janpfeifer/hexGo/internal/state"
	"github.com/janpfeifer/hexGo/internal/state/statetest"
	"github.com/janpfeifer/hexGo/internal/vc"
	"github.com/janpfeifer/hexGo/internal/vcset"
)

// utilPosition: a1 joins the North edge, b2 is an isolated black stone, c3 joins the East edge.
const utilPosition = `
B . .
 . B .
  . . W
`

func TestConnectedToAndNumActive(t *testing.T) {
	sb := statetest.BuildStoneBoard(utilPosition)
	board := sb.Board()
	groups := NewGroups(sb)
	a1, b2, c1 := board.PointAt(0, 0), board.PointAt(1, 1), board.PointAt(0, 2)
	require.Equal(t, North, groups.CaptainOf(a1))

	set := vcset.New(board, Black)
	set.Add(vc.NewFull(North, b2, BitsetWith(board.PointAt(0, 1)), vc.And), nil)
	set.Add(vc.NewFull(North, c1, BitsetWith(board.PointAt(0, 1)), vc.And), nil)
	set.Add(vc.NewFull(North, East, Bitset{}, vc.Base), nil)
	set.Add(vc.NewSemi(b2, South, BitsetWith(board.PointAt(2, 1)), BitsetWith(board.PointAt(2, 1)), vc.Base), nil)
	// Not between captains: ignored by NumActive.
	set.Add(vc.NewFull(a1, b2, BitsetWith(board.PointAt(0, 1)), vc.Base), nil)

	assert.Equal(t, BitsetWith(b2, c1), vcset.ConnectedTo(set, groups, a1, vc.Full))
	assert.Equal(t, BitsetWith(b2, c1), vcset.ConnectedTo(set, groups, North, vc.Full))
	assert.Equal(t, BitsetWith(South), vcset.ConnectedTo(set, groups, b2, vc.Semi))
	assert.True(t, vcset.ConnectedTo(set, groups, board.PointAt(2, 0), vc.Full).IsEmpty())

	fulls, semis := vcset.NumActive(set, groups)
	assert.Equal(t, 2, fulls)
	assert.Equal(t, 1, semis)
}

func TestEqualOnGroups(t *testing.T) {
	sb := statetest.BuildStoneBoard(utilPosition)
	board := sb.Board()
	groups := NewGroups(sb)
	a1, b2, c1 := board.PointAt(0, 0), board.PointAt(1, 1), board.PointAt(0, 2)

	s1 := vcset.New(board, Black)
	s1.Add(vc.NewFull(North, b2, Bitset{}, vc.Base), nil)
	s2 := s1.Clone()
	assert.True(t, vcset.EqualOnGroups(s1, s2, groups))

	// a1 is not a captain, so its connections are not compared.
	s2.Add(vc.NewFull(a1, c1, Bitset{}, vc.Base), nil)
	assert.False(t, s1.Equal(s2))
	assert.True(t, vcset.EqualOnGroups(s1, s2, groups))

	s2.Add(vc.NewSemi(North, South, BitsetWith(b2), BitsetWith(b2), vc.Or), nil)
	assert.False(t, vcset.EqualOnGroups(s1, s2, groups))

	// Different colors are never equal.
	assert.False(t, vcset.EqualOnGroups(s1, vcset.New(board, White), groups))
}
