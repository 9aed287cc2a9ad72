package vcset_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/klog/v2"

	"github.com/janpfeifer/hexGo/internal/changelog"
	"github.com/janpfeifer/hexGo/internal/parameters"
	. "github.com/janpfeifer/hexGo/internal/state"
	"github.com/janpfeifer/hexGo/internal/state/statetest"
	"github.com/janpfeifer/hexGo/internal/vc"
	"github.com/janpfeifer/hexGo/internal/vc/vctest"
	"github.com/janpfeifer/hexGo/internal/vcset"
)

func init() {
	klog.InitFlags(nil)
}

// describe returns a sorted description of every connection of the set, processed flags
// included, so two sets can be compared exactly.
func describe(set *vcset.VCSet) []string {
	board := set.Board()
	var lines []string
	for y := range board.EdgesAndInterior() {
		for x := range board.EdgesAndInterior() {
			if x == y {
				break
			}
			for _, kind := range vc.Kinds {
				for v := range set.List(x, y, kind).All() {
					lines = append(lines, v.Format(board))
				}
			}
		}
	}
	slices.Sort(lines)
	return lines
}

func TestScenarioRemoveAndRevert(t *testing.T) {
	board := statetest.EmptyBoard(1, 1)
	p1, p2 := North, board.PointAt(0, 0)
	set := vcset.New(board, Black)
	assert.False(t, set.Exists(p1, p2, vc.Full))
	_, found := set.SmallestVC(p1, p2, vc.Full)
	assert.False(t, found)

	r := vc.NewFull(p1, p2, Bitset{}, vc.Base)
	require.True(t, set.Add(r, nil))
	assert.True(t, set.Exists(p1, p2, vc.Full))
	assert.True(t, set.Exists(p2, p1, vc.Full))
	assert.False(t, set.Exists(p1, p2, vc.Semi))
	got, found := set.SmallestVC(p1, p2, vc.Full)
	require.True(t, found)
	assert.True(t, got.Equal(r))

	log := vcset.NewLog()
	log.PushMarker()
	require.True(t, set.Remove(r, log))
	assert.False(t, set.Exists(p1, p2, vc.Full))
	assert.False(t, set.Remove(r, log), "removing twice should fail")

	set.Revert(log)
	assert.True(t, log.Empty())
	assert.True(t, set.Exists(p1, p2, vc.Full))
	got, found = set.SmallestVC(p1, p2, vc.Full)
	require.True(t, found)
	assert.True(t, got.Equal(r))
}

func TestScenarioSemiSoftLimit(t *testing.T) {
	board := statetest.EmptyBoard(3, 3)
	a1, b1, c1 := board.PointAt(0, 0), board.PointAt(0, 1), board.PointAt(0, 2)
	set := vcset.New(board, White)
	set.SetSoftLimit(vc.Semi, 1)
	assert.Equal(t, 1, set.SoftLimit(vc.Semi))
	assert.Equal(t, vc.DefaultSoftLimitFull, set.SoftLimit(vc.Full))

	worse := vc.NewSemi(a1, West, BitsetWith(b1, c1), BitsetWith(b1), vc.Base)
	better := vc.NewSemi(a1, West, BitsetWith(b1), BitsetWith(b1), vc.Base)
	log := vcset.NewLog()
	log.PushMarker()
	assert.True(t, set.Add(worse, log))
	assert.True(t, set.Add(better, log))
	vcs := set.VCs(West, a1, vc.Semi)
	require.Len(t, vcs, 1)
	assert.True(t, vcs[0].Equal(better))

	// The eviction is reverted as well.
	set.Revert(log)
	assert.False(t, set.Exists(a1, West, vc.Semi))
}

func TestSymmetryAndSelfPairs(t *testing.T) {
	board := statetest.EmptyBoard(3, 2)
	set := vcset.New(board, Black)
	gen := vctest.NewGenerator(board, 42, 4)
	for range 500 {
		set.Add(gen.Random(), nil)
	}
	set.SetSoftLimit(vc.Full, 3)
	for x := range board.EdgesAndInterior() {
		for y := range board.EdgesAndInterior() {
			for _, kind := range vc.Kinds {
				assert.Same(t, set.List(x, y, kind), set.List(y, x, kind))
				assert.Equal(t, set.Exists(x, y, kind), set.Exists(y, x, kind))
				if x == y {
					assert.False(t, set.Exists(x, x, kind))
					assert.Equal(t, vc.DefaultSoftLimit(kind), set.List(x, x, kind).SoftLimit(),
						"soft limit of self-pairs should not be changed")
				} else {
					assert.LessOrEqual(t, set.List(x, y, kind).Len(), vc.DefaultSoftLimit(kind))
				}
			}
		}
	}
}

func TestSoftLimitBound(t *testing.T) {
	board := statetest.EmptyBoard(2, 2)
	set := vcset.New(board, Black)
	set.SetSoftLimit(vc.Full, 2)
	set.SetSoftLimit(vc.Semi, 3)
	gen := vctest.NewGenerator(board, 7, 4)
	for range 2000 {
		set.Add(gen.Random(), nil)
	}
	for y := range board.EdgesAndInterior() {
		for x := range board.EdgesAndInterior() {
			assert.LessOrEqual(t, set.List(x, y, vc.Full).Len(), 2)
			assert.LessOrEqual(t, set.List(x, y, vc.Semi).Len(), 3)
		}
	}
	assert.Greater(t, set.Count(vc.Full), 0)
}

// randomMutations applies numOps random adds, removes and processed flags to the session.
func randomMutations(gen *vctest.Generator, session *vcset.Session, numOps int) {
	set := session.Set()
	for range numOps {
		v := gen.Random()
		switch gen.IntN(4) {
		case 0, 1:
			session.Add(v)
		case 2:
			if existing := set.VCs(v.X(), v.Y(), v.Kind()); len(existing) > 0 {
				session.Remove(existing[gen.IntN(len(existing))])
			}
		case 3:
			if existing := set.VCs(v.X(), v.Y(), v.Kind()); len(existing) > 0 {
				session.MarkProcessed(existing[gen.IntN(len(existing))])
			}
		}
	}
}

func TestRevertRoundTrip(t *testing.T) {
	board := statetest.EmptyBoard(3, 3)
	set := vcset.New(board, Black)
	set.SetSoftLimit(vc.Full, 2)
	set.SetSoftLimit(vc.Semi, 3)
	gen := vctest.NewGenerator(board, 1, 3)
	session := vcset.NewSession(set)
	randomMutations(gen, session, 300)
	session.Commit()

	// Nested checkpoints, reverted one at a time.
	const depth = 5
	var snapshots [][]string
	var clones []*vcset.VCSet
	for range depth {
		snapshots = append(snapshots, describe(set))
		clones = append(clones, set.Clone())
		session.Mark()
		randomMutations(gen, session, 100)
	}
	require.Equal(t, depth, session.Depth())
	for level := depth - 1; level >= 0; level-- {
		session.Backtrack()
		assert.Equal(t, snapshots[level], describe(set), "level %d", level)
		assert.True(t, set.Equal(clones[level]), "level %d", level)
	}
	assert.True(t, session.Log().Empty())

	// Revert without marker drains the log.
	log := vcset.NewLog()
	randomMutations(gen, vcset.NewSession(set), 10)
	before := describe(set)
	for range 20 {
		set.Add(gen.Random(), log)
	}
	set.Revert(log)
	assert.True(t, log.Empty())
	assert.Equal(t, before, describe(set))
}

func TestProcessed(t *testing.T) {
	board := statetest.EmptyBoard(2, 2)
	a1 := board.PointAt(0, 0)
	set := vcset.New(board, Black)
	v := vc.NewFull(a1, North, Bitset{}, vc.Base)
	set.Add(v, nil)

	log := vcset.NewLog()
	log.PushMarker()
	assert.True(t, set.MarkProcessed(v, log))
	assert.False(t, set.MarkProcessed(v, log), "already processed")
	assert.False(t, set.MarkProcessed(vc.NewFull(a1, South, Bitset{}, vc.Base), log), "not in the set")
	got, _ := set.SmallestVC(a1, North, vc.Full)
	assert.True(t, got.IsProcessed())
	assert.Equal(t, 2, log.Len())

	set.Revert(log)
	got, _ = set.SmallestVC(a1, North, vc.Full)
	assert.False(t, got.IsProcessed())
}

func TestRevertConsistencyViolation(t *testing.T) {
	board := statetest.EmptyBoard(2, 2)
	a1, b1 := board.PointAt(0, 0), board.PointAt(0, 1)
	v := vc.NewFull(a1, b1, Bitset{}, vc.Base)

	// Log says v was added, but the set doesn't have it.
	set := vcset.New(board, Black)
	log := vcset.NewLog()
	log.Push(changelog.Add, v)
	err := set.TryRevert(log)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not in the set")

	// Log says v was processed, but its flag is not set.
	set.Add(v, nil)
	otherSet := set.Clone()
	otherLog := vcset.NewLog()
	otherSet.MarkProcessed(v, otherLog)
	require.Panics(t, func() { set.Revert(otherLog) })
}

func TestCloneIndependence(t *testing.T) {
	board := statetest.EmptyBoard(3, 3)
	gen := vctest.NewGenerator(board, 3, 3)
	a := vcset.New(board, White)
	for range 200 {
		a.Add(gen.Random(), nil)
	}
	aDescription := describe(a)

	b := a.Clone()
	assert.True(t, a.Equal(b))
	assert.True(t, b.Equal(a))
	_, _, _, found := a.Diff(b)
	assert.False(t, found)

	session := vcset.NewSession(b)
	randomMutations(gen, session, 200)
	b.Clear()
	assert.Equal(t, aDescription, describe(a))
	assert.False(t, a.Equal(b))
	x, y, _, found := a.Diff(b)
	assert.True(t, found)
	assert.NotEqual(t, x, y)

	var c vcset.VCSet
	c.CopyFrom(a)
	assert.True(t, c.Equal(a))
	assert.Equal(t, White, c.Color())
	c.Clear()
	assert.Equal(t, aDescription, describe(a))

	fork := vcset.NewSession(a).Fork()
	assert.NotSame(t, a, fork.Set())
	assert.True(t, fork.Set().Equal(a))
}

func TestClear(t *testing.T) {
	board := statetest.EmptyBoard(3, 3)
	gen := vctest.NewGenerator(board, 5, 3)
	set := vcset.New(board, Black)
	for range 300 {
		set.Add(gen.Random(), nil)
	}
	set.Clear()
	for y := range board.EdgesAndInterior() {
		for x := range board.EdgesAndInterior() {
			for _, kind := range vc.Kinds {
				assert.False(t, set.Exists(x, y, kind))
			}
		}
	}
	assert.True(t, set.Equal(vcset.New(board, Black)))
}

func TestNewFromParams(t *testing.T) {
	board := statetest.EmptyBoard(2, 2)
	params := parameters.NewFromConfigString("full_limit=3,semi_limit=7,other=1")
	set, err := vcset.NewFromParams(board, Black, params)
	require.NoError(t, err)
	assert.Equal(t, 3, set.SoftLimit(vc.Full))
	assert.Equal(t, 7, set.SoftLimit(vc.Semi))
	assert.Equal(t, parameters.Params{"other": "1"}, params)

	_, err = vcset.NewFromParams(board, Black, parameters.NewFromConfigString("full_limit=0"))
	assert.Error(t, err)
	_, err = vcset.NewFromParams(board, Black, parameters.NewFromConfigString("semi_limit=x"))
	assert.Error(t, err)
}
