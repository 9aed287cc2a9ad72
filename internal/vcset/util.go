package vcset

import (
	"k8s.io/klog/v2"

	"github.com/janpfeifer/hexGo/internal/state"
	"github.com/janpfeifer/hexGo/internal/vc"
)

// ConnectedTo returns the points of the set's color (or empty) whose group is connected by a
// connection of the given kind to the group of x.
//
// Connections are looked up between group captains.
func ConnectedTo(set *VCSet, groups *state.Groups, x state.HexPoint, kind vc.Kind) (connected state.Bitset) {
	xCaptain := groups.CaptainOf(x)
	for y := range groups.Stones().Stones(state.ColorOrEmpty(set.Color())) {
		if set.Exists(xCaptain, groups.CaptainOf(y), kind) {
			connected.Set(y)
		}
	}
	return
}

// NumActive returns the number of full and semi connections between the captains of distinct
// groups of the set's color (or empty).
func NumActive(set *VCSet, groups *state.Groups) (fulls, semis int) {
	forEachCaptainPair(groups, set.Color(), func(x, y state.HexPoint) bool {
		fulls += set.List(x, y, vc.Full).Len()
		semis += set.List(x, y, vc.Semi).Len()
		return true
	})
	return
}

// EqualOnGroups compares two sets only on the pairs of group captains of the groups of their
// color (or empty). It is used to check that incrementally updated connections match the ones
// built from scratch.
//
// On a mismatch it logs the lists that differ.
func EqualOnGroups(s1, s2 *VCSet, groups *state.Groups) bool {
	if s1.Color() != s2.Color() || s1.Board().NumPoints() != s2.Board().NumPoints() {
		return false
	}
	equal := true
	forEachCaptainPair(groups, s1.Color(), func(x, y state.HexPoint) bool {
		for _, kind := range vc.Kinds {
			l1, l2 := s1.List(x, y, kind), s2.List(x, y, kind)
			if !l1.Equal(l2) {
				board := s1.Board()
				klog.Warningf("EqualOnGroups: %s connections between %s and %s differ:\n%s==============\n%s",
					kind, board.PointName(x), board.PointName(y), l1.Dump(board), l2.Dump(board))
				equal = false
				return false
			}
		}
		return true
	})
	return equal
}

// forEachCaptainPair calls fn for each unordered pair of distinct captains of the groups of
// color (or empty), until fn returns false.
func forEachCaptainPair(groups *state.Groups, color state.Color, fn func(x, y state.HexPoint) bool) {
	colors := state.ColorOrEmpty(color)
	for xGroup := range groups.Groups(colors) {
		for yGroup := range groups.Groups(colors) {
			if yGroup == xGroup {
				break
			}
			if !fn(xGroup.Captain, yGroup.Captain) {
				return
			}
		}
	}
}
