package vc

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/janpfeifer/hexGo/internal/state"
)

const (
	// DefaultSoftLimitFull is the default maximum number of full connections per pair.
	DefaultSoftLimitFull = 25

	// DefaultSoftLimitSemi is the default maximum number of semi connections per pair.
	DefaultSoftLimitSemi = 50
)

// DefaultSoftLimit returns the default soft limit for the kind.
func DefaultSoftLimit(kind Kind) int {
	if kind == Full {
		return DefaultSoftLimitFull
	}
	return DefaultSoftLimitSemi
}

// List holds the connections of one kind between one pair of points, best first.
//
// Connections are ranked by Count (carrier size), and connections with the same Count are
// kept in insertion order. The list never holds more than its soft limit of connections
// after an Add: the worst connections are evicted instead.
type List struct {
	x, y      state.HexPoint
	kind      Kind
	softLimit int
	vcs       []VC
}

// NewList creates an empty list for the pair (x, y) and the given kind.
func NewList(x, y state.HexPoint, kind Kind, softLimit int) *List {
	if x > y {
		x, y = y, x
	}
	return &List{x: x, y: y, kind: kind, softLimit: softLimit}
}

// X returns the smaller endpoint of the list.
func (l *List) X() state.HexPoint { return l.x }

// Y returns the larger endpoint of the list.
func (l *List) Y() state.HexPoint { return l.y }

// Kind of the connections in the list.
func (l *List) Kind() Kind { return l.kind }

// Len returns the number of connections.
func (l *List) Len() int { return len(l.vcs) }

// Empty returns whether the list has no connections.
func (l *List) Empty() bool { return len(l.vcs) == 0 }

// SoftLimit returns the current maximum size enforced by Add.
func (l *List) SoftLimit() int { return l.softLimit }

// SetSoftLimit changes the maximum size for subsequent Add calls. Connections above the new
// limit are not evicted now.
func (l *List) SetSoftLimit(limit int) { l.softLimit = limit }

// insertionIndex returns the position after all connections with Count <= count.
func (l *List) insertionIndex(count int) int {
	idx, _ := slices.BinarySearchFunc(l.vcs, count, func(v VC, target int) int {
		if v.Count() <= target {
			return -1
		}
		return 1
	})
	return idx
}

// Add inserts v in priority order and then evicts the worst connections above the soft limit.
//
// It returns whether v is in the list after the call (false if an equal connection was
// already present, or if v itself was evicted) and the connections evicted, excluding v.
func (l *List) Add(v VC) (added bool, evicted []VC) {
	if _, found := l.Find(v); found {
		return false, nil
	}
	l.SimpleAdd(v)
	added = true
	for len(l.vcs) > l.softLimit && len(l.vcs) > 0 {
		last := l.vcs[len(l.vcs)-1]
		l.vcs = l.vcs[:len(l.vcs)-1]
		if added && last.Equal(v) {
			added = false
			continue
		}
		evicted = append(evicted, last)
	}
	return
}

// SimpleAdd inserts v in priority order without enforcing the soft limit nor checking for
// duplicates. It is used to restore connections removed earlier.
func (l *List) SimpleAdd(v VC) {
	l.vcs = slices.Insert(l.vcs, l.insertionIndex(v.Count()), v)
}

// Remove deletes the connection equal to v, and returns whether it was found.
func (l *List) Remove(v VC) bool {
	idx := l.index(v)
	if idx < 0 {
		return false
	}
	l.vcs = slices.Delete(l.vcs, idx, idx+1)
	return true
}

// Find returns a pointer to the connection equal to v, if present. The pointer is only valid
// until the list is next changed.
func (l *List) Find(v VC) (*VC, bool) {
	idx := l.index(v)
	if idx < 0 {
		return nil, false
	}
	return &l.vcs[idx], true
}

func (l *List) index(v VC) int {
	// Only connections with the same Count can be equal.
	count := v.Count()
	for ii := range l.vcs {
		c := l.vcs[ii].Count()
		if c > count {
			break
		}
		if c == count && l.vcs[ii].Equal(v) {
			return ii
		}
	}
	return -1
}

// Clear removes all connections.
func (l *List) Clear() {
	l.vcs = l.vcs[:0]
}

// Best returns the best connection of the list, if any.
func (l *List) Best() (VC, bool) {
	if len(l.vcs) == 0 {
		return VC{}, false
	}
	return l.vcs[0], true
}

// All iterates over the connections, best first. The list must not be changed during the
// iteration.
func (l *List) All() iter.Seq[VC] {
	return slices.Values(l.vcs)
}

// Slice returns a copy of the connections, best first.
func (l *List) Slice() []VC {
	return slices.Clone(l.vcs)
}

// Clone returns an independent copy of the list.
func (l *List) Clone() *List {
	newL := *l
	newL.vcs = slices.Clone(l.vcs)
	return &newL
}

// Equal returns whether both lists hold the same connections, in any order.
func (l *List) Equal(other *List) bool {
	if len(l.vcs) != len(other.vcs) {
		return false
	}
	for _, v := range l.vcs {
		if other.index(v) < 0 {
			return false
		}
	}
	return true
}

// Dump returns one line per connection, using the board to name the points.
func (l *List) Dump(board *state.Board) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s-%s: %d connections (limit %d)\n",
		l.kind, board.PointName(l.x), board.PointName(l.y), len(l.vcs), l.softLimit)
	for ii, v := range l.vcs {
		fmt.Fprintf(&sb, "  #%d: %s\n", ii, v.Format(board))
	}
	return sb.String()
}
