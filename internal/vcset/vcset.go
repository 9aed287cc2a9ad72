// Package vcset implements VCSet, the collection of all known virtual connections between
// every pair of points of a board, for one color.
//
// Searches change a VCSet through its logged mutations (VCSet.Add, VCSet.Remove,
// VCSet.MarkProcessed) and backtrack with VCSet.Revert, which undoes everything back to the
// last marker of the log. Parallel searches each work on their own VCSet.Clone: a VCSet is
// not safe for concurrent use.
package vcset

import (
	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/janpfeifer/hexGo/internal/changelog"
	"github.com/janpfeifer/hexGo/internal/parameters"
	"github.com/janpfeifer/hexGo/internal/state"
	"github.com/janpfeifer/hexGo/internal/vc"
)

// Log is the mutation log used to revert changes to a VCSet.
type Log = changelog.ChangeLog[vc.VC]

// NewLog returns an empty Log.
func NewLog() *Log {
	return changelog.New[vc.VC]()
}

// VCSet holds one vc.List per kind and per unordered pair of points of the board.
//
// Lists are stored in an arena indexed by pairIndex, so (x, y) and (y, x) share the same list.
// Pairs (x, x) also have a list, which is always empty.
type VCSet struct {
	board   *state.Board
	color   state.Color
	lists   [vc.NumKinds][]*vc.List
	metrics *Metrics
}

// New creates a VCSet for the board and color, with the default soft limits and all lists
// empty. Color can be state.Empty, for connections reasoning about empty cells only.
func New(board *state.Board, color state.Color) *VCSet {
	s := &VCSet{board: board, color: color}
	numPoints := board.NumPoints()
	numPairs := numPoints * (numPoints + 1) / 2
	for _, kind := range vc.Kinds {
		limit := vc.DefaultSoftLimit(kind)
		lists := make([]*vc.List, 0, numPairs)
		// Appending in this order matches pairIndex.
		for y := range board.EdgesAndInterior() {
			for x := range board.EdgesAndInterior() {
				lists = append(lists, vc.NewList(x, y, kind, limit))
				if x == y {
					break
				}
			}
		}
		s.lists[kind] = lists
	}
	return s
}

// NewFromParams creates a VCSet configured by params. Recognized keys are "full_limit" and
// "semi_limit", the soft limits of each kind. The keys used are removed from params.
func NewFromParams(board *state.Board, color state.Color, params parameters.Params) (*VCSet, error) {
	s := New(board, color)
	for _, kind := range vc.Kinds {
		key := kind.String() + "_limit"
		limit, err := parameters.PopParamOr(params, key, vc.DefaultSoftLimit(kind))
		if err != nil {
			return nil, err
		}
		if limit < 1 {
			return nil, errors.Errorf("invalid %s=%d, it must be >= 1", key, limit)
		}
		s.SetSoftLimit(kind, limit)
	}
	return s, nil
}

// pairIndex of the unordered pair (x, y) in the arena.
func (s *VCSet) pairIndex(x, y state.HexPoint) int {
	i, j := s.board.Index(x), s.board.Index(y)
	if i > j {
		i, j = j, i
	}
	return j*(j+1)/2 + i
}

// List returns the list of connections of the kind between x and y. The list is owned by the
// VCSet: it should only be changed through the VCSet methods, or the Log will go out of sync.
func (s *VCSet) List(x, y state.HexPoint, kind vc.Kind) *vc.List {
	return s.lists[kind][s.pairIndex(x, y)]
}

// Board returns the board geometry of the set.
func (s *VCSet) Board() *state.Board { return s.board }

// Color returns the color owning the connections.
func (s *VCSet) Color() state.Color { return s.color }

// WithMetrics attaches metrics to be updated on every mutation. It returns s.
func (s *VCSet) WithMetrics(m *Metrics) *VCSet {
	s.metrics = m
	return s
}

// Exists returns whether there is at least one connection of the kind between x and y.
func (s *VCSet) Exists(x, y state.HexPoint, kind vc.Kind) bool {
	return !s.List(x, y, kind).Empty()
}

// SmallestVC returns the best connection of the kind between x and y, if there is any.
func (s *VCSet) SmallestVC(x, y state.HexPoint, kind vc.Kind) (vc.VC, bool) {
	return s.List(x, y, kind).Best()
}

// VCs returns a copy of all connections of the kind between x and y, best first.
func (s *VCSet) VCs(x, y state.HexPoint, kind vc.Kind) []vc.VC {
	return s.List(x, y, kind).Slice()
}

// SoftLimit returns the soft limit of a kind of connection.
func (s *VCSet) SoftLimit(kind vc.Kind) int {
	// All lists of a kind share the same limit, the first non-self pair is (North, East).
	return s.List(state.North, state.East, kind).SoftLimit()
}

// SetSoftLimit changes the soft limit of all lists of the kind, except the self-pairs.
// Existing connections above the limit are kept.
func (s *VCSet) SetSoftLimit(kind vc.Kind, limit int) {
	s.forEachPair(func(list *vc.List) {
		list.SetSoftLimit(limit)
	}, kind)
}

// Clear removes all connections. It doesn't record anything in any Log.
func (s *VCSet) Clear() {
	s.forEachPair(func(list *vc.List) {
		list.Clear()
	}, vc.Kinds[:]...)
}

// forEachPair calls fn on the lists of the given kinds for every pair x != y.
func (s *VCSet) forEachPair(fn func(list *vc.List), kinds ...vc.Kind) {
	for _, kind := range kinds {
		for _, list := range s.lists[kind] {
			if list.X() == list.Y() {
				continue
			}
			fn(list)
		}
	}
}

// Add inserts the connection in its list, evicting the worst connections above the soft limit.
//
// If log is not nil, it records the insertion (if v was kept) and every eviction, so Revert
// can undo them. It returns whether v was kept in the list.
func (s *VCSet) Add(v vc.VC, log *Log) bool {
	list := s.List(v.X(), v.Y(), v.Kind())
	added, evicted := list.Add(v)
	if added && log != nil {
		log.Push(changelog.Add, v)
	}
	if log != nil {
		for _, e := range evicted {
			log.Push(changelog.Remove, e)
		}
	}
	s.metrics.observeAdd(v.Kind(), added, len(evicted))
	return added
}

// Remove deletes the connection equal to v, recording it in log, if not nil.
// It returns false if there was no such connection.
func (s *VCSet) Remove(v vc.VC, log *Log) bool {
	list := s.List(v.X(), v.Y(), v.Kind())
	current, found := list.Find(v)
	if !found {
		return false
	}
	removed := *current
	list.Remove(v)
	if log != nil {
		log.Push(changelog.Remove, removed)
	}
	s.metrics.observeRemove(v.Kind())
	return true
}

// MarkProcessed sets the processed flag of the connection equal to v, recording it in log,
// if not nil. It returns false if there is no such connection, or if it was already processed.
func (s *VCSet) MarkProcessed(v vc.VC, log *Log) bool {
	current, found := s.List(v.X(), v.Y(), v.Kind()).Find(v)
	if !found || current.IsProcessed() {
		return false
	}
	current.SetProcessed(true)
	if log != nil {
		log.Push(changelog.Processed, *current)
	}
	s.metrics.observeProcessed(v.Kind())
	return true
}

// Revert undoes the changes recorded in log, from the most recent one, until a marker is
// popped or the log is exhausted.
//
// The log must hold only changes made to this set (or to the set it was cloned from, before
// the clone). If it doesn't match the set contents, it panics: continuing with a corrupted
// set would lead to unsound search results.
func (s *VCSet) Revert(log *Log) {
	var numEntries int
	for {
		entry, ok := log.Pop()
		if !ok || entry.Action == changelog.Marker {
			break
		}
		numEntries++
		v := entry.Data
		list := s.List(v.X(), v.Y(), v.Kind())
		switch entry.Action {
		case changelog.Add:
			if !list.Remove(v) {
				exceptions.Panicf("VCSet.Revert(): connection %s added in the log is not in the set",
					v.Format(s.board))
			}
		case changelog.Remove:
			list.SimpleAdd(v)
		case changelog.Processed:
			current, found := list.Find(v)
			if !found {
				exceptions.Panicf("VCSet.Revert(): connection %s processed in the log is not in the set",
					v.Format(s.board))
			}
			if !current.IsProcessed() {
				exceptions.Panicf("VCSet.Revert(): connection %s processed in the log is not marked as processed",
					v.Format(s.board))
			}
			current.SetProcessed(false)
		default:
			exceptions.Panicf("VCSet.Revert(): unknown action %s in log", entry.Action)
		}
		s.metrics.observeRevertedEntry(entry.Action)
	}
	s.metrics.observeRevert()
	if klog.V(3).Enabled() {
		klog.Infof("VCSet(%s): reverted %d entries, %d entries left in the log", s.color, numEntries, log.Len())
	}
}

// TryRevert is like Revert, but it returns an error instead of panicking if the log and the set
// are out of sync. The set is left in an undefined state in that case.
func (s *VCSet) TryRevert(log *Log) error {
	err := exceptions.TryCatch[error](func() { s.Revert(log) })
	if err != nil {
		return errors.WithMessagef(err, "failed to revert %s connections", s.color)
	}
	return nil
}

// Clone returns a deep copy of the set: it shares no lists with s, and it can be changed
// independently (e.g. by another goroutine). Logs are not part of the set: the clone starts
// a new history.
//
// Metrics, if any, are shared.
func (s *VCSet) Clone() *VCSet {
	newS := &VCSet{board: s.board, color: s.color, metrics: s.metrics}
	newS.copyLists(s)
	return newS
}

// CopyFrom makes s a deep copy of other, dropping its previous contents.
func (s *VCSet) CopyFrom(other *VCSet) {
	if s == other {
		return
	}
	s.board = other.board
	s.color = other.color
	s.metrics = other.metrics
	s.copyLists(other)
}

func (s *VCSet) copyLists(other *VCSet) {
	for _, kind := range vc.Kinds {
		s.lists[kind] = make([]*vc.List, len(other.lists[kind]))
		for ii, list := range other.lists[kind] {
			s.lists[kind][ii] = list.Clone()
		}
	}
}

// Equal returns whether both sets hold the same connections for every pair and kind.
func (s *VCSet) Equal(other *VCSet) bool {
	_, _, _, found := s.Diff(other)
	return !found
}

// Diff returns the first pair and kind whose lists differ between s and other.
// If the sets are for different boards, it returns found=true with x and y set to InvalidPoint.
func (s *VCSet) Diff(other *VCSet) (x, y state.HexPoint, kind vc.Kind, found bool) {
	if s.board.NumPoints() != other.board.NumPoints() {
		return state.InvalidPoint, state.InvalidPoint, vc.Full, true
	}
	for ii := range s.lists[vc.Full] {
		for _, kind := range vc.Kinds {
			list := s.lists[kind][ii]
			if list.X() == list.Y() {
				continue
			}
			if !list.Equal(other.lists[kind][ii]) {
				return list.X(), list.Y(), kind, true
			}
		}
	}
	return
}

// Count returns the total number of connections of the kind in the set.
func (s *VCSet) Count(kind vc.Kind) (count int) {
	for _, list := range s.lists[kind] {
		count += list.Len()
	}
	return
}
