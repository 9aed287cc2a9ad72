// Package changelog implements an append-only log of mutations, that allows a search to
// backtrack an incremental structure to a previous checkpoint (a marker) without copying it.
//
// The log only records what happened, undoing is the responsibility of the owner of the
// mutated structure, see for instance vcset.VCSet.Revert.
package changelog

import (
	"fmt"
	"iter"
	"strings"
)

// Action recorded in the log.
type Action uint8

const (
	// Add means the data was inserted.
	Add Action = iota

	// Remove means the data was deleted.
	Remove

	// Processed means the data had its processed flag set.
	Processed

	// Marker is a checkpoint, it carries no data.
	Marker
)

var actionNames = []string{"Add", "Remove", "Processed", "Marker"}

// String implements fmt.Stringer.
func (a Action) String() string {
	if int(a) >= len(actionNames) {
		return fmt.Sprintf("Action(%d)", a)
	}
	return actionNames[a]
}

// Entry of the log.
type Entry[T any] struct {
	Action Action
	Data   T
}

// ChangeLog is an append-only sequence of entries. Entries are never changed after pushed.
//
// It is not safe for concurrent use: one log is owned by one search.
type ChangeLog[T any] struct {
	entries []Entry[T]
}

// New returns an empty ChangeLog.
func New[T any]() *ChangeLog[T] {
	return &ChangeLog[T]{}
}

// Push appends an entry with the given action and data.
func (l *ChangeLog[T]) Push(action Action, data T) {
	l.entries = append(l.entries, Entry[T]{Action: action, Data: data})
}

// PushMarker appends a checkpoint.
func (l *ChangeLog[T]) PushMarker() {
	var zero T
	l.entries = append(l.entries, Entry[T]{Action: Marker, Data: zero})
}

// Pop removes and returns the most recent entry. It returns false if the log is empty.
func (l *ChangeLog[T]) Pop() (entry Entry[T], ok bool) {
	if len(l.entries) == 0 {
		return
	}
	last := len(l.entries) - 1
	entry = l.entries[last]
	var zero Entry[T]
	l.entries[last] = zero // Release references held by the data.
	l.entries = l.entries[:last]
	return entry, true
}

// TopAction returns the action of the most recent entry. It panics if the log is empty.
func (l *ChangeLog[T]) TopAction() Action {
	return l.entries[len(l.entries)-1].Action
}

// TopData returns the data of the most recent entry. It panics if the log is empty.
func (l *ChangeLog[T]) TopData() T {
	return l.entries[len(l.entries)-1].Data
}

// Empty returns whether there are no entries.
func (l *ChangeLog[T]) Empty() bool {
	return len(l.entries) == 0
}

// Len returns the number of entries, markers included.
func (l *ChangeLog[T]) Len() int {
	return len(l.entries)
}

// NumMarkers returns the number of markers in the log, that is, how many times it can be
// reverted before being exhausted.
func (l *ChangeLog[T]) NumMarkers() (count int) {
	for _, e := range l.entries {
		if e.Action == Marker {
			count++
		}
	}
	return
}

// Clear discards the whole history, for when a search concludes and won't backtrack.
func (l *ChangeLog[T]) Clear() {
	clear(l.entries)
	l.entries = l.entries[:0]
}

// All iterates over the entries from the oldest to the most recent.
func (l *ChangeLog[T]) All() iter.Seq[Entry[T]] {
	return func(yield func(Entry[T]) bool) {
		for _, e := range l.entries {
			if !yield(e) {
				return
			}
		}
	}
}

// Dump returns a multi-line description of the log, most recent entry last. The data is
// formatted with fn.
func (l *ChangeLog[T]) Dump(fn func(T) string) string {
	var sb strings.Builder
	for ii, e := range l.entries {
		if e.Action == Marker {
			fmt.Fprintf(&sb, "%4d: --- marker ---\n", ii)
			continue
		}
		fmt.Fprintf(&sb, "%4d: %-9s %s\n", ii, e.Action, fn(e.Data))
	}
	return sb.String()
}
