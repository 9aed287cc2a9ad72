package vcset

import "github.com/janpfeifer/hexGo/internal/vc"

// Session ties a VCSet to the one Log recording its changes, for a search that owns both.
//
// Using a Session instead of passing logs around guarantees that a log is never shared by two
// lineages of sets: Fork creates a new set and a new log together.
type Session struct {
	set   *VCSet
	log   *Log
	depth int
}

// NewSession starts a session over set, with an empty log.
func NewSession(set *VCSet) *Session {
	return &Session{set: set, log: NewLog()}
}

// Set returns the connection set of the session. Changes done directly on it are not logged.
func (s *Session) Set() *VCSet { return s.set }

// Log returns the session's log.
func (s *Session) Log() *Log { return s.log }

// Depth returns the number of markers in the log: how many times Backtrack can be called.
func (s *Session) Depth() int { return s.depth }

// Mark pushes a checkpoint, typically before exploring a move.
func (s *Session) Mark() {
	s.log.PushMarker()
	s.depth++
}

// Backtrack reverts the set to the last checkpoint.
func (s *Session) Backtrack() {
	s.set.Revert(s.log)
	s.depth = max(s.depth-1, 0)
}

// TryBacktrack is like Backtrack, but it returns an error if the log doesn't match the set.
func (s *Session) TryBacktrack() error {
	err := s.set.TryRevert(s.log)
	s.depth = max(s.depth-1, 0)
	return err
}

// Add is a logged VCSet.Add.
func (s *Session) Add(v vc.VC) bool { return s.set.Add(v, s.log) }

// Remove is a logged VCSet.Remove.
func (s *Session) Remove(v vc.VC) bool { return s.set.Remove(v, s.log) }

// MarkProcessed is a logged VCSet.MarkProcessed.
func (s *Session) MarkProcessed(v vc.VC) bool { return s.set.MarkProcessed(v, s.log) }

// Commit discards the history, for when the search concluded and won't backtrack.
func (s *Session) Commit() {
	s.log.Clear()
	s.depth = 0
}

// Fork returns a new session over a deep copy of the current set, with an empty log.
// The new session can be used by another goroutine.
func (s *Session) Fork() *Session {
	return NewSession(s.set.Clone())
}
