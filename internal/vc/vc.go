// Package vc defines virtual connections (VC) between two points of a Hex board, and the
// List of connections kept for one pair of points.
//
// A VC is a proof that its owner can eventually connect its two endpoints, playing only inside
// the carrier. A Full connection holds even if the opponent moves first, a Semi connection
// needs one move of its owner (the key) to become a Full one.
package vc

import (
	"fmt"
	"strings"

	"github.com/gomlx/exceptions"

	"github.com/janpfeifer/hexGo/internal/state"
)

// Kind of virtual connection.
type Kind uint8

const (
	Full Kind = iota
	Semi

	// NumKinds tracked by connection sets.
	NumKinds
)

// Kinds enumerates all the kinds of connection.
var Kinds = [NumKinds]Kind{Full, Semi}

var kindNames = [NumKinds]string{"full", "semi"}

// String implements fmt.Stringer.
func (k Kind) String() string {
	if k >= NumKinds {
		return fmt.Sprintf("Kind(%d)", k)
	}
	return kindNames[k]
}

// Rule that derived the connection. It is kept only for debugging.
type Rule uint8

const (
	// Base connections come directly from adjacency.
	Base Rule = iota

	// And connections are the combination of two connections through a common point.
	And

	// Or connections are the combination of semi connections with disjoint carriers.
	Or
)

var ruleNames = []string{"base", "and", "or"}

// String implements fmt.Stringer.
func (r Rule) String() string {
	if int(r) >= len(ruleNames) {
		return fmt.Sprintf("Rule(%d)", r)
	}
	return ruleNames[r]
}

// VC is one virtual connection between points x and y.
//
// It is a value type, and besides the processed flag it is immutable after creation.
type VC struct {
	x, y      state.HexPoint
	kind      Kind
	rule      Rule
	processed bool
	carrier   state.Bitset
	key       state.Bitset
}

// NewFull creates a full connection between x and y, with the given carrier.
// The order of x and y is irrelevant. It panics if x == y.
func NewFull(x, y state.HexPoint, carrier state.Bitset, rule Rule) VC {
	return newVC(x, y, Full, carrier, state.Bitset{}, rule)
}

// NewSemi creates a semi connection between x and y, with the given carrier and key.
// The order of x and y is irrelevant. It panics if x == y.
func NewSemi(x, y state.HexPoint, carrier, key state.Bitset, rule Rule) VC {
	return newVC(x, y, Semi, carrier, key, rule)
}

func newVC(x, y state.HexPoint, kind Kind, carrier, key state.Bitset, rule Rule) VC {
	if x == y {
		exceptions.Panicf("virtual connection from point %d to itself", x)
	}
	if x > y {
		x, y = y, x
	}
	return VC{x: x, y: y, kind: kind, rule: rule, carrier: carrier, key: key}
}

// X returns the smaller endpoint.
func (v VC) X() state.HexPoint { return v.x }

// Y returns the larger endpoint.
func (v VC) Y() state.HexPoint { return v.y }

// Kind of the connection.
func (v VC) Kind() Kind { return v.kind }

// Rule that created the connection.
func (v VC) Rule() Rule { return v.rule }

// Carrier returns the points the connection depends on.
func (v VC) Carrier() state.Bitset { return v.carrier }

// Key returns the key of a semi connection: the move that turns it into a full connection.
// It is empty for full connections.
func (v VC) Key() state.Bitset { return v.key }

// Count is the priority of the connection within a List: smaller carriers are better.
func (v VC) Count() int { return v.carrier.Count() }

// IsProcessed returns whether the connection was already used to derive other connections.
func (v VC) IsProcessed() bool { return v.processed }

// SetProcessed changes the processed flag.
func (v *VC) SetProcessed(processed bool) { v.processed = processed }

// Equal compares endpoints, kind, carrier and key. The processed flag and rule are ignored.
func (v VC) Equal(other VC) bool {
	return v.x == other.x && v.y == other.y && v.kind == other.kind &&
		v.carrier == other.carrier && v.key == other.key
}

// String returns a short description of the connection using raw point numbers.
// See Format for a version with point names.
func (v VC) String() string {
	return fmt.Sprintf("%s %d-%d (%d points)", v.kind, v.x, v.y, v.Count())
}

// Format the connection using the board names for the points, e.g.:
// "semi a1-north key=[a2] [a2 b1] and *", where "*" marks a processed connection.
func (v VC) Format(board *state.Board) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s-%s", v.kind, board.PointName(v.x), board.PointName(v.y))
	if v.kind == Semi {
		fmt.Fprintf(&sb, " key=%s", v.key.Format(board))
	}
	fmt.Fprintf(&sb, " %s %s", v.carrier.Format(board), v.rule)
	if v.processed {
		sb.WriteString(" *")
	}
	return sb.String()
}
