package state

import (
	"iter"
	"math/bits"
	"strings"
)

// bitsetWords is enough for the largest supported board: 4 edges + 19x19 cells.
const bitsetWords = 6

// MaxPoints is the number of distinct HexPoint values a Bitset can hold.
const MaxPoints = bitsetWords * 64

// Bitset is a fixed size set of HexPoint.
//
// It is a value type: assignment copies it, and two Bitset can be compared with ==.
type Bitset [bitsetWords]uint64

// BitsetWith returns a Bitset with the given points set.
func BitsetWith(points ...HexPoint) (b Bitset) {
	for _, p := range points {
		b.Set(p)
	}
	return
}

// Set adds p to the set.
func (b *Bitset) Set(p HexPoint) {
	b[p>>6] |= 1 << (p & 63)
}

// Clear removes p from the set.
func (b *Bitset) Clear(p HexPoint) {
	b[p>>6] &^= 1 << (p & 63)
}

// Has returns whether p is in the set.
func (b Bitset) Has(p HexPoint) bool {
	return b[p>>6]&(1<<(p&63)) != 0
}

// Count returns the number of points in the set.
func (b Bitset) Count() (count int) {
	for _, w := range b {
		count += bits.OnesCount64(w)
	}
	return
}

// IsEmpty returns whether no point is set.
func (b Bitset) IsEmpty() bool {
	return b == Bitset{}
}

// Union returns b ∪ other.
func (b Bitset) Union(other Bitset) (u Bitset) {
	for ii := range b {
		u[ii] = b[ii] | other[ii]
	}
	return
}

// Intersect returns b ∩ other.
func (b Bitset) Intersect(other Bitset) (i Bitset) {
	for ii := range b {
		i[ii] = b[ii] & other[ii]
	}
	return
}

// IsSubsetOf returns whether every point of b is also in other.
func (b Bitset) IsSubsetOf(other Bitset) bool {
	for ii := range b {
		if b[ii]&^other[ii] != 0 {
			return false
		}
	}
	return true
}

// Points iterates over the points in the set in increasing order.
func (b Bitset) Points() iter.Seq[HexPoint] {
	return func(yield func(HexPoint) bool) {
		for wordIdx, w := range b {
			for w != 0 {
				bit := bits.TrailingZeros64(w)
				if !yield(HexPoint(wordIdx*64 + bit)) {
					return
				}
				w &= w - 1
			}
		}
	}
}

// Format the set using the board names for the points, e.g.: "[a1 b3 north]".
func (b Bitset) Format(board *Board) string {
	var parts []string
	for p := range b.Points() {
		parts = append(parts, board.PointName(p))
	}
	return "[" + strings.Join(parts, " ") + "]"
}
