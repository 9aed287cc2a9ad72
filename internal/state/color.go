package state

import "strings"

// Color of a stone, or Empty.
type Color uint8

const (
	Black Color = iota
	White
	Empty

	// NumColors including Empty.
	NumColors
)

var colorNames = [NumColors]string{"black", "white", "empty"}

// String implements fmt.Stringer.
func (c Color) String() string {
	if c >= NumColors {
		return "invalid"
	}
	return colorNames[c]
}

// Opponent returns the other player color. Empty is its own opponent.
func (c Color) Opponent() Color {
	switch c {
	case Black:
		return White
	case White:
		return Black
	}
	return Empty
}

// EdgeColor returns the color owning the given edge: Black owns North and South, White owns
// East and West.
func EdgeColor(edge HexPoint) Color {
	switch edge {
	case North, South:
		return Black
	case East, West:
		return White
	}
	return Empty
}

// ColorSet is a set of colors, encoded as a bitmask.
type ColorSet uint8

// ColorSetWith returns a ColorSet with the given colors.
func ColorSetWith(colors ...Color) (cs ColorSet) {
	for _, c := range colors {
		cs |= 1 << c
	}
	return
}

// AllColors includes Black, White and Empty.
var AllColors = ColorSetWith(Black, White, Empty)

// ColorOrEmpty returns the set with c and Empty. For c == Empty that is just {Empty}.
//
// These are the points relevant for a connection set owned by c.
func ColorOrEmpty(c Color) ColorSet {
	return ColorSetWith(c, Empty)
}

// NotColor returns the complement of c.
func NotColor(c Color) ColorSet {
	return AllColors &^ ColorSetWith(c)
}

// Has returns whether c is in the set.
func (cs ColorSet) Has(c Color) bool {
	return cs&(1<<c) != 0
}

// String implements fmt.Stringer.
func (cs ColorSet) String() string {
	var parts []string
	for c := range NumColors {
		if cs.Has(c) {
			parts = append(parts, c.String())
		}
	}
	return "{" + strings.Join(parts, ",") + "}"
}
