package changelog

import (
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangeLog(t *testing.T) {
	log := New[int]()
	assert.True(t, log.Empty())
	_, ok := log.Pop()
	assert.False(t, ok)

	log.Push(Add, 1)
	log.PushMarker()
	log.Push(Remove, 2)
	log.Push(Processed, 3)
	assert.Equal(t, 4, log.Len())
	assert.Equal(t, 1, log.NumMarkers())
	assert.Equal(t, Processed, log.TopAction())
	assert.Equal(t, 3, log.TopData())

	var got []Entry[int]
	for !log.Empty() {
		e, ok := log.Pop()
		require.True(t, ok)
		got = append(got, e)
	}
	want := []Entry[int]{{Processed, 3}, {Remove, 2}, {Marker, 0}, {Add, 1}}
	assert.Equal(t, want, got)
}

func TestAllAndClear(t *testing.T) {
	log := New[string]()
	log.Push(Add, "a")
	log.PushMarker()
	log.Push(Remove, "b")
	actions := slices.Collect(func(yield func(Action) bool) {
		for e := range log.All() {
			if !yield(e.Action) {
				return
			}
		}
	})
	assert.Equal(t, []Action{Add, Marker, Remove}, actions)

	dump := log.Dump(func(s string) string { return fmt.Sprintf("<%s>", s) })
	assert.Contains(t, dump, "Add")
	assert.Contains(t, dump, "<a>")
	assert.Contains(t, dump, "marker")

	log.Clear()
	assert.True(t, log.Empty())
	assert.Equal(t, 0, log.NumMarkers())
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "Add", Add.String())
	assert.Equal(t, "Marker", Marker.String())
	assert.Equal(t, "Action(9)", Action(9).String())
}
