package drag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sortingLayout(t *testing.T) *Layout {
	t.Helper()
	l, err := NewLayout([]Region{
		{ID: "board", Bounds: Rect{X: 0, Y: 0, W: 400, H: 200}},
		{ID: "zone-picture", Parent: "board", Bounds: Rect{X: 0, Y: 0, W: 100, H: 200}, Z: 1, DropZone: "picture"},
		{ID: "zone-word", Parent: "board", Bounds: Rect{X: 100, Y: 0, W: 100, H: 200}, Z: 1, DropZone: "word"},
		{ID: "label-word", Parent: "zone-word", Bounds: Rect{X: 110, Y: 10, W: 80, H: 20}, Z: 2},
		{ID: "popup", Bounds: Rect{X: 50, Y: 50, W: 100, H: 50}, Z: 5},
	})
	require.NoError(t, err)
	return l
}

func TestLayout_ZoneAtWalksAncestors(t *testing.T) {
	l := sortingLayout(t)

	zone, ok := l.ZoneAt(Point{X: 150, Y: 20})
	require.True(t, ok)
	assert.Equal(t, "word", zone)

	zone, ok = l.ZoneAt(Point{X: 20, Y: 150})
	require.True(t, ok)
	assert.Equal(t, "picture", zone)
}

func TestLayout_TopmostRegionWins(t *testing.T) {
	l := sortingLayout(t)

	// The popup covers both zones and has no zone of its own.
	_, ok := l.ZoneAt(Point{X: 90, Y: 70})
	assert.False(t, ok)

	r, ok := l.RegionAt(Point{X: 90, Y: 70})
	require.True(t, ok)
	assert.Equal(t, "popup", r.ID)
}

func TestLayout_EqualZLaterRegistrationWins(t *testing.T) {
	l, err := NewLayout([]Region{
		{ID: "a", Bounds: Rect{W: 10, H: 10}, DropZone: "first"},
		{ID: "b", Bounds: Rect{W: 10, H: 10}, DropZone: "second"},
	})
	require.NoError(t, err)

	zone, ok := l.ZoneAt(Point{X: 5, Y: 5})
	require.True(t, ok)
	assert.Equal(t, "second", zone)
}

func TestLayout_OutsideEverything(t *testing.T) {
	l := sortingLayout(t)
	_, ok := l.ZoneAt(Point{X: 1000, Y: 1000})
	assert.False(t, ok)
	_, ok = l.ZoneAt(Point{X: 300, Y: 100})
	assert.False(t, ok, "board itself is not a drop zone")
}

func TestLayout_Zones(t *testing.T) {
	assert.Equal(t, []string{"picture", "word"}, sortingLayout(t).Zones())
}

func TestNewLayout_Rejects(t *testing.T) {
	cases := map[string][]Region{
		"missing id":     {{Bounds: Rect{W: 1, H: 1}}},
		"duplicate":      {{ID: "a"}, {ID: "a"}},
		"unknown parent": {{ID: "a", Parent: "ghost"}},
		"cycle":          {{ID: "a", Parent: "b"}, {ID: "b", Parent: "a"}},
		"self parent":    {{ID: "a", Parent: "a"}},
		"negative size":  {{ID: "a", Bounds: Rect{W: -1, H: 1}}},
	}
	for name, regions := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewLayout(regions)
			assert.ErrorIs(t, err, ErrInvalidLayout)
		})
	}
}

func TestLatch_ScopedRelease(t *testing.T) {
	var changes []bool
	l := NewLatch(func(locked bool) { changes = append(changes, locked) })

	release := l.Acquire()
	assert.True(t, l.Held())

	release()
	release()
	assert.False(t, l.Held())
	assert.Equal(t, []bool{true, false}, changes)
}

func TestLatch_NestedHolders(t *testing.T) {
	var changes []bool
	l := NewLatch(func(locked bool) { changes = append(changes, locked) })

	r1 := l.Acquire()
	r2 := l.Acquire()
	r1()
	assert.True(t, l.Held())
	r2()
	assert.False(t, l.Held())
	assert.Equal(t, []bool{true, false}, changes)
}
