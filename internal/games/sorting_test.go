package games

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ailab/internal/catalog"
	"ailab/internal/domain"
	"ailab/internal/drag"
)

func otherCategory(c string) string {
	for _, k := range catalog.DataCategoryKeys() {
		if k != c {
			return k
		}
	}
	return ""
}

func (h *harness) dropPointer(item, zone string) {
	h.t.Helper()
	h.do(BeginDrag{Item: item, Modality: drag.ModalityPointer})
	h.do(EndDrag{Zone: zone})
}

func (h *harness) sortEverything() {
	h.t.Helper()
	for _, it := range h.snap().Pool {
		h.dropPointer(it.Key, it.Category)
	}
}

func TestSorting_StartSamplesThreePerCategory(t *testing.T) {
	h := newHarness(t, KindSorting)
	assert.Equal(t, StageReady, h.snap().Stage)
	assert.Empty(t, h.snap().Pool)

	h.do(Start{})

	snap := h.snap()
	assert.Equal(t, domain.PhaseInteractive, snap.Phase)
	require.Len(t, snap.Pool, 12)
	assert.Equal(t, 12, snap.Total)

	counts := map[string]int{}
	for _, it := range snap.Pool {
		counts[it.Category]++
	}
	for _, c := range catalog.DataCategoryKeys() {
		assert.Equal(t, 3, counts[c], c)
	}

	assert.ErrorIs(t, h.game.Handle(Start{}), domain.ErrInvalidPhase)
}

func TestSorting_TwelveCorrectDropsComplete(t *testing.T) {
	h := newHarness(t, KindSorting)
	h.do(Start{})
	h.sortEverything()

	snap := h.snap()
	assert.Empty(t, snap.Pool)
	assert.Equal(t, 12, snap.Score)
	for _, c := range catalog.DataCategoryKeys() {
		assert.Len(t, snap.Sorting.Zones[c], 3, c)
	}
	assert.Equal(t, 12, h.player.count("/audio/correct2.mp3"))
	assert.Equal(t, domain.PhaseInteractive, snap.Phase)

	h.advance(499 * time.Millisecond)
	assert.Equal(t, domain.PhaseInteractive, h.phase())
	h.advance(time.Millisecond)
	assert.Equal(t, domain.PhaseLoading, h.phase())
	h.advance(2 * time.Second)
	assert.Equal(t, domain.PhaseRequesting, h.phase())

	for _, c := range catalog.DataCategoryKeys() {
		h.do(RequestGeneration{Category: c})
	}
	assert.ElementsMatch(t, catalog.DataCategoryKeys(), h.snap().Sorting.Generating)

	h.advance(2 * time.Second)
	snap = h.snap()
	assert.Equal(t, domain.PhaseComplete, snap.Phase)
	assert.Len(t, snap.Sorting.Generated, 4)
	assert.Empty(t, snap.Sorting.Generating)
	for c, sym := range snap.Sorting.Generated {
		assert.Contains(t, catalog.Symbols(c), sym)
	}
	assert.Equal(t, 1, h.phaseChangesTo(domain.PhaseComplete))
}

func TestSorting_WrongDropStaysUnresolved(t *testing.T) {
	h := newHarness(t, KindSorting)
	h.do(Start{})

	item := h.snap().Pool[0]
	wrong := otherCategory(item.Category)
	h.dropPointer(item.Key, wrong)

	snap := h.snap()
	assert.Equal(t, domain.PhaseInteractive, snap.Phase)
	assert.Len(t, snap.Pool, 12)
	assert.Equal(t, item.Key, snap.Pool[11].Key, "wrong items go to the back of the pool")
	assert.Zero(t, snap.Score)
	assert.Equal(t, 1, h.player.count("/audio/wrong-buzz.mp3"))

	right, _ := catalog.DataCategory(item.Category)
	bad, _ := catalog.DataCategory(wrong)
	assert.Equal(t, "❌ \""+item.Label+"\" belongs in "+right.Name+", not "+bad.Name+"!", snap.Sorting.Banner)

	outcomes := h.outcomes()
	require.Len(t, outcomes, 1)
	assert.Equal(t, domain.OutcomeIncorrect, outcomes[0].Kind)
	assert.Equal(t, 1, outcomes[0].Attempts)

	h.advance(4 * time.Second)
	assert.Empty(t, h.snap().Sorting.Banner)

	h.dropPointer(item.Key, item.Category)
	snap = h.snap()
	assert.Len(t, snap.Pool, 11)
	assert.Equal(t, 1, snap.Score)
	assert.Len(t, snap.Sorting.Zones[item.Category], 1)
}

func TestSorting_NewBannerRestartsTimeout(t *testing.T) {
	h := newHarness(t, KindSorting)
	h.do(Start{})

	first := h.snap().Pool[0]
	h.dropPointer(first.Key, otherCategory(first.Category))
	h.advance(3 * time.Second)

	second := h.snap().Pool[0]
	h.dropPointer(second.Key, otherCategory(second.Category))
	h.advance(time.Second)
	assert.NotEmpty(t, h.snap().Sorting.Banner, "the first banner's timer must not clear the second")

	h.advance(3 * time.Second)
	assert.Empty(t, h.snap().Sorting.Banner)
}

func TestSorting_CorrectDropClearsBanner(t *testing.T) {
	h := newHarness(t, KindSorting)
	h.do(Start{})

	first := h.snap().Pool[0]
	h.dropPointer(first.Key, otherCategory(first.Category))
	require.NotEmpty(t, h.snap().Sorting.Banner)

	h.dropPointer(first.Key, first.Category)
	assert.Empty(t, h.snap().Sorting.Banner)
}

func TestSorting_MissedDropIsNoOp(t *testing.T) {
	h := newHarness(t, KindSorting)
	h.do(Start{})
	item := h.snap().Pool[0]

	h.dropPointer(item.Key, "")
	h.dropPointer(item.Key, "recycle-bin")

	assert.Len(t, h.snap().Pool, 12)
	assert.Empty(t, h.outcomes())
	assert.Equal(t, domain.PhaseInteractive, h.phase())
}

func TestSorting_TouchDropUsesLayout(t *testing.T) {
	h := newHarness(t, KindSorting)
	h.do(Start{})
	item := h.snap().Pool[0]

	h.do(SetLayout{Regions: []drag.Region{
		{ID: "zones", Bounds: drag.Rect{W: 400, H: 100}},
		{ID: "zone", Parent: "zones", Bounds: drag.Rect{W: 100, H: 100}, Z: 1, DropZone: item.Category},
		{ID: "zone-label", Parent: "zone", Bounds: drag.Rect{X: 10, Y: 10, W: 50, H: 20}, Z: 2},
	}})

	h.do(BeginDrag{Item: item.Key, Modality: drag.ModalityTouch, At: drag.Point{X: 300, Y: 300}})
	assert.True(t, h.snap().ScrollLocked)
	assert.Equal(t, item.Key, h.snap().Dragging)

	h.do(MoveDrag{At: drag.Point{X: 20, Y: 20}})
	h.do(EndDrag{At: drag.Point{X: 20, Y: 20}})

	snap := h.snap()
	assert.False(t, snap.ScrollLocked)
	assert.Empty(t, snap.Dragging)
	assert.Equal(t, 1, snap.Score)

	var locks []bool
	for _, ev := range h.events {
		if l, ok := ev.(domain.ScrollLockChanged); ok {
			locks = append(locks, l.Locked)
		}
	}
	assert.Equal(t, []bool{true, false}, locks)
}

func TestSorting_AbandonedDragThenFreshPair(t *testing.T) {
	h := newHarness(t, KindSorting)
	h.do(Start{})
	pool := h.snap().Pool

	h.do(BeginDrag{Item: pool[0].Key, Modality: drag.ModalityTouch})
	h.do(CancelDrag{})
	assert.False(t, h.snap().ScrollLocked)

	h.do(BeginDrag{Item: pool[1].Key, Modality: drag.ModalityPointer})
	h.do(EndDrag{Zone: pool[1].Category})

	outcomes := h.outcomes()
	require.Len(t, outcomes, 1)
	assert.Equal(t, pool[1].Key, outcomes[0].ItemKey)
	assert.False(t, h.snap().ScrollLocked)
}

func TestSorting_DragRejections(t *testing.T) {
	h := newHarness(t, KindSorting)

	err := h.game.Handle(BeginDrag{Item: "data-1", Modality: drag.ModalityPointer})
	assert.ErrorIs(t, err, drag.ErrDragIgnored, "no drags before the game starts")

	h.do(Start{})
	err = h.game.Handle(BeginDrag{Item: "nope", Modality: drag.ModalityPointer})
	assert.ErrorIs(t, err, domain.ErrItemNotInPool)

	err = h.game.Handle(EndDrag{})
	assert.ErrorIs(t, err, drag.ErrNoGesture)

	err = h.game.Handle(SetLayout{Regions: []drag.Region{{ID: "a", Parent: "ghost"}}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.ErrorIs(t, err, drag.ErrInvalidLayout)

	assert.ErrorIs(t, h.game.Handle(Answer{Choice: "ai"}), domain.ErrUnsupportedCommand)
}

func TestSorting_GenerationRules(t *testing.T) {
	h := newHarness(t, KindSorting)
	h.do(Start{})

	err := h.game.Handle(RequestGeneration{Category: catalog.CategoryWord})
	assert.ErrorIs(t, err, domain.ErrInvalidPhase)

	h.sortEverything()
	h.advance(500 * time.Millisecond)
	h.advance(2 * time.Second)
	require.Equal(t, domain.PhaseRequesting, h.phase())

	assert.ErrorIs(t, h.game.Handle(RequestGeneration{Category: "smell"}), domain.ErrUnknownZone)

	h.do(RequestGeneration{Category: catalog.CategoryWord})
	assert.ErrorIs(t, h.game.Handle(RequestGeneration{Category: catalog.CategoryWord}), domain.ErrAlreadyGenerated)

	h.advance(2 * time.Second)
	assert.ErrorIs(t, h.game.Handle(RequestGeneration{Category: catalog.CategoryWord}), domain.ErrAlreadyGenerated)
	assert.Equal(t, domain.PhaseRequesting, h.phase())
	assert.Len(t, h.snap().Sorting.Generated, 1)
}

func TestSorting_ResetRestoresInitialState(t *testing.T) {
	h := newHarness(t, KindSorting)
	initial := h.snap()

	h.do(Start{})
	first := h.snap().Pool[0]
	h.dropPointer(first.Key, otherCategory(first.Category))
	h.sortEverything()
	require.NotZero(t, h.game.Sequencer().Pending())

	h.do(Reset{})
	assert.Equal(t, initial, h.snap())

	before := len(h.events)
	h.advance(10 * time.Second)
	assert.Equal(t, initial, h.snap())
	assert.Len(t, h.events, before, "no timer may fire after reset")
}
