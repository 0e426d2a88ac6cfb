package games

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"ailab/internal/domain"
	"ailab/internal/media"
)

type fakeClock interface {
	clockwork.Clock
	Advance(d time.Duration)
}

type fakePlayer struct {
	played  []string
	stopped []media.Handle
	next    int
}

func (p *fakePlayer) Play(resource string, _ float64) (media.Handle, error) {
	p.next++
	p.played = append(p.played, resource)
	return media.Handle(fmt.Sprintf("h%d", p.next)), nil
}

func (p *fakePlayer) Stop(h media.Handle) error {
	p.stopped = append(p.stopped, h)
	return nil
}

func (p *fakePlayer) count(resource string) int {
	n := 0
	for _, r := range p.played {
		if r == resource {
			n++
		}
	}
	return n
}

type harness struct {
	t      *testing.T
	clock  fakeClock
	player *fakePlayer
	events []domain.Event
	game   Game
}

func newHarness(t *testing.T, kind Kind) *harness {
	return newHarnessWith(t, kind, Options{})
}

func newHarnessWith(t *testing.T, kind Kind, opts Options) *harness {
	t.Helper()
	h := &harness{
		t:      t,
		clock:  clockwork.NewFakeClock(),
		player: &fakePlayer{},
	}
	opts.Clock = h.clock
	opts.Player = h.player
	opts.Emit = func(ev domain.Event) { h.events = append(h.events, ev) }
	opts.Rand = rand.New(rand.NewPCG(3, 5))
	opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))

	g, err := New(kind, opts)
	require.NoError(t, err)
	h.game = g
	return h
}

func (h *harness) do(cmd Command) {
	h.t.Helper()
	require.NoError(h.t, h.game.Handle(cmd), "command %s", cmd.Type())
	require.NoError(h.t, h.game.CheckInvariant())
}

func (h *harness) advance(d time.Duration) {
	h.t.Helper()
	h.clock.Advance(d)
	require.NoError(h.t, h.game.Sequencer().RunDue())
	require.NoError(h.t, h.game.CheckInvariant())
}

func (h *harness) snap() Snapshot {
	return h.game.Snapshot()
}

func (h *harness) phase() domain.Phase {
	return h.game.Snapshot().Phase
}

func (h *harness) message() domain.MessageShown {
	h.t.Helper()
	m := h.snap().Message
	require.NotNil(h.t, m, "expected a message on screen")
	return *m
}

func (h *harness) phaseChangesTo(p domain.Phase) int {
	n := 0
	for _, ev := range h.events {
		if pc, ok := ev.(domain.PhaseChanged); ok && pc.To == p {
			n++
		}
	}
	return n
}

func (h *harness) outcomes() []domain.OutcomeEvaluated {
	var out []domain.OutcomeEvaluated
	for _, ev := range h.events {
		if o, ok := ev.(domain.OutcomeEvaluated); ok {
			out = append(out, o)
		}
	}
	return out
}
