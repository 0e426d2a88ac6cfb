// Package media plays audio cues through a player owned by the view layer.
// Playback failures never reach game logic.
package media

import (
	"errors"
	"log/slog"
)

// ErrPlayerClosed is returned by players whose view has gone away
var ErrPlayerClosed = errors.New("media player closed")

// Handle identifies one playing cue
type Handle string

// Player is the external media collaborator
type Player interface {
	Play(resource string, volume float64) (Handle, error)
	Stop(h Handle) error
}

// Director wraps a Player, tracks live handles and swallows failures
type Director struct {
	player Player
	logger *slog.Logger
	live   map[Handle]string
	failed int
}

// NewDirector creates a director. A nil player makes every cue a no-op.
func NewDirector(player Player, logger *slog.Logger) *Director {
	if logger == nil {
		logger = slog.Default()
	}
	return &Director{
		player: player,
		logger: logger,
		live:   make(map[Handle]string),
	}
}

// SetPlayer swaps the player, e.g. when a client reconnects. Handles from
// the previous player are forgotten.
func (d *Director) SetPlayer(p Player) {
	d.player = p
	clear(d.live)
}

// Play starts a cue. The handle is empty when playback failed.
func (d *Director) Play(c Cue) Handle {
	if d.player == nil {
		return ""
	}

	h, err := d.player.Play(c.Resource, c.Volume)
	if err != nil {
		d.failed++
		d.logger.Debug("cue playback failed", "cue", c.Name, "error", err)
		return ""
	}
	if h != "" {
		d.live[h] = c.Name
	}
	return h
}

// Stop halts a cue started by Play. Unknown or empty handles are ignored.
func (d *Director) Stop(h Handle) {
	if h == "" || d.player == nil {
		return
	}
	name, ok := d.live[h]
	if !ok {
		return
	}
	delete(d.live, h)

	if err := d.player.Stop(h); err != nil {
		d.failed++
		d.logger.Debug("cue stop failed", "cue", name, "error", err)
	}
}

// StopAll halts every live cue
func (d *Director) StopAll() {
	for h := range d.live {
		d.Stop(h)
	}
}

// Live counts cues that have been started and not stopped
func (d *Director) Live() int {
	return len(d.live)
}

// Failures counts swallowed playback errors
func (d *Director) Failures() int {
	return d.failed
}
