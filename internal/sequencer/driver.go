package sequencer

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Driver runs a sequencer's due actions while holding the owner's lock
type Driver struct {
	seq     *Sequencer
	clock   clockwork.Clock
	lock    sync.Locker
	wake    chan struct{}
	onError func(error)
}

// NewDriver wires a driver to seq. lock must be the lock that guards
// every other use of seq.
func NewDriver(seq *Sequencer, clock clockwork.Clock, lock sync.Locker, onError func(error)) *Driver {
	d := &Driver{
		seq:     seq,
		clock:   clock,
		lock:    lock,
		wake:    make(chan struct{}, 1),
		onError: onError,
	}
	seq.OnSchedule(d.Poke)
	return d
}

// Poke makes the driver re-read the next due time. Never blocks.
func (d *Driver) Poke() {
	select {
	case d.wake <- struct{}{}:
	default:
	}
}

// Run waits for due actions until ctx is cancelled
func (d *Driver) Run(ctx context.Context) {
	for {
		d.lock.Lock()
		due, ok := d.seq.NextDue()
		d.lock.Unlock()

		if ok && !due.After(d.clock.Now()) {
			d.runDue()
			continue
		}

		var timer clockwork.Timer
		var fire <-chan time.Time
		if ok {
			timer = d.clock.NewTimer(due.Sub(d.clock.Now()))
			fire = timer.Chan()
		}

		select {
		case <-ctx.Done():
			stopTimer(timer)
			return
		case <-d.wake:
			stopTimer(timer)
		case <-fire:
			d.runDue()
		}
	}
}

func (d *Driver) runDue() {
	d.lock.Lock()
	err := d.seq.RunDue()
	d.lock.Unlock()

	if err != nil && d.onError != nil {
		d.onError(err)
	}
}

func stopTimer(t clockwork.Timer) {
	if t != nil {
		t.Stop()
	}
}
