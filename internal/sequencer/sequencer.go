// Package sequencer schedules ordered, cancellable delayed actions for one
// game session.
//
// A Sequencer is not safe for concurrent use: it is owned by a session and
// only touched while that session's lock is held. The Driver is the one
// goroutine that waits on the clock and runs due actions under the lock.
package sequencer

import (
	"container/heap"
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
)

// ErrActionPanicked wraps a panic recovered from a scheduled action
var ErrActionPanicked = errors.New("scheduled action panicked")

// Action is a deferred state change
type Action func() error

// Ticket identifies one scheduled action
type Ticket struct {
	epoch uint64
	seq   uint64
}

type entry struct {
	due    time.Time
	seq    uint64
	name   string
	action Action
	index  int
}

// Sequencer holds the pending actions of one session
type Sequencer struct {
	clock  clockwork.Clock
	queue  entryQueue
	next   uint64
	epoch  uint64
	notify func()
}

// New creates an empty sequencer reading time from clock
func New(clock clockwork.Clock) *Sequencer {
	return &Sequencer{clock: clock}
}

// OnSchedule registers a hook called after every Schedule
func (s *Sequencer) OnSchedule(fn func()) {
	s.notify = fn
}

// Schedule registers action to run once delay has elapsed. Actions with
// equal due times run in registration order.
func (s *Sequencer) Schedule(delay time.Duration, name string, action Action) Ticket {
	if delay < 0 {
		delay = 0
	}

	s.next++
	e := &entry{
		due:    s.clock.Now().Add(delay),
		seq:    s.next,
		name:   name,
		action: action,
	}
	heap.Push(&s.queue, e)

	if s.notify != nil {
		s.notify()
	}
	return Ticket{epoch: s.epoch, seq: e.seq}
}

// Cancel drops one pending action. It reports whether the action was
// still pending.
func (s *Sequencer) Cancel(t Ticket) bool {
	if t.epoch != s.epoch || t.seq == 0 {
		return false
	}
	for _, e := range s.queue {
		if e.seq == t.seq {
			heap.Remove(&s.queue, e.index)
			return true
		}
	}
	return false
}

// CancelAll drops every pending action and starts a new epoch. It returns
// how many actions were dropped.
func (s *Sequencer) CancelAll() int {
	n := len(s.queue)
	s.queue = nil
	s.epoch++
	return n
}

// Epoch changes on every CancelAll
func (s *Sequencer) Epoch() uint64 {
	return s.epoch
}

// Pending returns the number of scheduled actions
func (s *Sequencer) Pending() int {
	return len(s.queue)
}

// PendingNames lists scheduled actions in firing order
func (s *Sequencer) PendingNames() []string {
	sorted := make(entryQueue, len(s.queue))
	copy(sorted, s.queue)

	names := make([]string, 0, len(sorted))
	for sorted.Len() > 0 {
		e := heap.Pop(&sorted).(*entry)
		names = append(names, e.name)
	}
	return names
}

// NextDue returns when the earliest action is due
func (s *Sequencer) NextDue() (time.Time, bool) {
	if len(s.queue) == 0 {
		return time.Time{}, false
	}
	return s.queue[0].due, true
}

// RunDue runs every action whose due time has passed, in order. A failing
// action does not stop the others; all failures are joined and returned.
func (s *Sequencer) RunDue() error {
	now := s.clock.Now()

	var errs []error
	for len(s.queue) > 0 && !s.queue[0].due.After(now) {
		e := heap.Pop(&s.queue).(*entry)
		if err := run(e); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", e.name, err))
		}
	}
	return errors.Join(errs...)
}

func run(e *entry) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrActionPanicked, r)
		}
	}()
	return e.action()
}

// entryQueue is a min-heap on (due, seq)
type entryQueue []*entry

func (q entryQueue) Len() int { return len(q) }

func (q entryQueue) Less(i, j int) bool {
	if q[i].due.Equal(q[j].due) {
		return q[i].seq < q[j].seq
	}
	return q[i].due.Before(q[j].due)
}

func (q entryQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *entryQueue) Push(x any) {
	e := x.(*entry)
	e.index = len(*q)
	*q = append(*q, e)
}

func (q *entryQueue) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return e
}
