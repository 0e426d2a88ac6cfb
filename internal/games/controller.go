// Package games implements the three AI Lab mini-games on top of one
// phase controller: a transition table, an outcome board, a timed
// sequencer, a drag tracker and a media director, configured per game.
package games

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/jonboulle/clockwork"

	"ailab/internal/domain"
	"ailab/internal/drag"
	"ailab/internal/media"
	"ailab/internal/sequencer"
)

// Options configures one game instance
type Options struct {
	Clock         clockwork.Clock
	Player        media.Player
	Logger        *slog.Logger
	Emit          func(domain.Event)
	Rand          *rand.Rand
	TimingScale   float64 // Multiplies every delay; 1 is real time
	EscalateAfter int     // Wrong attempts before the retry prompt escalates
	PassPercent   int     // Quiz score needed to win
}

func (o Options) withDefaults() Options {
	if o.Clock == nil {
		o.Clock = clockwork.NewRealClock()
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if o.TimingScale <= 0 {
		o.TimingScale = 1
	}
	if o.EscalateAfter <= 0 {
		o.EscalateAfter = 2
	}
	if o.PassPercent <= 0 {
		o.PassPercent = 70
	}
	return o
}

// Game is one running mini-game. Implementations are not safe for
// concurrent use; the owning session serialises every call, including
// the sequencer's scheduled actions.
type Game interface {
	Kind() Kind
	Handle(cmd Command) error
	Snapshot() Snapshot
	Reset()
	Close()
	Sequencer() *sequencer.Sequencer
	SetPlayer(p media.Player)
	CheckInvariant() error
}

// New creates a game of the given kind
func New(kind Kind, opts Options) (Game, error) {
	switch kind {
	case KindSorting:
		return NewSorting(opts), nil
	case KindQuiz:
		return NewQuiz(opts), nil
	case KindTrain:
		return NewTrain(opts), nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownGame, kind)
	}
}

// IntroStage splits the intro phase into the video and the start screen
type IntroStage string

const (
	StageVideo IntroStage = "video"
	StageReady IntroStage = "ready"
)

// rules is what differs between games at the controller level
type rules struct {
	kind  Kind
	table domain.TransitionTable
	board domain.BoardConfig
	stage IntroStage
}

type controller struct {
	rules   rules
	opts    Options
	logger  *slog.Logger
	machine *domain.Machine
	board   *domain.Board
	seq     *sequencer.Sequencer
	latch   *drag.Latch
	tracker *drag.Tracker
	media   *media.Director
	stage   IntroStage
	skipped bool // intro video was skipped rather than watched
	message *domain.MessageShown
	closed  bool

	drop func(drag.Drop) error
}

func newController(r rules, opts Options, items []domain.Item) *controller {
	opts = opts.withDefaults()
	logger := opts.Logger.With("game", r.kind)

	c := &controller{
		rules:   r,
		opts:    opts,
		logger:  logger,
		machine: domain.NewMachine(r.table),
		board:   domain.NewBoard(r.board, items),
		seq:     sequencer.New(opts.Clock),
		media:   media.NewDirector(opts.Player, logger),
		stage:   r.stage,
	}

	c.latch = drag.NewLatch(func(locked bool) {
		c.emit(domain.ScrollLockChanged{Locked: locked})
	})
	c.tracker = drag.NewTracker(drag.Config{
		CanBegin: c.canBeginDrag,
		Latch:    c.latch,
		OnDrop: func(d drag.Drop) error {
			if c.drop == nil {
				return domain.ErrUnsupportedCommand
			}
			return c.drop(d)
		},
		OnPreview: func(p drag.Preview) {
			c.emit(domain.DragChanged{ItemKey: p.Item, X: p.Position.X, Y: p.Position.Y, Visible: p.Visible})
		},
	})
	return c
}

// Sequencer exposes the timer queue so the session can drive it
func (c *controller) Sequencer() *sequencer.Sequencer {
	return c.seq
}

// SetPlayer points media cues at a new view
func (c *controller) SetPlayer(p media.Player) {
	c.media.SetPlayer(p)
}

// CheckInvariant verifies the board conservation law
func (c *controller) CheckInvariant() error {
	return c.board.CheckInvariant()
}

// Kind returns the game kind
func (c *controller) Kind() Kind {
	return c.rules.kind
}

func (c *controller) emit(ev domain.Event) {
	if c.opts.Emit != nil {
		c.opts.Emit(ev)
	}
}

func (c *controller) canBeginDrag() bool {
	return c.machine.AcceptsInput() && c.message == nil
}

func (c *controller) scaled(d time.Duration) time.Duration {
	return time.Duration(float64(d) * c.opts.TimingScale)
}

// after schedules fn and checks the board once it has run
func (c *controller) after(d time.Duration, name string, fn func() error) sequencer.Ticket {
	return c.seq.Schedule(c.scaled(d), name, func() error {
		err := fn()
		c.verify(name)
		return err
	})
}

// afterIn schedules fn to run only if the game is still in phase
func (c *controller) afterIn(phase domain.Phase, d time.Duration, name string, fn func() error) sequencer.Ticket {
	return c.after(d, name, func() error {
		if !c.machine.Is(phase) {
			c.logger.Debug("skipping stale action", "action", name, "want", phase, "phase", c.machine.Phase())
			return nil
		}
		return fn()
	})
}

func (c *controller) verify(op string) {
	if err := c.board.CheckInvariant(); err != nil {
		c.logger.Error("board invariant violated", "op", op, "error", err)
	}
}

func (c *controller) transition(to domain.Phase) error {
	from := c.machine.Phase()
	if err := c.machine.Transition(to); err != nil {
		return fmt.Errorf("%s -> %s: %w", from, to, err)
	}
	c.phaseChanged(from, to)
	return nil
}

func (c *controller) beginEvaluation() error {
	from := c.machine.Phase()
	if err := c.machine.BeginEvaluation(); err != nil {
		return err
	}
	c.phaseChanged(from, domain.PhaseFeedback)
	return nil
}

func (c *controller) endEvaluation(next domain.Phase) error {
	if err := c.machine.EndEvaluation(next); err != nil {
		return fmt.Errorf("end evaluation -> %s: %w", next, err)
	}
	c.phaseChanged(domain.PhaseFeedback, next)
	return nil
}

func (c *controller) phaseChanged(from, to domain.Phase) {
	c.logger.Debug("phase changed", "from", from, "to", to)
	c.emit(domain.PhaseChanged{From: from, To: to})
}

func (c *controller) showMessage(m domain.MessageShown) {
	c.message = &m
	c.emit(m)
}

func (c *controller) clearMessage() {
	if c.message == nil {
		return
	}
	c.message = nil
	c.emit(domain.MessageCleared{})
}

// evaluate holds key and judges it against target
func (c *controller) evaluate(key, target string) (domain.Outcome, error) {
	if _, err := c.board.Hold(key); err != nil {
		return domain.Outcome{}, err
	}
	out, err := c.judge(target)
	if err != nil {
		if _, relErr := c.board.Release(); relErr != nil {
			err = errors.Join(err, relErr)
		}
		return domain.Outcome{}, err
	}
	return out, nil
}

// judge evaluates the held item and publishes the outcome
func (c *controller) judge(target string) (domain.Outcome, error) {
	out, err := c.board.Evaluate(target)
	if err != nil {
		return domain.Outcome{}, err
	}

	c.logger.Debug("outcome evaluated", "item", out.Item.Key, "target", target, "kind", out.Kind, "attempts", out.Attempts)
	c.emit(domain.OutcomeEvaluated{
		ItemKey:   out.Item.Key,
		Target:    out.Target,
		Kind:      out.Kind,
		Attempts:  out.Attempts,
		Escalated: out.Escalated,
	})
	return out, nil
}

// handleCommon covers the commands every game treats the same way
func (c *controller) handleCommon(cmd Command, snapshot func() Snapshot) error {
	switch cmd := cmd.(type) {
	case BeginDrag:
		_, active := c.tracker.Active()
		if !active && c.canBeginDrag() && !c.board.InPool(cmd.Item) {
			return fmt.Errorf("drag %q: %w", cmd.Item, domain.ErrItemNotInPool)
		}
		return c.tracker.Begin(cmd.Item, cmd.Modality, cmd.At)
	case MoveDrag:
		c.tracker.Move(cmd.At)
		return nil
	case EndDrag:
		_, err := c.tracker.End(cmd.At, cmd.Zone)
		return err
	case CancelDrag:
		c.tracker.Cancel()
		return nil
	case SetLayout:
		layout, err := drag.NewLayout(cmd.Regions)
		if err != nil {
			return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
		}
		c.tracker.SetHitTester(layout)
		return nil
	case Sync:
		c.emit(domain.StateSynced{State: snapshot()})
		return nil
	default:
		return fmt.Errorf("%w: %s in %s", domain.ErrUnsupportedCommand, cmd.Type(), c.rules.kind)
	}
}

func (c *controller) checkOpen() error {
	if c.closed {
		return domain.ErrSessionClosed
	}
	return nil
}

// resetBase cancels everything in flight and puts the board back to items
func (c *controller) resetBase(items []domain.Item) {
	dropped := c.seq.CancelAll()
	c.tracker.Cancel()
	c.media.StopAll()

	from := c.machine.Phase()
	c.machine.Reset()
	c.board.Reset(items)
	c.stage = c.rules.stage
	c.skipped = false
	c.message = nil

	c.logger.Debug("game reset", "from", from, "droppedTimers", dropped)
	if from != domain.PhaseIntro {
		c.emit(domain.PhaseChanged{From: from, To: domain.PhaseIntro})
	}
}

// videoFinished records how the intro video ended
func (c *controller) videoFinished(cmd FinishVideo) {
	c.skipped = cmd.Skipped
	c.logger.Info("intro video finished", "skipped", cmd.Skipped)
}

func (c *controller) close() {
	c.seq.CancelAll()
	c.tracker.Cancel()
	c.media.StopAll()
	c.closed = true
}

func (c *controller) baseSnapshot() Snapshot {
	s := Snapshot{
		Game:         c.rules.kind,
		Phase:        c.machine.Phase(),
		Pending:      c.machine.Pending(),
		Pool:         c.board.Pool(),
		Placed:       c.board.Placed(),
		Score:        c.board.Score(),
		Total:        c.board.Total(),
		ScrollLocked: c.latch.Held(),
		Timers:       c.seq.Pending(),
		VideoSkipped: c.skipped,
	}
	if c.machine.Is(domain.PhaseIntro) {
		s.Stage = c.stage
	}
	if held, ok := c.board.Held(); ok {
		s.Held = &held
	}
	if c.message != nil {
		m := *c.message
		s.Message = &m
	}
	if g, ok := c.tracker.Active(); ok {
		s.Dragging = g.Item
	}
	return s
}
