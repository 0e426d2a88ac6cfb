// Package drag turns pointer drag-and-drop and touch move/release into one
// "pick up item, move, drop on zone or nowhere" stream.
package drag

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Tracker errors
var (
	ErrDragIgnored     = errors.New("drag ignored")
	ErrNoGesture       = errors.New("no drag in progress")
	ErrUnknownModality = errors.New("unknown input modality")
)

// Modality selects which low-level events feed the tracker
type Modality string

const (
	ModalityPointer Modality = "pointer" // Native drag-and-drop, target reported by the browser
	ModalityTouch   Modality = "touch"   // Manual tracking, target found by hit-testing
)

// ParseModality validates a modality string
func ParseModality(s string) (Modality, error) {
	switch Modality(s) {
	case ModalityPointer, ModalityTouch:
		return Modality(s), nil
	case "":
		return ModalityPointer, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownModality, s)
	}
}

// Gesture is one active drag
type Gesture struct {
	ID       uuid.UUID
	Item     string
	Modality Modality
	Start    Point
	Position Point
	Moved    bool
}

// Drop is the single resolution of a gesture
type Drop struct {
	GestureID uuid.UUID
	Item      string
	Modality  Modality
	Zone      string
	Found     bool
	At        Point
}

// Preview drives the floating item that follows the input
type Preview struct {
	Item     string
	Position Point
	Visible  bool
}

// Config wires a tracker to its session
type Config struct {
	// CanBegin reports whether a new drag may start; false while an
	// evaluation is pending.
	CanBegin  func() bool
	Latch     *Latch
	Hits      HitTester
	OnDrop    func(Drop) error
	OnPreview func(Preview)
}

// Tracker owns at most one gesture at a time
type Tracker struct {
	cfg     Config
	active  *Gesture
	release func()
	drops   int
}

// NewTracker creates an idle tracker
func NewTracker(cfg Config) *Tracker {
	if cfg.Latch == nil {
		cfg.Latch = NewLatch(nil)
	}
	return &Tracker{cfg: cfg}
}

// SetHitTester replaces the layout used for touch drops
func (t *Tracker) SetHitTester(h HitTester) {
	t.cfg.Hits = h
}

// Active returns the gesture in progress
func (t *Tracker) Active() (Gesture, bool) {
	if t.active == nil {
		return Gesture{}, false
	}
	return *t.active, true
}

// Drops counts resolutions emitted since creation
func (t *Tracker) Drops() int {
	return t.drops
}

// LatchHeld reports whether scrolling is currently suspended
func (t *Tracker) LatchHeld() bool {
	return t.cfg.Latch.Held()
}

// Begin picks up item. It is ignored while another gesture is active or
// while the session does not accept input.
func (t *Tracker) Begin(item string, m Modality, at Point) error {
	if t.active != nil {
		return fmt.Errorf("%w: gesture %s already active", ErrDragIgnored, t.active.ID)
	}
	if t.cfg.CanBegin != nil && !t.cfg.CanBegin() {
		return fmt.Errorf("%w: evaluation pending", ErrDragIgnored)
	}
	if m != ModalityPointer && m != ModalityTouch {
		return fmt.Errorf("%w: %q", ErrUnknownModality, m)
	}

	t.active = &Gesture{
		ID:       uuid.New(),
		Item:     item,
		Modality: m,
		Start:    at,
		Position: at,
	}
	if m == ModalityTouch {
		t.release = t.cfg.Latch.Acquire()
	}
	t.preview(true)
	return nil
}

// Move records the latest input position. Ignored without a gesture.
func (t *Tracker) Move(p Point) bool {
	if t.active == nil {
		return false
	}
	t.active.Position = p
	t.active.Moved = true
	t.preview(true)
	return true
}

// End resolves the drop target and forwards exactly one Drop to OnDrop.
// Gesture state and the scroll latch are cleared even if OnDrop fails or
// panics.
func (t *Tracker) End(p Point, nativeZone string) (drop Drop, err error) {
	if t.active == nil {
		return Drop{}, ErrNoGesture
	}
	g := *t.active
	defer t.finish()

	g.Position = p
	zone, found := t.resolve(g, nativeZone)
	drop = Drop{
		GestureID: g.ID,
		Item:      g.Item,
		Modality:  g.Modality,
		Zone:      zone,
		Found:     found,
		At:        p,
	}

	t.drops++
	if t.cfg.OnDrop != nil {
		err = t.cfg.OnDrop(drop)
	}
	return drop, err
}

// Cancel abandons the gesture without a drop. It reports whether a
// gesture was active.
func (t *Tracker) Cancel() bool {
	if t.active == nil {
		return false
	}
	t.finish()
	return true
}

func (t *Tracker) resolve(g Gesture, nativeZone string) (string, bool) {
	if g.Modality == ModalityPointer {
		return nativeZone, nativeZone != ""
	}
	if t.cfg.Hits == nil {
		return "", false
	}
	return t.cfg.Hits.ZoneAt(g.Position)
}

func (t *Tracker) finish() {
	if t.release != nil {
		t.release()
		t.release = nil
	}
	t.preview(false)
	t.active = nil
}

func (t *Tracker) preview(visible bool) {
	if t.cfg.OnPreview == nil || t.active == nil {
		return
	}
	p := Preview{Visible: visible}
	if visible {
		p.Item = t.active.Item
		p.Position = t.active.Position
	}
	t.cfg.OnPreview(p)
}
