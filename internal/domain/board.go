package domain

import "fmt"

// OutcomeKind tags an evaluation for the media layer
type OutcomeKind string

const (
	OutcomeCorrect   OutcomeKind = "correct"
	OutcomeIncorrect OutcomeKind = "incorrect"
)

// Outcome is the result of evaluating the held item
type Outcome struct {
	Item      Item        `json:"item"`
	Target    string      `json:"target"`
	Correct   bool        `json:"correct"`
	Kind      OutcomeKind `json:"kind"`
	Attempts  int         `json:"attempts"`  // Wrong attempts recorded for the item
	Escalated bool        `json:"escalated"` // Attempts reached the escalation threshold
}

// Placement records a resolved item
type Placement struct {
	Item    Item   `json:"item"`
	Target  string `json:"target"`
	Correct bool   `json:"correct"`
}

// BoardConfig parameterises the outcome evaluator per game
type BoardConfig struct {
	Zones          []string // Known drop zones, empty when targets are free answers
	RetryIncorrect bool     // Wrong items go back to the pool instead of being recorded
	EscalateAfter  int      // Wrong attempts before the retry prompt escalates
}

// Board holds the item pool, the pending item and everything resolved so
// far. It is the outcome evaluator: the only code that moves items.
type Board struct {
	cfg      BoardConfig
	items    []Item
	pool     []Item
	held     *Item
	placed   []Placement
	score    int
	attempts map[string]int
}

// NewBoard creates a board with all items in the pool
func NewBoard(cfg BoardConfig, items []Item) *Board {
	b := &Board{cfg: cfg}
	b.Reset(items)
	return b
}

// Reset repopulates the pool and clears score, placements and attempts
func (b *Board) Reset(items []Item) {
	b.items = append([]Item(nil), items...)
	b.pool = append([]Item(nil), items...)
	b.held = nil
	b.placed = make([]Placement, 0, len(items))
	b.score = 0
	b.attempts = make(map[string]int)
}

// Total returns the fixed number of items in this round
func (b *Board) Total() int {
	return len(b.items)
}

// Pool returns a copy of the not-yet-resolved items in order
func (b *Board) Pool() []Item {
	return append([]Item(nil), b.pool...)
}

// Next returns the first item of the pool
func (b *Board) Next() (Item, bool) {
	if len(b.pool) == 0 {
		return Item{}, false
	}
	return b.pool[0], true
}

// Held returns the item awaiting evaluation
func (b *Board) Held() (Item, bool) {
	if b.held == nil {
		return Item{}, false
	}
	return *b.held, true
}

// Placed returns a copy of all resolved items in resolution order
func (b *Board) Placed() []Placement {
	return append([]Placement(nil), b.placed...)
}

// Zone returns the items placed in a zone
func (b *Board) Zone(name string) []Item {
	items := make([]Item, 0)
	for _, p := range b.placed {
		if p.Target == name && p.Correct {
			items = append(items, p.Item)
		}
	}
	return items
}

// Zones returns the configured zone names
func (b *Board) Zones() []string {
	return append([]string(nil), b.cfg.Zones...)
}

// Score returns the number of correct evaluations
func (b *Board) Score() int {
	return b.score
}

// Resolved returns how many items have left the pool for good. It never
// decreases between resets.
func (b *Board) Resolved() int {
	return len(b.placed)
}

// Exhausted reports whether every item is resolved
func (b *Board) Exhausted() bool {
	return len(b.pool) == 0 && b.held == nil
}

// Attempts returns the wrong attempts recorded for an item
func (b *Board) Attempts(key string) int {
	return b.attempts[key]
}

// InPool reports whether key is waiting in the pool
func (b *Board) InPool(key string) bool {
	return b.poolIndex(key) >= 0
}

// Hold takes an item out of the pool for evaluation
func (b *Board) Hold(key string) (Item, error) {
	if b.held != nil {
		return Item{}, ErrEvaluationPending
	}

	idx := b.poolIndex(key)
	if idx < 0 {
		return Item{}, fmt.Errorf("hold %q: %w", key, ErrItemNotInPool)
	}

	item := b.pool[idx]
	b.pool = append(b.pool[:idx], b.pool[idx+1:]...)
	b.held = &item
	return item, nil
}

// Release returns the held item to the end of the pool unevaluated
func (b *Board) Release() (Item, error) {
	if b.held == nil {
		return Item{}, ErrNothingPending
	}
	item := *b.held
	b.held = nil
	b.pool = append(b.pool, item)
	return item, nil
}

// Evaluate decides whether target is the held item's answer and moves
// the item accordingly.
func (b *Board) Evaluate(target string) (Outcome, error) {
	if b.held == nil {
		return Outcome{}, ErrNothingPending
	}
	if len(b.cfg.Zones) > 0 && !b.isZone(target) {
		return Outcome{}, fmt.Errorf("evaluate %q: %w", target, ErrUnknownZone)
	}

	item := *b.held
	b.held = nil

	out := Outcome{
		Item:    item,
		Target:  target,
		Correct: target == item.Answer,
	}

	if out.Correct {
		out.Kind = OutcomeCorrect
		b.score++
		delete(b.attempts, item.Key)
		b.placed = append(b.placed, Placement{Item: item, Target: target, Correct: true})
		return out, nil
	}

	out.Kind = OutcomeIncorrect
	b.attempts[item.Key]++
	out.Attempts = b.attempts[item.Key]
	out.Escalated = b.cfg.EscalateAfter > 0 && out.Attempts >= b.cfg.EscalateAfter

	if b.cfg.RetryIncorrect {
		b.pool = append(b.pool, item)
	} else {
		b.placed = append(b.placed, Placement{Item: item, Target: target, Correct: false})
	}
	return out, nil
}

// CheckInvariant verifies that no item was lost or duplicated
func (b *Board) CheckInvariant() error {
	seen := make(map[string]int, len(b.items))
	for _, it := range b.pool {
		seen[it.Key]++
	}
	if b.held != nil {
		seen[b.held.Key]++
	}
	for _, p := range b.placed {
		seen[p.Item.Key]++
	}

	count := len(b.pool) + len(b.placed)
	if b.held != nil {
		count++
	}
	if count != len(b.items) {
		return fmt.Errorf("board holds %d items, want %d", count, len(b.items))
	}
	for _, it := range b.items {
		if seen[it.Key] != 1 {
			return fmt.Errorf("item %q appears %d times", it.Key, seen[it.Key])
		}
	}
	return nil
}

func (b *Board) poolIndex(key string) int {
	for i, it := range b.pool {
		if it.Key == key {
			return i
		}
	}
	return -1
}

func (b *Board) isZone(name string) bool {
	for _, z := range b.cfg.Zones {
		if z == name {
			return true
		}
	}
	return false
}
