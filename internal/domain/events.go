package domain

import "time"

// EventType represents the type of game event
type EventType string

const (
	EventPhaseChanged     EventType = "PHASE_CHANGED"
	EventOutcome          EventType = "OUTCOME"
	EventMessageShown     EventType = "MESSAGE_SHOWN"
	EventMessageCleared   EventType = "MESSAGE_CLEARED"
	EventBannerChanged    EventType = "BANNER_CHANGED"
	EventDragChanged      EventType = "DRAG_CHANGED"
	EventScrollLock       EventType = "SCROLL_LOCK"
	EventGenerated        EventType = "GENERATED"
	EventGenerationQueued EventType = "GENERATION_QUEUED"
	EventStateSynced      EventType = "STATE_SYNCED"
	EventReturnedToMenu   EventType = "RETURNED_TO_MENU"
)

// AllEventTypes lists every event type the view layer must handle
var AllEventTypes = []EventType{
	EventPhaseChanged,
	EventOutcome,
	EventMessageShown,
	EventMessageCleared,
	EventBannerChanged,
	EventDragChanged,
	EventScrollLock,
	EventGenerated,
	EventGenerationQueued,
	EventStateSynced,
	EventReturnedToMenu,
}

// Event is the closed set of things a game tells its view. Only types in
// this package implement it.
type Event interface {
	Type() EventType
	isEvent()
}

// MessageKind is the closed set of transient messages a game shows
type MessageKind string

const (
	MessageThinking         MessageKind = "thinking"
	MessageAIResponse       MessageKind = "ai-response"
	MessageCorrect          MessageKind = "correct"
	MessageRetry            MessageKind = "retry"
	MessageExplanation      MessageKind = "explanation"
	MessageGenerationPrompt MessageKind = "generation-prompt"
	MessageGeneratedImage   MessageKind = "generated-image"
	MessageInputError       MessageKind = "input-error"
)

// PhaseChanged is emitted on every phase transition, including resets
type PhaseChanged struct {
	From Phase `json:"from"`
	To   Phase `json:"to"`
}

// OutcomeEvaluated carries the evaluator verdict
type OutcomeEvaluated struct {
	ItemKey   string      `json:"itemKey"`
	Target    string      `json:"target"`
	Kind      OutcomeKind `json:"kind"`
	Attempts  int         `json:"attempts"`
	Escalated bool        `json:"escalated"`
}

// MessageShown replaces the transient message on screen
type MessageShown struct {
	Kind    MessageKind `json:"kind"`
	Text    string      `json:"text"`
	ItemKey string      `json:"itemKey,omitempty"`
	Image   string      `json:"image,omitempty"`
}

// MessageCleared removes the transient message
type MessageCleared struct{}

// BannerChanged shows or hides the error banner
type BannerChanged struct {
	Text    string `json:"text"`
	Visible bool   `json:"visible"`
}

// DragChanged drives the floating drag preview
type DragChanged struct {
	ItemKey string  `json:"itemKey,omitempty"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Visible bool    `json:"visible"`
}

// ScrollLockChanged tells the view to suspend or restore page scrolling
type ScrollLockChanged struct {
	Locked bool `json:"locked"`
}

// Generated carries a mock AI generation result
type Generated struct {
	Category string `json:"category"`
	Symbol   string `json:"symbol"`
}

// GenerationQueued marks a category as loading
type GenerationQueued struct {
	Category string `json:"category"`
}

// StateSynced carries a full snapshot of the session state
type StateSynced struct {
	State any `json:"state"`
}

// ReturnedToMenu tells the view to leave the game
type ReturnedToMenu struct{}

func (PhaseChanged) Type() EventType      { return EventPhaseChanged }
func (OutcomeEvaluated) Type() EventType  { return EventOutcome }
func (MessageShown) Type() EventType      { return EventMessageShown }
func (MessageCleared) Type() EventType    { return EventMessageCleared }
func (BannerChanged) Type() EventType     { return EventBannerChanged }
func (DragChanged) Type() EventType       { return EventDragChanged }
func (ScrollLockChanged) Type() EventType { return EventScrollLock }
func (Generated) Type() EventType         { return EventGenerated }
func (GenerationQueued) Type() EventType  { return EventGenerationQueued }
func (StateSynced) Type() EventType       { return EventStateSynced }
func (ReturnedToMenu) Type() EventType    { return EventReturnedToMenu }

func (PhaseChanged) isEvent()      {}
func (OutcomeEvaluated) isEvent()  {}
func (MessageShown) isEvent()      {}
func (MessageCleared) isEvent()    {}
func (BannerChanged) isEvent()     {}
func (DragChanged) isEvent()       {}
func (ScrollLockChanged) isEvent() {}
func (Generated) isEvent()         {}
func (GenerationQueued) isEvent()  {}
func (StateSynced) isEvent()       {}
func (ReturnedToMenu) isEvent()    {}

// GameEvent is the envelope an event travels in
type GameEvent struct {
	Type      EventType `json:"type"`
	SessionID string    `json:"sessionId"`
	Payload   Event     `json:"payload,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewEvent wraps an event for a session
func NewEvent(sessionID string, ev Event) *GameEvent {
	return &GameEvent{
		Type:      ev.Type(),
		SessionID: sessionID,
		Payload:   ev,
		Timestamp: time.Now(),
	}
}
