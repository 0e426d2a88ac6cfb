package ws

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ailab/internal/app"
	"ailab/internal/catalog"
	"ailab/internal/domain"
	"ailab/internal/drag"
	"ailab/internal/games"
	"ailab/internal/media"
)

// MessageType represents the type of WebSocket message
type MessageType string

// Client → Server message types. Game commands travel under their
// games.CommandType name; these are the session-level extras.
const (
	MsgBackToMenu MessageType = "back_to_menu"
	MsgPing       MessageType = "ping"
)

// Server → Client message types
const (
	MsgConnected        MessageType = "connected"
	MsgError            MessageType = "error"
	MsgPong             MessageType = "pong"
	MsgMediaPlay        MessageType = "media_play"
	MsgMediaStop        MessageType = "media_stop"
	MsgPhaseChanged     MessageType = "phase_changed"
	MsgOutcome          MessageType = "outcome"
	MsgMessageShown     MessageType = "message_shown"
	MsgMessageCleared   MessageType = "message_cleared"
	MsgBannerChanged    MessageType = "banner_changed"
	MsgDragChanged      MessageType = "drag_changed"
	MsgScrollLock       MessageType = "scroll_lock"
	MsgGenerated        MessageType = "generated"
	MsgGenerationQueued MessageType = "generation_queued"
	MsgStateSynced      MessageType = "state_synced"
	MsgReturnedToMenu   MessageType = "returned_to_menu"
)

// ClientMessage represents a message from client to server
type ClientMessage struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ServerMessage represents a message from server to client
type ServerMessage struct {
	Type      MessageType `json:"type"`
	Payload   any         `json:"payload,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// NewServerMessage creates a new server message with current timestamp
func NewServerMessage(msgType MessageType, payload any) *ServerMessage {
	return &ServerMessage{
		Type:      msgType,
		Payload:   payload,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// Server message payloads

// ConnectedPayload is the payload for connected message
type ConnectedPayload struct {
	ClientID  string         `json:"clientId"`
	SessionID string         `json:"sessionId"`
	Game      games.Kind     `json:"game"`
	State     games.Snapshot `json:"state"`
	Cues      []media.Cue    `json:"cues"`
}

// MediaPlayPayload asks the view to start a sound
type MediaPlayPayload struct {
	Handle   media.Handle `json:"handle"`
	Resource string       `json:"resource"`
	Volume   float64      `json:"volume"`
}

// MediaStopPayload asks the view to stop a sound
type MediaStopPayload struct {
	Handle media.Handle `json:"handle"`
}

// ErrorPayload is the payload for error message
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes
const (
	ErrCodeInvalidMessage    = "INVALID_MESSAGE"
	ErrCodeSessionNotFound   = "SESSION_NOT_FOUND"
	ErrCodeSessionClosed     = "SESSION_CLOSED"
	ErrCodeUnknownGame       = "UNKNOWN_GAME"
	ErrCodeInvalidAction     = "INVALID_ACTION"
	ErrCodeInvalidInput      = "INVALID_INPUT"
	ErrCodeEvaluationPending = "EVALUATION_PENDING"
	ErrCodeNothingPending    = "NOTHING_PENDING"
	ErrCodeItemNotInPool     = "ITEM_NOT_IN_POOL"
	ErrCodeUnknownZone       = "UNKNOWN_ZONE"
	ErrCodeAlreadyGenerated  = "ALREADY_GENERATED"
	ErrCodeDragIgnored       = "DRAG_IGNORED"
	ErrCodeInternalError     = "INTERNAL_ERROR"
)

// errorCodes is checked in order; the first sentinel in err's chain wins
var errorCodes = []struct {
	err     error
	code    string
	message string
}{
	{domain.ErrSessionNotFound, ErrCodeSessionNotFound, "Session not found"},
	{domain.ErrSessionClosed, ErrCodeSessionClosed, "Session has ended"},
	{domain.ErrUnknownGame, ErrCodeUnknownGame, "Unknown game"},
	{drag.ErrDragIgnored, ErrCodeDragIgnored, "Drag ignored"},
	{domain.ErrEvaluationPending, ErrCodeEvaluationPending, "Please wait for the current answer"},
	{domain.ErrNothingPending, ErrCodeNothingPending, "Nothing to judge right now"},
	{domain.ErrItemNotInPool, ErrCodeItemNotInPool, "That item has already been placed"},
	{domain.ErrUnknownZone, ErrCodeUnknownZone, "Unknown drop zone"},
	{domain.ErrAlreadyGenerated, ErrCodeAlreadyGenerated, "Already generated"},
	{domain.ErrInvalidInput, ErrCodeInvalidInput, "Invalid input"},
	{drag.ErrUnknownModality, ErrCodeInvalidInput, "Unknown input modality"},
	{domain.ErrInvalidPhase, ErrCodeInvalidAction, "Not available right now"},
	{domain.ErrInvalidTransition, ErrCodeInvalidAction, "Not available right now"},
	{domain.ErrUnsupportedCommand, ErrCodeInvalidAction, "Not supported by this game"},
}

// ErrorCode maps a domain error to its wire code and player-facing text
func ErrorCode(err error) (code, message string) {
	for _, ec := range errorCodes {
		if errors.Is(err, ec.err) {
			return ec.code, ec.message
		}
	}
	return ErrCodeInternalError, "Something went wrong"
}

// EventMessageType names the wire message for a game event
func EventMessageType(t domain.EventType) (MessageType, bool) {
	switch t {
	case domain.EventPhaseChanged:
		return MsgPhaseChanged, true
	case domain.EventOutcome:
		return MsgOutcome, true
	case domain.EventMessageShown:
		return MsgMessageShown, true
	case domain.EventMessageCleared:
		return MsgMessageCleared, true
	case domain.EventBannerChanged:
		return MsgBannerChanged, true
	case domain.EventDragChanged:
		return MsgDragChanged, true
	case domain.EventScrollLock:
		return MsgScrollLock, true
	case domain.EventGenerated:
		return MsgGenerated, true
	case domain.EventGenerationQueued:
		return MsgGenerationQueued, true
	case domain.EventStateSynced:
		return MsgStateSynced, true
	case domain.EventReturnedToMenu:
		return MsgReturnedToMenu, true
	default:
		return "", false
	}
}

// EventMessage converts a session event into a server message
func EventMessage(ev *domain.GameEvent) (*ServerMessage, error) {
	t, ok := EventMessageType(ev.Type)
	if !ok {
		return nil, fmt.Errorf("no message for event %s", ev.Type)
	}
	return &ServerMessage{
		Type:      t,
		Payload:   ev.Payload,
		Timestamp: ev.Timestamp.UTC().Format(time.RFC3339),
	}, nil
}

type commandDecoder func(payload json.RawMessage) (games.Command, error)

// decode builds a decoder for one command variant
func decode[T games.Command]() commandDecoder {
	return func(payload json.RawMessage) (games.Command, error) {
		var cmd T
		if len(payload) == 0 || string(payload) == "null" {
			return cmd, nil
		}
		if err := json.Unmarshal(payload, &cmd); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
		}
		return cmd, nil
	}
}

var commandDecoders = map[games.CommandType]commandDecoder{
	games.CmdFinishVideo:       decode[games.FinishVideo](),
	games.CmdStart:             decode[games.Start](),
	games.CmdBeginDrag:         decodeBeginDrag,
	games.CmdMoveDrag:          decode[games.MoveDrag](),
	games.CmdEndDrag:           decode[games.EndDrag](),
	games.CmdCancelDrag:        decode[games.CancelDrag](),
	games.CmdSetLayout:         decode[games.SetLayout](),
	games.CmdAnswer:            decode[games.Answer](),
	games.CmdNext:              decode[games.Next](),
	games.CmdVerdict:           decode[games.Verdict](),
	games.CmdSendChat:          decode[games.SendChat](),
	games.CmdRequestGeneration: decode[games.RequestGeneration](),
	games.CmdReset:             decode[games.Reset](),
	games.CmdSync:              decode[games.Sync](),
}

func decodeBeginDrag(payload json.RawMessage) (games.Command, error) {
	cmd, err := decode[games.BeginDrag]()(payload)
	if err != nil {
		return nil, err
	}
	begin := cmd.(games.BeginDrag)
	m, err := drag.ParseModality(string(begin.Modality))
	if err != nil {
		return nil, err
	}
	begin.Modality = m
	return begin, nil
}

// DecodeCommand turns a client message into a game command
func DecodeCommand(msg ClientMessage) (games.Command, error) {
	dec, ok := commandDecoders[games.CommandType(msg.Type)]
	if !ok {
		return nil, fmt.Errorf("%w: unknown message type %q", domain.ErrInvalidInput, msg.Type)
	}
	return dec(msg.Payload)
}

// newConnectedPayload describes the session a client just joined
func newConnectedPayload(clientID string, session *app.GameSession) *ConnectedPayload {
	kind := session.GetKind()
	return &ConnectedPayload{
		ClientID:  clientID,
		SessionID: session.GetID(),
		Game:      kind,
		State:     session.Snapshot(),
		Cues:      cuesFor(kind),
	}
}

// cuesFor lists what a view should preload for a game
func cuesFor(kind games.Kind) []media.Cue {
	switch kind {
	case games.KindSorting:
		return []media.Cue{media.SortCorrect, media.SortWrong}
	case games.KindQuiz:
		cues := []media.Cue{media.QuizIntro, media.QuizCorrect, media.QuizWrong, media.QuizWin, media.QuizWinFx, media.QuizLose, media.QuizLoseFx}
		for n := 1; n <= len(catalog.QuizQuestions()); n++ {
			cues = append(cues, media.QuestionNarration(n), media.AnswerNarration(n, true), media.AnswerNarration(n, false))
		}
		return cues
	case games.KindTrain:
		return []media.Cue{media.TrainStart, media.TrainFinal, media.TrainThinking, media.TrainCorrect, media.TrainWrong, media.TrainSuccess, media.TrainMeow, media.TrainBark}
	default:
		return nil
	}
}
