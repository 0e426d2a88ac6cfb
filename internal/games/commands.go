package games

import "ailab/internal/drag"

// CommandType names a command on the wire
type CommandType string

const (
	CmdFinishVideo       CommandType = "finish_video"
	CmdStart             CommandType = "start"
	CmdBeginDrag         CommandType = "begin_drag"
	CmdMoveDrag          CommandType = "move_drag"
	CmdEndDrag           CommandType = "end_drag"
	CmdCancelDrag        CommandType = "cancel_drag"
	CmdSetLayout         CommandType = "set_layout"
	CmdAnswer            CommandType = "answer"
	CmdNext              CommandType = "next"
	CmdVerdict           CommandType = "verdict"
	CmdSendChat          CommandType = "send_chat"
	CmdRequestGeneration CommandType = "request_generation"
	CmdReset             CommandType = "reset"
	CmdSync              CommandType = "sync"
)

// AllCommandTypes lists every command a view can send to a game
var AllCommandTypes = []CommandType{
	CmdFinishVideo,
	CmdStart,
	CmdBeginDrag,
	CmdMoveDrag,
	CmdEndDrag,
	CmdCancelDrag,
	CmdSetLayout,
	CmdAnswer,
	CmdNext,
	CmdVerdict,
	CmdSendChat,
	CmdRequestGeneration,
	CmdReset,
	CmdSync,
}

// Command is the closed set of player inputs. Only types in this package
// implement it.
type Command interface {
	Type() CommandType
	isCommand()
}

// FinishVideo ends the intro video, either played out or skipped
type FinishVideo struct {
	Skipped bool `json:"skipped"`
}

// Start leaves the intro screen
type Start struct{}

// BeginDrag picks up an item
type BeginDrag struct {
	Item     string        `json:"item"`
	Modality drag.Modality `json:"modality"`
	At       drag.Point    `json:"at"`
}

// MoveDrag reports the latest input position
type MoveDrag struct {
	At drag.Point `json:"at"`
}

// EndDrag releases the item. Zone is the browser's native drop target
// and is only trusted for pointer drags.
type EndDrag struct {
	At   drag.Point `json:"at"`
	Zone string     `json:"zone,omitempty"`
}

// CancelDrag abandons the gesture (touchcancel, lost focus)
type CancelDrag struct{}

// SetLayout registers the view's region tree for touch hit-testing
type SetLayout struct {
	Regions []drag.Region `json:"regions"`
}

// Answer is a quiz guess, "ai" or "not_ai"
type Answer struct {
	Choice string `json:"choice"`
}

// Next advances past the quiz explanation
type Next struct{}

// Verdict judges the trainer's guess, "yes" or "no"
type Verdict struct {
	Choice string `json:"choice"`
}

// SendChat asks the trainer to create a picture
type SendChat struct {
	Text string `json:"text"`
}

// RequestGeneration asks the AI for one example of a data category
type RequestGeneration struct {
	Category string `json:"category"`
}

// Reset replays the game from the intro
type Reset struct{}

// Sync asks for a full state snapshot
type Sync struct{}

func (FinishVideo) Type() CommandType       { return CmdFinishVideo }
func (Start) Type() CommandType             { return CmdStart }
func (BeginDrag) Type() CommandType         { return CmdBeginDrag }
func (MoveDrag) Type() CommandType          { return CmdMoveDrag }
func (EndDrag) Type() CommandType           { return CmdEndDrag }
func (CancelDrag) Type() CommandType        { return CmdCancelDrag }
func (SetLayout) Type() CommandType         { return CmdSetLayout }
func (Answer) Type() CommandType            { return CmdAnswer }
func (Next) Type() CommandType              { return CmdNext }
func (Verdict) Type() CommandType           { return CmdVerdict }
func (SendChat) Type() CommandType          { return CmdSendChat }
func (RequestGeneration) Type() CommandType { return CmdRequestGeneration }
func (Reset) Type() CommandType             { return CmdReset }
func (Sync) Type() CommandType              { return CmdSync }

func (FinishVideo) isCommand()       {}
func (Start) isCommand()             {}
func (BeginDrag) isCommand()         {}
func (MoveDrag) isCommand()          {}
func (EndDrag) isCommand()           {}
func (CancelDrag) isCommand()        {}
func (SetLayout) isCommand()         {}
func (Answer) isCommand()            {}
func (Next) isCommand()              {}
func (Verdict) isCommand()           {}
func (SendChat) isCommand()          {}
func (RequestGeneration) isCommand() {}
func (Reset) isCommand()             {}
func (Sync) isCommand()              {}
