package domain

import "errors"

// Domain errors
var (
	ErrSessionNotFound    = errors.New("session not found")
	ErrUnknownGame        = errors.New("unknown game")
	ErrUnknownPhase       = errors.New("unknown phase")
	ErrInvalidPhase       = errors.New("invalid action for current phase")
	ErrInvalidTransition  = errors.New("invalid phase transition")
	ErrEvaluationPending  = errors.New("another evaluation is pending")
	ErrNothingPending     = errors.New("no item is awaiting evaluation")
	ErrItemNotInPool      = errors.New("item is not in the pool")
	ErrUnknownZone        = errors.New("unknown zone")
	ErrUnsupportedCommand = errors.New("command not supported by this game")
	ErrInvalidInput       = errors.New("invalid input")
	ErrAlreadyGenerated   = errors.New("category already generated")
	ErrSessionClosed      = errors.New("session closed")
)
