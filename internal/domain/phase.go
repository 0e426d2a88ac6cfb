package domain

// Phase represents the current stage of a mini-game
type Phase string

const (
	PhaseIntro       Phase = "INTRO"       // Intro video and start screen
	PhaseLoading     Phase = "LOADING"     // Pacing screen between stages
	PhaseInteractive Phase = "INTERACTIVE" // Player drags, answers or chats
	PhaseFeedback    Phase = "FEEDBACK"    // One outcome is on screen
	PhaseRequesting  Phase = "REQUESTING"  // Player asks the AI to generate
	PhaseComplete    Phase = "COMPLETE"    // Terminal until reset
)

// AllPhases lists every phase in lifecycle order
var AllPhases = []Phase{
	PhaseIntro,
	PhaseLoading,
	PhaseInteractive,
	PhaseFeedback,
	PhaseRequesting,
	PhaseComplete,
}

// String returns the string representation of the phase
func (p Phase) String() string {
	return string(p)
}

// IsTerminal reports whether only a reset can leave the phase
func (p Phase) IsTerminal() bool {
	return p == PhaseComplete
}

// TransitionTable lists the legal forward transitions of one game.
// Reset to PhaseIntro is always legal and is not listed.
type TransitionTable map[Phase][]Phase

// Allows checks if a transition from one phase to another is valid
func (t TransitionTable) Allows(from, to Phase) bool {
	allowed, ok := t[from]
	if !ok {
		return false
	}

	for _, phase := range allowed {
		if phase == to {
			return true
		}
	}
	return false
}

// Validate checks that the table only names known phases and never
// leads back to the intro.
func (t TransitionTable) Validate() error {
	known := make(map[Phase]bool, len(AllPhases))
	for _, p := range AllPhases {
		known[p] = true
	}

	for from, targets := range t {
		if !known[from] {
			return ErrUnknownPhase
		}
		for _, to := range targets {
			if !known[to] {
				return ErrUnknownPhase
			}
			if to == PhaseIntro {
				return ErrInvalidTransition
			}
		}
	}
	return nil
}
