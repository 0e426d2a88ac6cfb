package domain

// Machine owns the authoritative phase of one game session and enforces
// its transition table. Feedback is entered and left only through
// BeginEvaluation and EndEvaluation so at most one evaluation is pending.
type Machine struct {
	table   TransitionTable
	current Phase
	pending bool
	changes int
}

// NewMachine creates a machine in PhaseIntro
func NewMachine(table TransitionTable) *Machine {
	return &Machine{
		table:   table,
		current: PhaseIntro,
	}
}

// Phase returns the current phase
func (m *Machine) Phase() Phase {
	return m.current
}

// Is reports whether the machine is in the given phase
func (m *Machine) Is(p Phase) bool {
	return m.current == p
}

// Pending reports whether an evaluation is in progress
func (m *Machine) Pending() bool {
	return m.pending
}

// Changes counts transitions since the last reset
func (m *Machine) Changes() int {
	return m.changes
}

// AcceptsInput reports whether a new drag or answer may start
func (m *Machine) AcceptsInput() bool {
	return m.current == PhaseInteractive && !m.pending
}

// Transition moves to the target phase if the table allows it
func (m *Machine) Transition(to Phase) error {
	if m.pending {
		return ErrEvaluationPending
	}
	if to == PhaseFeedback {
		return ErrInvalidTransition
	}
	if !m.table.Allows(m.current, to) {
		return ErrInvalidTransition
	}
	m.set(to)
	return nil
}

// BeginEvaluation moves INTERACTIVE -> FEEDBACK and marks an evaluation
// as pending.
func (m *Machine) BeginEvaluation() error {
	if m.pending {
		return ErrEvaluationPending
	}
	if m.current != PhaseInteractive {
		return ErrInvalidPhase
	}
	if !m.table.Allows(PhaseInteractive, PhaseFeedback) {
		return ErrInvalidTransition
	}
	m.pending = true
	m.set(PhaseFeedback)
	return nil
}

// EndEvaluation clears the pending flag and leaves FEEDBACK for next
func (m *Machine) EndEvaluation(next Phase) error {
	if !m.pending || m.current != PhaseFeedback {
		return ErrNothingPending
	}
	if !m.table.Allows(PhaseFeedback, next) {
		return ErrInvalidTransition
	}
	m.pending = false
	m.set(next)
	return nil
}

// Reset returns to PhaseIntro and drops any pending evaluation
func (m *Machine) Reset() {
	m.current = PhaseIntro
	m.pending = false
	m.changes = 0
}

func (m *Machine) set(p Phase) {
	m.current = p
	m.changes++
}
