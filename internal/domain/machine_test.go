package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var quizTable = TransitionTable{
	PhaseIntro:       {PhaseLoading},
	PhaseLoading:     {PhaseInteractive},
	PhaseInteractive: {PhaseFeedback},
	PhaseFeedback:    {PhaseInteractive, PhaseComplete},
}

func TestMachine_StartsInIntro(t *testing.T) {
	m := NewMachine(quizTable)

	assert.Equal(t, PhaseIntro, m.Phase())
	assert.False(t, m.Pending())
	assert.False(t, m.AcceptsInput())
}

func TestMachine_RejectsIllegalTransition(t *testing.T) {
	m := NewMachine(quizTable)

	err := m.Transition(PhaseComplete)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, PhaseIntro, m.Phase())
}

func TestMachine_FeedbackOnlyThroughEvaluation(t *testing.T) {
	m := NewMachine(quizTable)
	require.NoError(t, m.Transition(PhaseLoading))
	require.NoError(t, m.Transition(PhaseInteractive))

	assert.ErrorIs(t, m.Transition(PhaseFeedback), ErrInvalidTransition)

	require.NoError(t, m.BeginEvaluation())
	assert.Equal(t, PhaseFeedback, m.Phase())
	assert.True(t, m.Pending())
}

func TestMachine_DoubleSubmissionRejected(t *testing.T) {
	m := NewMachine(quizTable)
	require.NoError(t, m.Transition(PhaseLoading))
	require.NoError(t, m.Transition(PhaseInteractive))
	require.NoError(t, m.BeginEvaluation())

	assert.ErrorIs(t, m.BeginEvaluation(), ErrEvaluationPending)
	assert.ErrorIs(t, m.Transition(PhaseInteractive), ErrEvaluationPending)
}

func TestMachine_EndEvaluation(t *testing.T) {
	m := NewMachine(quizTable)
	require.NoError(t, m.Transition(PhaseLoading))
	require.NoError(t, m.Transition(PhaseInteractive))

	assert.ErrorIs(t, m.EndEvaluation(PhaseInteractive), ErrNothingPending)

	require.NoError(t, m.BeginEvaluation())
	assert.ErrorIs(t, m.EndEvaluation(PhaseLoading), ErrInvalidTransition)
	assert.True(t, m.Pending(), "failed end must keep the evaluation pending")

	require.NoError(t, m.EndEvaluation(PhaseComplete))
	assert.False(t, m.Pending())
	assert.True(t, m.Phase().IsTerminal())
}

func TestMachine_CompleteOnlyLeftByReset(t *testing.T) {
	m := NewMachine(quizTable)
	require.NoError(t, m.Transition(PhaseLoading))
	require.NoError(t, m.Transition(PhaseInteractive))
	require.NoError(t, m.BeginEvaluation())
	require.NoError(t, m.EndEvaluation(PhaseComplete))

	for _, p := range AllPhases {
		assert.ErrorIs(t, m.Transition(p), ErrInvalidTransition, "complete -> %s", p)
	}

	m.Reset()
	assert.Equal(t, PhaseIntro, m.Phase())
	assert.Zero(t, m.Changes())
}

func TestMachine_BeginEvaluationOutsideInteractive(t *testing.T) {
	m := NewMachine(quizTable)

	assert.ErrorIs(t, m.BeginEvaluation(), ErrInvalidPhase)
	assert.False(t, m.Pending())
}

func TestTransitionTable_Validate(t *testing.T) {
	assert.NoError(t, quizTable.Validate())

	backwards := TransitionTable{PhaseComplete: {PhaseIntro}}
	assert.ErrorIs(t, backwards.Validate(), ErrInvalidTransition)

	unknown := TransitionTable{PhaseIntro: {Phase("LOBBY")}}
	assert.ErrorIs(t, unknown.Validate(), ErrUnknownPhase)
}
