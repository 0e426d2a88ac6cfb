package games

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ailab/internal/catalog"
	"ailab/internal/domain"
	"ailab/internal/drag"
)

func wrongAnswer(answer string) string {
	if answer == catalog.AnswerAI {
		return catalog.AnswerNotAI
	}
	return catalog.AnswerAI
}

func (h *harness) reachFirstQuestion() {
	h.t.Helper()
	h.do(FinishVideo{})
	h.advance(introCueDelay)
	h.do(Start{})
	h.advance(quizLoading)
	require.Equal(h.t, domain.PhaseInteractive, h.phase())
}

// playQuiz answers every question, getting the first `right` correct
func (h *harness) playQuiz(right int) {
	h.t.Helper()
	h.reachFirstQuestion()

	for i, q := range catalog.QuizQuestions() {
		choice := q.Answer
		if i >= right {
			choice = wrongAnswer(q.Answer)
		}
		h.advance(questionCueDelay)
		h.do(Answer{Choice: choice})
		h.advance(answerCueDelay)
		h.do(Next{})
	}
}

func TestQuiz_IntroFlow(t *testing.T) {
	h := newHarness(t, KindQuiz)
	assert.Equal(t, StageVideo, h.snap().Stage)
	assert.ErrorIs(t, h.game.Handle(Start{}), domain.ErrInvalidPhase, "start waits for the video")

	h.do(FinishVideo{Skipped: true})
	assert.Equal(t, StageReady, h.snap().Stage)
	assert.ErrorIs(t, h.game.Handle(FinishVideo{}), domain.ErrInvalidPhase)

	h.advance(introCueDelay)
	assert.Equal(t, []string{"/audio/guess-intro.mp3"}, h.player.played)

	h.do(Start{})
	assert.Equal(t, domain.PhaseLoading, h.phase())
	assert.Len(t, h.player.stopped, 1, "intro narration stops on start")

	h.advance(quizLoading - time.Millisecond)
	assert.Equal(t, domain.PhaseLoading, h.phase())
	h.advance(time.Millisecond)
	assert.Equal(t, domain.PhaseInteractive, h.phase())
	assert.Equal(t, 1, h.snap().Quiz.Question)

	h.advance(questionCueDelay)
	assert.Equal(t, 1, h.player.count("/audio/q1m1.mp3"))
}

func TestQuiz_AnswerShowsExplanationAndNarration(t *testing.T) {
	h := newHarness(t, KindQuiz)
	h.reachFirstQuestion()
	h.advance(questionCueDelay)

	q := catalog.QuizQuestions()[0]
	h.do(Answer{Choice: q.Answer})

	snap := h.snap()
	assert.Equal(t, domain.PhaseFeedback, snap.Phase)
	assert.True(t, snap.Pending)
	assert.Equal(t, 1, snap.Score)
	assert.Equal(t, domain.MessageExplanation, h.message().Kind)
	assert.Equal(t, q.Explanation, h.message().Text)
	assert.Equal(t, 1, h.player.count("/audio/correct-ding.mp3"))

	assert.ErrorIs(t, h.game.Handle(Answer{Choice: q.Answer}), domain.ErrEvaluationPending)
	assert.Equal(t, 1, h.snap().Score, "double evaluation must not score twice")

	h.advance(answerCueDelay)
	assert.Equal(t, 1, h.player.count("/audio/q1m1-correct.mp3"))

	h.do(Next{})
	snap = h.snap()
	assert.Equal(t, domain.PhaseInteractive, snap.Phase)
	assert.Nil(t, snap.Message)
	assert.Equal(t, 2, snap.Quiz.Question)
	assert.ErrorIs(t, h.game.Handle(Next{}), domain.ErrNothingPending)
}

func TestQuiz_WrongAnswerIsRecorded(t *testing.T) {
	h := newHarness(t, KindQuiz)
	h.reachFirstQuestion()

	q := catalog.QuizQuestions()[0]
	h.do(Answer{Choice: wrongAnswer(q.Answer)})
	h.advance(answerCueDelay)

	snap := h.snap()
	assert.Zero(t, snap.Score)
	assert.Len(t, snap.Pool, 4, "no retries in the quiz")
	require.Len(t, snap.Placed, 1)
	assert.False(t, snap.Placed[0].Correct)
	assert.Equal(t, 1, h.player.count("/audio/wrong-buzz.mp3"))
	assert.Equal(t, 1, h.player.count("/audio/q1m1-wrong.mp3"))
}

func TestQuiz_FourOfFivePasses(t *testing.T) {
	h := newHarness(t, KindQuiz)
	h.playQuiz(4)

	snap := h.snap()
	assert.Equal(t, domain.PhaseComplete, snap.Phase)
	assert.Equal(t, 4, snap.Score)
	require.NotNil(t, snap.Quiz.Passed)
	assert.True(t, *snap.Quiz.Passed)

	h.advance(resultCueDelay)
	assert.Equal(t, 1, h.player.count("/audio/win-m1.mp3"))
	assert.Equal(t, 1, h.player.count("/audio/success.mp3"))
	assert.Zero(t, h.player.count("/audio/lost-m1.mp3"))
}

func TestQuiz_TwoOfFiveFails(t *testing.T) {
	h := newHarness(t, KindQuiz)
	h.playQuiz(2)

	snap := h.snap()
	assert.Equal(t, domain.PhaseComplete, snap.Phase)
	require.NotNil(t, snap.Quiz.Passed)
	assert.False(t, *snap.Quiz.Passed)

	h.advance(resultCueDelay)
	assert.Equal(t, 1, h.player.count("/audio/lost-m1.mp3"))
	assert.Equal(t, 1, h.player.count("/audio/you-lost.mp3"))
	assert.Zero(t, h.player.count("/audio/win-m1.mp3"))
}

func TestQuiz_PassThresholdIsInclusive(t *testing.T) {
	exact := newHarnessWith(t, KindQuiz, Options{PassPercent: 80})
	exact.playQuiz(4)
	assert.True(t, exact.game.(*Quiz).Passed())

	above := newHarnessWith(t, KindQuiz, Options{PassPercent: 81})
	above.playQuiz(4)
	assert.False(t, above.game.(*Quiz).Passed())

	three := newHarness(t, KindQuiz)
	three.playQuiz(3)
	assert.False(t, three.game.(*Quiz).Passed(), "60% is below the default 70%")
}

func TestQuiz_NextStopsNarration(t *testing.T) {
	h := newHarness(t, KindQuiz)
	h.reachFirstQuestion()
	h.advance(questionCueDelay)

	h.do(Answer{Choice: catalog.AnswerAI})
	stoppedAfterAnswer := len(h.player.stopped)
	h.advance(answerCueDelay)
	h.do(Next{})
	assert.Equal(t, stoppedAfterAnswer+1, len(h.player.stopped))
}

func TestQuiz_RejectsBadInput(t *testing.T) {
	h := newHarness(t, KindQuiz)
	assert.ErrorIs(t, h.game.Handle(Answer{Choice: "maybe"}), domain.ErrInvalidInput)
	assert.ErrorIs(t, h.game.Handle(Answer{Choice: catalog.AnswerAI}), domain.ErrInvalidPhase)
	assert.ErrorIs(t, h.game.Handle(BeginDrag{Item: "q1", Modality: drag.ModalityPointer}), domain.ErrUnsupportedCommand)
	assert.ErrorIs(t, h.game.Handle(SendChat{Text: "cat"}), domain.ErrUnsupportedCommand)
}

func TestQuiz_ResetDuringLoading(t *testing.T) {
	h := newHarness(t, KindQuiz)
	initial := h.snap()

	h.do(FinishVideo{})
	h.do(Start{})
	h.do(Reset{})
	assert.Equal(t, initial, h.snap())

	h.advance(5 * time.Second)
	assert.Equal(t, initial, h.snap())
	assert.Empty(t, h.player.played, "the intro cue was cancelled with everything else")
}

func TestQuiz_ResetMidQuestion(t *testing.T) {
	h := newHarness(t, KindQuiz)
	initial := h.snap()

	h.reachFirstQuestion()
	h.do(Answer{Choice: catalog.AnswerAI})
	h.do(Reset{})

	assert.Equal(t, initial, h.snap())
	played := len(h.player.played)
	h.advance(time.Second)
	assert.Len(t, h.player.played, played)
}

func TestQuiz_RecordsSkippedVideo(t *testing.T) {
	h := newHarness(t, KindQuiz)
	assert.False(t, h.snap().VideoSkipped)

	h.do(FinishVideo{Skipped: true})
	assert.True(t, h.snap().VideoSkipped)

	h.do(Reset{})
	assert.False(t, h.snap().VideoSkipped)
}
