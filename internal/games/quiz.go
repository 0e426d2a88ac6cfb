package games

import (
	"fmt"
	"time"

	"ailab/internal/catalog"
	"ailab/internal/domain"
	"ailab/internal/media"
)

const (
	introCueDelay    = 500 * time.Millisecond
	quizLoading      = 2 * time.Second
	questionCueDelay = 500 * time.Millisecond
	answerCueDelay   = 500 * time.Millisecond
	resultCueDelay   = 300 * time.Millisecond
)

var quizTable = domain.TransitionTable{
	domain.PhaseIntro:       {domain.PhaseLoading},
	domain.PhaseLoading:     {domain.PhaseInteractive},
	domain.PhaseInteractive: {domain.PhaseFeedback},
	domain.PhaseFeedback:    {domain.PhaseInteractive, domain.PhaseComplete},
}

// Quiz is Spot the AI: one answer per scenario, no retries, pass at the
// configured percentage.
type Quiz struct {
	*controller
	questions []domain.Item
	asked     int

	introCue    media.Handle
	questionCue media.Handle
	answerCue   media.Handle
}

// NewQuiz creates a Spot the AI game at its intro video
func NewQuiz(opts Options) *Quiz {
	g := &Quiz{questions: catalog.QuizQuestions()}
	g.controller = newController(rules{
		kind:  KindQuiz,
		table: quizTable,
		board: domain.BoardConfig{},
		stage: StageVideo,
	}, opts, g.questions)
	return g
}

// Handle applies one player command
func (g *Quiz) Handle(cmd Command) error {
	if err := g.checkOpen(); err != nil {
		return err
	}

	switch cmd := cmd.(type) {
	case FinishVideo:
		return g.finishVideo(cmd)
	case Start:
		return g.start()
	case Answer:
		return g.answer(cmd.Choice)
	case Next:
		return g.next()
	case Reset:
		g.Reset()
		return nil
	case BeginDrag, MoveDrag, EndDrag, CancelDrag, SetLayout, Verdict, SendChat, RequestGeneration:
		return fmt.Errorf("%w: %s in %s", domain.ErrUnsupportedCommand, cmd.Type(), g.rules.kind)
	default:
		return g.handleCommon(cmd, g.Snapshot)
	}
}

func (g *Quiz) finishVideo(cmd FinishVideo) error {
	if !g.machine.Is(domain.PhaseIntro) || g.stage != StageVideo {
		return fmt.Errorf("finish video: %w", domain.ErrInvalidPhase)
	}
	g.videoFinished(cmd)
	g.stage = StageReady
	g.emit(domain.StateSynced{State: g.Snapshot()})

	g.afterIn(domain.PhaseIntro, introCueDelay, "quiz.intro-cue", func() error {
		if g.stage == StageReady {
			g.introCue = g.media.Play(media.QuizIntro)
		}
		return nil
	})
	return nil
}

func (g *Quiz) start() error {
	if !g.machine.Is(domain.PhaseIntro) || g.stage != StageReady {
		return fmt.Errorf("start: %w", domain.ErrInvalidPhase)
	}
	g.media.Stop(g.introCue)
	g.introCue = ""

	if err := g.transition(domain.PhaseLoading); err != nil {
		return err
	}
	g.afterIn(domain.PhaseLoading, quizLoading, "quiz.loading", func() error {
		if err := g.transition(domain.PhaseInteractive); err != nil {
			return err
		}
		g.showQuestion()
		return nil
	})
	return nil
}

func (g *Quiz) showQuestion() {
	g.asked++
	n := g.asked
	g.emit(domain.StateSynced{State: g.Snapshot()})

	g.afterIn(domain.PhaseInteractive, questionCueDelay, "quiz.question-cue", func() error {
		if g.asked == n {
			g.questionCue = g.media.Play(media.QuestionNarration(n))
		}
		return nil
	})
}

func (g *Quiz) answer(choice string) error {
	if choice != catalog.AnswerAI && choice != catalog.AnswerNotAI {
		return fmt.Errorf("answer %q: %w", choice, domain.ErrInvalidInput)
	}
	if g.machine.Pending() {
		return domain.ErrEvaluationPending
	}
	item, ok := g.board.Next()
	if !ok || !g.machine.AcceptsInput() {
		return fmt.Errorf("answer: %w", domain.ErrInvalidPhase)
	}

	g.media.Stop(g.questionCue)
	g.questionCue = ""

	if err := g.beginEvaluation(); err != nil {
		return err
	}
	out, err := g.evaluate(item.Key, choice)
	if err != nil {
		return err
	}

	if out.Correct {
		g.media.Play(media.QuizCorrect)
	} else {
		g.media.Play(media.QuizWrong)
	}
	g.showMessage(domain.MessageShown{
		Kind:    domain.MessageExplanation,
		Text:    item.Explanation,
		ItemKey: item.Key,
	})

	n := g.asked
	g.afterIn(domain.PhaseFeedback, answerCueDelay, "quiz.answer-cue", func() error {
		if g.asked == n {
			g.answerCue = g.media.Play(media.AnswerNarration(n, out.Correct))
		}
		return nil
	})
	return nil
}

func (g *Quiz) next() error {
	if !g.machine.Pending() {
		return fmt.Errorf("next: %w", domain.ErrNothingPending)
	}

	g.media.Stop(g.answerCue)
	g.answerCue = ""
	g.clearMessage()

	if !g.board.Exhausted() {
		if err := g.endEvaluation(domain.PhaseInteractive); err != nil {
			return err
		}
		g.showQuestion()
		return nil
	}

	if err := g.endEvaluation(domain.PhaseComplete); err != nil {
		return err
	}
	passed := g.Passed()
	g.logger.Info("quiz finished", "score", g.board.Score(), "total", g.board.Total(), "passed", passed)

	g.afterIn(domain.PhaseComplete, resultCueDelay, "quiz.result-cue", func() error {
		if passed {
			g.media.Play(media.QuizWin)
			g.media.Play(media.QuizWinFx)
		} else {
			g.media.Play(media.QuizLose)
			g.media.Play(media.QuizLoseFx)
		}
		return nil
	})
	return nil
}

// Passed reports whether the score reaches the pass percentage
func (g *Quiz) Passed() bool {
	total := g.board.Total()
	return total > 0 && g.board.Score()*100 >= g.opts.PassPercent*total
}

// Reset returns to the intro video with every question unanswered
func (g *Quiz) Reset() {
	g.resetBase(g.questions)
	g.asked = 0
	g.introCue, g.questionCue, g.answerCue = "", "", ""
	g.emit(domain.StateSynced{State: g.Snapshot()})
}

// Close stops every timer and sound for good
func (g *Quiz) Close() {
	g.close()
}

// Snapshot returns the current view state
func (g *Quiz) Snapshot() Snapshot {
	s := g.baseSnapshot()
	state := &QuizState{
		Question:    g.asked,
		Questions:   g.board.Total(),
		PassPercent: g.opts.PassPercent,
	}
	if g.machine.Is(domain.PhaseComplete) {
		passed := g.Passed()
		state.Passed = &passed
	}
	s.Quiz = state
	return s
}
