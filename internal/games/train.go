package games

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"ailab/internal/catalog"
	"ailab/internal/domain"
	"ailab/internal/drag"
	"ailab/internal/media"
)

// TrainerZone is the drop zone tag of the AI character
const TrainerZone = "trainer"

const (
	trainLoading     = 500 * time.Millisecond
	thinkingTime     = time.Second
	correctShown     = 1500 * time.Millisecond
	lastCorrectShown = 2500 * time.Millisecond
	retryShown       = 3 * time.Second
	chatShown        = 3 * time.Second
	finalCueDelay    = 3 * time.Second
	completeDelay    = 500 * time.Millisecond
)

const (
	textThinking    = "AI is thinking..."
	textCorrect     = "Correct!"
	textRetry       = "I'm not sure the AI got it right… look at the picture and try again"
	textRetryAgain  = "uhhhhh, try again!"
	textPrompt      = "I want to show you something cool, ask me to create a picture of a dog or a cat!"
	textInputError  = "Type either 'cat' or 'dog' into the text box!"
	textGeneratedFm = "Here's a %s I created for you!"
	textGuessFm     = "That is a %s!"
)

var trainTable = domain.TransitionTable{
	domain.PhaseIntro:       {domain.PhaseLoading},
	domain.PhaseLoading:     {domain.PhaseInteractive, domain.PhaseRequesting, domain.PhaseComplete},
	domain.PhaseInteractive: {domain.PhaseFeedback},
	domain.PhaseFeedback:    {domain.PhaseInteractive, domain.PhaseLoading},
	domain.PhaseRequesting:  {domain.PhaseLoading},
}

// Train is Teach the AI: judge four scripted guesses, then chat with the
// AI until it has "created" both a cat and a dog.
type Train struct {
	*controller
	pets     []domain.Item
	fold     cases.Caser
	awaiting bool
	chatBusy bool
	created  []string
}

// NewTrain creates a Teach the AI game at its intro video
func NewTrain(opts Options) *Train {
	opts = opts.withDefaults()
	g := &Train{
		pets: catalog.Pets(),
		fold: cases.Fold(),
	}
	g.controller = newController(rules{
		kind:  KindTrain,
		table: trainTable,
		board: domain.BoardConfig{
			RetryIncorrect: true,
			EscalateAfter:  opts.EscalateAfter,
		},
		stage: StageVideo,
	}, opts, g.pets)
	g.drop = g.onDrop
	return g
}

// Handle applies one player command
func (g *Train) Handle(cmd Command) error {
	if err := g.checkOpen(); err != nil {
		return err
	}

	switch cmd := cmd.(type) {
	case FinishVideo:
		return g.finishVideo(cmd)
	case Verdict:
		return g.verdict(cmd.Choice)
	case SendChat:
		return g.sendChat(cmd.Text)
	case Reset:
		g.Reset()
		return nil
	case Start, Answer, Next, RequestGeneration:
		return fmt.Errorf("%w: %s in %s", domain.ErrUnsupportedCommand, cmd.Type(), g.rules.kind)
	default:
		return g.handleCommon(cmd, g.Snapshot)
	}
}

func (g *Train) finishVideo(cmd FinishVideo) error {
	if !g.machine.Is(domain.PhaseIntro) {
		return fmt.Errorf("finish video: %w", domain.ErrInvalidPhase)
	}
	if err := g.transition(domain.PhaseLoading); err != nil {
		return err
	}
	g.videoFinished(cmd)

	g.afterIn(domain.PhaseLoading, trainLoading, "train.loading", func() error {
		if err := g.transition(domain.PhaseInteractive); err != nil {
			return err
		}
		g.media.Play(media.TrainStart)
		return nil
	})
	return nil
}

func (g *Train) onDrop(d drag.Drop) error {
	if !d.Found || d.Zone != TrainerZone {
		g.logger.Debug("pet dropped away from the trainer", "item", d.Item, "zone", d.Zone)
		return nil
	}

	if err := g.beginEvaluation(); err != nil {
		return err
	}
	pet, err := g.board.Hold(d.Item)
	if err != nil {
		return errors.Join(err, g.endEvaluation(domain.PhaseInteractive))
	}

	g.media.Play(media.TrainThinking)
	g.showMessage(domain.MessageShown{Kind: domain.MessageThinking, Text: textThinking, ItemKey: pet.Key})

	g.afterIn(domain.PhaseFeedback, thinkingTime, "train.thinking", func() error {
		g.awaiting = true
		g.showMessage(domain.MessageShown{
			Kind:    domain.MessageAIResponse,
			Text:    fmt.Sprintf(textGuessFm, pet.AIGuess),
			ItemKey: pet.Key,
		})
		return nil
	})
	return nil
}

func (g *Train) verdict(choice string) error {
	if choice != catalog.VerdictYes && choice != catalog.VerdictNo {
		return fmt.Errorf("verdict %q: %w", choice, domain.ErrInvalidInput)
	}
	held, ok := g.board.Held()
	if !g.awaiting || !ok {
		return fmt.Errorf("verdict: %w", domain.ErrNothingPending)
	}
	g.awaiting = false

	out, err := g.judge(choice)
	if err != nil {
		return err
	}

	if !out.Correct {
		g.media.Play(media.TrainWrong)
		text := textRetry
		if out.Escalated {
			text = textRetryAgain
		}
		g.showMessage(domain.MessageShown{Kind: domain.MessageRetry, Text: text, ItemKey: held.Key})

		g.afterIn(domain.PhaseFeedback, retryShown, "train.retry", func() error {
			g.clearMessage()
			return g.endEvaluation(domain.PhaseInteractive)
		})
		return nil
	}

	g.media.Play(media.TrainCorrect)
	g.showMessage(domain.MessageShown{Kind: domain.MessageCorrect, Text: textCorrect, ItemKey: held.Key})

	if !g.board.Exhausted() {
		g.afterIn(domain.PhaseFeedback, correctShown, "train.correct", func() error {
			g.clearMessage()
			return g.endEvaluation(domain.PhaseInteractive)
		})
		return nil
	}

	g.afterIn(domain.PhaseFeedback, lastCorrectShown, "train.trained", func() error {
		g.clearMessage()
		if err := g.endEvaluation(domain.PhaseLoading); err != nil {
			return err
		}
		g.afterIn(domain.PhaseLoading, trainLoading, "train.generation", func() error {
			if err := g.transition(domain.PhaseRequesting); err != nil {
				return err
			}
			g.prompt()
			return nil
		})
		return nil
	})
	return nil
}

func (g *Train) prompt() {
	g.chatBusy = false
	g.showMessage(domain.MessageShown{Kind: domain.MessageGenerationPrompt, Text: textPrompt})
}

// requestedAnimal finds the animal asked for; cat wins when both appear
func (g *Train) requestedAnimal(text string) (string, bool) {
	folded := g.fold.String(strings.TrimSpace(text))
	for _, animal := range []string{catalog.AnimalCat, catalog.AnimalDog} {
		if strings.Contains(folded, animal) {
			return animal, true
		}
	}
	return "", false
}

func (g *Train) sendChat(text string) error {
	if !g.machine.Is(domain.PhaseRequesting) {
		return fmt.Errorf("chat: %w", domain.ErrInvalidPhase)
	}
	if g.chatBusy {
		return fmt.Errorf("chat: %w", domain.ErrEvaluationPending)
	}
	g.chatBusy = true

	animal, ok := g.requestedAnimal(text)
	if !ok {
		g.showMessage(domain.MessageShown{Kind: domain.MessageInputError, Text: textInputError})
		g.afterIn(domain.PhaseRequesting, chatShown, "train.input-error", func() error {
			g.prompt()
			return nil
		})
		return nil
	}

	if !g.hasCreated(animal) {
		g.created = append(g.created, animal)
	}
	image := catalog.AnimalImage(animal)
	g.emit(domain.Generated{Category: animal, Symbol: image})
	g.showMessage(domain.MessageShown{
		Kind:  domain.MessageGeneratedImage,
		Text:  fmt.Sprintf(textGeneratedFm, animal),
		Image: image,
	})
	if animal == catalog.AnimalCat {
		g.media.Play(media.TrainMeow)
	} else {
		g.media.Play(media.TrainBark)
	}

	if !g.hasCreated(catalog.AnimalCat) || !g.hasCreated(catalog.AnimalDog) {
		g.afterIn(domain.PhaseRequesting, chatShown, "train.generated", func() error {
			g.prompt()
			return nil
		})
		return nil
	}

	g.afterIn(domain.PhaseRequesting, chatShown, "train.finale", g.finish)
	return nil
}

func (g *Train) finish() error {
	g.media.Play(media.TrainSuccess)
	g.after(finalCueDelay, "train.final-cue", func() error {
		g.media.Play(media.TrainFinal)
		return nil
	})

	g.clearMessage()
	if err := g.transition(domain.PhaseLoading); err != nil {
		return err
	}
	g.afterIn(domain.PhaseLoading, completeDelay, "train.complete", func() error {
		g.logger.Info("training finished", "created", g.created)
		return g.transition(domain.PhaseComplete)
	})
	return nil
}

func (g *Train) hasCreated(animal string) bool {
	for _, a := range g.created {
		if a == animal {
			return true
		}
	}
	return false
}

// Reset returns to the intro video with all four pets untrained
func (g *Train) Reset() {
	g.resetBase(g.pets)
	g.awaiting = false
	g.chatBusy = false
	g.created = nil
	g.emit(domain.StateSynced{State: g.Snapshot()})
}

// Close stops every timer and sound for good
func (g *Train) Close() {
	g.close()
}

// Snapshot returns the current view state
func (g *Train) Snapshot() Snapshot {
	s := g.baseSnapshot()
	s.Train = &TrainState{
		AwaitingVerdict: g.awaiting,
		ChatBusy:        g.chatBusy,
		Generated:       append([]string{}, g.created...),
	}
	return s
}
