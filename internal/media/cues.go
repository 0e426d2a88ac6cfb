package media

import "fmt"

// Cue is a named playable resource
type Cue struct {
	Name     string  `json:"name"`
	Resource string  `json:"resource"`
	Volume   float64 `json:"volume"`
}

// Data Detective
var (
	SortCorrect = Cue{Name: "sort-correct", Resource: "/audio/correct2.mp3", Volume: 0.5}
	SortWrong   = Cue{Name: "sort-wrong", Resource: "/audio/wrong-buzz.mp3", Volume: 0.5}
)

// Spot the AI
var (
	QuizIntro   = Cue{Name: "quiz-intro", Resource: "/audio/guess-intro.mp3", Volume: 0.6}
	QuizCorrect = Cue{Name: "quiz-correct", Resource: "/audio/correct-ding.mp3", Volume: 0.7}
	QuizWrong   = Cue{Name: "quiz-wrong", Resource: "/audio/wrong-buzz.mp3", Volume: 0.5}
	QuizWin     = Cue{Name: "quiz-win", Resource: "/audio/win-m1.mp3", Volume: 0.8}
	QuizWinFx   = Cue{Name: "quiz-win-fx", Resource: "/audio/success.mp3", Volume: 0.8}
	QuizLose    = Cue{Name: "quiz-lose", Resource: "/audio/lost-m1.mp3", Volume: 0.6}
	QuizLoseFx  = Cue{Name: "quiz-lose-fx", Resource: "/audio/you-lost.mp3", Volume: 0.6}
)

// Teach the AI
var (
	TrainStart    = Cue{Name: "train-start", Resource: "/audio/lilly-start.mp3", Volume: 0.7}
	TrainFinal    = Cue{Name: "train-final", Resource: "/audio/lilly-final.mp3", Volume: 0.7}
	TrainThinking = Cue{Name: "train-thinking", Resource: "/audio/thinking-beep.mp3", Volume: 0.3}
	TrainCorrect  = Cue{Name: "train-correct", Resource: "/audio/correct-ding.mp3", Volume: 0.7}
	TrainWrong    = Cue{Name: "train-wrong", Resource: "/audio/wrong-buzz.mp3", Volume: 0.5}
	TrainSuccess  = Cue{Name: "train-success", Resource: "/audio/success.mp3", Volume: 0.8}
	TrainMeow     = Cue{Name: "train-meow", Resource: "/audio/cat-meow.mp3", Volume: 0.6}
	TrainBark     = Cue{Name: "train-bark", Resource: "/audio/dog-bark.mp3", Volume: 0.6}
)

const narrationVolume = 0.6

// QuestionNarration reads question n (1-based) aloud
func QuestionNarration(n int) Cue {
	return Cue{
		Name:     fmt.Sprintf("quiz-q%d", n),
		Resource: fmt.Sprintf("/audio/q%dm1.mp3", n),
		Volume:   narrationVolume,
	}
}

// AnswerNarration explains question n after a correct or wrong answer
func AnswerNarration(n int, correct bool) Cue {
	suffix := "wrong"
	if correct {
		suffix = "correct"
	}
	return Cue{
		Name:     fmt.Sprintf("quiz-q%d-%s", n, suffix),
		Resource: fmt.Sprintf("/audio/q%dm1-%s.mp3", n, suffix),
		Volume:   narrationVolume,
	}
}

// Cues lists every fixed cue plus narration for questions 1..questions
func Cues(questions int) []Cue {
	cues := []Cue{
		SortCorrect, SortWrong,
		QuizIntro, QuizCorrect, QuizWrong, QuizWin, QuizWinFx, QuizLose, QuizLoseFx,
		TrainStart, TrainFinal, TrainThinking, TrainCorrect, TrainWrong, TrainSuccess, TrainMeow, TrainBark,
	}
	for n := 1; n <= questions; n++ {
		cues = append(cues, QuestionNarration(n), AnswerNarration(n, true), AnswerNarration(n, false))
	}
	return cues
}
