package catalog

import "ailab/internal/domain"

// Quiz answers
const (
	AnswerAI    = "ai"
	AnswerNotAI = "not_ai"
)

var quizQuestions = []domain.Item{
	{
		Key:         "q1",
		Label:       "Your mom uses a regular flashlight to see in the dark",
		Emoji:       "🔦",
		Answer:      AnswerNotAI,
		Explanation: "A regular flashlight is just a simple light bulb and battery - no AI needed! It just turns on and off.",
		Difficulty:  domain.DifficultyEasy,
	},
	{
		Key:         "q2",
		Label:       "YouTube recommends a funny cat video you end up loving",
		Emoji:       "📱",
		Answer:      AnswerAI,
		Explanation: "YouTube uses AI to learn what you like and recommend videos just for you! It studies your viewing habits.",
		Difficulty:  domain.DifficultyEasy,
	},
	{
		Key:         "q3",
		Label:       "Your father turns on the car with his key",
		Emoji:       "🚗",
		Answer:      AnswerNotAI,
		Explanation: "Using a key to start a car is just a mechanical process - no AI involved, just metal and mechanics!",
		Difficulty:  domain.DifficultyEasy,
	},
	{
		Key:         "q4",
		Label:       "You ask Siri to tell you a funny joke",
		Emoji:       "🗣️",
		Answer:      AnswerAI,
		Explanation: "Siri uses AI to understand your voice and language, then thinks of a response! Voice assistants are AI helpers.",
		Difficulty:  domain.DifficultyEasy,
	},
	{
		Key:         "q5",
		Label:       "Your family's robot vacuum cleans around your toys without knocking them over",
		Emoji:       "🤖",
		Answer:      AnswerAI,
		Explanation: "Robot vacuums use AI to 'see' and navigate around objects! They learn the layout of your home and avoid obstacles.",
		Difficulty:  domain.DifficultyMedium,
	},
}

// QuizQuestions returns the scenarios in play order
func QuizQuestions() []domain.Item {
	return append([]domain.Item(nil), quizQuestions...)
}
