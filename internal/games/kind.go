package games

import (
	"fmt"

	"ailab/internal/domain"
)

// Kind names one of the mini-games
type Kind string

const (
	KindSorting Kind = "sorting" // Data Detective
	KindQuiz    Kind = "quiz"    // Spot the AI
	KindTrain   Kind = "train"   // Teach the AI
)

// Info describes a game on the menu
type Info struct {
	Kind        Kind   `json:"kind"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Emoji       string `json:"emoji"`
}

var menu = []Info{
	{Kind: KindSorting, Title: "Data Detective", Description: "Sort data into picture, word, sound and number, then ask the AI to make its own.", Emoji: "🔍"},
	{Kind: KindQuiz, Title: "Spot the AI", Description: "Five everyday situations. Which ones use AI?", Emoji: "🤔"},
	{Kind: KindTrain, Title: "Teach the AI", Description: "Check the AI's guesses about cats and dogs, then ask it to create one.", Emoji: "🐾"},
}

// Menu lists the games in display order
func Menu() []Info {
	return append([]Info(nil), menu...)
}

// ParseKind validates a game name
func ParseKind(s string) (Kind, error) {
	for _, info := range menu {
		if string(info.Kind) == s {
			return info.Kind, nil
		}
	}
	return "", fmt.Errorf("%w: %q", domain.ErrUnknownGame, s)
}
