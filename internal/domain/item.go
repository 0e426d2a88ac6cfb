package domain

// Difficulty grades a quiz scenario
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Item is one immutable unit of content the player sorts, judges or
// teaches. Category and Answer decide correctness and are never sent to
// the view.
type Item struct {
	Key         string     `json:"key"`
	Label       string     `json:"label"`
	Emoji       string     `json:"emoji"`
	Category    string     `json:"-"`
	Answer      string     `json:"-"`
	Explanation string     `json:"-"`
	Difficulty  Difficulty `json:"difficulty,omitempty"`
	AIGuess     string     `json:"-"` // Scripted, possibly wrong, classifier guess; revealed by the trainer message
}

// ItemKeys returns the keys of items in order
func ItemKeys(items []Item) []string {
	keys := make([]string, 0, len(items))
	for _, it := range items {
		keys = append(keys, it.Key)
	}
	return keys
}
