package catalog

import "ailab/internal/domain"

// Animals the trainer knows about
const (
	AnimalCat = "cat"
	AnimalDog = "dog"
)

// Verdicts on the AI's guess
const (
	VerdictYes = "yes"
	VerdictNo  = "no"
)

func pet(key, label, emoji, animal, guess string) domain.Item {
	verdict := VerdictNo
	if animal == guess {
		verdict = VerdictYes
	}
	return domain.Item{
		Key:      key,
		Label:    label,
		Emoji:    emoji,
		Category: animal,
		Answer:   verdict,
		AIGuess:  guess,
	}
}

var pets = []domain.Item{
	pet("cat1", "Cat 1", "🐱", AnimalCat, AnimalCat),
	pet("cat2", "Cat 2", "🐈", AnimalCat, AnimalDog),
	pet("dog1", "Dog 1", "🐶", AnimalDog, AnimalDog),
	pet("dog2", "Dog 2", "🐕", AnimalDog, AnimalCat),
}

// Pets returns the training pictures. Half of the scripted guesses are
// wrong.
func Pets() []domain.Item {
	return append([]domain.Item(nil), pets...)
}

// AnimalImage is what the trainer "creates" when asked for animal
func AnimalImage(animal string) string {
	switch animal {
	case AnimalCat:
		return "🐱"
	case AnimalDog:
		return "🐶"
	default:
		return ""
	}
}
