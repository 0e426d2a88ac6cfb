package catalog

import (
	"fmt"

	"ailab/internal/domain"
)

// Data categories
const (
	CategoryPicture = "picture"
	CategoryWord    = "word"
	CategorySound   = "sound"
	CategoryNumber  = "number"
)

// Category describes one sorting zone
type Category struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Emoji string `json:"emoji"`
}

var dataCategories = []Category{
	{Key: CategoryPicture, Name: "Picture Data", Color: "#3b82f6", Emoji: "🖼️"},
	{Key: CategoryWord, Name: "Word Data", Color: "#10b981", Emoji: "📝"},
	{Key: CategorySound, Name: "Sound Data", Color: "#f59e0b", Emoji: "🔊"},
	{Key: CategoryNumber, Name: "Number Data", Color: "#ef4444", Emoji: "🔢"},
}

// DataCategories returns the four sorting zones in display order
func DataCategories() []Category {
	return append([]Category(nil), dataCategories...)
}

// DataCategoryKeys returns the zone names
func DataCategoryKeys() []string {
	keys := make([]string, 0, len(dataCategories))
	for _, c := range dataCategories {
		keys = append(keys, c.Key)
	}
	return keys
}

// DataCategory looks up a zone by key
func DataCategory(key string) (Category, bool) {
	for _, c := range dataCategories {
		if c.Key == key {
			return c, true
		}
	}
	return Category{}, false
}

func dataItem(id int, label, emoji, category, description string) domain.Item {
	return domain.Item{
		Key:         fmt.Sprintf("data-%d", id),
		Label:       label,
		Emoji:       emoji,
		Category:    category,
		Answer:      category,
		Explanation: description,
	}
}

var dataItems = []domain.Item{
	dataItem(1, "Family vacation photo", "📷", CategoryPicture, "A photo showing visual information"),
	dataItem(2, "Camera shot of House", "🏠", CategoryPicture, "A photograph with visual data"),
	dataItem(3, "Painting of a sunset", "🎨", CategoryPicture, "Artistic visual content"),
	dataItem(4, "Picture of Bar Graph", "📊", CategoryPicture, "Visual representation of data"),

	dataItem(5, "Story from a book", "📖", CategoryWord, "Text and language content"),
	dataItem(6, "Text message conversation", "💬", CategoryWord, "Written communication data"),
	dataItem(7, "Newspaper headline", "📰", CategoryWord, "News text information"),
	dataItem(8, "Shopping list", "📝", CategoryWord, "Written list of items"),

	dataItem(9, "Favorite song", "🎵", CategorySound, "Musical audio content"),
	dataItem(10, "Voice recording", "🗣️", CategorySound, "Spoken audio information"),
	dataItem(11, "Dog barking sound", "🐕", CategorySound, "Animal audio data"),
	dataItem(12, "Rain falling audio", "🌧️", CategorySound, "Environmental sound data"),

	dataItem(13, "Temperature readings", "🌡️", CategoryNumber, "Numerical measurement data"),
	dataItem(14, "Test scores", "📈", CategoryNumber, "Performance number data"),
	dataItem(15, "Price list", "💰", CategoryNumber, "Cost information in numbers"),
	dataItem(16, "Time schedule", "⏰", CategoryNumber, "Time-based numerical data"),
}

// DataItems returns the full sorting catalog
func DataItems() []domain.Item {
	return append([]domain.Item(nil), dataItems...)
}

var aiSymbols = map[string][]string{
	CategoryPicture: {"🖼️", "📸", "🎨", "🌅", "🏔️", "🌈", "🎭", "🖌️"},
	CategoryWord:    {"📜", "✍️", "📚", "💭", "🗨️", "📝", "✨", "🎪"},
	CategorySound:   {"🎼", "🎶", "🔊", "🎤", "🎸", "🥁", "🎺", "🎧"},
	CategoryNumber:  {"📊", "📈", "🔢", "💯", "⚡", "🎯", "📐", "🧮"},
}

// Symbols returns the symbols the "AI" picks from when generating an
// example of category.
func Symbols(category string) []string {
	return append([]string(nil), aiSymbols[category]...)
}
