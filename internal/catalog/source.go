// Package catalog owns the static content the games are built from.
package catalog

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"ailab/internal/domain"
)

// ErrNotEnoughItems is returned when a sample asks for more than exists
var ErrNotEnoughItems = errors.New("not enough catalog items")

// Source is a read-only list of T with random sampling
type Source[T any] struct {
	items []T
	rng   *rand.Rand
}

// NewSource copies items into a source sampling with rng
func NewSource[T any](items []T, rng *rand.Rand) *Source[T] {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Source[T]{
		items: append([]T(nil), items...),
		rng:   rng,
	}
}

// All returns every item in catalog order
func (s *Source[T]) All() []T {
	return append([]T(nil), s.items...)
}

// Len returns the number of items
func (s *Source[T]) Len() int {
	return len(s.items)
}

// Sample returns n distinct items in random order
func (s *Source[T]) Sample(n int) ([]T, error) {
	if n < 0 || n > len(s.items) {
		return nil, fmt.Errorf("%w: want %d, have %d", ErrNotEnoughItems, n, len(s.items))
	}
	out := s.All()
	s.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out[:n], nil
}

// SampleByCategory picks perCategory items from each category, then
// shuffles the combined selection.
func SampleByCategory(s *Source[domain.Item], categories []string, perCategory int) ([]domain.Item, error) {
	byCategory := make(map[string][]domain.Item, len(categories))
	for _, it := range s.items {
		byCategory[it.Category] = append(byCategory[it.Category], it)
	}

	selected := make([]domain.Item, 0, perCategory*len(categories))
	for _, c := range categories {
		sub, err := NewSource(byCategory[c], s.rng).Sample(perCategory)
		if err != nil {
			return nil, fmt.Errorf("category %q: %w", c, err)
		}
		selected = append(selected, sub...)
	}

	s.rng.Shuffle(len(selected), func(i, j int) { selected[i], selected[j] = selected[j], selected[i] })
	return selected, nil
}
