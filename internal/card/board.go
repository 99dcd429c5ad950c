package card

import (
	"slices"
	"sync"
)

// Board is the ordered presentation surface. It holds at most one card per
// card ID; the local card, when present, is kept first.
type Board struct {
	mu      sync.RWMutex
	cards   []*Card
	loading int
}

func NewBoard() *Board {
	return &Board{}
}

func (b *Board) index(id string) int {
	return slices.IndexFunc(b.cards, func(c *Card) bool { return c.ID == id })
}

// Has reports whether a card with id is displayed.
func (b *Board) Has(id string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.index(id) >= 0
}

// Remove takes the card with id off the board. It reports whether one was present.
func (b *Board) Remove(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.index(id)
	if i < 0 {
		return false
	}
	b.cards = slices.Delete(b.cards, i, i+1)
	return true
}

// Prepend inserts c at the front, evicting any card with the same ID first.
func (b *Board) Prepend(c *Card) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if i := b.index(c.ID); i >= 0 {
		b.cards = slices.Delete(b.cards, i, i+1)
	}
	b.cards = slices.Insert(b.cards, 0, c)
}

// Append inserts c at the end, evicting any card with the same ID first.
func (b *Board) Append(c *Card) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if i := b.index(c.ID); i >= 0 {
		b.cards = slices.Delete(b.cards, i, i+1)
	}
	b.cards = append(b.cards, c)
}

// Cards returns the displayed cards in order.
func (b *Board) Cards() []*Card {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.cards)
}

// Get returns the card with id, if displayed.
func (b *Board) Get(id string) (*Card, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if i := b.index(id); i >= 0 {
		return b.cards[i], true
	}
	return nil, false
}

// StartLoading shows the loading indicator until the returned func is called.
// The release func is safe to call more than once.
func (b *Board) StartLoading() (done func()) {
	b.mu.Lock()
	b.loading++
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			b.loading--
			b.mu.Unlock()
		})
	}
}

// Loading reports whether any loading indicator is shown.
func (b *Board) Loading() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.loading > 0
}
