// ABOUTME: Flashcard deck navigation
// ABOUTME: Tracks the current card and whether its back is showing

package study

import "github.com/Zubimendi/neurostudy/cli/internal/client"

// Deck walks a list of flashcards one at a time
type Deck struct {
	cards   []client.Flashcard
	index   int
	flipped bool
}

// NewDeck creates a deck positioned on the first card
func NewDeck(cards []client.Flashcard) *Deck {
	return &Deck{cards: cards}
}

// Len returns the number of cards
func (d *Deck) Len() int { return len(d.cards) }

// Index returns the zero-based position of the current card
func (d *Deck) Index() int { return d.index }

// Flipped reports whether the back of the current card is showing
func (d *Deck) Flipped() bool { return d.flipped }

// Current returns the current card; ok is false for an empty deck
func (d *Deck) Current() (card client.Flashcard, ok bool) {
	if len(d.cards) == 0 {
		return client.Flashcard{}, false
	}
	return d.cards[d.index], true
}

// Face returns the text currently showing
func (d *Deck) Face() string {
	card, ok := d.Current()
	if !ok {
		return ""
	}
	if d.flipped {
		return card.Back
	}
	return card.Front
}

// Flip toggles between front and back
func (d *Deck) Flip() {
	if len(d.cards) > 0 {
		d.flipped = !d.flipped
	}
}

// Next moves forward one card. Returns false at the last card.
func (d *Deck) Next() bool {
	if d.index >= len(d.cards)-1 {
		return false
	}
	d.index++
	d.flipped = false
	return true
}

// Prev moves back one card. Returns false at the first card.
func (d *Deck) Prev() bool {
	if d.index == 0 {
		return false
	}
	d.index--
	d.flipped = false
	return true
}
