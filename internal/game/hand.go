package game

import "github.com/highcard-game/highcard-server/internal/deck"

// Hand is a seat's set of unplayed cards. Hands are dealt once at join
// time and only ever shrink; a card removed on play is never returned.
type Hand struct {
	cards []deck.Card
}

// NewHand wraps dealt cards into a hand, preserving deal order.
func NewHand(cards []deck.Card) *Hand {
	h := &Hand{cards: make([]deck.Card, len(cards))}
	copy(h.cards, cards)
	return h
}

// Contains reports whether the card is still in the hand.
func (h *Hand) Contains(c deck.Card) bool {
	for _, held := range h.cards {
		if held == c {
			return true
		}
	}
	return false
}

// Remove takes the card out of the hand. Cards are unique per deal, so
// at most one entry matches. Returns ErrCardNotInHand when absent.
func (h *Hand) Remove(c deck.Card) error {
	for i, held := range h.cards {
		if held == c {
			h.cards = append(h.cards[:i], h.cards[i+1:]...)
			return nil
		}
	}
	return ErrCardNotInHand
}

// Codes returns the wire codes of the remaining cards in order.
func (h *Hand) Codes() []string {
	codes := make([]string, len(h.cards))
	for i, c := range h.cards {
		codes[i] = c.Code()
	}
	return codes
}

// Len returns the number of unplayed cards.
func (h *Hand) Len() int {
	return len(h.cards)
}
