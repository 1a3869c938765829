package deck

import (
	"errors"
	"math/rand"
	"time"
)

// ErrInsufficientCards is returned by Deal when the deck holds fewer
// cards than requested.
var ErrInsufficientCards = errors.New("not enough cards left in deck")

// Deck is an ordered sequence of cards. It is consumed by dealing and
// never replenished.
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// New creates a full 52-card deck in generation order.
func New() *Deck {
	d := &Deck{
		cards: make([]Card, 0, 52),
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for suit := Hearts; suit <= Spades; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			d.cards = append(d.cards, Card{Rank: rank, Suit: suit})
		}
	}
	return d
}

// NewShuffled creates a full deck and shuffles it.
func NewShuffled() *Deck {
	d := New()
	d.Shuffle()
	return d
}

// Shuffle permutes the remaining cards uniformly at random.
func (d *Deck) Shuffle() {
	d.rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Deal removes and returns the first n cards. The deck is left
// untouched when it holds fewer than n cards.
func (d *Deck) Deal(n int) ([]Card, error) {
	if n > len(d.cards) {
		return nil, ErrInsufficientCards
	}
	dealt := make([]Card, n)
	copy(dealt, d.cards[:n])
	d.cards = d.cards[n:]
	return dealt, nil
}

// Remaining returns the number of cards left in the deck.
func (d *Deck) Remaining() int {
	return len(d.cards)
}
