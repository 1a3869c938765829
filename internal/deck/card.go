package deck

import (
	"fmt"
	"strings"
)

// Suit represents a card suit.
type Suit int

const (
	Hearts Suit = iota
	Diamonds
	Clubs
	Spades
)

// String returns the single-letter suit code used on the wire.
func (s Suit) String() string {
	switch s {
	case Hearts:
		return "H"
	case Diamonds:
		return "D"
	case Clubs:
		return "C"
	case Spades:
		return "S"
	default:
		return "?"
	}
}

// Rank represents a card rank. The underlying int is the comparison
// value: 2-10 literal, Jack 11, Queen 12, King 13, Ace 14.
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// String returns the rank code used on the wire ("2".."10", "J", "Q", "K", "A").
func (r Rank) String() string {
	switch {
	case r >= Two && r <= Ten:
		return fmt.Sprintf("%d", int(r))
	case r == Jack:
		return "J"
	case r == Queen:
		return "Q"
	case r == King:
		return "K"
	case r == Ace:
		return "A"
	default:
		return "?"
	}
}

// Card is an immutable rank-suit pair.
type Card struct {
	Rank Rank
	Suit Suit
}

// Code returns the wire code of the card, e.g. "QH" or "10C".
func (c Card) Code() string {
	return c.Rank.String() + c.Suit.String()
}

// String implements fmt.Stringer using the wire code.
func (c Card) String() string {
	return c.Code()
}

// Value returns the numeric value used to compare cards. Aces are high.
func (c Card) Value() int {
	return int(c.Rank)
}

var suitByCode = map[byte]Suit{'H': Hearts, 'D': Diamonds, 'C': Clubs, 'S': Spades}

var rankByCode = map[string]Rank{
	"2": Two, "3": Three, "4": Four, "5": Five, "6": Six, "7": Seven,
	"8": Eight, "9": Nine, "10": Ten, "J": Jack, "Q": Queen, "K": King, "A": Ace,
}

// Parse converts a wire code like "as", "KH" or "10c" into a Card.
// Codes are case-insensitive; the suit is always the last character.
func Parse(code string) (Card, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) < 2 {
		return Card{}, fmt.Errorf("invalid card code %q", code)
	}
	suit, ok := suitByCode[code[len(code)-1]]
	if !ok {
		return Card{}, fmt.Errorf("invalid suit in card code %q", code)
	}
	rank, ok := rankByCode[code[:len(code)-1]]
	if !ok {
		return Card{}, fmt.Errorf("invalid rank in card code %q", code)
	}
	return Card{Rank: rank, Suit: suit}, nil
}
