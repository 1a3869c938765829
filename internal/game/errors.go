// Package game implements the round-resolution engine and game state
// machine for the two-player high-card duel. Sentinel errors defined
// here let handlers map engine failures onto HTTP status codes: not
// found (game, player, seat), conflict (full game, double play, card
// not held) and invalid state (game no longer playable). Every failed
// operation leaves game state untouched.
package game

import "errors"

// ErrGameNotFound is returned when no game exists for the given id.
var ErrGameNotFound = errors.New("game not found")

// ErrPlayerNotFound is returned when the joining player is not registered.
var ErrPlayerNotFound = errors.New("player not found")

// ErrSeatNotFound is returned when the player holds no seat in the game.
var ErrSeatNotFound = errors.New("player not in this game")

// ErrGameFull is returned when a third player attempts to join.
var ErrGameFull = errors.New("game is full (2 players max)")

// ErrGameNotActive is returned when a play is attempted against a
// finished game.
var ErrGameNotActive = errors.New("game is not active")

// ErrAlreadyPlayed is returned when a seat commits a second card
// before the current round resolves.
var ErrAlreadyPlayed = errors.New("already played this round")

// ErrCardNotInHand is returned when the submitted card code is not
// among the seat's unplayed cards.
var ErrCardNotInHand = errors.New("card not in player hand")
