package game

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/highcard-game/highcard-server/internal/deck"
)

// HandSize is the number of cards dealt to each seat at join time.
// Hands are never replenished.
const HandSize = 5

// Status is the lifecycle state of a game.
type Status string

const (
	StatusWaiting    Status = "waiting"
	StatusInProgress Status = "in_progress"
	StatusFinished   Status = "finished"
)

// Seat binds one player to one game: identity, running score, the
// private hand and the single pending play for the current round.
type Seat struct {
	PlayerID uint64
	Name     string
	Score    int
	Hand     *Hand
	Played   *deck.Card
}

// JoinResult reports the outcome of a join. Re-joining a game the
// player is already seated in is a no-op, not an error.
type JoinResult struct {
	AlreadyJoined bool
}

// PlayResult reports the outcome of a play. When Resolved is false the
// caller is waiting on the opponent and only PlayedRound/CardCode are
// meaningful. When Resolved is true, Winner is nil on a tie and Values
// holds both played values keyed by player id.
type PlayResult struct {
	GameID      uint64
	PlayerID    uint64
	CardCode    string
	PlayedRound int
	Resolved    bool
	Winner      *uint64
	Values      map[string]int
	NewRound    int
}

// Engine owns all mutable state of a single game: both seats, the
// remaining deck, the round counter and the status. Every operation
// runs under the engine's lock, so the two players' request paths are
// serialized per game while distinct games proceed fully in parallel.
// Events are emitted before the lock is released, keeping broadcast
// order consistent with state order.
type Engine struct {
	mu       sync.Mutex
	id       uint64
	status   Status
	round    int
	winnerID *uint64
	seats    []*Seat
	deck     *deck.Deck
	bc       Broadcaster
}

// NewEngine creates an empty waiting game backed by a fresh shuffled
// deck. Both hands are dealt from this one deck, so no card can appear
// twice across the game.
func NewEngine(id uint64, bc Broadcaster) *Engine {
	if bc == nil {
		bc = NopBroadcaster{}
	}
	return &Engine{
		id:     id,
		status: StatusWaiting,
		round:  1,
		deck:   deck.NewShuffled(),
		bc:     bc,
	}
}

// ID returns the game id.
func (e *Engine) ID() uint64 {
	return e.id
}

// Join seats a player, dealing a fresh hand. The second join moves the
// game to in_progress. Joining again while already seated is a no-op.
func (e *Engine) Join(playerID uint64, name string, score int) (JoinResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.seatOf(playerID) != nil {
		return JoinResult{AlreadyJoined: true}, nil
	}
	if len(e.seats) >= 2 {
		return JoinResult{}, ErrGameFull
	}
	cards, err := e.deck.Deal(HandSize)
	if err != nil {
		return JoinResult{}, err
	}
	e.seats = append(e.seats, &Seat{
		PlayerID: playerID,
		Name:     name,
		Score:    score,
		Hand:     NewHand(cards),
	})
	if len(e.seats) == 2 {
		e.status = StatusInProgress
	}

	e.bc.Publish(Room(e.id), EventSystem, SystemPayload{
		Message: fmt.Sprintf("Player %d joined game %d", playerID, e.id),
	})
	e.bc.Publish(Room(e.id), EventGameUpdate, e.snapshotLocked())
	return JoinResult{}, nil
}

// Play commits a card for the player's seat. The card leaves the hand
// immediately and a card_played event goes out whether or not the
// round resolves. The instant the second seat's pending play is set,
// the round resolves within the same call: values are compared, the
// strictly higher value scores a point, the round counter advances and
// both pending plays reset. Ties score nobody. There is no separate
// resolve step and no timeout; an unanswered play stays pending
// indefinitely.
func (e *Engine) Play(playerID uint64, code string) (PlayResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	seat := e.seatOf(playerID)
	if seat == nil {
		return PlayResult{}, ErrSeatNotFound
	}
	if e.status != StatusWaiting && e.status != StatusInProgress {
		return PlayResult{}, ErrGameNotActive
	}
	if seat.Played != nil {
		return PlayResult{}, ErrAlreadyPlayed
	}
	card, err := deck.Parse(code)
	if err != nil {
		// An unparseable code cannot be in any hand.
		return PlayResult{}, ErrCardNotInHand
	}
	if err := seat.Hand.Remove(card); err != nil {
		return PlayResult{}, err
	}
	seat.Played = &card

	res := PlayResult{
		GameID:      e.id,
		PlayerID:    playerID,
		CardCode:    card.Code(),
		PlayedRound: e.round,
	}
	e.bc.Publish(Room(e.id), EventGameUpdate, CardPlayedPayload{
		Type:     UpdateCardPlayed,
		GameID:   e.id,
		PlayerID: playerID,
		CardCode: card.Code(),
		Round:    e.round,
	})

	if len(e.seats) < 2 || e.seats[0].Played == nil || e.seats[1].Played == nil {
		return res, nil
	}
	e.resolveLocked(&res)
	return res, nil
}

// resolveLocked compares the two pending plays and advances the game.
// Caller holds the lock and guarantees both seats have played.
func (e *Engine) resolveLocked(res *PlayResult) {
	s1, s2 := e.seats[0], e.seats[1]
	v1, v2 := s1.Played.Value(), s2.Played.Value()

	var winner *uint64
	switch {
	case v1 > v2:
		s1.Score++
		winner = &s1.PlayerID
	case v2 > v1:
		s2.Score++
		winner = &s2.PlayerID
	}

	e.round++
	e.status = StatusInProgress
	s1.Played, s2.Played = nil, nil

	res.Resolved = true
	res.Winner = winner
	res.NewRound = e.round
	res.Values = map[string]int{
		strconv.FormatUint(s1.PlayerID, 10): v1,
		strconv.FormatUint(s2.PlayerID, 10): v2,
	}

	e.bc.Publish(Room(e.id), EventGameUpdate, RoundResultPayload{
		Type:   UpdateRoundResult,
		GameID: e.id,
		Winner: winner,
		Values: res.Values,
		Round:  e.round,
	})
	e.bc.Publish(Room(e.id), EventGameUpdate, e.snapshotLocked())
}

// HandCodes returns the player's remaining cards in deal order.
func (e *Engine) HandCodes(playerID uint64) ([]string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	seat := e.seatOf(playerID)
	if seat == nil {
		return nil, ErrSeatNotFound
	}
	return seat.Hand.Codes(), nil
}

// Snapshot assembles the read-only state projection pushed to rooms
// and served on state reads.
func (e *Engine) Snapshot() StatePayload {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

func (e *Engine) snapshotLocked() StatePayload {
	players := make([]PlayerState, 0, len(e.seats))
	for _, s := range e.seats {
		players = append(players, PlayerState{
			PlayerID: s.PlayerID,
			Name:     s.Name,
			Score:    s.Score,
		})
	}
	return StatePayload{
		Type:         UpdateState,
		GameID:       e.id,
		Status:       e.status,
		CurrentRound: e.round,
		WinnerID:     e.winnerID,
		Players:      players,
	}
}

// seatOf returns the player's seat, or nil. Caller holds the lock.
func (e *Engine) seatOf(playerID uint64) *Seat {
	for _, s := range e.seats {
		if s.PlayerID == playerID {
			return s
		}
	}
	return nil
}
