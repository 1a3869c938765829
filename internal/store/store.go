// Package store defines the persistence boundary for players and the
// move audit trail. In-memory game state is authoritative; these
// stores are the durable records behind it. Two implementations exist:
// the in-memory stores in this package (default, also used by tests)
// and the MySQL repositories in internal/repository.
package store

import (
	"context"
	"errors"
	"time"
)

// ErrPlayerNotFound is returned when no player exists for the given id.
var ErrPlayerNotFound = errors.New("player not found")

// Player is a registered player and their cumulative score across
// games. The score is mutated only by round-win increments.
type Player struct {
	ID    uint64
	Name  string
	Score int
}

// Move is one append-only audit record: who played which card in which
// round of which game. Records are never mutated and survive hand
// exhaustion.
type Move struct {
	ID          uint64
	GameID      uint64
	PlayerID    uint64
	RoundNumber int
	CardCode    string
	CreatedAt   time.Time
}

// PlayerStore persists registered players.
type PlayerStore interface {
	Create(ctx context.Context, name string) (Player, error)
	Get(ctx context.Context, id uint64) (Player, error)
	List(ctx context.Context) ([]Player, error)
	IncrementScore(ctx context.Context, id uint64) error
}

// MoveStore appends to the move log.
type MoveStore interface {
	Append(ctx context.Context, m Move) (uint64, error)
	ByGame(ctx context.Context, gameID uint64) ([]Move, error)
}
