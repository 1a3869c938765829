package game

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/highcard-game/highcard-server/internal/store"
)

// Registry owns every live game: an explicit mapping from game id to
// its engine. The map itself is guarded by a RWMutex; each engine
// serializes its own operations, so lookups stay cheap and games never
// block each other. The registry also bridges engines to the durable
// stores: it resolves players on join and mirrors move appends and
// score increments after plays. Mirror failures are logged and never
// rolled back into engine state.
type Registry struct {
	mu     sync.RWMutex
	nextID uint64
	games  map[uint64]*Engine

	players store.PlayerStore
	moves   store.MoveStore
	bc      Broadcaster
	logger  *log.Logger
}

// NewRegistry creates a registry wired to the given stores and
// broadcast gateway.
func NewRegistry(players store.PlayerStore, moves store.MoveStore, bc Broadcaster, logger *log.Logger) *Registry {
	if bc == nil {
		bc = NopBroadcaster{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Registry{
		games:   make(map[uint64]*Engine),
		players: players,
		moves:   moves,
		bc:      bc,
		logger:  logger.WithPrefix("registry"),
	}
}

// Create allocates a new waiting game and returns its snapshot.
func (r *Registry) Create() StatePayload {
	r.mu.Lock()
	r.nextID++
	eng := NewEngine(r.nextID, r.bc)
	r.games[eng.ID()] = eng
	r.mu.Unlock()
	return eng.Snapshot()
}

// Get returns the engine for a game id.
func (r *Registry) Get(gameID uint64) (*Engine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	eng, ok := r.games[gameID]
	if !ok {
		return nil, ErrGameNotFound
	}
	return eng, nil
}

// State returns the read-only projection of a game.
func (r *Registry) State(gameID uint64) (StatePayload, error) {
	eng, err := r.Get(gameID)
	if err != nil {
		return StatePayload{}, err
	}
	return eng.Snapshot(), nil
}

// Join seats a registered player in a game. The player's display name
// and cumulative score are read from the player store and carried onto
// the seat.
func (r *Registry) Join(ctx context.Context, gameID, playerID uint64) (JoinResult, error) {
	eng, err := r.Get(gameID)
	if err != nil {
		return JoinResult{}, err
	}
	p, err := r.players.Get(ctx, playerID)
	if err != nil {
		if err == store.ErrPlayerNotFound {
			return JoinResult{}, ErrPlayerNotFound
		}
		return JoinResult{}, err
	}
	return eng.Join(p.ID, p.Name, p.Score)
}

// Play submits a card for the player. On success the move is appended
// to the move log, and a resolved round with a winner increments that
// player's stored cumulative score.
func (r *Registry) Play(ctx context.Context, gameID, playerID uint64, cardCode string) (PlayResult, error) {
	eng, err := r.Get(gameID)
	if err != nil {
		return PlayResult{}, err
	}
	res, err := eng.Play(playerID, cardCode)
	if err != nil {
		return PlayResult{}, err
	}

	if _, err := r.moves.Append(ctx, store.Move{
		GameID:      res.GameID,
		PlayerID:    res.PlayerID,
		RoundNumber: res.PlayedRound,
		CardCode:    res.CardCode,
		CreatedAt:   time.Now().UTC(),
	}); err != nil {
		r.logger.Error("append move failed", "game_id", gameID, "player_id", playerID, "error", err)
	}

	if res.Resolved && res.Winner != nil {
		if err := r.players.IncrementScore(ctx, *res.Winner); err != nil {
			r.logger.Error("increment score failed", "player_id", *res.Winner, "error", err)
		}
	}
	return res, nil
}

// Hand returns the player's remaining cards in a game.
func (r *Registry) Hand(gameID, playerID uint64) ([]string, error) {
	eng, err := r.Get(gameID)
	if err != nil {
		return nil, err
	}
	return eng.HandCodes(playerID)
}
