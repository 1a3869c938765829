package store

import (
	"context"
	"sync"
	"time"
)

// MemoryPlayerStore keeps players in a map guarded by a RWMutex. IDs
// are allocated sequentially starting at 1.
type MemoryPlayerStore struct {
	mu      sync.RWMutex
	nextID  uint64
	players map[uint64]Player
}

// NewMemoryPlayerStore creates an empty in-memory player store.
func NewMemoryPlayerStore() *MemoryPlayerStore {
	return &MemoryPlayerStore{players: make(map[uint64]Player)}
}

func (s *MemoryPlayerStore) Create(_ context.Context, name string) (Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	p := Player{ID: s.nextID, Name: name}
	s.players[p.ID] = p
	return p, nil
}

func (s *MemoryPlayerStore) Get(_ context.Context, id uint64) (Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.players[id]
	if !ok {
		return Player{}, ErrPlayerNotFound
	}
	return p, nil
}

func (s *MemoryPlayerStore) List(_ context.Context) ([]Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	players := make([]Player, 0, len(s.players))
	for id := uint64(1); id <= s.nextID; id++ {
		if p, ok := s.players[id]; ok {
			players = append(players, p)
		}
	}
	return players, nil
}

func (s *MemoryPlayerStore) IncrementScore(_ context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.players[id]
	if !ok {
		return ErrPlayerNotFound
	}
	p.Score++
	s.players[id] = p
	return nil
}

// MemoryMoveStore keeps the move log as an append-only slice.
type MemoryMoveStore struct {
	mu     sync.RWMutex
	nextID uint64
	moves  []Move
}

// NewMemoryMoveStore creates an empty in-memory move log.
func NewMemoryMoveStore() *MemoryMoveStore {
	return &MemoryMoveStore{}
}

func (s *MemoryMoveStore) Append(_ context.Context, m Move) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	m.ID = s.nextID
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	s.moves = append(s.moves, m)
	return m.ID, nil
}

func (s *MemoryMoveStore) ByGame(_ context.Context, gameID uint64) ([]Move, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Move
	for _, m := range s.moves {
		if m.GameID == gameID {
			out = append(out, m)
		}
	}
	return out, nil
}
