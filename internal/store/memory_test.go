package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryPlayerStore(t *testing.T) {
	s := NewMemoryPlayerStore()
	ctx := context.Background()

	alice, err := s.Create(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), alice.ID)
	assert.Zero(t, alice.Score)

	bob, err := s.Create(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), bob.ID)

	_, err = s.Get(ctx, 99)
	require.ErrorIs(t, err, ErrPlayerNotFound)

	require.NoError(t, s.IncrementScore(ctx, alice.ID))
	require.NoError(t, s.IncrementScore(ctx, alice.ID))
	require.ErrorIs(t, s.IncrementScore(ctx, 99), ErrPlayerNotFound)

	got, err := s.Get(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Score)

	players, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, players, 2)
	assert.Equal(t, "alice", players[0].Name)
	assert.Equal(t, "bob", players[1].Name)
}

func TestMemoryMoveStore(t *testing.T) {
	s := NewMemoryMoveStore()
	ctx := context.Background()

	id1, err := s.Append(ctx, Move{GameID: 1, PlayerID: 1, RoundNumber: 1, CardCode: "AS"})
	require.NoError(t, err)
	id2, err := s.Append(ctx, Move{GameID: 1, PlayerID: 2, RoundNumber: 1, CardCode: "KH"})
	require.NoError(t, err)
	_, err = s.Append(ctx, Move{GameID: 2, PlayerID: 1, RoundNumber: 1, CardCode: "2C"})
	require.NoError(t, err)
	assert.Less(t, id1, id2)

	moves, err := s.ByGame(ctx, 1)
	require.NoError(t, err)
	require.Len(t, moves, 2)
	assert.Equal(t, "AS", moves[0].CardCode)
	assert.Equal(t, "KH", moves[1].CardCode)
	assert.False(t, moves[0].CreatedAt.IsZero())

	empty, err := s.ByGame(ctx, 42)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
