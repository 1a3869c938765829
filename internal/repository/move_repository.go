package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/highcard-game/highcard-server/internal/store"
)

// MoveRepo mirrors the 'moves' table. Rows are append-only.
type MoveRepo struct{ DB *sql.DB }

func NewMoveRepo(db *sql.DB) *MoveRepo { return &MoveRepo{DB: db} }

// Append inserts one move record and returns its id.
func (r *MoveRepo) Append(ctx context.Context, m store.Move) (uint64, error) {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO moves (game_id, player_id, round_number, card_code, created_at) VALUES (?,?,?,?,?)",
		m.GameID, m.PlayerID, m.RoundNumber, m.CardCode, m.CreatedAt)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// ByGame returns a game's moves in append order.
func (r *MoveRepo) ByGame(ctx context.Context, gameID uint64) ([]store.Move, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, game_id, player_id, round_number, card_code, created_at FROM moves WHERE game_id=? ORDER BY id",
		gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var moves []store.Move
	for rows.Next() {
		var m store.Move
		if err := rows.Scan(&m.ID, &m.GameID, &m.PlayerID, &m.RoundNumber, &m.CardCode, &m.CreatedAt); err != nil {
			return nil, err
		}
		moves = append(moves, m)
	}
	return moves, rows.Err()
}
