// Package repository contains the MySQL-backed implementations of the
// store interfaces. In-memory game state stays authoritative; these
// repositories hold the durable records: registered players with their
// cumulative scores, and the append-only move log.
package repository

import (
	"context"
	"database/sql"

	"github.com/highcard-game/highcard-server/internal/store"
)

// PlayerRepo mirrors the 'players' table.
type PlayerRepo struct{ DB *sql.DB }

func NewPlayerRepo(db *sql.DB) *PlayerRepo { return &PlayerRepo{DB: db} }

// Create inserts a player with a zero score and returns the stored row.
func (r *PlayerRepo) Create(ctx context.Context, name string) (store.Player, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO players (name, score) VALUES (?, 0)", name)
	if err != nil {
		return store.Player{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return store.Player{}, err
	}
	return store.Player{ID: uint64(id), Name: name}, nil
}

// Get fetches a player by id.
func (r *PlayerRepo) Get(ctx context.Context, id uint64) (store.Player, error) {
	var p store.Player
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, name, score FROM players WHERE id=? LIMIT 1",
		id).Scan(&p.ID, &p.Name, &p.Score)
	if err == sql.ErrNoRows {
		return store.Player{}, store.ErrPlayerNotFound
	}
	return p, err
}

// List returns all players ordered by id.
func (r *PlayerRepo) List(ctx context.Context) ([]store.Player, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, name, score FROM players ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []store.Player
	for rows.Next() {
		var p store.Player
		if err := rows.Scan(&p.ID, &p.Name, &p.Score); err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

// IncrementScore adds one round win to the player's cumulative score.
func (r *PlayerRepo) IncrementScore(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE players SET score = score + 1 WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrPlayerNotFound
	}
	return nil
}
