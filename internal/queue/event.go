// Package queue defines message payloads exchanged over the message broker.
package queue

// MovePlayedEvent is published after every accepted play. It carries
// enough for downstream consumers to build the audit trail or feed
// analytics without querying the primary store.
type MovePlayedEvent struct {
	GameID      uint64 `json:"game_id"`
	PlayerID    uint64 `json:"player_id"`
	RoundNumber int    `json:"round_number"`
	CardCode    string `json:"card_code"`
	PlayedAt    string `json:"played_at"`
}
