package game

import "fmt"

// Event names pushed to the broadcast gateway. Rooms are scoped per
// game; every subscriber of a room receives every event published to it.
const (
	EventSystem     = "system"
	EventGameUpdate = "game_update"
)

// game_update subtypes.
const (
	UpdateState       = "state"
	UpdateCardPlayed  = "card_played"
	UpdateRoundResult = "round_result"
)

// Broadcaster is the abstract sink the engine notifies on state
// changes. Implementations (websocket hub, redis pub/sub) fan events
// out to room subscribers. Publishing is fire-and-forget: delivery
// failures never affect committed game state.
type Broadcaster interface {
	Publish(room, event string, payload any)
}

// NopBroadcaster discards all events. Useful in tests and as a default.
type NopBroadcaster struct{}

func (NopBroadcaster) Publish(string, string, any) {}

// Room returns the broadcast room name for a game.
func Room(gameID uint64) string {
	return fmt.Sprintf("game_%d", gameID)
}

// SystemPayload carries a free-text notice to a room.
type SystemPayload struct {
	Message string `json:"message"`
}

// PlayerState is one player's entry in a state snapshot.
type PlayerState struct {
	PlayerID uint64 `json:"player_id"`
	Name     string `json:"name"`
	Score    int    `json:"score"`
}

// StatePayload is the full read-only projection of a game, emitted
// after every state-altering operation.
type StatePayload struct {
	Type         string        `json:"type"`
	GameID       uint64        `json:"game_id"`
	Status       Status        `json:"status"`
	CurrentRound int           `json:"current_round"`
	WinnerID     *uint64       `json:"winner_id"`
	Players      []PlayerState `json:"players"`
}

// CardPlayedPayload notifies the room that a seat committed a card,
// independent of whether the round resolved.
type CardPlayedPayload struct {
	Type     string `json:"type"`
	GameID   uint64 `json:"game_id"`
	PlayerID uint64 `json:"player_id"`
	CardCode string `json:"card_code"`
	Round    int    `json:"round"`
}

// RoundResultPayload reports a resolved round: the winner (nil on a
// tie), both played values keyed by player id, and the next round
// number.
type RoundResultPayload struct {
	Type   string         `json:"type"`
	GameID uint64         `json:"game_id"`
	Winner *uint64        `json:"winner"`
	Values map[string]int `json:"values"`
	Round  int            `json:"round"`
}
