package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/highcard-game/highcard-server/internal/game"
	"github.com/highcard-game/highcard-server/internal/queue"
	queue_publisher "github.com/highcard-game/highcard-server/internal/service"
)

// GameHandler exposes game lifecycle and play endpoints on top of the
// game registry. All game-state decisions live in the engine; handlers
// only translate between HTTP and engine results.
type GameHandler struct {
	Games *game.Registry

	// PublishMoves mirrors accepted plays onto the message broker when
	// a broker is configured. Publishing is fire-and-forget.
	PublishMoves bool
}

func NewGameHandler(games *game.Registry) *GameHandler {
	if games == nil {
		panic("nil registry passed to NewGameHandler")
	}
	return &GameHandler{Games: games, PublishMoves: queue_publisher.Enabled()}
}

// Create handles POST /v1/games.
func (h *GameHandler) Create(c echo.Context) error {
	state := h.Games.Create()
	return c.JSON(http.StatusCreated, echo.Map{
		"game_id":       state.GameID,
		"status":        state.Status,
		"current_round": state.CurrentRound,
	})
}

// Get handles GET /v1/games/:id.
func (h *GameHandler) Get(c echo.Context) error {
	gameID, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid game id"})
	}
	state, err := h.Games.State(gameID)
	if err != nil {
		return gameError(c, err)
	}
	players := make([]echo.Map, 0, len(state.Players))
	for _, p := range state.Players {
		players = append(players, echo.Map{"player_id": p.PlayerID, "score": p.Score})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"game_id":       state.GameID,
		"status":        state.Status,
		"current_round": state.CurrentRound,
		"winner_id":     state.WinnerID,
		"players":       players,
	})
}

type joinReq struct {
	PlayerID uint64 `json:"player_id"`
}

// Join handles POST /v1/games/:id/join. Re-joining while already
// seated succeeds without creating a second seat.
func (h *GameHandler) Join(c echo.Context) error {
	gameID, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid game id"})
	}
	var req joinReq
	if err := c.Bind(&req); err != nil || req.PlayerID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "player_id is required"})
	}
	res, err := h.Games.Join(c.Request().Context(), gameID, req.PlayerID)
	if err != nil {
		return gameError(c, err)
	}
	if res.AlreadyJoined {
		return c.JSON(http.StatusOK, echo.Map{"game_id": gameID, "message": "already joined"})
	}
	return c.JSON(http.StatusOK, echo.Map{"game_id": gameID, "message": "joined"})
}

// Hand handles GET /v1/games/:id/hand/:player_id.
func (h *GameHandler) Hand(c echo.Context) error {
	gameID, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid game id"})
	}
	playerID, err := parseID(c.Param("player_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid player id"})
	}
	hand, err := h.Games.Hand(gameID, playerID)
	if err != nil {
		return gameError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"game_id":   gameID,
		"player_id": playerID,
		"hand":      hand,
	})
}

type playReq struct {
	PlayerID uint64 `json:"player_id"`
	CardCode string `json:"card_code"`
}

// Play handles POST /v1/games/:id/play. The response is either a
// waiting acknowledgment or the resolved round result; round
// resolution itself happens inside the engine the moment the second
// card lands.
func (h *GameHandler) Play(c echo.Context) error {
	gameID, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid game id"})
	}
	var req playReq
	if err := c.Bind(&req); err != nil || req.PlayerID == 0 || req.CardCode == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "player_id and card_code are required"})
	}
	res, err := h.Games.Play(c.Request().Context(), gameID, req.PlayerID, req.CardCode)
	if err != nil {
		return gameError(c, err)
	}

	if h.PublishMoves {
		ev := queue.MovePlayedEvent{
			GameID:      res.GameID,
			PlayerID:    res.PlayerID,
			RoundNumber: res.PlayedRound,
			CardCode:    res.CardCode,
			PlayedAt:    time.Now().UTC().Format(time.RFC3339),
		}
		go func() { _ = queue_publisher.PublishMovePlayed(context.Background(), ev) }()
	}

	if !res.Resolved {
		return c.JSON(http.StatusOK, echo.Map{"message": "card played, waiting opponent..."})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"winner": res.Winner,
		"round":  res.NewRound,
		"values": res.Values,
	})
}

func parseID(raw string) (uint64, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

// gameError maps engine sentinel errors onto the HTTP taxonomy:
// not found, conflict, invalid state. Anything else is opaque.
func gameError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, game.ErrGameNotFound),
		errors.Is(err, game.ErrPlayerNotFound),
		errors.Is(err, game.ErrSeatNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, game.ErrGameFull),
		errors.Is(err, game.ErrAlreadyPlayed),
		errors.Is(err, game.ErrCardNotInHand):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, game.ErrGameNotActive):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
