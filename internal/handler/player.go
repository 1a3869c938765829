package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/highcard-game/highcard-server/internal/store"
)

// PlayerHandler exposes player registration and listing.
type PlayerHandler struct {
	Players store.PlayerStore
}

func NewPlayerHandler(players store.PlayerStore) *PlayerHandler {
	if players == nil {
		panic("nil player store passed to NewPlayerHandler")
	}
	return &PlayerHandler{Players: players}
}

type createPlayerReq struct {
	Name string `json:"name"`
}

// Create handles POST /v1/players. A blank name falls back to
// "Player", matching the registration contract.
func (h *PlayerHandler) Create(c echo.Context) error {
	var req createPlayerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = "Player"
	}
	p, err := h.Players.Create(c.Request().Context(), name)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create player failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"player_id": p.ID, "name": p.Name})
}

// List handles GET /v1/players.
func (h *PlayerHandler) List(c echo.Context) error {
	players, err := h.Players.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list players failed"})
	}
	out := make([]echo.Map, 0, len(players))
	for _, p := range players {
		out = append(out, echo.Map{"player_id": p.ID, "name": p.Name, "score": p.Score})
	}
	return c.JSON(http.StatusOK, out)
}
