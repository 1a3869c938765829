package handler_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/highcard-game/highcard-server/internal/deck"
	"github.com/highcard-game/highcard-server/internal/game"
	"github.com/highcard-game/highcard-server/internal/handler"
	"github.com/highcard-game/highcard-server/internal/router"
	"github.com/highcard-game/highcard-server/internal/store"
)

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	players := store.NewMemoryPlayerStore()
	moves := store.NewMemoryMoveStore()
	registry := game.NewRegistry(players, moves, game.NopBroadcaster{}, nil)

	e := echo.New()
	passthrough := func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	router.RegisterAPI(e, handler.NewPlayerHandler(players), handler.NewGameHandler(registry), passthrough)
	return e
}

func doJSON(t *testing.T, e *echo.Echo, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	out := map[string]any{}
	if rec.Body.Len() > 0 && strings.HasPrefix(rec.Body.String(), "{") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec, out
}

func TestCreatePlayer(t *testing.T) {
	e := newTestServer(t)

	rec, body := doJSON(t, e, http.MethodPost, "/v1/players", `{"name":"alice"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, float64(1), body["player_id"])
	assert.Equal(t, "alice", body["name"])

	// Blank names fall back to the default.
	rec, body = doJSON(t, e, http.MethodPost, "/v1/players", `{"name":"  "}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Player", body["name"])

	rec, _ = doJSON(t, e, http.MethodGet, "/v1/players", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	var players []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &players))
	assert.Len(t, players, 2)
}

func TestGameLifecycle(t *testing.T) {
	e := newTestServer(t)

	doJSON(t, e, http.MethodPost, "/v1/players", `{"name":"alice"}`)
	doJSON(t, e, http.MethodPost, "/v1/players", `{"name":"bob"}`)
	doJSON(t, e, http.MethodPost, "/v1/players", `{"name":"carol"}`)

	rec, body := doJSON(t, e, http.MethodPost, "/v1/games", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "waiting", body["status"])
	assert.Equal(t, float64(1), body["current_round"])
	gameID := int(body["game_id"].(float64))

	rec, body = doJSON(t, e, http.MethodPost, fmt.Sprintf("/v1/games/%d/join", gameID), `{"player_id":1}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "joined", body["message"])

	// Re-join is an idempotent no-op.
	rec, body = doJSON(t, e, http.MethodPost, fmt.Sprintf("/v1/games/%d/join", gameID), `{"player_id":1}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "already joined", body["message"])

	rec, _ = doJSON(t, e, http.MethodPost, fmt.Sprintf("/v1/games/%d/join", gameID), `{"player_id":2}`)
	require.Equal(t, http.StatusOK, rec.Code)

	// Two seats filled: the third join is a conflict.
	rec, _ = doJSON(t, e, http.MethodPost, fmt.Sprintf("/v1/games/%d/join", gameID), `{"player_id":3}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, body = doJSON(t, e, http.MethodGet, fmt.Sprintf("/v1/games/%d", gameID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "in_progress", body["status"])
	assert.Nil(t, body["winner_id"])
	assert.Len(t, body["players"], 2)
}

func TestGameNotFound(t *testing.T) {
	e := newTestServer(t)

	rec, _ := doJSON(t, e, http.MethodGet, "/v1/games/42", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = doJSON(t, e, http.MethodPost, "/v1/games/42/join", `{"player_id":1}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = doJSON(t, e, http.MethodPost, "/v1/games/42/play", `{"player_id":1,"card_code":"AS"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestJoinUnknownPlayer(t *testing.T) {
	e := newTestServer(t)
	_, body := doJSON(t, e, http.MethodPost, "/v1/games", "")
	gameID := int(body["game_id"].(float64))

	rec, _ := doJSON(t, e, http.MethodPost, fmt.Sprintf("/v1/games/%d/join", gameID), `{"player_id":9}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandEndpoint(t *testing.T) {
	e := newTestServer(t)
	doJSON(t, e, http.MethodPost, "/v1/players", `{"name":"alice"}`)
	doJSON(t, e, http.MethodPost, "/v1/players", `{"name":"bob"}`)
	_, body := doJSON(t, e, http.MethodPost, "/v1/games", "")
	gameID := int(body["game_id"].(float64))
	doJSON(t, e, http.MethodPost, fmt.Sprintf("/v1/games/%d/join", gameID), `{"player_id":1}`)

	rec, body := doJSON(t, e, http.MethodGet, fmt.Sprintf("/v1/games/%d/hand/1", gameID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["hand"], game.HandSize)

	// Player 2 registered but never joined: no seat.
	rec, _ = doJSON(t, e, http.MethodGet, fmt.Sprintf("/v1/games/%d/hand/2", gameID), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPlayFlow(t *testing.T) {
	e := newTestServer(t)
	doJSON(t, e, http.MethodPost, "/v1/players", `{"name":"alice"}`)
	doJSON(t, e, http.MethodPost, "/v1/players", `{"name":"bob"}`)
	_, body := doJSON(t, e, http.MethodPost, "/v1/games", "")
	gameID := int(body["game_id"].(float64))
	doJSON(t, e, http.MethodPost, fmt.Sprintf("/v1/games/%d/join", gameID), `{"player_id":1}`)
	doJSON(t, e, http.MethodPost, fmt.Sprintf("/v1/games/%d/join", gameID), `{"player_id":2}`)

	hand := func(playerID int) []string {
		rec, body := doJSON(t, e, http.MethodGet, fmt.Sprintf("/v1/games/%d/hand/%d", gameID, playerID), "")
		require.Equal(t, http.StatusOK, rec.Code)
		raw := body["hand"].([]any)
		codes := make([]string, len(raw))
		for i, v := range raw {
			codes[i] = v.(string)
		}
		return codes
	}
	h1, h2 := hand(1), hand(2)

	// A card outside the hand is a conflict and changes nothing.
	rec, _ := doJSON(t, e, http.MethodPost, fmt.Sprintf("/v1/games/%d/play", gameID), `{"player_id":1,"card_code":"XX"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, h1, hand(1))

	rec, body = doJSON(t, e, http.MethodPost, fmt.Sprintf("/v1/games/%d/play", gameID),
		fmt.Sprintf(`{"player_id":1,"card_code":"%s"}`, h1[0]))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "card played, waiting opponent...", body["message"])

	// Second card from the same seat before resolution.
	rec, _ = doJSON(t, e, http.MethodPost, fmt.Sprintf("/v1/games/%d/play", gameID),
		fmt.Sprintf(`{"player_id":1,"card_code":"%s"}`, h1[1]))
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, body = doJSON(t, e, http.MethodPost, fmt.Sprintf("/v1/games/%d/play", gameID),
		fmt.Sprintf(`{"player_id":2,"card_code":"%s"}`, h2[0]))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(2), body["round"])

	// The winner follows the card values regardless of who it is.
	c1, err := deck.Parse(h1[0])
	require.NoError(t, err)
	c2, err := deck.Parse(h2[0])
	require.NoError(t, err)
	switch {
	case c1.Value() > c2.Value():
		assert.Equal(t, float64(1), body["winner"])
	case c2.Value() > c1.Value():
		assert.Equal(t, float64(2), body["winner"])
	default:
		assert.Nil(t, body["winner"])
	}
	values := body["values"].(map[string]any)
	assert.Equal(t, float64(c1.Value()), values["1"])
	assert.Equal(t, float64(c2.Value()), values["2"])

	// The played cards left both hands.
	assert.NotContains(t, hand(1), h1[0])
	assert.NotContains(t, hand(2), h2[0])
}
