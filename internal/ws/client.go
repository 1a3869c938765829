package ws

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"

	"github.com/highcard-game/highcard-server/internal/game"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 1024
)

// command is the client-to-server frame. Clients subscribe a socket to
// a game's room with join_game and detach with leave_game.
type command struct {
	Type     string `json:"type"`
	GameID   uint64 `json:"game_id"`
	PlayerID uint64 `json:"player_id,omitempty"`
}

// Client wraps one websocket connection. Outbound frames go through a
// buffered channel drained by the write pump. The hub run loop is the
// only sender into that channel and the only closer of it, so sends
// and close never race.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

func newClient(h *Hub, conn *websocket.Conn) *Client {
	return &Client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, 64),
	}
}

func (c *Client) start() {
	go c.writePump()
	go c.readPump()
}

// trySend hands a frame to the write pump without blocking. Must only
// be called from the hub run loop. A false return means the client
// cannot keep up and should be dropped.
func (c *Client) trySend(msg []byte) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// readPump consumes subscription commands until the peer goes away.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.ctx.Done():
			_ = c.conn.Close()
		}
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var cmd command
		if err := json.Unmarshal(raw, &cmd); err != nil {
			c.hub.logger.Debug("discarding malformed client frame", "error", err)
			continue
		}
		c.handle(cmd)
	}
}

func (c *Client) handle(cmd command) {
	if cmd.GameID == 0 {
		if msg, err := encode(game.EventSystem, game.SystemPayload{Message: "Missing game_id"}); err == nil {
			select {
			case c.hub.notify <- notification{client: c, msg: msg}:
			case <-c.hub.ctx.Done():
			}
		}
		return
	}
	sub := subscription{
		client:   c,
		room:     game.Room(cmd.GameID),
		gameID:   cmd.GameID,
		playerID: cmd.PlayerID,
	}
	switch cmd.Type {
	case "join_game":
		select {
		case c.hub.subscribe <- sub:
		case <-c.hub.ctx.Done():
		}
	case "leave_game":
		select {
		case c.hub.leave <- sub:
		case <-c.hub.ctx.Done():
		}
	}
}

// writePump drains the send channel and keeps the connection alive
// with periodic pings. It exits when the hub closes the send channel
// or the peer stops responding.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
