// Package ws implements the in-process broadcast gateway: a
// gorilla/websocket hub that fans room-scoped game events out to
// subscribed sockets. Clients subscribe to a game's room with a
// join_game message and receive an immediate state snapshot.
package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/highcard-game/highcard-server/internal/game"
)

// StateProvider supplies the snapshot sent to a socket when it
// subscribes to a room. The game registry implements it.
type StateProvider interface {
	State(gameID uint64) (game.StatePayload, error)
}

// Message is the server-to-client frame.
type Message struct {
	Event     string          `json:"event"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

type subscription struct {
	client   *Client
	room     string
	gameID   uint64
	playerID uint64
}

type outbound struct {
	room string
	msg  []byte
}

type notification struct {
	client *Client
	msg    []byte
}

// Hub owns the room membership maps. A single run loop processes
// registration, subscription and publish traffic, so no map is ever
// touched from two goroutines.
type Hub struct {
	upgrader websocket.Upgrader

	register   chan *Client
	unregister chan *Client
	subscribe  chan subscription
	leave      chan subscription
	notify     chan notification
	publishCh  chan outbound
	rooms      map[string]map[*Client]bool
	clients    map[*Client]bool
	provider   StateProvider
	logger     *log.Logger
	ctx        context.Context
	cancel     context.CancelFunc
}

// NewHub creates a hub. Call SetStateProvider before Run when snapshot
// delivery on subscribe is wanted.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Clients connect from arbitrary origins; the API carries
			// no credentials, so origin checks gain nothing here.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		register:   make(chan *Client),
		unregister: make(chan *Client),
		subscribe:  make(chan subscription),
		leave:      make(chan subscription),
		notify:     make(chan notification),
		publishCh:  make(chan outbound, 256),
		rooms:      make(map[string]map[*Client]bool),
		clients:    make(map[*Client]bool),
		logger:     logger.WithPrefix("ws"),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// SetStateProvider wires the snapshot source. Must be called before Run.
func (h *Hub) SetStateProvider(p StateProvider) {
	h.provider = p
}

// Run processes hub traffic until Stop is called.
func (h *Hub) Run() {
	for {
		select {
		case <-h.ctx.Done():
			return
		case c := <-h.register:
			h.clients[c] = true
		case c := <-h.unregister:
			h.drop(c)
		case sub := <-h.subscribe:
			h.join(sub)
		case sub := <-h.leave:
			if members, ok := h.rooms[sub.room]; ok {
				delete(members, sub.client)
				if len(members) == 0 {
					delete(h.rooms, sub.room)
				}
			}
		case n := <-h.notify:
			if h.clients[n.client] && !n.client.trySend(n.msg) {
				h.drop(n.client)
			}
		case out := <-h.publishCh:
			for c := range h.rooms[out.room] {
				if !c.trySend(out.msg) {
					h.logger.Warn("slow subscriber, dropping connection", "room", out.room)
					h.drop(c)
				}
			}
		}
	}
}

// Stop shuts the hub down and closes every connection.
func (h *Hub) Stop() {
	h.cancel()
}

// Publish implements game.Broadcaster. Events are handed to the run
// loop without blocking; when the hub cannot keep up the event is
// dropped, never the state change behind it.
func (h *Hub) Publish(room, event string, payload any) {
	msg, err := encode(event, payload)
	if err != nil {
		h.logger.Error("encode event failed", "room", room, "event", event, "error", err)
		return
	}
	select {
	case h.publishCh <- outbound{room: room, msg: msg}:
	case <-h.ctx.Done():
	default:
		h.logger.Warn("publish buffer full, dropping event", "room", room, "event", event)
	}
}

// HandleWS upgrades an HTTP request and starts the connection pumps.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	client := newClient(h, conn)
	select {
	case h.register <- client:
	case <-h.ctx.Done():
		return conn.Close()
	}
	client.start()
	return nil
}

// join adds a client to a room and sends it a connect notice plus the
// current state snapshot.
func (h *Hub) join(sub subscription) {
	members, ok := h.rooms[sub.room]
	if !ok {
		members = make(map[*Client]bool)
		h.rooms[sub.room] = members
	}
	members[sub.client] = true

	notice, err := encode(game.EventSystem, game.SystemPayload{
		Message: fmt.Sprintf("Connected to room %s (Player %d)", sub.room, sub.playerID),
	})
	if err == nil && !sub.client.trySend(notice) {
		h.drop(sub.client)
		return
	}
	if h.provider == nil {
		return
	}
	state, err := h.provider.State(sub.gameID)
	if err != nil {
		return
	}
	if msg, err := encode(game.EventGameUpdate, state); err == nil && !sub.client.trySend(msg) {
		h.drop(sub.client)
	}
}

// drop removes a client from every room and closes it. Closing the
// send channel here is safe because the run loop is the only sender.
func (h *Hub) drop(c *Client) {
	if !h.clients[c] {
		return
	}
	delete(h.clients, c)
	for room, members := range h.rooms {
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
	close(c.send)
	_ = c.conn.Close()
}

func encode(event string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Message{Event: event, Data: data, Timestamp: time.Now().UTC()})
}
