// Package broadcast provides Broadcaster implementations the engine
// publishes room events through: a fanout composite and a Redis
// pub/sub publisher for cross-node delivery. The in-process websocket
// hub in internal/ws is the third implementation.
package broadcast

import "github.com/highcard-game/highcard-server/internal/game"

// Fanout publishes every event to each wrapped sink in order. Sinks
// must not block; delivery failures stay inside the sink.
type Fanout []game.Broadcaster

// Publish implements game.Broadcaster.
func (f Fanout) Publish(room, event string, payload any) {
	for _, bc := range f {
		bc.Publish(room, event, payload)
	}
}
