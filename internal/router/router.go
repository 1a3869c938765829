// Package router wires HTTP routes to their handlers.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/highcard-game/highcard-server/internal/handler"
	"github.com/highcard-game/highcard-server/internal/ws"
)

// RegisterRoutes registers the health check and the websocket
// subscription endpoint on the provided Echo instance.
func RegisterRoutes(e *echo.Echo, hub *ws.Hub) {
	e.GET("/healthz", handler.Health)
	e.GET("/ws", func(c echo.Context) error {
		return hub.HandleWS(c.Response(), c.Request())
	})
}

// RegisterAPI registers the player and game endpoints under /v1. The
// limiter applies to mutating routes only; reads and the websocket
// stay unthrottled.
func RegisterAPI(e *echo.Echo, ph *handler.PlayerHandler, gh *handler.GameHandler, limiter echo.MiddlewareFunc) {
	g := e.Group("/v1")

	g.POST("/players", ph.Create, limiter)
	g.GET("/players", ph.List)

	g.POST("/games", gh.Create, limiter)
	g.GET("/games/:id", gh.Get)
	g.POST("/games/:id/join", gh.Join, limiter)
	g.GET("/games/:id/hand/:player_id", gh.Hand)
	g.POST("/games/:id/play", gh.Play, limiter)
}
