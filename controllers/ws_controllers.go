package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/yeremiapane/hotel-reservation/events"
	"github.com/yeremiapane/hotel-reservation/middlewares"
	"github.com/yeremiapane/hotel-reservation/utils"
)

// EventFeedHandler upgrades the request and keeps the client registered on hub until it disconnects.
// Browser origins must be in the CORS allow-list; clients that send no Origin header are accepted.
// Incoming messages are read and discarded.
func EventFeedHandler(hub *events.Hub, allowedOrigins string) gin.HandlerFunc {
	origins := middlewares.ParseOrigins(allowedOrigins)
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || origins.Allows(origin)
		},
	}

	return func(c *gin.Context) {
		ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			utils.ErrorLogger.Printf("WebSocket upgrade failed for %s: %v", c.ClientIP(), err)
			return
		}

		hub.Register(ws)
		utils.InfoLogger.Printf("Dashboard client connected: %s (clients=%d)", ws.RemoteAddr(), hub.ClientCount())

		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				break
			}
		}

		hub.Unregister(ws)
		utils.InfoLogger.Printf("Dashboard client disconnected: %s", ws.RemoteAddr())
	}
}
