package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/papayafresh/papaya-backend/internal/services"
)

var feedUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Cross-origin is handled at the HTTP layer.
		return true
	},
}

// ActivityFeed streams live scan events to dashboard clients over WebSocket.
// The feed is read-only; client messages are drained and ignored.
func ActivityFeed(w http.ResponseWriter, r *http.Request) {
	conn, err := feedUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	id := services.RegisterFeedConnection(conn)
	defer services.UnregisterFeedConnection(id)

	// Read loop exists only to notice the peer closing.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
