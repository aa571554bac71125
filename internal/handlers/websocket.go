package handlers

import (
	"net/http"

	"poetry-share-backend/internal/services"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // the feed is public, same CORS posture as the REST routes
	},
}

// WebSocketHandler serves the feed-update stream
type WebSocketHandler struct {
	hub *services.FeedHub
}

// NewWebSocketHandler creates a new websocket handler
func NewWebSocketHandler(hub *services.FeedHub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

// HandleFeed handles GET /ws/feed. Clients receive poem_created events
// and refetch the feed; no messages are expected from the client.
func (h *WebSocketHandler) HandleFeed(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade WebSocket connection")
		return
	}

	h.hub.Register(conn)
	defer h.hub.Unregister(conn)

	// Drain the connection until the client goes away
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
