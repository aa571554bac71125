package services

import (
	"encoding/json"
	"sync"

	"poetry-share-backend/internal/models"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// FeedEvent is pushed to connected feed clients after a mutation so they
// can refetch the public feed.
type FeedEvent struct {
	Type string       `json:"type"`
	Poem *models.Poem `json:"poem,omitempty"`
}

// FeedHub fans feed events out to every connected WebSocket client.
// Connections are anonymous: the feed is public, so there is no per-user
// addressing.
type FeedHub struct {
	mu    sync.RWMutex
	conns map[*websocket.Conn]struct{}
}

// NewFeedHub creates a new feed hub
func NewFeedHub() *FeedHub {
	return &FeedHub{
		conns: make(map[*websocket.Conn]struct{}),
	}
}

// Register adds a connection to the hub
func (h *FeedHub) Register(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn] = struct{}{}
	log.Debug().Int("clients", len(h.conns)).Msg("Feed client connected")
}

// Unregister removes a connection from the hub and closes it
func (h *FeedHub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, exists := h.conns[conn]; exists {
		conn.Close()
		delete(h.conns, conn)
		log.Debug().Int("clients", len(h.conns)).Msg("Feed client disconnected")
	}
}

// Broadcast sends an event to every connected client. Clients that fail
// to accept the write are dropped.
func (h *FeedHub) Broadcast(event FeedEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal feed event")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			conn.Close()
			delete(h.conns, conn)
		}
	}
}

// ClientCount returns the number of connected clients
func (h *FeedHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}
