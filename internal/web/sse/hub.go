package sse

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/mcoot/tictactoe-go/internal/model"
)

// Hub manages SSE clients for a single match
type Hub struct {
	matchID model.MatchID
	clients map[*Client]bool
	mu      sync.RWMutex
	logger  *slog.Logger

	// Channels for managing clients
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}
	closeOnce  sync.Once
}

// NewHub creates a new Hub for a match
func NewHub(matchID model.MatchID, logger *slog.Logger) *Hub {
	return &Hub{
		matchID:    matchID,
		clients:    make(map[*Client]bool),
		logger:     logger.With(slog.String("match_id", string(matchID))),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
		done:       make(chan struct{}),
	}
}

// Run starts the hub's event loop
func (h *Hub) Run() {
	h.logger.Info("sse hub started")
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			clientCount := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("sse client registered",
				slog.String("client_id", client.id),
				slog.Int("total_clients", clientCount))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				clientCount := len(h.clients)
				h.mu.Unlock()
				h.logger.Info("sse client unregistered",
					slog.String("client_id", client.id),
					slog.Duration("connection_duration", time.Since(client.connectedAt)),
					slog.Int("total_clients", clientCount))
			} else {
				h.mu.Unlock()
			}

		case message := <-h.broadcast:
			h.mu.RLock()
			sentCount := 0
			droppedCount := 0
			for client := range h.clients {
				select {
				case client.send <- message:
					sentCount++
				default:
					droppedCount++
					h.logger.Warn("sse message dropped - client buffer full",
						slog.String("client_id", client.id))
				}
			}
			h.mu.RUnlock()
			if droppedCount > 0 {
				h.logger.Warn("sse broadcast partial failure",
					slog.Int("sent", sentCount),
					slog.Int("dropped", droppedCount))
			}

		case <-h.done:
			h.mu.Lock()
			clientCount := len(h.clients)
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			h.logger.Info("sse hub stopped", slog.Int("disconnected_clients", clientCount))
			return
		}
	}
}

// Register adds a client to the hub. Returns false if the hub is closed.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Broadcast sends a message to all clients
func (h *Hub) Broadcast(message []byte) {
	select {
	case <-h.done:
		return
	default:
	}
	select {
	case h.broadcast <- message:
	default:
		h.logger.Warn("sse broadcast dropped - hub buffer full")
	}
}

// BroadcastEvent sends an SSE event with a name and data
func (h *Hub) BroadcastEvent(eventName, data string) {
	msg := formatSSEMessage(eventName, data)
	h.Broadcast(msg)
}

// Close shuts down the hub
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

// Done is closed once the hub shuts down
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// formatSSEMessage formats an SSE message with event name and data
// Multi-line data is properly formatted with "data: " prefix on each line
func formatSSEMessage(eventName, data string) []byte {
	var b strings.Builder
	b.WriteString("event: " + eventName + "\n")
	for _, line := range splitLines(data) {
		b.WriteString("data: " + line + "\n")
	}
	b.WriteString("\n")
	return []byte(b.String())
}

// splitLines splits a string into lines, handling various line endings
func splitLines(s string) []string {
	var lines []string
	var current strings.Builder
	for _, r := range s {
		if r == '\n' {
			lines = append(lines, current.String())
			current.Reset()
		} else if r != '\r' {
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	if len(lines) == 0 {
		lines = append(lines, "")
	}
	return lines
}

// HubManager manages hubs for all matches
type HubManager struct {
	hubs   map[model.MatchID]*Hub
	mu     sync.RWMutex
	logger *slog.Logger
}

// NewHubManager creates a new HubManager
func NewHubManager(logger *slog.Logger) *HubManager {
	return &HubManager{
		hubs:   make(map[model.MatchID]*Hub),
		logger: logger.With(slog.String("component", "sse")),
	}
}

// GetOrCreateHub returns the hub for a match, creating one if it doesn't exist.
// The second result is true if the hub was just created.
func (m *HubManager) GetOrCreateHub(matchID model.MatchID) (*Hub, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if hub, ok := m.hubs[matchID]; ok {
		return hub, false
	}

	hub := NewHub(matchID, m.logger)
	m.hubs[matchID] = hub
	go hub.Run()
	return hub, true
}

// GetHub returns the hub for a match, or nil if it doesn't exist
func (m *HubManager) GetHub(matchID model.MatchID) *Hub {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hubs[matchID]
}

// RemoveHub removes and closes a hub
func (m *HubManager) RemoveHub(matchID model.MatchID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if hub, ok := m.hubs[matchID]; ok {
		hub.Close()
		delete(m.hubs, matchID)
		m.logger.Info("sse hub removed", slog.String("match_id", string(matchID)))
	}
}

// CleanupEmptyHubs removes hubs with no clients and returns their match IDs
func (m *HubManager) CleanupEmptyHubs() []model.MatchID {
	m.mu.Lock()
	defer m.mu.Unlock()

	var removed []model.MatchID
	for id, hub := range m.hubs {
		if hub.ClientCount() == 0 {
			hub.Close()
			delete(m.hubs, id)
			removed = append(removed, id)
		}
	}
	if len(removed) > 0 {
		m.logger.Info("sse empty hubs cleaned up", slog.Int("removed", len(removed)))
	}
	return removed
}

// Close shuts down every hub
func (m *HubManager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, hub := range m.hubs {
		hub.Close()
		delete(m.hubs, id)
	}
}
