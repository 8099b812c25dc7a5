package sse

import (
	"net/http"
	"time"
)

const (
	// Time between keepalive pings
	pingPeriod = 15 * time.Second

	// Reconnect delay suggested to the browser, in milliseconds
	retryMillis = "3000"

	// Buffer size for outgoing messages
	sendBufferSize = 256
)

// Client represents a connected SSE client
type Client struct {
	hub         *Hub
	id          string
	send        chan []byte
	connectedAt time.Time
}

// NewClient creates a new SSE client
func NewClient(hub *Hub, id string) *Client {
	return &Client{
		hub:         hub,
		id:          id,
		send:        make(chan []byte, sendBufferSize),
		connectedAt: time.Now(),
	}
}

// ServeSSE handles the SSE connection for a client
func ServeSSE(w http.ResponseWriter, r *http.Request, hub *Hub, clientID string) {
	// Check if SSE is supported
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering

	// The stream outlives the server write timeout
	_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})

	// Create and register client
	client := NewClient(hub, clientID)
	if !hub.Register(client) {
		http.Error(w, "Match closed", http.StatusGone)
		return
	}

	// Ensure cleanup on disconnect
	defer hub.Unregister(client)

	// Send reconnect hint and initial connection event
	_, _ = w.Write([]byte("retry: " + retryMillis + "\n\n"))
	_, _ = w.Write([]byte("event: connected\ndata: {\"status\":\"connected\"}\n\n"))
	flusher.Flush()

	// Create ticker for keepalive
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	// Handle client connection
	for {
		select {
		case message, ok := <-client.send:
			if !ok {
				// Hub closed the channel
				return
			}
			_, err := w.Write(message)
			if err != nil {
				return
			}
			flusher.Flush()

		case <-ticker.C:
			// Send keepalive comment
			_, err := w.Write([]byte(": keepalive\n\n"))
			if err != nil {
				return
			}
			flusher.Flush()

		case <-r.Context().Done():
			// Client disconnected
			return
		}
	}
}
