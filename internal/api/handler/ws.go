package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/mcoot/tictactoe-go/internal/api/request"
	"github.com/mcoot/tictactoe-go/internal/model"
	"github.com/mcoot/tictactoe-go/internal/presenter"
	"github.com/mcoot/tictactoe-go/internal/services/session"
)

const (
	wsWriteWait      = 10 * time.Second
	wsPongWait       = 60 * time.Second
	wsPingPeriod     = (wsPongWait * 9) / 10
	wsMaxMessageSize = 512
	wsSendBuffer     = 64
)

// WebSocketHandler streams render events to a client and accepts its inputs
type WebSocketHandler struct {
	manager  *session.Manager
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewWebSocketHandler creates a new websocket handler
func NewWebSocketHandler(manager *session.Manager, logger *slog.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		manager: manager,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		logger: logger.With(slog.String("component", "websocket")),
	}
}

// wsConn is one connected websocket client
type wsConn struct {
	id     string
	conn   *websocket.Conn
	send   chan []byte
	done   chan struct{}
	logger *slog.Logger
}

// presenter returns a Presenter that queues each event as a JSON message.
// Events are dropped if the client falls too far behind.
func (c *wsConn) presenter(matchID model.MatchID) presenter.Presenter {
	return presenter.EventFunc(func(e model.Event) {
		e.MatchID = matchID
		data, err := json.Marshal(e)
		if err != nil {
			c.logger.Error("failed to marshal event", slog.String("error", err.Error()))
			return
		}
		select {
		case c.send <- data:
		case <-c.done:
		default:
			c.logger.Warn("websocket send buffer full, dropping event", slog.String("type", string(e.Type)))
		}
	})
}

// Serve handles GET /api/v1/matches/{id}/ws
func (h *WebSocketHandler) Serve(w http.ResponseWriter, r *http.Request) {
	id := model.MatchID(mux.Vars(r)["id"])
	sess, err := h.manager.Get(id)
	if err != nil {
		WriteError(w, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written an error response
		h.logger.Warn("failed to upgrade connection", slog.String("error", err.Error()))
		return
	}

	c := &wsConn{
		id:   uuid.New().String(),
		conn: conn,
		send: make(chan []byte, wsSendBuffer),
		done: make(chan struct{}),
	}
	c.logger = h.logger.With(slog.String("match_id", string(id)), slog.String("conn_id", c.id))
	c.logger.Info("websocket client connected")

	go c.writePump()
	sess.Attach(c.id, c.presenter(id))

	h.readPump(r.Context(), sess, c)

	sess.Detach(c.id)
	close(c.done)
	_ = conn.Close()
	c.logger.Info("websocket client disconnected")
}

func (h *WebSocketHandler) readPump(ctx context.Context, sess *session.Session, c *wsConn) {
	c.conn.SetReadLimit(wsMaxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("websocket read error", slog.String("error", err.Error()))
			}
			return
		}

		var msg request.ClientMessage
		if err := request.Unmarshal(data, &msg); err != nil {
			c.logger.Debug("ignoring invalid message", slog.String("error", err.Error()))
			continue
		}
		dispatch(ctx, sess, msg)
	}
}

// dispatch forwards a validated client message to the controller
func dispatch(ctx context.Context, sess *session.Session, msg request.ClientMessage) bool {
	switch msg.Type {
	case request.MessageMode:
		return sess.Controller.ChooseMode(ctx, model.Mode(*msg.Mode))
	case request.MessageSymbol:
		symbol, err := model.ParseSymbol(msg.Symbol)
		if err != nil {
			return false
		}
		return sess.Controller.ChooseSymbol(ctx, symbol)
	case request.MessageCell:
		return sess.Controller.ApplyHumanMove(ctx, *msg.Cell)
	case request.MessageReset:
		return sess.Controller.Reset(ctx)
	default:
		return false
	}
}

func (c *wsConn) writePump() {
	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			_ = c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case data := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				c.logger.Warn("websocket write error", slog.String("error", err.Error()))
				_ = c.conn.Close()
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				_ = c.conn.Close()
				return
			}
		}
	}
}
