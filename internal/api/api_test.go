package api_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/tictactoe-go/internal/api"
	"github.com/mcoot/tictactoe-go/internal/api/apierr"
	"github.com/mcoot/tictactoe-go/internal/api/response"
	"github.com/mcoot/tictactoe-go/internal/factory"
	"github.com/mcoot/tictactoe-go/internal/model"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	// Mocked clock so computer turns and round restarts are driven by the test
	app := factory.NewTestApp()
	t.Cleanup(app.Close)

	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		SessionManager: app.SessionManager,
	})

	return &testServer{
		handler: router,
		app:     app,
	}
}

func (ts *testServer) request(method, path string, body any) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	switch b := body.(type) {
	case nil:
		reqBody = bytes.NewBuffer(nil)
	case string:
		reqBody = bytes.NewBufferString(b)
	default:
		data, _ := json.Marshal(b)
		reqBody = bytes.NewBuffer(data)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func (ts *testServer) createMatch(t *testing.T, id string) response.Match {
	t.Helper()
	ts.app.MockRandom.QueueString(id)
	rr := ts.request(http.MethodPost, "/api/v1/matches", nil)
	require.Equal(t, http.StatusCreated, rr.Code)

	var m response.Match
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &m))
	return m
}

func (ts *testServer) action(t *testing.T, path string, body any) response.ActionResponse {
	t.Helper()
	rr := ts.request(http.MethodPost, path, body)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp response.ActionResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) apierr.APIError {
	t.Helper()
	var resp apierr.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Error
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)
	ts.createMatch(t, "MATCH001")

	rr := ts.request(http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.HealthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 1, resp.Matches)
}

func TestCreateMatch(t *testing.T) {
	ts := newTestServer(t)

	m := ts.createMatch(t, "MATCH001")

	assert.Equal(t, "MATCH001", m.ID)
	assert.Equal(t, string(model.PhaseAwaitingMode), m.Phase)
	assert.Equal(t, 0, m.Mode)
	assert.Equal(t, "Choose one or two players", m.Status)
	assert.Len(t, m.Board, model.BoardSize)
	require.Len(t, m.Players, 2)
	assert.Equal(t, "Player 1", m.Players[0].DisplayName)
	assert.Equal(t, "Player 2", m.Players[1].DisplayName)
	assert.Equal(t, string(model.OutcomeOngoing), m.Outcome.Kind)
}

func TestGetMatch(t *testing.T) {
	ts := newTestServer(t)
	ts.createMatch(t, "MATCH001")

	rr := ts.request(http.MethodGet, "/api/v1/matches/MATCH001", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var m response.Match
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &m))
	assert.Equal(t, "MATCH001", m.ID)
}

func TestUnknownMatch(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/matches/NOPE", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, apierr.CodeMatchNotFound, decodeError(t, rr).Code)

	rr = ts.request(http.MethodPost, "/api/v1/matches/NOPE/moves", map[string]int{"cell": 1})
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = ts.request(http.MethodDelete, "/api/v1/matches/NOPE", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestUnknownRoute(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/nowhere", nil)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, apierr.CodeNotFound, decodeError(t, rr).Code)
}

func TestDeleteMatch(t *testing.T) {
	ts := newTestServer(t)
	ts.createMatch(t, "MATCH001")

	rr := ts.request(http.MethodDelete, "/api/v1/matches/MATCH001", nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/matches/MATCH001", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestMalformedRequests(t *testing.T) {
	ts := newTestServer(t)
	ts.createMatch(t, "MATCH001")

	tests := []struct {
		name string
		path string
		body any
	}{
		{"invalid json", "/api/v1/matches/MATCH001/mode", "{not json"},
		{"missing mode", "/api/v1/matches/MATCH001/mode", map[string]any{}},
		{"missing symbol", "/api/v1/matches/MATCH001/symbol", map[string]any{}},
		{"missing cell", "/api/v1/matches/MATCH001/moves", map[string]any{}},
		{"wrong type", "/api/v1/matches/MATCH001/moves", map[string]any{"cell": "four"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := ts.request(http.MethodPost, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, apierr.CodeInvalidRequest, decodeError(t, rr).Code)
		})
	}
}

func TestIgnoredInputsAreNotAccepted(t *testing.T) {
	ts := newTestServer(t)
	ts.createMatch(t, "MATCH001")
	base := "/api/v1/matches/MATCH001"

	resp := ts.action(t, base+"/symbol", map[string]string{"symbol": "X"})
	assert.False(t, resp.Accepted, "symbol before mode")

	resp = ts.action(t, base+"/mode", map[string]int{"mode": 3})
	assert.False(t, resp.Accepted, "mode out of range")
	assert.Equal(t, string(model.PhaseAwaitingMode), resp.Match.Phase)

	resp = ts.action(t, base+"/reset", nil)
	assert.False(t, resp.Accepted, "reset while choosing mode")

	ts.action(t, base+"/mode", map[string]int{"mode": 2})
	resp = ts.action(t, base+"/symbol", map[string]string{"symbol": "Z"})
	assert.False(t, resp.Accepted, "unknown symbol")

	ts.action(t, base+"/symbol", map[string]string{"symbol": "x"})
	resp = ts.action(t, base+"/moves", map[string]int{"cell": 9})
	assert.False(t, resp.Accepted, "cell out of range")

	ts.action(t, base+"/moves", map[string]int{"cell": 0})
	resp = ts.action(t, base+"/moves", map[string]int{"cell": 0})
	assert.False(t, resp.Accepted, "occupied cell")
	assert.Equal(t, "Player 2's Turn", resp.Match.Status)
}

func TestFullMatchAgainstComputer(t *testing.T) {
	ts := newTestServer(t)
	ts.createMatch(t, "MATCH001")
	base := "/api/v1/matches/MATCH001"

	resp := ts.action(t, base+"/mode", map[string]int{"mode": 1})
	require.True(t, resp.Accepted)
	assert.Equal(t, "Computer", resp.Match.Players[1].DisplayName)
	assert.True(t, resp.Match.Players[1].IsBot)

	resp = ts.action(t, base+"/symbol", map[string]string{"symbol": "O"})
	require.True(t, resp.Accepted)
	assert.Equal(t, string(model.PhaseRoundActive), resp.Match.Phase)
	assert.Equal(t, "X", resp.Match.Players[1].Symbol)
	assert.Equal(t, "Player 1's Turn", resp.Match.Status)

	for _, cell := range []int{3, 8, 5} {
		resp = ts.action(t, base+"/moves", map[string]int{"cell": cell})
		require.True(t, resp.Accepted, "cell %d", cell)
		assert.Equal(t, "Computer's Turn", resp.Match.Status)

		resp = ts.action(t, base+"/moves", map[string]int{"cell": 6})
		assert.False(t, resp.Accepted, "move during computer's turn")

		ts.app.AdvanceTurn()
	}

	rr := ts.request(http.MethodGet, base, nil)
	var m response.Match
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &m))
	assert.Equal(t, string(model.PhaseRoundEnding), m.Phase)
	assert.Equal(t, "Computer wins", m.Status)
	assert.Equal(t, string(model.OutcomeWin), m.Outcome.Kind)
	assert.Equal(t, []int{0, 1, 2}, m.Outcome.Line)
	assert.Equal(t, 1, m.Players[1].Score)

	ts.app.AdvanceRound()

	rr = ts.request(http.MethodGet, base, nil)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &m))
	assert.Equal(t, string(model.PhaseRoundActive), m.Phase)
	assert.Equal(t, 2, m.Round)
	assert.Equal(t, 1, m.Players[1].Score)
}

func TestWebSocketStreamsEventsAndAcceptsInput(t *testing.T) {
	ts := newTestServer(t)
	server := httptest.NewServer(ts.handler)
	t.Cleanup(server.Close)
	ts.createMatch(t, "MATCH001")

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/v1/matches/MATCH001/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	assert.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)

	readUntil := func(match func(model.Event) bool) model.Event {
		t.Helper()
		for {
			require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
			var e model.Event
			require.NoError(t, conn.ReadJSON(&e))
			if match(e) {
				return e
			}
		}
	}

	// Current state is replayed on connect
	status := readUntil(func(e model.Event) bool { return e.Type == model.EventStatus })
	assert.Equal(t, "Choose one or two players", status.Text)
	assert.Equal(t, model.MatchID("MATCH001"), status.MatchID)

	// Invalid messages are ignored
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"dance"}`)))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`not json`)))

	require.NoError(t, conn.WriteJSON(map[string]any{"type": "mode", "mode": 2}))
	phase := readUntil(func(e model.Event) bool { return e.Type == model.EventPhase })
	assert.Equal(t, model.PhaseAwaitingSymbol, phase.Phase)

	require.NoError(t, conn.WriteJSON(map[string]any{"type": "symbol", "symbol": "X"}))
	readUntil(func(e model.Event) bool { return e.Type == model.EventPhase && e.Phase == model.PhaseRoundActive })

	require.NoError(t, conn.WriteJSON(map[string]any{"type": "cell", "cell": 4}))
	filled := readUntil(func(e model.Event) bool { return e.Type == model.EventCellFilled })
	require.NotNil(t, filled.Cell)
	assert.Equal(t, 4, *filled.Cell)
	assert.Equal(t, model.SymbolX, filled.Symbol)

	require.NoError(t, conn.WriteJSON(map[string]any{"type": "reset"}))
	scores := readUntil(func(e model.Event) bool { return e.Type == model.EventScores })
	require.NotNil(t, scores.Scores)
	assert.Equal(t, [2]int{0, 0}, *scores.Scores)
	phase = readUntil(func(e model.Event) bool { return e.Type == model.EventPhase })
	assert.Equal(t, model.PhaseAwaitingMode, phase.Phase)
}

func TestWebSocketUnknownMatch(t *testing.T) {
	ts := newTestServer(t)
	server := httptest.NewServer(ts.handler)
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/v1/matches/NOPE/ws"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)

	require.ErrorIs(t, err, websocket.ErrBadHandshake)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
