package sse

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/tictactoe-go/internal/model"
	"github.com/mcoot/tictactoe-go/internal/testutil"
)

func TestFormatSSEMessage(t *testing.T) {
	tests := []struct {
		name      string
		eventName string
		data      string
		expected  string
	}{
		{
			name:      "single line data",
			eventName: "test-event",
			data:      "hello world",
			expected:  "event: test-event\ndata: hello world\n\n",
		},
		{
			name:      "multi-line data",
			eventName: "cell-update",
			data:      "<div>\n  <p>line1</p>\n  <p>line2</p>\n</div>",
			expected:  "event: cell-update\ndata: <div>\ndata:   <p>line1</p>\ndata:   <p>line2</p>\ndata: </div>\n\n",
		},
		{
			name:      "empty data",
			eventName: "ping",
			data:      "",
			expected:  "event: ping\ndata: \n\n",
		},
		{
			name:      "data with carriage returns",
			eventName: "test",
			data:      "line1\r\nline2",
			expected:  "event: test\ndata: line1\ndata: line2\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := formatSSEMessage(tt.eventName, tt.data)
			if string(result) != tt.expected {
				t.Errorf("formatSSEMessage(%q, %q)\ngot:  %q\nwant: %q",
					tt.eventName, tt.data, string(result), tt.expected)
			}
		})
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "single line",
			input:    "hello",
			expected: []string{"hello"},
		},
		{
			name:     "two lines",
			input:    "line1\nline2",
			expected: []string{"line1", "line2"},
		},
		{
			name:     "trailing newline",
			input:    "line1\n",
			expected: []string{"line1"},
		},
		{
			name:     "empty string",
			input:    "",
			expected: []string{""},
		},
		{
			name:     "crlf line endings",
			input:    "line1\r\nline2\r\n",
			expected: []string{"line1", "line2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := splitLines(tt.input)
			if len(result) != len(tt.expected) {
				t.Errorf("splitLines(%q) returned %d lines, want %d",
					tt.input, len(result), len(tt.expected))
				return
			}
			for i, line := range result {
				if line != tt.expected[i] {
					t.Errorf("splitLines(%q)[%d] = %q, want %q",
						tt.input, i, line, tt.expected[i])
				}
			}
		})
	}
}

func newRunningHub(t *testing.T, id model.MatchID) *Hub {
	t.Helper()
	hub := NewHub(id, testutil.NopLogger())
	go hub.Run()
	t.Cleanup(hub.Close)
	return hub
}

func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return hub.ClientCount() == n }, time.Second, 5*time.Millisecond)
}

func receive(t *testing.T, client *Client) string {
	t.Helper()
	select {
	case msg := <-client.send:
		return string(msg)
	case <-time.After(time.Second):
		t.Fatal("client did not receive message")
		return ""
	}
}

func TestHub_RegisterAndBroadcast(t *testing.T) {
	hub := newRunningHub(t, "TESTCODE")

	client := NewClient(hub, "viewer1")
	require.True(t, hub.Register(client))
	waitForClients(t, hub, 1)

	hub.BroadcastEvent("test-event", "test data")

	assert.Equal(t, "event: test-event\ndata: test data\n\n", receive(t, client))
}

func TestHub_Unregister(t *testing.T) {
	hub := newRunningHub(t, "TESTCODE")

	client := NewClient(hub, "viewer1")
	hub.Register(client)
	waitForClients(t, hub, 1)

	hub.Unregister(client)
	waitForClients(t, hub, 0)

	_, open := <-client.send
	assert.False(t, open, "send channel should be closed on unregister")
}

func TestHub_BroadcastToMultipleClients(t *testing.T) {
	hub := newRunningHub(t, "TESTCODE")

	clients := []*Client{
		NewClient(hub, "viewer1"),
		NewClient(hub, "viewer2"),
		NewClient(hub, "viewer3"),
	}
	for _, c := range clients {
		hub.Register(c)
	}
	waitForClients(t, hub, 3)

	hub.BroadcastEvent("update", "data")

	for i, c := range clients {
		assert.Equal(t, "event: update\ndata: data\n\n", receive(t, c), "client %d", i+1)
	}
}

func TestHub_ClosedHubRejectsClients(t *testing.T) {
	hub := NewHub("CLOSED", testutil.NopLogger())
	hub.Close()
	hub.Close()

	assert.False(t, hub.Register(NewClient(hub, "late")))
	hub.Unregister(NewClient(hub, "late"))
	hub.BroadcastEvent("ignored", "data")
}

func TestHubManager_GetOrCreateHub(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	defer manager.Close()

	hub1, created := manager.GetOrCreateHub("ABC123")
	require.NotNil(t, hub1)
	assert.True(t, created)

	hub2, created := manager.GetOrCreateHub("ABC123")
	assert.Same(t, hub1, hub2)
	assert.False(t, created)

	hub3, _ := manager.GetOrCreateHub("XYZ789")
	assert.NotSame(t, hub1, hub3)
}

func TestHubManager_GetHub(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	defer manager.Close()

	assert.Nil(t, manager.GetHub("NOTEXIST"))

	created, _ := manager.GetOrCreateHub("ABC123")
	assert.Same(t, created, manager.GetHub("ABC123"))
}

func TestHubManager_RemoveHub(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())

	hub, _ := manager.GetOrCreateHub("ABC123")
	manager.RemoveHub("ABC123")

	assert.Nil(t, manager.GetHub("ABC123"))
	select {
	case <-hub.Done():
	default:
		t.Error("removed hub was not closed")
	}

	// Removing non-existent hub should not panic
	manager.RemoveHub("NOTEXIST")
}

func TestHubManager_CleanupEmptyHubs(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	defer manager.Close()

	manager.GetOrCreateHub("EMPTY")
	active, _ := manager.GetOrCreateHub("ACTIVE")
	active.Register(NewClient(active, "viewer1"))
	waitForClients(t, active, 1)

	removed := manager.CleanupEmptyHubs()

	assert.Equal(t, []model.MatchID{"EMPTY"}, removed)
	assert.Nil(t, manager.GetHub("EMPTY"))
	assert.NotNil(t, manager.GetHub("ACTIVE"))
}

func TestHubManager_Close(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	hub, _ := manager.GetOrCreateHub("ABC123")

	manager.Close()

	assert.Nil(t, manager.GetHub("ABC123"))
	<-hub.Done()
}

func TestHubPresenter_Fragments(t *testing.T) {
	hub := newRunningHub(t, "M1")
	client := NewClient(hub, "viewer1")
	hub.Register(client)
	waitForClients(t, hub, 1)
	p := NewHubPresenter(hub, "M1", testutil.NopLogger())

	p.RenderCellFilled(4, model.SymbolX)
	msg := receive(t, client)
	assert.True(t, strings.HasPrefix(msg, "event: cell-update\n"))
	assert.Contains(t, msg, `<div id="cell-4" hx-swap-oob="true">`)
	assert.Contains(t, msg, `>X</span>`)

	p.SetStatusText("Player 2's Turn")
	msg = receive(t, client)
	assert.Contains(t, msg, "event: status-update\n")
	assert.Contains(t, msg, `<div id="status" hx-swap-oob="true">`)
	assert.Contains(t, msg, "Player 2&#39;s Turn")

	p.SetScoreText(2, 1)
	msg = receive(t, client)
	assert.Contains(t, msg, "event: scores-update\n")
	assert.Contains(t, msg, `data-seat="1">2</span>`)

	p.SetPlayerNames("Player 1", "Computer")
	msg = receive(t, client)
	assert.Contains(t, msg, "event: names-update\n")
	assert.Contains(t, msg, "Computer")
}

func TestHubPresenter_HighlightAndClear(t *testing.T) {
	hub := newRunningHub(t, "M1")
	client := NewClient(hub, "viewer1")
	hub.Register(client)
	waitForClients(t, hub, 1)
	p := NewHubPresenter(hub, "M1", testutil.NopLogger())

	for _, cell := range []int{0, 1, 2} {
		p.RenderCellFilled(cell, model.SymbolO)
		receive(t, client)
	}

	p.HighlightLine(model.Line{0, 1, 2})
	msg := receive(t, client)
	assert.Equal(t, 3, strings.Count(msg, `hx-swap-oob="true"`))
	assert.Equal(t, 3, strings.Count(msg, "cell cell-o win"))

	p.RenderCellCleared(0)
	msg = receive(t, client)
	assert.Contains(t, msg, `<div id="cell-0" hx-swap-oob="true">`)
	assert.Contains(t, msg, `hx-post="/matches/M1/cells/0"`)
	assert.NotContains(t, msg, "win")

	p.RenderCellCleared(9)
	p.RenderCellFilled(-1, model.SymbolX)
	select {
	case extra := <-client.send:
		t.Errorf("unexpected message for invalid cell: %q", extra)
	case <-time.After(20 * time.Millisecond):
	}
}

func TestHubPresenter_RefreshOnlyOnPhaseChange(t *testing.T) {
	hub := newRunningHub(t, "M1")
	client := NewClient(hub, "viewer1")
	hub.Register(client)
	waitForClients(t, hub, 1)
	p := NewHubPresenter(hub, "M1", testutil.NopLogger())

	p.ShowPhase(model.PhaseAwaitingMode)
	p.ShowPhase(model.PhaseAwaitingMode)
	p.ShowPhase(model.PhaseAwaitingSymbol)

	assert.Equal(t, "event: refresh\ndata: awaiting_symbol\n\n", receive(t, client))
	select {
	case extra := <-client.send:
		t.Errorf("unexpected message: %q", extra)
	case <-time.After(20 * time.Millisecond):
	}
}

func TestWrapForOOBSwap(t *testing.T) {
	assert.Equal(t, `<div id="status" hx-swap-oob="true"><p>hi</p></div>`, WrapForOOBSwap("status", "<p>hi</p>"))
}
