package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/mcoot/tictactoe-go/internal/model"
)

func newEventsCmd() *cobra.Command {
	var (
		jsonOutput bool
		useWS      bool
	)

	cmd := &cobra.Command{
		Use:   "events <id>",
		Short: "Stream live updates from a match",
		Long: `Connect to a match and stream its updates in real-time.

By default this reads the web page's SSE stream, whose events are:
  - cell-update, status-update, scores-update, names-update: HTML fragments
  - refresh: The match changed phase

With --ws it reads the JSON websocket instead, whose events are
cell_filled, cell_cleared, line_highlighted, status, scores, names and phase.

Press Ctrl+C to disconnect.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if useWS {
				return streamWebSocket(ctx, cmd.OutOrStdout(), args[0], jsonOutput)
			}
			return streamEvents(ctx, cmd.OutOrStdout(), args[0], jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output events as JSON lines")
	cmd.Flags().BoolVar(&useWS, "ws", false, "Use the JSON websocket instead of SSE")

	return cmd
}

// SSEEvent represents a parsed SSE event
type SSEEvent struct {
	Time  time.Time `json:"time"`
	Event string    `json:"event"`
	Data  string    `json:"data"`
}

func streamEvents(ctx context.Context, w io.Writer, matchID string, jsonOutput bool) error {
	// SSE is on the web router, not the API router
	url := strings.TrimSuffix(cfg.ServerURL, "/") + "/matches/" + matchID + "/events"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	httpClient := &http.Client{
		Timeout: 0, // No timeout for SSE
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	if !jsonOutput {
		fmt.Fprintf(w, "Connected to match %s\n", matchID)
	}

	// Parse SSE stream
	scanner := bufio.NewScanner(resp.Body)
	var currentEvent string
	var dataLines []string

	for scanner.Scan() {
		line := scanner.Text()

		if strings.HasPrefix(line, "event: ") {
			currentEvent = strings.TrimPrefix(line, "event: ")
		} else if strings.HasPrefix(line, "data: ") {
			dataLines = append(dataLines, strings.TrimPrefix(line, "data: "))
		} else if line == "" {
			// End of event
			if currentEvent != "" {
				printEvent(w, currentEvent, strings.Join(dataLines, "\n"), jsonOutput)
			}
			currentEvent = ""
			dataLines = nil
		}
	}

	if err := scanner.Err(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("stream error: %w", err)
	}

	if !jsonOutput {
		fmt.Fprintln(w, "Disconnected")
	}
	return nil
}

func streamWebSocket(ctx context.Context, w io.Writer, matchID string, jsonOutput bool) error {
	url := "ws" + strings.TrimPrefix(strings.TrimSuffix(cfg.ServerURL, "/"), "http") + "/api/v1/matches/" + matchID + "/ws"

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		if resp != nil {
			return fmt.Errorf("connection failed: unexpected status %d", resp.StatusCode)
		}
		return fmt.Errorf("connection failed: %w", err)
	}
	defer func() { _ = conn.Close() }()

	// Unblock ReadMessage on interrupt
	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()

	if !jsonOutput {
		fmt.Fprintf(w, "Connected to match %s\n", matchID)
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				break
			}
			return fmt.Errorf("stream error: %w", err)
		}

		var e model.Event
		if err := json.Unmarshal(data, &e); err != nil {
			continue
		}
		printEvent(w, string(e.Type), string(data), jsonOutput)
	}

	if !jsonOutput {
		fmt.Fprintln(w, "Disconnected")
	}
	return nil
}

func printEvent(w io.Writer, event, data string, jsonOutput bool) {
	now := time.Now()

	if jsonOutput {
		evt := SSEEvent{
			Time:  now,
			Event: event,
			Data:  data,
		}
		jsonData, _ := json.Marshal(evt)
		fmt.Fprintln(w, string(jsonData))
	} else {
		timestamp := now.Format("2006-01-02 15:04:05")
		// Truncate data if it's too long for display
		displayData := data
		if len(displayData) > 100 {
			displayData = displayData[:100] + "..."
		}
		// Remove newlines for cleaner display
		displayData = strings.ReplaceAll(displayData, "\n", " ")
		fmt.Fprintf(w, "[%s] %s: %s\n", timestamp, event, displayData)
	}
}
