package e2e_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/tictactoe-go/internal/api"
	"github.com/mcoot/tictactoe-go/internal/api/response"
	"github.com/mcoot/tictactoe-go/internal/factory"
	"github.com/mcoot/tictactoe-go/internal/services/match"
	"github.com/mcoot/tictactoe-go/internal/web"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(t.TempDir(), "tictactoe-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/tictactoe")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
	}
}

// run executes the CLI against the server with JSON output
func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

// runWithInput executes the CLI with stdin
func (r *cliRunner) runWithInput(input string, args ...string) (string, error) {
	cmd := exec.Command(r.binaryPath, args...)
	cmd.Stdin = strings.NewReader(input)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// startTestServer runs the full application on a free port
func startTestServer(t *testing.T) string {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	// Short delays so computer turns happen quickly on the real clock
	app, err := factory.New(factory.Config{
		Match: match.Config{
			TurnDelay:         10 * time.Millisecond,
			RoundRestartDelay: 50 * time.Millisecond,
			BotStrategy:       "line",
		},
		Logger: logger,
	})
	require.NoError(t, err)

	projectRoot := findProjectRoot(t)
	mux := http.NewServeMux()
	mux.Handle("/api/", api.NewRouter(api.RouterConfig{
		Logger:         logger,
		SessionManager: app.SessionManager,
	}))
	mux.Handle("/", web.NewRouter(web.RouterConfig{
		Logger:         logger,
		SessionManager: app.SessionManager,
		HubManager:     app.HubManager,
		StaticDir:      filepath.Join(projectRoot, "internal/web/static"),
	}))

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	serverCfg := api.DefaultServerConfig()
	serverCfg.ShutdownTimeout = 5 * time.Second
	server := api.NewServer(mux, serverCfg, logger)
	server.OnShutdown("close-sse-hubs", app.HubManager.Close)

	go func() {
		if err := server.Serve(listener); err != nil {
			t.Logf("server error: %v", err)
		}
	}()

	t.Cleanup(func() {
		_ = server.Shutdown(context.Background())
		app.Close()
	})

	serverURL := "http://" + listener.Addr().String()
	waitForServer(t, serverURL+"/api/v1/health")
	return serverURL
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready")
}

func TestCLI_Health(t *testing.T) {
	serverURL := startTestServer(t)
	cli := newCLIRunner(t, serverURL)

	output, err := cli.run("health")
	require.NoError(t, err, output)

	var result response.HealthResponse
	require.NoError(t, json.Unmarshal([]byte(output), &result))
	assert.Equal(t, "ok", result.Status)
}

func TestCLI_RemoteMatchAgainstComputer(t *testing.T) {
	serverURL := startTestServer(t)
	cli := newCLIRunner(t, serverURL)

	output, err := cli.run("match", "create")
	require.NoError(t, err, output)
	var created response.Match
	require.NoError(t, json.Unmarshal([]byte(output), &created))
	require.Len(t, created.ID, 8)

	for _, args := range [][]string{
		{"match", "mode", created.ID, "1"},
		{"match", "symbol", created.ID, "x"},
		{"match", "move", created.ID, "4"},
	} {
		output, err = cli.run(args...)
		require.NoError(t, err, output)

		var action response.ActionResponse
		require.NoError(t, json.Unmarshal([]byte(output), &action))
		assert.True(t, action.Accepted, "%v", args)
	}

	// The computer replies after its delay
	require.Eventually(t, func() bool {
		output, err := cli.run("match", "get", created.ID)
		if err != nil {
			return false
		}
		var m response.Match
		if json.Unmarshal([]byte(output), &m) != nil {
			return false
		}
		return m.Board[0] == "O" && m.Status == "Player 1's Turn"
	}, 5*time.Second, 50*time.Millisecond)

	output, err = cli.run("match", "delete", created.ID)
	require.NoError(t, err, output)

	output, err = cli.run("match", "get", created.ID)
	require.Error(t, err)
	assert.Contains(t, output, "MATCH_NOT_FOUND")
}

func TestCLI_PlayInTerminal(t *testing.T) {
	cli := newCLIRunner(t, "")

	output, err := cli.runWithInput("2\nx\n0\n3\n1\n4\n2\nq\n", "play", "--round-delay", "1s")
	require.NoError(t, err, output)

	assert.Contains(t, output, "Player 1 wins")
	assert.Contains(t, output, "[X]|[X]|[X]")
	assert.Contains(t, output, "Bye")
}

func TestCLI_PlayRejectsUnknownStrategy(t *testing.T) {
	cli := newCLIRunner(t, "")

	output, err := cli.runWithInput("", "play", "--strategy", "minimax")

	require.Error(t, err)
	assert.Contains(t, output, "invalid config")
}
