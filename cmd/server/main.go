package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/mcoot/tictactoe-go/internal/api"
	"github.com/mcoot/tictactoe-go/internal/config"
	"github.com/mcoot/tictactoe-go/internal/factory"
	"github.com/mcoot/tictactoe-go/internal/telemetry"
	"github.com/mcoot/tictactoe-go/internal/web"
)

// How often SSE hubs with no connected browsers are shut down
const hubCleanupInterval = time.Minute

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "YAML config file (env vars only if empty)")
	flag.Parse()

	cfg := config.MustLoad(*configPath)

	// Set up logging
	logger := cfg.NewLogger(os.Stdout)
	slog.SetDefault(logger)

	shutdownTracing, err := telemetry.Init(cfg.Tracing, os.Stderr)
	if err != nil {
		logger.Error("failed to initialise tracing", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Warn("failed to flush traces", slog.String("error", err.Error()))
		}
	}()

	// Create application factory
	app, err := factory.New(factory.Config{
		Match:  cfg.MatchConfig(),
		Logger: logger,
	})
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		return 1
	}
	defer app.Close()

	// Create API router
	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		SessionManager: app.SessionManager,
	})

	// Create web router
	webRouter := web.NewRouter(web.RouterConfig{
		Logger:         logger,
		SessionManager: app.SessionManager,
		HubManager:     app.HubManager,
		StaticDir:      findStaticDir(),
	})

	// Combine routers
	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/", webRouter)

	// Create server
	server := api.NewServer(mux, cfg.ServerConfig(), logger)
	server.OnShutdown("close-sse-hubs", app.HubManager.Close)

	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go cleanupHubs(ctx, app)

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			return 1
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			return 1
		}
	}

	logger.Info("server stopped")
	return 0
}

// cleanupHubs periodically closes SSE hubs nobody is watching
func cleanupHubs(ctx context.Context, app *factory.App) {
	ticker := time.NewTicker(hubCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			app.HubManager.CleanupEmptyHubs()
		}
	}
}

// findStaticDir looks for the static files directory
func findStaticDir() string {
	// Try common locations
	candidates := []string{
		"internal/web/static",
		"./internal/web/static",
		filepath.Join(os.Getenv("PWD"), "internal/web/static"),
	}

	for _, dir := range candidates {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}

	// Default to relative path
	return "internal/web/static"
}
