package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/mcoot/tictactoe-go/internal/dependencies/clock"
	"github.com/mcoot/tictactoe-go/internal/dependencies/random"
	"github.com/mcoot/tictactoe-go/internal/model"
	"github.com/mcoot/tictactoe-go/internal/services/bot"
	"github.com/mcoot/tictactoe-go/internal/services/match"
	"github.com/mcoot/tictactoe-go/internal/services/outcome"
	"github.com/mcoot/tictactoe-go/internal/services/session"
	"github.com/mcoot/tictactoe-go/internal/storage"
	"github.com/mcoot/tictactoe-go/internal/storage/memory"
	"github.com/mcoot/tictactoe-go/internal/web/sse"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	OutcomeService *outcome.Service
	BotService     *bot.Service
	SessionManager *session.Manager
	HubManager     *sse.HubManager
}

// Config holds configuration for the application factory
type Config struct {
	// Match holds the match timings and bot strategy
	// If zero value, defaults to match.DefaultConfig()
	Match match.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	matchCfg := cfg.Match
	if matchCfg == (match.Config{}) {
		matchCfg = match.DefaultConfig()
	}
	if matchCfg.BotStrategy == "" {
		matchCfg.BotStrategy = model.BotStrategyLine
	}
	if !model.IsValidBotStrategy(matchCfg.BotStrategy) {
		return nil, errors.New("invalid bot strategy: must be 'line' or 'random'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	return newWithDependencies(memory.New(), clk, rnd, matchCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, matchCfg match.Config, logger *slog.Logger) *App {
	// Create services
	outcomeService := outcome.New()
	botService := bot.NewService(bot.Strategies(rnd), matchCfg.BotStrategy, logger)
	sessionManager := session.NewManager(store, outcomeService, botService, clk, rnd, matchCfg, logger)
	hubManager := sse.NewHubManager(logger)

	return &App{
		Storage:        store,
		Clock:          clk,
		Random:         rnd,
		OutcomeService: outcomeService,
		BotService:     botService,
		SessionManager: sessionManager,
		HubManager:     hubManager,
	}
}

// Close stops every running match and SSE hub
func (a *App) Close() {
	a.SessionManager.Close()
	a.HubManager.Close()
}
