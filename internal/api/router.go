package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/tictactoe-go/internal/api/handler"
	"github.com/mcoot/tictactoe-go/internal/api/middleware"
	"github.com/mcoot/tictactoe-go/internal/api/response"
	"github.com/mcoot/tictactoe-go/internal/services/session"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	SessionManager *session.Manager
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	matchHandler := handler.NewMatchHandler(cfg.SessionManager)
	wsHandler := handler.NewWebSocketHandler(cfg.SessionManager, cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))
	api.Use(middleware.Tracing())
	api.NotFoundHandler = http.HandlerFunc(middleware.NotFound)

	// Match routes
	matches := api.PathPrefix("/matches").Subrouter()
	matches.HandleFunc("", matchHandler.Create).Methods(http.MethodPost)
	matches.HandleFunc("/{id}", matchHandler.Get).Methods(http.MethodGet)
	matches.HandleFunc("/{id}", matchHandler.Delete).Methods(http.MethodDelete)
	matches.HandleFunc("/{id}/mode", matchHandler.ChooseMode).Methods(http.MethodPost)
	matches.HandleFunc("/{id}/symbol", matchHandler.ChooseSymbol).Methods(http.MethodPost)
	matches.HandleFunc("/{id}/moves", matchHandler.Move).Methods(http.MethodPost)
	matches.HandleFunc("/{id}/reset", matchHandler.Reset).Methods(http.MethodPost)
	matches.HandleFunc("/{id}/ws", wsHandler.Serve).Methods(http.MethodGet)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler(cfg.SessionManager)).Methods(http.MethodGet)

	return r
}

func healthHandler(manager *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, http.StatusOK, response.HealthResponse{Status: "ok", Matches: manager.Count()})
	}
}
