package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/tictactoe-go/internal/services/session"
	"github.com/mcoot/tictactoe-go/internal/web/handler"
	"github.com/mcoot/tictactoe-go/internal/web/middleware"
	"github.com/mcoot/tictactoe-go/internal/web/sse"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger         *slog.Logger
	SessionManager *session.Manager
	HubManager     *sse.HubManager
	StaticDir      string // Path to static files directory
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Apply global middleware to all routes
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))
	r.Use(middleware.Tracing())
	r.NotFoundHandler = middleware.NotFound()

	// Create SSE hub manager if not provided
	hubManager := cfg.HubManager
	if hubManager == nil {
		hubManager = sse.NewHubManager(cfg.Logger)
	}

	flashMiddleware := middleware.Flash()

	// Create handlers
	homeHandler := handler.NewHomeHandler(cfg.SessionManager, cfg.Logger)
	matchHandler := handler.NewMatchHandler(hubManager, cfg.Logger)

	// Static files
	if cfg.StaticDir != "" {
		staticHandler := http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir)))
		r.PathPrefix("/static/").Handler(staticHandler)
	}

	public := r.NewRoute().Subrouter()
	public.Use(flashMiddleware)
	public.HandleFunc("/", homeHandler.Home).Methods(http.MethodGet)
	public.HandleFunc("/matches", homeHandler.Create).Methods(http.MethodPost)

	// Match routes, scoped to an existing match
	matches := r.PathPrefix("/matches/{id}").Subrouter()
	matches.Use(flashMiddleware)
	matches.Use(middleware.MatchSession(cfg.SessionManager))
	matches.HandleFunc("", matchHandler.View).Methods(http.MethodGet)
	matches.HandleFunc("/mode", matchHandler.ChooseMode).Methods(http.MethodPost)
	matches.HandleFunc("/symbol", matchHandler.ChooseSymbol).Methods(http.MethodPost)
	matches.HandleFunc("/cells/{cell:[0-9]+}", matchHandler.Cell).Methods(http.MethodPost)
	matches.HandleFunc("/reset", matchHandler.Reset).Methods(http.MethodPost)
	matches.HandleFunc("/events", matchHandler.Events).Methods(http.MethodGet)

	return r
}
