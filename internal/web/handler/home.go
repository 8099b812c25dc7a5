package handler

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/tictactoe-go/internal/services/session"
	"github.com/mcoot/tictactoe-go/internal/web/middleware"
	"github.com/mcoot/tictactoe-go/internal/web/templates/layout"
	"github.com/mcoot/tictactoe-go/internal/web/templates/pages"
)

// HomeHandler handles the home page and match creation
type HomeHandler struct {
	manager *session.Manager
	logger  *slog.Logger
}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler(manager *session.Manager, logger *slog.Logger) *HomeHandler {
	return &HomeHandler{
		manager: manager,
		logger:  logger.With(slog.String("component", "web-home")),
	}
}

// Home renders the home page
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	data := pages.HomeData{
		Page: layout.PageData{
			Title: "Home",
			Flash: middleware.GetFlash(r.Context()),
		},
		ActiveCount: h.manager.Count(),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.Home(data).Render(r.Context(), w); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// Create starts a new match and redirects to it
func (h *HomeHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess := h.manager.Create(r.Context())

	h.logger.Info("match created from web", slog.String("match_id", string(sess.ID())))
	middleware.SetFlash(w, middleware.FlashSuccess, "New match started")
	http.Redirect(w, r, matchURL(sess), http.StatusSeeOther)
}
