package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/mcoot/tictactoe-go/internal/model"
	"github.com/mcoot/tictactoe-go/internal/services/session"
	"github.com/mcoot/tictactoe-go/internal/web/middleware"
	"github.com/mcoot/tictactoe-go/internal/web/sse"
	"github.com/mcoot/tictactoe-go/internal/web/templates/layout"
	"github.com/mcoot/tictactoe-go/internal/web/templates/pages"
)

// sseViewerKey is the fan-out key of the presenter feeding a match's SSE hub
const sseViewerKey = "sse"

// MatchHandler handles match pages and actions
type MatchHandler struct {
	hubManager *sse.HubManager
	logger     *slog.Logger
}

// NewMatchHandler creates a new MatchHandler
func NewMatchHandler(hubManager *sse.HubManager, logger *slog.Logger) *MatchHandler {
	return &MatchHandler{
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "web-match")),
	}
}

// View renders the match page
func (h *MatchHandler) View(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())
	m := sess.Controller.Snapshot()

	data := pages.MatchData{
		Page: layout.PageData{
			Title: "Match " + string(m.ID),
			Flash: middleware.GetFlash(r.Context()),
		},
		Match: m,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.Match(data).Render(r.Context(), w); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// ChooseMode handles the one/two player choice
func (h *MatchHandler) ChooseMode(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())

	if mode, err := model.ParseMode(r.FormValue("mode")); err == nil {
		sess.Controller.ChooseMode(r.Context(), mode)
	}
	h.respond(w, r, sess)
}

// ChooseSymbol handles Player 1 picking X or O
func (h *MatchHandler) ChooseSymbol(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())

	if symbol, err := model.ParseSymbol(r.FormValue("symbol")); err == nil {
		sess.Controller.ChooseSymbol(r.Context(), symbol)
	}
	h.respond(w, r, sess)
}

// Cell handles a click on a board square
func (h *MatchHandler) Cell(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())

	if cell, err := strconv.Atoi(mux.Vars(r)["cell"]); err == nil {
		sess.Controller.ApplyHumanMove(r.Context(), cell)
	}
	h.respond(w, r, sess)
}

// Reset abandons the match and returns to the mode choice with scores cleared
func (h *MatchHandler) Reset(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())

	sess.Controller.Reset(r.Context())
	h.respond(w, r, sess)
}

// Events streams match updates over SSE
func (h *MatchHandler) Events(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())

	hub, created := h.hubManager.GetOrCreateHub(sess.ID())
	if created {
		sess.Attach(sseViewerKey, sse.NewHubPresenter(hub, sess.ID(), h.logger))
	}

	sse.ServeSSE(w, r, hub, uuid.NewString())
}

// respond acknowledges an action. htmx requests get updates over SSE so
// need no body, plain form posts are sent back to the match page.
func (h *MatchHandler) respond(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	if r.Header.Get("HX-Request") == "true" {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, matchURL(sess), http.StatusSeeOther)
}

func matchURL(sess *session.Session) string {
	return "/matches/" + string(sess.ID())
}
