package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/tictactoe-go/internal/api/request"
	"github.com/mcoot/tictactoe-go/internal/api/response"
	"github.com/mcoot/tictactoe-go/internal/model"
	"github.com/mcoot/tictactoe-go/internal/services/session"
)

// MatchHandler handles match endpoints
type MatchHandler struct {
	manager *session.Manager
}

// NewMatchHandler creates a new match handler
func NewMatchHandler(manager *session.Manager) *MatchHandler {
	return &MatchHandler{manager: manager}
}

func (h *MatchHandler) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id := model.MatchID(mux.Vars(r)["id"])
	sess, err := h.manager.Get(id)
	if err != nil {
		WriteError(w, err)
		return nil, false
	}
	return sess, true
}

// Create handles POST /api/v1/matches
func (h *MatchHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess := h.manager.Create(r.Context())
	response.JSON(w, http.StatusCreated, response.MatchFromModel(sess.Controller.Snapshot()))
}

// Get handles GET /api/v1/matches/{id}
func (h *MatchHandler) Get(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	response.JSON(w, http.StatusOK, response.MatchFromModel(sess.Controller.Snapshot()))
}

// Delete handles DELETE /api/v1/matches/{id}
func (h *MatchHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := model.MatchID(mux.Vars(r)["id"])
	if err := h.manager.Remove(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// ChooseMode handles POST /api/v1/matches/{id}/mode
func (h *MatchHandler) ChooseMode(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req request.ChooseModeRequest
	if err := request.Decode(r.Body, &req); err != nil {
		WriteError(w, err)
		return
	}

	accepted := sess.Controller.ChooseMode(r.Context(), model.Mode(*req.Mode))
	response.Action(w, accepted, sess.Controller.Snapshot())
}

// ChooseSymbol handles POST /api/v1/matches/{id}/symbol
func (h *MatchHandler) ChooseSymbol(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req request.ChooseSymbolRequest
	if err := request.Decode(r.Body, &req); err != nil {
		WriteError(w, err)
		return
	}

	accepted := false
	if symbol, err := model.ParseSymbol(req.Symbol); err == nil {
		accepted = sess.Controller.ChooseSymbol(r.Context(), symbol)
	}
	response.Action(w, accepted, sess.Controller.Snapshot())
}

// Move handles POST /api/v1/matches/{id}/moves
func (h *MatchHandler) Move(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req request.MoveRequest
	if err := request.Decode(r.Body, &req); err != nil {
		WriteError(w, err)
		return
	}

	accepted := sess.Controller.ApplyHumanMove(r.Context(), *req.Cell)
	response.Action(w, accepted, sess.Controller.Snapshot())
}

// Reset handles POST /api/v1/matches/{id}/reset
func (h *MatchHandler) Reset(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	accepted := sess.Controller.Reset(r.Context())
	response.Action(w, accepted, sess.Controller.Snapshot())
}
