package response

import (
	"encoding/json"
	"net/http"

	"github.com/mcoot/tictactoe-go/internal/model"
)

// JSON writes a JSON response
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// NoContent writes a 204 No Content response
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Action writes the outcome of an input along with the resulting snapshot
func Action(w http.ResponseWriter, accepted bool, m *model.Match) {
	JSON(w, http.StatusOK, ActionResponse{Accepted: accepted, Match: MatchFromModel(m)})
}
