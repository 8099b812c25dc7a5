package middleware

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/tictactoe-go/internal/model"
	"github.com/mcoot/tictactoe-go/internal/services/session"
)

const sessionContextKey = contextKey("session")

// GetSession retrieves the match session from the request context
// Returns nil if the request is not scoped to a match
func GetSession(ctx context.Context) *session.Session {
	sess, _ := ctx.Value(sessionContextKey).(*session.Session)
	return sess
}

// MatchSession loads the match named by the {id} route variable, rendering
// a 404 page if it doesn't exist
func MatchSession(manager *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := model.MatchID(mux.Vars(r)["id"])
			sess, err := manager.Get(id)
			if err != nil {
				RenderError(w, r, http.StatusNotFound, "Match not found")
				return
			}

			ctx := context.WithValue(r.Context(), sessionContextKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
