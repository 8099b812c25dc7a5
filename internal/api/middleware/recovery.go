package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/tictactoe-go/internal/api/apierr"
	"github.com/mcoot/tictactoe-go/internal/middleware"
)

// Recovery creates panic recovery middleware for the API
// Returns JSON error responses on panic
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, apiPanicHandler)
}

// Logging logs every API request
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Logging(logger.With(slog.String("component", "api")))
}

// Tracing starts a span per API request
func Tracing() func(http.Handler) http.Handler {
	return middleware.Tracing()
}

func apiPanicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	apierr.WriteError(w, apierr.NewInternalError())
}

// NotFound writes a JSON 404 for unmatched API routes
func NotFound(w http.ResponseWriter, _ *http.Request) {
	apierr.WriteError(w, apierr.NewNotFoundError())
}
