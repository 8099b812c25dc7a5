package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel/trace"
)

// PanicHandler writes the error response for a recovered panic
type PanicHandler func(w http.ResponseWriter, r *http.Request, err any)

// Recovery logs a panic with the match it happened in and hands the
// response to handler
func Recovery(logger *slog.Logger, handler PanicHandler) func(http.Handler) http.Handler {
	logger = logger.With(slog.String("component", "http"))
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic recovered", panicAttrs(r, err)...)
					handler(w, r, err)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

func panicAttrs(r *http.Request, recovered any) []any {
	err, ok := recovered.(error)
	if !ok {
		err = fmt.Errorf("%v", recovered)
	}
	attrs := []any{
		slog.String("error", err.Error()),
		slog.String("stack", string(debug.Stack())),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("route", RouteTemplate(r)),
	}
	if id := mux.Vars(r)["id"]; id != "" {
		attrs = append(attrs, slog.String("match_id", id))
	}
	if sc := trace.SpanContextFromContext(r.Context()); sc.HasTraceID() {
		attrs = append(attrs, slog.String("trace_id", sc.TraceID().String()))
	}
	return attrs
}

// DefaultPanicHandler returns a plain 500
func DefaultPanicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}
