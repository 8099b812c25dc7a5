package middleware

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mcoot/tictactoe-go/internal/web/templates/layout"
)

type contextKey string

const (
	flashCookieName = "ttt_flash"
	flashContextKey = contextKey("flash")
	flashMaxAge     = time.Minute
)

// Flash kinds, rendered as flash-<kind> classes
const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashInfo    = "info"
)

// GetFlash returns the flash message carried by this request, or nil
func GetFlash(ctx context.Context) *layout.FlashMessage {
	flash, _ := ctx.Value(flashContextKey).(*layout.FlashMessage)
	return flash
}

// SetFlash queues a message for the next page the browser loads
func SetFlash(w http.ResponseWriter, kind, message string) {
	http.SetCookie(w, flashCookie(url.QueryEscape(kind+":"+message), int(flashMaxAge.Seconds())))
}

// Flash moves a queued flash message from its cookie into the request context
func Flash() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var flash *layout.FlashMessage

			if cookie, err := r.Cookie(flashCookieName); err == nil && cookie.Value != "" {
				flash = parseFlash(cookie.Value)
				expired := flashCookie("", -1)
				expired.Expires = time.Unix(0, 0)
				http.SetCookie(w, expired)
			}

			ctx := context.WithValue(r.Context(), flashContextKey, flash)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func flashCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     flashCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// parseFlash decodes kind:message. Unknown kinds show as info.
func parseFlash(value string) *layout.FlashMessage {
	if decoded, err := url.QueryUnescape(value); err == nil {
		value = decoded
	}
	kind, message, ok := strings.Cut(value, ":")
	if !ok {
		return &layout.FlashMessage{Type: FlashInfo, Message: value}
	}
	switch kind {
	case FlashSuccess, FlashError, FlashInfo:
	default:
		kind = FlashInfo
	}
	return &layout.FlashMessage{Type: kind, Message: message}
}
