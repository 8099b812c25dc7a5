package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/tictactoe-go/internal/web/middleware"
	"github.com/mcoot/tictactoe-go/internal/web/templates/layout"
)

// readFlash replays the cookies in set through the Flash middleware
func readFlash(t *testing.T, set *httptest.ResponseRecorder) (*layout.FlashMessage, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/matches/MATCH001", nil)
	for _, c := range set.Result().Cookies() {
		req.AddCookie(c)
	}

	var got *layout.FlashMessage
	rec := httptest.NewRecorder()
	middleware.Flash()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = middleware.GetFlash(r.Context())
	})).ServeHTTP(rec, req)
	return got, rec
}

func TestFlashRoundTrip(t *testing.T) {
	set := httptest.NewRecorder()
	middleware.SetFlash(set, middleware.FlashSuccess, `New match "MATCH001"; good luck`)

	got, rec := readFlash(t, set)

	require.NotNil(t, got)
	assert.Equal(t, middleware.FlashSuccess, got.Type)
	assert.Equal(t, `New match "MATCH001"; good luck`, got.Message)

	cleared := rec.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, -1, cleared[0].MaxAge)
}

func TestFlashUnknownKindShowsAsInfo(t *testing.T) {
	set := httptest.NewRecorder()
	middleware.SetFlash(set, "danger bold", "Match not found")

	got, _ := readFlash(t, set)

	require.NotNil(t, got)
	assert.Equal(t, middleware.FlashInfo, got.Type)
	assert.Equal(t, "Match not found", got.Message)
}

func TestNoFlashWithoutCookie(t *testing.T) {
	got, rec := readFlash(t, httptest.NewRecorder())

	assert.Nil(t, got)
	assert.Empty(t, rec.Result().Cookies())
}
