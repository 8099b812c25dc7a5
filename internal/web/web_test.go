package web_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/tictactoe-go/internal/factory"
	"github.com/mcoot/tictactoe-go/internal/web"
)

// webTestServer provides a test server for web interface testing
type webTestServer struct {
	t       *testing.T
	handler http.Handler
	app     *factory.TestApp
	cookies *cookieJar
}

// newWebTestServer creates a new test server with all dependencies wired
func newWebTestServer(t *testing.T) *webTestServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	app := factory.NewTestApp()
	t.Cleanup(app.Close)

	router := web.NewRouter(web.RouterConfig{
		Logger:         logger,
		SessionManager: app.SessionManager,
		HubManager:     app.HubManager,
		StaticDir:      "", // No static files in tests
	})

	return &webTestServer{
		t:       t,
		handler: router,
		app:     app,
		cookies: newCookieJar(),
	}
}

// request makes an HTTP request and returns the response
func (ts *webTestServer) request(method, path string, form url.Values, htmx bool) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if htmx {
		req.Header.Set("HX-Request", "true")
	}

	// Add cookies from jar
	ts.cookies.addTo(req)

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	// Extract Set-Cookie headers into jar
	ts.cookies.extract(rr)

	return rr
}

// get makes a GET request
func (ts *webTestServer) get(path string) *httptest.ResponseRecorder {
	return ts.request(http.MethodGet, path, nil, false)
}

// post makes a POST request with form data (non-HTMX)
func (ts *webTestServer) post(path string, form url.Values) *httptest.ResponseRecorder {
	return ts.request(http.MethodPost, path, form, false)
}

// postHTMX makes a POST request with form data as an HTMX request
func (ts *webTestServer) postHTMX(path string, form url.Values) *httptest.ResponseRecorder {
	return ts.request(http.MethodPost, path, form, true)
}

// parseHTML parses the response body as HTML
func parseHTML(r io.Reader) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		panic(err)
	}
	return doc
}

// cookieJar maintains cookies across requests (like a browser would)
type cookieJar struct {
	cookies map[string]*http.Cookie
}

func newCookieJar() *cookieJar {
	return &cookieJar{
		cookies: make(map[string]*http.Cookie),
	}
}

// addTo adds all cookies to the request
func (j *cookieJar) addTo(req *http.Request) {
	for _, cookie := range j.cookies {
		req.AddCookie(cookie)
	}
}

// extract extracts Set-Cookie headers from response
func (j *cookieJar) extract(rr *httptest.ResponseRecorder) {
	for _, cookie := range rr.Result().Cookies() {
		if cookie.MaxAge < 0 {
			// Cookie being deleted
			delete(j.cookies, cookie.Name)
		} else {
			j.cookies[cookie.Name] = cookie
		}
	}
}

// Helper functions for common test operations

// createMatch creates a match with the given ID and returns its path
func (ts *webTestServer) createMatch(id string) string {
	ts.t.Helper()
	ts.app.MockRandom.QueueString(id)
	rr := ts.post("/matches", nil)
	require.Equal(ts.t, http.StatusSeeOther, rr.Code, "Expected redirect after match creation")

	location := rr.Header().Get("Location")
	require.Equal(ts.t, "/matches/"+id, location)
	return location
}

// setupMatch creates a match and completes mode and symbol selection
func (ts *webTestServer) setupMatch(id string, mode int, symbol string) string {
	ts.t.Helper()
	path := ts.createMatch(id)
	rr := ts.postHTMX(path+"/mode", url.Values{"mode": {strconv.Itoa(mode)}})
	require.Equal(ts.t, http.StatusNoContent, rr.Code)
	rr = ts.postHTMX(path+"/symbol", url.Values{"symbol": {symbol}})
	require.Equal(ts.t, http.StatusNoContent, rr.Code)
	return path
}

// play clicks each cell in turn
func (ts *webTestServer) play(path string, cells ...int) {
	ts.t.Helper()
	for _, cell := range cells {
		rr := ts.postHTMX(path+"/cells/"+strconv.Itoa(cell), nil)
		require.Equal(ts.t, http.StatusNoContent, rr.Code)
	}
}

// page fetches and parses a page, requiring a 200
func (ts *webTestServer) page(path string) *goquery.Document {
	ts.t.Helper()
	rr := ts.get(path)
	require.Equal(ts.t, http.StatusOK, rr.Code)
	return parseHTML(rr.Body)
}

// followRedirect follows a redirect and returns the response
func (ts *webTestServer) followRedirect(rr *httptest.ResponseRecorder) *httptest.ResponseRecorder {
	ts.t.Helper()
	location := rr.Header().Get("Location")
	require.NotEmpty(ts.t, location, "Expected Location header for redirect")
	return ts.get(location)
}

// Assertion helpers

// assertContainsElement asserts that the document contains an element matching the selector
func assertContainsElement(t *testing.T, doc *goquery.Document, selector string) {
	t.Helper()
	if doc.Find(selector).Length() == 0 {
		t.Errorf("Expected to find element matching %q, but none found", selector)
	}
}

// assertNotContainsElement asserts that the document does not contain an element matching the selector
func assertNotContainsElement(t *testing.T, doc *goquery.Document, selector string) {
	t.Helper()
	if doc.Find(selector).Length() > 0 {
		t.Errorf("Expected NOT to find element matching %q, but found %d", selector, doc.Find(selector).Length())
	}
}

// assertContainsText asserts that the element matching the selector contains the text
func assertContainsText(t *testing.T, doc *goquery.Document, selector, text string) {
	t.Helper()
	el := doc.Find(selector)
	if el.Length() == 0 {
		t.Errorf("Expected to find element matching %q, but none found", selector)
		return
	}
	if !strings.Contains(el.Text(), text) {
		t.Errorf("Expected element %q to contain %q, but got %q", selector, text, el.Text())
	}
}
