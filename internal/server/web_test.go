package server

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/reprise/internal/models"
	"github.com/desertthunder/reprise/internal/recommend"
	tu "github.com/desertthunder/reprise/internal/testing"
)

const authURLPrefix = "https://accounts.spotify.com/authorize?state="

func newWebHandler(source *tu.MockSource, searcher *tu.MockSearcher) (*WebHandler, *SessionManager) {
	engine := recommend.NewEngine(source, searcher, 0, 0, 0)
	manager := NewSessionManager("test_session_key")
	return NewWebHandler(source, engine, manager, log.New(io.Discard)), manager
}

// submitLink posts the playlist form and returns the recorded response,
// whose cookies carry the started session.
func submitLink(t *testing.T, handler *WebHandler, link string) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{"playlist_link": {link}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestWebHandler(t *testing.T) {
	t.Run("Routes", func(t *testing.T) {
		handler, _ := newWebHandler(&tu.MockSource{}, &tu.MockSearcher{})
		routes := handler.Routes()
		if len(routes) != 2 || routes[0] != "/" || routes[1] != "/callback" {
			t.Errorf("expected routes [/ /callback], got %v", routes)
		}
	})

	t.Run("GET renders the form", func(t *testing.T) {
		handler, _ := newWebHandler(&tu.MockSource{}, &tu.MockSearcher{})

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
		body := rec.Body.String()
		if !strings.Contains(body, `name="playlist_link"`) {
			t.Error("expected form input for the playlist link")
		}
		if strings.Contains(body, `<div class="error">`) {
			t.Error("expected no error banner on the empty form")
		}
	})

	t.Run("submitting a link redirects to authorization", func(t *testing.T) {
		handler, manager := newWebHandler(&tu.MockSource{}, &tu.MockSearcher{})

		rec := submitLink(t, handler, "https://open.spotify.com/playlist/p1")

		if rec.Code != http.StatusFound {
			t.Fatalf("expected status 302, got %d", rec.Code)
		}
		location := rec.Header().Get("Location")
		if !strings.HasPrefix(location, authURLPrefix) {
			t.Fatalf("expected redirect to authorization URL, got %q", location)
		}
		state := strings.TrimPrefix(location, authURLPrefix)
		if len(state) != 16 {
			t.Errorf("expected a 16 character state token, got %q", state)
		}

		next := withCookies(t, rec, "/callback")
		link, ok := manager.PlaylistLink(next)
		if !ok || link != "https://open.spotify.com/playlist/p1" {
			t.Errorf("expected session to store the link, got %q", link)
		}
		stored, ok := manager.State(next)
		if !ok || stored != state {
			t.Errorf("expected session state %q, got %q", state, stored)
		}
	})

	t.Run("submitting without a link re-renders the form", func(t *testing.T) {
		handler, _ := newWebHandler(&tu.MockSource{}, &tu.MockSearcher{})

		rec := submitLink(t, handler, "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
		if rec.Header().Get("Location") != "" {
			t.Error("expected no redirect without a link")
		}
		if strings.Contains(rec.Body.String(), `<div class="error">`) {
			t.Error("expected no error banner without a link")
		}
	})

	t.Run("callback without a session", func(t *testing.T) {
		source := &tu.MockSource{}
		handler, _ := newWebHandler(source, &tu.MockSearcher{})

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/callback?code=abc", nil))

		if !strings.Contains(rec.Body.String(), "Playlist link not found in session.") {
			t.Errorf("expected missing session error, got %q", rec.Body.String())
		}
		if source.ExchangeCalls != 0 {
			t.Errorf("expected no token exchange, got %d calls", source.ExchangeCalls)
		}
	})

	t.Run("callback without a code", func(t *testing.T) {
		source := &tu.MockSource{}
		handler, _ := newWebHandler(source, &tu.MockSearcher{})

		started := submitLink(t, handler, "https://open.spotify.com/playlist/p1")

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, withCookies(t, started, "/callback"))

		if !strings.Contains(rec.Body.String(), "Authorization code not found.") {
			t.Errorf("expected missing code error, got %q", rec.Body.String())
		}
		if source.ExchangeCalls != 0 {
			t.Errorf("expected no token exchange, got %d calls", source.ExchangeCalls)
		}
	})

	t.Run("callback with a failing exchange", func(t *testing.T) {
		source := &tu.MockSource{ExchangeErr: errors.New("exchange failed")}
		handler, _ := newWebHandler(source, &tu.MockSearcher{})

		started := submitLink(t, handler, "https://open.spotify.com/playlist/p1")

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, withCookies(t, started, "/callback?code=abc"))

		if !strings.Contains(rec.Body.String(), "Could not retrieve access token.") {
			t.Errorf("expected token error, got %q", rec.Body.String())
		}
	})

	t.Run("callback with an empty playlist", func(t *testing.T) {
		source := &tu.MockSource{}
		handler, _ := newWebHandler(source, &tu.MockSearcher{})

		started := submitLink(t, handler, "https://open.spotify.com/playlist/p1")

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, withCookies(t, started, "/callback?code=abc"))

		if !strings.Contains(rec.Body.String(), "No tracks found in the playlist.") {
			t.Errorf("expected empty playlist error, got %q", rec.Body.String())
		}
	})

	t.Run("callback renders recommendations", func(t *testing.T) {
		source := &tu.MockSource{
			Tracks: []models.Track{{Name: "Creep", Artist: "Radiohead", ID: "t1"}},
		}
		searcher := &tu.MockSearcher{
			Results: map[string][]models.SearchResult{
				"Creep Radiohead": {
					{VideoID: "v1", Title: "No Surprises", Artists: []string{"Radiohead"}, Album: "OK Computer", Views: "12M"},
					{VideoID: "v2", Title: "Karma Police", Artists: []string{"Radiohead"}},
				},
			},
		}
		handler, manager := newWebHandler(source, searcher)

		started := submitLink(t, handler, "https://open.spotify.com/playlist/p1")

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, withCookies(t, started, "/callback?code=abc"))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
		body := rec.Body.String()
		for _, want := range []string{"No Surprises", "Karma Police", "OK Computer", "https://open.spotify.com/track/t1"} {
			if !strings.Contains(body, want) {
				t.Errorf("expected body to contain %q", want)
			}
		}
		if source.FetchCalls != 1 {
			t.Errorf("expected 1 playlist fetch, got %d", source.FetchCalls)
		}
		if len(searcher.Queries) != 1 || searcher.Queries[0] != "Creep Radiohead" {
			t.Errorf("expected one search for the track, got %v", searcher.Queries)
		}

		after := withCookies(t, rec, "/")
		if _, ok := manager.PlaylistLink(after); ok {
			t.Error("expected session to be cleared after a successful run")
		}
	})

	t.Run("unknown paths are not found", func(t *testing.T) {
		handler, _ := newWebHandler(&tu.MockSource{}, &tu.MockSearcher{})

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

		if rec.Code != http.StatusNotFound {
			t.Errorf("expected status 404, got %d", rec.Code)
		}
	})
}
