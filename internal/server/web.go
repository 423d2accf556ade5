package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/reprise/internal/recommend"
	"github.com/desertthunder/reprise/internal/services"
	"github.com/desertthunder/reprise/internal/shared"
)

// WebHandler serves the playlist form and the OAuth callback that produces
// the recommendation list. Implements the [Handler] interface.
type WebHandler struct {
	source   services.Source
	engine   *recommend.Engine
	sessions *SessionManager
	logger   *log.Logger
}

// NewWebHandler creates the web handler for the recommendation flow.
func NewWebHandler(source services.Source, engine *recommend.Engine, sessions *SessionManager, logger *log.Logger) *WebHandler {
	return &WebHandler{
		source:   source,
		engine:   engine,
		sessions: sessions,
		logger:   logger,
	}
}

// Routes returns the HTTP routes this handler serves.
func (h *WebHandler) Routes() []string {
	return []string{"/", "/callback"}
}

// ServeHTTP dispatches to the form or callback flow.
//
// The "/" pattern matches every path, so anything but the two known routes
// is a 404 here rather than in the router.
func (h *WebHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/":
		h.Index(w, r)
	case "/callback":
		h.Callback(w, r)
	default:
		http.NotFound(w, r)
	}
}

// Index renders the playlist form. A submitted link starts the OAuth flow;
// a POST without a link just re-renders the page.
func (h *WebHandler) Index(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		if link := r.PostFormValue("playlist_link"); link != "" {
			h.begin(w, r, link)
			return
		}
	}

	h.render(w, pageData{})
}

// begin stores the link and a fresh state in the session, then redirects the
// visitor to the authorization URL.
func (h *WebHandler) begin(w http.ResponseWriter, r *http.Request, link string) {
	state, err := shared.GenerateState()
	if err != nil {
		h.render(w, pageData{Error: fmt.Sprintf("Error: %v", err)})
		return
	}

	if err := h.sessions.Begin(w, r, link, state); err != nil {
		h.render(w, pageData{Error: fmt.Sprintf("Error: %v", err)})
		return
	}

	http.Redirect(w, r, h.source.AuthURL(state), http.StatusFound)
}

// Callback completes the OAuth flow and renders the recommendations.
//
// Every failure renders the form page with a message rather than an HTTP
// error status, so the visitor can retry from the same page. The checks run
// in order: session link, authorization code, token exchange, then the
// pipeline itself.
func (h *WebHandler) Callback(w http.ResponseWriter, r *http.Request) {
	link, ok := h.sessions.PlaylistLink(r)
	if !ok {
		h.render(w, pageData{Error: "Playlist link not found in session."})
		return
	}

	if r.URL.Query().Get("code") == "" {
		h.render(w, pageData{Error: "Authorization code not found."})
		return
	}

	state, _ := h.sessions.State(r)
	token, err := h.source.Exchange(r.Context(), state, r)
	if err != nil {
		h.logger.Error("token exchange failed", "err", err)
		h.render(w, pageData{Error: "Could not retrieve access token."})
		return
	}

	recommendations, err := h.engine.Run(r.Context(), token, link, nil)
	if err != nil {
		if errors.Is(err, shared.ErrEmptyPlaylist) {
			h.render(w, pageData{Error: "No tracks found in the playlist."})
			return
		}
		h.logger.Error("recommendation run failed", "err", err)
		h.render(w, pageData{Error: fmt.Sprintf("Error: %v", err)})
		return
	}

	h.sessions.Clear(w, r)
	h.render(w, pageData{Recommendations: recommendations})
}

func (h *WebHandler) render(w http.ResponseWriter, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, data); err != nil {
		h.logger.Error("template render failed", "err", err)
	}
}
