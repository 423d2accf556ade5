package server

import (
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"
)

const sessionName = "reprise_session"

// Session value keys.
const (
	sessionPlaylistLink = "playlist_link"
	sessionOAuthState   = "oauth_state"
)

// SessionManager wraps a signed cookie store for the values the OAuth flow
// carries between requests: the submitted playlist link and the state
// parameter the flow was started with.
type SessionManager struct {
	store *sessions.CookieStore
}

// NewSessionManager creates a session manager signing cookies with the
// given key.
func NewSessionManager(key string) *SessionManager {
	store := sessions.NewCookieStore([]byte(key))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   3600,
		HttpOnly: true,
	}

	return &SessionManager{store: store}
}

// Begin stores the playlist link and OAuth state for the current visitor.
func (m *SessionManager) Begin(w http.ResponseWriter, r *http.Request, link, state string) error {
	session, _ := m.store.Get(r, sessionName)
	session.Values[sessionPlaylistLink] = link
	session.Values[sessionOAuthState] = state

	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// PlaylistLink returns the stored playlist link, if any.
//
// Tampered or expired cookies come back as a fresh session, so they report
// the same as a missing one.
func (m *SessionManager) PlaylistLink(r *http.Request) (string, bool) {
	session, _ := m.store.Get(r, sessionName)
	link, ok := session.Values[sessionPlaylistLink].(string)
	return link, ok && link != ""
}

// State returns the stored OAuth state, if any.
func (m *SessionManager) State(r *http.Request) (string, bool) {
	session, _ := m.store.Get(r, sessionName)
	state, ok := session.Values[sessionOAuthState].(string)
	return state, ok && state != ""
}

// Clear removes the flow values once a flow completes.
func (m *SessionManager) Clear(w http.ResponseWriter, r *http.Request) {
	session, _ := m.store.Get(r, sessionName)
	delete(session.Values, sessionPlaylistLink)
	delete(session.Values, sessionOAuthState)
	session.Save(r, w)
}
