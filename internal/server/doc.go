// Package server provides HTTP routing, middleware, session management, and handlers for the web and CLI interfaces.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
// Routes may list several allowed methods, so a single path can serve both the form page (GET)
// and the form submission (POST).
//
// # Session Management
//
// [SessionManager] wraps a [sessions.CookieStore] to carry the submitted playlist link and the
// OAuth state token across the authorization redirect. Cookies are signed with the configured
// session key; a tampered or expired cookie reads back as an empty session.
//
// # Web Flow
//
// [WebHandler] serves the recommendation form and the OAuth callback for the web interface:
//
//  1. GET / renders the form.
//  2. POST / stores the playlist link in the session and redirects to Spotify authorization.
//  3. GET /callback exchanges the code, runs the recommendation pipeline, and renders the results.
//
// Failures render the form page again with an error banner instead of an HTTP error status.
//
// # OAuth Callback Handler
//
// [OAuthHandler] implements the OAuth2 authorization code callback flow for the CLI's loopback server.
//
// The handler exchanges the authorization code for tokens (validating the state parameter for
// CSRF protection) and sends the result through a channel.
//
// It only processes one callback to prevent replay attacks.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
