// package services defines the provider interfaces for the recommendation flow
//
// Spotify (playlist source), YouTube Music (candidate search, via proxy)
package services

import (
	"context"
	"net/http"

	"github.com/desertthunder/reprise/internal/models"
	"golang.org/x/oauth2"
)

// Source is the playlist side of the flow. It authorizes a user through OAuth
// and resolves a playlist into its tracks.
type Source interface {
	// AuthURL returns the authorization URL a user visits to grant access.
	AuthURL(state string) string

	// Exchange trades the authorization code carried by the callback request
	// for an access token. The request's state must match the flow's state.
	Exchange(ctx context.Context, state string, r *http.Request) (*oauth2.Token, error)

	// PlaylistTracks fetches the first page of a playlist's tracks.
	PlaylistTracks(ctx context.Context, token *oauth2.Token, playlistID string) ([]models.Track, error)

	// Name returns the service name (e.g., "Spotify")
	Name() string
}

// Searcher finds candidate songs for a free-text query.
type Searcher interface {
	// SearchSongs runs a song search and returns up to limit results.
	SearchSongs(ctx context.Context, query string, limit int) ([]models.SearchResult, error)

	// Name returns the service name (e.g., "YouTube Music")
	Name() string
}

// HealthChecker is implemented by services that can report reachability,
// such as the YouTube Music proxy.
type HealthChecker interface {
	// Health returns nil when the backing service is reachable.
	Health(ctx context.Context) error
}
