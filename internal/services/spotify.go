// Spotify implementation of [Source]
//
// Built on zmb3/spotify, which handles the Web API surface. OAuth uses the
// authorization code flow with the playlist-read-private scope.
package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/desertthunder/reprise/internal/models"
	"github.com/desertthunder/reprise/internal/shared"
	spotify "github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"
)

// SpotifyService implements [Source] for the Spotify Web API. It builds
// authorization URLs, exchanges callback codes for tokens and fetches
// playlist tracks.
type SpotifyService struct {
	auth *spotifyauth.Authenticator

	// newClient builds an API client for a token. Tests swap this out to
	// route requests through a stub transport.
	newClient func(ctx context.Context, token *oauth2.Token) *spotify.Client
}

// NewSpotifyService creates a Spotify service from OAuth credentials.
func NewSpotifyService(clientID, clientSecret, redirectURI string) (*SpotifyService, error) {
	if clientID == "" {
		return nil, fmt.Errorf("%w: spotify client_id", shared.ErrMissingCredentials)
	}
	if clientSecret == "" {
		return nil, fmt.Errorf("%w: spotify client_secret", shared.ErrMissingCredentials)
	}

	auth := spotifyauth.New(
		spotifyauth.WithClientID(clientID),
		spotifyauth.WithClientSecret(clientSecret),
		spotifyauth.WithRedirectURL(redirectURI),
		spotifyauth.WithScopes(spotifyauth.ScopePlaylistReadPrivate),
	)

	service := &SpotifyService{auth: auth}
	service.newClient = func(ctx context.Context, token *oauth2.Token) *spotify.Client {
		return spotify.New(auth.Client(ctx, token))
	}

	return service, nil
}

// Name returns the service name.
func (s *SpotifyService) Name() string {
	return "Spotify"
}

// AuthURL returns the Spotify authorization URL for the given state.
func (s *SpotifyService) AuthURL(state string) string {
	return s.auth.AuthURL(state)
}

// Exchange trades the authorization code carried by the callback request for
// an access token. Fails when the code is missing, the state does not match
// or Spotify rejects the exchange.
func (s *SpotifyService) Exchange(ctx context.Context, state string, r *http.Request) (*oauth2.Token, error) {
	token, err := s.auth.Token(ctx, state, r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}
	return token, nil
}

// PlaylistTracks fetches the first page of tracks for a playlist.
//
// Entries without track data (removed or unavailable tracks) are skipped.
// A missing name falls back to [models.UnknownSong] and an empty artist list
// to [models.UnknownArtist].
func (s *SpotifyService) PlaylistTracks(ctx context.Context, token *oauth2.Token, playlistID string) ([]models.Track, error) {
	client := s.newClient(ctx, token)

	page, err := client.GetPlaylistItems(ctx, spotify.ID(playlistID))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrPlaylistNotFound, err)
	}

	var tracks []models.Track
	for _, item := range page.Items {
		full := item.Track.Track
		if full == nil {
			continue
		}

		track := models.Track{
			Name:   full.Name,
			Artist: models.UnknownArtist,
			ID:     string(full.ID),
		}
		if track.Name == "" {
			track.Name = models.UnknownSong
		}
		if len(full.Artists) > 0 {
			track.Artist = full.Artists[0].Name
		}

		tracks = append(tracks, track)
	}

	return tracks, nil
}

// ParsePlaylistLink extracts the playlist ID from a shared Spotify link.
//
// The ID is the last path segment with any query string stripped, so share
// URLs with tracking parameters and bare IDs both resolve.
func ParsePlaylistLink(link string) string {
	parts := strings.Split(link, "/")
	id, _, _ := strings.Cut(parts[len(parts)-1], "?")
	return id
}
