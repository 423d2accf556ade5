package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/desertthunder/reprise/internal/shared"
	tu "github.com/desertthunder/reprise/internal/testing"
	spotify "github.com/zmb3/spotify/v2"
	"golang.org/x/oauth2"
)

func TestSpotifyService(t *testing.T) {
	t.Run("NewSpotifyService", func(t *testing.T) {
		t.Run("With Valid Credentials", func(t *testing.T) {
			srv, err := NewSpotifyService("test_client_id", "test_client_secret", "http://127.0.0.1:5000/callback")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if srv == nil {
				t.Fatal("expected service to be created")
			}

			if srv.Name() != "Spotify" {
				t.Errorf("expected service name 'Spotify', got %s", srv.Name())
			}
		})

		t.Run("Missing Client ID", func(t *testing.T) {
			_, err := NewSpotifyService("", "test_client_secret", "")
			if !errors.Is(err, shared.ErrMissingCredentials) {
				t.Errorf("expected ErrMissingCredentials, got %v", err)
			}
		})

		t.Run("Missing Client Secret", func(t *testing.T) {
			_, err := NewSpotifyService("test_client_id", "", "")
			if !errors.Is(err, shared.ErrMissingCredentials) {
				t.Errorf("expected ErrMissingCredentials, got %v", err)
			}
		})
	})

	t.Run("AuthURL", func(t *testing.T) {
		srv, err := NewSpotifyService("test_client_id", "test_client_secret", "http://127.0.0.1:5000/callback")
		if err != nil {
			t.Fatalf("failed to create service: %v", err)
		}

		authURL := srv.AuthURL("test_state")
		if authURL == "" {
			t.Fatal("expected auth URL to be generated")
		}

		if !strings.Contains(authURL, "accounts.spotify.com") {
			t.Error("auth URL should contain Spotify domain")
		}
		if !strings.Contains(authURL, "test_client_id") {
			t.Error("auth URL should contain client_id")
		}
		if !strings.Contains(authURL, "test_state") {
			t.Error("auth URL should contain state")
		}
		if !strings.Contains(authURL, "playlist-read-private") {
			t.Error("auth URL should request the playlist-read-private scope")
		}
	})

	t.Run("Exchange", func(t *testing.T) {
		srv, err := NewSpotifyService("test_client_id", "test_client_secret", "http://127.0.0.1:5000/callback")
		if err != nil {
			t.Fatalf("failed to create service: %v", err)
		}

		t.Run("fails without code", func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/callback?state=test_state", nil)

			if _, err := srv.Exchange(context.Background(), "test_state", r); !errors.Is(err, shared.ErrAuthFailed) {
				t.Errorf("expected ErrAuthFailed, got %v", err)
			}
		})

		t.Run("fails on state mismatch", func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/callback?code=abc&state=other_state", nil)

			if _, err := srv.Exchange(context.Background(), "test_state", r); !errors.Is(err, shared.ErrAuthFailed) {
				t.Errorf("expected ErrAuthFailed, got %v", err)
			}
		})
	})

	t.Run("PlaylistTracks", func(t *testing.T) {
		page := `{
			"items": [
				{"track": {"type": "track", "id": "t1", "name": "Karma Police", "artists": [{"name": "Radiohead"}]}},
				{"track": null},
				{"track": {"type": "track", "id": "t2", "name": "", "artists": []}}
			]
		}`

		srv, err := NewSpotifyService("test_client_id", "test_client_secret", "http://127.0.0.1:5000/callback")
		if err != nil {
			t.Fatalf("failed to create service: %v", err)
		}

		srv.newClient = func(ctx context.Context, token *oauth2.Token) *spotify.Client {
			resp := &http.Response{
				StatusCode: http.StatusOK,
				Header:     http.Header{"Content-Type": []string{"application/json"}},
				Body:       io.NopCloser(strings.NewReader(page)),
			}
			return spotify.New(&http.Client{Transport: tu.NewMockRoundTripper(resp, nil)})
		}

		tracks, err := srv.PlaylistTracks(context.Background(), &oauth2.Token{AccessToken: "tok"}, "PL123")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(tracks) != 2 {
			t.Fatalf("expected 2 tracks after skipping null entry, got %d", len(tracks))
		}

		if tracks[0].Name != "Karma Police" || tracks[0].Artist != "Radiohead" {
			t.Errorf("unexpected first track: %+v", tracks[0])
		}
		if tracks[0].ID != "t1" {
			t.Errorf("expected track ID t1, got %s", tracks[0].ID)
		}

		if tracks[1].Name != "Unknown Song" {
			t.Errorf("expected missing name to default to Unknown Song, got %s", tracks[1].Name)
		}
		if tracks[1].Artist != "Unknown Artist" {
			t.Errorf("expected empty artist list to default to Unknown Artist, got %s", tracks[1].Artist)
		}
	})

	t.Run("PlaylistTracks not found", func(t *testing.T) {
		srv, err := NewSpotifyService("test_client_id", "test_client_secret", "http://127.0.0.1:5000/callback")
		if err != nil {
			t.Fatalf("failed to create service: %v", err)
		}

		srv.newClient = func(ctx context.Context, token *oauth2.Token) *spotify.Client {
			resp := &http.Response{
				StatusCode: http.StatusNotFound,
				Header:     http.Header{"Content-Type": []string{"application/json"}},
				Body:       io.NopCloser(strings.NewReader(`{"error": {"status": 404, "message": "Not found."}}`)),
			}
			return spotify.New(&http.Client{Transport: tu.NewMockRoundTripper(resp, nil)})
		}

		if _, err := srv.PlaylistTracks(context.Background(), &oauth2.Token{AccessToken: "tok"}, "MISSING"); !errors.Is(err, shared.ErrPlaylistNotFound) {
			t.Errorf("expected ErrPlaylistNotFound, got %v", err)
		}
	})
}

func TestParsePlaylistLink(t *testing.T) {
	tc := []struct {
		name string
		link string
		want string
	}{
		{"share link with query", "https://open.spotify.com/playlist/37i9dQZF1DXcBWIGoYBM5M?si=abc123", "37i9dQZF1DXcBWIGoYBM5M"},
		{"share link without query", "https://open.spotify.com/playlist/37i9dQZF1DXcBWIGoYBM5M", "37i9dQZF1DXcBWIGoYBM5M"},
		{"localized share link", "https://open.spotify.com/intl-pt/playlist/37i9dQZF1DXcBWIGoYBM5M?si=x", "37i9dQZF1DXcBWIGoYBM5M"},
		{"bare id", "37i9dQZF1DXcBWIGoYBM5M", "37i9dQZF1DXcBWIGoYBM5M"},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParsePlaylistLink(tt.link); got != tt.want {
				t.Errorf("ParsePlaylistLink() = %v, want %v", got, tt.want)
			}
		})
	}
}
