package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/desertthunder/reprise/internal/shared"
	tu "github.com/desertthunder/reprise/internal/testing"
)

func TestYTMusicService(t *testing.T) {
	t.Run("NewYTMusicService", func(t *testing.T) {
		t.Run("creates service with default URL", func(t *testing.T) {
			if svc := NewYTMusicService(""); svc == nil {
				t.Fatal("expected service to be created")
			} else if svc.baseURL != defaultYTBaseURL {
				t.Errorf("expected baseURL to be %s, got %s", defaultYTBaseURL, svc.baseURL)
			}
		})

		t.Run("creates service with custom URL", func(t *testing.T) {
			customURL := "http://localhost:9000"
			if svc := NewYTMusicService(customURL); svc.baseURL != customURL {
				t.Errorf("expected baseURL to be %s, got %s", customURL, svc.baseURL)
			}
		})
	})

	t.Run("Name", func(t *testing.T) {
		if svc := NewYTMusicService(""); svc.Name() != "YouTube Music" {
			t.Errorf("expected name to be 'YouTube Music', got %s", svc.Name())
		}
	})

	t.Run("SearchSongs", func(t *testing.T) {
		mockResults := []map[string]any{
			{
				"videoId": "vid123",
				"title":   "Harder Better Faster Stronger",
				"artists": []map[string]any{{"name": "Daft Punk", "id": "art1"}},
				"album":   map[string]any{"name": "Discovery"},
				"thumbnails": []map[string]any{
					{"url": "https://img.example.com/1.jpg", "width": 120, "height": 120},
					{"url": "https://img.example.com/2.jpg", "width": 544, "height": 544},
				},
				"duration": "3:44",
				"views":    "1.2M",
			},
			{
				"videoId": "vid456",
				"title":   "Around the World",
				"artists": []map[string]any{},
				"album":   nil,
			},
		}

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/search" {
				t.Errorf("expected path /api/search, got %s", r.URL.Path)
			}
			if r.Method != http.MethodGet {
				t.Errorf("expected GET method, got %s", r.Method)
			}

			if q := r.URL.Query().Get("q"); q != "Harder Better Faster Stronger Daft Punk" {
				t.Errorf("expected query to contain title and artist, got %s", q)
			}
			if filter := r.URL.Query().Get("filter"); filter != "songs" {
				t.Errorf("expected filter 'songs', got %s", filter)
			}
			if limit := r.URL.Query().Get("limit"); limit != "10" {
				t.Errorf("expected limit 10, got %s", limit)
			}

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(mockResults)
		}))
		defer server.Close()

		svc := NewYTMusicService(server.URL)
		results, err := svc.SearchSongs(context.Background(), "Harder Better Faster Stronger Daft Punk", 10)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(results) != 2 {
			t.Fatalf("expected 2 results, got %d", len(results))
		}

		first := results[0]
		if first.VideoID != "vid123" {
			t.Errorf("expected video ID vid123, got %s", first.VideoID)
		}
		if first.Title != "Harder Better Faster Stronger" {
			t.Errorf("unexpected title: %s", first.Title)
		}
		if len(first.Artists) != 1 || first.Artists[0] != "Daft Punk" {
			t.Errorf("expected artists [Daft Punk], got %v", first.Artists)
		}
		if first.Album != "Discovery" {
			t.Errorf("expected album 'Discovery', got %s", first.Album)
		}
		if len(first.Thumbnails) != 2 || first.Thumbnails[0] != "https://img.example.com/1.jpg" {
			t.Errorf("unexpected thumbnails: %v", first.Thumbnails)
		}
		if first.Views != "1.2M" {
			t.Errorf("expected views 1.2M, got %s", first.Views)
		}

		second := results[1]
		if len(second.Artists) != 0 {
			t.Errorf("expected no artists, got %v", second.Artists)
		}
		if second.Album != "" {
			t.Errorf("expected empty album for null album, got %s", second.Album)
		}
		if second.Views != "" {
			t.Errorf("expected empty views when omitted, got %s", second.Views)
		}
	})

	t.Run("SearchSongs with no results", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode([]map[string]any{})
		}))
		defer server.Close()

		svc := NewYTMusicService(server.URL)
		results, err := svc.SearchSongs(context.Background(), "nothing matches this", 10)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(results) != 0 {
			t.Errorf("expected empty results, got %d", len(results))
		}
	})

	t.Run("SearchSongs error with detail", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			json.NewEncoder(w).Encode(map[string]string{"detail": "upstream unavailable"})
		}))
		defer server.Close()

		svc := NewYTMusicService(server.URL)
		_, err := svc.SearchSongs(context.Background(), "query", 10)
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
	})

	t.Run("SearchSongs body read failure", func(t *testing.T) {
		svc := NewYTMusicService("http://localhost:9999")
		resp := &http.Response{StatusCode: http.StatusOK, Body: &tu.FCloser{}}
		svc.httpClient = &http.Client{Transport: tu.NewMockRoundTripper(resp, nil)}

		if _, err := svc.SearchSongs(context.Background(), "query", 10); err == nil {
			t.Fatal("expected decode error")
		}
	})

	t.Run("Health", func(t *testing.T) {
		t.Run("healthy proxy", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/health" {
					t.Errorf("expected path /health, got %s", r.URL.Path)
				}
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
			}))
			defer server.Close()

			svc := NewYTMusicService(server.URL)
			if err := svc.Health(context.Background()); err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})

		t.Run("unhealthy proxy", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			}))
			defer server.Close()

			svc := NewYTMusicService(server.URL)
			if err := svc.Health(context.Background()); !errors.Is(err, shared.ErrServiceUnavailable) {
				t.Errorf("expected ErrServiceUnavailable, got %v", err)
			}
		})
	})
}
