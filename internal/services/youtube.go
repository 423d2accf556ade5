// YouTube Music implementation of [Searcher]
//
// Communicates with the ytmusicapi proxy server running on port 8080.
// The proxy wraps the ytmusicapi Python library for YouTube Music search.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/desertthunder/reprise/internal/models"
	"github.com/desertthunder/reprise/internal/shared"
)

const defaultYTBaseURL string = "http://localhost:8080"

// YouTubeImage represents an image/thumbnail from YouTube Music.
type YouTubeImage struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// YouTubeArtist represents an artist in YouTube Music responses.
type YouTubeArtist struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

type youtubeAlbum struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// YouTubeSearchResult represents a single song result from the proxy's
// search endpoint.
type YouTubeSearchResult struct {
	VideoID    string          `json:"videoId"`
	Title      string          `json:"title"`
	Artists    []YouTubeArtist `json:"artists"`
	Album      *youtubeAlbum   `json:"album"`
	Duration   string          `json:"duration"`
	Views      string          `json:"views"`
	Thumbnails []YouTubeImage  `json:"thumbnails"`
}

// YTMusicService implements [Searcher] for YouTube Music via the proxy.
type YTMusicService struct {
	baseURL    string
	httpClient *http.Client
}

// NewYTMusicService creates a new YouTube Music service instance.
func NewYTMusicService(baseURL string) *YTMusicService {
	if baseURL == "" {
		baseURL = defaultYTBaseURL
	}

	return &YTMusicService{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
	}
}

// Name returns the service name.
func (y *YTMusicService) Name() string {
	return "YouTube Music"
}

func (y *YTMusicService) doRequest(ctx context.Context, method, endpoint string, result any) error {
	apiURL := y.baseURL + endpoint

	req, err := http.NewRequestWithContext(ctx, method, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := y.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp struct {
			Detail string `json:"detail"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Detail != "" {
			return fmt.Errorf("youtube music API error (status %d): %s", resp.StatusCode, errResp.Detail)
		}
		return fmt.Errorf("youtube music API error: status %d", resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// SearchSongs runs a song-filtered search against the proxy and returns up
// to limit results.
//
// Calls GET /api/search?q={query}&filter=songs&limit={limit} on the proxy.
// Result fields the proxy omits come back zero-valued; defaults are applied
// downstream when candidates are built.
func (y *YTMusicService) SearchSongs(ctx context.Context, query string, limit int) ([]models.SearchResult, error) {
	endpoint := fmt.Sprintf("/api/search?q=%s&filter=songs&limit=%d", url.QueryEscape(query), limit)

	var ytResults []YouTubeSearchResult
	if err := y.doRequest(ctx, http.MethodGet, endpoint, &ytResults); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	results := make([]models.SearchResult, len(ytResults))
	for i, ytr := range ytResults {
		result := models.SearchResult{
			VideoID:  ytr.VideoID,
			Title:    ytr.Title,
			Duration: ytr.Duration,
			Views:    ytr.Views,
		}

		for _, artist := range ytr.Artists {
			result.Artists = append(result.Artists, artist.Name)
		}
		for _, thumb := range ytr.Thumbnails {
			result.Thumbnails = append(result.Thumbnails, thumb.URL)
		}
		if ytr.Album != nil {
			result.Album = ytr.Album.Name
		}

		results[i] = result
	}

	return results, nil
}

// Health checks whether the proxy is reachable.
//
// Calls GET /health on the proxy.
func (y *YTMusicService) Health(ctx context.Context) error {
	if err := y.doRequest(ctx, http.MethodGet, "/health", nil); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}
	return nil
}
