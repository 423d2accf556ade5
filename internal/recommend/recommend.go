// package recommend implements the playlist recommendation pipeline.
//
// The core abstraction is Engine, which collects candidate songs for each
// playlist track and ranks them by how often they recur across the whole
// playlist. Operations emit progress updates via channels for non-blocking
// status reporting to CLI/UI layers.
package recommend

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"github.com/desertthunder/reprise/internal/models"
	"github.com/desertthunder/reprise/internal/services"
	"github.com/desertthunder/reprise/internal/shared"
	"golang.org/x/oauth2"
)

// Default tuning for candidate collection and ranking.
const (
	DefaultPerTrack  = 10
	DefaultTop       = 10
	DefaultThreshold = 0.9
)

// Engine collects and ranks recommendation candidates for a playlist.
type Engine struct {
	source   services.Source
	searcher services.Searcher

	perTrack  int     // search results considered per playlist track
	topN      int     // ranked list size
	threshold float64 // similarity above which a result counts as the track itself
	lev       *metrics.Levenshtein
}

// NewEngine creates an Engine around a playlist source and a searcher.
// Non-positive sizes and thresholds outside (0, 1] fall back to the defaults.
func NewEngine(source services.Source, searcher services.Searcher, perTrack, topN int, threshold float64) *Engine {
	if perTrack <= 0 {
		perTrack = DefaultPerTrack
	}
	if topN <= 0 {
		topN = DefaultTop
	}
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}

	return &Engine{
		source:    source,
		searcher:  searcher,
		perTrack:  perTrack,
		topN:      topN,
		threshold: threshold,
		lev:       metrics.NewLevenshtein(),
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *Engine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}

// isSelf reports whether a search result is effectively the track itself:
// title and artist both near-identical, ignoring case.
func (e *Engine) isSelf(track models.Track, title, artist string) bool {
	titleScore := strutil.Similarity(strings.ToLower(title), strings.ToLower(track.Name), e.lev)
	artistScore := strutil.Similarity(strings.ToLower(artist), strings.ToLower(track.Artist), e.lev)
	return titleScore > e.threshold && artistScore > e.threshold
}

// Collect searches for songs similar to a single playlist track and returns
// the candidates the search yields.
//
// The query is "{name} {artist}" with a songs filter. Up to perTrack results
// are considered. Results that match the track itself are skipped so a
// playlist's own songs never recommend themselves. Each surviving candidate
// carries defaults for missing fields and links back to the track that
// produced it.
func (e *Engine) Collect(ctx context.Context, track models.Track) ([]models.Candidate, error) {
	query := fmt.Sprintf("%s %s", track.Name, track.Artist)

	results, err := e.searcher.SearchSongs(ctx, query, e.perTrack)
	if err != nil {
		return nil, err
	}
	if len(results) > e.perTrack {
		results = results[:e.perTrack]
	}

	var candidates []models.Candidate
	for _, result := range results {
		artist := models.UnknownArtist
		if len(result.Artists) > 0 {
			artist = result.Artists[0]
		}

		if e.isSelf(track, result.Title, artist) {
			continue
		}

		candidate := models.Candidate{
			Title:      result.Title,
			Artist:     artist,
			Album:      result.Album,
			Views:      result.Views,
			SpotifyURL: track.SpotifyURL(),
		}
		if candidate.Album == "" {
			candidate.Album = models.UnknownAlbum
		}
		if candidate.Views == "" {
			candidate.Views = models.DefaultViews
		}
		if len(result.Thumbnails) > 0 {
			candidate.Thumbnail = result.Thumbnails[0]
		}

		candidates = append(candidates, candidate)
	}

	return candidates, nil
}

// Rank orders candidates by how often they were suggested across the whole
// playlist and returns the top entries.
//
// Candidates are grouped by normalized key. Keys that collide with a playlist
// track (exact match, ignoring case) are dropped entirely. Groups are ordered
// by count with first appearance breaking ties, and each surviving key is
// represented by the first candidate collected for it.
func (e *Engine) Rank(tracks []models.Track, candidates []models.Candidate) []models.Recommendation {
	playlistKeys := make(map[string]bool, len(tracks))
	for _, track := range tracks {
		playlistKeys[track.Key()] = true
	}

	counts := make(map[string]int)
	first := make(map[string]models.Candidate)
	var order []string

	for _, candidate := range candidates {
		key := candidate.Key()
		if playlistKeys[key] {
			continue
		}
		if _, seen := counts[key]; !seen {
			order = append(order, key)
			first[key] = candidate
		}
		counts[key]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > e.topN {
		order = order[:e.topN]
	}

	recommendations := make([]models.Recommendation, len(order))
	for i, key := range order {
		recommendations[i] = models.Recommendation{
			Candidate: first[key],
			Count:     counts[key],
		}
	}

	return recommendations
}

// Recommend runs the pipeline over already-fetched tracks: collect candidates
// for every track, then rank them.
//
// Any search failure aborts the run. An empty track list returns
// [shared.ErrEmptyPlaylist].
func (e *Engine) Recommend(ctx context.Context, tracks []models.Track, progress chan<- ProgressUpdate) ([]models.Recommendation, error) {
	if e.searcher == nil {
		return nil, fmt.Errorf("%w: search service not initialized", shared.ErrServiceUnavailable)
	}
	if len(tracks) == 0 {
		return nil, shared.ErrEmptyPlaylist
	}

	total := len(tracks)
	e.sendProgress(progress, searchTracksUpdate(0, total, nil))

	var candidates []models.Candidate
	for i, track := range tracks {
		e.sendProgress(progress, searchTracksUpdate(i+1, total, &track))

		found, err := e.Collect(ctx, track)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, found...)
	}

	e.sendProgress(progress, rankUpdate(len(candidates)))

	recommendations := e.Rank(tracks, candidates)
	e.sendProgress(progress, rankedUpdate(recommendations))

	return recommendations, nil
}

// Run resolves a playlist link into its tracks and produces the ranked
// recommendations end to end.
func (e *Engine) Run(ctx context.Context, token *oauth2.Token, playlistLink string, progress chan<- ProgressUpdate) ([]models.Recommendation, error) {
	if e.source == nil {
		return nil, fmt.Errorf("%w: playlist service not initialized", shared.ErrServiceUnavailable)
	}

	e.sendProgress(progress, fetchTracksUpdate())

	playlistID := services.ParsePlaylistLink(playlistLink)
	tracks, err := e.source.PlaylistTracks(ctx, token, playlistID)
	if err != nil {
		return nil, err
	}

	e.sendProgress(progress, foundTracksUpdate(len(tracks)))

	return e.Recommend(ctx, tracks, progress)
}
