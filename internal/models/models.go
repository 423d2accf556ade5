// package models defines the data model for the recommendation web service
package models

import "strings"

// Defaults substituted when an upstream API omits a field.
const (
	UnknownSong   = "Unknown Song"
	UnknownArtist = "Unknown Artist"
	UnknownAlbum  = "N/A"
	DefaultViews  = "0"
)

// TrackURLPrefix is the public Spotify URL prefix for a single track.
const TrackURLPrefix = "https://open.spotify.com/track/"

// Track is one song entry fetched from the source playlist.
//
// Artist holds the first listed artist only. Lives for the duration of one
// request; nothing persists it.
type Track struct {
	Name   string `json:"name"`
	Artist string `json:"artist"`
	ID     string `json:"id"`
}

// Key returns the normalized "name by artist" string used for exclusion.
func (t Track) Key() string {
	return strings.ToLower(t.Name) + " by " + strings.ToLower(t.Artist)
}

// SpotifyURL returns the public URL for the track.
func (t Track) SpotifyURL() string {
	return TrackURLPrefix + t.ID
}

// SearchResult is one song hit from the YouTube Music search endpoint,
// mapped from the proxy's wire format by the services layer.
type SearchResult struct {
	VideoID    string   `json:"videoId"`
	Title      string   `json:"title"`
	Artists    []string `json:"artists"`
	Album      string   `json:"album"`
	Thumbnails []string `json:"thumbnails"`
	Views      string   `json:"views"`
	Duration   string   `json:"duration"`
}

// Candidate is a recommendation candidate built from one search hit.
//
// SpotifyURL links back to the playlist track whose search produced the hit,
// not to the recommended song itself.
type Candidate struct {
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	Album      string `json:"album"`
	Thumbnail  string `json:"thumbnail"`
	Views      string `json:"views"`
	SpotifyURL string `json:"spotify_url"`
}

// Key returns the normalized "title by artist" string used for counting and
// exclusion.
func (c Candidate) Key() string {
	return strings.ToLower(c.Title) + " by " + strings.ToLower(c.Artist)
}

// Recommendation is one entry of the ranked output list.
//
// Count is how many times the candidate's key occurred across all searches.
// The web page renders only the embedded candidate fields; Count is surfaced
// by the CLI and TUI.
type Recommendation struct {
	Candidate
	Count int `json:"count"`
}
