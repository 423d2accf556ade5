// Package services defines the [Source] and [Searcher] interfaces for the
// recommendation flow and implements them for Spotify and YouTube Music.
//
// # Source Interface
//
// A [Source] authorizes a user and resolves a playlist into tracks. The web
// handlers and the CLI depend on the interface so tests can substitute stubs.
//
// # Spotify Implementation
//
// [SpotifyService] wraps zmb3/spotify's client and authenticator. The
// authorization code flow requests the playlist-read-private scope, and the
// token exchange validates the state parameter from the callback request.
//
// Playlist reads fetch a single page of items. Entries whose track data is
// null (removed or regional-blocked tracks) are dropped during conversion.
//
// # Searcher Interface
//
// A [Searcher] turns a free-text query into candidate songs.
//
// # YouTube Music Implementation
//
// [YTMusicService] communicates with the ytmusicapi proxy server. Search hits
// GET /api/search with a songs filter; all calls are synchronous HTTP
// requests against the proxy.
//
// # Error Handling
//
// Services use typed errors from the shared package:
//   - [shared.ErrAuthFailed] : token exchange rejected
//   - [shared.ErrPlaylistNotFound] : playlist could not be fetched
//   - [shared.ErrAPIRequest] : proxy request failed
//   - [shared.ErrServiceUnavailable] : proxy health check failed
//
// # API Mappings
//
// Both services convert provider JSON into the models package's types:
//   - Spotify: playlist items → [models.Track] with name/artist fallbacks
//   - YouTube: search results → [models.SearchResult] with artist and
//     thumbnail lists flattened to plain strings
package services
