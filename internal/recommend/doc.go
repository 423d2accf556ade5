// Package recommend turns a Spotify playlist into a ranked list of similar
// songs with real-time progress reporting.
//
// # Pipeline
//
// [Engine] exposes the pipeline at three granularities:
//
//  1. [Engine.Collect] : Candidates for one track
//     - Searches YouTube Music for "{name} {artist}" with a songs filter
//     - Considers up to perTrack results
//     - Skips results that are the track itself (fuzzy title and artist
//       match above the threshold, ignoring case)
//     - Applies defaults for missing album, views and thumbnail fields
//
//  2. [Engine.Rank] : Frequency ranking across the playlist
//     - Groups candidates by lowercased "title by artist" key
//     - Drops keys that collide with a playlist track
//     - Orders by count, first appearance breaking ties, keeps the top N
//     - Represents each key by the first candidate collected for it
//
//  3. [Engine.Run] / [Engine.Recommend] : End-to-end
//     - Run resolves a playlist link, fetches tracks and recommends
//     - Recommend collects and ranks for already-fetched tracks
//
// # Progress Reporting
//
// All operations accept an optional progress channel.
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and
// optional data for advanced UI rendering. Updates use select with default
// to prevent blocking; a nil channel disables reporting.
//
// # Similarity
//
// Self-match detection uses normalized Levenshtein similarity from
// adrg/strutil. Exclusion at the ranking stage is exact key equality, not
// fuzzy, so covers and remixes survive ranking while identical songs do not.
//
// # Implementation
//
// [Engine] depends on:
//   - [services.Source] : Spotify playlist fetching (Run only)
//   - [services.Searcher] : YouTube Music search
package recommend
