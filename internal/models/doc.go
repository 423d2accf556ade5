// Package models defines the domain types for the Reprise recommendation service.
//
// Everything here is a request-scoped value object; nothing is persisted:
//   - [Track] : One playlist entry from the source service, with defaults applied
//   - [SearchResult] : One song hit from the target service's search endpoint
//   - [Candidate] : A recommendation candidate derived from a search hit
//   - [Recommendation] : A ranked output entry carrying its frequency count
//
// [Track.Key] and [Candidate.Key] produce the normalized lowercase
// "title by artist" string that the ranking step counts and excludes on.
// Two keys differing only in case are the same key; keys differing by
// whitespace or punctuation are distinct.
package models
