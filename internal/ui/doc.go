// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a three-view workflow for playlist recommendations:
//  1. [ProgressView] : Watch the engine fetch, search and rank
//  2. [ListView] : Browse the ranked recommendation list
//  3. [DetailView] : Inspect a single recommendation
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via typed msg structs.
// Progress updates flow through a channel from the recommendation engine, providing non-blocking status reporting during runs.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
