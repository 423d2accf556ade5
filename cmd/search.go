package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/reprise/internal/models"
	"github.com/desertthunder/reprise/internal/shared"
	"github.com/urfave/cli/v3"
)

// Search queries the YouTube Music proxy for songs matching a query.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	if r.ytmusic == nil {
		return fmt.Errorf("%w: YouTube Music service not initialized", shared.ErrServiceUnavailable)
	}

	query := cmd.StringArg("query")
	if query == "" {
		return fmt.Errorf("%w: search query", shared.ErrMissingArgument)
	}

	limit := cmd.Int("limit")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	r.logger.Info("searching youtube music", "query", query, "limit", limit)

	results, err := r.ytmusic.SearchSongs(ctx, query, limit)
	if err != nil {
		return err
	}

	if useJSON {
		return r.writeJSON(results, pretty)
	}

	if len(results) == 0 {
		r.writePlain("No songs found for %q\n", query)
		return nil
	}

	r.writePlain("Found %d songs:\n\n", len(results))
	for i, result := range results {
		artist := models.UnknownArtist
		if len(result.Artists) > 0 {
			artist = result.Artists[0]
		}
		r.writePlain("%d. %s - %s\n", i+1, artist, result.Title)
		if result.Album != "" {
			r.writePlain("   Album: %s\n", result.Album)
		}
		if result.Duration != "" {
			r.writePlain("   Duration: %s\n", result.Duration)
		}
		if result.Views != "" {
			r.writePlain("   Views: %s\n", result.Views)
		}
		r.writePlain("   ID: %s\n\n", result.VideoID)
	}

	return nil
}
