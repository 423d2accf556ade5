package main

import (
	"context"

	"github.com/desertthunder/reprise/internal/shared"
	"github.com/urfave/cli/v3"
)

// Setup writes a starter config file for editing.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if err := shared.CreateConfigFile(configPath); err != nil {
		return err
	}

	r.logger.Info("config file created", "path", configPath)

	r.writePlain("✓ Config written to %s\n", configPath)
	r.writePlainln("Next steps:")
	r.writePlain("1. Add your Spotify client_id and client_secret to %s\n", configPath)
	r.writePlain("2. Start the ytmusicapi proxy and point proxy_url at it\n")
	r.writePlain("3. Run 'reprise serve' and open the printed URL\n")

	return nil
}

// Version prints the build version.
func (r *Runner) Version(ctx context.Context, cmd *cli.Command) error {
	return r.writePlain("reprise %s\n", version)
}
