package main

import (
	"context"
	"os"

	"github.com/desertthunder/reprise/internal/services"
	"github.com/desertthunder/reprise/internal/shared"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
)

const version = "0.2.0"

func main() {
	godotenv.Load()

	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	var spotifyService services.Source
	if svc, err := services.NewSpotifyService(
		config.Credentials.Spotify.ClientID,
		config.Credentials.Spotify.ClientSecret,
		config.Credentials.Spotify.RedirectURI,
	); err == nil {
		spotifyService = svc
	}

	youtubeService := services.NewYTMusicService(config.Credentials.YouTube.ProxyURL)

	runner := NewRunner(RunnerOpts{
		Config:     config,
		ConfigPath: "config.toml",
		Spotify:    spotifyService,
		YTMusic:    youtubeService,
		Logger:     logger,
	})

	app := &cli.Command{
		Name:     "reprise",
		Usage:    "Discover songs similar to a Spotify playlist",
		Version:  version,
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
