package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/desertthunder/reprise/internal/formatter"
	"github.com/desertthunder/reprise/internal/models"
	"github.com/desertthunder/reprise/internal/recommend"
	"github.com/desertthunder/reprise/internal/server"
	"github.com/desertthunder/reprise/internal/services"
	"github.com/desertthunder/reprise/internal/shared"
	"github.com/desertthunder/reprise/internal/ui"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
)

// Recommend runs the full pipeline from the terminal: OAuth, playlist fetch,
// YouTube Music searches, ranking.
func (r *Runner) Recommend(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd.String("config"))
	if err != nil {
		return err
	}

	if r.spotify == nil {
		return fmt.Errorf("%w: Spotify service not initialized, add credentials to the config file", shared.ErrServiceUnavailable)
	}

	link := cmd.String("playlist")
	if link == "" {
		input := huh.NewInput().
			Title("Spotify playlist link").
			Placeholder("https://open.spotify.com/playlist/...").
			Value(&link)
		if err := input.Run(); err != nil {
			return fmt.Errorf("failed to read playlist link: %w", err)
		}
	}
	if link == "" {
		return fmt.Errorf("%w: playlist link", shared.ErrMissingArgument)
	}

	if checker, ok := r.ytmusic.(services.HealthChecker); ok {
		check := func(ctx context.Context) error { return checker.Health(ctx) }
		if err := spinner.New().Title("Checking YouTube Music proxy...").Context(ctx).ActionWithErr(check).Run(); err != nil {
			return fmt.Errorf("YouTube Music proxy unreachable: %w", err)
		}
	}

	token, err := r.doOAuth(ctx, config)
	if err != nil {
		return err
	}

	r.logger.Info("authorization complete", "playlist", services.ParsePlaylistLink(link))

	if cmd.Bool("interactive") {
		return r.browse(ctx, token, link)
	}

	progressCh := make(chan recommend.ProgressUpdate, 50)
	go func() {
		for update := range progressCh {
			switch update.Phase {
			case recommend.FetchTracks:
				r.writePlain("📥 %s\n", update.Message)
			case recommend.SearchTracks:
				if update.Step == 0 {
					r.writePlain("\n🔍 %s\n", update.Message)
				} else {
					r.writePlain("   %s\n", update.Message)
				}
			case recommend.RankCandidates:
				r.writePlain("\n📊 %s\n", update.Message)
			}
		}
	}()

	recommendations, err := r.engine.Run(ctx, token, link, progressCh)
	close(progressCh)

	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(recommendations, cmd.Bool("pretty"))
	}

	if outputPath := cmd.String("output"); outputPath != "" || cmd.Bool("save") {
		format, err := formatter.ParseFormat(cmd.String("format"))
		if err != nil {
			return err
		}
		path, err := formatter.WriteExport(recommendations, services.ParsePlaylistLink(link), format, outputPath)
		if err != nil {
			return err
		}
		r.writePlain("\n✓ Recommendations written to %s\n", path)
		return nil
	}

	r.writePlain("\n")
	r.writePlainHeader("Recommendations")
	if len(recommendations) == 0 {
		r.writePlain("No recommendations found.\n")
		return nil
	}

	r.writePlain("Found %d similar songs:\n\n", len(recommendations))
	for i, rec := range recommendations {
		r.writePlain("%d. %s - %s\n", i+1, rec.Artist, rec.Title)
		if rec.Album != "" && rec.Album != models.UnknownAlbum {
			r.writePlain("   Album: %s\n", rec.Album)
		}
		if rec.Views != "" && rec.Views != models.DefaultViews {
			r.writePlain("   Views: %s\n", rec.Views)
		}
		r.writePlain("   Suggested: %d times\n\n", rec.Count)
	}

	return nil
}

// doOAuth executes the OAuth2 authorization flow with a local HTTP server.
func (r *Runner) doOAuth(ctx context.Context, config *shared.Config) (*oauth2.Token, error) {
	state, err := shared.GenerateState()
	if err != nil {
		return nil, fmt.Errorf("failed to generate state token: %w", err)
	}

	authURL := r.spotify.AuthURL(state)
	oauthHandler := server.NewOAuthHandler(r.spotify, state)

	router := server.NewBasicRouter()
	router.Handler(oauthHandler)

	httpServer := &http.Server{
		Addr:    config.Addr(),
		Handler: router,
	}

	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Info("starting OAuth callback server", "addr", config.Addr())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	// Give the server a moment to start
	time.Sleep(100 * time.Millisecond)

	r.writePlain("→ Opening browser for Spotify authorization...\n")
	if err := shared.OpenBrowser(authURL); err != nil {
		r.logger.Warnf("failed to open browser automatically %v", err)
		r.writePlainln("⚠ Could not open browser automatically.")
		r.writePlain("Please open this URL in your browser:\n%s\n\n", authURL)
	}

	r.writePlain("→ Waiting for authorization (2 minute timeout)...\n")

	timeout := time.NewTimer(2 * time.Minute)
	defer timeout.Stop()

	var result server.OAuthResult

	select {
	case result = <-oauthHandler.Result():
	case err := <-serverErrors:
		return nil, fmt.Errorf("server error: %w", err)
	case <-timeout.C:
		return nil, fmt.Errorf("%w: authorization timed out after 2 minutes", shared.ErrTimeout)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		r.logger.Warn("error shutting down server", "error", err)
	}

	if result.Error() != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAuthFailed, result.Error())
	}
	if result.Token == nil {
		return nil, fmt.Errorf("%w: no token received", shared.ErrAuthFailed)
	}

	return result.Token, nil
}

// browse hands the authorized run to the TUI.
func (r *Runner) browse(ctx context.Context, token *oauth2.Token, link string) error {
	// Redirect logs to a file so they don't interfere with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/reprise-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	model := ui.NewModel(ctx, r.engine, token, link)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
