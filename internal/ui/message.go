package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/reprise/internal/models"
	"github.com/desertthunder/reprise/internal/recommend"
)

var (
	_ tea.Msg = progressUpdateMsg{}
	_ tea.Msg = runCompleteMsg{}
)

// progressUpdateMsg carries one engine progress update into the Elm loop.
type progressUpdateMsg recommend.ProgressUpdate

// runCompleteMsg signals the end of a recommendation run.
type runCompleteMsg struct {
	recommendations []models.Recommendation
	err             error
}
