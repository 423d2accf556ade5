package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/reprise/internal/models"
	"github.com/desertthunder/reprise/internal/recommend"
	"golang.org/x/oauth2"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	ProgressView ViewState = iota
	ListView
	DetailView
)

// Model represents the TUI application state.
type Model struct {
	ctx             context.Context
	view            ViewState
	engine          *recommend.Engine
	token           *oauth2.Token
	link            string
	width           int
	height          int
	list            list.Model
	recommendations []models.Recommendation
	selected        *models.Recommendation
	progressChan    chan recommend.ProgressUpdate
	progress        recommend.ProgressUpdate
	runErr          error
	err             error
	help            help.Model
	keys            keyMap
}

// NewModel creates a new TUI model for one recommendation run.
func NewModel(ctx context.Context, engine *recommend.Engine, token *oauth2.Token, link string) *Model {
	return &Model{
		ctx:    ctx,
		view:   ProgressView,
		engine: engine,
		token:  token,
		link:   link,
		help:   help.New(),
		keys:   newKeyMap(),
	}
}

// Init starts the recommendation run.
func (m *Model) Init() tea.Cmd {
	return m.startRun()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.list.Width() == 0 {
			m.list.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case ListView:
			return m.handleListKeys(msg)
		case DetailView:
			return m.handleDetailKeys(msg)
		default:
			if msg.String() == "q" || msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
		}

	case progressUpdateMsg:
		m.progress = recommend.ProgressUpdate(msg)
		return m, m.waitForProgress()

	case runCompleteMsg:
		m.err = msg.err
		m.recommendations = msg.recommendations
		m.progressChan = nil

		items := make([]list.Item, len(msg.recommendations))
		for i, rec := range msg.recommendations {
			items[i] = recommendationItem{rec: rec, rank: i + 1}
		}
		m.list = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.list.Title = "Recommended Songs"
		m.list.SetSize(m.width-4, m.height-8)
		m.view = ListView
		return m, nil
	}

	return m.updateList(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case ProgressView:
		return m.renderProgress()
	case ListView:
		return m.renderList()
	case DetailView:
		return m.renderDetail()
	default:
		return ""
	}
}

func (m *Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter":
		selected := m.list.SelectedItem()
		if selected != nil {
			if item, ok := selected.(recommendationItem); ok {
				rec := item.rec
				m.selected = &rec
				m.view = DetailView
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.selected = nil
		m.view = ListView
		return m, nil
	}
	return m, nil
}

func (m *Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.view == ListView {
		m.list, cmd = m.list.Update(msg)
	}
	return m, cmd
}

// startRun launches the engine in a goroutine and begins draining progress.
func (m *Model) startRun() tea.Cmd {
	m.progressChan = make(chan recommend.ProgressUpdate, 50)

	go func() {
		recommendations, err := m.engine.Run(m.ctx, m.token, m.link, m.progressChan)
		m.recommendations = recommendations
		m.runErr = err
		close(m.progressChan)
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	return func() tea.Msg {
		if m.progressChan == nil {
			return runCompleteMsg{recommendations: m.recommendations, err: m.runErr}
		}

		update, ok := <-m.progressChan
		if !ok {
			return runCompleteMsg{recommendations: m.recommendations, err: m.runErr}
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) renderProgress() string {
	title := styles.title.Render("Building Recommendations")

	var phase string
	switch m.progress.Phase {
	case recommend.FetchTracks:
		phase = "Fetching playlist tracks..."
	case recommend.SearchTracks:
		phase = fmt.Sprintf("Searching tracks (%d/%d)", m.progress.Step, m.progress.Total)
	case recommend.RankCandidates:
		phase = "Ranking candidates..."
	case recommend.Done:
		phase = styles.ok.Render("Done")
	default:
		phase = "Processing..."
	}

	return fmt.Sprintf("%s\n\n%s\n%s", title, phase, m.progress.Message)
}

func (m *Model) renderList() string {
	if len(m.recommendations) == 0 {
		title := styles.warn.Render("No recommendations found")
		helpView := m.help.ShortHelpView([]key.Binding{m.keys.quit})
		return fmt.Sprintf("%s\n\n%s", title, helpView)
	}

	helpKeys := []key.Binding{m.keys.enter, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.list.View(), helpView)
}

func (m *Model) renderDetail() string {
	if m.selected == nil {
		return m.renderList()
	}

	title := styles.title.Render(m.selected.Title)
	info := fmt.Sprintf(
		"Artist: %s\nAlbum: %s\nViews: %s\nSuggested: %d times",
		m.selected.Artist,
		m.selected.Album,
		m.selected.Views,
		m.selected.Count,
	)
	source := styles.help.Render(fmt.Sprintf("Found via %s", m.selected.SpotifyURL))

	helpKeys := []key.Binding{m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n\n%s\n\n%s", title, info, source, helpView)
}
