package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"calorieburn/internal/input"
	"calorieburn/internal/service"
)

// Screen identifiers
type Screen int

const (
	ScreenInputs Screen = iota
	ScreenResults
	ScreenHelp
)

// errNoReport is reported when exporting before any successful prediction
var errNoReport = errors.New("no report yet, press p to predict first")

// App is the root Bubble Tea model
type App struct {
	screen     Screen
	prevScreen Screen

	// Screen models
	inputs  InputsModel
	results ResultsModel
	help    HelpModel

	keys    keyMap
	helpBar help.Model

	// Session state and services
	session   *input.Session
	svc       *service.PredictionService
	reportDir string

	// Window dimensions
	width  int
	height int
}

// NewApp creates a new App over one session
func NewApp(sess *input.Session, svc *service.PredictionService, reportDir string) *App {
	keys := newKeyMap()
	return &App{
		screen:    ScreenInputs,
		inputs:    NewInputsModel(sess, keys),
		results:   NewResultsModel(0, 0),
		help:      NewHelpModel(keys),
		keys:      keys,
		helpBar:   help.New(),
		session:   sess,
		svc:       svc,
		reportDir: reportDir,
	}
}

// Init initializes the app
func (a *App) Init() tea.Cmd {
	return a.inputs.Init()
}

// Update handles messages
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// While typing into an entry every key belongs to it
		if a.screen == ScreenInputs && a.inputs.Editing() {
			if msg.String() == "ctrl+c" {
				return a, tea.Quit
			}
			break
		}

		switch {
		case key.Matches(msg, a.keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, a.keys.Inputs):
			a.screen = ScreenInputs
			return a, nil
		case key.Matches(msg, a.keys.Results):
			a.screen = ScreenResults
			return a, nil
		case key.Matches(msg, a.keys.Help):
			if a.screen != ScreenHelp {
				a.prevScreen = a.screen
				a.screen = ScreenHelp
			}
			return a, nil
		case key.Matches(msg, a.keys.Cancel):
			if a.screen == ScreenHelp {
				a.screen = a.prevScreen
				return a, nil
			}
		case key.Matches(msg, a.keys.Predict):
			return a, a.predict()
		case key.Matches(msg, a.keys.Export):
			return a, a.export()
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.helpBar.Width = msg.Width
		// the results viewport sizes itself even while hidden
		m, cmd := a.results.Update(msg)
		a.results = m.(ResultsModel)
		return a, cmd

	case exportedMsg:
		m, cmd := a.results.Update(msg)
		a.results = m.(ResultsModel)
		return a, cmd
	}

	// Delegate to current screen
	var cmd tea.Cmd
	switch a.screen {
	case ScreenInputs:
		var m tea.Model
		m, cmd = a.inputs.Update(msg)
		a.inputs = m.(InputsModel)
	case ScreenResults:
		var m tea.Model
		m, cmd = a.results.Update(msg)
		a.results = m.(ResultsModel)
	case ScreenHelp:
		var m tea.Model
		m, cmd = a.help.Update(msg)
		a.help = m.(HelpModel)
	}

	return a, cmd
}

// predict runs the model on the session's current values and shows the result
func (a *App) predict() tea.Cmd {
	res, err := a.svc.Predict(a.session)
	m, cmd := a.results.Update(predictionMsg{result: res, err: err})
	a.results = m.(ResultsModel)
	a.screen = ScreenResults
	return cmd
}

// export writes the last committed report in the background
func (a *App) export() tea.Cmd {
	rep, ok := a.session.Report()
	if !ok {
		return func() tea.Msg { return exportedMsg{err: errNoReport} }
	}
	dir := a.reportDir
	return func() tea.Msg {
		path, err := rep.Save(dir)
		return exportedMsg{path: path, err: err}
	}
}

// View renders the app
func (a *App) View() string {
	header := headerStyle.Render("Calorie Burn Dashboard")
	nav := a.renderNav()

	var content string
	switch a.screen {
	case ScreenInputs:
		content = a.inputs.View()
	case ScreenResults:
		content = a.results.View()
	case ScreenHelp:
		content = a.help.View()
	}

	footer := statusStyle.Render(a.helpBar.View(a.keys))

	return lipgloss.JoinVertical(lipgloss.Left, header, nav, content, footer)
}

func (a *App) renderNav() string {
	items := []struct {
		key    string
		label  string
		screen Screen
	}{
		{"1", "Inputs", ScreenInputs},
		{"2", "Results", ScreenResults},
		{"?", "Help", ScreenHelp},
	}

	var nav string
	for i, item := range items {
		if i > 0 {
			nav += "  "
		}

		label := "[" + item.key + "] " + item.label
		if a.screen == item.screen {
			nav += navActiveStyle.Render(label)
		} else {
			nav += navInactiveStyle.Render(label)
		}
	}

	nav += "  " + navInactiveStyle.Render("[q] Quit")

	return navStyle.Render(nav)
}
