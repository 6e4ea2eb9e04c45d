package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// HelpModel is the help screen model
type HelpModel struct {
	keys keyMap
}

// NewHelpModel creates a new help model
func NewHelpModel(keys keyMap) HelpModel {
	return HelpModel{keys: keys}
}

// Init initializes the help screen
func (m HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m, nil
}

// View renders the help screen
func (m HelpModel) View() string {
	var sections []string

	sections = append(sections, cardTitleStyle.Render("Keyboard Shortcuts"))

	sections = append(sections, m.renderSection("Navigation",
		m.keys.Inputs, m.keys.Results, m.keys.Help, m.keys.Cancel, m.keys.Quit))
	sections = append(sections, m.renderSection("Inputs",
		m.keys.Up, m.keys.Down, m.keys.Left, m.keys.Right, m.keys.Edit))
	sections = append(sections, m.renderSection("Results",
		m.keys.Predict, m.keys.Export))

	sections = append(sections, m.renderMetricsHelp())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m HelpModel) renderSection(title string, bindings ...key.Binding) string {
	var lines []string

	lines = append(lines, "")
	lines = append(lines, sectionStyle.Render(title))

	for _, b := range bindings {
		h := b.Help()
		lines = append(lines, "  "+RenderKeyHelp(h.Key, h.Desc))
	}

	return strings.Join(lines, "\n")
}

func (m HelpModel) renderMetricsHelp() string {
	var lines []string

	lines = append(lines, "")
	lines = append(lines, sectionStyle.Render("Metrics Explained"))
	lines = append(lines, "")

	metrics := []struct {
		name string
		desc string
	}{
		{"BMI", "Weight (kg) / height (m)². Under 18.5 underweight, under 25 normal, under 30 overweight."},
		{"Max Heart Rate", "Estimated as 220 - age."},
		{"Intensity", "Heart rate as a percentage of max heart rate."},
		{"Zones", "Under 70% fat burn, under 85% cardio, otherwise peak."},
		{"Burn Rate", "Predicted calories divided by workout minutes."},
		{"Goal Completion", "Predicted calories against the daily goal, capped at 100%."},
	}

	for _, metric := range metrics {
		lines = append(lines, "  "+helpKeyStyle.Render(metric.name))
		lines = append(lines, "  "+mutedStyle.Render(metric.desc))
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}
