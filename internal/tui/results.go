package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"calorieburn/internal/analysis"
	"calorieburn/internal/service"
)

// chrome above and below the viewport: header, nav, footer
const resultsChromeHeight = 8

// ResultsModel is the results screen model
type ResultsModel struct {
	result   *service.Result
	err      error
	status   string
	goal     progress.Model
	viewport viewport.Model
	width    int
	height   int
	ready    bool
}

// NewResultsModel creates an empty results screen
func NewResultsModel(width, height int) ResultsModel {
	m := ResultsModel{
		goal:   progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		width:  width,
		height: height,
	}

	if width > 0 && height > 0 {
		m.viewport = viewport.New(width, height-resultsChromeHeight)
		m.ready = true
	}

	return m
}

// Init initializes the results screen
func (m ResultsModel) Init() tea.Cmd {
	return nil
}

type predictionMsg struct {
	result *service.Result
	err    error
}

type exportedMsg struct {
	path string
	err  error
}

// Update handles messages
func (m ResultsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case predictionMsg:
		// a failed prediction keeps the last good result on screen
		m.err = msg.err
		if msg.err == nil {
			m.result = msg.result
			m.status = ""
		}
		m.refresh()

	case exportedMsg:
		if msg.err != nil {
			m.status = errorStyle.Render(fmt.Sprintf("Export failed: %v", msg.err))
		} else {
			m.status = successStyle.Render("Report saved to " + msg.path)
		}
		m.refresh()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-resultsChromeHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - resultsChromeHeight
		}
		m.refresh()
	}

	// Handle viewport scrolling
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *ResultsModel) refresh() {
	if m.ready {
		m.viewport.SetContent(m.renderContent())
	}
}

// View renders the results screen
func (m ResultsModel) View() string {
	if !m.ready {
		return m.renderContent()
	}

	footer := statusStyle.Render("  j/k or arrows: scroll  p: predict again  e: export report")
	return lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), footer)
}

func (m ResultsModel) renderContent() string {
	var sections []string

	if m.err != nil {
		sections = append(sections, errorStyle.Render(fmt.Sprintf("  Prediction failed: %v", m.err)))
	}
	if m.status != "" {
		sections = append(sections, "  "+m.status)
	}

	if m.result == nil {
		sections = append(sections, m.renderPrompt())
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	r := m.result
	sections = append(sections,
		lipgloss.JoinHorizontal(lipgloss.Top, m.renderBurnCard(r), "  ", m.renderGoalCard(r)),
		m.renderContribution(r),
		lipgloss.JoinHorizontal(lipgloss.Top, m.renderBMICard(r), "  ", m.renderZoneCard(r)),
	)
	if len(r.Projection) > 2 {
		sections = append(sections, m.renderProjection(r))
	}
	sections = append(sections, m.renderReportCard(r), m.renderTips(r))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m ResultsModel) renderPrompt() string {
	lines := []string{
		cardTitleStyle.Render("No prediction yet"),
		"Adjust your details and workout on the inputs screen,",
		"then press " + helpKeyStyle.Render("p") + " to estimate calories burned.",
	}
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m ResultsModel) renderBurnCard(r *service.Result) string {
	title := cardTitleStyle.Render("Calories Burned")

	lines := []string{
		headlineStyle.Render(fmt.Sprintf("%.1f kcal", r.Metrics.Calories)),
		"",
		RenderMetric("Burn Rate", fmt.Sprintf("%.2f", r.Metrics.BurnRate), "kcal/min"),
		"",
		mutedStyle.Render(fmt.Sprintf("At this pace you burn about %.2f calories per minute.", r.Metrics.BurnRate)),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(40).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m ResultsModel) renderGoalCard(r *service.Result) string {
	title := cardTitleStyle.Render("Daily Goal Progress")

	lines := []string{
		m.goal.ViewAs(r.Metrics.GoalProgress),
		"",
		RenderMetric("Goal", fmt.Sprintf("%d", r.Workout.CalorieGoalKcal), "kcal"),
		RenderMetric("Completion", fmt.Sprintf("%d", r.Report.GoalCompletion), "%"),
		RenderMetric("Left to Goal", fmt.Sprintf("%.1f", r.CaloriesLeft), "kcal"),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(48).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m ResultsModel) renderContribution(r *service.Result) string {
	title := cardTitleStyle.Render("Activity Contribution")

	row := lipgloss.JoinHorizontal(lipgloss.Top,
		RenderMetric("Duration", fmt.Sprintf("%d", r.Workout.DurationMin), "min"),
		"   ",
		RenderMetric("Heart Rate", fmt.Sprintf("%d", r.Workout.HeartRateBPM), "bpm"),
		"   ",
		RenderMetric("Body Temp", fmt.Sprintf("%.1f", r.Profile.BodyTempC), "°C"),
	)
	note := mutedStyle.Render("These factors collectively influence calorie burn but are measured in different units.")

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, row, "", note))
}

func (m ResultsModel) renderBMICard(r *service.Result) string {
	title := cardTitleStyle.Render("BMI Health Insight")

	lines := []string{
		RenderLabel(r.BMI.Label, r.BMI.Color),
		RenderMetric("BMI Value", fmt.Sprintf("%.2f", r.Report.BMI), ""),
		"",
		mutedStyle.Width(36).Render(r.BMI.Message),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(44).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m ResultsModel) renderZoneCard(r *service.Result) string {
	title := cardTitleStyle.Render("Workout Intensity Zone")

	lines := []string{
		RenderLabel(r.Zone.Label, r.Zone.Color),
		RenderMetric("Intensity", fmt.Sprintf("%.1f", r.Metrics.IntensityPct), "% of max HR"),
		RenderMetric("Heart Rate", fmt.Sprintf("%d", r.Workout.HeartRateBPM), "bpm"),
		RenderMetric("Max Heart Rate", fmt.Sprintf("%d", r.Metrics.MaxHR), "bpm"),
		"",
		mutedStyle.Width(40).Render(r.Zone.Message),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(48).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m ResultsModel) renderProjection(r *service.Result) string {
	first := r.Projection[0].DurationMin
	last := r.Projection[len(r.Projection)-1].DurationMin
	title := cardTitleStyle.Render(fmt.Sprintf("Projected Burn by Duration (%d-%d min)", first, last))

	graph := asciigraph.Plot(service.ProjectionSeries(r.Projection),
		asciigraph.Height(8),
		asciigraph.Width(60),
		asciigraph.Precision(0),
	)

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, graph))
}

func (m ResultsModel) renderReportCard(r *service.Result) string {
	title := cardTitleStyle.Render("Session Report Card")
	rep := r.Report

	user := section("User Details",
		RenderMetric("Age", fmt.Sprintf("%d", rep.Age), "yrs"),
		RenderMetric("Gender", rep.Gender, ""),
		RenderMetric("Height", fmt.Sprintf("%d", rep.HeightCM), "cm"),
		RenderMetric("Weight", fmt.Sprintf("%d", rep.WeightKG), "kg"),
	)
	health := section("Health Metrics",
		RenderMetric("BMI", fmt.Sprintf("%.2f", rep.BMI), "("+rep.BMICategory+")"),
		RenderMetric("Heart Rate", fmt.Sprintf("%d", rep.HeartRateBPM), "bpm"),
		RenderMetric("Body Temp", fmt.Sprintf("%.1f", rep.BodyTempC), "°C"),
	)
	workout := section("Workout Summary",
		RenderMetric("Duration", fmt.Sprintf("%d", rep.DurationMin), "min"),
		RenderMetric("Calories Burned", fmt.Sprintf("%.1f", rep.Calories), "kcal"),
		RenderMetric("Burn Rate", fmt.Sprintf("%.2f", rep.BurnRate), "kcal/min"),
	)
	insight := section("Performance Insight",
		RenderMetric("Intensity Zone", rep.IntensityZone, ""),
		RenderMetric("Intensity Level", fmt.Sprintf("%d", rep.IntensityPct), "% of max HR"),
		RenderMetric("Daily Goal", fmt.Sprintf("%d", rep.CalorieGoalKcal), "kcal"),
		RenderMetric("Goal Completion", fmt.Sprintf("%d", rep.GoalCompletion), "%"),
	)

	grid := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, user, "    ", health),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, workout, "    ", insight),
	)
	note := mutedStyle.Render("Values are model estimates and for informational purposes only.")

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, grid, "", note))
}

func (m ResultsModel) renderTips(r *service.Result) string {
	title := cardTitleStyle.Render("Personalized Tips & Recovery")

	var lines []string
	for _, tip := range r.Tips {
		lines = append(lines, "• "+tip)
	}
	lines = append(lines, "", warningStyle.Render("Recovery Reminder"), mutedStyle.Width(80).Render(analysis.RecoveryReminder))

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, strings.Join(lines, "\n")))
}

func section(title string, rows ...string) string {
	return lipgloss.JoinVertical(lipgloss.Left, append([]string{sectionStyle.Render(title)}, rows...)...)
}
