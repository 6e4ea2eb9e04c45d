package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"calorieburn/internal/analysis"
	"calorieburn/internal/input"
)

const sliderWidth = 24

// InputsModel is the input form: one slider and one entry per field
type InputsModel struct {
	session *input.Session
	keys    keyMap
	rows    []inputRow
	cursor  int
	editing bool
	err     error
}

type inputRow struct {
	field  input.Field
	gender bool
	entry  *textinput.Model
}

// NewInputsModel creates the form over a session's cells
func NewInputsModel(sess *input.Session, keys keyMap) InputsModel {
	m := InputsModel{session: sess, keys: keys}

	for _, f := range input.Fields {
		c, err := sess.Cell(f.Key)
		if err != nil {
			continue
		}

		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 7
		ti.Width = 8
		ti.SetValue(f.Format(c.Value()))
		entry := &ti

		// keep the entry text in step with every write, whichever control made it
		field := f
		c.Subscribe(func(_ input.Source, v float64) {
			entry.SetValue(field.Format(v))
		})

		m.rows = append(m.rows, inputRow{field: f, entry: entry})

		if f.Key == input.KeyAge {
			m.rows = append(m.rows, inputRow{gender: true})
		}
	}

	return m
}

// Init initializes the form
func (m InputsModel) Init() tea.Cmd {
	return nil
}

// Editing reports whether an entry currently has focus
func (m InputsModel) Editing() bool {
	return m.editing
}

// Update handles messages
func (m InputsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.editing {
			row := m.rows[m.cursor]
			var cmd tea.Cmd
			*row.entry, cmd = row.entry.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if m.editing {
		return m.updateEditing(keyMsg)
	}

	switch {
	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		m.err = nil
	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
		m.err = nil
	case key.Matches(keyMsg, m.keys.Left):
		m.adjust(-1)
	case key.Matches(keyMsg, m.keys.Right):
		m.adjust(1)
	case key.Matches(keyMsg, m.keys.Edit):
		row := m.rows[m.cursor]
		if row.gender {
			m.toggleGender()
			return m, nil
		}
		m.editing = true
		m.err = nil
		row.entry.CursorEnd()
		return m, row.entry.Focus()
	}

	return m, nil
}

func (m InputsModel) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	row := m.rows[m.cursor]

	switch {
	case key.Matches(msg, m.keys.Edit):
		v, err := row.field.Parse(strings.TrimSpace(row.entry.Value()))
		if err != nil {
			m.err = err
			return m, nil
		}
		if err := m.session.Sync(row.field.Key, v, input.SourceEntry); err != nil {
			m.err = err
			return m, nil
		}
		m.finishEditing()
		return m, nil

	case key.Matches(msg, m.keys.Cancel):
		row.entry.SetValue(row.field.Format(m.session.Value(row.field.Key)))
		m.finishEditing()
		return m, nil
	}

	var cmd tea.Cmd
	*row.entry, cmd = row.entry.Update(msg)
	return m, cmd
}

func (m *InputsModel) finishEditing() {
	m.rows[m.cursor].entry.Blur()
	m.editing = false
	m.err = nil
}

// adjust moves the current field's slider one step in dir
func (m *InputsModel) adjust(dir float64) {
	row := m.rows[m.cursor]
	if row.gender {
		m.toggleGender()
		return
	}

	f := row.field
	if !f.BoundTo(input.SourceSlider) {
		m.err = fmt.Errorf("%s has no slider, press enter to type a value", f.Label)
		return
	}

	c, err := m.session.Cell(f.Key)
	if err != nil {
		m.err = err
		return
	}
	current, _ := c.Slot(input.SourceSlider)
	if err := m.session.Sync(f.Key, f.Clamp(current+dir*f.Step), input.SourceSlider); err != nil {
		m.err = err
		return
	}
	m.err = nil
}

func (m *InputsModel) toggleGender() {
	if m.session.Gender() == analysis.Male {
		m.session.SetGender(analysis.Female)
	} else {
		m.session.SetGender(analysis.Male)
	}
	m.err = nil
}

// View renders the form
func (m InputsModel) View() string {
	var sections []string

	sections = append(sections, cardTitleStyle.Render("Your Details & Workout"))

	for i, row := range m.rows {
		sections = append(sections, m.renderRow(i, row))
	}

	if m.err != nil {
		sections = append(sections, "", errorStyle.Render("  "+m.err.Error()))
	}

	hint := "←/→ move a slider · enter types a value · p predicts calories burned"
	if m.editing {
		hint = "enter to apply · esc to cancel"
	}
	sections = append(sections, statusStyle.Render(hint))

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m InputsModel) renderRow(i int, row inputRow) string {
	prefix := "  "
	if i == m.cursor {
		prefix = cursorStyle.Render("> ")
	}

	if row.gender {
		male := mutedStyle.Render("Male")
		female := mutedStyle.Render("Female")
		if m.session.Gender() == analysis.Male {
			male = navActiveStyle.Render("[Male]")
		} else {
			female = navActiveStyle.Render("[Female]")
		}
		return prefix + fieldLabelStyle.Render("Gender") + male + "  " + female
	}

	f := row.field
	c, err := m.session.Cell(f.Key)
	if err != nil {
		return prefix + errorStyle.Render(err.Error())
	}

	slider := strings.Repeat(" ", sliderWidth)
	if v, ok := c.Slot(input.SourceSlider); ok {
		slider = RenderProgressBar(f.Fraction(v), sliderWidth)
	}

	style := entryStyle
	if i == m.cursor {
		style = entryActiveStyle
	}

	return lipgloss.JoinHorizontal(lipgloss.Left,
		prefix,
		fieldLabelStyle.Render(f.Label),
		slider,
		" ",
		style.Render(row.entry.View()),
		metricUnitStyle.Render(fmt.Sprintf(" %s  (%s–%s)", f.Unit, f.Format(f.Min), f.Format(f.Max))),
	)
}
