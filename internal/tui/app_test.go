package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-logr/logr"

	"calorieburn/internal/analysis"
	"calorieburn/internal/input"
	"calorieburn/internal/predictor"
	"calorieburn/internal/report"
	"calorieburn/internal/service"
)

// perMinute burns a fixed amount per workout minute
type perMinute float64

func (p perMinute) Predict(f predictor.Features) (float64, error) {
	return f[predictor.FeatDuration] * float64(p), nil
}

func newTestApp(t *testing.T) (*App, *input.Session) {
	t.Helper()
	sess := input.NewSession(nil, analysis.Male, logr.Discard())
	svc := service.NewPredictionService(perMinute(5), logr.Discard())
	return NewApp(sess, svc, t.TempDir()), sess
}

func press(a *App, msgs ...tea.KeyMsg) {
	for _, msg := range msgs {
		a.Update(msg)
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyBack  = tea.KeyMsg{Type: tea.KeyBackspace}
)

func TestSliderUpdatesEntry(t *testing.T) {
	a, sess := newTestApp(t)

	press(a, keyRight, keyRight, keyRight, keyLeft)

	if got := sess.Value(input.KeyAge); got != 27 {
		t.Fatalf("age = %v, want 27", got)
	}
	if got := a.inputs.rows[0].entry.Value(); got != "27" {
		t.Errorf("entry text = %q, want %q", got, "27")
	}
}

func TestSliderStopsAtBounds(t *testing.T) {
	a, sess := newTestApp(t)
	c, _ := sess.Cell(input.KeyAge)

	for i := 0; i < 100; i++ {
		press(a, keyRight)
	}

	if got := c.Value(); got != 80 {
		t.Errorf("age = %v, want max 80", got)
	}
}

func TestEntryUpdatesSlider(t *testing.T) {
	a, sess := newTestApp(t)

	// age row: clear "25" and type 40
	press(a, keyEnter, keyBack, keyBack, runes("40"), keyEnter)

	if a.inputs.Editing() {
		t.Fatal("entry should lose focus after enter")
	}
	c, _ := sess.Cell(input.KeyAge)
	slot, _ := c.Slot(input.SourceSlider)
	if slot != 40 {
		t.Errorf("slider slot = %v, want 40", slot)
	}
}

func TestEntryClampsOutOfRange(t *testing.T) {
	a, sess := newTestApp(t)

	press(a, keyEnter, keyBack, keyBack, runes("300"), keyEnter)

	if got := sess.Value(input.KeyAge); got != 80 {
		t.Errorf("age = %v, want clamped 80", got)
	}
	if got := a.inputs.rows[0].entry.Value(); got != "80" {
		t.Errorf("entry text = %q, want 80", got)
	}
}

func TestEntryRejectsText(t *testing.T) {
	a, sess := newTestApp(t)

	press(a, keyEnter, keyBack, keyBack, runes("abc"), keyEnter)

	if !a.inputs.Editing() {
		t.Error("entry should stay focused after a bad value")
	}
	if a.inputs.err == nil {
		t.Error("expected a parse error")
	}

	press(a, keyEsc)
	if a.inputs.Editing() {
		t.Error("esc should cancel editing")
	}
	if got := a.inputs.rows[0].entry.Value(); got != "25" {
		t.Errorf("entry text = %q, want restored 25", got)
	}
	if got := sess.Value(input.KeyAge); got != 25 {
		t.Errorf("age = %v, want unchanged 25", got)
	}
}

func TestGenderToggle(t *testing.T) {
	a, sess := newTestApp(t)

	press(a, keyDown, keyRight)
	if sess.Gender() != analysis.Female {
		t.Fatalf("gender = %v, want Female", sess.Gender())
	}
	press(a, keyEnter)
	if sess.Gender() != analysis.Male {
		t.Errorf("gender = %v, want Male", sess.Gender())
	}
}

func TestEntryOnlyFieldHasNoSlider(t *testing.T) {
	a, sess := newTestApp(t)

	// move to body temperature
	for i := 0; i < 6; i++ {
		press(a, keyDown)
	}
	press(a, keyRight)

	if a.inputs.err == nil {
		t.Error("expected an error for a field without a slider")
	}
	if got := sess.Value(input.KeyBodyTemp); got != 37.0 {
		t.Errorf("body temp = %v, want unchanged 37.0", got)
	}
}

func TestPredictShowsResults(t *testing.T) {
	a, sess := newTestApp(t)

	press(a, runes("p"))

	if a.screen != ScreenResults {
		t.Fatalf("screen = %v, want results", a.screen)
	}
	if a.results.result == nil {
		t.Fatal("expected a result")
	}
	if got := a.results.result.Metrics.Calories; got != 150 {
		t.Errorf("calories = %v, want 150", got)
	}
	if _, ok := sess.Report(); !ok {
		t.Error("session should hold a report after predicting")
	}
}

func TestNavigationKeysIgnoredWhileEditing(t *testing.T) {
	a, sess := newTestApp(t)

	press(a, keyEnter, keyBack, keyBack, runes("2"), runes("1"), keyEnter)

	if a.screen != ScreenInputs {
		t.Errorf("screen = %v, want inputs", a.screen)
	}
	if got := sess.Value(input.KeyAge); got != 21 {
		t.Errorf("age = %v, want 21", got)
	}
}

func TestExport(t *testing.T) {
	t.Run("before any prediction", func(t *testing.T) {
		a, _ := newTestApp(t)
		msg := a.export()()
		exported, ok := msg.(exportedMsg)
		if !ok {
			t.Fatalf("msg = %T, want exportedMsg", msg)
		}
		if exported.err == nil {
			t.Error("expected error before first prediction")
		}
	})

	t.Run("after prediction", func(t *testing.T) {
		a, _ := newTestApp(t)
		press(a, runes("p"))

		msg := a.export()().(exportedMsg)
		if msg.err != nil {
			t.Fatalf("export error = %v", msg.err)
		}
		if filepath.Base(msg.path) != report.Filename {
			t.Errorf("path = %q, want %s", msg.path, report.Filename)
		}
		if _, err := os.Stat(msg.path); err != nil {
			t.Errorf("report not written: %v", err)
		}
	})
}

func TestResultsPromptBeforePrediction(t *testing.T) {
	m := NewResultsModel(0, 0)
	if got := m.renderContent(); !strings.Contains(got, "No prediction yet") {
		t.Errorf("expected prompt, got %q", got)
	}
}
