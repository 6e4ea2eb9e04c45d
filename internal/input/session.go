package input

import (
	"errors"
	"fmt"

	"github.com/go-logr/logr"
	"github.com/google/uuid"

	"calorieburn/internal/analysis"
	"calorieburn/internal/report"
)

// ErrUnknownField is returned when an edit names a field that doesn't exist
var ErrUnknownField = errors.New("unknown input field")

// ErrUnboundSource is returned when an edit comes from a control the field doesn't have
var ErrUnboundSource = errors.New("field has no such control")

// Session is the state bag for one user session. Cells are seeded lazily
// from the defaults on first use and are never reset afterwards.
type Session struct {
	id       string
	defaults map[string]float64
	cells    map[string]*Cell
	gender   analysis.Gender
	report   *report.Report
	logger   logr.Logger
}

// NewSession creates an empty session. Defaults override the field table's
// defaults by key; missing keys fall back to the table.
func NewSession(defaults map[string]float64, gender analysis.Gender, logger logr.Logger) *Session {
	s := &Session{
		id:       uuid.NewString(),
		defaults: defaults,
		cells:    make(map[string]*Cell),
		gender:   gender,
	}
	s.logger = logger.WithValues("session", s.id)
	return s
}

// ID returns the session identifier
func (s *Session) ID() string {
	return s.id
}

// Cell returns the cell for key, seeding it with its default on first use
func (s *Session) Cell(key string) (*Cell, error) {
	if c, ok := s.cells[key]; ok {
		return c, nil
	}
	f, ok := Lookup(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, key)
	}
	initial := f.Default
	if v, ok := s.defaults[key]; ok {
		initial = v
	}
	c := newCell(f, initial)
	s.cells[key] = c
	s.logger.V(1).Info("seeded field", "field", key, "value", initial)
	return c, nil
}

// Sync records an edit from one control and propagates it to the field's
// other controls. Values are trusted to be inside the field's domain.
func (s *Session) Sync(key string, value float64, src Source) error {
	c, err := s.Cell(key)
	if err != nil {
		return err
	}
	if !c.field.BoundTo(src) {
		return fmt.Errorf("%w: %s has no %s", ErrUnboundSource, key, src)
	}
	c.set(src, value)
	s.logger.V(1).Info("synced field", "field", key, "source", string(src), "value", value)
	return nil
}

// Value returns the canonical value of a field
func (s *Session) Value(key string) float64 {
	c, err := s.Cell(key)
	if err != nil {
		return 0
	}
	return c.Value()
}

// Gender returns the selected gender
func (s *Session) Gender() analysis.Gender {
	return s.gender
}

// SetGender changes the selected gender
func (s *Session) SetGender(g analysis.Gender) {
	s.gender = g
	s.logger.V(1).Info("synced field", "field", "gender", "value", g.String())
}

// Profile snapshots the biometric inputs
func (s *Session) Profile() analysis.Profile {
	return analysis.Profile{
		Age:       int(s.Value(KeyAge)),
		Gender:    s.gender,
		HeightCM:  int(s.Value(KeyHeight)),
		WeightKG:  int(s.Value(KeyWeight)),
		BodyTempC: s.Value(KeyBodyTemp),
	}
}

// Workout snapshots the workout inputs
func (s *Session) Workout() analysis.Workout {
	return analysis.Workout{
		DurationMin:     int(s.Value(KeyDuration)),
		HeartRateBPM:    int(s.Value(KeyHeartRate)),
		CalorieGoalKcal: int(s.Value(KeyCalorieGoal)),
	}
}

// Report returns the report from the last successful prediction
func (s *Session) Report() (report.Report, bool) {
	if s.report == nil {
		return report.Report{}, false
	}
	return *s.report, true
}

// Commit replaces the session report after a successful prediction
func (s *Session) Commit(r report.Report) {
	s.report = &r
}
