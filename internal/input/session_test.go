package input

import (
	"errors"
	"testing"

	"github.com/go-logr/logr"

	"calorieburn/internal/analysis"
	"calorieburn/internal/report"
)

func newTestSession() *Session {
	return NewSession(nil, analysis.Male, logr.Discard())
}

func TestSessionDefaults(t *testing.T) {
	s := newTestSession()

	want := map[string]float64{
		KeyAge:         25,
		KeyHeight:      170,
		KeyWeight:      70,
		KeyDuration:    30,
		KeyHeartRate:   120,
		KeyBodyTemp:    37.0,
		KeyCalorieGoal: 500,
	}
	for key, v := range want {
		if got := s.Value(key); got != v {
			t.Errorf("Value(%q) = %v, want %v", key, got, v)
		}
	}
	if s.ID() == "" {
		t.Error("session ID should not be empty")
	}
}

func TestSessionDefaultOverrides(t *testing.T) {
	s := NewSession(map[string]float64{KeyAge: 40, KeyCalorieGoal: 800}, analysis.Female, logr.Discard())

	if got := s.Value(KeyAge); got != 40 {
		t.Errorf("Value(age) = %v, want 40", got)
	}
	if got := s.Value(KeyHeight); got != 170 {
		t.Errorf("Value(height) = %v, want table default 170", got)
	}
	if s.Profile().Gender != analysis.Female {
		t.Errorf("Gender = %v, want Female", s.Profile().Gender)
	}
}

func TestSyncPropagatesToAllBindings(t *testing.T) {
	tests := []struct {
		name  string
		src   Source
		value float64
	}{
		{"slider edit reaches entry", SourceSlider, 42},
		{"entry edit reaches slider", SourceEntry, 63},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession()
			if err := s.Sync(KeyAge, tt.value, tt.src); err != nil {
				t.Fatalf("Sync() error = %v", err)
			}

			c, err := s.Cell(KeyAge)
			if err != nil {
				t.Fatalf("Cell() error = %v", err)
			}
			if c.Value() != tt.value {
				t.Errorf("canonical = %v, want %v", c.Value(), tt.value)
			}
			for _, src := range []Source{SourceSlider, SourceEntry} {
				got, ok := c.Slot(src)
				if !ok {
					t.Fatalf("no %s slot", src)
				}
				if got != tt.value {
					t.Errorf("%s slot = %v, want %v", src, got, tt.value)
				}
			}
		})
	}
}

func TestSyncLastEditWins(t *testing.T) {
	s := newTestSession()

	edits := []struct {
		src Source
		v   float64
	}{
		{SourceSlider, 150},
		{SourceEntry, 152},
		{SourceSlider, 149},
		{SourceEntry, 151},
	}
	for _, e := range edits {
		if err := s.Sync(KeyHeartRate, e.v, e.src); err != nil {
			t.Fatalf("Sync() error = %v", err)
		}
	}

	if got := s.Workout().HeartRateBPM; got != 151 {
		t.Errorf("HeartRateBPM = %v, want 151", got)
	}
}

func TestCellNotResetOnLaterLookup(t *testing.T) {
	s := newTestSession()
	if err := s.Sync(KeyWeight, 88, SourceSlider); err != nil {
		t.Fatalf("Sync() error = %v", err)
	}

	// repeated lookups model re-renders
	for i := 0; i < 3; i++ {
		c, err := s.Cell(KeyWeight)
		if err != nil {
			t.Fatalf("Cell() error = %v", err)
		}
		if c.Value() != 88 {
			t.Fatalf("Value after lookup %d = %v, want 88", i, c.Value())
		}
	}
}

func TestSyncErrors(t *testing.T) {
	s := newTestSession()

	if err := s.Sync("shoe_size", 42, SourceEntry); !errors.Is(err, ErrUnknownField) {
		t.Errorf("Sync(unknown) error = %v, want ErrUnknownField", err)
	}
	if err := s.Sync(KeyBodyTemp, 38, SourceSlider); !errors.Is(err, ErrUnboundSource) {
		t.Errorf("Sync(body_temp, slider) error = %v, want ErrUnboundSource", err)
	}
	if got := s.Value(KeyBodyTemp); got != 37.0 {
		t.Errorf("rejected edit changed body_temp to %v", got)
	}
}

func TestSubscribersNotified(t *testing.T) {
	s := newTestSession()
	c, err := s.Cell(KeyDuration)
	if err != nil {
		t.Fatalf("Cell() error = %v", err)
	}

	var gotSrc Source
	var gotVal float64
	calls := 0
	c.Subscribe(func(src Source, v float64) {
		calls++
		gotSrc, gotVal = src, v
	})

	if err := s.Sync(KeyDuration, 45, SourceSlider); err != nil {
		t.Fatalf("Sync() error = %v", err)
	}

	if calls != 1 {
		t.Errorf("subscriber called %d times, want 1", calls)
	}
	if gotSrc != SourceSlider || gotVal != 45 {
		t.Errorf("subscriber got (%s, %v), want (slider, 45)", gotSrc, gotVal)
	}
}

func TestSnapshots(t *testing.T) {
	s := newTestSession()
	s.SetGender(analysis.Female)
	mustSync(t, s, KeyAge, 33, SourceEntry)
	mustSync(t, s, KeyHeight, 181, SourceSlider)
	mustSync(t, s, KeyWeight, 77, SourceEntry)
	mustSync(t, s, KeyBodyTemp, 37.6, SourceEntry)
	mustSync(t, s, KeyDuration, 45, SourceSlider)
	mustSync(t, s, KeyHeartRate, 140, SourceEntry)
	mustSync(t, s, KeyCalorieGoal, 650, SourceEntry)

	p := s.Profile()
	want := analysis.Profile{Age: 33, Gender: analysis.Female, HeightCM: 181, WeightKG: 77, BodyTempC: 37.6}
	if p != want {
		t.Errorf("Profile() = %+v, want %+v", p, want)
	}

	w := s.Workout()
	wantW := analysis.Workout{DurationMin: 45, HeartRateBPM: 140, CalorieGoalKcal: 650}
	if w != wantW {
		t.Errorf("Workout() = %+v, want %+v", w, wantW)
	}
}

func TestReportCommit(t *testing.T) {
	s := newTestSession()
	if _, ok := s.Report(); ok {
		t.Fatal("new session should have no report")
	}

	r := report.Report{Age: 25, Calories: 150}
	s.Commit(r)

	got, ok := s.Report()
	if !ok {
		t.Fatal("expected report after Commit")
	}
	if got != r {
		t.Errorf("Report() = %+v, want %+v", got, r)
	}
}

func mustSync(t *testing.T, s *Session, key string, v float64, src Source) {
	t.Helper()
	if err := s.Sync(key, v, src); err != nil {
		t.Fatalf("Sync(%s) error = %v", key, err)
	}
}
