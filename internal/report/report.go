package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"calorieburn/internal/analysis"
)

// Filename is the name the exported session report is saved under
const Filename = "calorie_burn_session_report.csv"

// Header lists the column names in export order. The order is part of the
// export format and must not change between versions.
var Header = []string{
	"Age",
	"Gender",
	"Height (cm)",
	"Weight (kg)",
	"Duration (min)",
	"Heart Rate (bpm)",
	"Body Temperature (°C)",
	"Calories Burned (kcal)",
	"Calories Burn Rate (kcal/min)",
	"Workout Intensity Zone",
	"Intensity (% of Max HR)",
	"BMI",
	"BMI Category",
	"Daily Calorie Goal (kcal)",
	"Goal Completion (%)",
}

// Report is the flat record produced by one prediction.
// Values are already rounded for display.
type Report struct {
	Age             int     `json:"age"`
	Gender          string  `json:"gender"`
	HeightCM        int     `json:"height_cm"`
	WeightKG        int     `json:"weight_kg"`
	DurationMin     int     `json:"duration_min"`
	HeartRateBPM    int     `json:"heart_rate_bpm"`
	BodyTempC       float64 `json:"body_temp_c"`
	Calories        float64 `json:"calories_kcal"`     // 1 dp
	BurnRate        float64 `json:"burn_rate_kcal_min"` // 2 dp
	IntensityZone   string  `json:"intensity_zone"`
	IntensityPct    int     `json:"intensity_pct"`
	BMI             float64 `json:"bmi"` // 2 dp
	BMICategory     string  `json:"bmi_category"`
	CalorieGoalKcal int     `json:"calorie_goal_kcal"`
	GoalCompletion  int     `json:"goal_completion_pct"`
}

// Assemble builds the report from raw inputs, raw metrics and the labels
// they were classified with
func Assemble(p analysis.Profile, w analysis.Workout, m analysis.Metrics, bmiCategory, zone string) Report {
	return Report{
		Age:             p.Age,
		Gender:          p.Gender.String(),
		HeightCM:        p.HeightCM,
		WeightKG:        p.WeightKG,
		DurationMin:     w.DurationMin,
		HeartRateBPM:    w.HeartRateBPM,
		BodyTempC:       round(p.BodyTempC, 1),
		Calories:        round(m.Calories, 1),
		BurnRate:        round(m.BurnRate, 2),
		IntensityZone:   zone,
		IntensityPct:    int(math.Round(m.IntensityPct)),
		BMI:             round(m.BMI, 2),
		BMICategory:     bmiCategory,
		CalorieGoalKcal: w.CalorieGoalKcal,
		GoalCompletion:  int(math.Round(m.GoalProgress * 100)),
	}
}

// Values returns the report's fields as text, in Header order
func (r Report) Values() []string {
	return []string{
		strconv.Itoa(r.Age),
		r.Gender,
		strconv.Itoa(r.HeightCM),
		strconv.Itoa(r.WeightKG),
		strconv.Itoa(r.DurationMin),
		strconv.Itoa(r.HeartRateBPM),
		strconv.FormatFloat(r.BodyTempC, 'f', 1, 64),
		strconv.FormatFloat(r.Calories, 'f', 1, 64),
		strconv.FormatFloat(r.BurnRate, 'f', 2, 64),
		r.IntensityZone,
		strconv.Itoa(r.IntensityPct),
		strconv.FormatFloat(r.BMI, 'f', 2, 64),
		r.BMICategory,
		strconv.Itoa(r.CalorieGoalKcal),
		strconv.Itoa(r.GoalCompletion),
	}
}

// WriteCSV writes the header row and a single data row
func (r Report) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := cw.Write(r.Values()); err != nil {
		return fmt.Errorf("writing row: %w", err)
	}
	cw.Flush()
	return cw.Error()
}

// CSV returns the encoded report
func (r Report) CSV() ([]byte, error) {
	var buf bytes.Buffer
	if err := r.WriteCSV(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes the report to dir/Filename and returns the full path
func (r Report) Save(dir string) (string, error) {
	data, err := r.CSV()
	if err != nil {
		return "", fmt.Errorf("encoding report: %w", err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating report directory: %w", err)
	}

	path := filepath.Join(dir, Filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing report file: %w", err)
	}
	return path, nil
}

func round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
