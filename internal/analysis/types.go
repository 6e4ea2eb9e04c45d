package analysis

import "fmt"

// Gender is the biological sex used by the calorie model
type Gender int

const (
	Male   Gender = 0
	Female Gender = 1
)

// String returns the display label
func (g Gender) String() string {
	if g == Female {
		return "Female"
	}
	return "Male"
}

// ParseGender parses a display label or model code ("0"/"1")
func ParseGender(s string) (Gender, error) {
	switch s {
	case "Male", "male", "M", "m", "0":
		return Male, nil
	case "Female", "female", "F", "f", "1":
		return Female, nil
	}
	return Male, fmt.Errorf("unknown gender %q", s)
}

// MarshalText encodes the display label
func (g Gender) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// UnmarshalText accepts anything ParseGender does
func (g *Gender) UnmarshalText(text []byte) error {
	parsed, err := ParseGender(string(text))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// Profile holds the user's biometric inputs
type Profile struct {
	Age       int     `json:"age"`
	Gender    Gender  `json:"gender"`
	HeightCM  int     `json:"height_cm"`
	WeightKG  int     `json:"weight_kg"`
	BodyTempC float64 `json:"body_temp_c"`
}

// Workout holds the inputs describing one exercise session
type Workout struct {
	DurationMin     int `json:"duration_min"`
	HeartRateBPM    int `json:"heart_rate_bpm"`
	CalorieGoalKcal int `json:"calorie_goal_kcal"`
}

// Metrics are the values derived for one prediction.
// All fields are raw; rounding happens only for display and export.
type Metrics struct {
	BMI          float64 `json:"bmi"`
	MaxHR        int     `json:"max_hr"`
	IntensityPct float64 `json:"intensity_pct"`
	Calories     float64 `json:"calories"`
	BurnRate     float64 `json:"burn_rate"`
	GoalProgress float64 `json:"goal_progress"` // 0.0 to 1.0
}
