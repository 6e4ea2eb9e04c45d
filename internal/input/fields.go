package input

import (
	"fmt"
	"math"
	"strconv"
)

// Source identifies which representation of a field produced an edit
type Source string

const (
	SourceSlider Source = "slider" // coarse control
	SourceEntry  Source = "entry"  // precise numeric field
)

// Field keys
const (
	KeyAge         = "age"
	KeyHeight      = "height"
	KeyWeight      = "weight"
	KeyDuration    = "duration"
	KeyHeartRate   = "heart_rate"
	KeyBodyTemp    = "body_temp"
	KeyCalorieGoal = "calorie_goal"
)

// Field describes one logical input value and the controls that present it
type Field struct {
	Key       string
	Label     string
	Unit      string
	Min       float64
	Max       float64
	Default   float64
	Step      float64
	Precision int // decimal places shown in the entry control
	Bindings  []Source
}

var dual = []Source{SourceSlider, SourceEntry}
var entryOnly = []Source{SourceEntry}

// Fields lists every numeric input in display order
var Fields = []Field{
	{Key: KeyAge, Label: "Age", Unit: "yrs", Min: 10, Max: 80, Default: 25, Step: 1, Bindings: dual},
	{Key: KeyHeight, Label: "Height", Unit: "cm", Min: 120, Max: 220, Default: 170, Step: 1, Bindings: dual},
	{Key: KeyWeight, Label: "Weight", Unit: "kg", Min: 30, Max: 150, Default: 70, Step: 1, Bindings: dual},
	{Key: KeyDuration, Label: "Exercise Duration", Unit: "min", Min: 1, Max: 180, Default: 30, Step: 1, Bindings: dual},
	{Key: KeyHeartRate, Label: "Heart Rate", Unit: "bpm", Min: 60, Max: 200, Default: 120, Step: 1, Bindings: dual},
	{Key: KeyBodyTemp, Label: "Body Temperature", Unit: "°C", Min: 35.0, Max: 42.0, Default: 37.0, Step: 0.1, Precision: 1, Bindings: entryOnly},
	{Key: KeyCalorieGoal, Label: "Daily Calorie Goal", Unit: "kcal", Min: 100, Max: 2000, Default: 500, Step: 10, Bindings: entryOnly},
}

// Lookup returns the field with the given key
func Lookup(key string) (Field, bool) {
	for _, f := range Fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// Clamp bounds v to the field's domain and snaps it to the entry precision
func (f Field) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return f.Default
	}
	v = math.Max(f.Min, math.Min(f.Max, v))
	scale := math.Pow(10, float64(f.Precision))
	return math.Round(v*scale) / scale
}

// Contains reports whether v lies inside the field's domain
func (f Field) Contains(v float64) bool {
	return v >= f.Min && v <= f.Max
}

// BoundTo reports whether the field is presented by the given source
func (f Field) BoundTo(src Source) bool {
	for _, b := range f.Bindings {
		if b == src {
			return true
		}
	}
	return false
}

// Format renders v with the field's precision
func (f Field) Format(v float64) string {
	return strconv.FormatFloat(v, 'f', f.Precision, 64)
}

// Parse reads user text as a value for this field, clamped to its domain
func (f Field) Parse(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a number", f.Label, s)
	}
	return f.Clamp(v), nil
}

// Fraction returns where v sits within the domain, from 0 to 1
func (f Field) Fraction(v float64) float64 {
	if f.Max <= f.Min {
		return 0
	}
	return (v - f.Min) / (f.Max - f.Min)
}
