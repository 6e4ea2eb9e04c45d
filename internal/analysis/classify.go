package analysis

import (
	"math"
	"sort"
)

// Band maps every value below Upper (and at or above the previous band's
// Upper) to Value
type Band[T any] struct {
	Upper float64
	Value T
}

// Scale is an ordered range table. Bands must be sorted by Upper and the last
// band should use math.Inf(1) so every value matches.
type Scale[T any] []Band[T]

// Lookup returns the first band whose Upper is strictly greater than v.
// Values past the final bound (including NaN) fall into the last band.
func (s Scale[T]) Lookup(v float64) T {
	i := sort.Search(len(s), func(i int) bool { return v < s[i].Upper })
	if i == len(s) {
		i = len(s) - 1
	}
	return s[i].Value
}

// Classification is a categorical label with its display color and advice
type Classification struct {
	Label   string `json:"label"`
	Color   string `json:"color"`
	Message string `json:"message"`
}

// BMI categories
const (
	Underweight = "Underweight"
	Normal      = "Normal"
	Overweight  = "Overweight"
	Obese       = "Obese"
)

// Intensity zones
const (
	FatBurnZone = "Fat Burn Zone"
	CardioZone  = "Cardio Zone"
	PeakZone    = "Peak Zone"
)

// BMIScale classifies raw BMI values
var BMIScale = Scale[Classification]{
	{18.5, Classification{Underweight, "#3b82f6", "You may need to focus on healthy weight gain and nutrition."}},
	{25, Classification{Normal, "#22c55e", "You are in a healthy weight range. Keep it up!"}},
	{30, Classification{Overweight, "#facc15", "Consider regular exercise and balanced nutrition."}},
	{math.Inf(1), Classification{Obese, "#ef4444", "It's recommended to consult a healthcare professional."}},
}

// IntensityScale classifies intensity as a percentage of max HR
var IntensityScale = Scale[Classification]{
	{70, Classification{FatBurnZone, "#22c55e", "Light to moderate intensity. Great for endurance and fat loss."}},
	{85, Classification{CardioZone, "#facc15", "Moderate to high intensity. Ideal for cardiovascular fitness."}},
	{math.Inf(1), Classification{PeakZone, "#ef4444", "Very high intensity. Suitable for short bursts only."}},
}

// ClassifyBMI returns the BMI category for an unrounded BMI value
func ClassifyBMI(bmi float64) Classification {
	return BMIScale.Lookup(bmi)
}

// ClassifyIntensity returns the workout intensity zone
func ClassifyIntensity(intensityPct float64) Classification {
	return IntensityScale.Lookup(intensityPct)
}
