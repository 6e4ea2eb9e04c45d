// Package predictor adapts a pretrained calorie regression model.
//
// The model is trained elsewhere and shipped as an artifact file. Feature
// order and encoding are a contract with that artifact:
//
//	[gender(0|1), age, height_cm, weight_kg, duration_min, heart_rate_bpm, body_temp_c, bmi]
//
// Loading validates the artifact once; afterwards a Model is read-only and
// safe to share.
package predictor

import (
	"errors"
	"fmt"
	"math"

	"calorieburn/internal/analysis"
)

// FeatureNames is the column order the model was trained with
var FeatureNames = [NumFeatures]string{
	"Gender", "Age", "Height", "Weight", "Duration", "Heart_Rate", "Body_Temp", "BMI",
}

// NumFeatures is the length of the model input vector
const NumFeatures = 8

// Feature indexes
const (
	FeatGender = iota
	FeatAge
	FeatHeight
	FeatWeight
	FeatDuration
	FeatHeartRate
	FeatBodyTemp
	FeatBMI
)

// ErrModelNotFound is returned when the artifact file doesn't exist
var ErrModelNotFound = errors.New("model artifact not found")

// ErrMalformedModel is returned when the artifact can't be decoded or is internally inconsistent
var ErrMalformedModel = errors.New("model artifact is malformed")

// ErrIncompatibleModel is returned when the artifact expects different features
var ErrIncompatibleModel = errors.New("model artifact is incompatible")

// ErrNonFinite is returned when the model produces NaN or an infinity
var ErrNonFinite = errors.New("model produced a non-finite estimate")

// Features is the ordered model input
type Features [NumFeatures]float64

// NewFeatures encodes a profile and workout in model order.
// BMI is computed from the raw (unrounded) height and weight.
func NewFeatures(p analysis.Profile, w analysis.Workout) Features {
	return Features{
		FeatGender:    float64(p.Gender),
		FeatAge:       float64(p.Age),
		FeatHeight:    float64(p.HeightCM),
		FeatWeight:    float64(p.WeightKG),
		FeatDuration:  float64(w.DurationMin),
		FeatHeartRate: float64(w.HeartRateBPM),
		FeatBodyTemp:  p.BodyTempC,
		FeatBMI:       analysis.BMI(float64(p.WeightKG), float64(p.HeightCM)),
	}
}

// Predictor estimates kilocalories burned
type Predictor interface {
	Predict(f Features) (float64, error)
}

// regressor is implemented by each artifact kind
type regressor interface {
	predict(f Features) float64
}

// Model is a loaded calorie model
type Model struct {
	kind string
	reg  regressor
}

// Kind returns the artifact kind ("linear" or "tree_ensemble")
func (m *Model) Kind() string {
	return m.kind
}

// Predict returns a non-negative calorie estimate
func (m *Model) Predict(f Features) (float64, error) {
	for i, v := range f {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("feature %s is %v", FeatureNames[i], v)
		}
	}

	y := m.reg.predict(f)
	if math.IsNaN(y) || math.IsInf(y, 0) {
		return 0, ErrNonFinite
	}
	return math.Max(y, 0), nil
}
