package service

import (
	"errors"
	"fmt"

	"github.com/go-logr/logr"

	"calorieburn/internal/analysis"
	"calorieburn/internal/input"
	"calorieburn/internal/predictor"
	"calorieburn/internal/report"
)

// ErrPrediction is returned when the model call fails
var ErrPrediction = errors.New("prediction failed")

// ErrNoModel is returned when no model has been loaded
var ErrNoModel = errors.New("no calorie model loaded")

// PredictionService runs one prediction action over a session's inputs
type PredictionService struct {
	predictor predictor.Predictor
	logger    logr.Logger
}

// NewPredictionService creates a prediction service around a loaded model
func NewPredictionService(p predictor.Predictor, logger logr.Logger) *PredictionService {
	return &PredictionService{
		predictor: p,
		logger:    logger.WithName("predict"),
	}
}

// Result is everything the presentation layer needs after one prediction.
// It is built fresh for every prediction and never modified afterwards.
type Result struct {
	Profile      analysis.Profile        `json:"profile"`
	Workout      analysis.Workout        `json:"workout"`
	Metrics      analysis.Metrics        `json:"metrics"`
	BMI          analysis.Classification `json:"bmi_category"`
	Zone         analysis.Classification `json:"intensity_zone"`
	Tips         []string                `json:"tips"`
	CaloriesLeft float64                 `json:"calories_left"`
	Report       report.Report           `json:"report"`
	Projection   []ProjectionPoint       `json:"projection,omitempty"`
}

// Predict snapshots the session's inputs and derives a full result. When the
// model call fails the session keeps its previous report.
func (s *PredictionService) Predict(sess *input.Session) (*Result, error) {
	profile := sess.Profile()
	workout := sess.Workout()

	res, err := s.Evaluate(profile, workout)
	if err != nil {
		s.logger.Error(err, "prediction aborted", "session", sess.ID())
		return nil, err
	}

	sess.Commit(res.Report)
	s.logger.Info("prediction complete",
		"session", sess.ID(),
		"calories", res.Report.Calories,
		"bmi_category", res.BMI.Label,
		"zone", res.Zone.Label)
	return res, nil
}

// Evaluate runs the model and derives metrics for explicit inputs
func (s *PredictionService) Evaluate(p analysis.Profile, w analysis.Workout) (*Result, error) {
	calories, err := s.estimate(p, w)
	if err != nil {
		return nil, err
	}

	metrics := analysis.Compute(p, w, calories)
	bmi := analysis.ClassifyBMI(metrics.BMI)
	zone := analysis.ClassifyIntensity(metrics.IntensityPct)

	res := &Result{
		Profile:      p,
		Workout:      w,
		Metrics:      metrics,
		BMI:          bmi,
		Zone:         zone,
		Tips:         analysis.Tips(metrics),
		CaloriesLeft: analysis.CaloriesLeft(calories, w.CalorieGoalKcal),
		Report:       report.Assemble(p, w, metrics, bmi.Label, zone.Label),
	}

	// The projection is supplementary; a failure here doesn't void the prediction
	projection, err := s.Project(p, w)
	if err != nil {
		s.logger.V(1).Info("skipping duration projection", "error", err.Error())
	} else {
		res.Projection = projection
	}

	return res, nil
}

func (s *PredictionService) estimate(p analysis.Profile, w analysis.Workout) (float64, error) {
	if s.predictor == nil {
		return 0, fmt.Errorf("%w: %w", ErrPrediction, ErrNoModel)
	}
	calories, err := s.predictor.Predict(predictor.NewFeatures(p, w))
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrPrediction, err)
	}
	return calories, nil
}
