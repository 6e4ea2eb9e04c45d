package service

import (
	"slices"

	"calorieburn/internal/analysis"
)

// ProjectionPoint is the estimated burn for one workout duration
type ProjectionPoint struct {
	DurationMin int     `json:"duration_min"`
	Calories    float64 `json:"calories"`
}

// Project estimates calories for the same profile and effort at evenly spaced
// durations across the duration domain. The caller's own duration is always
// included so the chart passes through the current prediction.
func (s *PredictionService) Project(p analysis.Profile, w analysis.Workout) ([]ProjectionPoint, error) {
	durations := projectionDurations(w.DurationMin)

	points := make([]ProjectionPoint, 0, len(durations))
	for _, d := range durations {
		at := w
		at.DurationMin = d
		calories, err := s.estimate(p, at)
		if err != nil {
			return nil, err
		}
		points = append(points, ProjectionPoint{DurationMin: d, Calories: calories})
	}
	return points, nil
}

// ProjectionSeries returns just the calorie values, for charting
func ProjectionSeries(points []ProjectionPoint) []float64 {
	series := make([]float64, len(points))
	for i, p := range points {
		series[i] = p.Calories
	}
	return series
}

// projectionDurations returns sorted, de-duplicated sample durations
func projectionDurations(current int) []int {
	step := (MaxDurationMin - MinDurationMin) / (ProjectionPoints - 1)
	if step < 1 {
		step = 1
	}

	out := make([]int, 0, ProjectionPoints+2)
	for d := MinDurationMin; d < MaxDurationMin; d += step {
		out = append(out, d)
	}
	out = append(out, MaxDurationMin)
	if current >= MinDurationMin && current <= MaxDurationMin {
		out = append(out, current)
	}

	slices.Sort(out)
	return slices.Compact(out)
}
