package analysis

import "math"

// BMI calculates body mass index: weight (kg) / height (m)^2
// Returns 0 for a non-positive height
func BMI(weightKG, heightCM float64) float64 {
	if heightCM <= 0 {
		return 0
	}
	heightM := heightCM / 100
	return weightKG / (heightM * heightM)
}

// MaxHR estimates maximum heart rate as 220 - age.
// The result is non-positive for age >= 220; IntensityPct guards that case.
func MaxHR(age int) int {
	return 220 - age
}

// IntensityPct returns heart rate as a percentage of max HR.
// Not capped at 100 when heart rate exceeds the estimate.
func IntensityPct(heartRate, maxHR int) float64 {
	if maxHR <= 0 {
		return 0
	}
	return float64(heartRate) / float64(maxHR) * 100
}

// BurnRate returns calories burned per minute of exercise
func BurnRate(calories float64, durationMin int) float64 {
	if durationMin <= 0 {
		return 0
	}
	return calories / float64(durationMin)
}

// GoalProgress returns the fraction of the calorie goal achieved, capped at 1
func GoalProgress(calories float64, goalKcal int) float64 {
	if goalKcal <= 0 {
		return 0
	}
	return math.Max(0, math.Min(calories/float64(goalKcal), 1))
}

// CaloriesLeft returns how many kcal remain until the goal is reached
func CaloriesLeft(calories float64, goalKcal int) float64 {
	return math.Max(float64(goalKcal)-calories, 0)
}

// Compute derives all session metrics from the inputs and a calorie estimate
func Compute(p Profile, w Workout, calories float64) Metrics {
	maxHR := MaxHR(p.Age)
	return Metrics{
		BMI:          BMI(float64(p.WeightKG), float64(p.HeightCM)),
		MaxHR:        maxHR,
		IntensityPct: IntensityPct(w.HeartRateBPM, maxHR),
		Calories:     calories,
		BurnRate:     BurnRate(calories, w.DurationMin),
		GoalProgress: GoalProgress(calories, w.CalorieGoalKcal),
	}
}
