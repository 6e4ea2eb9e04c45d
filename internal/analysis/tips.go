package analysis

import "math"

var bmiTips = Scale[string]{
	{18.5, "Focus on nutrient-rich foods and gradual strength training to support healthy weight gain."},
	{25, "Maintain your healthy lifestyle with a balance of cardio and strength workouts."},
	{30, "Regular moderate-intensity workouts and mindful eating can help manage weight effectively."},
	{math.Inf(1), "Consider low-impact exercises and consult a healthcare professional for a personalized plan."},
}

var intensityTips = Scale[string]{
	{70, "Light-to-moderate intensity workout. Ideal for endurance and recovery days."},
	{85, "Great cardio intensity! Ensure adequate hydration and recovery."},
	{math.Inf(1), "High-intensity session detected. Limit such workouts to short durations to avoid overtraining."},
}

var burnRateTips = Scale[string]{
	{6, "Low calorie burn rate. Consider increasing duration or intensity gradually."},
	{10, "Moderate calorie burn rate. Consistency will lead to long-term benefits."},
	{math.Inf(1), "High calorie burn rate. Ensure sufficient calorie intake to support recovery."},
}

// RecoveryReminder is shown after every prediction
const RecoveryReminder = "Allow your body time to rest after this workout. " +
	"Proper sleep, hydration, and stretching are essential for muscle recovery and injury prevention."

// Tips returns one tip per rule group, ordered BMI, intensity, burn rate
func Tips(m Metrics) []string {
	return []string{
		bmiTips.Lookup(m.BMI),
		intensityTips.Lookup(m.IntensityPct),
		burnRateTips.Lookup(m.BurnRate),
	}
}
