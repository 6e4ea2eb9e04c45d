package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"calorieburn/internal/analysis"
	"calorieburn/internal/apperr"
	"calorieburn/internal/input"
	"calorieburn/internal/service"
)

var (
	predictGender string
	predictValues = map[string]*float64{}
	predictCSV    bool
	predictOut    string
)

// flag name per input field
var predictFlags = map[string]string{
	input.KeyAge:         "age",
	input.KeyHeight:      "height",
	input.KeyWeight:      "weight",
	input.KeyDuration:    "duration",
	input.KeyHeartRate:   "heart-rate",
	input.KeyBodyTemp:    "body-temp",
	input.KeyCalorieGoal: "calorie-goal",
}

// predictCmd runs one prediction from flags
var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Run one prediction and print the results",
	Long: "Run one prediction with the given inputs. Inputs that are not set use the configured defaults. " +
		"Use --csv to print the session report as CSV or --out to save it to a directory.",
	Example: "  calorieburn predict --age 25 --gender male --duration 45 --heart-rate 140",
	Args:    cobra.NoArgs,
	RunE:    runPredict,
}

func init() {
	for _, f := range input.Fields {
		v := new(float64)
		predictValues[f.Key] = v
		predictCmd.Flags().Float64Var(v, predictFlags[f.Key], f.Default,
			fmt.Sprintf("%s in %s (%s-%s)", f.Label, f.Unit, f.Format(f.Min), f.Format(f.Max)))
	}
	predictCmd.Flags().StringVar(&predictGender, "gender", "", "Male or Female")
	predictCmd.Flags().BoolVar(&predictCSV, "csv", false, "print the session report as CSV")
	predictCmd.Flags().StringVar(&predictOut, "out", "", "save the session report to this directory")
}

func runPredict(cmd *cobra.Command, args []string) error {
	logger, closer, err := openLog("")
	if err != nil {
		return err
	}
	defer closer.Close()

	svc, err := newService(logger)
	if err != nil {
		return err
	}

	sess := newSession(logger)
	if cmd.Flags().Changed("gender") {
		g, err := analysis.ParseGender(predictGender)
		if err != nil {
			return apperr.Userf("--gender: %v", err)
		}
		sess.SetGender(g)
	}

	for _, f := range input.Fields {
		name := predictFlags[f.Key]
		if !cmd.Flags().Changed(name) {
			continue
		}
		v := *predictValues[f.Key]
		if !f.Contains(v) {
			return apperr.Userf("--%s must be between %s and %s, got %v", name, f.Format(f.Min), f.Format(f.Max), v)
		}
		if err := sess.Sync(f.Key, f.Clamp(v), input.SourceEntry); err != nil {
			return err
		}
	}

	res, err := svc.Predict(sess)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if predictCSV {
		if err := res.Report.WriteCSV(out); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
	} else {
		printSummary(out, res)
	}

	if predictOut != "" {
		path, err := res.Report.Save(predictOut)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Report saved to %s\n", path)
	}
	return nil
}

func printSummary(w io.Writer, res *service.Result) {
	rep := res.Report
	fmt.Fprintf(w, "Calories burned:   %.1f kcal\n", rep.Calories)
	fmt.Fprintf(w, "Burn rate:         %.2f kcal/min\n", rep.BurnRate)
	fmt.Fprintf(w, "Goal completion:   %d%% of %d kcal (%.1f kcal left)\n", rep.GoalCompletion, rep.CalorieGoalKcal, res.CaloriesLeft)
	fmt.Fprintf(w, "BMI:               %.2f (%s)\n", rep.BMI, rep.BMICategory)
	fmt.Fprintf(w, "Intensity:         %d%% of max HR %d bpm, %s\n", rep.IntensityPct, res.Metrics.MaxHR, rep.IntensityZone)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Tips:")
	for _, tip := range res.Tips {
		fmt.Fprintf(w, "  - %s\n", tip)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.TrimSpace(analysis.RecoveryReminder))
}
