package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-logr/logr"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"calorieburn/internal/config"
	"calorieburn/internal/input"
	"calorieburn/internal/logging"
	"calorieburn/internal/predictor"
	"calorieburn/internal/service"
	"calorieburn/internal/tui"
)

// rootCmd launches the interactive dashboard
var rootCmd = &cobra.Command{
	Use:   "calorieburn",
	Short: "Estimate calories burned during a workout",
	Long:  longDescription,

	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	RunE:              runDashboard,
}

var (
	cfgFile   string
	modelPath string
	verbosity int

	// cfg is the effective configuration, loaded before any command runs
	cfg *config.Config
)

const longDescription = "Calorie Burn Dashboard estimates the calories burned during a workout " +
	"from your age, gender, height, weight, duration, heart rate and body temperature, " +
	"and derives BMI, heart rate intensity and goal progress alongside the estimate."

// SetVersion sets the version for the CLI
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetRootCmd returns the root command for use with fang
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.calorieburn/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&modelPath, "model", "", "calorie model artifact (.json or .yaml), overrides model.path")
	rootCmd.PersistentFlags().IntVar(&verbosity, "verbosity", -1, "log verbosity, overrides log.verbosity")

	rootCmd.AddCommand(predictCmd, serveCmd, configCmd)
}

// loadConfig reads .env, the config file and flag overrides, in that order
func loadConfig(cmd *cobra.Command, args []string) error {
	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	loaded, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if modelPath != "" {
		loaded.Model.Path = modelPath
	}
	if verbosity >= 0 {
		loaded.Log.Verbosity = verbosity
	}

	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	cfg = loaded
	return nil
}

// newService loads the model eagerly; a bad artifact stops the command
// before any input is accepted
func newService(logger logr.Logger) (*service.PredictionService, error) {
	model, err := predictor.Load(cfg.Model.Path)
	if err != nil {
		return nil, fmt.Errorf("loading model: %w", err)
	}
	logger.Info("model loaded", "path", cfg.Model.Path, "kind", model.Kind())
	return service.NewPredictionService(model, logger), nil
}

// newSession seeds a session from the configured defaults
func newSession(logger logr.Logger) *input.Session {
	return input.NewSession(cfg.Defaults.Map(), cfg.Defaults.GenderValue(), logger)
}

// openLog logs to the configured file, or to the given default path
func openLog(defaultPath string) (logr.Logger, io.Closer, error) {
	path := cfg.Log.File
	if path == "" {
		path = defaultPath
	}
	return logging.Open(path, cfg.Log.Verbosity)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	// The alt screen owns the terminal, so logs go to a file
	configDir, err := config.GetConfigDir()
	if err != nil {
		return err
	}
	logger, closer, err := openLog(filepath.Join(configDir, "calorieburn.log"))
	if err != nil {
		return err
	}
	defer closer.Close()

	svc, err := newService(logger)
	if err != nil {
		return err
	}

	app := tui.NewApp(newSession(logger), svc, cfg.Report.Dir)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}
