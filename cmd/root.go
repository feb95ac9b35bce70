package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/axsim/sim-cli/internal/imagediff"
	"github.com/axsim/sim-cli/internal/logger"
	"github.com/axsim/sim-cli/internal/output"
	"github.com/axsim/sim-cli/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "sim-cli",
	Short: "Inspect and drive the iOS Simulator from the command line",
	Long: `A CLI tool that lets AI agents and scripts inspect and drive the iOS
Simulator: accessibility snapshots, element queries, touch gestures, and
visual regression checks, all in device points.`,
}

// errFailed signals an operation that already printed its structured
// failure result; only the exit code remains.
var errFailed = errors.New("operation failed")

func Execute() {
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("format", "yaml", "Output format: yaml, json")
	rootCmd.PersistentFlags().Bool("pretty", false, "Pretty-print JSON output")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		format, _ := rootCmd.PersistentFlags().GetString("format")
		switch format {
		case "yaml":
			output.OutputFormat = output.FormatYAML
		case "json":
			output.OutputFormat = output.FormatJSON
		default:
			return fmt.Errorf("unsupported format: %s (use yaml or json)", format)
		}
		if pretty, err := cmd.Flags().GetBool("pretty"); err == nil && pretty {
			output.PrettyOutput = true
		}

		level, _ := rootCmd.PersistentFlags().GetString("log-level")
		if level == "" {
			level = viper.GetString("log.level")
		}
		logger.SetLevel(level)
		return nil
	}
}

// initConfig loads ~/.sim-cli.yaml and SIM_CLI_* environment variables.
func initConfig() {
	viper.SetConfigName(".sim-cli")
	viper.SetConfigType("yaml")
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
	}
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("SIM_CLI")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("log.level", "warn")
	viper.SetDefault("diff.threshold", imagediff.DefaultThreshold)
	viper.SetDefault("diff.noise_floor", imagediff.DefaultNoiseFloor)
	viper.SetDefault("gesture.tap_duration_ms", 100)
	viper.SetDefault("gesture.long_press_duration_ms", 600)
	viper.SetDefault("gesture.swipe_duration_ms", 300)
	viper.SetDefault("gesture.drag_duration_ms", 500)
	viper.SetDefault("serve.cache_ttl_ms", 500)

	// Missing config file is fine; defaults and env cover everything.
	_ = viper.ReadInConfig()
}
