package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/axsim/sim-cli/internal/imagediff"
)

var visualDiffCmd = &cobra.Command{
	Use:   "visual-diff <baseline> <current>",
	Short: "Compare two screenshots pixel by pixel",
	Long: `Compare a baseline screenshot against a current one and report the
percentage of differing pixels. Small per-channel deltas below the noise
floor are ignored so compression and anti-aliasing noise does not count.

The comparison passes when the difference percentage is within the
threshold. Images of different dimensions are rejected outright.

Examples:
  sim-cli visual-diff baseline.png current.png
  sim-cli visual-diff baseline.png current.png --threshold 2.5
  sim-cli visual-diff baseline.png current.png --artifacts --artifact-dir out/`,
	Args: cobra.ExactArgs(2),
	RunE: runVisualDiff,
}

func init() {
	rootCmd.AddCommand(visualDiffCmd)
	visualDiffCmd.Flags().Float64("threshold", 0, "Allowed difference percentage (default: 1.0)")
	visualDiffCmd.Flags().Int("noise-floor", -1, "Per-channel delta treated as noise (default: 10; 0 = exact)")
	visualDiffCmd.Flags().Bool("artifacts", false, "Write diff overlay and side-by-side images")
	visualDiffCmd.Flags().String("artifact-dir", ".", "Directory for generated artifacts")
}

func runVisualDiff(cmd *cobra.Command, args []string) error {
	o, err := newOps()
	if err != nil {
		return err
	}

	threshold, _ := cmd.Flags().GetFloat64("threshold")
	if !cmd.Flags().Changed("threshold") {
		threshold = viper.GetFloat64("diff.threshold")
	}
	artifacts, _ := cmd.Flags().GetBool("artifacts")
	artifactDir, _ := cmd.Flags().GetString("artifact-dir")

	opts := imagediff.Options{
		Threshold:         threshold,
		GenerateArtifacts: artifacts,
		ArtifactDir:       artifactDir,
	}
	if cmd.Flags().Changed("noise-floor") {
		floor, _ := cmd.Flags().GetInt("noise-floor")
		opts.NoiseFloor = floor
		opts.NoiseFloorSet = true
	} else {
		opts.NoiseFloor = viper.GetInt("diff.noise_floor")
		opts.NoiseFloorSet = true
	}

	res := o.VisualDiff(cmd.Context(), args[0], args[1], opts)
	return printResult(res.Result, res)
}
