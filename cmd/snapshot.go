package cmd

import (
	"github.com/spf13/cobra"

	"github.com/axsim/sim-cli/internal/platform"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Capture the accessibility tree of the simulator screen",
	Long: `Capture the accessibility tree of the simulator's device surface.
Elements carry roles, labels, values, identifiers, and frames in device
points, independent of the host window's position or scale.

Examples:
  sim-cli snapshot
  sim-cli snapshot --depth 8
  sim-cli snapshot --udid AAAA-1111 --include-chrome`,
	RunE: runSnapshot,
}

func init() {
	rootCmd.AddCommand(snapshotCmd)
	snapshotCmd.Flags().String("udid", "", "Simulator UDID (default: booted device)")
	snapshotCmd.Flags().Int("depth", 0, "Max tree depth to traverse (default: 20)")
	snapshotCmd.Flags().Bool("include-chrome", false, "Include simulator window decoration in the tree")
	snapshotCmd.Flags().Bool("flat", false, "Output a depth-first element list instead of the nested tree")
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	o, err := newOps()
	if err != nil {
		return err
	}

	depth, _ := cmd.Flags().GetInt("depth")
	includeChrome, _ := cmd.Flags().GetBool("include-chrome")
	flat, _ := cmd.Flags().GetBool("flat")

	res := o.CaptureSnapshot(cmd.Context(), platform.SnapshotOptions{
		UDID:          udidFlag(cmd),
		MaxDepth:      depth,
		IncludeChrome: includeChrome,
	}, flat)
	return printResult(res.Result, res)
}
