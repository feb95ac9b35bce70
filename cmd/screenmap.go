package cmd

import (
	"github.com/spf13/cobra"

	"github.com/axsim/sim-cli/internal/platform"
)

var screenMapCmd = &cobra.Command{
	Use:   "screen-map",
	Short: "Summarize the current simulator screen",
	Long: `Summarize the current screen instead of dumping the full tree:
interactive element counts, button labels, text fields, navigation title,
and role distribution. Useful for quick orientation before a query.

Examples:
  sim-cli screen-map
  sim-cli screen-map --udid AAAA-1111`,
	RunE: runScreenMap,
}

func init() {
	rootCmd.AddCommand(screenMapCmd)
	screenMapCmd.Flags().String("udid", "", "Simulator UDID (default: booted device)")
}

func runScreenMap(cmd *cobra.Command, args []string) error {
	o, err := newOps()
	if err != nil {
		return err
	}

	res := o.ScreenMap(cmd.Context(), platform.SnapshotOptions{UDID: udidFlag(cmd)})
	return printResult(res.Result, res)
}
