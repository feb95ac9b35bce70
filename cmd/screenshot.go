package cmd

import (
	"github.com/spf13/cobra"

	"github.com/axsim/sim-cli/internal/platform"
)

var screenshotCmd = &cobra.Command{
	Use:   "screenshot",
	Short: "Capture a pixel-exact screenshot of the simulator screen",
	Long: `Capture the device screen at its native pixel resolution. The capture
goes through the simulator runtime, so it is unaffected by the host
window's size, scale, or occlusion.

Examples:
  sim-cli screenshot
  sim-cli screenshot --output baseline.png
  sim-cli screenshot --udid AAAA-1111 --output current.png`,
	RunE: runScreenshot,
}

func init() {
	rootCmd.AddCommand(screenshotCmd)
	screenshotCmd.Flags().String("output", "", "Output PNG path (default: timestamped file)")
	screenshotCmd.Flags().String("udid", "", "Simulator UDID (default: booted device)")
}

func runScreenshot(cmd *cobra.Command, args []string) error {
	o, err := newOps()
	if err != nil {
		return err
	}

	out, _ := cmd.Flags().GetString("output")
	res := o.Screenshot(cmd.Context(), platform.ScreenshotOptions{
		UDID:       udidFlag(cmd),
		OutputPath: out,
	})
	return printResult(res.Result, res)
}
