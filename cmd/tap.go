package cmd

import (
	"github.com/spf13/cobra"

	"github.com/axsim/sim-cli/internal/ops"
)

var tapCmd = &cobra.Command{
	Use:   "tap [x,y]",
	Short: "Tap a point or UI element on the simulator screen",
	Long: `Tap at device point coordinates or on an element found by query.
Element targets are resolved against a fresh snapshot and tapped at their
center.

Examples:
  sim-cli tap 195,422
  sim-cli tap --x 195 --y 422
  sim-cli tap --text "Login"
  sim-cli tap --exact "Login" --role Button
  sim-cli tap --id login.submit --duration 250`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTap,
}

var longPressCmd = &cobra.Command{
	Use:   "long-press [x,y]",
	Short: "Press and hold a point or UI element",
	Long: `Press and hold at device point coordinates or on an element found by
query. The press stays stationary for the full duration.

Examples:
  sim-cli long-press 200,400
  sim-cli long-press --x 200 --y 400
  sim-cli long-press --text "Message" --duration 800`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLongPress,
}

func init() {
	rootCmd.AddCommand(tapCmd)
	addTargetFlags(tapCmd)
	tapCmd.Flags().Int("duration", 0, "Press duration in milliseconds (default: 100)")
	tapCmd.Flags().String("udid", "", "Simulator UDID (default: booted device)")

	rootCmd.AddCommand(longPressCmd)
	addTargetFlags(longPressCmd)
	longPressCmd.Flags().Int("duration", 0, "Hold duration in milliseconds (default: 600)")
	longPressCmd.Flags().String("udid", "", "Simulator UDID (default: booted device)")
}

func runTap(cmd *cobra.Command, args []string) error {
	target, err := parseTarget(cmd, args)
	if err != nil {
		return err
	}
	o, err := newOps()
	if err != nil {
		return err
	}

	res := o.Tap(cmd.Context(), ops.TapOptions{
		UDID:     udidFlag(cmd),
		Target:   target,
		Duration: durationFlag(cmd, "duration", "gesture.tap_duration_ms"),
	})
	return printResult(res.Result, res)
}

func runLongPress(cmd *cobra.Command, args []string) error {
	target, err := parseTarget(cmd, args)
	if err != nil {
		return err
	}
	o, err := newOps()
	if err != nil {
		return err
	}

	res := o.LongPress(cmd.Context(), ops.TapOptions{
		UDID:     udidFlag(cmd),
		Target:   target,
		Duration: durationFlag(cmd, "duration", "gesture.long_press_duration_ms"),
	})
	return printResult(res.Result, res)
}
