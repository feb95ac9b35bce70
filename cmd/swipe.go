package cmd

import (
	"github.com/spf13/cobra"

	"github.com/axsim/sim-cli/internal/geometry"
	"github.com/axsim/sim-cli/internal/ops"
)

var swipeCmd = &cobra.Command{
	Use:   "swipe",
	Short: "Swipe on the simulator screen",
	Long: `Swipe by direction or between two points in device points.
Directional swipes span the central portion of the screen, derived from
the device's geometry.

Examples:
  sim-cli swipe --direction up
  sim-cli swipe --from-x 200 --from-y 700 --to-x 200 --to-y 200
  sim-cli swipe --direction left --duration 150`,
	RunE: runSwipe,
}

var dragCmd = &cobra.Command{
	Use:   "drag",
	Short: "Drag between two points on the simulator screen",
	Long: `Drag from one device point to another. Drags pace slower than swipes
so the movement registers as a drag rather than a flick.

Examples:
  sim-cli drag --from-x 100 --from-y 300 --to-x 300 --to-y 300
  sim-cli drag --from-x 50 --from-y 600 --to-x 50 --to-y 200 --duration 1000`,
	RunE: runDrag,
}

func init() {
	rootCmd.AddCommand(swipeCmd)
	swipeCmd.Flags().String("direction", "", "Swipe direction: up, down, left, right")
	addPathFlags(swipeCmd)
	swipeCmd.Flags().Int("duration", 0, "Gesture duration in milliseconds (default: 300)")
	swipeCmd.Flags().String("udid", "", "Simulator UDID (default: booted device)")

	rootCmd.AddCommand(dragCmd)
	addPathFlags(dragCmd)
	dragCmd.Flags().Int("duration", 0, "Gesture duration in milliseconds (default: 500)")
	dragCmd.Flags().String("udid", "", "Simulator UDID (default: booted device)")
}

func addPathFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("from-x", 0, "Start X in device points")
	cmd.Flags().Float64("from-y", 0, "Start Y in device points")
	cmd.Flags().Float64("to-x", 0, "End X in device points")
	cmd.Flags().Float64("to-y", 0, "End Y in device points")
}

func parsePathFlags(cmd *cobra.Command) (from, to *geometry.Point) {
	if cmd.Flags().Changed("from-x") && cmd.Flags().Changed("from-y") {
		x, _ := cmd.Flags().GetFloat64("from-x")
		y, _ := cmd.Flags().GetFloat64("from-y")
		from = &geometry.Point{X: x, Y: y}
	}
	if cmd.Flags().Changed("to-x") && cmd.Flags().Changed("to-y") {
		x, _ := cmd.Flags().GetFloat64("to-x")
		y, _ := cmd.Flags().GetFloat64("to-y")
		to = &geometry.Point{X: x, Y: y}
	}
	return from, to
}

func runSwipe(cmd *cobra.Command, args []string) error {
	o, err := newOps()
	if err != nil {
		return err
	}

	direction, _ := cmd.Flags().GetString("direction")
	from, to := parsePathFlags(cmd)

	res := o.Swipe(cmd.Context(), ops.SwipeOptions{
		UDID:      udidFlag(cmd),
		Direction: direction,
		From:      from,
		To:        to,
		Duration:  durationFlag(cmd, "duration", "gesture.swipe_duration_ms"),
	})
	return printResult(res.Result, res)
}

func runDrag(cmd *cobra.Command, args []string) error {
	o, err := newOps()
	if err != nil {
		return err
	}

	from, to := parsePathFlags(cmd)

	res := o.Swipe(cmd.Context(), ops.SwipeOptions{
		UDID:     udidFlag(cmd),
		From:     from,
		To:       to,
		Duration: durationFlag(cmd, "duration", "gesture.drag_duration_ms"),
		Drag:     true,
	})
	return printResult(res.Result, res)
}
