package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/axsim/sim-cli/internal/geometry"
	"github.com/axsim/sim-cli/internal/model"
	"github.com/axsim/sim-cli/internal/ops"
	"github.com/axsim/sim-cli/internal/output"
	"github.com/axsim/sim-cli/internal/platform"
)

// newOps creates the operations executor for the current platform.
func newOps() (*ops.Ops, error) {
	provider, err := platform.New()
	if err != nil {
		return nil, err
	}
	return ops.New(provider), nil
}

// printResult prints the structured result and converts a failed operation
// into a non-zero exit code.
func printResult(envelope ops.Result, v interface{}) error {
	if err := output.Print(v); err != nil {
		return err
	}
	if !envelope.Success {
		return errFailed
	}
	return nil
}

// addTargetFlags registers the shared target flags for gesture commands.
func addTargetFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("x", 0, "X coordinate in device points")
	cmd.Flags().Float64("y", 0, "Y coordinate in device points")
	cmd.Flags().String("text", "", "Find target element containing this text (case-insensitive)")
	cmd.Flags().String("exact", "", "Find target element with exactly this text")
	cmd.Flags().String("role", "", "Filter element search by role (e.g. Button)")
	cmd.Flags().String("id", "", "Find target element by accessibility identifier")
	cmd.Flags().Int("index", -1, "Select the Nth match when several elements match")
}

// parseTarget builds a gesture target. A positional "x,y" argument wins,
// then explicit --x/--y coordinates, otherwise an element query.
func parseTarget(cmd *cobra.Command, args []string) (ops.Target, error) {
	if len(args) == 1 {
		p, err := geometry.ParsePoint(args[0])
		if err != nil {
			return ops.Target{}, err
		}
		return ops.Target{Point: &p, Index: -1}, nil
	}
	return parseTargetFlags(cmd), nil
}

// parseTargetFlags builds a gesture target: explicit coordinates when both
// --x and --y were given, otherwise an element query.
func parseTargetFlags(cmd *cobra.Command) ops.Target {
	index, _ := cmd.Flags().GetInt("index")
	t := ops.Target{Index: index}

	if cmd.Flags().Changed("x") && cmd.Flags().Changed("y") {
		x, _ := cmd.Flags().GetFloat64("x")
		y, _ := cmd.Flags().GetFloat64("y")
		t.Point = &geometry.Point{X: x, Y: y}
		return t
	}

	text, _ := cmd.Flags().GetString("text")
	exact, _ := cmd.Flags().GetString("exact")
	role, _ := cmd.Flags().GetString("role")
	id, _ := cmd.Flags().GetString("id")
	t.Predicates = &model.Predicates{
		TextContains: text,
		TextExact:    exact,
		Role:         role,
		Identifier:   id,
	}
	return t
}

// durationFlag reads a millisecond flag, falling back to a config key when
// the flag was not set.
func durationFlag(cmd *cobra.Command, flag, configKey string) time.Duration {
	if cmd.Flags().Changed(flag) {
		ms, _ := cmd.Flags().GetInt(flag)
		return time.Duration(ms) * time.Millisecond
	}
	return time.Duration(viper.GetInt(configKey)) * time.Millisecond
}

// udidFlag reads the shared --udid flag.
func udidFlag(cmd *cobra.Command) string {
	udid, _ := cmd.Flags().GetString("udid")
	return udid
}
