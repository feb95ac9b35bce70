package cmd

import (
	"github.com/spf13/cobra"

	"github.com/axsim/sim-cli/internal/ops"
)

var typeCmd = &cobra.Command{
	Use:   "type [text]",
	Short: "Type text or press a key into the focused field",
	Long: `Type text into the simulator's focused field, or press a named key.
The Simulator app is brought frontmost before typing.

Examples:
  sim-cli type "user@example.com"
  sim-cli type --key return
  sim-cli type "slow typing" --delay 50`,
	Args: cobra.MaximumNArgs(1),
	RunE: runType,
}

func init() {
	rootCmd.AddCommand(typeCmd)
	typeCmd.Flags().String("key", "", "Key to press (e.g. return, tab, delete)")
	typeCmd.Flags().StringSlice("modifier", nil, "Modifier keys for --key (cmd, shift, ctrl, alt)")
	typeCmd.Flags().Int("delay", 0, "Delay between keystrokes in milliseconds")
}

func runType(cmd *cobra.Command, args []string) error {
	o, err := newOps()
	if err != nil {
		return err
	}

	var text string
	if len(args) > 0 {
		text = args[0]
	}
	key, _ := cmd.Flags().GetString("key")
	modifiers, _ := cmd.Flags().GetStringSlice("modifier")
	delay, _ := cmd.Flags().GetInt("delay")

	res := o.TypeText(cmd.Context(), ops.TypeOptions{
		Text:      text,
		Key:       key,
		Modifiers: modifiers,
		DelayMs:   delay,
	})
	return printResult(res.Result, res)
}
