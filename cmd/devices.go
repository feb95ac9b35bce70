package cmd

import (
	"github.com/spf13/cobra"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List all simulator devices",
	RunE: func(cmd *cobra.Command, args []string) error {
		o, err := newOps()
		if err != nil {
			return err
		}
		bootedOnly, _ := cmd.Flags().GetBool("booted")
		res := o.ListDevices(cmd.Context(), bootedOnly)
		return printResult(res.Result, res)
	},
}

var deviceInfoCmd = &cobra.Command{
	Use:   "device-info",
	Short: "Show a simulator's identity and screen geometry",
	Long: `Show a simulator device's identity along with its screen geometry:
scale factor, pixel and point dimensions, and host window placement when
the Simulator window is on screen.

Examples:
  sim-cli device-info
  sim-cli device-info --udid AAAA-1111`,
	RunE: func(cmd *cobra.Command, args []string) error {
		o, err := newOps()
		if err != nil {
			return err
		}
		res := o.DeviceInfo(cmd.Context(), udidFlag(cmd))
		return printResult(res.Result, res)
	},
}

var bootCmd = &cobra.Command{
	Use:   "boot <name-or-udid>",
	Short: "Boot a simulator and open the Simulator app",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		o, err := newOps()
		if err != nil {
			return err
		}
		res := o.Boot(cmd.Context(), args[0])
		return printResult(res.Result, res)
	},
}

var shutdownCmd = &cobra.Command{
	Use:   "shutdown",
	Short: "Shut down a simulator",
	RunE: func(cmd *cobra.Command, args []string) error {
		o, err := newOps()
		if err != nil {
			return err
		}
		res := o.Shutdown(cmd.Context(), udidFlag(cmd))
		return printResult(res.Result, res)
	},
}

var openURLCmd = &cobra.Command{
	Use:   "open-url <url>",
	Short: "Open a URL or deep link on the simulator",
	Long: `Open a URL on the device. Works for web URLs and app deep links.

Examples:
  sim-cli open-url https://example.com
  sim-cli open-url myapp://settings`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		o, err := newOps()
		if err != nil {
			return err
		}
		res := o.OpenURL(cmd.Context(), udidFlag(cmd), args[0])
		return printResult(res.Result, res)
	},
}

func init() {
	rootCmd.AddCommand(devicesCmd)
	devicesCmd.Flags().Bool("booted", false, "List only booted devices")

	rootCmd.AddCommand(deviceInfoCmd)
	deviceInfoCmd.Flags().String("udid", "", "Simulator UDID (default: booted device)")

	rootCmd.AddCommand(bootCmd)

	rootCmd.AddCommand(shutdownCmd)
	shutdownCmd.Flags().String("udid", "", "Simulator UDID (default: booted device)")

	rootCmd.AddCommand(openURLCmd)
	openURLCmd.Flags().String("udid", "", "Simulator UDID (default: booted device)")
}
