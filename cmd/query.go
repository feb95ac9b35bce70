package cmd

import (
	"github.com/spf13/cobra"

	"github.com/axsim/sim-cli/internal/model"
	"github.com/axsim/sim-cli/internal/ops"
	"github.com/axsim/sim-cli/internal/platform"
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Find UI elements by text, role, or identifier",
	Long: `Find UI elements in a fresh accessibility snapshot. Matches include
the element's center point in device points, ready to pass to tap.

Predicates combine with AND semantics; at least one is required.

Examples:
  sim-cli query --text "Login"
  sim-cli query --exact "Login" --role Button
  sim-cli query --id login.submit
  sim-cli query --text "Cell" --index 2`,
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().String("text", "", "Match elements containing this text (case-insensitive)")
	queryCmd.Flags().String("exact", "", "Match elements with exactly this text")
	queryCmd.Flags().String("role", "", "Filter by role (e.g. Button, TextField)")
	queryCmd.Flags().String("id", "", "Match by accessibility identifier")
	queryCmd.Flags().Int("index", -1, "Select only the Nth match (0-based)")
	queryCmd.Flags().Int("depth", 0, "Max tree depth to search (default: 20)")
	queryCmd.Flags().String("udid", "", "Simulator UDID (default: booted device)")
}

func runQuery(cmd *cobra.Command, args []string) error {
	o, err := newOps()
	if err != nil {
		return err
	}

	text, _ := cmd.Flags().GetString("text")
	exact, _ := cmd.Flags().GetString("exact")
	role, _ := cmd.Flags().GetString("role")
	id, _ := cmd.Flags().GetString("id")
	index, _ := cmd.Flags().GetInt("index")
	depth, _ := cmd.Flags().GetInt("depth")

	res := o.QueryElements(cmd.Context(), ops.QueryOptions{
		Snapshot: platform.SnapshotOptions{UDID: udidFlag(cmd), MaxDepth: depth},
		Predicates: model.Predicates{
			TextContains: text,
			TextExact:    exact,
			Role:         role,
			Identifier:   id,
		},
		Index: index,
	})
	return printResult(res.Result, res)
}
