package cmd

import (
	"github.com/spf13/cobra"
)

var overviewFlags toolFlags

// overviewTools are the list tools summarized by 'overview'.
var overviewTools = []string{
	"inventory_list",
	"reports_list",
	"stations_list",
	"supplies_list",
}

// overviewCmd prints entry counts for the main lists
var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Show how many entries each relief list holds",
	Long: `Fetches the inventory, disaster reports, aid centres and available
supplies in parallel and prints how many entries each holds. A list that
fails to load is reported in its own row.`,
	Args: cobra.NoArgs,
	RunE: runOverview,
}

func runOverview(cmd *cobra.Command, args []string) error {
	executor, ctx, err := newExecutor(cmd, &overviewFlags)
	if err != nil {
		return err
	}
	defer executor.Close()

	rows, err := executor.Overview(ctx, overviewTools)
	if err != nil {
		return err
	}
	return executor.RenderOverview(rows)
}

func init() {
	rootCmd.AddCommand(overviewCmd)
	overviewFlags.register(overviewCmd, false)
}
