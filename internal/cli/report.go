package cli

import (
	"healthdash/internal/stats"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show averages and chart series",
		Run:   runReport,
	}

	cmd.Flags().IntP("days", "n", 0, "Only include the most recent N days")

	RootCmd.AddCommand(cmd)
}

func runReport(cmd *cobra.Command, args []string) {
	days, _ := cmd.Flags().GetInt("days")

	if c, ok := remote(); ok {
		report, err := c.Report(cmd.Context(), days)
		if err != nil {
			exitErr("report", err)
		}
		printJSON(report)
		return
	}

	a := newApp(loadConfig(), false)
	printJSON(stats.BuildReport(a.store.Recent(days)))
}
