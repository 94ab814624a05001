package cli

import (
	"fmt"

	"healthdash/internal/insight"
	"healthdash/internal/model"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show today's progress and tips",
		Run:   runSummary,
	}

	cmd.Flags().Bool("text", false, "Print a short text summary instead of JSON")

	RootCmd.AddCommand(cmd)
}

func runSummary(cmd *cobra.Command, args []string) {
	text, _ := cmd.Flags().GetBool("text")

	var summary insight.Summary
	if c, ok := remote(); ok {
		s, err := c.Summary(cmd.Context())
		if err != nil {
			exitErr("summary", err)
		}
		summary = s
	} else {
		a := newApp(loadConfig(), false)
		summary = insight.Summarize(a.store.List(), model.DefaultGoals)
	}

	if !text {
		printJSON(summary)
		return
	}

	if !summary.Available {
		fmt.Println(summary.Message)
		return
	}
	fmt.Println(summary.Date)
	fmt.Printf("  steps      %3d%%\n", summary.StepsProgress)
	fmt.Printf("  hydration  %3d%%\n", summary.HydrationProgress)
	fmt.Printf("  sleep      %3d%%\n", summary.SleepProgress)
	fmt.Printf("  heart rate %s\n", summary.HeartRateStatus)
	fmt.Printf("  oxygen     %s\n", summary.OxygenStatus)
	for _, tip := range summary.Tips {
		fmt.Println("  • " + tip)
	}
}
