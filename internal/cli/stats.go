package cli

import (
	"healthdash/internal/client"
	"healthdash/internal/insight"
	"healthdash/internal/model"
	"healthdash/internal/stats"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats <metric>",
		Short: "Show current/min/max/avg for a metric",
		Long:  "Metrics: steps, heart_rate, oxygen_level, hydration, sleep_hours.",
		Args:  cobra.ExactArgs(1),
		Run:   runStats,
	}

	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) {
	m, err := model.ParseMetric(args[0])
	if err != nil {
		exitErr("stats", err)
	}

	if c, ok := remote(); ok {
		s, err := c.Stats(cmd.Context(), m)
		if err != nil {
			exitErr("stats", err)
		}
		printJSON(s)
		return
	}

	a := newApp(loadConfig(), false)
	readings := a.store.List()
	s := client.MetricStats{
		Stats:   stats.Compute(m, readings, model.DefaultGoals),
		Insight: insight.MetricInsight(m, readings, model.DefaultGoals),
	}
	if len(readings) > 0 {
		s.Status = insight.Status(m, s.Current, model.DefaultGoals)
	}
	printJSON(s)
}
