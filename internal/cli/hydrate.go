package cli

import (
	"fmt"
	"strconv"

	"healthdash/internal/api"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "hydrate <ml>",
		Short: "Add water to today's reading (presets: 250, 500, 1000)",
		Args:  cobra.ExactArgs(1),
		Run:   runHydrate,
	}

	RootCmd.AddCommand(cmd)
}

func runHydrate(cmd *cobra.Command, args []string) {
	amount, err := strconv.Atoi(args[0])
	if err != nil || amount <= 0 || amount > api.MaxQuickAdd {
		exitErr("hydrate", fmt.Errorf("amount must be between 1 and %d ml", api.MaxQuickAdd))
	}

	if c, ok := remote(); ok {
		reading, err := c.AddHydration(cmd.Context(), amount)
		if err != nil {
			exitErr("hydrate", err)
		}
		printJSON(reading)
		return
	}

	a := newApp(loadConfig(), false)
	reading, err := a.store.AddHydration(amount)
	if err != nil {
		exitErr("hydrate", err)
	}
	printJSON(reading)
}
