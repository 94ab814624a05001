package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"healthdash/internal/client"
	"healthdash/internal/form"
	"healthdash/internal/model"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Record a reading",
		Long:  "Unset flags take the form defaults (heart rate 70, oxygen 98, hydration 2000, sleep 8).",
		Run:   runSubmit,
	}

	cmd.Flags().Float64("steps", 0, "Steps (0-100000)")
	cmd.Flags().Float64("heart-rate", 0, "Heart rate in BPM (40-220)")
	cmd.Flags().Float64("oxygen", 0, "Oxygen level in % (80-100)")
	cmd.Flags().Float64("hydration", 0, "Water intake in ml (0-5000)")
	cmd.Flags().Float64("sleep", 0, "Sleep in hours (0-24)")

	RootCmd.AddCommand(cmd)
}

func runSubmit(cmd *cobra.Command, args []string) {
	flag := func(name string) *float64 {
		if !cmd.Flags().Changed(name) {
			return nil
		}
		v, _ := cmd.Flags().GetFloat64(name)
		return &v
	}

	sub := form.Submission{
		Steps:       flag("steps"),
		HeartRate:   flag("heart-rate"),
		OxygenLevel: flag("oxygen"),
		Hydration:   flag("hydration"),
		SleepHours:  flag("sleep"),
	}

	var (
		reading model.Reading
		err     error
	)
	if c, ok := remote(); ok {
		reading, err = c.Submit(cmd.Context(), sub)
	} else {
		reading, err = sub.Build(time.Now())
	}

	if err != nil {
		printFieldErrors(err)
		exitErr("submit", err)
	}
	printJSON(reading)
}

func printFieldErrors(err error) {
	var fields []form.FieldError

	var verr *form.ValidationError
	var apiErr *client.APIError
	switch {
	case errors.As(err, &verr):
		fields = verr.Fields
	case errors.As(err, &apiErr):
		fields = apiErr.Fields
	}

	for _, f := range fields {
		fmt.Fprintf(os.Stderr, "  %s: %s\n", f.Field, f.Message)
	}
}
