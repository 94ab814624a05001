// Package cli implements the healthdash commands.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"healthdash/internal/client"
	"healthdash/internal/config"

	"github.com/spf13/cobra"
)

var (
	serverURL  string
	envFile    string
	seedFlag   int64
	windowFlag int
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "healthdash",
	Short: "Personal health dashboard backend",
	Long: "Serves a mock 30-day health reading series, aggregate statistics and a rule-based assistant.\n" +
		"Without --server, commands run against a freshly generated local series.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&serverURL, "server", "s", "", "Server URL (default: $HEALTHDASH_SERVER; empty runs locally)")
	RootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Optional .env file")
	RootCmd.PersistentFlags().Int64Var(&seedFlag, "seed", 0, "Seed for the generated series (default: $SEED or the clock)")
	RootCmd.PersistentFlags().IntVar(&windowFlag, "window", 0, "Days in the series (default: $WINDOW_DAYS or 30)")
}

// loadConfig reads .env and the environment, then applies flag overrides.
func loadConfig() *config.Config {
	cfg, _ := config.Load(envFile)
	if seedFlag != 0 {
		cfg.Seed = seedFlag
	}
	if windowFlag > 0 {
		cfg.WindowDays = windowFlag
	}
	return cfg
}

// remote returns an API client when a server is configured.
func remote() (*client.Client, bool) {
	url := serverURL
	if url == "" {
		url = os.Getenv("HEALTHDASH_SERVER")
	}
	if url == "" {
		return nil, false
	}
	return client.New(url), true
}

func printJSON(v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
