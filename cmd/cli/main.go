package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	host    string
	dryRun  bool
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "courtq",
	Short: "A CLI to run a badminton session on the court-queue server",
	Long: `A command-line interface for making requests to the various endpoints
of the court-queue server: the waiting queue, courts, staging groups,
history and pricing settings.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&host, "host", "http://localhost:8080", "The host address of the server")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Do not send Slack notifications")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Ask the server for debug logging on this request")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your command '%s'", err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
