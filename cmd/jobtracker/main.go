// jobtracker is a personal job notification tracker.
//
// It scores a catalog of postings against the user's preferences, keeps the
// saved set and application statuses, and builds a daily top-10 digest.
// `jobtracker serve` exposes the HTTP and gRPC APIs; the other commands work
// on the same store directly.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:           "jobtracker",
	Short:         "Job notification tracker",
	Long:          "Scores job postings against your preferences, tracks saved jobs and application status, and builds a daily top-10 digest.",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
