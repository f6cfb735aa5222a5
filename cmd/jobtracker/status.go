package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"jobmate/job-tracker/internal/tracker"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Track application status",
}

var statusSetCmd = &cobra.Command{
	Use:     "set <id> <status>",
	Short:   "Set the status of a job (Not Applied, Applied, Rejected, Selected)",
	Example: `  jobtracker status set 2 Applied`,
	Args:    cobra.ExactArgs(2),
	RunE:    runStatusSet,
}

var statusLogCmd = &cobra.Command{
	Use:   "log",
	Short: "Show recent status updates, newest first",
	RunE:  runStatusLog,
}

func init() {
	statusCmd.AddCommand(statusSetCmd, statusLogCmd)
	rootCmd.AddCommand(statusCmd)
}

func runStatusSet(cmd *cobra.Command, args []string) error {
	id, err := tracker.ParseJobID(args[0])
	if err != nil {
		return err
	}
	return withApp(cmd.Context(), func(a *app) error {
		if _, err := a.svc.SetStatus(cmd.Context(), id, args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Status updated: %s\n", args[1])
		return nil
	})
}

func runStatusLog(cmd *cobra.Command, _ []string) error {
	return withApp(cmd.Context(), func(a *app) error {
		changes := a.svc.StatusChanges()
		if len(changes) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No status updates yet.")
			return nil
		}
		return changesTable(cmd.OutOrStdout(), changes)
	})
}
