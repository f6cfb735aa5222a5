package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"jobmate/job-tracker/internal/tracker"
)

var saveCmd = &cobra.Command{
	Use:   "save <id>",
	Short: "Save or unsave a job",
	Args:  cobra.ExactArgs(1),
	RunE:  runSave,
}

var savedCmd = &cobra.Command{
	Use:   "saved",
	Short: "List saved jobs",
	RunE:  runSaved,
}

func init() {
	rootCmd.AddCommand(saveCmd, savedCmd)
}

func runSave(cmd *cobra.Command, args []string) error {
	id, err := tracker.ParseJobID(args[0])
	if err != nil {
		return err
	}
	return withApp(cmd.Context(), func(a *app) error {
		saved, err := a.svc.ToggleSave(cmd.Context(), id)
		if err != nil {
			return err
		}
		if saved {
			fmt.Fprintf(cmd.OutOrStdout(), "Saved job %d.\n", id)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Removed job %d from saved.\n", id)
		}
		return nil
	})
}

func runSaved(cmd *cobra.Command, _ []string) error {
	return withApp(cmd.Context(), func(a *app) error {
		jobs := a.svc.SavedJobs()
		if len(jobs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No saved jobs yet.")
			return nil
		}
		return jobsTable(cmd.OutOrStdout(), jobs)
	})
}
