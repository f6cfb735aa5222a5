package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"jobmate/job-tracker/internal/ranking"
	"jobmate/job-tracker/internal/tracker"
)

var jobsFilters ranking.Filters

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List jobs with filters and sorting",
	Example: `  jobtracker jobs --keyword react --location Bangalore --sort "Match Score"
  jobtracker jobs --only-matches
  jobtracker jobs show 2`,
	RunE: runJobs,
}

var jobsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one job in full",
	Args:  cobra.ExactArgs(1),
	RunE:  runJobsShow,
}

func init() {
	f := jobsCmd.Flags()
	f.StringVarP(&jobsFilters.Keyword, "keyword", "k", "", "Match title or company")
	f.StringVar(&jobsFilters.Location, "location", ranking.All, "Location filter")
	f.StringVar(&jobsFilters.Mode, "mode", ranking.All, "Mode filter (Remote, Hybrid, Onsite)")
	f.StringVar(&jobsFilters.Experience, "experience", ranking.All, "Experience filter (Fresher, 0-1, 1-3, 3-5)")
	f.StringVar(&jobsFilters.Source, "source", ranking.All, "Source filter (LinkedIn, Naukri, Indeed)")
	f.StringVar(&jobsFilters.Status, "status", ranking.All, "Status filter")
	f.StringVar((*string)(&jobsFilters.Sort), "sort", string(ranking.SortLatest), "Latest, Oldest, Match Score or Salary")
	f.BoolVar(&jobsFilters.OnlyMatches, "only-matches", false, "Hide jobs below your match threshold")

	jobsCmd.AddCommand(jobsShowCmd)
	rootCmd.AddCommand(jobsCmd)
}

func runJobs(cmd *cobra.Command, _ []string) error {
	return withApp(cmd.Context(), func(a *app) error {
		jobs, err := a.svc.ListJobs(jobsFilters)
		if err != nil {
			return err
		}
		if len(jobs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No jobs match your search.")
			return nil
		}
		return jobsTable(cmd.OutOrStdout(), jobs)
	})
}

func runJobsShow(cmd *cobra.Command, args []string) error {
	id, err := tracker.ParseJobID(args[0])
	if err != nil {
		return err
	}
	return withApp(cmd.Context(), func(a *app) error {
		j, err := a.svc.GetJob(id)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%s at %s\n", j.Title, j.Company)
		fmt.Fprintf(w, "%s · %s · %s · %s\n", j.Location, j.Mode, j.Experience, j.SalaryRange)
		fmt.Fprintf(w, "Source: %s, posted %s\n", j.Source, j.Posted)
		fmt.Fprintf(w, "Match: %s  Status: %s\n", colorScore(j.MatchScore, j.Band), j.Status)
		fmt.Fprintf(w, "Skills: %v\n\n%s\n\nApply: %s\n", j.Skills, j.Description, j.ApplyURL)
		return nil
	})
}
