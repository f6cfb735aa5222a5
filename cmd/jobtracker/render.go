package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/pterm/pterm"

	"jobmate/job-tracker/internal/tracker"
)

// colorScore tints a match score by band, the way the dashboard badges do.
func colorScore(score int, band string) string {
	s := strconv.Itoa(score)
	switch band {
	case "strong":
		return pterm.Green(s)
	case "good":
		return pterm.LightGreen(s)
	case "fair":
		return pterm.Yellow(s)
	}
	return pterm.Gray(s)
}

func jobsTable(w io.Writer, jobs []tracker.JobView) error {
	data := pterm.TableData{{"ID", "Title", "Company", "Location", "Mode", "Exp", "Salary", "Source", "Posted", "Match", "Status", "Saved"}}
	for _, j := range jobs {
		saved := ""
		if j.Saved {
			saved = "★"
		}
		data = append(data, []string{
			strconv.Itoa(j.ID),
			j.Title,
			j.Company,
			j.Location,
			string(j.Mode),
			j.Experience,
			j.SalaryRange,
			string(j.Source),
			j.Posted,
			colorScore(j.MatchScore, j.Band),
			string(j.Status),
			saved,
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithWriter(w).WithData(data).Render()
}

func changesTable(w io.Writer, changes []tracker.ChangeView) error {
	data := pterm.TableData{{"When", "Job", "Company", "Status"}}
	for _, c := range changes {
		data = append(data, []string{
			c.Date.Local().Format("Jan 2 15:04"),
			fmt.Sprintf("#%d %s", c.JobID, c.Title),
			c.Company,
			string(c.Status),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithWriter(w).WithData(data).Render()
}
