package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"jobmate/job-tracker/internal/model"
)

var prefsSet struct {
	keywords   string
	locations  []string
	modes      []string
	experience string
	skills     string
	minScore   int
}

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show your matching preferences",
	RunE:  runPrefsShow,
}

var prefsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Replace your matching preferences",
	Example: `  jobtracker prefs set --keywords "react, frontend" --locations Bangalore,Pune \
    --modes Remote --experience 1-3 --skills "React, TypeScript" --min-score 50`,
	RunE: runPrefsSet,
}

func init() {
	f := prefsSetCmd.Flags()
	f.StringVar(&prefsSet.keywords, "keywords", "", "Comma-separated role keywords")
	f.StringSliceVar(&prefsSet.locations, "locations", nil, "Preferred locations")
	f.StringSliceVar(&prefsSet.modes, "modes", nil, "Preferred work modes")
	f.StringVar(&prefsSet.experience, "experience", "", "Experience level (empty for any)")
	f.StringVar(&prefsSet.skills, "skills", "", "Comma-separated skills")
	f.IntVar(&prefsSet.minScore, "min-score", 40, "Minimum match score (0-100)")

	prefsCmd.AddCommand(prefsSetCmd)
	rootCmd.AddCommand(prefsCmd)
}

func runPrefsShow(cmd *cobra.Command, _ []string) error {
	return withApp(cmd.Context(), func(a *app) error {
		prefs, saved := a.svc.Preferences()
		if !saved {
			fmt.Fprintln(cmd.OutOrStdout(), "No preferences set. Run `jobtracker prefs set` to activate matching.")
			return nil
		}
		out, err := json.MarshalIndent(prefs, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	})
}

func runPrefsSet(cmd *cobra.Command, _ []string) error {
	return withApp(cmd.Context(), func(a *app) error {
		saved, err := a.svc.SavePreferences(cmd.Context(), model.Preferences{
			RoleKeywords:       prefsSet.keywords,
			PreferredLocations: prefsSet.locations,
			PreferredModes:     prefsSet.modes,
			ExperienceLevel:    prefsSet.experience,
			Skills:             prefsSet.skills,
			MinMatchScore:      prefsSet.minScore,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Preferences saved. Threshold: %d\n", saved.MinMatchScore)
		return nil
	})
}
