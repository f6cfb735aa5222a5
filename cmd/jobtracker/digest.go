package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var digestMailto bool

var digestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Show today's digest",
	RunE:  runDigestShow,
}

var digestGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate today's top-10 digest from your preferences",
	RunE:  runDigestGenerate,
}

func init() {
	digestCmd.PersistentFlags().BoolVar(&digestMailto, "mailto", false, "Print a mailto: draft link instead of the text")
	digestCmd.AddCommand(digestGenerateCmd)
	rootCmd.AddCommand(digestCmd)
}

func runDigestShow(cmd *cobra.Command, _ []string) error {
	return withApp(cmd.Context(), func(a *app) error {
		w := cmd.OutOrStdout()
		d, ok, err := a.svc.TodayDigest(cmd.Context())
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(w, "No digest for today yet. Run `jobtracker digest generate`.")
			if info, err := a.svc.DigestSchedule(cmd.Context()); err == nil && info.Due {
				fmt.Fprintf(w, "Today's digest was due at %s.\n", info.Schedule)
			}
			return nil
		}
		if len(d.Entries) == 0 {
			fmt.Fprintln(w, "No matching roles today.")
			return nil
		}
		if digestMailto {
			fmt.Fprintln(w, d.Mailto)
			return nil
		}
		fmt.Fprintln(w, d.Text)
		return nil
	})
}

func runDigestGenerate(cmd *cobra.Command, _ []string) error {
	return withApp(cmd.Context(), func(a *app) error {
		d, err := a.svc.GenerateDigest(cmd.Context())
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		if digestMailto {
			fmt.Fprintln(w, d.Mailto)
			return nil
		}
		fmt.Fprintln(w, d.Text)
		return nil
	})
}
