package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/ieee0824/pronounce-go/progress"
	"github.com/ieee0824/pronounce-go/score"
	"github.com/spf13/cobra"
)

func newProgressCmd(a *app) *cobra.Command {
	var recent int
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Show practice statistics per difficulty",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.cfg.Progress.DBPath == "" {
				return fmt.Errorf("progress recording is disabled (no --db)")
			}
			store, err := progress.Open(a.cfg.Progress.DBPath)
			if err != nil {
				return err
			}
			defer store.Close()

			ctx := cmd.Context()
			total, err := store.Stats(ctx, "")
			if err != nil {
				return err
			}
			byDiff, err := store.ByDifficulty(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "DIFFICULTY\tATTEMPTS\tSUCCESSES\tRATE\tAVERAGE\tBEST")
			for _, d := range score.Difficulties {
				writeStats(tw, string(d), byDiff[d])
			}
			writeStats(tw, "total", total)
			if err := tw.Flush(); err != nil {
				return err
			}

			if recent > 0 {
				attempts, err := store.Recent(ctx, "", recent)
				if err != nil {
					return err
				}
				fmt.Fprintln(out)
				for _, at := range attempts {
					fmt.Fprintf(out, "%s  %5.1f  %s\n", at.CreatedAt.Format("2006-01-02 15:04"), at.Scores.Final, at.Sentence)
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&recent, "recent", 0, "also list the N most recent attempts")
	return cmd
}

func writeStats(tw *tabwriter.Writer, label string, st progress.Stats) {
	fmt.Fprintf(tw, "%s\t%d\t%d\t%.0f%%\t%.1f\t%.1f\n",
		label, st.Attempts, st.Successes, st.SuccessRate()*100, st.Average, st.Best)
}
