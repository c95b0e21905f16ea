package main

import (
	"fmt"
	"math/rand/v2"
	"text/tabwriter"

	"github.com/ieee0824/pronounce-go/score"
	"github.com/ieee0824/pronounce-go/sentence"
	"github.com/spf13/cobra"
)

func newSentencesCmd(a *app) *cobra.Command {
	var difficulty string
	cmd := &cobra.Command{
		Use:   "sentences",
		Short: "Browse the practice sentence catalog",
	}
	cmd.PersistentFlags().StringVar(&difficulty, "difficulty", "", "filter by difficulty (easy, medium, difficult)")

	list := &cobra.Command{
		Use:   "list",
		Short: "List practice sentences",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := loadCatalog(a.cfg)
			if err != nil {
				return err
			}
			entries := cat.All()
			if difficulty != "" {
				d, err := score.ParseDifficulty(difficulty)
				if err != nil {
					return err
				}
				entries = cat.ByDifficulty(d)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "DIFFICULTY\tSENTENCE\tTRANSLATION")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Difficulty, e.Sentence, e.Translation)
			}
			return tw.Flush()
		},
	}

	random := &cobra.Command{
		Use:   "random",
		Short: "Pick a random sentence to practice",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := loadCatalog(a.cfg)
			if err != nil {
				return err
			}
			d := score.Medium
			if difficulty != "" {
				if d, err = score.ParseDifficulty(difficulty); err != nil {
					return err
				}
			}
			e, err := cat.Random(d, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
			if err != nil {
				return err
			}
			printEntry(cmd, e)
			return nil
		},
	}

	cmd.AddCommand(list, random)
	return cmd
}

func printEntry(cmd *cobra.Command, e sentence.Entry) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, e.Sentence)
	fmt.Fprintf(out, "  %s\n", e.Translation)
	fmt.Fprintf(out, "  difficulty: %s (record for %s)\n", e.Difficulty, e.Difficulty.RecordingDuration())
	if e.AudioPath != "" {
		fmt.Fprintf(out, "  reference: %s\n", e.AudioPath)
	}
}
