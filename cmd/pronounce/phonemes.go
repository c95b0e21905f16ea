package main

import (
	"fmt"

	"github.com/ieee0824/pronounce-go/feedback"
	"github.com/ieee0824/pronounce-go/lexicon"
	"github.com/spf13/cobra"
)

func newPhonemesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "phonemes",
		Short: "Standardize and compare phoneme strings",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "standardize TEXT",
			Short: "Map a phoneme or letter string onto standard Indonesian phonemes",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				fmt.Fprintln(cmd.OutOrStdout(), lexicon.Standardize(args[0]))
				return nil
			},
		},
		&cobra.Command{
			Use:   "compare EXPECTED RECOGNIZED",
			Short: "Score recognized phonemes against expected phonemes",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				s, tr := lexicon.ComparePhonemes(lexicon.Standardize(args[0]), lexicon.Standardize(args[1]))
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%.2f\n", s)
				if len(tr) > 0 {
					fmt.Fprintln(out, feedback.RenderTrace(tr))
				}
				return nil
			},
		},
	)
	return cmd
}
