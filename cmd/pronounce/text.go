package main

import (
	"fmt"

	"github.com/ieee0824/pronounce-go/content"
	"github.com/spf13/cobra"
)

func newTextCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "text EXPECTED RECOGNIZED",
		Short: "Score recognized text against the expected sentence",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%.2f\n", content.Compare(args[0], args[1]))
			if missing := content.MissingWords(args[0], args[1]); len(missing) > 0 {
				fmt.Fprintf(out, "missing: %v\n", missing)
			}
			return nil
		},
	}
}
