package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/ieee0824/pronounce-go/feature"
	"github.com/spf13/cobra"
)

func newFeaturesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "features WAV",
		Short: "Print the acoustic feature channels of a recording",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fs, err := newExtractor(a.cfg, a.log).ExtractFile(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "duration: %.3fs  sample rate: %d\n", fs.Duration, fs.SampleRate)
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CHANNEL\tFRAMES\tDIMS\tMEAN")
			for _, ch := range feature.Channels {
				frames := fs.Channels[ch]
				dims := 0
				if len(frames) > 0 {
					dims = len(frames[0])
				}
				fmt.Fprintf(tw, "%s\t%d\t%d\t%.4f\n", ch, len(frames), dims, fs.Mean(ch))
			}
			return tw.Flush()
		},
	}
}
