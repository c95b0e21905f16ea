package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	pronounce "github.com/ieee0824/pronounce-go"
	"github.com/ieee0824/pronounce-go/feedback"
	"github.com/ieee0824/pronounce-go/score"
	"github.com/spf13/cobra"
)

func newScoreCmd(a *app) *cobra.Command {
	var req pronounce.Request
	var recognized, refPhonemes, userPhonemes, difficulty string
	var asJSON, noRecord bool
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a recording against a reference recording",
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			if flags.Changed("recognized") {
				req.Recognized = &recognized
			}
			if flags.Changed("phonemes-expected") != flags.Changed("phonemes-recognized") {
				return fmt.Errorf("--phonemes-expected and --phonemes-recognized must be given together")
			}
			if flags.Changed("phonemes-expected") {
				req.ReferencePhonemes, req.UserPhonemes = &refPhonemes, &userPhonemes
			}
			if difficulty != "" {
				d, err := score.ParseDifficulty(difficulty)
				if err != nil {
					return err
				}
				req.Difficulty = d
			}

			scorer, closeFn, err := a.newScorer(!noRecord)
			if err != nil {
				return err
			}
			defer closeFn()

			res, err := scorer.Score(cmd.Context(), req)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			printResult(cmd.OutOrStdout(), res)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.ReferencePath, "ref", "", "reference recording (WAV)")
	f.StringVar(&req.UserPath, "user", "", "learner recording (WAV)")
	f.StringVar(&req.Sentence, "text", "", "sentence that was spoken")
	f.StringVar(&recognized, "recognized", "", "recognized text; skips the speech recognizer")
	f.StringVar(&refPhonemes, "phonemes-expected", "", "reference phonemes; skips phoneme extraction")
	f.StringVar(&userPhonemes, "phonemes-recognized", "", "learner phonemes; skips phoneme extraction")
	f.StringVar(&difficulty, "difficulty", "", "sentence difficulty (easy, medium, difficult)")
	f.BoolVar(&asJSON, "json", false, "print the result as JSON")
	f.BoolVar(&noRecord, "no-record", false, "do not record the attempt in the progress database")
	for _, name := range []string{"ref", "user", "text"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func printResult(w io.Writer, res *pronounce.Result) {
	fmt.Fprintln(w, feedback.Render(res.Feedback))
	if res.Recognized != "" {
		fmt.Fprintf(w, "Recognized: %q\n", res.Recognized)
	}
	if len(res.Trace) > 0 {
		fmt.Fprintln(w, feedback.RenderTrace(res.Trace))
	}
	if len(res.Errors) > 0 {
		fmt.Fprintln(w, "Warnings:\n  "+strings.Join(res.Errors, "\n  "))
	}
}
