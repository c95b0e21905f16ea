// Command pronounce scores Indonesian pronunciation practice recordings.
package main

import (
	"fmt"
	"os"

	"github.com/ieee0824/pronounce-go/internal/config"
	"github.com/ieee0824/pronounce-go/internal/observe"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// app carries state shared by subcommands after flag parsing.
type app struct {
	configPath string
	cfg        *config.Config
	log        *logrus.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "pronounce",
		Short:         "Score Indonesian pronunciation against reference recordings",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "path to a YAML config file")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.String("temp-dir", "", "directory for temporary normalized audio")
	pf.String("language", "id", "recognition language")
	pf.Bool("parallel", true, "extract and score feature channels concurrently")
	pf.String("recognizer", "none", "speech recognizer (none, whisper)")
	pf.String("db", "pronounce.sqlite", "progress database path (empty disables recording)")
	pf.String("catalog", "", "sentence catalog file (.tsv or .yaml); built-in sentences when empty")

	root.AddCommand(
		newScoreCmd(a),
		newPhonemesCmd(),
		newTextCmd(),
		newFeaturesCmd(a),
		newSentencesCmd(a),
		newProgressCmd(a),
		newServeCmd(a),
	)
	return root
}

func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath, cmd.Flags())
	if err != nil {
		return err
	}
	log, err := observe.NewLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	a.cfg, a.log = cfg, log
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
