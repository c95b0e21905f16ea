package main

import (
	"fmt"

	pronounce "github.com/ieee0824/pronounce-go"
	"github.com/ieee0824/pronounce-go/acoustic"
	"github.com/ieee0824/pronounce-go/feature"
	"github.com/ieee0824/pronounce-go/internal/config"
	"github.com/ieee0824/pronounce-go/progress"
	"github.com/ieee0824/pronounce-go/recognize"
	"github.com/ieee0824/pronounce-go/sentence"
	"github.com/sirupsen/logrus"
)

func featureConfig(cfg *config.Config) feature.Config {
	fc := feature.DefaultConfig()
	fc.SampleRate = cfg.Feature.SampleRate
	fc.NumCepstra = cfg.Feature.NumMFCC
	return fc
}

func newExtractor(cfg *config.Config, log logrus.FieldLogger) *feature.Extractor {
	return feature.NewExtractor(featureConfig(cfg),
		feature.WithTempDir(cfg.TempDir),
		feature.WithTargetDB(cfg.Feature.TargetDB),
		feature.WithNormalization(cfg.Feature.Normalize),
		feature.WithLogger(log),
	)
}

// newRecognizer returns nil when no recognizer is configured.
func newRecognizer(cfg *config.Config) (recognize.Recognizer, error) {
	switch cfg.Recognizer.Provider {
	case config.RecognizerWhisper:
		opts := []recognize.WhisperOption{recognize.WithTimeout(cfg.Recognizer.Timeout)}
		if cfg.Recognizer.BaseURL != "" {
			opts = append(opts, recognize.WithBaseURL(cfg.Recognizer.BaseURL))
		}
		if cfg.Recognizer.Model != "" {
			opts = append(opts, recognize.WithModel(cfg.Recognizer.Model))
		}
		return recognize.NewWhisper(cfg.Recognizer.APIKey, opts...)
	case config.RecognizerNone, "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown recognizer %q", cfg.Recognizer.Provider)
	}
}

// newPhonemeExtractor returns nil when no emission endpoint is configured.
func newPhonemeExtractor(cfg *config.Config, log logrus.FieldLogger) (recognize.PhonemeExtractor, error) {
	if cfg.Phonemes.Endpoint == "" {
		return nil, nil
	}
	model, err := recognize.NewRemoteEmissions(cfg.Phonemes.Endpoint, cfg.Phonemes.Timeout)
	if err != nil {
		return nil, err
	}
	opts := []recognize.CTCOption{
		recognize.WithSampleRate(cfg.Feature.SampleRate),
		recognize.WithCTCLogger(log),
	}
	var dec recognize.Decoder
	if cfg.Phonemes.Vocab != "" {
		vocab, err := recognize.LoadVocabFile(cfg.Phonemes.Vocab)
		if err != nil {
			return nil, fmt.Errorf("load vocab: %w", err)
		}
		dec = vocab
		opts = append(opts, recognize.WithFallbackDecoder(recognize.NewSymbolDecoder()))
	}
	return recognize.NewCTCExtractor(model, dec, opts...), nil
}

func loadCatalog(cfg *config.Config) (*sentence.Catalog, error) {
	if cfg.Catalog.Path == "" {
		return sentence.Builtin(), nil
	}
	return sentence.LoadFile(cfg.Catalog.Path)
}

// openStore returns nil when progress recording is disabled.
func openStore(cfg *config.Config) (*progress.Store, error) {
	if cfg.Progress.DBPath == "" {
		return nil, nil
	}
	return progress.Open(cfg.Progress.DBPath)
}

// newScorer wires the full pipeline. The returned close function releases
// the progress store.
func (a *app) newScorer(record bool) (*pronounce.Scorer, func(), error) {
	cfg, log := a.cfg, a.log

	rec, err := newRecognizer(cfg)
	if err != nil {
		return nil, nil, err
	}
	ph, err := newPhonemeExtractor(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	cat, err := loadCatalog(cfg)
	if err != nil {
		return nil, nil, err
	}

	opts := []pronounce.Option{
		pronounce.WithComparator(acoustic.NewComparator(
			acoustic.WithExtractor(newExtractor(cfg, log)),
			acoustic.WithParallel(cfg.Parallel),
			acoustic.WithLogger(log),
		)),
		pronounce.WithCatalog(cat),
		pronounce.WithLanguage(cfg.Language),
		pronounce.WithLogger(log),
	}
	if rec != nil {
		opts = append(opts, pronounce.WithRecognizer(rec))
	}
	if ph != nil {
		opts = append(opts, pronounce.WithPhonemeExtractor(ph))
	}

	closeFn := func() {}
	if record {
		store, err := openStore(cfg)
		if err != nil {
			return nil, nil, err
		}
		if store != nil {
			opts = append(opts, pronounce.WithRecorder(store))
			closeFn = func() {
				if err := store.Close(); err != nil {
					log.WithError(err).Warn("close progress store")
				}
			}
		}
	}
	return pronounce.NewScorer(opts...), closeFn, nil
}
