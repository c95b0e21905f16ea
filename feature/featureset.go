package feature

import (
	"fmt"

	"github.com/ieee0824/pronounce-go/audio"
	"github.com/ieee0824/pronounce-go/internal/mathutil"
	"github.com/sirupsen/logrus"
)

// Channel names one feature stream of a FeatureSet.
type Channel string

const (
	ChannelMFCC              Channel = "mfcc"
	ChannelMFCCDelta         Channel = "mfcc_delta"
	ChannelMFCCDelta2        Channel = "mfcc_delta2"
	ChannelSpectralCentroid  Channel = "spectral_centroid"
	ChannelSpectralBandwidth Channel = "spectral_bandwidth"
	ChannelSpectralRolloff   Channel = "spectral_rolloff"
	ChannelZeroCrossingRate  Channel = "zero_crossing_rate"
)

// Channels lists every channel in canonical order.
var Channels = []Channel{
	ChannelMFCC,
	ChannelMFCCDelta,
	ChannelMFCCDelta2,
	ChannelSpectralCentroid,
	ChannelSpectralBandwidth,
	ChannelSpectralRolloff,
	ChannelZeroCrossingRate,
}

// Cepstral reports whether ch is one of the multi-dimensional MFCC channels.
func (ch Channel) Cepstral() bool {
	switch ch {
	case ChannelMFCC, ChannelMFCCDelta, ChannelMFCCDelta2:
		return true
	}
	return false
}

// FeatureSet holds the time-major feature channels of one recording.
// Each channel is indexed [frame][dim].
type FeatureSet struct {
	SampleRate int
	Duration   float64 // seconds
	Channels   map[Channel][][]float64
}

// Frames returns the number of frames in channel ch.
func (fs *FeatureSet) Frames(ch Channel) int {
	return len(fs.Channels[ch])
}

// Mean returns the mean over all frames and dimensions of channel ch.
func (fs *FeatureSet) Mean(ch Channel) float64 {
	return mathutil.MeanMat(fs.Channels[ch])
}

// Extractor reads recordings from disk, normalizes their loudness and
// computes feature sets.
type Extractor struct {
	cfg       Config
	tempDir   string
	targetDB  float64
	normalize bool
	log       logrus.FieldLogger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithTempDir sets the directory for normalized temporary copies.
func WithTempDir(dir string) Option {
	return func(e *Extractor) {
		e.tempDir = dir
	}
}

// WithTargetDB sets the loudness normalization target level.
func WithTargetDB(db float64) Option {
	return func(e *Extractor) {
		e.targetDB = db
	}
}

// WithNormalization enables or disables loudness normalization.
func WithNormalization(enabled bool) Option {
	return func(e *Extractor) {
		e.normalize = enabled
	}
}

// WithLogger sets the logger used for recoverable failures.
func WithLogger(log logrus.FieldLogger) Option {
	return func(e *Extractor) {
		e.log = log
	}
}

// NewExtractor creates an Extractor. Normalization to audio.DefaultTargetDB
// is on by default.
func NewExtractor(cfg Config, opts ...Option) *Extractor {
	e := &Extractor{
		cfg:       cfg,
		targetDB:  audio.DefaultTargetDB,
		normalize: true,
		log:       logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Config returns the extraction parameters.
func (e *Extractor) Config() Config {
	return e.cfg
}

// ExtractFile normalizes the recording at path into a temporary file,
// extracts its features and removes the temporary file. If normalization
// fails the original recording is analysed instead.
func (e *Extractor) ExtractFile(path string) (*FeatureSet, error) {
	src := path
	if e.normalize {
		normalized, cleanup, err := audio.NormalizeFile(path, e.tempDir, e.cfg.SampleRate, e.targetDB)
		defer cleanup()
		if err != nil {
			e.log.WithError(err).WithField("path", path).Warn("loudness normalization failed, using original audio")
		}
		src = normalized
	}

	samples, err := audio.Load(src, e.cfg.SampleRate)
	if err != nil {
		return nil, fmt.Errorf("load audio: %w", err)
	}
	fs, err := Extract(samples, e.cfg)
	if err != nil {
		return nil, fmt.Errorf("extract features from %q: %w", path, err)
	}
	return fs, nil
}

// ExtractFile is a convenience wrapper around NewExtractor(cfg).ExtractFile(path).
func ExtractFile(path string, cfg Config) (*FeatureSet, error) {
	return NewExtractor(cfg).ExtractFile(path)
}
