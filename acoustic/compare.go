// Package acoustic scores how closely a learner's recording matches a
// reference recording using cepstral and spectral features.
package acoustic

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/ieee0824/pronounce-go/feature"
	"github.com/ieee0824/pronounce-go/internal/mathutil"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	// lengthMismatchScore is assigned to a channel whose frame counts differ too much to align.
	lengthMismatchScore = 60.0
	// maxFrameMismatch is the relative frame count difference beyond which alignment is skipped.
	maxFrameMismatch = 0.3
	channelBoost     = 1.05
)

// Weights maps each feature channel to its share of the weighted score.
type Weights map[feature.Channel]float64

// DefaultWeights returns the channel weights used for scoring. They sum to 1.
func DefaultWeights() Weights {
	return Weights{
		feature.ChannelMFCC:              0.35,
		feature.ChannelMFCCDelta:         0.15,
		feature.ChannelMFCCDelta2:        0.10,
		feature.ChannelSpectralCentroid:  0.10,
		feature.ChannelSpectralBandwidth: 0.10,
		feature.ChannelSpectralRolloff:   0.10,
		feature.ChannelZeroCrossingRate:  0.10,
	}
}

// Report breaks an acoustic score down into its parts.
type Report struct {
	Score         float64                     `json:"score"`
	Weighted      float64                     `json:"weighted"`
	Length        float64                     `json:"length"`
	DurationRatio float64                     `json:"duration_ratio"`
	RefDuration   float64                     `json:"ref_duration"`
	UserDuration  float64                     `json:"user_duration"`
	Channels      map[feature.Channel]float64 `json:"channels"`
}

// Comparator compares a user recording against a reference recording.
type Comparator struct {
	extractor *feature.Extractor
	weights   Weights
	parallel  bool
	log       logrus.FieldLogger
}

// Option configures a Comparator.
type Option func(*Comparator)

// WithExtractor sets the feature extractor used for both recordings.
func WithExtractor(ex *feature.Extractor) Option {
	return func(c *Comparator) {
		c.extractor = ex
	}
}

// WithWeights overrides the channel weights.
func WithWeights(w Weights) Option {
	return func(c *Comparator) {
		c.weights = w
	}
}

// WithParallel enables or disables concurrent extraction and channel scoring.
func WithParallel(enabled bool) Option {
	return func(c *Comparator) {
		c.parallel = enabled
	}
}

// WithLogger sets the logger for swallowed errors.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Comparator) {
		c.log = log
	}
}

// NewComparator creates a Comparator with the default extractor and weights.
func NewComparator(opts ...Option) *Comparator {
	c := &Comparator{
		weights:  DefaultWeights(),
		parallel: true,
		log:      logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.extractor == nil {
		c.extractor = feature.NewExtractor(feature.DefaultConfig(), feature.WithLogger(c.log))
	}
	return c
}

// Compare returns the acoustic similarity of userPath to refPath in [0, 100].
//
// When recognized is non-nil and empty, no speech was detected and the
// result is 0 without touching the audio. Any failure is logged and scores 0.
func (c *Comparator) Compare(ctx context.Context, refPath, userPath string, recognized *string) float64 {
	if recognized != nil && *recognized == "" {
		c.log.WithField("user_path", userPath).Info("no speech recognized, acoustic score is 0")
		return 0
	}
	report, err := c.CompareFiles(ctx, refPath, userPath)
	if err != nil {
		c.log.WithError(err).WithFields(logrus.Fields{
			"ref_path":  refPath,
			"user_path": userPath,
		}).Warn("acoustic comparison failed")
		return 0
	}
	return report.Score
}

// CompareFiles extracts features from both recordings and scores them.
// Unlike Compare it reports failures to the caller.
func (c *Comparator) CompareFiles(ctx context.Context, refPath, userPath string) (*Report, error) {
	var ref, user *feature.FeatureSet

	g, gctx := errgroup.WithContext(ctx)
	if !c.parallel {
		g.SetLimit(1)
	}
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		fs, err := c.extractor.ExtractFile(refPath)
		if err != nil {
			return fmt.Errorf("reference: %w", err)
		}
		ref = fs
		return nil
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		fs, err := c.extractor.ExtractFile(userPath)
		if err != nil {
			return fmt.Errorf("user: %w", err)
		}
		user = fs
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return c.ScoreFeatures(ctx, ref, user)
}

// ScoreFeatures scores two already extracted feature sets.
func (c *Comparator) ScoreFeatures(ctx context.Context, ref, user *feature.FeatureSet) (*Report, error) {
	if ref == nil || user == nil {
		return nil, errors.New("acoustic: missing feature set")
	}

	ratio, length := lengthScore(ref.Duration, user.Duration)

	channels := feature.Channels
	scores := make([]float64, len(channels))

	g, gctx := errgroup.WithContext(ctx)
	if !c.parallel {
		g.SetLimit(1)
	}
	for i, ch := range channels {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			refCh, ok := ref.Channels[ch]
			if !ok {
				return fmt.Errorf("reference missing channel %s", ch)
			}
			userCh, ok := user.Channels[ch]
			if !ok {
				return fmt.Errorf("user missing channel %s", ch)
			}
			scores[i] = channelScore(ch, refCh, userCh)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{
		Length:        length,
		DurationRatio: ratio,
		RefDuration:   ref.Duration,
		UserDuration:  user.Duration,
		Channels:      make(map[feature.Channel]float64, len(channels)),
	}
	for i, ch := range channels {
		report.Channels[ch] = scores[i]
		report.Weighted += c.weights[ch] * scores[i]
	}
	report.Score = combine(report.Weighted, length)
	return report, nil
}

// lengthScore penalizes duration mismatch: 100*ratio^0.3, with a further
// 25% cut when one recording is less than half as long as the other.
func lengthScore(refDur, userDur float64) (ratio, score float64) {
	longest := math.Max(refDur, userDur)
	if longest <= 0 {
		return 0, 0
	}
	ratio = math.Min(refDur, userDur) / longest
	score = 100 * math.Pow(ratio, 0.3)
	if ratio < 0.5 {
		score *= 0.75
	}
	return ratio, score
}

// combine blends the weighted channel score with the length score and
// applies the boosts for strong matches. The result is clamped to [0, 100].
func combine(weighted, length float64) float64 {
	final := weighted*0.8 + length*0.2
	if weighted > 80 {
		final *= 1 + (weighted-80)*0.002
	}
	if weighted > 90 && length > 85 {
		final *= 1.05
	}
	return math.Max(0, math.Min(100, final))
}

// channelScore scores one channel pair in [0, 100].
func channelScore(ch feature.Channel, ref, user [][]float64) float64 {
	nRef, nUser := len(ref), len(user)
	if nRef == 0 || math.Abs(float64(nRef-nUser))/float64(nRef) > maxFrameMismatch {
		return lengthMismatchScore
	}
	if ch.Cepstral() {
		return cepstralScore(ref, user)
	}
	return meanScore(ref, user)
}

// cepstralScore aligns both sequences, truncated to the shorter length,
// and maps the per-step, per-dimension distance through a logistic curve.
func cepstralScore(ref, user [][]float64) float64 {
	n := min(len(ref), len(user))
	aln := DTW(ref[:n], user[:n])
	dim := len(ref[0])
	if len(aln.Path) == 0 || dim == 0 {
		return lengthMismatchScore
	}
	avg := aln.Distance / float64(len(aln.Path)*dim)
	score := 100 / (1 + math.Exp(avg-2.0))
	return math.Min(100, score*channelBoost)
}

// meanScore compares the channel means by relative difference.
func meanScore(ref, user [][]float64) float64 {
	refMean := mathutil.MeanMat(ref)
	userMean := mathutil.MeanMat(user)
	rel := math.Abs(refMean-userMean) / (refMean + 1e-8)
	score := 100 * math.Exp(-rel)
	return math.Min(100, score*channelBoost)
}
