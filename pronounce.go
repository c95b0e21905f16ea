// Package pronounce scores a learner's recording of an Indonesian sentence
// against a reference recording.
//
// A scoring run combines three views of the attempt: acoustic similarity of
// the two recordings, similarity of the recognized text to the sentence and,
// when a phoneme extractor is available, similarity of the phonemes heard in
// both recordings. Collaborator failures never abort a run; they are logged,
// listed in Result.Errors and scored as the worst case.
package pronounce

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ieee0824/pronounce-go/acoustic"
	"github.com/ieee0824/pronounce-go/content"
	"github.com/ieee0824/pronounce-go/feedback"
	"github.com/ieee0824/pronounce-go/internal/observe"
	"github.com/ieee0824/pronounce-go/lexicon"
	"github.com/ieee0824/pronounce-go/recognize"
	"github.com/ieee0824/pronounce-go/score"
	"github.com/ieee0824/pronounce-go/sentence"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

// DefaultLanguage is the recognition language.
const DefaultLanguage = "id"

// ErrInvalidRequest is returned for requests missing required fields.
var ErrInvalidRequest = errors.New("pronounce: invalid request")

// Recorder persists scored attempts. *progress.Store implements it.
type Recorder interface {
	Record(ctx context.Context, sentence string, d score.Difficulty, b score.Bundle) (int64, error)
}

// Request describes one attempt. The optional fields carry collaborator
// outputs computed elsewhere; when set, the corresponding collaborator is
// not called.
type Request struct {
	Sentence      string           `json:"sentence"`
	ReferencePath string           `json:"reference_path"`
	UserPath      string           `json:"user_path"`
	Difficulty    score.Difficulty `json:"difficulty,omitempty"`

	Recognized        *string `json:"recognized,omitempty"`
	ReferencePhonemes *string `json:"reference_phonemes,omitempty"`
	UserPhonemes      *string `json:"user_phonemes,omitempty"`
}

// Result is the outcome of a scoring run.
type Result struct {
	Sentence          string           `json:"sentence"`
	Difficulty        score.Difficulty `json:"difficulty"`
	Recognized        string           `json:"recognized"`
	ExpectedPhonemes  string           `json:"expected_phonemes,omitempty"`
	ReferencePhonemes string           `json:"reference_phonemes,omitempty"`
	UserPhonemes      string           `json:"user_phonemes,omitempty"`
	Trace             lexicon.Trace    `json:"trace,omitempty"`
	Scores            score.Bundle     `json:"scores"`
	Success           bool             `json:"success"`
	Acoustic          *acoustic.Report `json:"acoustic,omitempty"`
	Feedback          feedback.Report  `json:"feedback"`
	Errors            []string         `json:"errors,omitempty"`
}

// Scorer runs the scoring pipeline. It is safe for concurrent use.
type Scorer struct {
	comparator     *acoustic.Comparator
	recognizer     recognize.Recognizer
	phonemes       recognize.PhonemeExtractor
	transliterator recognize.Transliterator
	catalog        *sentence.Catalog
	recorder       Recorder
	metrics        *observe.Metrics
	language       string
	log            logrus.FieldLogger
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithComparator sets the acoustic comparator.
func WithComparator(c *acoustic.Comparator) Option {
	return func(s *Scorer) {
		s.comparator = c
	}
}

// WithRecognizer sets the speech recognizer used for the content score.
func WithRecognizer(r recognize.Recognizer) Option {
	return func(s *Scorer) {
		s.recognizer = r
	}
}

// WithPhonemeExtractor enables phoneme scoring.
func WithPhonemeExtractor(p recognize.PhonemeExtractor) Option {
	return func(s *Scorer) {
		s.phonemes = p
	}
}

// WithTransliterator sets how expected phonemes are derived from the sentence.
func WithTransliterator(t recognize.Transliterator) Option {
	return func(s *Scorer) {
		s.transliterator = t
	}
}

// WithCatalog sets the catalog used to look up a sentence's difficulty.
func WithCatalog(c *sentence.Catalog) Option {
	return func(s *Scorer) {
		s.catalog = c
	}
}

// WithRecorder persists every scored attempt.
func WithRecorder(r Recorder) Option {
	return func(s *Scorer) {
		s.recorder = r
	}
}

// WithMetrics sets the metric instruments.
func WithMetrics(m *observe.Metrics) Option {
	return func(s *Scorer) {
		s.metrics = m
	}
}

// WithLanguage sets the recognition language.
func WithLanguage(lang string) Option {
	return func(s *Scorer) {
		s.language = lang
	}
}

// WithLogger sets the logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Scorer) {
		s.log = log
	}
}

// NewScorer creates a Scorer. Without a recognizer the content score is 0
// unless requests carry recognized text; without a phoneme extractor the
// phoneme score is absent unless requests carry both phoneme strings.
func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{
		transliterator: recognize.RuleTransliterator{},
		catalog:        sentence.Builtin(),
		language:       DefaultLanguage,
		log:            logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.comparator == nil {
		s.comparator = acoustic.NewComparator(acoustic.WithLogger(s.log))
	}
	if s.metrics == nil {
		s.metrics = observe.DefaultMetrics()
	}
	return s
}

// run collects the state of one scoring run.
type run struct {
	mu     sync.Mutex
	errs   []string
	failed []string
}

func (r *run) fail(component string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, fmt.Sprintf("%s: %v", component, err))
	r.failed = append(r.failed, component)
}

// Score scores one attempt. It returns an error only for invalid requests.
func (s *Scorer) Score(ctx context.Context, req Request) (*Result, error) {
	if req.Sentence == "" || req.ReferencePath == "" || req.UserPath == "" {
		return nil, fmt.Errorf("%w: sentence, reference_path and user_path are required", ErrInvalidRequest)
	}
	if req.Difficulty != "" && !req.Difficulty.Valid() {
		return nil, fmt.Errorf("%w: unknown difficulty %q", ErrInvalidRequest, req.Difficulty)
	}

	start := time.Now()
	ctx, span := observe.StartSpan(ctx, "pronounce.Score")
	defer span.End()
	log := observe.Logger(ctx, s.log).WithField("sentence", req.Sentence)

	res := &Result{
		Sentence:   req.Sentence,
		Difficulty: s.difficulty(req),
	}
	if s.transliterator != nil {
		res.ExpectedPhonemes = s.transliterator.TextToPhonemes(req.Sentence)
	}
	st := &run{}

	// 音響・音素の系統とテキスト認識の系統は独立しているので並行に走らせる
	var g errgroup.Group
	var phonemeScore *float64
	var acousticScore float64
	g.Go(func() error {
		refPh, userPh, ok := s.phonemeStrings(ctx, req, st, log)
		var recognized *string
		if ok {
			p, tr := lexicon.ComparePhonemes(refPh, userPh)
			phonemeScore = &p
			res.ReferencePhonemes, res.UserPhonemes, res.Trace = refPh, userPh, tr
			recognized = &userPh
		}
		acousticScore, res.Acoustic = s.scoreAcoustic(ctx, req, recognized, st, log)
		return nil
	})
	g.Go(func() error {
		res.Recognized = s.recognizeText(ctx, req, st, log)
		return nil
	})
	_ = g.Wait()

	contentScore := content.Compare(req.Sentence, res.Recognized)
	res.Scores = score.NewBundle(acousticScore, contentScore, phonemeScore)
	res.Success = res.Scores.Success()
	res.Errors = st.errs

	in := feedback.Input{
		Sentence:   req.Sentence,
		Recognized: res.Recognized,
		Trace:      res.Trace,
		Scores:     res.Scores,
	}
	if res.Acoustic != nil {
		in.RefDuration, in.UserDuration = res.Acoustic.RefDuration, res.Acoustic.UserDuration
	}
	res.Feedback = feedback.Build(in)

	if s.recorder != nil {
		if _, err := s.recorder.Record(ctx, req.Sentence, res.Difficulty, res.Scores); err != nil {
			log.WithError(err).Warn("failed to record attempt")
		}
	}

	s.record(ctx, res, st, time.Since(start))
	span.SetAttributes(
		attribute.Float64("pronounce.score.final", res.Scores.Final),
		attribute.Bool("pronounce.success", res.Success),
	)
	log.WithFields(logrus.Fields{
		"acoustic": res.Scores.Acoustic,
		"content":  res.Scores.Content,
		"final":    res.Scores.Final,
	}).Debug("attempt scored")
	return res, nil
}

func (s *Scorer) difficulty(req Request) score.Difficulty {
	if req.Difficulty != "" {
		return req.Difficulty
	}
	if s.catalog != nil {
		if e, ok := s.catalog.Find(req.Sentence); ok {
			return e.Difficulty
		}
	}
	return sentence.DifficultyFor(req.Sentence)
}

// phonemeStrings returns the standardized phonemes of both recordings.
// ok is false when no phoneme score can be computed.
func (s *Scorer) phonemeStrings(ctx context.Context, req Request, st *run, log logrus.FieldLogger) (ref, user string, ok bool) {
	if req.ReferencePhonemes != nil && req.UserPhonemes != nil {
		return lexicon.Standardize(*req.ReferencePhonemes), lexicon.Standardize(*req.UserPhonemes), true
	}
	if s.phonemes == nil {
		return "", "", false
	}

	// 両方とも同じ抽出器で音声から取り出す
	var g errgroup.Group
	g.Go(func() error {
		var err error
		ref, err = s.phonemes.ExtractPhonemes(ctx, req.ReferencePath)
		return err
	})
	g.Go(func() error {
		var err error
		user, err = s.phonemes.ExtractPhonemes(ctx, req.UserPath)
		return err
	})
	if err := g.Wait(); err != nil {
		log.WithError(err).Warn("phoneme extraction failed, phoneme score skipped")
		st.fail(observe.ComponentPhoneme, err)
		return "", "", false
	}
	return lexicon.Standardize(ref), lexicon.Standardize(user), true
}

func (s *Scorer) scoreAcoustic(ctx context.Context, req Request, recognized *string, st *run, log logrus.FieldLogger) (float64, *acoustic.Report) {
	if recognized != nil && *recognized == "" {
		log.Info("no speech recognized, acoustic score is 0")
		return 0, nil
	}
	report, err := s.comparator.CompareFiles(ctx, req.ReferencePath, req.UserPath)
	if err != nil {
		log.WithError(err).Warn("acoustic comparison failed")
		st.fail(observe.ComponentAcoustic, err)
		return 0, nil
	}
	return report.Score, report
}

func (s *Scorer) recognizeText(ctx context.Context, req Request, st *run, log logrus.FieldLogger) string {
	if req.Recognized != nil {
		return *req.Recognized
	}
	if s.recognizer == nil {
		log.Debug("no recognizer configured, content score is 0")
		return ""
	}
	text, err := s.recognizer.Recognize(ctx, req.UserPath, s.language)
	if err != nil {
		log.WithError(err).Warn("speech recognition failed")
		st.fail(observe.ComponentContent, err)
		return ""
	}
	return text
}

func (s *Scorer) record(ctx context.Context, res *Result, st *run, elapsed time.Duration) {
	s.metrics.ScoreDuration.Record(ctx, elapsed.Seconds())
	s.metrics.RecordScore(ctx, observe.ComponentAcoustic, res.Scores.Acoustic)
	s.metrics.RecordScore(ctx, observe.ComponentContent, res.Scores.Content)
	if res.Scores.Phoneme != nil {
		s.metrics.RecordScore(ctx, observe.ComponentPhoneme, *res.Scores.Phoneme)
	}
	s.metrics.RecordScore(ctx, observe.ComponentFinal, res.Scores.Final)
	for _, c := range st.failed {
		s.metrics.RecordFailure(ctx, c)
	}
	s.metrics.RecordAttempt(ctx, res.Success)
}
