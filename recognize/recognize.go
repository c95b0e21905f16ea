// Package recognize defines the speech and phoneme collaborators the scorer
// depends on, together with the implementations shipped with pronounce.
//
// A Recognizer turns a recording into text, a PhonemeExtractor turns a
// recording into a standardized phoneme string and a Transliterator turns a
// sentence into the phonemes a speaker is expected to produce.
package recognize

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"
)

// Recognizer transcribes speech. lang is an ISO 639-1 code such as "id".
type Recognizer interface {
	Recognize(ctx context.Context, path, lang string) (string, error)
}

// PhonemeExtractor produces a standardized phoneme string from a recording.
type PhonemeExtractor interface {
	ExtractPhonemes(ctx context.Context, path string) (string, error)
}

// Transliterator produces the expected standardized phonemes of a sentence.
type Transliterator interface {
	TextToPhonemes(sentence string) string
}

// ErrNoTranscript is returned by Fallback when every recognizer failed or
// returned nothing.
var ErrNoTranscript = errors.New("recognize: no transcript")

// Fallback tries each recognizer in order and returns the first non-empty
// transcript.
type Fallback struct {
	Recognizers []Recognizer
	Logger      logrus.FieldLogger
}

// Recognize implements Recognizer.
func (f *Fallback) Recognize(ctx context.Context, path, lang string) (string, error) {
	log := f.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	var errs []error
	for i, r := range f.Recognizers {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		text, err := r.Recognize(ctx, path, lang)
		if err != nil {
			log.WithError(err).WithField("recognizer", i).Warn("recognizer failed, trying next")
			errs = append(errs, err)
			continue
		}
		if strings.TrimSpace(text) != "" {
			return text, nil
		}
	}
	return "", errors.Join(append([]error{ErrNoTranscript}, errs...)...)
}

// Func adapts a function to the Recognizer interface.
type Func func(ctx context.Context, path, lang string) (string, error)

// Recognize implements Recognizer.
func (fn Func) Recognize(ctx context.Context, path, lang string) (string, error) {
	return fn(ctx, path, lang)
}
