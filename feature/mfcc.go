package feature

import (
	"errors"
	"fmt"

	"github.com/ieee0824/pronounce-go/internal/mathutil"
)

// ErrTooShort is returned when there are no samples to analyse.
var ErrTooShort = errors.New("feature: audio too short for a single frame")

// Config holds all feature extraction parameters.
type Config struct {
	SampleRate     int
	FrameLenMs     float64 // analysis window in milliseconds
	FrameShiftMs   float64 // hop in milliseconds
	NumMelFilters  int
	NumCepstra     int
	LowFreq        float64
	HighFreq       float64
	FFTSize        int
	TopDB          float64 // dynamic range of the log-mel spectrogram; 0 disables
	DeltaWidth     int     // regression half-window for deltas
	RolloffPercent float64
}

// DefaultConfig returns the scoring configuration: 16 kHz, 2048-point
// windows with a 512-sample hop, 128 mel bands and 13 cepstra.
func DefaultConfig() Config {
	return Config{
		SampleRate:     16000,
		FrameLenMs:     128.0,
		FrameShiftMs:   32.0,
		NumMelFilters:  128,
		NumCepstra:     13,
		LowFreq:        0,
		HighFreq:       8000,
		FFTSize:        2048,
		TopDB:          80,
		DeltaWidth:     4,
		RolloffPercent: 0.85,
	}
}

// FrameLen returns the analysis window length in samples.
func (c Config) FrameLen() int {
	return int(c.FrameLenMs * float64(c.SampleRate) / 1000.0)
}

// HopLen returns the frame shift in samples.
func (c Config) HopLen() int {
	return int(c.FrameShiftMs * float64(c.SampleRate) / 1000.0)
}

// Validate reports whether the configuration can drive Extract.
func (c Config) Validate() error {
	var errs []error
	if c.SampleRate <= 0 {
		errs = append(errs, fmt.Errorf("sample rate must be positive, got %d", c.SampleRate))
	}
	if c.FFTSize <= 0 || c.FFTSize&(c.FFTSize-1) != 0 {
		errs = append(errs, fmt.Errorf("fft size must be a power of 2, got %d", c.FFTSize))
	}
	if fl := c.FrameLen(); fl <= 0 || fl > c.FFTSize {
		errs = append(errs, fmt.Errorf("frame length %d samples must be in (0, fft size %d]", fl, c.FFTSize))
	}
	if c.HopLen() <= 0 {
		errs = append(errs, fmt.Errorf("frame shift must be positive, got %.2fms", c.FrameShiftMs))
	}
	if c.NumMelFilters <= 0 || c.NumCepstra <= 0 || c.NumCepstra > c.NumMelFilters {
		errs = append(errs, fmt.Errorf("need 0 < cepstra (%d) <= mel filters (%d)", c.NumCepstra, c.NumMelFilters))
	}
	if c.HighFreq <= c.LowFreq {
		errs = append(errs, fmt.Errorf("high freq %.0f must exceed low freq %.0f", c.HighFreq, c.LowFreq))
	}
	return errors.Join(errs...)
}

// Extract computes the full feature set from mono samples at cfg.SampleRate.
// Frames are centred on multiples of the hop, so every channel has
// 1 + len(samples)/hop frames.
func Extract(samples []float64, cfg Config) (*FeatureSet, error) {
	if len(samples) == 0 {
		return nil, ErrTooShort
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("feature config: %w", err)
	}

	frameLen := cfg.FrameLen()
	hop := cfg.HopLen()

	// 1. Centred framing; the spectrum path pads with zeros, ZCR with edges
	frames := Frame(PadCenter(samples, frameLen/2, false), frameLen, hop)
	zcrFrames := Frame(PadCenter(samples, frameLen/2, true), frameLen, hop)
	if len(frames) == 0 {
		return nil, ErrTooShort
	}

	// 2. Reusable workspace
	fftWS := newFFTWorkspace(cfg.FFTSize)
	window := HannWindow(frameLen)
	melFB := NewMelFilterbank(cfg.NumMelFilters, cfg.FFTSize, cfg.SampleRate, cfg.LowFreq, cfg.HighFreq)
	freqs := FFTFrequencies(cfg.FFTSize, cfg.SampleRate)

	T := len(frames)
	melSpec := mathutil.NewMat(T, cfg.NumMelFilters)
	centroid := mathutil.NewMat(T, 1)
	bandwidth := mathutil.NewMat(T, 1)
	rolloff := mathutil.NewMat(T, 1)
	zcr := mathutil.NewMat(T, 1)

	// 3. Per frame: window+FFT -> mel energies and spectral shape
	for i, frame := range frames {
		fftWS.computeSpectrum(frame, window)
		melFB.applyInto(fftWS.power, melSpec[i])

		c := SpectralCentroid(fftWS.mag, freqs)
		centroid[i][0] = c
		bandwidth[i][0] = SpectralBandwidth(fftWS.mag, freqs, c)
		rolloff[i][0] = SpectralRolloff(fftWS.mag, freqs, cfg.RolloffPercent)
		zcr[i][0] = ZeroCrossingRate(zcrFrames[i])
	}

	// 4. log-mel -> DCT
	PowerToDB(melSpec, cfg.TopDB)
	mfcc := newDCTTable(cfg.NumCepstra, cfg.NumMelFilters).applyMat(melSpec)

	// 5. Deltas
	d1, d2 := Deltas(mfcc, cfg.DeltaWidth)

	return &FeatureSet{
		SampleRate: cfg.SampleRate,
		Duration:   float64(len(samples)) / float64(cfg.SampleRate),
		Channels: map[Channel][][]float64{
			ChannelMFCC:              mfcc,
			ChannelMFCCDelta:         d1,
			ChannelMFCCDelta2:        d2,
			ChannelSpectralCentroid:  centroid,
			ChannelSpectralBandwidth: bandwidth,
			ChannelSpectralRolloff:   rolloff,
			ChannelZeroCrossingRate:  zcr,
		},
	}, nil
}
