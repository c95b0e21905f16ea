package audio

import (
	"fmt"
	"math"
	"os"
)

// DefaultTargetDB is the RMS level recordings are normalized to before comparison.
const DefaultTargetDB = -25.0

const (
	rmsFrameLength = 2048
	rmsHopLength   = 512
	peakHeadroom   = 0.9
)

// MeanRMS returns the mean of the per-frame RMS energies of samples.
// Frames are centred: the signal is zero-padded by half a frame on each side.
func MeanRMS(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	pad := rmsFrameLength / 2
	numFrames := 1 + len(samples)/rmsHopLength
	sum := 0.0
	for f := 0; f < numFrames; f++ {
		start := f*rmsHopLength - pad
		energy := 0.0
		for i := start; i < start+rmsFrameLength; i++ {
			if i >= 0 && i < len(samples) {
				energy += samples[i] * samples[i]
			}
		}
		sum += math.Sqrt(energy / rmsFrameLength)
	}
	return sum / float64(numFrames)
}

// Normalize scales samples so their mean RMS reaches targetDB. If the result
// would clip, it is rescaled so the peak sits at 0.9.
func Normalize(samples []float64, targetDB float64) []float64 {
	rmsDB := 20 * math.Log10(MeanRMS(samples)+1e-8)
	gain := math.Pow(10, (targetDB-rmsDB)/20)

	out := make([]float64, len(samples))
	peak := 0.0
	for i, s := range samples {
		out[i] = s * gain
		if a := math.Abs(out[i]); a > peak {
			peak = a
		}
	}
	if peak > 1.0 {
		scale := peakHeadroom / peak
		for i := range out {
			out[i] *= scale
		}
	}
	return out
}

// NormalizeFile loads path at rate, normalizes it to targetDB and writes the
// result to a new temporary WAV file in dir (os.TempDir when empty).
//
// The returned cleanup func removes the temporary file and must always be
// called. On failure the original path is returned together with a no-op
// cleanup and the error, so callers can continue with the unmodified audio.
func NormalizeFile(path, dir string, rate int, targetDB float64) (string, func(), error) {
	noop := func() {}

	samples, err := Load(path, rate)
	if err != nil {
		return path, noop, fmt.Errorf("normalize: %w", err)
	}
	normalized := Normalize(samples, targetDB)

	f, err := os.CreateTemp(dir, "pronounce-norm-*.wav")
	if err != nil {
		return path, noop, fmt.Errorf("normalize: create temp file: %w", err)
	}
	tmp := f.Name()
	cleanup := func() { os.Remove(tmp) }

	if err := WriteWAV(f, normalized, rate); err != nil {
		f.Close()
		cleanup()
		return path, noop, fmt.Errorf("normalize: write %q: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		cleanup()
		return path, noop, fmt.Errorf("normalize: close %q: %w", tmp, err)
	}
	return tmp, cleanup, nil
}
