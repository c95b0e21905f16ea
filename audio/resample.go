package audio

import "fmt"

// Resample converts samples from srcRate to dstRate using linear interpolation.
// The returned slice has length int(len(samples) * dstRate / srcRate).
// If the rates match, samples is returned unchanged.
func Resample(samples []float64, srcRate, dstRate int) []float64 {
	if len(samples) == 0 || srcRate <= 0 || dstRate <= 0 {
		return nil
	}
	if srcRate == dstRate {
		return samples
	}

	origLen := len(samples)
	newLen := int(int64(origLen) * int64(dstRate) / int64(srcRate))
	if newLen == 0 {
		return nil
	}
	step := float64(srcRate) / float64(dstRate)

	result := make([]float64, newLen)
	for i := 0; i < newLen; i++ {
		srcIdx := float64(i) * step
		idx0 := int(srcIdx)
		frac := srcIdx - float64(idx0)

		if idx0+1 < origLen {
			result[i] = samples[idx0]*(1.0-frac) + samples[idx0+1]*frac
		} else if idx0 < origLen {
			result[i] = samples[idx0]
		}
	}
	return result
}

// Load reads a WAV file, downmixes it to mono and resamples it to rate.
func Load(path string, rate int) ([]float64, error) {
	samples, header, err := ReadWAVFile(path)
	if err != nil {
		return nil, fmt.Errorf("read WAV %q: %w", path, err)
	}
	out := Resample(samples, header.SampleRate, rate)
	if len(out) == 0 {
		return nil, fmt.Errorf("resample %q: %w", path, ErrEmpty)
	}
	return out, nil
}

// Duration returns the length in seconds of n samples at rate.
func Duration(n, rate int) float64 {
	if rate <= 0 {
		return 0
	}
	return float64(n) / float64(rate)
}
