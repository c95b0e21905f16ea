package feature

import "math"

// SpectralCentroid returns the magnitude-weighted mean frequency of a frame.
// A silent frame has centroid 0.
func SpectralCentroid(mag, freqs []float64) float64 {
	total := 0.0
	weighted := 0.0
	for i, m := range mag {
		total += m
		weighted += m * freqs[i]
	}
	if total <= 0 {
		return 0
	}
	return weighted / total
}

// SpectralBandwidth returns the magnitude-weighted standard deviation of the
// frequencies around centroid.
func SpectralBandwidth(mag, freqs []float64, centroid float64) float64 {
	total := 0.0
	for _, m := range mag {
		total += m
	}
	if total <= 0 {
		return 0
	}
	sum := 0.0
	for i, m := range mag {
		d := freqs[i] - centroid
		sum += (m / total) * d * d
	}
	return math.Sqrt(sum)
}

// SpectralRolloff returns the lowest frequency below which pct of the total
// spectral magnitude lies. A silent frame has rolloff 0.
func SpectralRolloff(mag, freqs []float64, pct float64) float64 {
	total := 0.0
	for _, m := range mag {
		total += m
	}
	threshold := pct * total
	cum := 0.0
	for i, m := range mag {
		cum += m
		if cum >= threshold {
			return freqs[i]
		}
	}
	return freqs[len(freqs)-1]
}

// ZeroCrossingRate returns the fraction of adjacent sample pairs in frame
// whose signs differ. Zero counts as positive.
func ZeroCrossingRate(frame []float64) float64 {
	if len(frame) == 0 {
		return 0
	}
	crossings := 0
	for i := 1; i < len(frame); i++ {
		if (frame[i] < 0) != (frame[i-1] < 0) {
			crossings++
		}
	}
	return float64(crossings) / float64(len(frame))
}
