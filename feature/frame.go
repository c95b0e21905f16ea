package feature

import "math"

// PadCenter pads samples with pad values on both sides so that frame t is
// centred on sample t*hop. With edge set the boundary samples are repeated,
// otherwise zeros are used.
func PadCenter(samples []float64, pad int, edge bool) []float64 {
	out := make([]float64, len(samples)+2*pad)
	copy(out[pad:], samples)
	if edge && len(samples) > 0 {
		first, last := samples[0], samples[len(samples)-1]
		for i := 0; i < pad; i++ {
			out[i] = first
			out[pad+len(samples)+i] = last
		}
	}
	return out
}

// Frame splits samples into overlapping frames.
// frameLen and frameShift are in number of samples.
func Frame(samples []float64, frameLen, frameShift int) [][]float64 {
	n := len(samples)
	if n < frameLen || frameShift <= 0 {
		return nil
	}
	numFrames := 1 + (n-frameLen)/frameShift
	frames := make([][]float64, numFrames)
	for i := 0; i < numFrames; i++ {
		start := i * frameShift
		frame := make([]float64, frameLen)
		copy(frame, samples[start:start+frameLen])
		frames[i] = frame
	}
	return frames
}

// HannWindow returns a periodic Hann window of length n, suitable for
// spectral analysis with an FFT of the same size.
func HannWindow(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n))
	}
	return w
}
