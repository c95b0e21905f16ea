package feature

import (
	"math"

	"github.com/ieee0824/pronounce-go/internal/blas"
)

// sparseFilter stores only the non-zero range of a triangular filter.
type sparseFilter struct {
	start  int       // first non-zero bin index
	coeffs []float64 // non-zero coefficient values
}

// MelFilterbank represents the triangular Mel-spaced filterbank.
type MelFilterbank struct {
	Filters [][]float64    // [numFilters][fftSize/2+1]
	sparse  []sparseFilter // sparse representation for fast inner loop
}

// NewMelFilterbank constructs an area-normalized triangular filterbank on the
// HTK mel scale. Weights are interpolated at the exact bin frequencies, so
// narrow low-frequency filters never collapse to zero.
func NewMelFilterbank(numFilters, fftSize, sampleRate int, lowFreq, highFreq float64) *MelFilterbank {
	freqs := FFTFrequencies(fftSize, sampleRate)
	lowMel := hzToMel(lowFreq)
	highMel := hzToMel(highFreq)

	// numFilters+2 equally spaced points on the Mel scale
	edges := make([]float64, numFilters+2)
	step := (highMel - lowMel) / float64(numFilters+1)
	for i := range edges {
		edges[i] = melToHz(lowMel + float64(i)*step)
	}

	filters := make([][]float64, numFilters)
	for i := 0; i < numFilters; i++ {
		filters[i] = make([]float64, len(freqs))
		left, center, right := edges[i], edges[i+1], edges[i+2]
		norm := 2.0 / (right - left)
		for j, f := range freqs {
			lower := (f - left) / (center - left)
			upper := (right - f) / (right - center)
			if w := math.Min(lower, upper); w > 0 {
				filters[i][j] = w * norm
			}
		}
	}

	fb := &MelFilterbank{Filters: filters}

	fb.sparse = make([]sparseFilter, numFilters)
	for i, f := range filters {
		start, end := 0, 0
		found := false
		for j, v := range f {
			if v != 0 {
				if !found {
					start = j
					found = true
				}
				end = j + 1
			}
		}
		if found {
			fb.sparse[i] = sparseFilter{
				start:  start,
				coeffs: make([]float64, end-start),
			}
			copy(fb.sparse[i].coeffs, f[start:end])
		}
	}

	return fb
}

// Apply multiplies the power spectrum through each filter and returns the Mel energies.
func (fb *MelFilterbank) Apply(powerSpec []float64) []float64 {
	energies := make([]float64, len(fb.sparse))
	fb.applyInto(powerSpec, energies)
	return energies
}

// applyInto writes linear Mel energies into dst (no allocation).
func (fb *MelFilterbank) applyInto(powerSpec, dst []float64) {
	for i, sf := range fb.sparse {
		sum := 0.0
		end := min(sf.start+len(sf.coeffs), len(powerSpec))
		if sf.start >= end {
			dst[i] = 0
			continue
		}
		ps := powerSpec[sf.start:end]
		coeffs := sf.coeffs[:len(ps)]
		for j, p := range ps {
			sum += p * coeffs[j]
		}
		dst[i] = sum
	}
}

// PowerToDB converts a power spectrogram to decibels in place:
// 10*log10(max(S, 1e-10)). When topDB > 0 every value is floored at
// (global max - topDB).
func PowerToDB(spec [][]float64, topDB float64) {
	peak := math.Inf(-1)
	for _, row := range spec {
		for j, v := range row {
			row[j] = 10 * math.Log10(math.Max(v, 1e-10))
			if row[j] > peak {
				peak = row[j]
			}
		}
	}
	if topDB <= 0 {
		return
	}
	floor := peak - topDB
	for _, row := range spec {
		for j, v := range row {
			if v < floor {
				row[j] = floor
			}
		}
	}
}

// DCT applies an orthonormal Type-II DCT and keeps the first numCepstra coefficients.
func DCT(input []float64, numCepstra int) []float64 {
	t := newDCTTable(numCepstra, len(input))
	out := make([]float64, numCepstra)
	t.applyInto(input, out)
	return out
}

// dctTable holds precomputed, orthonormally scaled cosine values,
// row-major [numCepstra][numFilters].
type dctTable struct {
	cos        []float64
	numCepstra int
	numFilters int
}

func newDCTTable(numCepstra, numFilters int) *dctTable {
	t := &dctTable{
		cos:        make([]float64, numCepstra*numFilters),
		numCepstra: numCepstra,
		numFilters: numFilters,
	}
	n := float64(numFilters)
	for k := 0; k < numCepstra; k++ {
		scale := math.Sqrt(2 / n)
		if k == 0 {
			scale = math.Sqrt(1 / n)
		}
		for j := 0; j < numFilters; j++ {
			t.cos[k*numFilters+j] = scale * math.Cos(math.Pi*float64(k)*(float64(j)+0.5)/n)
		}
	}
	return t
}

// applyInto computes the DCT of one frame into dst (no allocation).
func (t *dctTable) applyInto(input, dst []float64) {
	blas.Dgemm(false, true, 1, t.numCepstra, t.numFilters,
		1, input, t.numFilters,
		t.cos, t.numFilters,
		0, dst, t.numCepstra)
}

// applyMat transforms every row of spec (T x numFilters) in one GEMM:
// out = spec * cos^T.
func (t *dctTable) applyMat(spec [][]float64) [][]float64 {
	rows := len(spec)
	flat := make([]float64, rows*t.numFilters)
	for i, row := range spec {
		copy(flat[i*t.numFilters:], row)
	}
	out := make([]float64, rows*t.numCepstra)
	blas.Dgemm(false, true, rows, t.numCepstra, t.numFilters,
		1, flat, t.numFilters,
		t.cos, t.numFilters,
		0, out, t.numCepstra)

	res := make([][]float64, rows)
	for i := range res {
		res[i] = out[i*t.numCepstra : (i+1)*t.numCepstra : (i+1)*t.numCepstra]
	}
	return res
}

func hzToMel(hz float64) float64 {
	return 2595.0 * math.Log10(1.0+hz/700.0)
}

func melToHz(mel float64) float64 {
	return 700.0 * (math.Pow(10, mel/2595.0) - 1.0)
}
