package feature

import (
	"math"
	"math/cmplx"
)

func bitReverse(x, bits int) int {
	var result int
	for i := 0; i < bits; i++ {
		result = (result << 1) | (x & 1)
		x >>= 1
	}
	return result
}

// fftWorkspace holds reusable buffers for a radix-2 FFT over real frames.
// Split real/imaginary layout keeps the butterfly loop allocation free.
type fftWorkspace struct {
	bufRe []float64 // [fftSize] real part
	bufIm []float64 // [fftSize] imaginary part
	mag   []float64 // [fftSize/2+1] |X|
	power []float64 // [fftSize/2+1] |X|^2
	perm  []int       // bit-reversal permutation table
	twRe  [][]float64 // twiddle factors real parts per stage
	twIm  [][]float64 // twiddle factors imag parts per stage
}

// newFFTWorkspace allocates buffers for an FFT of fftSize points.
// fftSize must be a power of 2.
func newFFTWorkspace(fftSize int) *fftWorkspace {
	bits := 0
	for v := fftSize; v > 1; v >>= 1 {
		bits++
	}

	perm := make([]int, fftSize)
	for i := 0; i < fftSize; i++ {
		perm[i] = bitReverse(i, bits)
	}

	var twRe, twIm [][]float64
	for size := 2; size <= fftSize; size *= 2 {
		halfSize := size / 2
		re := make([]float64, halfSize)
		im := make([]float64, halfSize)
		w := cmplx.Exp(complex(0, -2*math.Pi/float64(size)))
		wn := complex(1, 0)
		for k := 0; k < halfSize; k++ {
			re[k] = real(wn)
			im[k] = imag(wn)
			wn *= w
		}
		twRe = append(twRe, re)
		twIm = append(twIm, im)
	}

	return &fftWorkspace{
		bufRe: make([]float64, fftSize),
		bufIm: make([]float64, fftSize),
		mag:   make([]float64, fftSize/2+1),
		power: make([]float64, fftSize/2+1),
		perm:  perm,
		twRe:  twRe,
		twIm:  twIm,
	}
}

// computeSpectrum loads frame into the buffer with optional windowing,
// performs an in-place FFT and writes the magnitude and power spectra of the
// positive frequencies into ws.mag and ws.power.
func (ws *fftWorkspace) computeSpectrum(frame, window []float64) {
	n := len(ws.bufRe)
	frameLen := min(len(frame), n)

	if window != nil {
		for i := 0; i < frameLen; i++ {
			ws.bufRe[i] = frame[i] * window[i]
		}
	} else {
		copy(ws.bufRe[:frameLen], frame)
	}
	for i := frameLen; i < n; i++ {
		ws.bufRe[i] = 0
	}
	clear(ws.bufIm)

	for i := 0; i < n; i++ {
		j := ws.perm[i]
		if i < j {
			ws.bufRe[i], ws.bufRe[j] = ws.bufRe[j], ws.bufRe[i]
			ws.bufIm[i], ws.bufIm[j] = ws.bufIm[j], ws.bufIm[i]
		}
	}

	for stage, size := 0, 2; size <= n; stage, size = stage+1, size*2 {
		halfSize := size / 2
		wr, wi := ws.twRe[stage], ws.twIm[stage]
		for start := 0; start < n; start += size {
			for k := 0; k < halfSize; k++ {
				a := start + k
				b := a + halfSize
				tr := wr[k]*ws.bufRe[b] - wi[k]*ws.bufIm[b]
				ti := wr[k]*ws.bufIm[b] + wi[k]*ws.bufRe[b]
				ws.bufRe[b] = ws.bufRe[a] - tr
				ws.bufIm[b] = ws.bufIm[a] - ti
				ws.bufRe[a] += tr
				ws.bufIm[a] += ti
			}
		}
	}

	for i := range ws.power {
		r := ws.bufRe[i]
		im := ws.bufIm[i]
		ws.power[i] = r*r + im*im
		ws.mag[i] = math.Sqrt(ws.power[i])
	}
}

// FFTFrequencies returns the centre frequency in Hz of each of the
// fftSize/2+1 positive-frequency bins.
func FFTFrequencies(fftSize, sampleRate int) []float64 {
	freqs := make([]float64, fftSize/2+1)
	for i := range freqs {
		freqs[i] = float64(i) * float64(sampleRate) / float64(fftSize)
	}
	return freqs
}
