package feature

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"
)

func generateSine(n int, freq float64) []float64 {
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = 0.5 * math.Sin(2*math.Pi*freq*float64(i)/16000)
	}
	return samples
}

func TestFrame(t *testing.T) {
	samples := make([]float64, 100)
	for i := range samples {
		samples[i] = float64(i)
	}
	frames := Frame(samples, 25, 10)
	// numFrames = 1 + (100-25)/10 = 8
	if len(frames) != 8 {
		t.Fatalf("numFrames = %d, want 8", len(frames))
	}
	if len(frames[0]) != 25 {
		t.Fatalf("frameLen = %d, want 25", len(frames[0]))
	}
	if frames[1][0] != 10.0 {
		t.Errorf("frames[1][0] = %f, want 10.0", frames[1][0])
	}
	if Frame(samples[:10], 25, 10) != nil {
		t.Error("expected nil for input shorter than a frame")
	}
}

func TestPadCenter(t *testing.T) {
	in := []float64{1, 2, 3}
	tests := []struct {
		name string
		edge bool
		want []float64
	}{
		{"zeros", false, []float64{0, 0, 1, 2, 3, 0, 0}},
		{"edge", true, []float64{1, 1, 1, 2, 3, 3, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PadCenter(in, 2, tt.edge)
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("got[%d] = %f, want %f", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestHannWindow(t *testing.T) {
	w := HannWindow(16)
	if math.Abs(w[0]) > 1e-12 {
		t.Errorf("w[0] = %f, want 0", w[0])
	}
	if math.Abs(w[8]-1.0) > 1e-12 {
		t.Errorf("w[8] = %f, want 1.0", w[8])
	}
	// periodic window: symmetric around n/2, w[1] == w[15]
	if math.Abs(w[1]-w[15]) > 1e-12 {
		t.Errorf("w[1] = %f, w[15] = %f, want equal", w[1], w[15])
	}
}

func naiveDFT(x []float64) []complex128 {
	n := len(x)
	out := make([]complex128, n)
	for k := 0; k < n; k++ {
		var sum complex128
		for j := 0; j < n; j++ {
			sum += complex(x[j], 0) * cmplx.Exp(complex(0, -2*math.Pi*float64(k*j)/float64(n)))
		}
		out[k] = sum
	}
	return out
}

func TestComputeSpectrum_MatchesDFT(t *testing.T) {
	x := make([]float64, 32)
	for i := range x {
		x[i] = math.Sin(float64(i)*0.7) + 0.3*math.Cos(float64(i)*2.1)
	}
	ws := newFFTWorkspace(32)
	ws.computeSpectrum(x, nil)
	want := naiveDFT(x)
	for k := 0; k <= 16; k++ {
		if math.Abs(ws.mag[k]-cmplx.Abs(want[k])) > 1e-9 {
			t.Errorf("mag[%d] = %f, want %f", k, ws.mag[k], cmplx.Abs(want[k]))
		}
		p := cmplx.Abs(want[k]) * cmplx.Abs(want[k])
		if math.Abs(ws.power[k]-p) > 1e-8 {
			t.Errorf("power[%d] = %f, want %f", k, ws.power[k], p)
		}
	}
}

func TestComputeSpectrum_ImpulseZeroPadded(t *testing.T) {
	// A unit impulse has a flat magnitude spectrum; the short frame is zero-padded.
	ws := newFFTWorkspace(16)
	ws.computeSpectrum([]float64{1, 0, 0, 0}, nil)
	for i, m := range ws.mag {
		if math.Abs(m-1.0) > 1e-12 {
			t.Errorf("mag[%d] = %f, want 1.0", i, m)
		}
	}
}

func TestFFTFrequencies(t *testing.T) {
	freqs := FFTFrequencies(2048, 16000)
	if len(freqs) != 1025 {
		t.Fatalf("len = %d, want 1025", len(freqs))
	}
	if freqs[0] != 0 || freqs[1024] != 8000 {
		t.Errorf("range = [%f, %f], want [0, 8000]", freqs[0], freqs[1024])
	}
}

func TestMelFilterbank(t *testing.T) {
	fb := NewMelFilterbank(128, 2048, 16000, 0, 8000)
	if len(fb.Filters) != 128 {
		t.Fatalf("numFilters = %d, want 128", len(fb.Filters))
	}
	for i, f := range fb.Filters {
		if len(f) != 1025 {
			t.Fatalf("filter[%d] len = %d, want 1025", i, len(f))
		}
		nonZero := false
		for j, v := range f {
			if v < 0 {
				t.Errorf("filter[%d][%d] = %f < 0", i, j, v)
			}
			if v > 0 {
				nonZero = true
			}
		}
		if !nonZero {
			t.Errorf("filter[%d] is empty", i)
		}
	}

	// Apply on a flat spectrum gives strictly positive energies.
	flat := make([]float64, 1025)
	for i := range flat {
		flat[i] = 1
	}
	for i, e := range fb.Apply(flat) {
		if e <= 0 {
			t.Errorf("energy[%d] = %f, want > 0", i, e)
		}
	}
}

func TestPowerToDB(t *testing.T) {
	spec := [][]float64{{1, 1e-20}, {100, 0}}
	PowerToDB(spec, 80)
	want := [][]float64{{0, -60}, {20, -60}}
	for i := range want {
		for j := range want[i] {
			if math.Abs(spec[i][j]-want[i][j]) > 1e-9 {
				t.Errorf("spec[%d][%d] = %f, want %f", i, j, spec[i][j], want[i][j])
			}
		}
	}
}

func TestDCT(t *testing.T) {
	// Orthonormal DCT of a constant puts sqrt(N)*c into the 0th coefficient.
	input := make([]float64, 26)
	for i := range input {
		input[i] = 1.0
	}
	cepstra := DCT(input, 13)
	if len(cepstra) != 13 {
		t.Fatalf("len(cepstra) = %d, want 13", len(cepstra))
	}
	if math.Abs(cepstra[0]-math.Sqrt(26)) > 1e-10 {
		t.Errorf("cepstra[0] = %f, want %f", cepstra[0], math.Sqrt(26))
	}
	for k := 1; k < 13; k++ {
		if math.Abs(cepstra[k]) > 1e-10 {
			t.Errorf("cepstra[%d] = %f, want ~0", k, cepstra[k])
		}
	}
}

func TestDCT_PreservesEnergy(t *testing.T) {
	input := []float64{3, -1, 4, 1, -5, 9, 2, -6}
	out := DCT(input, len(input))
	var ein, eout float64
	for i := range input {
		ein += input[i] * input[i]
		eout += out[i] * out[i]
	}
	if math.Abs(ein-eout) > 1e-9 {
		t.Errorf("energy in = %f, out = %f", ein, eout)
	}
}

func TestDelta(t *testing.T) {
	// Linear ramp: features[t] = [t]
	features := make([][]float64, 20)
	for t := range features {
		features[t] = []float64{float64(t)}
	}
	for _, N := range []int{2, 4} {
		d := Delta(features, N)
		if len(d) != 20 {
			t.Fatalf("len(d) = %d, want 20", len(d))
		}
		for i := N; i < 20-N; i++ {
			if math.Abs(d[i][0]-1.0) > 1e-10 {
				t.Errorf("N=%d delta[%d] = %f, want 1.0", N, i, d[i][0])
			}
		}
	}
	if Delta(nil, 2) != nil {
		t.Error("expected nil for empty input")
	}
}

func TestDeltas_SingleFrame(t *testing.T) {
	d1, d2 := Deltas([][]float64{{1, 2, 3}}, 4)
	for j := range d1[0] {
		if d1[0][j] != 0 || d2[0][j] != 0 {
			t.Errorf("single frame deltas must be zero, got %v %v", d1[0], d2[0])
		}
	}
}

func TestConfig_Validate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	cfg := DefaultConfig()
	cfg.FFTSize = 1000
	cfg.NumCepstra = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for invalid config")
	}
}

func TestExtract_Dimensions(t *testing.T) {
	cfg := DefaultConfig()
	samples := generateSine(16000, 440)

	fs, err := Extract(samples, cfg)
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}

	// centred frames: 1 + 16000/512 = 32
	wantFrames := 32
	if math.Abs(fs.Duration-1.0) > 1e-12 {
		t.Errorf("Duration = %f, want 1.0", fs.Duration)
	}
	for _, ch := range Channels {
		m, ok := fs.Channels[ch]
		if !ok {
			t.Fatalf("missing channel %s", ch)
		}
		if len(m) != wantFrames {
			t.Errorf("%s frames = %d, want %d", ch, len(m), wantFrames)
		}
		wantDim := 1
		if ch.Cepstral() {
			wantDim = cfg.NumCepstra
		}
		if len(m[0]) != wantDim {
			t.Errorf("%s dim = %d, want %d", ch, len(m[0]), wantDim)
		}
		for i, row := range m {
			for j, v := range row {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					t.Fatalf("%s[%d][%d] = %f", ch, i, j, v)
				}
			}
		}
	}
}

func TestExtract_SpectralShapeOfSine(t *testing.T) {
	fs, err := Extract(generateSine(16000, 1000), DefaultConfig())
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	mid := fs.Frames(ChannelSpectralCentroid) / 2

	if c := fs.Channels[ChannelSpectralCentroid][mid][0]; math.Abs(c-1000) > 50 {
		t.Errorf("centroid = %f, want ~1000", c)
	}
	if r := fs.Channels[ChannelSpectralRolloff][mid][0]; r < 950 || r > 1100 {
		t.Errorf("rolloff = %f, want ~1000", r)
	}
	if b := fs.Channels[ChannelSpectralBandwidth][mid][0]; b <= 0 {
		t.Errorf("bandwidth = %f, want > 0", b)
	}
	// 1 kHz at 16 kHz: two crossings every 16 samples
	if z := fs.Channels[ChannelZeroCrossingRate][mid][0]; math.Abs(z-0.125) > 0.01 {
		t.Errorf("zcr = %f, want ~0.125", z)
	}
}

func TestExtract_Silence(t *testing.T) {
	fs, err := Extract(make([]float64, 8000), DefaultConfig())
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	for _, ch := range []Channel{ChannelSpectralCentroid, ChannelSpectralBandwidth, ChannelSpectralRolloff, ChannelZeroCrossingRate} {
		if m := fs.Mean(ch); m != 0 {
			t.Errorf("%s mean = %f, want 0", ch, m)
		}
	}
	for _, row := range fs.Channels[ChannelMFCC] {
		for _, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("non-finite mfcc %f for silence", v)
			}
		}
	}
}

func TestExtract_EmptySamples(t *testing.T) {
	_, err := Extract(nil, DefaultConfig())
	if !errors.Is(err, ErrTooShort) {
		t.Errorf("err = %v, want ErrTooShort", err)
	}
}

func TestDCTTable_ApplyMatMatchesRows(t *testing.T) {
	spec := [][]float64{
		{-10, -20, -30, -40, -50, -60},
		{1, 2, 3, 4, 5, 6},
		{0, 0, 0, 0, 0, 0},
	}
	tbl := newDCTTable(4, 6)
	got := tbl.applyMat(spec)
	if len(got) != len(spec) {
		t.Fatalf("rows = %d, want %d", len(got), len(spec))
	}
	for i, row := range spec {
		want := DCT(row, 4)
		for k := range want {
			if math.Abs(got[i][k]-want[k]) > 1e-9 {
				t.Errorf("row %d coeff %d = %f, want %f", i, k, got[i][k], want[k])
			}
		}
	}
}
