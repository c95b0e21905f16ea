package audio

import (
	"math"
	"path/filepath"
	"testing"
)

func TestResample_Length(t *testing.T) {
	samples := make([]float64, 44100)
	tests := []struct {
		src, dst int
		want     int
	}{
		{44100, 16000, 16000},
		{8000, 16000, 88200},
		{16000, 16000, 44100},
	}
	for _, tt := range tests {
		got := Resample(samples, tt.src, tt.dst)
		if len(got) != tt.want {
			t.Errorf("Resample(%d -> %d) len = %d, want %d", tt.src, tt.dst, len(got), tt.want)
		}
	}
}

func TestResample_Identity(t *testing.T) {
	samples := []float64{0.1, 0.2, 0.3}
	got := Resample(samples, 16000, 16000)
	for i := range samples {
		if got[i] != samples[i] {
			t.Errorf("got[%d] = %f, want %f", i, got[i], samples[i])
		}
	}
}

func TestResample_Interpolates(t *testing.T) {
	// Upsampling a ramp by 2x must keep it a ramp.
	samples := []float64{0, 1, 2, 3}
	got := Resample(samples, 8000, 16000)
	want := []float64{0, 0.5, 1, 1.5, 2, 2.5, 3, 3}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("got[%d] = %f, want %f", i, got[i], want[i])
		}
	}
}

func TestResample_Empty(t *testing.T) {
	if got := Resample(nil, 44100, 16000); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
	if got := Resample([]float64{1}, 0, 16000); got != nil {
		t.Errorf("expected nil for invalid rate, got %v", got)
	}
}

func TestLoad_ResamplesToTarget(t *testing.T) {
	in := make([]float64, 8000) // 1 second at 8kHz
	for i := range in {
		in[i] = 0.3 * math.Sin(2*math.Pi*200*float64(i)/8000)
	}
	path := filepath.Join(t.TempDir(), "in.wav")
	if err := WriteWAVFile(path, in, 8000); err != nil {
		t.Fatalf("WriteWAVFile error: %v", err)
	}

	out, err := Load(path, 16000)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(out) != 16000 {
		t.Errorf("len = %d, want 16000", len(out))
	}
	if d := Duration(len(out), 16000); math.Abs(d-1.0) > 1e-12 {
		t.Errorf("Duration = %f, want 1.0", d)
	}
}

func TestDuration_ZeroRate(t *testing.T) {
	if d := Duration(100, 0); d != 0 {
		t.Errorf("Duration = %f, want 0", d)
	}
}
