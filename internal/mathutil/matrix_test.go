package mathutil

import (
	"math"
	"testing"
)

func TestNewMat(t *testing.T) {
	m := NewMat(3, 4)
	if len(m) != 3 {
		t.Fatalf("rows = %d, want 3", len(m))
	}
	for i, row := range m {
		if len(row) != 4 {
			t.Fatalf("row %d len = %d, want 4", i, len(row))
		}
		for j, v := range row {
			if v != 0 {
				t.Errorf("m[%d][%d] = %f, want 0", i, j, v)
			}
		}
	}
}

func TestNewMatFill(t *testing.T) {
	m := NewMatFill(2, 3, math.Inf(1))
	for i := range m {
		for j := range m[i] {
			if !math.IsInf(m[i][j], 1) {
				t.Errorf("m[%d][%d] = %f, want +Inf", i, j, m[i][j])
			}
		}
	}
}

func TestEuclidean(t *testing.T) {
	tests := []struct {
		name string
		a, b Vec
		want float64
	}{
		{"identical", Vec{1, 2, 3}, Vec{1, 2, 3}, 0},
		{"3-4-5", Vec{0, 0}, Vec{3, 4}, 5},
		{"length_mismatch", Vec{1, 1, 9}, Vec{1, 1}, 0},
		{"empty", nil, nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Euclidean(tt.a, tt.b); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Euclidean() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestMeans(t *testing.T) {
	if got := MeanVec(Vec{1, 2, 3, 4}); got != 2.5 {
		t.Errorf("MeanVec = %f, want 2.5", got)
	}
	if got := MeanVec(nil); got != 0 {
		t.Errorf("MeanVec(nil) = %f, want 0", got)
	}
	if got := MeanMat(Mat{{1, 2}, {3, 6}}); got != 3 {
		t.Errorf("MeanMat = %f, want 3", got)
	}
	if got := MeanMat(Mat{{}, {}}); got != 0 {
		t.Errorf("MeanMat(empty rows) = %f, want 0", got)
	}
}

func TestMaxAbsAndClamp(t *testing.T) {
	if got := MaxAbs(Vec{0.2, -0.9, 0.5}); got != 0.9 {
		t.Errorf("MaxAbs = %f, want 0.9", got)
	}
	if got := Clamp(120, 0, 100); got != 100 {
		t.Errorf("Clamp(120) = %f, want 100", got)
	}
	if got := Clamp(-3, 0, 100); got != 0 {
		t.Errorf("Clamp(-3) = %f, want 0", got)
	}
	if got := Clamp(42, 0, 100); got != 42 {
		t.Errorf("Clamp(42) = %f, want 42", got)
	}
}
