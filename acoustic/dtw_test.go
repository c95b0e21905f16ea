package acoustic

import (
	"math"
	"testing"
)

// makeFeatures creates T frames of dim-dimensional features all set to val.
func makeFeatures(T, dim int, val float64) [][]float64 {
	f := make([][]float64, T)
	for t := range f {
		f[t] = make([]float64, dim)
		for d := range f[t] {
			f[t][d] = val
		}
	}
	return f
}

func TestDTW_Identical(t *testing.T) {
	seq := [][]float64{{0, 1}, {1, 2}, {2, 3}, {3, 4}}
	aln := DTW(seq, seq)
	if aln.Distance != 0 {
		t.Errorf("Distance = %f, want 0", aln.Distance)
	}
	if len(aln.Path) != len(seq) {
		t.Fatalf("path len = %d, want %d", len(aln.Path), len(seq))
	}
	for i, p := range aln.Path {
		if p != [2]int{i, i} {
			t.Errorf("path[%d] = %v, want diagonal", i, p)
		}
	}
}

func TestDTW_Warp(t *testing.T) {
	ref := [][]float64{{0}, {1}, {2}}
	user := [][]float64{{0}, {2}}
	aln := DTW(ref, user)
	if math.Abs(aln.Distance-1) > 1e-12 {
		t.Errorf("Distance = %f, want 1", aln.Distance)
	}
	want := [][2]int{{0, 0}, {1, 1}, {2, 1}}
	if len(aln.Path) != len(want) {
		t.Fatalf("path = %v, want %v", aln.Path, want)
	}
	for i := range want {
		if aln.Path[i] != want[i] {
			t.Errorf("path[%d] = %v, want %v", i, aln.Path[i], want[i])
		}
	}
}

func TestDTW_PathEndpoints(t *testing.T) {
	ref := makeFeatures(7, 3, 1)
	user := makeFeatures(4, 3, 2)
	aln := DTW(ref, user)
	if aln.Path[0] != [2]int{0, 0} {
		t.Errorf("path start = %v, want (0,0)", aln.Path[0])
	}
	if last := aln.Path[len(aln.Path)-1]; last != [2]int{6, 3} {
		t.Errorf("path end = %v, want (6,3)", last)
	}
	// every step costs sqrt(3); the path has at least max(n, m) steps
	if len(aln.Path) < 7 {
		t.Errorf("path len = %d, want >= 7", len(aln.Path))
	}
	if math.Abs(aln.Distance-math.Sqrt(3)*float64(len(aln.Path))) > 1e-9 {
		t.Errorf("Distance = %f, want %f", aln.Distance, math.Sqrt(3)*float64(len(aln.Path)))
	}
}

func TestDTW_Empty(t *testing.T) {
	aln := DTW(nil, makeFeatures(3, 1, 0))
	if aln.Distance != 0 || aln.Path != nil {
		t.Errorf("DTW(empty) = %+v, want zero value", aln)
	}
}
