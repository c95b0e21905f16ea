package mathutil

import "math"

// Vec is a float64 vector.
type Vec = []float64

// Mat is a 2D float64 matrix stored as row-major [][]float64.
type Mat = [][]float64

// NewMat creates a rows x cols matrix initialized to zero.
// All rows share one backing array.
func NewMat(rows, cols int) Mat {
	m := make(Mat, rows)
	data := make([]float64, rows*cols)
	for i := range m {
		m[i] = data[i*cols : (i+1)*cols]
	}
	return m
}

// NewMatFill creates a rows x cols matrix filled with val.
func NewMatFill(rows, cols int, val float64) Mat {
	m := NewMat(rows, cols)
	for i := range m {
		for j := range m[i] {
			m[i][j] = val
		}
	}
	return m
}

// Euclidean returns the L2 distance between a and b.
// Extra elements of the longer vector are ignored.
func Euclidean(a, b Vec) float64 {
	n := min(len(a), len(b))
	sum := 0.0
	for i := 0; i < n; i++ {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// MeanVec returns the arithmetic mean of v, or 0 for an empty vector.
func MeanVec(v Vec) float64 {
	if len(v) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range v {
		sum += x
	}
	return sum / float64(len(v))
}

// MeanMat returns the mean over every element of m, or 0 if m has no elements.
func MeanMat(m Mat) float64 {
	sum := 0.0
	n := 0
	for _, row := range m {
		for _, x := range row {
			sum += x
		}
		n += len(row)
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// MaxAbs returns the largest absolute value in v.
func MaxAbs(v Vec) float64 {
	peak := 0.0
	for _, x := range v {
		if a := math.Abs(x); a > peak {
			peak = a
		}
	}
	return peak
}

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
