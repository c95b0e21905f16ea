package feature

// Delta computes regression-based derivative coefficients with half-window N:
//
//	d[t] = sum_{n=1}^{N} n*(c[t+n] - c[t-n]) / (2 * sum_{n=1}^{N} n^2)
//
// Frames beyond either end are clamped to the first/last frame.
func Delta(features [][]float64, N int) [][]float64 {
	T := len(features)
	if T == 0 {
		return nil
	}
	if N < 1 {
		N = 1
	}
	dim := len(features[0])
	deltas := make([][]float64, T)

	denom := 0.0
	for n := 1; n <= N; n++ {
		denom += float64(n * n)
	}
	denom *= 2.0

	buf := make([]float64, T*dim)
	for t := 0; t < T; t++ {
		deltas[t] = buf[t*dim : (t+1)*dim]
		for d := 0; d < dim; d++ {
			num := 0.0
			for n := 1; n <= N; n++ {
				tp := min(t+n, T-1)
				tn := max(t-n, 0)
				num += float64(n) * (features[tp][d] - features[tn][d])
			}
			deltas[t][d] = num / denom
		}
	}
	return deltas
}

// Deltas returns the first and second order deltas of features.
// The second order is the delta of the first.
func Deltas(features [][]float64, N int) (d1, d2 [][]float64) {
	d1 = Delta(features, N)
	d2 = Delta(d1, N)
	return d1, d2
}
