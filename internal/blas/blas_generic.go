//go:build !darwin || !cgo

package blas

// Dgemm computes C = alpha*op(A)*op(B) + beta*C in pure Go.
// All matrices are row-major; op(X) is X, or X^T when the trans flag is set.
func Dgemm(transA, transB bool, m, n, k int,
	alpha float64, a []float64, lda int,
	b []float64, ldb int,
	beta float64, c []float64, ldc int) {

	if m == 0 || n == 0 {
		return
	}

	// A * B^T: 両方とも行が連続しているので内積で済む
	if !transA && transB {
		for i := 0; i < m; i++ {
			ar := a[i*lda : i*lda+k]
			for j := 0; j < n; j++ {
				br := b[j*ldb : j*ldb+k]
				sum := 0.0
				for p, av := range ar {
					sum += av * br[p]
				}
				c[i*ldc+j] = alpha*sum + beta*c[i*ldc+j]
			}
		}
		return
	}

	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			sum := 0.0
			for p := 0; p < k; p++ {
				sum += at(a, lda, i, p, transA) * at(b, ldb, p, j, transB)
			}
			c[i*ldc+j] = alpha*sum + beta*c[i*ldc+j]
		}
	}
}

func at(x []float64, ld, r, col int, trans bool) float64 {
	if trans {
		return x[col*ld+r]
	}
	return x[r*ld+col]
}

// HasAccelerate reports whether Dgemm is backed by Apple Accelerate.
func HasAccelerate() bool { return false }
