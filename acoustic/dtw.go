package acoustic

import (
	"math"

	"github.com/ieee0824/pronounce-go/internal/mathutil"
)

// Alignment is the result of dynamic time warping two frame sequences.
type Alignment struct {
	Distance float64  // cumulative frame distance along Path
	Path     [][2]int // (refFrame, userFrame) pairs from start to end
}

// DTW aligns ref and user with dynamic time warping using the Euclidean
// distance between frames. Each step may advance ref, user or both.
// Ties prefer advancing ref, then user, then both.
func DTW(ref, user [][]float64) Alignment {
	n, m := len(ref), len(user)
	if n == 0 || m == 0 {
		return Alignment{}
	}

	// cost[i][j] is the best cumulative cost aligning ref[:i] with user[:j]
	cost := mathutil.NewMatFill(n+1, m+1, math.Inf(1))
	cost[0][0] = 0
	back := make([][]uint8, n+1)
	for i := range back {
		back[i] = make([]uint8, m+1)
	}

	const (
		fromRef uint8 = iota
		fromUser
		fromBoth
	)

	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			d := mathutil.Euclidean(ref[i-1], user[j-1])
			best, dir := cost[i-1][j], fromRef
			if c := cost[i][j-1]; c < best {
				best, dir = c, fromUser
			}
			if c := cost[i-1][j-1]; c < best {
				best, dir = c, fromBoth
			}
			cost[i][j] = d + best
			back[i][j] = dir
		}
	}

	// Backtrack
	var path [][2]int
	for i, j := n, m; i > 0 || j > 0; {
		path = append(path, [2]int{i - 1, j - 1})
		switch back[i][j] {
		case fromRef:
			i--
		case fromUser:
			j--
		default:
			i--
			j--
		}
	}
	for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
		path[l], path[r] = path[r], path[l]
	}

	return Alignment{Distance: cost[n][m], Path: path}
}
