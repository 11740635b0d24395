package optimizer

// twoOpt improves an order in place by 2-opt segment reversal with the
// first element pinned as the origin.
//
// For a cut (i,k) with 1 ≤ i < k ≤ n−1 let a=T[i−1], b=T[i], c=T[k] and
// e the stop after c (T[k+1], the origin when k is last on a closed tour,
// or none on an open tour). Reversing T[i..k] changes the cost by
//
//	Δ = w(a,c) + w(b,e) − w(a,b) − w(c,e)   (e present)
//	Δ = w(a,c) − w(a,b)                     (open tour, k = n−1)
//
// A move is applied only when Δ < −improveEps, so the tour cost never
// increases. Scanning repeats in full passes until a pass applies no move
// or maxPasses passes have run. The number of passes run is returned.
//
// Complexity: O(n²) per pass, O(1) extra space.
func twoOpt(dist [][]float64, tour []int, closed bool, maxPasses int) int {
	n := len(tour)
	if n < 3 {
		return 0
	}

	passes := 0
	for passes < maxPasses {
		passes++
		improved := false

		for i := 1; i <= n-2; i++ {
			for k := i + 1; k <= n-1; k++ {
				a, b, c := tour[i-1], tour[i], tour[k]

				var delta float64
				switch {
				case k+1 < n:
					e := tour[k+1]
					delta = dist[a][c] + dist[b][e] - dist[a][b] - dist[c][e]
				case closed:
					e := tour[0]
					delta = dist[a][c] + dist[b][e] - dist[a][b] - dist[c][e]
				default:
					delta = dist[a][c] - dist[a][b]
				}

				if delta < -improveEps {
					reverseSegment(tour, i, k)
					improved = true
				}
			}
		}

		if !improved {
			break
		}
	}

	return passes
}
