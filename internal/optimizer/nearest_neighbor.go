package optimizer

import "math"

// nearestNeighbor builds an open visiting order from index 0 by repeatedly
// moving to the closest unvisited stop.
//
// Tie-breaker ensures deterministic ordering when distances are equal:
// the stop with the smaller id wins.
//
// Complexity: O(n²) time, O(n) space.
func nearestNeighbor(dist [][]float64, ids []string) []int {
	n := len(ids)
	if n == 0 {
		return []int{}
	}

	order := make([]int, 0, n)
	visited := make([]bool, n)
	order = append(order, 0)
	visited[0] = true

	current := 0
	for len(order) < n {
		best := -1
		bestDist := math.Inf(1)
		for j := 0; j < n; j++ {
			if visited[j] {
				continue
			}
			d := dist[current][j]
			if d < bestDist || (d == bestDist && ids[j] < ids[best]) {
				best = j
				bestDist = d
			}
		}

		visited[best] = true
		order = append(order, best)
		current = best
	}

	return order
}
