package optimizer

import (
	"math"
	"slices"
	"strings"
)

// solveExact returns the minimum-cost visiting order with index 0 fixed as
// the origin, by depth-first enumeration of the remaining stops.
//
// Enumeration visits candidates in ascending id order, so the first
// optimum found is the lexicographically-first id sequence among all
// equal-cost orders (costs compared after rounding to 1e-9). A branch is
// abandoned once its partial cost already exceeds the best full cost;
// distances are non-negative, so no completion can beat it.
//
// For closed tours a cycle and its reverse cost the same. Only the
// orientation whose first id sorts before its last id is evaluated,
// which is also the lexicographically smaller of the two.
//
// Complexity: O((n−1)!) leaves in the worst case, O(n) extra space.
func solveExact(dist [][]float64, ids []string, closed bool) []int {
	n := len(ids)
	if n <= 2 {
		order := make([]int, n)
		for i := range order {
			order[i] = i
		}
		return order
	}

	candidates := make([]int, 0, n-1)
	for i := 1; i < n; i++ {
		candidates = append(candidates, i)
	}
	slices.SortFunc(candidates, func(a, b int) int { return strings.Compare(ids[a], ids[b]) })

	var (
		path     = make([]int, n)
		used     = make([]bool, n)
		best     = make([]int, n)
		bestCost = math.Inf(1)
	)
	path[0] = 0

	var walk func(depth int, partial float64)
	walk = func(depth int, partial float64) {
		if round1e9(partial) > bestCost {
			return
		}

		if depth == n {
			// Skip the mirrored orientation of a closed cycle.
			if closed && ids[path[1]] > ids[path[n-1]] {
				return
			}
			total := partial
			if closed {
				total += dist[path[n-1]][0]
			}
			if r := round1e9(total); r < bestCost {
				bestCost = r
				copy(best, path)
			}
			return
		}

		last := path[depth-1]
		for _, c := range candidates {
			if used[c] {
				continue
			}
			used[c] = true
			path[depth] = c
			walk(depth+1, partial+dist[last][c])
			used[c] = false
		}
	}
	walk(1, 0)

	return best
}
