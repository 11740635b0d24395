package optimizer

import (
	"math"

	"route-optimizer-service/internal/domain"
)

// roundScale stabilizes reported and compared costs at 1e-9 km.
const roundScale = 1e9

// improveEps is the minimum gain a 2-opt move must achieve. It sits well
// above summation noise so accepted moves always lower the reported total.
const improveEps = 1e-9

func round1e9(x float64) float64 {
	return math.Round(x*roundScale) / roundScale
}

// pathCost sums legs along order (indices into dist) and, for closed
// tours, the leg back to order[0]. Summation runs in visiting order.
//
// Complexity: O(n).
func pathCost(dist [][]float64, order []int, closed bool) float64 {
	if len(order) < 2 {
		return 0
	}

	var sum float64
	for i := 0; i+1 < len(order); i++ {
		sum += dist[order[i]][order[i+1]]
	}
	if closed {
		sum += dist[order[len(order)-1]][order[0]]
	}

	return sum
}

// reverseSegment reverses tour[i..k] inclusive in place.
func reverseSegment(tour []int, i, k int) {
	for i < k {
		tour[i], tour[k] = tour[k], tour[i]
		i++
		k--
	}
}

// buildRoute converts an index order into the caller-facing route.
func buildRoute(stops []domain.Stop, dist [][]float64, order []int, closed bool, method domain.RouteMethod, passes int) domain.Route {
	ids := make([]string, len(order))
	for i, idx := range order {
		ids[i] = stops[idx].ID
	}

	legs := make([]domain.RouteLeg, 0, len(order))
	var cumulative float64
	addLeg := func(from, to int) {
		cumulative += dist[from][to]
		legs = append(legs, domain.RouteLeg{
			From:         stops[from].ID,
			To:           stops[to].ID,
			DistanceKm:   round1e9(dist[from][to]),
			CumulativeKm: round1e9(cumulative),
		})
	}
	for i := 0; i+1 < len(order); i++ {
		addLeg(order[i], order[i+1])
	}
	if closed && len(order) >= 2 {
		addLeg(order[len(order)-1], order[0])
	}

	return domain.Route{
		Order:           ids,
		TotalDistanceKm: round1e9(pathCost(dist, order, closed)),
		ClosedTour:      closed,
		Method:          method,
		Passes:          passes,
		Legs:            legs,
	}
}
