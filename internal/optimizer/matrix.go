package optimizer

import (
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/geo"
)

// distanceMatrix builds the complete n×n great-circle matrix in km.
// Only the upper triangle is evaluated and mirrored, so the matrix is
// exactly symmetric with a zero diagonal.
//
// Complexity: O(n²) time and space.
func distanceMatrix(stops []domain.Stop) ([][]float64, error) {
	n := len(stops)
	dist := make([][]float64, n)
	for i := range dist {
		dist[i] = make([]float64, n)
	}

	for i := 0; i < n; i++ {
		a := stops[i].Coords()
		for j := i + 1; j < n; j++ {
			b := stops[j].Coords()
			d, err := geo.Distance(a.Lat, a.Lng, b.Lat, b.Lng)
			if err != nil {
				return nil, &StopError{Index: j, StopID: stops[j].ID, Err: err}
			}
			dist[i][j] = d
			dist[j][i] = d
		}
	}

	return dist, nil
}
