package optimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"route-optimizer-service/internal/domain"
)

// lineDist places stop i at position i on a straight line.
func lineDist(n int) [][]float64 {
	dist := make([][]float64, n)
	for i := range dist {
		dist[i] = make([]float64, n)
		for j := range dist[i] {
			d := float64(i - j)
			if d < 0 {
				d = -d
			}
			dist[i][j] = d
		}
	}
	return dist
}

func TestDistanceMatrixSymmetricZeroDiagonal(t *testing.T) {
	stops := randomStops(4, 12)
	dist, err := distanceMatrix(stops)
	require.NoError(t, err)

	for i := range dist {
		assert.Equal(t, 0.0, dist[i][i])
		for j := range dist {
			assert.Equal(t, dist[i][j], dist[j][i])
		}
	}
}

func TestNearestNeighborTieBreaksOnID(t *testing.T) {
	stops := []domain.Stop{
		{ID: "origin", Lat: 0, Lng: 0},
		{ID: "z", Lat: 0, Lng: 1},
		{ID: "a", Lat: 0, Lng: -1},
	}
	dist, err := distanceMatrix(stops)
	require.NoError(t, err)
	require.Equal(t, dist[0][1], dist[0][2])

	order := nearestNeighbor(dist, []string{"origin", "z", "a"})
	assert.Equal(t, []int{0, 2, 1}, order)
}

func TestNearestNeighborFollowsClosestStop(t *testing.T) {
	order := nearestNeighbor(lineDist(5), []string{"0", "1", "2", "3", "4"})
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestTwoOptUncrossesOpenPath(t *testing.T) {
	tour := []int{0, 2, 1, 3}
	dist := lineDist(4)

	passes := twoOpt(dist, tour, false, DefaultMaxTwoOptPasses)
	assert.Equal(t, []int{0, 1, 2, 3}, tour)
	assert.Equal(t, 3.0, pathCost(dist, tour, false))
	assert.GreaterOrEqual(t, passes, 1)
}

func TestTwoOptImprovesOpenTail(t *testing.T) {
	// Reversing the open tail fixes this order in one move.
	tour := []int{0, 3, 2, 1}
	dist := lineDist(4)

	twoOpt(dist, tour, false, DefaultMaxTwoOptPasses)
	assert.Equal(t, []int{0, 1, 2, 3}, tour)
}

func TestTwoOptStopsWhenLocalOptimum(t *testing.T) {
	tour := []int{0, 1, 2, 3, 4}
	passes := twoOpt(lineDist(5), tour, false, DefaultMaxTwoOptPasses)
	assert.Equal(t, 1, passes)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, tour)
}

func TestTwoOptShortInputIsNoop(t *testing.T) {
	tour := []int{0, 1}
	assert.Equal(t, 0, twoOpt(lineDist(2), tour, true, 10))
	assert.Equal(t, []int{0, 1}, tour)
}

func TestSolveExactOnLine(t *testing.T) {
	ids := []string{"0", "1", "2", "3", "4"}
	order := solveExact(lineDist(5), ids, false)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)

	// Closed: every order that sweeps out and back costs 8.
	closed := solveExact(lineDist(5), ids, true)
	assert.Equal(t, 8.0, pathCost(lineDist(5), closed, true))
	assert.Equal(t, 0, closed[0])
}

func TestPathCost(t *testing.T) {
	dist := lineDist(4)
	assert.Equal(t, 0.0, pathCost(dist, []int{2}, true))
	assert.Equal(t, 3.0, pathCost(dist, []int{0, 1, 2, 3}, false))
	assert.Equal(t, 6.0, pathCost(dist, []int{0, 1, 2, 3}, true))
}

func TestRound1e9(t *testing.T) {
	assert.Equal(t, 1.0, round1e9(1.0000000001))
	assert.Equal(t, 0.123456789, round1e9(0.1234567891))
}
